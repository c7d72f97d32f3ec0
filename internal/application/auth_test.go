package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sfvc/calendario-nodo/internal/domain"
	"github.com/sfvc/calendario-nodo/internal/domain/entities"
	"github.com/sfvc/calendario-nodo/pkg/token"
)

type fakeUserRepo struct {
	byEmail map[string]*entities.User
	byID    map[string]*entities.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*entities.User),
		byID:    make(map[string]*entities.User),
	}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entities.User) error {
	if _, ok := r.byEmail[user.Email]; ok {
		return domain.ErrEmailTaken
	}
	r.byEmail[user.Email] = user
	r.byID[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*entities.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func seedUser(t *testing.T, repo *fakeUserRepo) *entities.User {
	t.Helper()
	users := NewUserService(repo)
	user, err := users.CreateUser(context.Background(), "ana@nodo.gob.ar", "secreta123", entities.RoleAdmin)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return user
}

func TestLoginEmiteToken(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	seedUser(t, repo)
	auth := NewAuthService(repo, token.NewManager("clave-de-prueba", time.Hour))

	user, tok, err := auth.Login(context.Background(), "ana@nodo.gob.ar", "secreta123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if tok == "" {
		t.Fatal("token vacío")
	}
	if user.Email != "ana@nodo.gob.ar" {
		t.Errorf("Email = %q", user.Email)
	}

	// El token emitido identifica al mismo usuario.
	parsed, err := auth.UserFromToken(context.Background(), tok)
	if err != nil {
		t.Fatalf("UserFromToken: %v", err)
	}
	if parsed.ID != user.ID {
		t.Errorf("ID del token = %q, quería %q", parsed.ID, user.ID)
	}
}

func TestLoginCredencialesInvalidas(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	seedUser(t, repo)
	auth := NewAuthService(repo, token.NewManager("clave-de-prueba", time.Hour))

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"contraseña incorrecta", "ana@nodo.gob.ar", "otra"},
		{"email desconocido", "nadie@nodo.gob.ar", "secreta123"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := auth.Login(context.Background(), tt.email, tt.password)
			if !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Errorf("err = %v, quería ErrInvalidCredentials", err)
			}
		})
	}
}

func TestRefreshRotaElToken(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	seedUser(t, repo)
	auth := NewAuthService(repo, token.NewManager("clave-de-prueba", time.Hour))

	_, tok, err := auth.Login(context.Background(), "ana@nodo.gob.ar", "secreta123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	user, renovado, err := auth.Refresh(context.Background(), tok)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if renovado == "" || user == nil {
		t.Fatal("Refresh no devolvió token y usuario")
	}

	if _, _, err := auth.Refresh(context.Background(), "basura.no.jwt"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("token inválido: err = %v, quería ErrTokenInvalid", err)
	}
}

func TestCreateUserRechazaEmailRepetido(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	seedUser(t, repo)
	users := NewUserService(repo)

	if _, err := users.CreateUser(context.Background(), "ana@nodo.gob.ar", "otra1234", entities.RoleUser); !errors.Is(err, domain.ErrEmailTaken) {
		t.Errorf("err = %v, quería ErrEmailTaken", err)
	}
}

func TestEstadoServiceNombreVacio(t *testing.T) {
	t.Parallel()

	svc := NewEstadoService(newFakeEstadoRepo())
	if _, err := svc.CreateEstado(context.Background(), "  "); !errors.Is(err, domain.ErrEstadoNombreVacio) {
		t.Errorf("err = %v, quería ErrEstadoNombreVacio", err)
	}
	estado, err := svc.CreateEstado(context.Background(), "A_CONFIRMAR")
	if err != nil {
		t.Fatalf("CreateEstado: %v", err)
	}
	if estado.Nombre != "A_CONFIRMAR" {
		t.Errorf("Nombre = %q", estado.Nombre)
	}
}
