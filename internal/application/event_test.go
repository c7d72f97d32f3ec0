package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sfvc/calendario-nodo/internal/config"
	"github.com/sfvc/calendario-nodo/internal/domain"
	"github.com/sfvc/calendario-nodo/internal/domain/entities"
)

type fakeEventRepo struct {
	events  map[string]*entities.Event
	creates int
	updates int
	deletes int
}

func newFakeEventRepo(seed ...*entities.Event) *fakeEventRepo {
	r := &fakeEventRepo{events: make(map[string]*entities.Event)}
	for _, e := range seed {
		r.events[e.ID] = e
	}
	return r
}

func (r *fakeEventRepo) Create(ctx context.Context, event *entities.Event) error {
	r.creates++
	r.events[event.ID] = event
	return nil
}

func (r *fakeEventRepo) FindAll(ctx context.Context) ([]entities.Event, error) {
	out := make([]entities.Event, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, *e)
	}
	return out, nil
}

func (r *fakeEventRepo) FindByID(ctx context.Context, id string) (*entities.Event, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, domain.ErrEventoNotFound
	}
	return e, nil
}

func (r *fakeEventRepo) Update(ctx context.Context, event *entities.Event) error {
	r.updates++
	r.events[event.ID] = event
	return nil
}

func (r *fakeEventRepo) Delete(ctx context.Context, id string) error {
	r.deletes++
	delete(r.events, id)
	return nil
}

type fakeEstadoRepo struct {
	estados map[int]*entities.Estado
}

func newFakeEstadoRepo() *fakeEstadoRepo {
	return &fakeEstadoRepo{estados: map[int]*entities.Estado{
		1: {ID: 1, Nombre: "INTERNO_NODO"},
		2: {ID: 2, Nombre: "CANCELADO"},
	}}
}

func (r *fakeEstadoRepo) FindAll(ctx context.Context) ([]entities.Estado, error) {
	out := make([]entities.Estado, 0, len(r.estados))
	for _, e := range r.estados {
		out = append(out, *e)
	}
	return out, nil
}

func (r *fakeEstadoRepo) FindByID(ctx context.Context, id int) (*entities.Estado, error) {
	e, ok := r.estados[id]
	if !ok {
		return nil, domain.ErrEstadoNotFound
	}
	return e, nil
}

func (r *fakeEstadoRepo) Create(ctx context.Context, estado *entities.Estado) error {
	estado.ID = len(r.estados) + 1
	r.estados[estado.ID] = estado
	return nil
}

func (r *fakeEstadoRepo) Update(ctx context.Context, estado *entities.Estado) error {
	r.estados[estado.ID] = estado
	return nil
}

type countingAnnouncer struct {
	calls int
	err   error
}

func (a *countingAnnouncer) AnnounceEventCreated(ctx context.Context, event *entities.Event) error {
	a.calls++
	return a.err
}

func adminUser() *entities.User {
	return &entities.User{ID: "admin-1", Email: "admin@nodo.gob.ar", Role: entities.RoleAdmin}
}

func normalUser(id string) *entities.User {
	return &entities.User{ID: id, Email: id + "@nodo.gob.ar", Role: entities.RoleUser}
}

func validEvent() *entities.Event {
	return &entities.Event{
		Title:       "Charla",
		FechaInicio: time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC),
		FechaFin:    time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC),
		EstadoID:    1,
	}
}

func TestCreateEventAsignaIDYResuelveEstado(t *testing.T) {
	t.Parallel()

	repo := newFakeEventRepo()
	svc := NewEventService(repo, newFakeEstadoRepo(), nil, config.EditOwnerOrAdmin)

	event := validEvent()
	if err := svc.CreateEvent(context.Background(), normalUser("u1"), event); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if event.ID == "" {
		t.Error("no se asignó ID")
	}
	if event.UserID != "u1" {
		t.Errorf("UserID = %q, quería u1", event.UserID)
	}
	if event.Estado != "INTERNO_NODO" {
		t.Errorf("Estado = %q, quería INTERNO_NODO", event.Estado)
	}
	if !event.AllDay {
		t.Error("sin hora de inicio el evento debe quedar como día completo")
	}
	if repo.creates != 1 {
		t.Errorf("creates = %d", repo.creates)
	}
}

func TestCreateEventValidaciones(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*entities.Event)
		wantErr error
	}{
		{"sin título", func(e *entities.Event) { e.Title = " " }, domain.ErrEventoInvalido},
		{"fin antes del inicio", func(e *entities.Event) {
			e.FechaFin = e.FechaInicio.AddDate(0, 0, -1)
		}, domain.ErrFechaFinBeforeInicio},
		{"sin estado", func(e *entities.Event) { e.EstadoID = 0 }, domain.ErrEventoInvalido},
		{"estado inexistente", func(e *entities.Event) { e.EstadoID = 99 }, domain.ErrEstadoNotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := NewEventService(newFakeEventRepo(), newFakeEstadoRepo(), nil, config.EditOwnerOrAdmin)
			event := validEvent()
			tt.mutate(event)
			err := svc.CreateEvent(context.Background(), normalUser("u1"), event)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, quería %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateEventAnunciaUnaVezYNoFallaPorElAnuncio(t *testing.T) {
	t.Parallel()

	announcer := &countingAnnouncer{err: errors.New("discord caído")}
	svc := NewEventService(newFakeEventRepo(), newFakeEstadoRepo(), announcer, config.EditOwnerOrAdmin)

	if err := svc.CreateEvent(context.Background(), normalUser("u1"), validEvent()); err != nil {
		t.Fatalf("CreateEvent falló por el anuncio: %v", err)
	}
	if announcer.calls != 1 {
		t.Errorf("el anuncio se intentó %d veces, quería exactamente 1", announcer.calls)
	}
}

func TestCanEditSegunPolitica(t *testing.T) {
	t.Parallel()

	owned := &entities.Event{ID: "e1", UserID: "u1"}

	tests := []struct {
		name   string
		policy config.EditPolicy
		user   *entities.User
		want   bool
	}{
		{"dueño con owner-or-admin", config.EditOwnerOrAdmin, normalUser("u1"), true},
		{"otro usuario con owner-or-admin", config.EditOwnerOrAdmin, normalUser("u2"), false},
		{"admin con owner-or-admin", config.EditOwnerOrAdmin, adminUser(), true},
		{"otro usuario con any-authenticated", config.EditAnyAuthenticated, normalUser("u2"), true},
		{"anónimo", config.EditOwnerOrAdmin, nil, false},
		{"anónimo con any-authenticated", config.EditAnyAuthenticated, nil, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := NewEventService(newFakeEventRepo(), newFakeEstadoRepo(), nil, tt.policy)
			if got := svc.CanEdit(tt.user, owned); got != tt.want {
				t.Errorf("CanEdit = %v, quería %v", got, tt.want)
			}
		})
	}
}

func TestUpdateEventRespetaPermisosYConservaDueno(t *testing.T) {
	t.Parallel()

	existing := validEvent()
	existing.ID = "e1"
	existing.UserID = "u1"
	repo := newFakeEventRepo(existing)
	svc := NewEventService(repo, newFakeEstadoRepo(), nil, config.EditOwnerOrAdmin)

	cambio := validEvent()
	cambio.ID = "e1"
	cambio.Title = "Charla renombrada"

	if err := svc.UpdateEvent(context.Background(), normalUser("u2"), cambio); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("otro usuario: err = %v, quería ErrForbidden", err)
	}

	cambio.UserID = "u2" // un caller malicioso intenta robarse el evento
	if err := svc.UpdateEvent(context.Background(), adminUser(), cambio); err != nil {
		t.Fatalf("UpdateEvent como admin: %v", err)
	}
	if cambio.UserID != "u1" {
		t.Errorf("UserID = %q, el dueño original debe conservarse", cambio.UserID)
	}
	if repo.updates != 1 {
		t.Errorf("updates = %d", repo.updates)
	}
}

func TestDeleteEventRespetaPermisos(t *testing.T) {
	t.Parallel()

	existing := validEvent()
	existing.ID = "e1"
	existing.UserID = "u1"
	repo := newFakeEventRepo(existing)
	svc := NewEventService(repo, newFakeEstadoRepo(), nil, config.EditOwnerOrAdmin)

	if err := svc.DeleteEvent(context.Background(), normalUser("u2"), "e1"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("otro usuario: err = %v, quería ErrForbidden", err)
	}
	if err := svc.DeleteEvent(context.Background(), normalUser("u1"), "e1"); err != nil {
		t.Fatalf("DeleteEvent como dueño: %v", err)
	}
	if repo.deletes != 1 {
		t.Errorf("deletes = %d", repo.deletes)
	}
	if err := svc.DeleteEvent(context.Background(), normalUser("u1"), "e1"); !errors.Is(err, domain.ErrEventoNotFound) {
		t.Errorf("evento borrado: err = %v, quería ErrEventoNotFound", err)
	}
}
