package input

import (
	"context"

	"github.com/sfvc/calendario-nodo/internal/domain/entities"
)

type UserUseCase interface {
	CreateUser(ctx context.Context, email, password string, role entities.Role) (*entities.User, error)
}

type AuthUseCase interface {
	Login(ctx context.Context, email, password string) (*entities.User, string, error)
	Refresh(ctx context.Context, token string) (*entities.User, string, error)
	UserFromToken(ctx context.Context, token string) (*entities.User, error)
}
