package input

import (
	"context"

	"github.com/sfvc/calendario-nodo/internal/domain/entities"
)

type EventUseCase interface {
	ListEvents(ctx context.Context) ([]entities.Event, error)
	GetEventByID(ctx context.Context, id string) (*entities.Event, error)
	CreateEvent(ctx context.Context, user *entities.User, event *entities.Event) error
	UpdateEvent(ctx context.Context, user *entities.User, event *entities.Event) error
	DeleteEvent(ctx context.Context, user *entities.User, id string) error
	CanEdit(user *entities.User, event *entities.Event) bool
}
