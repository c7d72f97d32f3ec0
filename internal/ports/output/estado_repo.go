package output

import (
	"context"

	"github.com/sfvc/calendario-nodo/internal/domain/entities"
)

type EstadoRepository interface {
	FindAll(ctx context.Context) ([]entities.Estado, error)
	FindByID(ctx context.Context, id int) (*entities.Estado, error)
	Create(ctx context.Context, estado *entities.Estado) error
	Update(ctx context.Context, estado *entities.Estado) error
}
