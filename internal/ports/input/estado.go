package input

import (
	"context"

	"github.com/sfvc/calendario-nodo/internal/domain/entities"
)

type EstadoUseCase interface {
	ListEstados(ctx context.Context) ([]entities.Estado, error)
	GetEstadoByID(ctx context.Context, id int) (*entities.Estado, error)
	CreateEstado(ctx context.Context, nombre string) (*entities.Estado, error)
	UpdateEstado(ctx context.Context, id int, nombre string) (*entities.Estado, error)
}
