package application

import (
	"context"
	"strings"

	"github.com/sfvc/calendario-nodo/internal/domain"
	"github.com/sfvc/calendario-nodo/internal/domain/entities"
	"github.com/sfvc/calendario-nodo/internal/ports/output"
)

type EstadoService struct {
	estadoRepo output.EstadoRepository
}

func NewEstadoService(estadoRepo output.EstadoRepository) *EstadoService {
	return &EstadoService{estadoRepo: estadoRepo}
}

func (s *EstadoService) ListEstados(ctx context.Context) ([]entities.Estado, error) {
	return s.estadoRepo.FindAll(ctx)
}

func (s *EstadoService) GetEstadoByID(ctx context.Context, id int) (*entities.Estado, error) {
	return s.estadoRepo.FindByID(ctx, id)
}

func (s *EstadoService) CreateEstado(ctx context.Context, nombre string) (*entities.Estado, error) {
	nombre = strings.TrimSpace(nombre)
	if nombre == "" {
		return nil, domain.ErrEstadoNombreVacio
	}
	estado := &entities.Estado{Nombre: nombre}
	if err := s.estadoRepo.Create(ctx, estado); err != nil {
		return nil, err
	}
	return estado, nil
}

func (s *EstadoService) UpdateEstado(ctx context.Context, id int, nombre string) (*entities.Estado, error) {
	nombre = strings.TrimSpace(nombre)
	if nombre == "" {
		return nil, domain.ErrEstadoNombreVacio
	}
	estado, err := s.estadoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	estado.Nombre = nombre
	if err := s.estadoRepo.Update(ctx, estado); err != nil {
		return nil, err
	}
	return estado, nil
}
