package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sfvc/calendario-nodo/internal/domain"
	"github.com/sfvc/calendario-nodo/internal/domain/entities"
	"github.com/sfvc/calendario-nodo/internal/ports/output"
)

var _ output.EstadoRepository = (*EstadoRepository)(nil)

type EstadoRepository struct {
	pool *pgxpool.Pool
}

func NewEstadoRepository(pool *pgxpool.Pool) *EstadoRepository {
	return &EstadoRepository{pool: pool}
}

func (r *EstadoRepository) FindAll(ctx context.Context) ([]entities.Estado, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, nombre FROM evento_estado ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list estados: %w", err)
	}
	defer rows.Close()

	var estados []entities.Estado
	for rows.Next() {
		var estado entities.Estado
		if err := rows.Scan(&estado.ID, &estado.Nombre); err != nil {
			return nil, fmt.Errorf("scan estado: %w", err)
		}
		estados = append(estados, estado)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate estados: %w", rows.Err())
	}
	return estados, nil
}

func (r *EstadoRepository) FindByID(ctx context.Context, id int) (*entities.Estado, error) {
	var estado entities.Estado
	err := r.pool.QueryRow(ctx, `SELECT id, nombre FROM evento_estado WHERE id = $1`, id).
		Scan(&estado.ID, &estado.Nombre)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEstadoNotFound
		}
		return nil, fmt.Errorf("get estado by id: %w", err)
	}
	return &estado, nil
}

func (r *EstadoRepository) Create(ctx context.Context, estado *entities.Estado) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO evento_estado (nombre) VALUES ($1) RETURNING id`, estado.Nombre).
		Scan(&estado.ID)
	if err != nil {
		return fmt.Errorf("create estado: %w", err)
	}
	return nil
}

func (r *EstadoRepository) Update(ctx context.Context, estado *entities.Estado) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE evento_estado SET nombre = $2 WHERE id = $1`, estado.ID, estado.Nombre)
	if err != nil {
		return fmt.Errorf("update estado: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEstadoNotFound
	}
	return nil
}
