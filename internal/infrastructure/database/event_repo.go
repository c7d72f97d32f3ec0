package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sfvc/calendario-nodo/internal/domain"
	"github.com/sfvc/calendario-nodo/internal/domain/entities"
	"github.com/sfvc/calendario-nodo/internal/ports/output"
)

var _ output.EventRepository = (*EventRepository)(nil)

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

const eventColumns = `
e.id, e.title, e.description, e.fecha_inicio, e.fecha_fin, e.hora_inicio,
e.hora_fin, e.all_day, e.color, e.estado_id, s.nombre, e.user_id,
e.organizacion, e.cantidad_personas, e.espacio_utilizar, e.requerimientos,
e.cobertura, e.fotos, e.archivos, e.links, e.created_at, e.updated_at`

func (r *EventRepository) Create(ctx context.Context, event *entities.Event) error {
	const stmt = `
INSERT INTO events (
	id, title, description, fecha_inicio, fecha_fin, hora_inicio, hora_fin,
	all_day, color, estado_id, user_id, organizacion, cantidad_personas,
	espacio_utilizar, requerimientos, cobertura, fotos, archivos, links
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
RETURNING created_at, updated_at`
	var createdAt, updatedAt pgtype.Timestamptz
	err := r.pool.QueryRow(ctx, stmt,
		event.ID, event.Title, event.Description,
		dateOf(event.FechaInicio), dateOf(event.FechaFin),
		textOrNull(event.HoraInicio), textOrNull(event.HoraFin),
		event.AllDay, event.Color, event.EstadoID, event.UserID,
		event.Organizacion, event.CantidadPersonas, event.EspacioUtilizar,
		event.Requerimientos, event.Cobertura,
		event.Fotos, event.Archivos, event.Links,
	).Scan(&createdAt, &updatedAt)
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	event.CreatedAt = timestamptzToTime(createdAt)
	event.UpdatedAt = timestamptzToTime(updatedAt)
	return nil
}

func (r *EventRepository) FindAll(ctx context.Context) ([]entities.Event, error) {
	query := `
SELECT ` + eventColumns + `
FROM events e
JOIN evento_estado s ON s.id = e.estado_id
ORDER BY e.fecha_inicio ASC, e.hora_inicio ASC NULLS FIRST`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []entities.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, event)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate events: %w", rows.Err())
	}
	return events, nil
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*entities.Event, error) {
	query := `
SELECT ` + eventColumns + `
FROM events e
JOIN evento_estado s ON s.id = e.estado_id
WHERE e.id = $1`
	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("get event by id: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if rows.Err() != nil {
			return nil, fmt.Errorf("get event by id: %w", rows.Err())
		}
		return nil, domain.ErrEventoNotFound
	}
	event, err := scanEvent(rows)
	if err != nil {
		return nil, fmt.Errorf("scan event: %w", err)
	}
	return &event, nil
}

func (r *EventRepository) Update(ctx context.Context, event *entities.Event) error {
	const stmt = `
UPDATE events SET
	title = $2, description = $3, fecha_inicio = $4, fecha_fin = $5,
	hora_inicio = $6, hora_fin = $7, all_day = $8, color = $9, estado_id = $10,
	organizacion = $11, cantidad_personas = $12, espacio_utilizar = $13,
	requerimientos = $14, cobertura = $15, fotos = $16, archivos = $17,
	links = $18, updated_at = NOW()
WHERE id = $1`
	tag, err := r.pool.Exec(ctx, stmt,
		event.ID, event.Title, event.Description,
		dateOf(event.FechaInicio), dateOf(event.FechaFin),
		textOrNull(event.HoraInicio), textOrNull(event.HoraFin),
		event.AllDay, event.Color, event.EstadoID,
		event.Organizacion, event.CantidadPersonas, event.EspacioUtilizar,
		event.Requerimientos, event.Cobertura,
		event.Fotos, event.Archivos, event.Links,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventoNotFound
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventoNotFound
	}
	return nil
}

func scanEvent(rows pgx.Rows) (entities.Event, error) {
	var (
		event                  entities.Event
		fechaInicio, fechaFin  pgtype.Date
		horaInicio, horaFin    pgtype.Text
		createdAt, updatedAt   pgtype.Timestamptz
		fotos, archivos, links []string
	)
	err := rows.Scan(
		&event.ID, &event.Title, &event.Description, &fechaInicio, &fechaFin,
		&horaInicio, &horaFin, &event.AllDay, &event.Color, &event.EstadoID,
		&event.Estado, &event.UserID, &event.Organizacion,
		&event.CantidadPersonas, &event.EspacioUtilizar, &event.Requerimientos,
		&event.Cobertura, &fotos, &archivos, &links, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return event, domain.ErrEventoNotFound
		}
		return event, err
	}
	event.FechaInicio = dateToTime(fechaInicio)
	event.FechaFin = dateToTime(fechaFin)
	event.HoraInicio = textToString(horaInicio)
	event.HoraFin = textToString(horaFin)
	event.Fotos = fotos
	event.Archivos = archivos
	event.Links = links
	event.CreatedAt = timestamptzToTime(createdAt)
	event.UpdatedAt = timestamptzToTime(updatedAt)
	return event, nil
}
