package application

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/sfvc/calendario-nodo/internal/config"
	"github.com/sfvc/calendario-nodo/internal/domain"
	"github.com/sfvc/calendario-nodo/internal/domain/entities"
	"github.com/sfvc/calendario-nodo/internal/ports/output"
)

type EventService struct {
	eventRepo  output.EventRepository
	estadoRepo output.EstadoRepository
	announcer  output.EventAnnouncer // nil = announcements disabled
	policy     config.EditPolicy
}

func NewEventService(
	eventRepo output.EventRepository,
	estadoRepo output.EstadoRepository,
	announcer output.EventAnnouncer,
	policy config.EditPolicy,
) *EventService {
	return &EventService{
		eventRepo:  eventRepo,
		estadoRepo: estadoRepo,
		announcer:  announcer,
		policy:     policy,
	}
}

func (s *EventService) ListEvents(ctx context.Context) ([]entities.Event, error) {
	return s.eventRepo.FindAll(ctx)
}

func (s *EventService) GetEventByID(ctx context.Context, id string) (*entities.Event, error) {
	return s.eventRepo.FindByID(ctx, id)
}

func (s *EventService) CreateEvent(ctx context.Context, user *entities.User, event *entities.Event) error {
	if err := s.checkEvent(ctx, event); err != nil {
		return err
	}
	event.ID = uuid.NewString()
	event.UserID = user.ID
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return err
	}
	if s.announcer != nil {
		// One shot, never retried; a failed announcement must not fail the create.
		if err := s.announcer.AnnounceEventCreated(ctx, event); err != nil {
			log.Printf("announce event %s: %v", event.ID, err)
		}
	}
	return nil
}

func (s *EventService) UpdateEvent(ctx context.Context, user *entities.User, event *entities.Event) error {
	existing, err := s.eventRepo.FindByID(ctx, event.ID)
	if err != nil {
		return err
	}
	if !s.CanEdit(user, existing) {
		return domain.ErrForbidden
	}
	if err := s.checkEvent(ctx, event); err != nil {
		return err
	}
	event.UserID = existing.UserID
	return s.eventRepo.Update(ctx, event)
}

func (s *EventService) DeleteEvent(ctx context.Context, user *entities.User, id string) error {
	existing, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !s.CanEdit(user, existing) {
		return domain.ErrForbidden
	}
	return s.eventRepo.Delete(ctx, id)
}

// CanEdit applies the configured edit-permission policy.
func (s *EventService) CanEdit(user *entities.User, event *entities.Event) bool {
	if user == nil {
		return false
	}
	switch s.policy {
	case config.EditAnyAuthenticated:
		return user.Role == entities.RoleAdmin || user.Role == entities.RoleUser
	default:
		return user.IsAdmin() || event.UserID == user.ID
	}
}

// checkEvent re-validates the invariants the form already enforced. The API
// is reachable without the form, so the service does not trust the caller.
func (s *EventService) checkEvent(ctx context.Context, event *entities.Event) error {
	if strings.TrimSpace(event.Title) == "" {
		return fmt.Errorf("%w: título requerido", domain.ErrEventoInvalido)
	}
	if event.FechaInicio.IsZero() || event.FechaFin.IsZero() {
		return fmt.Errorf("%w: fechas requeridas", domain.ErrEventoInvalido)
	}
	if event.FechaFin.Before(event.FechaInicio) {
		return domain.ErrFechaFinBeforeInicio
	}
	if event.EstadoID <= 0 {
		return fmt.Errorf("%w: estado requerido", domain.ErrEventoInvalido)
	}
	estado, err := s.estadoRepo.FindByID(ctx, event.EstadoID)
	if err != nil {
		return err
	}
	event.Estado = estado.Nombre
	if event.HoraInicio == "" {
		event.AllDay = true
	}
	return nil
}
