package httpapi

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sfvc/calendario-nodo/internal/domain/entities"
)

const dateLayout = "2006-01-02"

type eventRequest struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	FechaInicio      string   `json:"fechaInicio"`
	FechaFin         string   `json:"fechaFin"`
	HoraInicio       string   `json:"horaInicio"`
	HoraFin          string   `json:"horaFin"`
	AllDay           bool     `json:"allDay"`
	Color            string   `json:"color"`
	EstadoID         int      `json:"estadoId"`
	Organizacion     string   `json:"organizacion"`
	CantidadPersonas int      `json:"cantidadPersonas"`
	EspacioUtilizar  string   `json:"espacioUtilizar"`
	Requerimientos   string   `json:"requerimientos"`
	Cobertura        string   `json:"cobertura"`
	Fotos            []string `json:"fotos"`
	Archivos         []string `json:"archivos"`
	Links            []string `json:"links"`
}

// toEntity converts the wire representation into a domain event. Fechas come
// as YYYY-MM-DD; older clients sent full ISO instants, so the date part is
// taken when a longer string parses.
func (r eventRequest) toEntity() (*entities.Event, error) {
	inicio, err := parseFecha(r.FechaInicio)
	if err != nil {
		return nil, fmt.Errorf("fechaInicio: %w", err)
	}
	fin, err := parseFecha(r.FechaFin)
	if err != nil {
		return nil, fmt.Errorf("fechaFin: %w", err)
	}
	return &entities.Event{
		Title:            strings.TrimSpace(r.Title),
		Description:      r.Description,
		FechaInicio:      inicio,
		FechaFin:         fin,
		HoraInicio:       r.HoraInicio,
		HoraFin:          r.HoraFin,
		AllDay:           r.AllDay || r.HoraInicio == "",
		Color:            r.Color,
		EstadoID:         r.EstadoID,
		Organizacion:     strings.TrimSpace(r.Organizacion),
		CantidadPersonas: r.CantidadPersonas,
		EspacioUtilizar:  strings.TrimSpace(r.EspacioUtilizar),
		Requerimientos:   r.Requerimientos,
		Cobertura:        r.Cobertura,
		Fotos:            r.Fotos,
		Archivos:         r.Archivos,
		Links:            r.Links,
	}, nil
}

func parseFecha(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if len(value) > len(dateLayout) {
		value = value[:len(dateLayout)]
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha inválida (%q)", value)
	}
	return t, nil
}

type eventResponse struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	FechaInicio      string   `json:"fechaInicio"`
	FechaFin         string   `json:"fechaFin"`
	HoraInicio       string   `json:"horaInicio,omitempty"`
	HoraFin          string   `json:"horaFin,omitempty"`
	AllDay           bool     `json:"allDay"`
	Color            string   `json:"color"`
	EstadoID         int      `json:"estadoId"`
	Estado           string   `json:"estado"`
	UserID           string   `json:"userId"`
	Organizacion     string   `json:"organizacion"`
	CantidadPersonas int      `json:"cantidadPersonas"`
	EspacioUtilizar  string   `json:"espacioUtilizar"`
	Requerimientos   string   `json:"requerimientos"`
	Cobertura        string   `json:"cobertura"`
	Fotos            []string `json:"fotos"`
	Archivos         []string `json:"archivos"`
	Links            []string `json:"links"`
	CreatedAt        string   `json:"createdAt"`
	UpdatedAt        string   `json:"updatedAt"`
}

func toEventResponse(e *entities.Event) eventResponse {
	return eventResponse{
		ID:               e.ID,
		Title:            e.Title,
		Description:      e.Description,
		FechaInicio:      e.FechaInicio.Format(dateLayout),
		FechaFin:         e.FechaFin.Format(dateLayout),
		HoraInicio:       e.HoraInicio,
		HoraFin:          e.HoraFin,
		AllDay:           e.AllDay,
		Color:            e.Color,
		EstadoID:         e.EstadoID,
		Estado:           e.Estado,
		UserID:           e.UserID,
		Organizacion:     e.Organizacion,
		CantidadPersonas: e.CantidadPersonas,
		EspacioUtilizar:  e.EspacioUtilizar,
		Requerimientos:   e.Requerimientos,
		Cobertura:        e.Cobertura,
		Fotos:            emptyIfNil(e.Fotos),
		Archivos:         emptyIfNil(e.Archivos),
		Links:            emptyIfNil(e.Links),
		CreatedAt:        e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        e.UpdatedAt.Format(time.RFC3339),
	}
}

func emptyIfNil(xs []string) []string {
	if xs == nil {
		return []string{}
	}
	return xs
}

type estadoResponse struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func toUserResponse(u *entities.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, Role: string(u.Role)}
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
