package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
)

const eventsBasePath = "/events"

// Event is the backend event record as it comes off the wire.
type Event struct {
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
}

// Attachment is a freshly picked binary that has not been persisted yet.
type Attachment struct {
	Filename string
	Data     []byte
}

// EventPayload is what the form submits. Fotos/Archivos/Links hold already
// persisted URLs; NuevasFotos/NuevosArchivos hold pending binaries and force
// a multipart submission.
type EventPayload struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	FechaInicio      string   `json:"fechaInicio"`
	FechaFin         string   `json:"fechaFin"`
	HoraInicio       string   `json:"horaInicio,omitempty"`
	HoraFin          string   `json:"horaFin,omitempty"`
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

	NuevasFotos    []Attachment `json:"-"`
	NuevosArchivos []Attachment `json:"-"`
}

func (p *EventPayload) hasNewAttachments() bool {
	return len(p.NuevasFotos) > 0 || len(p.NuevosArchivos) > 0
}

// GetAllEvents lists every event.
func (c *Client) GetAllEvents(ctx context.Context) ([]Event, error) {
	var events []Event
	if err := c.getJSON(ctx, eventsBasePath, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// GetEventByID fetches one event.
func (c *Client) GetEventByID(ctx context.Context, id string) (*Event, error) {
	var event Event
	if err := c.getJSON(ctx, eventsBasePath+"/"+id, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// CreateEvent POSTs the payload, as multipart when new binaries are present.
func (c *Client) CreateEvent(ctx context.Context, payload *EventPayload) (*Event, error) {
	return c.submitEvent(ctx, http.MethodPost, eventsBasePath, payload)
}

// UpdateEvent PATCHes an existing event.
func (c *Client) UpdateEvent(ctx context.Context, id string, payload *EventPayload) (*Event, error) {
	return c.submitEvent(ctx, http.MethodPatch, eventsBasePath+"/"+id, payload)
}

// RemoveEvent DELETEs an event.
func (c *Client) RemoveEvent(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, eventsBasePath+"/"+id, nil, "", nil)
}

func (c *Client) submitEvent(ctx context.Context, method, path string, payload *EventPayload) (*Event, error) {
	var event Event
	if !payload.hasNewAttachments() {
		if err := c.sendJSON(ctx, method, path, payload, &event); err != nil {
			return nil, err
		}
		return &event, nil
	}

	body, contentType, err := encodeMultipartEvent(payload)
	if err != nil {
		return nil, err
	}
	if err := c.do(ctx, method, path, body, contentType, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// encodeMultipartEvent writes scalar fields as form values, pending binaries
// under repeated "fotos"/"archivos" keys and persisted URLs under the
// "*Existentes[]"/"links[]" keys.
func encodeMultipartEvent(payload *EventPayload) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fields := map[string]string{
		"title":            payload.Title,
		"description":      payload.Description,
		"fechaInicio":      payload.FechaInicio,
		"fechaFin":         payload.FechaFin,
		"horaInicio":       payload.HoraInicio,
		"horaFin":          payload.HoraFin,
		"allDay":           strconv.FormatBool(payload.AllDay),
		"color":            payload.Color,
		"estadoId":         strconv.Itoa(payload.EstadoID),
		"organizacion":     payload.Organizacion,
		"cantidadPersonas": strconv.Itoa(payload.CantidadPersonas),
		"espacioUtilizar":  payload.EspacioUtilizar,
		"requerimientos":   payload.Requerimientos,
		"cobertura":        payload.Cobertura,
	}
	for key, value := range fields {
		if err := mw.WriteField(key, value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", key, err)
		}
	}
	for _, url := range payload.Fotos {
		if err := mw.WriteField("fotosExistentes[]", url); err != nil {
			return nil, "", err
		}
	}
	for _, url := range payload.Archivos {
		if err := mw.WriteField("archivosExistentes[]", url); err != nil {
			return nil, "", err
		}
	}
	for _, url := range payload.Links {
		if err := mw.WriteField("links[]", url); err != nil {
			return nil, "", err
		}
	}
	for _, att := range payload.NuevasFotos {
		if err := writeAttachment(mw, "fotos", att); err != nil {
			return nil, "", err
		}
	}
	for _, att := range payload.NuevosArchivos {
		if err := writeAttachment(mw, "archivos", att); err != nil {
			return nil, "", err
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return &buf, mw.FormDataContentType(), nil
}

func writeAttachment(mw *multipart.Writer, field string, att Attachment) error {
	part, err := mw.CreateFormFile(field, att.Filename)
	if err != nil {
		return fmt.Errorf("create part %s: %w", field, err)
	}
	if _, err := part.Write(att.Data); err != nil {
		return fmt.Errorf("write part %s: %w", field, err)
	}
	return nil
}
