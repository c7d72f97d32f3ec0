package forms

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sfvc/calendario-nodo/internal/apiclient"
)

// EventForm holds the raw values of the event form, everything still as
// strings the way they arrive from the browser.
type EventForm struct {
	Title            string
	Description      string
	FechaInicio      string
	FechaFin         string
	HoraInicio       string
	HoraFin          string
	Color            string
	EstadoID         string
	Organizacion     string
	CantidadPersonas string
	EspacioUtilizar  string
	Requerimientos   string
	Cobertura        string
	UserID           string

	Links              []string
	FotosExistentes    []string
	ArchivosExistentes []string
	NuevasFotos        []apiclient.Attachment
	NuevosArchivos     []apiclient.Attachment
}

// Errors maps a field name to its validation message.
type Errors map[string]string

func (e Errors) Valid() bool { return len(e) == 0 }

var (
	colorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	horaRe  = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
)

const maxTitleLen = 100

// Validate applies the form rules and returns a message per offending field.
func (f *EventForm) Validate() Errors {
	errs := Errors{}

	title := strings.TrimSpace(f.Title)
	switch {
	case title == "":
		errs["title"] = "El título es obligatorio"
	case len([]rune(title)) > maxTitleLen:
		errs["title"] = "El título no puede superar los 100 caracteres"
	}

	inicio, okInicio := parseFecha(f.FechaInicio)
	if !okInicio {
		errs["fechaInicio"] = "La fecha de inicio no es válida"
	}
	fin, okFin := parseFecha(f.FechaFin)
	if !okFin {
		errs["fechaFin"] = "La fecha de fin no es válida"
	}
	if okInicio && okFin && fin.Before(inicio) {
		errs["fechaFin"] = "La fecha de fin debe ser igual o posterior a la de inicio"
	}

	if f.HoraInicio != "" && !horaRe.MatchString(f.HoraInicio) {
		errs["horaInicio"] = "La hora de inicio debe tener formato HH:MM"
	}
	if f.HoraFin != "" && !horaRe.MatchString(f.HoraFin) {
		errs["horaFin"] = "La hora de fin debe tener formato HH:MM"
	}
	if f.HoraInicio != "" && f.HoraFin != "" &&
		errs["horaInicio"] == "" && errs["horaFin"] == "" &&
		okInicio && okFin && inicio.Equal(fin) && f.HoraFin <= f.HoraInicio {
		errs["horaFin"] = "La hora de fin debe ser posterior a la de inicio"
	}

	if f.Color != "" && !colorRe.MatchString(f.Color) {
		errs["color"] = "El color debe ser hexadecimal (#RRGGBB)"
	}

	if id, err := strconv.Atoi(f.EstadoID); err != nil || id <= 0 {
		errs["estadoId"] = "Debe seleccionar un estado"
	}

	if strings.TrimSpace(f.Organizacion) == "" {
		errs["organizacion"] = "La organización es obligatoria"
	}

	if n, err := strconv.Atoi(f.CantidadPersonas); err != nil || n < 1 || n > 1000 {
		errs["cantidadPersonas"] = "La cantidad de personas debe estar entre 1 y 1000"
	}

	if strings.TrimSpace(f.EspacioUtilizar) == "" {
		errs["espacioUtilizar"] = "El espacio a utilizar es obligatorio"
	}

	if strings.TrimSpace(f.UserID) == "" {
		errs["userId"] = "Falta el usuario"
	}

	return errs
}

// Payload assembles the API payload from an already validated form.
func (f *EventForm) Payload() apiclient.EventPayload {
	estadoID, _ := strconv.Atoi(f.EstadoID)
	cantidad, _ := strconv.Atoi(f.CantidadPersonas)
	return apiclient.EventPayload{
		Title:            strings.TrimSpace(f.Title),
		Description:      strings.TrimSpace(f.Description),
		FechaInicio:      f.FechaInicio,
		FechaFin:         f.FechaFin,
		HoraInicio:       f.HoraInicio,
		HoraFin:          f.HoraFin,
		AllDay:           f.HoraInicio == "",
		Color:            f.Color,
		EstadoID:         estadoID,
		Organizacion:     strings.TrimSpace(f.Organizacion),
		CantidadPersonas: cantidad,
		EspacioUtilizar:  strings.TrimSpace(f.EspacioUtilizar),
		Requerimientos:   strings.TrimSpace(f.Requerimientos),
		Cobertura:        strings.TrimSpace(f.Cobertura),
		Fotos:            f.FotosExistentes,
		Archivos:         f.ArchivosExistentes,
		Links:            f.Links,
		NuevasFotos:      f.NuevasFotos,
		NuevosArchivos:   f.NuevosArchivos,
	}
}

func parseFecha(value string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
