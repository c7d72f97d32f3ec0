package entities

import "time"

// Event is an agenda entry as managed by the calendar. Fechas carry only the
// calendar day; the optional horas ("HH:MM") say whether the event is timed.
type Event struct {
	ID               string
	Title            string
	Description      string
	FechaInicio      time.Time
	FechaFin         time.Time
	HoraInicio       string // vacío = evento de día completo
	HoraFin          string
	AllDay           bool
	Color            string
	EstadoID         int
	Estado           string // nombre del estado, denormalizado para listados
	UserID           string
	Organizacion     string
	CantidadPersonas int
	EspacioUtilizar  string
	Requerimientos   string
	Cobertura        string
	Fotos            []string
	Archivos         []string
	Links            []string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsTimed reports whether the event carries a time-of-day component.
func (e *Event) IsTimed() bool {
	return e.HoraInicio != ""
}
