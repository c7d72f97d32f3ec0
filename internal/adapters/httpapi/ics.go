package httpapi

import (
	"net/http"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/sfvc/calendario-nodo/internal/ports/input"
)

// HandleEventsICS serves GET /events.ics, an iCalendar feed of every event so
// the agenda can be subscribed to from external calendar apps.
func HandleEventsICS(svc input.EventUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		events, err := svc.ListEvents(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}

		cal := ics.NewCalendar()
		cal.SetMethod(ics.MethodPublish)
		cal.SetProductId("-//calendario-nodo//ES")

		for i := range events {
			event := &events[i]
			entry := cal.AddEvent(event.ID)
			entry.SetSummary(event.Title)
			if event.Description != "" {
				entry.SetDescription(event.Description)
			}
			if event.EspacioUtilizar != "" {
				entry.SetLocation(event.EspacioUtilizar)
			}
			entry.SetDtStampTime(event.UpdatedAt)

			if event.IsTimed() {
				entry.SetStartAt(combineFechaHora(event.FechaInicio, event.HoraInicio))
				entry.SetEndAt(combineFechaHora(event.FechaFin, event.HoraFin))
			} else {
				// All-day events span whole days; DTEND is exclusive in iCalendar.
				entry.SetAllDayStartAt(event.FechaInicio)
				entry.SetAllDayEndAt(event.FechaFin.AddDate(0, 0, 1))
			}
		}

		w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
		_ = cal.SerializeTo(w)
	}
}

func combineFechaHora(fecha time.Time, hora string) time.Time {
	t, err := time.Parse("15:04", hora)
	if err != nil {
		return fecha
	}
	return time.Date(fecha.Year(), fecha.Month(), fecha.Day(), t.Hour(), t.Minute(), 0, 0, time.Local)
}
