package calendar

import (
	"testing"
	"time"

	"github.com/sfvc/calendario-nodo/internal/apiclient"
)

func TestNormalizeOrdenaPorFechaYHora(t *testing.T) {
	t.Parallel()

	records := []apiclient.Event{
		{ID: "c", FechaInicio: "2026-03-10", FechaFin: "2026-03-10", HoraInicio: "14:00", HoraFin: "15:00"},
		{ID: "a", FechaInicio: "2026-03-09", FechaFin: "2026-03-09", AllDay: true},
		{ID: "b", FechaInicio: "2026-03-10", FechaFin: "2026-03-10", HoraInicio: "09:30", HoraFin: "10:00"},
		{ID: "d", FechaInicio: "2026-03-10", FechaFin: "2026-03-10", AllDay: true},
	}

	got := Normalize(records, Options{Location: time.UTC})

	want := []string{"a", "d", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, quería %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("posición %d: ID = %q, quería %q", i, got[i].ID, id)
		}
	}
}

func TestNormalizeDiaCompletoSinHoraSintetica(t *testing.T) {
	t.Parallel()

	records := []apiclient.Event{
		{ID: "1", FechaInicio: "2026-05-02", FechaFin: "2026-05-03", AllDay: true},
		{ID: "2", FechaInicio: "2026-05-02", FechaFin: "2026-05-02"}, // sin hora: también día completo
	}

	got := Normalize(records, Options{Location: time.UTC})

	for _, e := range got {
		if !e.AllDay {
			t.Errorf("evento %s: AllDay = false, quería true", e.ID)
		}
		if h, m, s := e.Start.Clock(); h != 0 || m != 0 || s != 0 {
			t.Errorf("evento %s: Start tiene hora %02d:%02d:%02d, quería solo fecha", e.ID, h, m, s)
		}
	}
	if got[0].End.Format("2006-01-02") != "2026-05-03" {
		t.Errorf("End = %s, quería 2026-05-03", got[0].End.Format("2006-01-02"))
	}
}

func TestNormalizeCombinaFechaYHoraLocal(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("ART", -3*3600)
	records := []apiclient.Event{
		{ID: "1", FechaInicio: "2026-05-02", FechaFin: "2026-05-02", HoraInicio: "09:30", HoraFin: "11:00"},
	}

	got := Normalize(records, Options{Location: loc})

	want := time.Date(2026, time.May, 2, 9, 30, 0, 0, loc)
	if !got[0].Start.Equal(want) {
		t.Errorf("Start = %v, quería %v", got[0].Start, want)
	}
	if got[0].AllDay {
		t.Error("AllDay = true para un evento con hora")
	}
	if got[0].End.Hour() != 11 {
		t.Errorf("End.Hour() = %d, quería 11", got[0].End.Hour())
	}
}

func TestNormalizeCorrigeMedianocheUTC(t *testing.T) {
	t.Parallel()

	records := []apiclient.Event{
		{ID: "1", FechaInicio: "2026-05-02T00:00:00Z", FechaFin: "2026-05-02", HoraInicio: "00:00", HoraFin: "02:00"},
	}

	got := Normalize(records, Options{Location: time.UTC, MidnightUTCShift: 3 * time.Hour})

	if got[0].Start.Hour() != 3 {
		t.Errorf("Start.Hour() = %d, quería 3 (corrimiento aplicado)", got[0].Start.Hour())
	}

	// Sin la opción el instante queda como vino.
	plain := Normalize(records, Options{Location: time.UTC})
	if plain[0].Start.Hour() != 0 {
		t.Errorf("sin opción: Start.Hour() = %d, quería 0", plain[0].Start.Hour())
	}
}

func TestNormalizeExtiendeFinEnMedianoche(t *testing.T) {
	t.Parallel()

	records := []apiclient.Event{
		{ID: "1", FechaInicio: "2026-05-02", FechaFin: "2026-05-03", HoraInicio: "22:00", HoraFin: "00:00"},
	}

	got := Normalize(records, Options{Location: time.UTC, ExtendMidnightEnd: true})

	if got[0].End.Day() != 4 {
		t.Errorf("End.Day() = %d, quería 4 (fin en medianoche extendido un día)", got[0].End.Day())
	}

	plain := Normalize(records, Options{Location: time.UTC})
	if plain[0].End.Day() != 3 {
		t.Errorf("sin opción: End.Day() = %d, quería 3", plain[0].End.Day())
	}
}

func TestMonthGridUbicaEventosEnSusDias(t *testing.T) {
	t.Parallel()

	today := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	events := Normalize([]apiclient.Event{
		{ID: "multi", FechaInicio: "2026-03-10", FechaFin: "2026-03-12", AllDay: true},
	}, Options{Location: time.UTC})

	weeks := MonthGrid(2026, time.March, today, events)

	if weeks[0][0].Date.Weekday() != time.Monday {
		t.Fatalf("la grilla no arranca en lunes: %v", weeks[0][0].Date.Weekday())
	}

	count := 0
	for _, week := range weeks {
		for _, day := range week {
			for _, e := range day.Events {
				if e.ID == "multi" {
					count++
				}
			}
			if day.Date.Day() == 15 && day.Date.Month() == time.March && !day.Today {
				t.Error("el 15 de marzo no está marcado como hoy")
			}
		}
	}
	if count != 3 {
		t.Errorf("el evento aparece en %d días, quería 3", count)
	}
}
