package calendar

import (
	"sort"
	"strings"
	"time"

	"github.com/sfvc/calendario-nodo/internal/apiclient"
)

const dateLayout = "2006-01-02"

// DisplayEvent is an event shaped for direct rendering on the calendar grid:
// concrete start/end instants plus an explicit all-day flag.
type DisplayEvent struct {
	ID     string
	Title  string
	Start  time.Time
	End    time.Time
	AllDay bool
	Color  string

	// Record keeps the raw fields around for the detail view, the way the
	// old calendar stuffed everything into extendedProps.
	Record apiclient.Event
}

// Options carry the display corrections some revisions of the calendar
// applied. They reproduce observed behavior; they do not try to fix it.
type Options struct {
	// Location is the zone display instants are built in. Nil means Local.
	Location *time.Location

	// MidnightUTCShift corrects a timed start that was stored as an exact
	// midnight-UTC instant by pushing it forward a fixed number of hours.
	MidnightUTCShift time.Duration

	// ExtendMidnightEnd moves an end that lands exactly on midnight one day
	// forward so the event does not look like it finishes a day early.
	ExtendMidnightEnd bool
}

func (o Options) location() *time.Location {
	if o.Location != nil {
		return o.Location
	}
	return time.Local
}

// Normalize converts raw backend records into display events and sorts them
// for the grid: ascending by start date, tie-broken by time-of-day when the
// dates coincide.
//
// A record with no time component is all-day: its instants stay date-only
// (local midnight boundaries) and no synthetic time-of-day is introduced. A
// record with horas gets date and time combined into a local instant.
func Normalize(records []apiclient.Event, opts Options) []DisplayEvent {
	out := make([]DisplayEvent, 0, len(records))
	for i := range records {
		out = append(out, normalizeOne(&records[i], opts))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return sortKey(out[i]).Before(sortKey(out[j]))
	})
	return out
}

func normalizeOne(record *apiclient.Event, opts Options) DisplayEvent {
	loc := opts.location()
	startDay := parseFecha(record.FechaInicio, loc)
	endDay := parseFecha(record.FechaFin, loc)

	event := DisplayEvent{
		ID:     record.ID,
		Title:  record.Title,
		Color:  record.Color,
		Record: *record,
	}

	if record.AllDay || record.HoraInicio == "" {
		event.AllDay = true
		event.Start = startDay
		event.End = endDay
		return event
	}

	event.Start = combine(startDay, record.HoraInicio, loc)
	event.End = combine(endDay, record.HoraFin, loc)

	if opts.MidnightUTCShift != 0 && isMidnightUTC(record.FechaInicio) {
		event.Start = event.Start.Add(opts.MidnightUTCShift)
	}
	if opts.ExtendMidnightEnd && isMidnight(event.End) {
		event.End = event.End.AddDate(0, 0, 1)
	}
	return event
}

// sortKey is the combined (fecha, hora) instant; all-day events sort at the
// front of their day.
func sortKey(e DisplayEvent) time.Time {
	return e.Start
}

func parseFecha(value string, loc *time.Location) time.Time {
	value = strings.TrimSpace(value)
	if len(value) > len(dateLayout) {
		value = value[:len(dateLayout)]
	}
	t, err := time.ParseInLocation(dateLayout, value, loc)
	if err != nil {
		return time.Time{}
	}
	return t
}

func combine(day time.Time, hora string, loc *time.Location) time.Time {
	h, m, ok := parseHora(hora)
	if !ok {
		return day
	}
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, loc)
}

func parseHora(hora string) (hour, minute int, ok bool) {
	t, err := time.Parse("15:04", strings.TrimSpace(hora))
	if err != nil {
		return 0, 0, false
	}
	return t.Hour(), t.Minute(), true
}

// isMidnightUTC reports whether the stored fecha came in as an exact
// midnight-UTC instant ("...T00:00:00Z" and variants).
func isMidnightUTC(value string) bool {
	idx := strings.IndexByte(value, 'T')
	if idx < 0 {
		return false
	}
	rest := value[idx+1:]
	if !strings.HasPrefix(rest, "00:00:00") {
		return false
	}
	return strings.HasSuffix(rest, "Z")
}

func isMidnight(t time.Time) bool {
	return t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0
}
