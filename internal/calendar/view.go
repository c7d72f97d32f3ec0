package calendar

import (
	"context"

	"github.com/sfvc/calendario-nodo/internal/apiclient"
)

// Mode is the state of the calendar view.
type Mode int

const (
	// ModeIdle shows the grid with no form open.
	ModeIdle Mode = iota
	// ModeCreate shows the form for a new event on a selected date.
	ModeCreate
	// ModeEdit shows the form for an existing event.
	ModeEdit
)

// EventLister is the slice of the API client the view needs.
type EventLister interface {
	GetAllEvents(ctx context.Context) ([]apiclient.Event, error)
}

// View drives the calendar screen: it owns the loaded events and the
// idle/create/edit state, and reloads the whole list from the backend after a
// save instead of patching its local copy.
type View struct {
	api  EventLister
	opts Options

	mode         Mode
	selectedDate string
	selected     *apiclient.Event
	events       []DisplayEvent
}

func NewView(api EventLister, opts Options) *View {
	return &View{api: api, opts: opts}
}

// Load fetches the full event list and normalizes it for display.
func (v *View) Load(ctx context.Context) error {
	records, err := v.api.GetAllEvents(ctx)
	if err != nil {
		return err
	}
	v.events = Normalize(records, v.opts)
	return nil
}

// SelectDate opens the create form with the clicked date prefilled.
func (v *View) SelectDate(date string) {
	v.mode = ModeCreate
	v.selectedDate = date
	v.selected = nil
}

// SelectEvent opens the edit form for the clicked event. An unknown id is
// ignored and the view stays where it was.
func (v *View) SelectEvent(id string) {
	for i := range v.events {
		if v.events[i].ID == id {
			record := v.events[i].Record
			v.mode = ModeEdit
			v.selected = &record
			v.selectedDate = ""
			return
		}
	}
}

// Close dismisses the form. When the form was closed after a successful save
// the list is refetched from the backend, exactly once.
func (v *View) Close(ctx context.Context, saved bool) error {
	v.mode = ModeIdle
	v.selected = nil
	v.selectedDate = ""
	if !saved {
		return nil
	}
	return v.Load(ctx)
}

func (v *View) Mode() Mode { return v.mode }

func (v *View) SelectedDate() string { return v.selectedDate }

func (v *View) SelectedEvent() *apiclient.Event { return v.selected }

func (v *View) Events() []DisplayEvent { return v.events }
