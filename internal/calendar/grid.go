package calendar

import "time"

// Day is one cell of the month grid.
type Day struct {
	Date    time.Time
	InMonth bool
	Today   bool
	Events  []DisplayEvent
}

// MonthGrid lays out a month as full weeks starting on Monday, padding with
// days from the neighboring months. Events are placed on every day they span.
func MonthGrid(year int, month time.Month, today time.Time, events []DisplayEvent) [][]Day {
	loc := today.Location()
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)

	// Rewind to the Monday on or before the 1st.
	start := first
	for start.Weekday() != time.Monday {
		start = start.AddDate(0, 0, -1)
	}

	var weeks [][]Day
	day := start
	for {
		week := make([]Day, 0, 7)
		for i := 0; i < 7; i++ {
			week = append(week, Day{
				Date:    day,
				InMonth: day.Month() == month,
				Today:   sameDay(day, today),
				Events:  eventsOn(day, events),
			})
			day = day.AddDate(0, 0, 1)
		}
		weeks = append(weeks, week)
		if day.Month() != month && day.After(first) {
			break
		}
	}
	return weeks
}

func eventsOn(day time.Time, events []DisplayEvent) []DisplayEvent {
	var out []DisplayEvent
	for _, e := range events {
		if spansDay(e, day) {
			out = append(out, e)
		}
	}
	return out
}

func spansDay(e DisplayEvent, day time.Time) bool {
	start := truncateDay(e.Start)
	end := truncateDay(e.End)
	if end.Before(start) {
		end = start
	}
	d := truncateDay(day)
	return !d.Before(start) && !d.After(end)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
