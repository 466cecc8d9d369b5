package schedule

import (
	"time"

	"teamsched/internal/api"
)

// SlotsForWeekday filters slots to one weekday, preserving stored order.
// The result is a fresh slice; callers may reorder it.
func SlotsForWeekday(slots []api.Availability, weekday api.Weekday) []api.Availability {
	var out []api.Availability
	for _, s := range slots {
		if s.Weekday == weekday {
			out = append(out, s)
		}
	}
	return out
}

// SlotsForDate resolves a calendar date to its weekday's slots. The model
// is weekly-recurring: two dates sharing a weekday always show identical
// slots, there are no one-off exceptions or holiday overrides.
func SlotsForDate(slots []api.Availability, date time.Time) []api.Availability {
	return SlotsForWeekday(slots, WeekdayForDate(date))
}

// HasAvailability reports whether any slot falls on the date's weekday.
func HasAvailability(slots []api.Availability, date time.Time) bool {
	return len(SlotsForDate(slots, date)) > 0
}

// WeekDay is one row of the Monday-first week view around a selected date.
type WeekDay struct {
	Weekday api.Weekday
	Label   string
	Date    time.Time
	Slots   []api.Availability
	IsToday bool
}

// WeekView lays the slots over the calendar week containing selected.
func WeekView(slots []api.Availability, selected, now time.Time) []WeekDay {
	start := StartOfWeek(selected)
	week := make([]WeekDay, 0, len(Weekdays))
	for i, d := range Weekdays {
		date := start.AddDate(0, 0, i)
		week = append(week, WeekDay{
			Weekday: d.Key,
			Label:   d.Label,
			Date:    date,
			Slots:   SlotsForWeekday(slots, d.Key),
			IsToday: sameDay(date, now),
		})
	}
	return week
}
