// Package schedule turns weekly-recurring availability slots into the
// derived views the CLI renders: today's sessions, the next session per
// team, weekly hour totals and calendar week overviews. Everything here is
// a pure function of slots plus a clock reading; nothing is persisted.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"teamsched/internal/api"
)

// WeekdayInfo ties a wire weekday to its display label and to the
// time.Weekday index (Sunday=0). Weekdays is ordered Monday-first, the
// convention for all weekly views.
type WeekdayInfo struct {
	Key   api.Weekday
	Label string
	Index time.Weekday
}

var Weekdays = [7]WeekdayInfo{
	{api.Monday, "Monday", time.Monday},
	{api.Tuesday, "Tuesday", time.Tuesday},
	{api.Wednesday, "Wednesday", time.Wednesday},
	{api.Thursday, "Thursday", time.Thursday},
	{api.Friday, "Friday", time.Friday},
	{api.Saturday, "Saturday", time.Saturday},
	{api.Sunday, "Sunday", time.Sunday},
}

// WeekdayForDate maps a date to its wire weekday key.
func WeekdayForDate(t time.Time) api.Weekday {
	for _, d := range Weekdays {
		if d.Index == t.Weekday() {
			return d.Key
		}
	}
	return api.Monday // unreachable, time.Weekday is 0..6
}

// WeekdayLabel returns the display name for a weekday key, or the key
// itself if it is unknown.
func WeekdayLabel(w api.Weekday) string {
	for _, d := range Weekdays {
		if d.Key == w {
			return d.Label
		}
	}
	return string(w)
}

// TimeToMinutes parses "HH:MM" into minutes since midnight. No bounds
// clamping is performed; callers validate ranges before use.
func TimeToMinutes(s string) (int, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("parse time %q: missing colon", s)
	}
	hours, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("parse time %q: %w", s, err)
	}
	minutes, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("parse time %q: %w", s, err)
	}
	return hours*60 + minutes, nil
}

// MinutesToTime renders minutes since midnight as zero-padded "HH:MM".
// Values outside [0,1440) are not wrapped; the hour field simply runs out
// of range, so callers keep inputs in range by construction.
func MinutesToTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// minutesOfDay is the "now" side of slot comparisons.
func minutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// StartOfWeek returns midnight on the Monday of t's week.
func StartOfWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) - int(time.Monday) + 7) % 7
	return day.AddDate(0, 0, -offset)
}

// FormatSessionDate renders a session date relative to now: "Today",
// "Tomorrow", or "Jan 2".
func FormatSessionDate(date, now time.Time) string {
	switch {
	case sameDay(date, now):
		return "Today"
	case sameDay(date, now.AddDate(0, 0, 1)):
		return "Tomorrow"
	default:
		return date.Format("Jan 2")
	}
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
