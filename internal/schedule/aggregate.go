package schedule

import (
	"sort"
	"time"

	"teamsched/internal/api"
)

// NextSession is the first upcoming slot occurrence for one team, resolved
// to a calendar date.
type NextSession struct {
	Weekday api.Weekday
	Date    time.Time
	Start   int // minutes since midnight
	End     int
	Time    string // formatted start, "HH:MM"
}

// TeamSchedule is the derived per-team view. It is recomputed on every
// load and never cached across runs.
type TeamSchedule struct {
	Team         api.Team
	Availability []api.Availability
	TotalHours   float64
	NextSession  *NextSession
}

// NewTeamSchedule derives hours and the next session for one team's slots.
func NewTeamSchedule(team api.Team, slots []api.Availability, now time.Time) TeamSchedule {
	return TeamSchedule{
		Team:         team,
		Availability: slots,
		TotalHours:   TotalHours(slots),
		NextSession:  FindNextSession(slots, now),
	}
}

// TotalHours sums slot durations in hours. Overlapping slots are not
// deduplicated.
func TotalHours(slots []api.Availability) float64 {
	var total float64
	for _, s := range slots {
		total += float64(s.EndTime-s.StartTime) / 60
	}
	return total
}

// FindNextSession scans up to 7 days ahead starting at now. On day zero
// only slots starting strictly after the current minute count; later days
// consider all slots, so a slot that already passed today resolves to the
// same weekday next week. Within a day the chronologically earliest slot
// wins (the web client took storage order here, which could return a later
// slot when a day held several; that was judged unintentional and is fixed
// by sorting).
func FindNextSession(slots []api.Availability, now time.Time) *NextSession {
	currentMinutes := minutesOfDay(now)

	for i := 0; i <= 7; i++ {
		checkDate := now.AddDate(0, 0, i)
		weekday := WeekdayForDate(checkDate)

		day := SlotsForWeekday(slots, weekday)
		sort.SliceStable(day, func(a, b int) bool { return day[a].StartTime < day[b].StartTime })

		for _, slot := range day {
			if i == 0 && slot.StartTime <= currentMinutes {
				continue
			}
			return &NextSession{
				Weekday: weekday,
				Date:    checkDate,
				Start:   slot.StartTime,
				End:     slot.EndTime,
				Time:    MinutesToTime(slot.StartTime),
			}
		}
	}
	return nil
}

// TodaySession is one cross-team entry in the today list.
type TodaySession struct {
	Team      string
	TeamID    string
	TimeRange string
	StartTime int
}

// UpcomingSession is one team's next session tagged with the team.
type UpcomingSession struct {
	NextSession
	Team   string
	TeamID string
}

// Overview aggregates every team's schedule into the dashboard numbers.
type Overview struct {
	Schedules        []TeamSchedule
	Today            []TodaySession
	Upcoming         []UpcomingSession
	TotalWeeklyHours float64
	ActiveTeams      int
}

const upcomingLimit = 5

// BuildOverview computes all derived views from already-loaded per-team
// schedules. Teams whose fetch failed arrive with empty availability and
// contribute zeros without disturbing the rest.
func BuildOverview(schedules []TeamSchedule, now time.Time) Overview {
	o := Overview{Schedules: schedules}

	today := WeekdayForDate(now)
	for _, ts := range schedules {
		o.TotalWeeklyHours += ts.TotalHours
		if len(ts.Availability) > 0 {
			o.ActiveTeams++
		}
		for _, slot := range ts.Availability {
			if slot.Weekday != today {
				continue
			}
			o.Today = append(o.Today, TodaySession{
				Team:      ts.Team.Name,
				TeamID:    ts.Team.ID,
				TimeRange: MinutesToTime(slot.StartTime) + " - " + MinutesToTime(slot.EndTime),
				StartTime: slot.StartTime,
			})
		}
		if ts.NextSession != nil {
			o.Upcoming = append(o.Upcoming, UpcomingSession{
				NextSession: *ts.NextSession,
				Team:        ts.Team.Name,
				TeamID:      ts.Team.ID,
			})
		}
	}

	// Today's list keeps past-today sessions on purpose; it answers "what
	// was scheduled today", not "what is still ahead".
	sort.SliceStable(o.Today, func(a, b int) bool {
		return o.Today[a].StartTime < o.Today[b].StartTime
	})

	sort.SliceStable(o.Upcoming, func(a, b int) bool {
		return o.Upcoming[a].Date.Before(o.Upcoming[b].Date)
	})
	if len(o.Upcoming) > upcomingLimit {
		o.Upcoming = o.Upcoming[:upcomingLimit]
	}

	return o
}
