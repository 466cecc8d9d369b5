package schedule

import (
	"testing"
	"time"

	"teamsched/internal/api"
)

func TestSlotsForWeekdayPreservesOrder(t *testing.T) {
	slots := []api.Availability{
		slot(api.Wednesday, 1200, 1260),
		slot(api.Monday, 540, 600),
		slot(api.Wednesday, 300, 360),
	}

	got := SlotsForWeekday(slots, api.Wednesday)
	if len(got) != 2 {
		t.Fatalf("got %d slots, want 2", len(got))
	}
	if got[0].StartTime != 1200 || got[1].StartTime != 300 {
		t.Errorf("order = %d,%d, want stored order 1200,300", got[0].StartTime, got[1].StartTime)
	}

	if got := SlotsForWeekday(slots, api.Sunday); len(got) != 0 {
		t.Errorf("SUN slots = %d, want 0", len(got))
	}
}

func TestSlotsRecurWeekly(t *testing.T) {
	slots := []api.Availability{slot(api.Wednesday, 1020, 1140)}

	a := time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)
	b := a.AddDate(0, 0, 21) // another Wednesday

	sa := SlotsForDate(slots, a)
	sb := SlotsForDate(slots, b)
	if len(sa) != 1 || len(sb) != 1 || sa[0].ID != sb[0].ID {
		t.Errorf("dates sharing a weekday must show identical slots: %v vs %v", sa, sb)
	}
}

func TestHasAvailability(t *testing.T) {
	slots := []api.Availability{slot(api.Wednesday, 1020, 1140)}

	wednesday := time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)
	thursday := wednesday.AddDate(0, 0, 1)

	if !HasAvailability(slots, wednesday) {
		t.Error("expected availability on Wednesday")
	}
	if HasAvailability(slots, thursday) {
		t.Error("expected no availability on Thursday")
	}
}

func TestWeekView(t *testing.T) {
	slots := []api.Availability{
		slot(api.Monday, 540, 600),
		slot(api.Sunday, 1200, 1260),
	}
	now := time.Date(2025, 6, 4, 12, 0, 0, 0, time.UTC) // Wednesday
	week := WeekView(slots, now, now)

	if len(week) != 7 {
		t.Fatalf("week has %d days, want 7", len(week))
	}
	if week[0].Weekday != api.Monday || week[6].Weekday != api.Sunday {
		t.Errorf("week runs %s..%s, want MON..SUN", week[0].Weekday, week[6].Weekday)
	}
	if week[0].Date.Format("2006-01-02") != "2025-06-02" {
		t.Errorf("monday date = %s, want 2025-06-02", week[0].Date.Format("2006-01-02"))
	}
	if len(week[0].Slots) != 1 || len(week[6].Slots) != 1 {
		t.Errorf("slot placement wrong: mon=%d sun=%d, want 1 each", len(week[0].Slots), len(week[6].Slots))
	}
	for i, d := range week {
		wantToday := d.Weekday == api.Wednesday
		if d.IsToday != wantToday {
			t.Errorf("day %d (%s) IsToday = %v, want %v", i, d.Weekday, d.IsToday, wantToday)
		}
	}
}

func TestWeekViewOtherWeekHasNoToday(t *testing.T) {
	now := time.Date(2025, 6, 4, 12, 0, 0, 0, time.UTC)
	selected := now.AddDate(0, 0, 14)
	for _, d := range WeekView(nil, selected, now) {
		if d.IsToday {
			t.Errorf("%s marked today in a different week", d.Weekday)
		}
	}
}
