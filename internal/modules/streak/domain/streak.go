package domain

import (
	"strings"
	"time"

	"stillpoint/internal/platform/clock"
)

// StreakData is the persisted singleton. CurrentStreak is zero exactly when
// LastSessionDate is empty.
type StreakData struct {
	CurrentStreak   int    `json:"currentStreak"`
	LastSessionDate string `json:"lastSessionDate"`
}

// Layouts accepted for LastSessionDate. Older releases stored a bare date or
// the browser's Date.toDateString form.
var legacyDateLayouts = []string{"2006-01-02", "Mon Jan 02 2006", "Mon Jan 2 2006"}

// Normalize restores the zero/empty pairing for inconsistent records.
func (d StreakData) Normalize() StreakData {
	if d.CurrentStreak <= 0 || strings.TrimSpace(d.LastSessionDate) == "" {
		return StreakData{}
	}
	return d
}

// LastDay returns the calendar day of LastSessionDate in loc.
func (d StreakData) LastDay(loc *time.Location) (time.Time, bool) {
	v := strings.TrimSpace(d.LastSessionDate)
	if v == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
		return clock.Day(t.In(loc)), true
	}
	for _, layout := range legacyDateLayouts {
		if t, err := time.ParseInLocation(layout, v, loc); err == nil {
			return clock.Day(t), true
		}
	}
	return time.Time{}, false
}

// Advance applies one completed session at now. Day boundaries are calendar
// days in now's location, not rolling 24h windows.
func Advance(prev StreakData, now time.Time) StreakData {
	prev = prev.Normalize()
	today := clock.Day(now)
	next := 1
	if last, ok := prev.LastDay(now.Location()); ok {
		switch {
		case last.Equal(today):
			next = prev.CurrentStreak
		case last.Equal(today.AddDate(0, 0, -1)):
			next = prev.CurrentStreak + 1
		}
	}
	return StreakData{CurrentStreak: next, LastSessionDate: now.Format(time.RFC3339)}
}

// Status describes the streak relative to now for display.
type Status struct {
	StreakData
	ActiveToday bool
	// AtRisk means the last session was yesterday; the streak ends tonight
	// unless another session completes today.
	AtRisk bool
	// Lapsed means the stored streak can no longer be extended.
	Lapsed bool
}

func Describe(d StreakData, now time.Time) Status {
	d = d.Normalize()
	status := Status{StreakData: d}
	last, ok := d.LastDay(now.Location())
	if !ok {
		return status
	}
	today := clock.Day(now)
	switch {
	case last.Equal(today):
		status.ActiveToday = true
	case last.Equal(today.AddDate(0, 0, -1)):
		status.AtRisk = true
	case last.Before(today):
		status.Lapsed = true
	}
	return status
}
