package services

import (
	"time"
)

// calendarDay truncates a timestamp to its UTC calendar date.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// advanceStreak computes the consecutive-day streak after playing on now.
// A first-ever play or a gap of two or more days (including clock skew
// backwards) resets the streak to 1; the day after lastActive extends it;
// a second play on the same day leaves it untouched.
func advanceStreak(streak int, lastActive *time.Time, now time.Time) (int, time.Time) {
	today := calendarDay(now)
	if lastActive == nil {
		return 1, today
	}

	switch calendarDay(*lastActive) {
	case today:
		return streak, today
	case today.AddDate(0, 0, -1):
		return streak + 1, today
	default:
		return 1, today
	}
}
