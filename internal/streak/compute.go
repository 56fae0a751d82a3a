// Package streak rebuilds the consecutive-day study streak from activity
// timestamps.
package streak

import (
	"slices"
	"time"

	"github.com/vytor/kanjiflash/internal/models"
)

// dayNumber counts calendar days since the Unix epoch for the local date of
// t, so that DST shifts never turn one day into 23 or 25 hours.
func dayNumber(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}

// isSentinel reports whether t is a placeholder for an event that has not
// happened.
func isSentinel(t time.Time) bool {
	return t.IsZero() || t.Unix() == 0
}

// Compute derives the streak from every activity timestamp, reckoning days in
// now's location. The current streak is the last run of consecutive days if
// that run reaches today or yesterday, otherwise zero.
func Compute(timestamps []time.Time, now time.Time) models.Streak {
	loc := now.Location()
	seen := make(map[int64]struct{}, len(timestamps))
	for _, ts := range timestamps {
		if isSentinel(ts) {
			continue
		}
		seen[dayNumber(ts.In(loc))] = struct{}{}
	}

	days := make([]int64, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	slices.Sort(days)

	result := models.Streak{ComputedAt: now}
	if len(days) == 0 {
		return result
	}

	today := dayNumber(now)
	runs := []int{1}
	for i := 1; i < len(days); i++ {
		switch days[i] - days[i-1] {
		case 0:
		case 1:
			runs[len(runs)-1]++
		default:
			runs = append(runs, 1)
		}
	}

	result.Max = slices.Max(runs)
	last := days[len(days)-1]
	if last == today || last == today-1 {
		result.Current = runs[len(runs)-1]
	}
	result.TodayInStreak = last == today
	return result
}
