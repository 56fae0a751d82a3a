package models

import "time"

// Streak is the last computed consecutive-day study streak.
type Streak struct {
	Current       int       `json:"current"`
	Max           int       `json:"max"`
	TodayInStreak bool      `json:"today_in_streak"`
	ComputedAt    time.Time `json:"computed_at"`
}
