package models

import "time"

// Assignment is a user's progress on one subject.
// SRSStage is 0 before the lesson, 9 once burned; values above 9 are only
// used for displaying locked subjects.
type Assignment struct {
	ID          int64      `json:"id"`
	SubjectID   int64      `json:"subject_id"`
	SRSStage    int        `json:"srs_stage"`
	AvailableAt *time.Time `json:"available_at"`
	UnlockedAt  *time.Time `json:"unlocked_at"`
	StartedAt   *time.Time `json:"started_at"`
	Hidden      bool       `json:"hidden"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Started reports whether the lesson for this assignment has been taken.
func (a Assignment) Started() bool {
	return a.StartedAt != nil && !a.StartedAt.IsZero()
}

// AvailableBy reports whether the assignment can be reviewed at t.
func (a Assignment) AvailableBy(t time.Time) bool {
	return a.AvailableAt != nil && !a.AvailableAt.After(t)
}

type AssignmentFilter struct {
	SubjectIDs     []int64
	MinStage       *int
	MaxStage       *int
	AvailableUntil *time.Time
	IncludeHidden  bool
	Limit          int
}

// SubjectDetail is a subject with the user's progress on it. Assignment is
// nil for subjects that have not been unlocked.
type SubjectDetail struct {
	Subject    Subject     `json:"subject"`
	Assignment *Assignment `json:"assignment,omitempty"`
	StageName  string      `json:"stage_name"`
	Progress   float64     `json:"progress"`
	Overdue    bool        `json:"overdue"`
}
