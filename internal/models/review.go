package models

import "time"

type Review struct {
	ID                      int64     `json:"id"`
	AssignmentID            int64     `json:"assignment_id"`
	SubjectID               int64     `json:"subject_id"`
	StartingStage           int       `json:"starting_srs_stage"`
	EndingStage             int       `json:"ending_srs_stage"`
	IncorrectMeaningAnswers int       `json:"incorrect_meaning_answers"`
	IncorrectReadingAnswers int       `json:"incorrect_reading_answers"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}

// IncorrectAnswers is the total used by stage transitions.
func (r Review) IncorrectAnswers() int {
	return r.IncorrectMeaningAnswers + r.IncorrectReadingAnswers
}
