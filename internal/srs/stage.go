// Package srs computes stage transitions, stage intervals and overdue state
// for the spaced repetition system.
package srs

const (
	LessonStage     = 0
	FirstStage      = 1
	GuruStage       = 5
	BurnedStage     = 9
	MaxStage        = BurnedStage
	penaltyFromGuru = 2
)

var stageNames = [...]string{
	"Lesson",
	"Apprentice I",
	"Apprentice II",
	"Apprentice III",
	"Apprentice IV",
	"Guru I",
	"Guru II",
	"Master",
	"Enlightened",
	"Burned",
}

// StageName returns the display name of a stage. Stages past Burned are
// shown as Locked.
func StageName(stage int) string {
	if stage < 0 || stage >= len(stageNames) {
		return "Locked"
	}
	return stageNames[stage]
}

// NextStage returns the stage an item moves to after a review with the given
// number of incorrect answers. Correct reviews promote by one up to Burned.
// Misses demote by ceil(incorrect/2), doubled from Guru upwards, and never
// below the first Apprentice stage.
func NextStage(current, incorrect int) int {
	if incorrect <= 0 {
		return min(current+1, MaxStage)
	}

	penalty := 1
	if current >= GuruStage {
		penalty = penaltyFromGuru
	}
	adjustment := (incorrect + 1) / 2 * penalty
	return max(current-adjustment, FirstStage)
}
