package api

import (
	"context"

	"github.com/vytor/kanjiflash/internal/jobs"
	"github.com/vytor/kanjiflash/internal/services"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	DB              Pinger
	SubjectService  services.SubjectService
	ReviewService   services.ReviewService
	SettingsService services.SettingsService
	StreakService   services.StreakService
	PitchService    services.PitchService
	JobQueue        jobs.JobQueue
}
