package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vytor/kanjiflash/internal/logger"
	"github.com/vytor/kanjiflash/internal/streak"
)

// StreakTrigger schedules a streak recomputation.
type StreakTrigger interface {
	Trigger() *streak.Future
}

// Scheduler runs the periodic maintenance jobs.
type Scheduler struct {
	scheduler *gocron.Scheduler
	streak    StreakTrigger
	log       *logger.Logger
}

// New creates a scheduler on loc. The streak is refreshed daily so that a
// day without activity breaks it even when nothing else triggers a recompute.
func New(trigger StreakTrigger, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(loc),
		streak:    trigger,
		log:       logger.Default().WithPrefix("scheduler"),
	}
}

// Start registers the jobs and runs them in the background. refreshAt is a
// "15:04" time of day.
func (s *Scheduler) Start(refreshAt string) error {
	if _, err := s.scheduler.Every(1).Day().At(refreshAt).Do(s.refreshStreak); err != nil {
		return fmt.Errorf("schedule streak refresh at %q: %w", refreshAt, err)
	}
	s.scheduler.StartAsync()
	s.log.Info("scheduler started: streak refresh daily at %s", refreshAt)
	return nil
}

// Stop terminates all scheduled jobs.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	s.log.Info("scheduler stopped")
}

// NextRun returns when the streak refresh runs next.
func (s *Scheduler) NextRun() time.Time {
	_, next := s.scheduler.NextRun()
	return next
}

func (s *Scheduler) refreshStreak() {
	s.log.Debug("daily streak refresh")
	s.streak.Trigger()
}
