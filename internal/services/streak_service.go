package services

import (
	"context"
	"time"

	"github.com/vytor/kanjiflash/internal/errors"
	"github.com/vytor/kanjiflash/internal/logger"
	"github.com/vytor/kanjiflash/internal/models"
	"github.com/vytor/kanjiflash/internal/repository"
	"github.com/vytor/kanjiflash/internal/streak"
)

// activitySource merges review updates and lesson starts into the streak
// calculator's activity feed.
type activitySource struct {
	reviews     repository.ReviewRepository
	assignments repository.AssignmentRepository
}

// NewActivitySource creates a streak.ActivitySource backed by the stores.
func NewActivitySource(reviews repository.ReviewRepository, assignments repository.AssignmentRepository) streak.ActivitySource {
	return &activitySource{reviews: reviews, assignments: assignments}
}

func (a *activitySource) ActivityTimestamps(ctx context.Context) ([]time.Time, error) {
	reviewed, err := a.reviews.UpdatedTimestamps(ctx)
	if err != nil {
		return nil, err
	}
	started, err := a.assignments.StartedTimestamps(ctx)
	if err != nil {
		return nil, err
	}
	return append(reviewed, started...), nil
}

// StreakCalculator is the part of streak.Calculator the service drives.
type StreakCalculator interface {
	StreakTrigger
	Current() models.Streak
}

// StreakService exposes the study streak
type StreakService interface {
	Current(ctx context.Context) models.Streak
	Refresh(ctx context.Context) (models.Streak, error)
}

type streakService struct {
	calc StreakCalculator
}

// NewStreakService creates a new StreakService
func NewStreakService(calc StreakCalculator) StreakService {
	return &streakService{calc: calc}
}

func (s *streakService) Current(ctx context.Context) models.Streak {
	return s.calc.Current()
}

// Refresh schedules a recomputation and waits for it.
func (s *streakService) Refresh(ctx context.Context) (models.Streak, error) {
	log := logger.FromContext(ctx)

	result, err := s.calc.Trigger().Wait(ctx)
	if err != nil {
		log.Warn("streak refresh did not complete: %v", err)
		return s.calc.Current(), errors.NewInternalError(err)
	}
	return result, nil
}
