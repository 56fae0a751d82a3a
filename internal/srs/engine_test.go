package srs_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/kanjiflash/internal/models"
	"github.com/vytor/kanjiflash/internal/srs"
)

func interval(n int64) *int64 { return &n }

// standardSystem mirrors the default content API timing curve.
func standardSystem() models.SRSSystem {
	return models.SRSSystem{
		ID:   1,
		Name: "standard",
		Stages: []models.SRSStage{
			{},
			{Interval: interval(4), IntervalUnit: "hours"},
			{Interval: interval(8), IntervalUnit: "hours"},
			{Interval: interval(1), IntervalUnit: "days"},
			{Interval: interval(2), IntervalUnit: "days"},
			{Interval: interval(1), IntervalUnit: "weeks"},
			{Interval: interval(2), IntervalUnit: "weeks"},
			{Interval: interval(730), IntervalUnit: "hours"},
			{Interval: interval(2920), IntervalUnit: "hours"},
			{},
		},
	}
}

func unitSystem() models.SRSSystem {
	return models.SRSSystem{
		ID: 2,
		Stages: []models.SRSStage{
			{Interval: interval(1500), IntervalUnit: "milliseconds"},
			{Interval: interval(30), IntervalUnit: "seconds"},
			{Interval: interval(5), IntervalUnit: "minutes"},
			{Interval: interval(3), IntervalUnit: "fortnights"},
		},
	}
}

func TestStageDurationSeconds(t *testing.T) {
	e := srs.NewEngine(standardSystem(), unitSystem())

	assert.Equal(t, 0.0, e.StageDurationSeconds(1, 0))
	assert.Equal(t, 4*3600.0, e.StageDurationSeconds(1, 1))
	assert.Equal(t, 86400.0, e.StageDurationSeconds(1, 3))
	assert.Equal(t, 604800.0, e.StageDurationSeconds(1, 5))
	assert.Equal(t, 0.0, e.StageDurationSeconds(1, 9), "burned has no interval")

	assert.InDelta(t, 1.5, e.StageDurationSeconds(2, 0), 1e-9)
	assert.Equal(t, 30.0, e.StageDurationSeconds(2, 1))
	assert.Equal(t, 300.0, e.StageDurationSeconds(2, 2))
	assert.Equal(t, 0.0, e.StageDurationSeconds(2, 3), "unknown units have no interval")
}

func TestStageDurationSeconds_Unknown(t *testing.T) {
	e := srs.NewEngine(standardSystem())

	assert.Equal(t, 0.0, e.StageDurationSeconds(99, 1))
	assert.Equal(t, 0.0, e.StageDurationSeconds(1, 10))
	assert.Equal(t, 0.0, e.StageDurationSeconds(1, -1))
}

func TestEngine_LoadClearsCache(t *testing.T) {
	e := srs.NewEngine(standardSystem())
	require.Equal(t, 4*3600.0, e.StageDurationSeconds(1, 1))

	faster := standardSystem()
	faster.Stages[1] = models.SRSStage{Interval: interval(2), IntervalUnit: "hours"}
	e.Load([]models.SRSSystem{faster})

	assert.Equal(t, 2*3600.0, e.StageDurationSeconds(1, 1))
}

func TestEngine_IsolatedInstances(t *testing.T) {
	a := srs.NewEngine(standardSystem())
	b := srs.NewEngine()

	assert.Equal(t, 4*3600.0, a.StageDurationSeconds(1, 1))
	assert.Equal(t, 0.0, b.StageDurationSeconds(1, 1))
}

func TestNextAvailableAt(t *testing.T) {
	e := srs.NewEngine(standardSystem())
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	next := e.NextAvailableAt(1, 1, now)
	require.NotNil(t, next)
	assert.Equal(t, now.Add(4*time.Hour), *next)

	assert.Nil(t, e.NextAvailableAt(1, 9, now))
}

func TestOverdueThreshold(t *testing.T) {
	assert.Equal(t, 0.2, srs.OverdueThreshold(20))
	assert.Equal(t, 0.01, srs.OverdueThreshold(1))
	assert.Equal(t, 1.0, srs.OverdueThreshold(100))
	assert.Equal(t, 0.2, srs.OverdueThreshold(0))
	assert.Equal(t, 0.2, srs.OverdueThreshold(101))
	assert.Equal(t, 0.2, srs.OverdueThreshold(-5))
}

func TestIsOverdue(t *testing.T) {
	e := srs.NewEngine(standardSystem())
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	subject := &models.Subject{ID: 1, SRSSystemID: 1}

	// Stage 3 waits one day; 20% of that is 4.8 hours.
	availableAt := func(ago time.Duration) *time.Time {
		t := now.Add(-ago)
		return &t
	}

	tests := []struct {
		name       string
		subject    *models.Subject
		assignment *models.Assignment
		expected   bool
	}{
		{name: "missing assignment", subject: subject, assignment: nil, expected: false},
		{name: "hidden assignment", subject: subject, assignment: &models.Assignment{SRSStage: 0, Hidden: true}, expected: false},
		{name: "hidden subject", subject: &models.Subject{Hidden: true, SRSSystemID: 1}, assignment: &models.Assignment{SRSStage: 0}, expected: false},
		{name: "lesson always due", subject: subject, assignment: &models.Assignment{SRSStage: 0}, expected: true},
		{name: "negative stage always due", subject: subject, assignment: &models.Assignment{SRSStage: -1, AvailableAt: availableAt(-time.Hour)}, expected: true},
		{name: "burned never due", subject: subject, assignment: &models.Assignment{SRSStage: 9, AvailableAt: availableAt(1000 * time.Hour)}, expected: false},
		{name: "locked never due", subject: subject, assignment: &models.Assignment{SRSStage: 10, AvailableAt: availableAt(1000 * time.Hour)}, expected: false},
		{name: "not yet unlocked", subject: subject, assignment: &models.Assignment{SRSStage: 3}, expected: false},
		{name: "not yet available", subject: subject, assignment: &models.Assignment{SRSStage: 3, AvailableAt: availableAt(-time.Hour)}, expected: false},
		{name: "just available", subject: subject, assignment: &models.Assignment{SRSStage: 3, AvailableAt: availableAt(time.Hour)}, expected: false},
		{name: "past threshold", subject: subject, assignment: &models.Assignment{SRSStage: 3, AvailableAt: availableAt(5 * time.Hour)}, expected: true},
		{name: "exactly at threshold", subject: subject, assignment: &models.Assignment{SRSStage: 3, AvailableAt: availableAt(288 * time.Minute)}, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, e.IsOverdue(tt.subject, tt.assignment, 0.2, now))
		})
	}
}

func TestIsOverdue_InvalidThresholdFallsBack(t *testing.T) {
	e := srs.NewEngine(standardSystem())
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	subject := &models.Subject{SRSSystemID: 1}
	at := now.Add(-5 * time.Hour)
	a := &models.Assignment{SRSStage: 3, AvailableAt: &at}

	assert.True(t, e.IsOverdue(subject, a, 0, now))
	assert.True(t, e.IsOverdue(subject, a, 7, now))
	assert.False(t, e.IsOverdue(subject, a, 0.5, now))
}

func TestStageProgress(t *testing.T) {
	e := srs.NewEngine(standardSystem())
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) *time.Time {
		t := now.Add(d)
		return &t
	}

	assert.Equal(t, 1.0, e.StageProgress(1, 1, true, at(time.Hour), now))
	assert.Equal(t, 1.0, e.StageProgress(1, 1, false, nil, now))
	// Four hour stage with one hour left.
	assert.InDelta(t, 0.75, e.StageProgress(1, 1, false, at(time.Hour), now), 1e-9)
	assert.InDelta(t, 0.0, e.StageProgress(1, 1, false, at(4*time.Hour), now), 1e-9)
	// Interval changed since scheduling: progress goes negative.
	assert.InDelta(t, -1.0, e.StageProgress(1, 1, false, at(8*time.Hour), now), 1e-9)
	// Clock skew past the review time: progress exceeds 1.
	assert.InDelta(t, 1.25, e.StageProgress(1, 1, false, at(-time.Hour), now), 1e-9)
	assert.Equal(t, 1.0, e.StageProgress(1, 9, false, at(time.Hour), now))
}
