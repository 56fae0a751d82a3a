package srs

import (
	"sync"
	"time"

	"github.com/vytor/kanjiflash/internal/models"
)

const DefaultOverdueThreshold = 0.2

var unitSeconds = map[string]float64{
	"milliseconds": 0.001,
	"seconds":      1,
	"minutes":      60,
	"hours":        3600,
	"days":         86400,
	"weeks":        604800,
}

type stageKey struct {
	systemID int64
	stage    int
}

// Engine answers interval questions against a set of SRS systems. Durations
// are cached per (system, stage); the cache is only cleared by Load since
// systems do not change once loaded.
type Engine struct {
	mu        sync.RWMutex
	systems   map[int64]models.SRSSystem
	durations map[stageKey]float64
}

// NewEngine creates an Engine over the given systems.
func NewEngine(systems ...models.SRSSystem) *Engine {
	e := &Engine{}
	e.Load(systems)
	return e
}

// Load replaces the known systems and drops cached durations.
func (e *Engine) Load(systems []models.SRSSystem) {
	byID := make(map[int64]models.SRSSystem, len(systems))
	for _, s := range systems {
		byID[s.ID] = s
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.systems = byID
	e.durations = make(map[stageKey]float64)
}

// System returns the system with the given id.
func (e *Engine) System(id int64) (models.SRSSystem, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	s, ok := e.systems[id]
	return s, ok
}

// StageDurationSeconds returns how long an item waits at stage before its
// next review. It is 0 for terminal stages and for unknown systems, stages
// or units.
func (e *Engine) StageDurationSeconds(systemID int64, stage int) float64 {
	key := stageKey{systemID: systemID, stage: stage}

	e.mu.RLock()
	d, ok := e.durations[key]
	e.mu.RUnlock()
	if ok {
		return d
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	d = stageDuration(e.systems[systemID], stage)
	e.durations[key] = d
	return d
}

func stageDuration(system models.SRSSystem, stage int) float64 {
	if stage < 0 || stage >= len(system.Stages) {
		return 0
	}
	s := system.Stages[stage]
	if s.Interval == nil {
		return 0
	}
	return float64(*s.Interval) * unitSeconds[s.IntervalUnit]
}

// StageDuration is StageDurationSeconds as a time.Duration.
func (e *Engine) StageDuration(systemID int64, stage int) time.Duration {
	return time.Duration(e.StageDurationSeconds(systemID, stage) * float64(time.Second))
}

// NextAvailableAt returns when an item that just reached stage becomes
// reviewable again, or nil when the stage has no further interval.
func (e *Engine) NextAvailableAt(systemID int64, stage int, now time.Time) *time.Time {
	d := e.StageDuration(systemID, stage)
	if d <= 0 {
		return nil
	}
	t := now.Add(d)
	return &t
}

// OverdueThreshold converts the configured percentage into a fraction of the
// stage interval. Values outside 1-100 fall back to the default.
func OverdueThreshold(percent int) float64 {
	if percent < 1 || percent > 100 {
		return DefaultOverdueThreshold
	}
	return float64(percent) / 100
}

// IsOverdue reports whether an assignment has waited past threshold (a
// fraction of its stage interval) since becoming available. Items that have
// never been reviewed are always due; burned items never are.
func (e *Engine) IsOverdue(subject *models.Subject, a *models.Assignment, threshold float64, now time.Time) bool {
	if a == nil || a.Hidden || (subject != nil && subject.Hidden) {
		return false
	}
	if a.SRSStage <= LessonStage {
		return true
	}
	if a.SRSStage >= BurnedStage {
		return false
	}
	if a.AvailableAt == nil {
		return false
	}
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultOverdueThreshold
	}

	var systemID int64
	if subject != nil {
		systemID = subject.SRSSystemID
	}
	interval := e.StageDurationSeconds(systemID, a.SRSStage)
	if interval <= 0 {
		return false
	}
	elapsed := now.Sub(*a.AvailableAt).Seconds()
	return elapsed/interval >= threshold
}

// StageProgress returns how far an item is through its current interval.
// It is 1 once the item is available or when the next review is unknown.
// The result is not clamped: a changed interval or clock skew can push it
// outside [0,1].
func (e *Engine) StageProgress(systemID int64, stage int, availableNow bool, nextReview *time.Time, now time.Time) float64 {
	if availableNow || nextReview == nil {
		return 1
	}
	duration := e.StageDurationSeconds(systemID, stage)
	if duration <= 0 {
		return 1
	}
	until := nextReview.Sub(now).Seconds()
	return 1 - until/duration
}
