package repository

import (
	"context"
	"time"

	"github.com/vytor/kanjiflash/internal/models"
)

// Get methods return sql.ErrNoRows when the row does not exist.

// SRSSystemRepository handles SRS system definitions
type SRSSystemRepository interface {
	List(ctx context.Context) ([]models.SRSSystem, error)
	Upsert(ctx context.Context, system models.SRSSystem) error
}

// SubjectRepository handles subject data access
type SubjectRepository interface {
	Get(ctx context.Context, id int64) (*models.Subject, error)
	List(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, error)
	Count(ctx context.Context, filter models.SubjectFilter) (int, error)
	UpsertBatch(ctx context.Context, subjects []models.Subject) error
}

// AssignmentRepository handles assignment data access
type AssignmentRepository interface {
	GetBySubject(ctx context.Context, subjectID int64) (*models.Assignment, error)
	List(ctx context.Context, filter models.AssignmentFilter) ([]models.Assignment, error)
	UpsertBatch(ctx context.Context, assignments []models.Assignment) error
	Update(ctx context.Context, a models.Assignment) error
	StartedTimestamps(ctx context.Context) ([]time.Time, error)
}

// ReviewRepository handles completed reviews
type ReviewRepository interface {
	Insert(ctx context.Context, r models.Review) (int64, error)
	ListForAssignment(ctx context.Context, assignmentID int64) ([]models.Review, error)
	UpdatedTimestamps(ctx context.Context) ([]time.Time, error)
}

// SettingsRepository stores user settings as key/value pairs
type SettingsRepository interface {
	All(ctx context.Context) (map[string]string, error)
	Set(ctx context.Context, values map[string]string) error
}

// StreakRepository persists the last computed streak. Load returns nil when
// nothing has been saved yet.
type StreakRepository interface {
	Load(ctx context.Context) (*models.Streak, error)
	Save(ctx context.Context, s models.Streak) error
}
