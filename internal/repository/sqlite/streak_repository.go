package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vytor/kanjiflash/internal/logger"
	"github.com/vytor/kanjiflash/internal/models"
	"github.com/vytor/kanjiflash/internal/repository"
)

type streakRepository struct {
	db *sql.DB
}

// NewStreakRepository creates a new StreakRepository implementation
func NewStreakRepository(db *sql.DB) repository.StreakRepository {
	return &streakRepository{db: db}
}

func (r *streakRepository) Load(ctx context.Context) (*models.Streak, error) {
	log := logger.FromContext(ctx).WithPrefix("streak_repo")

	var s models.Streak
	err := r.db.QueryRowContext(ctx, `
SELECT current, max, today_in_streak, computed_at FROM streak_snapshots WHERE id = 1
`).Scan(&s.Current, &s.Max, &s.TodayInStreak, &s.ComputedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no streak snapshot stored")
		return nil, nil
	}
	if err != nil {
		log.Error("failed to load streak snapshot: %v", err)
		return nil, err
	}
	return &s, nil
}

func (r *streakRepository) Save(ctx context.Context, s models.Streak) error {
	log := logger.FromContext(ctx).WithPrefix("streak_repo")
	log.Debug("saving streak snapshot: current=%d, max=%d", s.Current, s.Max)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO streak_snapshots (id, current, max, today_in_streak, computed_at)
VALUES (1, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    current = excluded.current,
    max = excluded.max,
    today_in_streak = excluded.today_in_streak,
    computed_at = excluded.computed_at
`, s.Current, s.Max, s.TodayInStreak, s.ComputedAt.UTC())
	if err != nil {
		log.Error("failed to save streak snapshot: %v", err)
	}
	return err
}
