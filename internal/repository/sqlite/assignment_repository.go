package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/kanjiflash/internal/logger"
	"github.com/vytor/kanjiflash/internal/models"
	"github.com/vytor/kanjiflash/internal/repository"
)

var assignmentColumns = []string{
	"id", "subject_id", "srs_stage", "available_at", "unlocked_at", "started_at", "hidden", "updated_at",
}

type assignmentRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewAssignmentRepository creates a new AssignmentRepository implementation
func NewAssignmentRepository(db *sql.DB) repository.AssignmentRepository {
	return &assignmentRepository{db: db, now: time.Now}
}

func scanAssignment(row rowScanner) (models.Assignment, error) {
	var (
		a                               models.Assignment
		availableAt, unlockedAt, started sql.NullTime
	)
	err := row.Scan(&a.ID, &a.SubjectID, &a.SRSStage, &availableAt, &unlockedAt, &started, &a.Hidden, &a.UpdatedAt)
	a.AvailableAt = timePtr(availableAt)
	a.UnlockedAt = timePtr(unlockedAt)
	a.StartedAt = timePtr(started)
	return a, err
}

func (r *assignmentRepository) GetBySubject(ctx context.Context, subjectID int64) (*models.Assignment, error) {
	log := logger.FromContext(ctx).WithPrefix("assignment_repo")
	log.Debug("getting assignment: subject_id=%d", subjectID)

	stmt, args, err := sqlBuilder.Select(assignmentColumns...).From("assignments").
		Where(squirrel.Eq{"subject_id": subjectID}).ToSql()
	if err != nil {
		return nil, err
	}

	a, err := scanAssignment(r.db.QueryRowContext(ctx, stmt, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("assignment not found: subject_id=%d", subjectID)
		} else {
			log.Error("failed to get assignment: %v", err)
		}
		return nil, err
	}
	return &a, nil
}

func (r *assignmentRepository) List(ctx context.Context, filter models.AssignmentFilter) ([]models.Assignment, error) {
	log := logger.FromContext(ctx).WithPrefix("assignment_repo")
	log.Debug("listing assignments: subjects=%d, include_hidden=%t", len(filter.SubjectIDs), filter.IncludeHidden)

	query := sqlBuilder.Select(assignmentColumns...).From("assignments")
	if len(filter.SubjectIDs) > 0 {
		query = query.Where(squirrel.Eq{"subject_id": filter.SubjectIDs})
	}
	if filter.MinStage != nil {
		query = query.Where(squirrel.GtOrEq{"srs_stage": *filter.MinStage})
	}
	if filter.MaxStage != nil {
		query = query.Where(squirrel.LtOrEq{"srs_stage": *filter.MaxStage})
	}
	if filter.AvailableUntil != nil {
		query = query.Where(squirrel.LtOrEq{"available_at": nullTime(filter.AvailableUntil)})
	}
	if !filter.IncludeHidden {
		query = query.Where(squirrel.Eq{"hidden": false})
	}
	query = query.OrderBy("available_at IS NULL", "available_at ASC", "id ASC")
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		log.Error("failed to list assignments: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []models.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			log.Error("failed to scan assignment row: %v", err)
			return nil, err
		}
		out = append(out, a)
	}
	log.Debug("found %d assignments", len(out))
	return out, rows.Err()
}

func (r *assignmentRepository) UpsertBatch(ctx context.Context, assignments []models.Assignment) error {
	log := logger.FromContext(ctx).WithPrefix("assignment_repo")
	if len(assignments) == 0 {
		return nil
	}
	log.Debug("upserting %d assignments", len(assignments))

	now := r.now().UTC()
	return tx(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
INSERT INTO assignments (id, subject_id, srs_stage, available_at, unlocked_at, started_at, hidden, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    subject_id = excluded.subject_id,
    srs_stage = excluded.srs_stage,
    available_at = excluded.available_at,
    unlocked_at = excluded.unlocked_at,
    started_at = excluded.started_at,
    hidden = excluded.hidden,
    updated_at = excluded.updated_at
`)
		if err != nil {
			log.Error("failed to prepare assignment upsert: %v", err)
			return err
		}
		defer stmt.Close()

		for _, a := range assignments {
			if _, err := stmt.ExecContext(ctx, a.ID, a.SubjectID, a.SRSStage, nullTime(a.AvailableAt),
				nullTime(a.UnlockedAt), nullTime(a.StartedAt), a.Hidden, now); err != nil {
				log.Error("failed to upsert assignment %d: %v", a.ID, err)
				return fmt.Errorf("upsert assignment %d: %w", a.ID, err)
			}
		}
		return nil
	})
}

func (r *assignmentRepository) Update(ctx context.Context, a models.Assignment) error {
	log := logger.FromContext(ctx).WithPrefix("assignment_repo")
	log.Debug("updating assignment: id=%d, stage=%d", a.ID, a.SRSStage)

	res, err := r.db.ExecContext(ctx, `
UPDATE assignments
SET srs_stage = ?, available_at = ?, unlocked_at = ?, started_at = ?, hidden = ?, updated_at = ?
WHERE id = ?
`, a.SRSStage, nullTime(a.AvailableAt), nullTime(a.UnlockedAt), nullTime(a.StartedAt), a.Hidden, r.now().UTC(), a.ID)
	if err != nil {
		log.Error("failed to update assignment: %v", err)
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *assignmentRepository) StartedTimestamps(ctx context.Context) ([]time.Time, error) {
	log := logger.FromContext(ctx).WithPrefix("assignment_repo")

	rows, err := r.db.QueryContext(ctx, `SELECT started_at FROM assignments WHERE started_at IS NOT NULL`)
	if err != nil {
		log.Error("failed to query lesson start times: %v", err)
		return nil, err
	}
	times, err := scanTimes(rows)
	if err != nil {
		log.Error("failed to scan lesson start times: %v", err)
		return nil, err
	}
	log.Debug("found %d lesson start times", len(times))
	return times, nil
}
