package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/vytor/kanjiflash/internal/logger"
	"github.com/vytor/kanjiflash/internal/models"
	"github.com/vytor/kanjiflash/internal/repository"
)

type reviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new ReviewRepository implementation
func NewReviewRepository(db *sql.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Insert(ctx context.Context, rv models.Review) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("inserting review: assignment_id=%d, %d -> %d", rv.AssignmentID, rv.StartingStage, rv.EndingStage)

	created := rv.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	updated := rv.UpdatedAt
	if updated.IsZero() {
		updated = created
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO reviews (assignment_id, subject_id, starting_srs_stage, ending_srs_stage,
                     incorrect_meaning_answers, incorrect_reading_answers, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, rv.AssignmentID, rv.SubjectID, rv.StartingStage, rv.EndingStage,
		rv.IncorrectMeaningAnswers, rv.IncorrectReadingAnswers, created.UTC(), updated.UTC())
	if err != nil {
		log.Error("failed to insert review: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get review id: %v", err)
		return 0, err
	}
	log.Debug("review inserted: id=%d", id)
	return id, nil
}

func (r *reviewRepository) ListForAssignment(ctx context.Context, assignmentID int64) ([]models.Review, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT id, assignment_id, subject_id, starting_srs_stage, ending_srs_stage,
       incorrect_meaning_answers, incorrect_reading_answers, created_at, updated_at
FROM reviews
WHERE assignment_id = ?
ORDER BY created_at ASC, id ASC
`, assignmentID)
	if err != nil {
		log.Error("failed to list reviews: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []models.Review
	for rows.Next() {
		var rv models.Review
		if err := rows.Scan(&rv.ID, &rv.AssignmentID, &rv.SubjectID, &rv.StartingStage, &rv.EndingStage,
			&rv.IncorrectMeaningAnswers, &rv.IncorrectReadingAnswers, &rv.CreatedAt, &rv.UpdatedAt); err != nil {
			log.Error("failed to scan review row: %v", err)
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *reviewRepository) UpdatedTimestamps(ctx context.Context) ([]time.Time, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")

	rows, err := r.db.QueryContext(ctx, `SELECT updated_at FROM reviews`)
	if err != nil {
		log.Error("failed to query review times: %v", err)
		return nil, err
	}
	times, err := scanTimes(rows)
	if err != nil {
		log.Error("failed to scan review times: %v", err)
		return nil, err
	}
	log.Debug("found %d review times", len(times))
	return times, nil
}
