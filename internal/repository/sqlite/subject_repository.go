package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/kanjiflash/internal/logger"
	"github.com/vytor/kanjiflash/internal/models"
	"github.com/vytor/kanjiflash/internal/repository"
)

var subjectColumns = []string{
	"id", "type", "level", "characters", "slug", "hidden", "srs_system_id",
	"meanings_json", "auxiliary_meanings_json", "readings_json", "created_at",
}

type subjectRepository struct {
	db *sql.DB
}

// NewSubjectRepository creates a new SubjectRepository implementation
func NewSubjectRepository(db *sql.DB) repository.SubjectRepository {
	return &subjectRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubject(row rowScanner) (models.Subject, error) {
	var (
		s                         models.Subject
		meanings, aux, readingsJS string
	)
	if err := row.Scan(&s.ID, &s.Type, &s.Level, &s.Characters, &s.Slug, &s.Hidden, &s.SRSSystemID,
		&meanings, &aux, &readingsJS, &s.CreatedAt); err != nil {
		return s, err
	}
	if err := json.Unmarshal([]byte(meanings), &s.Meanings); err != nil {
		return s, fmt.Errorf("decode meanings for subject %d: %w", s.ID, err)
	}
	if err := json.Unmarshal([]byte(aux), &s.AuxiliaryMeanings); err != nil {
		return s, fmt.Errorf("decode auxiliary meanings for subject %d: %w", s.ID, err)
	}
	if err := json.Unmarshal([]byte(readingsJS), &s.Readings); err != nil {
		return s, fmt.Errorf("decode readings for subject %d: %w", s.ID, err)
	}
	return s, nil
}

func (r *subjectRepository) Get(ctx context.Context, id int64) (*models.Subject, error) {
	log := logger.FromContext(ctx).WithPrefix("subject_repo")
	log.Debug("getting subject: id=%d", id)

	query, args, err := sqlBuilder.Select(subjectColumns...).From("subjects").
		Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	s, err := scanSubject(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("subject not found: id=%d", id)
		} else {
			log.Error("failed to get subject: %v", err)
		}
		return nil, err
	}
	log.Debug("subject found: type=%s, characters=%s", s.Type, s.Characters)
	return &s, nil
}

func applySubjectFilter(query squirrel.SelectBuilder, filter models.SubjectFilter) squirrel.SelectBuilder {
	if len(filter.IDs) > 0 {
		query = query.Where(squirrel.Eq{"id": filter.IDs})
	}
	if filter.Level > 0 {
		query = query.Where(squirrel.Eq{"level": filter.Level})
	}
	if len(filter.Types) > 0 {
		types := make([]string, len(filter.Types))
		for i, t := range filter.Types {
			types[i] = string(t)
		}
		query = query.Where(squirrel.Eq{"type": types})
	}
	if !filter.IncludeHidden {
		query = query.Where(squirrel.Eq{"hidden": false})
	}
	return query
}

func (r *subjectRepository) List(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, error) {
	log := logger.FromContext(ctx).WithPrefix("subject_repo")
	log.Debug("listing subjects with filter: level=%d, types=%v, include_hidden=%t",
		filter.Level, filter.Types, filter.IncludeHidden)

	query := applySubjectFilter(sqlBuilder.Select(subjectColumns...).From("subjects"), filter).
		OrderBy("level ASC", "id ASC")

	limit := filter.Limit
	if limit <= 0 {
		limit = 200
	}
	offset := max(filter.Offset, 0)
	query = query.Limit(uint64(limit)).Offset(uint64(offset))

	stmt, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		log.Error("failed to list subjects: %v", err)
		return nil, err
	}
	defer rows.Close()

	var subjects []models.Subject
	for rows.Next() {
		s, err := scanSubject(rows)
		if err != nil {
			log.Error("failed to scan subject row: %v", err)
			return nil, err
		}
		subjects = append(subjects, s)
	}
	log.Debug("found %d subjects", len(subjects))
	return subjects, rows.Err()
}

func (r *subjectRepository) Count(ctx context.Context, filter models.SubjectFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("subject_repo")

	stmt, args, err := applySubjectFilter(sqlBuilder.Select("COUNT(*)").From("subjects"), filter).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, stmt, args...).Scan(&count); err != nil {
		log.Error("failed to count subjects: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *subjectRepository) UpsertBatch(ctx context.Context, subjects []models.Subject) error {
	log := logger.FromContext(ctx).WithPrefix("subject_repo")
	if len(subjects) == 0 {
		return nil
	}
	log.Debug("upserting %d subjects", len(subjects))

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
INSERT INTO subjects (id, type, level, characters, slug, hidden, srs_system_id, meanings_json, auxiliary_meanings_json, readings_json)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    type = excluded.type,
    level = excluded.level,
    characters = excluded.characters,
    slug = excluded.slug,
    hidden = excluded.hidden,
    srs_system_id = excluded.srs_system_id,
    meanings_json = excluded.meanings_json,
    auxiliary_meanings_json = excluded.auxiliary_meanings_json,
    readings_json = excluded.readings_json
`)
		if err != nil {
			log.Error("failed to prepare subject upsert: %v", err)
			return err
		}
		defer stmt.Close()

		for _, s := range subjects {
			meanings, err := jsonColumn(s.Meanings)
			if err != nil {
				return err
			}
			aux, err := jsonColumn(s.AuxiliaryMeanings)
			if err != nil {
				return err
			}
			readings, err := jsonColumn(s.Readings)
			if err != nil {
				return err
			}
			if _, err := stmt.ExecContext(ctx, s.ID, s.Type, s.Level, s.Characters, s.Slug, s.Hidden,
				s.SRSSystemID, meanings, aux, readings); err != nil {
				log.Error("failed to upsert subject %d: %v", s.ID, err)
				return fmt.Errorf("upsert subject %d: %w", s.ID, err)
			}
		}
		return nil
	})
}
