package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/vytor/kanjiflash/internal/logger"
	"github.com/vytor/kanjiflash/internal/models"
	"github.com/vytor/kanjiflash/internal/repository"
)

type srsSystemRepository struct {
	db *sql.DB
}

// NewSRSSystemRepository creates a new SRSSystemRepository implementation
func NewSRSSystemRepository(db *sql.DB) repository.SRSSystemRepository {
	return &srsSystemRepository{db: db}
}

func (r *srsSystemRepository) List(ctx context.Context) ([]models.SRSSystem, error) {
	log := logger.FromContext(ctx).WithPrefix("srs_system_repo")
	log.Debug("listing srs systems")

	rows, err := r.db.QueryContext(ctx, `SELECT id, name, stages_json FROM srs_systems ORDER BY id`)
	if err != nil {
		log.Error("failed to list srs systems: %v", err)
		return nil, err
	}
	defer rows.Close()

	var systems []models.SRSSystem
	for rows.Next() {
		var (
			sys    models.SRSSystem
			stages string
		)
		if err := rows.Scan(&sys.ID, &sys.Name, &stages); err != nil {
			log.Error("failed to scan srs system row: %v", err)
			return nil, err
		}
		if err := json.Unmarshal([]byte(stages), &sys.Stages); err != nil {
			log.Error("failed to decode stages for srs system %d: %v", sys.ID, err)
			return nil, err
		}
		systems = append(systems, sys)
	}
	log.Debug("found %d srs systems", len(systems))
	return systems, rows.Err()
}

func (r *srsSystemRepository) Upsert(ctx context.Context, system models.SRSSystem) error {
	log := logger.FromContext(ctx).WithPrefix("srs_system_repo")
	log.Debug("upserting srs system: id=%d, name=%s, stages=%d", system.ID, system.Name, len(system.Stages))

	stages, err := jsonColumn(system.Stages)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
INSERT INTO srs_systems (id, name, stages_json) VALUES (?, ?, ?)
ON CONFLICT(id) DO UPDATE SET name = excluded.name, stages_json = excluded.stages_json
`, system.ID, system.Name, stages)
	if err != nil {
		log.Error("failed to upsert srs system: %v", err)
	}
	return err
}
