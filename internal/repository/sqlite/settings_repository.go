package sqlite

import (
	"context"
	"database/sql"
	"sort"

	"github.com/vytor/kanjiflash/internal/logger"
	"github.com/vytor/kanjiflash/internal/repository"
)

type settingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new SettingsRepository implementation
func NewSettingsRepository(db *sql.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) All(ctx context.Context) (map[string]string, error) {
	log := logger.FromContext(ctx).WithPrefix("settings_repo")

	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		log.Error("failed to read settings: %v", err)
		return nil, err
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			log.Error("failed to scan setting: %v", err)
			return nil, err
		}
		values[k] = v
	}
	return values, rows.Err()
}

func (r *settingsRepository) Set(ctx context.Context, values map[string]string) error {
	log := logger.FromContext(ctx).WithPrefix("settings_repo")
	if len(values) == 0 {
		return nil
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	log.Debug("saving settings: %v", keys)

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		for _, k := range keys {
			if _, err := tx.ExecContext(ctx, `
INSERT INTO settings (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value
`, k, values[k]); err != nil {
				log.Error("failed to save setting %s: %v", k, err)
				return err
			}
		}
		return nil
	})
}
