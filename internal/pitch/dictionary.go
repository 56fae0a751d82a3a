package pitch

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/vytor/kanjiflash/internal/logger"
	"github.com/vytor/kanjiflash/internal/models"
	"golang.org/x/sync/singleflight"
)

// Loader produces the accent database.
type Loader func(ctx context.Context) (Database, error)

// FileLoader reads a JSON accent database from path. An empty path yields an
// empty database.
func FileLoader(path string) Loader {
	return func(ctx context.Context) (Database, error) {
		if path == "" {
			return Database{}, nil
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read accent database: %w", err)
		}
		var db Database
		if err := json.Unmarshal(b, &db); err != nil {
			return nil, fmt.Errorf("parse accent database: %w", err)
		}
		return db, nil
	}
}

// Dictionary loads the accent database on first use and keeps it for the
// life of the instance. Concurrent first lookups share one load; a failed
// load is retried on the next lookup.
type Dictionary struct {
	load  Loader
	group singleflight.Group
	log   *logger.Logger

	mu sync.RWMutex
	db Database
}

func NewDictionary(load Loader) *Dictionary {
	return &Dictionary{
		load: load,
		log:  logger.Default().WithPrefix("pitch"),
	}
}

// Database returns the loaded accent database, loading it if needed.
func (d *Dictionary) Database(ctx context.Context) (Database, error) {
	d.mu.RLock()
	db := d.db
	d.mu.RUnlock()
	if db != nil {
		return db, nil
	}

	v, err, _ := d.group.Do("load", func() (any, error) {
		d.mu.RLock()
		loaded := d.db
		d.mu.RUnlock()
		if loaded != nil {
			return loaded, nil
		}

		d.log.Info("loading accent database")
		// Shared by every waiter, so one caller's cancellation must not fail the rest.
		db, err := d.load(context.WithoutCancel(ctx))
		if err != nil {
			d.log.Error("failed to load accent database: %v", err)
			return nil, err
		}
		if db == nil {
			db = Database{}
		}
		d.mu.Lock()
		d.db = db
		d.mu.Unlock()
		d.log.Info("accent database loaded: %d entries", len(db))
		return db, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(Database), nil
}

// Lookup loads the database if needed and runs Lookup against it.
func (d *Dictionary) Lookup(ctx context.Context, s models.Subject) ([]ReadingPitch, bool, error) {
	db, err := d.Database(ctx)
	if err != nil {
		return nil, false, err
	}
	out, ok := Lookup(db, s)
	return out, ok, nil
}
