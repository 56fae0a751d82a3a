package worker

import (
	"context"

	"github.com/vytor/kanjiflash/internal/models"
)

// ContentImporter loads a content dump into the local store.
type ContentImporter interface {
	ImportFile(ctx context.Context, path string) (models.ImportSummary, error)
}
