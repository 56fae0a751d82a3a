package worker

import (
	"context"

	"github.com/vytor/kanjiflash/internal/logger"
)

// ImportContentJob imports a content dump from disk.
type ImportContentJob struct {
	Importer ContentImporter
	Path     string
}

func (j *ImportContentJob) Name() string { return "import_content" }

func (j *ImportContentJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("path", j.Path)
	log.Info("starting background import")

	summary, err := j.Importer.ImportFile(ctx, j.Path)
	if err != nil {
		return err
	}
	log.Info("import finished: srs_systems=%d, subjects=%d, assignments=%d",
		summary.SRSSystems, summary.Subjects, summary.Assignments)
	return nil
}
