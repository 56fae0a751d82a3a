package jobs

import (
	"github.com/vytor/kanjiflash/internal/worker"
)

// WorkerQueue implements JobQueue using worker pools
type WorkerQueue struct {
	importPool *worker.Pool
	importer   worker.ContentImporter
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(importPool *worker.Pool, importer worker.ContentImporter) JobQueue {
	return &WorkerQueue{
		importPool: importPool,
		importer:   importer,
	}
}

func (q *WorkerQueue) EnqueueImport(path string) error {
	return q.importPool.Submit(&worker.ImportContentJob{
		Importer: q.importer,
		Path:     path,
	})
}
