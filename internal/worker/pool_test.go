package worker_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/kanjiflash/internal/models"
	"github.com/vytor/kanjiflash/internal/worker"
)

type funcJob struct {
	run func(context.Context) error
}

func (j funcJob) Name() string                  { return "func" }
func (j funcJob) Run(ctx context.Context) error { return j.run(ctx) }

func TestPool_RunsSubmittedJobs(t *testing.T) {
	pool := worker.NewPool("test", 2, 4)
	pool.Start(context.Background())

	var ran atomic.Int32
	done := make(chan struct{}, 3)
	for i := 0; i < 3; i++ {
		err := pool.Submit(funcJob{run: func(context.Context) error {
			ran.Add(1)
			done <- struct{}{}
			return nil
		}})
		require.NoError(t, err)
	}

	for i := 0; i < 3; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("job did not run")
		}
	}
	pool.Stop()
	assert.Equal(t, int32(3), ran.Load())
}

func TestPool_SurvivesFailingAndPanickingJobs(t *testing.T) {
	pool := worker.NewPool("test", 1, 4)
	pool.Start(context.Background())

	done := make(chan struct{})
	require.NoError(t, pool.Submit(funcJob{run: func(context.Context) error { return errors.New("boom") }}))
	require.NoError(t, pool.Submit(funcJob{run: func(context.Context) error { panic("kaboom") }}))
	require.NoError(t, pool.Submit(funcJob{run: func(context.Context) error { close(done); return nil }}))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not survive earlier jobs")
	}
	pool.Stop()
}

func TestPool_SubmitWhenFullOrStopped(t *testing.T) {
	pool := worker.NewPool("test", 1, 1)

	// Not started, so the single slot stays occupied.
	require.NoError(t, pool.Submit(funcJob{run: func(context.Context) error { return nil }}))
	assert.ErrorIs(t, pool.Submit(funcJob{run: func(context.Context) error { return nil }}), worker.ErrQueueFull)
	assert.Equal(t, 1, pool.QueueSize())

	pool.Stop()
	assert.ErrorIs(t, pool.Submit(funcJob{run: func(context.Context) error { return nil }}), worker.ErrPoolClosed)
	pool.Stop()
}

type stubImporter struct {
	path string
	err  error
}

func (s *stubImporter) ImportFile(_ context.Context, path string) (models.ImportSummary, error) {
	s.path = path
	return models.ImportSummary{Subjects: 2}, s.err
}

func TestImportContentJob(t *testing.T) {
	imp := &stubImporter{}
	job := &worker.ImportContentJob{Importer: imp, Path: "/tmp/dump.json"}

	assert.Equal(t, "import_content", job.Name())
	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, "/tmp/dump.json", imp.path)

	imp.err = errors.New("bad dump")
	assert.EqualError(t, job.Run(context.Background()), "bad dump")
}
