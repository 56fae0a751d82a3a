package api

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/vytor/kanjiflash/internal/errors"
	"github.com/vytor/kanjiflash/internal/logger"
	"github.com/vytor/kanjiflash/internal/worker"
)

type importRequest struct {
	Path string `json:"path"`
}

// handleImport queues a content dump for import and returns immediately.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req importRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	req.Path = strings.TrimSpace(req.Path)
	if req.Path == "" {
		handleError(w, r, errors.NewValidationError("path", "cannot be empty"))
		return
	}

	if err := s.JobQueue.EnqueueImport(req.Path); err != nil {
		if stderrors.Is(err, worker.ErrQueueFull) || stderrors.Is(err, worker.ErrPoolClosed) {
			handleError(w, r, errors.NewBusyError("import queue unavailable, try again later", err))
			return
		}
		handleError(w, r, errors.NewInternalError(err))
		return
	}

	log.Info("import queued: path=%s", req.Path)
	writeJSON(w, r, http.StatusAccepted, map[string]string{"status": "queued", "path": req.Path})
}
