package api

import (
	"net/http"

	"github.com/vytor/kanjiflash/internal/errors"
	"github.com/vytor/kanjiflash/internal/logger"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// handleError renders err as a JSON error body.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())
	appErr := errors.AsAppError(err)

	switch {
	case appErr.Status >= 500:
		log.Error("server error: %v", appErr)
	case appErr.Status >= 400:
		log.Warn("client error: %v", appErr)
	default:
		log.Debug("error: %v", appErr)
	}

	writeJSON(w, r, appErr.Status, errorBody{Error: errorDetail{Code: appErr.Code, Message: appErr.Message}})
}
