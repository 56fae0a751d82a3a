package api

import (
	"fmt"
	"net/http"

	"github.com/vytor/kanjiflash/internal/errors"
	"github.com/vytor/kanjiflash/internal/logger"
	"github.com/vytor/kanjiflash/internal/models"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

type subjectListResponse struct {
	Subjects []models.Subject `json:"subjects"`
	Total    int              `json:"total"`
	Limit    int              `json:"limit"`
	Offset   int              `json:"offset"`
}

func (s *Server) handleListSubjects(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	level, err := queryInt(r, "level", 0)
	if err != nil {
		handleError(w, r, err)
		return
	}
	limit, err := queryInt(r, "limit", defaultPageSize)
	if err != nil {
		handleError(w, r, err)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if limit <= 0 || limit > maxPageSize {
		handleError(w, r, errors.NewValidationError("limit", fmt.Sprintf("must be between 1 and %d", maxPageSize)))
		return
	}
	if offset < 0 {
		handleError(w, r, errors.NewValidationError("offset", "must not be negative"))
		return
	}

	filter := models.SubjectFilter{
		Level:         level,
		IncludeHidden: r.URL.Query().Get("hidden") == "true",
		Limit:         limit,
		Offset:        offset,
	}
	for _, t := range queryList(r, "type") {
		filter.Types = append(filter.Types, models.SubjectType(t))
	}

	subjects, total, err := s.SubjectService.ListSubjects(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if subjects == nil {
		subjects = []models.Subject{}
	}

	log.Debug("listed %d of %d subjects", len(subjects), total)
	writeJSON(w, r, http.StatusOK, subjectListResponse{
		Subjects: subjects,
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	})
}

func (s *Server) handleGetSubject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	detail, err := s.SubjectService.GetSubjectDetail(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, detail)
}

func (s *Server) handleListOverdue(w http.ResponseWriter, r *http.Request) {
	details, err := s.SubjectService.ListOverdue(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	if details == nil {
		details = []models.SubjectDetail{}
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"subjects": details})
}

func (s *Server) handleListAvailable(w http.ResponseWriter, r *http.Request) {
	details, err := s.SubjectService.ListAvailable(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	if details == nil {
		details = []models.SubjectDetail{}
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"subjects": details})
}

func (s *Server) handleGetPitch(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.PitchService.GetPitch(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}
