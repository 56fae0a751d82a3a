package services

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/vytor/kanjiflash/internal/errors"
	"github.com/vytor/kanjiflash/internal/logger"
	"github.com/vytor/kanjiflash/internal/models"
	"github.com/vytor/kanjiflash/internal/repository"
	"github.com/vytor/kanjiflash/internal/srs"
)

// SubjectService handles subject listings and per-subject progress
type SubjectService interface {
	ListSubjects(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, int, error)
	GetSubject(ctx context.Context, id int64) (*models.Subject, error)
	GetSubjectDetail(ctx context.Context, id int64) (*models.SubjectDetail, error)
	ListOverdue(ctx context.Context) ([]models.SubjectDetail, error)
	ListAvailable(ctx context.Context) ([]models.SubjectDetail, error)
}

type subjectService struct {
	subjectRepo    repository.SubjectRepository
	assignmentRepo repository.AssignmentRepository
	settings       SettingsService
	engine         *srs.Engine
	now            func() time.Time
}

// NewSubjectService creates a new SubjectService
func NewSubjectService(
	subjectRepo repository.SubjectRepository,
	assignmentRepo repository.AssignmentRepository,
	settings SettingsService,
	engine *srs.Engine,
	opts ...Option,
) SubjectService {
	o := applyOptions(opts)
	return &subjectService{
		subjectRepo:    subjectRepo,
		assignmentRepo: assignmentRepo,
		settings:       settings,
		engine:         engine,
		now:            o.now,
	}
}

func (s *subjectService) ListSubjects(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, int, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing subjects: level=%d, types=%v", filter.Level, filter.Types)

	for _, t := range filter.Types {
		if !t.Valid() {
			return nil, 0, errors.NewValidationError("type", "unknown subject type "+string(t))
		}
	}
	if filter.Level < 0 || filter.Level > 60 {
		return nil, 0, errors.NewValidationError("level", "must be between 1 and 60")
	}

	subjects, err := s.subjectRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list subjects: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	total, err := s.subjectRepo.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count subjects: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	return subjects, total, nil
}

func (s *subjectService) GetSubject(ctx context.Context, id int64) (*models.Subject, error) {
	subject, err := s.subjectRepo.Get(ctx, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("subject", id)
		}
		logger.FromContext(ctx).Error("failed to get subject: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return subject, nil
}

func (s *subjectService) GetSubjectDetail(ctx context.Context, id int64) (*models.SubjectDetail, error) {
	subject, err := s.GetSubject(ctx, id)
	if err != nil {
		return nil, err
	}

	a, err := s.assignmentRepo.GetBySubject(ctx, id)
	if err != nil && !stderrors.Is(err, sql.ErrNoRows) {
		logger.FromContext(ctx).Error("failed to get assignment for subject %d: %v", id, err)
		return nil, errors.NewInternalError(err)
	}

	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	detail := s.detail(*subject, a, srs.OverdueThreshold(settings.OverdueThreshold), s.now())
	return &detail, nil
}

// ListOverdue returns assignments that are past their review time by more
// than the configured share of their stage interval, plus lessons not yet
// taken.
func (s *subjectService) ListOverdue(ctx context.Context) ([]models.SubjectDetail, error) {
	maxStage := srs.BurnedStage - 1
	details, err := s.listDetails(ctx, models.AssignmentFilter{MaxStage: &maxStage}, func(d models.SubjectDetail) bool {
		return d.Overdue
	})
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Debug("found %d overdue assignments", len(details))
	return details, nil
}

// ListAvailable returns started, unburned assignments whose next review is
// due now, earliest first.
func (s *subjectService) ListAvailable(ctx context.Context) ([]models.SubjectDetail, error) {
	minStage := srs.FirstStage
	maxStage := srs.BurnedStage - 1
	now := s.now()
	details, err := s.listDetails(ctx, models.AssignmentFilter{
		MinStage:       &minStage,
		MaxStage:       &maxStage,
		AvailableUntil: &now,
	}, nil)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Debug("found %d assignments available for review", len(details))
	return details, nil
}

// listDetails loads the assignments matching filter with their subjects.
// keep, when set, drops details it rejects.
func (s *subjectService) listDetails(ctx context.Context, filter models.AssignmentFilter, keep func(models.SubjectDetail) bool) ([]models.SubjectDetail, error) {
	log := logger.FromContext(ctx)

	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	threshold := srs.OverdueThreshold(settings.OverdueThreshold)

	assignments, err := s.assignmentRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list assignments: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if len(assignments) == 0 {
		return []models.SubjectDetail{}, nil
	}

	ids := make([]int64, len(assignments))
	for i, a := range assignments {
		ids[i] = a.SubjectID
	}
	subjects, err := s.subjectRepo.List(ctx, models.SubjectFilter{IDs: ids, Limit: len(ids)})
	if err != nil {
		log.Error("failed to load subjects for assignments: %v", err)
		return nil, errors.NewInternalError(err)
	}
	byID := make(map[int64]models.Subject, len(subjects))
	for _, subj := range subjects {
		byID[subj.ID] = subj
	}

	now := s.now()
	out := []models.SubjectDetail{}
	for i := range assignments {
		subject, ok := byID[assignments[i].SubjectID]
		if !ok {
			continue
		}
		d := s.detail(subject, &assignments[i], threshold, now)
		if keep != nil && !keep(d) {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *subjectService) detail(subject models.Subject, a *models.Assignment, threshold float64, now time.Time) models.SubjectDetail {
	d := models.SubjectDetail{Subject: subject, Assignment: a}
	if a == nil {
		d.StageName = srs.StageName(srs.MaxStage + 1)
		return d
	}
	d.StageName = srs.StageName(a.SRSStage)
	d.Progress = s.engine.StageProgress(subject.SRSSystemID, a.SRSStage, a.AvailableBy(now), a.AvailableAt, now)
	d.Overdue = s.engine.IsOverdue(&subject, a, threshold, now)
	return d
}
