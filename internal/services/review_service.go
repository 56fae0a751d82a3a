package services

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/vytor/kanjiflash/internal/answer"
	"github.com/vytor/kanjiflash/internal/errors"
	"github.com/vytor/kanjiflash/internal/logger"
	"github.com/vytor/kanjiflash/internal/models"
	"github.com/vytor/kanjiflash/internal/repository"
	"github.com/vytor/kanjiflash/internal/srs"
	"github.com/vytor/kanjiflash/internal/streak"
)

// StreakTrigger schedules a streak recomputation.
type StreakTrigger interface {
	Trigger() *streak.Future
}

// ReviewResult is the outcome of a completed review or lesson.
type ReviewResult struct {
	Assignment models.Assignment `json:"assignment"`
	Review     *models.Review    `json:"review,omitempty"`
	StageName  string            `json:"stage_name"`
}

// ReviewService runs lessons and reviews
type ReviewService interface {
	SubmitAnswer(ctx context.Context, subjectID int64, question answer.QuestionType, given string) (*answer.Verdict, error)
	StartLesson(ctx context.Context, subjectID int64) (*ReviewResult, error)
	CompleteReview(ctx context.Context, subjectID int64, incorrectMeaning, incorrectReading int) (*ReviewResult, error)
	ListReviews(ctx context.Context, subjectID int64) ([]models.Review, error)
}

type reviewService struct {
	subjects       SubjectService
	assignmentRepo repository.AssignmentRepository
	reviewRepo     repository.ReviewRepository
	settings       SettingsService
	engine         *srs.Engine
	streak         StreakTrigger
	now            func() time.Time
}

// NewReviewService creates a new ReviewService
func NewReviewService(
	subjects SubjectService,
	assignmentRepo repository.AssignmentRepository,
	reviewRepo repository.ReviewRepository,
	settings SettingsService,
	engine *srs.Engine,
	streakTrigger StreakTrigger,
	opts ...Option,
) ReviewService {
	o := applyOptions(opts)
	return &reviewService{
		subjects:       subjects,
		assignmentRepo: assignmentRepo,
		reviewRepo:     reviewRepo,
		settings:       settings,
		engine:         engine,
		streak:         streakTrigger,
		now:            o.now,
	}
}

func (s *reviewService) SubmitAnswer(ctx context.Context, subjectID int64, question answer.QuestionType, given string) (*answer.Verdict, error) {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"subject_id": subjectID,
		"question":   question,
	})

	subject, err := s.subjects.GetSubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	var verdict answer.Verdict
	switch question {
	case answer.QuestionMeaning:
		settings, err := s.settings.GetSettings(ctx)
		if err != nil {
			return nil, err
		}
		policy, err := answer.ParsePolicy(settings.NearMatchPolicy)
		if err != nil {
			log.Warn("invalid near match policy %q, using %s", settings.NearMatchPolicy, policy)
		}
		verdict = answer.CheckMeaning(*subject, given, policy)
	case answer.QuestionReading:
		if !subject.HasReadings() {
			return nil, errors.NewBadRequestError(fmt.Sprintf("%s subjects have no reading question", subject.Type))
		}
		verdict = answer.CheckReading(*subject, given)
	default:
		return nil, errors.NewValidationError("question_type", "must be meaning or reading")
	}

	log.Debug("answer checked: ok=%t, retry=%t, reason=%s", verdict.OK, verdict.Retry, verdict.Reason)
	return &verdict, nil
}

func (s *reviewService) assignmentFor(ctx context.Context, subjectID int64) (*models.Subject, *models.Assignment, error) {
	subject, err := s.subjects.GetSubject(ctx, subjectID)
	if err != nil {
		return nil, nil, err
	}
	a, err := s.assignmentRepo.GetBySubject(ctx, subjectID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, nil, errors.NewNotFoundError("assignment for subject", subjectID)
		}
		logger.FromContext(ctx).Error("failed to get assignment: %v", err)
		return nil, nil, errors.NewInternalError(err)
	}
	return subject, a, nil
}

// StartLesson moves an unlocked subject from the lesson stage into the first
// apprentice stage.
func (s *reviewService) StartLesson(ctx context.Context, subjectID int64) (*ReviewResult, error) {
	log := logger.FromContext(ctx).WithField("subject_id", subjectID)

	subject, a, err := s.assignmentFor(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if a.UnlockedAt == nil {
		return nil, errors.NewConflictError("subject is still locked")
	}
	if a.SRSStage != srs.LessonStage || a.Started() {
		return nil, errors.NewConflictError("lesson already started")
	}

	now := s.now()
	a.SRSStage = srs.FirstStage
	a.StartedAt = &now
	a.AvailableAt = s.engine.NextAvailableAt(subject.SRSSystemID, a.SRSStage, now)

	if err := s.assignmentRepo.Update(ctx, *a); err != nil {
		log.Error("failed to start lesson: %v", err)
		return nil, errors.NewInternalError(err)
	}
	s.streak.Trigger()

	log.Info("lesson started")
	return &ReviewResult{Assignment: *a, StageName: srs.StageName(a.SRSStage)}, nil
}

// CompleteReview records a finished review and reschedules the assignment.
func (s *reviewService) CompleteReview(ctx context.Context, subjectID int64, incorrectMeaning, incorrectReading int) (*ReviewResult, error) {
	log := logger.FromContext(ctx).WithField("subject_id", subjectID)

	if incorrectMeaning < 0 || incorrectReading < 0 {
		return nil, errors.NewValidationError("incorrect answers", "must not be negative")
	}

	subject, a, err := s.assignmentFor(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if !subject.HasReadings() && incorrectReading > 0 {
		return nil, errors.NewValidationError("incorrect_reading_answers", fmt.Sprintf("%s subjects have no reading question", subject.Type))
	}
	if a.SRSStage < srs.FirstStage || a.SRSStage >= srs.BurnedStage {
		return nil, errors.NewConflictError(fmt.Sprintf("assignment at stage %s cannot be reviewed", srs.StageName(a.SRSStage)))
	}

	now := s.now()
	if !a.AvailableBy(now) {
		return nil, errors.NewConflictError("assignment is not available for review yet")
	}

	review := models.Review{
		AssignmentID:            a.ID,
		SubjectID:               subjectID,
		StartingStage:           a.SRSStage,
		IncorrectMeaningAnswers: incorrectMeaning,
		IncorrectReadingAnswers: incorrectReading,
		CreatedAt:               now,
		UpdatedAt:               now,
	}
	review.EndingStage = srs.NextStage(a.SRSStage, review.IncorrectAnswers())

	a.SRSStage = review.EndingStage
	a.AvailableAt = s.engine.NextAvailableAt(subject.SRSSystemID, a.SRSStage, now)

	if err := s.assignmentRepo.Update(ctx, *a); err != nil {
		log.Error("failed to update assignment: %v", err)
		return nil, errors.NewInternalError(err)
	}
	id, err := s.reviewRepo.Insert(ctx, review)
	if err != nil {
		log.Error("failed to record review: %v", err)
		return nil, errors.NewInternalError(err)
	}
	review.ID = id
	s.streak.Trigger()

	log.Info("review completed: %d -> %d", review.StartingStage, review.EndingStage)
	return &ReviewResult{Assignment: *a, Review: &review, StageName: srs.StageName(a.SRSStage)}, nil
}

// ListReviews returns the subject's review history, oldest first.
func (s *reviewService) ListReviews(ctx context.Context, subjectID int64) ([]models.Review, error) {
	_, a, err := s.assignmentFor(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.ListForAssignment(ctx, a.ID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list reviews for assignment %d: %v", a.ID, err)
		return nil, errors.NewInternalError(err)
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return reviews, nil
}
