package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/kanjiflash/internal/answer"
	"github.com/vytor/kanjiflash/internal/models"
	"github.com/vytor/kanjiflash/internal/services"
	"github.com/vytor/kanjiflash/internal/streak"
)

// MockSubjectService is a mock implementation of services.SubjectService
type MockSubjectService struct {
	mock.Mock
}

func (m *MockSubjectService) ListSubjects(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.Subject), args.Int(1), args.Error(2)
}

func (m *MockSubjectService) GetSubject(ctx context.Context, id int64) (*models.Subject, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subject), args.Error(1)
}

func (m *MockSubjectService) GetSubjectDetail(ctx context.Context, id int64) (*models.SubjectDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubjectDetail), args.Error(1)
}

func (m *MockSubjectService) ListOverdue(ctx context.Context) ([]models.SubjectDetail, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SubjectDetail), args.Error(1)
}

func (m *MockSubjectService) ListAvailable(ctx context.Context) ([]models.SubjectDetail, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SubjectDetail), args.Error(1)
}

// MockReviewService is a mock implementation of services.ReviewService
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) SubmitAnswer(ctx context.Context, subjectID int64, question answer.QuestionType, given string) (*answer.Verdict, error) {
	args := m.Called(ctx, subjectID, question, given)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*answer.Verdict), args.Error(1)
}

func (m *MockReviewService) StartLesson(ctx context.Context, subjectID int64) (*services.ReviewResult, error) {
	args := m.Called(ctx, subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ReviewResult), args.Error(1)
}

func (m *MockReviewService) CompleteReview(ctx context.Context, subjectID int64, incorrectMeaning, incorrectReading int) (*services.ReviewResult, error) {
	args := m.Called(ctx, subjectID, incorrectMeaning, incorrectReading)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ReviewResult), args.Error(1)
}

func (m *MockReviewService) ListReviews(ctx context.Context, subjectID int64) ([]models.Review, error) {
	args := m.Called(ctx, subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Review), args.Error(1)
}

// MockSettingsService is a mock implementation of services.SettingsService
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) GetSettings(ctx context.Context) (models.Settings, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.Settings), args.Error(1)
}

func (m *MockSettingsService) UpdateSettings(ctx context.Context, settings models.Settings) (models.Settings, error) {
	args := m.Called(ctx, settings)
	return args.Get(0).(models.Settings), args.Error(1)
}

// MockStreakService is a mock implementation of services.StreakService
type MockStreakService struct {
	mock.Mock
}

func (m *MockStreakService) Current(ctx context.Context) models.Streak {
	args := m.Called(ctx)
	return args.Get(0).(models.Streak)
}

func (m *MockStreakService) Refresh(ctx context.Context) (models.Streak, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.Streak), args.Error(1)
}

// MockPitchService is a mock implementation of services.PitchService
type MockPitchService struct {
	mock.Mock
}

func (m *MockPitchService) GetPitch(ctx context.Context, subjectID int64) (*services.PitchResult, error) {
	args := m.Called(ctx, subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.PitchResult), args.Error(1)
}

// MockStreakTrigger is a mock implementation of services.StreakTrigger. The
// returned future never resolves.
type MockStreakTrigger struct {
	mock.Mock
}

func (m *MockStreakTrigger) Trigger() *streak.Future {
	m.Called()
	return &streak.Future{}
}
