package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/kanjiflash/internal/models"
)

// MockSubjectRepository is a mock implementation of repository.SubjectRepository
type MockSubjectRepository struct {
	mock.Mock
}

func (m *MockSubjectRepository) Get(ctx context.Context, id int64) (*models.Subject, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subject), args.Error(1)
}

func (m *MockSubjectRepository) List(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Subject), args.Error(1)
}

func (m *MockSubjectRepository) Count(ctx context.Context, filter models.SubjectFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockSubjectRepository) UpsertBatch(ctx context.Context, subjects []models.Subject) error {
	args := m.Called(ctx, subjects)
	return args.Error(0)
}

// MockSRSSystemRepository is a mock implementation of repository.SRSSystemRepository
type MockSRSSystemRepository struct {
	mock.Mock
}

func (m *MockSRSSystemRepository) List(ctx context.Context) ([]models.SRSSystem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SRSSystem), args.Error(1)
}

func (m *MockSRSSystemRepository) Upsert(ctx context.Context, system models.SRSSystem) error {
	args := m.Called(ctx, system)
	return args.Error(0)
}
