package services

import (
	"context"

	"github.com/vytor/kanjiflash/internal/errors"
	"github.com/vytor/kanjiflash/internal/logger"
	"github.com/vytor/kanjiflash/internal/models"
	"github.com/vytor/kanjiflash/internal/pitch"
)

// PitchLookup is satisfied by *pitch.Dictionary.
type PitchLookup interface {
	Lookup(ctx context.Context, s models.Subject) ([]pitch.ReadingPitch, bool, error)
}

// PitchResult is the pitch accent of a subject's readings. Available is false
// for subjects that are not vocabulary.
type PitchResult struct {
	Available bool                 `json:"available"`
	Readings  []pitch.ReadingPitch `json:"readings"`
}

// PitchService looks up pitch accents for display
type PitchService interface {
	GetPitch(ctx context.Context, subjectID int64) (*PitchResult, error)
}

type pitchService struct {
	subjects SubjectService
	lookup   PitchLookup
}

// NewPitchService creates a new PitchService
func NewPitchService(subjects SubjectService, lookup PitchLookup) PitchService {
	return &pitchService{subjects: subjects, lookup: lookup}
}

func (s *pitchService) GetPitch(ctx context.Context, subjectID int64) (*PitchResult, error) {
	subject, err := s.subjects.GetSubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	readings, ok, err := s.lookup.Lookup(ctx, *subject)
	if err != nil {
		logger.FromContext(ctx).Error("failed to load accent database: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if readings == nil {
		readings = []pitch.ReadingPitch{}
	}
	return &PitchResult{Available: ok, Readings: readings}, nil
}
