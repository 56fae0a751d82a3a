package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/vytor/kanjiflash/internal/errors"
	"github.com/vytor/kanjiflash/internal/logger"
	"github.com/vytor/kanjiflash/internal/models"
	"github.com/vytor/kanjiflash/internal/repository"
	"github.com/vytor/kanjiflash/internal/srs"
)

// ImportService loads content dumps into the local store
type ImportService interface {
	Import(ctx context.Context, dump models.ContentDump) (models.ImportSummary, error)
	ImportFile(ctx context.Context, path string) (models.ImportSummary, error)
}

type importService struct {
	srsRepo        repository.SRSSystemRepository
	subjectRepo    repository.SubjectRepository
	assignmentRepo repository.AssignmentRepository
	engine         *srs.Engine
}

// NewImportService creates a new ImportService. Imported SRS systems are
// loaded into engine once stored.
func NewImportService(
	srsRepo repository.SRSSystemRepository,
	subjectRepo repository.SubjectRepository,
	assignmentRepo repository.AssignmentRepository,
	engine *srs.Engine,
) ImportService {
	return &importService{
		srsRepo:        srsRepo,
		subjectRepo:    subjectRepo,
		assignmentRepo: assignmentRepo,
		engine:         engine,
	}
}

func (s *importService) ImportFile(ctx context.Context, path string) (models.ImportSummary, error) {
	log := logger.FromContext(ctx).WithField("path", path)

	f, err := os.Open(path)
	if err != nil {
		log.Warn("failed to open content dump: %v", err)
		return models.ImportSummary{}, errors.NewBadRequestError(fmt.Sprintf("cannot open %s", path))
	}
	defer f.Close()

	var dump models.ContentDump
	if err := json.NewDecoder(f).Decode(&dump); err != nil {
		log.Warn("failed to decode content dump: %v", err)
		return models.ImportSummary{}, errors.NewBadRequestError(fmt.Sprintf("invalid content dump: %v", err))
	}
	return s.Import(ctx, dump)
}

func validateDump(dump models.ContentDump) error {
	for _, sys := range dump.SRSSystems {
		if len(sys.Stages) != srs.MaxStage+1 {
			return errors.NewValidationError("srs_systems", fmt.Sprintf("system %d has %d stages, want %d", sys.ID, len(sys.Stages), srs.MaxStage+1))
		}
	}
	for _, subj := range dump.Subjects {
		if !subj.Type.Valid() {
			return errors.NewValidationError("subjects", fmt.Sprintf("subject %d has unknown type %q", subj.ID, subj.Type))
		}
		if subj.Level < 1 || subj.Level > 60 {
			return errors.NewValidationError("subjects", fmt.Sprintf("subject %d has level %d", subj.ID, subj.Level))
		}
	}
	for _, a := range dump.Assignments {
		if a.SRSStage < 0 {
			return errors.NewValidationError("assignments", fmt.Sprintf("assignment %d has stage %d", a.ID, a.SRSStage))
		}
	}
	return nil
}

// Import stores the dump in dependency order: systems, subjects, then
// assignments.
func (s *importService) Import(ctx context.Context, dump models.ContentDump) (models.ImportSummary, error) {
	log := logger.FromContext(ctx)
	log.Info("importing content: srs_systems=%d, subjects=%d, assignments=%d",
		len(dump.SRSSystems), len(dump.Subjects), len(dump.Assignments))

	if err := validateDump(dump); err != nil {
		return models.ImportSummary{}, err
	}

	var summary models.ImportSummary
	for _, sys := range dump.SRSSystems {
		if err := s.srsRepo.Upsert(ctx, sys); err != nil {
			log.Error("failed to store srs system %d: %v", sys.ID, err)
			return summary, errors.NewInternalError(err)
		}
		summary.SRSSystems++
	}
	if summary.SRSSystems > 0 {
		systems, err := s.srsRepo.List(ctx)
		if err != nil {
			log.Error("failed to reload srs systems: %v", err)
			return summary, errors.NewInternalError(err)
		}
		s.engine.Load(systems)
	}

	if err := s.subjectRepo.UpsertBatch(ctx, dump.Subjects); err != nil {
		log.Error("failed to store subjects: %v", err)
		return summary, errors.NewInternalError(err)
	}
	summary.Subjects = len(dump.Subjects)

	if err := s.assignmentRepo.UpsertBatch(ctx, dump.Assignments); err != nil {
		log.Error("failed to store assignments: %v", err)
		return summary, errors.NewInternalError(err)
	}
	summary.Assignments = len(dump.Assignments)

	log.Info("content imported")
	return summary, nil
}
