package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/kanjiflash/internal/models"
	"github.com/vytor/kanjiflash/internal/repository"
	"github.com/vytor/kanjiflash/internal/repository/sqlite"
	"github.com/vytor/kanjiflash/internal/testutil"
)

type AssignmentRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.AssignmentRepository
	now  time.Time
}

func (s *AssignmentRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewAssignmentRepository(s.db)
	s.now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	seedSubjects(s.T(), s.db, kanjiSubject(1, 1, "一"), kanjiSubject(2, 1, "二"), kanjiSubject(3, 1, "三"))
}

func (s *AssignmentRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *AssignmentRepositorySuite) seed() {
	past := s.now.Add(-time.Hour)
	future := s.now.Add(time.Hour)
	s.Require().NoError(s.repo.UpsertBatch(context.Background(), []models.Assignment{
		{ID: 10, SubjectID: 1, SRSStage: 3, AvailableAt: &past, UnlockedAt: &past, StartedAt: &past},
		{ID: 20, SubjectID: 2, SRSStage: 6, AvailableAt: &future, UnlockedAt: &past, StartedAt: &past},
		{ID: 30, SubjectID: 3, SRSStage: 0, UnlockedAt: &past},
	}))
}

func (s *AssignmentRepositorySuite) TestUpsertAndGetBySubject() {
	s.seed()
	ctx := context.Background()

	a, err := s.repo.GetBySubject(ctx, 1)
	s.Require().NoError(err)
	s.Assert().Equal(int64(10), a.ID)
	s.Assert().Equal(3, a.SRSStage)
	s.Require().NotNil(a.AvailableAt)
	s.Assert().True(a.AvailableAt.Equal(s.now.Add(-time.Hour)))
	s.Assert().True(a.Started())

	bySubject, err := s.repo.GetBySubject(ctx, 3)
	s.Require().NoError(err)
	s.Assert().Equal(int64(30), bySubject.ID)
	s.Assert().Nil(bySubject.AvailableAt)
	s.Assert().False(bySubject.Started())
}

func (s *AssignmentRepositorySuite) TestGetBySubject_NotFound() {
	a, err := s.repo.GetBySubject(context.Background(), 404)
	s.Assert().ErrorIs(err, sql.ErrNoRows)
	s.Assert().Nil(a)
}

func (s *AssignmentRepositorySuite) TestList_Filters() {
	s.seed()
	ctx := context.Background()

	minStage := 1
	available, err := s.repo.List(ctx, models.AssignmentFilter{MinStage: &minStage, AvailableUntil: &s.now})
	s.Require().NoError(err)
	s.Require().Len(available, 1)
	s.Assert().Equal(int64(10), available[0].ID)

	maxStage := 0
	lessons, err := s.repo.List(ctx, models.AssignmentFilter{MaxStage: &maxStage})
	s.Require().NoError(err)
	s.Require().Len(lessons, 1)
	s.Assert().Equal(int64(30), lessons[0].ID)

	bySubjects, err := s.repo.List(ctx, models.AssignmentFilter{SubjectIDs: []int64{1, 2}})
	s.Require().NoError(err)
	s.Assert().Len(bySubjects, 2)
}

func (s *AssignmentRepositorySuite) TestUpdate() {
	s.seed()
	ctx := context.Background()

	a, err := s.repo.GetBySubject(ctx, 3)
	s.Require().NoError(err)
	started := s.now
	next := s.now.Add(4 * time.Hour)
	a.SRSStage = 1
	a.StartedAt = &started
	a.AvailableAt = &next
	s.Require().NoError(s.repo.Update(ctx, *a))

	got, err := s.repo.GetBySubject(ctx, 3)
	s.Require().NoError(err)
	s.Assert().Equal(1, got.SRSStage)
	s.Require().NotNil(got.AvailableAt)
	s.Assert().True(got.AvailableAt.Equal(next))

	missing := models.Assignment{ID: 999}
	s.Assert().ErrorIs(s.repo.Update(ctx, missing), sql.ErrNoRows)
}

func (s *AssignmentRepositorySuite) TestStartedTimestamps() {
	s.seed()

	times, err := s.repo.StartedTimestamps(context.Background())
	s.Require().NoError(err)
	s.Assert().Len(times, 2)
}

func TestAssignmentRepositorySuite(t *testing.T) {
	suite.Run(t, new(AssignmentRepositorySuite))
}
