package sqlite_test

import (
	"context"
	"database/sql"

	"github.com/stretchr/testify/require"
	"github.com/vytor/kanjiflash/internal/models"
	"github.com/vytor/kanjiflash/internal/repository/sqlite"
)

func int64Ptr(v int64) *int64 { return &v }

func standardSystem() models.SRSSystem {
	return models.SRSSystem{
		ID:   1,
		Name: "standard",
		Stages: []models.SRSStage{
			{},
			{Interval: int64Ptr(4), IntervalUnit: "hours"},
			{Interval: int64Ptr(8), IntervalUnit: "hours"},
			{Interval: int64Ptr(1), IntervalUnit: "days"},
			{Interval: int64Ptr(2), IntervalUnit: "days"},
			{Interval: int64Ptr(1), IntervalUnit: "weeks"},
			{Interval: int64Ptr(2), IntervalUnit: "weeks"},
			{Interval: int64Ptr(730), IntervalUnit: "hours"},
			{Interval: int64Ptr(2920), IntervalUnit: "hours"},
			{},
		},
	}
}

func kanjiSubject(id int64, level int, characters string) models.Subject {
	return models.Subject{
		ID:          id,
		Type:        models.SubjectKanji,
		Level:       level,
		Characters:  characters,
		Slug:        characters,
		SRSSystemID: 1,
		Meanings:    []models.Meaning{{Meaning: "Tree", Primary: true, AcceptedAnswer: true}},
		AuxiliaryMeanings: []models.AuxiliaryMeaning{
			{Meaning: "Wood", Type: models.AuxiliaryWhitelist},
		},
		Readings: []models.Reading{
			{Reading: "もく", Type: models.ReadingOnyomi, Primary: true, AcceptedAnswer: true},
			{Reading: "き", Type: models.ReadingKunyomi, AcceptedAnswer: false},
		},
	}
}

// seedSubjects stores the standard SRS system and the given subjects.
func seedSubjects(t require.TestingT, db *sql.DB, subjects ...models.Subject) {
	ctx := context.Background()
	require.NoError(t, sqlite.NewSRSSystemRepository(db).Upsert(ctx, standardSystem()))
	require.NoError(t, sqlite.NewSubjectRepository(db).UpsertBatch(ctx, subjects))
}
