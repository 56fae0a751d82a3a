package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/kanjiflash/internal/models"
	"github.com/vytor/kanjiflash/internal/srs"
	"github.com/vytor/kanjiflash/internal/testutil/mocks"
)

var ctx = context.Background()

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func int64Ptr(v int64) *int64 { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func standardEngine() *srs.Engine {
	return srs.NewEngine(models.SRSSystem{
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
	})
}

func treeKanji() *models.Subject {
	return &models.Subject{
		ID:          440,
		Type:        models.SubjectKanji,
		Level:       1,
		Characters:  "木",
		SRSSystemID: 1,
		Meanings:    []models.Meaning{{Meaning: "Tree", Primary: true, AcceptedAnswer: true}},
		AuxiliaryMeanings: []models.AuxiliaryMeaning{
			{Meaning: "Wood", Type: models.AuxiliaryWhitelist},
			{Meaning: "Three", Type: models.AuxiliaryBlacklist},
		},
		Readings: []models.Reading{
			{Reading: "もく", Type: models.ReadingOnyomi, Primary: true, AcceptedAnswer: true},
			{Reading: "き", Type: models.ReadingKunyomi, AcceptedAnswer: false},
		},
	}
}

func groundRadical() *models.Subject {
	return &models.Subject{
		ID: 1, Type: models.SubjectRadical, Level: 1, Characters: "一", SRSSystemID: 1,
		Meanings: []models.Meaning{{Meaning: "Ground", Primary: true, AcceptedAnswer: true}},
	}
}

// fixedSettings returns a settings service mock that always answers s.
func fixedSettings(s models.Settings) *mocks.MockSettingsService {
	m := new(mocks.MockSettingsService)
	m.On("GetSettings", mock.Anything).Return(s, nil)
	return m
}

var defaultSettings = models.Settings{OverdueThreshold: 20, NearMatchPolicy: "retry"}
