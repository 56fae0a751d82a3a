package services

import (
	"context"
	"strconv"

	"github.com/vytor/kanjiflash/internal/answer"
	"github.com/vytor/kanjiflash/internal/errors"
	"github.com/vytor/kanjiflash/internal/logger"
	"github.com/vytor/kanjiflash/internal/models"
	"github.com/vytor/kanjiflash/internal/repository"
)

const (
	settingOverdueThreshold = "overdue_threshold"
	settingNearMatchPolicy  = "near_match_policy"
)

// SettingsService reads and updates user settings
type SettingsService interface {
	GetSettings(ctx context.Context) (models.Settings, error)
	UpdateSettings(ctx context.Context, settings models.Settings) (models.Settings, error)
}

type settingsService struct {
	repo     repository.SettingsRepository
	defaults models.Settings
}

// NewSettingsService creates a new SettingsService. Keys missing from the
// store fall back to defaults.
func NewSettingsService(repo repository.SettingsRepository, defaults models.Settings) SettingsService {
	return &settingsService{repo: repo, defaults: defaults}
}

func (s *settingsService) GetSettings(ctx context.Context) (models.Settings, error) {
	log := logger.FromContext(ctx)

	values, err := s.repo.All(ctx)
	if err != nil {
		log.Error("failed to read settings: %v", err)
		return models.Settings{}, errors.NewInternalError(err)
	}

	settings := s.defaults
	if v, ok := values[settingOverdueThreshold]; ok {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 && n <= 100 {
			settings.OverdueThreshold = n
		} else {
			log.Warn("ignoring stored %s=%q", settingOverdueThreshold, v)
		}
	}
	if v, ok := values[settingNearMatchPolicy]; ok {
		if _, err := answer.ParsePolicy(v); err == nil {
			settings.NearMatchPolicy = v
		} else {
			log.Warn("ignoring stored %s=%q", settingNearMatchPolicy, v)
		}
	}
	return settings, nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, settings models.Settings) (models.Settings, error) {
	log := logger.FromContext(ctx)

	if settings.OverdueThreshold < 1 || settings.OverdueThreshold > 100 {
		return models.Settings{}, errors.NewValidationError(settingOverdueThreshold, "must be between 1 and 100")
	}
	if _, err := answer.ParsePolicy(settings.NearMatchPolicy); err != nil {
		return models.Settings{}, errors.NewValidationError(settingNearMatchPolicy, "must be one of accept, accept_notify, retry, reject")
	}

	if err := s.repo.Set(ctx, map[string]string{
		settingOverdueThreshold: strconv.Itoa(settings.OverdueThreshold),
		settingNearMatchPolicy:  settings.NearMatchPolicy,
	}); err != nil {
		log.Error("failed to save settings: %v", err)
		return models.Settings{}, errors.NewInternalError(err)
	}

	log.Info("settings updated: overdue_threshold=%d, near_match_policy=%s",
		settings.OverdueThreshold, settings.NearMatchPolicy)
	return settings, nil
}
