package app

import (
	"context"
	"errors"

	"nutrilog/internal/domain"
)

// SettingsService encapsulates goal and preference management.
type SettingsService struct {
	repo domain.SettingsRepository
}

// NewSettingsService creates a SettingsService backed by the given
// repository.
func NewSettingsService(repo domain.SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

// Get returns the stored settings, creating a defaults row on first use.
func (s *SettingsService) Get(ctx context.Context, userID string) (domain.UserSettings, error) {
	st, err := s.repo.GetSettings(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return s.repo.SaveSettings(ctx, domain.NewDefaultSettings(userID))
	}
	return st, err
}

// Save validates and persists the given settings.
func (s *SettingsService) Save(ctx context.Context, st domain.UserSettings) (domain.UserSettings, error) {
	if st.DailyCalorieGoal < 0 {
		return domain.UserSettings{}, validationf("daily calorie goal must be >= 0")
	}
	if st.DailyWaterGoalML < 0 {
		return domain.UserSettings{}, validationf("daily water goal must be >= 0 ml")
	}
	if st.TargetWeightKG != nil && *st.TargetWeightKG <= 0 {
		return domain.UserSettings{}, validationf("target weight must be > 0 kg")
	}
	if st.InitialWeightKG != nil && *st.InitialWeightKG <= 0 {
		return domain.UserSettings{}, validationf("initial weight must be > 0 kg")
	}
	if st.Language == "" {
		st.Language = domain.DefaultLanguage
	}
	return s.repo.SaveSettings(ctx, st)
}
