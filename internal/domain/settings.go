package domain

import (
	"context"
	"time"
)

// Default goal values applied when a settings row is created without them.
const (
	DefaultCalorieGoal = 2000
	DefaultWaterGoalML = 2000
	DefaultLanguage    = "ru"
)

// UserSettings holds per-user goals and preferences.
type UserSettings struct {
	ID                   string    `json:"id"`
	UserID               string    `json:"user_id,omitempty"`
	DailyCalorieGoal     int       `json:"daily_calorie_goal"`
	DailyWaterGoalML     int       `json:"daily_water_goal_ml"`
	TargetWeightKG       *float64  `json:"target_weight_kg,omitempty"`
	InitialWeightKG      *float64  `json:"initial_weight_kg,omitempty"`
	NotificationsEnabled bool      `json:"notifications_enabled"`
	DarkMode             bool      `json:"dark_mode"`
	Language             string    `json:"language"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// NewDefaultSettings returns a settings value with every field at its
// documented default, without id or timestamps.
func NewDefaultSettings(userID string) UserSettings {
	return UserSettings{
		UserID:               userID,
		DailyCalorieGoal:     DefaultCalorieGoal,
		DailyWaterGoalML:     DefaultWaterGoalML,
		NotificationsEnabled: true,
		Language:             DefaultLanguage,
	}
}

// SettingsRepository is the port for settings persistence. Get returns
// ErrNotFound when no settings row exists yet; Save is insert-or-replace
// keyed by id and preserves created_at on replace.
type SettingsRepository interface {
	GetSettings(ctx context.Context, userID string) (UserSettings, error)
	SaveSettings(ctx context.Context, s UserSettings) (UserSettings, error)
}
