package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"nutrilog/internal/domain"
)

const settingsColumns = `id, user_id, daily_calorie_goal, daily_water_goal_ml,
	target_weight_kg, initial_weight_kg, notifications_enabled, dark_mode,
	language, created_at, updated_at`

// GetSettings returns the settings row for the given user, or the oldest
// row when userID is empty (the single-user case). domain.ErrNotFound
// when no row exists yet.
func (s *Store) GetSettings(ctx context.Context, userID string) (domain.UserSettings, error) {
	query := `SELECT ` + settingsColumns + ` FROM user_settings`
	args := []any{}
	if userID != "" {
		query += ` WHERE user_id = ?`
		args = append(args, userID)
	}
	query += ` ORDER BY created_at ASC LIMIT 1`

	row := s.db.QueryRowContext(ctx, query, args...)
	st, err := scanSettings(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.UserSettings{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.UserSettings{}, fmt.Errorf("get settings: %w", err)
	}
	return st, nil
}

// SaveSettings inserts or replaces the settings row keyed by id, filling
// in id and timestamps when absent. created_at survives a replace;
// updated_at is stamped on every save.
func (s *Store) SaveSettings(ctx context.Context, st domain.UserSettings) (domain.UserSettings, error) {
	now := s.now()
	if st.ID == "" {
		st.ID = domain.NewID(domain.SettingsIDPrefix)
	}
	if st.CreatedAt.IsZero() {
		st.CreatedAt = now
	}
	st.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_settings (`+settingsColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id,
			daily_calorie_goal = excluded.daily_calorie_goal,
			daily_water_goal_ml = excluded.daily_water_goal_ml,
			target_weight_kg = excluded.target_weight_kg,
			initial_weight_kg = excluded.initial_weight_kg,
			notifications_enabled = excluded.notifications_enabled,
			dark_mode = excluded.dark_mode,
			language = excluded.language,
			updated_at = excluded.updated_at`,
		st.ID, nullStr(st.UserID), st.DailyCalorieGoal, st.DailyWaterGoalML,
		st.TargetWeightKG, st.InitialWeightKG, st.NotificationsEnabled, st.DarkMode,
		st.Language, fmtTime(st.CreatedAt), fmtTime(st.UpdatedAt),
	)
	if err != nil {
		return domain.UserSettings{}, fmt.Errorf("save settings: %w", err)
	}
	return s.getSettingsByID(ctx, st.ID)
}

func (s *Store) getSettingsByID(ctx context.Context, id string) (domain.UserSettings, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+settingsColumns+` FROM user_settings WHERE id = ?`, id)
	st, err := scanSettings(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.UserSettings{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.UserSettings{}, fmt.Errorf("get settings: %w", err)
	}
	return st, nil
}

func scanSettings(r rowScanner) (domain.UserSettings, error) {
	var (
		st                 domain.UserSettings
		userID             sql.NullString
		target, initial    sql.NullFloat64
		createdAt, updated string
	)
	err := r.Scan(&st.ID, &userID, &st.DailyCalorieGoal, &st.DailyWaterGoalML,
		&target, &initial, &st.NotificationsEnabled, &st.DarkMode,
		&st.Language, &createdAt, &updated)
	if err != nil {
		return domain.UserSettings{}, err
	}
	st.UserID = strOrEmpty(userID)
	if target.Valid {
		v := target.Float64
		st.TargetWeightKG = &v
	}
	if initial.Valid {
		v := initial.Float64
		st.InitialWeightKG = &v
	}
	st.CreatedAt = parseTime(createdAt)
	st.UpdatedAt = parseTime(updated)
	return st, nil
}
