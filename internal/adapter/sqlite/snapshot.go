package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"nutrilog/internal/domain"
)

// ExportAll reads every row of every collection. It never mutates the
// store.
func (s *Store) ExportAll(ctx context.Context) (domain.SnapshotData, error) {
	var data domain.SnapshotData

	rows, err := s.db.QueryContext(ctx, `SELECT `+mealColumns+` FROM meals ORDER BY meal_time ASC`)
	if err != nil {
		return data, fmt.Errorf("export meals: %w", err)
	}
	defer rows.Close()
	data.Meals = []domain.MealRecord{}
	for rows.Next() {
		m, err := scanMeal(rows)
		if err != nil {
			return data, fmt.Errorf("export meals: %w", err)
		}
		data.Meals = append(data.Meals, m)
	}
	if err := rows.Err(); err != nil {
		return data, fmt.Errorf("export meals: %w", err)
	}

	wrows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, amount_ml, record_date, created_at
		FROM water_records ORDER BY record_date ASC, created_at ASC`)
	if err != nil {
		return data, fmt.Errorf("export water records: %w", err)
	}
	defer wrows.Close()
	data.WaterRecords = []domain.WaterRecord{}
	for wrows.Next() {
		w, err := scanWater(wrows)
		if err != nil {
			return data, fmt.Errorf("export water records: %w", err)
		}
		data.WaterRecords = append(data.WaterRecords, w)
	}
	if err := wrows.Err(); err != nil {
		return data, fmt.Errorf("export water records: %w", err)
	}

	grows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, weight_kg, record_date, created_at
		FROM weight_records ORDER BY record_date ASC, created_at ASC`)
	if err != nil {
		return data, fmt.Errorf("export weight records: %w", err)
	}
	defer grows.Close()
	data.WeightRecords = []domain.WeightRecord{}
	for grows.Next() {
		w, err := scanWeight(grows)
		if err != nil {
			return data, fmt.Errorf("export weight records: %w", err)
		}
		data.WeightRecords = append(data.WeightRecords, w)
	}
	if err := grows.Err(); err != nil {
		return data, fmt.Errorf("export weight records: %w", err)
	}

	srows, err := s.db.QueryContext(ctx, `SELECT `+settingsColumns+` FROM user_settings ORDER BY created_at ASC`)
	if err != nil {
		return data, fmt.Errorf("export settings: %w", err)
	}
	defer srows.Close()
	data.UserSettings = []domain.UserSettings{}
	for srows.Next() {
		st, err := scanSettings(srows)
		if err != nil {
			return data, fmt.Errorf("export settings: %w", err)
		}
		data.UserSettings = append(data.UserSettings, st)
	}
	if err := srows.Err(); err != nil {
		return data, fmt.Errorf("export settings: %w", err)
	}

	return data, nil
}

// ImportAll restores a snapshot inside a single transaction. With
// overwrite all four collections are cleared first; otherwise incoming
// rows are inserted alongside existing ones (settings replace by id,
// the rest conflict on duplicate ids and abort the whole import).
func (s *Store) ImportAll(ctx context.Context, data domain.SnapshotData, overwrite bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if overwrite {
		if err := clearAllTx(tx); err != nil {
			return err
		}
	}

	now := s.now()
	for _, m := range data.Meals {
		if m.ID == "" {
			m.ID = domain.NewID(domain.MealIDPrefix)
		}
		if m.MealTime.IsZero() {
			m.MealTime = now
		}
		if m.CreatedAt.IsZero() {
			m.CreatedAt = now
		}
		if m.UpdatedAt.IsZero() {
			m.UpdatedAt = now
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO meals (`+mealColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			m.ID, nullStr(m.UserID), m.Title, nullStr(m.Description), string(m.Category),
			m.PortionWeight, m.Calories, m.Protein, m.Fat, m.Carbs, nullStr(m.ImageURL),
			fmtTime(m.MealTime), fmtTime(m.CreatedAt), fmtTime(m.UpdatedAt),
		)
		if err != nil {
			return fmt.Errorf("import meal %q: %w", m.ID, err)
		}
	}

	for _, w := range data.WaterRecords {
		if w.ID == "" {
			w.ID = domain.NewID(domain.WaterIDPrefix)
		}
		if w.RecordDate == "" {
			w.RecordDate = now.Format(domain.DateLayout)
		}
		if w.CreatedAt.IsZero() {
			w.CreatedAt = now
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO water_records (id, user_id, amount_ml, record_date, created_at)
			VALUES (?, ?, ?, ?, ?)`,
			w.ID, nullStr(w.UserID), w.AmountML, w.RecordDate, fmtTime(w.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("import water record %q: %w", w.ID, err)
		}
	}

	for _, w := range data.WeightRecords {
		if w.ID == "" {
			w.ID = domain.NewID(domain.WeightIDPrefix)
		}
		if w.RecordDate == "" {
			w.RecordDate = now.Format(domain.DateLayout)
		}
		if w.CreatedAt.IsZero() {
			w.CreatedAt = now
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO weight_records (id, user_id, weight_kg, record_date, created_at)
			VALUES (?, ?, ?, ?, ?)`,
			w.ID, nullStr(w.UserID), w.WeightKG, w.RecordDate, fmtTime(w.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("import weight record %q: %w", w.ID, err)
		}
	}

	for _, st := range data.UserSettings {
		if st.ID == "" {
			st.ID = domain.NewID(domain.SettingsIDPrefix)
		}
		if st.CreatedAt.IsZero() {
			st.CreatedAt = now
		}
		if st.UpdatedAt.IsZero() {
			st.UpdatedAt = now
		}
		_, err := tx.ExecContext(ctx, `
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
			return fmt.Errorf("import settings %q: %w", st.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import tx: %w", err)
	}
	return nil
}

// ClearAll deletes every row from every collection, keeping the schema.
func (s *Store) ClearAll(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin clear tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := clearAllTx(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit clear tx: %w", err)
	}
	return nil
}

func clearAllTx(tx *sql.Tx) error {
	stmts := []string{
		`DELETE FROM meals`,
		`DELETE FROM water_records`,
		`DELETE FROM weight_records`,
		`DELETE FROM user_settings`,
	}
	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("clear collections: %w", err)
		}
	}
	return nil
}
