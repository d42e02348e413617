package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"nutrilog/internal/domain"
)

const mealColumns = `id, user_id, title, description, category, portion_weight,
	calories, protein, fat, carbs, image_url, meal_time, created_at, updated_at`

// AddMeal inserts a meal, filling in id and timestamps when the caller
// left them unset, and returns the row as read back from storage.
func (s *Store) AddMeal(ctx context.Context, m domain.MealRecord) (domain.MealRecord, error) {
	now := s.now()
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

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO meals (`+mealColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, nullStr(m.UserID), m.Title, nullStr(m.Description), string(m.Category),
		m.PortionWeight, m.Calories, m.Protein, m.Fat, m.Carbs, nullStr(m.ImageURL),
		fmtTime(m.MealTime), fmtTime(m.CreatedAt), fmtTime(m.UpdatedAt),
	)
	if err != nil {
		return domain.MealRecord{}, fmt.Errorf("insert meal: %w", err)
	}
	return s.getMeal(ctx, m.ID)
}

// UpdateMeal replaces every mutable field of the row matching m.ID and
// stamps a fresh updated_at. Returns domain.ErrNotFound when the id does
// not exist; created_at is never touched.
func (s *Store) UpdateMeal(ctx context.Context, m domain.MealRecord) (domain.MealRecord, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE meals SET user_id = ?, title = ?, description = ?, category = ?,
			portion_weight = ?, calories = ?, protein = ?, fat = ?, carbs = ?,
			image_url = ?, meal_time = ?, updated_at = ?
		WHERE id = ?`,
		nullStr(m.UserID), m.Title, nullStr(m.Description), string(m.Category),
		m.PortionWeight, m.Calories, m.Protein, m.Fat, m.Carbs, nullStr(m.ImageURL),
		fmtTime(m.MealTime), fmtTime(s.now()), m.ID,
	)
	if err != nil {
		return domain.MealRecord{}, fmt.Errorf("update meal: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.MealRecord{}, fmt.Errorf("update meal: %w", err)
	}
	if n == 0 {
		return domain.MealRecord{}, domain.ErrNotFound
	}
	return s.getMeal(ctx, m.ID)
}

// DeleteMeal removes the row if present. Deleting a missing id is a
// successful no-op.
func (s *Store) DeleteMeal(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM meals WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete meal: %w", err)
	}
	return nil
}

// ListMeals returns meals with meal_time inside the period window, newest
// first, optionally filtered by user id. Unknown periods fall back to the
// meal default.
func (s *Store) ListMeals(ctx context.Context, p domain.Period, userID string) ([]domain.MealRecord, error) {
	since := fmtTime(p.Or(domain.DefaultMealPeriod).Start(s.now()))

	query := `SELECT ` + mealColumns + ` FROM meals WHERE meal_time >= ?`
	args := []any{since}
	if userID != "" {
		query += ` AND user_id = ?`
		args = append(args, userID)
	}
	query += ` ORDER BY meal_time DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	defer rows.Close()

	out := []domain.MealRecord{}
	for rows.Next() {
		m, err := scanMeal(rows)
		if err != nil {
			return nil, fmt.Errorf("list meals: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Store) getMeal(ctx context.Context, id string) (domain.MealRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+mealColumns+` FROM meals WHERE id = ?`, id)
	m, err := scanMeal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.MealRecord{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.MealRecord{}, fmt.Errorf("get meal: %w", err)
	}
	return m, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMeal(r rowScanner) (domain.MealRecord, error) {
	var (
		m                            domain.MealRecord
		userID, desc, imageURL       sql.NullString
		portion                      sql.NullInt64
		mealTime, createdAt, updated string
		category                     string
	)
	err := r.Scan(&m.ID, &userID, &m.Title, &desc, &category, &portion,
		&m.Calories, &m.Protein, &m.Fat, &m.Carbs, &imageURL,
		&mealTime, &createdAt, &updated)
	if err != nil {
		return domain.MealRecord{}, err
	}
	m.UserID = strOrEmpty(userID)
	m.Description = strOrEmpty(desc)
	m.ImageURL = strOrEmpty(imageURL)
	m.Category = domain.MealCategory(category)
	if portion.Valid {
		v := int(portion.Int64)
		m.PortionWeight = &v
	}
	m.MealTime = parseTime(mealTime)
	m.CreatedAt = parseTime(createdAt)
	m.UpdatedAt = parseTime(updated)
	return m, nil
}
