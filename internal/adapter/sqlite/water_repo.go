package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"nutrilog/internal/domain"
)

// AddWater inserts a water record, filling in id, record_date and
// created_at when absent, and returns the persisted row.
func (s *Store) AddWater(ctx context.Context, w domain.WaterRecord) (domain.WaterRecord, error) {
	now := s.now()
	if w.ID == "" {
		w.ID = domain.NewID(domain.WaterIDPrefix)
	}
	if w.RecordDate == "" {
		w.RecordDate = now.Format(domain.DateLayout)
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = now
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO water_records (id, user_id, amount_ml, record_date, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		w.ID, nullStr(w.UserID), w.AmountML, w.RecordDate, fmtTime(w.CreatedAt),
	)
	if err != nil {
		return domain.WaterRecord{}, fmt.Errorf("insert water record: %w", err)
	}
	return s.getWater(ctx, w.ID)
}

// UpdateWater replaces the mutable fields of the row matching w.ID.
// Water records have no updated_at; the whole row is simply swapped.
func (s *Store) UpdateWater(ctx context.Context, w domain.WaterRecord) (domain.WaterRecord, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE water_records SET user_id = ?, amount_ml = ?, record_date = ?
		WHERE id = ?`,
		nullStr(w.UserID), w.AmountML, w.RecordDate, w.ID,
	)
	if err != nil {
		return domain.WaterRecord{}, fmt.Errorf("update water record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.WaterRecord{}, fmt.Errorf("update water record: %w", err)
	}
	if n == 0 {
		return domain.WaterRecord{}, domain.ErrNotFound
	}
	return s.getWater(ctx, w.ID)
}

// DeleteWater removes the row if present; missing ids are a no-op.
func (s *Store) DeleteWater(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM water_records WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete water record: %w", err)
	}
	return nil
}

// ListWater returns water records dated inside the period window, newest
// first.
func (s *Store) ListWater(ctx context.Context, p domain.Period, userID string) ([]domain.WaterRecord, error) {
	since := p.Or(domain.DefaultWaterPeriod).StartDate(s.now())

	query := `SELECT id, user_id, amount_ml, record_date, created_at
		FROM water_records WHERE record_date >= ?`
	args := []any{since}
	if userID != "" {
		query += ` AND user_id = ?`
		args = append(args, userID)
	}
	query += ` ORDER BY record_date DESC, created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list water records: %w", err)
	}
	defer rows.Close()

	out := []domain.WaterRecord{}
	for rows.Next() {
		w, err := scanWater(rows)
		if err != nil {
			return nil, fmt.Errorf("list water records: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (s *Store) getWater(ctx context.Context, id string) (domain.WaterRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, amount_ml, record_date, created_at
		FROM water_records WHERE id = ?`, id)
	w, err := scanWater(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.WaterRecord{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.WaterRecord{}, fmt.Errorf("get water record: %w", err)
	}
	return w, nil
}

func scanWater(r rowScanner) (domain.WaterRecord, error) {
	var (
		w         domain.WaterRecord
		userID    sql.NullString
		createdAt string
	)
	if err := r.Scan(&w.ID, &userID, &w.AmountML, &w.RecordDate, &createdAt); err != nil {
		return domain.WaterRecord{}, err
	}
	w.UserID = strOrEmpty(userID)
	w.CreatedAt = parseTime(createdAt)
	return w, nil
}
