package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"nutrilog/internal/domain"
)

// AddWeight inserts a weight record, filling in id, record_date and
// created_at when absent, and returns the persisted row.
func (s *Store) AddWeight(ctx context.Context, w domain.WeightRecord) (domain.WeightRecord, error) {
	now := s.now()
	if w.ID == "" {
		w.ID = domain.NewID(domain.WeightIDPrefix)
	}
	if w.RecordDate == "" {
		w.RecordDate = now.Format(domain.DateLayout)
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = now
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO weight_records (id, user_id, weight_kg, record_date, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		w.ID, nullStr(w.UserID), w.WeightKG, w.RecordDate, fmtTime(w.CreatedAt),
	)
	if err != nil {
		return domain.WeightRecord{}, fmt.Errorf("insert weight record: %w", err)
	}
	return s.getWeight(ctx, w.ID)
}

// UpdateWeight replaces the mutable fields of the row matching w.ID.
func (s *Store) UpdateWeight(ctx context.Context, w domain.WeightRecord) (domain.WeightRecord, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE weight_records SET user_id = ?, weight_kg = ?, record_date = ?
		WHERE id = ?`,
		nullStr(w.UserID), w.WeightKG, w.RecordDate, w.ID,
	)
	if err != nil {
		return domain.WeightRecord{}, fmt.Errorf("update weight record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.WeightRecord{}, fmt.Errorf("update weight record: %w", err)
	}
	if n == 0 {
		return domain.WeightRecord{}, domain.ErrNotFound
	}
	return s.getWeight(ctx, w.ID)
}

// DeleteWeight removes the row if present; missing ids are a no-op.
func (s *Store) DeleteWeight(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM weight_records WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete weight record: %w", err)
	}
	return nil
}

// ListWeight returns weight records dated inside the period window,
// newest first. Unknown periods fall back to the weight default (month).
func (s *Store) ListWeight(ctx context.Context, p domain.Period, userID string) ([]domain.WeightRecord, error) {
	since := p.Or(domain.DefaultWeightPeriod).StartDate(s.now())

	query := `SELECT id, user_id, weight_kg, record_date, created_at
		FROM weight_records WHERE record_date >= ?`
	args := []any{since}
	if userID != "" {
		query += ` AND user_id = ?`
		args = append(args, userID)
	}
	query += ` ORDER BY record_date DESC, created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list weight records: %w", err)
	}
	defer rows.Close()

	out := []domain.WeightRecord{}
	for rows.Next() {
		w, err := scanWeight(rows)
		if err != nil {
			return nil, fmt.Errorf("list weight records: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (s *Store) getWeight(ctx context.Context, id string) (domain.WeightRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, weight_kg, record_date, created_at
		FROM weight_records WHERE id = ?`, id)
	w, err := scanWeight(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.WeightRecord{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.WeightRecord{}, fmt.Errorf("get weight record: %w", err)
	}
	return w, nil
}

func scanWeight(r rowScanner) (domain.WeightRecord, error) {
	var (
		w         domain.WeightRecord
		userID    sql.NullString
		createdAt string
	)
	if err := r.Scan(&w.ID, &userID, &w.WeightKG, &w.RecordDate, &createdAt); err != nil {
		return domain.WeightRecord{}, err
	}
	w.UserID = strOrEmpty(userID)
	w.CreatedAt = parseTime(createdAt)
	return w, nil
}
