package domain

import (
	"context"
	"time"
)

// WaterRecord represents a single water intake entry. RecordDate is a
// local calendar day in DateLayout form; water entries carry no
// updated_at because they are only ever replaced whole.
type WaterRecord struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id,omitempty"`
	AmountML   int       `json:"amount_ml"`
	RecordDate string    `json:"record_date"`
	CreatedAt  time.Time `json:"created_at"`
}

// WaterRepository is the port for water persistence.
type WaterRepository interface {
	AddWater(ctx context.Context, w WaterRecord) (WaterRecord, error)
	UpdateWater(ctx context.Context, w WaterRecord) (WaterRecord, error)
	DeleteWater(ctx context.Context, id string) error
	ListWater(ctx context.Context, p Period, userID string) ([]WaterRecord, error)
}
