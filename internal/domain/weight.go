package domain

import (
	"context"
	"time"
)

// WeightRecord represents a single weight measurement in kilograms.
// RecordDate is a local calendar day in DateLayout form.
type WeightRecord struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id,omitempty"`
	WeightKG   float64   `json:"weight_kg"`
	RecordDate string    `json:"record_date"`
	CreatedAt  time.Time `json:"created_at"`
}

// WeightRepository is the port for weight persistence.
type WeightRepository interface {
	AddWeight(ctx context.Context, w WeightRecord) (WeightRecord, error)
	UpdateWeight(ctx context.Context, w WeightRecord) (WeightRecord, error)
	DeleteWeight(ctx context.Context, id string) error
	ListWeight(ctx context.Context, p Period, userID string) ([]WeightRecord, error)
}
