package app

import (
	"context"

	"nutrilog/internal/domain"
)

// WaterService encapsulates water-tracking use cases.
type WaterService struct {
	repo domain.WaterRepository
}

// NewWaterService creates a WaterService backed by the given repository.
func NewWaterService(repo domain.WaterRepository) *WaterService {
	return &WaterService{repo: repo}
}

// Add validates and stores a water intake record.
func (s *WaterService) Add(ctx context.Context, w domain.WaterRecord) (domain.WaterRecord, error) {
	if w.AmountML < 0 {
		return domain.WaterRecord{}, validationf("amount must be >= 0 ml")
	}
	return s.repo.AddWater(ctx, w)
}

// Update replaces the record with the matching id.
func (s *WaterService) Update(ctx context.Context, w domain.WaterRecord) (domain.WaterRecord, error) {
	if w.ID == "" {
		return domain.WaterRecord{}, validationf("water record id is required")
	}
	if w.AmountML < 0 {
		return domain.WaterRecord{}, validationf("amount must be >= 0 ml")
	}
	return s.repo.UpdateWater(ctx, w)
}

// Delete removes the record with the given id; missing ids are a no-op.
func (s *WaterService) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteWater(ctx, id)
}

// List returns water records inside the period window, newest first.
func (s *WaterService) List(ctx context.Context, p domain.Period, userID string) ([]domain.WaterRecord, error) {
	return s.repo.ListWater(ctx, p, userID)
}

// TotalForDay sums intake for one calendar day.
func (s *WaterService) TotalForDay(ctx context.Context, day string, userID string) (int, error) {
	records, err := s.repo.ListWater(ctx, domain.PeriodDay, userID)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, w := range records {
		if w.RecordDate == day {
			total += w.AmountML
		}
	}
	return total, nil
}
