package app

import (
	"context"

	"nutrilog/internal/domain"
)

// WeightService encapsulates weight-tracking use cases.
type WeightService struct {
	repo domain.WeightRepository
}

// NewWeightService creates a WeightService backed by the given repository.
func NewWeightService(repo domain.WeightRepository) *WeightService {
	return &WeightService{repo: repo}
}

// Add validates and stores a weight measurement.
func (s *WeightService) Add(ctx context.Context, w domain.WeightRecord) (domain.WeightRecord, error) {
	if w.WeightKG <= 0 {
		return domain.WeightRecord{}, validationf("weight must be > 0 kg")
	}
	return s.repo.AddWeight(ctx, w)
}

// Update replaces the record with the matching id.
func (s *WeightService) Update(ctx context.Context, w domain.WeightRecord) (domain.WeightRecord, error) {
	if w.ID == "" {
		return domain.WeightRecord{}, validationf("weight record id is required")
	}
	if w.WeightKG <= 0 {
		return domain.WeightRecord{}, validationf("weight must be > 0 kg")
	}
	return s.repo.UpdateWeight(ctx, w)
}

// Delete removes the record with the given id; missing ids are a no-op.
func (s *WeightService) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteWeight(ctx, id)
}

// List returns weight records inside the period window, newest first.
func (s *WeightService) List(ctx context.Context, p domain.Period, userID string) ([]domain.WeightRecord, error) {
	return s.repo.ListWeight(ctx, p, userID)
}
