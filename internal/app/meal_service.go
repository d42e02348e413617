// Package app holds the application services and business logic.
package app

import (
	"context"

	"nutrilog/internal/domain"
)

// MealService encapsulates meal-logging use cases. The store itself is
// permissive; range checks live here, on the calling side.
type MealService struct {
	repo domain.MealRepository
}

// NewMealService creates a MealService backed by the given repository.
func NewMealService(repo domain.MealRepository) *MealService {
	return &MealService{repo: repo}
}

// Add validates and stores a meal, returning the persisted row.
func (s *MealService) Add(ctx context.Context, m domain.MealRecord) (domain.MealRecord, error) {
	if err := checkMeal(m); err != nil {
		return domain.MealRecord{}, err
	}
	return s.repo.AddMeal(ctx, m)
}

// Update replaces the meal with the matching id.
func (s *MealService) Update(ctx context.Context, m domain.MealRecord) (domain.MealRecord, error) {
	if m.ID == "" {
		return domain.MealRecord{}, validationf("meal id is required")
	}
	if err := checkMeal(m); err != nil {
		return domain.MealRecord{}, err
	}
	return s.repo.UpdateMeal(ctx, m)
}

// Delete removes the meal with the given id; missing ids are a no-op.
func (s *MealService) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteMeal(ctx, id)
}

// List returns meals inside the period window, newest first.
func (s *MealService) List(ctx context.Context, p domain.Period, userID string) ([]domain.MealRecord, error) {
	return s.repo.ListMeals(ctx, p, userID)
}

func checkMeal(m domain.MealRecord) error {
	if m.Category != "" && !domain.KnownCategory(m.Category) {
		return validationf("unknown meal category %q", m.Category)
	}
	if m.Calories < 0 {
		return validationf("calories must be >= 0")
	}
	if m.Protein < 0 || m.Fat < 0 || m.Carbs < 0 {
		return validationf("macros must be >= 0")
	}
	if m.PortionWeight != nil && *m.PortionWeight < 0 {
		return validationf("portion weight must be >= 0")
	}
	return nil
}
