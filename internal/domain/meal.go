package domain

import (
	"context"
	"time"
)

// MealCategory classifies a meal record.
type MealCategory string

const (
	CategoryBreakfast MealCategory = "breakfast"
	CategoryLunch     MealCategory = "lunch"
	CategoryDinner    MealCategory = "dinner"
	CategorySnack     MealCategory = "snack"
)

// KnownCategory reports whether c is one of the four meal categories.
func KnownCategory(c MealCategory) bool {
	switch c {
	case CategoryBreakfast, CategoryLunch, CategoryDinner, CategorySnack:
		return true
	}
	return false
}

// MealRecord represents a single logged meal.
type MealRecord struct {
	ID            string       `json:"id"`
	UserID        string       `json:"user_id,omitempty"`
	Title         string       `json:"title"`
	Description   string       `json:"description,omitempty"`
	Category      MealCategory `json:"category"`
	PortionWeight *int         `json:"portion_weight,omitempty"`
	Calories      int          `json:"calories"`
	Protein       float64      `json:"protein"`
	Fat           float64      `json:"fat"`
	Carbs         float64      `json:"carbs"`
	ImageURL      string       `json:"image_url,omitempty"`
	MealTime      time.Time    `json:"meal_time"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// MealRepository is the port for meal persistence.
//
// Add fills in id and timestamps when absent and returns the row as read
// back from storage. Update replaces every mutable field of the row with
// the matching id and returns ErrNotFound when no such row exists. Delete
// is idempotent. List returns rows with meal_time within the period,
// newest first, optionally filtered by user id.
type MealRepository interface {
	AddMeal(ctx context.Context, m MealRecord) (MealRecord, error)
	UpdateMeal(ctx context.Context, m MealRecord) (MealRecord, error)
	DeleteMeal(ctx context.Context, id string) error
	ListMeals(ctx context.Context, p Period, userID string) ([]MealRecord, error)
}
