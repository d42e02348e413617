package app

import (
	"math"
	"time"

	"nutrilog/internal/domain"
)

// MealStats are arithmetic rollups over a meal collection.
type MealStats struct {
	TotalCalories   int     `json:"totalCalories"`
	TotalProtein    float64 `json:"totalProtein"`
	TotalFat        float64 `json:"totalFat"`
	TotalCarbs      float64 `json:"totalCarbs"`
	AverageCalories float64 `json:"averageCalories"`
}

// ComputeMealStats sums the full input collection. The empty collection
// yields all-zero stats; the average never divides by zero.
func ComputeMealStats(meals []domain.MealRecord) MealStats {
	var st MealStats
	for _, m := range meals {
		st.TotalCalories += m.Calories
		st.TotalProtein += m.Protein
		st.TotalFat += m.Fat
		st.TotalCarbs += m.Carbs
	}
	if len(meals) > 0 {
		st.AverageCalories = float64(st.TotalCalories) / float64(len(meals))
	}
	return st
}

// PeriodBucket is the per-window rollup inside PeriodStats.
type PeriodBucket struct {
	Calories   int `json:"calories"`
	MealsCount int `json:"meals_count"`
}

// PeriodStats buckets meals into the current day, week and month.
type PeriodStats struct {
	Day   PeriodBucket `json:"day"`
	Week  PeriodBucket `json:"week"`
	Month PeriodBucket `json:"month"`
}

// ComputePeriodStats buckets meals by meal_time against boundaries
// derived from now: start of today, start of the current week (weeks
// start on Sunday) and the first of the current month.
func ComputePeriodStats(meals []domain.MealRecord, now time.Time) PeriodStats {
	y, m, d := now.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	weekStart := dayStart.AddDate(0, 0, -int(now.Weekday()))
	monthStart := time.Date(y, m, 1, 0, 0, 0, 0, now.Location())

	var st PeriodStats
	for _, meal := range meals {
		if !meal.MealTime.Before(dayStart) {
			st.Day.Calories += meal.Calories
			st.Day.MealsCount++
		}
		if !meal.MealTime.Before(weekStart) {
			st.Week.Calories += meal.Calories
			st.Week.MealsCount++
		}
		if !meal.MealTime.Before(monthStart) {
			st.Month.Calories += meal.Calories
			st.Month.MealsCount++
		}
	}
	return st
}

// WeightStats are rollups over a weight-record collection relative to
// the user's initial and target weights.
type WeightStats struct {
	WeightChange       float64 `json:"weightChange"`
	ProgressPercentage float64 `json:"progressPercentage"`
	AverageWeight      float64 `json:"averageWeight"`
}

// ComputeWeightStats derives change and goal progress. The progress
// formula is direction-agnostic and deliberately does not penalize
// overshooting the target. With no records the current weight is taken
// to be the initial weight.
func ComputeWeightStats(records []domain.WeightRecord, initial, target float64) WeightStats {
	current := initial
	var (
		latestDate string
		sum        float64
	)
	for _, r := range records {
		sum += r.WeightKG
		if r.RecordDate >= latestDate {
			latestDate = r.RecordDate
			current = r.WeightKG
		}
	}

	st := WeightStats{WeightChange: current - initial}
	if len(records) > 0 {
		st.AverageWeight = sum / float64(len(records))
	}

	span := math.Abs(initial - target)
	if span > 0 {
		st.ProgressPercentage = math.Min(100, math.Abs(initial-current)/span*100)
	}
	return st
}
