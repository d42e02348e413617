package app

import (
	"fmt"

	"nutrilog/internal/domain"
)

// Recommendation is one entry of the fixed advice rule table.
type Recommendation struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Thresholds for the recommendation rules.
const (
	lowAverageCalories = 1200
	lowProteinShare    = 0.15
	caloriesPerGram    = 4 // protein
)

// Recommend evaluates the fixed rule table over the given stats.
// Deterministic: same inputs, same output, rule order preserved. No
// randomness, no external calls.
func Recommend(meal MealStats, period PeriodStats, weight WeightStats, waterTodayML int, settings domain.UserSettings) []Recommendation {
	recs := []Recommendation{}

	if meal.AverageCalories > 0 && meal.AverageCalories < lowAverageCalories {
		recs = append(recs, Recommendation{
			Code:    "calories-low",
			Message: fmt.Sprintf("Average intake is %.0f kcal per meal period; consistently staying under %d kcal a day is too low.", meal.AverageCalories, lowAverageCalories),
		})
	}
	if settings.DailyCalorieGoal > 0 && period.Day.Calories > settings.DailyCalorieGoal {
		recs = append(recs, Recommendation{
			Code:    "calorie-goal-exceeded",
			Message: fmt.Sprintf("Today's %d kcal is over the %d kcal goal.", period.Day.Calories, settings.DailyCalorieGoal),
		})
	}
	if meal.TotalCalories > 0 {
		proteinShare := meal.TotalProtein * caloriesPerGram / float64(meal.TotalCalories)
		if proteinShare < lowProteinShare {
			recs = append(recs, Recommendation{
				Code:    "protein-low",
				Message: fmt.Sprintf("Protein makes up %.0f%% of calories; aim for at least %.0f%%.", proteinShare*100, lowProteinShare*100),
			})
		}
	}
	if settings.DailyWaterGoalML > 0 && waterTodayML < settings.DailyWaterGoalML/2 {
		recs = append(recs, Recommendation{
			Code:    "hydration-low",
			Message: fmt.Sprintf("Only %d ml of water today against a %d ml goal.", waterTodayML, settings.DailyWaterGoalML),
		})
	}
	if weight.ProgressPercentage >= 100 {
		recs = append(recs, Recommendation{
			Code:    "weight-goal-reached",
			Message: "Target weight reached. Consider setting a new goal.",
		})
	}
	return recs
}
