package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"nutrilog/internal/app"
	"nutrilog/internal/domain"
)

var (
	statsPeriod string
	statsUnit   string
	statsCharts bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show nutrition and weight statistics",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		if err := ensureAuthenticated(ctx); err != nil {
			return err
		}

		period := domain.Period(statsPeriod).Or(domain.DefaultMealPeriod)
		mealRecords, err := meals.List(ctx, period, cfg.UserID)
		if err != nil {
			return err
		}
		weightRecords, err := weights.List(ctx, period, cfg.UserID)
		if err != nil {
			return err
		}
		st, err := settings.Get(ctx, cfg.UserID)
		if err != nil {
			return err
		}

		today := time.Now().Format(domain.DateLayout)
		waterToday, err := water.TotalForDay(ctx, today, cfg.UserID)
		if err != nil {
			return err
		}

		mealStats := app.ComputeMealStats(mealRecords)
		periodStats := app.ComputePeriodStats(mealRecords, time.Now())

		var initial, target float64
		if st.InitialWeightKG != nil {
			initial = *st.InitialWeightKG
		}
		if st.TargetWeightKG != nil {
			target = *st.TargetWeightKG
		}
		weightStats := app.ComputeWeightStats(weightRecords, initial, target)

		bold := color.New(color.Bold)
		bold.Printf("Nutrition (%s)\n", period)
		fmt.Printf("  meals: %d  total: %d kcal  avg: %.0f kcal\n",
			len(mealRecords), mealStats.TotalCalories, mealStats.AverageCalories)
		fmt.Printf("  protein: %.1f g  fat: %.1f g  carbs: %.1f g\n",
			mealStats.TotalProtein, mealStats.TotalFat, mealStats.TotalCarbs)
		fmt.Printf("  today: %d kcal / %d goal  week: %d kcal  month: %d kcal\n",
			periodStats.Day.Calories, st.DailyCalorieGoal, periodStats.Week.Calories, periodStats.Month.Calories)
		fmt.Printf("  water today: %d ml / %d goal\n", waterToday, st.DailyWaterGoalML)

		bold.Println("Weight")
		current := domain.ConvertWeight(initial+weightStats.WeightChange, "kg", statsUnit)
		fmt.Printf("  current: %.1f %s  change: %+.1f kg  progress: %.0f%%  avg: %.1f kg\n",
			current, statsUnit, weightStats.WeightChange, weightStats.ProgressPercentage, weightStats.AverageWeight)

		if statsCharts {
			printSeries("Calories", app.BuildCalorieSeries(mealRecords, period))
			printSeries("Weight", app.BuildWeightSeries(weightRecords, period))
		}

		recs := app.Recommend(mealStats, periodStats, weightStats, waterToday, st)
		if len(recs) > 0 {
			bold.Println("Recommendations")
			for _, r := range recs {
				color.Yellow("  - %s", r.Message)
			}
		}
		return nil
	},
}

func printSeries(name string, s app.ChartSeries) {
	color.New(color.Bold).Println(name)
	for i, label := range s.Labels {
		fmt.Printf("  %-5s %8.1f\n", label, s.Values[i])
	}
}

func init() {
	statsCmd.Flags().StringVar(&statsPeriod, "period", string(domain.DefaultMealPeriod), "day, week, month, 3m, 6m or year")
	statsCmd.Flags().StringVar(&statsUnit, "unit", "kg", "display unit for weight, kg or lb")
	statsCmd.Flags().BoolVar(&statsCharts, "charts", false, "print chart buckets")
	rootCmd.AddCommand(statsCmd)
}
