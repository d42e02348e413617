package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"nutrilog/internal/domain"
)

var (
	mealTitle       string
	mealDescription string
	mealCategory    string
	mealCalories    int
	mealProtein     float64
	mealFat         float64
	mealCarbs       float64
	mealPortion     int
	mealTime        string
	mealPeriod      string
)

var mealCmd = &cobra.Command{
	Use:   "meal",
	Short: "Log and review meals",
}

var mealAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a meal",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		if err := ensureAuthenticated(ctx); err != nil {
			return err
		}

		rec := domain.MealRecord{
			UserID:      cfg.UserID,
			Title:       mealTitle,
			Description: mealDescription,
			Category:    domain.MealCategory(mealCategory),
			Calories:    mealCalories,
			Protein:     mealProtein,
			Fat:         mealFat,
			Carbs:       mealCarbs,
		}
		if cmd.Flags().Changed("portion") {
			rec.PortionWeight = &mealPortion
		}
		if mealTime != "" {
			at, err := time.Parse(time.RFC3339, mealTime)
			if err != nil {
				return fmt.Errorf("parse --time: %w", err)
			}
			rec.MealTime = at
		}

		saved, err := meals.Add(ctx, rec)
		if err != nil {
			return err
		}
		color.Green("Logged %q (%d kcal) as %s", saved.Title, saved.Calories, saved.ID)
		return nil
	},
}

var mealListCmd = &cobra.Command{
	Use:   "list",
	Short: "List meals in a period",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		if err := ensureAuthenticated(ctx); err != nil {
			return err
		}

		records, err := meals.List(ctx, domain.Period(mealPeriod), cfg.UserID)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No meals in this period.")
			return nil
		}
		for _, m := range records {
			fmt.Printf("%s  %-20s %-10s %5d kcal  P%.1f F%.1f C%.1f  %s\n",
				m.MealTime.Local().Format("2006-01-02 15:04"),
				m.Title, m.Category, m.Calories, m.Protein, m.Fat, m.Carbs, m.ID)
		}
		return nil
	},
}

var mealDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a meal by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := ensureAuthenticated(ctx); err != nil {
			return err
		}
		if err := meals.Delete(ctx, args[0]); err != nil {
			return err
		}
		color.Green("Deleted %s", args[0])
		return nil
	},
}

func init() {
	mealAddCmd.Flags().StringVar(&mealTitle, "title", "", "meal title")
	mealAddCmd.Flags().StringVar(&mealDescription, "description", "", "free-form note")
	mealAddCmd.Flags().StringVar(&mealCategory, "category", "", "breakfast, lunch, dinner or snack")
	mealAddCmd.Flags().IntVar(&mealCalories, "calories", 0, "calories (kcal)")
	mealAddCmd.Flags().Float64Var(&mealProtein, "protein", 0, "protein (g)")
	mealAddCmd.Flags().Float64Var(&mealFat, "fat", 0, "fat (g)")
	mealAddCmd.Flags().Float64Var(&mealCarbs, "carbs", 0, "carbohydrates (g)")
	mealAddCmd.Flags().IntVar(&mealPortion, "portion", 0, "portion weight (g)")
	mealAddCmd.Flags().StringVar(&mealTime, "time", "", "meal time, RFC3339 (defaults to now)")
	_ = mealAddCmd.MarkFlagRequired("title")

	mealListCmd.Flags().StringVar(&mealPeriod, "period", string(domain.DefaultMealPeriod), "day, week, month, 3m, 6m or year")

	mealCmd.AddCommand(mealAddCmd, mealListCmd, mealDeleteCmd)
	rootCmd.AddCommand(mealCmd)
}
