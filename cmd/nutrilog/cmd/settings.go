package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	setCalorieGoal   int
	setWaterGoal     int
	setTargetWeight  float64
	setInitialWeight float64
	setLanguage      string
	setNotifications bool
	setDarkMode      bool
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show and change goals and preferences",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		if err := ensureAuthenticated(ctx); err != nil {
			return err
		}

		st, err := settings.Get(ctx, cfg.UserID)
		if err != nil {
			return err
		}

		fmt.Printf("daily calorie goal: %d kcal\n", st.DailyCalorieGoal)
		fmt.Printf("daily water goal:   %d ml\n", st.DailyWaterGoalML)
		if st.TargetWeightKG != nil {
			fmt.Printf("target weight:      %.1f kg\n", *st.TargetWeightKG)
		}
		if st.InitialWeightKG != nil {
			fmt.Printf("initial weight:     %.1f kg\n", *st.InitialWeightKG)
		}
		fmt.Printf("notifications:      %v\n", st.NotificationsEnabled)
		fmt.Printf("dark mode:          %v\n", st.DarkMode)
		fmt.Printf("language:           %s\n", st.Language)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change one or more settings",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		if err := ensureAuthenticated(ctx); err != nil {
			return err
		}

		st, err := settings.Get(ctx, cfg.UserID)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("calorie-goal") {
			st.DailyCalorieGoal = setCalorieGoal
		}
		if flags.Changed("water-goal") {
			st.DailyWaterGoalML = setWaterGoal
		}
		if flags.Changed("target-weight") {
			st.TargetWeightKG = &setTargetWeight
		}
		if flags.Changed("initial-weight") {
			st.InitialWeightKG = &setInitialWeight
		}
		if flags.Changed("language") {
			st.Language = setLanguage
		}
		if flags.Changed("notifications") {
			st.NotificationsEnabled = setNotifications
		}
		if flags.Changed("dark-mode") {
			st.DarkMode = setDarkMode
		}

		if _, err := settings.Save(ctx, st); err != nil {
			return err
		}
		color.Green("Settings saved.")
		return nil
	},
}

func init() {
	settingsSetCmd.Flags().IntVar(&setCalorieGoal, "calorie-goal", 0, "daily calorie goal (kcal)")
	settingsSetCmd.Flags().IntVar(&setWaterGoal, "water-goal", 0, "daily water goal (ml)")
	settingsSetCmd.Flags().Float64Var(&setTargetWeight, "target-weight", 0, "target weight (kg)")
	settingsSetCmd.Flags().Float64Var(&setInitialWeight, "initial-weight", 0, "initial weight (kg)")
	settingsSetCmd.Flags().StringVar(&setLanguage, "language", "", "interface language code")
	settingsSetCmd.Flags().BoolVar(&setNotifications, "notifications", true, "enable notifications")
	settingsSetCmd.Flags().BoolVar(&setDarkMode, "dark-mode", false, "enable dark mode")

	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}
