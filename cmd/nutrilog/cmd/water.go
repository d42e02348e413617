package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"nutrilog/internal/domain"
)

var (
	waterAmount int
	waterDate   string
	waterPeriod string
)

var waterCmd = &cobra.Command{
	Use:   "water",
	Short: "Track water intake",
}

var waterAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a water intake",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		if err := ensureAuthenticated(ctx); err != nil {
			return err
		}

		rec := domain.WaterRecord{UserID: cfg.UserID, AmountML: waterAmount, RecordDate: waterDate}
		saved, err := water.Add(ctx, rec)
		if err != nil {
			return err
		}

		total, err := water.TotalForDay(ctx, saved.RecordDate, cfg.UserID)
		if err != nil {
			return err
		}
		color.Green("Logged %d ml on %s (%d ml that day)", saved.AmountML, saved.RecordDate, total)

		st, err := settings.Get(ctx, cfg.UserID)
		if err == nil && st.DailyWaterGoalML > 0 && total >= st.DailyWaterGoalML {
			color.Cyan("Daily water goal of %d ml reached.", st.DailyWaterGoalML)
		}
		return nil
	},
}

var waterListCmd = &cobra.Command{
	Use:   "list",
	Short: "List water intake in a period",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		if err := ensureAuthenticated(ctx); err != nil {
			return err
		}

		records, err := water.List(ctx, domain.Period(waterPeriod), cfg.UserID)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No water records in this period.")
			return nil
		}
		for _, w := range records {
			fmt.Printf("%s  %5d ml  %s\n", w.RecordDate, w.AmountML, w.ID)
		}
		return nil
	},
}

var waterDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a water record by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := ensureAuthenticated(ctx); err != nil {
			return err
		}
		if err := water.Delete(ctx, args[0]); err != nil {
			return err
		}
		color.Green("Deleted %s", args[0])
		return nil
	},
}

func init() {
	waterAddCmd.Flags().IntVar(&waterAmount, "amount", 250, "amount (ml)")
	waterAddCmd.Flags().StringVar(&waterDate, "date", time.Now().Format(domain.DateLayout), "calendar day, YYYY-MM-DD")

	waterListCmd.Flags().StringVar(&waterPeriod, "period", string(domain.DefaultWaterPeriod), "day, week, month, 3m, 6m or year")

	waterCmd.AddCommand(waterAddCmd, waterListCmd, waterDeleteCmd)
	rootCmd.AddCommand(waterCmd)
}
