package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"nutrilog/internal/domain"
)

var (
	weightValue  float64
	weightUnit   string
	weightDate   string
	weightPeriod string
	weightShowAs string
)

var weightCmd = &cobra.Command{
	Use:   "weight",
	Short: "Track weight measurements",
}

var weightAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a weight measurement",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		if err := ensureAuthenticated(ctx); err != nil {
			return err
		}

		kg := domain.ConvertWeight(weightValue, weightUnit, "kg")
		rec := domain.WeightRecord{UserID: cfg.UserID, WeightKG: kg, RecordDate: weightDate}
		saved, err := weights.Add(ctx, rec)
		if err != nil {
			return err
		}
		color.Green("Logged %.1f kg on %s", saved.WeightKG, saved.RecordDate)
		return nil
	},
}

var weightListCmd = &cobra.Command{
	Use:   "list",
	Short: "List weight measurements in a period",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		if err := ensureAuthenticated(ctx); err != nil {
			return err
		}

		records, err := weights.List(ctx, domain.Period(weightPeriod), cfg.UserID)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No weight records in this period.")
			return nil
		}
		for _, w := range records {
			fmt.Printf("%s  %6.1f %s  %s\n",
				w.RecordDate, domain.ConvertWeight(w.WeightKG, "kg", weightShowAs), weightShowAs, w.ID)
		}
		return nil
	},
}

var weightDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a weight record by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := ensureAuthenticated(ctx); err != nil {
			return err
		}
		if err := weights.Delete(ctx, args[0]); err != nil {
			return err
		}
		color.Green("Deleted %s", args[0])
		return nil
	},
}

func init() {
	weightAddCmd.Flags().Float64Var(&weightValue, "value", 0, "measured weight")
	weightAddCmd.Flags().StringVar(&weightUnit, "unit", "kg", "unit of --value, kg or lb")
	weightAddCmd.Flags().StringVar(&weightDate, "date", time.Now().Format(domain.DateLayout), "calendar day, YYYY-MM-DD")
	_ = weightAddCmd.MarkFlagRequired("value")

	weightListCmd.Flags().StringVar(&weightPeriod, "period", string(domain.DefaultWeightPeriod), "day, week, month, 3m, 6m or year")
	weightListCmd.Flags().StringVar(&weightShowAs, "unit", "kg", "display unit, kg or lb")

	weightCmd.AddCommand(weightAddCmd, weightListCmd, weightDeleteCmd)
	rootCmd.AddCommand(weightCmd)
}
