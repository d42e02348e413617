package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var importOverwrite bool

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export all data to a JSON file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := ensureAuthenticated(ctx); err != nil {
			return err
		}

		path := backup.DefaultExportName()
		if len(args) == 1 {
			path = args[0]
		}
		if err := backup.ExportToFile(ctx, path); err != nil {
			return err
		}
		color.Green("Exported to %s", path)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import data from a JSON export",
	Long: `Import restores records from a JSON export file.

By default incoming records are merged alongside existing ones and the
import fails on a duplicate record id. With --overwrite all existing
records are removed first.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := ensureAuthenticated(ctx); err != nil {
			return err
		}
		if err := backup.ImportFromFile(ctx, args[0], importOverwrite); err != nil {
			return err
		}
		color.Green("Imported %s", args[0])
		return nil
	},
}

func init() {
	importCmd.Flags().BoolVar(&importOverwrite, "overwrite", false, "replace existing data instead of merging")
	rootCmd.AddCommand(exportCmd, importCmd)
}
