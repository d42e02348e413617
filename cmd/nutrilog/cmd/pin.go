package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"nutrilog/internal/app"
)

var pinCmd = &cobra.Command{
	Use:   "pin",
	Short: "Manage the access PIN",
}

var pinSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set or change the PIN",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		// Changing an existing PIN requires knowing the current one.
		if guard.State() != app.StateAwaitingPinSetup {
			if err := ensureAuthenticated(ctx); err != nil {
				return err
			}
		}
		return promptPinSetup(ctx)
	},
}

var pinStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the guard state",
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Printf("state: %s\n", guard.State())
		if guard.State() == app.StateLocked {
			fmt.Printf("locked for: %s\n", guard.RemainingLockout().Round(time.Second))
		} else {
			fmt.Printf("attempts remaining: %d\n", guard.RemainingAttempts())
		}
		fmt.Printf("biometric: %v\n", guard.BiometricOffered(cmd.Context()))
		return nil
	},
}

var pinBiometricCmd = &cobra.Command{
	Use:   "biometric <on|off>",
	Short: "Enable or disable the biometric shortcut",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := ensureAuthenticated(ctx); err != nil {
			return err
		}

		switch strings.ToLower(args[0]) {
		case "on":
			if err := guard.SetBiometricEnabled(ctx, true); err != nil {
				return err
			}
			color.Green("Biometric shortcut enabled.")
			if !guard.BiometricOffered(ctx) {
				color.Yellow("This host has no biometric hardware; the PIN stays in use.")
			}
		case "off":
			if err := guard.SetBiometricEnabled(ctx, false); err != nil {
				return err
			}
			color.Green("Biometric shortcut disabled.")
		default:
			return fmt.Errorf("expected on or off, got %q", args[0])
		}
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase the PIN and all data",
	Long: `Reset destroys the PIN and every stored record, irreversibly.

It is the escape hatch for a forgotten PIN and is only available after
several failed attempts.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if !guard.ResetOffered() {
			return app.ErrResetNotAllowed
		}

		fmt.Print("This erases the PIN and ALL data. Type 'erase' to confirm: ")
		var answer string
		_, _ = fmt.Scanln(&answer)
		if answer != "erase" {
			fmt.Println("Aborted.")
			return nil
		}

		if err := guard.Reset(cmd.Context()); err != nil {
			return err
		}
		color.Green("All data erased. Run any command to set a new PIN.")
		return nil
	},
}

func init() {
	pinCmd.AddCommand(pinSetCmd, pinStatusCmd, pinBiometricCmd)
	rootCmd.AddCommand(pinCmd, resetCmd)
}
