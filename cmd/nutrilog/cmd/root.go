package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"nutrilog/internal/adapter/biometric"
	"nutrilog/internal/adapter/credfile"
	"nutrilog/internal/adapter/memory"
	"nutrilog/internal/adapter/sqlite"
	"nutrilog/internal/app"
	"nutrilog/internal/config"
	"nutrilog/internal/domain"
	"nutrilog/internal/logger"
)

// store is the full persistence surface the CLI wires against. Both the
// sqlite and the in-memory adapters satisfy it.
type store interface {
	domain.MealRepository
	domain.WaterRepository
	domain.WeightRepository
	domain.SettingsRepository
	domain.SnapshotRepository
}

var (
	cfg *config.Config
	log *slog.Logger

	meals    *app.MealService
	water    *app.WaterService
	weights  *app.WeightService
	settings *app.SettingsService
	backup   *app.BackupService
	guard    *app.SessionGuard
)

var rootCmd = &cobra.Command{
	Use:   "nutrilog",
	Short: "Local nutrition and weight tracking",
	Long: `nutrilog keeps meals, water intake, weight measurements and goals
in a local store, gated behind a PIN. No network, no accounts.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	cfg = config.New()
	log = logger.New(cfg.Env)

	var st store
	sqlStore, err := sqlite.Open(cfg.Store.DBPath)
	if err != nil {
		// The tracker must stay usable; records just will not survive
		// the process.
		err = fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
		log.Warn("falling back to in-memory store", "degraded", true, "path", cfg.Store.DBPath, "cause", err)
		st = memory.New()
	} else {
		st = sqlStore
	}

	primary, fallback := cfg.CredentialDirs()
	creds := credfile.New(primary, fallback, log)

	meals = app.NewMealService(st)
	water = app.NewWaterService(st)
	weights = app.NewWeightService(st)
	settings = app.NewSettingsService(st)
	backup = app.NewBackupService(st)
	guard = app.NewSessionGuard(creds, biometric.Unsupported{}, st, log)
	guard.Initialize(cmd.Context())

	return nil
}

// ensureAuthenticated walks the guard to an authenticated session,
// prompting for PIN setup or entry as needed.
func ensureAuthenticated(ctx context.Context) error {
	switch guard.State() {
	case app.StateAuthenticated:
		return nil
	case app.StateAwaitingPinSetup:
		return promptPinSetup(ctx)
	}

	if guard.BiometricOffered(ctx) {
		if err := guard.AuthenticateWithBiometric(ctx); err == nil {
			return nil
		}
	}
	return promptPinEntry(ctx)
}

func promptPinSetup(ctx context.Context) error {
	fmt.Println("No PIN configured yet.")
	for {
		pin, err := readSecret("Choose a PIN (4-6 digits): ")
		if err != nil {
			return err
		}
		confirm, err := readSecret("Repeat the PIN: ")
		if err != nil {
			return err
		}
		err = guard.SetPin(ctx, pin, confirm)
		if err == nil {
			color.Green("PIN set.")
			return nil
		}
		var verr *app.ValidationError
		if errors.As(err, &verr) {
			color.Yellow("%s", verr.Msg)
			continue
		}
		return err
	}
}

func promptPinEntry(ctx context.Context) error {
	for {
		if guard.State() == app.StateLocked {
			return fmt.Errorf("%w: try again in %s", app.ErrLocked, guard.RemainingLockout().Round(time.Second))
		}

		pin, err := readSecret("PIN: ")
		if err != nil {
			return err
		}
		err = guard.VerifyPin(ctx, pin)
		if err == nil {
			return nil
		}
		if errors.Is(err, app.ErrPinMismatch) {
			color.Yellow("%v", err)
			if guard.ResetOffered() {
				color.Yellow("Forgot your PIN? `nutrilog reset` erases the PIN and all data.")
			}
			continue
		}
		return err
	}
}

func readSecret(prompt string) (string, error) {
	fmt.Print(prompt)
	if term.IsTerminal(int(os.Stdin.Fd())) {
		b, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return string(b), nil
	}
	// Piped input, used by scripts and tests.
	var s string
	if _, err := fmt.Scanln(&s); err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(s), nil
}
