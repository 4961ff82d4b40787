// Package cmd implements the payrollctl operator commands.
package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/cmlabs-hris/payroll-attendance-go/internal/app"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/config"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/pkg/localtime"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "payrollctl",
	Short:        "Operate the attendance and payroll store from the command line.",
	SilenceUsage: true,
}

var rootOpts struct {
	At string
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootOpts.At, "at", "",
		"Act as if now were this RFC 3339 instant (no offset means local time)")
	rootCmd.AddCommand(
		migrateCmd,
		seedCmd,
		tokenCmd,
		sweepCmd,
		lockCmd,
		relockCmd,
	)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error executing command: %s", err)
	}
}

// deps is what every command needs after the config is loaded.
type deps struct {
	cfg      *config.Config
	store    *app.Store
	services *app.Services
}

// withRuntime loads config, opens the store and runs fn against it.
func withRuntime(ctx context.Context, migrate bool, fn func(ctx context.Context, rt *deps) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	slog.SetDefault(app.NewLogger(cfg))

	store, err := app.OpenStore(cfg, migrate)
	if err != nil {
		return err
	}
	defer store.Close()

	translator := localtime.NewTranslator(cfg.App.UTCOffsetHours)
	clock, err := newClock(translator, rootOpts.At)
	if err != nil {
		return err
	}
	return fn(ctx, &deps{
		cfg:      cfg,
		store:    store,
		services: app.NewServices(store, translator, clock),
	})
}

// newClock pins the clock to at when it is set.
func newClock(translator *localtime.Translator, at string) (localtime.Clock, error) {
	if at == "" {
		return localtime.SystemClock(), nil
	}
	instant, err := translator.ParseInstant(at)
	if err != nil {
		return nil, fmt.Errorf("invalid --at: %w", err)
	}
	return &localtime.FixedClock{At: translator.ToAbsolute(instant)}, nil
}
