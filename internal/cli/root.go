// Package cli provides the command-line entry point for twenty20twenty.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/twenty20twenty/twenty20twenty/internal/app"
	"github.com/twenty20twenty/twenty20twenty/internal/config"
	"github.com/twenty20twenty/twenty20twenty/internal/constants"
	"github.com/twenty20twenty/twenty20twenty/internal/instance"
	"github.com/twenty20twenty/twenty20twenty/internal/logging"
	"github.com/twenty20twenty/twenty20twenty/internal/notify"
	"github.com/twenty20twenty/twenty20twenty/internal/tray"
	"github.com/twenty20twenty/twenty20twenty/internal/version"
)

var (
	// Global context for signal handling
	rootContext context.Context
	cancelFunc  context.CancelFunc
)

// NewRootCmd creates the root command. It takes no arguments: running it
// starts the tray.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   constants.BinaryName,
		Short: "20-20-20 eye rest reminder in the system tray",
		Long: constants.AppName + ` ` + version.String() + `
Sits in the system tray and reminds you every 20 minutes to look at
something 20 feet away for 20 seconds.

Only one instance runs per user session. Starting a second one exits
quietly.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.String(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(GetContext(), config.Default())
		},
	}
	return rootCmd
}

// Execute runs the CLI.
func Execute() error {
	rootContext, cancelFunc = context.WithCancel(context.Background())
	defer cancelFunc()

	// Ctrl+C in a terminal shuts down the same way the Exit menu item does.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		for sig := range sigChan {
			if sig != nil {
				cancelFunc()
			}
		}
	}()

	err := NewRootCmd().Execute()

	signal.Stop(sigChan)
	close(sigChan)

	return err
}

// GetContext returns the global CLI context with signal handling.
func GetContext() context.Context {
	if rootContext == nil {
		return context.Background()
	}
	return rootContext
}

// run is the tray process: guard, scheduler, UI loop, teardown.
func run(ctx context.Context, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	logDir := ""
	var logDirErr error
	if cfg.FileLogging {
		if logDirErr = config.EnsureLogDirectory(cfg.LogDir); logDirErr == nil {
			logDir = cfg.LogDir
		}
	}
	logging.SetGlobalLevel(logging.DefaultLevel())
	logger := logging.NewDefaultLogger(logDir)
	defer logger.Close()
	if logDirErr != nil {
		logger.Warn().Err(logDirErr).Str("dir", cfg.LogDir).Msg("File logging disabled")
	}

	core := app.New(cfg, logger)
	if err := core.Acquire(); err != nil {
		if errors.Is(err, instance.ErrAlreadyRunning) {
			logger.Info().Str("lock", cfg.LockPath).Msg("Another instance is already running")
			return err
		}
		logger.Error().Err(err).Msg("Cannot take the instance lock")
		return err
	}
	defer core.Shutdown("process exit")

	logger.Info().
		Str("version", version.String()).
		Str("log_file", logger.FilePath()).
		Msg("Starting " + constants.AppName)

	notifier := notify.NewNotifier(logger)
	presenter, err := newPresenter(core, notifier, logger)
	if err != nil {
		logger.Error().Err(err).Msg("Cannot show the tray icon")
		notifier.Alert(constants.TrayUnsupportedTitle, constants.TrayUnsupportedBody)
		return err
	}

	if err := core.Start(presenter); err != nil {
		return fmt.Errorf("start core: %w", err)
	}

	go func() {
		select {
		case <-ctx.Done():
			core.Shutdown("signal")
		case <-core.Done():
		}
	}()

	presenter.Run()
	core.Shutdown("ui closed")
	return nil
}

func newPresenter(core *app.App, notifier *notify.Notifier, logger *logging.Logger) (*tray.Tray, error) {
	if err := tray.CheckHost(); err != nil {
		return nil, err
	}
	return tray.New(tray.NewApp(), core, notifier, logger)
}
