package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Veraticus/ckd-predict/internal/common"
	"github.com/Veraticus/ckd-predict/internal/config"
	"github.com/Veraticus/ckd-predict/internal/tui"
	"github.com/Veraticus/ckd-predict/internal/tui/themes"
	"github.com/spf13/cobra"
)

func appCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "app",
		Short: "Open the interactive app",
		Long: `Open the full-screen app with login, signup, single and batch
prediction, and the admin dashboard. This is also what runs when ckd is
started without a subcommand.

Logs are written to logging.file while the app owns the terminal.`,
		RunE: runApp,
	}

	cmd.Flags().String("theme", "dark", "color theme (dark, light)")
	cmd.Flags().String("export-dir", ".", "directory batch results and the sample CSV are written to")

	return cmd
}

func runApp(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	e, err := newEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	// The terminal belongs to the app, so logs go to a file.
	logFile, err := openLogFile(e.cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logFile.Close() }()

	provider, err := newProvider(e.cfg, e.client)
	if err != nil {
		return err
	}

	themeName := "dark"
	exportDir := "."
	if f := cmd.Flags().Lookup("theme"); f != nil {
		themeName = f.Value.String()
	}
	if f := cmd.Flags().Lookup("export-dir"); f != nil {
		exportDir = config.ExpandPath(f.Value.String())
	}

	slog.Info("Starting app", "identity", e.ctrl.Identity().String(), "provider", e.cfg.Prediction.Provider)

	return tui.Run(ctx,
		tui.WithController(e.ctrl),
		tui.WithAPI(e.client),
		tui.WithProvider(provider),
		tui.WithTheme(themes.ByName(themeName)),
		tui.WithLogger(slog.Default()),
		tui.WithExportDir(exportDir),
		tui.WithTimeout(e.cfg.API.Timeout),
		tui.WithSettings(settingsEntries(e.cfg)),
	)
}

func openLogFile(cfg config.LoggingConfig) (*os.File, error) {
	if err := config.EnsureDir(cfg.File); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	if err := common.SetupLoggerTo(f, cfg.Level, cfg.Format); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}
	return f, nil
}
