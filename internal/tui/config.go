package tui

import (
	"log/slog"
	"time"

	"github.com/Veraticus/ckd-predict/internal/model"
	"github.com/Veraticus/ckd-predict/internal/service"
	"github.com/Veraticus/ckd-predict/internal/session"
	"github.com/Veraticus/ckd-predict/internal/tui/components"
	"github.com/Veraticus/ckd-predict/internal/tui/themes"
)

// Backend is the service client the screens talk to.
type Backend interface {
	service.Authenticator
	service.AdminDirectory
	Invalidate(token model.Token)
}

// Config holds TUI configuration.
type Config struct {
	Theme      themes.Theme
	Controller *session.Controller
	Auth       service.Authenticator
	Admin      service.AdminDirectory
	Provider   service.PredictionProvider
	Logger     *slog.Logger
	invalidate func(model.Token)
	ExportDir  string
	Settings   []components.SettingsEntry
	Timeout    time.Duration
	Width      int
	Height     int
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Theme:     themes.Default,
		Logger:    slog.Default(),
		ExportDir: ".",
		Timeout:   30 * time.Second,
		Width:     100,
		Height:    32,
	}
}

// WithController sets the session controller. Required.
func WithController(c *session.Controller) Option {
	return func(cfg *Config) {
		cfg.Controller = c
	}
}

// WithAPI uses backend for authentication and the admin dashboard.
func WithAPI(backend Backend) Option {
	return func(cfg *Config) {
		cfg.Auth = backend
		cfg.Admin = backend
		cfg.invalidate = backend.Invalidate
	}
}

// WithAuthenticator sets only the authentication backend.
func WithAuthenticator(auth service.Authenticator) Option {
	return func(cfg *Config) {
		cfg.Auth = auth
	}
}

// WithAdminDirectory sets only the admin dashboard backend.
func WithAdminDirectory(admin service.AdminDirectory) Option {
	return func(cfg *Config) {
		cfg.Admin = admin
	}
}

// WithProvider sets the prediction provider.
func WithProvider(p service.PredictionProvider) Option {
	return func(cfg *Config) {
		cfg.Provider = p
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(cfg *Config) {
		cfg.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(cfg *Config) {
		cfg.Width = width
		cfg.Height = height
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = logger
	}
}

// WithExportDir sets where result CSVs and the sample CSV are written.
func WithExportDir(dir string) Option {
	return func(cfg *Config) {
		cfg.ExportDir = dir
	}
}

// WithTimeout bounds every backend call.
func WithTimeout(d time.Duration) Option {
	return func(cfg *Config) {
		cfg.Timeout = d
	}
}

// WithSettings sets the read-only entries of the dashboard settings section.
func WithSettings(entries []components.SettingsEntry) Option {
	return func(cfg *Config) {
		cfg.Settings = entries
	}
}
