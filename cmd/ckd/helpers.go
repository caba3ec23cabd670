package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/ckd-predict/internal/api"
	"github.com/Veraticus/ckd-predict/internal/config"
	"github.com/Veraticus/ckd-predict/internal/prediction"
	"github.com/Veraticus/ckd-predict/internal/service"
	"github.com/Veraticus/ckd-predict/internal/session"
	"github.com/Veraticus/ckd-predict/internal/storage"
	"github.com/Veraticus/ckd-predict/internal/tui/components"
)

// loadConfig resolves the configuration from viper.
func loadConfig() (config.Config, error) {
	return config.Load(nil)
}

// initStorage opens the session store, creating its directory when needed.
func initStorage(ctx context.Context, cfg config.Config) (storage.Store, error) {
	if cfg.Storage.Driver == storage.DriverSQLite {
		if err := config.EnsureDir(cfg.Storage.Path); err != nil {
			return nil, err
		}
	}
	return storage.Open(ctx, cfg.Storage.Driver, cfg.Storage.Path)
}

// initController restores the persisted session from store.
func initController(ctx context.Context, store service.KeyValueStore) *session.Controller {
	ctrl := session.New(store, session.WithLogger(slog.Default()))
	ctrl.Initialize(ctx)
	return ctrl
}

// newAPIClient builds the service client.
func newAPIClient(cfg config.Config) (*api.Client, error) {
	return api.NewClient(api.Config{
		BaseURL:  cfg.API.BaseURL,
		Timeout:  cfg.API.Timeout,
		CacheTTL: cfg.Admin.CacheTTL,
		Logger:   slog.Default(),
	})
}

// newProvider builds the configured prediction provider.
func newProvider(cfg config.Config, client *api.Client) (service.PredictionProvider, error) {
	return prediction.NewProvider(prediction.Config{
		Client:   client,
		Logger:   slog.Default(),
		Provider: cfg.Prediction.Provider,
		Seed:     cfg.Prediction.Seed,
	})
}

// settingsEntries lists the configuration shown on the admin settings page.
func settingsEntries(cfg config.Config) []components.SettingsEntry {
	return []components.SettingsEntry{
		{Label: "API URL", Value: cfg.API.BaseURL},
		{Label: "API timeout", Value: cfg.API.Timeout.String()},
		{Label: "Prediction provider", Value: cfg.Prediction.Provider},
		{Label: "Session store", Value: cfg.Storage.Driver},
		{Label: "Session path", Value: cfg.Storage.Path},
		{Label: "Admin cache TTL", Value: cfg.Admin.CacheTTL.String()},
	}
}

// env bundles what most commands need.
type env struct {
	cfg    config.Config
	store  storage.Store
	ctrl   *session.Controller
	client *api.Client
}

// newEnv loads config, opens storage and restores the session.
func newEnv(ctx context.Context) (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	store, err := initStorage(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	client, err := newAPIClient(cfg)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &env{
		cfg:    cfg,
		store:  store,
		ctrl:   initController(ctx, store),
		client: client,
	}, nil
}

func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		slog.Warn("Failed to close session store", "error", err)
	}
}
