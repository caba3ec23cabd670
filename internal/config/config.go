package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/ckd-predict/internal/common"
	"github.com/spf13/viper"
)

// Default values applied by SetDefaults.
const (
	DefaultAPIBaseURL  = "http://localhost:5000"
	DefaultAPITimeout  = 30 * time.Second
	DefaultProvider    = "random"
	DefaultDriver      = "sqlite"
	DefaultStoragePath = "$HOME/.local/share/ckd/session.db"
	DefaultLogFile     = "$HOME/.local/share/ckd/ckd.log"
	DefaultCacheTTL    = 30 * time.Second
)

// Config is the resolved application configuration.
type Config struct {
	API        APIConfig
	Prediction PredictionConfig
	Storage    StorageConfig
	Logging    LoggingConfig
	Admin      AdminConfig
}

// APIConfig locates the prediction service.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// PredictionConfig selects the prediction provider.
type PredictionConfig struct {
	Provider string
	Seed     int64
}

// StorageConfig locates the session store.
type StorageConfig struct {
	Driver string
	Path   string
}

// LoggingConfig controls slog output.
type LoggingConfig struct {
	Level  string
	Format string
	File   string
}

// AdminConfig tunes the admin dashboard.
type AdminConfig struct {
	CacheTTL time.Duration
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", DefaultAPIBaseURL)
	v.SetDefault("api.timeout", DefaultAPITimeout)
	v.SetDefault("prediction.provider", DefaultProvider)
	v.SetDefault("prediction.seed", 0)
	v.SetDefault("storage.driver", DefaultDriver)
	v.SetDefault("storage.path", DefaultStoragePath)
	v.SetDefault("admin.cache_ttl", DefaultCacheTTL)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", DefaultLogFile)
}

// Load reads the configuration from v, or from the global viper when v is nil.
// Paths are expanded.
func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		v = viper.GetViper()
	}
	SetDefaults(v)

	cfg := Config{
		API: APIConfig{
			BaseURL: strings.TrimSpace(v.GetString("api.base_url")),
			Timeout: v.GetDuration("api.timeout"),
		},
		Prediction: PredictionConfig{
			Provider: strings.ToLower(v.GetString("prediction.provider")),
			Seed:     v.GetInt64("prediction.seed"),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(v.GetString("storage.driver")),
			Path:   ExpandPath(v.GetString("storage.path")),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
			File:   ExpandPath(v.GetString("logging.file")),
		},
		Admin: AdminConfig{
			CacheTTL: v.GetDuration("admin.cache_ttl"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated values and durations.
func (c Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("%w: api.base_url", common.ErrMissingConfig)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("%w: api.timeout must be positive", common.ErrInvalidConfig)
	}
	switch c.Prediction.Provider {
	case "random", "remote":
	default:
		return fmt.Errorf("%w: prediction.provider %q (want random or remote)", common.ErrInvalidConfig, c.Prediction.Provider)
	}
	switch c.Storage.Driver {
	case "sqlite", "memory":
	default:
		return fmt.Errorf("%w: storage.driver %q (want sqlite or memory)", common.ErrInvalidConfig, c.Storage.Driver)
	}
	if c.Storage.Driver == "sqlite" && c.Storage.Path == "" {
		return fmt.Errorf("%w: storage.path", common.ErrMissingConfig)
	}
	if c.Admin.CacheTTL < 0 {
		return fmt.Errorf("%w: admin.cache_ttl must not be negative", common.ErrInvalidConfig)
	}
	return nil
}
