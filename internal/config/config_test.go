package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/ckd-predict/internal/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIBaseURL, cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, "random", cfg.Prediction.Provider)
	assert.Zero(t, cfg.Prediction.Seed)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "/home/tester/.local/share/ckd/session.db", cfg.Storage.Path)
	assert.Equal(t, "/home/tester/.local/share/ckd/ckd.log", cfg.Logging.File)
	assert.Equal(t, 30*time.Second, cfg.Admin.CacheTTL)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("api.base_url", "https://ckd.example.com")
	v.Set("api.timeout", "5s")
	v.Set("prediction.provider", "REMOTE")
	v.Set("prediction.seed", 42)
	v.Set("storage.driver", "memory")
	v.Set("admin.cache_ttl", "0s")

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "https://ckd.example.com", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, "remote", cfg.Prediction.Provider)
	assert.Equal(t, int64(42), cfg.Prediction.Seed)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Zero(t, cfg.Admin.CacheTTL)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   any
		wantErr error
	}{
		{name: "provider", key: "prediction.provider", value: "oracle", wantErr: common.ErrInvalidConfig},
		{name: "driver", key: "storage.driver", value: "postgres", wantErr: common.ErrInvalidConfig},
		{name: "timeout", key: "api.timeout", value: "-1s", wantErr: common.ErrInvalidConfig},
		{name: "base url", key: "api.base_url", value: " ", wantErr: common.ErrMissingConfig},
		{name: "cache ttl", key: "admin.cache_ttl", value: "-5s", wantErr: common.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			v.Set(tt.key, tt.value)
			_, err := Load(v)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("CKD_TEST_DIR", "/data")

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", home},
		{"~/ckd/session.db", filepath.Join(home, "ckd/session.db")},
		{"$CKD_TEST_DIR/session.db", "/data/session.db"},
		{"/abs/path.db", "/abs/path.db"},
		{"~other/x", "~other/x"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}

func TestEnsureDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a", "b", "session.db")
	require.NoError(t, EnsureDir(path))

	info, err := os.Stat(filepath.Join(dir, "a", "b"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.NoError(t, EnsureDir("session.db"))
}
