// Package prediction produces CKD predictions for the screens and commands.
//
// Two providers exist: RemoteProvider calls the prediction service and
// RandomProvider fabricates plausible results for demos and offline use.
package prediction

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/ckd-predict/internal/model"
	"github.com/Veraticus/ckd-predict/internal/service"
)

// Provider names accepted by NewProvider.
const (
	ProviderRandom = "random"
	ProviderRemote = "remote"
)

// ErrUnknownProvider is returned for an unsupported provider name.
var ErrUnknownProvider = errors.New("unknown prediction provider")

// Predictor is the subset of the service client used by RemoteProvider.
type Predictor interface {
	Predict(ctx context.Context, record model.PatientRecord) (model.SingleResult, error)
	PredictBatch(ctx context.Context, fileName string, content io.Reader) (model.BatchResult, error)
}

// Config selects and configures a provider.
type Config struct {
	Client   Predictor
	Logger   *slog.Logger
	Provider string
	Seed     int64
}

// NewProvider builds the provider named by cfg.Provider. An empty name selects random.
func NewProvider(cfg Config) (service.PredictionProvider, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Provider {
	case "", ProviderRandom:
		return NewRandomProvider(cfg.Seed), nil
	case ProviderRemote:
		if cfg.Client == nil {
			return nil, fmt.Errorf("remote provider requires a service client")
		}
		return NewRemoteProvider(cfg.Client, logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}
