// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/Veraticus/ckd-predict/internal/model"
)

// KeyValueStore is the persistence port for session state.
// Absence of a key is reported through the boolean, never as an error.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}

// PredictionProvider produces CKD predictions for single patients and CSV batches.
type PredictionProvider interface {
	PredictSingle(ctx context.Context, record model.PatientRecord) (*model.PredictionResult, error)
	PredictBatch(ctx context.Context, upload model.BatchUpload) (*model.PredictionResult, error)
}

// Authenticator exchanges credentials for an account and token.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (model.Account, model.Token, error)
	Signup(ctx context.Context, name, email, password string) (model.Account, model.Token, error)
	AdminLogin(ctx context.Context, email, password string) (model.Account, model.Token, error)
	AdminSignup(ctx context.Context, name, email, password, adminCode string) (model.Account, model.Token, error)
	Logout(ctx context.Context, token model.Token) error
}

// AdminDirectory serves the protected admin dashboard data.
type AdminDirectory interface {
	Stats(ctx context.Context, token model.Token) (model.DashboardStats, error)
	Users(ctx context.Context, token model.Token) ([]model.UserRecord, error)
}
