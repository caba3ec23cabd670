package tui

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/Veraticus/ckd-predict/internal/forms"
	"github.com/Veraticus/ckd-predict/internal/model"
	"github.com/Veraticus/ckd-predict/internal/prediction"
	tea "github.com/charmbracelet/bubbletea"
)

var errNoBackend = errors.New("service not configured")

// authenticate calls the auth service for kind.
func (m Model) authenticate(kind authKind, creds forms.Credentials) tea.Cmd {
	auth := m.config.Auth
	timeout := m.config.Timeout

	return func() tea.Msg {
		if auth == nil {
			return authResultMsg{kind: kind, err: errNoBackend}
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		var (
			account model.Account
			token   model.Token
			err     error
		)
		switch kind {
		case authLogin:
			account, token, err = auth.Login(ctx, creds.Email, creds.Password)
		case authSignup:
			account, token, err = auth.Signup(ctx, creds.Name, creds.Email, creds.Password)
		case authAdminLogin:
			account, token, err = auth.AdminLogin(ctx, creds.Email, creds.Password)
		case authAdminSignup:
			account, token, err = auth.AdminSignup(ctx, creds.Name, creds.Email, creds.Password, creds.AdminCode)
		}

		return authResultMsg{kind: kind, account: account, token: token, err: err}
	}
}

// remoteLogout tells the service to drop token. Failures only get logged.
func (m Model) remoteLogout(token model.Token) tea.Cmd {
	auth := m.config.Auth
	timeout := m.config.Timeout
	if auth == nil || token == "" {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return remoteLogoutMsg{err: auth.Logout(ctx, token)}
	}
}

// predictSingle runs a single-patient prediction on behalf of token.
func (m Model) predictSingle(token model.Token, record model.PatientRecord) tea.Cmd {
	provider := m.config.Provider
	timeout := m.config.Timeout

	return func() tea.Msg {
		if provider == nil {
			return predictionMsg{token: token, err: errNoBackend}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		result, err := provider.PredictSingle(ctx, record)
		return predictionMsg{token: token, result: result, err: err}
	}
}

// predictBatch loads path and runs a batch prediction on behalf of token.
func (m Model) predictBatch(token model.Token, path string) tea.Cmd {
	provider := m.config.Provider
	timeout := m.config.Timeout

	return func() tea.Msg {
		if provider == nil {
			return predictionMsg{token: token, err: errNoBackend}
		}

		upload, err := prediction.LoadBatch(path)
		if err != nil {
			return predictionMsg{token: token, err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		result, err := provider.PredictBatch(ctx, upload)
		return predictionMsg{token: token, result: result, err: err}
	}
}

// loadDashboard fetches stats and users with the admin token.
func (m Model) loadDashboard(token model.Token) tea.Cmd {
	admin := m.config.Admin
	timeout := m.config.Timeout

	return func() tea.Msg {
		if admin == nil {
			return dashboardLoadedMsg{token: token, statsErr: errNoBackend, usersErr: errNoBackend}
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		msg := dashboardLoadedMsg{token: token}
		msg.stats, msg.statsErr = admin.Stats(ctx, token)
		msg.users, msg.usersErr = admin.Users(ctx, token)
		return msg
	}
}

// exportResults writes batch results into the export directory.
func (m Model) exportResults(result model.BatchResult) tea.Cmd {
	dir := m.config.ExportDir

	return func() tea.Msg {
		path, err := prediction.ExportResults(dir, result, time.Now())
		return fileWrittenMsg{what: "Results", path: path, err: err}
	}
}

// writeSample saves the sample CSV into the export directory.
func (m Model) writeSample() tea.Cmd {
	path := filepath.Join(m.config.ExportDir, prediction.SampleFileName)

	return func() tea.Msg {
		return fileWrittenMsg{what: "Sample CSV", path: path, err: prediction.WriteSample(path)}
	}
}
