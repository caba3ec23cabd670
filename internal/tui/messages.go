package tui

import "github.com/Veraticus/ckd-predict/internal/model"

// authKind tells authResultMsg which controller transition to apply.
type authKind int

const (
	authLogin authKind = iota
	authSignup
	authAdminLogin
	authAdminSignup
)

// Async operation messages. Replies that carry a token are dropped when the
// session token has changed since the request was issued.
type authResultMsg struct {
	err     error
	account model.Account
	token   model.Token
	kind    authKind
}

type remoteLogoutMsg struct {
	err error
}

type predictionMsg struct {
	err    error
	result *model.PredictionResult
	token  model.Token
}

type dashboardLoadedMsg struct {
	statsErr error
	usersErr error
	users    []model.UserRecord
	token    model.Token
	stats    model.DashboardStats
}

type fileWrittenMsg struct {
	err  error
	path string
	what string
}
