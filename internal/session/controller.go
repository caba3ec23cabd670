// Package session owns who is logged in and which screen is shown.
//
// The Controller is the single source of truth for the current identity and
// the only writer of persisted identity and credential tokens. Screens call its
// transition methods after they have confirmed success with the auth service;
// the controller itself never talks to the network.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/ckd-predict/internal/model"
	"github.com/Veraticus/ckd-predict/internal/service"
)

var (
	// ErrInvalidTransition is returned when an operation is not allowed for the current identity.
	ErrInvalidTransition = errors.New("invalid session transition")
	// ErrEmptyAccount is returned when a login carries no account email.
	ErrEmptyAccount = errors.New("account email is required")
)

// State is a read-only snapshot of the controller.
type State struct {
	Results  *model.PredictionResult
	Identity model.Identity
	View     model.View
	Tab      model.Tab
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for session events.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Controller is the session/view state machine. It is not safe for concurrent use;
// all transitions are expected to come from a single event loop.
type Controller struct {
	store    service.KeyValueStore
	logger   *slog.Logger
	results  *model.PredictionResult
	identity model.Identity
	token    model.Token
	authView model.View
	tab      model.Tab
}

// New creates a controller backed by store. Call Initialize to restore a persisted session.
func New(store service.KeyValueStore, opts ...Option) *Controller {
	c := &Controller{
		store:    store,
		logger:   slog.Default(),
		identity: model.Anonymous(),
		authView: model.ViewLogin,
		tab:      model.TabSinglePrediction,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Initialize restores the persisted identity. A persisted admin wins over a
// persisted user. Missing or corrupt entries resolve to Anonymous; storage is
// only read, never written.
func (c *Controller) Initialize(ctx context.Context) {
	c.results = nil
	c.tab = model.TabSinglePrediction
	c.authView = model.ViewLogin

	if account, ok := c.loadAccount(ctx, KeyAdmin); ok {
		c.identity = model.AdminIdentity(account)
		c.token = c.loadToken(ctx, KeyAdminToken)
		c.logger.Debug("restored admin session", "email", account.Email)
		return
	}

	if account, ok := c.loadAccount(ctx, KeyUser); ok {
		c.identity = model.UserIdentity(account)
		c.token = c.loadToken(ctx, KeyUserToken)
		c.logger.Debug("restored user session", "email", account.Email)
		return
	}

	c.identity = model.Anonymous()
	c.token = ""
}

func (c *Controller) loadToken(ctx context.Context, key string) model.Token {
	raw, ok, err := c.store.Get(ctx, key)
	if err != nil || !ok {
		return ""
	}
	return model.Token(raw)
}

// Login adopts a user identity returned by the auth service.
func (c *Controller) Login(ctx context.Context, account model.Account, token model.Token) error {
	return c.authenticateUser(ctx, "login", account, token)
}

// Signup adopts a freshly registered user identity.
func (c *Controller) Signup(ctx context.Context, account model.Account, token model.Token) error {
	return c.authenticateUser(ctx, "signup", account, token)
}

func (c *Controller) authenticateUser(ctx context.Context, op string, account model.Account, token model.Token) error {
	if account.IsZero() {
		return fmt.Errorf("%s: %w", op, ErrEmptyAccount)
	}

	c.identity = model.UserIdentity(account)
	c.token = token
	c.tab = model.TabSinglePrediction
	c.results = nil
	c.authView = model.ViewLogin

	c.logger.Info("user authenticated", "op", op, "email", account.Email)

	err := c.persistIdentity(ctx, KeyUser, KeyUserToken, account, token)
	if rmErr := c.removeKeys(ctx, KeyAdmin, KeyAdminToken); err == nil {
		err = rmErr
	}
	if err != nil {
		return fmt.Errorf("%s: failed to persist session: %w", op, err)
	}
	return nil
}

// Logout returns to Anonymous and removes the persisted user identity and token.
func (c *Controller) Logout(ctx context.Context) error {
	c.reset()
	c.logger.Info("user logged out")

	if err := c.removeKeys(ctx, KeyUser, KeyUserToken); err != nil {
		return fmt.Errorf("logout: failed to clear session: %w", err)
	}
	return nil
}

// AdminLogin adopts an admin identity returned by the auth service.
func (c *Controller) AdminLogin(ctx context.Context, account model.Account, token model.Token) error {
	return c.authenticateAdmin(ctx, "admin login", account, token)
}

// AdminSignup adopts a freshly registered admin identity.
func (c *Controller) AdminSignup(ctx context.Context, account model.Account, token model.Token) error {
	return c.authenticateAdmin(ctx, "admin signup", account, token)
}

func (c *Controller) authenticateAdmin(ctx context.Context, op string, account model.Account, token model.Token) error {
	if account.IsZero() {
		return fmt.Errorf("%s: %w", op, ErrEmptyAccount)
	}

	c.identity = model.AdminIdentity(account)
	c.token = token
	c.tab = model.TabSinglePrediction
	c.results = nil
	c.authView = model.ViewLogin

	c.logger.Info("admin authenticated", "op", op, "email", account.Email)

	err := c.persistIdentity(ctx, KeyAdmin, KeyAdminToken, account, token)
	if rmErr := c.removeKeys(ctx, KeyUser, KeyUserToken); err == nil {
		err = rmErr
	}
	if err != nil {
		return fmt.Errorf("%s: failed to persist session: %w", op, err)
	}
	return nil
}

// AdminLogout returns to Anonymous and removes the persisted admin identity and token.
func (c *Controller) AdminLogout(ctx context.Context) error {
	c.reset()
	c.logger.Info("admin logged out")

	if err := c.removeKeys(ctx, KeyAdmin, KeyAdminToken); err != nil {
		return fmt.Errorf("admin logout: failed to clear session: %w", err)
	}
	return nil
}

func (c *Controller) reset() {
	c.identity = model.Anonymous()
	c.token = ""
	c.results = nil
	c.tab = model.TabSinglePrediction
	c.authView = model.ViewLogin
}

// SelectTab switches the active prediction tab and dismisses any results.
func (c *Controller) SelectTab(tab model.Tab) error {
	if !c.identity.IsUser() {
		return fmt.Errorf("select tab as %s: %w", c.identity, ErrInvalidTransition)
	}
	if tab != model.TabSinglePrediction && tab != model.TabCSVBatch {
		return fmt.Errorf("select tab %d: %w", tab, ErrInvalidTransition)
	}

	c.tab = tab
	c.results = nil
	return nil
}

// SetResults shows a prediction result, or with nil returns to the active tab's form.
func (c *Controller) SetResults(result *model.PredictionResult) error {
	if !c.identity.IsUser() {
		return fmt.Errorf("set results as %s: %w", c.identity, ErrInvalidTransition)
	}

	c.results = result
	return nil
}

// SwitchAuthView moves between the login, signup and admin auth screens.
func (c *Controller) SwitchAuthView(view model.View) error {
	if !c.identity.IsAnonymous() {
		return fmt.Errorf("switch to %s as %s: %w", view, c.identity, ErrInvalidTransition)
	}
	if !view.IsAuthView() {
		return fmt.Errorf("switch to %s: %w", view, ErrInvalidTransition)
	}

	c.authView = view
	return nil
}

// Identity returns the current identity.
func (c *Controller) Identity() model.Identity {
	return c.identity
}

// Token returns the credential of the active identity. It is empty when anonymous.
func (c *Controller) Token() model.Token {
	if c.identity.IsAnonymous() {
		return ""
	}
	return c.token
}

// View returns the screen that should be rendered.
func (c *Controller) View() model.View {
	return selectView(c.identity, c.authView, c.tab, c.results != nil)
}

// Tab returns the selected prediction tab.
func (c *Controller) Tab() model.Tab {
	return c.tab
}

// AuthView returns the selected pre-auth screen.
func (c *Controller) AuthView() model.View {
	return c.authView
}

// Results returns the pending prediction result, if any.
func (c *Controller) Results() *model.PredictionResult {
	return c.results
}

// State returns a snapshot of the controller.
func (c *Controller) State() State {
	return State{
		Identity: c.identity,
		View:     c.View(),
		Tab:      c.tab,
		Results:  c.results,
	}
}
