package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/ckd-predict/internal/api"
	"github.com/Veraticus/ckd-predict/internal/forms"
	"github.com/Veraticus/ckd-predict/internal/model"
	"github.com/Veraticus/ckd-predict/internal/session"
	"github.com/Veraticus/ckd-predict/internal/tui/components"
	"github.com/Veraticus/ckd-predict/internal/tui/themes"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrNoController is returned by New without WithController.
var ErrNoController = errors.New("session controller is required")

// Model holds the TUI state. The session controller owns identity and view
// selection; Model owns only the widgets and transient status.
type Model struct {
	theme       themes.Theme
	controller  *session.Controller
	logger      *slog.Logger
	status      string
	config      Config
	keymap      KeyMap
	login       components.FormModel
	signup      components.FormModel
	adminLogin  components.FormModel
	adminSignup components.FormModel
	patient     components.FormModel
	upload      components.FormModel
	dashboard   components.DashboardModel
	width       int
	height      int
	statusErr   bool
	quitting    bool
}

// New creates the root model. The controller should already be initialized.
func New(opts ...Option) (Model, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Controller == nil {
		return Model{}, ErrNoController
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	theme := cfg.Theme
	m := Model{
		config:      cfg,
		controller:  cfg.Controller,
		logger:      cfg.Logger,
		keymap:      DefaultKeyMap(),
		theme:       theme,
		width:       cfg.Width,
		height:      cfg.Height,
		login:       components.NewLoginForm(theme),
		signup:      components.NewSignupForm(theme),
		adminLogin:  components.NewAdminLoginForm(theme),
		adminSignup: components.NewAdminSignupForm(theme),
		patient:     components.NewPatientForm(theme, patientRows(cfg.Height)),
		upload:      components.NewUploadForm(theme),
		dashboard:   components.NewDashboardModel(theme, cfg.Settings),
	}
	if m.controller.Identity().IsAdmin() {
		m.dashboard.StartLoading()
	}
	return m, nil
}

// patientRows is how many patient fields fit below the header and help lines.
func patientRows(height int) int {
	return max(4, height-14)
}

// Init loads the dashboard when an admin session was restored.
func (m Model) Init() tea.Cmd {
	if m.controller.Identity().IsAdmin() {
		return tea.Batch(m.dashboard.Tick, m.loadDashboard(m.controller.Token()))
	}
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		if key.Matches(msg, m.keymap.ToggleTheme) {
			m.toggleTheme()
			return m, nil
		}
		return m.handleKey(msg)

	case components.FormSubmittedMsg:
		return m.handleSubmit(msg)

	case components.RefreshRequestedMsg:
		if !m.controller.Identity().IsAdmin() {
			return m, nil
		}
		if m.config.invalidate != nil {
			m.config.invalidate(m.controller.Token())
		}
		cmd := m.refreshDashboard()
		return m, cmd

	case authResultMsg:
		return m.handleAuthResult(msg)

	case remoteLogoutMsg:
		if msg.err != nil {
			m.logger.Debug("remote logout failed", "error", msg.err)
		}
		return m, nil

	case predictionMsg:
		return m.handlePrediction(msg)

	case dashboardLoadedMsg:
		m.handleDashboardLoaded(msg)
		return m, nil

	case fileWrittenMsg:
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("%s not saved: %v", msg.what, msg.err), true)
		} else {
			m.setStatus(fmt.Sprintf("%s saved to %s", msg.what, msg.path), false)
		}
		return m, nil
	}

	return m.updateActive(msg)
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func (m *Model) toggleTheme() {
	if m.theme.Primary == themes.Light.Primary {
		m.theme = themes.Default
	} else {
		m.theme = themes.Light
	}
	for _, f := range []*components.FormModel{&m.login, &m.signup, &m.adminLogin, &m.adminSignup, &m.patient, &m.upload} {
		f.SetTheme(m.theme)
	}
	m.dashboard.SetTheme(m.theme)
}

// activeForm returns the form rendered by the current view, or nil.
func (m *Model) activeForm() *components.FormModel {
	switch m.controller.View() {
	case model.ViewLogin:
		return &m.login
	case model.ViewSignup:
		return &m.signup
	case model.ViewAdminLogin:
		return &m.adminLogin
	case model.ViewAdminSignup:
		return &m.adminSignup
	case model.ViewSinglePrediction:
		return &m.patient
	case model.ViewCSVBatch:
		return &m.upload
	default:
		return nil
	}
}

// updateActive forwards msg to the widget of the current view.
func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.controller.View() == model.ViewAdminDashboard {
		var cmd tea.Cmd
		m.dashboard, cmd = m.dashboard.Update(msg)
		return m, cmd
	}
	if form := m.activeForm(); form != nil {
		var cmd tea.Cmd
		*form, cmd = form.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	view := m.controller.View()
	identity := m.controller.Identity()

	switch {
	case view.IsAuthView():
		if target, ok := m.authSwitch(msg); ok {
			if err := m.controller.SwitchAuthView(target); err != nil {
				m.logger.Debug("auth view switch rejected", "error", err)
			}
			m.setStatus("", false)
			return m, nil
		}

	case identity.IsUser():
		switch {
		case key.Matches(msg, m.keymap.Logout):
			return m.logout()
		case key.Matches(msg, m.keymap.SingleTab):
			m.selectTab(model.TabSinglePrediction)
			return m, nil
		case key.Matches(msg, m.keymap.BatchTab):
			m.selectTab(model.TabCSVBatch)
			return m, nil
		}

		switch view {
		case model.ViewResults:
			return m.handleResultsKey(msg)
		case model.ViewCSVBatch:
			if key.Matches(msg, m.keymap.WriteSample) {
				return m, m.writeSample()
			}
		}

	case identity.IsAdmin():
		if key.Matches(msg, m.keymap.Logout) {
			return m.adminLogout()
		}
	}

	return m.updateActive(msg)
}

func (m Model) authSwitch(msg tea.KeyMsg) (model.View, bool) {
	switch {
	case key.Matches(msg, m.keymap.ShowLogin):
		return model.ViewLogin, true
	case key.Matches(msg, m.keymap.ShowSignup):
		return model.ViewSignup, true
	case key.Matches(msg, m.keymap.ShowAdminLogin):
		return model.ViewAdminLogin, true
	case key.Matches(msg, m.keymap.ShowAdminSignup):
		return model.ViewAdminSignup, true
	}
	return 0, false
}

func (m *Model) selectTab(tab model.Tab) {
	if err := m.controller.SelectTab(tab); err != nil {
		m.logger.Debug("tab switch rejected", "error", err)
		return
	}
	m.setStatus("", false)
}

func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Dismiss):
		if err := m.controller.SetResults(nil); err != nil {
			m.logger.Debug("dismiss rejected", "error", err)
		}
		m.setStatus("", false)
		return m, nil

	case key.Matches(msg, m.keymap.Export):
		result := m.controller.Results()
		if result == nil || result.Batch == nil {
			m.setStatus("Only batch results can be exported", true)
			return m, nil
		}
		return m, m.exportResults(*result.Batch)
	}
	return m, nil
}

func (m Model) logout() (tea.Model, tea.Cmd) {
	token := m.controller.Token()
	if err := m.controller.Logout(context.Background()); err != nil {
		m.logger.Warn("logout did not clear stored session", "error", err)
	}
	m.resetWidgets()
	m.setStatus("Logged out", false)
	return m, m.remoteLogout(token)
}

func (m Model) adminLogout() (tea.Model, tea.Cmd) {
	token := m.controller.Token()
	if err := m.controller.AdminLogout(context.Background()); err != nil {
		m.logger.Warn("admin logout did not clear stored session", "error", err)
	}
	if m.config.invalidate != nil {
		m.config.invalidate(token)
	}
	m.resetWidgets()
	m.setStatus("Logged out", false)
	return m, m.remoteLogout(token)
}

func (m *Model) resetWidgets() {
	m.login.Reset()
	m.signup.Reset()
	m.adminLogin.Reset()
	m.adminSignup.Reset()
	m.patient.Reset()
	m.upload.Reset()
	m.dashboard = components.NewDashboardModel(m.theme, m.config.Settings)
}

func (m Model) handleSubmit(msg components.FormSubmittedMsg) (tea.Model, tea.Cmd) {
	v := msg.Values

	var (
		kind  authKind
		creds forms.Credentials
		err   error
		form  *components.FormModel
	)

	switch msg.FormID {
	case components.FormLogin:
		form, kind = &m.login, authLogin
		creds, err = forms.ValidateLogin(v[components.FieldEmail], v[components.FieldPassword])
	case components.FormAdminLogin:
		form, kind = &m.adminLogin, authAdminLogin
		creds, err = forms.ValidateLogin(v[components.FieldEmail], v[components.FieldPassword])
	case components.FormSignup:
		form, kind = &m.signup, authSignup
		creds, err = forms.ValidateSignup(v[components.FieldName], v[components.FieldEmail],
			v[components.FieldPassword], v[components.FieldConfirm])
	case components.FormAdminSignup:
		form, kind = &m.adminSignup, authAdminSignup
		creds, err = forms.ValidateAdminSignup(v[components.FieldName], v[components.FieldEmail],
			v[components.FieldPassword], v[components.FieldConfirm], v[components.FieldAdminCode])

	case components.FormPatient:
		if !m.controller.Identity().IsUser() {
			return m, nil
		}
		record, perr := forms.ParsePatient(v)
		if perr != nil {
			m.patient.SetError(perr.Error())
			return m, nil
		}
		busy := m.patient.SetBusy(true)
		return m, tea.Batch(busy, m.predictSingle(m.controller.Token(), record))

	case components.FormUpload:
		if !m.controller.Identity().IsUser() {
			return m, nil
		}
		path := v[components.FieldPath]
		if path == "" {
			m.upload.SetError("Please select a CSV file first")
			return m, nil
		}
		busy := m.upload.SetBusy(true)
		return m, tea.Batch(busy, m.predictBatch(m.controller.Token(), path))

	default:
		return m, nil
	}

	if !m.controller.Identity().IsAnonymous() {
		return m, nil
	}
	if err != nil {
		form.SetError(validationMessage(err))
		return m, nil
	}
	busy := form.SetBusy(true)
	return m, tea.Batch(busy, m.authenticate(kind, creds))
}

// validationMessage returns the user-facing text of a forms error.
func validationMessage(err error) string {
	var ve *forms.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return err.Error()
}

func (m *Model) authForm(kind authKind) *components.FormModel {
	switch kind {
	case authSignup:
		return &m.signup
	case authAdminLogin:
		return &m.adminLogin
	case authAdminSignup:
		return &m.adminSignup
	default:
		return &m.login
	}
}

var authFailures = map[authKind]string{
	authLogin:       "Login failed",
	authSignup:      "Signup failed",
	authAdminLogin:  "Admin login failed",
	authAdminSignup: "Admin signup failed",
}

func (m Model) handleAuthResult(msg authResultMsg) (tea.Model, tea.Cmd) {
	form := m.authForm(msg.kind)

	if msg.err != nil {
		form.SetError(api.Message(msg.err, authFailures[msg.kind]))
		return m, nil
	}
	if !m.controller.Identity().IsAnonymous() {
		form.SetBusy(false)
		return m, nil
	}

	ctx := context.Background()
	var err error
	switch msg.kind {
	case authLogin:
		err = m.controller.Login(ctx, msg.account, msg.token)
	case authSignup:
		err = m.controller.Signup(ctx, msg.account, msg.token)
	case authAdminLogin:
		err = m.controller.AdminLogin(ctx, msg.account, msg.token)
	case authAdminSignup:
		err = m.controller.AdminSignup(ctx, msg.account, msg.token)
	}

	if errors.Is(err, session.ErrEmptyAccount) {
		form.SetError(authFailures[msg.kind])
		return m, nil
	}

	form.Reset()
	if err != nil {
		m.logger.Warn("session not persisted", "error", err)
		m.setStatus("Signed in, but the session could not be saved", true)
	} else {
		m.setStatus("Welcome, "+msg.account.DisplayName(), false)
	}

	if m.controller.Identity().IsAdmin() {
		cmd := m.refreshDashboard()
		return m, cmd
	}
	return m, nil
}

func (m Model) handlePrediction(msg predictionMsg) (tea.Model, tea.Cmd) {
	if !m.controller.Identity().IsUser() || msg.token != m.controller.Token() {
		m.logger.Debug("dropping prediction for a previous session")
		return m, nil
	}
	m.patient.SetBusy(false)
	m.upload.SetBusy(false)

	form := &m.patient
	if m.controller.Tab() == model.TabCSVBatch {
		form = &m.upload
	}

	if msg.err != nil {
		form.SetError(api.Message(msg.err, ""))
		return m, nil
	}

	if err := m.controller.SetResults(msg.result); err != nil {
		m.logger.Debug("results rejected", "error", err)
		return m, nil
	}
	m.setStatus("", false)
	return m, nil
}

func (m *Model) refreshDashboard() tea.Cmd {
	return tea.Batch(m.dashboard.StartLoading(), m.loadDashboard(m.controller.Token()))
}

func (m *Model) handleDashboardLoaded(msg dashboardLoadedMsg) {
	if !m.controller.Identity().IsAdmin() || msg.token != m.controller.Token() {
		return
	}
	if msg.statsErr == nil {
		m.dashboard.SetStats(msg.stats)
	}
	if msg.usersErr == nil {
		m.dashboard.SetUsers(msg.users)
	}

	switch {
	case msg.statsErr != nil:
		m.dashboard.FinishLoading(api.Message(msg.statsErr, "Error fetching dashboard data"))
	case msg.usersErr != nil:
		m.dashboard.FinishLoading(api.Message(msg.usersErr, "Error fetching dashboard data"))
	default:
		m.dashboard.FinishLoading("")
	}
}
