package tui

import (
	"strings"

	"github.com/Veraticus/ckd-predict/internal/model"
	"github.com/Veraticus/ckd-predict/internal/tui/components"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// View renders the current screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	var help []key.Binding

	view := m.controller.View()
	switch view {
	case model.ViewLogin:
		body, help = m.renderAuth(m.login.View(), "Don't have an account? Ctrl+N to sign up"), m.keymap.AuthHelp()
	case model.ViewSignup:
		body, help = m.renderAuth(m.signup.View(), "Already have an account? Ctrl+L to log in"), m.keymap.AuthHelp()
	case model.ViewAdminLogin:
		body, help = m.renderAuth(m.adminLogin.View(), "Need an admin account? Ctrl+G to register"), m.keymap.AuthHelp()
	case model.ViewAdminSignup:
		body, help = m.renderAuth(m.adminSignup.View(), "Already registered? Ctrl+A for admin login"), m.keymap.AuthHelp()
	case model.ViewSinglePrediction:
		body, help = m.patient.View(), m.keymap.FormHelp()
	case model.ViewCSVBatch:
		body, help = m.renderUpload(), m.keymap.UploadHelp()
	case model.ViewResults:
		body = components.RenderResults(m.controller.Results(), m.theme, max(5, m.height-16))
		help = m.keymap.ResultsHelp()
	case model.ViewAdminDashboard:
		body, help = m.dashboard.View(), m.keymap.DashboardHelp()
	}

	sections := []string{m.renderHeader()}
	if m.controller.Identity().IsUser() {
		sections = append(sections, m.renderTabs())
	}
	sections = append(sections, m.theme.Box.Render(body))
	if m.status != "" {
		style := m.theme.StatusSuccess
		if m.statusErr {
			style = m.theme.StatusError
		}
		sections = append(sections, style.Render(m.status))
	}
	sections = append(sections, m.renderHelp(help))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := "🩺 CKD Prediction System"
	if m.controller.Identity().IsAdmin() {
		title = "🏥 Admin Dashboard"
	}

	identity := m.controller.Identity()
	right := ""
	if !identity.IsAnonymous() {
		right = m.theme.Help.Render("Signed in as " + identity.Account.DisplayName())
	}

	left := m.theme.Title.UnsetMargins().Render(title)
	gap := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) renderTabs() string {
	active := m.controller.Tab()
	tabs := []struct {
		tab   model.Tab
		label string
	}{
		{model.TabSinglePrediction, "F1 Single Prediction"},
		{model.TabCSVBatch, "F2 CSV Upload"},
	}

	rendered := make([]string, len(tabs))
	for i, t := range tabs {
		if t.tab == active {
			rendered[i] = m.theme.ActiveTab.Render(t.label)
		} else {
			rendered[i] = m.theme.Tab.Render(t.label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderAuth(form, hint string) string {
	return m.theme.BorderedBox.Render(form + "\n" + m.theme.Help.Render(hint))
}

func (m Model) renderUpload() string {
	var b strings.Builder
	b.WriteString(m.upload.View())
	b.WriteString("\n" + m.theme.Subtitle.Render("Required CSV format") + "\n")
	b.WriteString(m.theme.Help.Render(strings.Join(model.PatientColumns(), ",")) + "\n")
	b.WriteString(m.theme.Help.Render("CSV must have a header row with the exact column names; one patient per row.") + "\n")
	return b.String()
}

func (m Model) renderHelp(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return m.theme.Help.Render(strings.Join(parts, " • "))
}
