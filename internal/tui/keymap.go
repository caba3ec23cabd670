package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Auth screens
	ShowLogin       key.Binding
	ShowSignup      key.Binding
	ShowAdminLogin  key.Binding
	ShowAdminSignup key.Binding

	// Prediction screens
	SingleTab    key.Binding
	BatchTab     key.Binding
	Dismiss      key.Binding
	Export       key.Binding
	WriteSample  key.Binding
	Refresh      key.Binding
	ToggleTheme  key.Binding
	Logout       key.Binding
	Submit       key.Binding
	NextField    key.Binding
	PrevField    key.Binding
	CycleOptions key.Binding

	// Application
	Quit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		ShowLogin: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("Ctrl+L", "login"),
		),
		ShowSignup: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("Ctrl+N", "sign up"),
		),
		ShowAdminLogin: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("Ctrl+A", "admin login"),
		),
		ShowAdminSignup: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("Ctrl+G", "admin sign up"),
		),

		SingleTab: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "single prediction"),
		),
		BatchTab: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("F2", "CSV upload"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc", "n"),
			key.WithHelp("Esc/n", "new prediction"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export CSV"),
		),
		WriteSample: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("Ctrl+E", "save sample CSV"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		ToggleTheme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("Ctrl+T", "toggle theme"),
		),
		Logout: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("Ctrl+X", "logout"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "submit"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("Tab/↓", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("S-Tab/↑", "previous field"),
		),
		CycleOptions: key.NewBinding(
			key.WithKeys("left", "right"),
			key.WithHelp("←/→", "change option"),
		),

		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "quit"),
		),
	}
}

// AuthHelp returns the bindings shown on the auth screens.
func (k KeyMap) AuthHelp() []key.Binding {
	return []key.Binding{k.Submit, k.NextField, k.ShowLogin, k.ShowSignup, k.ShowAdminLogin, k.ShowAdminSignup, k.Quit}
}

// FormHelp returns the bindings shown on the prediction forms.
func (k KeyMap) FormHelp() []key.Binding {
	return []key.Binding{k.Submit, k.NextField, k.CycleOptions, k.SingleTab, k.BatchTab, k.Logout, k.Quit}
}

// UploadHelp returns the bindings shown on the CSV screen.
func (k KeyMap) UploadHelp() []key.Binding {
	return []key.Binding{k.Submit, k.WriteSample, k.SingleTab, k.BatchTab, k.Logout, k.Quit}
}

// ResultsHelp returns the bindings shown with results.
func (k KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.Dismiss, k.Export, k.SingleTab, k.BatchTab, k.Logout, k.Quit}
}

// DashboardHelp returns the bindings shown on the admin dashboard.
func (k KeyMap) DashboardHelp() []key.Binding {
	return []key.Binding{k.Refresh, k.ToggleTheme, k.Logout, k.Quit}
}
