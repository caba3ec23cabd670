package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/ckd-predict/internal/model"
	"github.com/Veraticus/ckd-predict/internal/tui/themes"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SettingsEntry is one read-only line of the settings section.
type SettingsEntry struct {
	Label string
	Value string
}

// DashboardModel is the admin dashboard with its section menu.
type DashboardModel struct {
	theme    themes.Theme
	stats    *model.DashboardStats
	spinner  spinner.Model
	users    table.Model
	err      string
	settings []SettingsEntry
	menu     model.AdminMenu
	userRows int
	loading  bool
}

// NewDashboardModel creates a dashboard showing the overview section.
func NewDashboardModel(theme themes.Theme, settings []SettingsEntry) DashboardModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(theme.Primary)

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Name", Width: 22},
			{Title: "Email", Width: 30},
			{Title: "Joined", Width: 12},
			{Title: "Status", Width: 8},
		}),
		table.WithHeight(10),
		table.WithFocused(true),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(theme.Primary)
	styles.Selected = styles.Selected.Foreground(theme.Foreground).Background(theme.Primary)
	t.SetStyles(styles)

	return DashboardModel{
		theme:    theme,
		spinner:  s,
		users:    t,
		settings: settings,
		menu:     model.MenuOverview,
	}
}

// Menu returns the selected section.
func (m DashboardModel) Menu() model.AdminMenu {
	return m.menu
}

// Loading reports whether a refresh is in flight.
func (m DashboardModel) Loading() bool {
	return m.loading
}

// Stats returns the last loaded counters, or nil.
func (m DashboardModel) Stats() *model.DashboardStats {
	return m.stats
}

// UserCount returns the number of loaded users.
func (m DashboardModel) UserCount() int {
	return m.userRows
}

// Error returns the last load error.
func (m DashboardModel) Error() string {
	return m.err
}

// StartLoading marks a refresh as in flight and returns the spinner tick.
func (m *DashboardModel) StartLoading() tea.Cmd {
	m.loading = true
	m.err = ""
	return m.spinner.Tick
}

// Tick advances the loading spinner.
func (m DashboardModel) Tick() tea.Msg {
	return m.spinner.Tick()
}

// SetStats stores loaded counters.
func (m *DashboardModel) SetStats(stats model.DashboardStats) {
	m.stats = &stats
}

// SetUsers fills the users table.
func (m *DashboardModel) SetUsers(users []model.UserRecord) {
	rows := make([]table.Row, 0, len(users))
	for _, u := range users {
		joined := "-"
		if !u.CreatedAt.IsZero() {
			joined = u.CreatedAt.Format("2006-01-02")
		}
		rows = append(rows, table.Row{u.Name, u.Email, joined, "Active"})
	}
	m.users.SetRows(rows)
	m.userRows = len(rows)
}

// FinishLoading ends the in-flight state, recording msg when non-empty.
func (m *DashboardModel) FinishLoading(msg string) {
	m.loading = false
	m.err = msg
}

// SetTheme swaps the palette.
func (m *DashboardModel) SetTheme(theme themes.Theme) {
	m.theme = theme
	m.spinner.Style = lipgloss.NewStyle().Foreground(theme.Primary)
}

// Update handles messages.
func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "right", "l", "tab":
			m.menu = model.AdminMenus[(int(m.menu)+1)%len(model.AdminMenus)]
			return m, nil
		case "left", "h", "shift+tab":
			n := len(model.AdminMenus)
			m.menu = model.AdminMenus[(int(m.menu)+n-1)%n]
			return m, nil
		case "1", "2", "3", "4", "5":
			m.menu = model.AdminMenus[int(msg.String()[0]-'1')]
			return m, nil
		case "r":
			if m.loading {
				return m, nil
			}
			return m, func() tea.Msg { return RefreshRequestedMsg{} }
		}

		if m.menu == model.MenuUsers {
			var cmd tea.Cmd
			m.users, cmd = m.users.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

// View renders the menu and the selected section.
func (m DashboardModel) View() string {
	var b strings.Builder

	items := make([]string, len(model.AdminMenus))
	for i, item := range model.AdminMenus {
		label := fmt.Sprintf("%d %s", i+1, item)
		if item == m.menu {
			items[i] = m.theme.ActiveTab.Render(label)
		} else {
			items[i] = m.theme.Tab.Render(label)
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, items...) + "\n\n")

	switch m.menu {
	case model.MenuOverview:
		b.WriteString(m.viewOverview())
	case model.MenuUsers:
		b.WriteString(m.viewUsers())
	case model.MenuSettings:
		b.WriteString(m.viewSettings())
	default:
		b.WriteString(m.theme.Subtitle.Render(m.menu.String()) + "\n")
		b.WriteString(m.theme.Help.Render("This section is not available yet.") + "\n")
	}

	if m.loading {
		b.WriteString("\n" + m.spinner.View() + " Loading dashboard data...\n")
	}
	if m.err != "" {
		b.WriteString("\n" + m.theme.StatusError.Render(m.err) + "\n")
	}

	return b.String()
}

func (m DashboardModel) viewOverview() string {
	value := func(n int) string {
		if m.stats == nil {
			return "..."
		}
		return fmt.Sprint(n)
	}

	var stats model.DashboardStats
	if m.stats != nil {
		stats = *m.stats
	}

	cards := []string{
		m.card("Total Users", value(stats.TotalUsers)),
		m.card("Total Predictions", value(stats.TotalPredictions)),
		m.card("Active Sessions", value(stats.ActiveSessions)),
	}
	return m.theme.Title.Render("Dashboard Overview") + "\n" +
		lipgloss.JoinHorizontal(lipgloss.Top, cards...) + "\n"
}

func (m DashboardModel) card(title, value string) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Subtitle.UnsetMargins().Render(title),
		m.theme.Title.UnsetMargins().Render(value),
	)
	return m.theme.BorderedBox.Width(22).Render(body)
}

func (m DashboardModel) viewUsers() string {
	title := m.theme.Title.Render("Registered Users")
	if m.userRows == 0 {
		if m.loading {
			return title + "\nLoading users...\n"
		}
		return title + "\nNo users found\n"
	}
	return title + "\n" + m.users.View() + "\n"
}

func (m DashboardModel) viewSettings() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Settings") + "\n")
	for _, s := range m.settings {
		b.WriteString(m.theme.Label.Render(s.Label) + " " + s.Value + "\n")
	}
	return b.String()
}
