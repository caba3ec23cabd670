// Package themes holds the lipgloss styles of the terminal screens.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Label         lipgloss.Style
	Focused       lipgloss.Style
	Selected      lipgloss.Style
	Tab           lipgloss.Style
	ActiveTab     lipgloss.Style
	Box           lipgloss.Style
	BorderedBox   lipgloss.Style
	Help          lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusInfo    lipgloss.Style
	Positive      lipgloss.Style
	Negative      lipgloss.Style
	Primary       lipgloss.Color
	Secondary     lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
	Foreground    lipgloss.Color
	Info          lipgloss.Color
	Error         lipgloss.Color
	Warning       lipgloss.Color
	Success       lipgloss.Color
}

// New builds a theme from its palette.
func New(primary, secondary, success, warning, danger, info, fg, muted, border lipgloss.Color) Theme {
	return Theme{
		Primary:    primary,
		Secondary:  secondary,
		Success:    success,
		Warning:    warning,
		Error:      danger,
		Info:       info,
		Foreground: fg,
		Muted:      muted,
		Border:     border,

		Title:    lipgloss.NewStyle().Bold(true).Foreground(primary).MarginBottom(1),
		Subtitle: lipgloss.NewStyle().Foreground(muted).MarginBottom(1),
		Normal:   lipgloss.NewStyle().Foreground(fg),
		Bold:     lipgloss.NewStyle().Bold(true).Foreground(fg),
		Label:    lipgloss.NewStyle().Foreground(secondary).Width(38),
		Focused:  lipgloss.NewStyle().Foreground(primary).Bold(true),
		Selected: lipgloss.NewStyle().Background(primary).Foreground(fg).Bold(true),
		Tab: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 2),
		ActiveTab: lipgloss.NewStyle().
			Foreground(fg).
			Background(primary).
			Bold(true).
			Padding(0, 2),
		Box: lipgloss.NewStyle().Padding(1, 2),
		BorderedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(1, 2),
		Help:          lipgloss.NewStyle().Foreground(muted),
		StatusError:   lipgloss.NewStyle().Foreground(danger).Bold(true),
		StatusWarning: lipgloss.NewStyle().Foreground(warning),
		StatusSuccess: lipgloss.NewStyle().Foreground(success),
		StatusInfo:    lipgloss.NewStyle().Foreground(info),
		Positive:      lipgloss.NewStyle().Foreground(warning).Bold(true),
		Negative:      lipgloss.NewStyle().Foreground(success).Bold(true),
	}
}

// Default is the default dark theme.
var Default = New(
	lipgloss.Color("#4A90D9"),
	lipgloss.Color("#85C1E9"),
	lipgloss.Color("#2ECC71"),
	lipgloss.Color("#F39C12"),
	lipgloss.Color("#E74C3C"),
	lipgloss.Color("#3B82F6"),
	lipgloss.Color("#FAFAFA"),
	lipgloss.Color("#737373"),
	lipgloss.Color("#404040"),
)

// Light suits light terminal backgrounds.
var Light = New(
	lipgloss.Color("#1F5FA8"),
	lipgloss.Color("#2C3E50"),
	lipgloss.Color("#1E8449"),
	lipgloss.Color("#B9770E"),
	lipgloss.Color("#C0392B"),
	lipgloss.Color("#2563EB"),
	lipgloss.Color("#111111"),
	lipgloss.Color("#6B7280"),
	lipgloss.Color("#D1D5DB"),
)

// ByName returns the theme called name, defaulting to Default.
func ByName(name string) Theme {
	if name == "light" {
		return Light
	}
	return Default
}
