package components

import (
	"strconv"
	"strings"

	"github.com/Veraticus/ckd-predict/internal/tui/themes"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FieldSpec describes one form field. A field with Options is a choice field
// cycled with left/right; every other field is free text.
type FieldSpec struct {
	Key         string
	Label       string
	Section     string
	Placeholder string
	Default     string
	Options     []string
	Password    bool
}

type formField struct {
	spec   FieldSpec
	input  textinput.Model
	choice int
}

func (f formField) isChoice() bool {
	return len(f.spec.Options) > 0
}

func (f formField) value() string {
	if f.isChoice() {
		return f.spec.Options[f.choice]
	}
	if f.spec.Password {
		return f.input.Value()
	}
	return strings.TrimSpace(f.input.Value())
}

// FormModel is a vertical list of inputs submitted with enter.
type FormModel struct {
	theme   themes.Theme
	spinner spinner.Model
	id      string
	title   string
	err     string
	fields  []formField
	focus   int
	offset  int
	visible int
	busy    bool
}

// NewFormModel creates a form. visible limits how many fields render at once;
// zero shows all of them.
func NewFormModel(id, title string, specs []FieldSpec, theme themes.Theme, visible int) FormModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(theme.Primary)

	m := FormModel{
		id:      id,
		title:   title,
		theme:   theme,
		spinner: s,
		visible: visible,
		fields:  make([]formField, len(specs)),
	}

	for i, spec := range specs {
		f := formField{spec: spec}
		if len(spec.Options) == 0 {
			ti := textinput.New()
			ti.Placeholder = spec.Placeholder
			ti.CharLimit = 128
			ti.Width = 32
			if spec.Password {
				ti.EchoMode = textinput.EchoPassword
				ti.EchoCharacter = '•'
			}
			f.input = ti
		}
		m.fields[i] = f
	}
	m.Reset()

	return m
}

// ID identifies the form in FormSubmittedMsg.
func (m FormModel) ID() string {
	return m.id
}

// Busy reports whether a submission is in flight.
func (m FormModel) Busy() bool {
	return m.busy
}

// Error returns the inline error message.
func (m FormModel) Error() string {
	return m.err
}

// Focused returns the key of the focused field.
func (m FormModel) Focused() string {
	if len(m.fields) == 0 {
		return ""
	}
	return m.fields[m.focus].spec.Key
}

// SetTheme swaps the palette.
func (m *FormModel) SetTheme(theme themes.Theme) {
	m.theme = theme
	m.spinner.Style = lipgloss.NewStyle().Foreground(theme.Primary)
}

// Values returns the field values keyed by field key. Text is trimmed except in password fields.
func (m FormModel) Values() map[string]string {
	values := make(map[string]string, len(m.fields))
	for _, f := range m.fields {
		values[f.spec.Key] = f.value()
	}
	return values
}

// SetValue sets a field; choice fields accept only one of their options.
func (m *FormModel) SetValue(key, value string) bool {
	for i := range m.fields {
		f := &m.fields[i]
		if f.spec.Key != key {
			continue
		}
		if !f.isChoice() {
			f.input.SetValue(value)
			return true
		}
		for j, opt := range f.spec.Options {
			if opt == value {
				f.choice = j
				return true
			}
		}
		return false
	}
	return false
}

// SetError shows msg under the form and ends any busy state.
func (m *FormModel) SetError(msg string) {
	m.err = msg
	m.busy = false
}

// SetBusy toggles the in-flight state; starting returns the spinner tick.
func (m *FormModel) SetBusy(busy bool) tea.Cmd {
	m.busy = busy
	if busy {
		m.err = ""
		return m.spinner.Tick
	}
	return nil
}

// Reset restores defaults, clears errors and focuses the first field.
func (m *FormModel) Reset() {
	for i := range m.fields {
		f := &m.fields[i]
		f.choice = 0
		for j, opt := range f.spec.Options {
			if opt == f.spec.Default {
				f.choice = j
			}
		}
		if !f.isChoice() {
			f.input.SetValue(f.spec.Default)
		}
	}
	m.err = ""
	m.busy = false
	m.focusField(0)
}

func (m *FormModel) focusField(i int) tea.Cmd {
	if len(m.fields) == 0 {
		return nil
	}
	if i < 0 {
		i = len(m.fields) - 1
	}
	if i >= len(m.fields) {
		i = 0
	}

	m.fields[m.focus].input.Blur()
	m.focus = i

	if m.visible > 0 {
		if m.focus < m.offset {
			m.offset = m.focus
		}
		if m.focus >= m.offset+m.visible {
			m.offset = m.focus - m.visible + 1
		}
	}

	if m.fields[i].isChoice() {
		return nil
	}
	return m.fields[i].input.Focus()
}

// Update handles messages.
func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.busy || len(m.fields) == 0 {
			return m, nil
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m FormModel) handleKey(msg tea.KeyMsg) (FormModel, tea.Cmd) {
	field := &m.fields[m.focus]

	switch msg.String() {
	case "tab", "down":
		return m, m.focusField(m.focus + 1)

	case "shift+tab", "up":
		return m, m.focusField(m.focus - 1)

	case "enter":
		values := m.Values()
		id := m.id
		return m, func() tea.Msg {
			return FormSubmittedMsg{FormID: id, Values: values}
		}

	case "left", "right", " ":
		if field.isChoice() {
			n := len(field.spec.Options)
			if msg.String() == "left" {
				field.choice = (field.choice + n - 1) % n
			} else {
				field.choice = (field.choice + 1) % n
			}
			return m, nil
		}
	}

	if field.isChoice() {
		return m, nil
	}

	var cmd tea.Cmd
	field.input, cmd = field.input.Update(msg)
	return m, cmd
}

// View renders the form.
func (m FormModel) View() string {
	var b strings.Builder

	if m.title != "" {
		b.WriteString(m.theme.Title.Render(m.title) + "\n")
	}

	start, end := 0, len(m.fields)
	if m.visible > 0 && m.visible < len(m.fields) {
		start = m.offset
		end = min(m.offset+m.visible, len(m.fields))
	}

	section := ""
	for i := start; i < end; i++ {
		f := m.fields[i]
		if f.spec.Section != "" && f.spec.Section != section {
			section = f.spec.Section
			b.WriteString(m.theme.Subtitle.Render(section) + "\n")
		}

		marker := "  "
		label := m.theme.Label.Render(f.spec.Label)
		if i == m.focus {
			marker = m.theme.Focused.Render("▸ ")
			label = m.theme.Label.Foreground(m.theme.Primary).Render(f.spec.Label)
		}

		var input string
		if f.isChoice() {
			input = m.renderChoice(f, i == m.focus)
		} else {
			input = f.input.View()
		}
		b.WriteString(marker + label + " " + input + "\n")
	}

	if m.visible > 0 && m.visible < len(m.fields) {
		b.WriteString(m.theme.Help.Render(
			strings.Repeat(" ", 2)+"field "+strconv.Itoa(m.focus+1)+" of "+strconv.Itoa(len(m.fields))) + "\n")
	}

	if m.busy {
		b.WriteString("\n" + m.spinner.View() + " Please wait...\n")
	}
	if m.err != "" {
		b.WriteString("\n" + m.theme.StatusError.Render(m.err) + "\n")
	}

	return b.String()
}

func (m FormModel) renderChoice(f formField, focused bool) string {
	parts := make([]string, len(f.spec.Options))
	for i, opt := range f.spec.Options {
		switch {
		case i == f.choice && focused:
			parts[i] = m.theme.Selected.Render(" " + opt + " ")
		case i == f.choice:
			parts[i] = m.theme.Bold.Render("[" + opt + "]")
		default:
			parts[i] = m.theme.Help.Render(" " + opt + " ")
		}
	}
	return strings.Join(parts, " ")
}
