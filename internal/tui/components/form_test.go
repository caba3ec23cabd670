package components

import (
	"testing"

	"github.com/Veraticus/ckd-predict/internal/model"
	"github.com/Veraticus/ckd-predict/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func typeInto(m FormModel, s string) FormModel {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestFormModel_FocusWraps(t *testing.T) {
	m := NewSignupForm(themes.Default)
	assert.Equal(t, FieldName, m.Focused())

	m, _ = m.Update(key(tea.KeyShiftTab))
	assert.Equal(t, FieldConfirm, m.Focused())

	m, _ = m.Update(key(tea.KeyTab))
	assert.Equal(t, FieldName, m.Focused())

	m, _ = m.Update(key(tea.KeyDown))
	m, _ = m.Update(key(tea.KeyDown))
	assert.Equal(t, FieldPassword, m.Focused())

	m, _ = m.Update(key(tea.KeyUp))
	assert.Equal(t, FieldEmail, m.Focused())
}

func TestFormModel_SubmitValues(t *testing.T) {
	m := NewLoginForm(themes.Default)
	m = typeInto(m, "  ada@example.com ")
	m, _ = m.Update(key(tea.KeyTab))
	m = typeInto(m, " pw ")

	_, cmd := m.Update(key(tea.KeyEnter))
	require.NotNil(t, cmd)

	msg, ok := cmd().(FormSubmittedMsg)
	require.True(t, ok)
	assert.Equal(t, FormLogin, msg.FormID)
	assert.Equal(t, "ada@example.com", msg.Values[FieldEmail])
	assert.Equal(t, " pw ", msg.Values[FieldPassword], "passwords are not trimmed")
}

func TestFormModel_ChoiceCycling(t *testing.T) {
	m := NewPatientForm(themes.Default, 0)
	values := m.Values()
	assert.Equal(t, "normal", values["rbc"])

	for m.Focused() != "rbc" {
		m, _ = m.Update(key(tea.KeyTab))
	}

	m, _ = m.Update(key(tea.KeyRight))
	assert.Equal(t, "abnormal", m.Values()["rbc"])
	m, _ = m.Update(key(tea.KeyRight))
	assert.Equal(t, "normal", m.Values()["rbc"])
	m, _ = m.Update(key(tea.KeyLeft))
	assert.Equal(t, "abnormal", m.Values()["rbc"])
	m, _ = m.Update(key(tea.KeySpace))
	assert.Equal(t, "normal", m.Values()["rbc"])

	// Typing on a choice field is ignored.
	m = typeInto(m, "zz")
	assert.Equal(t, "normal", m.Values()["rbc"])
}

func TestFormModel_SetValue(t *testing.T) {
	m := NewPatientForm(themes.Default, 0)

	assert.True(t, m.SetValue("age", "48"))
	assert.True(t, m.SetValue("htn", "yes"))
	assert.False(t, m.SetValue("htn", "maybe"))
	assert.False(t, m.SetValue("unknown", "1"))

	values := m.Values()
	assert.Equal(t, "48", values["age"])
	assert.Equal(t, "yes", values["htn"])
	assert.Len(t, values, len(model.PatientFields))
}

func TestFormModel_BusyIgnoresKeys(t *testing.T) {
	m := NewLoginForm(themes.Default)
	m.SetError("Invalid credentials")

	cmd := m.SetBusy(true)
	assert.NotNil(t, cmd)
	assert.True(t, m.Busy())
	assert.Empty(t, m.Error(), "starting a submission clears the error")

	m = typeInto(m, "abc")
	_, cmd = m.Update(key(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.Empty(t, m.Values()[FieldEmail])

	assert.Nil(t, m.SetBusy(false))
	assert.False(t, m.Busy())
}

func TestFormModel_Reset(t *testing.T) {
	m := NewPatientForm(themes.Default, 5)
	m.SetValue("age", "48")
	m.SetValue("rbc", "abnormal")
	m.SetError("age: is required")
	m, _ = m.Update(key(tea.KeyTab))

	m.Reset()
	assert.Equal(t, "age", m.Focused())
	assert.Empty(t, m.Error())
	assert.Empty(t, m.Values()["age"])
	assert.Equal(t, "normal", m.Values()["rbc"])
}

func TestFormModel_ViewWindowed(t *testing.T) {
	m := NewPatientForm(themes.Default, 4)
	view := m.View()
	assert.Contains(t, view, "Patient Medical Information")
	assert.Contains(t, view, "Age (years)")
	assert.NotContains(t, view, "Hemoglobin")
	assert.Contains(t, view, "field 1 of 24")

	for m.Focused() != "hemo" {
		m, _ = m.Update(key(tea.KeyTab))
	}
	view = m.View()
	assert.Contains(t, view, "Hemoglobin")
	assert.NotContains(t, view, "Age (years)")

	m.SetError("hemo: must be a number")
	assert.Contains(t, m.View(), "hemo: must be a number")
}
