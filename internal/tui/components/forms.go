package components

import (
	"github.com/Veraticus/ckd-predict/internal/model"
	"github.com/Veraticus/ckd-predict/internal/tui/themes"
)

// Form identifiers.
const (
	FormLogin       = "login"
	FormSignup      = "signup"
	FormAdminLogin  = "admin-login"
	FormAdminSignup = "admin-signup"
	FormPatient     = "patient"
	FormUpload      = "upload"
)

// Field keys shared by the auth forms.
const (
	FieldName      = "name"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldConfirm   = "confirm"
	FieldAdminCode = "adminCode"
	FieldPath      = "path"
)

var (
	nameField     = FieldSpec{Key: FieldName, Label: "Full Name", Placeholder: "Enter your full name"}
	emailField    = FieldSpec{Key: FieldEmail, Label: "Email", Placeholder: "Enter your email"}
	passwordField = FieldSpec{Key: FieldPassword, Label: "Password", Placeholder: "Enter your password", Password: true}
	confirmField  = FieldSpec{Key: FieldConfirm, Label: "Confirm Password", Placeholder: "Confirm your password", Password: true}
)

// NewLoginForm builds the user login form.
func NewLoginForm(theme themes.Theme) FormModel {
	return NewFormModel(FormLogin, "Welcome Back", []FieldSpec{emailField, passwordField}, theme, 0)
}

// NewSignupForm builds the user signup form.
func NewSignupForm(theme themes.Theme) FormModel {
	return NewFormModel(FormSignup, "Create Account",
		[]FieldSpec{nameField, emailField, passwordField, confirmField}, theme, 0)
}

// NewAdminLoginForm builds the admin login form.
func NewAdminLoginForm(theme themes.Theme) FormModel {
	return NewFormModel(FormAdminLogin, "Admin Login", []FieldSpec{emailField, passwordField}, theme, 0)
}

// NewAdminSignupForm builds the admin registration form.
func NewAdminSignupForm(theme themes.Theme) FormModel {
	code := FieldSpec{Key: FieldAdminCode, Label: "Admin Code", Placeholder: "Enter admin registration code", Password: true}
	return NewFormModel(FormAdminSignup, "Admin Registration",
		[]FieldSpec{nameField, emailField, passwordField, confirmField, code}, theme, 0)
}

// NewPatientForm builds the 24-parameter prediction form.
func NewPatientForm(theme themes.Theme, visible int) FormModel {
	specs := make([]FieldSpec, len(model.PatientFields))
	for i, f := range model.PatientFields {
		specs[i] = FieldSpec{
			Key:         f.Name,
			Label:       f.Label,
			Section:     f.Section,
			Placeholder: f.Placeholder,
			Default:     f.Default,
			Options:     f.Options,
		}
	}
	return NewFormModel(FormPatient, "Patient Medical Information", specs, theme, visible)
}

// NewUploadForm builds the CSV path form.
func NewUploadForm(theme themes.Theme) FormModel {
	path := FieldSpec{Key: FieldPath, Label: "CSV file", Placeholder: "path/to/patients.csv"}
	return NewFormModel(FormUpload, "Batch Prediction via CSV Upload", []FieldSpec{path}, theme, 0)
}
