// Package forms validates user input before it reaches the auth or prediction services.
// Validation failures are reported inline by the screens and never change session state.
package forms

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/ckd-predict/internal/model"
)

// MinPasswordLength matches the auth service's own check.
const MinPasswordLength = 6

// Messages shown to the user.
const (
	MsgPasswordMismatch = "Passwords do not match"
	MsgPasswordLength   = "Password must be at least 6 characters"
	MsgAllFields        = "Please fill in all fields"
	MsgLoginRequired    = "Email and password are required"
	MsgAdminCode        = "Admin code is required"
)

// ValidationError is a single field failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors collects every failure of a form submission.
type Errors []*ValidationError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// ErrOrNil returns nil for an empty collection.
func (e Errors) ErrOrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Credentials is the normalized content of an auth form.
type Credentials struct {
	Name      string
	Email     string
	Password  string
	AdminCode string
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateLogin checks a user or admin login form.
func ValidateLogin(email, password string) (Credentials, error) {
	creds := Credentials{Email: normalizeEmail(email), Password: password}
	if creds.Email == "" || creds.Password == "" {
		return creds, &ValidationError{Message: MsgLoginRequired}
	}
	return creds, nil
}

// ValidateSignup checks a user signup form. Checks run in the same order as the web
// client: password confirmation, password length, then required fields.
func ValidateSignup(name, email, password, confirm string) (Credentials, error) {
	creds := Credentials{
		Name:     strings.TrimSpace(name),
		Email:    normalizeEmail(email),
		Password: password,
	}

	if password != confirm {
		return creds, &ValidationError{Field: "confirmPassword", Message: MsgPasswordMismatch}
	}
	if len(password) < MinPasswordLength {
		return creds, &ValidationError{Field: "password", Message: MsgPasswordLength}
	}
	if creds.Name == "" || creds.Email == "" {
		return creds, &ValidationError{Message: MsgAllFields}
	}
	return creds, nil
}

// ValidateAdminSignup checks an admin signup form.
func ValidateAdminSignup(name, email, password, confirm, adminCode string) (Credentials, error) {
	creds, err := ValidateSignup(name, email, password, confirm)
	if err != nil {
		return creds, err
	}

	creds.AdminCode = strings.TrimSpace(adminCode)
	if creds.AdminCode == "" {
		return creds, &ValidationError{Field: "adminCode", Message: MsgAdminCode}
	}
	return creds, nil
}

// ParsePatient builds a record from raw field values keyed by column name.
// Numeric fields are required; choice fields fall back to their defaults when blank.
func ParsePatient(values map[string]string) (model.PatientRecord, error) {
	record := model.NewPatientRecord()
	var errs Errors

	for _, field := range model.PatientFields {
		raw := strings.TrimSpace(values[field.Name])

		switch field.Kind {
		case model.FieldNumeric:
			if raw == "" {
				errs = append(errs, &ValidationError{Field: field.Name, Message: "is required"})
				continue
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				errs = append(errs, &ValidationError{Field: field.Name, Message: fmt.Sprintf("%q is not a number", raw)})
				continue
			}
			record.SetNumeric(field.Name, v)

		case model.FieldChoice:
			if raw == "" {
				continue
			}
			choice, ok := matchOption(field.Options, raw)
			if !ok {
				errs = append(errs, &ValidationError{
					Field:   field.Name,
					Message: fmt.Sprintf("%q must be one of %s", raw, strings.Join(field.Options, ", ")),
				})
				continue
			}
			record.SetChoice(field.Name, choice)
		}
	}

	return record, errs.ErrOrNil()
}

// matchOption finds raw among options, ignoring case and the spaces of "not present".
func matchOption(options []string, raw string) (string, bool) {
	needle := strings.ReplaceAll(strings.ToLower(raw), " ", "")
	for _, opt := range options {
		if opt == needle {
			return opt, true
		}
	}
	return "", false
}
