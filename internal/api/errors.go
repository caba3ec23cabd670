package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Veraticus/ckd-predict/internal/common"
)

// ErrMalformedResponse is returned when a 2xx body lacks required fields.
var ErrMalformedResponse = errors.New("malformed service response")

// ServiceError is a non-2xx reply from the service.
type ServiceError struct {
	Message string
	Status  int
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("service error (status %d): %s", e.Status, e.Message)
}

// Unwrap exposes common.ErrUnauthorized for 401 and 403 replies.
func (e *ServiceError) Unwrap() error {
	if e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden {
		return common.ErrUnauthorized
	}
	return nil
}

// newServiceError builds an error from the service's {"message": ...} body,
// falling back to the raw body or the status text.
func newServiceError(status int, body []byte) *ServiceError {
	var payload struct {
		Message string `json:"message"`
	}
	msg := ""
	if err := json.Unmarshal(body, &payload); err == nil {
		msg = payload.Message
	}
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}
	if msg == "" || strings.HasPrefix(msg, "<") {
		msg = http.StatusText(status)
	}
	return &ServiceError{Status: status, Message: msg}
}

// Message returns the text a screen should show for err.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var svcErr *ServiceError
	if errors.As(err, &svcErr) && svcErr.Message != "" {
		return svcErr.Message
	}
	var userErr *common.UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}
	if fallback != "" {
		return fallback
	}
	return err.Error()
}
