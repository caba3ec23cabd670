package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Veraticus/ckd-predict/internal/model"
)

// LoginRequest is the body of the user and admin login endpoints.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest is the body of the user signup endpoint.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminSignupRequest is the body of the admin signup endpoint.
type AdminSignupRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	AdminCode string `json:"adminCode"`
}

// accountPayload is an account as returned by the service.
type accountPayload struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// authResponse covers the user ({token, user}) and admin ({token, admin}) replies.
type authResponse struct {
	User    *accountPayload `json:"user"`
	Admin   *accountPayload `json:"admin"`
	Message string          `json:"message"`
	Token   string          `json:"token"`
}

func (c *Client) authenticate(ctx context.Context, path string, payload any, admin bool) (model.Account, model.Token, error) {
	body, err := withJSONBody(payload)
	if err != nil {
		return model.Account{}, "", err
	}

	var resp authResponse
	if err := c.do(ctx, http.MethodPost, path, &resp, body); err != nil {
		return model.Account{}, "", err
	}

	account := resp.User
	if admin {
		account = resp.Admin
	}
	if account == nil || account.Email == "" {
		return model.Account{}, "", fmt.Errorf("%s: %w: missing account", path, ErrMalformedResponse)
	}

	return model.Account{Name: account.Name, Email: account.Email}, model.Token(resp.Token), nil
}

// Login authenticates a user.
func (c *Client) Login(ctx context.Context, email, password string) (model.Account, model.Token, error) {
	return c.authenticate(ctx, "/api/login", LoginRequest{Email: email, Password: password}, false)
}

// Signup registers a user.
func (c *Client) Signup(ctx context.Context, name, email, password string) (model.Account, model.Token, error) {
	return c.authenticate(ctx, "/api/signup", SignupRequest{Name: name, Email: email, Password: password}, false)
}

// AdminLogin authenticates an admin.
func (c *Client) AdminLogin(ctx context.Context, email, password string) (model.Account, model.Token, error) {
	return c.authenticate(ctx, "/api/admin/login", LoginRequest{Email: email, Password: password}, true)
}

// AdminSignup registers an admin; adminCode authorizes the registration.
func (c *Client) AdminSignup(ctx context.Context, name, email, password, adminCode string) (model.Account, model.Token, error) {
	req := AdminSignupRequest{Name: name, Email: email, Password: password, AdminCode: adminCode}
	return c.authenticate(ctx, "/api/admin/signup", req, true)
}

// Logout invalidates token on the service. An empty token is a no-op.
func (c *Client) Logout(ctx context.Context, token model.Token) error {
	if token == "" {
		return nil
	}
	return c.do(ctx, http.MethodPost, "/api/logout", nil, withToken(token))
}

// Verify returns the account a token belongs to.
func (c *Client) Verify(ctx context.Context, token model.Token) (model.Account, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodGet, "/api/verify", &resp, withToken(token)); err != nil {
		return model.Account{}, err
	}
	if resp.User == nil || resp.User.Email == "" {
		return model.Account{}, fmt.Errorf("verify: %w: missing user", ErrMalformedResponse)
	}
	return model.Account{Name: resp.User.Name, Email: resp.User.Email}, nil
}

// HealthStatus is the body of the health endpoint.
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Healthy reports whether the service and its database are up.
func (h HealthStatus) Healthy() bool {
	return h.Status == "healthy"
}

// Health checks the service. An unhealthy service answers 500 with a status
// body; its message is returned alongside the error.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	var status HealthStatus
	if err := c.do(ctx, http.MethodGet, "/api/health", &status); err != nil {
		var svcErr *ServiceError
		if errors.As(err, &svcErr) {
			return HealthStatus{Status: "unhealthy", Message: svcErr.Message}, err
		}
		return HealthStatus{}, err
	}
	return status, nil
}
