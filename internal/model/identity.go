// Package model defines the core domain models used throughout the application.
package model

import "time"

// Role identifies which identity variant is active.
type Role string

// Role constants.
const (
	RoleAnonymous Role = "anonymous"
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
)

// Account is the name/email pair returned by the auth service for users and admins.
type Account struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// IsZero reports whether the account carries no email.
func (a Account) IsZero() bool {
	return a.Email == ""
}

// DisplayName returns the name, falling back to the email.
func (a Account) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	return a.Email
}

// Identity is the tagged union of who is logged in.
// Account is empty when Role is RoleAnonymous.
type Identity struct {
	Account Account
	Role    Role
}

// Anonymous returns the logged-out identity.
func Anonymous() Identity {
	return Identity{Role: RoleAnonymous}
}

// UserIdentity returns an authenticated user identity.
func UserIdentity(account Account) Identity {
	return Identity{Role: RoleUser, Account: account}
}

// AdminIdentity returns an authenticated admin identity.
func AdminIdentity(account Account) Identity {
	return Identity{Role: RoleAdmin, Account: account}
}

// IsAnonymous reports whether nobody is logged in.
func (i Identity) IsAnonymous() bool {
	return i.Role == RoleAnonymous || i.Role == ""
}

// IsUser reports whether a regular user is logged in.
func (i Identity) IsUser() bool {
	return i.Role == RoleUser
}

// IsAdmin reports whether an admin is logged in.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

func (i Identity) String() string {
	if i.IsAnonymous() {
		return string(RoleAnonymous)
	}
	return string(i.Role) + "(" + i.Account.DisplayName() + ")"
}

// Token is an opaque credential issued by the auth service.
type Token string

// UserRecord is a registered user as listed by the admin API.
type UserRecord struct {
	CreatedAt time.Time `json:"created_at"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
}

// DashboardStats are the aggregate counters shown on the admin dashboard.
type DashboardStats struct {
	TotalUsers       int `json:"totalUsers"`
	TotalPredictions int `json:"totalPredictions"`
	ActiveSessions   int `json:"activeSessions"`
}
