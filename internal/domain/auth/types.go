package auth

// Package auth contains domain-level types for users, credentials, and sessions.
// It is pure and free of framework/adapter concerns.

import "errors"

// ErrNoToken reports that no session token is stored.
var ErrNoToken = errors.New("no session token stored")

// ErrEmptyToken is returned by token stores asked to store an empty token.
var ErrEmptyToken = errors.New("token cannot be empty")

// Well-known role names issued by the user-management API.
const (
	RoleAdmin = "ROLE_ADMIN"
	RoleUser  = "ROLE_USER"
)

// Role is an authorization role attached to a user by the server.
type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// User is the profile returned by the user-management API.
// ID is nil until the server has assigned one.
type User struct {
	ID       *int64 `json:"id,omitempty"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Roles    []Role `json:"roles,omitempty"`
}

// Clone returns a deep copy so cached values are never aliased by callers.
func (u User) Clone() User {
	out := u
	if u.ID != nil {
		id := *u.ID
		out.ID = &id
	}
	if u.Roles != nil {
		out.Roles = make([]Role, len(u.Roles))
		copy(out.Roles, u.Roles)
	}
	return out
}

// HasRole reports whether the user carries a role with exactly the given name.
func (u User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

// IsAdmin reports whether u is present and holds ROLE_ADMIN.
func IsAdmin(u *User) bool {
	return u != nil && u.HasRole(RoleAdmin)
}

// Credentials is the login input. It is never persisted.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegistrationRequest is the write-only payload for creating an account.
type RegistrationRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// AuthResult is the login response. Only AccessToken is retained.
type AuthResult struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
}

// OperationOutcome is the server's verdict on a registration attempt.
type OperationOutcome struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
