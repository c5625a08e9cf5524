package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/target/usermgmt-ui/internal/domain/auth"
)

// AuthAPI is the remote user-management API.
// Implementations return *errors.RemoteCallFailure on transport or non-2xx failures.
type AuthAPI interface {
	// Login exchanges credentials for a session token.
	Login(ctx context.Context, creds domainauth.Credentials) (domainauth.AuthResult, error)

	// Register creates an account. The outcome is returned as reported by the server.
	Register(ctx context.Context, req domainauth.RegistrationRequest) (domainauth.OperationOutcome, error)

	// Profile fetches the user the current session token belongs to.
	Profile(ctx context.Context) (domainauth.User, error)
}

// TokenStore persists at most one session token under a fixed key.
type TokenStore interface {
	// Get returns the stored token, or "" when none is stored.
	Get(ctx context.Context) (string, error)
	// Set overwrites any stored token.
	Set(ctx context.Context, token string) error
	// Remove deletes the stored token. Removing an absent token is not an error.
	Remove(ctx context.Context) error
}
