package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"net/http"
	"sync"

	domainauth "github.com/target/usermgmt-ui/internal/domain/auth"
	apperrors "github.com/target/usermgmt-ui/internal/errors"
	"github.com/target/usermgmt-ui/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.AuthAPI    = (*FakeAuthAPI)(nil)
	_ ports.TokenStore = (*MemoryTokenStore)(nil)
)

// FakeAuthAPI simulates the remote user-management API with deterministic defaults.
// Func fields override the default behavior per call.
type FakeAuthAPI struct {
	LoginFunc    func(ctx context.Context, creds domainauth.Credentials) (domainauth.AuthResult, error)
	RegisterFunc func(ctx context.Context, req domainauth.RegistrationRequest) (domainauth.OperationOutcome, error)
	ProfileFunc  func(ctx context.Context) (domainauth.User, error)

	// DefaultToken is issued by Login when LoginFunc is nil.
	DefaultToken string
	// DefaultUser is returned by Profile when ProfileFunc is nil.
	DefaultUser domainauth.User

	mu            sync.Mutex
	loginCalls    int
	registerCalls int
	profileCalls  int
}

// NewFakeAuthAPI creates a FakeAuthAPI with sensible defaults.
func NewFakeAuthAPI() *FakeAuthAPI {
	id := int64(1)
	return &FakeAuthAPI{
		DefaultToken: "fake-token",
		DefaultUser: domainauth.User{
			ID:       &id,
			Username: "fake-user",
			Email:    "fake.user@example.com",
			Name:     "Fake User",
			Roles:    []domainauth.Role{{ID: 1, Name: domainauth.RoleUser}},
		},
	}
}

func (f *FakeAuthAPI) Login(ctx context.Context, creds domainauth.Credentials) (domainauth.AuthResult, error) {
	f.mu.Lock()
	f.loginCalls++
	f.mu.Unlock()

	if f.LoginFunc != nil {
		return f.LoginFunc(ctx, creds)
	}
	return domainauth.AuthResult{AccessToken: f.DefaultToken, TokenType: "Bearer"}, nil
}

func (f *FakeAuthAPI) Register(
	ctx context.Context,
	req domainauth.RegistrationRequest,
) (domainauth.OperationOutcome, error) {
	f.mu.Lock()
	f.registerCalls++
	f.mu.Unlock()

	if f.RegisterFunc != nil {
		return f.RegisterFunc(ctx, req)
	}
	return domainauth.OperationOutcome{Success: true, Message: "User registered successfully"}, nil
}

func (f *FakeAuthAPI) Profile(ctx context.Context) (domainauth.User, error) {
	f.mu.Lock()
	f.profileCalls++
	f.mu.Unlock()

	if f.ProfileFunc != nil {
		return f.ProfileFunc(ctx)
	}
	return f.DefaultUser.Clone(), nil
}

// LoginCalls returns how many times Login was invoked.
func (f *FakeAuthAPI) LoginCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loginCalls
}

// RegisterCalls returns how many times Register was invoked.
func (f *FakeAuthAPI) RegisterCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.registerCalls
}

// ProfileCalls returns how many times Profile was invoked.
func (f *FakeAuthAPI) ProfileCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.profileCalls
}

// Unauthorized builds the failure a real API client returns for a 401 response.
func Unauthorized(op string) error {
	return &apperrors.RemoteCallFailure{
		Op:         op,
		Method:     http.MethodGet,
		URL:        "http://fake/api/users/profile",
		StatusCode: http.StatusUnauthorized,
		Body:       `{"error":"Unauthorized"}`,
	}
}

// MemoryTokenStore is an in-memory token store for unit tests.
// Err, when set, is returned from every operation.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
	Err   error

	sets    int
	removes int
}

// NewMemoryTokenStore creates a token store pre-seeded with token ("" for empty).
func NewMemoryTokenStore(token string) *MemoryTokenStore {
	return &MemoryTokenStore{token: token}
}

func (m *MemoryTokenStore) Get(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	return m.token, nil
}

func (m *MemoryTokenStore) Set(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if token == "" {
		return domainauth.ErrEmptyToken
	}
	m.token = token
	m.sets++
	return nil
}

func (m *MemoryTokenStore) Remove(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.token = ""
	m.removes++
	return nil
}

// Writes returns how many Set and Remove calls succeeded.
func (m *MemoryTokenStore) Writes() (sets, removes int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sets, m.removes
}
