package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/target/usermgmt-ui/internal/core"
	domainauth "github.com/target/usermgmt-ui/internal/domain/auth"
	"github.com/target/usermgmt-ui/internal/observability/metrics"
	"github.com/target/usermgmt-ui/internal/observability/statsd"
	"github.com/target/usermgmt-ui/internal/ports"
	"golang.org/x/sync/errgroup"
)

// Hydration triggers, used for logs and metrics.
const (
	hydrateOnStartup = "startup"
	hydrateOnLogin   = "login"
)

// SessionClientOptions groups dependencies for SessionClient.
type SessionClientOptions struct {
	API     ports.AuthAPI
	Tokens  ports.TokenStore
	Logger  *slog.Logger
	Metrics statsd.Sink
}

// SessionClient is the single source of truth for whether a session token exists and
// who the current user is. It mediates every call to the remote API and the token store.
//
// The current user is held in a latest-value broadcast cell. Background hydration
// (on startup and after login) replaces it whole; Logout resets it to absent.
// Only the most recently started hydration may write the cell, and none started
// before a Logout may.
type SessionClient struct {
	api     ports.AuthAPI
	tokens  ports.TokenStore
	logger  *slog.Logger
	metrics statsd.Sink

	current *core.Cell[*domainauth.User]
	// gen advances on every Logout and hydration start.
	gen atomic.Uint64

	// bgMu guards bg so Wait can run while new hydrations are spawned.
	bgMu sync.Mutex
	bg   *errgroup.Group
}

// NewSessionClient constructs a SessionClient and starts best-effort hydration:
// if the token store already holds a token, the profile is fetched in the background.
// Hydration failures are logged and leave the current user absent.
func NewSessionClient(ctx context.Context, opts SessionClientOptions) (*SessionClient, error) {
	if opts.API == nil {
		return nil, errors.New("auth api is required")
	}
	if opts.Tokens == nil {
		return nil, errors.New("token store is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &SessionClient{
		api:     opts.API,
		tokens:  opts.Tokens,
		logger:  logger.With("component", "session_client"),
		metrics: opts.Metrics,
		current: core.NewCell[*domainauth.User](nil),
		bg:      &errgroup.Group{},
	}
	s.initialize(ctx)
	return s, nil
}

func (s *SessionClient) initialize(ctx context.Context) {
	tok, err := s.tokens.Get(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "read stored token", "error", err)
		return
	}
	if tok == "" {
		return
	}
	s.spawnHydration(ctx, hydrateOnStartup)
}

// Login exchanges credentials for a token, stores it, and then refreshes the current
// user in the background. The call returns as soon as the token is stored.
// On failure neither the token store nor the current user is touched.
func (s *SessionClient) Login(ctx context.Context, creds domainauth.Credentials) (domainauth.AuthResult, error) {
	res, err := s.api.Login(ctx, creds)
	if err != nil {
		return domainauth.AuthResult{}, err
	}

	if err := s.tokens.Set(ctx, res.AccessToken); err != nil {
		return domainauth.AuthResult{}, err
	}

	s.spawnHydration(ctx, hydrateOnLogin)
	return res, nil
}

// Register creates an account. The outcome is returned as the server reported it;
// no local state changes either way.
func (s *SessionClient) Register(
	ctx context.Context,
	req domainauth.RegistrationRequest,
) (domainauth.OperationOutcome, error) {
	return s.api.Register(ctx, req)
}

// Logout removes the stored token and resets the current user to absent.
// The current user is reset even when the token store fails; that failure is returned.
func (s *SessionClient) Logout(ctx context.Context) error {
	err := s.tokens.Remove(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "remove stored token", "error", err)
	}
	s.gen.Add(1)
	s.current.Set(nil)
	return err
}

// IsAuthenticated reports whether a non-empty token is stored.
// It does not consult the server; a present token may be expired.
func (s *SessionClient) IsAuthenticated(ctx context.Context) bool {
	_, ok := s.Token(ctx)
	return ok
}

// Token returns the stored token. ok is false when none is stored
// or the store cannot be read.
func (s *SessionClient) Token(ctx context.Context) (token string, ok bool) {
	tok, err := s.tokens.Get(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "read stored token", "error", err)
		return "", false
	}
	return tok, tok != ""
}

// CurrentUser returns a snapshot of the cached user.
func (s *SessionClient) CurrentUser() (domainauth.User, bool) {
	u := s.current.Get()
	if u == nil {
		return domainauth.User{}, false
	}
	return u.Clone(), true
}

// UserProfile fetches the profile from the server. The cached current user is not updated.
func (s *SessionClient) UserProfile(ctx context.Context) (domainauth.User, error) {
	return s.api.Profile(ctx)
}

// Subscribe registers fn for current-user changes and calls it once with the latest
// value (nil when absent). Each call receives its own copy. The returned function
// unsubscribes.
func (s *SessionClient) Subscribe(fn func(*domainauth.User)) (unsubscribe func()) {
	return s.current.Subscribe(func(u *domainauth.User) {
		if u == nil {
			fn(nil)
			return
		}
		cp := u.Clone()
		fn(&cp)
	})
}

// Wait blocks until every background hydration started so far has finished.
func (s *SessionClient) Wait() {
	s.bgMu.Lock()
	g := s.bg
	s.bg = &errgroup.Group{}
	s.bgMu.Unlock()

	_ = g.Wait()
}

// spawnHydration fetches the profile in the background and caches it.
// The task outlives ctx's cancellation; its failure is logged and counted, never returned.
func (s *SessionClient) spawnHydration(ctx context.Context, trigger string) {
	bgCtx := context.WithoutCancel(ctx)
	gen := s.gen.Add(1)

	s.bgMu.Lock()
	defer s.bgMu.Unlock()
	s.bg.Go(func() error {
		s.hydrate(bgCtx, trigger, gen)
		return nil
	})
}

func (s *SessionClient) hydrate(ctx context.Context, trigger string, gen uint64) {
	u, err := s.api.Profile(ctx)
	metrics.EmitHydration(s.metrics, trigger, err)
	if err != nil {
		s.logger.WarnContext(ctx, "profile hydration failed", "trigger", trigger, "error", err)
		return
	}

	cached := u.Clone()
	if !s.current.SetIf(&cached, func() bool { return s.gen.Load() == gen }) {
		s.logger.DebugContext(ctx, "discarding stale profile", "trigger", trigger, "username", cached.Username)
		return
	}
	s.logger.DebugContext(ctx, "profile hydrated", "trigger", trigger, "username", cached.Username)
}
