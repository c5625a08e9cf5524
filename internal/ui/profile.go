package ui

import (
	"context"
	"sync"

	domainauth "github.com/target/usermgmt-ui/internal/domain/auth"
)

// ProfileFetcher fetches a fresh profile. *service.SessionClient satisfies it.
type ProfileFetcher interface {
	UserProfile(ctx context.Context) (domainauth.User, error)
}

// Profile shows the server's current view of the signed-in user.
// It fetches on demand and never touches the session's cached user.
type Profile struct {
	fetcher ProfileFetcher

	mu      sync.RWMutex
	user    *domainauth.User
	loading bool
}

// NewProfile creates a profile view in the loading state; call Load to populate it.
func NewProfile(fetcher ProfileFetcher) *Profile {
	return &Profile{fetcher: fetcher, loading: true}
}

// Load fetches the profile. On failure the previously shown user is kept
// and only the loading flag is cleared; the error is returned for display.
func (p *Profile) Load(ctx context.Context) error {
	p.mu.Lock()
	p.loading = true
	p.mu.Unlock()

	u, err := p.fetcher.UserProfile(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	if err != nil {
		return err
	}
	p.user = &u
	return nil
}

// Refresh reloads the profile.
func (p *Profile) Refresh(ctx context.Context) error {
	return p.Load(ctx)
}

// Loading reports whether a fetch is in flight or none has completed yet.
func (p *Profile) Loading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loading
}

// User returns a copy of the loaded user, or nil.
func (p *Profile) User() *domainauth.User {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.user == nil {
		return nil
	}
	c := p.user.Clone()
	return &c
}

// IsAdmin reports whether the loaded user holds ROLE_ADMIN.
func (p *Profile) IsAdmin() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return domainauth.IsAdmin(p.user)
}
