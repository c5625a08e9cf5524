// Package ui holds the display-side consumers of the session client.
package ui

import (
	"sync"

	domainauth "github.com/target/usermgmt-ui/internal/domain/auth"
)

// UserSource broadcasts the current user. *service.SessionClient satisfies it.
type UserSource interface {
	Subscribe(fn func(*domainauth.User)) (unsubscribe func())
}

// Dashboard mirrors the session's current user for as long as it is open.
type Dashboard struct {
	mu          sync.RWMutex
	user        *domainauth.User
	unsubscribe func()
}

// NewDashboard subscribes to src. The latest user is available immediately.
func NewDashboard(src UserSource) *Dashboard {
	d := &Dashboard{}
	d.unsubscribe = src.Subscribe(d.update)
	return d
}

func (d *Dashboard) update(u *domainauth.User) {
	var cp *domainauth.User
	if u != nil {
		c := u.Clone()
		cp = &c
	}
	d.mu.Lock()
	d.user = cp
	d.mu.Unlock()
}

// User returns a copy of the displayed user, or nil when signed out.
func (d *Dashboard) User() *domainauth.User {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.user == nil {
		return nil
	}
	c := d.user.Clone()
	return &c
}

// IsAdmin reports whether the displayed user holds ROLE_ADMIN.
func (d *Dashboard) IsAdmin() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return domainauth.IsAdmin(d.user)
}

// Close stops following the session. Safe to call more than once.
func (d *Dashboard) Close() {
	if d.unsubscribe != nil {
		d.unsubscribe()
	}
}
