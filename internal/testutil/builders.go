package testutil

import (
	domainauth "github.com/target/usermgmt-ui/internal/domain/auth"
)

// UserBuilder provides a fluent interface for building profile fixtures.
type UserBuilder struct {
	user domainauth.User
}

// NewUser creates a builder for a server-assigned user with ROLE_USER.
func NewUser() *UserBuilder {
	return &UserBuilder{
		user: domainauth.User{
			ID:       Int64Ptr(1),
			Username: "alice",
			Email:    "a@x.com",
			Name:     "Alice",
			Roles:    []domainauth.Role{{ID: 1, Name: domainauth.RoleUser}},
		},
	}
}

// WithID sets the server-assigned id.
func (b *UserBuilder) WithID(id int64) *UserBuilder {
	b.user.ID = Int64Ptr(id)
	return b
}

// WithoutID clears the id, as for a user not yet registered.
func (b *UserBuilder) WithoutID() *UserBuilder {
	b.user.ID = nil
	return b
}

// WithUsername sets the username.
func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.user.Username = username
	return b
}

// WithEmail sets the email.
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.user.Email = email
	return b
}

// WithName sets the display name.
func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.user.Name = name
	return b
}

// WithRoles replaces the roles. Passing no roles leaves Roles nil.
func (b *UserBuilder) WithRoles(roles ...domainauth.Role) *UserBuilder {
	if len(roles) == 0 {
		b.user.Roles = nil
		return b
	}
	b.user.Roles = append([]domainauth.Role(nil), roles...)
	return b
}

// AsAdmin replaces the roles with ROLE_ADMIN.
func (b *UserBuilder) AsAdmin() *UserBuilder {
	return b.WithRoles(domainauth.Role{ID: 2, Name: domainauth.RoleAdmin})
}

// Build returns a copy of the built user.
func (b *UserBuilder) Build() domainauth.User {
	return b.user.Clone()
}
