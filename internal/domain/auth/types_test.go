package auth

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAdmin(t *testing.T) {
	tests := []struct {
		name string
		user *User
		want bool
	}{
		{name: "nil user", user: nil, want: false},
		{name: "nil roles", user: &User{Username: "alice"}, want: false},
		{name: "empty roles", user: &User{Username: "alice", Roles: []Role{}}, want: false},
		{name: "user role only", user: &User{Roles: []Role{{ID: 1, Name: RoleUser}}}, want: false},
		{name: "admin role", user: &User{Roles: []Role{{ID: 2, Name: RoleAdmin}}}, want: true},
		{
			name: "admin among others",
			user: &User{Roles: []Role{{ID: 1, Name: RoleUser}, {ID: 2, Name: RoleAdmin}}},
			want: true,
		},
		{name: "case sensitive", user: &User{Roles: []Role{{ID: 2, Name: "role_admin"}}}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAdmin(tt.user))
		})
	}
}

func TestUser_CloneIsDeep(t *testing.T) {
	id := int64(7)
	orig := User{ID: &id, Username: "alice", Roles: []Role{{ID: 1, Name: RoleUser}}}

	cp := orig.Clone()
	*cp.ID = 99
	cp.Roles[0].Name = RoleAdmin

	assert.Equal(t, int64(7), *orig.ID)
	assert.Equal(t, RoleUser, orig.Roles[0].Name)
}

func TestUser_CloneKeepsNilFields(t *testing.T) {
	cp := User{Username: "bob"}.Clone()
	assert.Nil(t, cp.ID)
	assert.Nil(t, cp.Roles)
}

func TestUser_DecodeProfile(t *testing.T) {
	raw := `{"id":1,"username":"alice","email":"a@x.com","name":"Alice","roles":[{"id":2,"name":"ROLE_ADMIN"}]}`

	var u User
	require.NoError(t, json.Unmarshal([]byte(raw), &u))
	require.NotNil(t, u.ID)
	assert.Equal(t, int64(1), *u.ID)
	assert.Equal(t, "alice", u.Username)
	assert.True(t, IsAdmin(&u))
}

func TestUser_EncodeOmitsUnassignedID(t *testing.T) {
	b, err := json.Marshal(User{Username: "bob", Email: "b@x.com", Name: "Bob"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"username":"bob","email":"b@x.com","name":"Bob"}`, string(b))
}

func TestAuthResult_WireNames(t *testing.T) {
	var res AuthResult
	require.NoError(t, json.Unmarshal([]byte(`{"accessToken":"tok123","tokenType":"Bearer"}`), &res))
	assert.Equal(t, AuthResult{AccessToken: "tok123", TokenType: "Bearer"}, res)
}
