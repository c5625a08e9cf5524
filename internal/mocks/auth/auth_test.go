package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainauth "github.com/target/usermgmt-ui/internal/domain/auth"
	apperrors "github.com/target/usermgmt-ui/internal/errors"
)

func TestFakeAuthAPI_Defaults(t *testing.T) {
	api := NewFakeAuthAPI()
	ctx := context.Background()

	res, err := api.Login(ctx, domainauth.Credentials{Username: "u", Password: "p"})
	require.NoError(t, err)
	assert.Equal(t, "fake-token", res.AccessToken)
	assert.Equal(t, "Bearer", res.TokenType)

	out, err := api.Register(ctx, domainauth.RegistrationRequest{Username: "u"})
	require.NoError(t, err)
	assert.True(t, out.Success)

	u, err := api.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "fake-user", u.Username)

	assert.Equal(t, 1, api.LoginCalls())
	assert.Equal(t, 1, api.RegisterCalls())
	assert.Equal(t, 1, api.ProfileCalls())
}

func TestFakeAuthAPI_ProfileReturnsCopy(t *testing.T) {
	api := NewFakeAuthAPI()

	u, err := api.Profile(context.Background())
	require.NoError(t, err)
	u.Roles[0].Name = domainauth.RoleAdmin

	assert.Equal(t, domainauth.RoleUser, api.DefaultUser.Roles[0].Name)
}

func TestFakeAuthAPI_FuncOverrides(t *testing.T) {
	api := &FakeAuthAPI{
		ProfileFunc: func(context.Context) (domainauth.User, error) {
			return domainauth.User{}, Unauthorized("profile")
		},
	}

	_, err := api.Profile(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestMemoryTokenStore(t *testing.T) {
	store := NewMemoryTokenStore("seed")
	ctx := context.Background()

	tok, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "seed", tok)

	require.NoError(t, store.Set(ctx, "next"))
	tok, err = store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "next", tok)

	require.NoError(t, store.Remove(ctx))
	tok, err = store.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)

	sets, removes := store.Writes()
	assert.Equal(t, 1, sets)
	assert.Equal(t, 1, removes)
}

func TestMemoryTokenStore_Err(t *testing.T) {
	boom := errors.New("boom")
	store := &MemoryTokenStore{Err: boom}

	_, err := store.Get(context.Background())
	require.ErrorIs(t, err, boom)
	require.ErrorIs(t, store.Set(context.Background(), "x"), boom)
	require.ErrorIs(t, store.Remove(context.Background()), boom)
}
