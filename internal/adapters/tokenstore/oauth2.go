package tokenstore

import (
	"context"
	"time"

	domainauth "github.com/target/usermgmt-ui/internal/domain/auth"
	"github.com/target/usermgmt-ui/internal/ports"
	"golang.org/x/oauth2"
)

const defaultReadTimeout = 2 * time.Second

// storeSource exposes a ports.TokenStore as an oauth2.TokenSource.
// Every Token call reads the store, so a login or logout is visible to the next request.
type storeSource struct {
	store   ports.TokenStore
	timeout time.Duration
}

// TokenSource adapts store to oauth2.TokenSource. Tokens are returned as
// Bearer tokens with no expiry; refresh is not supported.
//
//nolint:ireturn // the API client consumes the interface.
func TokenSource(store ports.TokenStore) oauth2.TokenSource {
	return &storeSource{store: store, timeout: defaultReadTimeout}
}

func (s *storeSource) Token() (*oauth2.Token, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	tok, err := s.store.Get(ctx)
	if err != nil {
		return nil, err
	}
	if tok == "" {
		return nil, domainauth.ErrNoToken
	}
	return &oauth2.Token{AccessToken: tok, TokenType: "Bearer"}, nil
}
