package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/target/usermgmt-ui/config"
	"github.com/target/usermgmt-ui/internal/adapters/authapi"
	redisadapter "github.com/target/usermgmt-ui/internal/adapters/redis"
	"github.com/target/usermgmt-ui/internal/adapters/tokenstore"
	"github.com/target/usermgmt-ui/internal/observability/statsd"
	"github.com/target/usermgmt-ui/internal/ports"
	"github.com/target/usermgmt-ui/internal/service"
)

// Session bundles a ready SessionClient with the resources it owns.
type Session struct {
	Client  *service.SessionClient
	Tokens  ports.TokenStore
	Metrics *statsd.Client

	closers []func() error
}

// Close waits for background hydration and releases owned connections.
func (s *Session) Close() error {
	if s == nil {
		return nil
	}
	if s.Client != nil {
		s.Client.Wait()
	}
	var errs []error
	for _, closeFn := range s.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewSession wires the token store, metrics sink, API client, and session client from config.
// Construction triggers startup hydration when a token is already stored.
func NewSession(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (*Session, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	sess := &Session{}
	tokens, closeTokens, err := BuildTokenStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	sess.Tokens = tokens
	sess.closers = append(sess.closers, closeTokens)

	sess.Metrics = buildMetrics(logger, cfg.Observability.Metrics)
	sess.closers = append(sess.closers, sess.Metrics.Close)

	var sink statsd.Sink
	if sess.Metrics.Enabled() {
		sink = sess.Metrics
	}

	api, err := authapi.NewClient(authapi.Config{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		UserAgent: cfg.API.UserAgent,
		Tokens:    tokenstore.TokenSource(tokens),
		Logger:    logger,
		Metrics:   sink,
	})
	if err != nil {
		return nil, errors.Join(fmt.Errorf("create api client: %w", err), sess.Close())
	}

	client, err := service.NewSessionClient(ctx, service.SessionClientOptions{
		API:     api,
		Tokens:  tokens,
		Logger:  logger,
		Metrics: sink,
	})
	if err != nil {
		return nil, errors.Join(fmt.Errorf("create session client: %w", err), sess.Close())
	}
	sess.Client = client
	return sess, nil
}

// BuildTokenStore returns the configured token store and a function releasing its resources.
//
//nolint:ireturn // the store implementation is chosen at runtime.
func BuildTokenStore(
	ctx context.Context,
	cfg *config.AppConfig,
	logger *slog.Logger,
) (ports.TokenStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.TokenStore.Kind {
	case config.TokenStoreMemory:
		return tokenstore.NewMemoryStore(), noop, nil
	case config.TokenStoreFile:
		store, err := tokenstore.NewFileStore(cfg.TokenStore.File)
		if err != nil {
			return nil, noop, fmt.Errorf("create file token store: %w", err)
		}
		return store, noop, nil
	case config.TokenStoreRedis:
		client, err := ConnectRedis(ctx, RedisOptions{Config: cfg.Redis, Logger: logger})
		if err != nil {
			return nil, noop, fmt.Errorf("connect redis: %w", err)
		}
		store := redisadapter.NewTokenStoreWithKey(client, cfg.TokenStore.RedisPrefix, cfg.TokenStore.Key)
		return store, client.Close, nil
	default:
		return nil, noop, fmt.Errorf("unsupported token store %q", cfg.TokenStore.Kind)
	}
}

// buildMetrics returns a statsd client; failures degrade to a disabled client.
func buildMetrics(logger *slog.Logger, cfg config.ObservabilityMetricsConfig) *statsd.Client {
	if !cfg.IsEnabled() {
		return nil
	}
	client, err := statsd.NewClient(statsd.Config{
		Enabled: true,
		Address: cfg.StatsdAddress,
		Prefix:  cfg.Prefix,
		Logger:  logger,
	})
	if err != nil {
		logger.Error("failed to initialise statsd client", "error", err)
		return nil
	}
	return client
}
