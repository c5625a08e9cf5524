// Package authapi is the HTTP adapter for the remote user-management API.
package authapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	domainauth "github.com/target/usermgmt-ui/internal/domain/auth"
	apperrors "github.com/target/usermgmt-ui/internal/errors"
	"github.com/target/usermgmt-ui/internal/observability/metrics"
	"github.com/target/usermgmt-ui/internal/observability/statsd"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/oauth2"
)

// Endpoint paths, relative to the configured base URL.
const (
	LoginPath    = "/api/auth/login"
	RegisterPath = "/api/auth/register"
	ProfilePath  = "/api/users/profile"
)

// RequestIDHeader carries a per-request correlation id.
const RequestIDHeader = "X-Request-ID"

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "usermgmt-ui"
	maxResponseBytes = 1 << 20
)

// Config captures the HTTP client settings for the remote API.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	// Tokens supplies the bearer token for the profile request.
	Tokens oauth2.TokenSource
	// Client overrides the HTTP client (tests). Its Jar is replaced when nil.
	Client  *http.Client
	Logger  *slog.Logger
	Metrics statsd.Sink
}

// Client calls the user-management API. It performs no retries.
type Client struct {
	base      *url.URL
	client    *http.Client
	tokens    oauth2.TokenSource
	userAgent string
	logger    *slog.Logger
	metrics   statsd.Sink
}

// NewClient builds an API client. BaseURL must be an absolute http(s) URL.
func NewClient(cfg Config) (*Client, error) {
	base, err := parseBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}
	if hc.Jar == nil {
		jar, jarErr := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if jarErr != nil {
			return nil, fmt.Errorf("create cookie jar: %w", jarErr)
		}
		hc.Jar = jar
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ua := strings.TrimSpace(cfg.UserAgent)
	if ua == "" {
		ua = defaultUserAgent
	}

	return &Client{
		base:      base,
		client:    hc,
		tokens:    cfg.Tokens,
		userAgent: ua,
		logger:    logger,
		metrics:   cfg.Metrics,
	}, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, apperrors.ValidationField("API_BASE_URL", "api base url is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "parse api base url")
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, apperrors.ValidationField("API_BASE_URL", "api base url must be an absolute http(s) url")
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

// Login posts credentials to /api/auth/login.
func (c *Client) Login(ctx context.Context, creds domainauth.Credentials) (domainauth.AuthResult, error) {
	var out domainauth.AuthResult
	err := c.do(ctx, call{op: "login", method: http.MethodPost, path: LoginPath, in: creds, out: &out})
	return out, err
}

// Register posts a registration request to /api/auth/register.
func (c *Client) Register(
	ctx context.Context,
	req domainauth.RegistrationRequest,
) (domainauth.OperationOutcome, error) {
	var out domainauth.OperationOutcome
	err := c.do(ctx, call{op: "register", method: http.MethodPost, path: RegisterPath, in: req, out: &out})
	return out, err
}

// Profile fetches /api/users/profile, presenting the stored session token.
func (c *Client) Profile(ctx context.Context) (domainauth.User, error) {
	var out domainauth.User
	err := c.do(ctx, call{op: "profile", method: http.MethodGet, path: ProfilePath, out: &out, authed: true})
	return out, err
}

type call struct {
	op     string
	method string
	path   string
	in     any
	out    any
	authed bool
}

func (c *Client) endpoint(path string) string {
	u := *c.base
	u.Path = c.base.Path + path
	return u.String()
}

func (c *Client) do(ctx context.Context, cl call) (err error) {
	start := time.Now()
	endpoint := c.endpoint(cl.path)
	requestID := uuid.NewString()

	defer func() {
		metrics.EmitRemoteCall(c.metrics, metrics.RemoteCall{Op: cl.op, Duration: time.Since(start), Err: err})
		c.logger.DebugContext(ctx, "auth api call",
			"op", cl.op,
			"method", cl.method,
			"url", endpoint,
			"request_id", requestID,
			"duration", time.Since(start),
			"error", err,
		)
	}()

	fail := func(status int, body []byte, cause error) error {
		return &apperrors.RemoteCallFailure{
			Op:         cl.op,
			Method:     cl.method,
			URL:        endpoint,
			StatusCode: status,
			Body:       apperrors.TruncateBody(body),
			Message:    serverMessage(body),
			Cause:      cause,
		}
	}

	req, err := c.newRequest(ctx, cl, endpoint, requestID)
	if err != nil {
		return fail(0, nil, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fail(0, nil, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fail(resp.StatusCode, nil, fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fail(resp.StatusCode, body, nil)
	}

	if cl.out == nil {
		return nil
	}
	if decodeErr := json.Unmarshal(body, cl.out); decodeErr != nil {
		return fail(resp.StatusCode, body, fmt.Errorf("decode response: %w", decodeErr))
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, cl call, endpoint, requestID string) (*http.Request, error) {
	var body io.Reader
	if cl.in != nil {
		payload, err := json.Marshal(cl.in)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if cl.in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(RequestIDHeader, requestID)

	if cl.authed && c.tokens != nil {
		tok, tokErr := c.tokens.Token()
		switch {
		case tokErr == nil:
			tok.SetAuthHeader(req)
		case errors.Is(tokErr, domainauth.ErrNoToken):
			// Sent without credentials; the server answers 401.
		default:
			return nil, fmt.Errorf("read session token: %w", tokErr)
		}
	}
	return req, nil
}

// serverMessage extracts a human-readable message from an API error body.
func serverMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
