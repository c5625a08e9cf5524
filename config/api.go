package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	defaultAPITimeout = 10 * time.Second
	maxAPITimeout     = 2 * time.Minute
)

// APIConfig contains the remote user-management API configuration.
type APIConfig struct {
	// BaseURL is the origin of the API; endpoint paths are appended to it.
	BaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:8080"`

	// Timeout bounds each remote call.
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"10s"`

	// UserAgent is sent on every request.
	UserAgent string `env:"API_USER_AGENT" envDefault:"usermgmt-ui"`
}

// Sanitize applies guardrails to API configuration values.
func (a *APIConfig) Sanitize() {
	a.BaseURL = strings.TrimRight(strings.TrimSpace(a.BaseURL), "/")
	a.UserAgent = strings.TrimSpace(a.UserAgent)

	// Clamp timeout to a usable range
	if a.Timeout <= 0 {
		a.Timeout = defaultAPITimeout
	}
	if a.Timeout > maxAPITimeout {
		a.Timeout = maxAPITimeout
	}
}

// Validate rejects base URLs that are not absolute http(s) URLs.
func (a *APIConfig) Validate() error {
	u, err := url.Parse(a.BaseURL)
	if err != nil {
		return fmt.Errorf("API_BASE_URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("API_BASE_URL: scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("API_BASE_URL: host is required")
	}
	return nil
}
