package config

import (
	"fmt"
	"log/slog"
	"strings"
)

// LogFormat selects the slog handler.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

// UnmarshalText implements encoding.TextUnmarshaler for LogFormat.
func (f *LogFormat) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "json", "text":
		*f = LogFormat(v)
		return nil
	default:
		return fmt.Errorf("invalid LogFormat: %q (valid options: json, text)", v)
	}
}

// LogConfig controls the process logger.
type LogConfig struct {
	// Level accepts debug, info, warn, or error (slog.Level text form).
	Level slog.Level `env:"LOG_LEVEL" envDefault:"info"`

	// Format is json or text. Empty picks text in dev mode and json otherwise.
	Format LogFormat `env:"LOG_FORMAT"`
}

// Sanitize picks a format when none was configured.
func (c *LogConfig) Sanitize(isDev bool) {
	if c.Format != "" {
		return
	}
	if isDev {
		c.Format = LogFormatText
		return
	}
	c.Format = LogFormatJSON
}
