package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TokenStoreKind selects where the session token is persisted.
type TokenStoreKind string

const (
	// TokenStoreMemory keeps the token for the lifetime of the process.
	TokenStoreMemory TokenStoreKind = "memory"
	// TokenStoreFile keeps the token in a private file so it survives restarts.
	TokenStoreFile TokenStoreKind = "file"
	// TokenStoreRedis keeps the token in Redis.
	TokenStoreRedis TokenStoreKind = "redis"
)

// UnmarshalText implements encoding.TextUnmarshaler for TokenStoreKind.
func (k *TokenStoreKind) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "memory", "file", "redis":
		*k = TokenStoreKind(v)
		return nil
	default:
		return fmt.Errorf("invalid TokenStoreKind: %q (valid options: memory, file, redis)", v)
	}
}

// DefaultTokenFile is the token path relative to the user's home directory.
const DefaultTokenFile = ".usermgmt/token"

// TokenStoreConfig groups token persistence configuration.
type TokenStoreConfig struct {
	// Kind determines which store backs the session token.
	Kind TokenStoreKind `env:"TOKEN_STORE" envDefault:"file"`

	// Key is the single fixed key the token is stored under.
	Key string `env:"TOKEN_STORE_KEY" envDefault:"token"`

	// File is the token path (Kind=file). Empty means $HOME/.usermgmt/token.
	File string `env:"TOKEN_STORE_FILE"`

	// RedisPrefix namespaces the Redis key (Kind=redis).
	RedisPrefix string `env:"TOKEN_STORE_REDIS_PREFIX" envDefault:"usermgmt:"`
}

// Sanitize fills derived defaults.
func (c *TokenStoreConfig) Sanitize() {
	c.Key = strings.TrimSpace(c.Key)
	if c.Key == "" {
		c.Key = "token"
	}
	c.File = strings.TrimSpace(c.File)
	if c.File == "" && c.Kind == TokenStoreFile {
		if home, err := os.UserHomeDir(); err == nil {
			c.File = filepath.Join(home, DefaultTokenFile)
		}
	}
}

// Validate reports missing settings for the selected store.
func (c *TokenStoreConfig) Validate() error {
	switch c.Kind {
	case TokenStoreMemory, TokenStoreRedis:
		return nil
	case TokenStoreFile:
		if c.File == "" {
			return errors.New("TOKEN_STORE_FILE: path is required when home directory is unknown")
		}
		return nil
	default:
		return fmt.Errorf("TOKEN_STORE: unsupported kind %q", c.Kind)
	}
}
