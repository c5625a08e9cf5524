package config

import (
	"errors"
	"strings"
)

// RedisConfig contains Redis configuration.
type RedisConfig struct {
	URI                string   `env:"URI"                  envDefault:"localhost:6379"`
	Password           string   `env:"PASSWORD"             envDefault:""`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:"localhost:26379"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
	ClusterNodes       []string `env:"CLUSTER_NODES"        envDefault:""`
	UseCluster         bool     `env:"USE_CLUSTER"          envDefault:"false"`
}

// Validate checks that the selected topology has an address to dial.
func (r *RedisConfig) Validate() error {
	switch {
	case r.UseCluster:
		if len(r.ClusterNodes) == 0 && strings.TrimSpace(r.URI) == "" {
			return errors.New("REDIS_CLUSTER_NODES or REDIS_URI is required for cluster mode")
		}
	case r.UseSentinel:
		if len(r.SentinelNodes) == 0 {
			return errors.New("REDIS_SENTINEL_NODES is required for sentinel mode")
		}
	default:
		if strings.TrimSpace(r.URI) == "" {
			return errors.New("REDIS_URI is required")
		}
	}
	return nil
}
