package session

import "time"

// Config holds session configuration.
type Config struct {
	// TTL is the lifetime of an issued token.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// KeyPrefix prefixes token keys in Redis.
	KeyPrefix string `env:"SESSION_KEY_PREFIX" envDefault:"auth_"`

	// CleanupInterval for the in-memory store (0 to disable).
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m"`
}

// DefaultConfig returns default session configuration.
func DefaultConfig() Config {
	return Config{
		TTL:             24 * time.Hour,
		KeyPrefix:       "auth_",
		CleanupInterval: 5 * time.Minute,
	}
}
