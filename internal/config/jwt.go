package config

import (
	"fmt"
	"time"
)

// DefaultJWTExpirationHours is used when JWT_EXPIRATION_HOURS is not set.
const DefaultJWTExpirationHours = 24

// JWTConfig holds configuration for tenant token signing and validation.
// An empty secret disables authentication on the HTTP API.
type JWTConfig struct {
	Secret          string `mapstructure:"secret"`
	ExpirationHours int    `mapstructure:"expiration_hours"`
}

// Enabled reports whether a signing secret is configured.
func (c JWTConfig) Enabled() bool {
	return c.Secret != ""
}

// Expiration returns the token lifetime.
func (c JWTConfig) Expiration() time.Duration {
	return time.Duration(c.ExpirationHours) * time.Hour
}

// Validate checks the expiration when authentication is enabled.
func (c JWTConfig) Validate() error {
	if !c.Enabled() {
		return nil
	}
	if len(c.Secret) < 16 {
		return fmt.Errorf("JWT_SECRET must be at least 16 characters")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}
