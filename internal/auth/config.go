package auth

import "time"

// AuthConfig holds the operator authentication settings from the
// top-level `auth` config section.
type AuthConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	PassphraseHash string        `mapstructure:"passphrase_hash"`
	JWTSecret      string        `mapstructure:"jwt_secret"`
	TokenTTL       time.Duration `mapstructure:"token_ttl"`
}

// DefaultConfig returns sensible defaults for the auth service.
func DefaultConfig() AuthConfig {
	return AuthConfig{
		Enabled:  false,
		TokenTTL: 12 * time.Hour,
	}
}
