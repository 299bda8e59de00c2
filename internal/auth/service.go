package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidPassphrase is returned when a login attempt fails.
var ErrInvalidPassphrase = errors.New("invalid passphrase")

// SessionToken is returned by a successful login.
type SessionToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Service guards the API behind a single operator passphrase. There is
// no user store: the passphrase hash lives in config and every session
// belongs to the one operator.
type Service struct {
	cfg    AuthConfig
	tokens *TokenService
	logger *zap.Logger
}

// NewService creates the auth service. It fails when auth is enabled
// without a passphrase hash. When no JWT secret is configured, an
// ephemeral one is generated; sessions then do not survive a restart.
func NewService(cfg AuthConfig, logger *zap.Logger) (*Service, error) {
	if cfg.Enabled && cfg.PassphraseHash == "" {
		return nil, errors.New("auth enabled without auth.passphrase_hash")
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = DefaultConfig().TokenTTL
	}

	secret := []byte(cfg.JWTSecret)
	if len(secret) == 0 {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("generate ephemeral jwt secret: %w", err)
		}
		secret = []byte(hex.EncodeToString(buf))
		logger.Info("no auth.jwt_secret configured, using an ephemeral secret; sessions reset on restart")
	}

	return &Service{
		cfg:    cfg,
		tokens: NewTokenService(secret, cfg.TokenTTL),
		logger: logger,
	}, nil
}

// Enabled reports whether the API requires an operator session.
func (s *Service) Enabled() bool {
	return s.cfg.Enabled
}

// Tokens returns the token service used by the middleware.
func (s *Service) Tokens() *TokenService {
	return s.tokens
}

// Login verifies the operator passphrase and issues a session token.
func (s *Service) Login(passphrase string) (*SessionToken, error) {
	if !CheckPassphrase(s.cfg.PassphraseHash, passphrase) {
		return nil, ErrInvalidPassphrase
	}

	token, expiresAt, err := s.tokens.IssueToken()
	if err != nil {
		return nil, err
	}

	s.logger.Info("operator session issued", zap.Time("expires_at", expiresAt))
	return &SessionToken{Token: token, ExpiresAt: expiresAt}, nil
}

// HashPassphrase creates a bcrypt hash of the given passphrase, for
// seeding auth.passphrase_hash.
func HashPassphrase(passphrase string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash passphrase: %w", err)
	}
	return string(hash), nil
}

// CheckPassphrase verifies a passphrase against a bcrypt hash.
func CheckPassphrase(hash, passphrase string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(passphrase)) == nil
}
