package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidPassphrase is returned when the supplied passphrase is wrong.
var ErrInvalidPassphrase = errors.New("invalid passphrase")

// Service exchanges the shared room passphrase for a signed access token.
// With no passphrase configured the gate is disabled and every request
// passes through.
type Service struct {
	passphrase string
	jwtConfig  *JWTConfig
}

// NewService creates an auth service. An empty secret gets a random one,
// which is fine for a single-process server: tokens just don't survive a
// restart, same as the room state.
func NewService(passphrase, secret string, cfg JWTConfig) *Service {
	jwtCfg := cfg
	if secret == "" {
		secret = randomSecret()
	}
	jwtCfg.Secret = []byte(secret)
	return &Service{
		passphrase: strings.TrimSpace(passphrase),
		jwtConfig:  &jwtCfg,
	}
}

// Enabled reports whether the passphrase gate is active.
func (s *Service) Enabled() bool {
	return s.passphrase != ""
}

// Access validates the passphrase and returns a fresh access token.
func (s *Service) Access(passphrase string) (string, error) {
	if !s.Enabled() {
		return "", errors.New("passphrase gate is disabled")
	}
	if !s.verify(passphrase) {
		return "", ErrInvalidPassphrase
	}

	token, err := GenerateToken(s.jwtConfig)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return token, nil
}

// ValidateToken checks a previously issued access token.
func (s *Service) ValidateToken(token string) error {
	_, err := ValidateToken(s.jwtConfig, token)
	return err
}

// verify compares against either a bcrypt hash or a plain shared secret,
// depending on how the operator configured the passphrase.
func (s *Service) verify(passphrase string) bool {
	if strings.HasPrefix(s.passphrase, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(s.passphrase), []byte(passphrase)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(s.passphrase), []byte(passphrase)) == 1
}

func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("auth: read random secret: %v", err))
	}
	return hex.EncodeToString(buf)
}
