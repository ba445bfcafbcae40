package auth

import (
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func testJWTConfig() JWTConfig {
	return JWTConfig{Issuer: "syncwatch-test", TTL: time.Hour}
}

func TestAccessTokenRoundtrip(t *testing.T) {
	svc := NewService("movie night", "", testJWTConfig())

	if !svc.Enabled() {
		t.Fatal("gate should be enabled")
	}

	token, err := svc.Access("movie night")
	if err != nil {
		t.Fatalf("access: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}
	if err := svc.ValidateToken(token); err != nil {
		t.Fatalf("validate issued token: %v", err)
	}
}

func TestAccessRejectsWrongPassphrase(t *testing.T) {
	svc := NewService("movie night", "", testJWTConfig())

	if _, err := svc.Access("wrong"); !errors.Is(err, ErrInvalidPassphrase) {
		t.Fatalf("expected ErrInvalidPassphrase, got %v", err)
	}
}

func TestAccessWithBcryptHashedPassphrase(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("movie night"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash passphrase: %v", err)
	}

	svc := NewService(string(hash), "", testJWTConfig())

	if _, err := svc.Access("movie night"); err != nil {
		t.Fatalf("access with correct passphrase: %v", err)
	}
	if _, err := svc.Access("wrong"); !errors.Is(err, ErrInvalidPassphrase) {
		t.Fatalf("expected ErrInvalidPassphrase, got %v", err)
	}
}

func TestDisabledGate(t *testing.T) {
	svc := NewService("", "", testJWTConfig())

	if svc.Enabled() {
		t.Fatal("gate should be disabled without a passphrase")
	}
	if _, err := svc.Access("anything"); err == nil {
		t.Fatal("access should fail while the gate is disabled")
	}
}

func TestTokensAreBoundToTheSigningSecret(t *testing.T) {
	issuing := NewService("movie night", "secret-a", testJWTConfig())
	other := NewService("movie night", "secret-b", testJWTConfig())

	token, err := issuing.Access("movie night")
	if err != nil {
		t.Fatalf("access: %v", err)
	}
	if err := other.ValidateToken(token); err == nil {
		t.Fatal("token signed with a different secret should be rejected")
	}
}
