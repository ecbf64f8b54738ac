package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func newTestManager(t *testing.T) *TokenManager {
	t.Helper()
	tm, err := NewTokenManager("test-secret", time.Hour, "usaged")
	if err != nil {
		t.Fatalf("new token manager: %v", err)
	}
	return tm
}

func TestNewTokenManagerRequiresSecret(t *testing.T) {
	if _, err := NewTokenManager("", time.Hour, "usaged"); err == nil {
		t.Fatalf("expected error for empty secret")
	}
	if _, err := NewTokenManager("   ", time.Hour, "usaged"); err == nil {
		t.Fatalf("expected error for blank secret")
	}
	if _, err := NewTokenManager("secret", 0, "usaged"); err == nil {
		t.Fatalf("expected error for zero ttl")
	}
}

func TestGenerateVerifyRoundTrip(t *testing.T) {
	tm := newTestManager(t)

	token, expiresAt, err := tm.Generate("testuser", "Test User", []string{"user", "admin"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !expiresAt.After(time.Now()) {
		t.Fatalf("expiry should be in the future, got %v", expiresAt)
	}

	identity, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if identity.SubjectID != "testuser" {
		t.Fatalf("unexpected subject %q", identity.SubjectID)
	}
	if identity.DisplayName != "Test User" {
		t.Fatalf("unexpected display name %q", identity.DisplayName)
	}
	if len(identity.Roles) != 2 || identity.Roles[0] != "user" || identity.Roles[1] != "admin" {
		t.Fatalf("unexpected roles %v", identity.Roles)
	}
}

func TestVerifyMissingCredential(t *testing.T) {
	tm := newTestManager(t)
	if _, err := tm.Verify(""); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	tm := newTestManager(t)
	other, err := NewTokenManager("different-secret", time.Hour, "usaged")
	if err != nil {
		t.Fatalf("new token manager: %v", err)
	}
	token, _, err := other.Generate("testuser", "Test User", []string{"user"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := tm.Verify(token); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      "testuser",
		"username": "testuser",
		"roles":    []string{"user"},
		"iat":      now.Add(-2 * time.Hour).Unix(),
		"exp":      now.Add(-time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	tm := newTestManager(t)
	if _, err := tm.Verify(signed); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestVerifyRejectsNonHMACAlgorithm(t *testing.T) {
	// alg=none tokens must never validate, whatever the claims say.
	claims := jwt.MapClaims{
		"sub":      "testuser",
		"username": "testuser",
		"roles":    []string{"admin"},
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	tm := newTestManager(t)
	if _, err := tm.Verify(unsigned); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestVerifyMissingRequiredClaims(t *testing.T) {
	tm := newTestManager(t)
	cases := []jwt.MapClaims{
		{"username": "testuser", "exp": time.Now().Add(time.Hour).Unix()},
		{"sub": "testuser", "exp": time.Now().Add(time.Hour).Unix()},
		{"sub": "", "username": "testuser", "exp": time.Now().Add(time.Hour).Unix()},
	}
	for i, claims := range cases {
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		if err != nil {
			t.Fatalf("sign case %d: %v", i, err)
		}
		if _, err := tm.Verify(signed); !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("case %d: expected ErrUnauthenticated, got %v", i, err)
		}
	}
}

func TestVerifyMissingRolesYieldsEmptySet(t *testing.T) {
	claims := jwt.MapClaims{
		"sub":      "testuser",
		"username": "testuser",
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	tm := newTestManager(t)
	identity, err := tm.Verify(signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if len(identity.Roles) != 0 {
		t.Fatalf("expected empty role set, got %v", identity.Roles)
	}
}
