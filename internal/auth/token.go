package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrUnauthenticated covers every credential failure: absent, malformed,
// badly signed, expired, or missing required claims.
var ErrUnauthenticated = errors.New("unauthenticated")

// TokenManager signs and verifies HS256 bearer credentials. The signing
// secret always comes from configuration; construction fails on an empty one.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

func NewTokenManager(secret string, ttl time.Duration, issuer string) (*TokenManager, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("token secret required")
	}
	if ttl <= 0 {
		return nil, errors.New("token ttl must be > 0")
	}
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: issuer,
	}, nil
}

// Generate mints a signed credential carrying the subject id, display name,
// and role set. Returns the token and its expiry.
func (tm *TokenManager) Generate(subjectID, displayName string, roles []string) (string, time.Time, error) {
	if strings.TrimSpace(subjectID) == "" {
		return "", time.Time{}, errors.New("subject id required")
	}
	now := time.Now()
	expiresAt := now.Add(tm.ttl)

	claims := jwt.MapClaims{
		"sub":      subjectID,
		"username": displayName,
		"roles":    roles,
		"iat":      now.Unix(),
		"exp":      expiresAt.Unix(),
		"iss":      tm.issuer,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify validates the credential and returns the Identity asserted by its
// claims. Subject id and display name are required; a missing roles claim
// yields an empty role set (authorization then denies separately).
func (tm *TokenManager) Verify(credential string) (Identity, error) {
	if strings.TrimSpace(credential) == "" {
		return Identity{}, fmt.Errorf("%w: missing credential", ErrUnauthenticated)
	}

	parsed, err := jwt.Parse(credential, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return tm.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return Identity{}, fmt.Errorf("%w: invalid token", ErrUnauthenticated)
	}

	subject := claimString(claims, "sub")
	displayName := claimString(claims, "username")
	if subject == "" || displayName == "" {
		return Identity{}, fmt.Errorf("%w: missing required claims", ErrUnauthenticated)
	}

	return Identity{
		SubjectID:   subject,
		DisplayName: displayName,
		Roles:       rolesFromClaims(claims),
	}, nil
}

func claimString(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func rolesFromClaims(claims jwt.MapClaims) []string {
	raw, ok := claims["roles"].([]interface{})
	if !ok {
		return nil
	}
	roles := make([]string, 0, len(raw))
	for _, item := range raw {
		if role, ok := item.(string); ok && role != "" {
			roles = append(roles, role)
		}
	}
	return roles
}
