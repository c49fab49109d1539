// Package auth verifies the bearer credential on incoming requests and
// yields the caller identity. It is a narrow contract: one call, one
// identity or one failure.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any credential that cannot be validated.
// The detail stays server-side; callers only learn the credential failed.
var ErrInvalidToken = errors.New("could not validate credentials")

// Identity is the verified caller.
type Identity struct {
	// UserID is the opaque caller identifier used to key the per-user
	// document store.
	UserID string

	// Email is the caller's email, when the token carries one.
	Email string
}

// Verifier validates a bearer token and yields the caller identity.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// JWTVerifier validates HS256-signed JWTs against a shared secret.
type JWTVerifier struct {
	secret []byte
}

// NewJWTVerifier creates a verifier for the given signing secret.
func NewJWTVerifier(secret string) (*JWTVerifier, error) {
	if secret == "" {
		return nil, errors.New("auth secret is required")
	}
	return &JWTVerifier{secret: []byte(secret)}, nil
}

// Verify parses and validates the token. Expiry and signature failures both
// collapse to ErrInvalidToken.
func (v *JWTVerifier) Verify(_ context.Context, token string) (Identity, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}

	id := Identity{}
	if sub, _ := claims["sub"].(string); sub != "" {
		id.UserID = sub
	} else if uid, _ := claims["uid"].(string); uid != "" {
		id.UserID = uid
	}
	if id.UserID == "" {
		return Identity{}, fmt.Errorf("%w: token has no subject", ErrInvalidToken)
	}

	id.Email, _ = claims["email"].(string)
	return id, nil
}

// Sign mints an HS256 token for the given identity. Used by tests and local
// tooling; production tokens come from the identity provider.
func Sign(secret string, id Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": id.UserID,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	if id.Email != "" {
		claims["email"] = id.Email
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
