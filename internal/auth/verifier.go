// Package auth verifies bearer tokens issued by the external identity
// provider. Verification only: this service never mints tokens.
package auth

import (
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the authenticated caller as the rest of the service sees it.
type Identity struct {
	Email string
	Admin bool
}

type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// Config defines how identity tokens are checked.
type Config struct {
	Issuer   string
	Audience string
	Key      ed25519.PublicKey
	Now      func() time.Time
}

// JWTVerifier checks ed25519-signed identity tokens from the external
// provider. Expiry, issuer and audience are all enforced.
type JWTVerifier struct {
	cfg Config
}

func NewJWTVerifier(cfg Config) *JWTVerifier {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &JWTVerifier{cfg: cfg}
}

type identityClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Admin bool   `json:"admin"`
}

func (v *JWTVerifier) Verify(ctx context.Context, token string) (Identity, error) {
	parsed, err := jwt.ParseWithClaims(token, &identityClaims{}, func(t *jwt.Token) (any, error) {
		return v.cfg.Key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
		jwt.WithIssuer(v.cfg.Issuer),
		jwt.WithAudience(v.cfg.Audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.cfg.Now),
	)
	if err != nil {
		return Identity{}, fmt.Errorf("verify token: %w", err)
	}
	claims, ok := parsed.Claims.(*identityClaims)
	if !ok {
		return Identity{}, fmt.Errorf("verify token: unexpected claims type")
	}
	email := strings.TrimSpace(claims.Email)
	if email == "" {
		return Identity{}, fmt.Errorf("verify token: missing email claim")
	}
	return Identity{Email: email, Admin: claims.Admin}, nil
}

var _ Verifier = (*JWTVerifier)(nil)

// ParsePublicKey decodes a base64 ed25519 public key as distributed by the
// identity provider.
func ParsePublicKey(encoded string) (ed25519.PublicKey, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(strings.TrimSpace(encoded))
		if err != nil {
			return nil, fmt.Errorf("decode public key: %w", err)
		}
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("public key must be %d bytes, got %d", ed25519.PublicKeySize, len(raw))
	}
	return ed25519.PublicKey(raw), nil
}
