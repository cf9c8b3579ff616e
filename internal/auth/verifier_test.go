package auth

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer   = "https://id.example.com"
	testAudience = "storefront"
)

func signToken(t *testing.T, key ed25519.PrivateKey, mutate func(*jwt.RegisteredClaims), email string, admin bool) string {
	t.Helper()
	reg := jwt.RegisteredClaims{
		Issuer:    testIssuer,
		Audience:  jwt.ClaimStrings{testAudience},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	if mutate != nil {
		mutate(&reg)
	}
	claims := identityClaims{RegisteredClaims: reg, Email: email, Admin: admin}
	token, err := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestJWTVerifier(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	v := NewJWTVerifier(Config{Issuer: testIssuer, Audience: testAudience, Key: pub})
	ctx := context.Background()

	t.Run("valid token", func(t *testing.T) {
		id, err := v.Verify(ctx, signToken(t, priv, nil, "ana@example.com", true))
		require.NoError(t, err)
		assert.Equal(t, "ana@example.com", id.Email)
		assert.True(t, id.Admin)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := v.Verify(ctx, "not.a.token")
		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		token := signToken(t, priv, func(c *jwt.RegisteredClaims) {
			c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
		}, "ana@example.com", false)
		_, err := v.Verify(ctx, token)
		assert.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		token := signToken(t, priv, func(c *jwt.RegisteredClaims) {
			c.Issuer = "https://attacker.example.com"
		}, "ana@example.com", false)
		_, err := v.Verify(ctx, token)
		assert.Error(t, err)
	})

	t.Run("wrong key", func(t *testing.T) {
		_, otherPriv, err := ed25519.GenerateKey(rand.Reader)
		require.NoError(t, err)
		_, err = v.Verify(ctx, signToken(t, otherPriv, nil, "ana@example.com", false))
		assert.Error(t, err)
	})

	t.Run("missing email claim", func(t *testing.T) {
		_, err := v.Verify(ctx, signToken(t, priv, nil, "", false))
		assert.Error(t, err)
	})
}

func TestParsePublicKey(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	encoded := base64.StdEncoding.EncodeToString(pub)
	parsed, err := ParsePublicKey(encoded)
	require.NoError(t, err)
	assert.Equal(t, pub, parsed)

	_, err = ParsePublicKey("dG9vc2hvcnQ=")
	assert.Error(t, err)
}
