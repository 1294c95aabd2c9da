package auth

import (
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/shop-service/internal/config"
	apperrors "github.com/spec-kit/shop-service/pkg/util/errorutil"
)

func newTestTokenManager(t *testing.T, secret string) *TokenManager {
	t.Helper()
	tm, err := NewTokenManager(config.AuthConfig{JWTSecret: secret, TokenIssuer: "shop", TokenTTLHours: 24})
	require.NoError(t, err)
	return tm
}

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := newTestTokenManager(t, "super-secret")

	for _, userID := range []string{"user-123", "0b6c1f0e-1c53-4d7e-9d1b-2f9c3a1e5a77", "x"} {
		token, exp, err := tm.Issue(userID)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(24*time.Hour), exp, time.Minute)

		got, err := tm.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, userID, got)
	}
}

func TestTokenManager_ClaimsShape(t *testing.T) {
	tm := newTestTokenManager(t, "super-secret")
	token, _, err := tm.Issue("u1")
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	parsed, _, err := jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)
	assert.Equal(t, "HS512", parsed.Method.Alg())
	assert.Equal(t, "shop", claims.Issuer)
	assert.Equal(t, "u1", claims.Subject)
	require.NotNil(t, claims.IssuedAt)
	require.NotNil(t, claims.ExpiresAt)
	assert.Equal(t, 24*time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestTokenManager_Expired(t *testing.T) {
	issuer := newTestTokenManager(t, "secret")
	issuer.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }

	token, _, err := issuer.Issue("u1")
	require.NoError(t, err)

	_, err = newTestTokenManager(t, "secret").Validate(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	token, _, err := newTestTokenManager(t, "right-secret").Issue("u1")
	require.NoError(t, err)

	_, err = newTestTokenManager(t, "wrong-secret").Validate(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestTokenManager_Tampered(t *testing.T) {
	tm := newTestTokenManager(t, "secret")
	token, _, err := tm.Issue("u1")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	forged, _, err := newTestTokenManager(t, "secret").Issue("u2")
	require.NoError(t, err)
	// payload of a second token under the first signature
	parts[1] = strings.Split(forged, ".")[1]
	if parts[1] == strings.Split(token, ".")[1] {
		t.Fatal("payloads unexpectedly equal")
	}

	_, err = tm.Validate(strings.Join(parts, "."))
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestTokenManager_WrongIssuer(t *testing.T) {
	other, err := NewTokenManager(config.AuthConfig{JWTSecret: "secret", TokenIssuer: "elsewhere"})
	require.NoError(t, err)
	token, _, err := other.Issue("u1")
	require.NoError(t, err)

	_, err = newTestTokenManager(t, "secret").Validate(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestTokenManager_RejectsOtherAlgorithms(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "u1",
		Issuer:    "shop",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = newTestTokenManager(t, "secret").Validate(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestTokenManager_Malformed(t *testing.T) {
	_, err := newTestTokenManager(t, "secret").Validate("not.a.jwt")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestNewTokenManager_RequiresSecret(t *testing.T) {
	_, err := NewTokenManager(config.AuthConfig{JWTSecret: "  "})
	assert.Error(t, err)
}
