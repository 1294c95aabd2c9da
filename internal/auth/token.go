package auth

import (
	"errors"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/shop-service/internal/config"
	apperrors "github.com/spec-kit/shop-service/pkg/util/errorutil"
)

// TokenManager handles issuing and validating JWT tokens.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager builds a new manager. The secret must be non-empty.
func NewTokenManager(cfg config.AuthConfig) (*TokenManager, error) {
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, errors.New("jwt secret must be provided")
	}
	issuer := cfg.TokenIssuer
	if issuer == "" {
		issuer = "shop"
	}
	return &TokenManager{
		secret: []byte(cfg.JWTSecret),
		issuer: issuer,
		ttl:    cfg.TokenTTL(),
		now:    time.Now,
	}, nil
}

// Issue builds and signs a JWT whose subject is userID.
func (tm *TokenManager) Issue(userID string) (string, time.Time, error) {
	issuedAt := tm.now()
	expiresAt := issuedAt.Add(tm.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    tm.issuer,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Validate verifies signature, issuer and expiry and returns the subject.
// Every failure is reported as an INVALID_TOKEN domain error.
func (tm *TokenManager) Validate(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return tm.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithIssuer(tm.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tm.now),
	)
	if err != nil {
		return "", apperrors.NewInvalidToken(err)
	}
	if !parsed.Valid {
		return "", apperrors.NewInvalidToken(errors.New("invalid token claims"))
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return "", apperrors.NewInvalidToken(errors.New("missing subject"))
	}
	return claims.Subject, nil
}
