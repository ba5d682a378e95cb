package store

import (
	"errors"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// JWTSessionIssuer issues and verifies stateless HS256 JWT session tokens.
// Tokens carry only the user id and expiry; there is no server-side
// revocation, logout is a client-side token discard.
type JWTSessionIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTSessionIssuer builds a stateless JWT session issuer.
func NewJWTSessionIssuer(secret string, ttl time.Duration) *JWTSessionIssuer {
	return &JWTSessionIssuer{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// NewSession creates a signed JWT for the user ID.
func (s *JWTSessionIssuer) NewSession(userID string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify validates a token and returns the subject with a tagged status.
// Expired and malformed/forged tokens are reported as distinct outcomes so
// middleware can answer with the right HTTP status.
func (s *JWTSessionIssuer) Verify(token string) (string, TokenStatus) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", TokenInvalid
	}
	claims := jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", TokenExpired
		}
		return "", TokenInvalid
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return "", TokenInvalid
	}
	return claims.Subject, TokenValid
}
