package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidSession is returned for any token that must not be trusted.
var ErrInvalidSession = errors.New("invalid session token")

type sessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// GenerateToken issues a session token for username valid for ttl from now.
func GenerateToken(secret, username string, ttl time.Duration) (string, error) {
	return GenerateTokenAt(secret, username, time.Now(), ttl)
}

// GenerateTokenAt issues a session token as if it had been issued at issuedAt.
func GenerateTokenAt(secret, username string, issuedAt time.Time, ttl time.Duration) (string, error) {
	claims := &sessionClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken verifies signature and expiry and returns the embedded username.
// Every failure collapses into ErrInvalidSession.
func ParseToken(secret, tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", ErrInvalidSession
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid || claims.Username == "" {
		return "", ErrInvalidSession
	}

	return claims.Username, nil
}
