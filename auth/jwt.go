package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tranphattrien/easycode-server/apperr"
)

const (
	sessionTokenValidity    = time.Hour
	activationTokenValidity = 24 * time.Hour
)

type sessionClaims struct {
	UserId string `json:"id"`
	jwt.RegisteredClaims
}

type activationClaims struct {
	UserId string `json:"userId"`
	jwt.RegisteredClaims
}

// IssueSessionToken signs a 1-hour access token for the given user.
func IssueSessionToken(userId, secret string) (string, error) {
	claims := &sessionClaims{
		UserId: userId,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTokenValidity)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// IssueActivationToken signs a 1-day token mailed out on signup.
func IssueActivationToken(userId, secret string) (string, error) {
	claims := &activationClaims{
		UserId: userId,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(activationTokenValidity)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// VerifySessionToken returns the user id carried by a session token.
func VerifySessionToken(token, secret string) (string, error) {
	claims := &sessionClaims{}
	if err := parse(token, secret, claims); err != nil {
		return "", err
	}
	return claims.UserId, nil
}

// VerifyActivationToken returns the user id carried by an activation
// token. Expired tokens are a validation failure: the caller is told to
// sign up again, not to retry.
func VerifyActivationToken(token, secret string) (string, error) {
	claims := &activationClaims{}
	if err := parse(token, secret, claims); err != nil {
		return "", err
	}
	return claims.UserId, nil
}

func parse(token, secret string, claims jwt.Claims) error {
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if errors.Is(err, jwt.ErrTokenExpired) {
		return apperr.Wrap(apperr.Validation, "Token expired", err)
	}
	if err != nil || !parsed.Valid {
		return apperr.Wrap(apperr.Authorization, "Invalid token", err)
	}
	return nil
}
