package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tranphattrien/easycode-server/apperr"
)

const testSecret = "jwt-test-secret"

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := IssueSessionToken("user-1", testSecret)
	require.NoError(t, err)

	userId, err := VerifySessionToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userId)
}

func TestActivationTokenRoundTrip(t *testing.T) {
	token, err := IssueActivationToken("user-1", testSecret)
	require.NoError(t, err)

	userId, err := VerifyActivationToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userId)
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	// Session and activation tokens carry their user id under different
	// claims, so one cannot stand in for the other.
	token, err := IssueSessionToken("user-1", testSecret)
	require.NoError(t, err)

	userId, err := VerifyActivationToken(token, testSecret)
	require.NoError(t, err)
	assert.Empty(t, userId)
}

func TestWrongSecretIsRejected(t *testing.T) {
	token, err := IssueSessionToken("user-1", testSecret)
	require.NoError(t, err)

	_, err = VerifySessionToken(token, "other-secret")
	assert.Equal(t, apperr.Authorization, apperr.KindOf(err))
}

func TestGarbageTokenIsRejected(t *testing.T) {
	_, err := VerifySessionToken("not-a-token", testSecret)
	assert.Equal(t, apperr.Authorization, apperr.KindOf(err))
}

func TestExpiredTokenIsValidationFailure(t *testing.T) {
	claims := &sessionClaims{
		UserId: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = VerifySessionToken(token, testSecret)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
	assert.Equal(t, "Token expired", apperr.Message(err))
}
