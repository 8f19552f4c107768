package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tranphattrien/easycode-server/apperr"
	"github.com/tranphattrien/easycode-server/auth"
)

type fakeVerifier struct {
	identity *auth.FederatedIdentity
	err      error
}

func (v *fakeVerifier) Verify(ctx context.Context, token string) (*auth.FederatedIdentity, error) {
	if v.err != nil {
		return nil, v.err
	}
	return v.identity, nil
}

func TestSignupValidation(t *testing.T) {
	database := newMemoryDb()
	svc := NewAuthService(database, disabledMail(), &fakeVerifier{}, testSecret, "https://easycode.example")
	ctx := context.Background()

	cases := []struct {
		name     string
		fullname string
		email    string
		password string
	}{
		{"short fullname", "ab", "jo@example.com", "Passw0rd"},
		{"missing email", "Jordan Doe", "", "Passw0rd"},
		{"malformed email", "Jordan Doe", "not-an-email", "Passw0rd"},
		{"password too short", "Jordan Doe", "jo@example.com", "Ab1"},
		{"password without digit", "Jordan Doe", "jo@example.com", "Password"},
		{"password without uppercase", "Jordan Doe", "jo@example.com", "password1"},
		{"password without lowercase", "Jordan Doe", "jo@example.com", "PASSWORD1"},
		{"password too long", "Jordan Doe", "jo@example.com", "Aa1" + strings.Repeat("x", 20)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.Signup(ctx, tc.fullname, tc.email, tc.password)
			assert.Equal(t, apperr.Validation, apperr.KindOf(err))
		})
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	database := newMemoryDb()
	svc := NewAuthService(database, disabledMail(), &fakeVerifier{}, testSecret, "https://easycode.example")
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, "Jordan Doe", "jordan@example.com", "Passw0rd"))
	err := svc.Signup(ctx, "Jordan Clone", "jordan@example.com", "Passw0rd")
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
}

func TestSignupUsernameCollisionGetsSuffix(t *testing.T) {
	database := newMemoryDb()
	svc := NewAuthService(database, disabledMail(), &fakeVerifier{}, testSecret, "https://easycode.example")
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, "Jordan Doe", "jordan@example.com", "Passw0rd"))
	require.NoError(t, svc.Signup(ctx, "Jordan Two", "jordan@other.com", "Passw0rd"))

	first, err := database.User().FindByEmail(ctx, "jordan@example.com")
	require.NoError(t, err)
	second, err := database.User().FindByEmail(ctx, "jordan@other.com")
	require.NoError(t, err)

	assert.Equal(t, "jordan", first.PersonalInfo.Username)
	assert.True(t, strings.HasPrefix(second.PersonalInfo.Username, "jordan"))
	assert.Len(t, second.PersonalInfo.Username, len("jordan")+5)
}

func TestActivationFlow(t *testing.T) {
	database := newMemoryDb()
	svc := NewAuthService(database, disabledMail(), &fakeVerifier{}, testSecret, "https://easycode.example")
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, "Jordan Doe", "jordan@example.com", "Passw0rd"))

	// Signing in before activation is refused.
	_, err := svc.Signin(ctx, "jordan@example.com", "Passw0rd")
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	user, err := database.User().FindByEmail(ctx, "jordan@example.com")
	require.NoError(t, err)
	token, err := auth.IssueActivationToken(user.UserId, testSecret)
	require.NoError(t, err)

	require.NoError(t, svc.Activate(ctx, token))
	err = svc.Activate(ctx, token)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err), "second activation is rejected")

	session, err := svc.Signin(ctx, "jordan@example.com", "Passw0rd")
	require.NoError(t, err)
	assert.Equal(t, user.UserId, session.Id)
	assert.NotEmpty(t, session.AccessToken)
	assert.Equal(t, "jordan", session.Username)
}

func TestSigninFailures(t *testing.T) {
	database := newMemoryDb()
	svc := NewAuthService(database, disabledMail(), &fakeVerifier{}, testSecret, "https://easycode.example")
	ctx := context.Background()

	_, err := svc.Signin(ctx, "ghost@example.com", "Passw0rd")
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	require.NoError(t, svc.Signup(ctx, "Jordan Doe", "jordan@example.com", "Passw0rd"))
	user, err := database.User().FindByEmail(ctx, "jordan@example.com")
	require.NoError(t, err)
	require.NoError(t, database.User().SetActive(ctx, user.UserId))

	_, err = svc.Signin(ctx, "jordan@example.com", "WrongPassw0rd")
	assert.Equal(t, apperr.Authorization, apperr.KindOf(err))
}

func TestGoogleAuth(t *testing.T) {
	verifier := &fakeVerifier{identity: &auth.FederatedIdentity{
		Email:   "fed@example.com",
		Name:    "Fed User",
		Picture: "https://lh3.googleusercontent.com/a/photo=s96-c",
	}}
	database := newMemoryDb()
	svc := NewAuthService(database, disabledMail(), verifier, testSecret, "https://easycode.example")
	ctx := context.Background()

	session, err := svc.GoogleAuth(ctx, "id-token")
	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)

	user, err := database.User().FindByEmail(ctx, "fed@example.com")
	require.NoError(t, err)
	assert.True(t, user.GoogleAuth)
	assert.True(t, user.PersonalInfo.Active, "federated accounts skip email activation")
	assert.Contains(t, user.PersonalInfo.ProfileImg, "s384-c")

	// Password sign-in against a federated account is refused.
	_, err = svc.Signin(ctx, "fed@example.com", "Passw0rd")
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	// And so is changing its password.
	err = svc.ChangePassword(ctx, user.UserId, "Passw0rd", "NewPassw0rd")
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	// A second federated sign-in reuses the account.
	again, err := svc.GoogleAuth(ctx, "id-token")
	require.NoError(t, err)
	assert.Equal(t, session.Id, again.Id)
}

func TestGoogleAuthRefusesPasswordAccounts(t *testing.T) {
	verifier := &fakeVerifier{identity: &auth.FederatedIdentity{
		Email: "jordan@example.com",
		Name:  "Jordan Doe",
	}}
	database := newMemoryDb()
	svc := NewAuthService(database, disabledMail(), verifier, testSecret, "https://easycode.example")
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, "Jordan Doe", "jordan@example.com", "Passw0rd"))

	_, err := svc.GoogleAuth(ctx, "id-token")
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestChangePassword(t *testing.T) {
	database := newMemoryDb()
	svc := NewAuthService(database, disabledMail(), &fakeVerifier{}, testSecret, "https://easycode.example")
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, "Jordan Doe", "jordan@example.com", "Passw0rd"))
	user, err := database.User().FindByEmail(ctx, "jordan@example.com")
	require.NoError(t, err)
	require.NoError(t, database.User().SetActive(ctx, user.UserId))

	err = svc.ChangePassword(ctx, user.UserId, "WrongPassw0rd", "NewPassw0rd")
	assert.Equal(t, apperr.Authorization, apperr.KindOf(err))

	require.NoError(t, svc.ChangePassword(ctx, user.UserId, "Passw0rd", "NewPassw0rd"))

	_, err = svc.Signin(ctx, "jordan@example.com", "Passw0rd")
	assert.Equal(t, apperr.Authorization, apperr.KindOf(err))
	_, err = svc.Signin(ctx, "jordan@example.com", "NewPassw0rd")
	assert.NoError(t, err)
}
