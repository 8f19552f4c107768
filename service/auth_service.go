package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tranphattrien/easycode-server/apperr"
	"github.com/tranphattrien/easycode-server/auth"
	"github.com/tranphattrien/easycode-server/db"
	"github.com/tranphattrien/easycode-server/logger"
	"github.com/tranphattrien/easycode-server/mail"
	"github.com/tranphattrien/easycode-server/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

var emailRegex = regexp.MustCompile(`^\w+([\.-]?\w+)*@\w+([\.-]?\w+)*(\.\w{2,3})+$`)

// AuthService implements signup with email activation, password and
// federated sign-in, and password changes.
type AuthService struct {
	db           db.Database
	mail         *mail.MailService
	verifier     auth.FederatedVerifier
	secret       string
	clientOrigin string
}

func NewAuthService(database db.Database, mailService *mail.MailService, verifier auth.FederatedVerifier, secret, clientOrigin string) *AuthService {
	return &AuthService{
		db:           database,
		mail:         mailService,
		verifier:     verifier,
		secret:       secret,
		clientOrigin: clientOrigin,
	}
}

// SessionData is what every successful sign-in returns.
type SessionData struct {
	AccessToken string `json:"access_token"`
	Id          string `json:"_id"`
	ProfileImg  string `json:"profile_img"`
	Username    string `json:"username"`
	Fullname    string `json:"fullname"`
}

func (s *AuthService) Signup(ctx context.Context, fullname, email, password string) error {
	if len(fullname) < 3 {
		return apperr.New(apperr.Validation, "Fullname must be at least 3 letters long!")
	}
	if len(email) == 0 {
		return apperr.New(apperr.Validation, "Enter Email")
	}
	if !emailRegex.MatchString(email) {
		return apperr.New(apperr.Validation, "Invalid email address")
	}
	if !validPassword(password) {
		return apperr.New(apperr.Validation, "Password should be 6 to 20 characters long with a numeric, 1 lowercase and 1 uppercase letters!")
	}

	if _, err := s.db.User().FindByEmail(ctx, email); err == nil {
		return apperr.New(apperr.Conflict, "Email is already registered")
	} else if apperr.KindOf(err) != apperr.NotFound {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return apperr.Wrap(apperr.Upstream, "failed hashing password", err)
	}

	username, err := s.generateUsername(ctx, email)
	if err != nil {
		return err
	}

	user := &models.UserModel{
		PersonalInfo: models.PersonalInfo{
			Fullname: fullname,
			Email:    email,
			Password: string(hashed),
			Username: username,
		},
		Blogs:    []string{},
		JoinedAt: time.Now(),
	}
	if err := s.db.User().Save(ctx, user); err != nil {
		return err
	}

	activationToken, err := auth.IssueActivationToken(user.UserId, s.secret)
	if err != nil {
		return apperr.Wrap(apperr.Upstream, "failed issuing activation token", err)
	}
	activationLink := s.clientOrigin + "/activation?token=" + activationToken
	s.mail.SendActivationEmail(email, fullname, activationLink)

	return nil
}

func (s *AuthService) Activate(ctx context.Context, token string) error {
	userId, err := auth.VerifyActivationToken(token, s.secret)
	if err != nil {
		return err
	}

	user, err := s.db.User().FindOneById(ctx, userId)
	if err != nil {
		return err
	}
	if user.PersonalInfo.Active {
		return apperr.New(apperr.Validation, "Account already activated")
	}
	return s.db.User().SetActive(ctx, userId)
}

func (s *AuthService) Signin(ctx context.Context, email, password string) (*SessionData, error) {
	user, err := s.db.User().FindByEmail(ctx, email)
	if err != nil {
		if apperr.KindOf(err) == apperr.NotFound {
			return nil, apperr.New(apperr.NotFound, "User not found")
		}
		return nil, err
	}

	if user.GoogleAuth {
		return nil, apperr.New(apperr.Validation, "Account was created using google. Try sign in with google!")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PersonalInfo.Password), []byte(password)); err != nil {
		return nil, apperr.New(apperr.Authorization, "Invalid password")
	}
	if !user.PersonalInfo.Active {
		return nil, apperr.New(apperr.Validation, "Account is not activated yet")
	}

	return s.session(user)
}

// GoogleAuth signs a federated user in, creating the account on first
// contact. Accounts that signed up with a password stay password-only.
func (s *AuthService) GoogleAuth(ctx context.Context, idToken string) (*SessionData, error) {
	identity, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		return nil, err
	}
	picture := strings.Replace(identity.Picture, "s96-c", "s384-c", 1)

	user, err := s.db.User().FindByEmail(ctx, identity.Email)
	if err == nil {
		if !user.GoogleAuth {
			return nil, apperr.New(apperr.Validation, "This email was signed up without google. Please log in with password to access the account!")
		}
		return s.session(user)
	}
	if apperr.KindOf(err) != apperr.NotFound {
		return nil, err
	}

	username, err := s.generateUsername(ctx, identity.Email)
	if err != nil {
		return nil, err
	}
	user = &models.UserModel{
		PersonalInfo: models.PersonalInfo{
			Fullname:   identity.Name,
			Email:      identity.Email,
			Username:   username,
			ProfileImg: picture,
			Active:     true,
		},
		GoogleAuth: true,
		Blogs:      []string{},
		JoinedAt:   time.Now(),
	}
	if err := s.db.User().Save(ctx, user); err != nil {
		return nil, err
	}
	logger.Info("Created federated user", zap.String("username", username))

	return s.session(user)
}

func (s *AuthService) ChangePassword(ctx context.Context, userId, currentPassword, newPassword string) error {
	if !validPassword(currentPassword) || !validPassword(newPassword) {
		return apperr.New(apperr.Validation, "Password should be 6 to 20 characters long with a numeric, 1 lowercase and 1 uppercase letters!")
	}

	user, err := s.db.User().FindOneById(ctx, userId)
	if err != nil {
		return err
	}
	if user.GoogleAuth {
		return apperr.New(apperr.Validation, "You can't change account's password because you logged in through google")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PersonalInfo.Password), []byte(currentPassword)); err != nil {
		return apperr.New(apperr.Authorization, "Incorrect current password!")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return apperr.Wrap(apperr.Upstream, "failed hashing password", err)
	}
	return s.db.User().SetPassword(ctx, userId, string(hashed))
}

// generateUsername derives a username from the email local part and
// disambiguates with a short random suffix when it is already taken.
func (s *AuthService) generateUsername(ctx context.Context, email string) (string, error) {
	username := strings.Split(email, "@")[0]
	taken, err := s.db.User().IsUsernameTaken(ctx, username)
	if err != nil {
		return "", err
	}
	if taken {
		username += uuid.NewString()[:5]
	}
	return username, nil
}

func (s *AuthService) session(user *models.UserModel) (*SessionData, error) {
	token, err := auth.IssueSessionToken(user.UserId, s.secret)
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "failed issuing session token", err)
	}
	return &SessionData{
		AccessToken: token,
		Id:          user.UserId,
		ProfileImg:  user.PersonalInfo.ProfileImg,
		Username:    user.PersonalInfo.Username,
		Fullname:    user.PersonalInfo.Fullname,
	}, nil
}

// validPassword enforces the original policy: 6 to 20 characters with
// at least one digit, one lowercase and one uppercase letter.
func validPassword(password string) bool {
	if len(password) < 6 || len(password) > 20 {
		return false
	}
	var digit, lower, upper bool
	for _, r := range password {
		switch {
		case r >= '0' && r <= '9':
			digit = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		}
	}
	return digit && lower && upper
}
