package service

import (
	"context"
	"net/url"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/thoas/go-funk"
	"github.com/tranphattrien/easycode-server/apperr"
	"github.com/tranphattrien/easycode-server/db"
	"github.com/tranphattrien/easycode-server/models"
)

const maxBioLength = 150
const userSearchLimit = 50

type UserService struct {
	db db.Database
}

func NewUserService(database db.Database) *UserService {
	return &UserService{db: database}
}

// Search matches usernames case-insensitively and returns public
// profile projections.
func (s *UserService) Search(ctx context.Context, query string) ([]models.AuthorInfo, error) {
	users, err := s.db.User().Search(ctx, query, userSearchLimit)
	if err != nil {
		return nil, err
	}

	return funk.Map(users, func(user models.UserModel) models.AuthorInfo {
		info := models.AuthorInfo{UserId: user.UserId}
		copier.Copy(&info, &user.PersonalInfo)
		return info
	}).([]models.AuthorInfo), nil
}

// GetProfile returns a user's public profile by username. Password and
// internals are stripped by the model's json tags.
func (s *UserService) GetProfile(ctx context.Context, username string) (*models.UserModel, error) {
	user, err := s.db.User().FindByUsername(ctx, username)
	if err != nil {
		if apperr.KindOf(err) == apperr.NotFound {
			return nil, apperr.New(apperr.NotFound, "User not found")
		}
		return nil, err
	}
	user.PersonalInfo.Password = ""
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userId, username, bio string, links models.SocialLinks) error {
	if len(username) < 3 {
		return apperr.New(apperr.Validation, "Username should be at least 3 letters long!")
	}
	if len(bio) > maxBioLength {
		return apperr.Newf(apperr.Validation, "Bio should not be more than %d characters!", maxBioLength)
	}
	if err := validateSocialLinks(links); err != nil {
		return err
	}

	current, err := s.db.User().FindOneById(ctx, userId)
	if err != nil {
		return err
	}
	if current.PersonalInfo.Username != username {
		taken, err := s.db.User().IsUsernameTaken(ctx, username)
		if err != nil {
			return err
		}
		if taken {
			return apperr.New(apperr.Conflict, "Username is already taken!")
		}
	}

	return s.db.User().UpdateProfile(ctx, userId, username, bio, links)
}

func (s *UserService) SetProfileImg(ctx context.Context, userId, imageUrl string) error {
	return s.db.User().SetProfileImg(ctx, userId, imageUrl)
}

// validateSocialLinks requires full urls and, except for the personal
// website, a hostname on the matching platform domain.
func validateSocialLinks(links models.SocialLinks) error {
	checks := map[string]string{
		"youtube":   links.Youtube,
		"instagram": links.Instagram,
		"facebook":  links.Facebook,
		"twitter":   links.Twitter,
		"github":    links.Github,
		"website":   links.Website,
	}

	for site, link := range checks {
		if len(link) == 0 {
			continue
		}
		parsed, err := url.Parse(link)
		if err != nil || len(parsed.Hostname()) == 0 {
			return apperr.New(apperr.Validation, "You must provide full social links with http(s) included!")
		}
		if site != "website" && !strings.Contains(parsed.Hostname(), site+".com") {
			return apperr.Newf(apperr.Validation, "%s link is invalid. You must enter a full link!", site)
		}
	}
	return nil
}
