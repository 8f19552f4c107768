package extensions

import (
	"context"

	"github.com/jinzhu/copier"
	"github.com/tranphattrien/easycode-server/db"
	"github.com/tranphattrien/easycode-server/models"
)

// GetAuthorInfo loads the public profile projection attached to blog,
// comment and notification responses.
func GetAuthorInfo(ctx context.Context, database db.Database, userId string) (*models.AuthorInfo, error) {
	user, err := database.User().FindOneById(ctx, userId)
	if err != nil {
		return nil, err
	}

	info := &models.AuthorInfo{UserId: user.UserId}
	copier.Copy(info, &user.PersonalInfo)
	return info, nil
}
