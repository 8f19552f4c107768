package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tranphattrien/easycode-server/db"
	"github.com/tranphattrien/easycode-server/db/memory"
	"github.com/tranphattrien/easycode-server/mail"
	"github.com/tranphattrien/easycode-server/models"
	"go.mongodb.org/mongo-driver/bson"
)

const testSecret = "test-secret"

// disabledMail never talks to an SMTP server.
func disabledMail() *mail.MailService {
	return &mail.MailService{}
}

func seedUser(t *testing.T, database db.Database, username string) *models.UserModel {
	t.Helper()
	user := &models.UserModel{
		PersonalInfo: models.PersonalInfo{
			Fullname: username + " fullname",
			Email:    username + "@example.com",
			Username: username,
			Active:   true,
		},
		Blogs:    []string{},
		JoinedAt: time.Now(),
	}
	require.NoError(t, database.User().Save(context.Background(), user))
	return user
}

func seedBlog(t *testing.T, database db.Database, blogId, authorId string) *models.BlogModel {
	t.Helper()
	blog := &models.BlogModel{
		BlogId:      blogId,
		Title:       "Seed title",
		Description: "Seed description",
		Banner:      "https://example.com/banner.png",
		Content:     []models.BlogContent{{Blocks: []bson.M{{"type": "paragraph"}}}},
		Tags:        []string{"go"},
		Author:      authorId,
		Comments:    []string{},
		PublishedAt: time.Now(),
	}
	require.NoError(t, database.Blog().Save(context.Background(), blog))
	require.NoError(t, database.User().AttachBlog(context.Background(), authorId, blogId, 1))
	return blog
}

func newMemoryDb() *memory.MemoryDb {
	return memory.New()
}
