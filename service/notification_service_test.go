package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tranphattrien/easycode-server/models"
)

func TestEmitLikeIsIdempotent(t *testing.T) {
	database := newMemoryDb()
	svc := NewNotificationService(database)
	ctx := context.Background()

	author := seedUser(t, database, "author")
	reader := seedUser(t, database, "reader")
	blog := seedBlog(t, database, "liked-blog-1a2b3c4d", author.UserId)

	require.NoError(t, svc.EmitLike(ctx, blog.BlogId, reader.UserId))
	require.NoError(t, svc.EmitLike(ctx, blog.BlogId, reader.UserId))

	count, err := svc.Count(ctx, author.UserId, models.NotificationLike)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "double emit settles on one record")

	liked, err := svc.HasLiked(ctx, blog.BlogId, reader.UserId)
	require.NoError(t, err)
	assert.True(t, liked)

	require.NoError(t, svc.RetractLike(ctx, blog.BlogId, reader.UserId))

	liked, err = svc.HasLiked(ctx, blog.BlogId, reader.UserId)
	require.NoError(t, err)
	assert.False(t, liked)

	count, err = svc.Count(ctx, author.UserId, models.NotificationLike)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestListMarksNotificationsSeen(t *testing.T) {
	database := newMemoryDb()
	svc := NewNotificationService(database)
	ctx := context.Background()

	author := seedUser(t, database, "author")
	reader := seedUser(t, database, "reader")
	blog := seedBlog(t, database, "seen-blog-1a2b3c4d", author.UserId)

	require.NoError(t, svc.EmitComment(ctx, blog.BlogId, "comment-1", reader.UserId, author.UserId))

	hasNew, err := svc.HasNew(ctx, author.UserId)
	require.NoError(t, err)
	assert.True(t, hasNew)

	notifications, err := svc.List(ctx, author.UserId, "all", 0, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationComment, notifications[0].Type)
	require.NotNil(t, notifications[0].Actor)
	assert.Equal(t, "reader", notifications[0].Actor.Username)

	// Listing marks the returned page as seen.
	hasNew, err = svc.HasNew(ctx, author.UserId)
	require.NoError(t, err)
	assert.False(t, hasNew)
}

func TestHasNewIgnoresOwnActions(t *testing.T) {
	database := newMemoryDb()
	svc := NewNotificationService(database)
	ctx := context.Background()

	author := seedUser(t, database, "author")
	blog := seedBlog(t, database, "self-blog-1a2b3c4d", author.UserId)

	// The author commenting on their own blog must not light up the bell.
	require.NoError(t, svc.EmitComment(ctx, blog.BlogId, "comment-1", author.UserId, author.UserId))

	hasNew, err := svc.HasNew(ctx, author.UserId)
	require.NoError(t, err)
	assert.False(t, hasNew)
}

func TestNotificationTypeFilter(t *testing.T) {
	database := newMemoryDb()
	svc := NewNotificationService(database)
	ctx := context.Background()

	author := seedUser(t, database, "author")
	reader := seedUser(t, database, "reader")
	blog := seedBlog(t, database, "filter-blog-1a2b3c4d", author.UserId)

	require.NoError(t, svc.EmitLike(ctx, blog.BlogId, reader.UserId))
	require.NoError(t, svc.EmitComment(ctx, blog.BlogId, "comment-1", reader.UserId, author.UserId))

	all, err := svc.Count(ctx, author.UserId, "all")
	require.NoError(t, err)
	assert.Equal(t, int64(2), all)

	likes, err := svc.Count(ctx, author.UserId, models.NotificationLike)
	require.NoError(t, err)
	assert.Equal(t, int64(1), likes)

	comments, err := svc.List(ctx, author.UserId, models.NotificationComment, 0, 10)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "comment-1", comments[0].Comment)
}

func TestReplyNotificationCarriesContext(t *testing.T) {
	database := newMemoryDb()
	svc := NewNotificationService(database)
	ctx := context.Background()

	author := seedUser(t, database, "author")
	reader := seedUser(t, database, "reader")
	blog := seedBlog(t, database, "reply-blog-1a2b3c4d", author.UserId)

	require.NoError(t, svc.EmitReply(ctx, blog.BlogId, "reply-1", author.UserId, reader.UserId, "parent-1"))

	notifications, err := svc.List(ctx, reader.UserId, models.NotificationReply, 0, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, "reply-1", notifications[0].Reply)
	assert.Equal(t, "parent-1", notifications[0].RepliedOnComment)
}
