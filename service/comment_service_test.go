package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tranphattrien/easycode-server/apperr"
	"github.com/tranphattrien/easycode-server/db/memory"
	"github.com/tranphattrien/easycode-server/models"
)

type commentFixture struct {
	db        *memory.MemoryDb
	comments  *CommentService
	author    *models.UserModel
	commenter *models.UserModel
	blog      *models.BlogModel
}

func newCommentFixture(t *testing.T) *commentFixture {
	database := newMemoryDb()
	notifications := NewNotificationService(database)
	comments := NewCommentService(database, notifications, disabledMail())

	author := seedUser(t, database, "author")
	commenter := seedUser(t, database, "commenter")
	blog := seedBlog(t, database, "seed-blog-1ab2c3d4", author.UserId)

	return &commentFixture{
		db:        database,
		comments:  comments,
		author:    author,
		commenter: commenter,
		blog:      blog,
	}
}

func (f *commentFixture) activity(t *testing.T) models.BlogActivity {
	t.Helper()
	blog, err := f.db.Blog().FindOneById(context.Background(), f.blog.BlogId)
	require.NoError(t, err)
	return blog.Activity
}

func TestAddRootComment(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()

	comment, err := f.comments.Add(ctx, f.blog.BlogId, f.commenter.UserId, "Nice writeup!", "")
	require.NoError(t, err)
	require.NotEmpty(t, comment.CommentId)
	assert.False(t, comment.IsReply)
	assert.Equal(t, f.author.UserId, comment.BlogAuthor)

	activity := f.activity(t)
	assert.Equal(t, int64(1), activity.TotalComments)
	assert.Equal(t, int64(1), activity.TotalParentComments)

	blog, err := f.db.Blog().FindOneById(ctx, f.blog.BlogId)
	require.NoError(t, err)
	assert.Contains(t, blog.Comments, comment.CommentId)

	// The blog author is notified about the new comment.
	count, err := f.db.Notification().Count(ctx, f.author.UserId, models.NotificationComment)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestAddReply(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()

	root, err := f.comments.Add(ctx, f.blog.BlogId, f.commenter.UserId, "Nice writeup!", "")
	require.NoError(t, err)
	reply, err := f.comments.Add(ctx, f.blog.BlogId, f.author.UserId, "Thanks!", root.CommentId)
	require.NoError(t, err)

	assert.True(t, reply.IsReply)
	assert.Equal(t, root.CommentId, reply.Parent)

	// Replies move total_comments but never total_parent_comments, and
	// stay out of the blog's root comment list.
	activity := f.activity(t)
	assert.Equal(t, int64(2), activity.TotalComments)
	assert.Equal(t, int64(1), activity.TotalParentComments)

	blog, err := f.db.Blog().FindOneById(ctx, f.blog.BlogId)
	require.NoError(t, err)
	assert.NotContains(t, blog.Comments, reply.CommentId)

	parent, err := f.db.Comment().FindOneById(ctx, root.CommentId)
	require.NoError(t, err)
	assert.Contains(t, parent.Children, reply.CommentId)

	// The parent comment's author is notified, not the blog author.
	count, err := f.db.Notification().Count(ctx, f.commenter.UserId, models.NotificationReply)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestAddCommentValidation(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()

	_, err := f.comments.Add(ctx, f.blog.BlogId, f.commenter.UserId, "   ", "")
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	_, err = f.comments.Add(ctx, "missing-blog", f.commenter.UserId, "hello", "")
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestReplyMustStayOnSameBlog(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()

	other := seedBlog(t, f.db, "other-blog-9z8y7x6w", f.author.UserId)
	root, err := f.comments.Add(ctx, f.blog.BlogId, f.commenter.UserId, "Nice writeup!", "")
	require.NoError(t, err)

	_, err = f.comments.Add(ctx, other.BlogId, f.author.UserId, "Wrong thread", root.CommentId)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestDeleteCascadesThroughDescendants(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()

	root, err := f.comments.Add(ctx, f.blog.BlogId, f.commenter.UserId, "root", "")
	require.NoError(t, err)
	replyA, err := f.comments.Add(ctx, f.blog.BlogId, f.author.UserId, "reply a", root.CommentId)
	require.NoError(t, err)
	_, err = f.comments.Add(ctx, f.blog.BlogId, f.commenter.UserId, "reply b", root.CommentId)
	require.NoError(t, err)
	nested, err := f.comments.Add(ctx, f.blog.BlogId, f.commenter.UserId, "nested", replyA.CommentId)
	require.NoError(t, err)

	require.Equal(t, int64(4), f.activity(t).TotalComments)

	require.NoError(t, f.comments.Delete(ctx, root.CommentId, f.commenter.UserId))

	// Root and all three descendants are gone.
	for _, id := range []string{root.CommentId, replyA.CommentId, nested.CommentId} {
		_, err := f.db.Comment().FindOneById(ctx, id)
		assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
	}

	activity := f.activity(t)
	assert.Equal(t, int64(0), activity.TotalComments)
	assert.Equal(t, int64(0), activity.TotalParentComments)

	blog, err := f.db.Blog().FindOneById(ctx, f.blog.BlogId)
	require.NoError(t, err)
	assert.Empty(t, blog.Comments)

	// Every notification hanging off the subtree is retracted.
	for _, recipient := range []string{f.author.UserId, f.commenter.UserId} {
		count, err := f.db.Notification().Count(ctx, recipient, "all")
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	}
}

func TestDeleteReplyKeepsParent(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()

	root, err := f.comments.Add(ctx, f.blog.BlogId, f.commenter.UserId, "root", "")
	require.NoError(t, err)
	reply, err := f.comments.Add(ctx, f.blog.BlogId, f.author.UserId, "reply", root.CommentId)
	require.NoError(t, err)

	require.NoError(t, f.comments.Delete(ctx, reply.CommentId, f.author.UserId))

	activity := f.activity(t)
	assert.Equal(t, int64(1), activity.TotalComments)
	assert.Equal(t, int64(1), activity.TotalParentComments)

	parent, err := f.db.Comment().FindOneById(ctx, root.CommentId)
	require.NoError(t, err)
	assert.NotContains(t, parent.Children, reply.CommentId)
}

func TestDeleteAuthorization(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()

	stranger := seedUser(t, f.db, "stranger")
	comment, err := f.comments.Add(ctx, f.blog.BlogId, f.commenter.UserId, "root", "")
	require.NoError(t, err)

	err = f.comments.Delete(ctx, comment.CommentId, stranger.UserId)
	assert.Equal(t, apperr.Authorization, apperr.KindOf(err))

	// The blog author may delete anyone's comment on their blog.
	require.NoError(t, f.comments.Delete(ctx, comment.CommentId, f.author.UserId))
}

func TestRootCommentPagination(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()

	// Seed with explicit, strictly increasing timestamps so the
	// newest-first ordering is deterministic.
	base := time.Now()
	for i := 0; i < 7; i++ {
		comment := &models.CommentModel{
			BlogId:      f.blog.BlogId,
			BlogAuthor:  f.author.UserId,
			Comment:     fmt.Sprintf("comment %d", i),
			Children:    []string{},
			CommentedBy: f.commenter.UserId,
			CommentedAt: base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, f.db.Comment().Save(ctx, comment))
	}

	first, err := f.comments.ListRoot(ctx, f.blog.BlogId, 0, 5)
	require.NoError(t, err)
	second, err := f.comments.ListRoot(ctx, f.blog.BlogId, 5, 5)
	require.NoError(t, err)

	require.Len(t, first, 5)
	require.Len(t, second, 2)

	seen := map[string]bool{}
	for _, c := range append(first, second...) {
		assert.False(t, seen[c.CommentId], "pages must be disjoint")
		seen[c.CommentId] = true
	}

	// Newest first across the page boundary.
	assert.True(t, first[0].CommentedAt.After(second[len(second)-1].CommentedAt))
}

func TestListRepliesRequiresParent(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()

	_, err := f.comments.ListReplies(ctx, "missing-comment", 0, 5)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	root, err := f.comments.Add(ctx, f.blog.BlogId, f.commenter.UserId, "root", "")
	require.NoError(t, err)
	reply, err := f.comments.Add(ctx, f.blog.BlogId, f.author.UserId, "reply", root.CommentId)
	require.NoError(t, err)

	replies, err := f.comments.ListReplies(ctx, root.CommentId, 0, 5)
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, reply.CommentId, replies[0].CommentId)
	require.NotNil(t, replies[0].Author)
	assert.Equal(t, f.author.PersonalInfo.Username, replies[0].Author.Username)
}
