package db

import (
	"context"
	"time"

	"github.com/tranphattrien/easycode-server/models"
)

// BlogFilter narrows blog listings and counts. Zero values mean "no
// constraint" except Draft, which is always applied.
type BlogFilter struct {
	Tag           string
	Query         string
	Author        string
	EliminateBlog string
	Draft         bool
}

type UserRepository interface {
	Save(ctx context.Context, user *models.UserModel) error
	FindOneById(ctx context.Context, id string) (*models.UserModel, error)
	FindByEmail(ctx context.Context, email string) (*models.UserModel, error)
	FindByUsername(ctx context.Context, username string) (*models.UserModel, error)
	IsUsernameTaken(ctx context.Context, username string) (bool, error)
	Search(ctx context.Context, query string, limit int64) ([]models.UserModel, error)
	UpdateProfile(ctx context.Context, id, username, bio string, links models.SocialLinks) error
	SetProfileImg(ctx context.Context, id, url string) error
	SetPassword(ctx context.Context, id, passwordHash string) error
	SetActive(ctx context.Context, id string) error
	AttachBlog(ctx context.Context, userId, blogId string, postsDelta int64) error
	DetachBlog(ctx context.Context, userId, blogId string, postsDelta int64) error
	IncTotalPosts(ctx context.Context, userId string, delta int64) error
	IncTotalReads(ctx context.Context, userId string, delta int64) error
}

// BlogEdit carries the author-editable fields of a blog. An edit
// touches these and nothing else; activity counters and the root
// comment list move only through their own atomic operations.
type BlogEdit struct {
	Title       string
	Description string
	Banner      string
	Content     []models.BlogContent
	Tags        []string
	Draft       bool
	// PublishedAt is set only when a draft is being published.
	PublishedAt *time.Time
}

type BlogRepository interface {
	Save(ctx context.Context, blog *models.BlogModel) error
	FindOneById(ctx context.Context, blogId string) (*models.BlogModel, error)
	Edit(ctx context.Context, blogId string, edit BlogEdit) error
	Exists(ctx context.Context, blogId string) (bool, error)
	IncReads(ctx context.Context, blogId string, delta int64) error
	IncLikes(ctx context.Context, blogId string, delta int64) error
	// AddComment appends a root comment to the blog's comment list and
	// bumps both counters; for replies only total_comments moves.
	AddComment(ctx context.Context, blogId, commentId string, isRoot bool) error
	RemoveComment(ctx context.Context, blogId, commentId string, isRoot bool) error
	Latest(ctx context.Context, skip, limit int64) ([]models.BlogModel, error)
	Trending(ctx context.Context, limit int64) ([]models.BlogModel, error)
	Search(ctx context.Context, filter BlogFilter, skip, limit int64) ([]models.BlogModel, error)
	Count(ctx context.Context, filter BlogFilter) (int64, error)
	Delete(ctx context.Context, blogId string) error
}

type CommentRepository interface {
	Save(ctx context.Context, comment *models.CommentModel) error
	FindOneById(ctx context.Context, id string) (*models.CommentModel, error)
	AddChild(ctx context.Context, parentId, childId string) error
	RemoveChild(ctx context.Context, parentId, childId string) error
	RootComments(ctx context.Context, blogId string, skip, limit int64) ([]models.CommentModel, error)
	Replies(ctx context.Context, parentId string, skip, limit int64) ([]models.CommentModel, error)
	Delete(ctx context.Context, id string) error
	DeleteByBlog(ctx context.Context, blogId string) error
	CountByBlog(ctx context.Context, blogId string, rootOnly bool) (int64, error)
}

type NotificationRepository interface {
	Save(ctx context.Context, notification *models.NotificationModel) error
	// UpsertLike creates the like notification for (blog, actor) unless
	// one already exists; re-emitting is a no-op.
	UpsertLike(ctx context.Context, blogId, actorId, recipientId string) error
	DeleteLike(ctx context.Context, blogId, actorId string) error
	LikeExists(ctx context.Context, blogId, actorId string) (bool, error)
	// DeleteForComment removes every notification whose comment or reply
	// field references the given comment id.
	DeleteForComment(ctx context.Context, commentId string) error
	DeleteByBlog(ctx context.Context, blogId string) error
	List(ctx context.Context, recipientId, typeFilter string, skip, limit int64) ([]models.NotificationModel, error)
	MarkSeen(ctx context.Context, ids []string) error
	Count(ctx context.Context, recipientId, typeFilter string) (int64, error)
	HasUnseen(ctx context.Context, recipientId string) (bool, error)
}

// Database is the handle services are constructed with. The Mongo
// implementation lives in this package; db/memory provides an
// in-process implementation for tests.
type Database interface {
	User() UserRepository
	Blog() BlogRepository
	Comment() CommentRepository
	Notification() NotificationRepository
	Close(ctx context.Context) error
}
