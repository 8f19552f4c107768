package service

import (
	"context"
	"time"

	"github.com/jinzhu/copier"
	"github.com/thoas/go-funk"
	"github.com/tranphattrien/easycode-server/db"
	"github.com/tranphattrien/easycode-server/extensions"
	"github.com/tranphattrien/easycode-server/logger"
	"github.com/tranphattrien/easycode-server/models"
	"go.uber.org/zap"
)

// NotificationService produces one notification record per interaction
// event and retracts it on the inverse action. Whether a user likes a
// blog is not stored anywhere else: it is derived from the existence of
// the like notification.
type NotificationService struct {
	db db.Database
}

func NewNotificationService(database db.Database) *NotificationService {
	return &NotificationService{db: database}
}

type NotificationResponse struct {
	NotificationId   string             `json:"_id"`
	Type             string             `json:"type"`
	Blog             string             `json:"blog"`
	Comment          string             `json:"comment,omitempty"`
	Reply            string             `json:"reply,omitempty"`
	RepliedOnComment string             `json:"replied_on_comment,omitempty"`
	Seen             bool               `json:"seen"`
	CreatedAt        time.Time          `json:"createdAt"`
	Actor            *models.AuthorInfo `json:"user"`
}

// EmitLike records a like for (blog, actor). Re-emitting when a live
// like notification already exists is a no-op, so concurrent double
// emits settle on exactly one record.
func (s *NotificationService) EmitLike(ctx context.Context, blogId, actorId string) error {
	blog, err := s.db.Blog().FindOneById(ctx, blogId)
	if err != nil {
		return err
	}
	return s.db.Notification().UpsertLike(ctx, blogId, actorId, blog.Author)
}

func (s *NotificationService) RetractLike(ctx context.Context, blogId, actorId string) error {
	return s.db.Notification().DeleteLike(ctx, blogId, actorId)
}

func (s *NotificationService) HasLiked(ctx context.Context, blogId, actorId string) (bool, error) {
	return s.db.Notification().LikeExists(ctx, blogId, actorId)
}

// EmitComment always creates a new record; comment notifications are
// not deduplicated.
func (s *NotificationService) EmitComment(ctx context.Context, blogId, commentId, actorId, recipientId string) error {
	notification := &models.NotificationModel{
		Type:            models.NotificationComment,
		Blog:            blogId,
		NotificationFor: recipientId,
		User:            actorId,
		Comment:         commentId,
		CreatedAt:       time.Now(),
	}
	return s.db.Notification().Save(ctx, notification)
}

// EmitReply notifies the author of the parent comment, not the blog
// author.
func (s *NotificationService) EmitReply(ctx context.Context, blogId, commentId, actorId, recipientId, repliedOnCommentId string) error {
	notification := &models.NotificationModel{
		Type:             models.NotificationReply,
		Blog:             blogId,
		NotificationFor:  recipientId,
		User:             actorId,
		Reply:            commentId,
		RepliedOnComment: repliedOnCommentId,
		CreatedAt:        time.Now(),
	}
	return s.db.Notification().Save(ctx, notification)
}

// RetractForComment removes every notification referencing the comment
// as either comment or reply. Invoked once per node during cascade
// delete.
func (s *NotificationService) RetractForComment(ctx context.Context, commentId string) error {
	return s.db.Notification().DeleteForComment(ctx, commentId)
}

// List returns one page of a user's notifications, newest first, and
// marks the returned records seen.
func (s *NotificationService) List(ctx context.Context, userId, typeFilter string, skip, limit int64) ([]NotificationResponse, error) {
	notifications, err := s.db.Notification().List(ctx, userId, typeFilter, skip, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]NotificationResponse, 0, len(notifications))
	for _, notification := range notifications {
		response := NotificationResponse{}
		copier.Copy(&response, &notification)

		actor, err := extensions.GetAuthorInfo(ctx, s.db, notification.User)
		if err != nil {
			logger.Warn("Failed attaching notification actor", zap.String("user", notification.User), zap.Error(err))
		} else {
			response.Actor = actor
		}
		responses = append(responses, response)
	}

	seenIds := funk.Map(notifications, func(n models.NotificationModel) string {
		return n.NotificationId
	}).([]string)
	if err := s.db.Notification().MarkSeen(ctx, seenIds); err != nil {
		logger.Error("Failed marking notifications seen", zap.Error(err))
	}

	return responses, nil
}

func (s *NotificationService) Count(ctx context.Context, userId, typeFilter string) (int64, error) {
	return s.db.Notification().Count(ctx, userId, typeFilter)
}

// HasNew reports whether any unseen notification exists for the user,
// ignoring the user's own actions.
func (s *NotificationService) HasNew(ctx context.Context, userId string) (bool, error) {
	return s.db.Notification().HasUnseen(ctx, userId)
}
