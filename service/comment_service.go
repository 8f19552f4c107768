package service

import (
	"context"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"github.com/tranphattrien/easycode-server/apperr"
	"github.com/tranphattrien/easycode-server/db"
	"github.com/tranphattrien/easycode-server/extensions"
	"github.com/tranphattrien/easycode-server/logger"
	"github.com/tranphattrien/easycode-server/mail"
	"github.com/tranphattrien/easycode-server/models"
	"go.uber.org/zap"
)

// CommentService maintains the comment tree of a blog: parent/child
// links, the blog's denormalized counters and the notifications tied to
// each node. Composite operations are sequential single-document
// writes; the comment write always happens before the counter and
// notification writes, and a secondary failure is reported without
// rolling the comment back.
type CommentService struct {
	db            db.Database
	notifications *NotificationService
	mail          *mail.MailService
}

func NewCommentService(database db.Database, notifications *NotificationService, mailService *mail.MailService) *CommentService {
	return &CommentService{
		db:            database,
		notifications: notifications,
		mail:          mailService,
	}
}

type CommentResponse struct {
	CommentId   string             `json:"_id"`
	BlogId      string             `json:"blog_id"`
	Comment     string             `json:"comment"`
	Children    []string           `json:"children"`
	IsReply     bool               `json:"isReply"`
	Parent      string             `json:"parent,omitempty"`
	CommentedAt time.Time          `json:"commentedAt"`
	Author      *models.AuthorInfo `json:"commented_by"`
}

// Add creates a root comment, or a reply when replyingTo is set. The
// returned record is live even when a counter or notification update
// failed; such failures surface as an Upstream error alongside it.
func (s *CommentService) Add(ctx context.Context, blogId, userId, text, replyingTo string) (*models.CommentModel, error) {
	if len(strings.TrimSpace(text)) == 0 {
		return nil, apperr.New(apperr.Validation, "Write something to leave a comment...")
	}

	blog, err := s.db.Blog().FindOneById(ctx, blogId)
	if err != nil {
		return nil, err
	}

	var parent *models.CommentModel
	if len(replyingTo) > 0 {
		parent, err = s.db.Comment().FindOneById(ctx, replyingTo)
		if err != nil {
			return nil, err
		}
		if parent.BlogId != blogId {
			return nil, apperr.New(apperr.Validation, "Replied comment belongs to another blog")
		}
	}

	comment := &models.CommentModel{
		BlogId:      blogId,
		BlogAuthor:  blog.Author,
		Comment:     text,
		Children:    []string{},
		CommentedBy: userId,
		IsReply:     parent != nil,
		CommentedAt: time.Now(),
	}
	if parent != nil {
		comment.Parent = parent.CommentId
	}

	// Primary write. Everything after this point is best effort.
	if err := s.db.Comment().Save(ctx, comment); err != nil {
		return nil, err
	}

	var stepErr error
	if err := s.db.Blog().AddComment(ctx, blogId, comment.CommentId, parent == nil); err != nil {
		logger.Error("Failed updating blog comment counters", zap.String("blog", blogId), zap.Error(err))
		stepErr = err
	}

	if parent != nil {
		if err := s.db.Comment().AddChild(ctx, parent.CommentId, comment.CommentId); err != nil {
			logger.Error("Failed attaching reply to parent", zap.String("parent", parent.CommentId), zap.Error(err))
			stepErr = err
		}
		if err := s.notifications.EmitReply(ctx, blogId, comment.CommentId, userId, parent.CommentedBy, parent.CommentId); err != nil {
			logger.Error("Failed emitting reply notification", zap.Error(err))
			stepErr = err
		}
		s.notifyByEmail(ctx, parent.CommentedBy, userId, blog.Title, text)
	} else {
		if err := s.notifications.EmitComment(ctx, blogId, comment.CommentId, userId, blog.Author); err != nil {
			logger.Error("Failed emitting comment notification", zap.Error(err))
			stepErr = err
		}
		s.notifyByEmail(ctx, blog.Author, userId, blog.Title, text)
	}

	if stepErr != nil {
		return comment, apperr.Wrap(apperr.Upstream, "comment created but a follow-up update failed", stepErr)
	}
	return comment, nil
}

// Delete removes the comment and all of its descendants. Only the
// comment's author or the blog's author may delete it. The traversal
// uses an explicit work list so a pathological tree cannot exhaust the
// stack; sibling order is unspecified.
func (s *CommentService) Delete(ctx context.Context, commentId, requesterId string) error {
	root, err := s.db.Comment().FindOneById(ctx, commentId)
	if err != nil {
		return err
	}
	if requesterId != root.CommentedBy && requesterId != root.BlogAuthor {
		return apperr.New(apperr.Authorization, "You can not delete this comment")
	}

	var stepErr error
	pending := []string{commentId}
	for len(pending) > 0 {
		id := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		node, err := s.db.Comment().FindOneById(ctx, id)
		if err != nil {
			// Already gone; nothing to cascade from this node.
			if apperr.KindOf(err) == apperr.NotFound {
				continue
			}
			stepErr = err
			continue
		}
		pending = append(pending, node.Children...)

		if err := s.db.Comment().Delete(ctx, id); err != nil {
			logger.Error("Failed deleting comment", zap.String("comment", id), zap.Error(err))
			stepErr = err
			continue
		}

		// Each deleted node decrements total_comments exactly once;
		// only root deletions touch total_parent_comments.
		if err := s.db.Blog().RemoveComment(ctx, node.BlogId, id, !node.IsReply); err != nil {
			logger.Error("Failed updating blog comment counters", zap.String("blog", node.BlogId), zap.Error(err))
			stepErr = err
		}

		if node.IsReply {
			if err := s.db.Comment().RemoveChild(ctx, node.Parent, id); err != nil && apperr.KindOf(err) != apperr.NotFound {
				logger.Error("Failed detaching reply from parent", zap.String("parent", node.Parent), zap.Error(err))
				stepErr = err
			}
		}

		if err := s.notifications.RetractForComment(ctx, id); err != nil {
			logger.Error("Failed retracting comment notifications", zap.String("comment", id), zap.Error(err))
			stepErr = err
		}
	}

	if stepErr != nil {
		return apperr.Wrap(apperr.Upstream, "comment delete left follow-up updates incomplete", stepErr)
	}
	return nil
}

// ListRoot returns one page of a blog's root comments, newest first.
func (s *CommentService) ListRoot(ctx context.Context, blogId string, skip, limit int64) ([]CommentResponse, error) {
	comments, err := s.db.Comment().RootComments(ctx, blogId, skip, limit)
	if err != nil {
		return nil, err
	}
	return s.shapeComments(ctx, comments), nil
}

// ListReplies returns one page of a comment's replies, newest first.
func (s *CommentService) ListReplies(ctx context.Context, parentId string, skip, limit int64) ([]CommentResponse, error) {
	if _, err := s.db.Comment().FindOneById(ctx, parentId); err != nil {
		return nil, err
	}
	replies, err := s.db.Comment().Replies(ctx, parentId, skip, limit)
	if err != nil {
		return nil, err
	}
	return s.shapeComments(ctx, replies), nil
}

func (s *CommentService) shapeComments(ctx context.Context, comments []models.CommentModel) []CommentResponse {
	responses := make([]CommentResponse, 0, len(comments))
	for _, comment := range comments {
		response := CommentResponse{}
		copier.Copy(&response, &comment)

		author, err := extensions.GetAuthorInfo(ctx, s.db, comment.CommentedBy)
		if err != nil {
			logger.Warn("Failed attaching comment author", zap.String("user", comment.CommentedBy), zap.Error(err))
		} else {
			response.Author = author
		}
		responses = append(responses, response)
	}
	return responses
}

// notifyByEmail mails the interaction to the recipient. Self-comments
// and mail failures are silently skipped; email is a courtesy, not part
// of the consistency model.
func (s *CommentService) notifyByEmail(ctx context.Context, recipientId, actorId, blogTitle, commentText string) {
	if recipientId == actorId {
		return
	}
	recipient, err := s.db.User().FindOneById(ctx, recipientId)
	if err != nil {
		return
	}
	actor, err := s.db.User().FindOneById(ctx, actorId)
	if err != nil {
		return
	}
	s.mail.SendCommentNotification(
		recipient.PersonalInfo.Email,
		actor.PersonalInfo.Fullname,
		blogTitle,
		extensions.RenderCommentHTML(commentText),
	)
}
