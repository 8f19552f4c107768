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
	"github.com/tranphattrien/easycode-server/models"
	"go.uber.org/zap"
)

const maxTags = 10
const maxDescriptionLength = 200

// BlogService orchestrates blog create/update/read/delete and defers
// comment and like side effects to the comment and notification
// services.
type BlogService struct {
	db            db.Database
	notifications *NotificationService
}

func NewBlogService(database db.Database, notifications *NotificationService) *BlogService {
	return &BlogService{db: database, notifications: notifications}
}

type BlogInput struct {
	// Id is empty for new blogs; a non-empty value updates the existing
	// blog in place without counter side effects.
	Id          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"des"`
	Banner      string             `json:"banner"`
	Content     models.BlogContent `json:"content"`
	Tags        []string           `json:"tags"`
	Draft       bool               `json:"draft"`
}

type BlogResponse struct {
	BlogId      string               `json:"blog_id"`
	Title       string               `json:"title"`
	Description string               `json:"des"`
	Banner      string               `json:"banner"`
	Content     []models.BlogContent `json:"content,omitempty"`
	Tags        []string             `json:"tags"`
	Activity    models.BlogActivity  `json:"activity"`
	Draft       bool                 `json:"draft"`
	PublishedAt time.Time            `json:"publishedAt"`
	AuthorInfo  *models.AuthorInfo   `json:"author"`
}

// CreateOrUpdate validates and persists a blog. Drafts only need a
// title; publishing enforces the full field set. Author counters move
// only when a blog first becomes published.
func (s *BlogService) CreateOrUpdate(ctx context.Context, authorId string, input BlogInput) (string, error) {
	if len(strings.TrimSpace(input.Title)) == 0 {
		return "", apperr.New(apperr.Validation, "You must provide a title")
	}

	tags := extensions.NormalizeTags(input.Tags)
	if !input.Draft {
		if len(input.Description) == 0 || len(input.Description) > maxDescriptionLength {
			return "", apperr.Newf(apperr.Validation, "You must provide blog description under %d characters", maxDescriptionLength)
		}
		if len(input.Banner) == 0 {
			return "", apperr.New(apperr.Validation, "You must provide blog banner to publish it")
		}
		if len(input.Content.Blocks) == 0 {
			return "", apperr.New(apperr.Validation, "There must be some blog content to publish it")
		}
		if len(tags) == 0 || len(tags) > maxTags {
			return "", apperr.Newf(apperr.Validation, "Provide tags in order to publish the blog, maximum %d", maxTags)
		}
	}

	if len(input.Id) > 0 {
		return s.update(ctx, authorId, input, tags)
	}
	return s.create(ctx, authorId, input, tags)
}

func (s *BlogService) create(ctx context.Context, authorId string, input BlogInput, tags []string) (string, error) {
	blog := &models.BlogModel{
		BlogId:      extensions.MakeBlogId(input.Title),
		Title:       input.Title,
		Description: input.Description,
		Banner:      input.Banner,
		Content:     []models.BlogContent{input.Content},
		Tags:        tags,
		Author:      authorId,
		Comments:    []string{},
		Draft:       input.Draft,
		PublishedAt: time.Now(),
	}

	if err := s.db.Blog().Save(ctx, blog); err != nil {
		return "", err
	}

	postsDelta := int64(1)
	if input.Draft {
		postsDelta = 0
	}
	if err := s.db.User().AttachBlog(ctx, authorId, blog.BlogId, postsDelta); err != nil {
		logger.Error("Failed updating author post counters", zap.String("author", authorId), zap.Error(err))
		return blog.BlogId, apperr.Wrap(apperr.Upstream, "blog created but author update failed", err)
	}
	return blog.BlogId, nil
}

func (s *BlogService) update(ctx context.Context, authorId string, input BlogInput, tags []string) (string, error) {
	existing, err := s.db.Blog().FindOneById(ctx, input.Id)
	if err != nil {
		return "", err
	}
	if existing.Author != authorId {
		return "", apperr.New(apperr.Authorization, "You can not edit this blog")
	}

	publishing := existing.Draft && !input.Draft

	// The edit sets only the authored fields; counters and the root
	// comment list keep moving through their own atomic updates.
	edit := db.BlogEdit{
		Title:       input.Title,
		Description: input.Description,
		Banner:      input.Banner,
		Content:     []models.BlogContent{input.Content},
		Tags:        tags,
		Draft:       input.Draft,
	}
	if publishing {
		now := time.Now()
		edit.PublishedAt = &now
	}

	if err := s.db.Blog().Edit(ctx, input.Id, edit); err != nil {
		return "", err
	}

	if publishing {
		if err := s.db.User().IncTotalPosts(ctx, authorId, 1); err != nil {
			logger.Error("Failed updating author post counters", zap.String("author", authorId), zap.Error(err))
			return existing.BlogId, apperr.Wrap(apperr.Upstream, "blog updated but author update failed", err)
		}
	}
	return existing.BlogId, nil
}

// Get serves one blog. Outside edit mode it counts the read on the
// blog and on its author, each as one atomic increment.
func (s *BlogService) Get(ctx context.Context, blogId, mode string, asDraft bool) (*BlogResponse, error) {
	blog, err := s.db.Blog().FindOneById(ctx, blogId)
	if err != nil {
		return nil, err
	}
	if blog.Draft && !asDraft {
		return nil, apperr.New(apperr.Validation, "You can not access draft blogs")
	}

	if mode != "edit" {
		if err := s.db.Blog().IncReads(ctx, blogId, 1); err != nil {
			logger.Error("Failed incrementing blog reads", zap.String("blog", blogId), zap.Error(err))
		} else {
			blog.Activity.TotalReads++
		}
		if err := s.db.User().IncTotalReads(ctx, blog.Author, 1); err != nil {
			logger.Error("Failed incrementing author reads", zap.String("author", blog.Author), zap.Error(err))
		}
	}

	return s.shape(ctx, blog), nil
}

func (s *BlogService) Latest(ctx context.Context, skip, limit int64) ([]BlogResponse, error) {
	blogs, err := s.db.Blog().Latest(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	return s.shapeAll(ctx, blogs), nil
}

func (s *BlogService) LatestCount(ctx context.Context) (int64, error) {
	return s.db.Blog().Count(ctx, db.BlogFilter{})
}

func (s *BlogService) Trending(ctx context.Context, limit int64) ([]BlogResponse, error) {
	blogs, err := s.db.Blog().Trending(ctx, limit)
	if err != nil {
		return nil, err
	}
	return s.shapeAll(ctx, blogs), nil
}

func (s *BlogService) Search(ctx context.Context, filter db.BlogFilter, skip, limit int64) ([]BlogResponse, error) {
	filter.Tag = strings.ToLower(filter.Tag)
	blogs, err := s.db.Blog().Search(ctx, filter, skip, limit)
	if err != nil {
		return nil, err
	}
	return s.shapeAll(ctx, blogs), nil
}

func (s *BlogService) SearchCount(ctx context.Context, filter db.BlogFilter) (int64, error) {
	filter.Tag = strings.ToLower(filter.Tag)
	return s.db.Blog().Count(ctx, filter)
}

// Like toggles the actor's like. The caller states the current liked
// state; the notification record stays the source of truth for it.
func (s *BlogService) Like(ctx context.Context, blogId, userId string, wasLiked bool) error {
	delta := int64(1)
	if wasLiked {
		delta = -1
	}
	if err := s.db.Blog().IncLikes(ctx, blogId, delta); err != nil {
		return err
	}

	if wasLiked {
		return s.notifications.RetractLike(ctx, blogId, userId)
	}
	return s.notifications.EmitLike(ctx, blogId, userId)
}

// Delete removes a blog with everything hanging off it: comments,
// notifications and the author's blog reference.
func (s *BlogService) Delete(ctx context.Context, blogId, requesterId string) error {
	blog, err := s.db.Blog().FindOneById(ctx, blogId)
	if err != nil {
		return err
	}
	if blog.Author != requesterId {
		return apperr.New(apperr.Authorization, "You can not delete this blog")
	}

	if err := s.db.Blog().Delete(ctx, blogId); err != nil {
		return err
	}

	var stepErr error
	if err := s.db.Comment().DeleteByBlog(ctx, blogId); err != nil {
		logger.Error("Failed deleting blog comments", zap.String("blog", blogId), zap.Error(err))
		stepErr = err
	}
	if err := s.db.Notification().DeleteByBlog(ctx, blogId); err != nil {
		logger.Error("Failed deleting blog notifications", zap.String("blog", blogId), zap.Error(err))
		stepErr = err
	}

	postsDelta := int64(-1)
	if blog.Draft {
		postsDelta = 0
	}
	if err := s.db.User().DetachBlog(ctx, blog.Author, blogId, postsDelta); err != nil {
		logger.Error("Failed updating author post counters", zap.String("author", blog.Author), zap.Error(err))
		stepErr = err
	}

	if stepErr != nil {
		return apperr.Wrap(apperr.Upstream, "blog deleted but a follow-up cleanup failed", stepErr)
	}
	return nil
}

func (s *BlogService) shape(ctx context.Context, blog *models.BlogModel) *BlogResponse {
	response := &BlogResponse{}
	copier.Copy(response, blog)

	author, err := extensions.GetAuthorInfo(ctx, s.db, blog.Author)
	if err != nil {
		logger.Warn("Failed attaching blog author", zap.String("author", blog.Author), zap.Error(err))
	} else {
		response.AuthorInfo = author
	}
	return response
}

func (s *BlogService) shapeAll(ctx context.Context, blogs []models.BlogModel) []BlogResponse {
	responses := make([]BlogResponse, 0, len(blogs))
	for i := range blogs {
		// Listings do not carry the full content payload.
		blogs[i].Content = nil
		responses = append(responses, *s.shape(ctx, &blogs[i]))
	}
	return responses
}
