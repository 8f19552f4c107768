// Package memory implements db.Database against process-local maps.
// It exists for tests and local development without a Mongo instance;
// behavior mirrors the Mongo repositories, including newest-first
// ordering and like-notification uniqueness.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tranphattrien/easycode-server/apperr"
	"github.com/tranphattrien/easycode-server/db"
	"github.com/tranphattrien/easycode-server/models"
)

type MemoryDb struct {
	mu            sync.RWMutex
	users         map[string]*models.UserModel
	blogs         map[string]*models.BlogModel
	comments      map[string]*models.CommentModel
	notifications map[string]*models.NotificationModel
}

func New() *MemoryDb {
	return &MemoryDb{
		users:         make(map[string]*models.UserModel),
		blogs:         make(map[string]*models.BlogModel),
		comments:      make(map[string]*models.CommentModel),
		notifications: make(map[string]*models.NotificationModel),
	}
}

func (d *MemoryDb) User() db.UserRepository                 { return &userRepository{d} }
func (d *MemoryDb) Blog() db.BlogRepository                 { return &blogRepository{d} }
func (d *MemoryDb) Comment() db.CommentRepository           { return &commentRepository{d} }
func (d *MemoryDb) Notification() db.NotificationRepository { return &notificationRepository{d} }
func (d *MemoryDb) Close(ctx context.Context) error         { return nil }

var errNotFound = apperr.New(apperr.NotFound, "document not found")

// ---- users ----

type userRepository struct{ d *MemoryDb }

func (r *userRepository) Save(ctx context.Context, user *models.UserModel) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	id := user.Id()
	clone := *user
	r.d.users[id] = &clone
	return nil
}

func (r *userRepository) FindOneById(ctx context.Context, id string) (*models.UserModel, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	user, ok := r.d.users[id]
	if !ok {
		return nil, errNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.UserModel, error) {
	return r.findBy(func(u *models.UserModel) bool { return u.PersonalInfo.Email == email })
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.UserModel, error) {
	return r.findBy(func(u *models.UserModel) bool { return u.PersonalInfo.Username == username })
}

func (r *userRepository) findBy(match func(*models.UserModel) bool) (*models.UserModel, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	for _, user := range r.d.users {
		if match(user) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, errNotFound
}

func (r *userRepository) IsUsernameTaken(ctx context.Context, username string) (bool, error) {
	_, err := r.FindByUsername(ctx, username)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (r *userRepository) Search(ctx context.Context, query string, limit int64) ([]models.UserModel, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	results := []models.UserModel{}
	for _, user := range r.d.users {
		if strings.Contains(strings.ToLower(user.PersonalInfo.Username), strings.ToLower(query)) {
			results = append(results, *user)
			if int64(len(results)) == limit {
				break
			}
		}
	}
	return results, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id, username, bio string, links models.SocialLinks) error {
	return r.update(id, func(u *models.UserModel) {
		u.PersonalInfo.Username = username
		u.PersonalInfo.Bio = bio
		u.SocialLinks = links
	})
}

func (r *userRepository) SetProfileImg(ctx context.Context, id, url string) error {
	return r.update(id, func(u *models.UserModel) { u.PersonalInfo.ProfileImg = url })
}

func (r *userRepository) SetPassword(ctx context.Context, id, passwordHash string) error {
	return r.update(id, func(u *models.UserModel) { u.PersonalInfo.Password = passwordHash })
}

func (r *userRepository) SetActive(ctx context.Context, id string) error {
	return r.update(id, func(u *models.UserModel) { u.PersonalInfo.Active = true })
}

func (r *userRepository) AttachBlog(ctx context.Context, userId, blogId string, postsDelta int64) error {
	return r.update(userId, func(u *models.UserModel) {
		u.Blogs = append(u.Blogs, blogId)
		u.AccountInfo.TotalPosts += postsDelta
	})
}

func (r *userRepository) DetachBlog(ctx context.Context, userId, blogId string, postsDelta int64) error {
	return r.update(userId, func(u *models.UserModel) {
		u.Blogs = remove(u.Blogs, blogId)
		u.AccountInfo.TotalPosts += postsDelta
	})
}

func (r *userRepository) IncTotalPosts(ctx context.Context, userId string, delta int64) error {
	return r.update(userId, func(u *models.UserModel) { u.AccountInfo.TotalPosts += delta })
}

func (r *userRepository) IncTotalReads(ctx context.Context, userId string, delta int64) error {
	return r.update(userId, func(u *models.UserModel) { u.AccountInfo.TotalReads += delta })
}

func (r *userRepository) update(id string, apply func(*models.UserModel)) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	user, ok := r.d.users[id]
	if !ok {
		return errNotFound
	}
	apply(user)
	return nil
}

// ---- blogs ----

type blogRepository struct{ d *MemoryDb }

func (r *blogRepository) Save(ctx context.Context, blog *models.BlogModel) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	clone := *blog
	r.d.blogs[blog.BlogId] = &clone
	return nil
}

func (r *blogRepository) FindOneById(ctx context.Context, blogId string) (*models.BlogModel, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	blog, ok := r.d.blogs[blogId]
	if !ok {
		return nil, errNotFound
	}
	clone := *blog
	clone.Comments = append([]string{}, blog.Comments...)
	return &clone, nil
}

func (r *blogRepository) Edit(ctx context.Context, blogId string, edit db.BlogEdit) error {
	return r.update(blogId, func(b *models.BlogModel) {
		b.Title = edit.Title
		b.Description = edit.Description
		b.Banner = edit.Banner
		b.Content = edit.Content
		b.Tags = edit.Tags
		b.Draft = edit.Draft
		if edit.PublishedAt != nil {
			b.PublishedAt = *edit.PublishedAt
		}
	})
}

func (r *blogRepository) Exists(ctx context.Context, blogId string) (bool, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	_, ok := r.d.blogs[blogId]
	return ok, nil
}

func (r *blogRepository) IncReads(ctx context.Context, blogId string, delta int64) error {
	return r.update(blogId, func(b *models.BlogModel) { b.Activity.TotalReads += delta })
}

func (r *blogRepository) IncLikes(ctx context.Context, blogId string, delta int64) error {
	return r.update(blogId, func(b *models.BlogModel) { b.Activity.TotalLikes += delta })
}

func (r *blogRepository) AddComment(ctx context.Context, blogId, commentId string, isRoot bool) error {
	return r.update(blogId, func(b *models.BlogModel) {
		b.Activity.TotalComments++
		if isRoot {
			b.Activity.TotalParentComments++
			b.Comments = append(b.Comments, commentId)
		}
	})
}

func (r *blogRepository) RemoveComment(ctx context.Context, blogId, commentId string, isRoot bool) error {
	return r.update(blogId, func(b *models.BlogModel) {
		b.Activity.TotalComments--
		if isRoot {
			b.Activity.TotalParentComments--
			b.Comments = remove(b.Comments, commentId)
		}
	})
}

func (r *blogRepository) Latest(ctx context.Context, skip, limit int64) ([]models.BlogModel, error) {
	return r.Search(ctx, db.BlogFilter{}, skip, limit)
}

func (r *blogRepository) Trending(ctx context.Context, limit int64) ([]models.BlogModel, error) {
	blogs := r.collect(db.BlogFilter{})
	sort.Slice(blogs, func(i, j int) bool {
		if blogs[i].Activity.TotalReads != blogs[j].Activity.TotalReads {
			return blogs[i].Activity.TotalReads > blogs[j].Activity.TotalReads
		}
		if blogs[i].Activity.TotalLikes != blogs[j].Activity.TotalLikes {
			return blogs[i].Activity.TotalLikes > blogs[j].Activity.TotalLikes
		}
		return blogs[i].PublishedAt.After(blogs[j].PublishedAt)
	})
	return page(blogs, 0, limit), nil
}

func (r *blogRepository) Search(ctx context.Context, filter db.BlogFilter, skip, limit int64) ([]models.BlogModel, error) {
	blogs := r.collect(filter)
	sort.Slice(blogs, func(i, j int) bool { return blogs[i].PublishedAt.After(blogs[j].PublishedAt) })
	return page(blogs, skip, limit), nil
}

func (r *blogRepository) Count(ctx context.Context, filter db.BlogFilter) (int64, error) {
	return int64(len(r.collect(filter))), nil
}

func (r *blogRepository) Delete(ctx context.Context, blogId string) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	if _, ok := r.d.blogs[blogId]; !ok {
		return errNotFound
	}
	delete(r.d.blogs, blogId)
	return nil
}

func (r *blogRepository) collect(filter db.BlogFilter) []models.BlogModel {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	results := []models.BlogModel{}
	for _, blog := range r.d.blogs {
		if blog.Draft != filter.Draft {
			continue
		}
		if len(filter.Tag) > 0 && !contains(blog.Tags, filter.Tag) {
			continue
		}
		if len(filter.Query) > 0 && !strings.Contains(strings.ToLower(blog.Title), strings.ToLower(filter.Query)) {
			continue
		}
		if len(filter.Author) > 0 && blog.Author != filter.Author {
			continue
		}
		if len(filter.EliminateBlog) > 0 && blog.BlogId == filter.EliminateBlog {
			continue
		}
		results = append(results, *blog)
	}
	return results
}

func (r *blogRepository) update(id string, apply func(*models.BlogModel)) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	blog, ok := r.d.blogs[id]
	if !ok {
		return errNotFound
	}
	apply(blog)
	return nil
}

// ---- comments ----

type commentRepository struct{ d *MemoryDb }

func (r *commentRepository) Save(ctx context.Context, comment *models.CommentModel) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	id := comment.Id()
	clone := *comment
	r.d.comments[id] = &clone
	return nil
}

func (r *commentRepository) FindOneById(ctx context.Context, id string) (*models.CommentModel, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	comment, ok := r.d.comments[id]
	if !ok {
		return nil, errNotFound
	}
	clone := *comment
	clone.Children = append([]string{}, comment.Children...)
	return &clone, nil
}

func (r *commentRepository) AddChild(ctx context.Context, parentId, childId string) error {
	return r.update(parentId, func(c *models.CommentModel) { c.Children = append(c.Children, childId) })
}

func (r *commentRepository) RemoveChild(ctx context.Context, parentId, childId string) error {
	return r.update(parentId, func(c *models.CommentModel) { c.Children = remove(c.Children, childId) })
}

func (r *commentRepository) RootComments(ctx context.Context, blogId string, skip, limit int64) ([]models.CommentModel, error) {
	return r.list(func(c *models.CommentModel) bool { return c.BlogId == blogId && !c.IsReply }, skip, limit)
}

func (r *commentRepository) Replies(ctx context.Context, parentId string, skip, limit int64) ([]models.CommentModel, error) {
	return r.list(func(c *models.CommentModel) bool { return c.Parent == parentId }, skip, limit)
}

func (r *commentRepository) list(match func(*models.CommentModel) bool, skip, limit int64) ([]models.CommentModel, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	results := []models.CommentModel{}
	for _, comment := range r.d.comments {
		if match(comment) {
			results = append(results, *comment)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].CommentedAt.After(results[j].CommentedAt) })
	return page(results, skip, limit), nil
}

func (r *commentRepository) Delete(ctx context.Context, id string) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	if _, ok := r.d.comments[id]; !ok {
		return errNotFound
	}
	delete(r.d.comments, id)
	return nil
}

func (r *commentRepository) DeleteByBlog(ctx context.Context, blogId string) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for id, comment := range r.d.comments {
		if comment.BlogId == blogId {
			delete(r.d.comments, id)
		}
	}
	return nil
}

func (r *commentRepository) CountByBlog(ctx context.Context, blogId string, rootOnly bool) (int64, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	var count int64
	for _, comment := range r.d.comments {
		if comment.BlogId == blogId && (!rootOnly || !comment.IsReply) {
			count++
		}
	}
	return count, nil
}

func (r *commentRepository) update(id string, apply func(*models.CommentModel)) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	comment, ok := r.d.comments[id]
	if !ok {
		return errNotFound
	}
	apply(comment)
	return nil
}

// ---- notifications ----

type notificationRepository struct{ d *MemoryDb }

func (r *notificationRepository) Save(ctx context.Context, notification *models.NotificationModel) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	id := notification.Id()
	clone := *notification
	r.d.notifications[id] = &clone
	return nil
}

func (r *notificationRepository) UpsertLike(ctx context.Context, blogId, actorId, recipientId string) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for _, n := range r.d.notifications {
		if n.Type == models.NotificationLike && n.Blog == blogId && n.User == actorId {
			return nil
		}
	}
	notification := &models.NotificationModel{
		NotificationId:  uuid.NewString(),
		Type:            models.NotificationLike,
		Blog:            blogId,
		NotificationFor: recipientId,
		User:            actorId,
		CreatedAt:       time.Now(),
	}
	r.d.notifications[notification.NotificationId] = notification
	return nil
}

func (r *notificationRepository) DeleteLike(ctx context.Context, blogId, actorId string) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for id, n := range r.d.notifications {
		if n.Type == models.NotificationLike && n.Blog == blogId && n.User == actorId {
			delete(r.d.notifications, id)
		}
	}
	return nil
}

func (r *notificationRepository) LikeExists(ctx context.Context, blogId, actorId string) (bool, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	for _, n := range r.d.notifications {
		if n.Type == models.NotificationLike && n.Blog == blogId && n.User == actorId {
			return true, nil
		}
	}
	return false, nil
}

func (r *notificationRepository) DeleteForComment(ctx context.Context, commentId string) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for id, n := range r.d.notifications {
		if n.Comment == commentId || n.Reply == commentId {
			delete(r.d.notifications, id)
		}
	}
	return nil
}

func (r *notificationRepository) DeleteByBlog(ctx context.Context, blogId string) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for id, n := range r.d.notifications {
		if n.Blog == blogId {
			delete(r.d.notifications, id)
		}
	}
	return nil
}

func (r *notificationRepository) List(ctx context.Context, recipientId, typeFilter string, skip, limit int64) ([]models.NotificationModel, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	results := []models.NotificationModel{}
	for _, n := range r.d.notifications {
		if matchNotification(n, recipientId, typeFilter) {
			results = append(results, *n)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].CreatedAt.After(results[j].CreatedAt) })
	return page(results, skip, limit), nil
}

func (r *notificationRepository) MarkSeen(ctx context.Context, ids []string) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for _, id := range ids {
		if n, ok := r.d.notifications[id]; ok {
			n.Seen = true
		}
	}
	return nil
}

func (r *notificationRepository) Count(ctx context.Context, recipientId, typeFilter string) (int64, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	var count int64
	for _, n := range r.d.notifications {
		if matchNotification(n, recipientId, typeFilter) {
			count++
		}
	}
	return count, nil
}

func (r *notificationRepository) HasUnseen(ctx context.Context, recipientId string) (bool, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	for _, n := range r.d.notifications {
		if n.NotificationFor == recipientId && !n.Seen && n.User != recipientId {
			return true, nil
		}
	}
	return false, nil
}

func matchNotification(n *models.NotificationModel, recipientId, typeFilter string) bool {
	if n.NotificationFor != recipientId {
		return false
	}
	if len(typeFilter) > 0 && typeFilter != "all" && n.Type != typeFilter {
		return false
	}
	return true
}

// ---- helpers ----

func remove(values []string, value string) []string {
	result := []string{}
	for _, v := range values {
		if v != value {
			result = append(result, v)
		}
	}
	return result
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

func page[T any](values []T, skip, limit int64) []T {
	if skip >= int64(len(values)) {
		return []T{}
	}
	values = values[skip:]
	if limit > 0 && limit < int64(len(values)) {
		values = values[:limit]
	}
	return values
}
