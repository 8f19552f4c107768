package db

import (
	"context"
	"time"

	"github.com/tranphattrien/easycode-server/apperr"
	"github.com/tranphattrien/easycode-server/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoNotificationRepository struct {
	repository[models.NotificationModel]
}

func (r *MongoNotificationRepository) Save(ctx context.Context, notification *models.NotificationModel) error {
	return r.repository.Save(ctx, notification.Id(), notification)
}

// UpsertLike enforces (type=like, blog, user) uniqueness in a single
// atomic operation: a concurrent double-emit matches the same document
// and only the first insert materializes.
func (r *MongoNotificationRepository) UpsertLike(ctx context.Context, blogId, actorId, recipientId string) error {
	filter := likeFilter(blogId, actorId)
	update := bson.M{
		"$setOnInsert": bson.M{
			"_id":              uuid.NewString(),
			"notification_for": recipientId,
			"seen":             false,
			"createdAt":        time.Now(),
		},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := r.col.UpdateOne(ctx, filter, update, opts); err != nil {
		return apperr.Wrap(apperr.Upstream, "failed upserting like notification", err)
	}
	return nil
}

func (r *MongoNotificationRepository) DeleteLike(ctx context.Context, blogId, actorId string) error {
	return r.DeleteMany(ctx, likeFilter(blogId, actorId))
}

func (r *MongoNotificationRepository) LikeExists(ctx context.Context, blogId, actorId string) (bool, error) {
	return r.Exists(ctx, likeFilter(blogId, actorId))
}

func (r *MongoNotificationRepository) DeleteForComment(ctx context.Context, commentId string) error {
	filter := bson.M{"$or": bson.A{
		bson.M{"comment": commentId},
		bson.M{"reply": commentId},
	}}
	return r.DeleteMany(ctx, filter)
}

func (r *MongoNotificationRepository) DeleteByBlog(ctx context.Context, blogId string) error {
	return r.DeleteMany(ctx, bson.M{"blog": blogId})
}

func (r *MongoNotificationRepository) List(ctx context.Context, recipientId, typeFilter string, skip, limit int64) ([]models.NotificationModel, error) {
	sort := bson.D{{Key: "createdAt", Value: -1}}
	return r.Find(ctx, notificationFilter(recipientId, typeFilter), sort, skip, limit)
}

func (r *MongoNotificationRepository) MarkSeen(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	filter := bson.M{"_id": bson.M{"$in": ids}}
	if _, err := r.col.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"seen": true}}); err != nil {
		return apperr.Wrap(apperr.Upstream, "failed marking notifications seen", err)
	}
	return nil
}

func (r *MongoNotificationRepository) Count(ctx context.Context, recipientId, typeFilter string) (int64, error) {
	return r.repository.Count(ctx, notificationFilter(recipientId, typeFilter))
}

func (r *MongoNotificationRepository) HasUnseen(ctx context.Context, recipientId string) (bool, error) {
	filter := bson.M{
		"notification_for": recipientId,
		"seen":             false,
		"user":             bson.M{"$ne": recipientId},
	}
	return r.Exists(ctx, filter)
}

func likeFilter(blogId, actorId string) bson.M {
	return bson.M{
		"type": models.NotificationLike,
		"blog": blogId,
		"user": actorId,
	}
}

func notificationFilter(recipientId, typeFilter string) bson.M {
	filter := bson.M{"notification_for": recipientId}
	if len(typeFilter) > 0 && typeFilter != "all" {
		filter["type"] = typeFilter
	}
	return filter
}
