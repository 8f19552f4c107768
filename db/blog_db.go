package db

import (
	"context"

	"github.com/tranphattrien/easycode-server/apperr"
	"github.com/tranphattrien/easycode-server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// BlogDb is the Mongo-backed Database implementation. One instance is
// opened at startup and closed at shutdown; repositories are cheap
// per-call views over its collections.
type BlogDb struct {
	client *mongo.Client
	db     *mongo.Database
}

func Connect(ctx context.Context, uri, dbName string) (*BlogDb, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "failed connecting database", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "failed pinging database", err)
	}

	d := &BlogDb{client: client, db: client.Database(dbName)}
	if err := d.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return d, nil
}

// ensureIndexes makes the store itself enforce like-notification
// uniqueness: one live like record per (blog, actor), so the upsert in
// UpsertLike cannot double-insert even under a concurrent race.
func (d *BlogDb) ensureIndexes(ctx context.Context) error {
	likeIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "type", Value: 1},
			{Key: "blog", Value: 1},
			{Key: "user", Value: 1},
		},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"type": models.NotificationLike}),
	}
	if _, err := d.db.Collection("notifications").Indexes().CreateOne(ctx, likeIndex); err != nil {
		return apperr.Wrap(apperr.Upstream, "failed creating notification indexes", err)
	}
	return nil
}

func (d *BlogDb) User() UserRepository {
	return &MongoUserRepository{repository[models.UserModel]{col: d.db.Collection("users")}}
}

func (d *BlogDb) Blog() BlogRepository {
	return &MongoBlogRepository{repository[models.BlogModel]{col: d.db.Collection("blogs")}}
}

func (d *BlogDb) Comment() CommentRepository {
	return &MongoCommentRepository{repository[models.CommentModel]{col: d.db.Collection("comments")}}
}

func (d *BlogDb) Notification() NotificationRepository {
	return &MongoNotificationRepository{repository[models.NotificationModel]{col: d.db.Collection("notifications")}}
}

func (d *BlogDb) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}
