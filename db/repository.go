package db

import (
	"context"
	"errors"

	"github.com/tranphattrien/easycode-server/apperr"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// repository is the generic base embedded by every collection
// repository. Each method is a single atomic document operation; no
// method spans documents or collections.
type repository[T any] struct {
	col *mongo.Collection
}

func (r *repository[T]) Save(ctx context.Context, id string, model *T) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": id}, model, opts)
	if err != nil {
		return apperr.Wrap(apperr.Upstream, "failed saving document", err)
	}
	return nil
}

func (r *repository[T]) FindOneById(ctx context.Context, id string) (*T, error) {
	return r.FindOne(ctx, bson.M{"_id": id})
}

func (r *repository[T]) FindOne(ctx context.Context, filter bson.M) (*T, error) {
	var model T
	err := r.col.FindOne(ctx, filter).Decode(&model)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.Wrap(apperr.NotFound, "document not found", err)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "failed fetching document", err)
	}
	return &model, nil
}

func (r *repository[T]) Find(ctx context.Context, filter bson.M, sort bson.D, skip, limit int64) ([]T, error) {
	opts := options.Find().SetSkip(skip)
	if limit > 0 {
		opts.SetLimit(limit)
	}
	if len(sort) > 0 {
		opts.SetSort(sort)
	}

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "failed querying documents", err)
	}
	defer cursor.Close(ctx)

	results := []T{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "failed decoding documents", err)
	}
	return results, nil
}

func (r *repository[T]) Exists(ctx context.Context, filter bson.M) (bool, error) {
	count, err := r.col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, apperr.Wrap(apperr.Upstream, "failed checking existence", err)
	}
	return count > 0, nil
}

func (r *repository[T]) Count(ctx context.Context, filter bson.M) (int64, error) {
	count, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return 0, apperr.Wrap(apperr.Upstream, "failed counting documents", err)
	}
	return count, nil
}

// UpdateOne applies an atomic update ($inc/$push/$pull/$set) to one
// document matched by filter.
func (r *repository[T]) UpdateOne(ctx context.Context, filter, update bson.M) error {
	err := r.col.FindOneAndUpdate(ctx, filter, update).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperr.Wrap(apperr.NotFound, "document not found", err)
	}
	if err != nil {
		return apperr.Wrap(apperr.Upstream, "failed updating document", err)
	}
	return nil
}

func (r *repository[T]) DeleteOneById(ctx context.Context, id string) error {
	err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperr.Wrap(apperr.NotFound, "document not found", err)
	}
	if err != nil {
		return apperr.Wrap(apperr.Upstream, "failed deleting document", err)
	}
	return nil
}

func (r *repository[T]) DeleteMany(ctx context.Context, filter bson.M) error {
	if _, err := r.col.DeleteMany(ctx, filter); err != nil {
		return apperr.Wrap(apperr.Upstream, "failed deleting documents", err)
	}
	return nil
}
