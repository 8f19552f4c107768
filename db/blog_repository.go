package db

import (
	"context"

	"github.com/tranphattrien/easycode-server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MongoBlogRepository struct {
	repository[models.BlogModel]
}

func (r *MongoBlogRepository) Save(ctx context.Context, blog *models.BlogModel) error {
	return r.repository.Save(ctx, blog.BlogId, blog)
}

// Edit sets only the author-editable fields. Replacing the whole
// document here would write back stale counters and a stale root
// comment list, erasing likes and comments committed since the read.
func (r *MongoBlogRepository) Edit(ctx context.Context, blogId string, edit BlogEdit) error {
	fields := bson.M{
		"title":       edit.Title,
		"description": edit.Description,
		"banner":      edit.Banner,
		"content":     edit.Content,
		"tags":        edit.Tags,
		"draft":       edit.Draft,
	}
	if edit.PublishedAt != nil {
		fields["publishedAt"] = *edit.PublishedAt
	}
	return r.UpdateOne(ctx, bson.M{"_id": blogId}, bson.M{"$set": fields})
}

func (r *MongoBlogRepository) Exists(ctx context.Context, blogId string) (bool, error) {
	return r.repository.Exists(ctx, bson.M{"_id": blogId})
}

func (r *MongoBlogRepository) IncReads(ctx context.Context, blogId string, delta int64) error {
	return r.UpdateOne(ctx, bson.M{"_id": blogId}, bson.M{"$inc": bson.M{"activity.total_reads": delta}})
}

func (r *MongoBlogRepository) IncLikes(ctx context.Context, blogId string, delta int64) error {
	return r.UpdateOne(ctx, bson.M{"_id": blogId}, bson.M{"$inc": bson.M{"activity.total_likes": delta}})
}

func (r *MongoBlogRepository) AddComment(ctx context.Context, blogId, commentId string, isRoot bool) error {
	update := bson.M{
		"$inc": bson.M{
			"activity.total_comments":        1,
			"activity.total_parent_comments": rootDelta(isRoot),
		},
	}
	if isRoot {
		update["$push"] = bson.M{"comments": commentId}
	}
	return r.UpdateOne(ctx, bson.M{"_id": blogId}, update)
}

func (r *MongoBlogRepository) RemoveComment(ctx context.Context, blogId, commentId string, isRoot bool) error {
	update := bson.M{
		"$inc": bson.M{
			"activity.total_comments":        -1,
			"activity.total_parent_comments": -rootDelta(isRoot),
		},
	}
	if isRoot {
		update["$pull"] = bson.M{"comments": commentId}
	}
	return r.UpdateOne(ctx, bson.M{"_id": blogId}, update)
}

func (r *MongoBlogRepository) Latest(ctx context.Context, skip, limit int64) ([]models.BlogModel, error) {
	sort := bson.D{{Key: "publishedAt", Value: -1}}
	return r.Find(ctx, bson.M{"draft": false}, sort, skip, limit)
}

func (r *MongoBlogRepository) Trending(ctx context.Context, limit int64) ([]models.BlogModel, error) {
	sort := bson.D{
		{Key: "activity.total_reads", Value: -1},
		{Key: "activity.total_likes", Value: -1},
		{Key: "publishedAt", Value: -1},
	}
	return r.Find(ctx, bson.M{"draft": false}, sort, 0, limit)
}

func (r *MongoBlogRepository) Search(ctx context.Context, filter BlogFilter, skip, limit int64) ([]models.BlogModel, error) {
	sort := bson.D{{Key: "publishedAt", Value: -1}}
	return r.Find(ctx, searchFilter(filter), sort, skip, limit)
}

func (r *MongoBlogRepository) Count(ctx context.Context, filter BlogFilter) (int64, error) {
	return r.repository.Count(ctx, searchFilter(filter))
}

func (r *MongoBlogRepository) Delete(ctx context.Context, blogId string) error {
	return r.DeleteOneById(ctx, blogId)
}

func searchFilter(filter BlogFilter) bson.M {
	query := bson.M{"draft": filter.Draft}
	if len(filter.Tag) > 0 {
		query["tags"] = filter.Tag
	}
	if len(filter.Query) > 0 {
		query["title"] = primitive.Regex{Pattern: filter.Query, Options: "i"}
	}
	if len(filter.Author) > 0 {
		query["author"] = filter.Author
	}
	if len(filter.EliminateBlog) > 0 {
		query["_id"] = bson.M{"$ne": filter.EliminateBlog}
	}
	return query
}

func rootDelta(isRoot bool) int64 {
	if isRoot {
		return 1
	}
	return 0
}
