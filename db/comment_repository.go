package db

import (
	"context"

	"github.com/tranphattrien/easycode-server/models"
	"go.mongodb.org/mongo-driver/bson"
)

type MongoCommentRepository struct {
	repository[models.CommentModel]
}

func (r *MongoCommentRepository) Save(ctx context.Context, comment *models.CommentModel) error {
	return r.repository.Save(ctx, comment.Id(), comment)
}

func (r *MongoCommentRepository) AddChild(ctx context.Context, parentId, childId string) error {
	return r.UpdateOne(ctx, bson.M{"_id": parentId}, bson.M{"$push": bson.M{"children": childId}})
}

func (r *MongoCommentRepository) RemoveChild(ctx context.Context, parentId, childId string) error {
	return r.UpdateOne(ctx, bson.M{"_id": parentId}, bson.M{"$pull": bson.M{"children": childId}})
}

func (r *MongoCommentRepository) RootComments(ctx context.Context, blogId string, skip, limit int64) ([]models.CommentModel, error) {
	filter := bson.M{"blog_id": blogId, "isReply": false}
	sort := bson.D{{Key: "commentedAt", Value: -1}}
	return r.Find(ctx, filter, sort, skip, limit)
}

func (r *MongoCommentRepository) Replies(ctx context.Context, parentId string, skip, limit int64) ([]models.CommentModel, error) {
	filter := bson.M{"parent": parentId}
	sort := bson.D{{Key: "commentedAt", Value: -1}}
	return r.Find(ctx, filter, sort, skip, limit)
}

func (r *MongoCommentRepository) Delete(ctx context.Context, id string) error {
	return r.DeleteOneById(ctx, id)
}

func (r *MongoCommentRepository) DeleteByBlog(ctx context.Context, blogId string) error {
	return r.DeleteMany(ctx, bson.M{"blog_id": blogId})
}

func (r *MongoCommentRepository) CountByBlog(ctx context.Context, blogId string, rootOnly bool) (int64, error) {
	filter := bson.M{"blog_id": blogId}
	if rootOnly {
		filter["isReply"] = false
	}
	return r.Count(ctx, filter)
}
