package db

import (
	"context"

	"github.com/tranphattrien/easycode-server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MongoUserRepository struct {
	repository[models.UserModel]
}

func (r *MongoUserRepository) Save(ctx context.Context, user *models.UserModel) error {
	return r.repository.Save(ctx, user.Id(), user)
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*models.UserModel, error) {
	return r.FindOne(ctx, bson.M{"personal_info.email": email})
}

func (r *MongoUserRepository) FindByUsername(ctx context.Context, username string) (*models.UserModel, error) {
	return r.FindOne(ctx, bson.M{"personal_info.username": username})
}

func (r *MongoUserRepository) IsUsernameTaken(ctx context.Context, username string) (bool, error) {
	return r.Exists(ctx, bson.M{"personal_info.username": username})
}

func (r *MongoUserRepository) Search(ctx context.Context, query string, limit int64) ([]models.UserModel, error) {
	filter := bson.M{
		"personal_info.username": primitive.Regex{Pattern: query, Options: "i"},
	}
	return r.Find(ctx, filter, bson.D{}, 0, limit)
}

func (r *MongoUserRepository) UpdateProfile(ctx context.Context, id, username, bio string, links models.SocialLinks) error {
	update := bson.M{"$set": bson.M{
		"personal_info.username": username,
		"personal_info.bio":      bio,
		"social_links":           links,
	}}
	return r.UpdateOne(ctx, bson.M{"_id": id}, update)
}

func (r *MongoUserRepository) SetProfileImg(ctx context.Context, id, url string) error {
	return r.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"personal_info.profile_img": url}})
}

func (r *MongoUserRepository) SetPassword(ctx context.Context, id, passwordHash string) error {
	return r.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"personal_info.password": passwordHash}})
}

func (r *MongoUserRepository) SetActive(ctx context.Context, id string) error {
	return r.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"personal_info.active": true}})
}

func (r *MongoUserRepository) AttachBlog(ctx context.Context, userId, blogId string, postsDelta int64) error {
	update := bson.M{
		"$push": bson.M{"blogs": blogId},
		"$inc":  bson.M{"account_info.total_posts": postsDelta},
	}
	return r.UpdateOne(ctx, bson.M{"_id": userId}, update)
}

func (r *MongoUserRepository) DetachBlog(ctx context.Context, userId, blogId string, postsDelta int64) error {
	update := bson.M{
		"$pull": bson.M{"blogs": blogId},
		"$inc":  bson.M{"account_info.total_posts": postsDelta},
	}
	return r.UpdateOne(ctx, bson.M{"_id": userId}, update)
}

func (r *MongoUserRepository) IncTotalPosts(ctx context.Context, userId string, delta int64) error {
	return r.UpdateOne(ctx, bson.M{"_id": userId}, bson.M{"$inc": bson.M{"account_info.total_posts": delta}})
}

func (r *MongoUserRepository) IncTotalReads(ctx context.Context, userId string, delta int64) error {
	return r.UpdateOne(ctx, bson.M{"_id": userId}, bson.M{"$inc": bson.M{"account_info.total_reads": delta}})
}
