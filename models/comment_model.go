package models

import (
	"time"

	"github.com/google/uuid"
)

type CommentModel struct {
	CommentId   string    `bson:"_id" json:"_id"`
	BlogId      string    `bson:"blog_id" json:"blog_id"`
	BlogAuthor  string    `bson:"blog_author" json:"blog_author"`
	Comment     string    `bson:"comment" json:"comment"`
	Children    []string  `bson:"children" json:"children"`
	CommentedBy string    `bson:"commented_by" json:"commented_by"`
	IsReply     bool      `bson:"isReply" json:"isReply"`
	Parent      string    `bson:"parent,omitempty" json:"parent,omitempty"`
	CommentedAt time.Time `bson:"commentedAt" json:"commentedAt"`
}

func (c *CommentModel) Id() string {
	if len(c.CommentId) == 0 {
		c.CommentId = uuid.NewString()
	}
	return c.CommentId
}
