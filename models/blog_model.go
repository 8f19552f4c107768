package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// BlogContent holds one editor document: an ordered list of opaque
// content blocks as produced by the client-side editor.
type BlogContent struct {
	Time    int64    `bson:"time" json:"time"`
	Blocks  []bson.M `bson:"blocks" json:"blocks"`
	Version string   `bson:"version" json:"version"`
}

type BlogActivity struct {
	TotalReads          int64 `bson:"total_reads" json:"total_reads"`
	TotalLikes          int64 `bson:"total_likes" json:"total_likes"`
	TotalComments       int64 `bson:"total_comments" json:"total_comments"`
	TotalParentComments int64 `bson:"total_parent_comments" json:"total_parent_comments"`
}

type BlogModel struct {
	// BlogId doubles as the Mongo _id: a slug derived from the title
	// plus a random suffix, stable across edits.
	BlogId      string        `bson:"_id" json:"blog_id"`
	Title       string        `bson:"title" json:"title"`
	Description string        `bson:"description" json:"description"`
	Banner      string        `bson:"banner" json:"banner"`
	Content     []BlogContent `bson:"content" json:"content"`
	Tags        []string      `bson:"tags" json:"tags"`
	Author      string        `bson:"author" json:"author"`
	Activity    BlogActivity  `bson:"activity" json:"activity"`
	// Comments lists root comment ids only; replies live in their
	// parent comment's children list.
	Comments    []string  `bson:"comments" json:"-"`
	Draft       bool      `bson:"draft" json:"draft"`
	PublishedAt time.Time `bson:"publishedAt" json:"publishedAt"`
}
