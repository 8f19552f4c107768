package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	NotificationLike    = "like"
	NotificationComment = "comment"
	NotificationReply   = "reply"
)

type NotificationModel struct {
	NotificationId string `bson:"_id" json:"_id"`
	Type           string `bson:"type" json:"type"`
	Blog           string `bson:"blog" json:"blog"`
	// NotificationFor is the recipient user id.
	NotificationFor string `bson:"notification_for" json:"notification_for"`
	// User is the actor that triggered the notification.
	User             string    `bson:"user" json:"user"`
	Comment          string    `bson:"comment,omitempty" json:"comment,omitempty"`
	Reply            string    `bson:"reply,omitempty" json:"reply,omitempty"`
	RepliedOnComment string    `bson:"replied_on_comment,omitempty" json:"replied_on_comment,omitempty"`
	Seen             bool      `bson:"seen" json:"seen"`
	CreatedAt        time.Time `bson:"createdAt" json:"createdAt"`
}

func (n *NotificationModel) Id() string {
	if len(n.NotificationId) == 0 {
		n.NotificationId = uuid.NewString()
	}
	return n.NotificationId
}
