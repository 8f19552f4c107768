package models

import (
	"time"

	"github.com/google/uuid"
)

type PersonalInfo struct {
	Fullname   string `bson:"fullname" json:"fullname"`
	Email      string `bson:"email" json:"email,omitempty"`
	Password   string `bson:"password,omitempty" json:"-"`
	Username   string `bson:"username" json:"username"`
	Bio        string `bson:"bio" json:"bio"`
	ProfileImg string `bson:"profile_img" json:"profile_img"`
	Active     bool   `bson:"active" json:"-"`
}

type SocialLinks struct {
	Youtube   string `bson:"youtube" json:"youtube"`
	Instagram string `bson:"instagram" json:"instagram"`
	Facebook  string `bson:"facebook" json:"facebook"`
	Twitter   string `bson:"twitter" json:"twitter"`
	Github    string `bson:"github" json:"github"`
	Website   string `bson:"website" json:"website"`
}

type AccountInfo struct {
	TotalPosts int64 `bson:"total_posts" json:"total_posts"`
	TotalReads int64 `bson:"total_reads" json:"total_reads"`
}

type UserModel struct {
	UserId       string       `bson:"_id" json:"_id"`
	PersonalInfo PersonalInfo `bson:"personal_info" json:"personal_info"`
	SocialLinks  SocialLinks  `bson:"social_links" json:"social_links"`
	AccountInfo  AccountInfo  `bson:"account_info" json:"account_info"`
	GoogleAuth   bool         `bson:"google_auth" json:"google_auth"`
	Blogs        []string     `bson:"blogs" json:"-"`
	JoinedAt     time.Time    `bson:"joinedAt" json:"joinedAt"`
}

func (u *UserModel) Id() string {
	if len(u.UserId) == 0 {
		u.UserId = uuid.NewString()
	}
	return u.UserId
}
