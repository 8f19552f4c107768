package models

// AuthorInfo is the public projection of a user attached to blog,
// comment and notification responses.
type AuthorInfo struct {
	UserId     string `json:"_id"`
	Fullname   string `json:"fullname"`
	Username   string `json:"username"`
	ProfileImg string `json:"profile_img"`
}
