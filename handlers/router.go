// Package handlers exposes the REST surface. Every route speaks JSON;
// protected routes expect a Bearer session token.
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/tranphattrien/easycode-server/auth"
)

type Router struct {
	Auth          *AuthHandler
	Users         *UserHandler
	Blogs         *BlogHandler
	Comments      *CommentHandler
	Notifications *NotificationHandler
	Uploads       *UploadHandler
	Secret        string
}

func (r *Router) Register(engine *gin.Engine) {
	engine.POST("/signup", r.Auth.Signup)
	engine.POST("/activate-account", r.Auth.ActivateAccount)
	engine.POST("/signin", r.Auth.Signin)
	engine.POST("/google-auth", r.Auth.GoogleAuth)

	engine.POST("/search-users", r.Users.SearchUsers)
	engine.POST("/get-profile", r.Users.GetProfile)

	engine.POST("/get-blog", r.Blogs.GetBlog)
	engine.POST("/latest-blogs", r.Blogs.LatestBlogs)
	engine.POST("/all-latest-blogs-count", r.Blogs.AllLatestBlogsCount)
	engine.GET("/trending-blogs", r.Blogs.TrendingBlogs)
	engine.POST("/search-blogs", r.Blogs.SearchBlogs)
	engine.POST("/search-blogs-count", r.Blogs.SearchBlogsCount)

	engine.POST("/get-blog-comments", r.Comments.GetBlogComments)
	engine.POST("/get-replies", r.Comments.GetReplies)

	protected := engine.Group("/", auth.Required(r.Secret))
	protected.POST("/change-password", r.Auth.ChangePassword)
	protected.POST("/update-profile", r.Users.UpdateProfile)
	protected.POST("/update-profile-img", r.Users.UpdateProfileImg)

	protected.POST("/create-blog", r.Blogs.CreateBlog)
	protected.POST("/user-written-blogs", r.Blogs.UserWrittenBlogs)
	protected.POST("/user-written-blogs-count", r.Blogs.UserWrittenBlogsCount)
	protected.POST("/delete-blog", r.Blogs.DeleteBlog)
	protected.POST("/like-blog", r.Blogs.LikeBlog)
	protected.POST("/isliked-by-user", r.Blogs.IsLikedByUser)

	protected.POST("/add-comment", r.Comments.AddComment)
	protected.POST("/delete-comment", r.Comments.DeleteComment)

	protected.GET("/new-notification", r.Notifications.NewNotification)
	protected.POST("/notifications", r.Notifications.Notifications)
	protected.POST("/all-notifications-count", r.Notifications.AllNotificationsCount)

	protected.POST("/upload", r.Uploads.Upload)
}
