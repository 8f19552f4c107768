package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tranphattrien/easycode-server/apperr"
	"github.com/tranphattrien/easycode-server/auth"
	"github.com/tranphattrien/easycode-server/db"
	"github.com/tranphattrien/easycode-server/service"
)

const blogPageSize = 5
const trendingPageSize = 5

type BlogHandler struct {
	blogService         *service.BlogService
	notificationService *service.NotificationService
}

func NewBlogHandler(blogService *service.BlogService, notificationService *service.NotificationService) *BlogHandler {
	return &BlogHandler{blogService: blogService, notificationService: notificationService}
}

func (h *BlogHandler) CreateBlog(c *gin.Context) {
	var input service.BlogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, apperr.New(apperr.Validation, "Invalid request body"))
		return
	}

	blogId, err := h.blogService.CreateOrUpdate(c.Request.Context(), auth.UserId(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": blogId})
}

func (h *BlogHandler) GetBlog(c *gin.Context) {
	req := struct {
		BlogId string `json:"blog_id"`
		Mode   string `json:"mode"`
		Draft  bool   `json:"draft"`
	}{}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.Validation, "Invalid request body"))
		return
	}

	blog, err := h.blogService.Get(c.Request.Context(), req.BlogId, req.Mode, req.Draft)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blog": blog})
}

func (h *BlogHandler) LatestBlogs(c *gin.Context) {
	req := struct {
		Page int64 `json:"page"`
	}{}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.Validation, "Invalid request body"))
		return
	}

	blogs, err := h.blogService.Latest(c.Request.Context(), pageToSkip(req.Page, blogPageSize), blogPageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blogs": blogs})
}

func (h *BlogHandler) AllLatestBlogsCount(c *gin.Context) {
	count, err := h.blogService.LatestCount(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"totalDocs": count})
}

func (h *BlogHandler) TrendingBlogs(c *gin.Context) {
	blogs, err := h.blogService.Trending(c.Request.Context(), trendingPageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blogs": blogs})
}

type searchBlogsRequest struct {
	Tag           string `json:"tag"`
	Query         string `json:"query"`
	Author        string `json:"author"`
	Page          int64  `json:"page"`
	Limit         int64  `json:"limit"`
	EliminateBlog string `json:"eliminate_blog"`
}

func (r searchBlogsRequest) filter() db.BlogFilter {
	return db.BlogFilter{
		Tag:           r.Tag,
		Query:         r.Query,
		Author:        r.Author,
		EliminateBlog: r.EliminateBlog,
	}
}

func (h *BlogHandler) SearchBlogs(c *gin.Context) {
	var req searchBlogsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.Validation, "Invalid request body"))
		return
	}

	limit := defaultLimit(req.Limit, blogPageSize)
	blogs, err := h.blogService.Search(c.Request.Context(), req.filter(), pageToSkip(req.Page, limit), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blogs": blogs})
}

func (h *BlogHandler) SearchBlogsCount(c *gin.Context) {
	var req searchBlogsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.Validation, "Invalid request body"))
		return
	}

	count, err := h.blogService.SearchCount(c.Request.Context(), req.filter())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"totalDocs": count})
}

func (h *BlogHandler) UserWrittenBlogs(c *gin.Context) {
	req := struct {
		Page  int64  `json:"page"`
		Draft bool   `json:"draft"`
		Query string `json:"query"`
	}{}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.Validation, "Invalid request body"))
		return
	}

	filter := db.BlogFilter{Query: req.Query, Author: auth.UserId(c), Draft: req.Draft}
	blogs, err := h.blogService.Search(c.Request.Context(), filter, pageToSkip(req.Page, blogPageSize), blogPageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blogs": blogs})
}

func (h *BlogHandler) UserWrittenBlogsCount(c *gin.Context) {
	req := struct {
		Draft bool   `json:"draft"`
		Query string `json:"query"`
	}{}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.Validation, "Invalid request body"))
		return
	}

	filter := db.BlogFilter{Query: req.Query, Author: auth.UserId(c), Draft: req.Draft}
	count, err := h.blogService.SearchCount(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"totalDocs": count})
}

func (h *BlogHandler) DeleteBlog(c *gin.Context) {
	req := struct {
		BlogId string `json:"blog_id"`
	}{}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.Validation, "Invalid request body"))
		return
	}

	if err := h.blogService.Delete(c.Request.Context(), req.BlogId, auth.UserId(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "done"})
}

func (h *BlogHandler) LikeBlog(c *gin.Context) {
	req := struct {
		BlogId        string `json:"_id"`
		IsLikedByUser bool   `json:"islikedByUser"`
	}{}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.Validation, "Invalid request body"))
		return
	}

	if err := h.blogService.Like(c.Request.Context(), req.BlogId, auth.UserId(c), req.IsLikedByUser); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked_by_user": !req.IsLikedByUser})
}

func (h *BlogHandler) IsLikedByUser(c *gin.Context) {
	req := struct {
		BlogId string `json:"_id"`
	}{}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.Validation, "Invalid request body"))
		return
	}

	liked, err := h.notificationService.HasLiked(c.Request.Context(), req.BlogId, auth.UserId(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": liked})
}
