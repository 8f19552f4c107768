package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tranphattrien/easycode-server/apperr"
	"github.com/tranphattrien/easycode-server/auth"
	"github.com/tranphattrien/easycode-server/service"
)

const commentPageSize = 5

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (h *CommentHandler) AddComment(c *gin.Context) {
	req := struct {
		BlogId     string `json:"_id"`
		Comment    string `json:"comment"`
		ReplyingTo string `json:"replying_to"`
	}{}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.Validation, "Invalid request body"))
		return
	}

	comment, err := h.commentService.Add(c.Request.Context(), req.BlogId, auth.UserId(c), req.Comment, req.ReplyingTo)
	if err != nil && comment == nil {
		respondError(c, err)
		return
	}

	response := gin.H{"comment": comment}
	if err != nil {
		// The comment is live but a counter or notification update
		// failed; tell the caller instead of only the log.
		response["warning"] = apperr.Message(err)
	}
	c.JSON(http.StatusOK, response)
}

func (h *CommentHandler) GetBlogComments(c *gin.Context) {
	req := struct {
		BlogId string `json:"blog_id"`
		Skip   int64  `json:"skip"`
	}{}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.Validation, "Invalid request body"))
		return
	}

	comments, err := h.commentService.ListRoot(c.Request.Context(), req.BlogId, req.Skip, commentPageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *CommentHandler) GetReplies(c *gin.Context) {
	req := struct {
		CommentId string `json:"_id"`
		Skip      int64  `json:"skip"`
	}{}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.Validation, "Invalid request body"))
		return
	}

	replies, err := h.commentService.ListReplies(c.Request.Context(), req.CommentId, req.Skip, commentPageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"replies": replies})
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	req := struct {
		CommentId string `json:"_id"`
	}{}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.Validation, "Invalid request body"))
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), req.CommentId, auth.UserId(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "done"})
}
