package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tranphattrien/easycode-server/apperr"
	"github.com/tranphattrien/easycode-server/logger"
	"go.uber.org/zap"
)

// respondError maps the error taxonomy onto conventional REST codes:
// 403 validation, 401 bad credentials, 404 not found, 409 conflict,
// 500 everything else.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.Validation:
		status = http.StatusForbidden
	case apperr.Authorization:
		status = http.StatusUnauthorized
	case apperr.NotFound:
		status = http.StatusNotFound
	case apperr.Conflict:
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		logger.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": apperr.Message(err)})
}

func pageToSkip(page, limit int64) int64 {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}

func defaultLimit(limit, fallback int64) int64 {
	if limit <= 0 {
		return fallback
	}
	return limit
}
