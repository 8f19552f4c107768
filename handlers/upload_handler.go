package handlers

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/thoas/go-funk"
	"github.com/tranphattrien/easycode-server/apperr"
	"github.com/tranphattrien/easycode-server/s3client"
)

// 5 MiB, matching what the editor produces for banners.
const maxImageSize = 5 << 20

var allowedImageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

type UploadHandler struct {
	s3 *s3client.S3Client
}

func NewUploadHandler(s3 *s3client.S3Client) *UploadHandler {
	return &UploadHandler{s3: s3}
}

func (h *UploadHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("image")
	if err != nil {
		respondError(c, apperr.New(apperr.Validation, "No image file provided"))
		return
	}
	if header.Size > maxImageSize {
		respondError(c, apperr.New(apperr.Validation, "Image is too large"))
		return
	}

	extension := strings.ToLower(filepath.Ext(header.Filename))
	contentType, ok := allowedImageTypes[extension]
	if !ok {
		respondError(c, apperr.Newf(apperr.Validation, "Unsupported image type, use one of %s",
			strings.Join(funk.Keys(allowedImageTypes).([]string), ", ")))
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, apperr.Wrap(apperr.Validation, "Could not read image file", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageSize))
	if err != nil {
		respondError(c, apperr.Wrap(apperr.Upstream, "failed reading image", err))
		return
	}

	url, err := h.s3.Upload(c.Request.Context(), data, contentType, extension)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imageUrl": url})
}
