package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tranphattrien/easycode-server/apperr"
	"github.com/tranphattrien/easycode-server/auth"
	"github.com/tranphattrien/easycode-server/db"
	"github.com/tranphattrien/easycode-server/db/memory"
	"github.com/tranphattrien/easycode-server/mail"
	"github.com/tranphattrien/easycode-server/models"
	"github.com/tranphattrien/easycode-server/service"
)

// failingCounterDb rejects blog counter updates so the comment write
// succeeds but its follow-up does not.
type failingCounterDb struct {
	db.Database
}

func (d *failingCounterDb) Blog() db.BlogRepository {
	return &failingCounterBlogRepository{d.Database.Blog()}
}

type failingCounterBlogRepository struct {
	db.BlogRepository
}

func (r *failingCounterBlogRepository) AddComment(ctx context.Context, blogId, commentId string, isRoot bool) error {
	return apperr.New(apperr.Upstream, "counters unavailable")
}

func seedCommentScene(t *testing.T, database db.Database) (author, commenter *models.UserModel, blog *models.BlogModel) {
	t.Helper()
	ctx := context.Background()

	author = &models.UserModel{
		PersonalInfo: models.PersonalInfo{
			Fullname: "Author", Email: "author@example.com", Username: "author", Active: true,
		},
		Blogs: []string{}, JoinedAt: time.Now(),
	}
	require.NoError(t, database.User().Save(ctx, author))

	commenter = &models.UserModel{
		PersonalInfo: models.PersonalInfo{
			Fullname: "Commenter", Email: "commenter@example.com", Username: "commenter", Active: true,
		},
		Blogs: []string{}, JoinedAt: time.Now(),
	}
	require.NoError(t, database.User().Save(ctx, commenter))

	blog = &models.BlogModel{
		BlogId: "handler-blog-1a2b3c4d", Title: "Handler blog", Author: author.UserId,
		Comments: []string{}, PublishedAt: time.Now(),
	}
	require.NoError(t, database.Blog().Save(ctx, blog))
	return author, commenter, blog
}

func newAddCommentEngine(handler *CommentHandler, userId string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/add-comment", func(c *gin.Context) { c.Set(auth.UserIdKey, userId) }, handler.AddComment)
	return engine
}

func postJSON(engine *gin.Engine, path, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(recorder, request)
	return recorder
}

func TestAddCommentResponse(t *testing.T) {
	database := memory.New()
	_, commenter, blog := seedCommentScene(t, database)

	svc := service.NewCommentService(database, service.NewNotificationService(database), &mail.MailService{})
	engine := newAddCommentEngine(NewCommentHandler(svc), commenter.UserId)

	recorder := postJSON(engine, "/add-comment", `{"_id":"`+blog.BlogId+`","comment":"hello"}`)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"comment"`)
	assert.NotContains(t, recorder.Body.String(), `"warning"`)
}

func TestAddCommentReportsDegradedWrite(t *testing.T) {
	database := memory.New()
	_, commenter, blog := seedCommentScene(t, database)

	degraded := &failingCounterDb{Database: database}
	svc := service.NewCommentService(degraded, service.NewNotificationService(database), &mail.MailService{})
	engine := newAddCommentEngine(NewCommentHandler(svc), commenter.UserId)

	recorder := postJSON(engine, "/add-comment", `{"_id":"`+blog.BlogId+`","comment":"hello"}`)

	// The comment itself is live, so the request succeeds, but the
	// degraded follow-up must reach the caller.
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"comment"`)
	assert.Contains(t, recorder.Body.String(), `"warning"`)
}
