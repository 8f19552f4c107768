package main

import (
	"os"

	"github.com/tranphattrien/easycode-server/auth"
	"github.com/tranphattrien/easycode-server/db"
	"github.com/tranphattrien/easycode-server/handlers"
	"github.com/tranphattrien/easycode-server/logger"
	"github.com/tranphattrien/easycode-server/mail"
	"github.com/tranphattrien/easycode-server/s3client"
	"github.com/tranphattrien/easycode-server/service"
	"go.uber.org/zap"
)

type Inject struct {
	Db db.Database

	MailService *mail.MailService
	S3Client    *s3client.S3Client

	AuthService         *service.AuthService
	UserService         *service.UserService
	BlogService         *service.BlogService
	CommentService      *service.CommentService
	NotificationService *service.NotificationService

	Router *handlers.Router
}

func NewInject(database db.Database) *Inject {
	secret := os.Getenv("SECRET_ACCESS_KEY")
	if len(secret) == 0 {
		logger.Fatal("SECRET_ACCESS_KEY is not configured")
	}
	clientOrigin := os.Getenv("CLIENT_ORIGIN")

	inj := &Inject{Db: database}

	inj.MailService = mail.NewMailService()
	s3, err := s3client.NewS3Client()
	if err != nil {
		logger.Fatal("Failed initializing s3 client", zap.Error(err))
	}
	inj.S3Client = s3

	verifier := auth.NewGoogleVerifier(os.Getenv("GOOGLE_CLIENT_ID"))

	inj.NotificationService = service.NewNotificationService(inj.Db)
	inj.AuthService = service.NewAuthService(inj.Db, inj.MailService, verifier, secret, clientOrigin)
	inj.UserService = service.NewUserService(inj.Db)
	inj.BlogService = service.NewBlogService(inj.Db, inj.NotificationService)
	inj.CommentService = service.NewCommentService(inj.Db, inj.NotificationService, inj.MailService)

	inj.Router = &handlers.Router{
		Auth:          handlers.NewAuthHandler(inj.AuthService),
		Users:         handlers.NewUserHandler(inj.UserService),
		Blogs:         handlers.NewBlogHandler(inj.BlogService, inj.NotificationService),
		Comments:      handlers.NewCommentHandler(inj.CommentService),
		Notifications: handlers.NewNotificationHandler(inj.NotificationService),
		Uploads:       handlers.NewUploadHandler(inj.S3Client),
		Secret:        secret,
	}
	return inj
}
