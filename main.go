package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/tranphattrien/easycode-server/db"
	"github.com/tranphattrien/easycode-server/logger"
	"go.uber.org/zap"
)

func init() {
	if err := godotenv.Load(); err != nil {
		logger.Warn("Error loading .env file", zap.Error(err))
	}
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	database, err := db.Connect(ctx, os.Getenv("DB_LOCATION"), os.Getenv("DB_NAME"))
	if err != nil {
		logger.Fatal("Failed connecting to database", zap.Error(err))
	}
	defer database.Close(context.Background())

	inject := NewInject(database)

	engine := gin.Default()
	inject.Router.Register(engine)

	port := os.Getenv("PORT")
	if len(port) == 0 {
		port = "3000"
	}
	logger.Info("Listening", zap.String("port", port))
	if err := engine.Run(":" + port); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}
