package main

import (
	"context"
	"log"
	"net/http"
	"os"

	_ "blogapi/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"blogapi/internal/auth"
	"blogapi/internal/cache"
	"blogapi/internal/config"
	"blogapi/internal/db"
	"blogapi/internal/handler"
	"blogapi/internal/repository"
	"blogapi/internal/router"
	"blogapi/internal/service"
)

// @title Blog Platform API
// @version 1.0
// @description Blogging platform backend: users, posts with embedded comments, image upload, and JWT authentication.
// @host localhost:5001
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	mongoDB, err := db.NewMongo(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatalf("upload dir: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(mongoDB)
	postRepo := repository.NewPostRepository(mongoDB)

	if err := userRepo.EnsureIndexes(context.Background()); err != nil {
		log.Fatalf("ensure indexes: %v", err)
	}

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	postService := service.NewPostService(postRepo, userRepo)
	userService := service.NewUserService(userRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	postHandler := handler.NewPostHandler(postService)
	userHandler := handler.NewUserHandler(userService, postService)
	uploadHandler := handler.NewUploadHandler(cfg.UploadDir)

	// Register routes
	router.Register(
		e,
		cfg,
		userRepo,
		tokenStore,
		authHandler,
		postHandler,
		userHandler,
		uploadHandler,
	)

	addr := ":" + cfg.ServerPort
	log.Printf("Server running on port %s", cfg.ServerPort)
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
