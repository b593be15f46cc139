// Command seed populates the database with a demo author and a batch of
// posts so the listing, search, and pagination endpoints have data to show.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"blogapi/internal/auth"
	"blogapi/internal/cache"
	"blogapi/internal/config"
	"blogapi/internal/db"
	apperrors "blogapi/internal/errors"
	"blogapi/internal/repository"
	"blogapi/internal/service"
)

const (
	seedName     = "Demo Author"
	seedEmail    = "demo@example.com"
	seedPassword = "password123"
)

func main() {
	cfg := config.Load()

	mongoDB, err := db.NewMongo(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	userRepo := repository.NewUserRepository(mongoDB)
	postRepo := repository.NewPostRepository(mongoDB)

	if err := userRepo.EnsureIndexes(context.Background()); err != nil {
		log.Fatalf("ensure indexes: %v", err)
	}

	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB))

	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	postService := service.NewPostService(postRepo, userRepo)

	ctx := context.Background()

	// Register runs the real hashing path, so the demo account can log in.
	user, _, err := authService.Register(ctx, seedName, seedEmail, seedPassword)
	if err != nil {
		if !errors.Is(err, apperrors.ErrEmailTaken) {
			log.Fatalf("seed user: %v", err)
		}
		user, err = userRepo.FindByEmail(ctx, seedEmail)
		if err != nil {
			log.Fatalf("find seed user: %v", err)
		}
		log.Printf("seed user already present: %s", user.Email)
	} else {
		log.Printf("created seed user: %s", user.Email)
	}

	tags := [][]string{
		{"go", "backend"},
		{"travel"},
		{"cooking", "recipes"},
	}
	for i := 1; i <= 12; i++ {
		post, err := postService.Create(ctx, user.ID, service.CreatePostInput{
			Title:   fmt.Sprintf("Sample post %d", i),
			Content: fmt.Sprintf("This is the body of sample post number %d.", i),
			Tags:    tags[i%len(tags)],
		})
		if err != nil {
			log.Fatalf("seed post %d: %v", i, err)
		}
		log.Printf("created post %s (%s)", post.ID.Hex(), post.Title)
	}

	log.Println("seeding complete")
}
