package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"blogapi/internal/auth"
	apperrors "blogapi/internal/errors"
	"blogapi/internal/model"
	"blogapi/internal/repository"
)

const bcryptCost = 10

// AuthService handles registration, login, and logout.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// Register creates a new user with a hashed password and issues a token.
func (s *authService) Register(ctx context.Context, name, email, password string) (*model.User, string, error) {
	if name == "" || email == "" || password == "" {
		return nil, "", apperrors.ErrInvalidUserInput
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, "", apperrors.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, "", fmt.Errorf("check user existence: %w", err)
	}

	// The hash is computed here, explicitly, and is the only value ever
	// written to the password field.
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, "", apperrors.ErrEmailTaken
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwtService.GenerateToken(user.ID.Hex())
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	return user, token, nil
}

// Login authenticates a user and issues a fresh token. Unknown email and
// wrong password return the same error so callers cannot probe for
// registered addresses.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.ID.Hex())
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	return user, token, nil
}

// Logout revokes the presented token until it would have expired.
func (s *authService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return apperrors.ErrInvalidToken
	}
	return s.tokenStore.Revoke(ctx, tokenID, time.Until(expiresAt))
}
