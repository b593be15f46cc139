package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	apperrors "blogapi/internal/errors"
	"blogapi/internal/model"
	"blogapi/internal/repository"
)

// UserService exposes public user profile reads.
type UserService interface {
	GetProfile(ctx context.Context, id string) (*model.User, error)
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService builds a UserService.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

// GetProfile returns a user's public profile. The password hash is carried
// on the model but never serialized.
func (s *userService) GetProfile(ctx context.Context, id string) (*model.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrInvalidID
	}
	user, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
