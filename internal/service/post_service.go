package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	apperrors "blogapi/internal/errors"
	"blogapi/internal/model"
	"blogapi/internal/repository"
)

// pageSize is the fixed number of posts per listing page.
const pageSize = 8

// CreatePostInput carries the fields a caller may set on a new post.
type CreatePostInput struct {
	Title    string
	Content  string
	Tags     []string
	ImageURL string
}

// UpdatePostInput is a partial patch. Nil fields are left unchanged. The
// author is deliberately not patchable: accepting it would let a caller
// hand a post to someone else.
type UpdatePostInput struct {
	Title    *string
	Content  *string
	Tags     *[]string
	ImageURL *string
}

// PostService exposes post and comment operations.
type PostService interface {
	Create(ctx context.Context, authorID primitive.ObjectID, input CreatePostInput) (*model.Post, error)
	List(ctx context.Context, page int) (*model.PostPage, error)
	GetByID(ctx context.Context, id string) (*model.ResolvedPost, error)
	Search(ctx context.Context, keyword string) ([]model.ResolvedPost, error)
	ListByAuthor(ctx context.Context, userID string) ([]model.ResolvedPost, error)
	Update(ctx context.Context, id string, actingUserID primitive.ObjectID, patch UpdatePostInput) (*model.Post, error)
	Delete(ctx context.Context, id string, actingUserID primitive.ObjectID) error
	AddComment(ctx context.Context, postID string, actingUser *model.User, text string) error
}

type postService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

// NewPostService builds a PostService with post and user repositories.
func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) PostService {
	return &postService{postRepo: postRepo, userRepo: userRepo}
}

func (s *postService) Create(ctx context.Context, authorID primitive.ObjectID, input CreatePostInput) (*model.Post, error) {
	if input.Title == "" || input.Content == "" {
		return nil, apperrors.ErrInvalidPostInput
	}

	post := &model.Post{
		Title:    input.Title,
		Content:  input.Content,
		Tags:     input.Tags,
		ImageURL: input.ImageURL,
		Author:   authorID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) List(ctx context.Context, page int) (*model.PostPage, error) {
	if page < 1 {
		page = 1
	}

	count, err := s.postRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	posts, err := s.postRepo.List(ctx, int64(page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	resolved, err := s.resolveAuthors(ctx, posts)
	if err != nil {
		return nil, err
	}
	return &model.PostPage{
		Posts: resolved,
		Page:  page,
		Pages: int((count + pageSize - 1) / pageSize),
	}, nil
}

func (s *postService) GetByID(ctx context.Context, id string) (*model.ResolvedPost, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrInvalidID
	}
	post, err := s.postRepo.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, err
	}

	resolved, err := s.resolveAuthors(ctx, []model.Post{*post})
	if err != nil {
		return nil, err
	}
	return &resolved[0], nil
}

func (s *postService) Search(ctx context.Context, keyword string) ([]model.ResolvedPost, error) {
	posts, err := s.postRepo.SearchByTitle(ctx, keyword)
	if err != nil {
		return nil, err
	}
	return s.resolveAuthors(ctx, posts)
}

// ListByAuthor returns the user's posts. An unknown user id is not an
// error; it simply matches nothing.
func (s *postService) ListByAuthor(ctx context.Context, userID string) ([]model.ResolvedPost, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperrors.ErrInvalidID
	}
	posts, err := s.postRepo.FindByAuthor(ctx, oid)
	if err != nil {
		return nil, err
	}
	return s.resolveAuthors(ctx, posts)
}

func (s *postService) Update(ctx context.Context, id string, actingUserID primitive.ObjectID, patch UpdatePostInput) (*model.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrInvalidID
	}
	post, err := s.postRepo.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, err
	}
	if post.Author != actingUserID {
		return nil, apperrors.ErrNotAuthor
	}

	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Content != nil {
		set["content"] = *patch.Content
	}
	if patch.Tags != nil {
		set["tags"] = *patch.Tags
	}
	if patch.ImageURL != nil {
		set["imageUrl"] = *patch.ImageURL
	}
	if len(set) == 0 {
		return post, nil
	}

	updated, err := s.postRepo.UpdateFields(ctx, oid, set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes the post and, with it, its embedded comments.
func (s *postService) Delete(ctx context.Context, id string, actingUserID primitive.ObjectID) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.ErrInvalidID
	}
	post, err := s.postRepo.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.ErrPostNotFound
		}
		return err
	}
	if post.Author != actingUserID {
		return apperrors.ErrNotAuthor
	}

	if err := s.postRepo.Delete(ctx, oid); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.ErrPostNotFound
		}
		return err
	}
	return nil
}

func (s *postService) AddComment(ctx context.Context, postID string, actingUser *model.User, text string) error {
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return apperrors.ErrInvalidID
	}

	comment := model.Comment{
		ID:        primitive.NewObjectID(),
		User:      actingUser.ID,
		Name:      actingUser.Name,
		Text:      text,
		CreatedAt: time.Now(),
	}
	if err := s.postRepo.PushComment(ctx, oid, comment); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.ErrPostNotFound
		}
		return err
	}
	return nil
}

// resolveAuthors attaches {_id, name} author references to posts, fetching
// each distinct author once.
func (s *postService) resolveAuthors(ctx context.Context, posts []model.Post) ([]model.ResolvedPost, error) {
	seen := make(map[primitive.ObjectID]bool, len(posts))
	var ids []primitive.ObjectID
	for _, p := range posts {
		if !seen[p.Author] {
			seen[p.Author] = true
			ids = append(ids, p.Author)
		}
	}

	names := make(map[primitive.ObjectID]string, len(ids))
	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		names[u.ID] = u.Name
	}

	resolved := make([]model.ResolvedPost, 0, len(posts))
	for _, p := range posts {
		resolved = append(resolved, model.ResolvedPost{
			Post:   p,
			Author: model.AuthorRef{ID: p.Author, Name: names[p.Author]},
		})
	}
	return resolved, nil
}
