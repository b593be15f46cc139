package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	apperrors "blogapi/internal/errors"
	"blogapi/internal/model"
)

// MockPostRepository is a mock implementation of PostRepository.
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context, skip, limit int64) ([]model.Post, error) {
	args := m.Called(ctx, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Post), args.Error(1)
}

func (m *MockPostRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPostRepository) FindByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]model.Post, error) {
	args := m.Called(ctx, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Post), args.Error(1)
}

func (m *MockPostRepository) SearchByTitle(ctx context.Context, keyword string) ([]model.Post, error) {
	args := m.Called(ctx, keyword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Post), args.Error(1)
}

func (m *MockPostRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, set bson.M) (*model.Post, error) {
	args := m.Called(ctx, id, set)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostRepository) PushComment(ctx context.Context, id primitive.ObjectID, comment model.Comment) error {
	args := m.Called(ctx, id, comment)
	return args.Error(0)
}

func newPostService(posts *MockPostRepository, users *MockUserRepository) PostService {
	return NewPostService(posts, users)
}

func TestCreatePost_MissingTitleOrContent(t *testing.T) {
	posts := new(MockPostRepository)
	users := new(MockUserRepository)
	svc := newPostService(posts, users)

	_, err := svc.Create(context.Background(), primitive.NewObjectID(), CreatePostInput{Content: "body"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidPostInput)

	_, err = svc.Create(context.Background(), primitive.NewObjectID(), CreatePostInput{Title: "hello"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidPostInput)

	posts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreatePost_SetsAuthor(t *testing.T) {
	posts := new(MockPostRepository)
	users := new(MockUserRepository)
	svc := newPostService(posts, users)

	author := primitive.NewObjectID()
	posts.On("Create", mock.Anything, mock.AnythingOfType("*model.Post")).Return(nil)

	post, err := svc.Create(context.Background(), author, CreatePostInput{
		Title:   "hello",
		Content: "body",
		Tags:    []string{"go"},
	})

	assert.NoError(t, err)
	assert.Equal(t, author, post.Author)
	assert.Equal(t, []string{"go"}, post.Tags)
	posts.AssertExpectations(t)
}

func TestListPosts_Pagination(t *testing.T) {
	posts := new(MockPostRepository)
	users := new(MockUserRepository)
	svc := newPostService(posts, users)

	author := primitive.NewObjectID()
	pagePosts := make([]model.Post, 8)
	for i := range pagePosts {
		pagePosts[i] = model.Post{ID: primitive.NewObjectID(), Title: "post", Author: author}
	}

	posts.On("Count", mock.Anything).Return(int64(17), nil)
	posts.On("List", mock.Anything, int64(8), int64(8)).Return(pagePosts, nil)
	users.On("FindByIDs", mock.Anything, []primitive.ObjectID{author}).
		Return([]model.User{{ID: author, Name: "Ada"}}, nil)

	page, err := svc.List(context.Background(), 2)

	assert.NoError(t, err)
	assert.Len(t, page.Posts, 8)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 3, page.Pages)
	assert.Equal(t, "Ada", page.Posts[0].Author.Name)
	posts.AssertExpectations(t)
}

func TestListPosts_PageDefaultsToFirst(t *testing.T) {
	posts := new(MockPostRepository)
	users := new(MockUserRepository)
	svc := newPostService(posts, users)

	posts.On("Count", mock.Anything).Return(int64(0), nil)
	posts.On("List", mock.Anything, int64(0), int64(8)).Return([]model.Post{}, nil)
	users.On("FindByIDs", mock.Anything, mock.Anything).Return(nil, nil)

	page, err := svc.List(context.Background(), 0)

	assert.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 0, page.Pages)
	assert.Empty(t, page.Posts)
}

func TestGetPostByID_NotFound(t *testing.T) {
	posts := new(MockPostRepository)
	users := new(MockUserRepository)
	svc := newPostService(posts, users)

	id := primitive.NewObjectID()
	posts.On("FindByID", mock.Anything, id).Return(nil, mongo.ErrNoDocuments)

	_, err := svc.GetByID(context.Background(), id.Hex())
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
}

func TestGetPostByID_InvalidID(t *testing.T) {
	posts := new(MockPostRepository)
	users := new(MockUserRepository)
	svc := newPostService(posts, users)

	_, err := svc.GetByID(context.Background(), "not-an-object-id")
	assert.ErrorIs(t, err, apperrors.ErrInvalidID)
}

func TestUpdatePost_NonAuthorForbidden(t *testing.T) {
	posts := new(MockPostRepository)
	users := new(MockUserRepository)
	svc := newPostService(posts, users)

	author := primitive.NewObjectID()
	intruder := primitive.NewObjectID()
	post := &model.Post{ID: primitive.NewObjectID(), Title: "hello", Content: "body", Author: author}
	posts.On("FindByID", mock.Anything, post.ID).Return(post, nil)

	title := "hijacked"
	_, err := svc.Update(context.Background(), post.ID.Hex(), intruder, UpdatePostInput{Title: &title})

	assert.ErrorIs(t, err, apperrors.ErrNotAuthor)
	posts.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdatePost_PatchIsAllowlisted(t *testing.T) {
	posts := new(MockPostRepository)
	users := new(MockUserRepository)
	svc := newPostService(posts, users)

	author := primitive.NewObjectID()
	post := &model.Post{ID: primitive.NewObjectID(), Title: "old", Content: "body", Author: author}
	posts.On("FindByID", mock.Anything, post.ID).Return(post, nil)

	title := "new title"
	updated := &model.Post{ID: post.ID, Title: title, Content: "body", Author: author}
	posts.On("UpdateFields", mock.Anything, post.ID, mock.MatchedBy(func(set bson.M) bool {
		_, hasTitle := set["title"]
		_, hasAuthor := set["author"]
		return hasTitle && !hasAuthor && len(set) == 1
	})).Return(updated, nil)

	got, err := svc.Update(context.Background(), post.ID.Hex(), author, UpdatePostInput{Title: &title})

	assert.NoError(t, err)
	assert.Equal(t, title, got.Title)
	assert.Equal(t, author, got.Author)
	posts.AssertExpectations(t)
}

func TestUpdatePost_EmptyPatchLeavesPostUnchanged(t *testing.T) {
	posts := new(MockPostRepository)
	users := new(MockUserRepository)
	svc := newPostService(posts, users)

	author := primitive.NewObjectID()
	post := &model.Post{ID: primitive.NewObjectID(), Title: "old", Content: "body", Author: author}
	posts.On("FindByID", mock.Anything, post.ID).Return(post, nil)

	got, err := svc.Update(context.Background(), post.ID.Hex(), author, UpdatePostInput{})

	assert.NoError(t, err)
	assert.Equal(t, post, got)
	posts.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeletePost_NonAuthorForbidden(t *testing.T) {
	posts := new(MockPostRepository)
	users := new(MockUserRepository)
	svc := newPostService(posts, users)

	author := primitive.NewObjectID()
	post := &model.Post{ID: primitive.NewObjectID(), Author: author}
	posts.On("FindByID", mock.Anything, post.ID).Return(post, nil)

	err := svc.Delete(context.Background(), post.ID.Hex(), primitive.NewObjectID())

	assert.ErrorIs(t, err, apperrors.ErrNotAuthor)
	posts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeletePost_ByAuthor(t *testing.T) {
	posts := new(MockPostRepository)
	users := new(MockUserRepository)
	svc := newPostService(posts, users)

	author := primitive.NewObjectID()
	post := &model.Post{ID: primitive.NewObjectID(), Author: author}
	posts.On("FindByID", mock.Anything, post.ID).Return(post, nil)
	posts.On("Delete", mock.Anything, post.ID).Return(nil)

	err := svc.Delete(context.Background(), post.ID.Hex(), author)

	assert.NoError(t, err)
	posts.AssertExpectations(t)
}

func TestAddComment_PostNotFound(t *testing.T) {
	posts := new(MockPostRepository)
	users := new(MockUserRepository)
	svc := newPostService(posts, users)

	id := primitive.NewObjectID()
	posts.On("PushComment", mock.Anything, id, mock.AnythingOfType("model.Comment")).
		Return(mongo.ErrNoDocuments)

	user := &model.User{ID: primitive.NewObjectID(), Name: "Ada"}
	err := svc.AddComment(context.Background(), id.Hex(), user, "nice post")

	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
}

func TestAddComment_CarriesActingUser(t *testing.T) {
	posts := new(MockPostRepository)
	users := new(MockUserRepository)
	svc := newPostService(posts, users)

	id := primitive.NewObjectID()
	user := &model.User{ID: primitive.NewObjectID(), Name: "Ada"}
	posts.On("PushComment", mock.Anything, id, mock.MatchedBy(func(c model.Comment) bool {
		return c.User == user.ID && c.Name == "Ada" && c.Text == "nice post" &&
			!c.CreatedAt.IsZero() && time.Since(c.CreatedAt) < time.Minute
	})).Return(nil)

	err := svc.AddComment(context.Background(), id.Hex(), user, "nice post")

	assert.NoError(t, err)
	posts.AssertExpectations(t)
}

func TestListByAuthor_UnknownUserYieldsEmpty(t *testing.T) {
	posts := new(MockPostRepository)
	users := new(MockUserRepository)
	svc := newPostService(posts, users)

	unknown := primitive.NewObjectID()
	posts.On("FindByAuthor", mock.Anything, unknown).Return([]model.Post{}, nil)
	users.On("FindByIDs", mock.Anything, mock.Anything).Return(nil, nil)

	got, err := svc.ListByAuthor(context.Background(), unknown.Hex())

	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearch_ResolvesAuthors(t *testing.T) {
	posts := new(MockPostRepository)
	users := new(MockUserRepository)
	svc := newPostService(posts, users)

	author := primitive.NewObjectID()
	found := []model.Post{
		{ID: primitive.NewObjectID(), Title: "Foo bar", Author: author},
		{ID: primitive.NewObjectID(), Title: "the foo", Author: author},
	}
	posts.On("SearchByTitle", mock.Anything, "foo").Return(found, nil)
	users.On("FindByIDs", mock.Anything, []primitive.ObjectID{author}).
		Return([]model.User{{ID: author, Name: "Ada"}}, nil)

	got, err := svc.Search(context.Background(), "foo")

	assert.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "Ada", got[0].Author.Name)
	assert.Equal(t, "Ada", got[1].Author.Name)
}
