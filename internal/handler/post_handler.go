package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"blogapi/internal/auth"
	apperrors "blogapi/internal/errors"
	"blogapi/internal/model"
	"blogapi/internal/service"
)

// PostHandler handles post and comment endpoints.
type PostHandler struct {
	postService service.PostService
}

// NewPostHandler creates a new post handler.
func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// CreatePostRequest represents a post creation request.
type CreatePostRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags"`
	ImageURL string   `json:"imageUrl"`
}

// UpdatePostRequest is a partial patch; absent fields stay unchanged.
// Author is not accepted here.
type UpdatePostRequest struct {
	Title    *string   `json:"title"`
	Content  *string   `json:"content"`
	Tags     *[]string `json:"tags"`
	ImageURL *string   `json:"imageUrl"`
}

// CreateCommentRequest represents a comment creation request.
type CreateCommentRequest struct {
	Text string `json:"text" validate:"required"`
}

// Create godoc
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreatePostRequest true "Post data"
// @Success 201 {object} model.Post
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return respondError(c, apperrors.ErrInvalidToken)
	}

	var req CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	post, err := h.postService.Create(c.Request().Context(), user.ID, service.CreatePostInput{
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, post)
}

// List godoc
// @Summary List posts, newest first
// @Tags posts
// @Produce json
// @Param pageNumber query int false "Page number"
// @Success 200 {object} model.PostPage
// @Router /posts [get]
func (h *PostHandler) List(c echo.Context) error {
	page, err := strconv.Atoi(c.QueryParam("pageNumber"))
	if err != nil {
		page = 1
	}

	result, err := h.postService.List(c.Request().Context(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// GetByID godoc
// @Summary Get a single post
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} model.ResolvedPost
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id} [get]
func (h *PostHandler) GetByID(c echo.Context) error {
	post, err := h.postService.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, post)
}

// Search godoc
// @Summary Search posts by title
// @Tags posts
// @Produce json
// @Param keyword path string true "Keyword"
// @Success 200 {array} model.ResolvedPost
// @Router /posts/search/{keyword} [get]
func (h *PostHandler) Search(c echo.Context) error {
	posts, err := h.postService.Search(c.Request().Context(), c.Param("keyword"))
	if err != nil {
		return respondError(c, err)
	}
	if posts == nil {
		posts = []model.ResolvedPost{}
	}
	return c.JSON(http.StatusOK, posts)
}

// ListByAuthor godoc
// @Summary List a user's posts
// @Tags posts
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {array} model.ResolvedPost
// @Router /posts/user/{userId} [get]
func (h *PostHandler) ListByAuthor(c echo.Context) error {
	posts, err := h.postService.ListByAuthor(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return respondError(c, err)
	}
	if posts == nil {
		posts = []model.ResolvedPost{}
	}
	return c.JSON(http.StatusOK, posts)
}

// Update godoc
// @Summary Update an owned post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param request body UpdatePostRequest true "Fields to change"
// @Success 200 {object} model.Post
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return respondError(c, apperrors.ErrInvalidToken)
	}

	var req UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	post, err := h.postService.Update(c.Request().Context(), c.Param("id"), user.ID, service.UpdatePostInput{
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, post)
}

// Delete godoc
// @Summary Delete an owned post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return respondError(c, apperrors.ErrInvalidToken)
	}

	if err := h.postService.Delete(c.Request().Context(), c.Param("id"), user.ID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Post removed",
	})
}

// AddComment godoc
// @Summary Comment on a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param request body CreateCommentRequest true "Comment text"
// @Success 201 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id}/comments [post]
func (h *PostHandler) AddComment(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return respondError(c, apperrors.ErrInvalidToken)
	}

	var req CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.postService.AddComment(c.Request().Context(), c.Param("id"), user, req.Text); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"message": "Comment added",
	})
}

// currentUser returns the user attached by the auth gate.
func currentUser(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(auth.CurrentUserKey).(*model.User)
	return user, ok
}

// respondError translates a domain error into the standard error body.
func respondError(c echo.Context, err error) error {
	he := apperrors.MapErrorToHTTP(err)
	return c.JSON(he.StatusCode, he.ToErrorResponse())
}
