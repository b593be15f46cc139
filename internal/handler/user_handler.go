package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"blogapi/internal/model"
	"blogapi/internal/service"
)

// UserHandler handles public user profile endpoints.
type UserHandler struct {
	userService service.UserService
	postService service.PostService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService, postService service.PostService) *UserHandler {
	return &UserHandler{userService: userService, postService: postService}
}

// GetProfile godoc
// @Summary Get a user's public profile
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := h.userService.GetProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// GetPosts godoc
// @Summary List posts written by a user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {array} model.ResolvedPost
// @Failure 400 {object} errors.ErrorResponse
// @Router /users/{id}/posts [get]
func (h *UserHandler) GetPosts(c echo.Context) error {
	posts, err := h.postService.ListByAuthor(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	if posts == nil {
		posts = []model.ResolvedPost{}
	}
	return c.JSON(http.StatusOK, posts)
}
