package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrEmailTaken is returned when registering an already used email.
	ErrEmailTaken = errors.New("user already exists")
	// ErrInvalidCredentials is returned for unknown email or wrong password.
	// The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidPostInput is returned when a post is missing title or content.
	ErrInvalidPostInput = errors.New("please add a title and content")
	// ErrInvalidUserInput is returned when registration fields are missing.
	ErrInvalidUserInput = errors.New("invalid user data")
	// ErrPostNotFound is returned when a post does not exist.
	ErrPostNotFound = errors.New("post not found")
	// ErrUserNotFound is returned when a user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrNotAuthor is returned when the acting user does not own the post.
	ErrNotAuthor = errors.New("user not authorized")
	// ErrInvalidToken is returned for a malformed, revoked, or expired token.
	ErrInvalidToken = errors.New("not authorized, token failed")
	// ErrInvalidID is returned when a path id is not a valid object id.
	ErrInvalidID = errors.New("invalid id")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Message: e.Message,
		Code:    e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Duplicate email and
// ownership failures keep the platform's historical 400/401 statuses.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "USER_EXISTS")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrInvalidPostInput):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_POST")
	case errors.Is(err, ErrInvalidUserInput):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_USER")
	case errors.Is(err, ErrPostNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "POST_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrNotAuthor):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "NOT_AUTHOR")
	case errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_TOKEN")
	case errors.Is(err, ErrInvalidID):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ID")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
