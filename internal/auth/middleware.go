package auth

import (
	"net/http"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "blogapi/internal/errors"
	"blogapi/internal/repository"
)

// CurrentUserKey is the context key under which ResolveUser stores the
// authenticated user.
const CurrentUserKey = "currentUser"

// ResolveUser runs after the JWT gate. It rejects revoked tokens and
// resolves the token's user id to a full user record (password hash is
// never serialized) for downstream handlers.
func ResolveUser(users repository.UserRepository, tokens TokenStoreInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return unauthorized()
			}
			claims, ok := token.Claims.(*Claims)
			if !ok {
				return unauthorized()
			}

			if claims.ID != "" {
				revoked, _ := tokens.IsRevoked(c.Request().Context(), claims.ID)
				if revoked {
					return unauthorized()
				}
			}

			uid, err := primitive.ObjectIDFromHex(claims.UserID)
			if err != nil {
				return unauthorized()
			}
			user, err := users.FindByID(c.Request().Context(), uid)
			if err != nil {
				return unauthorized()
			}

			c.Set(CurrentUserKey, user)
			return next(c)
		}
	}
}

func unauthorized() error {
	return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrInvalidToken.Error())
}
