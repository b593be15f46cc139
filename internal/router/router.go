package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"blogapi/internal/auth"
	"blogapi/internal/config"
	apperrors "blogapi/internal/errors"
	"blogapi/internal/handler"
	"blogapi/internal/repository"
)

// Register wires routes and middleware. Read endpoints are public; every
// mutation sits behind the JWT gate plus user resolution.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	userRepo repository.UserRepository,
	tokenStore auth.TokenStoreInterface,
	authHandler *handler.AuthHandler,
	postHandler *handler.PostHandler,
	userHandler *handler.UserHandler,
	uploadHandler *handler.UploadHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.CORSOrigin},
	}))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Uploaded images are served read-only from local disk.
	e.Static("/uploads", cfg.UploadDir)

	api := e.Group("/api")

	api.GET("", func(c echo.Context) error {
		return c.String(http.StatusOK, "Blog Platform API is running!")
	})

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	api.GET("/posts", postHandler.List)
	api.GET("/posts/search/:keyword", postHandler.Search)
	api.GET("/posts/user/:userId", postHandler.ListByAuthor)
	api.GET("/posts/:id", postHandler.GetByID)

	api.GET("/users/:id", userHandler.GetProfile)
	api.GET("/users/:id/posts", userHandler.GetPosts)

	api.POST("/upload", uploadHandler.Upload)

	// Secured routes (require JWT authentication and an existing user)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		ErrorHandler: jwtErrorHandler,
	}), auth.ResolveUser(userRepo, tokenStore))

	secured.POST("/auth/logout", authHandler.Logout)
	secured.POST("/posts", postHandler.Create)
	secured.PUT("/posts/:id", postHandler.Update)
	secured.DELETE("/posts/:id", postHandler.Delete)
	secured.POST("/posts/:id/comments", postHandler.AddComment)
}

// jwtErrorHandler distinguishes a missing bearer token from one that
// failed verification.
func jwtErrorHandler(c echo.Context, err error) error {
	if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authorized, no token")
	}
	return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrInvalidToken.Error())
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
