package router

import (
	"net/http"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"realagent/internal/config"
	"realagent/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	userHandler *handler.UserHandler,
	authHandler *handler.AuthHandler,
	statsHandler *handler.StatsHandler,
) {
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Frontend pages and assets
	e.File("/", filepath.Join(cfg.FrontendDir, "index.html"))
	e.File("/about", filepath.Join(cfg.FrontendDir, "about.html"))
	e.File("/contact", filepath.Join(cfg.FrontendDir, "contact.html"))
	e.Static("/static", cfg.FrontendDir)

	e.GET("/api", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"message": "Welcome to Real Agent API",
			"version": "1.0.0",
			"endpoints": echo.Map{
				"docs":  "/swagger/index.html",
				"users": "/users",
				"login": "/auth/login",
			},
		})
	})

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// User CRUD
	e.POST("/users", userHandler.CreateUser)
	e.GET("/users", userHandler.ListUsers)
	e.GET("/users/role/:role", userHandler.ListUsersByRole)
	e.GET("/users/:id", userHandler.GetUser)
	e.PUT("/users/:id", userHandler.UpdateUser)
	e.DELETE("/users/:id", userHandler.DeleteUser)

	// Authentication
	e.POST("/auth/login", authHandler.Login)

	// Statistics
	e.GET("/stats/users", statsHandler.UserStats)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
