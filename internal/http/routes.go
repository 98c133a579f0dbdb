package http

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	middleware "github.com/oscar503sv/gestion-de-proyectos/internal/http/middlewares"
)

type Options struct {
	Limiter        middleware.Limiter
	AllowedOrigins []string
}

func Register(e *echo.Echo, h *Handler, log *zap.Logger, opts Options) {
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler(log)

	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger(log))
	e.Use(echomw.Recover())
	if len(opts.AllowedOrigins) > 0 {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: opts.AllowedOrigins}))
	}
	if opts.Limiter != nil {
		e.Use(middleware.RateLimiter(opts.Limiter, log))
	}

	api := e.Group("/api")
	api.GET("/health", h.Health)

	api.POST("/auth/login", h.Login)

	api.GET("/users", h.ListUsers)
	api.POST("/users", h.CreateUser)
	api.GET("/users/:id", h.GetUser)
	api.PUT("/users/:id", h.UpdateUser)
	api.DELETE("/users/:id", h.DeleteUser)

	api.GET("/projects", h.ListProjects)
	api.POST("/projects", h.CreateProject)
	api.GET("/projects/:id", h.GetProject)
	api.PUT("/projects/:id", h.UpdateProject)
	api.DELETE("/projects/:id", h.DeleteProject)
	api.GET("/projects/:id/tasks", h.ProjectTasks)

	api.GET("/tasks", h.ListTasks)
	api.POST("/tasks", h.CreateTask)
	api.GET("/tasks/:id", h.GetTask)
	api.PUT("/tasks/:id", h.UpdateTask)
	api.DELETE("/tasks/:id", h.DeleteTask)

	api.GET("/dashboard", h.Dashboard)
}
