package http

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	middleware "task-tracker.com/task-tracker/internal/http/middlewares"
	"task-tracker.com/task-tracker/internal/ratelimit"
	"task-tracker.com/task-tracker/internal/services"
)

func Register(e *echo.Echo, h *Handler) {
	e.GET("/", h.ListTasks)
	e.GET("/tasks", h.ListTasks)
	e.GET("/tasks/new", h.NewTask)
	e.POST("/tasks", h.CreateTask)
	e.GET("/tasks/:id", h.ShowTask)
	e.GET("/tasks/:id/edit", h.EditTask)
	e.PATCH("/tasks/:id", h.UpdateTask)
	e.PUT("/tasks/:id", h.UpdateTask)
	e.DELETE("/tasks/:id", h.DestroyTask)
}

// NewServer builds the echo instance serving the task pages. A nil limiter
// disables rate limiting.
func NewServer(
	taskService *services.TaskService,
	limiter ratelimit.Limiter,
	opts ...HandlerOption,
) (*echo.Echo, error) {
	renderer, err := NewTemplateRenderer()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer

	// HTML forms can only POST; PATCH and DELETE arrive as a _method field.
	e.Pre(echomw.MethodOverrideWithConfig(echomw.MethodOverrideConfig{
		Getter: echomw.MethodFromForm("_method"),
	}))

	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			log.Printf("rid=%s method=%s uri=%s status=%d dur=%s", v.RequestID, v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))

	if limiter != nil {
		e.Use(middleware.RateLimiter(limiter))
	}

	Register(e, NewHandler(taskService, opts...))

	return e, nil
}
