// Package api is the thin HTTP edge over the core services. It parses
// requests, delegates, and maps the error taxonomy to status codes; no
// business rules live here.
package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nhle/taskflow/internal/auth"
	"github.com/nhle/taskflow/internal/report"
	"github.com/nhle/taskflow/internal/task"
)

// Server wires the core services to HTTP routes.
type Server struct {
	app     *fiber.App
	auth    *auth.Service
	tasks   *task.Service
	reports *report.Engine
}

// NewServer creates a Server with all routes registered.
func NewServer(authSvc *auth.Service, taskSvc *task.Service, engine *report.Engine) *Server {
	s := &Server{
		app:     fiber.New(fiber.Config{AppName: "taskflow"}),
		auth:    authSvc,
		tasks:   taskSvc,
		reports: engine,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	api := s.app.Group("/api")

	api.Post("/auth/register", s.handleRegister)
	api.Post("/auth/login", s.handleLogin)

	api.Get("/tasks", s.handleListTasks)
	api.Post("/tasks", s.handleCreateTask)
	api.Put("/tasks/:id", s.handleUpdateTask)
	api.Delete("/tasks/:id", s.handleDeleteTask)

	api.Get("/calendar/tasks", s.handleCalendarTasks)

	api.Get("/reports/summary", s.handleSummaryReport)
	api.Get("/reports/by-category", s.handleCategoryReport)
	api.Get("/reports/time-tracking", s.handleTimeTrackingReport)
	api.Get("/reports/productivity", s.handleProductivityReport)
}

// Listen starts serving on addr and blocks until shutdown.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
