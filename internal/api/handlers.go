package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/nhle/taskflow/internal/apperrors"
	"github.com/nhle/taskflow/internal/auth"
	"github.com/nhle/taskflow/internal/store"
	"github.com/nhle/taskflow/internal/task"
)

// ErrorResponse is the JSON body for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	user, err := s.auth.Register(c.UserContext(), req.Email, req.Username, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	user, err := s.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

func (s *Server) handleListTasks(c *fiber.Ctx) error {
	var filter store.TaskFilter
	if userID := c.Query("user_id"); userID != "" {
		filter.UserID = &userID
	}

	tasks, err := s.tasks.List(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"tasks": tasks})
}

func (s *Server) handleCreateTask(c *fiber.Ctx) error {
	var req task.CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	created, err := s.tasks.Create(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (s *Server) handleUpdateTask(c *fiber.Ctx) error {
	var req task.UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	updated, err := s.tasks.Update(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(updated)
}

func (s *Server) handleDeleteTask(c *fiber.Ctx) error {
	if err := s.tasks.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Task deleted successfully"})
}

// handleCalendarTasks lists tasks with a due date inside [start, end].
// Without both bounds it falls back to the unfiltered list.
func (s *Server) handleCalendarTasks(c *fiber.Ctx) error {
	var filter store.TaskFilter

	startParam := c.Query("start")
	endParam := c.Query("end")
	if startParam != "" && endParam != "" {
		start, err := task.ParseDate(startParam)
		if err != nil {
			return respondError(c, err)
		}
		end, err := task.ParseDate(endParam)
		if err != nil {
			return respondError(c, err)
		}
		filter.DueAfter = &start
		filter.DueBefore = &end
	}

	tasks, err := s.tasks.List(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"tasks": tasks})
}

func (s *Server) handleSummaryReport(c *fiber.Ctx) error {
	summary, err := s.reports.Summary(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

func (s *Server) handleCategoryReport(c *fiber.Ctx) error {
	categories, err := s.reports.ByCategory(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"categories": categories})
}

func (s *Server) handleTimeTrackingReport(c *fiber.Ctx) error {
	tracking, err := s.reports.TimeTracking(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tracking)
}

func (s *Server) handleProductivityReport(c *fiber.Ctx) error {
	period := c.Query("period", "week")

	productivity, err := s.reports.Productivity(c.UserContext(), period)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(productivity)
}

// respondError maps core errors to HTTP status codes: validation failures
// to 400, missing entities to 404, bad credentials to 401, anything else
// to 500.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case apperrors.IsValidation(err):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	case apperrors.IsNotFound(err):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: err.Error()})
	case errors.Is(err, auth.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "internal server error"})
	}
}
