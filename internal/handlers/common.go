package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/repositories"
)

// ErrorHandler renders every error returned by a handler as {"error","code"}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}

// loadSession resolves the :id route parameter into a stored session.
func loadSession(c *fiber.Ctx, repo repositories.SessionRepository) (*models.Session, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid session ID format")
	}

	session, err := repo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Session not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load session")
	}

	return session, nil
}

// candidateIndex reads the zero-based :index route parameter.
func candidateIndex(c *fiber.Ctx) (int, error) {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil || index < 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid candidate index")
	}
	return index, nil
}
