package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/repositories"
	"alfredoptarigan/resume-matcher/internal/services"
)

type AnalyzeHandler struct {
	sessionRepo repositories.SessionRepository
	docRepo     repositories.DocumentRepository
	worker      services.Worker
}

func NewAnalyzeHandler(
	sessionRepo repositories.SessionRepository,
	docRepo repositories.DocumentRepository,
	worker services.Worker,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		sessionRepo: sessionRepo,
		docRepo:     docRepo,
		worker:      worker,
	}
}

// HandleAnalyze handles POST /sessions/:id/analyze
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	session, err := loadSession(c, h.sessionRepo)
	if err != nil {
		return err
	}

	if session.Status == models.StatusQueued || session.Status == models.StatusProcessing {
		return fiber.NewError(fiber.StatusConflict, "Session is already being analyzed")
	}

	if strings.TrimSpace(session.JobText) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "No job description provided")
	}

	count, err := h.docRepo.CountBySession(session.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load session documents")
	}
	if count == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "No resume files provided")
	}

	if err := h.sessionRepo.UpdateStatus(session.ID, models.StatusQueued); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to queue analysis")
	}

	h.worker.EnqueueJob(session.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.SessionResponse{
		ID:     session.ID.String(),
		Status: string(models.StatusQueued),
	})
}
