package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/logger"
	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/repositories"
	"alfredoptarigan/resume-matcher/internal/services"
)

type SessionHandler struct {
	sessionRepo    repositories.SessionRepository
	docRepo        repositories.DocumentRepository
	storageService services.StorageService
	logger         *zap.Logger
}

func NewSessionHandler(
	sessionRepo repositories.SessionRepository,
	docRepo repositories.DocumentRepository,
	storageService services.StorageService,
	log *zap.Logger,
) *SessionHandler {
	return &SessionHandler{
		sessionRepo:    sessionRepo,
		docRepo:        docRepo,
		storageService: storageService,
		logger:         logger.OrNop(log),
	}
}

// HandleCreate handles POST /sessions
func (h *SessionHandler) HandleCreate(c *fiber.Ctx) error {
	session := &models.Session{
		ID:        uuid.New(),
		Status:    models.StatusPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := h.sessionRepo.Create(session); err != nil {
		h.logger.Error("failed to create session", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create session")
	}

	return c.Status(fiber.StatusCreated).JSON(models.SessionResponse{
		ID:     session.ID.String(),
		Status: string(session.Status),
	})
}

// HandleDelete handles DELETE /sessions/:id. Stored resumes are removed with
// the session records.
func (h *SessionHandler) HandleDelete(c *fiber.Ctx) error {
	session, err := loadSession(c, h.sessionRepo)
	if err != nil {
		return err
	}

	if session.Status == models.StatusProcessing {
		return fiber.NewError(fiber.StatusConflict, "Session is being analyzed")
	}

	docs, err := h.docRepo.FindBySession(session.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load session documents")
	}
	for _, doc := range docs {
		if err := h.storageService.DeleteFile(doc.Filename); err != nil {
			h.logger.Debug("stored resume already gone", zap.String("file", doc.Filename), zap.Error(err))
		}
	}

	if err := h.sessionRepo.Delete(session.ID); err != nil {
		h.logger.Error("failed to delete session", zap.String("session_id", session.ID.String()), zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete session")
	}

	return c.JSON(fiber.Map{
		"message": "Session reset successfully",
	})
}
