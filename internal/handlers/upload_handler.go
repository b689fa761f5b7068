package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/logger"
	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/repositories"
	"alfredoptarigan/resume-matcher/internal/services"
)

type UploadHandler struct {
	sessionRepo    repositories.SessionRepository
	docRepo        repositories.DocumentRepository
	storageService services.StorageService
	extractor      services.DocumentExtractor
	maxFileSize    int64
	logger         *zap.Logger
}

func NewUploadHandler(
	sessionRepo repositories.SessionRepository,
	docRepo repositories.DocumentRepository,
	storageService services.StorageService,
	extractor services.DocumentExtractor,
	maxFileSize int64,
	log *zap.Logger,
) *UploadHandler {
	return &UploadHandler{
		sessionRepo:    sessionRepo,
		docRepo:        docRepo,
		storageService: storageService,
		extractor:      extractor,
		maxFileSize:    maxFileSize,
		logger:         logger.OrNop(log),
	}
}

// HandleJobDescription handles POST /sessions/:id/job. The description comes
// from the job_text form field or, when present, an uploaded job_file.
func (h *UploadHandler) HandleJobDescription(c *fiber.Ctx) error {
	session, err := loadSession(c, h.sessionRepo)
	if err != nil {
		return err
	}

	jobText := c.FormValue("job_text")

	if jobFile, err := c.FormFile("job_file"); err == nil && jobFile.Filename != "" {
		extracted, err := h.extractJobFile(c, jobFile)
		if err != nil {
			return err
		}
		jobText = extracted
	}

	jobText = strings.TrimSpace(jobText)
	if jobText == "" {
		return fiber.NewError(fiber.StatusBadRequest, "No job description text provided")
	}

	if err := h.sessionRepo.SetJobText(session.ID, jobText); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to store job description")
	}

	length := len([]rune(jobText))
	h.logger.Info("job description stored",
		zap.String("session_id", session.ID.String()),
		zap.Int("text_length", length),
	)

	return c.JSON(fiber.Map{
		"message":        fmt.Sprintf("Job description processed successfully (%d characters)", length),
		"text_length":    length,
		"extracted_text": jobText,
	})
}

func (h *UploadHandler) extractJobFile(c *fiber.Ctx, jobFile *multipart.FileHeader) (string, error) {
	if jobFile.Size > h.maxFileSize {
		return "", fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Job file too large. Max size: %d bytes", h.maxFileSize))
	}

	data, err := readFormFile(jobFile)
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "Failed to read job file")
	}

	text, err := h.extractor.Extract(c.UserContext(), data, models.KindFromFilename(jobFile.Filename))
	if err != nil {
		h.logger.Warn("job file extraction failed", zap.String("file_name", jobFile.Filename), zap.Error(err))
		return "", fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Error extracting text from file: %v", err))
	}

	text = services.NormalizeText(text)
	if text == "" || strings.HasPrefix(text, services.ExtractionErrorMarker) {
		return "", fiber.NewError(fiber.StatusBadRequest, "No text could be extracted from the file")
	}

	return text, nil
}

// HandleJobStatus handles GET /sessions/:id/job
func (h *UploadHandler) HandleJobStatus(c *fiber.Ctx) error {
	session, err := loadSession(c, h.sessionRepo)
	if err != nil {
		return err
	}

	return c.JSON(models.JobStatusResponse{
		HasJobDescription: strings.TrimSpace(session.JobText) != "",
		JobLength:         len([]rune(session.JobText)),
	})
}

// HandleUploadResumes handles POST /sessions/:id/resumes. Files of any kind
// are accepted; unreadable ones are reported per candidate after analysis.
func (h *UploadHandler) HandleUploadResumes(c *fiber.Ctx) error {
	session, err := loadSession(c, h.sessionRepo)
	if err != nil {
		return err
	}

	if session.Status == models.StatusQueued || session.Status == models.StatusProcessing {
		return fiber.NewError(fiber.StatusConflict, "Session is being analyzed")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "failed to parse multipart form")
	}

	var files []*multipart.FileHeader
	for _, f := range form.File["resume_files"] {
		if f.Filename != "" {
			files = append(files, f)
		}
	}
	if len(files) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "No files uploaded")
	}

	for _, f := range files {
		if f.Size > h.maxFileSize {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("%s too large. Max size: %d bytes", f.Filename, h.maxFileSize))
		}
	}

	existing, err := h.docRepo.CountBySession(session.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load session documents")
	}

	responses := make([]models.UploadResponse, 0, len(files))
	for i, f := range files {
		filename, filePath, err := h.storageService.SaveFile(f, "resume")
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, fmt.Sprintf("failed to save %s: %v", f.Filename, err))
		}

		doc := models.Document{
			ID:               uuid.New(),
			SessionID:        session.ID,
			Position:         int(existing) + i,
			Filename:         filename,
			OriginalFileName: f.Filename,
			Kind:             models.KindFromFilename(f.Filename),
			FilePath:         filePath,
			CreatedAt:        time.Now(),
			UpdatedAt:        time.Now(),
		}

		if err := h.docRepo.Create(&doc); err != nil {
			// Cleanup uploaded file if database insert fails
			_ = h.storageService.DeleteFile(filename)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to save resume document record")
		}

		responses = append(responses, models.UploadResponse{
			ID:           doc.ID.String(),
			Filename:     doc.Filename,
			OriginalName: doc.OriginalFileName,
			Kind:         doc.Kind,
			Position:     doc.Position,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   fmt.Sprintf("%d files uploaded successfully", len(responses)),
		"documents": responses,
	})
}

func readFormFile(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}
