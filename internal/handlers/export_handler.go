package handlers

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-matcher/internal/report"
	"alfredoptarigan/resume-matcher/internal/repositories"
)

const csvExportName = "resume_analysis_results.csv"

type ExportHandler struct {
	results *ResultHandler
	now     func() time.Time
}

func NewExportHandler(
	sessionRepo repositories.SessionRepository,
	candidateRepo repositories.CandidateRepository,
) *ExportHandler {
	return &ExportHandler{
		results: NewResultHandler(sessionRepo, candidateRepo),
		now:     time.Now,
	}
}

// HandleReport handles GET /sessions/:id/candidates/:index/report
func (h *ExportHandler) HandleReport(c *fiber.Ctx) error {
	candidates, index, err := h.results.rankedCandidate(c)
	if err != nil {
		return err
	}

	result := candidates[index].CandidateResult

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", report.ReportFileName(result)))
	return c.SendString(report.TextReport(result, h.now()))
}

// HandleCSV handles GET /sessions/:id/export.csv
func (h *ExportHandler) HandleCSV(c *fiber.Ctx) error {
	candidates, err := h.results.completedCandidates(c)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "No results to export")
	}

	var buf bytes.Buffer
	if err := report.WriteCSV(&buf, candidateResults(candidates)); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to render CSV")
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", csvExportName))
	return c.Send(buf.Bytes())
}
