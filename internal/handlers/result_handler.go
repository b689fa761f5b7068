package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/report"
	"alfredoptarigan/resume-matcher/internal/repositories"
)

type ResultHandler struct {
	sessionRepo   repositories.SessionRepository
	candidateRepo repositories.CandidateRepository
}

func NewResultHandler(
	sessionRepo repositories.SessionRepository,
	candidateRepo repositories.CandidateRepository,
) *ResultHandler {
	return &ResultHandler{
		sessionRepo:   sessionRepo,
		candidateRepo: candidateRepo,
	}
}

// CandidateDetail is the full view of one ranked candidate.
type CandidateDetail struct {
	Index           int                  `json:"index"`
	Total           int                  `json:"total"`
	Candidate       models.Candidate     `json:"candidate"`
	Metrics         report.Metrics       `json:"metrics"`
	ScoreGauge      report.Gauge         `json:"score_gauge"`
	ConfidenceGauge report.Gauge         `json:"confidence_gauge"`
	VerdictClass    string               `json:"verdict_class"`
	ProgressBars    []report.ProgressBar `json:"progress_bars"`
	CandidateNames  []string             `json:"candidate_names"`
}

// HandleGetResults handles GET /sessions/:id/results
func (h *ResultHandler) HandleGetResults(c *fiber.Ctx) error {
	session, err := loadSession(c, h.sessionRepo)
	if err != nil {
		return err
	}

	response := models.ResultResponse{
		ID:     session.ID.String(),
		Status: string(session.Status),
	}

	// If completed, include results
	if session.Status == models.StatusCompleted {
		candidates, err := h.candidateRepo.FindBySession(session.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load candidates")
		}
		response.JobProfile = session.JobProfile
		response.Candidates = candidates
	}

	// If failed, include error message
	if session.Status == models.StatusFailed {
		response.ErrorMessage = session.ErrorMessage
	}

	return c.JSON(response)
}

// HandleGetCandidate handles GET /sessions/:id/candidates/:index
func (h *ResultHandler) HandleGetCandidate(c *fiber.Ctx) error {
	candidates, index, err := h.rankedCandidate(c)
	if err != nil {
		return err
	}

	candidate := candidates[index]
	metrics := report.CalculateMetrics(candidate.CandidateResult)

	names := make([]string, len(candidates))
	for i, cand := range candidates {
		names[i] = fmt.Sprintf("%s (%d/100)", cand.CandidateName, cand.OverallScore)
	}

	return c.JSON(CandidateDetail{
		Index:           index,
		Total:           len(candidates),
		Candidate:       candidate,
		Metrics:         metrics,
		ScoreGauge:      report.GaugeFor(candidate.OverallScore, "Overall Score"),
		ConfidenceGauge: report.GaugeFor(metrics.Confidence, "AI Confidence"),
		VerdictClass:    report.VerdictClass(candidate.OverallScore, candidate.Verdict),
		ProgressBars:    report.ProgressBars(metrics),
		CandidateNames:  names,
	})
}

// HandleGetSection handles GET /sessions/:id/candidates/:index/sections/:section
func (h *ResultHandler) HandleGetSection(c *fiber.Ctx) error {
	candidates, index, err := h.rankedCandidate(c)
	if err != nil {
		return err
	}

	section, err := report.Section(c.Params("section"), candidates[index].CandidateResult)
	if err != nil {
		if errors.Is(err, report.ErrUnknownSection) {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid section")
		}
		return err
	}

	return c.JSON(fiber.Map{
		"section": c.Params("section"),
		"data":    section,
	})
}

// HandleGetBatch handles GET /sessions/:id/batch
func (h *ResultHandler) HandleGetBatch(c *fiber.Ctx) error {
	candidates, err := h.completedCandidates(c)
	if err != nil {
		return err
	}

	summary, err := report.SummarizeBatch(candidateResults(candidates))
	if err != nil {
		if errors.Is(err, report.ErrNotEnoughCandidates) {
			return fiber.NewError(fiber.StatusBadRequest, "Need multiple candidates for batch analysis")
		}
		return err
	}

	return c.JSON(summary)
}

// completedCandidates loads the ranked candidates of a completed session.
func (h *ResultHandler) completedCandidates(c *fiber.Ctx) ([]models.Candidate, error) {
	session, err := loadSession(c, h.sessionRepo)
	if err != nil {
		return nil, err
	}

	if session.Status != models.StatusCompleted {
		return nil, fiber.NewError(fiber.StatusConflict, "Analysis not completed")
	}

	candidates, err := h.candidateRepo.FindBySession(session.ID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load candidates")
	}

	return candidates, nil
}

func (h *ResultHandler) rankedCandidate(c *fiber.Ctx) ([]models.Candidate, int, error) {
	index, err := candidateIndex(c)
	if err != nil {
		return nil, 0, err
	}

	candidates, err := h.completedCandidates(c)
	if err != nil {
		return nil, 0, err
	}

	if index >= len(candidates) {
		return nil, 0, fiber.NewError(fiber.StatusNotFound, "Candidate not found")
	}

	return candidates, index, nil
}

func candidateResults(candidates []models.Candidate) []models.CandidateResult {
	results := make([]models.CandidateResult, len(candidates))
	for i, cand := range candidates {
		results[i] = cand.CandidateResult
	}
	return results
}
