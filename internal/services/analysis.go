package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/logger"
	"alfredoptarigan/resume-matcher/internal/metrics"
	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/repositories"
)

// BatchRunner is the part of Orchestrator the session pipeline depends on.
type BatchRunner interface {
	RunBatch(ctx context.Context, jobText string, inputs []ResumeInput) ([]models.CandidateResult, models.JobProfile, error)
}

type AnalysisService interface {
	RunSession(ctx context.Context, sessionID uuid.UUID) error
}

type analysisService struct {
	sessionRepo repositories.SessionRepository
	docRepo     repositories.DocumentRepository
	storage     StorageService
	runner      BatchRunner
	logger      *zap.Logger
}

func NewAnalysisService(
	sessionRepo repositories.SessionRepository,
	docRepo repositories.DocumentRepository,
	storage StorageService,
	runner BatchRunner,
	log *zap.Logger,
) AnalysisService {
	return &analysisService{
		sessionRepo: sessionRepo,
		docRepo:     docRepo,
		storage:     storage,
		runner:      runner,
		logger:      logger.OrNop(log),
	}
}

// RunSession loads a queued session, scores its resumes and stores the ranked
// candidates. Stored resume files are removed once the session completes.
func (a *analysisService) RunSession(ctx context.Context, sessionID uuid.UUID) error {
	log := a.logger.With(zap.String("session_id", sessionID.String()))

	if err := a.sessionRepo.UpdateStatus(sessionID, models.StatusProcessing); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	session, err := a.sessionRepo.FindByID(sessionID)
	if err != nil {
		return a.fail(sessionID, fmt.Errorf("failed to get session: %w", err))
	}

	if strings.TrimSpace(session.JobText) == "" {
		return a.fail(sessionID, fmt.Errorf("session has no job description"))
	}

	docs, err := a.docRepo.FindBySession(sessionID)
	if err != nil {
		return a.fail(sessionID, fmt.Errorf("failed to get documents: %w", err))
	}
	if len(docs) == 0 {
		return a.fail(sessionID, fmt.Errorf("session has no resumes"))
	}

	inputs := make([]ResumeInput, 0, len(docs))
	for _, doc := range docs {
		data, err := a.storage.ReadFile(doc.Filename)
		if err != nil {
			return a.fail(sessionID, fmt.Errorf("failed to read %s: %w", doc.OriginalFileName, err))
		}
		inputs = append(inputs, ResumeInput{
			Name: doc.OriginalFileName,
			Kind: doc.Kind,
			Data: data,
		})
	}

	log.Info("analyzing session", zap.Int("resumes", len(inputs)))

	results, profile, err := a.runner.RunBatch(ctx, session.JobText, inputs)
	if err != nil {
		return a.fail(sessionID, fmt.Errorf("failed to run batch: %w", err))
	}

	if err := a.sessionRepo.SaveResults(sessionID, profile, results); err != nil {
		return a.fail(sessionID, fmt.Errorf("failed to save results: %w", err))
	}
	metrics.SessionsProcessed.WithLabelValues(string(models.StatusCompleted)).Inc()

	for _, doc := range docs {
		if err := a.storage.DeleteFile(doc.Filename); err != nil {
			log.Warn("failed to remove stored resume", zap.String("file", doc.Filename), zap.Error(err))
		}
	}

	log.Info("session completed",
		zap.String("job_title", profile.Title),
		zap.Int("candidates", len(results)),
	)
	return nil
}

func (a *analysisService) fail(sessionID uuid.UUID, cause error) error {
	metrics.SessionsProcessed.WithLabelValues(string(models.StatusFailed)).Inc()
	if err := a.sessionRepo.UpdateError(sessionID, cause.Error()); err != nil {
		a.logger.Error("failed to record session error",
			zap.String("session_id", sessionID.String()),
			zap.Error(err),
		)
	}
	return cause
}
