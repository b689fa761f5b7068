package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/logger"
	"alfredoptarigan/resume-matcher/internal/repositories"
)

type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(sessionID uuid.UUID)
}

type worker struct {
	sessionRepo     repositories.SessionRepository
	analysisService AnalysisService
	jobQueue        chan uuid.UUID
	concurrency     int
	pollInterval    time.Duration
	logger          *zap.Logger
	wg              sync.WaitGroup
	stopChan        chan struct{}
	stopOnce        sync.Once

	mu      sync.Mutex
	pending map[uuid.UUID]struct{}
}

func NewWorker(
	sessionRepo repositories.SessionRepository,
	analysisService AnalysisService,
	concurrency int,
	pollInterval time.Duration,
	log *zap.Logger,
) Worker {
	if concurrency < 1 {
		concurrency = 1
	}
	if pollInterval <= 0 {
		pollInterval = 10 * time.Second
	}

	return &worker{
		sessionRepo:     sessionRepo,
		analysisService: analysisService,
		jobQueue:        make(chan uuid.UUID, 100),
		concurrency:     concurrency,
		pollInterval:    pollInterval,
		logger:          logger.OrNop(log),
		stopChan:        make(chan struct{}),
		pending:         make(map[uuid.UUID]struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	w.logger.Info("starting worker", zap.Int("concurrency", w.concurrency))

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollPendingJobs(ctx)
}

// Stop implements Worker.
func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		w.logger.Info("stopping worker")
		close(w.stopChan)
	})
	w.wg.Wait()
	w.logger.Info("worker stopped")
}

// EnqueueJob implements Worker. A session that is already queued or running
// is not queued again.
func (w *worker) EnqueueJob(sessionID uuid.UUID) {
	w.mu.Lock()
	if _, ok := w.pending[sessionID]; ok {
		w.mu.Unlock()
		return
	}
	w.pending[sessionID] = struct{}{}
	w.mu.Unlock()

	select {
	case w.jobQueue <- sessionID:
		w.logger.Debug("session enqueued", zap.String("session_id", sessionID.String()))
	case <-w.stopChan:
		w.done(sessionID)
		w.logger.Warn("worker stopped, cannot enqueue session", zap.String("session_id", sessionID.String()))
	}
}

func (w *worker) done(sessionID uuid.UUID) {
	w.mu.Lock()
	delete(w.pending, sessionID)
	w.mu.Unlock()
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()
	log := w.logger.With(zap.Int("worker", workerID))

	for {
		select {
		case <-w.stopChan:
			return
		case <-ctx.Done():
			return
		case sessionID := <-w.jobQueue:
			log.Info("processing session", zap.String("session_id", sessionID.String()))
			if err := w.analysisService.RunSession(ctx, sessionID); err != nil {
				log.Error("session failed", zap.String("session_id", sessionID.String()), zap.Error(err))
			} else {
				log.Info("session completed", zap.String("session_id", sessionID.String()))
			}
			w.done(sessionID)
		}
	}
}

func (w *worker) pollPendingJobs(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			pending, err := w.sessionRepo.FindPendingJobs(10)
			if err != nil {
				w.logger.Warn("failed to fetch pending sessions", zap.Error(err))
				continue
			}

			if len(pending) > 0 {
				w.logger.Info("found pending sessions", zap.Int("count", len(pending)))
			}

			for _, session := range pending {
				w.EnqueueJob(session.ID)
			}
		}
	}
}
