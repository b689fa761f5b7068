package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/resume-matcher/internal/models"
)

type SessionRepository interface {
	Create(session *models.Session) error
	FindByID(id uuid.UUID) (*models.Session, error)
	UpdateStatus(id uuid.UUID, status models.SessionStatus) error
	SetJobText(id uuid.UUID, jobText string) error
	SaveResults(id uuid.UUID, profile models.JobProfile, results []models.CandidateResult) error
	UpdateError(id uuid.UUID, errorMsg string) error
	FindPendingJobs(limit int) ([]models.Session, error)
	Delete(id uuid.UUID) error
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(session *models.Session) error {
	if err := r.db.Create(session).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *sessionRepository) FindByID(id uuid.UUID) (*models.Session, error) {
	var session models.Session
	if err := r.db.Where("id = ?", id).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return &session, nil
}

func (r *sessionRepository) UpdateStatus(id uuid.UUID, status models.SessionStatus) error {
	return r.update(id, map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})
}

func (r *sessionRepository) SetJobText(id uuid.UUID, jobText string) error {
	return r.update(id, map[string]interface{}{
		"job_text":   jobText,
		"updated_at": time.Now(),
	})
}

func (r *sessionRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	return r.update(id, map[string]interface{}{
		"status":        models.StatusFailed,
		"error_message": errorMsg,
		"updated_at":    time.Now(),
	})
}

// SaveResults replaces the session's candidates with the ranked results and
// marks it completed, in one transaction.
func (r *sessionRepository) SaveResults(id uuid.UUID, profile models.JobProfile, results []models.CandidateResult) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", id).Delete(&models.Candidate{}).Error; err != nil {
			return fmt.Errorf("failed to clear candidates: %w", err)
		}

		if len(results) > 0 {
			candidates := make([]models.Candidate, len(results))
			for i, result := range results {
				candidates[i] = models.Candidate{
					ID:              uuid.New(),
					SessionID:       id,
					Rank:            i + 1,
					CandidateResult: result,
				}
			}
			if err := tx.Create(&candidates).Error; err != nil {
				return fmt.Errorf("failed to save candidates: %w", err)
			}
		}

		// Struct updates go through the jsonb serializer on JobProfile.
		result := tx.Model(&models.Session{ID: id}).
			Select("job_profile", "status", "error_message", "updated_at").
			Updates(&models.Session{
				JobProfile: &profile,
				Status:     models.StatusCompleted,
				UpdatedAt:  time.Now(),
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update session: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("session %s: %w", id, ErrNotFound)
		}

		return nil
	})
}

func (r *sessionRepository) FindPendingJobs(limit int) ([]models.Session, error) {
	var sessions []models.Session
	err := r.db.
		Where("status = ?", models.StatusQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&sessions).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find pending jobs: %w", err)
	}

	return sessions, nil
}

// Delete removes the session with its documents and candidates.
func (r *sessionRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", id).Delete(&models.Candidate{}).Error; err != nil {
			return fmt.Errorf("failed to delete candidates: %w", err)
		}
		if err := tx.Where("session_id = ?", id).Delete(&models.Document{}).Error; err != nil {
			return fmt.Errorf("failed to delete documents: %w", err)
		}

		result := tx.Where("id = ?", id).Delete(&models.Session{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete session: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("session %s: %w", id, ErrNotFound)
		}
		return nil
	})
}

func (r *sessionRepository) update(id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.Model(&models.Session{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update session: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("session %s: %w", id, ErrNotFound)
	}

	return nil
}
