package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/resume-matcher/internal/models"
)

type CandidateRepository interface {
	FindBySession(sessionID uuid.UUID) ([]models.Candidate, error)
	FindByRank(sessionID uuid.UUID, rank int) (*models.Candidate, error)
}

type candidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

// FindBySession returns the ranked candidates, best first.
func (r *candidateRepository) FindBySession(sessionID uuid.UUID) ([]models.Candidate, error) {
	var candidates []models.Candidate
	if err := r.db.Where("session_id = ?", sessionID).Order("rank ASC").Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("failed to find candidates: %w", err)
	}
	return candidates, nil
}

func (r *candidateRepository) FindByRank(sessionID uuid.UUID, rank int) (*models.Candidate, error) {
	var candidate models.Candidate
	err := r.db.Where("session_id = ? AND rank = ?", sessionID, rank).First(&candidate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("candidate %d in session %s: %w", rank, sessionID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find candidate: %w", err)
	}
	return &candidate, nil
}
