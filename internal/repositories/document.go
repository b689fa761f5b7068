package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/resume-matcher/internal/models"
)

type DocumentRepository interface {
	Create(document *models.Document) error
	FindBySession(sessionID uuid.UUID) ([]models.Document, error)
	CountBySession(sessionID uuid.UUID) (int64, error)
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

// Create implements DocumentRepository.
func (d *documentRepository) Create(document *models.Document) error {
	if err := d.db.Create(document).Error; err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	return nil
}

// FindBySession returns the session's documents in submission order.
func (d *documentRepository) FindBySession(sessionID uuid.UUID) ([]models.Document, error) {
	var docs []models.Document
	if err := d.db.Where("session_id = ?", sessionID).Order("position ASC").Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("failed to find documents: %w", err)
	}

	return docs, nil
}

// CountBySession implements DocumentRepository.
func (d *documentRepository) CountBySession(sessionID uuid.UUID) (int64, error) {
	var count int64
	if err := d.db.Model(&models.Document{}).Where("session_id = ?", sessionID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}

	return count, nil
}
