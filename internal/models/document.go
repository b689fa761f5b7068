package models

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DocumentKind is the declared format of an uploaded document.
type DocumentKind string

const (
	KindPDF         DocumentKind = "pdf"
	KindDOCX        DocumentKind = "docx"
	KindUnsupported DocumentKind = "unsupported"
)

const (
	MIMEPDF  = "application/pdf"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// KindFromFilename resolves the document kind from the file extension.
func KindFromFilename(name string) DocumentKind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return KindPDF
	case ".docx":
		return KindDOCX
	default:
		return KindUnsupported
	}
}

// KindFromMIME resolves the document kind from a content type header.
func KindFromMIME(mime string) DocumentKind {
	mime = strings.TrimSpace(strings.ToLower(mime))
	if i := strings.Index(mime, ";"); i != -1 {
		mime = strings.TrimSpace(mime[:i])
	}

	switch mime {
	case MIMEPDF:
		return KindPDF
	case MIMEDOCX:
		return KindDOCX
	default:
		return KindUnsupported
	}
}

// Document is an uploaded resume stored on disk for a session.
type Document struct {
	ID               uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SessionID        uuid.UUID    `gorm:"type:uuid;not null;index" json:"session_id"`
	Position         int          `gorm:"not null" json:"position"`
	Filename         string       `gorm:"type:text" json:"filename"`
	OriginalFileName string       `gorm:"type:text" json:"original_filename"`
	Kind             DocumentKind `gorm:"type:text" json:"kind"`
	FilePath         string       `gorm:"type:text" json:"file_path"`
	CreatedAt        time.Time    `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt        time.Time    `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (d *Document) TableName() string {
	return "documents"
}
