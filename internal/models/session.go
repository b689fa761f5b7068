package models

import (
	"time"

	"github.com/google/uuid"
)

type SessionStatus string

const (
	StatusPending    SessionStatus = "pending"
	StatusQueued     SessionStatus = "queued"
	StatusProcessing SessionStatus = "processing"
	StatusCompleted  SessionStatus = "completed"
	StatusFailed     SessionStatus = "failed"
)

// Session is one analysis run: a job description, its resumes and, once the
// worker is done, the parsed job profile and ranked candidates.
type Session struct {
	ID           uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobText      string        `gorm:"type:text" json:"job_text"`
	JobProfile   *JobProfile   `gorm:"type:jsonb;serializer:json" json:"job_profile,omitempty"`
	Status       SessionStatus `gorm:"not null;default:'pending'" json:"status"`
	ErrorMessage *string       `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time     `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time     `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	Documents  []Document  `gorm:"foreignKey:SessionID" json:"-"`
	Candidates []Candidate `gorm:"foreignKey:SessionID" json:"-"`
}

func (Session) TableName() string {
	return "sessions"
}
