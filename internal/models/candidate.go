package models

import (
	"time"

	"github.com/google/uuid"
)

// Verdicts produced by the model-backed scoring path.
const (
	VerdictExcellentFit = "Excellent Fit - Highly Recommended"
	VerdictGoodFit      = "Good Fit - Recommended for Interview"
	VerdictModerateFit  = "Moderate Fit - Consider with Reservations"
	VerdictPoorFit      = "Poor Fit - Not Recommended"
)

// Verdicts produced by the heuristic fallback path.
const (
	VerdictGoodCandidate      = "Good Candidate - Proceed with Interview"
	VerdictPotentialCandidate = "Potential Candidate - Review Carefully"
	VerdictBelowRequirements  = "Below Requirements - Consider for Future"
)

// VerdictFileProcessingError marks a resume whose text could not be extracted.
const VerdictFileProcessingError = "File Processing Error"

const MatchUnknown = "Unknown"

// JobProfile is the structured form of a job description. It is built once per
// batch and shared read-only by every resume analysis.
type JobProfile struct {
	Title              string   `json:"job_title"`
	MustHaveSkills     []string `json:"must_have_skills"`
	GoodToHaveSkills   []string `json:"good_to_have_skills"`
	ExperienceRequired string   `json:"experience_required"`
	EducationRequired  string   `json:"education_required"`
}

// SkillMatchResult is the deterministic skill-overlap score of one resume.
type SkillMatchResult struct {
	TotalScore     int      `json:"total_score"`
	MatchedSkills  []string `json:"matched_skills"`
	MissingSkills  []string `json:"missing_skills"`
	SkillMatchRate float64  `json:"skill_match_rate"`
}

// CandidateResult is the scored record of one resume. The four sub-scores are
// nil when the heuristic fallback produced the result.
type CandidateResult struct {
	CandidateName        string   `gorm:"type:text" json:"candidate_name"`
	FileName             string   `gorm:"type:text" json:"file_name"`
	OverallScore         int      `gorm:"not null" json:"overall_score"`
	Verdict              string   `gorm:"type:text" json:"verdict"`
	MatchedSkills        []string `gorm:"type:jsonb;serializer:json" json:"matched_skills"`
	MissingSkills        []string `gorm:"type:jsonb;serializer:json" json:"missing_skills"`
	Strengths            []string `gorm:"type:jsonb;serializer:json" json:"strengths"`
	Recommendations      []string `gorm:"type:jsonb;serializer:json" json:"recommendations"`
	ExperienceMatch      string   `gorm:"type:text" json:"experience_match"`
	EducationMatch       string   `gorm:"type:text" json:"education_match"`
	KeyAchievements      []string `gorm:"type:jsonb;serializer:json" json:"key_achievements"`
	YearsOfExperience    int      `json:"years_of_experience"`
	TechnicalSkillsScore *int     `json:"technical_skills_score,omitempty"`
	ExperienceScore      *int     `json:"experience_score,omitempty"`
	EducationScore       *int     `json:"education_score,omitempty"`
	ProfileQualityScore  *int     `json:"profile_quality_score,omitempty"`
}

// HasSubScores reports whether the model-backed path produced the result.
func (r CandidateResult) HasSubScores() bool {
	return r.TechnicalSkillsScore != nil &&
		r.ExperienceScore != nil &&
		r.EducationScore != nil &&
		r.ProfileQualityScore != nil
}

// Candidate is a persisted CandidateResult ranked within its session.
type Candidate struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;index" json:"session_id"`
	Rank      int       `gorm:"not null" json:"rank"`

	CandidateResult `gorm:"embedded"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Candidate) TableName() string {
	return "candidates"
}
