// Package report derives the presentation data served for ranked candidates:
// per-candidate metrics, gauges, section payloads, batch statistics and the
// downloadable text and CSV renderings.
package report

import (
	"math"
	"strings"

	"alfredoptarigan/resume-matcher/internal/models"
)

// Rubric maxima of the four sub-scores.
const (
	MaxTechnicalScore  = 40
	MaxExperienceScore = 25
	MaxEducationScore  = 15
	MaxProfileScore    = 20
)

type Metrics struct {
	SkillsScore         float64 `json:"skills_score"`
	ExperienceScore     float64 `json:"exp_score"`
	EducationScore      float64 `json:"edu_score"`
	ProfileQualityScore float64 `json:"profile_quality_score"`
	MatchedCount        int     `json:"matched_count"`
	MissingCount        int     `json:"missing_count"`
	TotalSkills         int     `json:"total_skills"`
	MatchRate           float64 `json:"match_rate"`
	Confidence          int     `json:"confidence"`
}

// CalculateMetrics uses the model sub-scores when present and otherwise
// apportions the overall score by rubric weight.
func CalculateMetrics(r models.CandidateResult) Metrics {
	base := float64(r.OverallScore)
	matched := len(r.MatchedSkills)
	missing := len(r.MissingSkills)
	total := matched + missing

	var rate float64
	if total > 0 {
		rate = float64(matched) / float64(total) * 100
	}

	return Metrics{
		SkillsScore:         subScoreOr(r.TechnicalSkillsScore, base*0.4),
		ExperienceScore:     subScoreOr(r.ExperienceScore, base*0.25),
		EducationScore:      subScoreOr(r.EducationScore, base*0.15),
		ProfileQualityScore: subScoreOr(r.ProfileQualityScore, base*0.2),
		MatchedCount:        matched,
		MissingCount:        missing,
		TotalSkills:         total,
		MatchRate:           rate,
		Confidence:          min(95, r.OverallScore+5),
	}
}

func subScoreOr(v *int, fallback float64) float64 {
	if v != nil {
		return float64(*v)
	}
	return math.Min(100, fallback)
}

type Gauge struct {
	Score      int    `json:"score"`
	Title      string `json:"title"`
	Status     string `json:"status"`
	ColorClass string `json:"color_class"`
}

func GaugeFor(score int, title string) Gauge {
	g := Gauge{Score: score, Title: title}
	switch {
	case score >= 75:
		g.Status, g.ColorClass = "Excellent", "gauge-excellent"
	case score >= 50:
		g.Status, g.ColorClass = "Good", "gauge-good"
	default:
		g.Status, g.ColorClass = "Fair", "gauge-fair"
	}
	return g
}

// VerdictClass picks the styling tier for a verdict.
func VerdictClass(score int, verdict string) string {
	v := strings.ToLower(verdict)
	switch {
	case score >= 75 || strings.Contains(v, "excellent") || strings.Contains(v, "highly recommended"):
		return "verdict-excellent"
	case score >= 50 || strings.Contains(v, "good") || strings.Contains(v, "recommended"):
		return "verdict-good"
	default:
		return "verdict-fair"
	}
}

type ProgressBar struct {
	Label      string  `json:"label"`
	Value      int     `json:"value"`
	MaxValue   int     `json:"max_value"`
	Percentage float64 `json:"percentage"`
}

func newProgressBar(label string, value float64, maxValue int) ProgressBar {
	v := int(value)
	return ProgressBar{
		Label:      label,
		Value:      v,
		MaxValue:   maxValue,
		Percentage: float64(v) / float64(maxValue) * 100,
	}
}

// ProgressBars renders the four sub-scores against their rubric maxima.
func ProgressBars(m Metrics) []ProgressBar {
	return []ProgressBar{
		newProgressBar("Technical Skills", m.SkillsScore, MaxTechnicalScore),
		newProgressBar("Experience", m.ExperienceScore, MaxExperienceScore),
		newProgressBar("Education", m.EducationScore, MaxEducationScore),
		newProgressBar("Profile Quality", m.ProfileQualityScore, MaxProfileScore),
	}
}
