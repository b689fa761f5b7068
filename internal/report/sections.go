package report

import (
	"errors"
	"fmt"

	"alfredoptarigan/resume-matcher/internal/models"
)

// ErrUnknownSection is returned by Section for names outside Sections.
var ErrUnknownSection = errors.New("unknown section")

const (
	SectionOverview = "overview"
	SectionSkills   = "skills"
	SectionAnalysis = "analysis"
	SectionInsights = "insights"
)

var Sections = []string{SectionOverview, SectionSkills, SectionAnalysis, SectionInsights}

type Overview struct {
	ProgressBars []ProgressBar `json:"progress_bars"`
	MatchedCount int           `json:"matched_count"`
	MissingCount int           `json:"missing_count"`
	MatchRate    float64       `json:"match_rate"`
}

type Skills struct {
	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`
	MatchedCount  int      `json:"matched_count"`
	MissingCount  int      `json:"missing_count"`
	MatchRate     float64  `json:"match_rate"`
}

type Analysis struct {
	Strengths         []string `json:"strengths"`
	Recommendations   []string `json:"recommendations"`
	ExperienceMatch   string   `json:"experience_match"`
	EducationMatch    string   `json:"education_match"`
	KeyAchievements   []string `json:"key_achievements"`
	YearsOfExperience int      `json:"years_of_experience"`
}

type Insights struct {
	OverallScore      int     `json:"overall_score"`
	Verdict           string  `json:"verdict"`
	Recommendation    string  `json:"recommendation"`
	HireProbability   int     `json:"hire_probability"`
	TrainingTime      string  `json:"training_time"`
	RiskLevel         string  `json:"risk_level"`
	SkillsAlignment   float64 `json:"skills_alignment"`
	ExperienceMatch   string  `json:"experience_match"`
	EducationMatch    string  `json:"education_match"`
	YearsOfExperience int     `json:"years_of_experience"`
}

// Section builds the payload of one candidate detail section.
func Section(name string, r models.CandidateResult) (any, error) {
	m := CalculateMetrics(r)

	switch name {
	case SectionOverview:
		return Overview{
			ProgressBars: ProgressBars(m),
			MatchedCount: m.MatchedCount,
			MissingCount: m.MissingCount,
			MatchRate:    m.MatchRate,
		}, nil
	case SectionSkills:
		return Skills{
			MatchedSkills: nonNil(r.MatchedSkills),
			MissingSkills: nonNil(r.MissingSkills),
			MatchedCount:  m.MatchedCount,
			MissingCount:  m.MissingCount,
			MatchRate:     m.MatchRate,
		}, nil
	case SectionAnalysis:
		return Analysis{
			Strengths:         nonNil(r.Strengths),
			Recommendations:   nonNil(r.Recommendations),
			ExperienceMatch:   r.ExperienceMatch,
			EducationMatch:    r.EducationMatch,
			KeyAchievements:   nonNil(r.KeyAchievements),
			YearsOfExperience: r.YearsOfExperience,
		}, nil
	case SectionInsights:
		return InsightsFor(r), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSection, name)
	}
}

// InsightsFor grades a candidate into a hiring recommendation tier.
func InsightsFor(r models.CandidateResult) Insights {
	score := r.OverallScore
	in := Insights{
		OverallScore:      score,
		Verdict:           r.Verdict,
		SkillsAlignment:   CalculateMetrics(r).MatchRate,
		ExperienceMatch:   r.ExperienceMatch,
		EducationMatch:    r.EducationMatch,
		YearsOfExperience: r.YearsOfExperience,
	}

	switch {
	case score >= 80:
		in.Recommendation = "Highly recommend for immediate interview"
		in.HireProbability = min(95, score+5)
		in.TrainingTime = "1-2 weeks"
		in.RiskLevel = "Low"
	case score >= 65:
		in.Recommendation = "Strong candidate - recommend for interview"
		in.HireProbability = min(90, score+5)
		in.TrainingTime = "2-4 weeks"
		in.RiskLevel = "Low"
	case score >= 50:
		in.Recommendation = "Consider for interview with skill development plan"
		in.HireProbability = min(75, score+5)
		in.TrainingTime = "1-3 months"
		in.RiskLevel = "Medium"
	default:
		in.Recommendation = "May require significant upskilling before interview"
		in.HireProbability = min(60, score+10)
		in.TrainingTime = "3-6 months"
		in.RiskLevel = "High"
	}

	return in
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
