package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/models"
)

const analysisResponse = `{
  "technical_skills_score": 30,
  "experience_score": 20,
  "education_score": 12,
  "profile_quality_score": 15,
  "experience_match": "Good Match",
  "education_match": "Excellent Match",
  "strengths": ["Strong Python background", "Cloud exposure"],
  "recommendations": ["Learn Docker"],
  "key_achievements": ["Cut query latency by 40%"],
  "years_of_experience": 4
}`

func intPtr(v int) *int { return &v }

func TestResumeAnalyzerModelPath(t *testing.T) {
	analyzer := NewResumeAnalyzer(fixedGateway(analysisResponse), zap.NewNop())
	resume := "Python and SQL developer with AWS experience"

	got := analyzer.Analyze(context.Background(), resume, DefaultJobProfile())

	// Skill total: 25 + 2/5*60 + 1/3*15 = 54. Model total: 77.
	// round(77*0.7 + 54*0.3) = round(70.1) = 70.
	assert.Equal(t, 70, got.OverallScore)
	assert.Equal(t, models.VerdictGoodFit, got.Verdict)
	assert.Equal(t, []string{"Python", "SQL", "AWS"}, got.MatchedSkills)
	assert.Equal(t, []string{"JavaScript", "Communication", "Problem Solving"}, got.MissingSkills)
	assert.Equal(t, []string{"Strong Python background", "Cloud exposure"}, got.Strengths)
	assert.Equal(t, []string{"Learn Docker"}, got.Recommendations)
	assert.Equal(t, []string{"Cut query latency by 40%"}, got.KeyAchievements)
	assert.Equal(t, "Good Match", got.ExperienceMatch)
	assert.Equal(t, "Excellent Match", got.EducationMatch)
	assert.Equal(t, 4, got.YearsOfExperience)
	assert.Equal(t, intPtr(30), got.TechnicalSkillsScore)
	assert.Equal(t, intPtr(20), got.ExperienceScore)
	assert.Equal(t, intPtr(12), got.EducationScore)
	assert.Equal(t, intPtr(15), got.ProfileQualityScore)
	assert.True(t, got.HasSubScores())
}

func TestResumeAnalyzerDefaultsMissingFields(t *testing.T) {
	analyzer := NewResumeAnalyzer(fixedGateway("```\n{}\n```"), zap.NewNop())

	got := analyzer.Analyze(context.Background(), "nothing relevant here", models.JobProfile{})

	// Model total from defaults: 20+15+10+10 = 55. Skill total: 25.
	// round(38.5 + 7.5) = 46.
	assert.Equal(t, 46, got.OverallScore)
	assert.Equal(t, models.VerdictPoorFit, got.Verdict)
	assert.Equal(t, []string{"Shows relevant background"}, got.Strengths)
	assert.Equal(t, []string{"Continue skill development"}, got.Recommendations)
	assert.Equal(t, []string{}, got.KeyAchievements)
	assert.Equal(t, "Average Match", got.ExperienceMatch)
	assert.Equal(t, "Satisfactory", got.EducationMatch)
	assert.Equal(t, 0, got.YearsOfExperience)
	assert.Equal(t, intPtr(20), got.TechnicalSkillsScore)
	assert.Equal(t, intPtr(15), got.ExperienceScore)
	assert.Equal(t, intPtr(10), got.EducationScore)
	assert.Equal(t, intPtr(10), got.ProfileQualityScore)
}

func TestResumeAnalyzerClampsSubScores(t *testing.T) {
	response := `{
  "technical_skills_score": 95,
  "experience_score": "22",
  "education_score": -4,
  "profile_quality_score": "n/a",
  "years_of_experience": -3
}`
	analyzer := NewResumeAnalyzer(fixedGateway(response), zap.NewNop())

	got := analyzer.Analyze(context.Background(), "resume", models.JobProfile{})

	assert.Equal(t, intPtr(40), got.TechnicalSkillsScore)
	assert.Equal(t, intPtr(22), got.ExperienceScore)
	assert.Equal(t, intPtr(0), got.EducationScore)
	assert.Equal(t, intPtr(10), got.ProfileQualityScore)
	assert.Equal(t, 0, got.YearsOfExperience)
	// round(72*0.7 + 25*0.3) = round(57.9) = 58
	assert.Equal(t, 58, got.OverallScore)
}

func TestResumeAnalyzerFallbackScenario(t *testing.T) {
	analyzer := NewResumeAnalyzer(failingGateway(), zap.NewNop())
	profile := models.JobProfile{MustHaveSkills: []string{"Python", "SQL"}}
	resume := "I have 6 years of experience as a developer, built and designed systems. Bachelor's degree in CS."

	got := analyzer.Analyze(context.Background(), resume, profile)

	assert.Equal(t, 47, got.OverallScore)
	assert.Equal(t, models.VerdictBelowRequirements, got.Verdict)
	assert.Equal(t, 6, got.YearsOfExperience)
	assert.Equal(t, "Good Match", got.ExperienceMatch)
	assert.Equal(t, "Adequate", got.EducationMatch)
	assert.Equal(t, []string{"Python", "SQL"}, got.MissingSkills)
	assert.Equal(t, []string{"Technical background present", "Relevant experience indicated"}, got.Strengths)
	assert.Equal(t, []string{"Strengthen missing technical skills", "Highlight specific achievements"}, got.Recommendations)
	assert.False(t, got.HasSubScores())
	assert.Nil(t, got.TechnicalSkillsScore)
	assert.Nil(t, got.ProfileQualityScore)
}

func TestResumeAnalyzerFallbackOnBadResponses(t *testing.T) {
	gateways := map[string]*stubGateway{
		"gateway error": failingGateway(),
		"prose":         fixedGateway("The candidate looks great."),
		"array":         fixedGateway("[1, 2, 3]"),
		"panic":         {respond: func(string) (string, error) { panic("boom") }},
	}

	for name, gateway := range gateways {
		t.Run(name, func(t *testing.T) {
			analyzer := NewResumeAnalyzer(gateway, zap.NewNop())

			var got models.CandidateResult
			require.NotPanics(t, func() {
				got = analyzer.Analyze(context.Background(), "short resume", DefaultJobProfile())
			})

			assert.GreaterOrEqual(t, got.YearsOfExperience, 1)
			assert.False(t, got.HasSubScores())
			assert.GreaterOrEqual(t, got.OverallScore, 0)
			assert.LessOrEqual(t, got.OverallScore, 100)
			assert.Equal(t, "Limited Experience", got.ExperienceMatch)
			assert.Equal(t, "Basic", got.EducationMatch)
		})
	}
}

func TestResumeAnalyzerPromptUsesLeadingCharacters(t *testing.T) {
	gateway := failingGateway()
	analyzer := NewResumeAnalyzer(gateway, zap.NewNop())
	resume := strings.Repeat("x", 3000) + "TAIL-MARKER"

	analyzer.Analyze(context.Background(), resume, models.JobProfile{
		Title:          "Data Engineer",
		MustHaveSkills: []string{"Spark"},
	})

	prompts := gateway.calls()
	require.Len(t, prompts, 1)
	assert.Contains(t, prompts[0], strings.Repeat("x", 3000))
	assert.NotContains(t, prompts[0], "TAIL-MARKER")
	assert.Contains(t, prompts[0], "Data Engineer")
	assert.Contains(t, prompts[0], `["Spark"]`)
}

func TestFallbackAnalysisBonuses(t *testing.T) {
	skills := models.SkillMatchResult{TotalScore: 85}
	resume := "Project lead. Developed, implemented, designed, built and created many things. " +
		"12 years experience, master of science"

	got := FallbackAnalysis(resume, skills)

	// 85 + 10 (years) + 8 (degree) + 10 (capped keywords) clamps to 100.
	assert.Equal(t, 100, got.OverallScore)
	assert.Equal(t, models.VerdictGoodCandidate, got.Verdict)
	assert.Equal(t, "Adequate", got.EducationMatch)
}

func TestFallbackAnalysisMidExperience(t *testing.T) {
	got := FallbackAnalysis("3 yrs of support work", models.SkillMatchResult{TotalScore: 50})

	assert.Equal(t, 55, got.OverallScore)
	assert.Equal(t, models.VerdictPotentialCandidate, got.Verdict)
	assert.Equal(t, 3, got.YearsOfExperience)
	assert.Equal(t, "Good Match", got.ExperienceMatch)
}

func TestEstimateYearsOfExperience(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{text: "no numbers here", want: 1},
		{text: "2 years at Acme", want: 2},
		{text: "3 yrs then 7-years then 4 year", want: 7},
		{text: "10Years in retail", want: 10},
		{text: "0 years", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateYearsOfExperience(tt.text))
		})
	}
}

func TestBlendScores(t *testing.T) {
	assert.Equal(t, 0, BlendScores(0, 0))
	assert.Equal(t, 100, BlendScores(100, 100))
	assert.Equal(t, 58, BlendScores(72, 25))
	assert.Equal(t, 70, BlendScores(77, 54))
}

func TestVerdicts(t *testing.T) {
	primary := map[int]string{
		100: models.VerdictExcellentFit,
		80:  models.VerdictExcellentFit,
		79:  models.VerdictGoodFit,
		65:  models.VerdictGoodFit,
		64:  models.VerdictModerateFit,
		50:  models.VerdictModerateFit,
		49:  models.VerdictPoorFit,
		0:   models.VerdictPoorFit,
	}
	for score, want := range primary {
		assert.Equal(t, want, PrimaryVerdict(score), "primary %d", score)
	}

	fallback := map[int]string{
		75: models.VerdictGoodCandidate,
		74: models.VerdictPotentialCandidate,
		55: models.VerdictPotentialCandidate,
		54: models.VerdictBelowRequirements,
	}
	for score, want := range fallback {
		assert.Equal(t, want, FallbackVerdict(score), "fallback %d", score)
	}
}
