package report

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-matcher/internal/models"
)

func intPtr(v int) *int { return &v }

func modelScored() models.CandidateResult {
	return models.CandidateResult{
		CandidateName:        "jane",
		FileName:             "jane.pdf",
		OverallScore:         82,
		Verdict:              models.VerdictExcellentFit,
		MatchedSkills:        []string{"Go", "SQL", "Docker"},
		MissingSkills:        []string{"Kafka"},
		Strengths:            []string{"Clear ownership"},
		Recommendations:      []string{"Learn Kafka"},
		ExperienceMatch:      "Good Match",
		EducationMatch:       "Excellent Match",
		KeyAchievements:      []string{"Led migration", "Cut costs 30%"},
		YearsOfExperience:    7,
		TechnicalSkillsScore: intPtr(36),
		ExperienceScore:      intPtr(20),
		EducationScore:       intPtr(12),
		ProfileQualityScore:  intPtr(16),
	}
}

func heuristicScored() models.CandidateResult {
	return models.CandidateResult{
		CandidateName:     "john",
		FileName:          "john.docx",
		OverallScore:      40,
		Verdict:           models.VerdictBelowRequirements,
		MissingSkills:     []string{"Go"},
		ExperienceMatch:   "Limited Experience",
		EducationMatch:    "Basic",
		YearsOfExperience: 1,
	}
}

func TestCalculateMetrics(t *testing.T) {
	m := CalculateMetrics(modelScored())
	assert.Equal(t, 36.0, m.SkillsScore)
	assert.Equal(t, 20.0, m.ExperienceScore)
	assert.Equal(t, 12.0, m.EducationScore)
	assert.Equal(t, 16.0, m.ProfileQualityScore)
	assert.Equal(t, 3, m.MatchedCount)
	assert.Equal(t, 1, m.MissingCount)
	assert.Equal(t, 4, m.TotalSkills)
	assert.Equal(t, 75.0, m.MatchRate)
	assert.Equal(t, 87, m.Confidence)

	h := CalculateMetrics(heuristicScored())
	assert.InDelta(t, 16.0, h.SkillsScore, 1e-9)
	assert.InDelta(t, 10.0, h.ExperienceScore, 1e-9)
	assert.InDelta(t, 6.0, h.EducationScore, 1e-9)
	assert.InDelta(t, 8.0, h.ProfileQualityScore, 1e-9)
	assert.Equal(t, 0.0, h.MatchRate)
	assert.Equal(t, 45, h.Confidence)

	assert.Equal(t, 95, CalculateMetrics(models.CandidateResult{OverallScore: 100}).Confidence)
	assert.Equal(t, 0.0, CalculateMetrics(models.CandidateResult{}).MatchRate)
}

func TestGaugeFor(t *testing.T) {
	assert.Equal(t, Gauge{Score: 75, Title: "Overall Score", Status: "Excellent", ColorClass: "gauge-excellent"}, GaugeFor(75, "Overall Score"))
	assert.Equal(t, "gauge-good", GaugeFor(50, "x").ColorClass)
	assert.Equal(t, "gauge-fair", GaugeFor(49, "x").ColorClass)
}

func TestVerdictClass(t *testing.T) {
	assert.Equal(t, "verdict-excellent", VerdictClass(90, models.VerdictExcellentFit))
	assert.Equal(t, "verdict-excellent", VerdictClass(10, "Excellent Fit - Highly Recommended"))
	assert.Equal(t, "verdict-good", VerdictClass(55, models.VerdictModerateFit))
	assert.Equal(t, "verdict-good", VerdictClass(30, models.VerdictGoodCandidate))
	assert.Equal(t, "verdict-fair", VerdictClass(0, models.VerdictFileProcessingError))
}

func TestProgressBars(t *testing.T) {
	bars := ProgressBars(CalculateMetrics(modelScored()))

	require.Len(t, bars, 4)
	assert.Equal(t, ProgressBar{Label: "Technical Skills", Value: 36, MaxValue: 40, Percentage: 90}, bars[0])
	assert.Equal(t, "Profile Quality", bars[3].Label)
	assert.Equal(t, 80.0, bars[3].Percentage)
}

func TestSection(t *testing.T) {
	r := modelScored()

	overview, err := Section(SectionOverview, r)
	require.NoError(t, err)
	assert.Len(t, overview.(Overview).ProgressBars, 4)

	skills, err := Section(SectionSkills, r)
	require.NoError(t, err)
	assert.Equal(t, []string{"Kafka"}, skills.(Skills).MissingSkills)

	analysis, err := Section(SectionAnalysis, heuristicScored())
	require.NoError(t, err)
	assert.Equal(t, []string{}, analysis.(Analysis).KeyAchievements)

	insights, err := Section(SectionInsights, r)
	require.NoError(t, err)
	assert.Equal(t, 87, insights.(Insights).HireProbability)

	_, err = Section("history", r)
	assert.ErrorIs(t, err, ErrUnknownSection)
}

func TestInsightsTiers(t *testing.T) {
	tests := []struct {
		score       int
		probability int
		risk        string
	}{
		{score: 100, probability: 95, risk: "Low"},
		{score: 80, probability: 85, risk: "Low"},
		{score: 79, probability: 84, risk: "Low"},
		{score: 70, probability: 75, risk: "Low"},
		{score: 50, probability: 55, risk: "Medium"},
		{score: 49, probability: 59, risk: "High"},
		{score: 55, probability: 60, risk: "Medium"},
		{score: 0, probability: 10, risk: "High"},
	}

	for _, tt := range tests {
		got := InsightsFor(models.CandidateResult{OverallScore: tt.score})
		assert.Equal(t, tt.probability, got.HireProbability, "score %d", tt.score)
		assert.Equal(t, tt.risk, got.RiskLevel, "score %d", tt.score)
	}
}

func TestSummarizeBatch(t *testing.T) {
	results := []models.CandidateResult{
		{CandidateName: "a", OverallScore: 90},
		{CandidateName: "b", OverallScore: 75},
		{CandidateName: "c", OverallScore: 60},
		{CandidateName: "d", OverallScore: 50},
		{CandidateName: "e", OverallScore: 49},
		{CandidateName: "f", OverallScore: 75},
		{CandidateName: "g", OverallScore: 0},
	}

	summary, err := SummarizeBatch(results)
	require.NoError(t, err)

	assert.Equal(t, 57.0, summary.AverageScore)
	assert.Equal(t, 90, summary.MaxScore)
	assert.Equal(t, 0, summary.MinScore)
	assert.Equal(t, 3, summary.ExcellentCount)
	assert.Equal(t, 2, summary.GoodCount)
	assert.Equal(t, 2, summary.PoorCount)
	assert.Equal(t, 7, summary.TotalCandidates)

	require.Len(t, summary.TopCandidates, 5)
	var names []string
	for _, c := range summary.TopCandidates {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"a", "b", "f", "c", "d"}, names)
	assert.Equal(t, 1, summary.TopCandidates[0].Rank)
}

func TestSummarizeBatchRoundsAverage(t *testing.T) {
	summary, err := SummarizeBatch([]models.CandidateResult{{OverallScore: 10}, {OverallScore: 11}, {OverallScore: 11}})
	require.NoError(t, err)
	assert.Equal(t, 10.7, summary.AverageScore)
}

func TestSummarizeBatchNeedsTwoCandidates(t *testing.T) {
	_, err := SummarizeBatch([]models.CandidateResult{{OverallScore: 10}})
	assert.ErrorIs(t, err, ErrNotEnoughCandidates)

	_, err = SummarizeBatch(nil)
	assert.ErrorIs(t, err, ErrNotEnoughCandidates)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []models.CandidateResult{modelScored(), heuristicScored()}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{
		"jane", "82", models.VerdictExcellentFit, "36", "20", "12", "16", "7",
		"Good Match", "Excellent Match", "3", "1", "Go, SQL, Docker", "Kafka",
		"Led migration | Cut costs 30%", "Clear ownership", "Learn Kafka",
	}, rows[1])
	assert.Equal(t, "N/A", rows[2][3])
	assert.Equal(t, "N/A", rows[2][6])
	assert.Equal(t, "", rows[2][12])
}

func TestTextReport(t *testing.T) {
	generated := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

	full := TextReport(modelScored(), generated)
	assert.Contains(t, full, "Candidate: jane\n")
	assert.Contains(t, full, "Overall Score: 82/100\n")
	assert.Contains(t, full, "Technical Skills Score: 36/40\n")
	assert.Contains(t, full, "Matched Skills (3):\nGo, SQL, Docker\n")
	assert.Contains(t, full, "• Led migration\n• Cut costs 30%\n")
	assert.Contains(t, full, "Generated: 2026-03-04 05:06:07\n")

	partial := TextReport(heuristicScored(), generated)
	assert.Contains(t, partial, "Technical Skills Score: N/A/40\n")
	assert.Contains(t, partial, "Profile Quality Score: N/A/20\n")
	assert.Contains(t, partial, "Matched Skills (0):\nNone identified\n")
	assert.Contains(t, partial, "• No specific achievements identified\n")

	assert.Equal(t, "resume_report_jane.txt", ReportFileName(modelScored()))
}
