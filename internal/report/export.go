package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"alfredoptarigan/resume-matcher/internal/models"
)

const notAvailable = "N/A"

var csvHeader = []string{
	"Candidate Name",
	"Overall Score",
	"AI Verdict",
	"Technical Skills Score",
	"Experience Score",
	"Education Score",
	"Profile Quality Score",
	"Years of Experience",
	"Experience Match",
	"Education Match",
	"Matched Skills Count",
	"Missing Skills Count",
	"Matched Skills",
	"Missing Skills",
	"Key Achievements",
	"Strengths",
	"Recommendations",
}

// WriteCSV writes one row per candidate in the given order.
func WriteCSV(w io.Writer, results []models.CandidateResult) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, r := range results {
		row := []string{
			r.CandidateName,
			strconv.Itoa(r.OverallScore),
			r.Verdict,
			formatSubScore(r.TechnicalSkillsScore),
			formatSubScore(r.ExperienceScore),
			formatSubScore(r.EducationScore),
			formatSubScore(r.ProfileQualityScore),
			strconv.Itoa(r.YearsOfExperience),
			r.ExperienceMatch,
			r.EducationMatch,
			strconv.Itoa(len(r.MatchedSkills)),
			strconv.Itoa(len(r.MissingSkills)),
			strings.Join(r.MatchedSkills, ", "),
			strings.Join(r.MissingSkills, ", "),
			strings.Join(r.KeyAchievements, " | "),
			strings.Join(r.Strengths, " | "),
			strings.Join(r.Recommendations, " | "),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row for %s: %w", r.FileName, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// TextReport renders the downloadable plain-text report of one candidate.
func TextReport(r models.CandidateResult, generatedAt time.Time) string {
	var b strings.Builder

	b.WriteString("RESUME MATCHER - DETAILED ANALYSIS REPORT\n")
	b.WriteString("=========================================\n\n")
	fmt.Fprintf(&b, "Candidate: %s\n", r.CandidateName)
	fmt.Fprintf(&b, "Overall Score: %d/100\n", r.OverallScore)
	fmt.Fprintf(&b, "AI Verdict: %s\n", r.Verdict)
	fmt.Fprintf(&b, "Years of Experience: %d\n\n", r.YearsOfExperience)

	writeHeading(&b, "DETAILED SCORING BREAKDOWN")
	fmt.Fprintf(&b, "Technical Skills Score: %s/%d\n", formatSubScore(r.TechnicalSkillsScore), MaxTechnicalScore)
	fmt.Fprintf(&b, "Experience Score: %s/%d\n", formatSubScore(r.ExperienceScore), MaxExperienceScore)
	fmt.Fprintf(&b, "Education Score: %s/%d\n", formatSubScore(r.EducationScore), MaxEducationScore)
	fmt.Fprintf(&b, "Profile Quality Score: %s/%d\n\n", formatSubScore(r.ProfileQualityScore), MaxProfileScore)

	writeHeading(&b, "SKILLS ANALYSIS")
	fmt.Fprintf(&b, "Matched Skills (%d):\n%s\n\n", len(r.MatchedSkills), joinOr(r.MatchedSkills, "None identified"))
	fmt.Fprintf(&b, "Missing Skills (%d):\n%s\n\n", len(r.MissingSkills), joinOr(r.MissingSkills, "None"))

	writeHeading(&b, "EXPERIENCE & EDUCATION")
	fmt.Fprintf(&b, "Experience Match: %s\n", r.ExperienceMatch)
	fmt.Fprintf(&b, "Education Match: %s\n\n", r.EducationMatch)

	writeHeading(&b, "KEY ACHIEVEMENTS")
	writeBullets(&b, r.KeyAchievements, "No specific achievements identified")

	writeHeading(&b, "STRENGTHS")
	writeBullets(&b, r.Strengths, "Profile shows general potential")

	writeHeading(&b, "RECOMMENDATIONS FOR IMPROVEMENT")
	writeBullets(&b, r.Recommendations, "Continue with standard evaluation process")

	fmt.Fprintf(&b, "Generated: %s\n", generatedAt.Format("2006-01-02 15:04:05"))
	return b.String()
}

// ReportFileName is the download name of a candidate's text report.
func ReportFileName(r models.CandidateResult) string {
	return fmt.Sprintf("resume_report_%s.txt", r.CandidateName)
}

func formatSubScore(v *int) string {
	if v == nil {
		return notAvailable
	}
	return strconv.Itoa(*v)
}

func joinOr(items []string, empty string) string {
	if len(items) == 0 {
		return empty
	}
	return strings.Join(items, ", ")
}

func writeHeading(b *strings.Builder, title string) {
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", len(title)))
	b.WriteString("\n")
}

func writeBullets(b *strings.Builder, items []string, empty string) {
	if len(items) == 0 {
		items = []string{empty}
	}
	for _, item := range items {
		fmt.Fprintf(b, "• %s\n", item)
	}
	b.WriteString("\n")
}
