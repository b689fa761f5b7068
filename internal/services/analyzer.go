package services

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/logger"
	"alfredoptarigan/resume-matcher/internal/metrics"
	"alfredoptarigan/resume-matcher/internal/models"
)

// Sub-score defaults and upper bounds for the model rubric.
const (
	defaultTechnicalScore  = 20
	defaultExperienceScore = 15
	defaultEducationScore  = 10
	defaultProfileScore    = 10

	maxTechnicalScore  = 40
	maxExperienceScore = 25
	maxEducationScore  = 15
	maxProfileScore    = 20

	modelWeight = 0.7
	skillWeight = 0.3
)

var (
	yearsPattern       = regexp.MustCompile(`(\d+)[\s\-]*(?:years?|yrs?)`)
	degreeKeywords     = []string{"bachelor", "master", "phd", "degree"}
	techKeywords       = []string{"project", "developed", "implemented", "designed", "built", "created"}
	fallbackStrengths  = []string{"Technical background present", "Relevant experience indicated"}
	fallbackRecommends = []string{"Strengthen missing technical skills", "Highlight specific achievements"}
)

type ResumeAnalyzer struct {
	gateway       ModelGateway
	promptBuilder *PromptBuilder
	logger        *zap.Logger
}

func NewResumeAnalyzer(gateway ModelGateway, log *zap.Logger) *ResumeAnalyzer {
	return &ResumeAnalyzer{
		gateway:       gateway,
		promptBuilder: NewPromptBuilder(),
		logger:        logger.OrNop(log),
	}
}

// Analyze scores one resume against the job profile. The skill match always
// runs; any model failure switches to the deterministic heuristic. The caller
// fills CandidateName and FileName.
func (a *ResumeAnalyzer) Analyze(ctx context.Context, resumeText string, profile models.JobProfile) (result models.CandidateResult) {
	skills := MatchSkills(resumeText, profile.MustHaveSkills, profile.GoodToHaveSkills)

	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("resume analysis panicked, using heuristic scoring", zap.Any("panic", r))
			metrics.ResumeAnalyses.WithLabelValues(metrics.PathFallback).Inc()
			result = FallbackAnalysis(resumeText, skills)
		}
		metrics.OverallScore.Observe(float64(result.OverallScore))
	}()

	result, err := a.analyzeWithModel(ctx, resumeText, profile, skills)
	if err != nil {
		a.logger.Warn("model analysis failed, using heuristic scoring", zap.Error(err))
		metrics.ResumeAnalyses.WithLabelValues(metrics.PathFallback).Inc()
		return FallbackAnalysis(resumeText, skills)
	}

	metrics.ResumeAnalyses.WithLabelValues(metrics.PathModel).Inc()
	return result
}

func (a *ResumeAnalyzer) analyzeWithModel(ctx context.Context, resumeText string, profile models.JobProfile, skills models.SkillMatchResult) (models.CandidateResult, error) {
	prompt := a.promptBuilder.BuildResumeAnalysisPrompt(resumeText, profile)
	a.logger.Debug("resume analysis prompt built", zap.Int("prompt_length", len(prompt)))

	response, err := a.gateway.Generate(ctx, prompt)
	if err != nil {
		return models.CandidateResult{}, fmt.Errorf("generate resume analysis: %w", err)
	}

	data, err := decodePayload(response)
	if err != nil {
		a.logger.Debug("unparsable analysis response",
			zap.String("response_preview", logger.TruncateForLog(response, 200)),
		)
		return models.CandidateResult{}, fmt.Errorf("decode resume analysis: %w", err)
	}

	technical := intField(data, "technical_skills_score", defaultTechnicalScore, 0, maxTechnicalScore)
	experience := intField(data, "experience_score", defaultExperienceScore, 0, maxExperienceScore)
	education := intField(data, "education_score", defaultEducationScore, 0, maxEducationScore)
	profileQuality := intField(data, "profile_quality_score", defaultProfileScore, 0, maxProfileScore)

	score := BlendScores(technical+experience+education+profileQuality, skills.TotalScore)

	return models.CandidateResult{
		OverallScore:         score,
		Verdict:              PrimaryVerdict(score),
		MatchedSkills:        skills.MatchedSkills,
		MissingSkills:        skills.MissingSkills,
		Strengths:            listField(data, "strengths", []string{"Shows relevant background"}),
		Recommendations:      listField(data, "recommendations", []string{"Continue skill development"}),
		ExperienceMatch:      stringField(data, "experience_match", "Average Match"),
		EducationMatch:       stringField(data, "education_match", "Satisfactory"),
		KeyAchievements:      listField(data, "key_achievements", []string{}),
		YearsOfExperience:    intField(data, "years_of_experience", 0, 0, math.MaxInt32),
		TechnicalSkillsScore: &technical,
		ExperienceScore:      &experience,
		EducationScore:       &education,
		ProfileQualityScore:  &profileQuality,
	}, nil
}

// BlendScores weights the model rubric total against the skill match total and
// rounds half away from zero.
func BlendScores(modelScore, skillScore int) int {
	blended := math.Round(float64(modelScore)*modelWeight + float64(skillScore)*skillWeight)
	return clampScore(int(blended), 0, 100)
}

// FallbackAnalysis is the deterministic scoring used when the model path fails.
func FallbackAnalysis(resumeText string, skills models.SkillMatchResult) models.CandidateResult {
	lower := strings.ToLower(resumeText)
	years := EstimateYearsOfExperience(lower)

	score := skills.TotalScore
	switch {
	case years >= 5:
		score += 10
	case years >= 3:
		score += 5
	}

	if containsAny(lower, degreeKeywords...) {
		score += 8
	}

	present := 0
	for _, keyword := range techKeywords {
		if strings.Contains(lower, keyword) {
			present++
		}
	}
	score += min(2*present, 10)
	score = clampScore(score, 0, 100)

	experienceMatch := "Limited Experience"
	if years >= 2 {
		experienceMatch = "Good Match"
	}
	educationMatch := "Basic"
	if containsAny(lower, "bachelor", "master", "degree") {
		educationMatch = "Adequate"
	}

	return models.CandidateResult{
		OverallScore:      score,
		Verdict:           FallbackVerdict(score),
		MatchedSkills:     skills.MatchedSkills,
		MissingSkills:     skills.MissingSkills,
		Strengths:         append([]string(nil), fallbackStrengths...),
		Recommendations:   append([]string(nil), fallbackRecommends...),
		ExperienceMatch:   experienceMatch,
		EducationMatch:    educationMatch,
		KeyAchievements:   []string{},
		YearsOfExperience: years,
	}
}

// EstimateYearsOfExperience returns the largest "<n> years" or "<n> yrs"
// figure in the text, or 1 when there is none.
func EstimateYearsOfExperience(text string) int {
	best := 0
	found := false
	for _, match := range yearsPattern.FindAllStringSubmatch(strings.ToLower(text), -1) {
		n, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		if !found || n > best {
			best = n
			found = true
		}
	}
	if !found {
		return 1
	}
	return best
}

func PrimaryVerdict(score int) string {
	switch {
	case score >= 80:
		return models.VerdictExcellentFit
	case score >= 65:
		return models.VerdictGoodFit
	case score >= 50:
		return models.VerdictModerateFit
	default:
		return models.VerdictPoorFit
	}
}

func FallbackVerdict(score int) string {
	switch {
	case score >= 75:
		return models.VerdictGoodCandidate
	case score >= 55:
		return models.VerdictPotentialCandidate
	default:
		return models.VerdictBelowRequirements
	}
}

func containsAny(text string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}
