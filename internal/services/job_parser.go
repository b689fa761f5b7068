package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/logger"
	"alfredoptarigan/resume-matcher/internal/metrics"
	"alfredoptarigan/resume-matcher/internal/models"
)

const notSpecified = "Not specified"

var (
	defaultMustHaveOnInvalid   = []string{"Python", "Communication", "Problem Solving"}
	defaultGoodToHaveOnInvalid = []string{"AWS", "Docker"}
)

// DefaultJobProfile is used whenever the model response cannot be parsed.
func DefaultJobProfile() models.JobProfile {
	return models.JobProfile{
		Title:              "Job Position",
		MustHaveSkills:     []string{"Python", "JavaScript", "SQL", "Communication", "Problem Solving"},
		GoodToHaveSkills:   []string{"AWS", "Docker", "MongoDB"},
		ExperienceRequired: "2-5 years",
		EducationRequired:  "Bachelor's degree",
	}
}

type JobParser struct {
	gateway       ModelGateway
	promptBuilder *PromptBuilder
	logger        *zap.Logger
}

func NewJobParser(gateway ModelGateway, log *zap.Logger) *JobParser {
	return &JobParser{
		gateway:       gateway,
		promptBuilder: NewPromptBuilder(),
		logger:        logger.OrNop(log),
	}
}

// Parse turns a free-text job description into a JobProfile. It never fails:
// gateway and decoding errors yield DefaultJobProfile.
func (p *JobParser) Parse(ctx context.Context, rawText string) (profile models.JobProfile) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("job parsing panicked", zap.Any("panic", r))
			metrics.JobParses.WithLabelValues(metrics.PathFallback).Inc()
			profile = DefaultJobProfile()
		}
	}()

	prompt := p.promptBuilder.BuildJobProfilePrompt(rawText)
	p.logger.Debug("job profile prompt built", zap.Int("prompt_length", len(prompt)))

	response, err := p.gateway.Generate(ctx, prompt)
	if err != nil {
		p.logger.Warn("job profile generation failed, using default profile", zap.Error(err))
		metrics.JobParses.WithLabelValues(metrics.PathFallback).Inc()
		return DefaultJobProfile()
	}

	profile, err = parseJobProfile(response)
	if err != nil {
		p.logger.Warn("job profile response unusable, using default profile",
			zap.Error(err),
			zap.String("response_preview", logger.TruncateForLog(response, 200)),
		)
		metrics.JobParses.WithLabelValues(metrics.PathFallback).Inc()
		return DefaultJobProfile()
	}

	p.logger.Info("job profile parsed",
		zap.String("job_title", profile.Title),
		zap.Int("must_have_skills", len(profile.MustHaveSkills)),
		zap.Int("good_to_have_skills", len(profile.GoodToHaveSkills)),
	)
	metrics.JobParses.WithLabelValues(metrics.PathModel).Inc()
	return profile
}

func parseJobProfile(raw string) (models.JobProfile, error) {
	data, err := decodePayload(raw)
	if err != nil {
		return models.JobProfile{}, fmt.Errorf("decode job profile: %w", err)
	}

	return models.JobProfile{
		Title:              stringField(data, "job_title", notSpecified),
		MustHaveSkills:     skillsField(data, "must_have_skills", defaultMustHaveOnInvalid),
		GoodToHaveSkills:   skillsField(data, "good_to_have_skills", defaultGoodToHaveOnInvalid),
		ExperienceRequired: stringField(data, "experience_required", notSpecified),
		EducationRequired:  stringField(data, "education_required", notSpecified),
	}, nil
}

// skillsField returns an empty list for an absent field and onInvalid for a
// field that is present but not a list, null included.
func skillsField(data map[string]any, key string, onInvalid []string) []string {
	raw, present := data[key]
	if !present {
		return []string{}
	}
	items, ok := coerceStringList(raw)
	if !ok {
		return append([]string(nil), onInvalid...)
	}
	return dedupeSkills(items)
}

// dedupeSkills drops case-insensitive duplicates, keeping the first spelling.
func dedupeSkills(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, skill := range skills {
		key := strings.ToLower(skill)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, skill)
	}
	return out
}
