package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"alfredoptarigan/resume-matcher/internal/logger"
	"alfredoptarigan/resume-matcher/internal/metrics"
	"alfredoptarigan/resume-matcher/internal/models"
)

// minResumeTextLength is the shortest normalized resume text worth analyzing.
const minResumeTextLength = 50

const unprocessableRecommendation = "File could not be processed - check file format"

// ResumeInput is one submitted resume: its bytes, declared kind and display name.
type ResumeInput struct {
	Name string
	Kind models.DocumentKind
	Data []byte
}

type Orchestrator struct {
	gateway     ModelGateway
	extractor   DocumentExtractor
	parser      *JobParser
	analyzer    *ResumeAnalyzer
	concurrency int
	logger      *zap.Logger
}

// NewOrchestrator wires the job parser and resume analyzer to one gateway.
// A concurrency below 1 runs the batch sequentially.
func NewOrchestrator(gateway ModelGateway, extractor DocumentExtractor, concurrency int, log *zap.Logger) *Orchestrator {
	if concurrency < 1 {
		concurrency = 1
	}
	log = logger.OrNop(log)

	return &Orchestrator{
		gateway:     gateway,
		extractor:   extractor,
		parser:      NewJobParser(gateway, log),
		analyzer:    NewResumeAnalyzer(gateway, log),
		concurrency: concurrency,
		logger:      log,
	}
}

// RunBatch parses the job once, scores every resume and returns the results
// sorted by descending score. Ties keep submission order. The only error is
// ErrInvalidBatchInput; every dependency failure is absorbed into the results.
func (o *Orchestrator) RunBatch(ctx context.Context, jobText string, inputs []ResumeInput) ([]models.CandidateResult, models.JobProfile, error) {
	if o.gateway == nil || o.extractor == nil {
		return nil, models.JobProfile{}, fmt.Errorf("%w: orchestrator requires a model gateway and a document extractor", ErrInvalidBatchInput)
	}
	for i, input := range inputs {
		if strings.TrimSpace(input.Name) == "" {
			return nil, models.JobProfile{}, fmt.Errorf("%w: resume %d has no name", ErrInvalidBatchInput, i)
		}
	}

	start := time.Now()
	defer func() {
		metrics.BatchDuration.Observe(time.Since(start).Seconds())
	}()

	profile := o.parser.Parse(ctx, NormalizeText(jobText))

	o.logger.Info("starting batch",
		zap.String("job_title", profile.Title),
		zap.Int("resumes", len(inputs)),
		zap.Int("concurrency", o.concurrency),
	)

	results := make([]models.CandidateResult, len(inputs))

	g := new(errgroup.Group)
	g.SetLimit(o.concurrency)
	for i, input := range inputs {
		g.Go(func() error {
			results[i] = o.processResume(ctx, input, profile)
			return nil
		})
	}
	_ = g.Wait()

	rankCandidates(results)

	o.logger.Info("batch completed",
		zap.Int("resumes", len(results)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return results, profile, nil
}

func (o *Orchestrator) processResume(ctx context.Context, input ResumeInput, profile models.JobProfile) models.CandidateResult {
	log := o.logger.With(zap.String("file_name", input.Name))

	text, err := o.extract(ctx, input)
	if err != nil {
		log.Warn("resume extraction failed", zap.Error(err))
		metrics.ResumeAnalyses.WithLabelValues(metrics.PathDegraded).Inc()
		return degradedResult(input.Name, profile)
	}

	text = NormalizeText(text)
	if strings.HasPrefix(text, ExtractionErrorMarker) || utf8.RuneCountInString(text) < minResumeTextLength {
		log.Warn("resume text unusable", zap.Int("text_length", utf8.RuneCountInString(text)))
		metrics.ResumeAnalyses.WithLabelValues(metrics.PathDegraded).Inc()
		return degradedResult(input.Name, profile)
	}

	result := o.analyzer.Analyze(ctx, text, profile)
	result.CandidateName = CandidateName(input.Name)
	result.FileName = input.Name

	log.Info("resume analyzed",
		zap.Int("score", result.OverallScore),
		zap.String("verdict", result.Verdict),
		zap.Bool("model_scored", result.HasSubScores()),
	)
	return result
}

func (o *Orchestrator) extract(ctx context.Context, input ResumeInput) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("extractor panicked: %v", r)
		}
	}()

	return o.extractor.Extract(ctx, input.Data, input.Kind)
}

// CandidateName strips the recognized document extensions from a file name.
func CandidateName(fileName string) string {
	name := strings.ReplaceAll(fileName, ".pdf", "")
	return strings.ReplaceAll(name, ".docx", "")
}

func degradedResult(fileName string, profile models.JobProfile) models.CandidateResult {
	missing := append([]string{}, profile.MustHaveSkills...)

	return models.CandidateResult{
		CandidateName:   fileName,
		FileName:        fileName,
		OverallScore:    0,
		Verdict:         models.VerdictFileProcessingError,
		MatchedSkills:   []string{},
		MissingSkills:   missing,
		Strengths:       []string{},
		Recommendations: []string{unprocessableRecommendation},
		ExperienceMatch: models.MatchUnknown,
		EducationMatch:  models.MatchUnknown,
		KeyAchievements: []string{},
	}
}

func rankCandidates(results []models.CandidateResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].OverallScore > results[j].OverallScore
	})
}
