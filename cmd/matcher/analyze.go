package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/config"
	"alfredoptarigan/resume-matcher/internal/logger"
	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/services"
)

type analyzeOptions struct {
	job         string
	format      string
	concurrency int
}

func newAnalyzeCmd() *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze --job <job.txt|job.pdf|job.docx> <resume>...",
		Short: "Rank resumes against a job description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := parseFormat(opts.format); err != nil {
				return err
			}
			return runAnalyze(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.job, "job", "", "job description file (.txt, .pdf or .docx)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", string(formatTable), "output format: table, json or csv")
	cmd.Flags().IntVarP(&opts.concurrency, "concurrency", "c", 0, "resumes analyzed in parallel (default from config)")
	_ = cmd.MarkFlagRequired("job")

	return cmd
}

func runAnalyze(cmd *cobra.Command, opts *analyzeOptions, paths []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := logger.New(jsonLog || cfg.Logging.JSON, debug || cfg.Logging.Debug)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	extractor := services.NewDocumentExtractor(log)

	jobText, err := readJobDescription(ctx, extractor, opts.job)
	if err != nil {
		return err
	}

	inputs, err := readResumes(paths)
	if err != nil {
		return err
	}

	gateway, err := services.NewGeminiService(ctx, cfg.Gemini, log)
	if err != nil {
		return fmt.Errorf("initialize gemini: %w", err)
	}

	concurrency := opts.concurrency
	if concurrency < 1 {
		concurrency = cfg.Analysis.Concurrency
	}

	log.Info("analyzing resumes",
		zap.Int("resumes", len(inputs)),
		zap.Int("concurrency", concurrency),
	)

	orchestrator := services.NewOrchestrator(gateway, extractor, concurrency, log)
	results, profile, err := orchestrator.RunBatch(ctx, jobText, inputs)
	if err != nil {
		return err
	}

	format, _ := parseFormat(opts.format)
	return render(cmd.OutOrStdout(), format, profile, results)
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.LoadFile(cfgFile)
	}
	return config.Load()
}

// readJobDescription reads plain text files as-is and extracts pdf and docx
// files the same way resumes are extracted.
func readJobDescription(ctx context.Context, extractor services.DocumentExtractor, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read job description: %w", err)
	}

	var text string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md", "":
		text = string(data)
	default:
		text, err = extractor.Extract(ctx, data, models.KindFromFilename(path))
		if err != nil {
			return "", fmt.Errorf("extract job description %s: %w", path, err)
		}
	}

	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("job description %s is empty", path)
	}
	return text, nil
}

func readResumes(paths []string) ([]services.ResumeInput, error) {
	inputs := make([]services.ResumeInput, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read resume: %w", err)
		}

		name := filepath.Base(path)
		inputs = append(inputs, services.ResumeInput{
			Name: name,
			Kind: models.KindFromFilename(name),
			Data: data,
		})
	}
	return inputs, nil
}
