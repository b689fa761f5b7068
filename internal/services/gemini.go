package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"alfredoptarigan/resume-matcher/internal/config"
	"alfredoptarigan/resume-matcher/internal/logger"
)

// ModelGateway sends one prompt to a generative model and returns its text.
// Callers treat every error the same way.
type ModelGateway interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type geminiService struct {
	client      *genai.Client
	modelName   string
	temperature float32
	timeout     time.Duration
	logger      *zap.Logger
}

func NewGeminiService(ctx context.Context, cfg config.GeminiConfig, log *zap.Logger) (ModelGateway, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is not configured")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:      client,
		modelName:   cfg.Model,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
		logger:      logger.OrNop(log),
	}, nil
}

// Generate implements ModelGateway. It makes exactly one attempt bounded by the
// configured timeout.
func (g *geminiService) Generate(ctx context.Context, prompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	temperature := g.temperature
	generationConfig := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		MaxOutputTokens:  4096,
		ResponseMIMEType: "application/json",
	}

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), generationConfig)
	if err != nil {
		g.logger.Warn("gemini request failed",
			zap.String("model", g.modelName),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if resp == nil {
		return "", fmt.Errorf("%w: nil response", ErrEmptyResponse)
	}

	text := resp.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}

	g.logger.Debug("gemini response received",
		zap.String("model", g.modelName),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("response_length", len(text)),
		zap.String("response_preview", logger.TruncateForLog(text, 200)),
	)

	return text, nil
}
