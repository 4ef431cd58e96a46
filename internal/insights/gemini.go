// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

package insights

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/tomtom215/careermatch/internal/config"
)

const (
	geminiBreakerName = "gemini-insights"
	geminiTemperature = float32(0.3)
	geminiMaxTokens   = int32(4000)
)

// GeminiGenerator generates text with a Google Gemini model.
type GeminiGenerator struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiGenerator creates a Gemini client for the configured model.
func NewGeminiGenerator(ctx context.Context, cfg *config.InsightsConfig) (*GeminiGenerator, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiGenerator{
		client:  client,
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}, nil
}

// NewGemini returns a breaker-wrapped Gemini generator.
func NewGemini(ctx context.Context, cfg *config.InsightsConfig) (*BreakerGenerator, error) {
	gen, err := NewGeminiGenerator(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewBreakerGenerator(gen, BreakerSettings{
		Name:         geminiBreakerName,
		MaxFailures:  cfg.MaxFailures,
		OpenInterval: cfg.OpenInterval,
	}), nil
}

// Generate sends prompt to the model and asks for a JSON answer.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	temperature := geminiTemperature
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:      &temperature,
		MaxOutputTokens:  geminiMaxTokens,
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", ErrEmptyOutput
	}
	return text, nil
}
