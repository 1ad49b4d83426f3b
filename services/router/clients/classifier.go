// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package clients holds the narrow contracts to the router's external
// collaborators: the LLM intent classifier, the translator, and the
// portal's remote search API.
//
// Each client catches its own transport details; callers see a simple
// request/response call. Retry and fallback policy belongs to the
// service layer, not here.
package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/vidyasetu/VidyaSetu/services/llm"
	"github.com/vidyasetu/VidyaSetu/services/router/datatypes"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"
)

var tracer = otel.Tracer("vidyasetu.router.clients")

// =============================================================================
// Intent Classifier
// =============================================================================

// ClassifierConfig holds the classifier call parameters.
type ClassifierConfig struct {
	// TimeoutMs bounds one classification call.
	// Default: 4000 (CLASSIFIER_TIMEOUT_MS)
	TimeoutMs int

	// MaxTokens bounds the structured response.
	// Default: 512 (CLASSIFIER_MAX_TOKENS)
	MaxTokens int

	// RatePerSecond and Burst configure the limiter guarding the LLM
	// backend from chat-widget bursts.
	// Defaults: 5.0 / 10 (CLASSIFIER_RATE_PER_SECOND, CLASSIFIER_BURST)
	RatePerSecond float64
	Burst         int
}

// DefaultClassifierConfig returns defaults with env overrides applied.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		TimeoutMs:     getEnvInt("CLASSIFIER_TIMEOUT_MS", 4000),
		MaxTokens:     getEnvInt("CLASSIFIER_MAX_TOKENS", 512),
		RatePerSecond: getEnvFloat("CLASSIFIER_RATE_PER_SECOND", 5.0),
		Burst:         getEnvInt("CLASSIFIER_BURST", 10),
	}
}

// IntentClassifier classifies a chat message via an LLM backend.
//
// # Description
//
// The classifier is authoritative only for conversational framing; all
// destination decisions stay with the deterministic engine. Its output
// is parsed defensively: the JSON object is extracted from whatever
// text surrounds it, unknown search types degrade to invalid, and
// out-of-range class numbers are dropped.
//
// # Thread Safety
//
// Safe for concurrent use; the rate limiter serializes access to the
// backend's quota, not to the client.
type IntentClassifier struct {
	llm     llm.LLMClient
	limiter *rate.Limiter
	config  ClassifierConfig
}

// NewIntentClassifier wraps an LLM backend.
func NewIntentClassifier(backend llm.LLMClient, config ClassifierConfig) *IntentClassifier {
	if config.TimeoutMs < 1 {
		config.TimeoutMs = 4000
	}
	if config.MaxTokens < 1 {
		config.MaxTokens = 512
	}
	if config.RatePerSecond <= 0 {
		config.RatePerSecond = 5.0
	}
	if config.Burst < 1 {
		config.Burst = 10
	}
	return &IntentClassifier{
		llm:     backend,
		limiter: rate.NewLimiter(rate.Limit(config.RatePerSecond), config.Burst),
		config:  config,
	}
}

// Classify maps a message plus recent history to a structured Intent.
//
// # Outputs
//
//   - datatypes.Intent: The parsed intent. ClassNum, when present, is
//     always in [1, 10].
//   - error: Non-nil on backend failure or unparseable output. Callers
//     must fall back to datatypes.DefaultGreetingIntent(), never
//     surface the error to the end user.
func (c *IntentClassifier) Classify(ctx context.Context, message string, history []datatypes.Message) (datatypes.Intent, error) {
	ctx, span := tracer.Start(ctx, "IntentClassifier.Classify")
	defer span.End()

	if err := c.limiter.Wait(ctx); err != nil {
		return datatypes.Intent{}, fmt.Errorf("classifier rate limit wait canceled: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.config.TimeoutMs)*time.Millisecond)
	defer cancel()

	maxTokens := c.config.MaxTokens
	temp := float32(0.1)
	response, err := c.llm.Generate(ctx, buildClassifierPrompt(message, history), llm.GenerationParams{
		Temperature: &temp,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return datatypes.Intent{}, fmt.Errorf("classifier LLM call failed: %w", err)
	}

	intent, err := parseClassifierResponse(response)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.Warn("Classifier returned unparseable output", "error", err)
		return datatypes.Intent{}, err
	}
	return intent, nil
}

// buildClassifierPrompt formats the classification instruction.
func buildClassifierPrompt(message string, history []datatypes.Message) string {
	var historyText strings.Builder
	for _, turn := range history {
		historyText.WriteString(fmt.Sprintf("%s: %s\n", turn.Role, truncateString(turn.Content, 200)))
	}

	return fmt.Sprintf(`You are the intent classifier of an educational portal chat assistant.
Users ask for learning resources: classes 1-10, subjects (maths, science, english,
telugu, hindi, social), pictures, stories, exams, and career guidance.

Classify the user's message into exactly one search_type:
- "greeting": small talk, thanks, hello, no search intent
- "direct_search": a free-text resource request
- "class_subject": a request naming a class and/or subject
- "invalid": meaningless or unrelated input

Conversation so far:
%s
User message: %s

Respond with ONLY a JSON object:
{"message": "<short friendly reply>", "search_query": "<query or empty>",
"search_type": "<one of the four>", "class_num": <1-10 or null>,
"subject": "<subject or empty>", "suggestions": ["<example query>", "<example query>"]}`,
		historyText.String(), message)
}

// parseClassifierResponse extracts and sanitizes the JSON object from
// the LLM's output.
func parseClassifierResponse(response string) (datatypes.Intent, error) {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end <= start {
		return datatypes.Intent{}, fmt.Errorf("no JSON object in classifier response")
	}

	var intent datatypes.Intent
	if err := json.Unmarshal([]byte(response[start:end+1]), &intent); err != nil {
		return datatypes.Intent{}, fmt.Errorf("failed to unmarshal classifier response: %w", err)
	}

	if !intent.SearchType.Valid() {
		slog.Warn("Classifier produced unknown search type", "search_type", intent.SearchType)
		intent.SearchType = datatypes.SearchTypeInvalid
	}
	if intent.ClassNum != nil && (*intent.ClassNum < 1 || *intent.ClassNum > 10) {
		slog.Warn("Classifier produced out-of-range class number", "class_num", *intent.ClassNum)
		intent.ClassNum = nil
	}
	return intent, nil
}

// truncateString truncates to maxLen bytes, appending "..." when cut.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// =============================================================================
// Env Helpers
// =============================================================================

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if floatVal, err := strconv.ParseFloat(val, 64); err == nil {
			return floatVal
		}
	}
	return defaultVal
}
