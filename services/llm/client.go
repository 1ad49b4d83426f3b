// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package llm provides the LLM backend clients used by the intent
// classifier. Backends are interchangeable behind LLMClient and
// selected by the LLM_BACKEND_TYPE environment variable.
package llm

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// GenerationParams are the sampling knobs passed through to a backend.
// Nil fields use backend defaults.
type GenerationParams struct {
	Temperature *float32 `json:"temperature"`
	TopP        *float32 `json:"top_p"`
	MaxTokens   *int     `json:"max_tokens"`
	Stop        []string `json:"stop"`
}

// LLMClient defines the standard interface for any LLM backend.
type LLMClient interface {
	Generate(ctx context.Context, prompt string, params GenerationParams) (string, error)
}

// NewFromEnv constructs the backend selected by LLM_BACKEND_TYPE
// ("openai" or "ollama"; unset defaults to ollama).
func NewFromEnv() (LLMClient, error) {
	backend := os.Getenv("LLM_BACKEND_TYPE")
	switch backend {
	case "openai":
		slog.Info("Using OpenAI LLM backend")
		return NewOpenAIClient()
	case "ollama", "":
		if backend == "" {
			slog.Warn("LLM_BACKEND_TYPE not set, defaulting to ollama")
		} else {
			slog.Info("Using Ollama LLM backend")
		}
		return NewOllamaClient()
	default:
		return nil, fmt.Errorf("unknown LLM_BACKEND_TYPE %q", backend)
	}
}
