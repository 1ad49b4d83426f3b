// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"regexp"
	"time"

	"github.com/vidyasetu/VidyaSetu/services/router/datatypes"
	"go.opentelemetry.io/otel/codes"
)

// asciiPattern matches text made entirely of printable ASCII. Such
// queries never need translation and must not cost a network hop.
var asciiPattern = regexp.MustCompile(`^[\x20-\x7E]*$`)

// TranslatorConfig holds the translation service parameters.
type TranslatorConfig struct {
	// BaseURL of the translation service. Empty disables translation
	// entirely and every call becomes a pass-through.
	// Default: "" (TRANSLATOR_URL)
	BaseURL string

	// TimeoutMs bounds one translation call.
	// Default: 3000 (TRANSLATOR_TIMEOUT_MS)
	TimeoutMs int
}

// DefaultTranslatorConfig returns defaults with env overrides applied.
func DefaultTranslatorConfig() TranslatorConfig {
	return TranslatorConfig{
		BaseURL:   os.Getenv("TRANSLATOR_URL"),
		TimeoutMs: getEnvInt("TRANSLATOR_TIMEOUT_MS", 3000),
	}
}

// Translator converts regional-language queries to English before the
// resolution pipeline runs.
//
// # Limitations
//
//   - Translation failure is never fatal: the original text is
//     returned and resolution proceeds on it.
type Translator struct {
	config TranslatorConfig
	client *http.Client
}

// NewTranslator creates a translator client.
func NewTranslator(config TranslatorConfig) *Translator {
	if config.TimeoutMs < 1 {
		config.TimeoutMs = 3000
	}
	return &Translator{
		config: config,
		client: &http.Client{Timeout: time.Duration(config.TimeoutMs) * time.Millisecond},
	}
}

type translateRequest struct {
	Text string `json:"text"`
}

// Translate returns the English form of text.
//
// ASCII input short-circuits without a network call. When the service
// is unconfigured or fails, the original text comes back unchanged and
// the failure is logged, not returned.
func (t *Translator) Translate(ctx context.Context, text string) datatypes.Translation {
	if t.config.BaseURL == "" || asciiPattern.MatchString(text) {
		return datatypes.Translation{TranslatedText: text}
	}

	ctx, span := tracer.Start(ctx, "Translator.Translate")
	defer span.End()

	translation, err := t.call(ctx, text)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.Warn("Translation failed, using original text", "error", err)
		return datatypes.Translation{TranslatedText: text}
	}
	if translation.TranslatedText == "" {
		translation.TranslatedText = text
	}
	return translation
}

func (t *Translator) call(ctx context.Context, text string) (datatypes.Translation, error) {
	body, err := json.Marshal(translateRequest{Text: text})
	if err != nil {
		return datatypes.Translation{}, fmt.Errorf("failed to marshal translation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		t.config.BaseURL+"/translate", bytes.NewReader(body))
	if err != nil {
		return datatypes.Translation{}, fmt.Errorf("failed to create translation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return datatypes.Translation{}, fmt.Errorf("translation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return datatypes.Translation{}, fmt.Errorf("translation service returned %d: %s", resp.StatusCode, string(raw))
	}

	var translation datatypes.Translation
	if err := json.NewDecoder(resp.Body).Decode(&translation); err != nil {
		return datatypes.Translation{}, fmt.Errorf("failed to decode translation response: %w", err)
	}
	return translation, nil
}
