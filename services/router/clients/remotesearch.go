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
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/vidyasetu/VidyaSetu/services/router/datatypes"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// RemoteSearchConfig holds the portal search API parameters.
type RemoteSearchConfig struct {
	// BaseURL of the portal search API. Empty disables remote search
	// and every call returns no results without error.
	// Default: "" (REMOTE_SEARCH_URL)
	BaseURL string

	// TimeoutMs bounds one search call.
	// Default: 3000 (REMOTE_SEARCH_TIMEOUT_MS)
	TimeoutMs int

	// MaxResults caps the results returned to callers.
	// Default: 8 (REMOTE_SEARCH_MAX_RESULTS)
	MaxResults int
}

// DefaultRemoteSearchConfig returns defaults with env overrides applied.
func DefaultRemoteSearchConfig() RemoteSearchConfig {
	return RemoteSearchConfig{
		BaseURL:    os.Getenv("REMOTE_SEARCH_URL"),
		TimeoutMs:  getEnvInt("REMOTE_SEARCH_TIMEOUT_MS", 3000),
		MaxResults: getEnvInt("REMOTE_SEARCH_MAX_RESULTS", 8),
	}
}

// RemoteSearcher queries the portal's content search API for concrete
// resource hits to show alongside the engine's destination.
type RemoteSearcher struct {
	config RemoteSearchConfig
	client *http.Client
}

// NewRemoteSearcher creates a portal search client.
func NewRemoteSearcher(config RemoteSearchConfig) *RemoteSearcher {
	if config.TimeoutMs < 1 {
		config.TimeoutMs = 3000
	}
	if config.MaxResults < 1 {
		config.MaxResults = 8
	}
	return &RemoteSearcher{
		config: config,
		client: &http.Client{Timeout: time.Duration(config.TimeoutMs) * time.Millisecond},
	}
}

// Enabled reports whether a search API is configured.
func (r *RemoteSearcher) Enabled() bool {
	return r.config.BaseURL != ""
}

type remoteSearchResponse struct {
	Results []datatypes.RemoteResult `json:"results"`
}

// Search runs query against the portal search API.
//
// # Outputs
//
//   - []datatypes.RemoteResult: At most MaxResults hits. Nil with a
//     nil error when the API is unconfigured or found nothing.
//   - error: Non-nil on transport or decode failure.
func (r *RemoteSearcher) Search(ctx context.Context, query string) ([]datatypes.RemoteResult, error) {
	if !r.Enabled() || query == "" {
		return nil, nil
	}

	ctx, span := tracer.Start(ctx, "RemoteSearcher.Search")
	defer span.End()
	span.SetAttributes(attribute.String("search.query", query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/search?q=%s", r.config.BaseURL, url.QueryEscape(query)), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("remote search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		err := fmt.Errorf("remote search returned %d: %s", resp.StatusCode, string(raw))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var parsed remoteSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode remote search response: %w", err)
	}

	results := parsed.Results
	if len(results) > r.config.MaxResults {
		results = results[:r.config.MaxResults]
	}
	span.SetAttributes(attribute.Int("search.result_count", len(results)))
	return results, nil
}
