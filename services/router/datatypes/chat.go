// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package datatypes provides data structures for the router service.
//
// This file contains request and response types for the chat and resolve
// endpoints.
package datatypes

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// =============================================================================
// Limits
// =============================================================================

const (
	// MaxQueryBytes is the maximum size of a single user query.
	// Anything larger is rejected at the handler before the pipeline runs.
	MaxQueryBytes = 4 * 1024

	// MaxHistoryMessages is the maximum number of prior turns accepted
	// per chat request.
	MaxHistoryMessages = 20
)

// =============================================================================
// Shared Validator Instance
// =============================================================================

// chatValidate is the validator instance for chat datatypes.
var chatValidate *validator.Validate

func init() {
	chatValidate = validator.New()
	_ = chatValidate.RegisterValidation("maxquerybytes", validateMaxQueryBytes)
}

// validateMaxQueryBytes enforces MaxQueryBytes on a string field.
// Byte length, not rune count, so oversized multi-byte payloads are
// caught too.
func validateMaxQueryBytes(fl validator.FieldLevel) bool {
	return len(fl.Field().String()) <= MaxQueryBytes
}

// =============================================================================
// Chat Request / Response
// =============================================================================

// ChatRequest is the body of POST /v1/chat.
type ChatRequest struct {
	// Message is the raw user input. May be Telugu, Hindi, Gujarati, or
	// English, possibly misspelled.
	Message string `json:"message" validate:"required,maxquerybytes"`

	// SessionID continues an existing conversation. Optional; a new one
	// is issued when empty.
	SessionID string `json:"session_id"`

	// History holds recent prior turns, oldest first. Optional.
	History []Message `json:"history" validate:"max=20"`
}

// Validate checks the request against its struct tags.
func (r *ChatRequest) Validate() error {
	if err := chatValidate.Struct(r); err != nil {
		return fmt.Errorf("invalid chat request: %w", err)
	}
	return nil
}

// ChatResponse is the body returned by POST /v1/chat.
type ChatResponse struct {
	// SessionID identifies the conversation, echoed or newly issued.
	SessionID string `json:"session_id"`

	// Message is the conversational reply text.
	Message string `json:"message"`

	// Results is the ranked destination list, best first. Empty only for
	// greeting turns.
	Results []SearchResult `json:"results,omitempty"`

	// RemoteResults carries enrichment from the portal search API when
	// available.
	RemoteResults []RemoteResult `json:"remote_results,omitempty"`

	// Suggestions are example follow-up queries.
	Suggestions []string `json:"suggestions,omitempty"`

	// LowConfidence is set when the best result should be framed as a
	// "nearest matches" suggestion rather than a confident destination.
	LowConfidence bool `json:"low_confidence"`
}

// =============================================================================
// Resolve Request / Response
// =============================================================================

// ResolveRequest is the body of POST /v1/resolve and /v1/spelling.
// The deterministic endpoints make no external calls.
type ResolveRequest struct {
	Query string `json:"query" validate:"required,maxquerybytes"`
}

// Validate checks the request against its struct tags.
func (r *ResolveRequest) Validate() error {
	if err := chatValidate.Struct(r); err != nil {
		return fmt.Errorf("invalid resolve request: %w", err)
	}
	return nil
}

// ResolveResponse is the body returned by POST /v1/resolve.
type ResolveResponse struct {
	// Corrected is the spelling-corrected form of the query.
	Corrected string `json:"corrected"`

	// Results is the ranked destination list, best first. Never empty.
	Results []SearchResult `json:"results"`
}

// SpellingResponse is the body returned by POST /v1/spelling.
type SpellingResponse struct {
	Original  string `json:"original"`
	Corrected string `json:"corrected"`
}
