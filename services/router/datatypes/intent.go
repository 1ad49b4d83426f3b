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
// This file contains the LLM intent classifier types. The classifier is
// an external collaborator: it is authoritative only for conversational
// framing (the message text and suggestions shown to the user) and for
// distinguishing greeting turns from search turns. The deterministic
// engine remains authoritative for url, category, and confidence.
package datatypes

// =============================================================================
// Search Types
// =============================================================================

// SearchType is the classifier's coarse judgement of what a message is.
type SearchType string

const (
	// SearchTypeGreeting marks a conversational turn with no search intent.
	SearchTypeGreeting SearchType = "greeting"

	// SearchTypeDirect marks a free-text search request.
	SearchTypeDirect SearchType = "direct_search"

	// SearchTypeClassSubject marks a request for a specific grade/subject.
	SearchTypeClassSubject SearchType = "class_subject"

	// SearchTypeInvalid marks input the classifier could not make sense of.
	SearchTypeInvalid SearchType = "invalid"
)

// Valid reports whether s is one of the four known search types.
func (s SearchType) Valid() bool {
	switch s {
	case SearchTypeGreeting, SearchTypeDirect, SearchTypeClassSubject, SearchTypeInvalid:
		return true
	}
	return false
}

// =============================================================================
// Intent
// =============================================================================

// Intent is the structured output of the LLM intent classifier.
//
// # Description
//
// Intent carries the conversational reply text, the classifier's slot
// extractions, and suggested follow-up queries. Slot values are hints
// only; the deterministic extractor's values win on conflict.
//
// # JSON Serialization
//
//	{
//	    "message": "Here are class 5 maths resources!",
//	    "search_query": "class 5 maths",
//	    "search_type": "class_subject",
//	    "class_num": 5,
//	    "subject": "maths",
//	    "suggestions": ["class 5 science", "mcq bank"]
//	}
type Intent struct {
	// Message is the conversational reply to show the user.
	Message string `json:"message"`

	// SearchQuery is the query the classifier extracted, empty when the
	// turn is a greeting or invalid.
	SearchQuery string `json:"search_query"`

	// SearchType is the classifier's judgement of the turn.
	SearchType SearchType `json:"search_type"`

	// ClassNum is the extracted grade number, nil when absent.
	// When present it is always in [1, 10].
	ClassNum *int `json:"class_num"`

	// Subject is the extracted subject name, empty when absent.
	Subject string `json:"subject"`

	// Suggestions are example follow-up queries for the user.
	Suggestions []string `json:"suggestions"`
}

// Message is a single chat turn passed to the classifier as history.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// DefaultGreetingIntent returns the fallback intent used when the
// classifier is unreachable or returns garbage. The caller must never
// surface a raw classifier error to the end user.
func DefaultGreetingIntent() Intent {
	return Intent{
		Message:    "How can I help you find resources?",
		SearchType: SearchTypeGreeting,
		Suggestions: []string{
			"class 5 maths",
			"smart wall",
			"pictures of animals",
			"career guidance",
		},
	}
}
