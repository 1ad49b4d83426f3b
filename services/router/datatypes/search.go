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
// This file contains the search result types produced by the priority
// search engine. For chat request/response types, see chat.go. For the
// intent classifier types, see intent.go.
package datatypes

// =============================================================================
// Result Categories
// =============================================================================

// Category identifies which matching tier produced a SearchResult.
//
// Categories are ordered by tier precedence, not by confidence: a
// CategoryOneClick result always outranks a CategorySearch result even
// if their confidence values were ever to overlap.
type Category string

const (
	// CategoryOneClick is an exact match against a curated shortcut
	// resource such as "Smart Wall" or "MCQ Bank".
	CategoryOneClick Category = "one_click"

	// CategoryImageBank is a match against the curated visual-term list
	// (animals, colors, shapes) routed to the image search destination.
	CategoryImageBank Category = "image_bank"

	// CategoryClassSubject is a grade number plus subject match routed
	// to a class-and-subject-specific page.
	CategoryClassSubject Category = "class_subject"

	// CategorySection is a keyword match against a non-academic portal
	// section (early career, edutainment, ...).
	CategorySection Category = "section"

	// CategorySearch is the generic free-text search fallback.
	CategorySearch Category = "search"

	// CategoryNone is the terminal fallback for meaningless queries.
	// Results with this category always carry confidence 0.
	CategoryNone Category = "none"
)

// =============================================================================
// Search Result
// =============================================================================

// SearchResult is the output unit of the priority search engine.
//
// # Description
//
// A SearchResult names a destination on the portal together with the
// matching tier that selected it and a confidence signal in [0, 1].
// Results are created fresh per query and never mutated.
//
// Confidence is a relative ranking signal, not a probability. Curated
// hits (one-click, class+subject) carry strictly higher confidence than
// the generic search fallback, which carries strictly higher confidence
// than CategoryNone (always 0).
//
// # JSON Serialization
//
//	{
//	    "name": "Mathematics - Class 5",
//	    "description": "Class 5 mathematics resources",
//	    "url": "https://portal.example/class/5/maths",
//	    "category": "class_subject",
//	    "confidence": 0.95
//	}
type SearchResult struct {
	// Name is the human-readable title of the destination.
	Name string `json:"name"`

	// Description is a short explanation shown alongside the link.
	Description string `json:"description"`

	// URL is the absolute destination URL on the portal.
	URL string `json:"url"`

	// Category identifies the matching tier that produced this result.
	Category Category `json:"category"`

	// Confidence is the engine's certainty in [0, 1].
	Confidence float64 `json:"confidence"`
}

// RemoteResult is one entry returned by the portal's remote search API.
//
// The remote API is consumed as a black box; only the fields the chat
// flow surfaces are modeled here.
type RemoteResult struct {
	Title     string `json:"title"`
	Path      string `json:"path"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Category  string `json:"category,omitempty"`
}

// Translation is the translator service's response. For ASCII input
// the translator is short-circuited and TranslatedText echoes the
// input.
type Translation struct {
	TranslatedText string `json:"translated_text"`
	Keyword        string `json:"keyword,omitempty"`
}

// LowConfidence reports whether a result should be presented as a
// "nearest matches" suggestion rather than a confident destination.
//
// Callers building a response on top of the engine treat anything under
// 0.3, plus the search and none categories, as low confidence.
func (r SearchResult) LowConfidence() bool {
	return r.Confidence < 0.3 || r.Category == CategorySearch || r.Category == CategoryNone
}
