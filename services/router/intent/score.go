// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package intent

import "strings"

// =============================================================================
// Keyword Scoring
// =============================================================================

// Weights of the shared keyword scoring scheme. Subject extraction and
// section matching both score with ScoreKeywords so their gates are
// comparable.
const (
	scoreExactQuery    = 4.0
	scoreSubstring     = 2.0
	scoreExactWord     = 3.0
	scoreWordSubstring = 1.5
	scorePhoneticWord  = 1.0
)

// ScoreKeywords scores a lowercased query against a keyword list.
//
// # Description
//
// Per keyword, the query contributes a whole-string component (exact
// equality, then substring containment either way) plus the best
// per-word component for each query word: exact equality, substring
// containment, phonetic equality, or loose fuzzy similarity at
// fuzzyThreshold (typically 0.6, contributing the raw similarity).
// Components are summed over all keywords.
//
// Only the strongest per-word component counts for a given word/keyword
// pair, so an exact hit is not additionally counted as a substring and
// a phonetic hit.
//
// # Example
//
//	ScoreKeywords("class 5 maths", []string{"maths", "math"}, 0.6)
//	// "maths": substring 2.0 + exact word 3.0; "math": word substring 1.5
func ScoreKeywords(query string, keywords []string, fuzzyThreshold float64) float64 {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return 0
	}
	words := strings.Fields(query)

	var total float64
	for _, kw := range keywords {
		kw = strings.ToLower(kw)
		if kw == "" {
			continue
		}

		if query == kw {
			total += scoreExactQuery
		} else if strings.Contains(query, kw) || strings.Contains(kw, query) {
			total += scoreSubstring
		}

		for _, word := range words {
			total += wordScore(word, kw, fuzzyThreshold)
		}
	}
	return total
}

// wordScore returns the strongest single-word component for a
// word/keyword pair.
func wordScore(word, kw string, fuzzyThreshold float64) float64 {
	if word == kw {
		return scoreExactWord
	}
	if len(word) > 2 && len(kw) > 2 &&
		(strings.Contains(kw, word) || strings.Contains(word, kw)) {
		return scoreWordSubstring
	}
	if len(word) > 3 && PhoneticMatch(word, kw) {
		return scorePhoneticWord
	}
	if sim := Similarity(word, kw); sim >= fuzzyThreshold {
		return sim
	}
	return 0
}
