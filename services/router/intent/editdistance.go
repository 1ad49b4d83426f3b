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
// Edit Distance
// =============================================================================

// EditDistance computes the Levenshtein distance between two strings.
//
// # Description
//
// Unit-cost insertions, deletions, and substitutions over runes, with
// both inputs lowercased first. Standard two-row dynamic programming,
// O(len(a)*len(b)) time and O(min) extra space.
//
// Metric properties hold: EditDistance(a, a) == 0, symmetric, and
// always >= 0.
func EditDistance(a, b string) int {
	ar := []rune(strings.ToLower(a))
	br := []rune(strings.ToLower(b))
	if len(ar) == 0 {
		return len(br)
	}
	if len(br) == 0 {
		return len(ar)
	}

	prev := make([]int, len(br)+1)
	curr := make([]int, len(br)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ar); i++ {
		curr[0] = i
		for j := 1; j <= len(br); j++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			curr[j] = minInt(curr[j-1]+1, minInt(prev[j]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(br)]
}

// Similarity derives a normalized similarity score from edit distance.
//
// # Description
//
// Returns 1 - distance/max(len(a), len(b)), in [0, 1]. An empty pair is
// defined as fully similar (1.0) to avoid dividing by zero; one empty
// side against a non-empty side scores 0.
//
// # Example
//
//	Similarity("maths", "maths")  // 1.0
//	Similarity("maths", "mathes") // 0.833...
func Similarity(a, b string) float64 {
	la := len([]rune(a))
	lb := len([]rune(b))
	if la == 0 && lb == 0 {
		return 1.0
	}
	maxLen := la
	if lb > maxLen {
		maxLen = lb
	}
	return 1.0 - float64(EditDistance(a, b))/float64(maxLen)
}

// FuzzyMatch reports whether two strings are similar at or above the
// caller-supplied threshold. Typical thresholds downstream: 0.7 for
// general fuzzy matching, 0.8-0.9 for strict typo correction, 0.6 for
// loose keyword scoring. The threshold is a property of the call site,
// not of this predicate.
func FuzzyMatch(a, b string, threshold float64) bool {
	// Cheap length gate: if lengths differ too much the similarity
	// cannot reach the threshold.
	la := len([]rune(a))
	lb := len([]rune(b))
	maxLen := la
	minLen := lb
	if lb > la {
		maxLen, minLen = lb, la
	}
	if maxLen > 0 && float64(minLen)/float64(maxLen) < threshold-1e-9 {
		return false
	}
	return Similarity(a, b) >= threshold
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
