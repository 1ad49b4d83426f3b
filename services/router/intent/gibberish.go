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

import (
	"strings"
	"unicode"
)

// =============================================================================
// Gibberish Detection
// =============================================================================

// mashPatterns are keyboard-row substrings that mark obvious
// key-mashing.
var mashPatterns = []string{"qwer", "asdf", "zxcv", "hjkl", "bnm", "xyz"}

// IsGibberish heuristically flags a query as meaningless.
//
// # Description
//
// Operates on the whole trimmed, lowercased string. A query is
// gibberish when any of the following holds:
//
//   - fewer than 2 runes;
//   - no alphabetic character at all;
//   - no vowel at all;
//   - a keyboard-mash substring, checked only for strings shorter than
//     6 runes or for single-token strings. Multi-word queries long
//     enough to carry a real keyword ("xyz123 science stuff") must
//     never be suppressed by a mash fragment.
//
// This is a heuristic, not a dictionary check: rare real words pass
// through, and only the most obvious non-words are caught. Callers must
// run it as the last-resort gate, after the class/subject/keyword tiers
// have already failed, never before.
//
// # Example
//
//	IsGibberish(";lkjasdf")            // true (single token, "asdf")
//	IsGibberish("xyz123 science stuff") // false
//	IsGibberish("bcd")                  // true (no vowel)
func IsGibberish(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	runes := []rune(q)
	if len(runes) < 2 {
		return true
	}

	hasLetter := false
	hasVowel := false
	for _, r := range runes {
		if !unicode.IsLetter(r) {
			continue
		}
		hasLetter = true
		switch r {
		case 'a', 'e', 'i', 'o', 'u':
			hasVowel = true
		default:
			// The vowel heuristic only means anything for Latin
			// script; Telugu/Hindi/Gujarati text that reached us
			// untranslated is opaque, not mashing.
			if r > unicode.MaxASCII {
				hasVowel = true
			}
		}
	}
	if !hasLetter || !hasVowel {
		return true
	}

	if len(runes) < 6 || !strings.ContainsAny(q, " \t") {
		for _, mash := range mashPatterns {
			if strings.Contains(q, mash) {
				return true
			}
		}
	}
	return false
}
