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
	"sort"
	"strings"

	"github.com/vidyasetu/VidyaSetu/services/router/knowledge"
)

// =============================================================================
// Spelling Correction
// =============================================================================

// CorrectSpelling maps a free-text query, word by word, to corrected
// forms.
//
// # Description
//
// Per whitespace-delimited token, in order:
//
//  1. Tokens of one or two runes, and stop words, are left untouched.
//  2. An exact hit in the misspelling dictionary replaces the token.
//  3. Known vocabulary (any keyword, synonym, or visual term) passes
//     through unchanged.
//  4. Otherwise the dictionary is searched for the nearest entry by
//     edit distance, checking both the misspelled keys and the correct
//     values, under a length-dependent budget (distance 1 for short
//     tokens, up to 2 for tokens longer than four runes).
//  5. Failing that, tokens longer than three runes fall back to
//     phonetic equality against the dictionary's correct forms.
//  6. Otherwise the token passes through unchanged.
//
// The result is lowercased, single-space joined, and has the same token
// count and order as the input. Correction is total (never fails) and
// idempotent: an already-correct word is at distance zero from its own
// dictionary value and maps to itself.
//
// # Example
//
//	CorrectSpelling(snap, "monky")         // "monkey"
//	CorrectSpelling(snap, "clas 5 mathes") // "class 5 maths"
func CorrectSpelling(snap *knowledge.Snapshot, query string) string {
	tokens := strings.Fields(strings.ToLower(strings.TrimSpace(query)))
	for i, tok := range tokens {
		tokens[i] = correctToken(snap, tok)
	}
	return strings.Join(tokens, " ")
}

// correctToken corrects a single lowercased token.
func correctToken(snap *knowledge.Snapshot, tok string) string {
	runes := len([]rune(tok))
	if runes <= 2 || snap.IsStopWord(tok) {
		return tok
	}

	dict := snap.KB().Misspellings
	if fixed, ok := dict[tok]; ok {
		return fixed
	}

	// Known vocabulary is never "corrected" away; "plans" sits within
	// two edits of "class" but is a real keyword.
	if snap.IsKnownWord(tok) {
		return tok
	}

	// Strictness tier: short tokens get a budget of one edit, longer
	// ones two. A loose budget on short tokens turns real words into
	// unrelated dictionary entries.
	budget := 1
	if runes > 4 {
		budget = 2
	}

	best := ""
	bestDist := budget + 1
	consider := func(candidate, corrected string) {
		d := EditDistance(tok, candidate)
		if d < bestDist || (d == bestDist && corrected < best) {
			bestDist = d
			best = corrected
		}
	}
	for key, val := range dict {
		consider(key, val)
		consider(val, val)
	}
	if bestDist <= budget {
		return best
	}

	if runes > 3 {
		if fixed, ok := phoneticLookup(dict, tok); ok {
			return fixed
		}
	}
	return tok
}

// phoneticLookup finds the first dictionary value that sounds like tok.
// Values are scanned in sorted order so the "first match" is
// deterministic regardless of map iteration order.
func phoneticLookup(dict map[string]string, tok string) (string, bool) {
	code := PhoneticCode(tok)
	if code == EmptyPhoneticCode {
		return "", false
	}

	values := make([]string, 0, len(dict))
	seen := make(map[string]struct{}, len(dict))
	for _, v := range dict {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Strings(values)

	for _, v := range values {
		if PhoneticCode(v) == code {
			return v, true
		}
	}
	return "", false
}
