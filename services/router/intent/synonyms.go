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

	"github.com/vidyasetu/VidyaSetu/services/router/knowledge"
)

// =============================================================================
// Synonym Expansion
// =============================================================================

// ExpandWithSynonyms produces the set of alternative search terms for a
// corrected query.
//
// # Description
//
// The original full query always comes first; downstream callers
// iterate the slice and stop at the first term the remote search API
// returns results for. After the original, each token contributes: the
// token itself, the key of any synonym group it belongs to, every
// member of that group, and (at fuzzyThreshold, typically 0.8) groups
// the token nearly matches. Duplicates are removed preserving first
// occurrence.
//
// # Example
//
//	ExpandWithSynonyms(snap, "exam", 0.8)
//	// ["exam", "test", "exams", "examination", "quiz", "assessment"]
//
// # Limitations
//
//   - Beyond "original query first" the ordering is an implementation
//     detail; callers must not depend on it.
func ExpandWithSynonyms(snap *knowledge.Snapshot, query string, fuzzyThreshold float64) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	variants := make([]string, 0, 8)
	seen := make(map[string]struct{})
	add := func(term string) {
		term = strings.TrimSpace(term)
		if term == "" {
			return
		}
		if _, dup := seen[term]; dup {
			return
		}
		seen[term] = struct{}{}
		variants = append(variants, term)
	}

	add(query)

	groups := snap.KB().Synonyms
	for _, tok := range strings.Fields(query) {
		add(tok)
		for _, key := range snap.SynonymKeys() {
			if !tokenInGroup(tok, key, groups[key]) &&
				!FuzzyMatch(tok, key, fuzzyThreshold) {
				continue
			}
			add(key)
			for _, member := range groups[key] {
				add(member)
			}
		}
	}
	return variants
}

// tokenInGroup reports whether tok is the group key or one of its
// members.
func tokenInGroup(tok, key string, members []string) bool {
	if tok == key {
		return true
	}
	for _, m := range members {
		if tok == m {
			return true
		}
	}
	return false
}
