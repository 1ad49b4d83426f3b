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
	"regexp"
	"strconv"
	"strings"

	"github.com/vidyasetu/VidyaSetu/services/router/knowledge"
)

// =============================================================================
// Class / Subject Extraction
// =============================================================================

const (
	// MinClass and MaxClass bound valid grade numbers. Numbers outside
	// this range are not class references.
	MinClass = 1
	MaxClass = 10

	// minAge and maxAge bound the "age N" convention; class = age - 5.
	minAge = 5
	maxAge = 15
)

// The canonical class-number pattern list. Tried in order; the first
// pattern yielding a value in [MinClass, MaxClass] wins. Kept here as
// the single source of truth so no call site grows its own regexes.
var (
	agePattern = regexp.MustCompile(`\bage\s*[:\-]?\s*(\d{1,2})\b`)

	// "5 class", "5th class", "7 grade", "3rd std"
	numberFirstPattern = regexp.MustCompile(`\b(\d{1,2})\s*(?:st|nd|rd|th)?\s*(?:class|grade|std|standard)\b`)

	// "class 5", "grade 7", "std 3"
	keywordFirstPattern = regexp.MustCompile(`\b(?:class|grade|std|standard)\s*[:\-]?\s*(\d{1,2})\b`)
)

// ClassSubject is the extractor's result.
type ClassSubject struct {
	// ClassNum is the grade number, nil when no pattern matched.
	// When present it is always in [MinClass, MaxClass].
	ClassNum *int

	// Subject is the best-scoring subject, nil when no subject cleared
	// the gate. A class with a nil subject means "class-only": browse
	// all subjects for that grade, not an error.
	Subject *knowledge.Subject

	// SubjectScore is the winning subject's raw keyword score, 0 when
	// Subject is nil.
	SubjectScore float64

	// LastToken is the final query token, kept for callers that
	// disambiguate a trailing search term.
	LastToken string
}

// ExtractClassAndSubject parses a query for a grade number and scores
// it against every known subject.
//
// # Description
//
// The class number is tried against the "age N" convention first (ages
// 5-15 map to class age-5, then range-checked), then the ordinal and
// keyword patterns in both orders. Independently, the query is scored
// against each subject's keyword list with ScoreKeywords; the best
// subject wins only if its score reaches cfg.SubjectScoreGate, so an
// unrelated query never picks up a subject from a sub-threshold fuzzy
// hit.
//
// # Example
//
//	cs := ExtractClassAndSubject(snap, "class 5 maths", cfg)
//	// *cs.ClassNum == 5, cs.Subject.Name == "maths"
//
//	cs = ExtractClassAndSubject(snap, "class 7", cfg)
//	// *cs.ClassNum == 7, cs.Subject == nil (class-only)
func ExtractClassAndSubject(snap *knowledge.Snapshot, query string, cfg EngineConfig) ClassSubject {
	query = strings.ToLower(strings.TrimSpace(query))

	out := ClassSubject{}
	if fields := strings.Fields(query); len(fields) > 0 {
		out.LastToken = fields[len(fields)-1]
	}

	out.ClassNum = extractClassNum(query)

	subjects := snap.KB().Academic.Subjects
	var best *knowledge.Subject
	var bestScore float64
	for i := range subjects {
		score := ScoreKeywords(query, subjects[i].Keywords, cfg.KeywordFuzzyThreshold)
		if score > bestScore {
			bestScore = score
			best = &subjects[i]
		}
	}
	if best != nil && bestScore >= cfg.SubjectScoreGate {
		out.Subject = best
		out.SubjectScore = bestScore
	}
	return out
}

// extractClassNum runs the canonical pattern list over a lowercased
// query. Returns nil when nothing matches with a value in range.
func extractClassNum(query string) *int {
	if m := agePattern.FindStringSubmatch(query); m != nil {
		if age, err := strconv.Atoi(m[1]); err == nil && age >= minAge && age <= maxAge {
			if class := age - 5; class >= MinClass && class <= MaxClass {
				return &class
			}
		}
	}

	for _, re := range []*regexp.Regexp{numberFirstPattern, keywordFirstPattern} {
		if m := re.FindStringSubmatch(query); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n >= MinClass && n <= MaxClass {
				return &n
			}
		}
	}
	return nil
}
