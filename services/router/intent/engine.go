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
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strings"

	"github.com/vidyasetu/VidyaSetu/services/router/datatypes"
	"github.com/vidyasetu/VidyaSetu/services/router/knowledge"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("vidyasetu.router.intent")

// =============================================================================
// Interfaces
// =============================================================================

// SnapshotProvider supplies the current knowledge snapshot. Implemented
// by knowledge.Store; tests pass a store wrapping a fixed snapshot.
type SnapshotProvider interface {
	Current() *knowledge.Snapshot
}

// =============================================================================
// Engine
// =============================================================================

// Engine is the priority search engine: it runs the pipeline stages in
// a fixed precedence order and returns a ranked, non-empty result list.
//
// # Description
//
// Tiers, strictly in order, returning at the first tier that matches:
//
//  1. Exact one-click match (whitespace-insensitive equality only).
//  2. Visual/image-term match (exact, fuzzy at 0.8, or phonetic).
//  3. Class+subject match.
//  4. Class-only match.
//  5. Named-section match above the section score gate.
//  6. Generic free-text search, for any non-gibberish query.
//  7. Terminal fallback: browse page, category none, confidence 0.
//
// Ties within a tier break on raw score; no score comparison ever
// crosses a tier boundary. Tier 7 guarantees the list is never empty.
//
// # Thread Safety
//
// Engine is safe for concurrent use: every invocation reads one
// immutable snapshot and holds no other state.
//
// # Example
//
//	engine := intent.NewEngine(store, intent.DefaultEngineConfig())
//	results := engine.Resolve(ctx, "class 5 maths")
//	top := results[0] // category class_subject, confidence 0.95
type Engine struct {
	snapshots SnapshotProvider
	config    EngineConfig
}

// NewEngine creates an Engine. Config values are validated and
// corrected if necessary.
func NewEngine(snapshots SnapshotProvider, config EngineConfig) *Engine {
	return &Engine{
		snapshots: snapshots,
		config:    validateEngineConfig(config),
	}
}

// CorrectSpelling runs the spelling corrector against the current
// snapshot. See the package-level CorrectSpelling.
func (e *Engine) CorrectSpelling(query string) string {
	return CorrectSpelling(e.snapshots.Current(), query)
}

// ExpandWithSynonyms runs the synonym expander against the current
// snapshot. The original query is always the first variant.
func (e *Engine) ExpandWithSynonyms(query string) []string {
	return ExpandWithSynonyms(e.snapshots.Current(), query, e.config.SynonymFuzzyThreshold)
}

// ExtractClassAndSubject runs the class/subject extractor against the
// current snapshot.
func (e *Engine) ExtractClassAndSubject(query string) ClassSubject {
	return ExtractClassAndSubject(e.snapshots.Current(), query, e.config)
}

// Resolve maps a (possibly already spelling-corrected) query to a
// ranked, non-empty list of portal destinations.
//
// # Description
//
// Resolve evaluates the tiers documented on Engine strictly in order
// and returns as soon as one produces a result; lower tiers are never
// scanned once a higher tier has matched. The result list is truncated
// to the configured maximum; callers wanting a single destination use
// index 0.
//
// For a fixed snapshot, Resolve is a pure function of the query.
//
// # Inputs
//
//   - ctx: Carries the trace span only; the tiers are synchronous and
//     CPU-bound, so no cancellation applies.
//   - query: The query string.
//
// # Outputs
//
//   - []datatypes.SearchResult: Ranked results, best first, length >= 1.
func (e *Engine) Resolve(ctx context.Context, query string) []datatypes.SearchResult {
	_, span := tracer.Start(ctx, "Engine.Resolve")
	defer span.End()

	snap := e.snapshots.Current()
	normalized := strings.ToLower(strings.TrimSpace(query))
	span.SetAttributes(attribute.Int("query.length", len(normalized)))

	results, tier := e.resolveTiers(snap, normalized)
	span.SetAttributes(
		attribute.Int("resolve.tier", tier),
		attribute.String("resolve.category", string(results[0].Category)),
	)
	slog.Debug("Resolved query",
		"tier", tier,
		"category", results[0].Category,
		"confidence", results[0].Confidence,
		"results", len(results))

	if len(results) > e.config.MaxResults {
		results = results[:e.config.MaxResults]
	}
	return results
}

// resolveTiers runs the precedence ladder. Always returns at least one
// result plus the 1-based tier number that produced it.
func (e *Engine) resolveTiers(snap *knowledge.Snapshot, normalized string) ([]datatypes.SearchResult, int) {
	if r, ok := e.matchOneClick(snap, normalized); ok {
		return []datatypes.SearchResult{r}, 1
	}
	if r, ok := e.matchVisualTerm(snap, normalized); ok {
		return []datatypes.SearchResult{r}, 2
	}

	cs := ExtractClassAndSubject(snap, normalized, e.config)
	if cs.ClassNum != nil {
		if cs.Subject != nil {
			return []datatypes.SearchResult{e.classSubjectResult(snap, *cs.ClassNum, cs.Subject)}, 3
		}
		return []datatypes.SearchResult{e.classOnlyResult(snap, *cs.ClassNum)}, 4
	}

	if rs := e.matchSections(snap, normalized); len(rs) > 0 {
		return rs, 5
	}

	if !IsGibberish(normalized) {
		return []datatypes.SearchResult{e.searchResult(snap, normalized)}, 6
	}

	kb := snap.KB()
	return []datatypes.SearchResult{{
		Name:        "Browse Resources",
		Description: "Explore all learning resources",
		URL:         kb.BaseURL + kb.BrowsePath,
		Category:    datatypes.CategoryNone,
		Confidence:  0,
	}}, 7
}

// matchOneClick implements tier 1. Only whitespace-insensitive equality
// against a curated alias counts; loose keyword overlap here has a
// history of hijacking unrelated searches onto shortcut pages.
func (e *Engine) matchOneClick(snap *knowledge.Snapshot, normalized string) (datatypes.SearchResult, bool) {
	res, ok := snap.OneClickByAlias(knowledge.Squash(normalized))
	if !ok {
		return datatypes.SearchResult{}, false
	}
	kb := snap.KB()
	return datatypes.SearchResult{
		Name:        res.Name,
		Description: res.Description,
		URL:         kb.BaseURL + res.URLPath,
		Category:    datatypes.CategoryOneClick,
		Confidence:  e.config.OneClickConfidence,
	}, true
}

// matchVisualTerm implements tier 2: exact, fuzzy (at the configured
// threshold), or phonetic match against the curated visual-term list.
// The best-scoring term wins.
func (e *Engine) matchVisualTerm(snap *knowledge.Snapshot, normalized string) (datatypes.SearchResult, bool) {
	var bestTerm string
	var bestScore float64
	for _, term := range snap.KB().VisualTerms {
		var score float64
		switch {
		case normalized == term:
			score = 1.0
		case FuzzyMatch(normalized, term, e.config.VisualFuzzyThreshold):
			score = Similarity(normalized, term)
		case phoneticMatchUseful(normalized, term):
			score = e.config.VisualFuzzyThreshold
		default:
			continue
		}
		if score > bestScore {
			bestScore = score
			bestTerm = term
		}
	}
	if bestTerm == "" {
		return datatypes.SearchResult{}, false
	}
	kb := snap.KB()
	return datatypes.SearchResult{
		Name:        "Pictures: " + bestTerm,
		Description: fmt.Sprintf("Illustrated content for %q", bestTerm),
		URL:         kb.BaseURL + kb.ImagePath + "?q=" + url.QueryEscape(bestTerm),
		Category:    datatypes.CategoryImageBank,
		Confidence:  e.config.ImageConfidence,
	}, true
}

// classSubjectResult builds the tier 3 destination from the grade
// number and the subject's portal-internal code.
func (e *Engine) classSubjectResult(snap *knowledge.Snapshot, class int, subject *knowledge.Subject) datatypes.SearchResult {
	kb := snap.KB()
	return datatypes.SearchResult{
		Name:        fmt.Sprintf("%s - Class %d", titleCase(subject.Name), class),
		Description: fmt.Sprintf("Class %d %s resources", class, subject.Name),
		URL:         fmt.Sprintf("%s%s/%d/%s", kb.BaseURL, kb.Academic.ClassPath, class, subject.Code),
		Category:    datatypes.CategoryClassSubject,
		Confidence:  e.config.ClassSubjectConfidence,
	}
}

// classOnlyResult builds the tier 4 destination: the grade's general
// landing page, browsing all subjects.
func (e *Engine) classOnlyResult(snap *knowledge.Snapshot, class int) datatypes.SearchResult {
	kb := snap.KB()
	return datatypes.SearchResult{
		Name:        fmt.Sprintf("Class %d", class),
		Description: fmt.Sprintf("All subjects for class %d", class),
		URL:         fmt.Sprintf("%s%s/%d", kb.BaseURL, kb.Academic.ClassPath, class),
		Category:    datatypes.CategoryClassSubject,
		Confidence:  e.config.ClassOnlyConfidence,
	}
}

// matchSections implements tier 5: every section at or above the score
// gate, ranked by score, confidence scaled into
// (SearchConfidence, SectionMaxConfidence].
func (e *Engine) matchSections(snap *knowledge.Snapshot, normalized string) []datatypes.SearchResult {
	kb := snap.KB()

	type scored struct {
		section *knowledge.Section
		score   float64
	}
	var hits []scored
	for i := range kb.Sections {
		score := ScoreKeywords(normalized, kb.Sections[i].Keywords, e.config.KeywordFuzzyThreshold)
		if score >= e.config.SectionMinScore {
			hits = append(hits, scored{&kb.Sections[i], score})
		}
	}
	if len(hits) == 0 {
		return nil
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })

	results := make([]datatypes.SearchResult, 0, len(hits))
	for _, h := range hits {
		results = append(results, datatypes.SearchResult{
			Name:        titleCase(strings.ReplaceAll(h.section.Name, "_", " ")),
			Description: h.section.Description,
			URL:         kb.BaseURL + h.section.URLPath,
			Category:    datatypes.CategorySection,
			Confidence:  e.sectionConfidence(h.score),
		})
	}
	return results
}

// sectionConfidence scales a section score into the configured band,
// capped below the curated tiers.
func (e *Engine) sectionConfidence(score float64) float64 {
	const saturation = 10.0
	frac := score / saturation
	if frac > 1 {
		frac = 1
	}
	return e.config.SearchConfidence + frac*(e.config.SectionMaxConfidence-e.config.SearchConfidence)
}

// searchResult builds the tier 6 free-text destination.
func (e *Engine) searchResult(snap *knowledge.Snapshot, normalized string) datatypes.SearchResult {
	kb := snap.KB()
	return datatypes.SearchResult{
		Name:        "Search: " + normalized,
		Description: fmt.Sprintf("Search results for %q", normalized),
		URL:         kb.BaseURL + kb.SearchPath + "?q=" + url.QueryEscape(normalized),
		Category:    datatypes.CategorySearch,
		Confidence:  e.config.SearchConfidence,
	}
}

// titleCase capitalizes the first letter of each space-separated word.
func titleCase(v string) string {
	words := strings.Fields(v)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
