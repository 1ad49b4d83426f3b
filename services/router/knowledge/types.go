// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package knowledge holds the portal taxonomy and the static language
// tables the pipeline runs against.
//
// # Description
//
// Everything in this package is loaded once (from built-in defaults or a
// YAML file), validated, frozen into a Snapshot, and shared by reference
// across concurrent pipeline invocations. Nothing is mutated after load;
// a hot reload builds a fresh Snapshot and swaps an atomic pointer, it
// never touches a published one.
//
// The taxonomy varies between deployments, so all of it is data, not
// code: the subject-code table, the one-click resource list, the synonym
// groups, and the misspelling dictionary can be corrected without a
// rebuild.
package knowledge

import (
	"sort"
	"strings"
)

// =============================================================================
// Taxonomy Types
// =============================================================================

// KnowledgeBase is the configuration tree describing the portal.
//
// # Description
//
// KnowledgeBase carries the destination map (base URL plus path
// templates), the section list, the academic grades/subjects table, and
// the static language tables. It is the unit of YAML (de)serialization
// and of validation; see Load.
type KnowledgeBase struct {
	// BaseURL is the portal root, without a trailing slash.
	BaseURL string `yaml:"base_url" validate:"required,url"`

	// SearchPath is the free-text search endpoint path. The query is
	// appended as the q parameter.
	SearchPath string `yaml:"search_path" validate:"required,startswith=/"`

	// ImagePath is the image-bank search endpoint path.
	ImagePath string `yaml:"image_path" validate:"required,startswith=/"`

	// BrowsePath is the generic browse-all landing page path, the
	// terminal fallback destination.
	BrowsePath string `yaml:"browse_path" validate:"required,startswith=/"`

	// Sections are the non-academic portal sections.
	Sections []Section `yaml:"sections" validate:"required,min=1,dive"`

	// Academic is the grades/subjects taxonomy.
	Academic Academic `yaml:"academic" validate:"required"`

	// Misspellings maps known misspelled tokens to their correct forms.
	Misspellings map[string]string `yaml:"misspellings" validate:"required,min=1"`

	// Synonyms maps a canonical term to its equivalent terms.
	Synonyms map[string][]string `yaml:"synonyms" validate:"required,min=1"`

	// VisualTerms are concepts with known illustrated content (animals,
	// colors, shapes). Matching one routes to the image bank.
	VisualTerms []string `yaml:"visual_terms" validate:"required,min=1"`

	// StopWords are tokens the spelling corrector leaves untouched.
	StopWords []string `yaml:"stop_words"`
}

// Section is one non-academic portal section.
type Section struct {
	// Name is the section identifier, e.g. "early_career".
	Name string `yaml:"name" validate:"required"`

	// Description is shown to the user alongside the link.
	Description string `yaml:"description" validate:"required"`

	// URLPath is the section landing page path.
	URLPath string `yaml:"url_path" validate:"required,startswith=/"`

	// Keywords score the query against this section.
	Keywords []string `yaml:"keywords" validate:"required,min=1"`
}

// Academic holds the grades/subjects table and the one-click shortcuts.
type Academic struct {
	// ClassPath is the grade landing page path; the class number is
	// appended as a path segment.
	ClassPath string `yaml:"class_path" validate:"required,startswith=/"`

	// Subjects is the fixed subject list.
	Subjects []Subject `yaml:"subjects" validate:"required,min=1,dive"`

	// OneClickResources are the curated shortcut destinations.
	OneClickResources []OneClickResource `yaml:"one_click_resources" validate:"required,min=1,dive"`
}

// Subject is one entry of the fixed subject list.
type Subject struct {
	// Name is the display name, e.g. "maths".
	Name string `yaml:"name" validate:"required"`

	// Code is the portal-internal URL code, e.g. "mat".
	Code string `yaml:"code" validate:"required,alphanum"`

	// Keywords score the query against this subject.
	Keywords []string `yaml:"keywords" validate:"required,min=1"`
}

// OneClickResource is a curated shortcut destination reachable by a
// small fixed set of keyword aliases.
type OneClickResource struct {
	// Name is the display name, e.g. "Smart Wall".
	Name string `yaml:"name" validate:"required"`

	// Description is shown with the result.
	Description string `yaml:"description" validate:"required"`

	// URLPath is the destination path suffix.
	URLPath string `yaml:"url_path" validate:"required,startswith=/"`

	// Keywords are the exact aliases. Matching requires near-exact
	// equality (whitespace-insensitive), never loose keyword overlap.
	Keywords []string `yaml:"keywords" validate:"required,min=1"`
}

// =============================================================================
// Snapshot
// =============================================================================

// Snapshot is an immutable, validated view of the knowledge base with
// the derived lookup tables the pipeline needs.
//
// # Thread Safety
//
// A Snapshot is read-only after construction and safe to share across
// concurrent invocations without synchronization.
type Snapshot struct {
	kb *KnowledgeBase

	// stopWords is the stop-word set, lowercased.
	stopWords map[string]struct{}

	// oneClickIndex maps squashed (lowercased, whitespace-removed)
	// keyword aliases to their resource.
	oneClickIndex map[string]*OneClickResource

	// synonymKeys preserves the configured group iteration order so
	// expansion output is deterministic.
	synonymKeys []string

	// knownWords is the vocabulary of every keyword, synonym, visual
	// term, and misspelling target, single words only. The spelling
	// corrector leaves known words alone.
	knownWords map[string]struct{}
}

// newSnapshot derives the lookup tables. kb must already be validated
// and is owned by the snapshot from here on.
func newSnapshot(kb *KnowledgeBase) *Snapshot {
	s := &Snapshot{
		kb:            kb,
		stopWords:     make(map[string]struct{}, len(kb.StopWords)),
		oneClickIndex: make(map[string]*OneClickResource),
	}
	for _, w := range kb.StopWords {
		s.stopWords[strings.ToLower(w)] = struct{}{}
	}
	for i := range kb.Academic.OneClickResources {
		res := &kb.Academic.OneClickResources[i]
		for _, kw := range res.Keywords {
			s.oneClickIndex[Squash(kw)] = res
		}
	}
	s.synonymKeys = make([]string, 0, len(kb.Synonyms))
	for k := range kb.Synonyms {
		s.synonymKeys = append(s.synonymKeys, k)
	}
	sort.Strings(s.synonymKeys)

	s.knownWords = make(map[string]struct{})
	addWords := func(terms ...string) {
		for _, term := range terms {
			for _, w := range strings.Fields(strings.ToLower(term)) {
				s.knownWords[w] = struct{}{}
			}
		}
	}
	for _, sec := range kb.Sections {
		addWords(sec.Keywords...)
	}
	for _, sub := range kb.Academic.Subjects {
		addWords(sub.Keywords...)
	}
	for _, res := range kb.Academic.OneClickResources {
		addWords(res.Keywords...)
	}
	for key, members := range kb.Synonyms {
		addWords(key)
		addWords(members...)
	}
	addWords(kb.VisualTerms...)
	for _, correct := range kb.Misspellings {
		addWords(correct)
	}
	return s
}

// KB returns the underlying knowledge base. Callers must not mutate it.
func (s *Snapshot) KB() *KnowledgeBase { return s.kb }

// IsStopWord reports whether the lowercased token is a stop word.
func (s *Snapshot) IsStopWord(token string) bool {
	_, ok := s.stopWords[token]
	return ok
}

// IsKnownWord reports whether the lowercased token appears in any
// keyword, synonym, visual-term, or misspelling-target list.
func (s *Snapshot) IsKnownWord(token string) bool {
	_, ok := s.knownWords[token]
	return ok
}

// OneClickByAlias looks up a resource by squashed keyword alias.
func (s *Snapshot) OneClickByAlias(squashed string) (*OneClickResource, bool) {
	res, ok := s.oneClickIndex[squashed]
	return res, ok
}

// SynonymKeys returns the group keys in deterministic order.
func (s *Snapshot) SynonymKeys() []string { return s.synonymKeys }

// Squash lowercases a string and removes all internal whitespace, the
// normalization used for one-click alias equality ("smartwall" ==
// "smart wall").
func Squash(v string) string {
	var b strings.Builder
	b.Grow(len(v))
	for _, r := range strings.ToLower(v) {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
