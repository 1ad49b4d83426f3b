// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package knowledge

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// kbValidate validates loaded knowledge bases. The downstream tiers
// assume the tables are complete, so a partial taxonomy must never make
// it past load.
var kbValidate = validator.New()

// Default returns a Snapshot built from the built-in taxonomy.
//
// # Description
//
// The built-in tables always pass validation (enforced by a test), so
// Default cannot fail. Use Load for deployment-specific files.
//
// # Example
//
//	snap := knowledge.Default()
//	engine := intent.NewEngine(snap, intent.DefaultEngineConfig())
func Default() *Snapshot {
	kb := defaultKnowledgeBase()
	normalize(kb)
	return newSnapshot(kb)
}

// Load reads, validates, and freezes a knowledge base from a YAML file.
//
// # Description
//
// Load is the only way deployment configuration enters the process. A
// missing file, malformed YAML, or a validation failure is returned as
// an error; callers treat that as fatal at startup rather than running
// with partial taxonomy data.
//
// # Inputs
//
//   - path: Path to the YAML knowledge file.
//
// # Outputs
//
//   - *Snapshot: The immutable validated snapshot.
//   - error: Non-nil on read, parse, or validation failure.
//
// # Example
//
//	snap, err := knowledge.Load("/etc/vidyasetu/knowledge.yaml")
//	if err != nil {
//	    log.Fatalf("FATAL: could not load knowledge base: %v", err)
//	}
func Load(path string) (*Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read knowledge file %s: %w", path, err)
	}

	var kb KnowledgeBase
	if err := yaml.Unmarshal(raw, &kb); err != nil {
		return nil, fmt.Errorf("failed to parse knowledge file %s: %w", path, err)
	}

	if err := Validate(&kb); err != nil {
		return nil, fmt.Errorf("knowledge file %s is invalid: %w", path, err)
	}

	normalize(&kb)
	slog.Info("Loaded knowledge base",
		"path", path,
		"sections", len(kb.Sections),
		"subjects", len(kb.Academic.Subjects),
		"one_click", len(kb.Academic.OneClickResources),
		"misspellings", len(kb.Misspellings),
		"synonym_groups", len(kb.Synonyms),
		"visual_terms", len(kb.VisualTerms))
	return newSnapshot(&kb), nil
}

// Validate checks a knowledge base against its struct tags plus the
// cross-field rules the tags cannot express.
func Validate(kb *KnowledgeBase) error {
	if err := kbValidate.Struct(kb); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	// Subject codes must be unique; two subjects sharing a code would
	// make class+subject URLs ambiguous.
	codes := make(map[string]string, len(kb.Academic.Subjects))
	for _, sub := range kb.Academic.Subjects {
		if prev, dup := codes[sub.Code]; dup {
			return fmt.Errorf("duplicate subject code %q (%s and %s)", sub.Code, prev, sub.Name)
		}
		codes[sub.Code] = sub.Name
	}

	// One-click aliases must be unique after squashing, or a query
	// could resolve to either of two shortcut pages.
	aliases := make(map[string]string)
	for _, res := range kb.Academic.OneClickResources {
		for _, kw := range res.Keywords {
			sq := Squash(kw)
			if prev, dup := aliases[sq]; dup && prev != res.Name {
				return fmt.Errorf("one-click alias %q claimed by both %s and %s", kw, prev, res.Name)
			}
			aliases[sq] = res.Name
		}
	}
	return nil
}

// normalize lowercases every table the pipeline compares against and
// trims the base URL. Done once at load so the hot path never needs to.
func normalize(kb *KnowledgeBase) {
	kb.BaseURL = strings.TrimRight(strings.TrimSpace(kb.BaseURL), "/")

	for i := range kb.Sections {
		lowerAll(kb.Sections[i].Keywords)
	}
	for i := range kb.Academic.Subjects {
		kb.Academic.Subjects[i].Name = strings.ToLower(kb.Academic.Subjects[i].Name)
		lowerAll(kb.Academic.Subjects[i].Keywords)
	}
	for i := range kb.Academic.OneClickResources {
		lowerAll(kb.Academic.OneClickResources[i].Keywords)
	}

	lowered := make(map[string]string, len(kb.Misspellings))
	for k, v := range kb.Misspellings {
		lowered[strings.ToLower(k)] = strings.ToLower(v)
	}
	kb.Misspellings = lowered

	groups := make(map[string][]string, len(kb.Synonyms))
	for k, members := range kb.Synonyms {
		lowerAll(members)
		groups[strings.ToLower(k)] = members
	}
	kb.Synonyms = groups

	lowerAll(kb.VisualTerms)
	lowerAll(kb.StopWords)
}

func lowerAll(v []string) {
	for i := range v {
		v[i] = strings.ToLower(strings.TrimSpace(v[i]))
	}
}
