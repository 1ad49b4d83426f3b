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
	"log/slog"
	"os"
	"strconv"
)

// =============================================================================
// Engine Configuration
// =============================================================================

// EngineConfig holds the gates and confidence values of the priority
// search engine.
//
// # Description
//
// Defaults come from DefaultEngineConfig() and can be overridden via
// environment variables. The confidences are relative ranking signals,
// not probabilities; their ordering (curated hits above the generic
// search fallback, which is above zero) is enforced by
// validateEngineConfig.
type EngineConfig struct {
	// OneClickConfidence is assigned to exact shortcut matches.
	// Default: 0.99 (ROUTER_ONECLICK_CONFIDENCE)
	OneClickConfidence float64

	// ImageConfidence is assigned to visual-term matches.
	// Default: 0.95 (ROUTER_IMAGE_CONFIDENCE)
	ImageConfidence float64

	// ClassSubjectConfidence is assigned to class+subject matches.
	// Default: 0.95 (ROUTER_CLASS_SUBJECT_CONFIDENCE)
	ClassSubjectConfidence float64

	// ClassOnlyConfidence is assigned to class-only matches.
	// Default: 0.88 (ROUTER_CLASS_ONLY_CONFIDENCE)
	ClassOnlyConfidence float64

	// SearchConfidence is assigned to the generic free-text fallback:
	// a deliberately low "matched but unverified" signal.
	// Default: 0.5 (ROUTER_SEARCH_CONFIDENCE)
	SearchConfidence float64

	// SectionMinScore is the keyword score a non-academic section must
	// reach before it wins tier 5.
	// Default: 2.0 (ROUTER_SECTION_MIN_SCORE)
	SectionMinScore float64

	// SectionMaxConfidence caps section confidence below the curated
	// tiers. Section confidence scales from SearchConfidence up to this
	// cap with the match score.
	// Default: 0.8 (ROUTER_SECTION_MAX_CONFIDENCE)
	SectionMaxConfidence float64

	// SubjectScoreGate is the minimum subject keyword score; below it
	// the extractor returns no subject rather than a low-confidence
	// guess ("science fiction" must not map to science from a
	// sub-threshold fuzzy hit).
	// Default: 3.0 (ROUTER_SUBJECT_SCORE_GATE)
	SubjectScoreGate float64

	// VisualFuzzyThreshold is the similarity a query must reach against
	// a visual term when not equal to it.
	// Default: 0.8 (ROUTER_VISUAL_FUZZY_THRESHOLD)
	VisualFuzzyThreshold float64

	// KeywordFuzzyThreshold is the loose per-word similarity floor used
	// in keyword scoring.
	// Default: 0.6 (ROUTER_KEYWORD_FUZZY_THRESHOLD)
	KeywordFuzzyThreshold float64

	// SynonymFuzzyThreshold is the similarity at which a token adopts a
	// synonym group it is not an exact member of.
	// Default: 0.8 (ROUTER_SYNONYM_FUZZY_THRESHOLD)
	SynonymFuzzyThreshold float64

	// MaxResults truncates the ranked list. Callers wanting a single
	// destination use index 0; the suggestion flow uses up to 4.
	// Default: 4 (ROUTER_MAX_RESULTS)
	MaxResults int
}

// DefaultEngineConfig returns the engine defaults, with environment
// overrides applied.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		OneClickConfidence:     getEnvFloat("ROUTER_ONECLICK_CONFIDENCE", 0.99),
		ImageConfidence:        getEnvFloat("ROUTER_IMAGE_CONFIDENCE", 0.95),
		ClassSubjectConfidence: getEnvFloat("ROUTER_CLASS_SUBJECT_CONFIDENCE", 0.95),
		ClassOnlyConfidence:    getEnvFloat("ROUTER_CLASS_ONLY_CONFIDENCE", 0.88),
		SearchConfidence:       getEnvFloat("ROUTER_SEARCH_CONFIDENCE", 0.5),
		SectionMinScore:        getEnvFloat("ROUTER_SECTION_MIN_SCORE", 2.0),
		SectionMaxConfidence:   getEnvFloat("ROUTER_SECTION_MAX_CONFIDENCE", 0.8),
		SubjectScoreGate:       getEnvFloat("ROUTER_SUBJECT_SCORE_GATE", 3.0),
		VisualFuzzyThreshold:   getEnvFloat("ROUTER_VISUAL_FUZZY_THRESHOLD", 0.8),
		KeywordFuzzyThreshold:  getEnvFloat("ROUTER_KEYWORD_FUZZY_THRESHOLD", 0.6),
		SynonymFuzzyThreshold:  getEnvFloat("ROUTER_SYNONYM_FUZZY_THRESHOLD", 0.8),
		MaxResults:             getEnvInt("ROUTER_MAX_RESULTS", 4),
	}
}

// validateEngineConfig corrects invalid values back to defaults, logging
// a warning for each. The confidence ordering invariant (curated >
// search > 0) is restored rather than rejected.
func validateEngineConfig(config EngineConfig) EngineConfig {
	defaults := EngineConfig{
		OneClickConfidence:     0.99,
		ImageConfidence:        0.95,
		ClassSubjectConfidence: 0.95,
		ClassOnlyConfidence:    0.88,
		SearchConfidence:       0.5,
		SectionMinScore:        2.0,
		SectionMaxConfidence:   0.8,
		SubjectScoreGate:       3.0,
		VisualFuzzyThreshold:   0.8,
		KeywordFuzzyThreshold:  0.6,
		SynonymFuzzyThreshold:  0.8,
		MaxResults:             4,
	}

	clamp := func(name string, v, def float64) float64 {
		if v <= 0 || v > 1 {
			slog.Warn("Invalid engine confidence/threshold, using default",
				"field", name, "provided", v, "default", def)
			return def
		}
		return v
	}

	config.OneClickConfidence = clamp("OneClickConfidence", config.OneClickConfidence, defaults.OneClickConfidence)
	config.ImageConfidence = clamp("ImageConfidence", config.ImageConfidence, defaults.ImageConfidence)
	config.ClassSubjectConfidence = clamp("ClassSubjectConfidence", config.ClassSubjectConfidence, defaults.ClassSubjectConfidence)
	config.ClassOnlyConfidence = clamp("ClassOnlyConfidence", config.ClassOnlyConfidence, defaults.ClassOnlyConfidence)
	config.SearchConfidence = clamp("SearchConfidence", config.SearchConfidence, defaults.SearchConfidence)
	config.SectionMaxConfidence = clamp("SectionMaxConfidence", config.SectionMaxConfidence, defaults.SectionMaxConfidence)
	config.VisualFuzzyThreshold = clamp("VisualFuzzyThreshold", config.VisualFuzzyThreshold, defaults.VisualFuzzyThreshold)
	config.KeywordFuzzyThreshold = clamp("KeywordFuzzyThreshold", config.KeywordFuzzyThreshold, defaults.KeywordFuzzyThreshold)
	config.SynonymFuzzyThreshold = clamp("SynonymFuzzyThreshold", config.SynonymFuzzyThreshold, defaults.SynonymFuzzyThreshold)

	if config.SectionMinScore <= 0 {
		slog.Warn("Invalid SectionMinScore config, using default",
			"provided", config.SectionMinScore, "default", defaults.SectionMinScore)
		config.SectionMinScore = defaults.SectionMinScore
	}
	if config.SubjectScoreGate <= 0 {
		slog.Warn("Invalid SubjectScoreGate config, using default",
			"provided", config.SubjectScoreGate, "default", defaults.SubjectScoreGate)
		config.SubjectScoreGate = defaults.SubjectScoreGate
	}
	if config.MaxResults < 1 {
		slog.Warn("Invalid MaxResults config, using default",
			"provided", config.MaxResults, "default", defaults.MaxResults)
		config.MaxResults = defaults.MaxResults
	}

	// Curated tiers must outrank the generic search fallback.
	if config.SearchConfidence >= config.ClassOnlyConfidence {
		slog.Warn("SearchConfidence must stay below curated tiers, using defaults",
			"search", config.SearchConfidence, "class_only", config.ClassOnlyConfidence)
		config.SearchConfidence = defaults.SearchConfidence
		config.ClassOnlyConfidence = defaults.ClassOnlyConfidence
	}
	if config.SectionMaxConfidence <= config.SearchConfidence {
		config.SectionMaxConfidence = defaults.SectionMaxConfidence
	}

	return config
}

// getEnvFloat returns an environment variable as float64, or defaultVal
// if not set/invalid.
func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if floatVal, err := strconv.ParseFloat(val, 64); err == nil {
			return floatVal
		}
	}
	return defaultVal
}

// getEnvInt returns an environment variable as int, or defaultVal if
// not set/invalid.
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
