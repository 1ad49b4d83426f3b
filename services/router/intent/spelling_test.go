// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// Tests for the spelling corrector

package intent

import (
	"testing"

	"github.com/vidyasetu/VidyaSetu/services/router/knowledge"
)

func TestCorrectSpelling(t *testing.T) {
	snap := knowledge.Default()

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{name: "exact dictionary hit", query: "monky", want: "monkey"},
		{name: "multi-word correction", query: "clas 5 mathes", want: "class 5 maths"},
		{name: "already correct passes through", query: "class 5 maths", want: "class 5 maths"},
		{name: "uppercase normalized", query: "MONKY", want: "monkey"},
		{name: "whitespace collapsed", query: "  monky   pictures ", want: "monkey pictures"},
		{name: "stop words untouched", query: "the monky", want: "the monkey"},
		{name: "short tokens untouched", query: "go monky", want: "go monkey"},
		{name: "unknown word untouched", query: "zzzzqqq", want: "zzzzqqq"},
		{name: "near miss within budget", query: "sciencee", want: "science"},
		{name: "empty query", query: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CorrectSpelling(snap, tt.query); got != tt.want {
				t.Errorf("CorrectSpelling(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}

// Correcting a corrected query must be a no-op; the widget re-submits
// corrected text on retry.
func TestCorrectSpellingIdempotent(t *testing.T) {
	snap := knowledge.Default()
	queries := []string{
		"monky", "clas 5 mathes", "scince experiments", "techer lesson plans",
		"pictures of elefant", "career guidance",
	}
	for _, q := range queries {
		once := CorrectSpelling(snap, q)
		twice := CorrectSpelling(snap, once)
		if once != twice {
			t.Errorf("correction of %q not idempotent: %q -> %q", q, once, twice)
		}
	}
}

func TestCorrectSpellingPreservesTokenCount(t *testing.T) {
	snap := knowledge.Default()
	queries := []string{"monky sees the lian", "clas 7 scince", "a b c d"}
	for _, q := range queries {
		got := CorrectSpelling(snap, q)
		if countFields(got) != countFields(q) {
			t.Errorf("CorrectSpelling(%q) = %q, token count changed", q, got)
		}
	}
}

func countFields(s string) int {
	n := 0
	inField := false
	for _, r := range s {
		if r == ' ' {
			inField = false
			continue
		}
		if !inField {
			n++
			inField = true
		}
	}
	return n
}
