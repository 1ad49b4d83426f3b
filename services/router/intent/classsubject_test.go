// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// Tests for the class/subject extractor

package intent

import (
	"testing"

	"github.com/vidyasetu/VidyaSetu/services/router/knowledge"
)

func TestExtractClassAndSubject(t *testing.T) {
	snap := knowledge.Default()
	cfg := DefaultEngineConfig()

	tests := []struct {
		name        string
		query       string
		wantClass   int    // 0 means no class expected
		wantSubject string // "" means no subject expected
	}{
		{name: "keyword first", query: "class 5 maths", wantClass: 5, wantSubject: "maths"},
		{name: "number first", query: "5 class maths", wantClass: 5, wantSubject: "maths"},
		{name: "ordinal form", query: "7th class science", wantClass: 7, wantSubject: "science"},
		{name: "std abbreviation", query: "std 3 telugu", wantClass: 3, wantSubject: "telugu"},
		{name: "grade keyword", query: "grade 9 english", wantClass: 9, wantSubject: "english"},
		{name: "age convention", query: "age 12 science", wantClass: 7, wantSubject: "science"},
		{name: "class only", query: "class 7", wantClass: 7},
		{name: "colon separator", query: "class: 6 hindi", wantClass: 6, wantSubject: "hindi"},
		{name: "class out of range high", query: "class 11 maths", wantSubject: "maths"},
		{name: "class out of range zero", query: "class 0 maths", wantSubject: "maths"},
		{name: "age out of range", query: "age 40 science", wantSubject: "science"},
		{name: "subject only", query: "science experiments", wantSubject: "science"},
		{name: "bare number is not a class", query: "5 monkeys"},
		{name: "nothing extractable", query: "hello there"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractClassAndSubject(snap, tt.query, cfg)

			if tt.wantClass == 0 {
				if got.ClassNum != nil {
					t.Errorf("ExtractClassAndSubject(%q).ClassNum = %d, want nil", tt.query, *got.ClassNum)
				}
			} else if got.ClassNum == nil || *got.ClassNum != tt.wantClass {
				t.Errorf("ExtractClassAndSubject(%q).ClassNum = %v, want %d", tt.query, got.ClassNum, tt.wantClass)
			}

			if tt.wantSubject == "" {
				if got.Subject != nil {
					t.Errorf("ExtractClassAndSubject(%q).Subject = %q, want nil", tt.query, got.Subject.Name)
				}
			} else if got.Subject == nil || got.Subject.Name != tt.wantSubject {
				t.Errorf("ExtractClassAndSubject(%q).Subject = %v, want %q", tt.query, got.Subject, tt.wantSubject)
			}
		})
	}
}

func TestExtractClassNumAlwaysInRange(t *testing.T) {
	snap := knowledge.Default()
	cfg := DefaultEngineConfig()
	queries := []string{
		"class 1", "class 10", "class 11", "class 99", "age 5", "age 15",
		"age 16", "age 4", "0 class", "10th class", "class -3",
	}
	for _, q := range queries {
		got := ExtractClassAndSubject(snap, q, cfg)
		if got.ClassNum != nil && (*got.ClassNum < MinClass || *got.ClassNum > MaxClass) {
			t.Errorf("ExtractClassAndSubject(%q).ClassNum = %d, outside [%d, %d]",
				q, *got.ClassNum, MinClass, MaxClass)
		}
	}
}

func TestExtractClassAndSubjectLastToken(t *testing.T) {
	snap := knowledge.Default()
	cfg := DefaultEngineConfig()
	got := ExtractClassAndSubject(snap, "class 5 maths", cfg)
	if got.LastToken != "maths" {
		t.Errorf("LastToken = %q, want %q", got.LastToken, "maths")
	}
}
