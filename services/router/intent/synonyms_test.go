// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// Tests for the synonym expander

package intent

import (
	"testing"

	"github.com/vidyasetu/VidyaSetu/services/router/knowledge"
)

func TestExpandWithSynonyms(t *testing.T) {
	snap := knowledge.Default()

	tests := []struct {
		name         string
		query        string
		wantContains []string
	}{
		{
			name:         "group key expands to members",
			query:        "exam",
			wantContains: []string{"exam", "test", "exams", "examination", "quiz", "assessment"},
		},
		{
			name:         "group member expands to key and siblings",
			query:        "image",
			wantContains: []string{"image", "picture", "photo", "pictures"},
		},
		{
			name:         "multi-word query expands per token",
			query:        "animal story",
			wantContains: []string{"animal story", "animals", "stories", "tales"},
		},
		{
			name:         "fuzzy token reaches a group",
			query:        "exams",
			wantContains: []string{"exams", "exam", "test"},
		},
		{
			name:         "no group still returns query",
			query:        "polycet",
			wantContains: []string{"polycet"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExpandWithSynonyms(snap, tt.query, 0.8)
			set := make(map[string]struct{}, len(got))
			for _, v := range got {
				set[v] = struct{}{}
			}
			for _, want := range tt.wantContains {
				if _, ok := set[want]; !ok {
					t.Errorf("ExpandWithSynonyms(%q) = %v, missing %q", tt.query, got, want)
				}
			}
		})
	}
}

func TestExpandWithSynonymsOriginalFirst(t *testing.T) {
	snap := knowledge.Default()
	for _, q := range []string{"exam", "animal story", "polycet", "class 5 maths"} {
		got := ExpandWithSynonyms(snap, q, 0.8)
		if len(got) == 0 || got[0] != q {
			t.Errorf("ExpandWithSynonyms(%q) = %v, want original query first", q, got)
		}
	}
}

func TestExpandWithSynonymsNoDuplicates(t *testing.T) {
	snap := knowledge.Default()
	got := ExpandWithSynonyms(snap, "exam test quiz", 0.8)
	seen := make(map[string]struct{}, len(got))
	for _, v := range got {
		if _, dup := seen[v]; dup {
			t.Fatalf("duplicate variant %q in %v", v, got)
		}
		seen[v] = struct{}{}
	}
}

func TestExpandWithSynonymsDeterministic(t *testing.T) {
	snap := knowledge.Default()
	first := ExpandWithSynonyms(snap, "exam picture book", 0.8)
	for i := 0; i < 10; i++ {
		again := ExpandWithSynonyms(snap, "exam picture book", 0.8)
		if len(again) != len(first) {
			t.Fatalf("expansion length changed between runs: %v vs %v", first, again)
		}
		for j := range first {
			if first[j] != again[j] {
				t.Fatalf("expansion order changed between runs: %v vs %v", first, again)
			}
		}
	}
}
