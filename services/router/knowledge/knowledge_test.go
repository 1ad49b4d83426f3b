// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// Tests for the knowledge base and snapshot store

package knowledge

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultPassesValidation(t *testing.T) {
	kb := defaultKnowledgeBase()
	if err := Validate(kb); err != nil {
		t.Fatalf("built-in knowledge base failed validation: %v", err)
	}
}

func TestDefaultSnapshotLookups(t *testing.T) {
	snap := Default()

	if !snap.IsStopWord("the") {
		t.Error("expected 'the' to be a stop word")
	}
	if snap.IsStopWord("maths") {
		t.Error("'maths' must not be a stop word")
	}

	if _, ok := snap.OneClickByAlias(Squash("smart wall")); !ok {
		t.Error("expected one-click hit for 'smart wall'")
	}
	if _, ok := snap.OneClickByAlias(Squash("no such thing")); ok {
		t.Error("unexpected one-click hit")
	}

	if !snap.IsKnownWord("science") {
		t.Error("expected 'science' to be known vocabulary")
	}
	if snap.IsKnownWord("zzzzqqq") {
		t.Error("'zzzzqqq' must not be known vocabulary")
	}

	keys := snap.SynonymKeys()
	if len(keys) == 0 {
		t.Fatal("expected synonym keys")
	}
	for i := 1; i < len(keys); i++ {
		if keys[i-1] >= keys[i] {
			t.Fatalf("synonym keys not sorted: %v", keys)
		}
	}
}

func TestSquash(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Smart Wall", want: "smartwall"},
		{in: "  mcq  bank ", want: "mcqbank"},
		{in: "library", want: "library"},
		{in: "a\tb\nc", want: "abc"},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		if got := Squash(tt.in); got != tt.want {
			t.Errorf("Squash(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidateRejectsDuplicateSubjectCodes(t *testing.T) {
	kb := defaultKnowledgeBase()
	kb.Academic.Subjects[1].Code = kb.Academic.Subjects[0].Code
	if err := Validate(kb); err == nil {
		t.Error("expected duplicate subject code to fail validation")
	}
}

func TestValidateRejectsMissingBaseURL(t *testing.T) {
	kb := defaultKnowledgeBase()
	kb.BaseURL = ""
	if err := Validate(kb); err == nil {
		t.Error("expected empty base_url to fail validation")
	}
}

func TestLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "knowledge.yaml")
	content := `
base_url: "https://portal.example.org/"
search_path: "/search"
image_path: "/images"
browse_path: "/browse"
sections:
  - name: edutainment
    description: "Fun learning"
    url_path: "/fun"
    keywords: [Story, GAME]
academic:
  class_path: "/class"
  subjects:
    - name: Maths
      code: mat
      keywords: [maths, math]
  one_click_resources:
    - name: Smart Wall
      description: "Interactive displays"
      url_path: "/smart-wall"
      keywords: [smart wall]
misspellings:
  monky: Monkey
synonyms:
  exam: [test, quiz]
visual_terms: [Monkey, Lion]
stop_words: [the, a]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	snap, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	kb := snap.KB()
	if kb.BaseURL != "https://portal.example.org" {
		t.Errorf("base url not trimmed: %q", kb.BaseURL)
	}
	if kb.Misspellings["monky"] != "monkey" {
		t.Errorf("misspelling target not lowercased: %q", kb.Misspellings["monky"])
	}
	if kb.Sections[0].Keywords[0] != "story" {
		t.Errorf("section keyword not lowercased: %q", kb.Sections[0].Keywords[0])
	}
	if kb.Academic.Subjects[0].Name != "maths" {
		t.Errorf("subject name not lowercased: %q", kb.Academic.Subjects[0].Name)
	}
	if kb.VisualTerms[0] != "monkey" {
		t.Errorf("visual term not lowercased: %q", kb.VisualTerms[0])
	}
	if _, ok := snap.OneClickByAlias("smartwall"); !ok {
		t.Error("one-click index missing squashed alias")
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("base_url: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoadRejectsIncompleteTaxonomy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	// No sections, no academic block.
	if err := os.WriteFile(path, []byte(`base_url: "https://x.example"`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected validation error for incomplete taxonomy")
	}
}

func TestStoreReplacePublishesNewSnapshot(t *testing.T) {
	first := Default()
	store := NewStore(first)
	if store.Current() != first {
		t.Fatal("store did not publish initial snapshot")
	}

	second := Default()
	store.Replace(second)
	if store.Current() != second {
		t.Error("store did not publish replacement snapshot")
	}
}
