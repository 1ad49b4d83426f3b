// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// Tests for the phonetic coder

package intent

import "testing"

func TestPhoneticCode(t *testing.T) {
	tests := []struct {
		name string
		word string
		want string
	}{
		{name: "simple word", word: "monkey", want: "M520"},
		{name: "typo same sound", word: "munkee", want: "M520"},
		{name: "uppercase input", word: "MONKEY", want: "M520"},
		{name: "short word padded", word: "cat", want: "C300"},
		{name: "single letter", word: "a", want: "A000"},
		{name: "duplicate consonant class suppressed", word: "class", want: "C420"},
		{name: "vowel separator allows repeat digit", word: "papa", want: "P100"},
		{name: "long word truncated to four", word: "mathematics", want: "M353"},
		{name: "digits only", word: "123", want: "0000"},
		{name: "empty string", word: "", want: "0000"},
		{name: "punctuation only", word: ";-!", want: "0000"},
		{name: "mixed letters and digits", word: "abc123", want: "A120"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PhoneticCode(tt.word); got != tt.want {
				t.Errorf("PhoneticCode(%q) = %q, want %q", tt.word, got, tt.want)
			}
		})
	}
}

func TestPhoneticCodeAlwaysFourChars(t *testing.T) {
	words := []string{"", "a", "ab", "science", "mathematics", "42", "telugu"}
	for _, w := range words {
		if got := PhoneticCode(w); len(got) != 4 {
			t.Errorf("PhoneticCode(%q) = %q, want 4 characters", w, got)
		}
	}
}

func TestPhoneticMatch(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{name: "sound-alike typo", a: "monky", b: "monkey", want: true},
		{name: "different words", a: "monkey", b: "science", want: false},
		{name: "case insensitive", a: "Science", b: "science", want: true},
		{name: "both empty share sentinel", a: "", b: "", want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PhoneticMatch(tt.a, tt.b); got != tt.want {
				t.Errorf("PhoneticMatch(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			// Symmetry must hold for every pair.
			if got := PhoneticMatch(tt.b, tt.a); got != tt.want {
				t.Errorf("PhoneticMatch(%q, %q) = %v, want %v (asymmetric)", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestPhoneticMatchUsefulRejectsSentinel(t *testing.T) {
	if phoneticMatchUseful("123", "456") {
		t.Error("two letterless strings must not count as sounding alike")
	}
	if !phoneticMatchUseful("monky", "monkey") {
		t.Error("expected monky/monkey to sound alike")
	}
}
