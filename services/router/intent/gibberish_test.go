// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// Tests for the gibberish detector

package intent

import "testing"

func TestIsGibberish(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{name: "empty", query: "", want: true},
		{name: "single rune", query: "a", want: true},
		{name: "digits only", query: "12345", want: true},
		{name: "punctuation only", query: "?!...", want: true},
		{name: "no vowels", query: "bcd", want: true},
		{name: "keyboard mash short", query: "asdf", want: true},
		{name: "keyboard mash with prefix", query: ";lkjasdf", want: true},
		{name: "mash fragment in long multiword query", query: "xyz123 science stuff", want: false},
		{name: "ordinary word", query: "maths", want: false},
		{name: "ordinary phrase", query: "class 5 maths", want: false},
		{name: "two letter word", query: "go", want: false},
		{name: "whitespace only", query: "   ", want: true},
		{name: "telugu script passes", query: "తరగతి ఐదు", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsGibberish(tt.query); got != tt.want {
				t.Errorf("IsGibberish(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}
