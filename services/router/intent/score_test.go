// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// Tests for keyword scoring

package intent

import "testing"

func TestScoreKeywords(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		keywords []string
		want     float64
	}{
		{
			name:     "exact whole-query match",
			query:    "career",
			keywords: []string{"career"},
			// exact query 4.0 + exact word 3.0
			want: 7.0,
		},
		{
			name:     "keyword inside longer query",
			query:    "class 5 maths",
			keywords: []string{"maths"},
			// substring 2.0 + exact word 3.0
			want: 5.0,
		},
		{
			name:     "no overlap",
			query:    "career guidance",
			keywords: []string{"monkey"},
			want:     0.0,
		},
		{
			name:     "empty query",
			query:    "",
			keywords: []string{"maths"},
			want:     0.0,
		},
		{
			name:     "empty keyword ignored",
			query:    "maths",
			keywords: []string{""},
			want:     0.0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreKeywords(tt.query, tt.keywords, 0.6)
			if got != tt.want {
				t.Errorf("ScoreKeywords(%q, %v) = %v, want %v", tt.query, tt.keywords, got, tt.want)
			}
		})
	}
}

func TestScoreKeywordsOrderingSignal(t *testing.T) {
	// A direct hit must outscore a merely related query against the
	// same keyword list; the section gate depends on this ordering.
	keywords := []string{"career", "job", "guidance"}
	direct := ScoreKeywords("career guidance", keywords, 0.6)
	related := ScoreKeywords("careers", keywords, 0.6)
	unrelated := ScoreKeywords("class 5 maths", keywords, 0.6)

	if direct <= related {
		t.Errorf("direct score %v should exceed related score %v", direct, related)
	}
	if related <= unrelated {
		t.Errorf("related score %v should exceed unrelated score %v", related, unrelated)
	}
}

func TestScoreKeywordsPhoneticComponent(t *testing.T) {
	// "skool" sounds like "school" and must score at least the
	// phonetic component.
	got := ScoreKeywords("skool", []string{"school"}, 0.6)
	if got < scorePhoneticWord {
		t.Errorf("ScoreKeywords(skool, school) = %v, want at least %v", got, scorePhoneticWord)
	}
}
