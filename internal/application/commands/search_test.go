package commands

import (
	"context"
	"testing"
)

func TestFuzzyScore(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		query     string
		wantScore int
		wantMin   int // use this for relative comparisons
	}{
		{
			name:      "exact match",
			target:    "Genesis",
			query:     "Genesis",
			wantScore: 150, // 100 for contains + 50 for prefix
		},
		{
			name:      "prefix match",
			target:    "Song of Solomon",
			query:     "Song",
			wantScore: 150,
		},
		{
			name:      "substring match",
			target:    "1 Corinthians",
			query:     "corinth",
			wantScore: 100, // contains only
		},
		{
			name:    "fuzzy match across words",
			target:  "1 John",
			query:   "1jn",
			wantMin: 1,
		},
		{
			name:      "no match",
			target:    "Genesis",
			query:     "xyz",
			wantScore: 0,
		},
		{
			name:      "empty query",
			target:    "Genesis",
			query:     "",
			wantScore: 0,
		},
		{
			name:    "case insensitive",
			target:  "EXODUS",
			query:   "exodus",
			wantMin: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := FuzzyScore(tt.target, tt.query)

			if tt.wantScore > 0 {
				if score != tt.wantScore {
					t.Errorf("expected score %d, got %d", tt.wantScore, score)
				}
			} else if tt.wantMin > 0 {
				if score < tt.wantMin {
					t.Errorf("expected score >= %d, got %d", tt.wantMin, score)
				}
			} else {
				if score != 0 {
					t.Errorf("expected score 0, got %d", score)
				}
			}
		})
	}
}

func TestSearchBooksCommand(t *testing.T) {
	got, err := NewSearchBooksCommand("john").Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(got) < 4 {
		t.Fatalf("expected John and the three epistles, got %d results", len(got))
	}
	if got[0].Code != "jhn" {
		t.Errorf("expected jhn first, got %s", got[0].Code)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Errorf("results not sorted by score: %d > %d at index %d",
				got[i].Score, got[i-1].Score, i)
		}
	}

	short, _ := NewSearchBooksCommand("j").Execute(context.Background())
	if short != nil {
		t.Errorf("expected no results for a one letter query, got %d", len(short))
	}
}
