package domain

import (
	"reflect"
	"testing"
)

func TestVerseID(t *testing.T) {
	if got := VerseID("gen", 1, 3); got != "gen-1-3" {
		t.Errorf("VerseID() = %q, want gen-1-3", got)
	}
}

func TestParseVerseID(t *testing.T) {
	tests := []struct {
		id      string
		book    string
		chapter int
		verse   int
		wantErr bool
	}{
		{"gen-1-3", "gen", 1, 3, false},
		{"1sa-17-45", "1sa", 17, 45, false},
		{"gen-1", "", 0, 0, true},
		{"gen-x-3", "", 0, 0, true},
		{"gen-1-0", "", 0, 0, true},
		{"", "", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			book, chapter, verse, err := ParseVerseID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseVerseID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if book != tt.book || chapter != tt.chapter || verse != tt.verse {
				t.Errorf("ParseVerseID(%q) = %s %d %d", tt.id, book, chapter, verse)
			}
		})
	}
}

func TestParseVerseRange(t *testing.T) {
	tests := []struct {
		name string
		expr string
		max  int
		want []int
	}{
		{"single", "3", 0, []int{3}},
		{"list", "5,1,3", 0, []int{1, 3, 5}},
		{"span", "2-4", 0, []int{2, 3, 4}},
		{"mixed with duplicates", "1,2-4,3,10", 0, []int{1, 2, 3, 4, 10}},
		{"reversed span", "4-2", 0, []int{2, 3, 4}},
		{"clamped to max", "8-12", 10, []int{8, 9, 10}},
		{"out of range dropped", "0,11", 10, []int{}},
		{"garbage skipped", "a,2,b-c, ,", 0, []int{2}},
		{"empty", "", 0, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseVerseRange(tt.expr, tt.max)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseVerseRange(%q, %d) = %v, want %v", tt.expr, tt.max, got, tt.want)
			}
		})
	}
}

func TestFormatVerseRange(t *testing.T) {
	if got := FormatVerseRange([]int{1, 2, 3, 5, 7, 8}); got != "1-3,5,7-8" {
		t.Errorf("FormatVerseRange() = %q", got)
	}
	if got := FormatVerseRange(nil); got != "" {
		t.Errorf("FormatVerseRange(nil) = %q", got)
	}
}
