package navigation

import (
	"testing"

	"scriptorium/internal/domain"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		query string
		last  domain.Position
		want  domain.Resolved
	}{
		{
			name: "nothing anywhere defaults to genesis 1",
			want: domain.Resolved{Book: "gen", Chapter: 1, Verse: 1},
		},
		{
			name: "persisted position",
			last: domain.Position{LastBook: "exo", LastChapter: "3"},
			want: domain.Resolved{Book: "exo", Chapter: 3, Verse: 1},
		},
		{
			name:  "location wins over persisted",
			query: "book=rom&chapter=8&verse=28",
			last:  domain.Position{LastBook: "exo", LastChapter: "3"},
			want:  domain.Resolved{Book: "rom", Chapter: 8, Verse: 28},
		},
		{
			name:  "new book from location starts at chapter 1",
			query: "book=rom",
			last:  domain.Position{LastBook: "exo", LastChapter: "3"},
			want:  domain.Resolved{Book: "rom", Chapter: 1, Verse: 1},
		},
		{
			name:  "same book from location keeps persisted chapter",
			query: "book=exo",
			last:  domain.Position{LastBook: "exo", LastChapter: "3"},
			want:  domain.Resolved{Book: "exo", Chapter: 3, Verse: 1},
		},
		{
			name:  "unknown location book falls through",
			query: "book=zzz&chapter=2",
			last:  domain.Position{LastBook: "exo", LastChapter: "3"},
			want:  domain.Resolved{Book: "exo", Chapter: 2, Verse: 1},
		},
		{
			name: "unknown persisted book falls through",
			last: domain.Position{LastBook: "zzz", LastChapter: "9"},
			want: domain.Resolved{Book: "gen", Chapter: 1, Verse: 1},
		},
		{
			name:  "chapter clamped to book",
			query: "book=jud&chapter=7",
			want:  domain.Resolved{Book: "jud", Chapter: 1, Verse: 1},
		},
		{
			name: "persisted chapter clamped",
			last: domain.Position{LastBook: "rut", LastChapter: "40"},
			want: domain.Resolved{Book: "rut", Chapter: 4, Verse: 1},
		},
		{
			name:  "garbage numbers ignored",
			query: "book=gen&chapter=abc&verse=-2",
			want:  domain.Resolved{Book: "gen", Chapter: 1, Verse: 1},
		},
		{
			name:  "book code is case insensitive",
			query: "book=EXO&chapter=20",
			want:  domain.Resolved{Book: "exo", Chapter: 20, Verse: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(ParseRawQuery(tt.query), tt.last)
			if got != tt.want {
				t.Errorf("Resolve() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestQuery_VerseNumbers(t *testing.T) {
	q := ParseRawQuery("?book=gen&verses=3-5,1,4")
	got := q.VerseNumbers(31)
	want := []int{1, 3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("VerseNumbers() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("VerseNumbers() = %v, want %v", got, want)
			break
		}
	}
	if ParseRawQuery("book=gen").VerseNumbers(31) != nil {
		t.Error("VerseNumbers() without parameter should be nil")
	}
}
