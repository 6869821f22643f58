package commands

import (
	"context"
	"sort"
	"strings"

	"scriptorium/internal/domain"
)

// BookMatch is a book with its relevance to a search query
type BookMatch struct {
	domain.Book
	Score int
}

// SearchBooksCommand finds books by code or name with fuzzy matching
type SearchBooksCommand struct {
	Query string
}

// NewSearchBooksCommand creates a new SearchBooksCommand
func NewSearchBooksCommand(query string) *SearchBooksCommand {
	return &SearchBooksCommand{Query: query}
}

// Execute returns matching books, best first. Queries shorter than two
// characters match nothing.
func (c *SearchBooksCommand) Execute(ctx context.Context) ([]BookMatch, error) {
	q := strings.TrimSpace(c.Query)
	if len(q) < 2 {
		return nil, nil
	}
	return FuzzySort(domain.Books(), q), nil
}

// FuzzyScore calculates a relevance score for how well target matches query
func FuzzyScore(target, query string) int {
	target = strings.ToLower(target)
	query = strings.ToLower(query)

	if len(query) == 0 {
		return 0
	}

	// Exact substring match first (highest priority)
	if strings.Contains(target, query) {
		score := 100
		if strings.HasPrefix(target, query) {
			score += 50
		}
		return score
	}

	// Fuzzy match: chars must appear in order
	score := 0
	queryIdx := 0
	prevMatchIdx := -1

	for i := 0; i < len(target) && queryIdx < len(query); i++ {
		if target[i] == query[queryIdx] {
			if prevMatchIdx == i-1 {
				score += 10 // consecutive chars
			}
			if i == 0 {
				score += 15 // start of string
			}
			if i > 0 && target[i-1] == ' ' {
				score += 10 // start of a word ("1 John")
			}
			score += 1
			prevMatchIdx = i
			queryIdx++
		}
	}

	if queryIdx == len(query) {
		return score
	}
	return 0
}

// FuzzySort scores books against query and sorts them by relevance,
// keeping canonical order between equal scores
func FuzzySort(books []domain.Book, query string) []BookMatch {
	scored := make([]BookMatch, 0, len(books))

	for _, b := range books {
		best := max(FuzzyScore(b.Code, query), FuzzyScore(b.Name, query))
		if best > 0 {
			scored = append(scored, BookMatch{Book: b, Score: best})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}
