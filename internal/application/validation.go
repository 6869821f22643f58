package application

import (
	"fmt"
	"strings"

	"scriptorium/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "planID" -> "plan ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"planID":     "plan ID",
		"verseID":    "verse ID",
		"readingKey": "reading key",
		"book":       "book",
		"chapter":    "chapter",
		"day":        "day",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ValidateBook checks that code names a book of the static index
func ValidateBook(code string) (domain.Book, error) {
	if err := ValidateRequired("book", code); err != nil {
		return domain.Book{}, err
	}
	book, ok := domain.LookupBook(code)
	if !ok {
		return domain.Book{}, &ValidationError{
			Field:   "book",
			Message: fmt.Sprintf("unknown book: %s", code),
		}
	}
	return book, nil
}

// ValidateChapter checks that chapter exists in book
func ValidateChapter(book domain.Book, chapter int) error {
	if chapter < 1 || chapter > book.Chapters {
		return &ValidationError{
			Field:   "chapter",
			Message: fmt.Sprintf("%s has chapters 1-%d, got %d", book.Name, book.Chapters, chapter),
		}
	}
	return nil
}

// ValidatePlanDay checks the plan ID and day number of a plan operation
func ValidatePlanDay(planID string, day int) error {
	if err := ValidateRequired("planID", planID); err != nil {
		return err
	}
	if day < 1 {
		return &ValidationError{
			Field:   "day",
			Message: fmt.Sprintf("day must be positive, got %d", day),
		}
	}
	return nil
}

// ValidateVerseID checks the book-chapter-verse form and the book/chapter
func ValidateVerseID(id string) error {
	if err := ValidateRequired("verseID", id); err != nil {
		return err
	}
	code, chapter, _, err := domain.ParseVerseID(id)
	if err != nil {
		return &ValidationError{Field: "verseID", Message: err.Error()}
	}
	book, err := ValidateBook(code)
	if err != nil {
		return err
	}
	return ValidateChapter(book, chapter)
}
