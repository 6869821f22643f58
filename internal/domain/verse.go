package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// VerseID builds the highlight key for a verse: book-chapter-verse
func VerseID(book string, chapter, verse int) string {
	return fmt.Sprintf("%s-%d-%d", book, chapter, verse)
}

// ParseVerseID splits a verse identifier back into its parts.
// Book codes may start with a digit (1sa), so the split is from the right.
func ParseVerseID(id string) (book string, chapter, verse int, err error) {
	last := strings.LastIndex(id, "-")
	if last <= 0 {
		return "", 0, 0, fmt.Errorf("invalid verse id: %q", id)
	}
	mid := strings.LastIndex(id[:last], "-")
	if mid <= 0 {
		return "", 0, 0, fmt.Errorf("invalid verse id: %q", id)
	}

	book = id[:mid]
	chapter, err = strconv.Atoi(id[mid+1 : last])
	if err != nil || chapter < 1 {
		return "", 0, 0, fmt.Errorf("invalid chapter in verse id: %q", id)
	}
	verse, err = strconv.Atoi(id[last+1:])
	if err != nil || verse < 1 {
		return "", 0, 0, fmt.Errorf("invalid verse in verse id: %q", id)
	}
	return book, chapter, verse, nil
}

// ParseVerseRange parses a verses parameter such as "1,3,5-7".
// The result is ascending and deduplicated. Fragments that are not numbers
// or spans are skipped. A max of zero or less disables the upper bound.
func ParseVerseRange(expr string, max int) []int {
	seen := make(map[int]bool)
	add := func(n int) {
		if n < 1 || (max > 0 && n > max) {
			return
		}
		seen[n] = true
	}

	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if start, end, ok := strings.Cut(part, "-"); ok {
			lo, err1 := strconv.Atoi(strings.TrimSpace(start))
			hi, err2 := strconv.Atoi(strings.TrimSpace(end))
			if err1 != nil || err2 != nil {
				continue
			}
			if lo > hi {
				lo, hi = hi, lo
			}
			if max > 0 && hi > max {
				hi = max
			}
			for n := lo; n <= hi; n++ {
				add(n)
			}
			continue
		}

		n, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		add(n)
	}

	out := make([]int, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// FormatVerseRange renders verse numbers back into the compact span form
func FormatVerseRange(verses []int) string {
	if len(verses) == 0 {
		return ""
	}
	sorted := append([]int(nil), verses...)
	sort.Ints(sorted)

	var parts []string
	start, prev := sorted[0], sorted[0]
	flush := func() {
		if start == prev {
			parts = append(parts, strconv.Itoa(start))
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", start, prev))
		}
	}
	for _, n := range sorted[1:] {
		if n == prev {
			continue
		}
		if n == prev+1 {
			prev = n
			continue
		}
		flush()
		start, prev = n, n
	}
	flush()
	return strings.Join(parts, ",")
}
