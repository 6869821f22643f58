package content

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"scriptorium/internal/application"
	"scriptorium/internal/domain"
)

// Content endpoints
const (
	PathPlans      = "/data/plans.json"
	PathBooksIndex = "/data/books-index.json"
	PathStrong     = "/data/strong/strong-data.json"
)

// BookPath returns the Bible text path of a book
func BookPath(code string) string {
	return fmt.Sprintf("/data/books/%s.json", code)
}

// CommentaryPath returns the commentary path of a book
func CommentaryPath(code string) string {
	return fmt.Sprintf("/data/commentary/%s.json", code)
}

// InterlinearPath returns the Hebrew interlinear path of a book
func InterlinearPath(code string) string {
	return fmt.Sprintf("/data/bible/hebrew/%s.json", code)
}

// PlanContentPath returns the day-by-day content path of a plan
func PlanContentPath(planID string) string {
	return fmt.Sprintf("/data/plan-content/%s.json", planID)
}

// Library decodes cached documents into domain types
type Library struct {
	cache *Cache
}

// NewLibrary creates a Library reading through cache
func NewLibrary(cache *Cache) *Library {
	return &Library{cache: cache}
}

// Cache returns the underlying cache
func (l *Library) Cache() *Cache {
	return l.cache
}

func load[T any](ctx context.Context, l *Library, path string) (T, error) {
	var v T
	data, err := l.cache.Get(ctx, path)
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("decode %s: %w", path, err)
	}
	return v, nil
}

// Book loads the text of a whole book
func (l *Library) Book(ctx context.Context, code string) (*domain.BookText, error) {
	b, err := load[domain.BookText](ctx, l, BookPath(code))
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Chapter loads one chapter of Bible text
func (l *Library) Chapter(ctx context.Context, code string, chapter int) (*domain.ChapterText, error) {
	b, err := l.Book(ctx, code)
	if err != nil {
		return nil, err
	}
	ch, ok := b.Chapter(chapter)
	if !ok {
		return nil, fmt.Errorf("%s chapter %d: %w", code, chapter, application.ErrNotFound)
	}
	return ch, nil
}

// Commentary loads the commentary of a book
func (l *Library) Commentary(ctx context.Context, code string) (*domain.Commentary, error) {
	c, err := load[domain.Commentary](ctx, l, CommentaryPath(code))
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CommentaryChapter loads the commentary of one chapter
func (l *Library) CommentaryChapter(ctx context.Context, code string, chapter int) (*domain.CommentaryChapter, error) {
	c, err := l.Commentary(ctx, code)
	if err != nil {
		return nil, err
	}
	ch, ok := c.Chapter(chapter)
	if !ok {
		return nil, fmt.Errorf("commentary %s chapter %d: %w", code, chapter, application.ErrNotFound)
	}
	return ch, nil
}

// Interlinear loads the interlinear text of a book
func (l *Library) Interlinear(ctx context.Context, code string) (*domain.InterlinearBook, error) {
	b, err := load[domain.InterlinearBook](ctx, l, InterlinearPath(code))
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// InterlinearChapter loads the interlinear text of one chapter
func (l *Library) InterlinearChapter(ctx context.Context, code string, chapter int) (*domain.InterlinearChapter, error) {
	b, err := l.Interlinear(ctx, code)
	if err != nil {
		return nil, err
	}
	ch, ok := b.Chapter(chapter)
	if !ok {
		return nil, fmt.Errorf("interlinear %s chapter %d: %w", code, chapter, application.ErrNotFound)
	}
	return ch, nil
}

// PlanContent loads the day-by-day content of a plan
func (l *Library) PlanContent(ctx context.Context, planID string) (*domain.PlanContent, error) {
	c, err := load[domain.PlanContent](ctx, l, PlanContentPath(planID))
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// PlanDay loads one day of a plan
func (l *Library) PlanDay(ctx context.Context, planID string, day int) (*domain.PlanDay, error) {
	c, err := l.PlanContent(ctx, planID)
	if err != nil {
		return nil, err
	}
	d, ok := c.Day(day)
	if !ok {
		return nil, fmt.Errorf("plan %s day %d: %w", planID, day, application.ErrNotFound)
	}
	return d, nil
}

// Strong loads the Strong's dictionary
func (l *Library) Strong(ctx context.Context) (domain.StrongDictionary, error) {
	return load[domain.StrongDictionary](ctx, l, PathStrong)
}

// StrongEntry looks up one Strong's number
func (l *Library) StrongEntry(ctx context.Context, number string) (domain.StrongEntry, error) {
	d, err := l.Strong(ctx)
	if err != nil {
		return domain.StrongEntry{}, err
	}
	e, ok := d.Lookup(number)
	if !ok {
		return domain.StrongEntry{}, fmt.Errorf("strong %s: %w", strings.ToUpper(number), application.ErrNotFound)
	}
	return e, nil
}

// Plans loads the plan catalogue
func (l *Library) Plans(ctx context.Context) ([]domain.Plan, error) {
	return load[[]domain.Plan](ctx, l, PathPlans)
}

// SearchPlans returns the plans matching a search text and plan type
func (l *Library) SearchPlans(ctx context.Context, search, planType string) ([]domain.Plan, error) {
	plans, err := l.Plans(ctx)
	if err != nil {
		return nil, err
	}
	var out []domain.Plan
	for _, p := range plans {
		if p.Matches(search, planType) {
			out = append(out, p)
		}
	}
	return out, nil
}

// Plan finds one plan of the catalogue
func (l *Library) Plan(ctx context.Context, planID string) (domain.Plan, error) {
	plans, err := l.Plans(ctx)
	if err != nil {
		return domain.Plan{}, err
	}
	for _, p := range plans {
		if p.ID == planID {
			return p, nil
		}
	}
	return domain.Plan{}, fmt.Errorf("plan %s: %w", planID, application.ErrNotFound)
}

// BooksIndex loads the served book index
func (l *Library) BooksIndex(ctx context.Context) ([]domain.BookIndexEntry, error) {
	return load[[]domain.BookIndexEntry](ctx, l, PathBooksIndex)
}
