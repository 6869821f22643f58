package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Plan is an entry of the plan catalogue (plans.json)
type Plan struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
	Days        int    `json:"days"`
}

// Matches reports whether the plan passes a search/type filter.
// Empty filters match everything.
func (p Plan) Matches(search, planType string) bool {
	if planType != "" && !strings.EqualFold(p.Type, planType) {
		return false
	}
	if search == "" {
		return true
	}
	q := strings.ToLower(search)
	return strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(strings.ToLower(p.ID), q)
}

// BibleReading assigns one Bible chapter on a plan day
type BibleReading struct {
	Book    string `json:"book"`
	Chapter int    `json:"chapter"`
	Verses  string `json:"verses,omitempty"`
}

// Key returns the reading key book-chapter
func (r BibleReading) Key() string {
	return fmt.Sprintf("%s-%d", r.Book, r.Chapter)
}

// Label renders the reading for display
func (r BibleReading) Label() string {
	name := r.Book
	if b, ok := LookupBook(r.Book); ok {
		name = b.Name
	}
	if r.Verses != "" {
		return fmt.Sprintf("%s %d:%s", name, r.Chapter, r.Verses)
	}
	return fmt.Sprintf("%s %d", name, r.Chapter)
}

// EgwReading assigns a supplementary reading on a plan day
type EgwReading struct {
	Label string `json:"label"`
	Title string `json:"title,omitempty"`
}

// Key returns the reading key egw-label
func (r EgwReading) Key() string {
	return "egw-" + r.Label
}

// PlanDay is the content of a single day of a plan
type PlanDay struct {
	Day   int            `json:"day"`
	Title string         `json:"title,omitempty"`
	Bible []BibleReading `json:"bible"`
	Egw   []EgwReading   `json:"egw,omitempty"`
}

// Keys returns every reading key of the day, Bible readings first,
// in content order and without duplicates.
func (d *PlanDay) Keys() []string {
	if d == nil {
		return nil
	}
	keys := make([]string, 0, len(d.Bible)+len(d.Egw))
	for _, r := range d.Bible {
		keys = appendUnique(keys, r.Key())
	}
	for _, r := range d.Egw {
		keys = appendUnique(keys, r.Key())
	}
	return keys
}

// Loaded reports whether the day has any readings to act on
func (d *PlanDay) Loaded() bool {
	return d != nil && (len(d.Bible) > 0 || len(d.Egw) > 0)
}

// PlanContent is the full day-by-day content of a plan
type PlanContent struct {
	ID    string    `json:"id"`
	Title string    `json:"title,omitempty"`
	Days  []PlanDay `json:"days"`
}

// Day finds the content for a day number
func (c *PlanContent) Day(n int) (*PlanDay, bool) {
	if c == nil {
		return nil, false
	}
	for i := range c.Days {
		if c.Days[i].Day == n {
			return &c.Days[i], true
		}
	}
	return nil, false
}

// DayProgress holds the completed reading keys of one day
type DayProgress struct {
	ReadingsCompleted []string `json:"readingsCompleted"`
}

// PlanProgress is the stored progress of one plan.
// A day is in CompletedDays iff all its reading keys are in
// PerDay[day].ReadingsCompleted. Settle is the only function that writes a
// day, so the two views cannot drift apart.
type PlanProgress struct {
	CompletedDays []int               `json:"completedDays"`
	PerDay        map[int]DayProgress `json:"perDay,omitempty"`
}

// Clone returns a deep copy
func (p PlanProgress) Clone() PlanProgress {
	out := PlanProgress{
		CompletedDays: slices.Clone(p.CompletedDays),
		PerDay:        make(map[int]DayProgress, len(p.PerDay)),
	}
	if out.CompletedDays == nil {
		out.CompletedDays = []int{}
	}
	for day, dp := range p.PerDay {
		out.PerDay[day] = DayProgress{ReadingsCompleted: slices.Clone(dp.ReadingsCompleted)}
	}
	return out
}

// Canonical sorts and deduplicates CompletedDays. Stored values written by
// older versions may be unordered.
func (p PlanProgress) Canonical() PlanProgress {
	next := p.Clone()
	slices.Sort(next.CompletedDays)
	next.CompletedDays = slices.Compact(next.CompletedDays)
	return next
}

// IsDayComplete reports whether day is in CompletedDays
func (p PlanProgress) IsDayComplete(day int) bool {
	_, found := slices.BinarySearch(p.CompletedDays, day)
	return found
}

// IsReadingComplete reports whether key is completed on day
func (p PlanProgress) IsReadingComplete(day int, key string) bool {
	return slices.Contains(p.PerDay[day].ReadingsCompleted, key)
}

// CompletedReadings returns the completed keys of a day (never nil)
func (p PlanProgress) CompletedReadings(day int) []string {
	got := p.PerDay[day].ReadingsCompleted
	if got == nil {
		return []string{}
	}
	return slices.Clone(got)
}

// Settle writes the completed readings of a day and recomputes whether the
// day is complete. completed is restricted to keys and ordered like keys.
func (p PlanProgress) Settle(day int, keys, completed []string) PlanProgress {
	next := p.Clone()

	done := make([]string, 0, len(keys))
	for _, k := range keys {
		if slices.Contains(completed, k) {
			done = appendUnique(done, k)
		}
	}

	if len(done) == 0 {
		delete(next.PerDay, day)
	} else {
		next.PerDay[day] = DayProgress{ReadingsCompleted: done}
	}

	complete := len(keys) > 0 && len(done) == len(dedupe(keys))
	next.CompletedDays = setDay(next.CompletedDays, day, complete)
	return next
}

// ToggleReading flips one reading of the day. Other readings are never
// touched. Unknown keys and unloaded days leave the progress unchanged.
func (p PlanProgress) ToggleReading(day *PlanDay, key string) (PlanProgress, bool) {
	if !day.Loaded() {
		return p, false
	}
	keys := day.Keys()
	if !slices.Contains(keys, key) {
		return p, false
	}

	completed := p.CompletedReadings(day.Day)
	if i := slices.Index(completed, key); i >= 0 {
		completed = slices.Delete(completed, i, i+1)
	} else {
		completed = append(completed, key)
	}
	return p.Settle(day.Day, keys, completed), true
}

// ToggleDay marks every reading of the day done, or clears them all when
// the day was already complete.
func (p PlanProgress) ToggleDay(day *PlanDay) (PlanProgress, bool) {
	if !day.Loaded() {
		return p, false
	}
	keys := day.Keys()
	if p.IsDayComplete(day.Day) {
		return p.Settle(day.Day, keys, nil), true
	}
	return p.Settle(day.Day, keys, keys), true
}

// CompletedCount returns the number of completed days
func (p PlanProgress) CompletedCount() int {
	return len(p.CompletedDays)
}

// Percent returns completed days over total days, rounded down
func (p PlanProgress) Percent(totalDays int) int {
	if totalDays <= 0 {
		return 0
	}
	return len(p.CompletedDays) * 100 / totalDays
}

func setDay(days []int, day int, present bool) []int {
	i, found := slices.BinarySearch(days, day)
	switch {
	case present && !found:
		return slices.Insert(days, i, day)
	case !present && found:
		return slices.Delete(days, i, i+1)
	}
	return days
}

func appendUnique(list []string, v string) []string {
	if slices.Contains(list, v) {
		return list
	}
	return append(list, v)
}

func dedupe(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = appendUnique(out, k)
	}
	return out
}
