package commands

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"scriptorium/internal/application"
	"scriptorium/internal/application/state"
	"scriptorium/internal/domain"
)

// PreferenceNames lists the names accepted by SetPreferenceCommand
var PreferenceNames = []string{
	"theme", "fontSize", "lineHeight", "letterSpacing", "wordSpacing",
	"fontFamily", "rulerEnabled", "speechRate", "skipVerses", "skipFootnotes",
}

// SetPreferenceResult contains the result of changing one preference
type SetPreferenceResult struct {
	Preferences domain.Preferences
	Message     string
	Persist     state.PersistResult
}

// SetPreferenceCommand changes one preference from its text form.
// Numeric values outside their range are clamped.
type SetPreferenceCommand struct {
	store *state.PreferenceStore
	Name  string
	Value string
}

// NewSetPreferenceCommand creates a new SetPreferenceCommand
func NewSetPreferenceCommand(store *state.PreferenceStore, name, value string) *SetPreferenceCommand {
	return &SetPreferenceCommand{
		store: store,
		Name:  name,
		Value: value,
	}
}

// Validate parses the value for the named preference
func (c *SetPreferenceCommand) Validate() error {
	_, err := c.patch()
	return err
}

// Execute applies the change
func (c *SetPreferenceCommand) Execute(ctx context.Context) (*SetPreferenceResult, error) {
	patch, err := c.patch()
	if err != nil {
		return nil, err
	}
	res := c.store.Patch(patch)
	return &SetPreferenceResult{
		Preferences: c.store.Get(),
		Message:     fmt.Sprintf("Set %s to %s", c.canonicalName(), strings.TrimSpace(c.Value)),
		Persist:     res,
	}, nil
}

func (c *SetPreferenceCommand) canonicalName() string {
	for _, n := range PreferenceNames {
		if strings.EqualFold(n, c.Name) {
			return n
		}
	}
	return c.Name
}

func (c *SetPreferenceCommand) patch() (domain.PreferencesPatch, error) {
	var p domain.PreferencesPatch
	v := strings.TrimSpace(c.Value)
	name := c.canonicalName()

	invalid := func(msg string) error {
		return &application.ValidationError{Field: name, Message: msg}
	}
	parseFloat := func() (*float64, error) {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, invalid(fmt.Sprintf("expected a number, got %q", v))
		}
		return &f, nil
	}
	parseBool := func() (*bool, error) {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, invalid(fmt.Sprintf("expected true or false, got %q", v))
		}
		return &b, nil
	}

	var err error
	switch name {
	case "theme":
		t := domain.Theme(strings.ToLower(v))
		if !slices.Contains(domain.Themes, t) {
			return p, invalid(fmt.Sprintf("unknown theme %q (light, dark, sepia)", v))
		}
		p.Theme = &t
	case "fontFamily":
		f := domain.FontFamily(strings.ToLower(v))
		if f != domain.FontSans && f != domain.FontDyslexic {
			return p, invalid(fmt.Sprintf("unknown font family %q (sans, dyslexic)", v))
		}
		p.FontFamily = &f
	case "fontSize":
		n, convErr := strconv.Atoi(strings.TrimSuffix(v, "px"))
		if convErr != nil {
			return p, invalid(fmt.Sprintf("expected a whole number of pixels, got %q", v))
		}
		p.FontSize = &n
	case "lineHeight":
		p.LineHeight, err = parseFloat()
	case "letterSpacing":
		p.LetterSpacing, err = parseFloat()
	case "wordSpacing":
		p.WordSpacing, err = parseFloat()
	case "speechRate":
		p.SpeechRate, err = parseFloat()
	case "rulerEnabled":
		p.RulerEnabled, err = parseBool()
	case "skipVerses":
		p.SkipVerses, err = parseBool()
	case "skipFootnotes":
		p.SkipFootnotes, err = parseBool()
	default:
		return p, invalid(fmt.Sprintf("unknown preference (one of %s)", strings.Join(PreferenceNames, ", ")))
	}
	return p, err
}

// ResetPreferencesCommand restores the default preferences
type ResetPreferencesCommand struct {
	store *state.PreferenceStore
}

// NewResetPreferencesCommand creates a new ResetPreferencesCommand
func NewResetPreferencesCommand(store *state.PreferenceStore) *ResetPreferencesCommand {
	return &ResetPreferencesCommand{store: store}
}

// Execute runs the reset
func (c *ResetPreferencesCommand) Execute(ctx context.Context) (*Result, error) {
	return &Result{
		Message: "Preferences restored to defaults",
		Persist: c.store.Reset(),
	}, nil
}
