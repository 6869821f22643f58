package views

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"scriptorium/internal/adapters/tui/styles"
	"scriptorium/internal/app"
	"scriptorium/internal/domain"
)

// StrongKeyMap defines key bindings for the Strong's dictionary view
type StrongKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Clear key.Binding
}

var StrongKeys = StrongKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+k"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+j"),
		key.WithHelp("↓", "down"),
	),
	Clear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear"),
	),
}

const strongResultLimit = 50

type strongLoadedMsg struct {
	gen  uint64
	dict domain.StrongDictionary
	err  error
}

// StrongModel searches the Strong's dictionary. The input always has
// focus; the selected entry is shown below the results.
type StrongModel struct {
	ViewState
	rt      *app.Runtime
	input   textinput.Model
	spinner spinner.Model

	guard   loadGuard
	loading bool
	err     error
	dict    domain.StrongDictionary
	results []domain.StrongEntry
	cursor  int
}

// NewStrongModel creates the dictionary view
func NewStrongModel(rt *app.Runtime) *StrongModel {
	input := textinput.New()
	input.Placeholder = "H7225, G3056 or a word..."
	input.CharLimit = 40
	input.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot

	return &StrongModel{
		rt:      rt,
		input:   input,
		spinner: s,
	}
}

// Capturing is always true: every printable key goes to the search input
func (m *StrongModel) Capturing() bool {
	return true
}

// Init loads the dictionary when it is not loaded yet
func (m *StrongModel) Init() tea.Cmd {
	if m.dict != nil || m.loading {
		return textinput.Blink
	}
	m.loading = true
	m.err = nil
	gen := m.guard.Next()
	lib := m.rt.Library
	return tea.Batch(textinput.Blink, m.spinner.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		dict, err := lib.Strong(ctx)
		return strongLoadedMsg{gen: gen, dict: dict, err: err}
	})
}

// Lookup fills the input with a Strong's number and searches it
func (m *StrongModel) Lookup(number string) tea.Cmd {
	m.input.SetValue(number)
	m.input.CursorEnd()
	m.search()
	return m.Init()
}

func (m *StrongModel) search() {
	m.cursor = 0
	if m.dict == nil {
		m.results = nil
		return
	}
	q := m.input.Value()
	if e, ok := m.dict.Lookup(q); ok {
		m.results = []domain.StrongEntry{e}
		return
	}
	if q == "" {
		m.results = nil
		return
	}
	m.results = m.dict.Search(q, strongResultLimit)
}

// Update handles messages for the dictionary view
func (m *StrongModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case strongLoadedMsg:
		if !m.guard.Current(msg.gen) {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		m.dict = msg.dict
		m.search()
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()
		switch {
		case key.Matches(msg, StrongKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case key.Matches(msg, StrongKeys.Down):
			if m.cursor < len(m.results)-1 {
				m.cursor++
			}
			return m, nil
		case key.Matches(msg, StrongKeys.Clear):
			if m.input.Value() == "" {
				return m, func() tea.Msg { return SwitchToReaderMsg{} }
			}
			m.input.SetValue("")
			m.search()
			return m, nil
		case msg.Type == tea.KeyEnter && m.err != nil:
			return m, m.Init()
		}

		var cmd tea.Cmd
		before := m.input.Value()
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() != before {
			m.search()
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the dictionary view
func (m *StrongModel) View() string {
	v := NewViewBuilder().Title("Strong's Dictionary")
	v.Line(styles.InputFocused.Render(m.input.View())).BlankLine()

	switch {
	case m.loading:
		v.Line(m.spinner.View() + " Loading dictionary...")
	case m.err != nil:
		v.Line(RenderUnavailable(describeLoadError(m.err), key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "retry"))))
	case m.input.Value() == "":
		v.Muted(fmt.Sprintf("%d entries. Type a number or a word.", len(m.dict)))
	case len(m.results) == 0:
		v.Muted("No entries found")
	default:
		rows := min(len(m.results), max(5, m.Height/3))
		start := max(0, min(m.cursor-rows/2, len(m.results)-rows))
		for i := start; i < start+rows; i++ {
			e := m.results[i]
			line := fmt.Sprintf("%-7s %s", e.Number, e.Lemma)
			if e.Translit != "" {
				line += " (" + e.Translit + ")"
			}
			if i == m.cursor {
				line = styles.ListSelected.Render(line)
			}
			v.Line(line)
		}
		v.BlankLine()
		v.Line(styles.Panel.Render(renderStrongEntry(m.results[m.cursor], max(20, m.Width-8))))
	}

	v.BlankLine()
	v.Message(m.Message, m.MessageErr)
	v.Help(StrongKeys.Up, StrongKeys.Down, StrongKeys.Clear)
	return v.String()
}

func renderStrongEntry(e domain.StrongEntry, width int) string {
	v := NewViewBuilder()
	head := styles.StrongRef.Render(e.Number) + "  " + styles.Original.Render(e.Lemma)
	if e.Translit != "" {
		head += "  " + styles.MutedText.Render(e.Translit)
	}
	v.Line(head)
	if e.Pronunciation != "" {
		v.Muted(e.Pronunciation)
	}
	v.BlankLine()
	v.Line(wordwrap.String(e.Definition, width))
	if e.KJV != "" {
		v.BlankLine()
		v.Line(RenderLabelValue("KJV", wordwrap.String(e.KJV, width)))
	}
	return v.StringUnwrapped()
}
