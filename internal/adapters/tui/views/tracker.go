package views

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"scriptorium/internal/adapters/tui/styles"
	"scriptorium/internal/app"
	"scriptorium/internal/application"
	"scriptorium/internal/application/commands"
	"scriptorium/internal/application/progress"
	"scriptorium/internal/domain"
)

// TrackerKeyMap defines key bindings for the tracker view
type TrackerKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Open   key.Binding
	Toggle key.Binding
	Read   key.Binding
	Close  key.Binding
	Reset  key.Binding
}

var TrackerKeys = TrackerKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "previous chapter"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "next chapter"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open book"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "x"),
		key.WithHelp("space", "toggle chapter"),
	),
	Read: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "read in reader"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Reset: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "reset tracker"),
	),
}

const (
	trackerPageSize = 20
	// chapters per row of the chapter grid
	gridColumns = 10
)

// TrackerModel shows reading progress per book and lets chapters be
// marked read
type TrackerModel struct {
	ViewState
	rt      *app.Runtime
	books   []domain.Book
	pager   *Paginator
	confirm ConfirmationModel
	toast   Toast

	// chapter grid of the open book, chapter is 1-based
	book    *domain.Book
	chapter int
}

// NewTrackerModel creates the tracker view
func NewTrackerModel(rt *app.Runtime) *TrackerModel {
	books := domain.Books()
	pager := NewPaginator(trackerPageSize)
	pager.SetTotal(len(books))
	return &TrackerModel{
		rt:      rt,
		books:   books,
		pager:   pager,
		confirm: NewConfirmationModel(),
		toast:   NewToast(toastDuration),
	}
}

// Init has nothing to load; progress is local
func (m *TrackerModel) Init() tea.Cmd {
	return nil
}

// Capturing reports whether the reset prompt is open
func (m *TrackerModel) Capturing() bool {
	return m.confirm.Active()
}

// Update handles messages for the tracker view
func (m *TrackerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.toast.Update(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		m.pager.SetPageSize(max(trackerPageSize, msg.Height-10))
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()
		if answered, confirmed := m.confirm.HandleKeyMsg(msg); answered {
			if confirmed {
				return m, m.reset()
			}
			m.SetMessage("Reset cancelled", false)
			return m, nil
		}
		if m.confirm.Active() {
			return m, nil
		}
		if m.book != nil {
			return m, m.updateGrid(msg)
		}
		return m, m.updateList(msg)
	}
	return m, nil
}

func (m *TrackerModel) updateList(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, TrackerKeys.Up):
		m.pager.CursorUp()
	case key.Matches(msg, TrackerKeys.Down):
		m.pager.CursorDown()
	case key.Matches(msg, PlansKeys.NextPage):
		m.pager.NextPage()
	case key.Matches(msg, PlansKeys.PrevPage):
		m.pager.PrevPage()
	case key.Matches(msg, TrackerKeys.Open):
		b := m.books[m.pager.Cursor()]
		m.book = &b
		m.chapter = firstUnread(m.rt.Tracker.Progress(), b)
	case key.Matches(msg, TrackerKeys.Reset):
		m.confirm.Ask(fmt.Sprintf("Clear all %d read chapters?", m.rt.Tracker.Progress().ReadChapters()))
	}
	return nil
}

func firstUnread(p domain.TrackerProgress, b domain.Book) int {
	for c := 1; c <= b.Chapters; c++ {
		if !p.IsChapterRead(b.Code, c) {
			return c
		}
	}
	return 1
}

func (m *TrackerModel) updateGrid(msg tea.KeyMsg) tea.Cmd {
	n := m.book.Chapters
	switch {
	case key.Matches(msg, TrackerKeys.Close):
		m.book = nil
	case key.Matches(msg, TrackerKeys.Left):
		m.chapter = max(1, m.chapter-1)
	case key.Matches(msg, TrackerKeys.Right):
		m.chapter = min(n, m.chapter+1)
	case key.Matches(msg, TrackerKeys.Up):
		if m.chapter > gridColumns {
			m.chapter -= gridColumns
		}
	case key.Matches(msg, TrackerKeys.Down):
		if m.chapter+gridColumns <= n {
			m.chapter += gridColumns
		}
	case key.Matches(msg, TrackerKeys.Toggle):
		res, err := commands.NewToggleChapterCommand(m.rt.Tracker, m.book.Code, m.chapter).Execute(context.Background())
		if err != nil {
			m.SetMessage(err.Error(), true)
			return nil
		}
		if !res.Persist.OK() {
			m.SetMessage("Progress not saved: "+res.Persist.Err.Error(), true)
		}
		return m.toast.Show(res.Message)
	case key.Matches(msg, TrackerKeys.Read):
		reading := domain.BibleReading{Book: m.book.Code, Chapter: m.chapter}
		return func() tea.Msg { return OpenReadingMsg{Reading: reading} }
	case key.Matches(msg, TrackerKeys.Reset):
		m.confirm.Ask(fmt.Sprintf("Clear all %d read chapters?", m.rt.Tracker.Progress().ReadChapters()))
	}
	return nil
}

// reset runs after the prompt was answered, so the controller's own
// confirmation is accepted here
func (m *TrackerModel) reset() tea.Cmd {
	accept := progress.ConfirmFunc(func(string) (bool, error) { return true, nil })
	res, err := commands.NewResetTrackerCommand(m.rt.Tracker, accept).Execute(context.Background())
	switch {
	case errors.Is(err, application.ErrConfirmationRequired):
		m.SetMessage("Reset cancelled", false)
		return nil
	case err != nil:
		m.SetMessage(err.Error(), true)
		return nil
	case !res.Persist.OK():
		m.SetMessage("Reset not saved: "+res.Persist.Err.Error(), true)
	}
	return m.toast.Show(res.Message)
}

// View renders the tracker view
func (m *TrackerModel) View() string {
	if m.book != nil {
		return m.viewGrid()
	}

	p := m.rt.Tracker.Progress()
	v := NewViewBuilder().Title("Bible Tracker")
	v.Line(RenderProgressLine("Whole Bible", 16, p.TotalProgress()))
	v.Line(fmt.Sprintf("%s %s",
		padRight("Old Testament", 16),
		styles.MutedText.Render(fmt.Sprintf("%.1f%%", p.SectionProgress(domain.OldTestament)))))
	v.Line(fmt.Sprintf("%s %s",
		padRight("New Testament", 16),
		styles.MutedText.Render(fmt.Sprintf("%.1f%%", p.SectionProgress(domain.NewTestament)))))
	v.BlankLine()

	start, end := m.pager.VisibleRange()
	for i := start; i < end; i++ {
		b := m.books[i]
		label := padRight(b.Name, 16)
		if i == m.pager.Cursor() {
			label = styles.ListSelected.Render(label)
		}
		pct := p.BookProgress(b.Code)
		row := fmt.Sprintf("%s %s %3d%%  %s", label, styles.ProgressBar(pct, 20), pct,
			styles.MutedText.Render(fmt.Sprintf("%d/%d", p.ReadCount(b), b.Chapters)))
		if p.IsBookComplete(b.Code) {
			row += " " + styles.Success.Render("✓")
		}
		v.Line(row)
	}
	if m.pager.TotalPages() > 1 {
		v.BlankLine().Muted(fmt.Sprintf("Page %d/%d", m.pager.CurrentPage(), m.pager.TotalPages()))
	}

	m.footer(v)
	v.Help(TrackerKeys.Open, TrackerKeys.Reset, AppKeys.Help, AppKeys.Quit)
	return v.String()
}

func (m *TrackerModel) viewGrid() string {
	p := m.rt.Tracker.Progress()
	v := NewViewBuilder().Title(m.book.Name)
	v.Line(RenderProgressLine(fmt.Sprintf("%d/%d chapters", p.ReadCount(*m.book), m.book.Chapters), 16, p.BookProgress(m.book.Code)))
	v.BlankLine()
	v.Line(renderChapterGrid(m.book, p, m.chapter))
	m.footer(v)
	v.Help(TrackerKeys.Toggle, TrackerKeys.Read, TrackerKeys.Close, TrackerKeys.Reset)
	return v.String()
}

func (m *TrackerModel) footer(v *ViewBuilder) {
	v.BlankLine()
	if m.confirm.Active() {
		v.Line(m.confirm.View())
	}
	if m.toast.Visible() {
		v.Line(RenderToast(m.toast))
	}
	v.Message(m.Message, m.MessageErr)
}

// renderChapterGrid lays the chapters of b out in rows, read chapters
// marked and the cursor chapter selected
func renderChapterGrid(b *domain.Book, p domain.TrackerProgress, cursor int) string {
	var sb strings.Builder
	for c := 1; c <= b.Chapters; c++ {
		cell := fmt.Sprintf("%4d", c)
		switch {
		case c == cursor:
			cell = styles.ListSelected.Render(cell)
		case p.IsChapterRead(b.Code, c):
			cell = styles.Success.Render(cell)
		default:
			cell = styles.MutedText.Render(cell)
		}
		sb.WriteString(cell)
		if c%gridColumns == 0 && c != b.Chapters {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
