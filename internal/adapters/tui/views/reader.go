package views

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"scriptorium/internal/adapters/tui/styles"
	"scriptorium/internal/app"
	"scriptorium/internal/application"
	"scriptorium/internal/application/content"
	"scriptorium/internal/application/navigation"
	"scriptorium/internal/application/progress"
	"scriptorium/internal/domain"
	"scriptorium/internal/events"
)

const (
	loadTimeout   = 30 * time.Second
	sidebarWidth  = 22
	toastDuration = progress.ToastDuration
)

// ReaderKeyMap defines key bindings for the reader view
type ReaderKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	PageDown    key.Binding
	PageUp      key.Binding
	NextChapter key.Binding
	PrevChapter key.Binding
	NextBook    key.Binding
	PrevBook    key.Binding
	Mode        key.Binding
	Highlight   key.Binding
	Copy        key.Binding
	Strong      key.Binding
	Sidebar     key.Binding
	Focus       key.Binding
	Select      key.Binding
	Back        key.Binding
	Retry       key.Binding
	Theme       key.Binding
	Bigger      key.Binding
	Smaller     key.Binding
}

var ReaderKeys = ReaderKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "previous verse"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "next verse"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown", " "),
		key.WithHelp("ctrl+d", "page down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("ctrl+u", "page up"),
	),
	NextChapter: key.NewBinding(
		key.WithKeys("n", "l", "right"),
		key.WithHelp("n/→", "next chapter"),
	),
	PrevChapter: key.NewBinding(
		key.WithKeys("p", "h", "left"),
		key.WithHelp("p/←", "previous chapter"),
	),
	NextBook: key.NewBinding(
		key.WithKeys("N", "]"),
		key.WithHelp("N", "next book"),
	),
	PrevBook: key.NewBinding(
		key.WithKeys("P", "["),
		key.WithHelp("P", "previous book"),
	),
	Mode: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "bible/commentary/interlinear"),
	),
	Highlight: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "highlight"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy verse"),
	),
	Strong: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "strong's"),
	),
	Sidebar: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "books"),
	),
	Focus: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "focus books"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open book"),
	),
	Back: key.NewBinding(
		key.WithKeys("backspace"),
		key.WithHelp("backspace", "back"),
	),
	Retry: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "retry"),
	),
	Theme: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "theme"),
	),
	Bigger: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+/-", "font size"),
	),
	Smaller: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "smaller"),
	),
}

// chapterData is what a reader load produces for one mode
type chapterData struct {
	bookName    string
	verses      []domain.Verse
	commentary  *domain.CommentaryChapter
	interlinear []domain.InterlinearVerse
}

// numbers returns the verse numbers in display order
func (d chapterData) numbers() []int {
	var out []int
	switch {
	case d.commentary != nil:
		for _, n := range d.commentary.Notes {
			out = append(out, n.Verse)
		}
	case d.interlinear != nil:
		for _, v := range d.interlinear {
			out = append(out, v.Number)
		}
	default:
		for _, v := range d.verses {
			out = append(out, v.Number)
		}
	}
	return out
}

type chapterLoadedMsg struct {
	gen  uint64
	pos  domain.Resolved
	data chapterData
	err  error
}

// ReaderModel shows one chapter in the bible, commentary or interlinear
// mode. Each mode has its own location and remembered position.
type ReaderModel struct {
	ViewState
	rt       *app.Runtime
	navs     map[domain.Mode]*navigation.Navigator
	unlisten func()
	mode     domain.Mode

	viewport viewport.Model
	spinner  spinner.Model
	guard    loadGuard
	loading  bool
	err      error

	pos     domain.Resolved
	data    chapterData
	cursor  int
	offsets []int

	sidebarFocus  bool
	sidebarCursor int

	toast Toast
}

// NewReaderModel creates the reader. The bible location follows navigate
// events published on the runtime bus.
func NewReaderModel(rt *app.Runtime) *ReaderModel {
	s := spinner.New()
	s.Spinner = spinner.Dot

	navs := make(map[domain.Mode]*navigation.Navigator, len(domain.Modes))
	for _, mode := range domain.Modes {
		navs[mode] = rt.Navigator(mode, navigation.NewLocation(nil))
	}

	return &ReaderModel{
		rt:       rt,
		navs:     navs,
		unlisten: navs[domain.ModeBible].Listen(rt.Bus),
		mode:     domain.ModeBible,
		viewport: viewport.New(80, 20),
		spinner:  s,
		toast:    NewToast(toastDuration),
	}
}

// Close stops following navigate events
func (m *ReaderModel) Close() {
	if m.unlisten != nil {
		m.unlisten()
	}
}

// Mode returns the current reading mode
func (m *ReaderModel) Mode() domain.Mode {
	return m.mode
}

// Position returns the chapter being shown
func (m *ReaderModel) Position() domain.Resolved {
	return m.pos
}

// SetMode switches the reading mode and loads its remembered position
func (m *ReaderModel) SetMode(mode domain.Mode) tea.Cmd {
	m.mode = mode
	return m.Load()
}

// Init loads the first chapter
func (m *ReaderModel) Init() tea.Cmd {
	return m.Load()
}

// Load resolves the current location and fetches its chapter. Responses
// of earlier loads are discarded when they arrive.
func (m *ReaderModel) Load() tea.Cmd {
	nav := m.navs[m.mode]
	pos, res := nav.Sync()
	if !res.OK() {
		m.SetMessage("Reading position not saved", true)
	}
	m.pos = pos
	m.loading = true
	m.err = nil

	gen := m.guard.Next()
	mode := m.mode
	q := nav.Query()
	lib := m.rt.Library
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		data, err := fetchChapter(ctx, lib, mode, pos, q)
		return chapterLoadedMsg{gen: gen, pos: pos, data: data, err: err}
	})
}

func fetchChapter(ctx context.Context, lib *content.Library, mode domain.Mode, pos domain.Resolved, q navigation.Query) (chapterData, error) {
	book, _ := domain.LookupBook(pos.Book)
	data := chapterData{bookName: book.Name}

	switch mode {
	case domain.ModeCommentary:
		ch, err := lib.CommentaryChapter(ctx, pos.Book, pos.Chapter)
		if err != nil {
			return data, err
		}
		data.commentary = ch
	case domain.ModeInterlinear:
		ch, err := lib.InterlinearChapter(ctx, pos.Book, pos.Chapter)
		if err != nil {
			return data, err
		}
		data.interlinear = ch.Verses
		if len(ch.Verses) > 0 {
			want := q.VerseNumbers(ch.Verses[len(ch.Verses)-1].Number)
			if len(want) > 0 {
				data.interlinear = nil
				for _, v := range ch.Verses {
					if containsInt(want, v.Number) {
						data.interlinear = append(data.interlinear, v)
					}
				}
			}
		}
	default:
		ch, err := lib.Chapter(ctx, pos.Book, pos.Chapter)
		if err != nil {
			return data, err
		}
		maxVerse := 0
		if len(ch.Verses) > 0 {
			maxVerse = ch.Verses[len(ch.Verses)-1].Number
		}
		data.verses = ch.Select(q.VerseNumbers(maxVerse))
	}
	return data, nil
}

// Update handles messages for the reader
func (m *ReaderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.toast.Update(msg)

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

	case chapterLoadedMsg:
		if !m.guard.Current(msg.gen) {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		m.data = msg.data
		m.cursor = max(0, indexOf(msg.data.numbers(), msg.pos.Verse))
		m.refresh()
		m.scrollToCursor()
		return m, nil

	case PreferencesChangedMsg:
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()
		if m.sidebarFocus && !m.rt.Stores.Sidebar.Collapsed() {
			return m, m.updateSidebar(msg)
		}
		return m, m.updateText(msg)
	}

	return m, nil
}

func (m *ReaderModel) updateText(msg tea.KeyMsg) tea.Cmd {
	nav := m.navs[m.mode]

	switch {
	case key.Matches(msg, ReaderKeys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.selectVerse()
		}
		return nil

	case key.Matches(msg, ReaderKeys.Down):
		if m.cursor < len(m.data.numbers())-1 {
			m.cursor++
			m.selectVerse()
		}
		return nil

	case key.Matches(msg, ReaderKeys.PageDown):
		m.viewport.HalfViewDown()
		return nil

	case key.Matches(msg, ReaderKeys.PageUp):
		m.viewport.HalfViewUp()
		return nil

	case key.Matches(msg, ReaderKeys.NextChapter):
		_, _, err := nav.NextChapter()
		return m.afterMove(err)

	case key.Matches(msg, ReaderKeys.PrevChapter):
		_, _, err := nav.PrevChapter()
		return m.afterMove(err)

	case key.Matches(msg, ReaderKeys.NextBook):
		if next, ok := domain.NextBook(m.pos.Book); ok {
			_, _, err := nav.ChangeBook(next.Code)
			return m.afterMove(err)
		}
		return nil

	case key.Matches(msg, ReaderKeys.PrevBook):
		if prev, ok := domain.PrevBook(m.pos.Book); ok {
			_, _, err := nav.ChangeBook(prev.Code)
			return m.afterMove(err)
		}
		return nil

	case key.Matches(msg, ReaderKeys.Back):
		if _, ok := nav.Back(); ok {
			return m.Load()
		}
		return nil

	case key.Matches(msg, ReaderKeys.Mode):
		next := domain.Modes[(int(m.mode)+1)%len(domain.Modes)]
		return m.SetMode(next)

	case key.Matches(msg, ReaderKeys.Retry):
		if m.err != nil {
			return m.Load()
		}
		return nil

	case key.Matches(msg, ReaderKeys.Highlight):
		return m.toggleHighlight()

	case key.Matches(msg, ReaderKeys.Copy):
		return m.copyVerse()

	case key.Matches(msg, ReaderKeys.Strong):
		if number := m.cursorStrong(); number != "" {
			return func() tea.Msg { return SwitchToStrongMsg{Number: number} }
		}
		return nil

	case key.Matches(msg, ReaderKeys.Sidebar):
		m.rt.Bus.Publish(events.TopicToggleSidebar, nil)
		m.sidebarFocus = !m.rt.Stores.Sidebar.Collapsed()
		if m.sidebarFocus {
			m.sidebarCursor = max(0, domain.BookOrder(m.pos.Book))
		}
		m.refresh()
		return nil

	case key.Matches(msg, ReaderKeys.Focus):
		if m.rt.Stores.Sidebar.Collapsed() {
			m.rt.Bus.Publish(events.TopicOpenSidebar, nil)
			m.refresh()
		}
		m.sidebarFocus = true
		m.sidebarCursor = max(0, domain.BookOrder(m.pos.Book))
		return nil

	case key.Matches(msg, ReaderKeys.Theme):
		theme := m.rt.Stores.Preferences.Get().NextTheme()
		m.rt.Stores.Preferences.Patch(domain.PreferencesPatch{Theme: &theme})
		return m.toast.Show(fmt.Sprintf("Theme: %s", theme))

	case key.Matches(msg, ReaderKeys.Bigger), key.Matches(msg, ReaderKeys.Smaller):
		size := m.rt.Stores.Preferences.Get().FontSize
		if key.Matches(msg, ReaderKeys.Bigger) {
			size += 2
		} else {
			size -= 2
		}
		m.rt.Stores.Preferences.Patch(domain.PreferencesPatch{FontSize: &size})
		return m.toast.Show(fmt.Sprintf("Font size: %dpx", m.rt.Stores.Preferences.Get().FontSize))
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

func (m *ReaderModel) updateSidebar(msg tea.KeyMsg) tea.Cmd {
	books := domain.Books()
	switch {
	case key.Matches(msg, ReaderKeys.Up):
		if m.sidebarCursor > 0 {
			m.sidebarCursor--
		}
	case key.Matches(msg, ReaderKeys.Down):
		if m.sidebarCursor < len(books)-1 {
			m.sidebarCursor++
		}
	case key.Matches(msg, ReaderKeys.Select):
		m.sidebarFocus = false
		_, _, err := m.navs[m.mode].ChangeBook(books[m.sidebarCursor].Code)
		return m.afterMove(err)
	case key.Matches(msg, ReaderKeys.Focus), msg.Type == tea.KeyEsc:
		m.sidebarFocus = false
	case key.Matches(msg, ReaderKeys.Sidebar):
		m.rt.Bus.Publish(events.TopicCloseSidebar, nil)
		m.sidebarFocus = false
		m.refresh()
	}
	return nil
}

func (m *ReaderModel) afterMove(err error) tea.Cmd {
	if err != nil {
		m.SetMessage(err.Error(), true)
		return nil
	}
	return m.Load()
}

// selectVerse records the cursor verse in the location and keeps it visible
func (m *ReaderModel) selectVerse() {
	numbers := m.data.numbers()
	if m.cursor < len(numbers) {
		m.pos, _ = m.navs[m.mode].ChangeVerse(numbers[m.cursor])
	}
	m.refresh()
	m.scrollToCursor()
}

func (m *ReaderModel) toggleHighlight() tea.Cmd {
	numbers := m.data.numbers()
	if m.mode != domain.ModeBible || m.cursor >= len(numbers) {
		return nil
	}
	on, res := m.rt.Stores.Highlights.Toggle(domain.VerseID(m.pos.Book, m.pos.Chapter, numbers[m.cursor]))
	m.refresh()
	if !res.OK() {
		m.SetMessage("Highlight not saved", true)
	}
	ref := domain.Resolved{Book: m.pos.Book, Chapter: m.pos.Chapter, Verse: numbers[m.cursor]}.String()
	if on {
		return m.toast.Show("Highlighted " + ref)
	}
	return m.toast.Show("Removed highlight from " + ref)
}

func (m *ReaderModel) copyVerse() tea.Cmd {
	if m.mode != domain.ModeBible || m.cursor >= len(m.data.verses) {
		return nil
	}
	v := m.data.verses[m.cursor]
	ref := domain.Resolved{Book: m.pos.Book, Chapter: m.pos.Chapter, Verse: v.Number}.String()
	if err := clipboard.WriteAll(fmt.Sprintf("%s %s", ref, v.Text)); err != nil {
		m.SetMessage("Clipboard unavailable: "+err.Error(), true)
		return nil
	}
	return m.toast.Show("Copied " + ref)
}

// cursorStrong returns the first Strong's number of the cursor verse
func (m *ReaderModel) cursorStrong() string {
	if m.mode != domain.ModeInterlinear || m.cursor >= len(m.data.interlinear) {
		return ""
	}
	for _, w := range m.data.interlinear[m.cursor].Words {
		if w.Strong != "" {
			return w.Strong
		}
	}
	return ""
}

// refresh re-renders the chapter into the viewport
func (m *ReaderModel) refresh() {
	width, height := m.textSize()
	m.viewport.Width = width
	m.viewport.Height = height

	highlighted := make(map[int]bool)
	for _, v := range m.rt.Stores.Highlights.InChapter(m.pos.Book, m.pos.Chapter) {
		highlighted[v] = true
	}
	text, offsets := renderChapter(m.data, styles.TextWidth(width), highlighted, m.cursor, styles.Current())
	m.offsets = offsets
	m.viewport.SetContent(text)
}

func (m *ReaderModel) scrollToCursor() {
	if m.cursor >= len(m.offsets) {
		m.viewport.GotoTop()
		return
	}
	line := m.offsets[m.cursor]
	if line < m.viewport.YOffset || line >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(max(0, line-m.viewport.Height/3))
	}
}

func (m *ReaderModel) textSize() (int, int) {
	width := max(20, m.Width-4)
	if !m.rt.Stores.Sidebar.Collapsed() {
		width -= sidebarWidth + 2
	}
	// title, blank line, status and help lines
	height := max(3, m.Height-7)
	return width, height
}

// renderChapter lays out the chapter and returns the first line of each
// verse
func renderChapter(d chapterData, width int, highlighted map[int]bool, cursor int, prefs domain.Preferences) (string, []int) {
	var b strings.Builder
	var offsets []int
	line := 0
	gap := strings.Repeat("\n", styles.VerseGap())

	write := func(s string) {
		b.WriteString(s)
		line += strings.Count(s, "\n")
	}

	if d.commentary != nil && d.commentary.Intro != "" {
		write(wordwrap.String(d.commentary.Intro, width) + "\n\n")
	}

	for i, n := range d.numbers() {
		offsets = append(offsets, line)
		var body string
		switch {
		case d.commentary != nil:
			body = d.commentary.Notes[i].Text
		case d.interlinear != nil:
			body = renderWords(d.interlinear[i].Words)
		default:
			body = d.verses[i].Text
			if !prefs.SkipFootnotes {
				for _, f := range d.verses[i].Footnotes {
					body += " " + styles.Footnote.Render("["+f+"]")
				}
			}
		}

		style := styles.VerseText
		switch {
		case i == cursor && prefs.RulerEnabled:
			style = styles.VerseRuler
		case highlighted[n]:
			style = styles.VerseHighlighted
		}

		prefix := "    "
		if !prefs.SkipVerses {
			prefix = styles.VerseNumber.Render(fmt.Sprintf("%3d ", n))
		}
		marker := " "
		if i == cursor {
			marker = styles.VerseCursor.String()
		}

		wrapped := wordwrap.String(styles.Space(body), max(10, width-5))
		lines := strings.Split(wrapped, "\n")
		first := marker + prefix + style.Render(lines[0])
		rest := ""
		if len(lines) > 1 {
			rest = "\n" + indent.String(style.Render(strings.Join(lines[1:], "\n")), 5)
		}
		write(first + rest + "\n" + gap)
	}
	return b.String(), offsets
}

func renderWords(words []domain.Word) string {
	parts := make([]string, 0, len(words))
	for _, w := range words {
		part := styles.Original.Render(w.Text)
		if w.Gloss != "" {
			part += " " + styles.MutedText.Render(w.Gloss)
		}
		if w.Strong != "" {
			part += " " + styles.StrongRef.Render(w.Strong)
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, "  ")
}

// View renders the reader
func (m *ReaderModel) View() string {
	var b strings.Builder

	title := fmt.Sprintf("%s %d", m.data.bookName, m.pos.Chapter)
	if m.data.bookName == "" {
		if book, ok := domain.LookupBook(m.pos.Book); ok {
			title = fmt.Sprintf("%s %d", book.Name, m.pos.Chapter)
		}
	}
	b.WriteString(styles.Title.Render(title))
	b.WriteString("  ")
	b.WriteString(styles.Subtitle.Render(m.mode.String()))
	b.WriteString("\n")

	var body string
	switch {
	case m.loading:
		body = m.spinner.View() + " Loading..."
	case m.err != nil:
		body = RenderUnavailable(describeLoadError(m.err), ReaderKeys.Retry)
	default:
		body = m.viewport.View()
	}

	if !m.rt.Stores.Sidebar.Collapsed() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), body)
	}
	b.WriteString(body)
	b.WriteString("\n")

	if m.toast.Visible() {
		b.WriteString(RenderToast(m.toast))
		b.WriteString("\n")
	} else if m.Message != "" {
		b.WriteString(RenderMessage(m.Message, m.MessageErr))
		b.WriteString("\n")
	}

	b.WriteString(RenderHelpLine(ReaderKeys.NextChapter, ReaderKeys.Mode, ReaderKeys.Highlight, ReaderKeys.Copy, ReaderKeys.Sidebar))
	b.WriteString(styles.HelpSeparator.String())
	b.WriteString(RenderKeyHelp(AppKeys.Help))
	return styles.App.Render(b.String())
}

func (m *ReaderModel) renderSidebar() string {
	books := domain.Books()
	_, height := m.textSize()
	start := max(0, min(m.sidebarCursor-height/2, len(books)-height))
	end := min(len(books), start+height)

	var lines []string
	for i := start; i < end; i++ {
		bk := books[i]
		name := truncate(bk.Name, sidebarWidth)
		switch {
		case m.sidebarFocus && i == m.sidebarCursor:
			name = styles.ListSelected.Render(name)
		case bk.Code == m.pos.Book:
			name = styles.Success.Render(name)
		}
		lines = append(lines, name)
	}
	return styles.Sidebar.Width(sidebarWidth).Render(strings.Join(lines, "\n"))
}

func describeLoadError(err error) error {
	var ce *application.ContentError
	switch {
	case errors.As(err, &ce) && ce.Status == 0:
		return fmt.Errorf("content server unreachable: %w", err)
	case errors.Is(err, application.ErrNotFound):
		return fmt.Errorf("not available in this edition: %w", err)
	}
	return err
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	return string(r[:max(0, width-1)]) + "…"
}

func indexOf(list []int, v int) int {
	for i, x := range list {
		if x == v {
			return i
		}
	}
	return -1
}

func containsInt(list []int, v int) bool {
	return indexOf(list, v) >= 0
}
