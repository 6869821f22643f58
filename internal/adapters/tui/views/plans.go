package views

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"scriptorium/internal/adapters/tui/styles"
	"scriptorium/internal/app"
	"scriptorium/internal/application/navigation"
	"scriptorium/internal/domain"
)

// PlansKeyMap defines key bindings for the plans view
type PlansKeyMap struct {
	Up            key.Binding
	Down          key.Binding
	NextPage      key.Binding
	PrevPage      key.Binding
	Search        key.Binding
	Type          key.Binding
	Favorite      key.Binding
	Save          key.Binding
	Open          key.Binding
	Close         key.Binding
	NextDay       key.Binding
	PrevDay       key.Binding
	ToggleReading key.Binding
	ToggleDay     key.Binding
	Read          key.Binding
}

var PlansKeys = PlansKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("ctrl+f", "pgdown"),
		key.WithHelp("ctrl+f", "next page"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("ctrl+b", "pgup"),
		key.WithHelp("ctrl+b", "prev page"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search plans"),
	),
	Type: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "filter by type"),
	),
	Favorite: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "favorite"),
	),
	Save: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "save"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open plan"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	NextDay: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "next day"),
	),
	PrevDay: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "previous day"),
	),
	ToggleReading: key.NewBinding(
		key.WithKeys(" ", "x"),
		key.WithHelp("space", "toggle reading"),
	),
	ToggleDay: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "toggle day"),
	),
	Read: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "read in reader"),
	),
}

const plansPageSize = 12

type plansLoadedMsg struct {
	gen   uint64
	plans []domain.Plan
	types []string
	err   error
}

type planContentLoadedMsg struct {
	gen     uint64
	plan    domain.Plan
	content *domain.PlanContent
	err     error
}

// PlansModel lists reading plans and shows the readings of one plan day
type PlansModel struct {
	ViewState
	rt       *app.Runtime
	location *navigation.Location

	input     textinput.Model
	searching bool
	spinner   spinner.Model
	pager     *Paginator

	listGuard loadGuard
	loading   bool
	err       error
	plans     []domain.Plan
	types     []string

	// day detail
	detail     bool
	dayGuard   loadGuard
	dayLoading bool
	dayErr     error
	plan       domain.Plan
	content    *domain.PlanContent
	day        int
	readingIdx int
	toast      Toast
}

// NewPlansModel creates the plans view. The search and type filters live
// in the view's own location parameters.
func NewPlansModel(rt *app.Runtime) *PlansModel {
	input := textinput.New()
	input.Placeholder = "Search plans..."
	input.CharLimit = 64

	s := spinner.New()
	s.Spinner = spinner.Dot

	return &PlansModel{
		rt:       rt,
		location: navigation.NewLocation(nil),
		input:    input,
		spinner:  s,
		pager:    NewPaginator(plansPageSize),
		toast:    NewToast(toastDuration),
	}
}

// Capturing reports whether key presses go to the search input
func (m *PlansModel) Capturing() bool {
	return m.searching
}

// Init loads the plan catalogue
func (m *PlansModel) Init() tea.Cmd {
	return m.loadPlans()
}

func (m *PlansModel) query() navigation.Query {
	return navigation.ParseQuery(m.location.Current())
}

func (m *PlansModel) setFilter(search, planType string) tea.Cmd {
	q := m.query()
	q.Search, q.Type = search, planType
	m.location.Replace(q.Values())
	return m.loadPlans()
}

func (m *PlansModel) loadPlans() tea.Cmd {
	m.loading = true
	m.err = nil
	gen := m.listGuard.Next()
	q := m.query()
	lib := m.rt.Library
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		all, err := lib.Plans(ctx)
		if err != nil {
			return plansLoadedMsg{gen: gen, err: err}
		}
		var plans []domain.Plan
		for _, p := range all {
			if p.Matches(q.Search, q.Type) {
				plans = append(plans, p)
			}
		}
		return plansLoadedMsg{gen: gen, plans: plans, types: planTypes(all)}
	})
}

func planTypes(plans []domain.Plan) []string {
	var types []string
	for _, p := range plans {
		if p.Type != "" && !slices.Contains(types, p.Type) {
			types = append(types, p.Type)
		}
	}
	slices.Sort(types)
	return types
}

// sortedPlans puts favorites first and keeps catalogue order otherwise
func (m *PlansModel) sortedPlans(plans []domain.Plan) []domain.Plan {
	out := slices.Clone(plans)
	fav := m.rt.Stores.FavoritePlans
	slices.SortStableFunc(out, func(a, b domain.Plan) int {
		fa, fb := fav.Has(a.ID), fav.Has(b.ID)
		switch {
		case fa && !fb:
			return -1
		case fb && !fa:
			return 1
		}
		return 0
	})
	return out
}

func (m *PlansModel) openPlan(p domain.Plan) tea.Cmd {
	m.detail = true
	m.plan = p
	m.content = nil
	m.dayLoading = true
	m.dayErr = nil
	m.readingIdx = 0

	progress := m.rt.Plans.Progress(p.ID)
	m.day = firstOpenDay(progress, p.Days)

	gen := m.dayGuard.Next()
	lib := m.rt.Library
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		c, err := lib.PlanContent(ctx, p.ID)
		return planContentLoadedMsg{gen: gen, plan: p, content: c, err: err}
	})
}

// firstOpenDay returns the first day not yet complete
func firstOpenDay(p domain.PlanProgress, days int) int {
	for d := 1; d <= days; d++ {
		if !p.IsDayComplete(d) {
			return d
		}
	}
	return max(1, days)
}

// currentDay returns the loaded content of the shown day, nil when the
// content is not loaded
func (m *PlansModel) currentDay() *domain.PlanDay {
	day, _ := m.content.Day(m.day)
	return day
}

// Update handles messages for the plans view
func (m *PlansModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.toast.Update(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		m.pager.SetPageSize(max(plansPageSize, msg.Height-12))
		return m, nil

	case spinner.TickMsg:
		if m.loading || m.dayLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case plansLoadedMsg:
		if !m.listGuard.Current(msg.gen) {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		m.plans = m.sortedPlans(msg.plans)
		if msg.types != nil {
			m.types = msg.types
		}
		m.pager.SetTotal(len(m.plans))
		return m, nil

	case planContentLoadedMsg:
		if !m.dayGuard.Current(msg.gen) {
			return m, nil
		}
		m.dayLoading = false
		m.dayErr = msg.err
		m.content = msg.content
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()
		if m.searching {
			return m, m.updateSearch(msg)
		}
		if m.detail {
			return m, m.updateDetail(msg)
		}
		return m, m.updateList(msg)
	}

	return m, nil
}

func (m *PlansModel) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.searching = false
		m.input.Blur()
		if msg.Type == tea.KeyEsc {
			m.input.SetValue("")
			return m.setFilter("", m.query().Type)
		}
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return tea.Batch(cmd, m.setFilter(m.input.Value(), m.query().Type))
}

func (m *PlansModel) updateList(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, PlansKeys.Up):
		m.pager.CursorUp()
	case key.Matches(msg, PlansKeys.Down):
		m.pager.CursorDown()
	case key.Matches(msg, PlansKeys.NextPage):
		m.pager.NextPage()
	case key.Matches(msg, PlansKeys.PrevPage):
		m.pager.PrevPage()

	case key.Matches(msg, PlansKeys.Search):
		m.searching = true
		m.input.SetValue(m.query().Search)
		return tea.Batch(m.input.Focus(), textinput.Blink)

	case key.Matches(msg, PlansKeys.Type):
		return m.setFilter(m.query().Search, nextType(m.types, m.query().Type))

	case key.Matches(msg, PlansKeys.Favorite):
		if p, ok := m.selected(); ok {
			return m.toggleFlag(p, "favorites", true)
		}
	case key.Matches(msg, PlansKeys.Save):
		if p, ok := m.selected(); ok {
			return m.toggleFlag(p, "saved plans", false)
		}

	case key.Matches(msg, PlansKeys.Open):
		if p, ok := m.selected(); ok {
			return m.openPlan(p)
		}

	case key.Matches(msg, ReaderKeys.Retry):
		if m.err != nil {
			return m.loadPlans()
		}
	}
	return nil
}

// nextType cycles "" -> types[0] -> ... -> ""
func nextType(types []string, cur string) string {
	i := slices.Index(types, cur)
	if i+1 < len(types) {
		return types[i+1]
	}
	return ""
}

func (m *PlansModel) toggleFlag(p domain.Plan, name string, favorite bool) tea.Cmd {
	set := m.rt.Stores.SavedPlans
	if favorite {
		set = m.rt.Stores.FavoritePlans
	}
	on, res := set.Toggle(p.ID)
	if !res.OK() {
		m.SetMessage("Not saved: "+res.Err.Error(), true)
	}
	if favorite {
		m.plans = m.sortedPlans(m.plans)
	}
	if on {
		return m.toast.Show(fmt.Sprintf("Added %s to %s", p.Title, name))
	}
	return m.toast.Show(fmt.Sprintf("Removed %s from %s", p.Title, name))
}

func (m *PlansModel) updateDetail(msg tea.KeyMsg) tea.Cmd {
	day := m.currentDay()
	keys := day.Keys()

	switch {
	case key.Matches(msg, PlansKeys.Close):
		m.detail = false
		m.dayGuard.Next()
		m.dayLoading = false
		return nil

	case key.Matches(msg, PlansKeys.Up):
		if m.readingIdx > 0 {
			m.readingIdx--
		}
	case key.Matches(msg, PlansKeys.Down):
		if m.readingIdx < len(keys)-1 {
			m.readingIdx++
		}

	case key.Matches(msg, PlansKeys.NextDay):
		if m.day < m.plan.Days {
			m.day++
			m.readingIdx = 0
		}
	case key.Matches(msg, PlansKeys.PrevDay):
		if m.day > 1 {
			m.day--
			m.readingIdx = 0
		}

	case key.Matches(msg, PlansKeys.ToggleReading):
		if m.readingIdx >= len(keys) {
			return nil
		}
		out, err := m.rt.Plans.ToggleReading(m.plan.ID, day, keys[m.readingIdx])
		return m.showOutcome(out.Changed, out.Message, out.Persist.Err, err)

	case key.Matches(msg, PlansKeys.ToggleDay):
		out, err := m.rt.Plans.ToggleDay(m.plan.ID, day)
		return m.showOutcome(out.Changed, out.Message, out.Persist.Err, err)

	case key.Matches(msg, PlansKeys.Read), key.Matches(msg, PlansKeys.Open):
		if m.readingIdx >= len(keys) {
			return nil
		}
		for _, r := range day.Bible {
			if r.Key() == keys[m.readingIdx] {
				return func() tea.Msg { return OpenReadingMsg{Reading: r} }
			}
		}

	case key.Matches(msg, ReaderKeys.Retry):
		if m.dayErr != nil {
			return m.openPlan(m.plan)
		}
	}
	return nil
}

func (m *PlansModel) showOutcome(changed bool, message string, persistErr, err error) tea.Cmd {
	switch {
	case err != nil:
		m.SetMessage(err.Error(), true)
		return nil
	case !changed:
		return nil
	case persistErr != nil:
		m.SetMessage("Progress not saved: "+persistErr.Error(), true)
	}
	return m.toast.Show(message)
}

func (m *PlansModel) selected() (domain.Plan, bool) {
	i := m.pager.Cursor()
	if i < 0 || i >= len(m.plans) {
		return domain.Plan{}, false
	}
	return m.plans[i], true
}

// View renders the plans view
func (m *PlansModel) View() string {
	if m.detail {
		return m.viewDetail()
	}

	v := NewViewBuilder().Title("Reading Plans")

	q := m.query()
	filter := "all types"
	if q.Type != "" {
		filter = q.Type
	}
	if m.searching {
		v.Line(styles.InputFocused.Render(m.input.View())).BlankLine()
	} else if q.Search != "" {
		v.Line(RenderLabelValue("Search", q.Search))
	}
	v.Muted("Type: " + filter).BlankLine()

	switch {
	case m.loading:
		v.Line(m.spinner.View() + " Loading plans...")
	case m.err != nil:
		v.Line(RenderUnavailable(describeLoadError(m.err), ReaderKeys.Retry))
	case len(m.plans) == 0:
		v.Muted("No plans match")
	default:
		start, end := m.pager.VisibleRange()
		for i := start; i < end; i++ {
			v.Line(m.renderPlan(m.plans[i], i == m.pager.Cursor()))
		}
		if m.pager.TotalPages() > 1 {
			v.BlankLine().Muted(fmt.Sprintf("Page %d/%d", m.pager.CurrentPage(), m.pager.TotalPages()))
		}
	}

	v.BlankLine()
	if m.toast.Visible() {
		v.Line(RenderToast(m.toast))
	}
	v.Message(m.Message, m.MessageErr)
	v.Help(PlansKeys.Search, PlansKeys.Type, PlansKeys.Favorite, PlansKeys.Save, PlansKeys.Open, AppKeys.Help)
	return v.String()
}

func (m *PlansModel) renderPlan(p domain.Plan, selected bool) string {
	mark := "  "
	if m.rt.Stores.FavoritePlans.Has(p.ID) {
		mark = styles.Favorite.Render("★ ")
	} else if m.rt.Stores.SavedPlans.Has(p.ID) {
		mark = styles.MutedText.Render("+ ")
	}
	pct := m.rt.Plans.Progress(p.ID).Percent(p.Days)
	title := padRight(truncate(p.Title, 36), 36)
	if selected {
		title = styles.ListSelected.Render(title)
	}
	return fmt.Sprintf("%s%s %s %s", mark, title, styles.ProgressBar(pct, 12), styles.MutedText.Render(fmt.Sprintf("%3d%% of %d days", pct, p.Days)))
}

func (m *PlansModel) viewDetail() string {
	progress := m.rt.Plans.Progress(m.plan.ID)
	v := NewViewBuilder().Title(m.plan.Title)
	if m.plan.Description != "" {
		v.Subtitle(m.plan.Description)
	}
	v.Line(RenderProgressLine(fmt.Sprintf("%d/%d days", progress.CompletedCount(), m.plan.Days), 16, progress.Percent(m.plan.Days)))
	v.BlankLine()

	header := fmt.Sprintf("Day %d", m.day)
	if progress.IsDayComplete(m.day) {
		header += " " + styles.Success.Render("✓ complete")
	}

	switch {
	case m.dayLoading:
		v.Line(header).Line(m.spinner.View() + " Loading readings...")
	case m.dayErr != nil:
		v.Line(header).Line(RenderUnavailable(describeLoadError(m.dayErr), ReaderKeys.Retry))
	default:
		day := m.currentDay()
		if day != nil && day.Title != "" {
			header += ": " + day.Title
		}
		v.Line(styles.InputLabel.Render(header))
		if !day.Loaded() {
			v.Muted("No readings for this day")
			break
		}
		for i, k := range day.Keys() {
			label := readingLabel(day, k)
			check := "[ ]"
			if progress.IsReadingComplete(m.day, k) {
				check = styles.Success.Render("[x]")
			}
			if i == m.readingIdx {
				label = styles.ListSelected.Render(label)
			}
			v.Line(fmt.Sprintf("  %s %s", check, label))
		}
	}

	v.BlankLine()
	if m.toast.Visible() {
		v.Line(RenderToast(m.toast))
	}
	v.Message(m.Message, m.MessageErr)
	v.Help(PlansKeys.ToggleReading, PlansKeys.ToggleDay, PlansKeys.PrevDay, PlansKeys.NextDay, PlansKeys.Read, PlansKeys.Close)
	return v.String()
}

func readingLabel(day *domain.PlanDay, k string) string {
	for _, r := range day.Bible {
		if r.Key() == k {
			return r.Label()
		}
	}
	for _, r := range day.Egw {
		if r.Key() == k {
			return strings.TrimSpace(r.Label + " " + r.Title)
		}
	}
	return k
}
