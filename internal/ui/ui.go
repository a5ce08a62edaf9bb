package ui

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/desertthunder/pseudology/internal/archive"
	"github.com/desertthunder/pseudology/internal/models"
	"github.com/desertthunder/pseudology/internal/navigation"
	"github.com/desertthunder/pseudology/internal/services"
	"github.com/desertthunder/pseudology/internal/shared"
)

// chrome is the number of rows taken by the tab bar, status line and help.
const chrome = 6

// Options configures a [Model].
type Options struct {
	Provider  services.Provider
	Logger    *log.Logger
	SessionID string
	// Seed orders the pick-ups; 0 derives it from SessionID.
	Seed uint64
	// Opener opens an image URL; defaults to [shared.OpenURL].
	Opener func(url string) error
	// Start is the top-level view shown first.
	Start navigation.View
}

// Model represents the TUI application state.
type Model struct {
	ctx      context.Context
	provider services.Provider
	logger   *log.Logger
	seed     uint64
	opener   func(string) error
	session  *navigation.Session
	width    int
	height   int
	loading  bool
	spinner  spinner.Model
	home     list.Model
	results  list.Model
	library  list.Model
	best     list.Model
	related  list.Model
	input    textinput.Model
	detail   viewport.Model
	about    viewport.Model
	help     help.Model
	keys     keyMap
	status   string
}

// NewModel creates a new TUI model over an empty archive; [Model.Init] starts the load.
func NewModel(ctx context.Context, opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.SessionID == "" {
		opts.SessionID = shared.GenerateID()
	}
	if opts.Seed == 0 {
		opts.Seed = shared.SessionSeed(opts.SessionID)
	}
	if opts.Opener == nil {
		opts.Opener = shared.OpenURL
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.ok

	input := textinput.New()
	input.Placeholder = "artist, title or text"
	input.Prompt = "search › "
	input.CharLimit = 120

	session := navigation.NewSession(opts.SessionID, nil)
	if opts.Start != navigation.Home {
		session.NavigateTopLevel(opts.Start)
	}

	m := &Model{
		ctx:      ctx,
		provider: opts.Provider,
		logger:   opts.Logger,
		seed:     opts.Seed,
		opener:   opts.Opener,
		session:  session,
		loading:  true,
		spinner:  sp,
		home:     newList("Home"),
		results:  newList("Results"),
		library:  newList("Library"),
		best:     newList("Best"),
		related:  newList("Related"),
		input:    input,
		detail:   viewport.New(0, 0),
		about:    viewport.New(0, 0),
		help:     help.New(),
		keys:     newKeyMap(),
	}
	m.syncKeys()
	return m
}

func newList(title string) list.Model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return l
}

// Session exposes the browsing session.
func (m *Model) Session() *navigation.Session { return m.session }

// Init starts the spinner and the archive load.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		return m.handleMsg(msg)

	case tea.KeyMsg:
		if m.input.Focused() {
			return m.handleInputKeys(msg)
		}
		return m.handleKeys(msg)
	}

	return m, nil
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgArchiveLoaded:
		data := msg.data.(archiveLoad)
		m.session.Load(data.archive)
		m.loading = false
		m.status = ""
		if len(data.failed) > 0 {
			m.status = styles.warn.Render("could not load: " + strings.Join(data.failed, ", "))
		}
		m.refresh()
	case MsgImageOpened:
		data := msg.data.(imageOpen)
		if data.err != nil {
			m.logger.Warn("failed to open cover", "url", data.url, "error", data.err)
			m.status = styles.err.Render(fmt.Sprintf("could not open cover: %v", data.err))
		} else {
			m.status = styles.ok.Render("opened cover in browser")
		}
	}
	return m, nil
}

func (m *Model) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "enter", "down":
		m.input.Blur()
		return m, nil
	case "tab":
		m.apply(m.session.SetSearch(m.input.Value(), m.session.State().Mode().Next()))
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.apply(m.session.SetSearch(m.input.Value(), m.session.State().Mode()))
	}
	return m, cmd
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case m.loading:
		return m, nil
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.reload):
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.load())
	case key.Matches(msg, m.keys.home):
		m.apply(m.session.NavigateTopLevel(navigation.Home))
		return m, nil
	case key.Matches(msg, m.keys.search):
		m.apply(m.session.NavigateTopLevel(navigation.Search))
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.library):
		m.apply(m.session.NavigateTopLevel(navigation.Library))
		return m, nil
	case key.Matches(msg, m.keys.best):
		m.apply(m.session.NavigateTopLevel(navigation.Best))
		return m, nil
	case key.Matches(msg, m.keys.about):
		m.apply(m.session.NavigateTopLevel(navigation.About))
		return m, nil
	case key.Matches(msg, m.keys.back):
		m.apply(m.session.GoBack())
		return m, nil
	}

	switch view := m.session.State().View(); view {
	case navigation.Detail:
		return m.handleDetailKeys(msg)
	case navigation.About:
		var cmd tea.Cmd
		m.about, cmd = m.about.Update(msg)
		return m, cmd
	default:
		return m.handleListKeys(view, msg)
	}
}

func (m *Model) handleListKeys(view navigation.View, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	l := m.listFor(view)

	switch {
	case key.Matches(msg, m.keys.enter):
		return m, m.choose(l)
	case view == navigation.Home && key.Matches(msg, m.keys.more):
		m.apply(m.session.RevealMore(view))
		return m, nil
	case view == navigation.Search && key.Matches(msg, m.keys.mode):
		m.apply(m.session.SetSearch(m.input.Value(), m.session.State().Mode().Next()))
		return m, nil
	case view == navigation.Library && key.Matches(msg, m.keys.nextInit):
		m.jumpInitial(1)
		return m, nil
	case view == navigation.Library && key.Matches(msg, m.keys.prevInit):
		m.jumpInitial(-1)
		return m, nil
	case view == navigation.Best && key.Matches(msg, m.keys.nextYear):
		m.stepYear(1)
		return m, nil
	case view == navigation.Best && key.Matches(msg, m.keys.prevYear):
		m.stepYear(-1)
		return m, nil
	}

	var cmd tea.Cmd
	*l, cmd = l.Update(msg)
	m.revealAtEnd(view)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.enter):
		return m, m.choose(&m.related)
	case key.Matches(msg, m.keys.more):
		m.apply(m.session.RevealMore(navigation.Detail))
		return m, nil
	case key.Matches(msg, m.keys.open):
		return m, m.openCover()
	case key.Matches(msg, m.keys.scrollUp), key.Matches(msg, m.keys.scrollDn):
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.related, cmd = m.related.Update(msg)
	m.revealAtEnd(navigation.Detail)
	return m, cmd
}

// choose acts on the highlighted row of l.
func (m *Model) choose(l *list.Model) tea.Cmd {
	switch item := l.SelectedItem().(type) {
	case reviewItem:
		m.apply(m.session.SelectRecord(item.review, l.Index()))
	case rankItem:
		m.apply(m.session.SelectRecord(item.item.Review, l.Index()))
	case artistItem:
		index := l.Index()
		m.apply(m.session.ToggleArtistGroup(item.group.Name))
		m.library.Select(index)
	}
	return nil
}

// apply refreshes the lists after a command and carries out its effect.
func (m *Model) apply(effect navigation.Effect) {
	m.refresh()

	switch effect.Kind {
	case navigation.EffectScrollTop:
		m.detail.GotoTop()
		m.related.Select(0)
	case navigation.EffectRestoreScroll:
		if l := m.listFor(m.session.State().View()); l != nil {
			l.Select(clamp(effect.Offset, len(l.Items())))
		}
	}

	m.logger.Debug("navigated", "view", m.session.State().View(), "depth", m.session.State().HistoryDepth())
}

// refresh rebuilds every view from the session.
func (m *Model) refresh() {
	s := m.session
	state := s.State()

	m.home.SetItems(homeItems(s.Recent(), s.Pickups()))
	m.home.Title = fmt.Sprintf("New reviews & pick-ups (%d of %d)", len(m.home.Items()), s.Archive().Len())

	m.results.SetItems(reviewItems(s.SearchResults()))
	m.results.Title = fmt.Sprintf("%d results", len(m.results.Items()))

	sections := s.Sections()
	m.library.SetItems(libraryItems(sections, state.ExpandedArtist()))
	m.library.Title = "Library  " + strings.Join(archive.Initials(sections), " ")

	ranking := s.Ranking()
	m.best.SetItems(rankItems(ranking))
	m.best.Title = "Best of " + ranking.Year

	m.related.SetItems(reviewItems(s.Related()))
	m.related.Title = "Related"
	if selected := state.Selected(); selected != nil {
		m.related.Title = "More from " + selected.Artist
		m.detail.SetContent(renderDetail(*selected, m.width))
	}

	m.about.SetContent(renderAbout(s.About(), m.width))
	m.syncKeys()
}

// syncKeys enables the bindings that do something in the current view, which also hides the rest from help.
func (m *Model) syncKeys() {
	state := m.session.State()
	view := state.View()
	m.keys.back.SetEnabled(state.CanGoBack())
	m.keys.more.SetEnabled(view == navigation.Home || view == navigation.Detail)
}

// revealAtEnd discloses the next page once the cursor reaches the last revealed row.
func (m *Model) revealAtEnd(view navigation.View) {
	l := m.listFor(view)
	if l == nil || len(l.Items()) == 0 || l.Index() < len(l.Items())-1 {
		return
	}

	switch view {
	case navigation.Home:
		if m.session.HasMorePickups() {
			m.apply(m.session.RevealMore(view))
		}
	case navigation.Detail:
		if m.session.HasMoreRelated() {
			m.apply(m.session.RevealMore(view))
		}
	}
}

func (m *Model) jumpInitial(step int) {
	items := m.library.Items()
	if len(items) == 0 {
		return
	}

	current := initialOf(items[m.library.Index()])
	for i := m.library.Index() + step; i >= 0 && i < len(items); i += step {
		item, ok := items[i].(artistItem)
		if !ok || item.initial == current {
			continue
		}
		if step < 0 {
			for i > 0 {
				prev, ok := items[i-1].(artistItem)
				if ok && prev.initial != item.initial {
					break
				}
				i--
			}
		}
		m.library.Select(i)
		return
	}
}

func initialOf(item list.Item) string {
	switch it := item.(type) {
	case artistItem:
		return it.initial
	case reviewItem:
		return archive.SectionKey(it.review.Artist)
	}
	return ""
}

func (m *Model) stepYear(step int) {
	years := m.session.Years()
	i := slices.Index(years, m.session.RankYear())
	if i < 0 {
		return
	}

	next := i + step
	if next < 0 || next >= len(years) {
		return
	}
	m.apply(m.session.SelectRankYear(years[next]))
	m.best.Select(0)
}

func (m *Model) openCover() tea.Cmd {
	selected := m.session.State().Selected()
	if selected == nil || !selected.HasImage() {
		m.status = styles.warn.Render("no cover for this review")
		return nil
	}

	url, opener := selected.Image, m.opener
	return func() tea.Msg {
		return imageOpenedMsg(url, opener(url))
	}
}

func (m *Model) load() tea.Cmd {
	ctx, provider, logger, seed := m.ctx, m.provider, m.logger, m.seed
	return func() tea.Msg {
		if provider == nil {
			return archiveLoadedMsg(navigation.EmptyArchive(), []string{"reviews", "ranks", "about"})
		}
		payload := services.Load(ctx, provider, logger)
		return archiveLoadedMsg(navigation.NewArchive(payload.Reviews, payload.Ranks, payload.About, seed), payload.Failed)
	}
}

func (m *Model) listFor(view navigation.View) *list.Model {
	switch view {
	case navigation.Home:
		return &m.home
	case navigation.Search:
		return &m.results
	case navigation.Library:
		return &m.library
	case navigation.Best:
		return &m.best
	case navigation.Detail:
		return &m.related
	}
	return nil
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	body := max(height-chrome, 4)

	for _, l := range []*list.Model{&m.home, &m.library, &m.best} {
		l.SetSize(width, body)
	}
	m.results.SetSize(width, max(body-2, 2))
	m.related.SetSize(width, body/2)
	m.detail.Width, m.detail.Height = width, body-body/2
	m.about.Width, m.about.Height = width, body
	m.input.Width = max(width-20, 10)
	m.help.Width = width

	m.refresh()
}

// View renders the UI based on the current view.
func (m *Model) View() string {
	if m.loading {
		return fmt.Sprintf("\n  %s Loading archive...\n", m.spinner.View())
	}

	var body string
	switch m.session.State().View() {
	case navigation.Home:
		body = m.home.View()
	case navigation.Search:
		body = m.renderSearch()
	case navigation.Library:
		body = m.library.View()
	case navigation.Best:
		body = m.renderBest()
	case navigation.About:
		body = m.about.View()
	case navigation.Detail:
		body = lipgloss.JoinVertical(lipgloss.Left, m.detail.View(), m.related.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.renderTabs(), body, m.status, m.help.View(m.keys))
}

func (m *Model) renderTabs() string {
	title := cases.Title(language.Und)
	current := m.session.State().View()

	tabs := make([]string, 0, len(navigation.TopLevel))
	for _, v := range navigation.TopLevel {
		label := title.String(v.String())
		if v == current {
			tabs = append(tabs, styles.activeTab.Render(label))
		} else {
			tabs = append(tabs, styles.tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n"
}

func (m *Model) renderSearch() string {
	mode := styles.help.Render(fmt.Sprintf("mode: %s (tab to change)", m.session.State().Mode()))
	return lipgloss.JoinVertical(lipgloss.Left, m.input.View(), mode, m.results.View())
}

func (m *Model) renderBest() string {
	years := m.session.Years()
	if len(years) == 0 {
		return styles.help.Render("No rankings yet.")
	}

	current := m.session.RankYear()
	labels := make([]string, len(years))
	for i, y := range years {
		if y == current {
			labels[i] = styles.activeTab.Render(y)
		} else {
			labels[i] = styles.tab.Render(y)
		}
	}

	parts := []string{lipgloss.JoinHorizontal(lipgloss.Top, labels...)}
	if overview := m.session.Ranking().Overview; overview != "" {
		parts = append(parts, lipgloss.NewStyle().Width(cardWidth(m.width)).Render(overview))
	}
	parts = append(parts, m.best.View())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderAbout(a models.About, width int) string {
	text := lipgloss.NewStyle().Width(cardWidth(width))
	return fmt.Sprintf("%s\n%s\n\n%s\n%s\n",
		styles.title.Render("About this site"), text.Render(a.SiteDescription),
		styles.title.Render("Profile"), text.Render(a.ProfileDescription))
}

func clamp(i, n int) int {
	if n == 0 {
		return 0
	}
	return min(max(i, 0), n-1)
}
