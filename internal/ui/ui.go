package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/myflix/myflix/internal/models"
	"github.com/myflix/myflix/internal/repositories"
	"github.com/myflix/myflix/internal/services"
	"github.com/myflix/myflix/internal/session"
	"github.com/myflix/myflix/internal/shared"
	"github.com/myflix/myflix/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LoginView ViewState = iota
	SignupView
	BrowseView
	SearchView
	DetailView
	PlayerView
)

type rowsLoadedMsg struct {
	result *tasks.BrowseResult
	err    error
}

type progressUpdateMsg tasks.ProgressUpdate

type searchSettledMsg struct {
	outcome *tasks.SearchOutcome
}

type detailFetchedMsg struct {
	movie  models.Movie
	detail *models.MovieDetail
	err    error
}

type sessionChangedMsg struct {
	signup bool
	err    error
}

type browserOpenedMsg struct {
	err error
}

type listUpdatedMsg struct {
	title string
	err   error
}

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	engine       *tasks.DashboardEngine
	sessions     *session.Manager
	watchlist    *repositories.WatchlistRepository
	width        int
	height       int
	rows         []tasks.CategoryRow
	hero         *models.Movie
	activeRow    int
	rowList      list.Model
	searchInput  textinput.Model
	searchList   list.Model
	outcome      *tasks.SearchOutcome
	selected     models.Movie
	detail       *models.MovieDetail
	progressChan chan tasks.ProgressUpdate
	progress     tasks.ProgressUpdate
	browseResult *tasks.BrowseResult
	browseErr    error
	form         authForm
	banner       string
	err          error
	help         help.Model
	keys         keyMap
	openURL      func(string) error
}

// NewModel creates a new TUI model with the provided dependencies.
//
// The watchlist repository may be nil when no database was configured; the
// add-to-list intent still acknowledges, it just doesn't persist.
func NewModel(ctx context.Context, engine *tasks.DashboardEngine, sessions *session.Manager, watchlist *repositories.WatchlistRepository) *Model {
	m := &Model{
		ctx:       ctx,
		engine:    engine,
		sessions:  sessions,
		watchlist: watchlist,
		form:      newAuthForm(),
		help:      help.New(),
		keys:      newKeyMap(),
		openURL:   shared.OpenBrowser,
	}

	m.searchInput = textinput.New()
	m.searchInput.Placeholder = "Search movies..."
	m.searchInput.CharLimit = 128

	if sessions.Authenticated() {
		m.view = BrowseView
	} else {
		m.view = LoginView
		m.form.focusFirst(false)
	}

	return m
}

// Init starts the dashboard load when a session already exists.
func (m *Model) Init() tea.Cmd {
	if m.view == BrowseView {
		return m.startBrowse()
	}
	return textinput.Blink
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.rowList.Width() == 0 {
			m.rowList.SetSize(msg.Width-4, msg.Height-10)
		}
		if m.searchList.Width() == 0 {
			m.searchList.SetSize(msg.Width-4, msg.Height-10)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case LoginView:
			return m.handleLoginKeys(msg)
		case SignupView:
			return m.handleSignupKeys(msg)
		case BrowseView:
			return m.handleBrowseKeys(msg)
		case SearchView:
			return m.handleSearchKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		case PlayerView:
			return m.handlePlayerKeys(msg)
		}

	case sessionChangedMsg:
		if msg.err != nil {
			m.banner = styles.err.Render(tasks.VisibleError(msg.err))
			return m, nil
		}
		if msg.signup {
			m.banner = styles.ok.Render("Account created, please log in")
			m.view = LoginView
			m.form.focusFirst(false)
			return m, nil
		}
		m.banner = ""
		m.form.reset()
		m.view = BrowseView
		return m, m.startBrowse()

	case rowsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.progressChan = nil
		m.rows = msg.result.Rows
		m.hero = msg.result.Hero
		m.setActiveRow(0)
		return m, nil

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case searchSettledMsg:
		// Settled searches that lost the race to a newer query are dropped.
		if !m.engine.Latest(msg.outcome) {
			return m, nil
		}
		m.outcome = msg.outcome
		if !msg.outcome.Cleared && msg.outcome.Err == nil {
			m.searchList = list.New(movieItems(msg.outcome.Movies), list.NewDefaultDelegate(), 0, 0)
			m.searchList.Title = fmt.Sprintf("Results for '%s'", msg.outcome.Query)
			m.searchList.SetShowHelp(false)
			m.searchList.SetSize(m.width-4, m.height-10)
		}
		return m, nil

	case detailFetchedMsg:
		if msg.err != nil {
			m.banner = styles.err.Render(tasks.VisibleError(msg.err))
			return m, nil
		}
		m.selected = msg.movie
		m.detail = msg.detail
		m.view = DetailView
		return m, nil

	case browserOpenedMsg:
		if msg.err != nil {
			m.banner = styles.err.Render(fmt.Sprintf("Failed to open browser: %v", msg.err))
		}
		return m, nil

	case listUpdatedMsg:
		if msg.err != nil {
			m.banner = styles.err.Render(fmt.Sprintf("Failed to add to list: %v", msg.err))
			return m, nil
		}
		m.banner = styles.ok.Render(fmt.Sprintf("✓ Added %s to My List", msg.title))
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case LoginView:
		return m.renderLogin()
	case SignupView:
		return m.renderSignup()
	case BrowseView:
		return m.renderBrowse()
	case SearchView:
		return m.renderSearch()
	case DetailView:
		return m.renderDetail()
	case PlayerView:
		return m.renderPlayer()
	default:
		return ""
	}
}

func (m *Model) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab", "shift+tab":
		m.form.advance(false)
		return m, nil
	case "ctrl+s":
		m.banner = ""
		m.view = SignupView
		m.form.focusFirst(true)
		return m, nil
	case "enter":
		user := m.form.user()
		return m, m.login(user.Email, user.Password)
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}

func (m *Model) handleSignupKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.banner = ""
		m.view = LoginView
		m.form.focusFirst(false)
		return m, nil
	case "tab", "shift+tab":
		m.form.advance(true)
		return m, nil
	case "enter":
		return m, m.signup(m.form.user())
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}

func (m *Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.search):
		m.view = SearchView
		m.searchInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.next):
		if len(m.rows) > 0 {
			m.setActiveRow((m.activeRow + 1) % len(m.rows))
		}
		return m, nil
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.rowList.SelectedItem().(movieItem); ok {
			return m, m.fetchDetail(item.movie)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.rowList, cmd = m.rowList.Update(msg)
	return m, cmd
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.searchInput.Focused() {
			m.searchInput.Blur()
			return m, nil
		}
		m.view = BrowseView
		m.outcome = nil
		m.searchInput.SetValue("")
		return m, nil
	case "/":
		if !m.searchInput.Focused() {
			m.searchInput.Focus()
			return m, textinput.Blink
		}
	case "enter":
		if m.searchInput.Focused() {
			m.searchInput.Blur()
			return m, m.runSearch(m.searchInput.Value())
		}
		if item, ok := m.searchList.SelectedItem().(movieItem); ok {
			return m, m.fetchDetail(item.movie)
		}
		return m, nil
	}

	if m.searchInput.Focused() {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.searchList, cmd = m.searchList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.detail = nil
		if m.outcome != nil {
			m.view = SearchView
		} else {
			m.view = BrowseView
		}
		return m, nil
	case key.Matches(msg, m.keys.play):
		m.view = PlayerView
		return m, nil
	case key.Matches(msg, m.keys.add):
		return m, m.addToList(m.selected)
	}
	return m, nil
}

func (m *Model) handlePlayerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = DetailView
		return m, nil
	case key.Matches(msg, m.keys.open):
		url := services.TrailerURL(m.selected.Title)
		return m, func() tea.Msg {
			return browserOpenedMsg{err: m.openURL(url)}
		}
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case BrowseView:
		m.rowList, cmd = m.rowList.Update(msg)
	case SearchView:
		m.searchList, cmd = m.searchList.Update(msg)
	}
	return m, cmd
}

// setActiveRow points the browse list at the given category row.
func (m *Model) setActiveRow(i int) {
	if len(m.rows) == 0 {
		return
	}
	m.activeRow = i
	row := m.rows[i]
	m.rowList = list.New(movieItems(row.Movies), list.NewDefaultDelegate(), 0, 0)
	m.rowList.Title = row.Category.String()
	m.rowList.SetShowHelp(false)
	m.rowList.SetSize(m.width-4, m.height-10)
}

func (m *Model) login(email, password string) tea.Cmd {
	return func() tea.Msg {
		return sessionChangedMsg{err: m.sessions.Login(email, password)}
	}
}

func (m *Model) signup(user models.User) tea.Cmd {
	return func() tea.Msg {
		return sessionChangedMsg{signup: true, err: m.sessions.Signup(user)}
	}
}

func (m *Model) startBrowse() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)

	go func() {
		result, err := m.engine.Initialize(m.ctx, m.progressChan)
		m.browseResult = result
		m.browseErr = err
		close(m.progressChan)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		if m.progressChan == nil {
			return rowsLoadedMsg{result: m.browseResult, err: m.browseErr}
		}

		update, ok := <-m.progressChan
		if !ok {
			return rowsLoadedMsg{result: m.browseResult, err: m.browseErr}
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) runSearch(query string) tea.Cmd {
	return func() tea.Msg {
		return searchSettledMsg{outcome: m.engine.RunSearch(m.ctx, nil, query)}
	}
}

func (m *Model) addToList(movie models.Movie) tea.Cmd {
	return func() tea.Msg {
		if m.watchlist == nil {
			return listUpdatedMsg{title: movie.Title}
		}
		return listUpdatedMsg{title: movie.Title, err: m.watchlist.Create(models.NewWatchlistItem(0, movie))}
	}
}

func (m *Model) fetchDetail(movie models.Movie) tea.Cmd {
	return func() tea.Msg {
		detail, err := m.engine.FetchDetail(m.ctx, nil, movie)
		return detailFetchedMsg{movie: movie, detail: detail, err: err}
	}
}

func (m *Model) renderLogin() string {
	title := styles.title.Render("Sign in to MyFlix")
	form := fmt.Sprintf("%s\n%s",
		m.form.inputs[fieldEmail].View(),
		m.form.inputs[fieldPassword].View(),
	)
	helpLine := styles.help.Render("enter sign in • tab next field • ctrl+s sign up • ctrl+c quit")

	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s", title, m.banner, form, helpLine)
}

func (m *Model) renderSignup() string {
	title := styles.title.Render("Create your MyFlix account")
	form := fmt.Sprintf("%s\n%s\n%s",
		m.form.inputs[fieldName].View(),
		m.form.inputs[fieldEmail].View(),
		m.form.inputs[fieldPassword].View(),
	)
	helpLine := styles.help.Render("enter create account • tab next field • esc back • ctrl+c quit")

	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s", title, m.banner, form, helpLine)
}

func (m *Model) renderBrowse() string {
	if len(m.rows) == 0 {
		return m.renderLoading()
	}

	var hero string
	if m.hero != nil {
		hero = styles.title.Render(fmt.Sprintf("Featured: %s (%s)", m.hero.Title, m.hero.Year))
	}

	var rowErr string
	if err := m.rows[m.activeRow].Err; err != nil {
		rowErr = styles.warn.Render(tasks.VisibleError(err))
	}

	tabs := m.renderRowTabs()
	helpKeys := []key.Binding{m.keys.enter, m.keys.next, m.keys.search, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	sections := []string{hero, tabs, m.rowList.View()}
	if rowErr != "" {
		sections = append(sections, rowErr)
	}
	sections = append(sections, helpView)

	return strings.Join(sections, "\n")
}

func (m *Model) renderRowTabs() string {
	names := make([]string, len(m.rows))
	for i, row := range m.rows {
		name := row.Category.String()
		if i == m.activeRow {
			name = styles.ok.Render(name)
		}
		names[i] = name
	}
	return strings.Join(names, " │ ")
}

func (m *Model) renderLoading() string {
	title := styles.title.Render("Loading dashboard")

	var phase string
	switch m.progress.Phase {
	case tasks.FetchRow:
		phase = fmt.Sprintf("Fetching rows (%d/%d)", m.progress.Step, m.progress.Total)
	case tasks.PickHero:
		phase = "Picking a featured title..."
	default:
		phase = "Starting up..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}

func (m *Model) renderSearch() string {
	title := styles.title.Render("Search")

	var body string
	switch {
	case m.outcome == nil || m.outcome.Cleared:
		body = styles.help.Render("Type a title and press enter")
	case m.outcome.Err != nil:
		body = styles.err.Render(tasks.VisibleError(m.outcome.Err))
	default:
		body = fmt.Sprintf("%s\n%s", styles.help.Render(fmt.Sprintf("%s total results", m.outcome.Total)), m.searchList.View())
	}

	helpLine := styles.help.Render("enter search/select • esc back • ctrl+c quit")

	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s", title, m.searchInput.View(), body, helpLine)
}

func (m *Model) renderDetail() string {
	if m.detail == nil {
		return styles.warn.Render("No detail loaded\n\nPress esc to go back")
	}

	d := m.detail
	title := styles.title.Render(fmt.Sprintf("%s (%s)", d.Title, d.Year))
	meta := fmt.Sprintf("Rated: %s  Runtime: %s  IMDb: %s",
		models.OrFallback(d.Rated, models.FallbackField),
		models.OrFallback(d.Runtime, models.FallbackField),
		models.OrFallback(d.Rating, models.FallbackField),
	)
	credits := fmt.Sprintf("Genre: %s\nDirector: %s\nCast: %s",
		models.OrFallback(d.Genre, models.FallbackField),
		models.OrFallback(d.Director, models.FallbackField),
		models.OrFallback(d.Actors, models.FallbackField),
	)
	plot := models.OrFallback(d.Plot, models.FallbackPlot)

	helpKeys := []key.Binding{m.keys.play, m.keys.add, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s\n\n%s\n%s", title, meta, credits, plot, m.banner, helpView)
}

func (m *Model) renderPlayer() string {
	title := styles.title.Render(fmt.Sprintf("Now Playing: %s Trailer", m.selected.Title))
	url := services.TrailerEmbedURL(m.selected.Title)
	info := fmt.Sprintf("Trailer search stream:\n%s", styles.help.Render(url))

	helpKeys := []key.Binding{m.keys.open, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s\n%s", title, info, m.banner, helpView)
}
