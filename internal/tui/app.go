package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/tablemap/internal/geo"
	"github.com/mmcdole/tablemap/internal/grouping"
	"github.com/mmcdole/tablemap/internal/loader"
	"github.com/mmcdole/tablemap/internal/search"
	"github.com/mmcdole/tablemap/internal/tui/components"
	"github.com/mmcdole/tablemap/internal/tui/styles"
)

// Layout constants
const (
	HeaderHeight = 1
	BannerHeight = 1
)

type pickerKind int

const (
	pickerNone pickerKind = iota
	pickerContinent
	pickerCountry
)

// Options holds the collaborators the model drives
type Options struct {
	Catalog   *geo.Catalog
	Loader    *loader.Loader
	Results   chan loader.Result // fed by a ChannelObserver registered on Loader
	LiveScope string
	Country   string // initial country filter
}

// Model is the main Bubble Tea model for the application
type Model struct {
	ctx       context.Context
	catalog   *geo.Catalog
	loader    *loader.Loader
	results   chan loader.Result
	liveScope string

	Keys KeyMap

	// UI components
	help        help.Model
	spinner     spinner.Model
	viewport    viewport.Model
	filterInput textinput.Model
	picker      components.Picker
	pickerKind  pickerKind
	banner      components.Banner

	// State
	Filter    grouping.Filter
	Result    loader.Result
	filtering bool

	// Dimensions
	width  int
	height int
	ready  bool

	now func() time.Time
}

// NewModel creates a new application model
func NewModel(ctx context.Context, opts Options) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	ti := textinput.New()
	ti.Prompt = styles.FilterPromptStyle.Render("/ ")
	ti.Placeholder = "filter restaurants..."
	ti.CharLimit = 64
	ti.PlaceholderStyle = styles.DimStyle

	h := help.New()
	h.Styles.ShortKey = styles.HelpKeyStyle
	h.Styles.ShortDesc = styles.HelpDescStyle
	h.Styles.FullKey = styles.HelpKeyStyle
	h.Styles.FullDesc = styles.HelpDescStyle

	catalog := opts.Catalog
	if catalog == nil {
		catalog = geo.Default()
	}

	return Model{
		ctx:         ctx,
		catalog:     catalog,
		loader:      opts.Loader,
		results:     opts.Results,
		liveScope:   opts.LiveScope,
		Keys:        DefaultKeyMap(),
		help:        h,
		spinner:     sp,
		viewport:    viewport.New(0, 0),
		filterInput: ti,
		picker:      components.NewPicker(),
		banner:      components.NewBanner(),
		Filter:      grouping.FilterFor(catalog, opts.Country),
		Result:      loader.Result{Loading: true},
		now:         time.Now,
	}
}

// scope is the loader scope for the current filter
func (m Model) scope() string {
	if m.Filter.Country != "" {
		return m.Filter.Country
	}
	return m.liveScope
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		LoadCmd(m.ctx, m.loader, m.scope()),
		WaitForResultCmd(m.results),
		m.spinner.Tick,
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.picker.SetSize(msg.Width, msg.Height)
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case ResultMsg:
		cmd := m.applyResult(msg.Result)
		return m, tea.Batch(cmd, WaitForResultCmd(m.results))

	case LoadStartedMsg:
		return m, nil

	case HideBannerMsg:
		m.banner.Hide(msg.Seq)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// applyResult takes a loader state change. Results for a scope the view has
// already left are dropped.
func (m *Model) applyResult(r loader.Result) tea.Cmd {
	if r.Scope != m.scope() {
		return nil
	}
	m.Result = r

	var cmd tea.Cmd
	if seq, hide := m.banner.SetOnline(!r.Offline); hide {
		cmd = HideBannerCmd(seq, components.BannerHideDelay)
	}

	m.refreshContent()
	return cmd
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.picker.IsVisible() {
		var chosen *components.PickerOption
		m.picker, chosen = m.picker.Update(msg)
		if chosen == nil {
			return m, nil
		}
		cmd := m.choose(*chosen)
		return m, cmd
	}

	if m.filtering {
		switch msg.String() {
		case "enter":
			m.filtering = false
			m.filterInput.Blur()
			m.updateLayout()
			return m, nil
		case "esc":
			m.filtering = false
			m.filterInput.Blur()
			m.filterInput.SetValue("")
			m.updateLayout()
			return m, nil
		}
		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		m.refreshContent()
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.Keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.updateLayout()
		return m, nil

	case key.Matches(msg, m.Keys.Continent):
		m.pickerKind = pickerContinent
		m.picker.Show("Continent", m.continentOptions(), m.Filter.Continent)
		return m, nil

	case key.Matches(msg, m.Keys.Country):
		m.pickerKind = pickerCountry
		m.picker.Show("Country", m.countryOptions(), m.Filter.Country)
		return m, nil

	case key.Matches(msg, m.Keys.Filter):
		m.filtering = true
		cmd := m.filterInput.Focus()
		m.updateLayout()
		return m, cmd

	case key.Matches(msg, m.Keys.Reload):
		return m, LoadCmd(m.ctx, m.loader, m.scope())

	case key.Matches(msg, m.Keys.Escape):
		if m.filterInput.Value() != "" {
			m.filterInput.SetValue("")
			m.refreshContent()
		}
		return m, nil

	case key.Matches(msg, m.Keys.Home):
		m.viewport.GotoTop()
		return m, nil

	case key.Matches(msg, m.Keys.End):
		m.viewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// choose applies a picker selection. Changing the country restarts the
// loader for the new scope.
func (m *Model) choose(opt components.PickerOption) tea.Cmd {
	prev := m.scope()

	switch m.pickerKind {
	case pickerContinent:
		m.Filter = m.Filter.WithContinent(opt.ID)
	case pickerCountry:
		m.Filter = m.Filter.WithCountry(m.catalog, opt.ID)
	}
	m.pickerKind = pickerNone
	m.viewport.GotoTop()
	m.refreshContent()

	if scope := m.scope(); scope != prev {
		return LoadCmd(m.ctx, m.loader, scope)
	}
	return nil
}

func (m Model) continentOptions() []components.PickerOption {
	continents := grouping.ContinentOptions(m.catalog)
	opts := make([]components.PickerOption, len(continents))
	for i, c := range continents {
		opts[i] = components.PickerOption{ID: c, Label: c}
	}
	return opts
}

func (m Model) countryOptions() []components.PickerOption {
	countries := grouping.CountryOptions(m.catalog, m.Filter)
	opts := make([]components.PickerOption, len(countries))
	for i, c := range countries {
		opts[i] = components.PickerOption{ID: c.ID, Label: c.Label}
	}
	return opts
}

// Query returns the active in-view name filter
func (m Model) Query() string {
	return strings.TrimSpace(m.filterInput.Value())
}

// refreshContent rebuilds the section list from the current result and filters
func (m *Model) refreshContent() {
	query := m.Query()
	matches := search.Filter(query, m.Result.Items)
	sections := grouping.Sections(m.catalog, m.liveScope, matches, m.Filter)

	m.viewport.SetContent(components.RenderSections(sections, components.SectionsState{
		LiveScope: m.liveScope,
		Loading:   m.Result.Loading,
		Err:       m.Result.Err,
		Query:     query,
		Width:     m.viewport.Width,
	}))
}

func (m *Model) updateLayout() {
	if !m.ready {
		return
	}
	m.help.Width = m.width
	footer := lipgloss.Height(m.renderFooter())
	m.viewport.Width = m.width
	m.viewport.Height = max(1, m.height-HeaderHeight-BannerHeight-footer)
	m.refreshContent()
}

// View renders the application
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	body := m.viewport.View()
	if m.picker.IsVisible() {
		body = lipgloss.Place(m.width, m.viewport.Height, lipgloss.Center, lipgloss.Center, m.picker.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.banner.View(m.width),
		body,
		m.renderFooter(),
	)
}

func (m Model) renderHeader() string {
	continent := m.Filter.Continent
	if continent == "" {
		continent = components.AllLabel
	}
	country := components.AllLabel
	if m.Filter.Country != "" {
		country = m.catalog.Label(m.Filter.Country)
	}

	left := styles.BadgeStyle.Render("tablemap") + " " +
		styles.DimBadgeStyle.Render("Continent: "+continent) + " " +
		styles.DimBadgeStyle.Render("Country: "+country)

	var right string
	switch {
	case m.Result.Loading:
		right = m.spinner.View() + styles.DimStyle.Render(" Loading...")
	case m.Result.Err != nil:
		right = styles.ErrorStyle.Render(m.Result.Err.Error())
	case m.Result.FromCache && !m.Result.UpdatedAt.IsZero():
		right = styles.DimStyle.Render("saved " + formatAge(m.now().Sub(m.Result.UpdatedAt)))
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) renderFooter() string {
	var status string
	switch {
	case m.filtering:
		status = m.filterInput.View()
	case m.Query() != "":
		status = styles.FilterPromptStyle.Render("/ ") + m.Query() + styles.DimStyle.Render("  (esc to clear)")
	default:
		n := len(m.Result.Items)
		if m.Filter.Country != "" && m.Filter.Country != m.liveScope {
			n = 0
		}
		status = styles.DimStyle.Render(fmt.Sprintf("%d restaurants", n))
	}
	return status + "\n" + m.help.View(m.Keys)
}

// formatAge renders a snapshot age like "5m ago"
func formatAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 48*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
