package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"plugdeck/internal/action"
	"plugdeck/internal/catalog"
	"plugdeck/internal/log"
	"plugdeck/internal/settings"
)

// Options configures the dashboard.
type Options struct {
	Aggregator *catalog.Aggregator
	Runner     *action.Runner

	// Initial sort; zero values default to install count descending.
	SortKey       catalog.SortKey
	SortDirection catalog.SortDirection
}

type model struct {
	state  *DashState
	agg    *catalog.Aggregator
	runner *action.Runner

	spinner spinner.Model
	width   int
	height  int

	// fatalErr is a startup aggregation failure: the session cannot render
	// without its base data, so only quit is offered.
	fatalErr error
}

// Run starts the interactive dashboard. A document read failure during the
// initial aggregation is fatal and rendered as an error screen with only a
// quit affordance; every later failure downgrades to a status message.
func Run(opts Options) error {
	m := newModel(opts)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run dashboard: %w", err)
	}
	return nil
}

func newModel(opts Options) model {
	sortKey := opts.SortKey
	if sortKey == "" {
		sortKey = catalog.SortByInstallCount
	}
	sortDirection := opts.SortDirection
	if sortDirection == "" {
		sortDirection = catalog.Descending
	}

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		FPS:    80 * time.Millisecond,
	}
	sp.Style = statusInfoStyle

	m := model{
		state:   NewDashState(sortKey, sortDirection),
		agg:     opts.Aggregator,
		runner:  opts.Runner,
		spinner: sp,
		width:   80,
		height:  24,
	}

	plugins, err := m.agg.BuildPluginCollection()
	if err != nil {
		m.fatalErr = err
		return m
	}
	marketplaces, err := m.agg.BuildMarketplaceCollection()
	if err != nil {
		m.fatalErr = err
		return m
	}
	m.state.SetData(plugins, marketplaces, m.agg.LoadErrorRecords())
	return m
}

func (m model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case operationDoneMsg:
		return m.handleOperationDone(msg)

	case reloadedMsg:
		if msg.Err != nil {
			m.state.setStatus(statusError, fmt.Sprintf("reload failed: %v", msg.Err))
			return m, nil
		}
		m.state.SetData(msg.Plugins, msg.Marketplaces, msg.Errors)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleOperationDone(msg operationDoneMsg) (tea.Model, tea.Cmd) {
	quitNow := m.state.CompleteOperation(msg.Outcome)
	if quitNow {
		return m, tea.Quit
	}
	if msg.Outcome.Success {
		return m, reloadCmd(m.agg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The terminal error screen accepts only quit.
	if m.fatalErr != nil {
		if key.Matches(msg, keys.Quit) || key.Matches(msg, keys.Escape) {
			return m, tea.Quit
		}
		return m, nil
	}

	// Concurrency gate: while an operation is in flight, only quit (which
	// defers) has any effect; everything else is discarded.
	if m.state.InFlight() {
		if key.Matches(msg, keys.Quit) {
			if m.state.RequestQuit() {
				return m, tea.Quit
			}
		}
		return m, nil
	}

	switch m.state.CurrentMode() {
	case modeSearch:
		return m.handleSearchKey(msg)
	case modeConfirm:
		return m.handleConfirmKey(msg)
	default:
		return m.handleBrowseKey(msg)
	}
}

func (m model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape), msg.Type == tea.KeyEnter:
		// The query persists as an active filter.
		m.state.EndSearch()
	case msg.Type == tea.KeyBackspace:
		m.state.SearchBackspace()
	case msg.Type == tea.KeyRunes:
		m.state.SearchInput(string(msg.Runes))
	case msg.Type == tea.KeySpace:
		m.state.SearchInput(" ")
	}
	return m, nil
}

func (m model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		// Quit is unconditional mid-confirmation; nothing is in flight yet.
		return m, tea.Quit
	case key.Matches(msg, keys.Confirm):
		if id, ok := m.state.ConfirmUninstall(); ok {
			return m, runActionCmd(m.runner, action.Uninstall, id)
		}
	case key.Matches(msg, keys.Deny), key.Matches(msg, keys.Escape):
		m.state.CancelConfirm()
	}
	return m, nil
}

func (m model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		m.state.MoveUp()
	case key.Matches(msg, keys.Down):
		m.state.MoveDown()
	case key.Matches(msg, keys.PageUp):
		m.state.MovePage(-m.pageSize())
	case key.Matches(msg, keys.PageDown):
		m.state.MovePage(m.pageSize())

	case key.Matches(msg, keys.NextView):
		m.state.NextView()
	case key.Matches(msg, keys.PrevView):
		m.state.PrevView()
	case key.Matches(msg, keys.Discover):
		m.state.SwitchView(ViewDiscover)
	case key.Matches(msg, keys.Inst):
		m.state.SwitchView(ViewInstalled)
	case key.Matches(msg, keys.Markets):
		m.state.SwitchView(ViewMarketplaces)
	case key.Matches(msg, keys.Errs):
		m.state.SwitchView(ViewErrors)

	case key.Matches(msg, keys.Search):
		m.state.StartSearch()
	case key.Matches(msg, keys.Escape):
		m.state.ClearSearch()

	case key.Matches(msg, keys.SortCycle):
		m.state.CycleSort()
	case key.Matches(msg, keys.SortOrder):
		m.state.FlipSortDirection()

	case key.Matches(msg, keys.ToggleEnabled):
		m.toggleEnabled()

	case key.Matches(msg, keys.Install):
		if id, ok := m.state.RequestInstall(); ok {
			return m, runActionCmd(m.runner, action.Install, id)
		}

	case key.Matches(msg, keys.Uninstall):
		m.state.RequestUninstall()
	}
	return m, nil
}

// toggleEnabled flips the enabled flag for the selected installed plugin.
// The settings write completes first; the optimistic in-memory patch is
// applied only after write success, so a failed write never shows a state
// that was not persisted.
func (m model) toggleEnabled() {
	rec, ok := m.state.ToggleTarget()
	if !ok {
		return
	}

	doc, err := settings.Load(m.agg.Root().SettingsFile())
	if err != nil {
		m.state.setStatus(statusError, fmt.Sprintf("settings: %v", err))
		return
	}
	next := !rec.Enabled
	if err := doc.SetEnabled(string(rec.ID), next); err != nil {
		log.Logger().Warn("settings write failed", zap.String("plugin", string(rec.ID)), zap.Error(err))
		m.state.setStatus(statusError, fmt.Sprintf("settings: %v", err))
		return
	}
	m.state.PatchEnabled(rec.ID, next)
}

func (m model) pageSize() int {
	size := m.height - chromeLines
	if size < 1 {
		size = 1
	}
	return size
}
