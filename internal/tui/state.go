package tui

import (
	"fmt"

	"plugdeck/internal/action"
	"plugdeck/internal/catalog"
)

// View is one of the dashboard's four tabs.
type View int

const (
	ViewDiscover View = iota
	ViewInstalled
	ViewMarketplaces
	ViewErrors
)

const viewCount = 4

// Title returns the tab label.
func (v View) Title() string {
	switch v {
	case ViewDiscover:
		return "Discover"
	case ViewInstalled:
		return "Installed"
	case ViewMarketplaces:
		return "Marketplaces"
	case ViewErrors:
		return "Errors"
	default:
		return "?"
	}
}

// Next cycles forward through the tabs.
func (v View) Next() View {
	return (v + 1) % viewCount
}

// Prev cycles backward through the tabs.
func (v View) Prev() View {
	return (v + viewCount - 1) % viewCount
}

// Mode is the interaction mode gating which keys are accepted.
type Mode int

const (
	// modeBrowse is plain navigation.
	modeBrowse Mode = iota
	// modeSearch is search-entry in the Discover view.
	modeSearch
	// modeConfirm is the uninstall confirmation dialog.
	modeConfirm
	// modeInFlight is an outstanding install/uninstall; all input except
	// the operation's completion signal (and a deferred quit) is discarded.
	modeInFlight
)

type statusLevel int

const (
	statusNone statusLevel = iota
	statusInfo
	statusWarn
	statusError
	statusSuccess
)

// pendingOperation tags which mutating action is in flight and for which
// plugin. A nil pendingOperation means idle. Carrying the id prevents a key
// press on a differently-selected item from being misread as applying to
// the in-flight one.
type pendingOperation struct {
	Verb action.Verb
	ID   catalog.PluginID
}

// DashState is the single source of truth for the dashboard view. All
// transitions go through its methods; the bubbletea model owns exactly one
// instance and performs I/O around it.
type DashState struct {
	view     View
	mode     Mode
	selected int

	searchQuery   string
	sortKey       catalog.SortKey
	sortDirection catalog.SortDirection

	confirmID   catalog.PluginID
	op          *pendingOperation
	quitAfterOp bool

	status      string
	statusLevel statusLevel

	plugins      []catalog.PluginRecord
	marketplaces []catalog.MarketplaceRecord
	errorRecords []catalog.ErrorRecord

	// visible is the filtered and sorted plugin list for the current view.
	visible []catalog.PluginRecord
}

// NewDashState creates a state starting on the Discover view with the given
// initial sort.
func NewDashState(key catalog.SortKey, direction catalog.SortDirection) *DashState {
	return &DashState{
		view:          ViewDiscover,
		sortKey:       key,
		sortDirection: direction,
	}
}

// SetData replaces the aggregated snapshot wholesale. The view layer never
// observes a partially updated collection.
func (s *DashState) SetData(plugins []catalog.PluginRecord, marketplaces []catalog.MarketplaceRecord, errs []catalog.ErrorRecord) {
	s.plugins = plugins
	s.marketplaces = marketplaces
	s.errorRecords = errs
	s.refreshVisible()
	s.clampSelection()
}

// refreshVisible recomputes the plugin list for the current view from the
// full snapshot, the active search query, and the sort settings.
func (s *DashState) refreshVisible() {
	switch s.view {
	case ViewDiscover:
		s.visible = catalog.Sort(catalog.Search(s.searchQuery, s.plugins), s.sortKey, s.sortDirection)
	case ViewInstalled:
		var installed []catalog.PluginRecord
		for _, rec := range s.plugins {
			if rec.Installed {
				installed = append(installed, rec)
			}
		}
		s.visible = catalog.Sort(installed, s.sortKey, s.sortDirection)
	default:
		s.visible = nil
	}
}

// itemCount returns the number of items in the current view's list.
func (s *DashState) itemCount() int {
	switch s.view {
	case ViewDiscover, ViewInstalled:
		return len(s.visible)
	case ViewMarketplaces:
		return len(s.marketplaces)
	case ViewErrors:
		return len(s.errorRecords)
	default:
		return 0
	}
}

// clampSelection keeps the selection inside [0, itemCount-1]. With an empty
// list the selection stays at 0 and is not rendered as selecting anything.
func (s *DashState) clampSelection() {
	if n := s.itemCount(); s.selected >= n {
		s.selected = n - 1
	}
	if s.selected < 0 {
		s.selected = 0
	}
}

// SelectedPlugin returns the plugin under the cursor in Discover/Installed.
func (s *DashState) SelectedPlugin() (catalog.PluginRecord, bool) {
	if s.view != ViewDiscover && s.view != ViewInstalled {
		return catalog.PluginRecord{}, false
	}
	if s.selected < 0 || s.selected >= len(s.visible) {
		return catalog.PluginRecord{}, false
	}
	return s.visible[s.selected], true
}

// MoveUp moves the selection up one row.
func (s *DashState) MoveUp() {
	s.clearStatus()
	if s.selected > 0 {
		s.selected--
	}
}

// MoveDown moves the selection down one row.
func (s *DashState) MoveDown() {
	s.clearStatus()
	if s.selected < s.itemCount()-1 {
		s.selected++
	}
}

// MovePage moves the selection by delta rows, clamped to the list bounds.
func (s *DashState) MovePage(delta int) {
	s.clearStatus()
	s.selected += delta
	s.clampSelection()
}

// SwitchView changes the active view, resetting selection, search query,
// and status message.
func (s *DashState) SwitchView(v View) {
	s.view = v
	s.selected = 0
	s.searchQuery = ""
	s.clearStatus()
	s.refreshVisible()
}

// NextView switches to the next tab.
func (s *DashState) NextView() { s.SwitchView(s.view.Next()) }

// PrevView switches to the previous tab.
func (s *DashState) PrevView() { s.SwitchView(s.view.Prev()) }

// StartSearch enters search-entry mode. Search applies only in Discover.
func (s *DashState) StartSearch() bool {
	if s.view != ViewDiscover || s.mode != modeBrowse {
		return false
	}
	s.mode = modeSearch
	s.clearStatus()
	return true
}

// SearchInput appends typed text to the query while in search-entry mode.
func (s *DashState) SearchInput(text string) {
	if s.mode != modeSearch {
		return
	}
	s.searchQuery += text
	s.selected = 0
	s.refreshVisible()
}

// SearchBackspace removes the last character of the query.
func (s *DashState) SearchBackspace() {
	if s.mode != modeSearch || s.searchQuery == "" {
		return
	}
	runes := []rune(s.searchQuery)
	s.searchQuery = string(runes[:len(runes)-1])
	s.selected = 0
	s.refreshVisible()
}

// EndSearch leaves search-entry mode. The query persists as an active
// filter.
func (s *DashState) EndSearch() {
	if s.mode == modeSearch {
		s.mode = modeBrowse
	}
}

// ClearSearch drops an active query outside of search-entry mode. Returns
// whether there was anything to clear.
func (s *DashState) ClearSearch() bool {
	if s.mode != modeBrowse || s.searchQuery == "" {
		return false
	}
	s.searchQuery = ""
	s.selected = 0
	s.refreshVisible()
	return true
}

// CycleSort advances the sort key through its fixed cycle and resets the
// selection, since the ordering changed.
func (s *DashState) CycleSort() {
	s.sortKey = s.sortKey.Next()
	s.selected = 0
	s.refreshVisible()
	s.setStatus(statusInfo, fmt.Sprintf("sorted by %s", s.sortKey))
}

// FlipSortDirection toggles ascending/descending and resets the selection.
func (s *DashState) FlipSortDirection() {
	s.sortDirection = s.sortDirection.Flip()
	s.selected = 0
	s.refreshVisible()
	s.setStatus(statusInfo, fmt.Sprintf("sort %s", s.sortDirection))
}

// ToggleTarget validates the toggle-enabled action and returns the record
// to flip. Only installed plugins can be enabled or disabled; anything else
// is a no-op with a warning.
func (s *DashState) ToggleTarget() (catalog.PluginRecord, bool) {
	rec, ok := s.SelectedPlugin()
	if !ok {
		return catalog.PluginRecord{}, false
	}
	if !rec.Installed {
		s.setStatus(statusWarn, fmt.Sprintf("%s is not installed", rec.ID))
		return catalog.PluginRecord{}, false
	}
	return rec, true
}

// PatchEnabled applies the optimistic local patch to the enabled flag after
// a confirmed settings write, keeping the UI consistent until the next full
// rebuild.
func (s *DashState) PatchEnabled(id catalog.PluginID, enabled bool) {
	for i := range s.plugins {
		if s.plugins[i].ID == id {
			s.plugins[i].Enabled = enabled
		}
	}
	for i := range s.visible {
		if s.visible[i].ID == id {
			s.visible[i].Enabled = enabled
		}
	}
	verb := "disabled"
	if enabled {
		verb = "enabled"
	}
	s.setStatus(statusSuccess, fmt.Sprintf("%s %s", verb, id))
}

// RequestInstall validates the install action and, if legal, transitions to
// the in-flight state. Installing an already-installed plugin is a warning,
// not a transition.
func (s *DashState) RequestInstall() (catalog.PluginID, bool) {
	if s.mode != modeBrowse {
		return "", false
	}
	rec, ok := s.SelectedPlugin()
	if !ok {
		return "", false
	}
	if rec.Installed {
		s.setStatus(statusWarn, fmt.Sprintf("%s is already installed", rec.ID))
		return "", false
	}
	s.beginOperation(action.Install, rec.ID)
	return rec.ID, true
}

// RequestUninstall validates the uninstall action and, if legal, enters the
// confirmation dialog. No write happens until an affirmative response.
func (s *DashState) RequestUninstall() bool {
	if s.mode != modeBrowse {
		return false
	}
	rec, ok := s.SelectedPlugin()
	if !ok {
		return false
	}
	if !rec.Installed {
		s.setStatus(statusWarn, fmt.Sprintf("%s is not installed", rec.ID))
		return false
	}
	s.mode = modeConfirm
	s.confirmID = rec.ID
	s.clearStatus()
	return true
}

// ConfirmUninstall resolves the confirmation dialog affirmatively and
// transitions to the in-flight state.
func (s *DashState) ConfirmUninstall() (catalog.PluginID, bool) {
	if s.mode != modeConfirm {
		return "", false
	}
	id := s.confirmID
	s.confirmID = ""
	s.beginOperation(action.Uninstall, id)
	return id, true
}

// CancelConfirm resolves the confirmation dialog negatively, with no side
// effect.
func (s *DashState) CancelConfirm() {
	if s.mode != modeConfirm {
		return
	}
	s.mode = modeBrowse
	s.confirmID = ""
	s.setStatus(statusInfo, "uninstall cancelled")
}

// beginOperation is the only entry into the in-flight state. The
// confirmation dialog is resolved by this point, so confirmation and an
// in-flight operation are never active together.
func (s *DashState) beginOperation(verb action.Verb, id catalog.PluginID) {
	s.mode = modeInFlight
	s.op = &pendingOperation{Verb: verb, ID: id}
	s.setStatus(statusInfo, fmt.Sprintf("%sing %s...", verb, id))
}

// InFlight reports whether a mutating operation is outstanding.
func (s *DashState) InFlight() bool {
	return s.op != nil
}

// Operation returns the in-flight operation tag, if any.
func (s *DashState) Operation() (pendingOperation, bool) {
	if s.op == nil {
		return pendingOperation{}, false
	}
	return *s.op, true
}

// CompleteOperation resolves the in-flight operation and returns to
// navigation with a status message. Returns whether a deferred quit should
// now proceed.
func (s *DashState) CompleteOperation(outcome action.Outcome) (quitNow bool) {
	op := s.op
	s.op = nil
	s.mode = modeBrowse
	if op == nil {
		return s.quitAfterOp
	}
	if outcome.Success {
		s.setStatus(statusSuccess, fmt.Sprintf("%sed %s", op.Verb, op.ID))
	} else {
		s.setStatus(statusError, fmt.Sprintf("%s %s failed: %s", op.Verb, op.ID, outcome.Diagnostic))
	}
	return s.quitAfterOp
}

// RequestQuit handles the quit key. Quitting is immediate everywhere —
// including mid-confirmation — except while an operation is in flight: then
// the quit is deferred until the operation settles, so the subprocess is
// always awaited rather than orphaned.
func (s *DashState) RequestQuit() (quitNow bool) {
	if s.InFlight() {
		s.quitAfterOp = true
		s.setStatus(statusInfo, "waiting for operation to finish...")
		return false
	}
	return true
}

func (s *DashState) setStatus(level statusLevel, msg string) {
	s.status = msg
	s.statusLevel = level
}

func (s *DashState) clearStatus() {
	s.status = ""
	s.statusLevel = statusNone
}

// Accessors used by the view layer and tests.

func (s *DashState) ActiveView() View       { return s.view }
func (s *DashState) CurrentMode() Mode      { return s.mode }
func (s *DashState) SelectedIndex() int     { return s.selected }
func (s *DashState) SearchQuery() string    { return s.searchQuery }
func (s *DashState) Status() (string, statusLevel) {
	return s.status, s.statusLevel
}
func (s *DashState) SortSettings() (catalog.SortKey, catalog.SortDirection) {
	return s.sortKey, s.sortDirection
}
func (s *DashState) VisiblePlugins() []catalog.PluginRecord    { return s.visible }
func (s *DashState) Marketplaces() []catalog.MarketplaceRecord { return s.marketplaces }
func (s *DashState) ErrorRecords() []catalog.ErrorRecord       { return s.errorRecords }
func (s *DashState) ConfirmingID() catalog.PluginID            { return s.confirmID }
