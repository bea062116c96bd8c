package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"plugdeck/internal/action"
	"plugdeck/internal/catalog"
)

// operationDoneMsg is the completion signal for an in-flight install or
// uninstall. It is the only input that has effect while one is outstanding.
type operationDoneMsg struct {
	Verb    action.Verb
	ID      catalog.PluginID
	Outcome action.Outcome
}

// reloadedMsg carries a fresh aggregation snapshot.
type reloadedMsg struct {
	Plugins      []catalog.PluginRecord
	Marketplaces []catalog.MarketplaceRecord
	Errors       []catalog.ErrorRecord
	Err          error
}

// runActionCmd invokes the external executable off the update loop. No
// cancellation and no timeout: once started, the operation is awaited to
// completion.
func runActionCmd(runner *action.Runner, verb action.Verb, id catalog.PluginID) tea.Cmd {
	return func() tea.Msg {
		outcome := runner.Run(context.Background(), verb, string(id))
		return operationDoneMsg{Verb: verb, ID: id, Outcome: outcome}
	}
}

// reloadCmd re-runs the full aggregation pass.
func reloadCmd(agg *catalog.Aggregator) tea.Cmd {
	return func() tea.Msg {
		plugins, err := agg.BuildPluginCollection()
		if err != nil {
			return reloadedMsg{Err: err}
		}
		marketplaces, err := agg.BuildMarketplaceCollection()
		if err != nil {
			return reloadedMsg{Err: err}
		}
		return reloadedMsg{
			Plugins:      plugins,
			Marketplaces: marketplaces,
			Errors:       agg.LoadErrorRecords(),
		}
	}
}
