package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"plugdeck/internal/catalog"
)

// chromeLines is what the header, search bar, and footer take away from the
// list area.
const chromeLines = 6

func (m model) View() string {
	if m.fatalErr != nil {
		return m.renderFatal()
	}

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(m.renderSearchBar())
	b.WriteString("\n")
	b.WriteString(m.renderList())
	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	if m.state.CurrentMode() == modeConfirm {
		return m.overlayConfirm(b.String())
	}
	return b.String()
}

func (m model) renderFatal() string {
	msg := fatalStyle.Render("plugdeck could not read its base data") + "\n\n" +
		statusErrorStyle.Render(m.fatalErr.Error()) + "\n\n" +
		dimStyle.Render("press q to quit")
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
}

func (m model) renderTabs() string {
	var tabs []string
	for v := View(0); v < viewCount; v++ {
		label := fmt.Sprintf("%d %s", int(v)+1, v.Title())
		if v == m.state.ActiveView() {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m model) renderSearchBar() string {
	if m.state.ActiveView() != ViewDiscover {
		return ""
	}
	query := m.state.SearchQuery()
	if m.state.CurrentMode() == modeSearch {
		return searchPromptStyle.Render("/") + query + searchPromptStyle.Render("▌")
	}
	if query != "" {
		return dimStyle.Render("filter: ") + query + dimStyle.Render("  (esc clears)")
	}
	return dimStyle.Render("press / to search")
}

func (m model) renderList() string {
	switch m.state.ActiveView() {
	case ViewDiscover, ViewInstalled:
		return m.renderPluginRows()
	case ViewMarketplaces:
		return m.renderMarketplaceRows()
	case ViewErrors:
		return m.renderErrorRows()
	}
	return ""
}

// window returns the slice bounds keeping the selection visible.
func (m model) window(count int) (start, end int) {
	size := m.pageSize()
	if count <= size {
		return 0, count
	}
	start = m.state.SelectedIndex() - size/2
	if start < 0 {
		start = 0
	}
	end = start + size
	if end > count {
		end = count
		start = end - size
	}
	return start, end
}

func (m model) renderPluginRows() string {
	records := m.state.VisiblePlugins()
	if len(records) == 0 {
		if m.state.ActiveView() == ViewInstalled {
			return dimStyle.Render("  no plugins installed")
		}
		return dimStyle.Render("  no plugins found")
	}

	var rows []string
	start, end := m.window(len(records))
	for i := start; i < end; i++ {
		rows = append(rows, m.renderPluginRow(records[i], i == m.state.SelectedIndex()))
	}
	return strings.Join(rows, "\n")
}

func (m model) renderPluginRow(rec catalog.PluginRecord, selected bool) string {
	mark := disabledMarkStyle.Render("○")
	switch {
	case rec.Installed && rec.Enabled:
		mark = enabledMarkStyle.Render("●")
	case rec.Installed:
		mark = disabledMarkStyle.Render("◐")
	}

	counts := fmt.Sprintf("%6d", rec.InstallCount)
	name := truncate(string(rec.ID), m.width/3)
	desc := truncate(rec.Description, m.width/2)

	row := fmt.Sprintf(" %s %s %s  %s", mark, counts, padRight(name, m.width/3), desc)
	if selected {
		return selectedRowStyle.Render("▸" + row)
	}
	return rowStyle.Render(" " + row)
}

func (m model) renderMarketplaceRows() string {
	records := m.state.Marketplaces()
	if len(records) == 0 {
		return dimStyle.Render("  no marketplaces configured")
	}

	var rows []string
	start, end := m.window(len(records))
	for i := start; i < end; i++ {
		rec := records[i]
		row := fmt.Sprintf(" %s %4d plugins  %s",
			padRight(truncate(rec.Name, m.width/3), m.width/3),
			rec.PluginCount,
			truncate(rec.Source.Location(), m.width/3))
		if i == m.state.SelectedIndex() {
			rows = append(rows, selectedRowStyle.Render("▸"+row))
		} else {
			rows = append(rows, rowStyle.Render(" "+row))
		}
	}
	return strings.Join(rows, "\n")
}

func (m model) renderErrorRows() string {
	records := m.state.ErrorRecords()
	if len(records) == 0 {
		return dimStyle.Render("  no plugin errors reported")
	}

	var rows []string
	start, end := m.window(len(records))
	for i := start; i < end; i++ {
		rec := records[i]
		row := fmt.Sprintf(" %-12s %s  %s",
			rec.Kind,
			padRight(truncate(string(rec.PluginID), m.width/4), m.width/4),
			truncate(rec.Message, m.width/2))
		if i == m.state.SelectedIndex() {
			rows = append(rows, selectedRowStyle.Render("▸"+row))
		} else {
			rows = append(rows, rowStyle.Render(" "+row))
		}
	}
	return strings.Join(rows, "\n")
}

func (m model) renderStatusLine() string {
	if op, ok := m.state.Operation(); ok {
		return m.spinner.View() + " " + statusInfoStyle.Render(fmt.Sprintf("%sing %s...", op.Verb, op.ID))
	}
	msg, level := m.state.Status()
	if msg == "" {
		return ""
	}
	switch level {
	case statusWarn:
		return statusWarnStyle.Render(msg)
	case statusError:
		return statusErrorStyle.Render(msg)
	case statusSuccess:
		return statusSuccessStyle.Render(msg)
	default:
		return statusInfoStyle.Render(msg)
	}
}

func (m model) renderFooter() string {
	sortKey, sortDirection := m.state.SortSettings()
	help := "↑/↓ move · tab views · / search · s sort · o order · space toggle · i install · x uninstall · q quit"
	sortNote := fmt.Sprintf("sort: %s %s", sortKey, sortDirection)
	return footerStyle.Render(truncate(help, m.width-lipgloss.Width(sortNote)-2) + "  " + sortNote)
}

func (m model) overlayConfirm(base string) string {
	id := m.state.ConfirmingID()
	content := confirmTitleStyle.Render("Uninstall "+string(id)+"?") + "\n\n" +
		"This removes the plugin from disk." + "\n\n" +
		dimStyle.Render("y confirm · n/esc cancel")
	box := confirmBoxStyle.Render(content)
	return base + "\n" + lipgloss.Place(m.width, lipgloss.Height(box)+1, lipgloss.Center, lipgloss.Bottom, box)
}

// truncate shortens s to width terminal columns, CJK-aware.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width > 3 {
		return runewidth.Truncate(s, width-3, "...")
	}
	return runewidth.Truncate(s, width, "")
}

func padRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}
