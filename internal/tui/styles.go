package tui

import "github.com/charmbracelet/lipgloss"

var (
	tabStyle       lipgloss.Style
	activeTabStyle lipgloss.Style

	rowStyle         lipgloss.Style
	selectedRowStyle lipgloss.Style

	enabledMarkStyle  lipgloss.Style
	disabledMarkStyle lipgloss.Style

	statusInfoStyle    lipgloss.Style
	statusWarnStyle    lipgloss.Style
	statusErrorStyle   lipgloss.Style
	statusSuccessStyle lipgloss.Style

	searchPromptStyle lipgloss.Style
	dimStyle          lipgloss.Style
	headerStyle       lipgloss.Style
	footerStyle       lipgloss.Style

	confirmBoxStyle   lipgloss.Style
	confirmTitleStyle lipgloss.Style

	fatalStyle lipgloss.Style
)

func init() {
	tabStyle = lipgloss.NewStyle().
		Foreground(CurrentTheme.TextDim).
		Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
		Foreground(CurrentTheme.TextBright).
		Background(CurrentTheme.Background).
		Bold(true).
		Padding(0, 1)

	rowStyle = lipgloss.NewStyle().
		Foreground(CurrentTheme.Text)

	selectedRowStyle = lipgloss.NewStyle().
		Foreground(CurrentTheme.TextBright).
		Background(CurrentTheme.Background).
		Bold(true)

	enabledMarkStyle = lipgloss.NewStyle().
		Foreground(CurrentTheme.Success)

	disabledMarkStyle = lipgloss.NewStyle().
		Foreground(CurrentTheme.TextDisabled)

	statusInfoStyle = lipgloss.NewStyle().
		Foreground(CurrentTheme.TextDim)

	statusWarnStyle = lipgloss.NewStyle().
		Foreground(CurrentTheme.Warning)

	statusErrorStyle = lipgloss.NewStyle().
		Foreground(CurrentTheme.Error)

	statusSuccessStyle = lipgloss.NewStyle().
		Foreground(CurrentTheme.Success)

	searchPromptStyle = lipgloss.NewStyle().
		Foreground(CurrentTheme.Primary).
		Bold(true)

	dimStyle = lipgloss.NewStyle().
		Foreground(CurrentTheme.Muted)

	headerStyle = lipgloss.NewStyle().
		Foreground(CurrentTheme.TextBright).
		Bold(true)

	footerStyle = lipgloss.NewStyle().
		Foreground(CurrentTheme.Muted)

	confirmBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(CurrentTheme.Warning).
		Padding(1, 2)

	confirmTitleStyle = lipgloss.NewStyle().
		Foreground(CurrentTheme.Warning).
		Bold(true)

	fatalStyle = lipgloss.NewStyle().
		Foreground(CurrentTheme.Error).
		Bold(true)
}
