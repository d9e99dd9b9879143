package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle   lipgloss.Style
	sectionStyle lipgloss.Style
	statStyle    lipgloss.Style
	helpStyle    lipgloss.Style
	barStyle     lipgloss.Style
	labelStyle   lipgloss.Style
)

func init() { rebuildStyles() }

func rebuildStyles() {
	titleStyle = lipgloss.NewStyle().
		Foreground(colorTitle).
		Bold(true).
		Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	statStyle = lipgloss.NewStyle().
		Foreground(colorHeader)

	helpStyle = lipgloss.NewStyle().
		Foreground(colorDim)

	barStyle = lipgloss.NewStyle().
		Foreground(colorBar).
		Background(colorBar)

	labelStyle = lipgloss.NewStyle().
		Foreground(colorAccent)
}
