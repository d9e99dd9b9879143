// Package tui renders a finished latency report as an interactive
// terminal dashboard: a sortable row table plus a total-time bar chart.
package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tinytelemetry/urltop/internal/model"
)

const (
	chartHeight  = 8
	chartTopURLs = 10
	minURLWidth  = 24
)

// Dashboard is the Bubble Tea model for the report viewer.
type Dashboard struct {
	report    model.Report
	keys      KeyMap
	table     table.Model
	showChart bool
	width     int
	height    int
}

// NewDashboard builds the viewer for one report.
func NewDashboard(report model.Report) *Dashboard {
	d := &Dashboard{
		report:    report,
		keys:      DefaultKeyMap(),
		showChart: true,
	}
	d.table = buildTable(report.Rows, 80, 20, d.keys)
	return d
}

func (d *Dashboard) Init() tea.Cmd { return nil }

func (d *Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.width = msg.Width
		d.height = msg.Height
		d.resize()
		return d, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, d.keys.Quit), key.Matches(msg, d.keys.ForceQuit):
			return d, tea.Quit
		case key.Matches(msg, d.keys.ToggleChart):
			d.showChart = !d.showChart
			d.resize()
			return d, nil
		}
	}

	var cmd tea.Cmd
	d.table, cmd = d.table.Update(msg)
	return d, cmd
}

func (d *Dashboard) View() string {
	header := titleStyle.Render("urltop") + statStyle.Render(fmt.Sprintf(
		" %s  %s  parsed share %.3f  rows %d",
		d.report.Date.Format("2006-01-02"), d.report.Source, d.report.ParsedShare, len(d.report.Rows)))

	sections := []string{header}
	if d.showChart {
		sections = append(sections, d.renderChart())
	}
	sections = append(sections, sectionStyle.Render(d.table.View()))
	sections = append(sections, helpStyle.Render("↑/↓ scroll · c toggle chart · q quit"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (d *Dashboard) resize() {
	if d.width <= 0 || d.height <= 0 {
		return
	}
	tableHeight := d.height - 5
	if d.showChart {
		tableHeight -= chartHeight + 3
	}
	if tableHeight < 3 {
		tableHeight = 3
	}
	d.table = buildTable(d.report.Rows, d.width-4, tableHeight, d.keys)
}

// renderChart draws the total processing time of the slowest URLs as one
// bar per URL, with a legend naming them in rank order.
func (d *Dashboard) renderChart() string {
	n := len(d.report.Rows)
	if n == 0 {
		return sectionStyle.Render(helpStyle.Render("No data available"))
	}
	if n > chartTopURLs {
		n = chartTopURLs
	}

	chartWidth := d.width - 40
	if chartWidth < 20 {
		chartWidth = 20
	}

	bc := barchart.New(chartWidth, chartHeight,
		barchart.WithBarGap(1),
		barchart.WithBarWidth(3),
		barchart.WithNoAxis(),
	)
	for i := 0; i < n; i++ {
		row := d.report.Rows[i]
		bc.Push(barchart.BarData{
			Label: fmt.Sprintf("%d", i+1),
			Values: []barchart.BarValue{
				{Name: row.URL, Value: row.TimeSum, Style: barStyle},
			},
		})
	}
	bc.Draw()

	var legend strings.Builder
	for i := 0; i < n; i++ {
		row := d.report.Rows[i]
		legend.WriteString(fmt.Sprintf("%s %s\n",
			labelStyle.Render(fmt.Sprintf("%2d", i+1)),
			truncate(row.URL, 30)))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, bc.View(), "  ", legend.String())
	title := statStyle.Render("Total time by URL (slowest first)")
	return sectionStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, body))
}

func buildTable(rows []model.URLStat, width, height int, keys KeyMap) table.Model {
	urlWidth := width - 72
	if urlWidth < minURLWidth {
		urlWidth = minURLWidth
	}

	columns := []table.Column{
		{Title: "url", Width: urlWidth},
		{Title: "count", Width: 7},
		{Title: "count%", Width: 7},
		{Title: "sum", Width: 10},
		{Title: "time%", Width: 7},
		{Title: "avg", Width: 8},
		{Title: "max", Width: 8},
		{Title: "med", Width: 8},
	}

	tableRows := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, table.Row{
			truncate(r.URL, urlWidth),
			fmt.Sprintf("%d", r.Count),
			fmt.Sprintf("%.3f", r.CountPerc),
			fmt.Sprintf("%.3f", r.TimeSum),
			fmt.Sprintf("%.3f", r.TimePerc),
			fmt.Sprintf("%.3f", r.TimeAvg),
			fmt.Sprintf("%.3f", r.TimeMax),
			fmt.Sprintf("%.3f", r.TimeMed),
		})
	}

	// Scrolling goes through the dashboard KeyMap so all bindings live in
	// one place.
	km := table.DefaultKeyMap()
	km.LineUp = keys.Up
	km.LineDown = keys.Down

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(tableRows),
		table.WithFocused(true),
		table.WithHeight(height),
		table.WithKeyMap(km),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Foreground(colorHeader).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorBorder).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(colorAccent).
		Bold(true)
	t.SetStyles(styles)
	return t
}

// truncate shortens s to at most n runes, ending in an ellipsis. URL paths
// can carry multibyte runes, so byte slicing would split them.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	if n <= 1 {
		return "…"
	}
	return string([]rune(s)[:n-1]) + "…"
}
