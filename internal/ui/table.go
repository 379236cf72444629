package ui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/dailymotion/tessera-gen/internal/util"
)

const maxColumnWidth = 48

var dashboardHeaders = []string{"ID", "TITLE", "CATEGORY", "TAGS"}

// RenderDashboardTable renders the list command's output. Columns fit
// their longest value up to maxColumnWidth.
func RenderDashboardTable(dashboards []DashboardInfo) string {
	if len(dashboards) == 0 {
		return MutedStyle().Render("No dashboards on this server")
	}

	rows := make([]table.Row, len(dashboards))
	for i, d := range dashboards {
		rows[i] = table.Row{d.ID, d.Title, d.Category, util.JoinOrDefault(d.Tags, "-")}
	}
	return staticTable(fitColumns(dashboardHeaders, rows), rows).View()
}

func fitColumns(headers []string, rows []table.Row) []table.Column {
	cols := make([]table.Column, len(headers))
	for i, h := range headers {
		width := lipgloss.Width(h)
		for _, r := range rows {
			width = max(width, lipgloss.Width(r[i]))
		}
		cols[i] = table.Column{Title: h, Width: min(width, maxColumnWidth)}
	}
	return cols
}

// staticTable is an unfocused bubbles table used only for its View.
func staticTable(cols []table.Column, rows []table.Row) table.Model {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		BorderBottom(true).
		Bold(true).
		Foreground(ColorPrimary)
	styles.Cell = styles.Cell.Foreground(ColorPrimary)
	// no cursor highlight
	styles.Selected = styles.Cell

	return table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)+1),
		table.WithStyles(styles),
	)
}
