package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/uniwin/internal/controller"
	"github.com/bnema/uniwin/internal/display"
	"github.com/bnema/uniwin/internal/native"
)

// renderTable lays out rows in left-aligned columns.
func renderTable(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	line := func(cells []string, style lipgloss.Style) string {
		parts := make([]string, len(cells))
		for i, c := range cells {
			parts[i] = style.Copy().Width(widths[i] + 2).Render(c)
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	}

	var b strings.Builder
	b.WriteString(line(header, TableHeaderStyle))
	for _, row := range rows {
		b.WriteString("\n")
		b.WriteString(line(row, TableCellStyle))
	}
	return b.String()
}

// RenderCapabilities shows the per-group symbol report.
func RenderCapabilities(path string, caps native.Capabilities) string {
	var rows [][]string
	for _, g := range caps.Groups() {
		status := SuccessStyle.Render(IconSuccess + " complete")
		switch {
		case len(g.Resolved) == 0:
			status = ErrorStyle.Render(IconError + " absent")
		case !g.Complete():
			status = WarningStyle.Render(IconPartial + " partial")
		}
		missing := "-"
		if len(g.Missing) > 0 {
			missing = strings.Join(g.Missing, ", ")
		}
		rows = append(rows, []string{
			g.Name,
			status,
			fmt.Sprintf("%d/%d", len(g.Resolved), len(g.Resolved)+len(g.Missing)),
			missing,
		})
	}

	return FormatHeader("Native library") + "\n" +
		SubtleStyle.Render(path) + "\n\n" +
		renderTable([]string{"GROUP", "STATUS", "SYMBOLS", "MISSING"}, rows)
}

// RenderMonitors lists monitors with their geometry.
func RenderMonitors(monitors []display.Monitor) string {
	if len(monitors) == 0 {
		return WarningStyle.Render(IconWarning + " no monitors reported")
	}
	rows := make([][]string, 0, len(monitors))
	for _, m := range monitors {
		primary := ""
		if m.Primary {
			primary = SuccessStyle.Render("primary")
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", m.Index),
			fmt.Sprintf("%.0fx%.0f", m.Width, m.Height),
			fmt.Sprintf("%.0f,%.0f", m.X, m.Y),
			primary,
		})
	}
	return renderTable([]string{"INDEX", "SIZE", "ORIGIN", ""}, rows)
}

// RenderFitResult summarises a fit.
func RenderFitResult(res controller.FitResult) string {
	switch res.Outcome {
	case controller.FitMaximized:
		return FormatResult(true, "Fit", fmt.Sprintf("maximized on monitor %s", res.Monitor))
	case controller.FitFallback:
		return FormatResult(true, "Fit", fmt.Sprintf("sized to monitor %s", res.Monitor))
	case controller.FitMismatch:
		return FormatResult(false, "Fit", fmt.Sprintf("window at %.0f,%.0f %.0fx%.0f does not match monitor %s",
			res.X, res.Y, res.Width, res.Height, res.Monitor))
	default:
		return FormatResult(false, "Fit", res.Reason)
	}
}
