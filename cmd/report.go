package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	accent  = lipgloss.Color("#D97706")
	dim     = lipgloss.Color("#6B7280")
	success = lipgloss.Color("#22C55E")
	danger  = lipgloss.Color("#EF4444")
	warning = lipgloss.Color("#F59E0B")
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 2)
	labelStyle = lipgloss.NewStyle().Foreground(dim).Width(14)
	okStyle    = lipgloss.NewStyle().Foreground(success)
	errStyle   = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(warning)
)

type reportRow struct {
	label string
	value string
}

// renderReport draws a titled box of label/value rows.
func renderReport(title string, rows []reportRow) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	for _, r := range rows {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(r.label))
		b.WriteString(r.value)
	}
	return boxStyle.Render(b.String())
}

func warnLine(format string, args ...interface{}) string {
	return warnStyle.Render("  [warn] ") + fmt.Sprintf(format, args...)
}

func errLine(format string, args ...interface{}) string {
	return errStyle.Render("  [error] ") + fmt.Sprintf(format, args...)
}
