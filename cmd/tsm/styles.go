package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	tsmedit "github.com/Xurkon/TSM-Scraper"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	dimStyle    = lipgloss.NewStyle().Faint(true)
	cellStyle   = lipgloss.NewStyle().PaddingRight(2)
)

// renderTable lays out rows under a styled header, first column
// left-aligned and sized to the widest cell.
func renderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); i < len(widths) && w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	for i, h := range headers {
		b.WriteString(cellStyle.Render(headerStyle.Render(pad(h, widths[i]))))
	}
	b.WriteString("\n")
	for _, row := range rows {
		for i, cell := range row {
			b.WriteString(cellStyle.Render(pad(cell, widths[i])))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func pad(s string, w int) string {
	if n := w - lipgloss.Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

// reportOutcome prints the shared tail of every mutating command: the
// dry-run diff when previewing, then warnings and per-entity errors.
func reportOutcome(res *tsmedit.OpResult) {
	if res.Diff != "" {
		fmt.Println(dimStyle.Render("--- preview, nothing written ---"))
		fmt.Print(res.Diff)
	}
	for _, w := range res.Warnings {
		fmt.Println(warnStyle.Render("warning: ") + w)
	}
	for _, e := range res.Errors {
		fmt.Println(errStyle.Render("error: ") + e)
	}
}
