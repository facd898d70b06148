package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const (
	// laneNameW fits the widest lane name plus padding.
	laneNameW = 7
	// barWidth is the progress bar width in cells.
	barWidth = 18
	// checkW is the default width of the current-check column.
	checkW = 36
	// fixedRowW is the width of a row without the current-check column.
	fixedRowW = 45
	minCheckW = 8
)

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	for _, r := range m.rows {
		b.WriteString(m.viewRow(r))
		b.WriteString("\n")
	}
	if !m.done {
		b.WriteString(m.dimStyle.Render("  q to abort"))
		b.WriteString("\n")
	}
	return b.String()
}

// viewRow renders one lane line: status symbol, lane name, progress bar,
// check counts, current check, and elapsed time.
func (m *Model) viewRow(r *laneRow) string {
	frac := 0.0
	if r.total > 0 {
		frac = float64(r.done) / float64(r.total)
	}

	nameStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(laneColor(r.color)))

	return fmt.Sprintf("  %s %s %s %s  %s %s",
		m.rowSymbol(r),
		nameStyle.Render(padRight(r.name, laneNameW)),
		m.bar.ViewAs(frac),
		fmt.Sprintf("%5s", fmt.Sprintf("%d/%d", r.done, r.total)),
		m.dimStyle.Render(padRight(r.current, m.checkWidth())),
		m.dimStyle.Render(fmt.Sprintf("%6s", m.rowElapsed(r))),
	)
}

// rowSymbol picks the leading symbol for a row.
func (m *Model) rowSymbol(r *laneRow) string {
	switch {
	case r.finished && r.failed:
		return m.failStyle.Render("✗")
	case r.finished:
		return m.passStyle.Render("✓")
	case r.started.IsZero():
		return m.dimStyle.Render("·")
	default:
		return m.spinner.View()
	}
}

// rowElapsed formats the row's running or final elapsed time.
func (m *Model) rowElapsed(r *laneRow) string {
	switch {
	case r.finished:
		return fmt.Sprintf("%.1fs", r.elapsed.Seconds())
	case r.started.IsZero():
		return ""
	default:
		return fmt.Sprintf("%.1fs", time.Since(r.started).Seconds())
	}
}

// checkWidth sizes the current-check column to the terminal width.
func (m *Model) checkWidth() int {
	w := checkW
	if m.width > 0 {
		if avail := m.width - fixedRowW; avail < w {
			w = avail
		}
	}
	if w < minCheckW {
		w = minCheckW
	}
	return w
}

// laneColor maps a lane color name to its terminal color code.
func laneColor(name string) string {
	switch name {
	case "cyan":
		return "14"
	case "magenta":
		return "13"
	case "yellow":
		return "11"
	case "blue":
		return "12"
	default:
		return "15"
	}
}

// padRight pads s with spaces to width runes, truncating with an ellipsis
// when longer.
func padRight(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		if width <= 1 {
			return string(runes[:width])
		}
		return string(runes[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(runes))
}
