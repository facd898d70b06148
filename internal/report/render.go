package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/voxelforge/prepush/internal/bench"
	"github.com/voxelforge/prepush/internal/gate"
	"github.com/voxelforge/prepush/internal/lane"
)

const (
	symPass = "✓"
	symFail = "✗"
	symWarn = "⚠"
	symNew  = "○"
	symSkip = "─"

	panelWidth  = 72
	innerWidth  = panelWidth - 2
	timeWidth   = 8
	checkNameW  = innerWidth - timeWidth - 3
	benchValW   = 10
	benchBaseW  = 28
	benchNameW  = innerWidth - benchValW - benchBaseW - 4

	// A single failure's output is tail-truncated to keep the report
	// scannable.
	maxFailureOutput = 2000
)

// Renderer renders summaries to a writer with terminal styling.
type Renderer struct {
	out io.Writer

	pass     lipgloss.Style
	fail     lipgloss.Style
	warn     lipgloss.Style
	dim      lipgloss.Style
	passBold lipgloss.Style
	failBold lipgloss.Style

	panelOK   lipgloss.Style
	panelBad  lipgloss.Style
	panelWarn lipgloss.Style
}

// NewRenderer creates a renderer writing to out.
func NewRenderer(out io.Writer) *Renderer {
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Width(panelWidth)

	return &Renderer{
		out: out,

		pass:     lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		fail:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		warn:     lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		passBold: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("34")),
		failBold: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),

		panelOK:   panel.BorderForeground(lipgloss.Color("34")),
		panelBad:  panel.BorderForeground(lipgloss.Color("196")),
		panelWarn: panel.BorderForeground(lipgloss.Color("220")),
	}
}

// Render writes the full summary: one panel per lane, the benchmark panel,
// the totals line, the verdict, and the first failure's output.
func (r *Renderer) Render(s *Summary) {
	fmt.Fprintln(r.out)

	for _, l := range s.Lanes {
		fmt.Fprintln(r.out, r.lanePanel(l))
		fmt.Fprintln(r.out)
	}

	if s.BenchLane != nil {
		if panel := r.benchPanel(s.BenchLane); panel != "" {
			fmt.Fprintln(r.out, panel)
			fmt.Fprintln(r.out)
		}
	}

	r.renderTotals(s)
	r.renderVerdict(s)
	fmt.Fprintln(r.out)
}

// lanePanel renders one lane's checks as a bordered panel.
func (r *Renderer) lanePanel(l *lane.Lane) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(laneColor(l.Color)).Render(l.Name)
	header := spread(title, r.dim.Render(FmtSecs(l.Elapsed)), innerWidth)

	rows := []string{header}
	for _, c := range l.Checks {
		rows = append(rows, r.checkRow(c))
	}

	style := r.panelOK
	if l.Failed {
		style = r.panelBad
	}
	return style.Render(strings.Join(rows, "\n"))
}

// checkRow renders one check line: symbol, name, elapsed.
func (r *Renderer) checkRow(c *lane.Check) string {
	t := ""
	if c.Status != lane.StatusPending && c.Status != lane.StatusSkipped {
		t = FmtSecs(c.Elapsed)
	}
	return fmt.Sprintf("%s %s %s",
		r.statusSymbol(c.Status),
		padRight(c.Name, checkNameW),
		r.dim.Render(fmt.Sprintf("%*s", timeWidth, t)))
}

// benchPanel renders the benchmark comparison panel. Empty when the bench
// lane never reached its post-processing pass.
func (r *Renderer) benchPanel(l *lane.Lane) string {
	if l.Bench == nil {
		return ""
	}

	subtitle := r.dim.Render("No baseline")
	var rows []string

	outcome := l.Bench.Outcome
	if outcome == nil {
		results := append([]bench.Result{}, l.Bench.Results...)
		sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })
		for _, res := range results {
			rows = append(rows, r.benchRow(r.dim.Render(symNew), res.Name, FmtNs(res.MeanNs), r.dim.Render("(new)")))
		}
	} else {
		subtitle = r.dim.Render("vs v" + outcome.BaselineVersion)
		comparisons := append([]bench.Comparison{}, outcome.Results...)
		sort.Slice(comparisons, func(i, j int) bool { return comparisons[i].Name < comparisons[j].Name })
		for _, c := range comparisons {
			if c.Status == bench.CompareNew {
				rows = append(rows, r.benchRow(r.dim.Render(symNew), c.Name, FmtNs(c.MeanNs), r.dim.Render("(new)")))
				continue
			}
			rows = append(rows, r.benchRow(r.comparisonSymbol(c.Status), c.Name, FmtNs(c.MeanNs), r.vsBase(c)))
		}
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Render("Benchmarks")
	header := spread(title, subtitle, innerWidth)

	style := r.panelOK
	switch {
	case l.Failed:
		style = r.panelBad
	case outcome != nil && outcome.HasWarn:
		style = r.panelWarn
	}
	return style.Render(strings.Join(append([]string{header}, rows...), "\n"))
}

// benchRow renders one benchmark line: symbol, name, current value, baseline
// column.
func (r *Renderer) benchRow(sym, name, val, base string) string {
	return fmt.Sprintf("%s %s %*s %s",
		sym,
		padRight(name, benchNameW),
		benchValW, val,
		padLeft(base, benchBaseW))
}

// vsBase renders the baseline column for a compared benchmark.
func (r *Renderer) vsBase(c bench.Comparison) string {
	sign := ""
	if c.PctChange >= 0 {
		sign = "+"
	}
	pct := fmt.Sprintf("%s%.1f%%", sign, c.PctChange)

	var pctStr string
	switch c.Status {
	case bench.CompareFail:
		pctStr = r.fail.Render(pct)
	case bench.CompareWarn:
		pctStr = r.warn.Render(pct)
	default:
		pctStr = r.dim.Render(pct)
	}

	return r.dim.Render(fmt.Sprintf("(base %-8s", FmtNs(c.BaseNs))) + " " + pctStr + r.dim.Render(")")
}

// renderTotals writes the one-line aggregate under the panels.
func (r *Renderer) renderTotals(s *Summary) {
	passed, failed, warned := s.Totals()

	parts := []string{"Total: " + FmtSecs(s.TotalElapsed)}

	checks := "Checks: " + r.pass.Render(fmt.Sprintf("%d passed", passed))
	if failed > 0 {
		checks = "Checks: " + r.fail.Render(fmt.Sprintf("%d failed", failed)) +
			"  " + r.pass.Render(fmt.Sprintf("%d passed", passed))
	}
	if warned > 0 {
		checks += "  " + r.warn.Render(fmt.Sprintf("%d warnings", warned))
	}
	parts = append(parts, checks)

	if bs := r.benchSummary(s); bs != "" {
		parts = append(parts, "Bench: "+bs)
	}

	fmt.Fprintf(r.out, "  %s\n", strings.Join(parts, "   "))
}

// benchSummary condenses the bench lane's outcome for the totals line.
func (r *Renderer) benchSummary(s *Summary) string {
	if s.BenchLane == nil {
		return ""
	}
	if s.BenchLane.Bench == nil || s.BenchLane.Bench.Outcome == nil {
		return r.dim.Render("no baseline")
	}
	warns, fails := s.BenchCounts()
	switch {
	case fails > 0:
		return r.fail.Render(fmt.Sprintf("%d regressions", fails))
	case warns > 0:
		return r.warn.Render(fmt.Sprintf("%d warnings", warns))
	default:
		return r.pass.Render("ok")
	}
}

// renderVerdict writes the final verdict line and, on failure, the first
// failing check's captured output.
func (r *Renderer) renderVerdict(s *Summary) {
	if s.AllPassed() {
		fmt.Fprintf(r.out, "  %s\n", r.passBold.Render(symPass+" Ready to push"))
		return
	}

	fmt.Fprintf(r.out, "  %s\n", r.failBold.Render(symFail+" Fix issues before pushing"))

	if c := s.FirstFailure(); c != nil {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, r.failurePanel(c))
	}
}

// failurePanel renders one failed check's output, tail-truncated.
func (r *Renderer) failurePanel(c *lane.Check) string {
	out := c.Output
	if runes := []rune(out); len(runes) > maxFailureOutput {
		out = string(runes[len(runes)-maxFailureOutput:])
	}

	title := r.fail.Render("Failed: " + c.Name)
	content := title + "\n\n" + strings.TrimRight(out, "\n")
	return r.panelBad.Render(content)
}

// RenderGateLine writes the format gate's status line. Nothing is written
// for a skipped gate.
func (r *Renderer) RenderGateLine(status gate.Status, elapsed time.Duration) {
	switch status {
	case gate.StatusOK:
		fmt.Fprintf(r.out, "  %s Format check %s\n", r.pass.Render(symPass), r.dim.Render(FmtSecs(elapsed)))
	case gate.StatusAutoFixed:
		fmt.Fprintf(r.out, "  %s Format check %s %s\n",
			r.pass.Render(symPass), r.warn.Render("(auto-fixed)"), r.dim.Render(FmtSecs(elapsed)))
	}
}

// RenderGateFailure renders the gate's fatal error as its own panel.
func (r *Renderer) RenderGateFailure(err error) {
	fmt.Fprintln(r.out)
	title := r.failBold.Render("Format Gate Failed")
	fmt.Fprintln(r.out, r.panelBad.Render(title+"\n\n"+err.Error()))
	fmt.Fprintln(r.out)
}

// statusSymbol maps a check status to its colored glyph.
func (r *Renderer) statusSymbol(s lane.Status) string {
	switch s {
	case lane.StatusPassed:
		return r.pass.Render(symPass)
	case lane.StatusFailed:
		return r.fail.Render(symFail)
	case lane.StatusWarned:
		return r.warn.Render(symWarn)
	case lane.StatusSkipped:
		return r.dim.Render(symSkip)
	default:
		return "?"
	}
}

// comparisonSymbol maps a comparison status to its colored glyph.
func (r *Renderer) comparisonSymbol(s bench.CompareStatus) string {
	switch s {
	case bench.CompareFail:
		return r.fail.Render(symFail)
	case bench.CompareWarn:
		return r.warn.Render(symWarn)
	default:
		return r.pass.Render(symPass)
	}
}

// laneColor maps a lane's color name to a terminal color.
func laneColor(name string) lipgloss.Color {
	switch name {
	case "cyan":
		return lipgloss.Color("14")
	case "magenta":
		return lipgloss.Color("13")
	case "yellow":
		return lipgloss.Color("11")
	case "blue":
		return lipgloss.Color("12")
	default:
		return lipgloss.Color("15")
	}
}

// padRight pads s with spaces to width w, truncating with an ellipsis when
// it is too long. Assumes s carries no styling.
func padRight(s string, w int) string {
	n := utf8.RuneCountInString(s)
	if n > w {
		runes := []rune(s)
		return string(runes[:w-3]) + "..."
	}
	return s + strings.Repeat(" ", w-n)
}

// padLeft right-aligns a possibly styled string within width w.
func padLeft(s string, w int) string {
	gap := w - lipgloss.Width(s)
	if gap < 0 {
		gap = 0
	}
	return strings.Repeat(" ", gap) + s
}

// spread places left and right at the edges of a line of the given width.
func spread(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
