// Package tui renders live lane progress while a verification run is active.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// RunEventMsg wraps an orchestrator event for the TUI.
type RunEventMsg struct {
	// Type is the event type string ("lane_started", "check_started",
	// "check_finished", "lane_finished").
	Type string
	// Lane is the name of the lane the event belongs to.
	Lane string
	// Check is the display name of the check, on check events.
	Check string
	// Status is the check's status on finished events.
	Status string
	// Done is the number of checks in the lane that have finished.
	Done int
	// Total is the number of checks in the lane.
	Total int
	// Failed reports whether the lane has a failed check so far.
	Failed bool
}

// RunDoneMsg signals that every lane has finished.
type RunDoneMsg struct{}

// LaneInfo seeds one display row before any events arrive.
type LaneInfo struct {
	// Name is the lane's display name.
	Name string
	// Color is the lane's color name ("cyan", "magenta", "yellow", "blue").
	Color string
	// Checks is the number of checks the lane starts with.
	Checks int
}

// laneRow tracks the display state of one lane.
type laneRow struct {
	name     string
	color    string
	total    int
	done     int
	current  string
	failed   bool
	finished bool
	started  time.Time
	elapsed  time.Duration
}

// Model is the bubbletea model for the live run display. It shows one row
// per lane and quits on its own when the run completes.
type Model struct {
	rows    []*laneRow
	spinner spinner.Model
	bar     progress.Model
	width   int
	done    bool
	aborted bool

	// Styles
	passStyle lipgloss.Style
	failStyle lipgloss.Style
	dimStyle  lipgloss.Style
}

// New creates a run display with one row per lane, in the given order.
func New(lanes []LaneInfo) *Model {
	rows := make([]*laneRow, 0, len(lanes))
	for _, li := range lanes {
		rows = append(rows, &laneRow{name: li.Name, color: li.Color, total: li.Checks})
	}

	sp := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("14"))),
	)
	bar := progress.New(
		progress.WithGradient("#5fd7ff", "#5fff87"),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)

	return &Model{
		rows:    rows,
		spinner: sp,
		bar:     bar,

		passStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		failStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		dimStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	}
}

// Aborted reports whether the user quit before the run finished.
func (m *Model) Aborted() bool {
	return m.aborted
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.aborted = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case RunEventMsg:
		m.handleRunEvent(msg)

	case RunDoneMsg:
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

// handleRunEvent updates the affected lane row.
func (m *Model) handleRunEvent(msg RunEventMsg) {
	row := m.row(msg.Lane)
	if row == nil {
		return
	}

	switch msg.Type {
	case "lane_started":
		row.started = time.Now()
		if msg.Total > 0 {
			row.total = msg.Total
		}

	case "check_started":
		row.current = msg.Check

	case "check_finished":
		row.done = msg.Done
		row.failed = msg.Failed
		row.current = msg.Check

	case "lane_finished":
		row.done = msg.Done
		row.failed = msg.Failed
		row.finished = true
		row.current = ""
		if !row.started.IsZero() {
			row.elapsed = time.Since(row.started)
		}
	}
}

// row finds the display row for a lane name.
func (m *Model) row(name string) *laneRow {
	for _, r := range m.rows {
		if r.name == name {
			return r
		}
	}
	return nil
}

// NewProgram creates a bubbletea program that runs the display inline, so
// the final frame stays on screen above the summary printed after it.
// The returned program receives messages via Send().
func NewProgram(lanes []LaneInfo) (*tea.Program, *Model) {
	m := New(lanes)
	p := tea.NewProgram(m)
	return p, m
}
