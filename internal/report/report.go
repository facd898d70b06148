package report

import (
	"strings"
	"time"

	"github.com/voxelforge/prepush/internal/bench"
	"github.com/voxelforge/prepush/internal/lane"
)

// Summary aggregates one run's outcome for rendering and the exit decision.
// The bench lane is kept apart from the others because its checks do not
// count toward the check totals and it is summarized separately.
type Summary struct {
	// Lanes are the non-bench lanes in execution order.
	Lanes []*lane.Lane
	// BenchLane is the benchmark lane, nil when benchmarks were skipped.
	BenchLane *lane.Lane
	// TotalElapsed is the wall-clock time of the whole run.
	TotalElapsed time.Duration
}

// Totals counts terminal check statuses across the non-bench lanes.
func (s *Summary) Totals() (passed, failed, warned int) {
	for _, l := range s.Lanes {
		for _, c := range l.Checks {
			switch c.Status {
			case lane.StatusPassed:
				passed++
			case lane.StatusFailed:
				failed++
			case lane.StatusWarned:
				warned++
			}
		}
	}
	return passed, failed, warned
}

// BenchCounts counts warn and fail classifications on the bench lane's
// comparison outcome.
func (s *Summary) BenchCounts() (warns, fails int) {
	if s.BenchLane == nil || s.BenchLane.Bench == nil || s.BenchLane.Bench.Outcome == nil {
		return 0, 0
	}
	for _, c := range s.BenchLane.Bench.Outcome.Results {
		switch c.Status {
		case bench.CompareWarn:
			warns++
		case bench.CompareFail:
			fails++
		}
	}
	return warns, fails
}

// benchOK reports whether the bench lane blocks the verdict.
func (s *Summary) benchOK() bool {
	if s.BenchLane == nil {
		return true
	}
	if _, fails := s.BenchCounts(); fails > 0 {
		return false
	}
	return !s.BenchLane.Failed
}

// AllPassed reports the overall verdict: zero failed checks and a clean
// benchmark lane.
func (s *Summary) AllPassed() bool {
	_, failed, _ := s.Totals()
	return failed == 0 && s.benchOK()
}

// FirstFailure returns the first failed check that captured output, in lane
// order then check order, with the bench lane scanned last. Returns nil when
// no failed check has output.
func (s *Summary) FirstFailure() *lane.Check {
	all := s.Lanes
	if s.BenchLane != nil {
		all = append(append([]*lane.Lane{}, s.Lanes...), s.BenchLane)
	}
	for _, l := range all {
		for _, c := range l.Checks {
			if c.Status == lane.StatusFailed && strings.TrimSpace(c.Output) != "" {
				return c
			}
		}
	}
	return nil
}
