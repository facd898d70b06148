package report

import (
	"testing"
	"time"

	"github.com/voxelforge/prepush/internal/bench"
	"github.com/voxelforge/prepush/internal/lane"
)

func check(name string, status lane.Status, output string) *lane.Check {
	return &lane.Check{Name: name, Status: status, Elapsed: time.Second, Output: output}
}

func TestTotals_ExcludesBenchLane(t *testing.T) {
	s := &Summary{
		Lanes: []*lane.Lane{
			{Name: "Native", Checks: []*lane.Check{
				check("a", lane.StatusPassed, ""),
				check("b", lane.StatusFailed, "boom"),
				check("c", lane.StatusSkipped, ""),
			}},
			{Name: "Quick", Checks: []*lane.Check{
				check("d", lane.StatusWarned, ""),
			}},
		},
		BenchLane: &lane.Lane{Name: "Bench", Checks: []*lane.Check{
			check("bench", lane.StatusPassed, ""),
		}},
	}

	passed, failed, warned := s.Totals()
	if passed != 1 || failed != 1 || warned != 1 {
		t.Errorf("expected 1/1/1, got %d/%d/%d", passed, failed, warned)
	}
}

func TestAllPassed(t *testing.T) {
	passingLane := func() *lane.Lane {
		return &lane.Lane{Name: "Native", Checks: []*lane.Check{check("a", lane.StatusPassed, "")}}
	}
	failingLane := func() *lane.Lane {
		return &lane.Lane{Name: "Native", Failed: true, Checks: []*lane.Check{check("a", lane.StatusFailed, "x")}}
	}
	warnedLane := func() *lane.Lane {
		return &lane.Lane{Name: "Quick", Checks: []*lane.Check{check("a", lane.StatusWarned, "")}}
	}

	tests := []struct {
		name string
		s    *Summary
		want bool
	}{
		{
			"all pass no bench",
			&Summary{Lanes: []*lane.Lane{passingLane()}},
			true,
		},
		{
			"one failed check",
			&Summary{Lanes: []*lane.Lane{failingLane()}},
			false,
		},
		{
			"warnings do not block",
			&Summary{Lanes: []*lane.Lane{warnedLane()}},
			true,
		},
		{
			"bench lane failed",
			&Summary{
				Lanes:     []*lane.Lane{passingLane()},
				BenchLane: &lane.Lane{Name: "Bench", Failed: true},
			},
			false,
		},
		{
			"bench regression blocks",
			&Summary{
				Lanes: []*lane.Lane{passingLane()},
				BenchLane: &lane.Lane{Name: "Bench", Bench: &bench.Report{
					Outcome: &bench.Outcome{
						HasFail: true,
						Results: []bench.Comparison{{Name: "insert", Status: bench.CompareFail}},
					},
				}},
			},
			false,
		},
		{
			"bench warning passes",
			&Summary{
				Lanes: []*lane.Lane{passingLane()},
				BenchLane: &lane.Lane{Name: "Bench", Bench: &bench.Report{
					Outcome: &bench.Outcome{
						HasWarn: true,
						Results: []bench.Comparison{{Name: "insert", Status: bench.CompareWarn}},
					},
				}},
			},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.AllPassed(); got != tt.want {
				t.Errorf("AllPassed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBenchCounts(t *testing.T) {
	s := &Summary{
		BenchLane: &lane.Lane{Name: "Bench", Bench: &bench.Report{
			Outcome: &bench.Outcome{Results: []bench.Comparison{
				{Name: "a", Status: bench.ComparePass},
				{Name: "b", Status: bench.CompareWarn},
				{Name: "c", Status: bench.CompareWarn},
				{Name: "d", Status: bench.CompareFail},
				{Name: "e", Status: bench.CompareNew},
			}},
		}},
	}

	warns, fails := s.BenchCounts()
	if warns != 2 || fails != 1 {
		t.Errorf("expected 2 warns and 1 fail, got %d/%d", warns, fails)
	}
}

func TestFirstFailure_LaneOrder(t *testing.T) {
	s := &Summary{
		Lanes: []*lane.Lane{
			{Name: "Native", Checks: []*lane.Check{
				check("first", lane.StatusPassed, ""),
				check("native fail", lane.StatusFailed, "native output"),
			}},
			{Name: "WASM", Checks: []*lane.Check{
				check("wasm fail", lane.StatusFailed, "wasm output"),
			}},
		},
	}

	got := s.FirstFailure()
	if got == nil || got.Name != "native fail" {
		t.Fatalf("expected the native failure first, got %+v", got)
	}
}

func TestFirstFailure_SkipsEmptyOutput(t *testing.T) {
	s := &Summary{
		Lanes: []*lane.Lane{
			{Name: "Native", Checks: []*lane.Check{
				check("silent fail", lane.StatusFailed, "  \n"),
			}},
		},
		BenchLane: &lane.Lane{Name: "Bench", Checks: []*lane.Check{
			check("bench fail", lane.StatusFailed, "bench exploded"),
		}},
	}

	got := s.FirstFailure()
	if got == nil || got.Name != "bench fail" {
		t.Fatalf("expected the bench failure, got %+v", got)
	}
}

func TestFirstFailure_NoneFailed(t *testing.T) {
	s := &Summary{
		Lanes: []*lane.Lane{
			{Name: "Native", Checks: []*lane.Check{check("ok", lane.StatusPassed, "")}},
		},
	}

	if got := s.FirstFailure(); got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}
