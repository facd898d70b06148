package bench

import (
	"testing"
)

func TestCompareStatus_String(t *testing.T) {
	tests := []struct {
		status CompareStatus
		want   string
	}{
		{ComparePass, "pass"},
		{CompareWarn, "warn"},
		{CompareFail, "fail"},
		{CompareNew, "new"},
		{CompareStatus(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.status.String(); got != tt.want {
				t.Errorf("String() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCompare_NoHistory(t *testing.T) {
	out := Compare([]Result{{Name: "a", MeanNs: 100}}, nil, "1.0.0")
	if out != nil {
		t.Errorf("Compare() = %+v, want nil without history", out)
	}
}

func TestCompare_EmptyBaselineBenchmarks(t *testing.T) {
	history := []Entry{{Version: "0.9.0", Benchmarks: map[string]float64{}}}

	out := Compare([]Result{{Name: "a", MeanNs: 100}}, history, "1.0.0")
	if out != nil {
		t.Errorf("Compare() = %+v, want nil for empty baseline", out)
	}
}

func TestCompare_Classification(t *testing.T) {
	history := []Entry{{
		Version:    "0.9.0",
		Benchmarks: map[string]float64{"parse": 100},
	}}

	tests := []struct {
		name     string
		meanNs   float64
		want     CompareStatus
		wantWarn bool
		wantFail bool
	}{
		{"faster", 80, ComparePass, false, false},
		{"unchanged", 100, ComparePass, false, false},
		{"at warn threshold", 115, ComparePass, false, false},
		{"just above warn", 115.2, CompareWarn, true, false},
		{"at fail threshold", 150, CompareWarn, true, false},
		{"just above fail", 150.2, CompareFail, false, true},
		{"far above fail", 300, CompareFail, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Compare([]Result{{Name: "parse", MeanNs: tt.meanNs}}, history, "1.0.0")
			if out == nil {
				t.Fatal("Compare() = nil, want outcome")
			}
			if len(out.Results) != 1 {
				t.Fatalf("len(Results) = %d, want 1", len(out.Results))
			}
			if got := out.Results[0].Status; got != tt.want {
				t.Errorf("Status = %s, want %s", got, tt.want)
			}
			if out.HasWarn != tt.wantWarn {
				t.Errorf("HasWarn = %v, want %v", out.HasWarn, tt.wantWarn)
			}
			if out.HasFail != tt.wantFail {
				t.Errorf("HasFail = %v, want %v", out.HasFail, tt.wantFail)
			}
		})
	}
}

func TestCompare_UnknownBenchmarkIsNew(t *testing.T) {
	history := []Entry{{
		Version:    "0.9.0",
		Benchmarks: map[string]float64{"parse": 100},
	}}

	out := Compare([]Result{{Name: "render", MeanNs: 500}}, history, "1.0.0")
	if out == nil {
		t.Fatal("Compare() = nil, want outcome")
	}
	if got := out.Results[0].Status; got != CompareNew {
		t.Errorf("Status = %s, want new", got)
	}
	if out.HasWarn || out.HasFail {
		t.Error("new benchmarks should not raise warn or fail")
	}
}

func TestCompare_ZeroBaselineMean(t *testing.T) {
	history := []Entry{{
		Version:    "0.9.0",
		Benchmarks: map[string]float64{"parse": 0},
	}}

	out := Compare([]Result{{Name: "parse", MeanNs: 100}}, history, "1.0.0")
	if out == nil {
		t.Fatal("Compare() = nil, want outcome")
	}
	c := out.Results[0]
	if c.Status != ComparePass || c.PctChange != 0 {
		t.Errorf("got status %s pct %.1f, want pass with 0%% drift", c.Status, c.PctChange)
	}
}

func TestCompare_SkipsOwnRecording(t *testing.T) {
	history := []Entry{
		{Version: "0.9.0", Benchmarks: map[string]float64{"parse": 100}},
		{Version: "1.0.0", Benchmarks: map[string]float64{"parse": 200}},
	}

	// The current version already recorded an entry; drift must be measured
	// against the previous release, not the current run's own numbers.
	out := Compare([]Result{{Name: "parse", MeanNs: 200}}, history, "1.0.0")
	if out == nil {
		t.Fatal("Compare() = nil, want outcome")
	}
	if out.BaselineVersion != "0.9.0" {
		t.Errorf("BaselineVersion = %s, want 0.9.0", out.BaselineVersion)
	}
	if got := out.Results[0].Status; got != CompareFail {
		t.Errorf("Status = %s, want fail against the older baseline", got)
	}
}

func TestCompare_SingleEntryOwnVersion(t *testing.T) {
	history := []Entry{
		{Version: "1.0.0", Benchmarks: map[string]float64{"parse": 100}},
	}

	// With nothing older to fall back to, the sole entry is still usable.
	out := Compare([]Result{{Name: "parse", MeanNs: 100}}, history, "1.0.0")
	if out == nil {
		t.Fatal("Compare() = nil, want outcome")
	}
	if out.BaselineVersion != "1.0.0" {
		t.Errorf("BaselineVersion = %s, want 1.0.0", out.BaselineVersion)
	}
}

func TestCompare_MixedResults(t *testing.T) {
	history := []Entry{{
		Version: "0.9.0",
		Benchmarks: map[string]float64{
			"parse":  100,
			"render": 100,
		},
	}}

	current := []Result{
		{Name: "parse", MeanNs: 120},
		{Name: "render", MeanNs: 160},
		{Name: "encode", MeanNs: 50},
	}

	out := Compare(current, history, "1.0.0")
	if out == nil {
		t.Fatal("Compare() = nil, want outcome")
	}
	if !out.HasWarn {
		t.Error("HasWarn should be true for the 20% drift")
	}
	if !out.HasFail {
		t.Error("HasFail should be true for the 60% drift")
	}
	if len(out.Results) != 3 {
		t.Errorf("len(Results) = %d, want 3", len(out.Results))
	}
}
