package bench

// Drift thresholds in percent. A benchmark slower than its baseline by more
// than WarnPct is flagged, by more than FailPct it fails the run.
const (
	WarnPct = 15
	FailPct = 50
)

// CompareStatus classifies one benchmark against its baseline.
type CompareStatus int

const (
	// ComparePass indicates drift within the warning threshold.
	ComparePass CompareStatus = iota
	// CompareWarn indicates drift above WarnPct but within FailPct.
	CompareWarn
	// CompareFail indicates drift above FailPct.
	CompareFail
	// CompareNew indicates the benchmark has no baseline entry.
	CompareNew
)

// String returns the string representation of a CompareStatus.
func (s CompareStatus) String() string {
	switch s {
	case ComparePass:
		return "pass"
	case CompareWarn:
		return "warn"
	case CompareFail:
		return "fail"
	case CompareNew:
		return "new"
	default:
		return "unknown"
	}
}

// Comparison is one benchmark's drift against the baseline. BaseNs and
// PctChange are meaningful only when Status is not CompareNew.
type Comparison struct {
	Name      string
	MeanNs    float64
	BaseNs    float64
	PctChange float64
	Status    CompareStatus
}

// Outcome aggregates a full baseline comparison.
type Outcome struct {
	Results         []Comparison
	HasWarn         bool
	HasFail         bool
	BaselineVersion string
}

// Report bundles what the benchmark lane's post-processing produced: the raw
// measurements and, when a baseline exists, the comparison against it.
type Report struct {
	Results []Result
	Outcome *Outcome
}

// Compare classifies current results against the most recent usable baseline
// entry. When the last entry matches currentVersion and an older entry
// exists, the older one is used so a re-run does not compare against its own
// recording. Returns nil when the history holds no usable baseline.
func Compare(current []Result, history []Entry, currentVersion string) *Outcome {
	if len(history) == 0 {
		return nil
	}

	baseline := history[len(history)-1]
	if baseline.Version == currentVersion && len(history) > 1 {
		baseline = history[len(history)-2]
	}
	if len(baseline.Benchmarks) == 0 {
		return nil
	}

	out := &Outcome{BaselineVersion: baseline.Version}
	for _, r := range current {
		base, ok := baseline.Benchmarks[r.Name]
		if !ok {
			out.Results = append(out.Results, Comparison{
				Name:   r.Name,
				MeanNs: r.MeanNs,
				Status: CompareNew,
			})
			continue
		}

		pct := 0.0
		if base > 0 {
			pct = (r.MeanNs - base) / base * 100
		}
		status := ComparePass
		switch {
		case pct > FailPct:
			status = CompareFail
			out.HasFail = true
		case pct > WarnPct:
			status = CompareWarn
			out.HasWarn = true
		}
		out.Results = append(out.Results, Comparison{
			Name:      r.Name,
			MeanNs:    r.MeanNs,
			BaseNs:    base,
			PctChange: pct,
			Status:    status,
		})
	}

	return out
}
