package orchestrator

import (
	"context"
	"time"

	"github.com/voxelforge/prepush/internal/bench"
	"github.com/voxelforge/prepush/internal/lane"
	"github.com/voxelforge/prepush/internal/project"
)

// runBenchLane executes the benchmark checks and then the regression
// post-processing pass, which can itself flip the lane to failed.
func (o *Orchestrator) runBenchLane(ctx context.Context, l *lane.Lane) {
	start := time.Now()
	l.Run(ctx, o.runner, o.notify(l))

	if !l.Failed {
		results := bench.Extract(o.cfg.CriterionDir)
		version := project.CargoVersion(o.cfg.RootDir)
		history := bench.LoadHistory(o.cfg.BaselineFile)
		outcome := bench.Compare(results, history, version)
		l.Bench = &bench.Report{Results: results, Outcome: outcome}

		if outcome != nil && outcome.HasFail {
			l.Failed = true
		}

		// Recording is not gated on the comparison outcome.
		if o.cfg.UpdateBaseline || bench.ShouldAutoRecord(o.cfg.BaselineFile, version) {
			msg, err := bench.Record(o.cfg.BaselineFile, version, o.shortHead(), results)
			if err != nil {
				o.logger.Log("bench: baseline record failed: %v", err)
			} else {
				o.logger.Log("bench: %s", msg)
			}
		}
	}

	l.Elapsed = time.Since(start)
}

// shortHead resolves the repository's short HEAD revision, or "unknown"
// when no repository or git binary is available.
func (o *Orchestrator) shortHead() string {
	if o.git == nil {
		return "unknown"
	}
	rev, err := o.git.ShortHead()
	if err != nil {
		return "unknown"
	}
	return rev
}
