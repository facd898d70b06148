package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/voxelforge/prepush/internal/config"
	"github.com/voxelforge/prepush/internal/exec"
	"github.com/voxelforge/prepush/internal/gate"
	"github.com/voxelforge/prepush/internal/git"
	"github.com/voxelforge/prepush/internal/lane"
	"github.com/voxelforge/prepush/internal/orchestrator"
	"github.com/voxelforge/prepush/internal/project"
	"github.com/voxelforge/prepush/internal/report"
)

var (
	flagSkipBench      bool
	flagBenchOnly      bool
	flagUpdateBaseline bool
	flagHeadless       bool
)

// errVerificationFailed marks a run whose summary already explained the
// failure; Execute exits 1 without printing anything further for it.
var errVerificationFailed = errors.New("verification failed")

var rootCmd = &cobra.Command{
	Use:   "prepush",
	Short: "Pre-push verification for the nucleation workspace",
	Long: `Run the pre-push verification lanes concurrently and print one
consolidated verdict.

Lanes:
  Native   cargo check across the feature matrix, cargo test, maturin build
  WASM     wasm-target check, bundle build, node smoke tests
  Quick    version consistency and API parity
  Bench    cargo bench with regression detection against a recorded baseline

A formatting gate (cargo fmt) runs first and auto-fixes when it can; the
run only aborts early when the formatter cannot converge.

Exit code 0 means ready to push.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runVerify,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errVerificationFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&flagSkipBench, "skip-bench", false, "Skip the benchmark lane")
	rootCmd.Flags().BoolVar(&flagBenchOnly, "bench-only", false, "Run only the benchmark lane")
	rootCmd.Flags().BoolVar(&flagUpdateBaseline, "update-baseline", false, "Force-record current benchmark results as the baseline")
	rootCmd.Flags().BoolVar(&flagHeadless, "headless", false, "Plain line output instead of the live display")

	rootCmd.AddCommand(baselineCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	totalStart := time.Now()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	root, err := project.FindRoot(cwd)
	if err != nil {
		return err
	}

	cfg, err := config.Load(root)
	if err != nil {
		return err
	}
	cfg.UpdateBaseline = flagUpdateBaseline

	runner := exec.NewRunner(cfg.CheckTimeout)
	out := report.NewRenderer(os.Stdout)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, stopping checks...")
		cancel()
	}()

	// Gate first; only a non-converging formatter aborts the run.
	gateStatus := gate.StatusSkipped
	var gateElapsed time.Duration
	if !flagBenchOnly {
		g := &gate.Gate{
			Dir:   root,
			Check: []string{"cargo", "fmt", "--", "--check"},
			Fix:   []string{"cargo", "fmt"},
		}
		gateStatus, gateElapsed, err = g.Run(ctx, runner)
		if err != nil {
			var convErr *gate.ConvergenceError
			if errors.As(err, &convErr) {
				fmt.Println()
				out.RenderGateFailure(convErr)
				return errVerificationFailed
			}
			return err
		}
	}

	fmt.Println()
	color.New(color.Bold).Println("  Nucleation Pre-Push Verification")
	fmt.Println()
	out.RenderGateLine(gateStatus, gateElapsed)
	fmt.Println()

	lanes, benchLane := orchestrator.BuildLanes(cfg, runner, flagSkipBench, flagBenchOnly)
	allLanes := append([]*lane.Lane{}, lanes...)
	if benchLane != nil {
		allLanes = append(allLanes, benchLane)
	}
	if len(allLanes) == 0 {
		fmt.Println("  Nothing to run.")
		return nil
	}

	var logger *orchestrator.DebugLogger
	if cfg.DebugLog {
		logger = orchestrator.NewDebugLoggerForRoot(root)
		defer logger.Close()
	}

	orch := orchestrator.New(cfg, runner, git.NewRunner(root), logger)

	if flagHeadless || !isTerminal(os.Stdout) {
		runHeadless(ctx, orch, allLanes)
	} else {
		if err := runWithTUI(ctx, cancel, orch, allLanes); err != nil {
			return err
		}
	}

	summary := &report.Summary{
		Lanes:        lanes,
		BenchLane:    benchLane,
		TotalElapsed: time.Since(totalStart),
	}
	out.Render(summary)

	if !summary.AllPassed() {
		return errVerificationFailed
	}
	return nil
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
