package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/voxelforge/prepush/internal/bench"
	"github.com/voxelforge/prepush/internal/config"
	"github.com/voxelforge/prepush/internal/git"
	"github.com/voxelforge/prepush/internal/project"
	"github.com/voxelforge/prepush/internal/report"
)

var baselineCmd = &cobra.Command{
	Use:   "baseline [show|record|reset]",
	Short: "Show or reset the benchmark baseline history",
	Long: `Manage the benchmark baseline history.

Benchmark means are recorded per library version; later runs compare
against the most recent entry and flag drift beyond the thresholds.

Commands:
  prepush baseline         # Show recorded history
  prepush baseline show    # Show recorded history
  prepush baseline record  # Record current criterion results
  prepush baseline reset   # Delete the history file`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		sub := "show"
		if len(args) > 0 {
			sub = args[0]
		}

		cfg := mustLoadConfig()
		switch sub {
		case "show":
			showBaseline(cfg)
		case "record":
			recordBaseline(cfg)
		case "reset":
			resetBaseline(cfg)
		default:
			fmt.Fprintf(os.Stderr, "Unknown subcommand: %s\n", sub)
			fmt.Fprintln(os.Stderr, "Use: show, record, or reset")
			os.Exit(1)
		}
	},
}

// mustLoadConfig resolves the workspace root and loads the config,
// exiting on failure.
func mustLoadConfig() *config.Config {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	root, err := project.FindRoot(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.Load(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func showBaseline(cfg *config.Config) {
	history := bench.LoadHistory(cfg.BaselineFile)
	if len(history) == 0 {
		fmt.Println("No baseline recorded yet.")
		fmt.Println("Run 'prepush baseline record' after a benchmark run to record one.")
		return
	}

	fmt.Printf("Baseline history (%d entries):\n", len(history))
	for _, entry := range history {
		fmt.Printf("  v%-10s %s  %s  (%d benchmarks)\n",
			entry.Version, entry.Timestamp, entry.Commit, len(entry.Benchmarks))
	}

	last := history[len(history)-1]
	fmt.Printf("\nCurrent baseline (v%s):\n", last.Version)
	names := make([]string, 0, len(last.Benchmarks))
	for name := range last.Benchmarks {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-40s %s\n", name, report.FmtNs(last.Benchmarks[name]))
	}
}

func recordBaseline(cfg *config.Config) {
	results := bench.Extract(cfg.CriterionDir)
	if len(results) == 0 {
		fmt.Fprintln(os.Stderr, "No criterion results found.")
		fmt.Fprintln(os.Stderr, "Run 'cargo bench' first to produce estimates.")
		os.Exit(1)
	}

	version := project.CargoVersion(cfg.RootDir)
	commit := "unknown"
	if head, err := git.NewRunner(cfg.RootDir).ShortHead(); err == nil {
		commit = head
	}

	msg, err := bench.Record(cfg.BaselineFile, version, commit, results)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error recording baseline: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(msg)
}

func resetBaseline(cfg *config.Config) {
	if _, err := os.Stat(cfg.BaselineFile); os.IsNotExist(err) {
		fmt.Println("No baseline to delete.")
		return
	}
	if err := bench.Reset(cfg.BaselineFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error deleting baseline: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Baseline deleted.")
}
