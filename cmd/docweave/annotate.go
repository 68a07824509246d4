package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dshills/docweave/internal/catalog"
	"github.com/dshills/docweave/internal/discover"
	"github.com/dshills/docweave/internal/facts"
	"github.com/dshills/docweave/internal/guard"
	"github.com/dshills/docweave/internal/pipeline"
	"github.com/dshills/docweave/internal/progress"
	"github.com/dshills/docweave/internal/scanner"
	"github.com/dshills/docweave/internal/synth"
	"github.com/dshills/docweave/internal/writer"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate",
	Short: "Process one batch of units and exit",
	Long: `Annotate processes exactly one batch from the durable queue, then
returns. Re-invocation resumes from the persisted queue; when the queue is
empty the command reports a drained run and exits cleanly.`,
	RunE: runAnnotate,
}

func init() {
	annotateCmd.Flags().IntVarP(&flagBatch, "batch-size", "n", 0, "units per batch (overrides config)")
	rootCmd.AddCommand(annotateCmd)
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	disc := discover.New(cfg.Root, discover.Options{
		IncludeTests:  cfg.IncludeTests,
		IncludeVendor: cfg.IncludeVendor,
	})
	ids, err := disc.Enumerate()
	if err != nil {
		return fmt.Errorf("discover units: %w", err)
	}
	fingerprint := discover.Fingerprint(ids)

	storePath, fingerprintPath := statePaths(cfg)
	if err := os.MkdirAll(filepath.Dir(storePath), 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	store := progress.Open(storePath, fingerprintPath)
	reset, err := store.Initialize(ids, fingerprint)
	if err != nil {
		return fmt.Errorf("initialize progress store: %w", err)
	}
	if reset {
		slog.Info("discovery changed, progress store reinitialized",
			"units", len(ids), "module", disc.ModulePath())
	}

	runner := pipeline.New(cfg.Root, pipeline.Deps{
		Store:   store,
		Scanner: scanner.New(),
		Extractors: []pipeline.Extractor{
			facts.NewEffects(cfg.Recognizers),
			facts.NewRuntime(cfg.Recognizers),
		},
		Cataloger: catalog.New(disc.ModulePath()),
		Synth:     synth.New(synth.Templates(cfg.Templates), cfg.Marker),
		Guard:     guard.New(),
		Writer:    writer.New(),
	}, slog.Default())

	summary, err := runner.RunBatch(ctx, cfg.BatchSize)
	if err != nil {
		return err
	}

	if flagJSON {
		return json.NewEncoder(os.Stdout).Encode(summary)
	}
	printSummary(summary, store.Summary())
	return nil
}

// printSummary renders the run and store state for humans
func printSummary(summary *pipeline.RunSummary, store progress.Summary) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()

	fmt.Printf("\n%s\n\n", cyan("=== docweave run "+summary.RunID+" ==="))

	if summary.Drained {
		fmt.Printf("  %s\n\n", gray("Queue is empty; nothing to do."))
		return
	}

	fmt.Printf("  Written:   %s\n", green(summary.Written))
	fmt.Printf("  Unchanged: %s\n", gray(summary.Unchanged))
	fmt.Printf("  Skipped:   %s\n", gray(summary.Skipped))
	if summary.Rejected > 0 {
		fmt.Printf("  Rejected:  %s\n", red(summary.Rejected))
	}
	if summary.Errored > 0 {
		fmt.Printf("  Errors:    %s\n", red(summary.Errored))
	}
	fmt.Printf("  Duration:  %v\n\n", summary.Duration.Round(time.Millisecond))

	fmt.Printf("  %s %d pending, %d done, %d skipped, %d errors (%d queued)\n\n",
		yellow("Store:"), store.Pending, store.Done, store.Skipped, store.Errors, store.QueueLength)
}
