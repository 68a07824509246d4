package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/docweave/pkg/types"
)

// Outcome is a unit's terminal pipeline state
type Outcome string

const (
	OutcomeSkipped   Outcome = "skipped"
	OutcomeWritten   Outcome = "written"
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeRejected  Outcome = "rejected"
	OutcomeError     Outcome = "error"
)

// Status maps the outcome to its durable progress status
func (o Outcome) Status() types.Status {
	switch o {
	case OutcomeSkipped:
		return types.StatusSkipped
	case OutcomeWritten, OutcomeUnchanged:
		return types.StatusDone
	default:
		return types.StatusError
	}
}

// UnitResult is the terminal result of one unit
type UnitResult struct {
	ID      string
	Outcome Outcome
	Err     error
}

// RunSummary describes one batch invocation
type RunSummary struct {
	RunID     string
	Results   []UnitResult
	Written   int
	Unchanged int
	Skipped   int
	Rejected  int
	Errored   int
	Duration  time.Duration

	// Drained is true when the queue was empty before this run
	Drained bool
}

// Processed returns the number of units this run handled
func (s *RunSummary) Processed() int {
	return len(s.Results)
}

// Deps wires the canonical stage implementations into a Runner
type Deps struct {
	Store      ProgressStore
	Scanner    Scanner
	Extractors []Extractor
	Cataloger  Cataloger
	Synth      Synthesizer
	Guard      Guard
	Writer     Writer
}

// Runner drives one unit at a time through the annotation stages
type Runner struct {
	root string
	deps Deps
	log  *slog.Logger
}

// New creates a Runner over the source root
func New(root string, deps Deps, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{root: root, deps: deps, log: logger}
}

// RunBatch pops one batch from the store and processes it sequentially,
// marking each unit's status before the next begins. Cancelling ctx stops
// before the next unit; the unit in flight always runs to a terminal state
// and the units not yet started return to the queue head.
func (r *Runner) RunBatch(ctx context.Context, batchSize int) (*RunSummary, error) {
	start := time.Now()
	summary := &RunSummary{RunID: uuid.NewString()}

	batch, err := r.deps.Store.NextBatch(batchSize)
	if err != nil {
		return nil, fmt.Errorf("pop batch: %w", err)
	}
	if len(batch) == 0 {
		summary.Drained = true
		summary.Duration = time.Since(start)
		r.log.Info("queue drained, nothing to process", "run_id", summary.RunID)
		return summary, nil
	}

	for i, id := range batch {
		if ctx.Err() != nil {
			// Units not yet started go back to the queue head, so
			// cancellation loses nothing.
			if err := r.deps.Store.Requeue(batch[i:]); err != nil {
				return nil, fmt.Errorf("requeue after cancellation: %w", err)
			}
			r.log.Warn("run cancelled, remaining units requeued",
				"run_id", summary.RunID, "requeued", len(batch)-i)
			break
		}

		result := r.processUnit(id)
		if err := r.deps.Store.Mark(id, result.Outcome.Status()); err != nil {
			return nil, fmt.Errorf("mark %s: %w", id, err)
		}
		r.record(summary, result)
	}

	summary.Duration = time.Since(start)
	r.log.Info("batch complete",
		"run_id", summary.RunID,
		"processed", summary.Processed(),
		"written", summary.Written,
		"unchanged", summary.Unchanged,
		"skipped", summary.Skipped,
		"rejected", summary.Rejected,
		"errors", summary.Errored,
		"queued", r.deps.Store.QueueLength(),
		"duration", summary.Duration)
	return summary, nil
}

// processUnit runs the per-unit state machine to a terminal outcome.
// Panics in any stage are confined to the unit and become OutcomeError.
func (r *Runner) processUnit(id string) (result UnitResult) {
	result = UnitResult{ID: id}
	defer func() {
		if v := recover(); v != nil {
			result.Outcome = OutcomeError
			result.Err = fmt.Errorf("panic processing %s: %v", id, v)
		}
	}()

	path := filepath.Join(r.root, filepath.FromSlash(id))

	original, err := os.ReadFile(path)
	if err != nil {
		result.Outcome = OutcomeError
		result.Err = &types.IOError{Unit: id, Op: "read", Err: err}
		return result
	}

	// Marker check happens before any analysis: previously annotated units
	// skip extraction and synthesis entirely.
	if r.deps.Synth.HasMarker(original) {
		result.Outcome = OutcomeSkipped
		return result
	}

	rec, err := r.deps.Scanner.Scan(id, original)
	if err != nil {
		result.Outcome = OutcomeError
		result.Err = err
		return result
	}

	bundle := types.NewFactBundle()
	for _, extractor := range r.deps.Extractors {
		fragment, err := extractor.Extract(original, rec)
		if err != nil {
			result.Outcome = OutcomeError
			result.Err = err
			return result
		}
		bundle.Merge(fragment)
	}

	entries := r.deps.Cataloger.Catalog(id, original, rec)

	candidate, err := r.deps.Synth.Apply(original, rec, bundle, entries)
	if err != nil {
		result.Outcome = OutcomeError
		result.Err = err
		return result
	}

	if err := r.deps.Guard.Accept(id, original, candidate); err != nil {
		result.Outcome = OutcomeRejected
		result.Err = err
		return result
	}

	wrote, err := r.deps.Writer.WriteOnce(path, candidate)
	if err != nil {
		result.Outcome = OutcomeError
		result.Err = &types.IOError{Unit: id, Op: "write", Err: err}
		return result
	}

	if wrote {
		result.Outcome = OutcomeWritten
	} else {
		result.Outcome = OutcomeUnchanged
	}
	return result
}

// record folds one unit result into the summary and logs it
func (r *Runner) record(summary *RunSummary, result UnitResult) {
	summary.Results = append(summary.Results, result)

	switch result.Outcome {
	case OutcomeWritten:
		summary.Written++
	case OutcomeUnchanged:
		summary.Unchanged++
	case OutcomeSkipped:
		summary.Skipped++
	case OutcomeRejected:
		summary.Rejected++
	case OutcomeError:
		summary.Errored++
	}

	switch result.Outcome {
	case OutcomeRejected:
		r.log.Warn("guard rejected candidate", "run_id", summary.RunID, "unit", result.ID, "error", result.Err)
	case OutcomeError:
		r.log.Error("unit failed", "run_id", summary.RunID, "unit", result.ID, "error", result.Err)
	default:
		r.log.Info("unit processed", "run_id", summary.RunID, "unit", result.ID, "outcome", string(result.Outcome))
	}
}
