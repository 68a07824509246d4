// Package pipeline drives units through the annotation stages.
//
// Each unit runs the same state machine: fetch, marker check, scan, fact
// extraction, catalog, synthesis, guard check, conditional write. Every
// terminal outcome is recorded in the Progress Store before the next unit
// starts, so the crash-recovery granularity is one source unit.
//
// Processing is strictly sequential and single-threaded. One unit's
// failure never aborts the batch, corrupts the store, or touches another
// unit's file; failures surface in the run summary.
//
// Stages are explicit interfaces with a fixed capability set. The runner
// depends only on those interfaces; one canonical implementation of each
// is selected at wiring time.
package pipeline
