package progress

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dshills/docweave/internal/writer"
	"github.com/dshills/docweave/pkg/types"
)

// Store is the durable queue + per-unit status map
type Store struct {
	path            string
	fingerprintPath string
	state           state
}

// state is the on-disk record
type state struct {
	Queue   []string                `json:"queue"`
	Done    []string                `json:"done"`
	Skipped []string                `json:"skipped"`
	Status  map[string]types.Status `json:"status"`
}

// Summary is the read-only view consumed by external status reporting
type Summary struct {
	Total       int `json:"total"`
	Pending     int `json:"pending"`
	Done        int `json:"done"`
	Skipped     int `json:"skipped"`
	Errors      int `json:"errors"`
	QueueLength int `json:"queue_length"`
}

// Open creates a Store over the given state and fingerprint files.
// Nothing is read until Initialize or Load.
func Open(statePath, fingerprintPath string) *Store {
	return &Store{
		path:            statePath,
		fingerprintPath: fingerprintPath,
		state:           state{Status: make(map[string]types.Status)},
	}
}

// Initialize prepares the store for a run over ids. When the persisted
// fingerprint equals fingerprint the existing state is loaded verbatim;
// otherwise the store resets: queue = ids, every status pending, done and
// skipped cleared, and the new fingerprint is persisted. Returns whether a
// reset occurred.
func (s *Store) Initialize(ids []string, fingerprint string) (bool, error) {
	persisted, err := s.readFingerprint()
	if err == nil && persisted == fingerprint {
		if err := s.Load(); err == nil {
			return false, nil
		}
		// State file missing or unreadable: rebuild from scratch
	}

	s.state = state{
		Queue:   append([]string(nil), ids...),
		Done:    []string{},
		Skipped: []string{},
		Status:  make(map[string]types.Status, len(ids)),
	}
	for _, id := range ids {
		s.state.Status[id] = types.StatusPending
	}

	if err := s.persist(); err != nil {
		return true, err
	}
	if err := writer.Replace(s.fingerprintPath, []byte(fingerprint+"\n")); err != nil {
		return true, fmt.Errorf("persist fingerprint: %w", err)
	}
	return true, nil
}

// Load reads the persisted state without fingerprint gating. Used by
// read-only consumers such as status reporting.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}
	var loaded state
	if err := json.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("decode progress state: %w", err)
	}
	if loaded.Status == nil {
		loaded.Status = make(map[string]types.Status)
	}
	s.state = loaded
	return nil
}

// NextBatch pops up to n ids from the queue head and persists the shrunk
// queue before returning. Popped ids stay pending in the status map until
// individually marked.
func (s *Store) NextBatch(n int) ([]string, error) {
	if n <= 0 || len(s.state.Queue) == 0 {
		return nil, nil
	}
	if n > len(s.state.Queue) {
		n = len(s.state.Queue)
	}

	batch := append([]string(nil), s.state.Queue[:n]...)
	s.state.Queue = append([]string(nil), s.state.Queue[n:]...)

	if err := s.persist(); err != nil {
		return nil, err
	}
	return batch, nil
}

// Requeue returns still-pending ids to the queue head in their original
// order and persists. Used when a run stops before reaching popped units.
func (s *Store) Requeue(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	for _, id := range ids {
		status, known := s.state.Status[id]
		if !known {
			return fmt.Errorf("requeue %s: unknown unit", id)
		}
		if status != types.StatusPending {
			return fmt.Errorf("requeue %s: status is %s, not pending", id, status)
		}
	}

	s.state.Queue = append(append([]string(nil), ids...), s.state.Queue...)
	return s.persist()
}

// Mark records a unit's terminal status and persists immediately.
// Done and skipped units are appended to their ordered lists; errors are
// recorded in the status map only.
func (s *Store) Mark(id string, status types.Status) error {
	if _, known := s.state.Status[id]; !known {
		return fmt.Errorf("mark %s: unknown unit", id)
	}
	if !status.Terminal() {
		return fmt.Errorf("mark %s: %s is not a terminal status", id, status)
	}

	s.state.Status[id] = status
	switch status {
	case types.StatusDone:
		s.state.Done = append(s.state.Done, id)
	case types.StatusSkipped:
		s.state.Skipped = append(s.state.Skipped, id)
	}

	return s.persist()
}

// StatusOf returns a unit's current status
func (s *Store) StatusOf(id string) (types.Status, bool) {
	status, ok := s.state.Status[id]
	return status, ok
}

// QueueLength returns the number of ids still queued
func (s *Store) QueueLength() int {
	return len(s.state.Queue)
}

// Summary returns counts by status for external reporting
func (s *Store) Summary() Summary {
	summary := Summary{
		Total:       len(s.state.Status),
		QueueLength: len(s.state.Queue),
	}
	for _, status := range s.state.Status {
		switch status {
		case types.StatusPending:
			summary.Pending++
		case types.StatusDone:
			summary.Done++
		case types.StatusSkipped:
			summary.Skipped++
		case types.StatusError:
			summary.Errors++
		}
	}
	return summary
}

// persist writes the state file atomically
func (s *Store) persist() error {
	data, err := json.MarshalIndent(&s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode progress state: %w", err)
	}
	if err := writer.Replace(s.path, append(data, '\n')); err != nil {
		return fmt.Errorf("persist progress state: %w", err)
	}
	return nil
}

// readFingerprint returns the persisted fingerprint line
func (s *Store) readFingerprint() (string, error) {
	data, err := os.ReadFile(s.fingerprintPath)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
