package progress

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/docweave/pkg/types"
)

func newTestStore(t *testing.T) (*Store, string, string) {
	t.Helper()
	dir := t.TempDir()
	statePath := filepath.Join(dir, "progress.json")
	fingerprintPath := filepath.Join(dir, "fingerprint")
	return Open(statePath, fingerprintPath), statePath, fingerprintPath
}

var testIDs = []string{"pkg/a/a.go", "pkg/b/b.go", "main.go"}

func TestInitialize_FreshStore(t *testing.T) {
	store, _, fingerprintPath := newTestStore(t)

	reset, err := store.Initialize(testIDs, "fp-1")
	require.NoError(t, err)
	assert.True(t, reset)

	summary := store.Summary()
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 3, summary.Pending)
	assert.Equal(t, 3, summary.QueueLength)

	data, err := os.ReadFile(fingerprintPath)
	require.NoError(t, err)
	assert.Equal(t, "fp-1\n", string(data))
}

func TestInitialize_UnchangedFingerprintPreservesState(t *testing.T) {
	store, statePath, fingerprintPath := newTestStore(t)

	_, err := store.Initialize(testIDs, "fp-1")
	require.NoError(t, err)
	_, err = store.NextBatch(1)
	require.NoError(t, err)
	require.NoError(t, store.Mark("pkg/a/a.go", types.StatusDone))

	// A new process over the same fingerprint sees the state verbatim
	reopened := Open(statePath, fingerprintPath)
	reset, err := reopened.Initialize(testIDs, "fp-1")
	require.NoError(t, err)
	assert.False(t, reset)

	status, ok := reopened.StatusOf("pkg/a/a.go")
	require.True(t, ok)
	assert.Equal(t, types.StatusDone, status)
	assert.Equal(t, 2, reopened.QueueLength())
}

func TestInitialize_ChangedFingerprintResets(t *testing.T) {
	store, statePath, fingerprintPath := newTestStore(t)

	_, err := store.Initialize(testIDs, "fp-1")
	require.NoError(t, err)
	_, err = store.NextBatch(2)
	require.NoError(t, err)
	require.NoError(t, store.Mark("pkg/a/a.go", types.StatusDone))
	require.NoError(t, store.Mark("pkg/b/b.go", types.StatusError))

	newIDs := []string{"pkg/a/a.go", "pkg/c/c.go"}
	reopened := Open(statePath, fingerprintPath)
	reset, err := reopened.Initialize(newIDs, "fp-2")
	require.NoError(t, err)
	assert.True(t, reset)

	// Every current id is pending again; done/skipped cleared; the error
	// unit is eligible for reprocessing.
	summary := reopened.Summary()
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 2, summary.Pending)
	assert.Equal(t, 0, summary.Done)
	assert.Equal(t, 0, summary.Errors)
	assert.Equal(t, 2, summary.QueueLength)

	_, known := reopened.StatusOf("pkg/b/b.go")
	assert.False(t, known, "stale ids leave the status domain on reset")
}

func TestNextBatch_PersistsShrunkQueueImmediately(t *testing.T) {
	store, statePath, fingerprintPath := newTestStore(t)
	ids := []string{"a.go", "b.go", "c.go", "d.go", "e.go"}
	_, err := store.Initialize(ids, "fp-1")
	require.NoError(t, err)

	batch, err := store.NextBatch(2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.go", "b.go"}, batch)

	// Simulate a crash after the pop, before any mark: a fresh process
	// sees the shrunk queue, and the popped ids are still pending but
	// absent from queue, done, and skipped. This is the documented crash
	// window, not content loss.
	crashed := Open(statePath, fingerprintPath)
	require.NoError(t, crashed.Load())

	assert.Equal(t, 3, crashed.QueueLength())
	for _, id := range batch {
		status, ok := crashed.StatusOf(id)
		require.True(t, ok)
		assert.Equal(t, types.StatusPending, status)
	}

	raw, err := os.ReadFile(statePath)
	require.NoError(t, err)
	var onDisk struct {
		Queue   []string `json:"queue"`
		Done    []string `json:"done"`
		Skipped []string `json:"skipped"`
	}
	require.NoError(t, json.Unmarshal(raw, &onDisk))
	assert.Equal(t, []string{"c.go", "d.go", "e.go"}, onDisk.Queue)
	assert.Empty(t, onDisk.Done)
	assert.Empty(t, onDisk.Skipped)
}

func TestNextBatch_DrainsQueue(t *testing.T) {
	store, _, _ := newTestStore(t)
	_, err := store.Initialize([]string{"a.go"}, "fp-1")
	require.NoError(t, err)

	batch, err := store.NextBatch(5)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.go"}, batch)

	batch, err = store.NextBatch(5)
	require.NoError(t, err)
	assert.Empty(t, batch)
}

func TestMark_StatusTransitions(t *testing.T) {
	store, _, _ := newTestStore(t)
	_, err := store.Initialize(testIDs, "fp-1")
	require.NoError(t, err)
	_, err = store.NextBatch(3)
	require.NoError(t, err)

	require.NoError(t, store.Mark("pkg/a/a.go", types.StatusDone))
	require.NoError(t, store.Mark("pkg/b/b.go", types.StatusSkipped))
	require.NoError(t, store.Mark("main.go", types.StatusError))

	summary := store.Summary()
	assert.Equal(t, 1, summary.Done)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 1, summary.Errors)
	assert.Equal(t, 0, summary.Pending)
}

func TestMark_RejectsUnknownUnitAndNonTerminalStatus(t *testing.T) {
	store, _, _ := newTestStore(t)
	_, err := store.Initialize(testIDs, "fp-1")
	require.NoError(t, err)

	assert.Error(t, store.Mark("ghost.go", types.StatusDone))
	assert.Error(t, store.Mark("main.go", types.StatusPending))
}

func TestMark_PersistsEveryCall(t *testing.T) {
	store, statePath, fingerprintPath := newTestStore(t)
	_, err := store.Initialize(testIDs, "fp-1")
	require.NoError(t, err)
	_, err = store.NextBatch(3)
	require.NoError(t, err)

	require.NoError(t, store.Mark("pkg/a/a.go", types.StatusDone))

	// Unit-granularity durability: a reader between marks sees the mark
	reopened := Open(statePath, fingerprintPath)
	require.NoError(t, reopened.Load())
	status, ok := reopened.StatusOf("pkg/a/a.go")
	require.True(t, ok)
	assert.Equal(t, types.StatusDone, status)
	assert.Equal(t, 1, reopened.Summary().Done)
}

func TestStoreFileFormat(t *testing.T) {
	store, statePath, _ := newTestStore(t)
	_, err := store.Initialize([]string{"a.go", "b.go"}, "fp-1")
	require.NoError(t, err)
	_, err = store.NextBatch(1)
	require.NoError(t, err)
	require.NoError(t, store.Mark("a.go", types.StatusDone))

	raw, err := os.ReadFile(statePath)
	require.NoError(t, err)

	var record map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &record))
	for _, field := range []string{"queue", "done", "skipped", "status"} {
		assert.Contains(t, record, field)
	}
}

func TestRequeue_RestoresQueueHeadAndPersists(t *testing.T) {
	store, statePath, fingerprintPath := newTestStore(t)
	ids := []string{"a.go", "b.go", "c.go", "d.go"}
	_, err := store.Initialize(ids, "fp-1")
	require.NoError(t, err)

	batch, err := store.NextBatch(3)
	require.NoError(t, err)
	require.Equal(t, []string{"a.go", "b.go", "c.go"}, batch)
	require.NoError(t, store.Mark("a.go", types.StatusDone))

	require.NoError(t, store.Requeue(batch[1:]))

	// Requeued ids precede the untouched tail, and the order survives a
	// fresh process.
	reopened := Open(statePath, fingerprintPath)
	require.NoError(t, reopened.Load())
	next, err := reopened.NextBatch(3)
	require.NoError(t, err)
	assert.Equal(t, []string{"b.go", "c.go", "d.go"}, next)
}

func TestRequeue_RejectsNonPendingAndUnknownUnits(t *testing.T) {
	store, _, _ := newTestStore(t)
	_, err := store.Initialize(testIDs, "fp-1")
	require.NoError(t, err)
	_, err = store.NextBatch(1)
	require.NoError(t, err)
	require.NoError(t, store.Mark("pkg/a/a.go", types.StatusDone))

	assert.Error(t, store.Requeue([]string{"pkg/a/a.go"}))
	assert.Error(t, store.Requeue([]string{"ghost.go"}))
	assert.NoError(t, store.Requeue(nil))
	assert.Equal(t, 2, store.QueueLength())
}
