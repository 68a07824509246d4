// Package progress implements the durable queue and status map that make
// batch runs resumable and crash tolerant.
//
// State lives in a single JSON file {queue, done, skipped, status} plus a
// one-line fingerprint file. Initialization is gated on the discovery
// fingerprint: while it is unchanged the persisted state is loaded
// verbatim; a mismatch resets every unit to pending and rebuilds the queue
// in discovery order.
//
// Durability is unit-granular: the queue is persisted immediately when a
// batch is popped, and the whole state is persisted after every mark. A
// run that stops early returns unstarted ids to the queue head via
// Requeue, so the known crash window is the gap between pop and mark on a
// hard crash only — ids popped but not yet marked survive as pending in
// the status map while absent from the queue. They are reclaimed by the
// next fingerprint change.
//
// The store assumes a single writer; no concurrent-writer protocol exists.
package progress
