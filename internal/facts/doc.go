// Package facts extracts behavioral signals from a parsed source unit.
//
// Two independent, side-effect-free analyses run over (content, record):
//
//   - Effects: error production per declaration and I/O touchpoints,
//     classified against a recognizer table into media (files, network,
//     database, queue, accelerator).
//   - Runtime: configuration access and concurrency primitives, plus
//     per-declaration asynchronous entry point flags.
//
// Both return a types.FactBundle fragment; callers merge fragments key by
// key. Extraction is deterministic: the same inputs always yield the same
// bundle, and no extractor ever mutates the unit or the record.
//
// Classification is table-driven. Recognizer tables are injected data, not
// code, so deployments can extend what counts as, say, a queue touchpoint
// without rebuilding.
package facts
