// Package sim provides the core set-associative cache simulation engine.
//
// # Reading Guide
//
// Start with these three files to understand the engine:
//   - cache.go: address decomposition (tag / set index / block offset), the
//     per-set line arrays, and the Access state machine
//   - policy.go: victim selection for the two replacement policies (FIFO
//     insertion cursor, LRU least-recently-used scan)
//   - stats.go: the access statistics collector and its hit-rate series
//
// # Architecture
//
// The sim package owns the cache state machine; I/O lives in sub-packages:
//   - sim/trace/: hex address-trace ingestion
//   - sim/workload/: synthetic address-trace generation from YAML specs
//   - sim/recording/: per-access SQLite recording
//   - sim/plot/: hit-rate chart rendering
//
// Cache.Access is a pure state transition: it returns an Outcome and never
// logs or records. The Simulator driver fans each Outcome out to the
// statistics collector, the recorder, and the log, in that order, so the
// cache core stays free of I/O concerns.
//
// The replacement policy set is closed. Victim selection dispatches on the
// Policy enum with a switch in policy.go; there is no policy interface to
// implement. Adding a policy means extending the enum, ParsePolicy, and
// that switch.
package sim
