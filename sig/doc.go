// Package sig provides the two representations of a protocol-analysis
// signature and the conversions between them.
//
// Pure is a plain value: comparable, orderable, serializable. Live
// binds the same data to a running engine process. Promote spawns an
// engine (fallible); Demote extracts the descriptor and leaves the
// process running (infallible). Live equality, ordering, and encoding
// are defined by projection onto Pure, so which process backs a live
// signature never matters semantically.
//
// Encoding a live signature persists the executable path plus the
// demoted pure form; decoding one respawns an engine, which is why
// DecodeLive takes a context and a Spawner while DecodePure takes
// neither.
package sig
