// Package errors provides structured error types for the sigil library.
//
// Errors are categorized by Phase (where the error occurred) and Kind
// (error category). Spawn failures span PhaseSpawn and PhaseHandshake;
// wire-format failures use PhaseDecode. Decoding a live signature
// respawns an engine, so decode callers can see spawn-phase errors too.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindInvalidData).
//		Path("theory", "builtins").
//		Detail("unknown builtin bit 0x10").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.ExecutableMissing(path, cause)
//	err := errors.EngineRejected(path, response)
//
// All errors implement the standard error interface and support
// errors.Is/As.
package errors
