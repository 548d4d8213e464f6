// Package engine binds to the external equational-reasoning engine.
//
// The engine is a separate process reached over stdin/stdout pipes.
// Spawning writes a theory configuration block and waits for a
// single-line ack; after that the handle can query the running engine
// for its full theory rendering. The protocol is line-oriented and
// synchronous: one request, one response, one logical owner per
// handle.
//
// Nothing terminates an engine process automatically. Shutdown is the
// only cleanup path; the Tracker exists so programs can account for
// every live handle and shut them all down on exit.
package engine
