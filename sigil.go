package sigil

import (
	"context"

	"github.com/prooflab/sigil/theory"
)

// Handle is a live binding to a running rewriting-engine process.
// Path and Descriptor are pure accessors over state captured at spawn
// time and never touch the process. TheoryText talks to the process.
//
// A Handle is NOT safe for concurrent use from multiple goroutines.
// Either give each goroutine its own handle or serialize access
// externally.
type Handle interface {
	// Path returns the executable path the engine was started from.
	Path() string
	// Descriptor returns the theory the engine was configured with.
	Descriptor() theory.Descriptor
	// TheoryText asks the running engine for its full theory rendering.
	TheoryText(ctx context.Context) (string, error)
	// Shutdown asks the engine to exit and waits for the process.
	// There is no automatic cleanup when a handle becomes unreachable;
	// callers own the call to Shutdown.
	Shutdown(ctx context.Context) error
}

// Spawner starts rewriting-engine processes. The returned handle is
// fully configured for queries consistent with the supplied descriptor
// and records the originating path and descriptor for later pure
// extraction.
type Spawner interface {
	Spawn(ctx context.Context, path string, th theory.Descriptor) (Handle, error)
}
