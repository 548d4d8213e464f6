// Package sigil models the signature of a symbolic security-protocol
// analyzer: the algebraic symbols and fact declarations used to
// interpret terms, together with the binding to an external
// equational-reasoning engine that performs unification and
// normalization modulo that algebra.
//
// A signature exists in two representations. The pure form is a plain
// value: comparable, orderable, and serializable. The live form binds
// the same data to a running engine process. Conversion between them
// is explicit: promotion spawns an engine, demotion extracts the
// descriptor and leaves the process running.
//
// # Architecture Overview
//
//	sigil/       Root package with the Handle and Spawner interfaces
//	├── sig/     Pure and Live signatures, conversions, wire codec
//	├── theory/  Opaque equational-theory descriptor (builtins, symbols)
//	├── fact/    Fact tags (name/arity) and canonical tag sets
//	├── engine/  Process spawner, live handle, handle tracker
//	├── wire/    Binary encoding primitives
//	├── render/  Block document model for pretty-printing
//	└── errors/  Structured error types
//
// # Quick Start
//
// Build a pure signature and promote it against an engine binary:
//
//	p := sig.Empty().
//		WithTheory(theory.Minimal().WithBuiltins(theory.DiffieHellman)).
//		WithUniqueInst(fact.Tag{Name: "Fresh", Arity: 1})
//
//	eng := engine.New()
//	live, err := sig.Promote(ctx, eng.Spawner(), "/usr/local/bin/rewrited", p)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer live.Shutdown(ctx)
//
//	doc, err := live.Render(ctx)
//	fmt.Println(doc)
//
// Demoting recovers the pure form without touching the process:
//
//	p2 := live.Demote() // p2.Equal(p) == true
package sigil
