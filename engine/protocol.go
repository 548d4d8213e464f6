package engine

import (
	"fmt"
	"io"
	"strings"

	"github.com/prooflab/sigil/theory"
)

// Line protocol spoken over the engine's stdin/stdout. The engine is
// configured once at startup with a theory block and acks with "ok";
// any other ack line is a rejection and its text is the reason.
const (
	blockBegin    = "begin theory"
	blockEnd      = "end theory"
	ackOK         = "ok"
	cmdShowTheory = "show theory"
	cmdQuit       = "quit"
	endOfText     = "." // terminates multi-line responses
)

// writeTheoryBlock serializes th into the startup configuration block:
//
//	begin theory
//	builtin diffie-hellman
//	func h/1
//	func dec/2 private
//	end theory
func writeTheoryBlock(w io.Writer, th theory.Descriptor) error {
	var b strings.Builder
	b.WriteString(blockBegin)
	b.WriteByte('\n')
	for _, name := range th.Builtins().Names() {
		fmt.Fprintf(&b, "builtin %s\n", name)
	}
	for _, f := range th.FuncSyms() {
		fmt.Fprintf(&b, "func %s/%d", f.Name, f.Arity)
		if f.Private {
			b.WriteString(" private")
		}
		b.WriteByte('\n')
	}
	b.WriteString(blockEnd)
	b.WriteByte('\n')

	_, err := io.WriteString(w, b.String())
	return err
}
