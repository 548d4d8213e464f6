package sig

import (
	"context"
	"io"

	"github.com/prooflab/sigil"
	"github.com/prooflab/sigil/fact"
	"github.com/prooflab/sigil/render"
	"github.com/prooflab/sigil/wire"
)

// Live is the process-bound signature: the unique-instance fact
// symbols plus a handle to a running engine configured with the
// signature's theory. The live connection has no semantic identity —
// equality, ordering, and rendering are defined by projecting to Pure.
//
// Copying a Live does not copy the process; promote the demoted form
// again to get an independent engine. Nothing shuts the engine down
// implicitly: call Shutdown.
type Live struct {
	uniqueInsts fact.TagSet
	handle      sigil.Handle
}

// Promote spawns an engine at path configured with p's theory and
// binds it to p's unique-instance set. Promotion is an external,
// fallible action: on any spawn failure no Live value is produced.
func Promote(ctx context.Context, sp sigil.Spawner, path string, p Pure) (Live, error) {
	h, err := sp.Spawn(ctx, path, p.Theory())
	if err != nil {
		return Live{}, err
	}
	return Live{uniqueInsts: p.UniqueInsts(), handle: h}, nil
}

// Demote projects the signature back to its pure form by extracting
// the descriptor recorded in the handle. It never fails and does not
// affect the running engine.
func (l Live) Demote() Pure {
	return New(l.uniqueInsts, l.handle.Descriptor())
}

// UniqueInsts returns the unique-instance fact symbols.
func (l Live) UniqueInsts() fact.TagSet {
	return l.uniqueInsts
}

// Handle returns the engine handle.
func (l Live) Handle() sigil.Handle {
	return l.handle
}

// Equal reports equality of the demoted forms. Two live signatures
// backed by different processes are equal iff their projections are.
func (l Live) Equal(o Live) bool {
	return l.Demote().Equal(o.Demote())
}

// Compare orders by the demoted forms.
func (l Live) Compare(o Live) int {
	return l.Demote().Compare(o.Demote())
}

// Encode writes the executable path recorded in the handle, then the
// demoted pure signature.
func (l Live) Encode(w io.Writer) error {
	ww := wire.NewWriter(w)
	if err := ww.String(l.handle.Path()); err != nil {
		return err
	}
	return l.Demote().Encode(w)
}

// DecodeLive reads a path and a pure signature written by Encode and
// promotes the pure signature via sp. Decoding therefore spawns a
// fresh engine process; the executable must be reachable at the
// decoded path, and spawn failures surface as decode failures.
func DecodeLive(ctx context.Context, r io.Reader, sp sigil.Spawner) (Live, error) {
	rr := wire.NewReader(r)
	path, err := rr.String()
	if err != nil {
		return Live{}, err
	}
	p, err := decodePure(rr)
	if err != nil {
		return Live{}, err
	}
	return Promote(ctx, sp, path, p)
}

// Render pretty-prints the signature. Unlike the pure rendering,
// which only checks the Diffie-Hellman flag, a live signature can ask
// its engine for the complete theory rendering and emits that.
func (l Live) Render(ctx context.Context) (render.Doc, error) {
	d := render.Empty()
	if !l.uniqueInsts.IsEmpty() {
		d = d.Block(render.Labeled("unique_insts", render.CommaSep(l.uniqueInsts.Strings())))
	}
	text, err := l.handle.TheoryText(ctx)
	if err != nil {
		return render.Doc{}, err
	}
	return d.Block(text), nil
}

// Shutdown terminates the engine behind the handle.
func (l Live) Shutdown(ctx context.Context) error {
	return l.handle.Shutdown(ctx)
}
