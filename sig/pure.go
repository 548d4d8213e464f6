package sig

import (
	"io"

	"github.com/prooflab/sigil/fact"
	"github.com/prooflab/sigil/render"
	"github.com/prooflab/sigil/theory"
	"github.com/prooflab/sigil/wire"
)

// Pure is the data-only signature: the unique-instance fact symbols
// plus the theory descriptor. It is a self-contained value — it never
// references a process and is safe to copy, store, and compare.
//
// Pure values are immutable. With* methods return modified copies.
type Pure struct {
	uniqueInsts fact.TagSet
	th          theory.Descriptor
}

// Empty returns the signature with no unique-instance facts and the
// minimal theory.
func Empty() Pure {
	return Pure{}
}

// New builds a signature from parts.
func New(uniqueInsts fact.TagSet, th theory.Descriptor) Pure {
	return Pure{uniqueInsts: uniqueInsts, th: th}
}

// UniqueInsts returns the unique-instance fact symbols.
func (p Pure) UniqueInsts() fact.TagSet {
	return p.uniqueInsts
}

// Theory returns the theory descriptor.
func (p Pure) Theory() theory.Descriptor {
	return p.th
}

// WithUniqueInst returns a copy that also declares t unique-instance.
func (p Pure) WithUniqueInst(t fact.Tag) Pure {
	p.uniqueInsts = p.uniqueInsts.Insert(t)
	return p
}

// WithTheory returns a copy with the theory replaced by th.
func (p Pure) WithTheory(th theory.Descriptor) Pure {
	p.th = th
	return p
}

// Equal reports structural equality over (uniqueInsts, theory).
func (p Pure) Equal(o Pure) bool {
	return p.Compare(o) == 0
}

// Compare orders signatures lexicographically: unique-instance set
// first, then theory. The order is total and consistent with Equal.
func (p Pure) Compare(o Pure) int {
	if c := p.uniqueInsts.Compare(o.uniqueInsts); c != 0 {
		return c
	}
	return p.th.Compare(o.th)
}

// Encode writes the signature: unique-instance set, then theory.
func (p Pure) Encode(w io.Writer) error {
	ww := wire.NewWriter(w)
	if err := p.uniqueInsts.Encode(ww); err != nil {
		return err
	}
	return p.th.Encode(ww)
}

// DecodePure reads a signature written by Encode. Decoding an
// encoding of p yields a value equal to p.
func DecodePure(r io.Reader) (Pure, error) {
	rr := wire.NewReader(r)
	return decodePure(rr)
}

func decodePure(rr *wire.Reader) (Pure, error) {
	insts, err := fact.DecodeTagSet(rr)
	if err != nil {
		return Pure{}, err
	}
	th, err := theory.Decode(rr)
	if err != nil {
		return Pure{}, err
	}
	return Pure{uniqueInsts: insts, th: th}, nil
}

// Render pretty-prints the signature. The unique-instance block
// appears iff the set is non-empty; the builtin block appears iff
// Diffie-Hellman is enabled. An empty signature renders as the empty
// document.
func (p Pure) Render() render.Doc {
	d := render.Empty()
	if !p.uniqueInsts.IsEmpty() {
		d = d.Block(render.Labeled("unique_insts", render.CommaSep(p.uniqueInsts.Strings())))
	}
	if p.th.Builtins().Has(theory.DiffieHellman) {
		d = d.Block(render.Labeled("builtin", "diffie-hellman"))
	}
	return d
}

// String renders the signature with plain styles.
func (p Pure) String() string {
	return p.Render().String()
}
