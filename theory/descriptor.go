package theory

import (
	"sort"
	"strings"

	"github.com/prooflab/sigil/errors"
	"github.com/prooflab/sigil/wire"
)

// Builtins is a bitmask of optional equational theories the engine can
// be configured with.
type Builtins uint32

const (
	DiffieHellman Builtins = 1 << iota
	BilinearPairing
	Multiset
	Xor
)

// allBuiltins guards decoding against unknown bits.
const allBuiltins = DiffieHellman | BilinearPairing | Multiset | Xor

var builtinNames = []struct {
	bit  Builtins
	name string
}{
	{DiffieHellman, "diffie-hellman"},
	{BilinearPairing, "bilinear-pairing"},
	{Multiset, "multiset"},
	{Xor, "xor"},
}

// ParseBuiltin resolves a protocol builtin name such as
// "diffie-hellman" to its bit.
func ParseBuiltin(name string) (Builtins, error) {
	for _, bn := range builtinNames {
		if bn.name == name {
			return bn.bit, nil
		}
	}
	return 0, errors.NotFound(errors.PhaseConfig, "builtin", name)
}

// Has reports whether all bits in b are set.
func (bs Builtins) Has(b Builtins) bool {
	return bs&b == b
}

// Names returns the protocol names of the enabled builtins, in
// declaration order.
func (bs Builtins) Names() []string {
	var out []string
	for _, bn := range builtinNames {
		if bs.Has(bn.bit) {
			out = append(out, bn.name)
		}
	}
	return out
}

// FuncSym declares a user function symbol of the theory. Private
// symbols are not available to the adversary.
type FuncSym struct {
	Name    string
	Arity   int
	Private bool
}

// Compare orders function symbols by name, arity, then visibility.
func (f FuncSym) Compare(o FuncSym) int {
	if c := strings.Compare(f.Name, o.Name); c != 0 {
		return c
	}
	switch {
	case f.Arity < o.Arity:
		return -1
	case f.Arity > o.Arity:
		return 1
	}
	switch {
	case !f.Private && o.Private:
		return -1
	case f.Private && !o.Private:
		return 1
	}
	return 0
}

// Descriptor is an opaque, serializable description of an equational
// theory: enabled builtins plus user function symbols. It is a plain
// value with structural equality and a total order; the engine
// consumes it at spawn time and can reproduce it on demand.
//
// Descriptors are immutable. With* methods return modified copies.
type Descriptor struct {
	builtins Builtins
	funcs    []FuncSym // sorted by FuncSym.Compare, no duplicates
}

// Minimal returns the descriptor with no builtins and no user symbols.
func Minimal() Descriptor {
	return Descriptor{}
}

// Builtins returns the enabled builtin mask.
func (d Descriptor) Builtins() Builtins {
	return d.builtins
}

// FuncSyms returns the user function symbols in canonical order.
// The returned slice is a copy.
func (d Descriptor) FuncSyms() []FuncSym {
	out := make([]FuncSym, len(d.funcs))
	copy(out, d.funcs)
	return out
}

// WithBuiltins returns a copy with the given builtins enabled in
// addition to the receiver's.
func (d Descriptor) WithBuiltins(b Builtins) Descriptor {
	d.builtins |= b
	return d
}

// WithFuncSym returns a copy that also declares f.
func (d Descriptor) WithFuncSym(f FuncSym) Descriptor {
	i := sort.Search(len(d.funcs), func(i int) bool { return d.funcs[i].Compare(f) >= 0 })
	if i < len(d.funcs) && d.funcs[i] == f {
		return d
	}
	out := make([]FuncSym, 0, len(d.funcs)+1)
	out = append(out, d.funcs[:i]...)
	out = append(out, f)
	out = append(out, d.funcs[i:]...)
	d.funcs = out
	return d
}

// Equal reports structural equality.
func (d Descriptor) Equal(o Descriptor) bool {
	return d.Compare(o) == 0
}

// Compare orders descriptors by builtin mask, then function symbols
// lexicographically. The order is total and consistent with Equal.
func (d Descriptor) Compare(o Descriptor) int {
	switch {
	case d.builtins < o.builtins:
		return -1
	case d.builtins > o.builtins:
		return 1
	}
	n := len(d.funcs)
	if len(o.funcs) < n {
		n = len(o.funcs)
	}
	for i := 0; i < n; i++ {
		if c := d.funcs[i].Compare(o.funcs[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(d.funcs) < len(o.funcs):
		return -1
	case len(d.funcs) > len(o.funcs):
		return 1
	}
	return 0
}

// Encode writes the descriptor: builtin mask first, then the function
// symbols in canonical order.
func (d Descriptor) Encode(w *wire.Writer) error {
	if err := w.Uvarint(uint64(d.builtins)); err != nil {
		return err
	}
	if err := w.Uvarint(uint64(len(d.funcs))); err != nil {
		return err
	}
	for _, f := range d.funcs {
		if err := w.String(f.Name); err != nil {
			return err
		}
		if err := w.Uvarint(uint64(f.Arity)); err != nil {
			return err
		}
		if err := w.Bool(f.Private); err != nil {
			return err
		}
	}
	return nil
}

// Decode reads a descriptor written by Encode. Unknown builtin bits
// and duplicate symbols are rejected.
func Decode(r *wire.Reader) (Descriptor, error) {
	mask, err := r.Uvarint()
	if err != nil {
		return Descriptor{}, err
	}
	if mask&^uint64(allBuiltins) != 0 {
		return Descriptor{}, errors.InvalidData(errors.PhaseDecode, []string{"theory", "builtins"},
			"unknown builtin bits")
	}

	n, err := r.Count()
	if err != nil {
		return Descriptor{}, err
	}
	d := Descriptor{builtins: Builtins(mask)}
	for i := 0; i < n; i++ {
		name, err := r.String()
		if err != nil {
			return Descriptor{}, err
		}
		arity, err := r.Uvarint()
		if err != nil {
			return Descriptor{}, err
		}
		if arity > wire.MaxCount {
			return Descriptor{}, errors.Overflow([]string{"theory", "arity"}, arity, wire.MaxCount)
		}
		private, err := r.Bool()
		if err != nil {
			return Descriptor{}, err
		}
		f := FuncSym{Name: name, Arity: int(arity), Private: private}
		before := len(d.funcs)
		d = d.WithFuncSym(f)
		if len(d.funcs) == before {
			return Descriptor{}, errors.InvalidData(errors.PhaseDecode, []string{"theory", "funcs"},
				"duplicate function symbol "+name)
		}
	}
	return d, nil
}
