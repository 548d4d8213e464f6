package fact

import (
	"sort"
	"strconv"
	"strings"

	"github.com/prooflab/sigil/errors"
	"github.com/prooflab/sigil/wire"
)

// Tag identifies a fact symbol by name and arity. Two tags with the
// same name but different arities are distinct symbols.
type Tag struct {
	Name  string
	Arity int
}

// String renders the tag in the surface syntax, e.g. "Fresh/1".
func (t Tag) String() string {
	return t.Name + "/" + strconv.Itoa(t.Arity)
}

// Compare orders tags by name, then arity.
func (t Tag) Compare(o Tag) int {
	if c := strings.Compare(t.Name, o.Name); c != 0 {
		return c
	}
	switch {
	case t.Arity < o.Arity:
		return -1
	case t.Arity > o.Arity:
		return 1
	}
	return 0
}

// ParseTag parses the "Name/arity" surface syntax.
func ParseTag(s string) (Tag, error) {
	name, arityStr, ok := strings.Cut(s, "/")
	if !ok {
		return Tag{}, errors.InvalidTag(s, "missing '/arity' suffix")
	}
	if name == "" {
		return Tag{}, errors.InvalidTag(s, "empty name")
	}
	arity, err := strconv.Atoi(arityStr)
	if err != nil || arity < 0 {
		return Tag{}, errors.InvalidTag(s, "arity must be a non-negative integer")
	}
	return Tag{Name: name, Arity: arity}, nil
}

// TagSet is a duplicate-free set of fact tags with a canonical sorted
// representation. The zero value is the empty set. All operations are
// value-semantic: Insert returns a new set and never aliases the
// receiver's storage, so sets can be copied and stored freely.
type TagSet struct {
	tags []Tag // sorted by Tag.Compare, no duplicates
}

// NewTagSet builds a set from tags, folding duplicates.
func NewTagSet(tags ...Tag) TagSet {
	s := TagSet{}
	for _, t := range tags {
		s = s.Insert(t)
	}
	return s
}

// Insert returns a set containing t in addition to the receiver's tags.
func (s TagSet) Insert(t Tag) TagSet {
	i := sort.Search(len(s.tags), func(i int) bool { return s.tags[i].Compare(t) >= 0 })
	if i < len(s.tags) && s.tags[i] == t {
		return s
	}
	out := make([]Tag, 0, len(s.tags)+1)
	out = append(out, s.tags[:i]...)
	out = append(out, t)
	out = append(out, s.tags[i:]...)
	return TagSet{tags: out}
}

// Contains reports set membership.
func (s TagSet) Contains(t Tag) bool {
	i := sort.Search(len(s.tags), func(i int) bool { return s.tags[i].Compare(t) >= 0 })
	return i < len(s.tags) && s.tags[i] == t
}

// Len returns the number of tags in the set.
func (s TagSet) Len() int {
	return len(s.tags)
}

// IsEmpty reports whether the set has no tags.
func (s TagSet) IsEmpty() bool {
	return len(s.tags) == 0
}

// Tags returns the tags in their canonical (lexicographic) order.
// The returned slice is a copy.
func (s TagSet) Tags() []Tag {
	out := make([]Tag, len(s.tags))
	copy(out, s.tags)
	return out
}

// Strings returns the tags rendered as "Name/arity" in canonical order.
func (s TagSet) Strings() []string {
	out := make([]string, len(s.tags))
	for i, t := range s.tags {
		out[i] = t.String()
	}
	return out
}

// Equal reports structural equality.
func (s TagSet) Equal(o TagSet) bool {
	return s.Compare(o) == 0
}

// Compare orders sets lexicographically over their canonical tag
// sequences; a proper prefix sorts first. The order is total and
// consistent with Equal.
func (s TagSet) Compare(o TagSet) int {
	n := len(s.tags)
	if len(o.tags) < n {
		n = len(o.tags)
	}
	for i := 0; i < n; i++ {
		if c := s.tags[i].Compare(o.tags[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(s.tags) < len(o.tags):
		return -1
	case len(s.tags) > len(o.tags):
		return 1
	}
	return 0
}

// Encode writes the set in canonical order.
func (s TagSet) Encode(w *wire.Writer) error {
	if err := w.Uvarint(uint64(len(s.tags))); err != nil {
		return err
	}
	for _, t := range s.tags {
		if err := w.String(t.Name); err != nil {
			return err
		}
		if err := w.Uvarint(uint64(t.Arity)); err != nil {
			return err
		}
	}
	return nil
}

// DecodeTagSet reads a set written by Encode. Duplicate tags in the
// input are rejected rather than folded.
func DecodeTagSet(r *wire.Reader) (TagSet, error) {
	n, err := r.Count()
	if err != nil {
		return TagSet{}, err
	}
	s := TagSet{}
	for i := 0; i < n; i++ {
		name, err := r.String()
		if err != nil {
			return TagSet{}, err
		}
		arity, err := r.Uvarint()
		if err != nil {
			return TagSet{}, err
		}
		if arity > wire.MaxCount {
			return TagSet{}, errors.Overflow([]string{"unique_insts", "arity"}, arity, wire.MaxCount)
		}
		t := Tag{Name: name, Arity: int(arity)}
		if s.Contains(t) {
			return TagSet{}, errors.InvalidData(errors.PhaseDecode, []string{"unique_insts"},
				"duplicate tag "+t.String())
		}
		s = s.Insert(t)
	}
	return s, nil
}
