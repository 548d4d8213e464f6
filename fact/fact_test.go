package fact

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prooflab/sigil/wire"
)

func TestTagString(t *testing.T) {
	assert.Equal(t, "Fresh/1", Tag{Name: "Fresh", Arity: 1}.String())
	assert.Equal(t, "Out/0", Tag{Name: "Out", Arity: 0}.String())
}

func TestParseTag(t *testing.T) {
	tests := []struct {
		in      string
		want    Tag
		wantErr bool
	}{
		{"Fresh/1", Tag{Name: "Fresh", Arity: 1}, false},
		{"K/0", Tag{Name: "K", Arity: 0}, false},
		{"Fresh", Tag{}, true},
		{"/1", Tag{}, true},
		{"Fresh/-1", Tag{}, true},
		{"Fresh/one", Tag{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTag(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTagCompare(t *testing.T) {
	a := Tag{Name: "Fresh", Arity: 1}
	b := Tag{Name: "Fresh", Arity: 2}
	c := Tag{Name: "Out", Arity: 1}

	assert.Equal(t, 0, a.Compare(a))
	assert.Negative(t, a.Compare(b), "same name, smaller arity sorts first")
	assert.Negative(t, a.Compare(c), "name dominates arity")
	assert.Positive(t, c.Compare(a))
}

func TestTagSetCanonical(t *testing.T) {
	a := NewTagSet(
		Tag{Name: "Out", Arity: 1},
		Tag{Name: "Fresh", Arity: 1},
		Tag{Name: "Out", Arity: 1}, // duplicate folds
	)
	b := NewTagSet(
		Tag{Name: "Fresh", Arity: 1},
		Tag{Name: "Out", Arity: 1},
	)

	assert.True(t, a.Equal(b), "insert order must not matter")
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, []string{"Fresh/1", "Out/1"}, a.Strings())
}

func TestTagSetValueSemantics(t *testing.T) {
	base := NewTagSet(Tag{Name: "Fresh", Arity: 1})
	grown := base.Insert(Tag{Name: "Out", Arity: 1})

	assert.Equal(t, 1, base.Len(), "Insert must not mutate the receiver")
	assert.Equal(t, 2, grown.Len())
	assert.True(t, grown.Contains(Tag{Name: "Fresh", Arity: 1}))
	assert.False(t, base.Contains(Tag{Name: "Out", Arity: 1}))
}

func TestTagSetCompareTotalOrder(t *testing.T) {
	empty := TagSet{}
	fresh := NewTagSet(Tag{Name: "Fresh", Arity: 1})
	freshOut := fresh.Insert(Tag{Name: "Out", Arity: 1})
	out := NewTagSet(Tag{Name: "Out", Arity: 1})

	assert.Equal(t, 0, empty.Compare(TagSet{}))
	assert.Negative(t, empty.Compare(fresh), "empty set sorts first")
	assert.Negative(t, fresh.Compare(freshOut), "prefix sorts first")
	assert.Negative(t, fresh.Compare(out))
	assert.Positive(t, out.Compare(freshOut), "element order dominates length")

	// antisymmetry
	assert.Equal(t, -fresh.Compare(out), out.Compare(fresh))
}

func TestTagSetEncodeRoundTrip(t *testing.T) {
	sets := []TagSet{
		{},
		NewTagSet(Tag{Name: "Fresh", Arity: 1}),
		NewTagSet(Tag{Name: "Fresh", Arity: 1}, Tag{Name: "Out", Arity: 2}, Tag{Name: "In", Arity: 1}),
	}

	for _, s := range sets {
		var buf bytes.Buffer
		require.NoError(t, s.Encode(wire.NewWriter(&buf)))

		got, err := DecodeTagSet(wire.NewReader(&buf))
		require.NoError(t, err)
		assert.True(t, s.Equal(got))
	}
}

func TestDecodeTagSetRejectsDuplicates(t *testing.T) {
	var buf bytes.Buffer
	w := wire.NewWriter(&buf)
	require.NoError(t, w.Uvarint(2))
	for i := 0; i < 2; i++ {
		require.NoError(t, w.String("Fresh"))
		require.NoError(t, w.Uvarint(1))
	}

	_, err := DecodeTagSet(wire.NewReader(&buf))
	assert.Error(t, err)
}

func TestDecodeTagSetTruncated(t *testing.T) {
	var buf bytes.Buffer
	s := NewTagSet(Tag{Name: "Fresh", Arity: 1}, Tag{Name: "Out", Arity: 1})
	require.NoError(t, s.Encode(wire.NewWriter(&buf)))

	data := buf.Bytes()
	_, err := DecodeTagSet(wire.NewReader(bytes.NewReader(data[:len(data)-2])))
	assert.Error(t, err)
}
