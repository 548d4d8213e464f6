package sig

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prooflab/sigil"
	"github.com/prooflab/sigil/errors"
	"github.com/prooflab/sigil/fact"
	"github.com/prooflab/sigil/theory"
)

// fakeHandle implements sigil.Handle without a process.
type fakeHandle struct {
	path     string
	th       theory.Descriptor
	text     string
	closed   bool
	queryErr error
}

func (h *fakeHandle) Path() string { return h.path }

func (h *fakeHandle) Descriptor() theory.Descriptor { return h.th }

func (h *fakeHandle) TheoryText(ctx context.Context) (string, error) {
	if h.closed {
		return "", errors.Closed("TheoryText")
	}
	if h.queryErr != nil {
		return "", h.queryErr
	}
	return h.text, nil
}

func (h *fakeHandle) Shutdown(ctx context.Context) error {
	h.closed = true
	return nil
}

// fakeSpawner implements sigil.Spawner, producing fakeHandles or a
// canned failure.
type fakeSpawner struct {
	text   string
	err    error
	spawns int
}

func (s *fakeSpawner) Spawn(ctx context.Context, path string, th theory.Descriptor) (sigil.Handle, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.spawns++
	return &fakeHandle{path: path, th: th, text: s.text}, nil
}

func testPure() Pure {
	return Empty().
		WithUniqueInst(fact.Tag{Name: "Fresh", Arity: 1}).
		WithTheory(theory.Minimal().
			WithBuiltins(theory.DiffieHellman).
			WithFuncSym(theory.FuncSym{Name: "h", Arity: 1}))
}

func TestPromoteDemoteConsistency(t *testing.T) {
	p := testPure()
	sp := &fakeSpawner{text: "full theory"}

	l, err := Promote(context.Background(), sp, "/opt/rewrited", p)
	require.NoError(t, err)

	assert.True(t, l.Demote().Equal(p), "demote(promote(path, p)) must equal p")
	assert.True(t, l.UniqueInsts().Equal(p.UniqueInsts()))
	assert.Equal(t, "/opt/rewrited", l.Handle().Path())
	assert.True(t, l.Handle().Descriptor().Equal(p.Theory()),
		"descriptor recoverable from the handle must be the one the engine was started with")
}

func TestPromoteFailureProducesNothing(t *testing.T) {
	spawnErr := errors.ExecutableMissing("/opt/rewrited", nil)
	sp := &fakeSpawner{err: spawnErr}

	_, err := Promote(context.Background(), sp, "/opt/rewrited", testPure())
	assert.ErrorIs(t, err, spawnErr)
}

func TestLiveEqualityByProjection(t *testing.T) {
	p := testPure()

	// Two independent spawners: different processes, even different paths.
	l1, err := Promote(context.Background(), &fakeSpawner{text: "a"}, "/opt/rewrited", p)
	require.NoError(t, err)
	l2, err := Promote(context.Background(), &fakeSpawner{text: "b"}, "/usr/bin/rewrited", p)
	require.NoError(t, err)

	assert.True(t, l1.Equal(l2), "equality must ignore which process backs the signature")
	assert.Equal(t, 0, l1.Compare(l2))

	l3 := Live{uniqueInsts: l1.uniqueInsts.Insert(fact.Tag{Name: "Out", Arity: 1}), handle: l1.handle}
	assert.False(t, l1.Equal(l3))
	assert.Equal(t, l1.Demote().Compare(l3.Demote()), l1.Compare(l3))
}

func TestLiveEncodeDecodeRoundTrip(t *testing.T) {
	p := testPure()
	sp := &fakeSpawner{text: "full theory"}

	l, err := Promote(context.Background(), sp, "/opt/rewrited", p)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, l.Encode(&buf))

	decoded, err := DecodeLive(context.Background(), &buf, sp)
	require.NoError(t, err)

	assert.True(t, decoded.Demote().Equal(l.Demote()),
		"decoded live signature must project to the original's demoted form")
	assert.Equal(t, "/opt/rewrited", decoded.Handle().Path(), "path round-trips")
	assert.Equal(t, 2, sp.spawns, "decode must spawn a fresh, independent process")
}

func TestDecodeLiveSpawnFailure(t *testing.T) {
	sp := &fakeSpawner{text: "full theory"}
	l, err := Promote(context.Background(), sp, "/opt/rewrited", testPure())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, l.Encode(&buf))

	spawnErr := errors.ExecutableMissing("/opt/rewrited", nil)
	_, err = DecodeLive(context.Background(), &buf, &fakeSpawner{err: spawnErr})
	assert.ErrorIs(t, err, spawnErr, "spawn failure is a decode failure")
	assert.True(t, errors.IsSpawn(err))
}

func TestDecodeLiveMalformed(t *testing.T) {
	_, err := DecodeLive(context.Background(), bytes.NewReader(nil), &fakeSpawner{})
	assert.Error(t, err)

	// Valid path, truncated pure payload.
	var buf bytes.Buffer
	l, err := Promote(context.Background(), &fakeSpawner{}, "/opt/rewrited", testPure())
	require.NoError(t, err)
	require.NoError(t, l.Encode(&buf))
	data := buf.Bytes()

	_, err = DecodeLive(context.Background(), bytes.NewReader(data[:len(data)-1]), &fakeSpawner{})
	assert.Error(t, err)
}

func TestLiveRender(t *testing.T) {
	p := testPure()
	sp := &fakeSpawner{text: "builtins: diffie-hellman\nfunctions: h/1"}

	l, err := Promote(context.Background(), sp, "/opt/rewrited", p)
	require.NoError(t, err)

	doc, err := l.Render(context.Background())
	require.NoError(t, err)
	assert.Equal(t,
		"unique_insts: Fresh/1\n\nbuiltins: diffie-hellman\nfunctions: h/1",
		doc.String(),
		"live rendering uses the engine's full theory text, not the flag check")

	// Rendering surfaces engine failures.
	bad := &fakeHandle{queryErr: errors.QueryIO("show theory", nil)}
	_, err = Live{uniqueInsts: p.UniqueInsts(), handle: bad}.Render(context.Background())
	assert.Error(t, err)
}

func TestLiveShutdownDelegates(t *testing.T) {
	sp := &fakeSpawner{}
	l, err := Promote(context.Background(), sp, "/opt/rewrited", testPure())
	require.NoError(t, err)

	require.NoError(t, l.Shutdown(context.Background()))
	assert.True(t, l.Handle().(*fakeHandle).closed)

	// Demotion after shutdown still works: it never touches the process.
	assert.True(t, l.Demote().Equal(testPure()))
}
