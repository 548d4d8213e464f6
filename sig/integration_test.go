package sig_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prooflab/sigil/engine"
	"github.com/prooflab/sigil/errors"
	"github.com/prooflab/sigil/fact"
	"github.com/prooflab/sigil/sig"
	"github.com/prooflab/sigil/theory"
)

const fakeEngineScript = `#!/bin/sh
while IFS= read -r line; do
  [ "$line" = "end theory" ] && break
done
echo ok
while IFS= read -r line; do
  case "$line" in
    "show theory")
      echo "builtins: diffie-hellman"
      echo "."
      ;;
    "quit")
      exit 0
      ;;
  esac
done
`

func fakeEngine(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake engine scripts require a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "rewrited")
	require.NoError(t, os.WriteFile(path, []byte(fakeEngineScript), 0o755))
	return path
}

func TestPromoteAgainstProcess(t *testing.T) {
	ctx := context.Background()
	path := fakeEngine(t)
	p := sig.Empty().
		WithUniqueInst(fact.Tag{Name: "Fresh", Arity: 1}).
		WithTheory(theory.Minimal().WithBuiltins(theory.DiffieHellman))

	l, err := sig.Promote(ctx, engine.New().Spawner(), path, p)
	require.NoError(t, err)
	defer l.Shutdown(ctx)

	assert.True(t, l.Demote().Equal(p))

	doc, err := l.Render(ctx)
	require.NoError(t, err)
	assert.Equal(t, "unique_insts: Fresh/1\n\nbuiltins: diffie-hellman", doc.String())
}

func TestPromoteMissingExecutable(t *testing.T) {
	ctx := context.Background()
	_, err := sig.Promote(ctx, engine.New().Spawner(),
		filepath.Join(t.TempDir(), "nope"), sig.Empty())
	require.Error(t, err)
	assert.True(t, errors.IsSpawn(err))
}

func TestLiveRoundTripAcrossProcesses(t *testing.T) {
	ctx := context.Background()
	path := fakeEngine(t)
	sp := engine.New().Spawner()
	p := sig.Empty().WithUniqueInst(fact.Tag{Name: "Fresh", Arity: 1})

	l, err := sig.Promote(ctx, sp, path, p)
	require.NoError(t, err)
	defer l.Shutdown(ctx)

	var buf bytes.Buffer
	require.NoError(t, l.Encode(&buf))

	decoded, err := sig.DecodeLive(ctx, &buf, sp)
	require.NoError(t, err)
	defer decoded.Shutdown(ctx)

	assert.True(t, decoded.Demote().Equal(l.Demote()),
		"decode elsewhere with the executable reachable must reproduce the demoted form")
	assert.True(t, decoded.Equal(l), "projection equality holds across process instances")
}
