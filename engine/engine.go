package engine

import (
	"bufio"
	"context"
	"os"
	"os/exec"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/prooflab/sigil"
	"github.com/prooflab/sigil/errors"
	"github.com/prooflab/sigil/theory"
)

// Engine spawns external rewriting-engine processes.
type Engine struct {
	extraArgs []string
}

// Config holds configuration for engine creation
type Config struct {
	// ExtraArgs are appended to the engine command line on every spawn.
	ExtraArgs []string
}

// New creates an engine with default configuration.
func New() *Engine {
	return NewWithConfig(nil)
}

// NewWithConfig creates an engine with custom configuration.
func NewWithConfig(cfg *Config) *Engine {
	e := &Engine{}
	if cfg != nil {
		e.extraArgs = append([]string(nil), cfg.ExtraArgs...)
	}
	return e
}

// Spawn starts the engine executable at path, configures it with th,
// and waits for the handshake ack. The returned handle records path
// and th for later pure extraction. Spawn blocks until the engine
// acks or fails; there is no internal timeout, so callers wanting one
// should cancel ctx.
func (e *Engine) Spawn(ctx context.Context, path string, th theory.Descriptor) (*Handle, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.ExecutableMissing(path, err)
	}
	if info.IsDir() {
		return nil, errors.ExecutableMissing(path, nil)
	}

	cmd := exec.CommandContext(ctx, path, e.extraArgs...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, errors.SpawnIO("open stdin pipe", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, errors.SpawnIO("open stdout pipe", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, errors.ExecutableMissing(path, err)
	}

	h := &Handle{
		path:    path,
		th:      th,
		session: uuid.NewString(),
		cmd:     cmd,
		stdin:   stdin,
		out:     bufio.NewReader(stdout),
	}

	if err := h.handshake(path, th); err != nil {
		// Reap the half-configured process before surfacing the error.
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return nil, err
	}

	Logger().Info("engine spawned",
		zap.String("session", h.session),
		zap.String("path", path),
		zap.Strings("builtins", th.Builtins().Names()),
		zap.Int("func_syms", len(th.FuncSyms())))

	return h, nil
}

// Spawner adapts the engine to the sigil.Spawner interface consumed by
// the sig package.
func (e *Engine) Spawner() sigil.Spawner {
	return spawner{e: e}
}

type spawner struct {
	e *Engine
}

func (s spawner) Spawn(ctx context.Context, path string, th theory.Descriptor) (sigil.Handle, error) {
	h, err := s.e.Spawn(ctx, path, th)
	if err != nil {
		return nil, err
	}
	return h, nil
}
