package engine

import (
	"bufio"
	"context"
	"io"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/prooflab/sigil"
	"github.com/prooflab/sigil/errors"
	"github.com/prooflab/sigil/theory"
)

// Handle is a live binding to a running engine process. Path,
// Descriptor, and Session read state captured at spawn time and never
// touch the process; TheoryText and Shutdown do.
//
// A Handle is NOT safe for concurrent use from multiple goroutines.
// It has one logical owner; serialize access externally if needed.
// There is no finalizer: an unreachable handle leaves its process
// running until Shutdown is called or the process is killed externally.
type Handle struct {
	path    string
	th      theory.Descriptor
	session string
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	out     *bufio.Reader
	closed  bool
}

// Path returns the executable path the engine was started from.
func (h *Handle) Path() string {
	return h.path
}

// Descriptor returns the theory the engine was configured with.
func (h *Handle) Descriptor() theory.Descriptor {
	return h.th
}

// Session returns the unique session ID assigned at spawn time.
func (h *Handle) Session() string {
	return h.session
}

// handshake sends the theory configuration block and waits for the ack.
func (h *Handle) handshake(path string, th theory.Descriptor) error {
	if err := writeTheoryBlock(h.stdin, th); err != nil {
		return errors.SpawnIO("write theory block", err)
	}
	line, err := h.readLine()
	if err != nil {
		return errors.SpawnIO("read handshake ack", err)
	}
	if line != ackOK {
		return errors.EngineRejected(path, line)
	}
	return nil
}

// TheoryText asks the running engine for its full theory rendering.
// The call blocks until the engine answers; cancel ctx to bound it.
func (h *Handle) TheoryText(ctx context.Context) (string, error) {
	if h.closed {
		return "", errors.Closed("TheoryText")
	}
	if err := ctx.Err(); err != nil {
		return "", errors.QueryIO("show theory", err)
	}

	if _, err := io.WriteString(h.stdin, cmdShowTheory+"\n"); err != nil {
		return "", errors.QueryIO("write show theory", err)
	}

	var lines []string
	for {
		line, err := h.readLine()
		if err != nil {
			return "", errors.QueryIO("read theory text", err)
		}
		if line == endOfText {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

// Shutdown asks the engine to exit and waits for the process. It is
// idempotent; calls after the first return nil.
func (h *Handle) Shutdown(ctx context.Context) error {
	if h.closed {
		return nil
	}
	h.closed = true

	// Best effort: the process may already be gone.
	_, _ = io.WriteString(h.stdin, cmdQuit+"\n")
	_ = h.stdin.Close()

	done := make(chan error, 1)
	go func() { done <- h.cmd.Wait() }()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		_ = h.cmd.Process.Kill()
		<-done
		err = ctx.Err()
	}

	Logger().Info("engine shut down",
		zap.String("session", h.session),
		zap.Error(err))

	if err != nil {
		return errors.Wrap(errors.PhaseShutdown, errors.KindIO, err, "wait for engine exit")
	}
	return nil
}

func (h *Handle) readLine() (string, error) {
	line, err := h.out.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Compile-time check that Handle implements sigil.Handle
var _ sigil.Handle = (*Handle)(nil)
