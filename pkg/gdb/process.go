// Package gdb spawns and supervises the debugger subprocess.
//
// The debugger is an opaque line-oriented peer: commands go in through stdin,
// prompts and diagnostics come out of stdout/stderr. Both output pipes are
// pumped into a single chunk channel so the session loop has exactly one
// source to select on. Chunks are raw bytes, not lines: the prompt marker has
// no trailing newline, so line-based reads would stall forever.
package gdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os/exec"

	"golang.org/x/sync/errgroup"
)

// chunkSize is the pump read size. The debugger flushes in small bursts, so
// a modest buffer keeps latency low without chopping output needlessly.
const chunkSize = 4096

// Process is a running debugger with pumped output.
type Process struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
	out   chan []byte
	pumps *errgroup.Group
}

// Start launches the debugger binary with the given arguments and begins
// pumping its stdout and stderr. The output channel closes once both pipes
// drain, which is the session's end-of-stream signal. Cancelling ctx kills
// the debugger.
func Start(ctx context.Context, path string, args ...string) (*Process, error) {
	bin, err := exec.LookPath(path)
	if err != nil {
		return nil, fmt.Errorf("debugger unavailable: %w", err)
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.SysProcAttr = sysProcAttr()

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, err
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", bin, err)
	}

	p := &Process{
		cmd:   cmd,
		stdin: stdin,
		out:   make(chan []byte, 1),
		pumps: &errgroup.Group{},
	}
	p.pumps.Go(func() error { return p.pump(stdout) })
	p.pumps.Go(func() error { return p.pump(stderr) })
	go func() {
		// Channel close is the only end-of-stream signal consumers get, so
		// it must wait for both pipes.
		_ = p.pumps.Wait()
		close(p.out)
	}()

	return p, nil
}

// pump copies one pipe into the shared output channel chunk by chunk.
func (p *Process) pump(r io.Reader) error {
	buf := make([]byte, chunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			p.out <- chunk
		}
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, fs.ErrClosed) {
				return nil
			}
			return err
		}
	}
}

// Output returns the channel of debugger output chunks. It closes when the
// debugger's output streams end.
func (p *Process) Output() <-chan []byte {
	return p.out
}

// Send writes one command line, appending the newline the debugger expects.
func (p *Process) Send(cmd string) error {
	_, err := io.WriteString(p.stdin, cmd+"\n")
	return err
}

// Write relays raw operator bytes to the debugger unmodified.
func (p *Process) Write(b []byte) (int, error) {
	return p.stdin.Write(b)
}

// Pid reports the debugger's process identifier.
func (p *Process) Pid() int {
	return p.cmd.Process.Pid
}

// Close releases the debugger: stdin is closed, the process is killed if it
// is still running, and its exit is reaped. An exit status error is expected
// here (the usual teardown is a kill) and not reported.
func (p *Process) Close() error {
	_ = p.stdin.Close()
	if p.cmd.Process != nil {
		_ = p.cmd.Process.Kill()
	}
	err := p.cmd.Wait()
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return err
	}
	return nil
}
