// Package console adapts the operator's terminal for a relay session.
//
// The operator stream is raw bytes in both directions: keystrokes go to the
// debugger unmodified (one reserved quit byte excepted, which the session
// handles), and debugger output is written back verbatim. When the input
// stream is a real terminal it is switched into raw mode for the session and
// restored afterwards; pipes and test buffers pass through untouched.
package console

import (
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

// readSize bounds one operator read. Raw-mode reads usually deliver single
// keystrokes, but pastes arrive in bursts.
const readSize = 256

// Console wraps the operator-facing byte streams. Input is pumped into a
// channel so the session loop has something to select on.
type Console struct {
	in    io.Reader
	out   io.Writer
	fd    int
	isTTY bool
	saved *term.State

	ch        chan []byte
	startOnce sync.Once
}

// Open wraps the given streams. Use Stdio for the process's own terminal.
func Open(in io.Reader, out io.Writer) *Console {
	c := &Console{in: in, out: out, fd: -1}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		c.fd = int(f.Fd())
		c.isTTY = true
	}
	return c
}

// Stdio opens the operator's terminal on stdin/stdout.
func Stdio() *Console {
	return Open(os.Stdin, os.Stdout)
}

// IsTerminal reports whether the input stream is an interactive terminal.
func (c *Console) IsTerminal() bool {
	return c.isTTY
}

// MakeRaw switches a terminal input into raw mode, remembering the prior
// state. Non-terminal inputs are left alone.
func (c *Console) MakeRaw() error {
	if !c.isTTY {
		return nil
	}
	saved, err := term.MakeRaw(c.fd)
	if err != nil {
		return err
	}
	c.saved = saved
	return nil
}

// Restore puts the terminal back into its prior mode. Safe to call more than
// once and on non-terminal inputs.
func (c *Console) Restore() error {
	if c.saved == nil {
		return nil
	}
	saved := c.saved
	c.saved = nil
	return term.Restore(c.fd, saved)
}

// Input returns the channel of operator byte chunks, starting the pump on
// first use. The channel closes when the operator stream ends.
func (c *Console) Input() <-chan []byte {
	c.startOnce.Do(func() {
		c.ch = make(chan []byte, 1)
		go c.pump()
	})
	return c.ch
}

func (c *Console) pump() {
	buf := make([]byte, readSize)
	for {
		n, err := c.in.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			c.ch <- chunk
		}
		if err != nil {
			close(c.ch)
			return
		}
	}
}

// Write relays debugger output to the operator verbatim.
func (c *Console) Write(b []byte) (int, error) {
	return c.out.Write(b)
}
