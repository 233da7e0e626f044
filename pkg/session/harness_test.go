package session

import (
	"bytes"
	"context"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/umlab/gdbpilot/pkg/domain"
)

const testWait = 5 * time.Second

// fakeTarget is a scripted stand-in for the debugger. Send records the
// command and emits the scripted reply; Write records raw relayed bytes.
type fakeTarget struct {
	t   *testing.T
	out chan []byte

	mu      sync.Mutex
	replies map[string][]string
	sent    []string
	raw     []byte
}

func newFakeTarget(t *testing.T) *fakeTarget {
	return &fakeTarget{
		t:       t,
		out:     make(chan []byte, 64),
		replies: make(map[string][]string),
	}
}

func (f *fakeTarget) Output() <-chan []byte { return f.out }

func (f *fakeTarget) Send(cmd string) error {
	f.mu.Lock()
	f.sent = append(f.sent, cmd)
	replies := f.replies[cmd]
	f.mu.Unlock()
	for _, r := range replies {
		f.out <- []byte(r)
	}
	return nil
}

func (f *fakeTarget) Write(b []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.raw = append(f.raw, b...)
	return len(b), nil
}

// reply scripts the output emitted after cmd is sent.
func (f *fakeTarget) reply(cmd string, output ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[cmd] = output
}

// emit pushes unsolicited debugger output, like a breakpoint hit.
func (f *fakeTarget) emit(s string) { f.out <- []byte(s) }

// exit closes the output stream as a real debugger exit would.
func (f *fakeTarget) exit() { close(f.out) }

func (f *fakeTarget) commands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

func (f *fakeTarget) rawInput() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return string(f.raw)
}

// awaitCommand blocks until cmd has been sent to the debugger.
func (f *fakeTarget) awaitCommand(cmd string) {
	f.t.Helper()
	deadline := time.Now().Add(testWait)
	for time.Now().Before(deadline) {
		if slices.Contains(f.commands(), cmd) {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	f.t.Fatalf("command %q never sent, got %v", cmd, f.commands())
}

// awaitRaw blocks until the debugger has received substr as raw input.
func (f *fakeTarget) awaitRaw(substr string) {
	f.t.Helper()
	deadline := time.Now().Add(testWait)
	for time.Now().Before(deadline) {
		if strings.Contains(f.rawInput(), substr) {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	f.t.Fatalf("debugger never received %q, got %q", substr, f.rawInput())
}

// fakeOperator is a scripted operator terminal.
type fakeOperator struct {
	t  *testing.T
	in chan []byte

	mu  sync.Mutex
	out bytes.Buffer
}

func newFakeOperator(t *testing.T) *fakeOperator {
	return &fakeOperator{t: t, in: make(chan []byte, 16)}
}

func (f *fakeOperator) Input() <-chan []byte { return f.in }

func (f *fakeOperator) Write(b []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.out.Write(b)
}

// press feeds operator keystrokes into the session.
func (f *fakeOperator) press(s string) { f.in <- []byte(s) }

// quit presses the reserved quit byte.
func (f *fakeOperator) quit() { f.in <- []byte{domain.QuitByte} }

func (f *fakeOperator) transcript() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.out.String()
}

// awaitOutput blocks until the operator has seen substr.
func (f *fakeOperator) awaitOutput(substr string) {
	f.t.Helper()
	deadline := time.Now().Add(testWait)
	for time.Now().Before(deadline) {
		if strings.Contains(f.transcript(), substr) {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	f.t.Fatalf("operator never saw %q, transcript: %q", substr, f.transcript())
}

// fakeResolver returns a fixed resolution and records every lookup.
type fakeResolver struct {
	path  string
	found bool

	mu    sync.Mutex
	calls []string
}

func (f *fakeResolver) Resolve(ctx context.Context, module string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, module)
	return f.path, f.found
}

func (f *fakeResolver) lookups() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// testHarness wires a session to scripted collaborators.
type testHarness struct {
	cfg      *domain.Config
	target   *fakeTarget
	operator *fakeOperator
	resolver *fakeResolver
	session  *Session
}

func newHarness(t *testing.T) *testHarness {
	h := &testHarness{
		cfg:      domain.NewConfig("linux"),
		target:   newFakeTarget(t),
		operator: newFakeOperator(t),
		resolver: &fakeResolver{},
	}
	h.session = New(h.cfg, h.target, h.operator, h.resolver)
	return h
}

// primeBootstrap scripts the prompt replies the bootstrap sequence expects.
func (h *testHarness) primeBootstrap() {
	h.target.emit("(gdb) ")
	for _, cmd := range initScript {
		h.target.reply(cmd, "(gdb) ")
	}
}

// start runs the session in the background and returns its result channel.
func (h *testHarness) start(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() { done <- h.session.Run(ctx) }()
	return done
}

// await waits for the session to finish and returns its error.
func await(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(testWait):
		t.Fatal("session did not terminate")
		return nil
	}
}
