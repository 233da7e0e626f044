// Package session drives a debugger subprocess on behalf of a human operator.
//
// The session relays bytes between operator and debugger transparently while
// watching debugger output for the module-load breakpoint. On a hit it runs
// the scripted symbol-reload exchange against the debugger, then hands
// control back to the operator. Everything is cooperative multiplexing over
// two channels; exactly one exchange is ever in flight, so there is no shared
// state to lock.
package session

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/umlab/gdbpilot/pkg/domain"
)

// maxCursor bounds the rolling match buffer. Patterns only ever match recent
// output, so older bytes can be dropped once relayed.
const maxCursor = 16384

// Process is the debugger subprocess under automation. Output carries raw
// output chunks and closes when the debugger exits. Send issues one command
// line; Write relays raw operator bytes.
type Process interface {
	Output() <-chan []byte
	Send(cmd string) error
	Write(b []byte) (int, error)
}

// Operator is the byte stream for the human driving the session. Input
// carries raw keystroke chunks and closes when the stream ends.
type Operator interface {
	Input() <-chan []byte
	Write(b []byte) (int, error)
}

// PathResolver maps a loaded module's name to its symbol file. The second
// return is false when no file could be found, which skips symbol loading.
type PathResolver interface {
	Resolve(ctx context.Context, module string) (string, bool)
}

// state is the dispatch loop's lifecycle. There is no intermediate state:
// a session is pumping bytes or it is done.
type state int

const (
	stateRunning state = iota
	stateTerminated
)

// Session owns one debugger and one operator for its whole lifetime. Create
// with New, run with Run; the caller releases the process and terminal
// afterwards.
type Session struct {
	cfg      *domain.Config
	proc     Process
	operator Operator
	resolver PathResolver
	logger   *slog.Logger

	// cursor holds relayed-but-unconsumed debugger output for pattern
	// matching. Only the dispatch loop and expect touch it.
	cursor []byte
}

// New assembles a session from its collaborators. cfg must be fully
// populated; domain.NewConfig gives usable defaults.
func New(cfg *domain.Config, proc Process, operator Operator, resolver PathResolver, opts ...Option) *Session {
	s := &Session{
		cfg:      cfg,
		proc:     proc,
		operator: operator,
		resolver: resolver,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run performs the bootstrap script and then relays traffic until the
// debugger exits, the operator quits, or ctx is cancelled. Debugger exit and
// operator quit are normal terminations and return nil.
func (s *Session) Run(ctx context.Context) error {
	if err := s.bootstrap(ctx); err != nil {
		return s.finish(err)
	}

	st := stateRunning
	var cause error
	for st == stateRunning {
		select {
		case <-ctx.Done():
			st, cause = stateTerminated, ctx.Err()
		case chunk, ok := <-s.proc.Output():
			if !ok {
				s.logger.Info("debugger exited")
				st = stateTerminated
				continue
			}
			if err := s.dispatch(ctx, chunk); err != nil {
				st, cause = stateTerminated, err
			}
		case input, ok := <-s.operator.Input():
			if !ok || s.forwardOperator(input) {
				s.logger.Info("operator quit")
				st = stateTerminated
			}
		}
	}
	return s.finish(cause)
}

// dispatch relays one debugger chunk and applies the trigger table to the
// accumulated output. The module-load rule outranks the passthrough rule for
// the same text.
func (s *Session) dispatch(ctx context.Context, chunk []byte) error {
	s.relayToOperator(chunk)
	s.cursor = append(s.cursor, chunk...)
	if ev := s.cfg.Triggers.Match(s.cursor); ev != nil {
		switch ev.Kind {
		case domain.TriggerModuleLoad:
			s.consumeCursor(ev.End)
			if err := s.handleModuleLoad(ctx, ev.Module); err != nil {
				return err
			}
		case domain.TriggerPassthrough:
			// Already relayed above. The text stays buffered so a trigger
			// line split across reads still matches once its tail arrives.
		}
	}
	s.trimCursor()
	return nil
}

// forwardOperator relays one operator chunk to the debugger, reporting true
// when it carries the quit byte. Bytes ahead of the quit byte still go out.
func (s *Session) forwardOperator(input []byte) bool {
	if i := bytes.IndexByte(input, s.cfg.Quit); i >= 0 {
		if i > 0 {
			s.relayToTarget(input[:i])
		}
		return true
	}
	s.relayToTarget(input)
	return false
}

func (s *Session) relayToOperator(b []byte) {
	if _, err := s.operator.Write(b); err != nil {
		s.logger.Warn("operator write failed", "error", err)
	}
}

func (s *Session) relayToTarget(b []byte) {
	if _, err := s.proc.Write(b); err != nil {
		s.logger.Warn("debugger write failed", "error", err)
	}
}

// consumeCursor drops matched output so a rule cannot fire twice on the same
// text.
func (s *Session) consumeCursor(end int) {
	s.cursor = append([]byte(nil), s.cursor[end:]...)
}

func (s *Session) trimCursor() {
	if len(s.cursor) > maxCursor {
		s.cursor = append([]byte(nil), s.cursor[len(s.cursor)-maxCursor:]...)
	}
}

// finish collapses the expected termination causes into a clean exit.
func (s *Session) finish(err error) error {
	if errors.Is(err, domain.ErrOperatorQuit) || errors.Is(err, domain.ErrTargetExited) {
		return nil
	}
	return err
}
