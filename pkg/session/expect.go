package session

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/umlab/gdbpilot/pkg/domain"
)

// expect blocks until pattern appears in debugger output, returning the
// accumulated output through the end of the match. A timeout of 0 waits
// unbounded.
//
// The operator never sees a frozen terminal while an exchange is pending:
// every debugger chunk is relayed on arrival, and operator input keeps
// flowing to the debugger. The quit byte aborts with domain.ErrOperatorQuit;
// debugger exit aborts with domain.ErrTargetExited; an expired timeout
// prints a visible notice and returns domain.ErrExpectTimeout.
func (s *Session) expect(ctx context.Context, pattern *regexp.Regexp, timeout time.Duration) (string, error) {
	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	for {
		if text, ok := s.takeMatch(pattern); ok {
			return text, nil
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case chunk, ok := <-s.proc.Output():
			if !ok {
				return "", domain.ErrTargetExited
			}
			s.relayToOperator(chunk)
			s.cursor = append(s.cursor, chunk...)
			s.trimCursor()
		case input, ok := <-s.operator.Input():
			if !ok || s.forwardOperator(input) {
				return "", domain.ErrOperatorQuit
			}
		case <-expired:
			s.notef("timed out after %s waiting for %s", timeout, pattern)
			return "", domain.ErrExpectTimeout
		}
	}
}

// exchange sends one command and waits for pattern in the reply.
func (s *Session) exchange(ctx context.Context, cmd string, pattern *regexp.Regexp, timeout time.Duration) (string, error) {
	if err := s.proc.Send(cmd); err != nil {
		return "", fmt.Errorf("send %q: %w", cmd, err)
	}
	return s.expect(ctx, pattern, timeout)
}

// takeMatch consumes buffered output through the first match of pattern.
// The returned text includes everything before the match, so callers can
// re-scan it for captures.
func (s *Session) takeMatch(pattern *regexp.Regexp) (string, bool) {
	loc := pattern.FindIndex(s.cursor)
	if loc == nil {
		return "", false
	}
	text := string(s.cursor[:loc[1]])
	s.consumeCursor(loc[1])
	return text, true
}

// isFatal separates errors that must end the session from the soft timeout,
// which scripted sequences handle step by step.
func isFatal(err error) bool {
	return err != nil && !errors.Is(err, domain.ErrExpectTimeout)
}

// notef prints a diagnostic on the operator terminal. The leading carriage
// return keeps the line readable in raw mode.
func (s *Session) notef(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	s.relayToOperator([]byte("\r\n[gdbpilot] " + msg + "\r\n"))
	s.logger.Debug(msg)
}
