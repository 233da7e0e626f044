package domain

import "errors"

// ErrExpectTimeout is returned when an awaited pattern does not appear within
// the exchange timeout. It is a soft failure: the session survives, the
// scripted step that was waiting does not.
var ErrExpectTimeout = errors.New("timed out waiting for debugger output")

// ErrOperatorQuit is returned when the reserved quit byte arrives. It aborts
// whatever exchange is in flight and then the session itself.
var ErrOperatorQuit = errors.New("operator quit")

// ErrTargetExited is returned when the debugger's output stream ends.
var ErrTargetExited = errors.New("debugger exited")
