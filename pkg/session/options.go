package session

import "log/slog"

// Option defines a functional option for configuring the Session.
type Option func(*Session)

// WithLogger configures the structured logger for internal events. Session
// output to the operator is unaffected.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}
