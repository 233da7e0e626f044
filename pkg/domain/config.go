package domain

import (
	"regexp"
	"time"
)

const (
	// QuitByte is the reserved operator byte (Ctrl-]) that terminates the
	// session immediately. Every other operator byte passes through.
	QuitByte = 0x1d

	// DefaultExchangeTimeout bounds each scripted exchange during the
	// module-load sequence. Idle relay waits are unbounded.
	DefaultExchangeTimeout = 5 * time.Second
)

var (
	// DefaultPrompt matches gdb's ready-for-next-command marker.
	DefaultPrompt = regexp.MustCompile(`\(gdb\) `)

	// DefaultConfirm matches gdb's interactive "are you sure" question, asked
	// before it replaces or extends a symbol table.
	DefaultConfirm = regexp.MustCompile(`\(y or n\) `)
)

// Config is the immutable session configuration, constructed once at startup
// and shared by reference. Runtime code never mutates it.
type Config struct {
	// Target is the kernel binary handed to gdb. The symbol resolver also
	// consults it for a version string.
	Target string

	// GdbPath is the debugger executable to spawn.
	GdbPath string

	// Prompt matches the debugger's ready marker.
	Prompt *regexp.Regexp

	// Confirm matches the debugger's y/n confirmation question.
	Confirm *regexp.Regexp

	// Triggers is the ordered trigger table applied to debugger output.
	Triggers Table

	// Quit is the reserved operator byte that aborts the session.
	Quit byte

	// ExchangeTimeout bounds each scripted exchange; 0 waits unbounded.
	ExchangeTimeout time.Duration
}

// NewConfig returns a Config for the given target with every other knob at
// its default.
func NewConfig(target string) *Config {
	return &Config{
		Target:          target,
		GdbPath:         "gdb",
		Prompt:          DefaultPrompt,
		Confirm:         DefaultConfirm,
		Triggers:        DefaultTable(),
		Quit:            QuitByte,
		ExchangeTimeout: DefaultExchangeTimeout,
	}
}
