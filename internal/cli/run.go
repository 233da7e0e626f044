package cli

import (
	"fmt"
	"os"
	"time"
)

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	// Target is the kernel binary handed to the debugger and queried for a
	// version string during module path resolution.
	Target string

	// GdbPath overrides the debugger executable. Empty means "gdb".
	GdbPath string

	// ModuleFile is the optional YAML table mapping module names to symbol
	// files. A missing file means an empty table.
	ModuleFile string

	// SearchRoot overrides the /lib/modules fallback search directory.
	SearchRoot string

	// Timeout bounds each scripted exchange during symbol reloading. Zero
	// keeps the default.
	Timeout time.Duration

	// LogLevel selects diagnostic verbosity on stderr.
	LogLevel string

	// NoColor disables all styled output.
	NoColor bool
}

// Execute handles the run command logic.
func Execute(opts RunOptions) error {
	if opts.Target == "" {
		return fmt.Errorf("no target kernel binary given")
	}
	if _, err := os.Stat(opts.Target); err != nil {
		return fmt.Errorf("target %q: %w", opts.Target, err)
	}
	return RunSession(opts)
}
