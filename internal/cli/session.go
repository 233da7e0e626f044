package cli

import (
	"context"
	"fmt"

	"github.com/umlab/gdbpilot"
	"github.com/umlab/gdbpilot/internal/presentation/tui"
	"github.com/umlab/gdbpilot/pkg/console"
	"github.com/umlab/gdbpilot/pkg/domain"
	"github.com/umlab/gdbpilot/pkg/gdb"
	"github.com/umlab/gdbpilot/pkg/session"
	"github.com/umlab/gdbpilot/pkg/symbols"
)

// RunSession executes a single debugger session: spawn gdb, announce its
// pid, hand the terminal to the relay loop, and put everything back when the
// session ends.
func RunSession(opts RunOptions) error {
	logger := createLogger(opts.LogLevel)

	if opts.NoColor {
		tui.DisableColor()
	}
	tui.PrintBanner(gdbpilot.Version)

	table, err := symbols.LoadTable(opts.ModuleFile)
	if err != nil {
		return fmt.Errorf("module table: %w", err)
	}

	cfg := domain.NewConfig(opts.Target)
	if opts.GdbPath != "" {
		cfg.GdbPath = opts.GdbPath
	}
	if opts.Timeout > 0 {
		cfg.ExchangeTimeout = opts.Timeout
	}

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	proc, err := gdb.Start(sigCtx, cfg.GdbPath, "-nw", cfg.Target)
	if err != nil {
		return fmt.Errorf("spawn %s: %w", cfg.GdbPath, err)
	}
	defer func() {
		if err := proc.Close(); err != nil {
			logger.Warn("debugger close failed", "error", err)
		}
	}()

	// The operator needs the pid before the target can be started against
	// this debugger.
	tui.Announce(proc.Pid(), cfg.Target)

	resolverOpts := []symbols.Option{symbols.WithLogger(logger)}
	if opts.SearchRoot != "" {
		resolverOpts = append(resolverOpts, symbols.WithSearchRoot(opts.SearchRoot))
	}
	resolver := symbols.NewResolver(cfg.Target, table, resolverOpts...)

	term := console.Stdio()
	if err := term.MakeRaw(); err != nil {
		tui.Warn("raw mode unavailable: %v", err)
		logger.Warn("raw mode unavailable", "error", err)
	}
	defer term.Restore()

	tui.Notice("attaching and setting breakpoints")
	sess := session.New(cfg, proc, term, resolver, session.WithLogger(logger))
	runErr := sess.Run(sigCtx)

	if err := term.Restore(); err != nil {
		logger.Warn("terminal restore failed", "error", err)
	}
	tui.PrintGoodbye()

	if sig := sigCtx.Signal(); sig != nil {
		logger.Debug("session ended by signal", "signal", sig.String())
	}
	return handleExecutionError(runErr)
}
