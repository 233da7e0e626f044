package session

import "context"

// initScript is the fixed setup sequence issued once after spawn: attach to
// the traced kernel thread, trap module loads, trap the failure and halt
// paths, let window resizes through to the target, and trap kernel entry.
// Each command waits for the next prompt with no time bound.
var initScript = []string{
	"att 1",
	"b sys_init_module",
	"b panic",
	"b stop",
	"handle SIGWINCH nostop noprint pass",
	"b start_kernel",
}

// resumeCmd restarts the target after setup. It is fire-and-forget: the next
// prompt only appears when a breakpoint fires, which the dispatch loop
// handles.
const resumeCmd = "c"

func (s *Session) bootstrap(ctx context.Context) error {
	if _, err := s.expect(ctx, s.cfg.Prompt, 0); err != nil {
		return err
	}
	for _, cmd := range initScript {
		s.logger.Debug("bootstrap command", "cmd", cmd)
		if _, err := s.exchange(ctx, cmd, s.cfg.Prompt, 0); err != nil {
			return err
		}
	}
	s.logger.Debug("resuming target")
	return s.proc.Send(resumeCmd)
}
