package session

import (
	"context"
	"fmt"
	"regexp"
)

const (
	// finishCmd returns from the module-init frame so the kernel's module
	// list is fully linked before its address is read.
	finishCmd = "finish"

	// addressExpr computes where the freshly loaded module's image starts:
	// just past the module descriptor at the head of the list.
	addressExpr = "p/x (int)module_list + sizeof(struct module)"

	// verifyCmd echoes the list head so the operator can see that the
	// symbol load took.
	verifyCmd = "p module_list"

	confirmReply = "y"
)

// addressReply recognizes the debugger's value print, e.g. "$7 = 0x203a3c90".
// The address step waits for this rather than for the prompt: breakpoint
// stops leave a stale prompt in the buffer, and only the value print pins
// the reply to the address expression.
var addressReply = regexp.MustCompile(`\$[0-9]+ = (0x[0-9a-fA-F]+)`)

// handleModuleLoad is the scripted sequence run when the debugger stops on a
// module load. It steps out of the breakpoint frame, reads the module's load
// address, resolves its symbol file, and reloads symbol tables when both are
// available. Timeouts are soft: the step is reported and the sequence
// continues or stops best-effort, but the session survives.
func (s *Session) handleModuleLoad(ctx context.Context, module string) error {
	s.logger.Info("module loaded", "module", module)
	timeout := s.cfg.ExchangeTimeout

	if _, err := s.exchange(ctx, finishCmd, s.cfg.Prompt, timeout); isFatal(err) {
		return err
	}
	reply, err := s.exchange(ctx, addressExpr, addressReply, timeout)
	if isFatal(err) {
		return err
	}
	addr, haveAddr := parseAddress(reply)

	path, found := s.resolver.Resolve(ctx, module)
	if !found {
		s.logger.Debug("no symbol file for module", "module", module)
		return nil
	}
	if !haveAddr {
		s.notef("no load address for %s, symbols not loaded", module)
		return nil
	}

	s.logger.Info("loading symbols", "module", module, "path", path, "addr", addr)
	loadScript := []string{
		fmt.Sprintf("symbol-file %s", s.cfg.Target),
		fmt.Sprintf("add-symbol-file %s %s", path, addr),
	}
	for _, cmd := range loadScript {
		if ok, err := s.runStep(ctx, cmd, s.cfg.Confirm); !ok {
			return err
		}
		if ok, err := s.runStep(ctx, confirmReply, s.cfg.Prompt); !ok {
			return err
		}
	}
	if ok, err := s.runStep(ctx, verifyCmd, s.cfg.Prompt); !ok {
		return err
	}
	return nil
}

// runStep runs one exchange of the load script. A timeout abandons the
// remaining steps without failing the session; the notice has already been
// printed by expect.
func (s *Session) runStep(ctx context.Context, cmd string, pattern *regexp.Regexp) (bool, error) {
	_, err := s.exchange(ctx, cmd, pattern, s.cfg.ExchangeTimeout)
	if err == nil {
		return true, nil
	}
	if !isFatal(err) {
		return false, nil
	}
	return false, err
}

// parseAddress pulls the hex load address out of an expression reply. A
// missing address skips the symbol load rather than sending garbage to the
// debugger.
func parseAddress(reply string) (string, bool) {
	m := addressReply.FindStringSubmatch(reply)
	if m == nil {
		return "", false
	}
	return m[1], true
}
