package domain

import "regexp"

// TriggerKind identifies which rule of the trigger table matched.
type TriggerKind int

const (
	// TriggerModuleLoad is the breakpoint-hit rule: the debugger stopped at
	// the module-init entry point and reported the loaded module's name.
	TriggerModuleLoad TriggerKind = iota
	// TriggerPassthrough is the generic catch-all for output that is only
	// relayed verbatim to the operator.
	TriggerPassthrough
)

// TriggerRule pairs a compiled pattern with the kind of event it signals.
// Rules are immutable for the process lifetime.
type TriggerRule struct {
	Kind    TriggerKind
	Pattern *regexp.Regexp
}

// Event is the outcome of matching debugger output against the table.
type Event struct {
	Kind   TriggerKind
	Text   string // text matched by the rule
	Module string // module name capture (TriggerModuleLoad only)
	End    int    // index just past the match, for cursor consumption
}

// Table is an ordered rule set. Evaluation order is fixed: the first matching
// rule wins, so the module-load rule must come before the passthrough rule.
type Table []TriggerRule

// moduleLoadPattern recognizes the breakpoint line gdb prints when the kernel
// stops in the module-init entry point, e.g.
//
//	Breakpoint 2, sys_init_module (name_user=0x804cb50 "hostfs") at module.c:528
//
// The capture group is the loaded module's name.
var moduleLoadPattern = regexp.MustCompile(`Breakpoint [0-9]+, sys_init_module \([^)]*"([^"]+)"`)

// DefaultTable returns the standard rule ordering: module-load first,
// passthrough last.
func DefaultTable() Table {
	return Table{
		{Kind: TriggerModuleLoad, Pattern: moduleLoadPattern},
		{Kind: TriggerPassthrough, Pattern: regexp.MustCompile(`(?s).+`)},
	}
}

// Match evaluates buf against the table in order and returns the event for
// the first matching rule, or nil when nothing matches (empty input).
func (t Table) Match(buf []byte) *Event {
	for _, rule := range t {
		m := rule.Pattern.FindSubmatchIndex(buf)
		if m == nil {
			continue
		}
		ev := &Event{
			Kind: rule.Kind,
			Text: string(buf[m[0]:m[1]]),
			End:  m[1],
		}
		if rule.Kind == TriggerModuleLoad && len(m) >= 4 && m[2] >= 0 {
			ev.Module = string(buf[m[2]:m[3]])
		}
		return ev
	}
	return nil
}
