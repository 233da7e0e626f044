package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableMatch(t *testing.T) {
	table := DefaultTable()

	tests := []struct {
		name       string
		input      string
		wantKind   TriggerKind
		wantModule string
	}{
		{
			name:       "Module Load Breakpoint",
			input:      "Breakpoint 2, sys_init_module (name_user=0x804cb50 \"hostfs\") at module.c:528\n",
			wantKind:   TriggerModuleLoad,
			wantModule: "hostfs",
		},
		{
			name:       "Module Load Split Prefix",
			input:      "some earlier chatter\nBreakpoint 12, sys_init_module (name_user=0xbfff0000 \"netdev\") at module.c:528",
			wantKind:   TriggerModuleLoad,
			wantModule: "netdev",
		},
		{
			name:     "Plain Output Falls Through",
			input:    "Continuing.\n",
			wantKind: TriggerPassthrough,
		},
		{
			name:     "Other Breakpoints Are Not Module Loads",
			input:    "Breakpoint 3, panic (fmt=0x80a0 \"oops\") at panic.c:40\n",
			wantKind: TriggerPassthrough,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := table.Match([]byte(tt.input))
			if assert.NotNil(t, ev) {
				assert.Equal(t, tt.wantKind, ev.Kind)
				assert.Equal(t, tt.wantModule, ev.Module)
			}
		})
	}
}

func TestTableMatchEmpty(t *testing.T) {
	ev := DefaultTable().Match(nil)
	assert.Nil(t, ev)
}

func TestTableOrderingPriority(t *testing.T) {
	// The module-load rule must win even though the passthrough rule would
	// also match the same span.
	line := []byte("Breakpoint 7, sys_init_module (name_user=0x1234 \"isofs\") at module.c:528\n")
	ev := DefaultTable().Match(line)
	if assert.NotNil(t, ev) {
		assert.Equal(t, TriggerModuleLoad, ev.Kind)
		assert.Equal(t, "isofs", ev.Module)
		assert.Equal(t, ev.End, len("Breakpoint 7, sys_init_module (name_user=0x1234 \"isofs\""))
	}
}
