/*
Package gdbpilot automates gdb sessions against a User-Mode Linux kernel.

It sits between the operator's terminal and a spawned gdb, relaying every
byte in both directions while watching the debugger's output for one event:
the breakpoint that fires when the kernel maps a loadable module. On that
event it runs a short scripted exchange against gdb to reload the symbol
tables with the new module included, then returns the terminal to the
operator as if nothing had interrupted.

# Concept

Driving gdb stays entirely in the operator's hands. The session only takes
over for the module-load script: step out of the breakpoint frame, read the
module's load address from the kernel's module list, find the module's .o
file, and issue symbol-file plus add-symbol-file with the confirmations gdb
asks for. Module object files come from a static name-to-path table or, on a
miss, from a search under /lib/modules/<version> using the version string
the kernel binary reports.

# Structure

  - pkg/session: the relay loop, the expect primitive, and the module-load
    script.
  - pkg/gdb: the spawned debugger process and its output pump.
  - pkg/console: the operator terminal, including raw mode handling.
  - pkg/symbols: module name to symbol file resolution.
  - pkg/domain: trigger patterns, session configuration, sentinel errors.

The cmd/gdbpilot binary wires these together; see internal/cli for the
orchestration.
*/
package gdbpilot
