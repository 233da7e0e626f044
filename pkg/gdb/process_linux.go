//go:build linux

package gdb

import "syscall"

// sysProcAttr ties the debugger's lifetime to ours: if gdbpilot dies without
// a clean teardown, the kernel delivers SIGTERM to the debugger.
func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Pdeathsig: syscall.SIGTERM}
}
