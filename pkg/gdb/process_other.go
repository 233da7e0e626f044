//go:build !linux

package gdb

import "syscall"

func sysProcAttr() *syscall.SysProcAttr {
	return nil
}
