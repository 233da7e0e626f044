package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

var colorEnabled = true

// DisableColor forces plain output regardless of terminal capabilities.
func DisableColor() {
	colorEnabled = false
}

func profile() termenv.Profile {
	if !colorEnabled {
		return termenv.Ascii
	}
	return termenv.ColorProfile()
}

// PrintBanner outputs the startup header. It stays to a few lines so the
// debugger transcript that follows keeps the screen.
func PrintBanner(version string) {
	p := profile()
	name := termenv.String("gdbpilot").Foreground(p.Color("#34d399")).Bold()
	ver := termenv.String("v" + version).Foreground(p.Color("#64748b"))
	hint := termenv.String("press Ctrl-] to end the session").Foreground(p.Color("#64748b"))

	fmt.Println()
	fmt.Printf("%s %s  kernel module symbols, reloaded on the fly\n", name, ver)
	fmt.Printf("%s\n\n", hint)
}

// Announce prints the debugger's pid and the command line the operator needs
// to start the traced kernel against it. Printed once, before the init
// script runs.
func Announce(pid int, target string) {
	p := profile()
	head := termenv.String(fmt.Sprintf("******** gdb pid is %d ********", pid)).
		Foreground(p.Color("#34d399")).
		Bold()

	fmt.Println(head)
	fmt.Printf("start the target with: %s <args> debug gdb-pid=%d\n\n", target, pid)
}

// Notice prints an automation diagnostic the operator should see. Lines are
// CR/LF terminated because the terminal may be in raw mode.
func Notice(format string, args ...any) {
	p := profile()
	tag := termenv.String("[gdbpilot]").Foreground(p.Color("#34d399"))
	fmt.Printf("\r\n%s %s\r\n", tag, fmt.Sprintf(format, args...))
}

// Warn is Notice for conditions the operator should not ignore.
func Warn(format string, args ...any) {
	p := profile()
	tag := termenv.String("[gdbpilot]").Foreground(p.Color("#fbbf24"))
	fmt.Printf("\r\n%s %s\r\n", tag, fmt.Sprintf(format, args...))
}

// PrintGoodbye confirms the session ended and the terminal was handed back.
func PrintGoodbye() {
	p := profile()
	fmt.Printf("\n%s\n", termenv.String("session ended, terminal restored").Foreground(p.Color("#64748b")))
}
