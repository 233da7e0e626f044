package gdbpilot

// Version is the current gdbpilot release.
var Version = "0.2.0"
