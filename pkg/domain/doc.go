/*
Package domain contains the core domain model for a gdbpilot session.

It defines the immutable session configuration, the ordered trigger table
matched against debugger output, and the sentinel errors shared between the
session loop and its callers. The package is kept pure and free of I/O so
every consumer (session loop, symbol resolver, CLI) agrees on one vocabulary.

# Key Entities

  - Config: per-session configuration, built once at startup, never mutated.
  - TriggerRule / Table: ordered output-matching rules; first match wins.
  - Event: the outcome of matching one span of debugger output.
*/
package domain
