package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gdbpilot",
	Short: "gdbpilot drives gdb for User-Mode Linux kernel debugging",
	Long: `gdbpilot spawns gdb on a UML kernel binary and relays your terminal to it.
When the kernel loads a module, it reloads gdb's symbol tables with the
module's object file mapped at the right address, so breakpoints in module
code just work.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("gdb", "gdb", "Debugger executable to spawn")
	rootCmd.PersistentFlags().String("modules", "modules.yaml", "YAML table mapping module names to symbol files")
	rootCmd.PersistentFlags().String("search-root", "", "Directory searched for <module>.o on a table miss (default /lib/modules)")
	rootCmd.PersistentFlags().Duration("timeout", 5*time.Second, "Bound on each scripted symbol-reload exchange")
	rootCmd.PersistentFlags().String("log-level", "error", "Diagnostic verbosity on stderr (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable styled output")
}
