package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/umlab/gdbpilot/internal/cli"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <kernel>",
	Short: "Start a relayed gdb session on a UML kernel binary",
	Long: `Spawns gdb on the given kernel binary, prints the pid to start the target
against, runs the standard breakpoint setup, and then hands the terminal
over. Press Ctrl-] to end the session.`,
	Run: func(cmd *cobra.Command, args []string) {
		target := "./linux"
		switch {
		case len(args) == 1:
			target = args[0]
		case len(args) > 1:
			fmt.Println("Error: at most one kernel binary may be given.")
			os.Exit(1)
		}

		gdbPath, _ := cmd.Flags().GetString("gdb")
		moduleFile, _ := cmd.Flags().GetString("modules")
		searchRoot, _ := cmd.Flags().GetString("search-root")
		timeout, _ := cmd.Flags().GetDuration("timeout")
		logLevel, _ := cmd.Flags().GetString("log-level")
		noColor, _ := cmd.Flags().GetBool("no-color")

		opts := cli.RunOptions{
			Target:     target,
			GdbPath:    gdbPath,
			ModuleFile: moduleFile,
			SearchRoot: searchRoot,
			Timeout:    timeout,
			LogLevel:   logLevel,
			NoColor:    noColor,
		}
		if err := cli.Execute(opts); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Make 'run' the default when a kernel binary is given directly.
	rootCmd.Run = runCmd.Run
	rootCmd.Args = cobra.ArbitraryArgs
}
