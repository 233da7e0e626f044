package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/umlab/gdbpilot"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gdbpilot",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gdbpilot version %s\n", strings.TrimSpace(gdbpilot.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
