// Command fksbuild is a small demonstration and benchmarking harness
// around the fks package: build a perfect-hash set from one or more
// newline-delimited key files and query it. It is deliberately kept out
// of the fks package itself — the core container has no I/O, CLI, or
// logging dependency, matching the "out of scope" boundary the container
// design draws around itself.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cmdRoot = &cobra.Command{
	Use:   "fksbuild",
	Short: "Build and query static perfect-hash sets",
	Long: `
fksbuild builds a perfect-hash set (package fks) from one or more
newline-delimited key files, reporting how the build went, and can look
up individual keys against a built set.
`,
	SilenceErrors: true,
	SilenceUsage:  true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
		os.Exit(0)
	},
}

func main() {
	if err := cmdRoot.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
