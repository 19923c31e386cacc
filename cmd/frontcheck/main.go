// Command frontcheck is the thin driver around the front-end core: it
// reads source files, runs parse/analyze, and prints diagnostics. The
// core deliberately knows nothing about files or formatting; all of that
// lives here.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "frontcheck",
		Short:         "Parse and analyze translation units with the front-end core",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a .frontcheck.yaml (default: auto-discover)")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable ANSI colors even on a TTY")

	root.AddCommand(newParseCmd())
	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newBootstrapDumpCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "frontcheck:", err)
		os.Exit(1)
	}
}
