package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	front "github.com/larklang/compiler"
	"github.com/larklang/compiler/internal/diagnostics"
	"github.com/larklang/compiler/internal/prettyprinter"
	"github.com/larklang/compiler/internal/symbols"
)

var (
	configPath string
	noColor    bool
)

// expandArgs resolves doublestar globs (`src/**/*.lang`) so one
// invocation can batch many translation units through a shared
// bootstrapped registry; each unit still runs whole, never incrementally.
func expandArgs(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			// A literal path that exists but matched no glob still counts.
			if _, statErr := os.Stat(arg); statErr == nil {
				files = append(files, arg)
				continue
			}
			return nil, fmt.Errorf("no files match %q", arg)
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}

func useColor() bool {
	if noColor {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

func printDiagnostics(cfg *Config, diags []diagnostics.Diagnostic) int {
	color := useColor()
	errs := 0
	for _, d := range diags {
		if cfg.Suppressed(d.Code) {
			continue
		}
		if d.Level == diagnostics.Error || d.Level == diagnostics.Fatal {
			errs++
		}
		level := d.Level.String()
		if color {
			switch d.Level {
			case diagnostics.Error, diagnostics.Fatal:
				level = "\x1b[31m" + level + "\x1b[0m"
			case diagnostics.Warning:
				level = "\x1b[33m" + level + "\x1b[0m"
			default:
				level = "\x1b[36m" + level + "\x1b[0m"
			}
		}
		fmt.Printf("%s: %s: %s\n", d.Span, level, d.Message())
	}
	return errs
}

func newParseCmd() *cobra.Command {
	var dump bool
	cmd := &cobra.Command{
		Use:   "parse <files...>",
		Short: "Parse units and report syntax diagnostics",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(configPath)
			if err != nil {
				return err
			}
			cfg.Apply()
			files, err := expandArgs(args)
			if err != nil {
				return err
			}
			errs := 0
			for _, file := range files {
				src, err := os.ReadFile(file)
				if err != nil {
					return err
				}
				program, diags := front.Parse(src, file)
				errs += printDiagnostics(cfg, diags)
				if dump && program != nil {
					fmt.Print(prettyprinter.Print(program))
				}
			}
			if errs > 0 {
				return fmt.Errorf("%d error(s)", errs)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dump, "dump", false, "reprint the parsed AST as canonical source")
	return cmd
}

func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <files...>",
		Short: "Parse and semantically analyze units",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(configPath)
			if err != nil {
				return err
			}
			cfg.Apply()
			files, err := expandArgs(args)
			if err != nil {
				return err
			}
			errs := 0
			for _, file := range files {
				src, err := os.ReadFile(file)
				if err != nil {
					return err
				}
				_, diags := front.Run(src, file)
				errs += printDiagnostics(cfg, diags)
			}
			if errs > 0 {
				return fmt.Errorf("%d error(s)", errs)
			}
			return nil
		},
	}
}

// newBootstrapDumpCmd prints the bootstrapped global scope's symbol
// surface, which is how the canned-prelude bootstrap variant would be
// validated against the hard-coded one.
func newBootstrapDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bootstrap-dump",
		Short: "Print the bootstrapped global scope surface",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := front.Bootstrap()
			var typeNames []string
			for name := range reg.Global.Types() {
				typeNames = append(typeNames, name)
			}
			sort.Strings(typeNames)
			for _, name := range typeNames {
				t, _ := reg.Global.LookupType(name)
				fmt.Printf("type %s (%s)\n", name, t.Category)
			}
			var valueNames []string
			for name := range reg.Global.Symbols() {
				valueNames = append(valueNames, name)
			}
			sort.Strings(valueNames)
			for _, name := range valueNames {
				switch s := reg.Global.Symbols()[name].(type) {
				case *symbols.OverloadSet:
					fmt.Printf("func %s (%d overloads)\n", name, len(s.Funcs))
				case *symbols.FunctionSymbol:
					fmt.Printf("func %s %s\n", name, s.Ty.TypeString())
				default:
					fmt.Printf("value %s\n", name)
				}
			}
			return nil
		},
	}
}
