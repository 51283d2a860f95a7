// Command tycore is a small demo/debug driver over the type core: given
// two builtin type names it reports their subtype/assignability/
// redundancy/disjointness relation, or resolves a Python environment
// starting from a path. Output is plain text by default, or YAML with
// --format=yaml. Subcommand dispatch is hand-rolled over os.Args, no
// kingpin/cobra.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/tycore-project/tycore/internal/config"
	"github.com/tycore-project/tycore/internal/diag"
	"github.com/tycore-project/tycore/internal/pyenv"
	"github.com/tycore-project/tycore/internal/relation"
	"github.com/tycore-project/tycore/internal/session"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [args...] [--format=text|yaml]\n\n", os.Args[0])
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  relate <a> <b>      report subtype/assignable/redundant/disjoint between two builtin type names")
	fmt.Fprintln(os.Stderr, "  env discover <path> resolve a Python environment starting from path")
	fmt.Fprintln(os.Stderr, "  version             print the tycore version")
}

// takeFormatFlag extracts a trailing "--format=yaml"/"--format=text" flag
// from args (text is the default), returning the remaining positional
// args alongside it.
func takeFormatFlag(args []string) (positional []string, yamlFormat bool) {
	for _, a := range args {
		if a == "--format=yaml" {
			yamlFormat = true
			continue
		}
		if a == "--format=text" {
			continue
		}
		positional = append(positional, a)
	}
	return positional, yamlFormat
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "version", "-version", "--version":
		fmt.Println(config.Version)
	case "relate":
		runRelate(os.Args[2:])
	case "env":
		runEnv(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func colorize() bool {
	return isatty.IsTerminal(os.Stdout.Fd())
}

func multierrErrors(err error) []error {
	if err == nil {
		return nil
	}
	return multierr.Errors(err)
}

// relateResult is the relate subcommand's result shape, used both for
// text rendering and as the --format=yaml payload.
type relateResult struct {
	Left       string `yaml:"left"`
	Right      string `yaml:"right"`
	Subtype    bool   `yaml:"subtype"`
	Assignable bool   `yaml:"assignable"`
	Redundant  bool   `yaml:"redundant"`
	Disjoint   bool   `yaml:"disjoint"`
}

func runRelate(rawArgs []string) {
	args, yamlFormat := takeFormatFlag(rawArgs)
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: tycore relate <a> <b> [--format=yaml]")
		os.Exit(2)
	}

	a, ok1 := builtinType(args[0])
	b, ok2 := builtinType(args[1])
	if !ok1 || !ok2 {
		fmt.Fprintf(os.Stderr, "unrecognized builtin type name (known: object, int, bool, str, None, Any, Never)\n")
		os.Exit(2)
	}

	sess := session.New(context.Background())
	result := relateResult{
		Left:       a.String(),
		Right:      b.String(),
		Subtype:    sess.Engine.HasRelationTo(a, b, relation.Subtyping, relation.Opts{}).Holds,
		Assignable: sess.Engine.HasRelationTo(a, b, relation.Assignability, relation.Opts{}).Holds,
		Redundant:  sess.Engine.HasRelationTo(a, b, relation.Redundancy, relation.Opts{}).Holds,
		Disjoint:   sess.Engine.IsDisjointFrom(a, b),
	}

	if yamlFormat {
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		if err := enc.Encode(result); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	bold := color.New(color.Bold)
	if colorize() {
		bold.Printf("%s vs %s\n", result.Left, result.Right)
	} else {
		fmt.Printf("%s vs %s\n", result.Left, result.Right)
	}
	fmt.Printf("  subtype:     %v\n", result.Subtype)
	fmt.Printf("  assignable:  %v\n", result.Assignable)
	fmt.Printf("  redundant:   %v\n", result.Redundant)
	fmt.Printf("  disjoint:    %v\n", result.Disjoint)
}

// envResult mirrors pyenv.Environment for --format=yaml output; Warnings
// is flattened to strings since a yaml.v3 encoder has no error marshaler.
type envResult struct {
	SysPrefix     string   `yaml:"sys_prefix"`
	Stdlib        string   `yaml:"stdlib"`
	SitePackages  []string `yaml:"site_packages"`
	CreatedWithUV bool     `yaml:"created_with_uv"`
	Warnings      []string `yaml:"warnings,omitempty"`
}

func runEnv(rawArgs []string) {
	args, yamlFormat := takeFormatFlag(rawArgs)
	if len(args) < 2 || args[0] != "discover" {
		fmt.Fprintln(os.Stderr, "Usage: tycore env discover <path> [--format=yaml]")
		os.Exit(2)
	}
	env, err := pyenv.Discover(context.Background(), diag.OriginCLIFlag, args[1], pyenv.OSFileSystem{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if yamlFormat {
		result := envResult{
			SysPrefix:     env.SysPrefix,
			Stdlib:        env.Stdlib,
			SitePackages:  env.SitePackages,
			CreatedWithUV: env.CreatedWithUV,
		}
		for _, w := range multierrErrors(env.Warnings) {
			result.Warnings = append(result.Warnings, w.Error())
		}
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		if err := enc.Encode(result); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Printf("sys.prefix:    %s\n", env.SysPrefix)
	fmt.Printf("stdlib:        %s\n", env.Stdlib)
	fmt.Printf("site-packages:\n")
	for _, p := range env.SitePackages {
		fmt.Printf("  - %s\n", p)
	}
	if env.Warnings != nil {
		fmt.Fprintf(os.Stderr, "warnings: %v\n", env.Warnings)
	}
}
