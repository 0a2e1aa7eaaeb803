package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/pkg/errors"

	"plc/generator"
)

// translateCmd lexes, parses, and analyzes a .plc source file, then
// emits the generator's target-language translation.
type translateCmd struct {
	outPath string
}

func (*translateCmd) Name() string     { return "translate" }
func (*translateCmd) Synopsis() string { return "Translate PLC source into the target dialect" }
func (*translateCmd) Usage() string {
	return `translate [-o path] <file.plc>:
  Lex, parse, analyze, and translate a PLC source file into the
  Java-family target dialect. Writes to stdout unless -o is given.
`
}

func (t *translateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&t.outPath, "o", "", "write the translated source to this path instead of stdout")
}

func (t *translateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "💥 file not provided\n")
		return subcommands.ExitUsageError
	}

	source, err := readSource(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	src, _, err := frontend(source)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	translated, err := generator.Generate(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if t.outPath == "" {
		fmt.Print(translated)
		return subcommands.ExitSuccess
	}
	if err := os.WriteFile(t.outPath, []byte(translated), 0o644); err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrapf(err, "writing %s", t.outPath))
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
