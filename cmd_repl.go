package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"

	"plc/interpreter"
)

// replCmd is an interactive read-eval-print loop. PLC programs are
// only well-formed at the granularity of whole globals/functions, so
// the REPL accumulates lines until a blank line, then runs the full
// lex-parse-analyze-interpret pipeline over the buffered snippet —
// the same line-buffered, full-pipeline-per-chunk shape the teacher's
// REPL uses, generalized from single statements to whole PLC programs.
type replCmd struct{}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "Start an interactive PLC session" }
func (*replCmd) Usage() string {
	return `repl:
  Start an interactive read-eval-print loop. Type a complete program
  (globals and functions, including a main), then a blank line to run it.
`
}
func (r *replCmd) SetFlags(f *flag.FlagSet) {}

func (r *replCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      ">>> ",
		HistoryFile: "/tmp/.plc_history",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer rl.Close()

	fmt.Println("PLC interactive session. Type a full program, then a blank line to run it.")
	runREPL(rl, os.Stdout)
	return subcommands.ExitSuccess
}

func runREPL(rl *readline.Instance, out io.Writer) {
	var buffer strings.Builder
	for {
		if buffer.Len() == 0 {
			rl.SetPrompt(">>> ")
		} else {
			rl.SetPrompt("... ")
		}
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return
		}
		if err != nil {
			fmt.Fprintln(out, err)
			return
		}

		if strings.TrimSpace(line) == "" {
			if buffer.Len() == 0 {
				continue
			}
			runSnippet(buffer.String(), out)
			buffer.Reset()
			continue
		}
		buffer.WriteString(line)
		buffer.WriteString("\n")
	}
}

func runSnippet(source string, out io.Writer) {
	src, _, err := frontend(source)
	if err != nil {
		fmt.Fprintln(out, err)
		return
	}
	result, err := interpreter.New(out).Run(src)
	if err != nil {
		fmt.Fprintln(out, err)
		return
	}
	fmt.Fprintln(out, result.String())
}
