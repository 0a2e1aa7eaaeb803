package main

import (
	"os"

	"github.com/pkg/errors"

	"plc/analyzer"
	"plc/ast"
	"plc/lexer"
	"plc/parser"
)

// readSource loads filename wrapped with added context, the way the
// CLI layer wraps every OS/file failure before surfacing it.
func readSource(filename string) (string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", errors.Wrapf(err, "reading %s", filename)
	}
	return string(data), nil
}

// frontend runs the lexer, parser, and analyzer over source in
// sequence, stopping at the first failing stage. It is the shared
// entry point for every subcommand that needs a validated AST.
func frontend(source string) (*ast.Source, *analyzer.Resolution, error) {
	tokens, err := lexer.New(source).Scan()
	if err != nil {
		return nil, nil, errors.Wrap(err, "lexing")
	}
	src, err := parser.Make(tokens).Parse()
	if err != nil {
		return nil, nil, err
	}
	resolution, err := analyzer.Analyze(src)
	if err != nil {
		return nil, nil, err
	}
	return src, resolution, nil
}
