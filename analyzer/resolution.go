// Package analyzer implements the single post-order walk of spec.md
// §4.2: it resolves every name to a Variable or Function handle,
// attaches a type to every expression, and enforces the typing and
// scoping rules that make an AST safe to run or translate.
//
// Per the source's own design notes (spec.md §9), resolved handles are
// never written back onto the AST nodes. Instead Analyze returns a
// Resolution side table keyed by node pointer identity, so the parsed
// tree stays immutable end to end. Neither back end actually reads this
// table at runtime: the interpreter keeps its own independent runtime
// scope chain (spec.md §4.4) and the generator re-derives target type
// names from the type-name strings already on AST nodes. Resolution's
// role is to be the gate Analyze forces every program through before
// either back end runs, and to give tests and tooling a way to inspect
// what got resolved.
package analyzer

import (
	"plc/ast"
	"plc/environment"
)

// Resolution is the side table an analyzer run produces. Every map is
// keyed by the pointer identity of the node it describes — valid
// because every ast.Expression and every ast.Global/ast.Function is
// always stored and passed as a pointer.
type Resolution struct {
	Types     map[ast.Expression]environment.Type
	Variables map[*ast.Access]*environment.Variable
	Calls     map[*ast.Call]*environment.Function
	Globals   map[*ast.Global]*environment.Variable
	Functions map[*ast.Function]*environment.Function
}

func newResolution() *Resolution {
	return &Resolution{
		Types:     make(map[ast.Expression]environment.Type),
		Variables: make(map[*ast.Access]*environment.Variable),
		Calls:     make(map[*ast.Call]*environment.Function),
		Globals:   make(map[*ast.Global]*environment.Variable),
		Functions: make(map[*ast.Function]*environment.Function),
	}
}

// TypeOf returns the resolved type of expr, recorded during Analyze.
// It panics if expr was never analyzed, which would indicate a bug in
// a back end walking a tree that was never (successfully) resolved.
func (r *Resolution) TypeOf(expr ast.Expression) environment.Type {
	t, ok := r.Types[expr]
	if !ok {
		panic("analyzer: no resolved type for expression")
	}
	return t
}
