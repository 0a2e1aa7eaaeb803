package interpreter

import "plc/environment"

// flow is the explicit control-flow signal spec.md §9's design notes
// ask for in place of a non-local throw: execStatement and execBlock
// return one of these alongside an error, and every caller that enters
// a nested block (if/while/switch-case) forwards a returning flow
// straight back up instead of consuming it. Only the call site that
// invoked the enclosing function consumes it.
type flow struct {
	returning bool
	value     environment.Value
}

var noFlow = flow{}

func returning(v environment.Value) flow {
	return flow{returning: true, value: v}
}
