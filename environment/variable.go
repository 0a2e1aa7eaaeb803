package environment

// Variable is the resolved handle for a declared name: a global, a
// local `LET`, or a function parameter (spec.md §3). Its lifetime is
// bound to the scope frame it was defined in; the analyzer and the
// interpreter each allocate their own Variable handles since they keep
// independent scope stacks (spec.md §4.4 — "a fresh runtime scope
// stack, distinct from the analyzer's").
type Variable struct {
	SourceName string
	TargetName string
	Type       Type
	Mutable    bool
	Value      Value
}

// NewVariable creates a Variable cell, initialized to NIL until bound.
func NewVariable(sourceName string, t Type, mutable bool) *Variable {
	return &Variable{
		SourceName: sourceName,
		TargetName: sourceName,
		Type:       t,
		Mutable:    mutable,
		Value:      Null,
	}
}
