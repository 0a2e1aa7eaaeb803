// Package scope implements the lexically nested name resolution
// described in spec.md §3's "Scope" component: a parent pointer plus a
// variable-by-name map and a function-by-(name, arity) map.
//
// Both the analyzer and the interpreter keep their own independent
// Scope chain (spec.md §4.4); this package is agnostic to which one is
// using it.
package scope

import (
	"fmt"

	"plc/environment"
)

type funcKey struct {
	name  string
	arity int
}

// Scope is one lexical frame. The zero value is not usable; construct
// with New or Push.
type Scope struct {
	parent    *Scope
	variables map[string]*environment.Variable
	functions map[funcKey]*environment.Function
}

// New creates a root scope with no parent.
func New() *Scope {
	return &Scope{
		variables: make(map[string]*environment.Variable),
		functions: make(map[funcKey]*environment.Function),
	}
}

// Push returns a fresh scope nested under parent. Every construct that
// enters a new lexical block (a function body, an if/while body, a
// switch case body) must call Push on entry and discard the returned
// scope on every exit path — normal, error, or RETURN unwind — so the
// scope pointer held by the caller is restored to parent (spec.md §5).
func Push(parent *Scope) *Scope {
	return &Scope{
		parent:    parent,
		variables: make(map[string]*environment.Variable),
		functions: make(map[funcKey]*environment.Function),
	}
}

// Parent returns the enclosing scope, or nil at the root.
func (s *Scope) Parent() *Scope { return s.parent }

// DefineVariable binds name to v in this scope. It is an error to
// redefine a name already bound in this same scope (spec.md §3); the
// caller is responsible for shadowing being resolved via LookupVariable
// walking the parent chain rather than forbidding nested redefinition.
func (s *Scope) DefineVariable(name string, v *environment.Variable) error {
	if _, exists := s.variables[name]; exists {
		return fmt.Errorf("variable %q already defined in this scope", name)
	}
	s.variables[name] = v
	return nil
}

// LookupVariable walks the parent chain starting at s, returning the
// first binding found. Absence is reported via the second return
// value; resolution failure is the caller's to turn into an error.
func (s *Scope) LookupVariable(name string) (*environment.Variable, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.variables[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// DefineFunction binds (name, arity) to f in this scope. Redefining
// the same (name, arity) pair in the same scope is an error.
func (s *Scope) DefineFunction(name string, f *environment.Function) error {
	key := funcKey{name, f.Arity()}
	if _, exists := s.functions[key]; exists {
		return fmt.Errorf("function %q/%d already defined in this scope", name, f.Arity())
	}
	s.functions[key] = f
	return nil
}

// LookupFunction walks the parent chain for a (name, arity) binding.
func (s *Scope) LookupFunction(name string, arity int) (*environment.Function, bool) {
	key := funcKey{name, arity}
	for cur := s; cur != nil; cur = cur.parent {
		if f, ok := cur.functions[key]; ok {
			return f, true
		}
	}
	return nil, false
}
