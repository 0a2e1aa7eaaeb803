// Package environment holds the "Environment" component of spec.md §2:
// the built-in type registry, the runtime Value representation, the
// Function value (a callable closure), and the Variable cell. Scope
// resolution itself lives in the sibling scope package.
package environment

// Type is one of the closed set of built-in PLC types (spec.md §3).
// Any and Comparable are abstract assignability targets only; no value
// is ever declared with either as its concrete type.
type Type int

const (
	Any Type = iota
	Nil
	Comparable
	Boolean
	Integer
	Decimal
	Character
	String
)

// displayNames are the source-side spellings a user writes in PLC
// source (spec.md §6, case-sensitive).
var displayNames = map[Type]string{
	Any: "Any", Nil: "Nil", Comparable: "Comparable", Boolean: "Boolean",
	Integer: "Integer", Decimal: "Decimal", Character: "Character", String: "String",
}

// targetNames are the codegen-side spellings the generator emits for
// the Java-family target dialect (spec.md §4.5).
var targetNames = map[Type]string{
	Any: "Object", Nil: "Void", Comparable: "Object", Boolean: "boolean",
	Integer: "int", Decimal: "double", Character: "char", String: "String",
}

// byDisplayName resolves a source-side type name back to a Type, used
// by the analyzer, interpreter and generator to resolve the type names
// carried on AST nodes.
var byDisplayName = func() map[string]Type {
	m := make(map[string]Type, len(displayNames))
	for t, n := range displayNames {
		m[n] = t
	}
	return m
}()

// DisplayName returns the source-side spelling of t.
func (t Type) DisplayName() string { return displayNames[t] }

// TargetName returns the codegen-side spelling of t.
func (t Type) TargetName() string { return targetNames[t] }

func (t Type) String() string { return t.DisplayName() }

// LookupType resolves a source type name to a Type. The second return
// value is false for any name outside the closed built-in set.
func LookupType(name string) (Type, bool) {
	t, ok := byDisplayName[name]
	return t, ok
}

// Assignable implements the shared assignability rule of spec.md §4.3:
// target ≟ source passes iff target == source, or target == Any, or
// target == Comparable and source is one of the four comparable kinds.
// The relation is not symmetric.
func Assignable(target, source Type) bool {
	if target == source {
		return true
	}
	if target == Any {
		return true
	}
	if target == Comparable {
		switch source {
		case Integer, Decimal, Character, String:
			return true
		}
	}
	return false
}
