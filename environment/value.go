package environment

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// ValueKind tags the payload a Value currently carries.
type ValueKind int

const (
	ValNull ValueKind = iota
	ValBoolean
	ValCharacter
	ValInteger
	ValDecimal
	ValString
	ValList
)

// Value is the runtime object every PLC expression evaluates to
// (spec.md §3). Exactly one payload field is meaningful for a given
// Kind; the zero Value is the null singleton.
type Value struct {
	Kind ValueKind
	Bool bool
	Char rune
	Int  *big.Int
	Dec  decimal.Decimal
	Str  string
	List *List
}

// List is the backing store for a PLC list value. Values of kind
// ValList always hold a pointer to a List, so copying a Value aliases
// the same backing slice — assigning one global/variable list to
// another and mutating through either is observable through both, per
// spec.md §3's "Lists are reference-shared" rule.
type List struct {
	Elements []Value
}

// Null is the NIL singleton.
var Null = Value{Kind: ValNull}

// NewBoolean wraps a boolean as a Value.
func NewBoolean(b bool) Value { return Value{Kind: ValBoolean, Bool: b} }

// NewCharacter wraps a single rune as a Value.
func NewCharacter(r rune) Value { return Value{Kind: ValCharacter, Char: r} }

// NewInteger wraps an arbitrary-precision integer as a Value.
func NewInteger(i *big.Int) Value { return Value{Kind: ValInteger, Int: i} }

// NewIntegerInt64 is a convenience constructor for small integers.
func NewIntegerInt64(i int64) Value { return Value{Kind: ValInteger, Int: big.NewInt(i)} }

// NewDecimal wraps an arbitrary-precision decimal as a Value.
func NewDecimal(d decimal.Decimal) Value { return Value{Kind: ValDecimal, Dec: d} }

// NewString wraps a string as a Value.
func NewString(s string) Value { return Value{Kind: ValString, Str: s} }

// NewList wraps a fresh, independently owned list of elements.
func NewList(elements []Value) Value {
	return Value{Kind: ValList, List: &List{Elements: elements}}
}

// TypeOf reports the declared PLC Type this value's Kind corresponds
// to. List values have no single intrinsic type — callers that need a
// list's element type must track it separately (the declared type of
// the enclosing variable/global), per spec.md §3.
func (v Value) TypeOf() Type {
	switch v.Kind {
	case ValNull:
		return Nil
	case ValBoolean:
		return Boolean
	case ValCharacter:
		return Character
	case ValInteger:
		return Integer
	case ValDecimal:
		return Decimal
	case ValString:
		return String
	default:
		return Any
	}
}

// Equal implements structural value equality, used by `==`/`!=` and by
// the interpreter's switch-case matching (spec.md §4.4).
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case ValNull:
		return true
	case ValBoolean:
		return v.Bool == other.Bool
	case ValCharacter:
		return v.Char == other.Char
	case ValInteger:
		return v.Int.Cmp(other.Int) == 0
	case ValDecimal:
		return v.Dec.Equal(other.Dec)
	case ValString:
		return v.Str == other.Str
	case ValList:
		return v.List == other.List
	default:
		return false
	}
}

// String renders v for the print/1 builtin and for debugging.
func (v Value) String() string {
	switch v.Kind {
	case ValNull:
		return "nil"
	case ValBoolean:
		if v.Bool {
			return "true"
		}
		return "false"
	case ValCharacter:
		return string(v.Char)
	case ValInteger:
		return v.Int.String()
	case ValDecimal:
		return v.Dec.String()
	case ValString:
		return v.Str
	case ValList:
		parts := make([]string, len(v.List.Elements))
		for i, e := range v.List.Elements {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprintf("<value kind %d>", v.Kind)
	}
}
