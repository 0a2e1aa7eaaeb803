// Package ast defines the PLC abstract syntax tree (spec.md §3).
//
// The teacher (informatter-nilan) dispatches over its AST with a
// visitor interface implemented by every node. spec.md's own design
// notes call that out as something to re-express for an immutable
// tree: here each node family is a closed sum type (an unexported
// marker method per family) and every back end — analyzer, interpreter,
// generator — dispatches with a plain type switch instead of an
// Accept/Visit pair. Resolved handles (types, Variable, Function) are
// never written back onto these nodes; they live in the analyzer's
// side table, keyed by node pointer identity, so the parsed tree stays
// immutable end to end.
package ast

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Statement is the closed family of statement nodes (spec.md §3).
type Statement interface {
	isStatement()
}

// Expression is the closed family of expression nodes (spec.md §3).
type Expression interface {
	isExpression()
}

// Source is the root of a parsed program: an ordered list of globals
// followed by an ordered list of function declarations.
type Source struct {
	Globals   []*Global
	Functions []*Function
}

// Global is a top-level `LIST`/`VAR`/`VAL` declaration.
type Global struct {
	Name     string
	TypeName string
	Mutable  bool
	Init     Expression // nil when absent
	Offset   int
}

// Function is a top-level `FUN` declaration.
type Function struct {
	Name           string
	ParamNames     []string
	ParamTypeNames []string
	ReturnTypeName string // "" means no declared return type
	Body           []Statement
	Offset         int
}

// ExpressionStmt discards the value of Expr; Expr must be a Call
// (enforced by the analyzer, spec.md §4.2).
type ExpressionStmt struct {
	Expr   Expression
	Offset int
}

func (ExpressionStmt) isStatement() {}

// Declaration is a `LET` statement.
type Declaration struct {
	Name     string
	TypeName string     // "" means absent
	Init     Expression // nil means absent
	Offset   int
}

func (Declaration) isStatement() {}

// Assignment assigns Value to Receiver, which must be an *Access
// (enforced by the analyzer).
type Assignment struct {
	Receiver Expression
	Value    Expression
	Offset   int
}

func (Assignment) isStatement() {}

// If is an `IF cond DO then-block (ELSE else-block)? END`.
type If struct {
	Cond   Expression
	Then   []Statement
	Else   []Statement // nil when absent
	Offset int
}

func (If) isStatement() {}

// Case is one `CASE value: body` arm of a Switch, or the trailing
// `DEFAULT body` arm when Value is nil.
type Case struct {
	Value  Expression // nil marks the default arm
	Body   []Statement
	Offset int
}

// Switch is a `SWITCH cond (CASE value: block)* DEFAULT block END`.
type Switch struct {
	Cond   Expression
	Cases  []*Case
	Offset int
}

func (Switch) isStatement() {}

// While is a `WHILE cond DO body END`.
type While struct {
	Cond   Expression
	Body   []Statement
	Offset int
}

func (While) isStatement() {}

// Return is a `RETURN value;`.
type Return struct {
	Value  Expression
	Offset int
}

func (Return) isStatement() {}

// LiteralKind tags which payload a Literal expression carries.
type LiteralKind int

const (
	LitNull LiteralKind = iota
	LitBoolean
	LitCharacter
	LitString
	LitInteger
	LitDecimal
)

// Literal is a constant expression: null, boolean, character, string,
// or an arbitrary-precision integer/decimal (spec.md §3, §4.1).
type Literal struct {
	Kind    LiteralKind
	Bool    bool
	Char    rune
	Str     string
	Int     *big.Int
	Decimal decimal.Decimal
	Offset  int
}

func (*Literal) isExpression() {}

// Group is a parenthesized expression; its Inner must be a *Binary
// (enforced by the analyzer, spec.md §4.2).
type Group struct {
	Inner  Expression
	Offset int
}

func (*Group) isExpression() {}

// Binary is a two-operand expression with an operator lexeme.
type Binary struct {
	Operator string
	Left     Expression
	Right    Expression
	Offset   int
}

func (*Binary) isExpression() {}

// Access is a variable reference, optionally indexed for list
// subscripting (`name[index]`).
type Access struct {
	Name   string
	Index  Expression // nil when not indexed
	Offset int
}

func (*Access) isExpression() {}

// Call is a function invocation, distinct from Access.
type Call struct {
	Name   string
	Args   []Expression
	Offset int
}

func (*Call) isExpression() {}

// List is an ordered list of value expressions. It appears only as a
// global list initializer (spec.md §4.2's List rule).
type List struct {
	Elements []Expression
	Offset   int
}

func (*List) isExpression() {}
