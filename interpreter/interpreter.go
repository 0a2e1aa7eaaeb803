// Package interpreter implements the tree-walking evaluator of
// spec.md §4.4: it walks an already-analyzed *ast.Source against its
// own runtime scope.Scope chain, independent of the analyzer's.
//
// The interpreter deliberately does not consult the analyzer's
// Resolution side table: every Value it produces is self-describing
// (Value.Kind), so name and arity resolution is redone here against a
// fresh scope chain, exactly as spec.md §4.4 asks for ("a fresh
// runtime scope stack, distinct from the analyzer's"). The generator
// does not read the side table either; it works from the type names
// carried on the AST nodes.
package interpreter

import (
	"io"
	"math"
	"math/big"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"plc/ast"
	"plc/environment"
	"plc/scope"
)

// Interpreter executes a *ast.Source that has already passed analysis.
type Interpreter struct {
	out io.Writer
}

// New constructs an Interpreter that writes print/1 output to out. A
// nil out defaults to os.Stdout.
func New(out io.Writer) *Interpreter {
	if out == nil {
		out = os.Stdout
	}
	return &Interpreter{out: out}
}

// Run binds every global then every function into a fresh root scope,
// then invokes main() and returns its result (spec.md §4.4's top-level
// rule). src must already have passed analyzer.Analyze.
func (in *Interpreter) Run(src *ast.Source) (environment.Value, error) {
	root := scope.New()
	registerBuiltins(root, in.out)

	for _, g := range src.Globals {
		v, err := in.bindGlobal(g, root)
		if err != nil {
			return environment.Null, err
		}
		if err := root.DefineVariable(g.Name, v); err != nil {
			return environment.Null, newError(g.Offset, "%s", err)
		}
	}

	for _, f := range src.Functions {
		handle := in.makeFunction(f, root)
		if err := root.DefineFunction(f.Name, handle); err != nil {
			return environment.Null, newError(f.Offset, "%s", err)
		}
	}

	main, ok := root.LookupFunction("main", 0)
	if !ok {
		return environment.Null, newError(0, "no function main() defined")
	}
	return main.Invoke(nil)
}

func (in *Interpreter) bindGlobal(g *ast.Global, s *scope.Scope) (*environment.Variable, error) {
	declared, _ := environment.LookupType(g.TypeName)
	value := environment.Null
	if g.Init != nil {
		v, err := in.evalExpression(g.Init, s)
		if err != nil {
			return nil, err
		}
		value = v
	}
	variable := environment.NewVariable(g.Name, declared, g.Mutable)
	variable.Value = value
	return variable, nil
}

// makeFunction builds the runtime Function handle for f: a closure
// capturing root, the scope in effect at the point of definition, so
// recursive and mutually recursive calls resolve (spec.md §9).
func (in *Interpreter) makeFunction(f *ast.Function, root *scope.Scope) *environment.Function {
	paramTypes := make([]environment.Type, len(f.ParamTypeNames))
	for i, name := range f.ParamTypeNames {
		paramTypes[i], _ = environment.LookupType(name)
	}
	returnType := environment.Nil
	if f.ReturnTypeName != "" {
		returnType, _ = environment.LookupType(f.ReturnTypeName)
	}

	return &environment.Function{
		SourceName: f.Name,
		TargetName: f.Name,
		ParamNames: f.ParamNames,
		ParamTypes: paramTypes,
		ReturnType: returnType,
		Body: func(args []environment.Value) (environment.Value, error) {
			callScope := scope.Push(root)
			for i, name := range f.ParamNames {
				p := environment.NewVariable(name, paramTypes[i], true)
				p.Value = args[i]
				if err := callScope.DefineVariable(name, p); err != nil {
					return environment.Null, newError(f.Offset, "%s", err)
				}
			}
			fl, err := in.execBlock(f.Body, callScope)
			if err != nil {
				return environment.Null, err
			}
			if fl.returning {
				return fl.value, nil
			}
			return environment.Null, nil
		},
	}
}

func (in *Interpreter) execBlock(stmts []ast.Statement, s *scope.Scope) (flow, error) {
	for _, stmt := range stmts {
		fl, err := in.execStatement(stmt, s)
		if err != nil {
			return noFlow, err
		}
		if fl.returning {
			return fl, nil
		}
	}
	return noFlow, nil
}

func (in *Interpreter) execStatement(stmt ast.Statement, s *scope.Scope) (flow, error) {
	switch node := stmt.(type) {
	case *ast.ExpressionStmt:
		_, err := in.evalExpression(node.Expr, s)
		return noFlow, err

	case *ast.Declaration:
		value := environment.Null
		if node.Init != nil {
			v, err := in.evalExpression(node.Init, s)
			if err != nil {
				return noFlow, err
			}
			value = v
		}
		declared, _ := environment.LookupType(node.TypeName)
		variable := environment.NewVariable(node.Name, declared, true)
		variable.Value = value
		if err := s.DefineVariable(node.Name, variable); err != nil {
			return noFlow, newError(node.Offset, "%s", err)
		}
		return noFlow, nil

	case *ast.Assignment:
		return noFlow, in.execAssignment(node, s)

	case *ast.If:
		cond, err := in.evalExpression(node.Cond, s)
		if err != nil {
			return noFlow, err
		}
		if cond.Kind != environment.ValBoolean {
			return noFlow, newError(node.Offset, "if condition did not evaluate to a boolean")
		}
		if cond.Bool {
			return in.execBlock(node.Then, scope.Push(s))
		}
		if node.Else != nil {
			return in.execBlock(node.Else, scope.Push(s))
		}
		return noFlow, nil

	case *ast.Switch:
		return in.execSwitch(node, s)

	case *ast.While:
		for {
			cond, err := in.evalExpression(node.Cond, s)
			if err != nil {
				return noFlow, err
			}
			if cond.Kind != environment.ValBoolean || !cond.Bool {
				return noFlow, nil
			}
			fl, err := in.execBlock(node.Body, scope.Push(s))
			if err != nil {
				return noFlow, err
			}
			if fl.returning {
				return fl, nil
			}
		}

	case *ast.Return:
		v, err := in.evalExpression(node.Value, s)
		if err != nil {
			return noFlow, err
		}
		return returning(v), nil

	default:
		return noFlow, newError(0, "unhandled statement type %T", stmt)
	}
}

func (in *Interpreter) execAssignment(node *ast.Assignment, s *scope.Scope) error {
	access, ok := node.Receiver.(*ast.Access)
	if !ok {
		return newError(node.Offset, "assignment target must be a variable or indexed access")
	}
	variable, ok := s.LookupVariable(access.Name)
	if !ok {
		return newError(node.Offset, "undefined variable %q", access.Name)
	}
	if !variable.Mutable {
		return newError(node.Offset, "cannot assign to immutable %q", access.Name)
	}
	value, err := in.evalExpression(node.Value, s)
	if err != nil {
		return err
	}
	if access.Index != nil {
		if variable.Value.Kind != environment.ValList {
			return newError(node.Offset, "%q is not a list", access.Name)
		}
		idx, err := in.evalIndex(access.Index, s)
		if err != nil {
			return err
		}
		elements := variable.Value.List.Elements
		if idx < 0 || idx >= len(elements) {
			return newError(node.Offset, "index %d out of range for %q", idx, access.Name)
		}
		elements[idx] = value
		return nil
	}
	variable.Value = value
	return nil
}

func (in *Interpreter) execSwitch(node *ast.Switch, s *scope.Scope) (flow, error) {
	cond, err := in.evalExpression(node.Cond, s)
	if err != nil {
		return noFlow, err
	}
	for _, c := range node.Cases {
		if c.Value == nil {
			return in.execBlock(c.Body, scope.Push(s))
		}
		caseValue, err := in.evalExpression(c.Value, s)
		if err != nil {
			return noFlow, err
		}
		if cond.Equal(caseValue) {
			return in.execBlock(c.Body, scope.Push(s))
		}
	}
	return noFlow, nil
}

func (in *Interpreter) evalIndex(expr ast.Expression, s *scope.Scope) (int, error) {
	v, err := in.evalExpression(expr, s)
	if err != nil {
		return 0, err
	}
	if v.Kind != environment.ValInteger {
		return 0, newError(0, "index must be an integer")
	}
	if !v.Int.IsInt64() {
		return 0, newError(0, "index %s is out of range", v.Int.String())
	}
	i64 := v.Int.Int64()
	if i64 < math.MinInt || i64 > math.MaxInt {
		return 0, newError(0, "index %s is out of range", v.Int.String())
	}
	return int(i64), nil
}

func (in *Interpreter) evalExpression(expr ast.Expression, s *scope.Scope) (environment.Value, error) {
	switch node := expr.(type) {
	case *ast.Literal:
		return in.evalLiteral(node), nil
	case *ast.Group:
		return in.evalExpression(node.Inner, s)
	case *ast.Binary:
		return in.evalBinary(node, s)
	case *ast.Access:
		return in.evalAccess(node, s)
	case *ast.Call:
		return in.evalCall(node, s)
	case *ast.List:
		elements := make([]environment.Value, len(node.Elements))
		for i, el := range node.Elements {
			v, err := in.evalExpression(el, s)
			if err != nil {
				return environment.Null, err
			}
			elements[i] = v
		}
		return environment.NewList(elements), nil
	default:
		return environment.Null, newError(0, "unhandled expression type %T", expr)
	}
}

func (in *Interpreter) evalLiteral(node *ast.Literal) environment.Value {
	switch node.Kind {
	case ast.LitNull:
		return environment.Null
	case ast.LitBoolean:
		return environment.NewBoolean(node.Bool)
	case ast.LitCharacter:
		return environment.NewCharacter(node.Char)
	case ast.LitString:
		return environment.NewString(node.Str)
	case ast.LitInteger:
		return environment.NewInteger(new(big.Int).Set(node.Int))
	case ast.LitDecimal:
		return environment.NewDecimal(node.Decimal)
	default:
		return environment.Null
	}
}

func (in *Interpreter) evalAccess(node *ast.Access, s *scope.Scope) (environment.Value, error) {
	variable, ok := s.LookupVariable(node.Name)
	if !ok {
		return environment.Null, newError(node.Offset, "undefined variable %q", node.Name)
	}
	if node.Index == nil {
		return variable.Value, nil
	}
	if variable.Value.Kind != environment.ValList {
		return environment.Null, newError(node.Offset, "%q is not a list", node.Name)
	}
	idx, err := in.evalIndex(node.Index, s)
	if err != nil {
		return environment.Null, err
	}
	elements := variable.Value.List.Elements
	if idx < 0 || idx >= len(elements) {
		return environment.Null, newError(node.Offset, "index %d out of range for %q", idx, node.Name)
	}
	return elements[idx], nil
}

func (in *Interpreter) evalCall(node *ast.Call, s *scope.Scope) (environment.Value, error) {
	fn, ok := s.LookupFunction(node.Name, len(node.Args))
	if !ok {
		return environment.Null, newError(node.Offset, "undefined function %s/%d", node.Name, len(node.Args))
	}
	args := make([]environment.Value, len(node.Args))
	for i, a := range node.Args {
		v, err := in.evalExpression(a, s)
		if err != nil {
			return environment.Null, err
		}
		args[i] = v
	}
	return fn.Invoke(args)
}

func (in *Interpreter) evalBinary(node *ast.Binary, s *scope.Scope) (environment.Value, error) {
	left, err := in.evalExpression(node.Left, s)
	if err != nil {
		return environment.Null, err
	}

	switch node.Operator {
	case "&&":
		if left.Kind != environment.ValBoolean {
			return environment.Null, newError(node.Offset, "&& requires boolean operands")
		}
		if !left.Bool {
			return environment.NewBoolean(false), nil
		}
		right, err := in.evalExpression(node.Right, s)
		if err != nil {
			return environment.Null, err
		}
		return environment.NewBoolean(right.Bool), nil

	case "||":
		if left.Kind != environment.ValBoolean {
			return environment.Null, newError(node.Offset, "|| requires boolean operands")
		}
		if left.Bool {
			return environment.NewBoolean(true), nil
		}
		right, err := in.evalExpression(node.Right, s)
		if err != nil {
			return environment.Null, err
		}
		return environment.NewBoolean(right.Bool), nil
	}

	right, err := in.evalExpression(node.Right, s)
	if err != nil {
		return environment.Null, err
	}

	switch node.Operator {
	case "==":
		return environment.NewBoolean(left.Equal(right)), nil
	case "!=":
		return environment.NewBoolean(!left.Equal(right)), nil
	case "<", ">":
		return in.evalOrder(node, left, right)
	case "+":
		return in.evalAdd(node, left, right)
	case "-", "*", "/":
		return in.evalArith(node, left, right)
	case "^":
		return in.evalPow(node, left, right)
	default:
		return environment.Null, newError(node.Offset, "unknown operator %q", node.Operator)
	}
}

func (in *Interpreter) evalOrder(node *ast.Binary, left, right environment.Value) (environment.Value, error) {
	var cmp int
	switch left.Kind {
	case environment.ValInteger:
		cmp = left.Int.Cmp(right.Int)
	case environment.ValDecimal:
		cmp = left.Dec.Cmp(right.Dec)
	case environment.ValCharacter:
		cmp = int(left.Char) - int(right.Char)
	case environment.ValString:
		cmp = strings.Compare(left.Str, right.Str)
	default:
		return environment.Null, newError(node.Offset, "%s is not ordered", left)
	}
	if node.Operator == "<" {
		return environment.NewBoolean(cmp < 0), nil
	}
	return environment.NewBoolean(cmp > 0), nil
}

func (in *Interpreter) evalAdd(node *ast.Binary, left, right environment.Value) (environment.Value, error) {
	if left.Kind == environment.ValString || right.Kind == environment.ValString {
		return environment.NewString(left.String() + right.String()), nil
	}
	if left.Kind == environment.ValInteger && right.Kind == environment.ValInteger {
		return environment.NewInteger(new(big.Int).Add(left.Int, right.Int)), nil
	}
	if left.Kind == environment.ValDecimal && right.Kind == environment.ValDecimal {
		return environment.NewDecimal(left.Dec.Add(right.Dec)), nil
	}
	return environment.Null, newError(node.Offset, "+ cannot combine %s and %s", left, right)
}

// evalArith handles -, *, and /. Decimal division rounds half-even at
// decimal.DivisionPrecision digits, matching spec.md §4.4; integer
// division truncates toward zero via big.Int.Quo.
func (in *Interpreter) evalArith(node *ast.Binary, left, right environment.Value) (environment.Value, error) {
	if left.Kind == environment.ValInteger && right.Kind == environment.ValInteger {
		if node.Operator == "/" && right.Int.Sign() == 0 {
			return environment.Null, newError(node.Offset, "division by zero")
		}
		result := new(big.Int)
		switch node.Operator {
		case "-":
			result.Sub(left.Int, right.Int)
		case "*":
			result.Mul(left.Int, right.Int)
		case "/":
			result.Quo(left.Int, right.Int)
		}
		return environment.NewInteger(result), nil
	}
	if left.Kind == environment.ValDecimal && right.Kind == environment.ValDecimal {
		if node.Operator == "/" && right.Dec.IsZero() {
			return environment.Null, newError(node.Offset, "division by zero")
		}
		var result decimal.Decimal
		switch node.Operator {
		case "-":
			result = left.Dec.Sub(right.Dec)
		case "*":
			result = left.Dec.Mul(right.Dec)
		case "/":
			result = divHalfEven(left.Dec, right.Dec, int32(decimal.DivisionPrecision))
		}
		return environment.NewDecimal(result), nil
	}
	return environment.Null, newError(node.Offset, "%s requires matching Integer or Decimal operands, got %s and %s", node.Operator, left, right)
}

// divHalfEven divides a by b to prec fractional digits, rounding an
// exact tie to the nearest even final digit. decimal.Decimal.DivRound
// rounds an exact tie away from zero regardless of parity, which is
// not the HALF_EVEN spec.md §4.4 asks for, so this computes the exact
// truncated quotient and remainder via QuoRem and decides the last
// digit by hand: strictly-more-than-half rounds away from zero,
// strictly-less-than-half truncates, and an exact half only bumps the
// quotient when doing so makes its final digit even.
func divHalfEven(a, b decimal.Decimal, prec int32) decimal.Decimal {
	quo, rem := a.QuoRem(b, prec)
	if rem.IsZero() {
		return quo
	}

	remTwice := rem.Abs().Mul(decimal.NewFromInt(2))
	divisorAbs := b.Abs()
	switch remTwice.Cmp(divisorAbs) {
	case -1:
		return quo
	case 0:
		if quo.Shift(prec).BigInt().Bit(0) == 0 {
			return quo
		}
		fallthrough
	default:
		unit := decimal.New(1, -prec)
		if (a.Sign() < 0) != (b.Sign() < 0) {
			unit = unit.Neg()
		}
		return quo.Add(unit)
	}
}

// evalPow implements Integer ^ Integer. spec.md §9 flags the source's
// large-exponent fallback as arithmetically wrong (it squares the
// partial result instead of multiplying by the base per excess unit).
// big.Int.Exp computes the arbitrary-precision result directly in one
// call, so there is no platform-int ceiling to fall back past and
// nothing to get wrong.
func (in *Interpreter) evalPow(node *ast.Binary, left, right environment.Value) (environment.Value, error) {
	if left.Kind != environment.ValInteger || right.Kind != environment.ValInteger {
		return environment.Null, newError(node.Offset, "^ requires Integer operands")
	}
	if right.Int.Sign() < 0 {
		return environment.Null, newError(node.Offset, "^ requires a non-negative exponent")
	}
	return environment.NewInteger(new(big.Int).Exp(left.Int, right.Int, nil)), nil
}
