package analyzer

import (
	"math"
	"math/big"

	"plc/ast"
	"plc/environment"
	"plc/scope"
)

var (
	int32Min = big.NewInt(math.MinInt32)
	int32Max = big.NewInt(math.MaxInt32)
)

// Analyzer carries the state threaded through a single analysis run:
// the scope chain, the function currently being checked (for RETURN),
// and the side table under construction.
type Analyzer struct {
	root       *scope.Scope
	funcStack  []*environment.Function
	resolution *Resolution
}

// Analyze walks src once, per spec.md §4.2, and returns the resolved
// side table, or the first AnalysisError encountered. On either
// outcome the scope the caller holds is left exactly as it was found
// (Analyze owns and discards its own root scope).
func Analyze(src *ast.Source) (*Resolution, error) {
	a := &Analyzer{root: scope.New(), resolution: newResolution()}
	registerBuiltinSignatures(a.root)
	if err := a.analyzeSource(src); err != nil {
		return nil, err
	}
	return a.resolution, nil
}

// registerBuiltinSignatures defines the three builtins' static
// signatures (spec.md §4.4) in root, so calls to them type-check the
// same way a user-declared function would. The interpreter registers
// its own, separately bodied handles for the same three names; nothing
// here is ever invoked.
func registerBuiltinSignatures(root *scope.Scope) {
	must := func(name string, paramTypes []environment.Type, returnType environment.Type) {
		_ = root.DefineFunction(name, &environment.Function{
			SourceName: name,
			TargetName: name,
			ParamTypes: paramTypes,
			ReturnType: returnType,
		})
	}
	must("print", []environment.Type{environment.Any}, environment.Nil)
	must("logarithm", []environment.Type{environment.Decimal}, environment.Decimal)
	must("converter", []environment.Type{environment.Integer, environment.Integer}, environment.String)
}

func (a *Analyzer) analyzeSource(src *ast.Source) error {
	for _, g := range src.Globals {
		if err := a.analyzeGlobal(g); err != nil {
			return err
		}
	}
	for _, f := range src.Functions {
		if err := a.analyzeFunction(f); err != nil {
			return err
		}
	}
	main, ok := a.root.LookupFunction("main", 0)
	if !ok || main.ReturnType != environment.Integer {
		return newError(0, "program must declare a function main() with no parameters returning Integer")
	}
	return nil
}

func (a *Analyzer) analyzeGlobal(g *ast.Global) error {
	declared, ok := environment.LookupType(g.TypeName)
	if !ok {
		return newError(g.Offset, "unknown type %q", g.TypeName)
	}
	if list, ok := g.Init.(*ast.List); ok {
		if err := a.analyzeListLiteral(list, declared, a.root); err != nil {
			return err
		}
	} else if g.Init != nil {
		initType, err := a.analyzeExpression(g.Init, a.root)
		if err != nil {
			return err
		}
		if !environment.Assignable(declared, initType) {
			return newError(g.Offset, "cannot assign %s to global %q of type %s", initType, g.Name, declared)
		}
	}
	v := environment.NewVariable(g.Name, declared, g.Mutable)
	if err := a.root.DefineVariable(g.Name, v); err != nil {
		return newError(g.Offset, "%s", err)
	}
	a.resolution.Globals[g] = v
	return nil
}

func (a *Analyzer) analyzeFunction(f *ast.Function) error {
	paramTypes := make([]environment.Type, len(f.ParamTypeNames))
	for i, name := range f.ParamTypeNames {
		t, ok := environment.LookupType(name)
		if !ok {
			return newError(f.Offset, "unknown parameter type %q", name)
		}
		paramTypes[i] = t
	}
	returnType := environment.Nil
	if f.ReturnTypeName != "" {
		t, ok := environment.LookupType(f.ReturnTypeName)
		if !ok {
			return newError(f.Offset, "unknown return type %q", f.ReturnTypeName)
		}
		returnType = t
	}

	handle := &environment.Function{
		SourceName: f.Name,
		TargetName: f.Name,
		ParamNames: append([]string(nil), f.ParamNames...),
		ParamTypes: paramTypes,
		ReturnType: returnType,
	}
	if err := a.root.DefineFunction(f.Name, handle); err != nil {
		return newError(f.Offset, "%s", err)
	}
	a.resolution.Functions[f] = handle

	body := scope.Push(a.root)
	for i, name := range f.ParamNames {
		param := environment.NewVariable(name, paramTypes[i], true)
		if err := body.DefineVariable(name, param); err != nil {
			return newError(f.Offset, "%s", err)
		}
	}

	a.funcStack = append(a.funcStack, handle)
	err := a.analyzeBlock(f.Body, body)
	a.funcStack = a.funcStack[:len(a.funcStack)-1]
	return err
}

func (a *Analyzer) analyzeBlock(stmts []ast.Statement, s *scope.Scope) error {
	for _, stmt := range stmts {
		if err := a.analyzeStatement(stmt, s); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) analyzeStatement(stmt ast.Statement, s *scope.Scope) error {
	switch node := stmt.(type) {
	case *ast.ExpressionStmt:
		if _, ok := node.Expr.(*ast.Call); !ok {
			return newError(node.Offset, "expression statement must be a call")
		}
		_, err := a.analyzeExpression(node.Expr, s)
		return err

	case *ast.Declaration:
		return a.analyzeDeclaration(node, s)

	case *ast.Assignment:
		return a.analyzeAssignment(node, s)

	case *ast.If:
		return a.analyzeIf(node, s)

	case *ast.Switch:
		return a.analyzeSwitch(node, s)

	case *ast.While:
		return a.analyzeWhile(node, s)

	case *ast.Return:
		return a.analyzeReturn(node, s)

	default:
		return newError(0, "unhandled statement type %T", stmt)
	}
}

func (a *Analyzer) analyzeDeclaration(node *ast.Declaration, s *scope.Scope) error {
	if node.TypeName == "" && node.Init == nil {
		return newError(node.Offset, "declaration of %q needs a type, an initializer, or both", node.Name)
	}
	var declared environment.Type
	hasDeclared := false
	if node.TypeName != "" {
		t, ok := environment.LookupType(node.TypeName)
		if !ok {
			return newError(node.Offset, "unknown type %q", node.TypeName)
		}
		declared = t
		hasDeclared = true
	}
	var finalType environment.Type
	if node.Init != nil {
		initType, err := a.analyzeExpression(node.Init, s)
		if err != nil {
			return err
		}
		if hasDeclared && !environment.Assignable(declared, initType) {
			return newError(node.Offset, "cannot assign %s to %q of type %s", initType, node.Name, declared)
		}
		if hasDeclared {
			finalType = declared
		} else {
			finalType = initType
		}
	} else {
		finalType = declared
	}
	v := environment.NewVariable(node.Name, finalType, true)
	if err := s.DefineVariable(node.Name, v); err != nil {
		return newError(node.Offset, "%s", err)
	}
	return nil
}

func (a *Analyzer) analyzeAssignment(node *ast.Assignment, s *scope.Scope) error {
	access, ok := node.Receiver.(*ast.Access)
	if !ok {
		return newError(node.Offset, "assignment target must be a variable or indexed access")
	}
	receiverType, err := a.analyzeExpression(access, s)
	if err != nil {
		return err
	}
	valueType, err := a.analyzeExpression(node.Value, s)
	if err != nil {
		return err
	}
	if !environment.Assignable(receiverType, valueType) {
		return newError(node.Offset, "cannot assign %s to %s", valueType, receiverType)
	}
	return nil
}

func (a *Analyzer) analyzeIf(node *ast.If, s *scope.Scope) error {
	condType, err := a.analyzeExpression(node.Cond, s)
	if err != nil {
		return err
	}
	if condType != environment.Boolean {
		return newError(node.Offset, "if condition must be Boolean, got %s", condType)
	}
	if len(node.Then) == 0 {
		return newError(node.Offset, "if branch must not be empty")
	}
	if err := a.analyzeBlock(node.Then, scope.Push(s)); err != nil {
		return err
	}
	if node.Else != nil {
		if err := a.analyzeBlock(node.Else, scope.Push(s)); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) analyzeSwitch(node *ast.Switch, s *scope.Scope) error {
	condType, err := a.analyzeExpression(node.Cond, s)
	if err != nil {
		return err
	}
	for i, c := range node.Cases {
		isLast := i == len(node.Cases)-1
		if isLast {
			if c.Value != nil {
				return newError(c.Offset, "final switch case must be the default (no value)")
			}
		} else {
			if c.Value == nil {
				return newError(c.Offset, "non-final switch case must carry a value")
			}
			valueType, err := a.analyzeExpression(c.Value, s)
			if err != nil {
				return err
			}
			if !environment.Assignable(condType, valueType) {
				return newError(c.Offset, "case value of type %s not assignable to condition type %s", valueType, condType)
			}
		}
		if err := a.analyzeBlock(c.Body, scope.Push(s)); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) analyzeWhile(node *ast.While, s *scope.Scope) error {
	condType, err := a.analyzeExpression(node.Cond, s)
	if err != nil {
		return err
	}
	if condType != environment.Boolean {
		return newError(node.Offset, "while condition must be Boolean, got %s", condType)
	}
	return a.analyzeBlock(node.Body, scope.Push(s))
}

func (a *Analyzer) analyzeReturn(node *ast.Return, s *scope.Scope) error {
	if len(a.funcStack) == 0 {
		return newError(node.Offset, "return outside of a function")
	}
	fn := a.funcStack[len(a.funcStack)-1]
	valueType, err := a.analyzeExpression(node.Value, s)
	if err != nil {
		return err
	}
	if !environment.Assignable(fn.ReturnType, valueType) {
		return newError(node.Offset, "cannot return %s from function returning %s", valueType, fn.ReturnType)
	}
	return nil
}

func (a *Analyzer) analyzeExpression(expr ast.Expression, s *scope.Scope) (environment.Type, error) {
	switch node := expr.(type) {
	case *ast.Literal:
		return a.analyzeLiteral(node)
	case *ast.Group:
		return a.analyzeGroup(node, s)
	case *ast.Binary:
		return a.analyzeBinary(node, s)
	case *ast.Access:
		return a.analyzeAccess(node, s)
	case *ast.Call:
		return a.analyzeCall(node, s)
	case *ast.List:
		return environment.Any, newError(0, "list literal outside a global initializer")
	default:
		return environment.Any, newError(0, "unhandled expression type %T", expr)
	}
}

func (a *Analyzer) record(expr ast.Expression, t environment.Type) environment.Type {
	a.resolution.Types[expr] = t
	return t
}

func (a *Analyzer) analyzeLiteral(node *ast.Literal) (environment.Type, error) {
	switch node.Kind {
	case ast.LitNull:
		return a.record(node, environment.Nil), nil
	case ast.LitBoolean:
		return a.record(node, environment.Boolean), nil
	case ast.LitCharacter:
		return a.record(node, environment.Character), nil
	case ast.LitString:
		return a.record(node, environment.String), nil
	case ast.LitInteger:
		if node.Int.Cmp(int32Min) < 0 || node.Int.Cmp(int32Max) > 0 {
			return environment.Any, newError(node.Offset, "integer literal %s out of 32-bit range", node.Int.String())
		}
		return a.record(node, environment.Integer), nil
	case ast.LitDecimal:
		f, _ := node.Decimal.Float64()
		if math.IsInf(f, 0) {
			return environment.Any, newError(node.Offset, "decimal literal %s has infinite magnitude", node.Decimal.String())
		}
		return a.record(node, environment.Decimal), nil
	default:
		return environment.Any, newError(node.Offset, "unhandled literal kind")
	}
}

func (a *Analyzer) analyzeGroup(node *ast.Group, s *scope.Scope) (environment.Type, error) {
	if _, ok := node.Inner.(*ast.Binary); !ok {
		return environment.Any, newError(node.Offset, "grouped expression must be a binary expression")
	}
	innerType, err := a.analyzeExpression(node.Inner, s)
	if err != nil {
		return environment.Any, err
	}
	return a.record(node, innerType), nil
}

func (a *Analyzer) analyzeBinary(node *ast.Binary, s *scope.Scope) (environment.Type, error) {
	leftType, err := a.analyzeExpression(node.Left, s)
	if err != nil {
		return environment.Any, err
	}
	rightType, err := a.analyzeExpression(node.Right, s)
	if err != nil {
		return environment.Any, err
	}

	switch node.Operator {
	case "&&", "||":
		if leftType != environment.Boolean || rightType != environment.Boolean {
			return environment.Any, newError(node.Offset, "%s requires Boolean operands, got %s and %s", node.Operator, leftType, rightType)
		}
		return a.record(node, environment.Boolean), nil

	case "<", ">", "==", "!=":
		if !environment.Assignable(environment.Comparable, leftType) || !environment.Assignable(environment.Comparable, rightType) {
			return environment.Any, newError(node.Offset, "%s requires comparable operands, got %s and %s", node.Operator, leftType, rightType)
		}
		if leftType != rightType {
			return environment.Any, newError(node.Offset, "%s requires matching operand types, got %s and %s", node.Operator, leftType, rightType)
		}
		return a.record(node, environment.Boolean), nil

	case "+":
		if leftType == environment.String || rightType == environment.String {
			return a.record(node, environment.String), nil
		}
		if leftType == environment.Integer && rightType == environment.Integer {
			return a.record(node, environment.Integer), nil
		}
		if leftType == environment.Decimal && rightType == environment.Decimal {
			return a.record(node, environment.Decimal), nil
		}
		return environment.Any, newError(node.Offset, "+ cannot combine %s and %s", leftType, rightType)

	case "-", "*", "/":
		if leftType == environment.Integer && rightType == environment.Integer {
			return a.record(node, environment.Integer), nil
		}
		if leftType == environment.Decimal && rightType == environment.Decimal {
			return a.record(node, environment.Decimal), nil
		}
		return environment.Any, newError(node.Offset, "%s requires matching Integer or Decimal operands, got %s and %s", node.Operator, leftType, rightType)

	case "^":
		if leftType == environment.Integer && rightType == environment.Integer {
			return a.record(node, environment.Integer), nil
		}
		return environment.Any, newError(node.Offset, "^ requires Integer operands, got %s and %s", leftType, rightType)

	default:
		return environment.Any, newError(node.Offset, "unknown operator %q", node.Operator)
	}
}

func (a *Analyzer) analyzeAccess(node *ast.Access, s *scope.Scope) (environment.Type, error) {
	v, ok := s.LookupVariable(node.Name)
	if !ok {
		return environment.Any, newError(node.Offset, "undefined variable %q", node.Name)
	}
	a.resolution.Variables[node] = v
	if node.Index != nil {
		indexType, err := a.analyzeExpression(node.Index, s)
		if err != nil {
			return environment.Any, err
		}
		if indexType != environment.Integer {
			return environment.Any, newError(node.Offset, "list index must be Integer, got %s", indexType)
		}
	}
	return a.record(node, v.Type), nil
}

func (a *Analyzer) analyzeCall(node *ast.Call, s *scope.Scope) (environment.Type, error) {
	f, ok := s.LookupFunction(node.Name, len(node.Args))
	if !ok {
		return environment.Any, newError(node.Offset, "undefined function %s/%d", node.Name, len(node.Args))
	}
	a.resolution.Calls[node] = f
	for i, arg := range node.Args {
		argType, err := a.analyzeExpression(arg, s)
		if err != nil {
			return environment.Any, err
		}
		if !environment.Assignable(f.ParamTypes[i], argType) {
			return environment.Any, newError(node.Offset, "argument %d to %s: cannot assign %s to %s", i+1, node.Name, argType, f.ParamTypes[i])
		}
	}
	return a.record(node, f.ReturnType), nil
}

// analyzeListLiteral type-checks a global's List initializer against
// the global's own declared element type; it is only reachable from
// analyzeGlobal, since spec.md §4.2 scopes List literals to that one
// context.
func (a *Analyzer) analyzeListLiteral(node *ast.List, elementType environment.Type, s *scope.Scope) error {
	for _, el := range node.Elements {
		elType, err := a.analyzeExpression(el, s)
		if err != nil {
			return err
		}
		if !environment.Assignable(elementType, elType) {
			return newError(node.Offset, "list element of type %s not assignable to %s", elType, elementType)
		}
	}
	a.resolution.Types[node] = elementType
	return nil
}
