// Package generator implements the source-to-source translator of
// spec.md §4.5: it walks an analyzed *ast.Source and emits an
// equivalent program in a C-family (Java-flavored) target dialect —
// a single class, globals as fields, a static main delegating to an
// instance method via a process-exit call, and one target method per
// PLC function.
//
// Like the interpreter, the generator works directly off the AST and
// re-derives target type names from the type-name strings already
// carried by Global/Function/Declaration nodes via environment.LookupType,
// rather than threading the analyzer's Resolution through — both
// back ends are independent consumers of the same analyzed tree.
package generator

import (
	"fmt"
	"strings"

	"plc/ast"
	"plc/environment"
)

// className is the fixed name of the single emitted class. The target
// dialect has no module system (spec.md §1's Non-goals), so one class
// per translated program is all the contract calls for.
const className = "Program"

// Generator accumulates emitted text for one Source.
type Generator struct {
	out   strings.Builder
	depth int
}

// Generate translates src into the target dialect's source text. src
// must already have passed analyzer.Analyze; Generate does not repeat
// type or scope checking and instead fails only if a type name cannot
// be resolved, which analysis should have already ruled out.
func Generate(src *ast.Source) (string, error) {
	g := &Generator{}
	if err := g.source(src); err != nil {
		return "", err
	}
	return g.out.String(), nil
}

func (g *Generator) line(format string, args ...any) {
	g.out.WriteString(strings.Repeat("    ", g.depth))
	fmt.Fprintf(&g.out, format, args...)
	g.out.WriteString("\n")
}

func (g *Generator) source(src *ast.Source) error {
	g.line("class %s {", className)
	g.depth++

	for _, global := range src.Globals {
		if err := g.global(global); err != nil {
			return err
		}
	}
	if len(src.Globals) > 0 {
		g.out.WriteString("\n")
	}

	for _, fn := range src.Functions {
		if err := g.function(fn); err != nil {
			return err
		}
		g.out.WriteString("\n")
	}

	g.line("public static void main(String[] args) {")
	g.depth++
	g.line("System.exit(new %s().main());", className)
	g.depth--
	g.line("}")

	g.depth--
	g.line("}")
	return nil
}

// global emits a `LIST`/`VAR`/`VAL` as a field. List-typed globals are
// detected by their initializer shape: the grammar only ever attaches
// an *ast.List initializer to a LIST declaration.
func (g *Generator) global(global *ast.Global) error {
	t, ok := environment.LookupType(global.TypeName)
	if !ok {
		return fmt.Errorf("generator: unknown type %q on global %q", global.TypeName, global.Name)
	}
	targetType := t.TargetName()
	if _, isList := global.Init.(*ast.List); isList {
		targetType += "[]"
	}
	modifier := "private "
	if !global.Mutable {
		modifier += "final "
	}
	if global.Init == nil {
		g.line("%s%s %s;", modifier, targetType, global.Name)
		return nil
	}
	init, err := g.expression(global.Init)
	if err != nil {
		return err
	}
	g.line("%s%s %s = %s;", modifier, targetType, global.Name, init)
	return nil
}

func (g *Generator) function(fn *ast.Function) error {
	returnType := environment.Nil.TargetName()
	if fn.ReturnTypeName != "" {
		t, ok := environment.LookupType(fn.ReturnTypeName)
		if !ok {
			return fmt.Errorf("generator: unknown return type %q on function %q", fn.ReturnTypeName, fn.Name)
		}
		returnType = t.TargetName()
	}

	params := make([]string, len(fn.ParamNames))
	for i, name := range fn.ParamNames {
		t, ok := environment.LookupType(fn.ParamTypeNames[i])
		if !ok {
			return fmt.Errorf("generator: unknown parameter type %q on function %q", fn.ParamTypeNames[i], fn.Name)
		}
		params[i] = fmt.Sprintf("%s %s", t.TargetName(), name)
	}

	if len(fn.Body) == 0 {
		g.line("private %s %s(%s) {}", returnType, fn.Name, strings.Join(params, ", "))
		return nil
	}

	g.line("private %s %s(%s) {", returnType, fn.Name, strings.Join(params, ", "))
	g.depth++
	if err := g.block(fn.Body); err != nil {
		return err
	}
	g.depth--
	g.line("}")
	return nil
}

func (g *Generator) block(stmts []ast.Statement) error {
	for _, stmt := range stmts {
		if err := g.statement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) statement(stmt ast.Statement) error {
	switch node := stmt.(type) {
	case *ast.ExpressionStmt:
		expr, err := g.expression(node.Expr)
		if err != nil {
			return err
		}
		g.line("%s;", expr)
		return nil

	case *ast.Declaration:
		return g.declaration(node)

	case *ast.Assignment:
		receiver, err := g.expression(node.Receiver)
		if err != nil {
			return err
		}
		value, err := g.expression(node.Value)
		if err != nil {
			return err
		}
		g.line("%s = %s;", receiver, value)
		return nil

	case *ast.If:
		return g.ifStatement(node)

	case *ast.Switch:
		return g.switchStatement(node)

	case *ast.While:
		return g.whileStatement(node)

	case *ast.Return:
		value, err := g.expression(node.Value)
		if err != nil {
			return err
		}
		g.line("return %s;", value)
		return nil

	default:
		return fmt.Errorf("generator: unhandled statement type %T", stmt)
	}
}

func (g *Generator) declaration(node *ast.Declaration) error {
	typeName := node.TypeName
	if typeName == "" {
		// No declared type: emit the host's dynamic object type. The
		// initializer's type is not consulted.
		typeName = "Any"
	}
	t, ok := environment.LookupType(typeName)
	if !ok {
		return fmt.Errorf("generator: unknown type %q on declaration %q", typeName, node.Name)
	}
	if node.Init == nil {
		g.line("%s %s;", t.TargetName(), node.Name)
		return nil
	}
	init, err := g.expression(node.Init)
	if err != nil {
		return err
	}
	g.line("%s %s = %s;", t.TargetName(), node.Name, init)
	return nil
}

func (g *Generator) ifStatement(node *ast.If) error {
	cond, err := g.expression(node.Cond)
	if err != nil {
		return err
	}
	g.line("if (%s) {", cond)
	g.depth++
	if err := g.block(node.Then); err != nil {
		return err
	}
	g.depth--
	if node.Else == nil {
		g.line("}")
		return nil
	}
	g.line("} else {")
	g.depth++
	if err := g.block(node.Else); err != nil {
		return err
	}
	g.depth--
	g.line("}")
	return nil
}

// switchStatement emits a target switch; every non-default case gets
// a trailing break, the default arm (always last, spec.md §4.2) does
// not (spec.md §4.5).
func (g *Generator) switchStatement(node *ast.Switch) error {
	cond, err := g.expression(node.Cond)
	if err != nil {
		return err
	}
	g.line("switch (%s) {", cond)
	g.depth++
	for _, c := range node.Cases {
		if c.Value == nil {
			g.line("default:")
		} else {
			value, err := g.expression(c.Value)
			if err != nil {
				return err
			}
			g.line("case %s:", value)
		}
		g.depth++
		if err := g.block(c.Body); err != nil {
			return err
		}
		if c.Value != nil {
			g.line("break;")
		}
		g.depth--
	}
	g.depth--
	g.line("}")
	return nil
}

func (g *Generator) whileStatement(node *ast.While) error {
	cond, err := g.expression(node.Cond)
	if err != nil {
		return err
	}
	if len(node.Body) == 0 {
		g.line("while (%s) {}", cond)
		return nil
	}
	g.line("while (%s) {", cond)
	g.depth++
	if err := g.block(node.Body); err != nil {
		return err
	}
	g.depth--
	g.line("}")
	return nil
}

func (g *Generator) expression(expr ast.Expression) (string, error) {
	switch node := expr.(type) {
	case *ast.Literal:
		return g.literal(node), nil

	case *ast.Group:
		return g.expression(node.Inner)

	case *ast.Binary:
		return g.binary(node)

	case *ast.Access:
		if node.Index == nil {
			return node.Name, nil
		}
		index, err := g.expression(node.Index)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s[%s]", node.Name, index), nil

	case *ast.Call:
		args := make([]string, len(node.Args))
		for i, a := range node.Args {
			s, err := g.expression(a)
			if err != nil {
				return "", err
			}
			args[i] = s
		}
		return fmt.Sprintf("%s(%s)", node.Name, strings.Join(args, ", ")), nil

	case *ast.List:
		elements := make([]string, len(node.Elements))
		for i, el := range node.Elements {
			s, err := g.expression(el)
			if err != nil {
				return "", err
			}
			elements[i] = s
		}
		return "{ " + strings.Join(elements, ", ") + " }", nil

	default:
		return "", fmt.Errorf("generator: unhandled expression type %T", expr)
	}
}

// literal re-emits a constant verbatim. Character and string payloads
// are quoted but not re-escaped (spec.md §4.5 and §9 both call this
// out: interior quotes or newlines only round-trip if the analyzer
// forbids them upstream, which it does not).
func (g *Generator) literal(node *ast.Literal) string {
	switch node.Kind {
	case ast.LitNull:
		return "null"
	case ast.LitBoolean:
		if node.Bool {
			return "true"
		}
		return "false"
	case ast.LitCharacter:
		return "'" + string(node.Char) + "'"
	case ast.LitString:
		return `"` + node.Str + `"`
	case ast.LitInteger:
		return node.Int.String()
	case ast.LitDecimal:
		return node.Decimal.String()
	default:
		return "null"
	}
}

// binary emits every operator unchanged except '^', which the target
// dialect has no infix spelling for (spec.md §4.5).
func (g *Generator) binary(node *ast.Binary) (string, error) {
	left, err := g.expression(node.Left)
	if err != nil {
		return "", err
	}
	right, err := g.expression(node.Right)
	if err != nil {
		return "", err
	}
	if node.Operator == "^" {
		return fmt.Sprintf("Math.pow(%s, %s)", left, right), nil
	}
	return fmt.Sprintf("(%s %s %s)", left, node.Operator, right), nil
}
