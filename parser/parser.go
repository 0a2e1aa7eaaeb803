// Package parser implements the recursive-descent parser of spec.md
// §4.1: token stream in, *ast.Source out, or a ParseError carrying the
// offending token's byte offset.
//
// Structurally this mirrors the teacher's (informatter-nilan) parser:
// a flat Parser{tokens, pos} struct, peek/previous/advance/match
// helpers, and one method per grammar production. The grammar itself
// is PLC's, not Nilan's.
package parser

import (
	"fmt"

	"plc/ast"
	"plc/lexer"
	"plc/token"
)

var logicalOps = []string{"&&", "||"}
var comparisonOps = []string{"<", ">", "==", "!="}
var additiveOps = []string{"+", "-"}
var multiplicativeOps = []string{"*", "/", "^"}

// Parser consumes a token stream one token at a time.
//
// NOTE: the parser's position always points one unit ahead of the
// token currently being examined (mirrors the teacher's own NOTE).
type Parser struct {
	tokens []token.Token
	pos    int
}

// Make constructs a Parser over tokens. tokens must end with an EOF
// token (the contract lexer.Scan produces).
func Make(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

func (p *Parser) peek() token.Token { return p.tokens[p.pos] }

func (p *Parser) previous() token.Token { return p.tokens[p.pos-1] }

func (p *Parser) isFinished() bool { return p.peek().Kind == token.EOF }

func (p *Parser) advance() token.Token {
	if !p.isFinished() {
		p.pos++
	}
	return p.previous()
}

func (p *Parser) check(lexeme string) bool {
	return !p.isFinished() && p.peek().Is(lexeme)
}

func (p *Parser) checkAny(lexemes ...string) bool {
	for _, l := range lexemes {
		if p.check(l) {
			return true
		}
	}
	return false
}

func (p *Parser) match(lexeme string) bool {
	if p.check(lexeme) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) matchAny(lexemes []string) (string, bool) {
	for _, l := range lexemes {
		if p.check(l) {
			p.advance()
			return l, true
		}
	}
	return "", false
}

func (p *Parser) errorHere(format string, args ...any) error {
	return CreateParseError(p.peek().Offset, fmt.Sprintf(format, args...))
}

func (p *Parser) consume(lexeme string, what string) (token.Token, error) {
	if p.check(lexeme) {
		return p.advance(), nil
	}
	return token.Token{}, p.errorHere("expected %s", what)
}

func (p *Parser) consumeIdentifier(what string) (token.Token, error) {
	if p.isFinished() || p.peek().Kind != token.IDENTIFIER || token.ReservedWords[p.peek().Literal] {
		return token.Token{}, p.errorHere("expected %s", what)
	}
	return p.advance(), nil
}

// Parse parses the full token stream into a *ast.Source.
func (p *Parser) Parse() (*ast.Source, error) {
	src := &ast.Source{}

	for p.checkAny("LIST", "VAR", "VAL") {
		g, err := p.global()
		if err != nil {
			return nil, err
		}
		src.Globals = append(src.Globals, g)
	}

	for p.check("FUN") {
		f, err := p.function()
		if err != nil {
			return nil, err
		}
		src.Functions = append(src.Functions, f)
	}

	if !p.isFinished() {
		return nil, p.errorHere("expected a global or function declaration")
	}
	return src, nil
}

func (p *Parser) global() (*ast.Global, error) {
	offset := p.peek().Offset
	kind, _ := p.matchAny([]string{"LIST", "VAR", "VAL"})

	var g *ast.Global
	var err error
	switch kind {
	case "LIST":
		g, err = p.globalList()
	case "VAR":
		g, err = p.globalMutable()
	case "VAL":
		g, err = p.globalImmutable()
	}
	if err != nil {
		return nil, err
	}
	g.Offset = offset

	if _, err := p.consume(";", "';' after declaration"); err != nil {
		return nil, err
	}
	return g, nil
}

func (p *Parser) globalList() (*ast.Global, error) {
	name, err := p.consumeIdentifier("list name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(":", "':' before list element type"); err != nil {
		return nil, err
	}
	typeName, err := p.consumeIdentifier("list element type name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume("=", "'=' before list initializer"); err != nil {
		return nil, err
	}
	listOffset := p.peek().Offset
	if _, err := p.consume("[", "'[' to begin list initializer"); err != nil {
		return nil, err
	}
	var elements []ast.Expression
	if !p.check("]") {
		for {
			e, err := p.expression()
			if err != nil {
				return nil, err
			}
			elements = append(elements, e)
			if !p.match(",") {
				break
			}
		}
	}
	if _, err := p.consume("]", "']' to close list initializer"); err != nil {
		return nil, err
	}
	return &ast.Global{
		Name:     name.Literal,
		TypeName: typeName.Literal,
		Mutable:  true,
		Init:     &ast.List{Elements: elements, Offset: listOffset},
	}, nil
}

func (p *Parser) globalMutable() (*ast.Global, error) {
	name, err := p.consumeIdentifier("variable name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(":", "':' before declared type"); err != nil {
		return nil, err
	}
	typeName, err := p.consumeIdentifier("declared type name")
	if err != nil {
		return nil, err
	}
	var init ast.Expression
	if p.match("=") {
		init, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	return &ast.Global{Name: name.Literal, TypeName: typeName.Literal, Mutable: true, Init: init}, nil
}

func (p *Parser) globalImmutable() (*ast.Global, error) {
	name, err := p.consumeIdentifier("constant name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(":", "':' before declared type"); err != nil {
		return nil, err
	}
	typeName, err := p.consumeIdentifier("declared type name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume("=", "'=' with required initializer"); err != nil {
		return nil, err
	}
	init, err := p.expression()
	if err != nil {
		return nil, err
	}
	return &ast.Global{Name: name.Literal, TypeName: typeName.Literal, Mutable: false, Init: init}, nil
}

func (p *Parser) function() (*ast.Function, error) {
	offset := p.peek().Offset
	if _, err := p.consume("FUN", "'FUN'"); err != nil {
		return nil, err
	}
	name, err := p.consumeIdentifier("function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume("(", "'(' to begin parameter list"); err != nil {
		return nil, err
	}
	fn := &ast.Function{Name: name.Literal, Offset: offset}
	if !p.check(")") {
		for {
			pname, err := p.consumeIdentifier("parameter name")
			if err != nil {
				return nil, err
			}
			if _, err := p.consume(":", "':' before parameter type"); err != nil {
				return nil, err
			}
			ptype, err := p.consumeIdentifier("parameter type name")
			if err != nil {
				return nil, err
			}
			fn.ParamNames = append(fn.ParamNames, pname.Literal)
			fn.ParamTypeNames = append(fn.ParamTypeNames, ptype.Literal)
			if !p.match(",") {
				break
			}
		}
	}
	if _, err := p.consume(")", "')' to close parameter list"); err != nil {
		return nil, err
	}
	if p.match(":") {
		retType, err := p.consumeIdentifier("return type name")
		if err != nil {
			return nil, err
		}
		fn.ReturnTypeName = retType.Literal
	}
	if _, err := p.consume("DO", "'DO' to begin function body"); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	fn.Body = body
	if _, err := p.consume("END", "'END' to close function body"); err != nil {
		return nil, err
	}
	return fn, nil
}

// block parses zero or more statements, stopping at the lookahead
// terminators END/ELSE/CASE/DEFAULT (spec.md §4.1's block rule).
func (p *Parser) block() ([]ast.Statement, error) {
	var stmts []ast.Statement
	for !p.isFinished() && !p.checkAny("END", "ELSE", "CASE", "DEFAULT") {
		s, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	return stmts, nil
}

func (p *Parser) statement() (ast.Statement, error) {
	offset := p.peek().Offset

	switch {
	case p.match("LET"):
		return p.declaration(offset)
	case p.match("SWITCH"):
		return p.switchStatement(offset)
	case p.match("IF"):
		return p.ifStatement(offset)
	case p.match("WHILE"):
		return p.whileStatement(offset)
	case p.match("RETURN"):
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(";", "';' after return value"); err != nil {
			return nil, err
		}
		return &ast.Return{Value: value, Offset: offset}, nil
	}

	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if p.match("=") {
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(";", "';' after assignment"); err != nil {
			return nil, err
		}
		return &ast.Assignment{Receiver: expr, Value: value, Offset: offset}, nil
	}
	if _, err := p.consume(";", "';' after expression statement"); err != nil {
		return nil, err
	}
	return &ast.ExpressionStmt{Expr: expr, Offset: offset}, nil
}

func (p *Parser) declaration(offset int) (ast.Statement, error) {
	name, err := p.consumeIdentifier("declared name")
	if err != nil {
		return nil, err
	}
	decl := &ast.Declaration{Name: name.Literal, Offset: offset}
	if p.match(":") {
		typeName, err := p.consumeIdentifier("declared type name")
		if err != nil {
			return nil, err
		}
		decl.TypeName = typeName.Literal
	}
	if p.match("=") {
		decl.Init, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(";", "';' after declaration"); err != nil {
		return nil, err
	}
	return decl, nil
}

func (p *Parser) ifStatement(offset int) (ast.Statement, error) {
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume("DO", "'DO' after if condition"); err != nil {
		return nil, err
	}
	then, err := p.block()
	if err != nil {
		return nil, err
	}
	stmt := &ast.If{Cond: cond, Then: then, Offset: offset}
	if p.match("ELSE") {
		stmt.Else, err = p.block()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume("END", "'END' to close if statement"); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) switchStatement(offset int) (ast.Statement, error) {
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	stmt := &ast.Switch{Cond: cond, Offset: offset}
	for p.match("CASE") {
		caseOffset := p.previous().Offset
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(":", "':' after case value"); err != nil {
			return nil, err
		}
		body, err := p.block()
		if err != nil {
			return nil, err
		}
		stmt.Cases = append(stmt.Cases, &ast.Case{Value: value, Body: body, Offset: caseOffset})
	}
	if _, err := p.consume("DEFAULT", "'DEFAULT' case"); err != nil {
		return nil, err
	}
	defaultOffset := p.previous().Offset
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	stmt.Cases = append(stmt.Cases, &ast.Case{Value: nil, Body: body, Offset: defaultOffset})
	if _, err := p.consume("END", "'END' to close switch statement"); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) whileStatement(offset int) (ast.Statement, error) {
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume("DO", "'DO' after while condition"); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume("END", "'END' to close while statement"); err != nil {
		return nil, err
	}
	return &ast.While{Cond: cond, Body: body, Offset: offset}, nil
}

func (p *Parser) expression() (ast.Expression, error) {
	return p.logical()
}

func (p *Parser) logical() (ast.Expression, error) {
	return p.binaryLevel((*Parser).comparison, logicalOps)
}

func (p *Parser) comparison() (ast.Expression, error) {
	return p.binaryLevel((*Parser).additive, comparisonOps)
}

func (p *Parser) additive() (ast.Expression, error) {
	return p.binaryLevel((*Parser).multiplicative, additiveOps)
}

func (p *Parser) multiplicative() (ast.Expression, error) {
	return p.binaryLevel((*Parser).primary, multiplicativeOps)
}

// binaryLevel implements one left-associative precedence rung: parse
// one operand via next, then repeatedly match an operator in ops and
// fold in another operand (spec.md §4.1 — every level is
// left-associative, including '^', which is deliberately not given
// right-associativity here).
func (p *Parser) binaryLevel(next func(*Parser) (ast.Expression, error), ops []string) (ast.Expression, error) {
	left, err := next(p)
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.matchAny(ops)
		if !ok {
			return left, nil
		}
		offset := p.previous().Offset
		right, err := next(p)
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Operator: op, Left: left, Right: right, Offset: offset}
	}
}

func (p *Parser) primary() (ast.Expression, error) {
	if p.isFinished() {
		return nil, p.errorHere("expected an expression")
	}
	tok := p.peek()

	switch {
	case p.match("NIL"):
		return &ast.Literal{Kind: ast.LitNull, Offset: tok.Offset}, nil
	case p.match("TRUE"):
		return &ast.Literal{Kind: ast.LitBoolean, Bool: true, Offset: tok.Offset}, nil
	case p.match("FALSE"):
		return &ast.Literal{Kind: ast.LitBoolean, Bool: false, Offset: tok.Offset}, nil
	}

	switch tok.Kind {
	case token.INTEGER:
		p.advance()
		value, ok := lexer.ParseInteger(tok.Literal)
		if !ok {
			return nil, CreateParseError(tok.Offset, fmt.Sprintf("malformed integer literal %q", tok.Literal))
		}
		return &ast.Literal{Kind: ast.LitInteger, Int: value, Offset: tok.Offset}, nil

	case token.DECIMAL:
		p.advance()
		value, err := lexer.ParseDecimal(tok.Literal)
		if err != nil {
			return nil, CreateParseError(tok.Offset, fmt.Sprintf("malformed decimal literal %q", tok.Literal))
		}
		return &ast.Literal{Kind: ast.LitDecimal, Decimal: value, Offset: tok.Offset}, nil

	case token.CHARACTER:
		p.advance()
		return &ast.Literal{Kind: ast.LitCharacter, Char: []rune(tok.Literal)[0], Offset: tok.Offset}, nil

	case token.STRING:
		p.advance()
		return &ast.Literal{Kind: ast.LitString, Str: tok.Literal, Offset: tok.Offset}, nil
	}

	if p.match("(") {
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(")", "')' to close grouped expression"); err != nil {
			return nil, err
		}
		return &ast.Group{Inner: inner, Offset: tok.Offset}, nil
	}

	if tok.Kind == token.IDENTIFIER && !token.ReservedWords[tok.Literal] {
		p.advance()
		if p.match("(") {
			var args []ast.Expression
			if !p.check(")") {
				for {
					arg, err := p.expression()
					if err != nil {
						return nil, err
					}
					args = append(args, arg)
					if !p.match(",") {
						break
					}
				}
			}
			if _, err := p.consume(")", "')' to close call arguments"); err != nil {
				return nil, err
			}
			return &ast.Call{Name: tok.Literal, Args: args, Offset: tok.Offset}, nil
		}
		if p.match("[") {
			index, err := p.expression()
			if err != nil {
				return nil, err
			}
			if _, err := p.consume("]", "']' to close index expression"); err != nil {
				return nil, err
			}
			return &ast.Access{Name: tok.Literal, Index: index, Offset: tok.Offset}, nil
		}
		return &ast.Access{Name: tok.Literal, Offset: tok.Offset}, nil
	}

	return nil, p.errorHere("unexpected token %q", tok.Literal)
}
