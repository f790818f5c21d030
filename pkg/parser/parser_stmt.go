package parser

import (
	"fmt"

	"github.com/leapstack-labs/vyast/pkg/ast"
	"github.com/leapstack-labs/vyast/pkg/token"
)

// Statement grammar:
//
//	decorated   → ("@" expr NEWLINE)+ funcdef
//	if          → "if" expr ":" block ("elif" expr ":" block)* ["else" ":" block]
//	for         → "for" targets "in" exprlist ":" block
//	while       → "while" expr ":" block
//	small       → "pass" | "break" | "continue" | "return" [exprlist]
//	            | "raise" [expr] | "assert" expr ["," expr]
//	            | exprlist (":" expr ["=" exprlist] | ("=" exprlist)+ | augop exprlist)?

// parseModule parses statements until EOF.
func (p *Parser) parseModule() *ast.Module {
	mod := &ast.Module{}
	for !p.check(TOKEN_EOF) && !p.failed() {
		if p.match(TOKEN_NEWLINE) {
			continue
		}
		mod.Body = append(mod.Body, p.parseStatement()...)
	}
	return mod
}

// parseStatement parses one statement line or compound statement.
func (p *Parser) parseStatement() []ast.Stmt {
	switch {
	case p.check(TOKEN_INDENT):
		p.addError("unexpected indent")
		return nil
	case p.check(TOKEN_AT):
		if fn := p.parseDecorated(); fn != nil {
			return []ast.Stmt{fn}
		}
		return nil
	case p.check(TOKEN_DEF):
		if fn := p.parseFunctionDef(nil); fn != nil {
			return []ast.Stmt{fn}
		}
		return nil
	case token.IsDeclKeyword(p.token.Type):
		if cls := p.parseClassDef(); cls != nil {
			return []ast.Stmt{cls}
		}
		return nil
	case p.check(TOKEN_IF):
		return []ast.Stmt{p.parseIf()}
	case p.check(TOKEN_FOR):
		return []ast.Stmt{p.parseFor()}
	case p.check(TOKEN_WHILE):
		return []ast.Stmt{p.parseWhile()}
	}
	return p.parseSimpleStatements()
}

// parseSimpleStatements parses small statements separated by ";" up to the
// end of the line.
func (p *Parser) parseSimpleStatements() []ast.Stmt {
	var out []ast.Stmt
	for {
		stmt := p.parseSmallStatement()
		if p.failed() {
			return out
		}
		out = append(out, stmt)
		if !p.match(TOKEN_SEMICOLON) || p.check(TOKEN_NEWLINE) || p.check(TOKEN_EOF) {
			break
		}
	}
	if !p.check(TOKEN_EOF) {
		p.expect(TOKEN_NEWLINE)
	}
	return out
}

// parseBlock parses ":" followed by an indented suite or an inline simple
// statement list.
func (p *Parser) parseBlock() []ast.Stmt {
	if !p.expect(TOKEN_COLON) {
		return nil
	}
	if !p.match(TOKEN_NEWLINE) {
		return p.parseSimpleStatements()
	}
	if !p.match(TOKEN_INDENT) {
		p.addError(ErrExpectedBlock)
		return nil
	}
	var body []ast.Stmt
	for !p.check(TOKEN_DEDENT) && !p.check(TOKEN_EOF) && !p.failed() {
		if p.match(TOKEN_NEWLINE) {
			continue
		}
		body = append(body, p.parseStatement()...)
	}
	p.match(TOKEN_DEDENT)
	return body
}

// ---------- Declarations ----------

// parseClassDef parses a class-like declaration and records its kind.
func (p *Parser) parseClassDef() *ast.ClassDef {
	start := p.token.Pos
	keyword := p.token.Type.String()
	p.nextToken()

	name, ok := p.expectIdent()
	if !ok {
		return nil
	}
	cls := &ast.ClassDef{Name: name, Keyword: keyword}
	cls.Body = p.parseBlock()
	cls.Loc = token.Span{Start: start, End: lastEnd(cls.Body, p.prev.End)}

	if keyword != "class" {
		p.declKinds[name] = keyword
	}
	return cls
}

// parseDecorated parses decorators followed by a function definition.
func (p *Parser) parseDecorated() *ast.FunctionDef {
	var decorators []ast.Expr
	for p.match(TOKEN_AT) {
		decorators = append(decorators, p.parseExpression())
		if p.failed() {
			return nil
		}
		p.expect(TOKEN_NEWLINE)
		for p.match(TOKEN_NEWLINE) {
		}
	}
	if !p.check(TOKEN_DEF) {
		p.addError(ErrDecoratorTarget)
		return nil
	}
	return p.parseFunctionDef(decorators)
}

// parseFunctionDef parses "def" NAME "(" params ")" ["->" expr] ":" block.
func (p *Parser) parseFunctionDef(decorators []ast.Expr) *ast.FunctionDef {
	start := p.token.Pos
	p.nextToken() // def

	name, ok := p.expectIdent()
	if !ok {
		return nil
	}
	fn := &ast.FunctionDef{Name: name, Decorators: decorators}
	fn.Args = p.parseParameters()
	if p.failed() {
		return nil
	}
	if p.match(TOKEN_ARROW) {
		fn.Returns = p.parseExpression()
	}
	fn.Body = p.parseBlock()
	fn.Loc = token.Span{Start: start, End: lastEnd(fn.Body, p.prev.End)}
	return fn
}

// parseParameters parses "(" [param ("," param)* [","]] ")".
//
//	param → NAME [":" expr] ["=" expr]
func (p *Parser) parseParameters() *ast.Arguments {
	args := &ast.Arguments{}
	if !p.expect(TOKEN_LPAREN) {
		return args
	}
	for !p.check(TOKEN_RPAREN) && !p.failed() {
		start := p.token.Pos
		name, ok := p.expectIdent()
		if !ok {
			return args
		}
		arg := &ast.Arg{Name: name}
		if p.match(TOKEN_COLON) {
			arg.Annotation = p.parseExpression()
		}
		arg.Loc = p.span(start)
		args.Args = append(args.Args, arg)

		if p.match(TOKEN_ASSIGN) {
			args.Defaults = append(args.Defaults, p.parseExpression())
		} else if len(args.Defaults) > 0 {
			p.addErrorAt(start, "non-default argument follows default argument")
			return args
		}
		if !p.match(TOKEN_COMMA) {
			break
		}
	}
	p.expect(TOKEN_RPAREN)
	return args
}

// ---------- Compound statements ----------

// parseIf parses an if statement. Each elif becomes a nested If in Orelse.
func (p *Parser) parseIf() *ast.If {
	start := p.token.Pos
	p.nextToken() // if / elif

	stmt := &ast.If{Test: p.parseExpression()}
	stmt.Body = p.parseBlock()

	switch {
	case p.check(TOKEN_ELIF):
		stmt.Orelse = []ast.Stmt{p.parseIf()}
	case p.check(TOKEN_ELSE):
		p.nextToken()
		stmt.Orelse = p.parseBlock()
	}

	end := lastEnd(stmt.Body, p.prev.End)
	stmt.Loc = token.Span{Start: start, End: lastEnd(stmt.Orelse, end)}
	return stmt
}

// parseFor parses "for" targets "in" exprlist ":" block.
func (p *Parser) parseFor() *ast.For {
	start := p.token.Pos
	p.nextToken() // for

	stmt := &ast.For{Target: p.parseTargetList()}
	p.validateTarget(stmt.Target)
	p.expect(TOKEN_IN)
	stmt.Iter = p.parseExpressionList()
	stmt.Body = p.parseBlock()
	stmt.Loc = token.Span{Start: start, End: lastEnd(stmt.Body, p.prev.End)}
	return stmt
}

// parseWhile parses "while" expr ":" block.
func (p *Parser) parseWhile() *ast.While {
	start := p.token.Pos
	p.nextToken() // while

	stmt := &ast.While{Test: p.parseExpression()}
	stmt.Body = p.parseBlock()
	stmt.Loc = token.Span{Start: start, End: lastEnd(stmt.Body, p.prev.End)}
	return stmt
}

// ---------- Simple statements ----------

// parseSmallStatement parses one statement that fits on a line.
func (p *Parser) parseSmallStatement() ast.Stmt {
	start := p.token.Pos

	switch p.token.Type {
	case TOKEN_PASS:
		p.nextToken()
		s := &ast.Pass{}
		s.Loc = p.span(start)
		return s

	case TOKEN_BREAK:
		p.nextToken()
		s := &ast.Break{}
		s.Loc = p.span(start)
		return s

	case TOKEN_CONTINUE:
		p.nextToken()
		s := &ast.Continue{}
		s.Loc = p.span(start)
		return s

	case TOKEN_RETURN:
		p.nextToken()
		s := &ast.Return{}
		if !p.atStatementEnd() {
			s.Value = p.parseExpressionList()
		}
		s.Loc = p.span(start)
		return s

	case TOKEN_RAISE:
		p.nextToken()
		s := &ast.Raise{}
		if !p.atStatementEnd() {
			s.Exc = p.parseExpression()
		}
		s.Loc = p.span(start)
		return s

	case TOKEN_ASSERT:
		p.nextToken()
		s := &ast.Assert{Test: p.parseExpression()}
		if p.match(TOKEN_COMMA) {
			s.Msg = p.parseExpression()
		}
		s.Loc = p.span(start)
		return s
	}

	return p.parseExpressionStatement()
}

// augOps maps augmented assignment tokens to their operators.
var augOps = map[TokenType]ast.Operator{
	TOKEN_PLUSEQ:    ast.Add,
	TOKEN_MINUSEQ:   ast.Sub,
	TOKEN_STAREQ:    ast.Mult,
	TOKEN_SLASHEQ:   ast.Div,
	TOKEN_DSLASHEQ:  ast.FloorDiv,
	TOKEN_PERCENTEQ: ast.Mod,
	TOKEN_DSTAREQ:   ast.Pow,
	TOKEN_AMPEQ:     ast.BitAnd,
	TOKEN_PIPEEQ:    ast.BitOr,
	TOKEN_CARETEQ:   ast.BitXor,
	TOKEN_LSHIFTEQ:  ast.LShift,
	TOKEN_RSHIFTEQ:  ast.RShift,
}

// parseExpressionStatement parses an expression statement or any of the
// assignment forms.
func (p *Parser) parseExpressionStatement() ast.Stmt {
	start := p.token.Pos
	first := p.parseExpressionList()
	if first == nil {
		return nil
	}

	switch {
	case p.check(TOKEN_COLON):
		p.nextToken()
		s := &ast.AnnAssign{Target: first, Annotation: p.parseExpression()}
		p.validateTarget(first)
		if p.match(TOKEN_ASSIGN) {
			s.Value = p.parseExpressionList()
		}
		s.Loc = p.span(start)
		return s

	case p.check(TOKEN_ASSIGN):
		s := &ast.Assign{}
		value := first
		for p.match(TOKEN_ASSIGN) {
			p.validateTarget(value)
			s.Targets = append(s.Targets, value)
			value = p.parseExpressionList()
		}
		s.Value = value
		s.Loc = p.span(start)
		return s
	}

	if op, ok := augOps[p.token.Type]; ok {
		p.nextToken()
		p.validateTarget(first)
		s := &ast.AugAssign{Target: first, Op: op, Value: p.parseExpressionList()}
		s.Loc = p.span(start)
		return s
	}

	s := &ast.ExprStmt{Value: first}
	s.Loc = p.span(start)
	return s
}

// atStatementEnd reports whether the current token ends a small statement.
func (p *Parser) atStatementEnd() bool {
	return p.check(TOKEN_NEWLINE) || p.check(TOKEN_SEMICOLON) || p.check(TOKEN_EOF)
}

// validateTarget reports an error if e cannot be assigned to.
func (p *Parser) validateTarget(e ast.Expr) {
	switch t := e.(type) {
	case nil:
	case *ast.Name, *ast.Attribute, *ast.Subscript:
	case *ast.Tuple:
		for _, elt := range t.Elts {
			p.validateTarget(elt)
		}
	case *ast.List:
		for _, elt := range t.Elts {
			p.validateTarget(elt)
		}
	default:
		p.addErrorAt(e.Pos(), fmt.Sprintf(ErrInvalidTarget, e.Kind()))
	}
}
