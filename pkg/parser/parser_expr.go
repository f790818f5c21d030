package parser

import (
	"fmt"

	"github.com/leapstack-labs/vyast/pkg/ast"
)

// Expression grammar (by precedence, lowest to highest):
//
//	exprlist    → expr ("," expr)* [","]
//	expr        → or_expr
//	or_expr     → and_expr ("or" and_expr)*
//	and_expr    → not_expr ("and" not_expr)*
//	not_expr    → "not" not_expr | comparison
//	comparison  → bitor (compop bitor)*
//	bitor       → bitxor ("|" bitxor)*
//	bitxor      → bitand ("^" bitand)*
//	bitand      → shift ("&" shift)*
//	shift       → arith (("<<" | ">>") arith)*
//	arith       → term (("+" | "-") term)*
//	term        → factor (("*" | "/" | "//" | "%") factor)*
//	factor      → ("-" | "+" | "~") factor | power
//	power       → primary ["**" factor]
//	primary     → atom (call | subscript | attribute)*
//	atom        → NAME | NUMBER | STRING+ | "True" | "False" | "None" | "..."
//	            | "(" [exprlist] ")" | "[" [exprlist] "]" | "{" [dict] "}"
//
// A compound expression starts at its first token, so "(a + b) * c" starts at
// the parenthesis while the inner "a + b" does not include it.

// parseExpressionList parses one or more comma-separated expressions. More
// than one, or a trailing comma, yields an unparenthesized Tuple.
func (p *Parser) parseExpressionList() ast.Expr {
	start := p.token.Pos
	first := p.parseExpression()
	if first == nil || !p.check(TOKEN_COMMA) {
		return first
	}

	elts := []ast.Expr{first}
	for p.match(TOKEN_COMMA) {
		if !canStartExpression(p.token.Type) {
			break
		}
		e := p.parseExpression()
		if e == nil {
			return nil
		}
		elts = append(elts, e)
	}
	t := &ast.Tuple{Elts: elts}
	t.Loc = p.span(start)
	return t
}

// parseTargetList parses the target of a for loop. Targets stop below the
// comparison level so the "in" keyword is left for the loop header.
func (p *Parser) parseTargetList() ast.Expr {
	start := p.token.Pos
	first := p.parseBinary(0)
	if first == nil || !p.check(TOKEN_COMMA) {
		return first
	}

	elts := []ast.Expr{first}
	for p.match(TOKEN_COMMA) {
		if p.check(TOKEN_IN) {
			break
		}
		e := p.parseBinary(0)
		if e == nil {
			return nil
		}
		elts = append(elts, e)
	}
	t := &ast.Tuple{Elts: elts}
	t.Loc = p.span(start)
	return t
}

// parseExpression parses a single expression without top-level commas.
func (p *Parser) parseExpression() ast.Expr {
	return p.parseOr()
}

func (p *Parser) parseOr() ast.Expr {
	return p.parseBoolChain(TOKEN_OR, ast.Or, p.parseAnd)
}

func (p *Parser) parseAnd() ast.Expr {
	return p.parseBoolChain(TOKEN_AND, ast.And, p.parseNot)
}

// parseBoolChain collects "a op b op c" into a single BoolOp.
func (p *Parser) parseBoolChain(tok TokenType, op ast.BoolOperator, next func() ast.Expr) ast.Expr {
	start := p.token.Pos
	left := next()
	if left == nil || !p.check(tok) {
		return left
	}

	values := []ast.Expr{left}
	for p.match(tok) {
		right := next()
		if right == nil {
			return nil
		}
		values = append(values, right)
	}
	e := &ast.BoolOp{Op: op, Values: values}
	e.Loc = p.span(start)
	return e
}

func (p *Parser) parseNot() ast.Expr {
	if !p.check(TOKEN_NOT) {
		return p.parseComparison()
	}
	start := p.token.Pos
	p.nextToken()
	operand := p.parseNot()
	if operand == nil {
		return nil
	}
	e := &ast.UnaryOp{Op: ast.Not, Operand: operand}
	e.Loc = p.span(start)
	return e
}

// parseComparison parses a comparison chain such as "a < b <= c".
func (p *Parser) parseComparison() ast.Expr {
	start := p.token.Pos
	left := p.parseBinary(0)
	if left == nil {
		return nil
	}

	var ops []ast.CmpOperator
	var comparators []ast.Expr
	for {
		op, ok := p.comparisonOperator()
		if !ok {
			break
		}
		right := p.parseBinary(0)
		if right == nil {
			return nil
		}
		ops = append(ops, op)
		comparators = append(comparators, right)
	}
	if len(ops) == 0 {
		return left
	}

	e := &ast.Compare{Left: left, Ops: ops, Comparators: comparators}
	e.Loc = p.span(start)
	return e
}

var compareOps = map[TokenType]ast.CmpOperator{
	TOKEN_EQ: ast.Eq,
	TOKEN_NE: ast.NotEq,
	TOKEN_LT: ast.Lt,
	TOKEN_LE: ast.LtE,
	TOKEN_GT: ast.Gt,
	TOKEN_GE: ast.GtE,
	TOKEN_IN: ast.In,
}

// comparisonOperator consumes a comparison operator, including the two-word
// forms "not in" and "is not".
func (p *Parser) comparisonOperator() (ast.CmpOperator, bool) {
	if op, ok := compareOps[p.token.Type]; ok {
		p.nextToken()
		return op, true
	}
	switch {
	case p.check(TOKEN_NOT) && p.checkPeek(TOKEN_IN):
		p.nextToken()
		p.nextToken()
		return ast.NotIn, true
	case p.check(TOKEN_IS) && p.checkPeek(TOKEN_NOT):
		p.nextToken()
		p.nextToken()
		return ast.IsNot, true
	case p.check(TOKEN_IS):
		p.nextToken()
		return ast.Is, true
	}
	return "", false
}

// binaryLevels lists the left-associative binary operators from lowest to
// highest precedence.
var binaryLevels = []map[TokenType]ast.Operator{
	{TOKEN_PIPE: ast.BitOr},
	{TOKEN_CARET: ast.BitXor},
	{TOKEN_AMP: ast.BitAnd},
	{TOKEN_LSHIFT: ast.LShift, TOKEN_RSHIFT: ast.RShift},
	{TOKEN_PLUS: ast.Add, TOKEN_MINUS: ast.Sub},
	{TOKEN_STAR: ast.Mult, TOKEN_SLASH: ast.Div, TOKEN_DSLASH: ast.FloorDiv, TOKEN_PERCENT: ast.Mod},
}

// parseBinary parses the operators of binaryLevels[level] and above.
func (p *Parser) parseBinary(level int) ast.Expr {
	if level == len(binaryLevels) {
		return p.parseFactor()
	}

	start := p.token.Pos
	left := p.parseBinary(level + 1)
	for left != nil {
		op, ok := binaryLevels[level][p.token.Type]
		if !ok {
			break
		}
		p.nextToken()
		right := p.parseBinary(level + 1)
		if right == nil {
			return nil
		}
		e := &ast.BinOp{Left: left, Op: op, Right: right}
		e.Loc = p.span(start)
		left = e
	}
	return left
}

var unaryOps = map[TokenType]ast.UnaryOperator{
	TOKEN_MINUS: ast.USub,
	TOKEN_PLUS:  ast.UAdd,
	TOKEN_TILDE: ast.Invert,
}

// parseFactor parses prefix arithmetic operators. The UnaryOp starts at the
// operator token.
func (p *Parser) parseFactor() ast.Expr {
	op, ok := unaryOps[p.token.Type]
	if !ok {
		return p.parsePower()
	}
	start := p.token.Pos
	p.nextToken()
	operand := p.parseFactor()
	if operand == nil {
		return nil
	}
	e := &ast.UnaryOp{Op: op, Operand: operand}
	e.Loc = p.span(start)
	return e
}

// parsePower parses "**", which binds tighter than a unary operator on its
// left and is right-associative.
func (p *Parser) parsePower() ast.Expr {
	start := p.token.Pos
	left := p.parsePrimary()
	if left == nil || !p.match(TOKEN_DSTAR) {
		return left
	}
	right := p.parseFactor()
	if right == nil {
		return nil
	}
	e := &ast.BinOp{Left: left, Op: ast.Pow, Right: right}
	e.Loc = p.span(start)
	return e
}

// parsePrimary parses an atom followed by any calls, subscripts and
// attribute accesses.
func (p *Parser) parsePrimary() ast.Expr {
	start := p.token.Pos
	expr := p.parseAtom()
	for expr != nil {
		switch {
		case p.match(TOKEN_LPAREN):
			call := &ast.Call{Func: expr}
			if !p.parseCallArguments(call) {
				return nil
			}
			call.Loc = p.span(start)
			expr = call

		case p.match(TOKEN_LBRACKET):
			slice := p.parseExpressionList()
			if slice == nil || !p.expect(TOKEN_RBRACKET) {
				return nil
			}
			sub := &ast.Subscript{Value: expr, Slice: slice}
			sub.Loc = p.span(start)
			expr = sub

		case p.match(TOKEN_DOT):
			attr, ok := p.expectIdent()
			if !ok {
				return nil
			}
			a := &ast.Attribute{Value: expr, Attr: attr}
			a.Loc = p.span(start)
			expr = a

		default:
			return expr
		}
	}
	return nil
}

// parseCallArguments parses the argument list after "(" up to and including
// ")". Positional arguments may not follow keyword arguments.
func (p *Parser) parseCallArguments(call *ast.Call) bool {
	for !p.check(TOKEN_RPAREN) && !p.failed() {
		if p.check(TOKEN_IDENT) && p.checkPeek(TOKEN_ASSIGN) {
			start := p.token.Pos
			name := p.token.Literal
			p.nextToken()
			p.nextToken()
			value := p.parseExpression()
			if value == nil {
				return false
			}
			kw := &ast.Keyword{Name: name, Value: value}
			kw.Loc = p.span(start)
			call.Keywords = append(call.Keywords, kw)
		} else {
			if len(call.Keywords) > 0 {
				p.addError("positional argument follows keyword argument")
				return false
			}
			arg := p.parseExpression()
			if arg == nil {
				return false
			}
			call.Args = append(call.Args, arg)
		}
		if !p.match(TOKEN_COMMA) {
			break
		}
	}
	return p.expect(TOKEN_RPAREN)
}

// parseAtom parses the innermost expression forms.
func (p *Parser) parseAtom() ast.Expr {
	start := p.token.Pos

	switch p.token.Type {
	case TOKEN_IDENT:
		e := &ast.Name{ID: p.token.Literal}
		p.nextToken()
		e.Loc = p.span(start)
		return e

	case TOKEN_NUMBER:
		v, err := parseNumber(p.token.Literal)
		if err != nil {
			p.addError(fmt.Sprintf(ErrInvalidNumber, p.token.Literal))
			return nil
		}
		p.nextToken()
		return p.constant(start, v)

	case TOKEN_STRING:
		return p.parseStrings()

	case TOKEN_TRUE, TOKEN_FALSE:
		v := ast.BoolValue(p.check(TOKEN_TRUE))
		p.nextToken()
		return p.constant(start, v)

	case TOKEN_NONE:
		p.nextToken()
		return p.constant(start, ast.NoneValue{})

	case TOKEN_ELLIPSIS:
		p.nextToken()
		return p.constant(start, ast.EllipsisValue{})

	case TOKEN_LPAREN:
		return p.parseParenthesized()

	case TOKEN_LBRACKET:
		p.nextToken()
		list := &ast.List{Elts: p.parseSequence(TOKEN_RBRACKET)}
		if p.failed() || !p.expect(TOKEN_RBRACKET) {
			return nil
		}
		list.Loc = p.span(start)
		return list

	case TOKEN_LBRACE:
		return p.parseDict()
	}

	p.addError(fmt.Sprintf(ErrExpectedExpression, p.token))
	return nil
}

func (p *Parser) constant(start Position, v ast.Value) *ast.Constant {
	c := &ast.Constant{Value: v}
	c.Loc = p.span(start)
	return c
}

// parseStrings parses one or more adjacent string literals into a single
// Constant. Text and byte strings cannot be mixed.
func (p *Parser) parseStrings() ast.Expr {
	start := p.token.Pos
	var (
		text  []byte
		bytes bool
	)
	for i := 0; p.check(TOKEN_STRING); i++ {
		v, err := parseString(p.token.Literal)
		if err != nil {
			p.addError(fmt.Sprintf(ErrInvalidString, err))
			return nil
		}
		_, isBytes := v.(ast.BytesValue)
		if i > 0 && isBytes != bytes {
			p.addError("cannot mix bytes and nonbytes literals")
			return nil
		}
		bytes = isBytes
		switch s := v.(type) {
		case ast.BytesValue:
			text = append(text, []byte(s)...)
		case ast.StrValue:
			text = append(text, string(s)...)
		}
		p.nextToken()
	}

	if bytes {
		return p.constant(start, ast.BytesValue(text))
	}
	return p.constant(start, ast.StrValue(text))
}

// parseParenthesized parses a parenthesized expression or tuple. A tuple
// includes its parentheses; a plain grouped expression does not.
func (p *Parser) parseParenthesized() ast.Expr {
	start := p.token.Pos
	p.nextToken() // (

	if p.match(TOKEN_RPAREN) {
		t := &ast.Tuple{}
		t.Loc = p.span(start)
		return t
	}

	first := p.parseExpression()
	if first == nil {
		return nil
	}
	if p.match(TOKEN_RPAREN) {
		return first
	}
	if !p.match(TOKEN_COMMA) {
		p.expect(TOKEN_RPAREN)
		return nil
	}

	elts := append([]ast.Expr{first}, p.parseSequence(TOKEN_RPAREN)...)
	if p.failed() || !p.expect(TOKEN_RPAREN) {
		return nil
	}
	t := &ast.Tuple{Elts: elts}
	t.Loc = p.span(start)
	return t
}

// parseSequence parses comma-separated expressions up to (not including)
// the closing token. A trailing comma is allowed.
func (p *Parser) parseSequence(closer TokenType) []ast.Expr {
	var elts []ast.Expr
	for !p.check(closer) && !p.failed() {
		e := p.parseExpression()
		if e == nil {
			return nil
		}
		elts = append(elts, e)
		if !p.match(TOKEN_COMMA) {
			break
		}
	}
	return elts
}

// parseDict parses "{" [key ":" value ("," key ":" value)* [","]] "}".
func (p *Parser) parseDict() ast.Expr {
	start := p.token.Pos
	p.nextToken() // {

	d := &ast.Dict{}
	for !p.check(TOKEN_RBRACE) && !p.failed() {
		key := p.parseExpression()
		if key == nil || !p.expect(TOKEN_COLON) {
			return nil
		}
		value := p.parseExpression()
		if value == nil {
			return nil
		}
		d.Keys = append(d.Keys, key)
		d.Values = append(d.Values, value)
		if !p.match(TOKEN_COMMA) {
			break
		}
	}
	if !p.expect(TOKEN_RBRACE) {
		return nil
	}
	d.Loc = p.span(start)
	return d
}

// canStartExpression reports whether t may begin an expression.
func canStartExpression(t TokenType) bool {
	switch t {
	case TOKEN_IDENT, TOKEN_NUMBER, TOKEN_STRING,
		TOKEN_TRUE, TOKEN_FALSE, TOKEN_NONE, TOKEN_ELLIPSIS,
		TOKEN_LPAREN, TOKEN_LBRACKET, TOKEN_LBRACE,
		TOKEN_MINUS, TOKEN_PLUS, TOKEN_TILDE, TOKEN_NOT:
		return true
	}
	return false
}
