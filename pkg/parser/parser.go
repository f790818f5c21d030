// Package parser parses contract source into the AST defined in pkg/ast.
//
// # Usage
//
//	res, err := parser.Parse(src)
//	if err != nil {
//	    // handle error
//	}
//	annotate.Annotate(res.Module, src, annotate.WithDeclKinds(res.DeclKinds))
//
// # Grammar Overview
//
// The parser implements a recursive descent parser for an indentation-based
// Python subset:
//
//	module      → (NEWLINE | statement)* EOF
//	statement   → decorated | funcdef | classdef | if | for | while | simple
//	classdef    → ("class"|"struct"|"contract"|"interface"|"event") NAME ":" block
//	funcdef     → "def" NAME "(" params ")" ["->" expr] ":" block
//	simple      → small (";" small)* NEWLINE
//	block       → NEWLINE INDENT statement+ DEDENT | simple
//
// Positions follow the conventions of Python's ast module: line numbers are
// 1-based, columns are 0-based byte offsets within the line.
//
// See each file for detailed grammar rules for that section.
package parser

import (
	"fmt"

	"github.com/leapstack-labs/vyast/pkg/ast"
	"github.com/leapstack-labs/vyast/pkg/token"
)

// Result is the output of a successful parse.
type Result struct {
	Module *ast.Module
	// DeclKinds maps each struct/contract/interface/event name to the keyword
	// that declared it. Plain classes are not recorded.
	DeclKinds map[string]string
}

// Parser parses contract source into an AST.
type Parser struct {
	lexer  *Lexer
	prev   Token // last consumed token
	token  Token // current token
	peek   Token // lookahead token
	peek2  Token // second lookahead token
	errors []error

	declKinds map[string]string
}

// NewParser creates a new parser for the given source.
func NewParser(src string) *Parser {
	p := &Parser{
		lexer:     NewLexer(src),
		declKinds: make(map[string]string),
	}
	// Read three tokens to initialize current, peek, and peek2
	p.nextToken()
	p.nextToken()
	p.nextToken()
	return p
}

// Parse parses src and returns the module together with its declaration
// kinds.
func Parse(src string) (*Result, error) {
	p := NewParser(src)
	mod := p.parseModule()
	if err := p.err(); err != nil {
		return nil, err
	}
	return &Result{Module: mod, DeclKinds: p.declKinds}, nil
}

// ParseModule is a convenience wrapper around Parse for callers that do not
// need the declaration table.
func ParseModule(src string) (*ast.Module, error) {
	res, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return res.Module, nil
}

// err returns the first error, preferring lexical errors since they usually
// cause the parse errors that follow them.
func (p *Parser) err() error {
	if errs := p.lexer.Errors(); len(errs) > 0 {
		return errs[0]
	}
	if len(p.errors) > 0 {
		return p.errors[0]
	}
	return nil
}

func (p *Parser) failed() bool {
	return len(p.errors) > 0 || len(p.lexer.Errors()) > 0
}

// ---------- Token Helpers ----------

// nextToken advances to the next token.
func (p *Parser) nextToken() {
	p.prev = p.token
	p.token = p.peek
	p.peek = p.peek2
	p.peek2 = p.lexer.NextToken()
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t TokenType) bool {
	return p.token.Type == t
}

// checkPeek returns true if the peek token is of the given type.
func (p *Parser) checkPeek(t TokenType) bool {
	return p.peek.Type == t
}

// match consumes the current token if it matches and returns true.
func (p *Parser) match(t TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	return false
}

// expect consumes the current token if it matches, otherwise adds an error.
func (p *Parser) expect(t TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	p.addError(fmt.Sprintf(ErrUnexpectedToken, p.token, t))
	return false
}

// expectIdent consumes an identifier and returns its text.
func (p *Parser) expectIdent() (string, bool) {
	if !p.check(TOKEN_IDENT) {
		p.addError(fmt.Sprintf(ErrUnexpectedToken, p.token, "identifier"))
		return "", false
	}
	name := p.token.Literal
	p.nextToken()
	return name, true
}

// addError adds a parse error at the current token.
func (p *Parser) addError(msg string) {
	p.addErrorAt(p.token.Pos, msg)
}

func (p *Parser) addErrorAt(pos Position, msg string) {
	p.errors = append(p.errors, &ParseError{
		Pos:     pos,
		Message: msg,
	})
}

// ---------- Position Helpers ----------

// span builds a span from start to the end of the last consumed token.
func (p *Parser) span(start Position) token.Span {
	return token.Span{Start: start, End: p.prev.End}
}

// lastEnd returns the end of the last statement in body, or fallback.
func lastEnd(body []ast.Stmt, fallback Position) Position {
	if len(body) == 0 || body[len(body)-1] == nil {
		return fallback
	}
	return body[len(body)-1].End()
}
