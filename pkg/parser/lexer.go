package parser

import (
	"fmt"

	"github.com/leapstack-labs/vyast/pkg/token"
)

// Lexer tokenizes contract source. It tracks indentation to emit INDENT and
// DEDENT tokens and joins lines implicitly inside brackets.
type Lexer struct {
	input     string
	pos       int  // current position in input
	readPos   int  // reading position (after current char)
	ch        byte // current char under examination
	line      int  // current line number (1-based)
	lineStart int  // byte offset of the current line

	indents     []int // indentation stack, always starts with 0
	depth       int   // bracket nesting depth
	atLineStart bool
	pending     []Token
	last        TokenType
	emitted     bool
	done        bool

	errors []error
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input:       input,
		line:        1,
		indents:     []int{0},
		atLineStart: true,
		last:        TOKEN_NEWLINE,
	}
	l.readChar()
	return l
}

// Errors returns the lexical errors collected so far.
func (l *Lexer) Errors() []error {
	return l.errors
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.lineStart = l.readPos
	}
	if l.readPos >= len(l.input) {
		l.ch = 0 // ASCII NUL = EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// currentPos returns the current position.
func (l *Lexer) currentPos() Position {
	return Position{
		Line:   l.line,
		Column: l.pos - l.lineStart,
		Offset: l.pos,
	}
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) addError(pos Position, format string, args ...any) {
	l.errors = append(l.errors, &LexError{Pos: pos, Message: fmt.Sprintf(format, args...)})
}

// NextToken returns the next token.
func (l *Lexer) NextToken() Token {
	tok := l.next()
	l.last = tok.Type
	if !token.IsLayout(tok.Type) {
		l.emitted = true
	}
	return tok
}

func (l *Lexer) next() Token {
	if len(l.pending) > 0 {
		tok := l.pending[0]
		l.pending = l.pending[1:]
		return tok
	}

	if l.atLineStart && l.depth == 0 {
		l.atLineStart = false
		if tok, ok := l.readIndentation(); ok {
			return tok
		}
	}

	l.skipWhitespace()
	pos := l.currentPos()

	switch {
	case l.atEOF():
		return l.finish(pos)

	case l.ch == '\n':
		l.readChar()
		if l.depth > 0 {
			return l.next()
		}
		l.atLineStart = true
		return Token{Type: TOKEN_NEWLINE, Literal: "\n", Pos: pos, End: l.currentPos()}

	case isIdentStart(l.ch):
		if q, ok := l.stringPrefix(); ok {
			return l.readString(pos, q)
		}
		lit := l.readIdentifier()
		return Token{Type: LookupIdent(lit), Literal: lit, Pos: pos, End: l.currentPos()}

	case isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())):
		lit := l.readNumber()
		return Token{Type: TOKEN_NUMBER, Literal: lit, Pos: pos, End: l.currentPos()}

	case l.ch == '\'' || l.ch == '"':
		return l.readString(pos, 0)
	}

	if tok, ok := l.matchOperator(pos); ok {
		switch {
		case token.IsOpener(tok.Type):
			l.depth++
		case token.IsCloser(tok.Type) && l.depth > 0:
			l.depth--
		}
		return tok
	}

	ch := l.ch
	l.readChar()
	l.addError(pos, "unexpected character %q", ch)
	return Token{Type: TOKEN_ILLEGAL, Literal: string(ch), Pos: pos, End: l.currentPos()}
}

// finish emits the trailing NEWLINE, the DEDENTs that close open blocks and
// finally EOF.
func (l *Lexer) finish(pos Position) Token {
	if l.done {
		return Token{Type: TOKEN_EOF, Pos: pos, End: pos}
	}
	l.done = true
	if l.emitted && l.last != TOKEN_NEWLINE && l.last != TOKEN_DEDENT {
		l.pending = append(l.pending, Token{Type: TOKEN_NEWLINE, Pos: pos, End: pos})
	}
	for len(l.indents) > 1 {
		l.indents = l.indents[:len(l.indents)-1]
		l.pending = append(l.pending, Token{Type: TOKEN_DEDENT, Pos: pos, End: pos})
	}
	l.pending = append(l.pending, Token{Type: TOKEN_EOF, Pos: pos, End: pos})
	tok := l.pending[0]
	l.pending = l.pending[1:]
	return tok
}

// readIndentation measures the indentation of the next logical line,
// skipping blank and comment-only lines, and returns an INDENT or DEDENT
// token when the level changes.
func (l *Lexer) readIndentation() (Token, bool) {
	for {
		width := 0
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\f' {
			switch l.ch {
			case '\t':
				width = (width/8 + 1) * 8
			case '\f':
				width = 0
			default:
				width++
			}
			l.readChar()
		}
		if l.ch == '#' {
			l.skipComment()
		}
		if l.ch == '\r' && l.peekChar() == '\n' {
			l.readChar()
		}
		if l.ch == '\n' {
			l.readChar()
			continue
		}
		if l.atEOF() {
			return Token{}, false
		}

		pos := l.currentPos()
		current := l.indents[len(l.indents)-1]
		switch {
		case width > current:
			l.indents = append(l.indents, width)
			return Token{Type: TOKEN_INDENT, Pos: pos, End: pos}, true
		case width < current:
			for len(l.indents) > 1 && l.indents[len(l.indents)-1] > width {
				l.indents = l.indents[:len(l.indents)-1]
				l.pending = append(l.pending, Token{Type: TOKEN_DEDENT, Pos: pos, End: pos})
			}
			if l.indents[len(l.indents)-1] != width {
				l.addError(pos, "unindent does not match any outer indentation level")
			}
			tok := l.pending[0]
			l.pending = l.pending[1:]
			return tok, true
		}
		return Token{}, false
	}
}

// skipWhitespace skips spaces, comments and backslash continuations.
func (l *Lexer) skipWhitespace() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\f' || l.ch == '\r':
			l.readChar()
		case l.ch == '#':
			l.skipComment()
		case l.ch == '\\' && l.peekChar() == '\n':
			l.readChar()
			l.readChar()
		case l.ch == '\\' && l.peekChar() == '\r':
			l.readChar()
			l.readChar()
			if l.ch == '\n' {
				l.readChar()
			}
		default:
			return
		}
	}
}

// skipComment consumes a # comment up to, not including, the newline.
func (l *Lexer) skipComment() {
	for l.ch != '\n' && !l.atEOF() {
		l.readChar()
	}
}

// Operators by length, longest first.
var (
	operators3 = map[string]TokenType{
		"**=": TOKEN_DSTAREQ, "//=": TOKEN_DSLASHEQ, "<<=": TOKEN_LSHIFTEQ,
		">>=": TOKEN_RSHIFTEQ, "...": TOKEN_ELLIPSIS,
	}
	operators2 = map[string]TokenType{
		"**": TOKEN_DSTAR, "//": TOKEN_DSLASH, "<<": TOKEN_LSHIFT, ">>": TOKEN_RSHIFT,
		"==": TOKEN_EQ, "!=": TOKEN_NE, "<=": TOKEN_LE, ">=": TOKEN_GE,
		"+=": TOKEN_PLUSEQ, "-=": TOKEN_MINUSEQ, "*=": TOKEN_STAREQ, "/=": TOKEN_SLASHEQ,
		"%=": TOKEN_PERCENTEQ, "&=": TOKEN_AMPEQ, "|=": TOKEN_PIPEEQ, "^=": TOKEN_CARETEQ,
		"->": TOKEN_ARROW,
	}
	operators1 = map[string]TokenType{
		"+": TOKEN_PLUS, "-": TOKEN_MINUS, "*": TOKEN_STAR, "/": TOKEN_SLASH,
		"%": TOKEN_PERCENT, "&": TOKEN_AMP, "|": TOKEN_PIPE, "^": TOKEN_CARET,
		"~": TOKEN_TILDE, "<": TOKEN_LT, ">": TOKEN_GT, "=": TOKEN_ASSIGN,
		".": TOKEN_DOT, ",": TOKEN_COMMA, ":": TOKEN_COLON, ";": TOKEN_SEMICOLON,
		"@": TOKEN_AT, "(": TOKEN_LPAREN, ")": TOKEN_RPAREN, "[": TOKEN_LBRACKET,
		"]": TOKEN_RBRACKET, "{": TOKEN_LBRACE, "}": TOKEN_RBRACE,
	}
)

// matchOperator consumes the longest operator at the current position.
func (l *Lexer) matchOperator(pos Position) (Token, bool) {
	for _, table := range []struct {
		n   int
		ops map[string]TokenType
	}{{3, operators3}, {2, operators2}, {1, operators1}} {
		if l.pos+table.n > len(l.input) {
			continue
		}
		sym := l.input[l.pos : l.pos+table.n]
		if tt, ok := table.ops[sym]; ok {
			for range sym {
				l.readChar()
			}
			return Token{Type: tt, Literal: sym, Pos: pos, End: l.currentPos()}, true
		}
	}
	return Token{}, false
}

// stringPrefix reports whether the identifier starting here is really a
// string prefix (b, r, br, rb in any case) and returns the prefix length.
func (l *Lexer) stringPrefix() (int, bool) {
	for n := 1; n <= 2 && l.pos+n < len(l.input); n++ {
		q := l.input[l.pos+n]
		if q != '\'' && q != '"' {
			continue
		}
		if isStringPrefix(l.input[l.pos : l.pos+n]) {
			return n, true
		}
		return 0, false
	}
	return 0, false
}

func isStringPrefix(p string) bool {
	switch p {
	case "b", "B", "r", "R", "br", "Br", "bR", "BR", "rb", "rB", "Rb", "RB":
		return true
	}
	return false
}

// readString reads a single-, double- or triple-quoted string including its
// prefix and quotes. The literal keeps the raw source text; decoding happens
// in the parser.
func (l *Lexer) readString(pos Position, prefix int) Token {
	start := l.pos
	for i := 0; i < prefix; i++ {
		l.readChar()
	}
	quote := l.ch
	triple := l.peekChar() == quote && l.pos+2 < len(l.input) && l.input[l.pos+2] == quote
	if triple {
		l.readChar()
		l.readChar()
	}
	l.readChar() // opening quote

	for {
		if l.atEOF() {
			l.addError(pos, ErrUnterminatedString)
			return Token{Type: TOKEN_ILLEGAL, Literal: l.input[start:l.pos], Pos: pos, End: l.currentPos()}
		}
		switch {
		case l.ch == '\\':
			l.readChar()
			if !l.atEOF() {
				l.readChar()
			}
		case l.ch == '\n' && !triple:
			l.addError(pos, ErrUnterminatedString)
			return Token{Type: TOKEN_ILLEGAL, Literal: l.input[start:l.pos], Pos: pos, End: l.currentPos()}
		case l.ch == quote:
			if !triple {
				l.readChar()
				return Token{Type: TOKEN_STRING, Literal: l.input[start:l.pos], Pos: pos, End: l.currentPos()}
			}
			if l.peekChar() == quote && l.pos+2 < len(l.input) && l.input[l.pos+2] == quote {
				l.readChar()
				l.readChar()
				l.readChar()
				return Token{Type: TOKEN_STRING, Literal: l.input[start:l.pos], Pos: pos, End: l.currentPos()}
			}
			l.readChar()
		default:
			l.readChar()
		}
	}
}

// readIdentifier reads an identifier or keyword.
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isIdentStart(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// readNumber reads a numeric literal: integer in any base, decimal,
// scientific, or imaginary.
func (l *Lexer) readNumber() string {
	start := l.pos

	if l.ch == '0' && isBasePrefix(l.peekChar()) {
		l.readChar()
		l.readChar()
		for isHexDigit(l.ch) || l.ch == '_' {
			l.readChar()
		}
		return l.input[start:l.pos]
	}

	// Read integer part
	for isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}

	// Read decimal part
	if l.ch == '.' {
		l.readChar()
		for isDigit(l.ch) || l.ch == '_' {
			l.readChar()
		}
	}

	// Read exponent part (e.g., 1e10, 1E-5)
	if (l.ch == 'e' || l.ch == 'E') && (isDigit(l.peekChar()) || l.peekChar() == '+' || l.peekChar() == '-') {
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		for isDigit(l.ch) || l.ch == '_' {
			l.readChar()
		}
	}

	if l.ch == 'j' || l.ch == 'J' {
		l.readChar()
	}

	return l.input[start:l.pos]
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch >= 0x80
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isBasePrefix(ch byte) bool {
	switch ch {
	case 'x', 'X', 'o', 'O', 'b', 'B':
		return true
	}
	return false
}

// Tokenize returns all tokens from the input, layout tokens included.
func Tokenize(input string) []Token {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TOKEN_EOF {
			break
		}
	}
	return tokens
}
