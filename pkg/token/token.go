// Package token defines the lexical tokens of the contract language.
//
// The language is an indentation-sensitive Python subset, so the token set
// includes the layout tokens NEWLINE, INDENT and DEDENT next to the usual
// literals, operators and keywords.
package token

import "fmt"

// TokenType represents the type of a lexical token.
//
//nolint:revive // token.TokenType reads better than token.Type at call sites
type TokenType int32

//nolint:revive // upper-case token names follow the lexer convention
const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Layout
	NEWLINE
	INDENT
	DEDENT

	// Literals
	IDENT  // identifier
	NUMBER // 123, 0xff, 1.5, 1e10, 2j
	STRING // 'abc', "abc", """abc""", b"abc"

	// Operators and delimiters
	PLUS        // +
	MINUS       // -
	STAR        // *
	DSTAR       // **
	SLASH       // /
	DSLASH      // //
	PERCENT     // %
	AMP         // &
	PIPE        // |
	CARET       // ^
	TILDE       // ~
	LSHIFT      // <<
	RSHIFT      // >>
	EQ          // ==
	NE          // !=
	LT          // <
	GT          // >
	LE          // <=
	GE          // >=
	ASSIGN      // =
	PLUSEQ      // +=
	MINUSEQ     // -=
	STAREQ      // *=
	SLASHEQ     // /=
	DSLASHEQ    // //=
	PERCENTEQ   // %=
	DSTAREQ     // **=
	AMPEQ       // &=
	PIPEEQ      // |=
	CARETEQ     // ^=
	LSHIFTEQ    // <<=
	RSHIFTEQ    // >>=
	ARROW       // ->
	DOT         // .
	ELLIPSIS    // ...
	COMMA       // ,
	COLON       // :
	SEMICOLON   // ;
	AT          // @
	LPAREN      // (
	RPAREN      // )
	LBRACKET    // [
	RBRACKET    // ]
	LBRACE      // {
	RBRACE      // }
	operatorEnd // sentinel

	// Keywords (alphabetical)
	AND
	ASSERT
	BREAK
	CLASS
	CONTINUE
	CONTRACT
	DEF
	ELIF
	ELSE
	EVENT
	FALSE
	FOR
	IF
	IN
	INTERFACE
	IS
	NONE
	NOT
	OR
	PASS
	RAISE
	RETURN
	STRUCT
	TRUE
	WHILE
	keywordEnd // sentinel
)

var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",
	NEWLINE: "NEWLINE",
	INDENT:  "INDENT",
	DEDENT:  "DEDENT",
	IDENT:   "IDENT",
	NUMBER:  "NUMBER",
	STRING:  "STRING",

	PLUS:      "+",
	MINUS:     "-",
	STAR:      "*",
	DSTAR:     "**",
	SLASH:     "/",
	DSLASH:    "//",
	PERCENT:   "%",
	AMP:       "&",
	PIPE:      "|",
	CARET:     "^",
	TILDE:     "~",
	LSHIFT:    "<<",
	RSHIFT:    ">>",
	EQ:        "==",
	NE:        "!=",
	LT:        "<",
	GT:        ">",
	LE:        "<=",
	GE:        ">=",
	ASSIGN:    "=",
	PLUSEQ:    "+=",
	MINUSEQ:   "-=",
	STAREQ:    "*=",
	SLASHEQ:   "/=",
	DSLASHEQ:  "//=",
	PERCENTEQ: "%=",
	DSTAREQ:   "**=",
	AMPEQ:     "&=",
	PIPEEQ:    "|=",
	CARETEQ:   "^=",
	LSHIFTEQ:  "<<=",
	RSHIFTEQ:  ">>=",
	ARROW:     "->",
	DOT:       ".",
	ELLIPSIS:  "...",
	COMMA:     ",",
	COLON:     ":",
	SEMICOLON: ";",
	AT:        "@",
	LPAREN:    "(",
	RPAREN:    ")",
	LBRACKET:  "[",
	RBRACKET:  "]",
	LBRACE:    "{",
	RBRACE:    "}",

	AND:       "and",
	ASSERT:    "assert",
	BREAK:     "break",
	CLASS:     "class",
	CONTINUE:  "continue",
	CONTRACT:  "contract",
	DEF:       "def",
	ELIF:      "elif",
	ELSE:      "else",
	EVENT:     "event",
	FALSE:     "False",
	FOR:       "for",
	IF:        "if",
	IN:        "in",
	INTERFACE: "interface",
	IS:        "is",
	NONE:      "None",
	NOT:       "not",
	OR:        "or",
	PASS:      "pass",
	RAISE:     "raise",
	RETURN:    "return",
	STRUCT:    "struct",
	TRUE:      "True",
	WHILE:     "while",
}

// String returns the string representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

// keywords maps identifier spellings to keyword token types.
// Keywords are case-sensitive.
var keywords = map[string]TokenType{
	"and":       AND,
	"assert":    ASSERT,
	"break":     BREAK,
	"class":     CLASS,
	"continue":  CONTINUE,
	"contract":  CONTRACT,
	"def":       DEF,
	"elif":      ELIF,
	"else":      ELSE,
	"event":     EVENT,
	"False":     FALSE,
	"for":       FOR,
	"if":        IF,
	"in":        IN,
	"interface": INTERFACE,
	"is":        IS,
	"None":      NONE,
	"not":       NOT,
	"or":        OR,
	"pass":      PASS,
	"raise":     RAISE,
	"return":    RETURN,
	"struct":    STRUCT,
	"True":      TRUE,
	"while":     WHILE,
}

// LookupIdent returns the token type for the given identifier.
// If the identifier is a keyword, the keyword token type is returned.
// Otherwise, IDENT is returned.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword returns true if the token type is a keyword.
func IsKeyword(t TokenType) bool {
	return t > operatorEnd && t < keywordEnd
}

// IsOperator returns true if the token type is an operator or delimiter.
func IsOperator(t TokenType) bool {
	return t >= PLUS && t < operatorEnd
}

// IsLayout returns true for tokens that carry no source text of their own.
func IsLayout(t TokenType) bool {
	switch t {
	case NEWLINE, INDENT, DEDENT, EOF:
		return true
	}
	return false
}

// IsDeclKeyword returns true for keywords that introduce a class-like declaration.
func IsDeclKeyword(t TokenType) bool {
	switch t {
	case CLASS, CONTRACT, EVENT, INTERFACE, STRUCT:
		return true
	}
	return false
}

// IsOpener returns true for opening brackets.
func IsOpener(t TokenType) bool {
	return t == LPAREN || t == LBRACKET || t == LBRACE
}

// IsCloser returns true for closing brackets.
func IsCloser(t TokenType) bool {
	return t == RPAREN || t == RBRACKET || t == RBRACE
}

// Closer returns the closing bracket matching an opening bracket.
func Closer(open TokenType) TokenType {
	switch open {
	case LPAREN:
		return RPAREN
	case LBRACKET:
		return RBRACKET
	case LBRACE:
		return RBRACE
	}
	return ILLEGAL
}

// Token represents a lexical token with position information.
// End is the position immediately after the last byte of the token.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
	End     Position
}

// String returns a short description of the token for error messages.
func (t Token) String() string {
	switch t.Type {
	case IDENT, NUMBER, STRING, ILLEGAL:
		return fmt.Sprintf("%s %q", t.Type, t.Literal)
	}
	return t.Type.String()
}
