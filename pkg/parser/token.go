package parser

import "github.com/leapstack-labs/vyast/pkg/token"

// TokenType is an alias for token.TokenType.
type TokenType = token.TokenType

// Token is an alias for token.Token.
type Token = token.Token

// Position is an alias for token.Position.
type Position = token.Position

// LookupIdent is re-exported from token package.
var LookupIdent = token.LookupIdent

//nolint:revive // TOKEN_* names are intentionally ALL_CAPS
const (
	// Special tokens
	TOKEN_EOF     = token.EOF
	TOKEN_ILLEGAL = token.ILLEGAL

	// Layout
	TOKEN_NEWLINE = token.NEWLINE
	TOKEN_INDENT  = token.INDENT
	TOKEN_DEDENT  = token.DEDENT

	// Literals
	TOKEN_IDENT  = token.IDENT
	TOKEN_NUMBER = token.NUMBER
	TOKEN_STRING = token.STRING

	// Operators
	TOKEN_PLUS      = token.PLUS
	TOKEN_MINUS     = token.MINUS
	TOKEN_STAR      = token.STAR
	TOKEN_DSTAR     = token.DSTAR
	TOKEN_SLASH     = token.SLASH
	TOKEN_DSLASH    = token.DSLASH
	TOKEN_PERCENT   = token.PERCENT
	TOKEN_AMP       = token.AMP
	TOKEN_PIPE      = token.PIPE
	TOKEN_CARET     = token.CARET
	TOKEN_TILDE     = token.TILDE
	TOKEN_LSHIFT    = token.LSHIFT
	TOKEN_RSHIFT    = token.RSHIFT
	TOKEN_EQ        = token.EQ
	TOKEN_NE        = token.NE
	TOKEN_LT        = token.LT
	TOKEN_GT        = token.GT
	TOKEN_LE        = token.LE
	TOKEN_GE        = token.GE
	TOKEN_ASSIGN    = token.ASSIGN
	TOKEN_PLUSEQ    = token.PLUSEQ
	TOKEN_MINUSEQ   = token.MINUSEQ
	TOKEN_STAREQ    = token.STAREQ
	TOKEN_SLASHEQ   = token.SLASHEQ
	TOKEN_DSLASHEQ  = token.DSLASHEQ
	TOKEN_PERCENTEQ = token.PERCENTEQ
	TOKEN_DSTAREQ   = token.DSTAREQ
	TOKEN_AMPEQ     = token.AMPEQ
	TOKEN_PIPEEQ    = token.PIPEEQ
	TOKEN_CARETEQ   = token.CARETEQ
	TOKEN_LSHIFTEQ  = token.LSHIFTEQ
	TOKEN_RSHIFTEQ  = token.RSHIFTEQ
	TOKEN_ARROW     = token.ARROW
	TOKEN_DOT       = token.DOT
	TOKEN_ELLIPSIS  = token.ELLIPSIS
	TOKEN_COMMA     = token.COMMA
	TOKEN_COLON     = token.COLON
	TOKEN_SEMICOLON = token.SEMICOLON
	TOKEN_AT        = token.AT
	TOKEN_LPAREN    = token.LPAREN
	TOKEN_RPAREN    = token.RPAREN
	TOKEN_LBRACKET  = token.LBRACKET
	TOKEN_RBRACKET  = token.RBRACKET
	TOKEN_LBRACE    = token.LBRACE
	TOKEN_RBRACE    = token.RBRACE

	// Keywords (alphabetical)
	TOKEN_AND       = token.AND
	TOKEN_ASSERT    = token.ASSERT
	TOKEN_BREAK     = token.BREAK
	TOKEN_CLASS     = token.CLASS
	TOKEN_CONTINUE  = token.CONTINUE
	TOKEN_CONTRACT  = token.CONTRACT
	TOKEN_DEF       = token.DEF
	TOKEN_ELIF      = token.ELIF
	TOKEN_ELSE      = token.ELSE
	TOKEN_EVENT     = token.EVENT
	TOKEN_FALSE     = token.FALSE
	TOKEN_FOR       = token.FOR
	TOKEN_IF        = token.IF
	TOKEN_IN        = token.IN
	TOKEN_INTERFACE = token.INTERFACE
	TOKEN_IS        = token.IS
	TOKEN_NONE      = token.NONE
	TOKEN_NOT       = token.NOT
	TOKEN_OR        = token.OR
	TOKEN_PASS      = token.PASS
	TOKEN_RAISE     = token.RAISE
	TOKEN_RETURN    = token.RETURN
	TOKEN_STRUCT    = token.STRUCT
	TOKEN_TRUE      = token.TRUE
	TOKEN_WHILE     = token.WHILE
)
