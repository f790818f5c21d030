// Package asttokens associates AST nodes with the source tokens that
// produced them.
//
// Each node is mapped to its first and last covering token. A node's own
// position selects the token it starts at and the token it ends with; the
// range then grows to cover all of its children and any bracket left open
// inside it. A decorated function starts at the "@" of its first decorator.
// Nodes without a position of their own (Module, Arguments) are covered by
// their children alone, and have no range when they have none.
//
// Start positions are looked up by line and column, not by byte offset, so a
// rewrite that only moves a node's start column is honoured.
package asttokens

import (
	"sort"

	"github.com/leapstack-labs/vyast/pkg/ast"
	"github.com/leapstack-labs/vyast/pkg/parser"
	"github.com/leapstack-labs/vyast/pkg/token"
)

// Range is the token range of one node: the start of its first token and the
// end of its last token.
type Range struct {
	Start token.Position
	End   token.Position
}

// Len returns the number of source bytes covered by the range.
func (r Range) Len() int {
	return r.End.Offset - r.Start.Offset
}

// Index maps nodes to token ranges.
type Index struct {
	tokens []token.Token
	lines  *token.LineIndex
	ranges map[ast.Node]Range
}

// New tokenizes source and associates every node under root with its
// covering tokens. The tree must have been parsed from source.
func New(source string, root ast.Node) *Index {
	idx := &Index{
		tokens: significant(parser.Tokenize(source)),
		lines:  token.NewLineIndex(source),
		ranges: make(map[ast.Node]Range),
	}
	if root != nil {
		idx.mark(root)
	}
	return idx
}

// Lookup returns the token range of n.
func (idx *Index) Lookup(n ast.Node) (Range, bool) {
	r, ok := idx.ranges[n]
	return r, ok
}

// Tokens returns the tokens the index was built from, layout tokens
// excluded.
func (idx *Index) Tokens() []token.Token {
	return idx.tokens
}

// significant drops tokens that carry no source text.
func significant(tokens []token.Token) []token.Token {
	out := tokens[:0]
	for _, tok := range tokens {
		if !token.IsLayout(tok.Type) {
			out = append(out, tok)
		}
	}
	return out
}

// mark records the range of node and its descendants and returns the token
// indexes of the node's first and last token.
func (idx *Index) mark(node ast.Node) (first, last int, ok bool) {
	first, last = -1, -1
	if start := node.Pos(); start.IsValid() {
		first = idx.tokenAt(start.Line, start.Column)
		if end := node.End(); end.IsValid() {
			last = idx.tokenBefore(end.Offset)
		}
	}

	for _, child := range ast.Children(node) {
		cf, cl, ok := idx.mark(child)
		if !ok {
			continue
		}
		if first < 0 || cf < first {
			first = cf
		}
		if cl > last {
			last = cl
		}
	}

	if first < 0 {
		return -1, -1, false
	}
	if last < first {
		last = first
	}
	first, last = idx.expandPairs(first, last)
	if fn, ok := node.(*ast.FunctionDef); ok && len(fn.Decorators) > 0 && first > 0 && idx.tokens[first-1].Type == token.AT {
		first--
	}

	idx.ranges[node] = Range{Start: idx.tokens[first].Pos, End: idx.tokens[last].End}
	return first, last, true
}

// tokenAt returns the index of the token containing line:column, or the
// token preceding it when the position falls between tokens.
func (idx *Index) tokenAt(line, column int) int {
	off := idx.lines.Offset(line, column)
	if off < 0 || len(idx.tokens) == 0 {
		return -1
	}
	i := sort.Search(len(idx.tokens), func(i int) bool {
		return idx.tokens[i].Pos.Offset > off
	})
	if i == 0 {
		return 0
	}
	return i - 1
}

// tokenBefore returns the index of the last token starting before offset.
func (idx *Index) tokenBefore(offset int) int {
	i := sort.Search(len(idx.tokens), func(i int) bool {
		return idx.tokens[i].Pos.Offset >= offset
	})
	return i - 1
}

// expandPairs grows first..last so that brackets opened inside the range
// are closed inside it, and brackets closed inside it are opened inside it.
// A trailing comma or colon before the closing bracket is skipped over.
func (idx *Index) expandPairs(first, last int) (int, int) {
	var right, left []token.TokenType
	for i := first; i <= last; i++ {
		t := idx.tokens[i].Type
		switch {
		case len(right) > 0 && t == right[len(right)-1]:
			right = right[:len(right)-1]
		case token.IsOpener(t):
			right = append(right, token.Closer(t))
		case token.IsCloser(t):
			left = append(left, opener(t))
		}
	}

	for i := len(right) - 1; i >= 0; i-- {
		next := last + 1
		for next < len(idx.tokens) && (idx.tokens[next].Type == token.COMMA || idx.tokens[next].Type == token.COLON) {
			next++
		}
		if next < len(idx.tokens) && idx.tokens[next].Type == right[i] {
			last = next
		}
	}

	for _, want := range left {
		if first > 0 && idx.tokens[first-1].Type == want {
			first--
		}
	}
	return first, last
}

func opener(closer token.TokenType) token.TokenType {
	switch closer {
	case token.RPAREN:
		return token.LPAREN
	case token.RBRACKET:
		return token.LBRACKET
	case token.RBRACE:
		return token.LBRACE
	}
	return token.ILLEGAL
}
