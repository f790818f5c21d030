// Package ast defines the syntax tree of the contract language and the
// decoration metadata later compiler phases rely on.
//
// Node shapes follow Python's ast module: statement and expression structs
// with the same field order, so pre-order numbering and child visitation
// match what the language's reference tooling produces.
package ast

import (
	"fmt"

	"github.com/leapstack-labs/vyast/pkg/token"
)

// Node is the base interface for all AST nodes.
type Node interface {
	// Info returns the node's shared metadata block.
	Info() *NodeInfo
	// Kind returns the node's structural class name (e.g. "UnaryOp").
	Kind() string
	// Pos returns the position of the first byte of the node.
	Pos() token.Position
	// End returns the position immediately after the node.
	End() token.Position
}

// Expr is a marker interface for expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a marker interface for statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// NodeInfo carries the position and decoration metadata common to every node.
// The parser fills Loc; everything else is written by the annotate passes.
type NodeInfo struct {
	Loc token.Span

	NodeID    int
	Source    *string // shared full source text, never copied per node
	ASTKind   string
	ConstKind ConstKind
	DeclKind  *string
	Span      *Span
}

// Info implements Node.
func (n *NodeInfo) Info() *NodeInfo { return n }

// Pos implements Node.
func (n *NodeInfo) Pos() token.Position { return n.Loc.Start }

// End implements Node.
func (n *NodeInfo) End() token.Position { return n.Loc.End }

// Annotated reports whether the identity pass has visited the node.
func (n *NodeInfo) Annotated() bool { return n.Source != nil }

// Span is the exact source range of a node, derived from its covering tokens.
type Span struct {
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
	ByteStart int
	ByteLen   int
	SourceID  int
	Src       string // "<byte_start>:<byte_len>:<source_id>"
}

// FormatSrc formats the span identifier used to address a range across the
// files of one compilation unit.
func FormatSrc(byteStart, byteLen, sourceID int) string {
	return fmt.Sprintf("%d:%d:%d", byteStart, byteLen, sourceID)
}

// ConstKind classifies the value held by a Constant node.
type ConstKind int

// ConstKind values. ConstUnset is carried by every non-constant node.
const (
	ConstUnset ConstKind = iota
	NameConstant
	Num
	Str
	Bytes
)

func (k ConstKind) String() string {
	switch k {
	case NameConstant:
		return "NameConstant"
	case Num:
		return "Num"
	case Str:
		return "Str"
	case Bytes:
		return "Bytes"
	}
	return ""
}
