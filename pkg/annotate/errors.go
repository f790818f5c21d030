package annotate

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/vyast/pkg/ast"
)

// ErrUnsupportedLiteralKind is wrapped by the SyntaxError returned when a
// constant holds a value none of the literal kinds covers.
var ErrUnsupportedLiteralKind = errors.New("unsupported literal value kind")

// SyntaxError is an error tied to the node that caused it.
type SyntaxError struct {
	Node    ast.Node
	Message string
	Err     error
}

func (e *SyntaxError) Error() string {
	if e.Node != nil {
		if pos := e.Node.Pos(); pos.IsValid() {
			return fmt.Sprintf("syntax error at line %d, column %d: %s", pos.Line, pos.Column, e.Message)
		}
	}
	return "syntax error: " + e.Message
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}
