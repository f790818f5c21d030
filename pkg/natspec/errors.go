package natspec

import "fmt"

// SyntaxError is a malformed NatSpec docstring. Line is 1-based and Column
// 0-based, both pointing into the contract source.
type SyntaxError struct {
	Message string
	Line    int
	Column  int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("natspec error at line %d, column %d: %s", e.Line, e.Column, e.Message)
}
