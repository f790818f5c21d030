package annotate

import "github.com/leapstack-labs/vyast/pkg/ast"

// classify numbers n and its descendants in pre-order and tags each one.
// A node gets its id before its own classification can fail.
func (a *annotator) classify(n ast.Node) error {
	info := n.Info()
	info.NodeID = a.next
	a.next++
	info.Source = a.source
	info.ASTKind = n.Kind()

	switch n := n.(type) {
	case *ast.ClassDef:
		info.DeclKind = a.declKind(n.Name)

	case *ast.Constant:
		kind, ok := ConstKindOf(n.Value)
		if !ok {
			return &SyntaxError{
				Node:    n,
				Message: ErrUnsupportedLiteralKind.Error(),
				Err:     ErrUnsupportedLiteralKind,
			}
		}
		info.ConstKind = kind
		info.ASTKind = kind.String()
	}

	for _, child := range ast.Children(n) {
		if err := a.classify(child); err != nil {
			return err
		}
	}
	return nil
}

func (a *annotator) declKind(name string) *string {
	kind, ok := a.declKinds[name]
	if !ok {
		return nil
	}
	return &kind
}

// ConstKindOf returns the literal kind of v. Booleans and None are checked
// first, then numbers, text and bytes. Any other value has no kind.
func ConstKindOf(v ast.Value) (ast.ConstKind, bool) {
	switch v.(type) {
	case ast.BoolValue, ast.NoneValue:
		return ast.NameConstant, true
	case ast.IntValue, ast.FloatValue:
		return ast.Num, true
	case ast.StrValue:
		return ast.Str, true
	case ast.BytesValue:
		return ast.Bytes, true
	}
	return ast.ConstUnset, false
}
