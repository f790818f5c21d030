package ast

// Dumped is a serializable view of a decorated node and its subtree.
type Dumped struct {
	NodeID       int       `json:"node_id" yaml:"node_id"`
	ASTType      string    `json:"ast_type" yaml:"ast_type"`
	ConstKind    string    `json:"const_kind,omitempty" yaml:"const_kind,omitempty"`
	DeclKind     *string   `json:"class_type,omitempty" yaml:"class_type,omitempty"`
	Label        string    `json:"label,omitempty" yaml:"label,omitempty"`
	Src          string    `json:"src,omitempty" yaml:"src,omitempty"`
	LineNo       *int      `json:"lineno" yaml:"lineno"`
	ColOffset    *int      `json:"col_offset" yaml:"col_offset"`
	EndLineNo    *int      `json:"end_lineno" yaml:"end_lineno"`
	EndColOffset *int      `json:"end_col_offset" yaml:"end_col_offset"`
	Children     []*Dumped `json:"children,omitempty" yaml:"children,omitempty"`
}

// Dump converts a node and its subtree into a Dumped tree.
// Position fields are nil on nodes without a span.
func Dump(node Node) *Dumped {
	if node == nil {
		return nil
	}
	info := node.Info()
	d := &Dumped{
		NodeID:    info.NodeID,
		ASTType:   info.ASTKind,
		ConstKind: info.ConstKind.String(),
		DeclKind:  info.DeclKind,
		Label:     Label(node),
	}
	if d.ASTType == "" {
		d.ASTType = node.Kind()
	}
	if s := info.Span; s != nil {
		d.Src = s.Src
		d.LineNo, d.ColOffset = intPtr(s.StartLine), intPtr(s.StartCol)
		d.EndLineNo, d.EndColOffset = intPtr(s.EndLine), intPtr(s.EndCol)
	}
	for _, child := range Children(node) {
		d.Children = append(d.Children, Dump(child))
	}
	return d
}

// Label returns the short identifying text of a node: its name, operator or
// literal value. Nodes without one return "".
func Label(node Node) string {
	switch n := node.(type) {
	case *ClassDef:
		return n.Name
	case *FunctionDef:
		return n.Name
	case *Arg:
		return n.Name
	case *Keyword:
		return n.Name
	case *Name:
		return n.ID
	case *Attribute:
		return n.Attr
	case *Constant:
		if n.Value == nil {
			return ""
		}
		return n.Value.String()
	case *UnaryOp:
		return string(n.Op)
	case *BinOp:
		return string(n.Op)
	case *AugAssign:
		return string(n.Op)
	case *BoolOp:
		return string(n.Op)
	case *Compare:
		if len(n.Ops) > 0 {
			return string(n.Ops[0])
		}
	}
	return ""
}

func intPtr(v int) *int { return &v }
