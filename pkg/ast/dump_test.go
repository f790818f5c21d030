package ast_test

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/leapstack-labs/vyast/pkg/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabel(t *testing.T) {
	big256 := ast.IntValue{V: new(big.Int).Lsh(big.NewInt(1), 256)}

	tests := []struct {
		name string
		node ast.Node
		want string
	}{
		{"function", &ast.FunctionDef{Name: "transfer"}, "transfer"},
		{"class", &ast.ClassDef{Name: "Point", Keyword: "struct"}, "Point"},
		{"name", name("owner"), "owner"},
		{"attribute", &ast.Attribute{Value: name("self"), Attr: "balance"}, "balance"},
		{"int", &ast.Constant{Value: ast.Int(-3)}, "-3"},
		{"big int", &ast.Constant{Value: big256}, big256.V.String()},
		{"float", &ast.Constant{Value: ast.FloatValue(2.5)}, "2.5"},
		{"string", &ast.Constant{Value: ast.StrValue("a\"b")}, `"a\"b"`},
		{"bytes", &ast.Constant{Value: ast.BytesValue("\x01")}, `b"\x01"`},
		{"bool", &ast.Constant{Value: ast.BoolValue(false)}, "False"},
		{"none", &ast.Constant{Value: ast.NoneValue{}}, "None"},
		{"empty constant", &ast.Constant{}, ""},
		{"unary", &ast.UnaryOp{Op: ast.Not, Operand: name("x")}, "Not"},
		{"binary", &ast.BinOp{Op: ast.FloorDiv}, "FloorDiv"},
		{"compare", &ast.Compare{Ops: []ast.CmpOperator{ast.IsNot}}, "IsNot"},
		{"pass", &ast.Pass{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ast.Label(tt.node))
		})
	}
}

func TestDump(t *testing.T) {
	lit := &ast.Constant{Value: ast.Int(5)}
	lit.NodeID = 3
	lit.ASTKind = "Num"
	lit.ConstKind = ast.Num
	lit.Span = &ast.Span{
		StartLine: 1, StartCol: 4, EndLine: 1, EndCol: 5,
		ByteStart: 4, ByteLen: 1, Src: ast.FormatSrc(4, 1, 0),
	}
	stmt := &ast.ExprStmt{Value: lit}
	stmt.NodeID = 2

	d := ast.Dump(stmt)
	require.NotNil(t, d)
	assert.Equal(t, "Expr", d.ASTType, "falls back to the structural kind")
	assert.Nil(t, d.LineNo, "unspanned nodes have no position")
	require.Len(t, d.Children, 1)

	child := d.Children[0]
	assert.Equal(t, 3, child.NodeID)
	assert.Equal(t, "Num", child.ASTType)
	assert.Equal(t, "Num", child.ConstKind)
	assert.Equal(t, "5", child.Label)
	assert.Equal(t, "4:1:0", child.Src)
	require.NotNil(t, child.ColOffset)
	assert.Equal(t, 4, *child.ColOffset)
	assert.Equal(t, 5, *child.EndColOffset)

	assert.Nil(t, ast.Dump(nil))
}

func TestDump_JSON(t *testing.T) {
	kind := "struct"
	cls := &ast.ClassDef{Name: "P", Keyword: kind}
	cls.NodeID = 1
	cls.ASTKind = "ClassDef"
	cls.DeclKind = &kind

	out, err := json.Marshal(ast.Dump(cls))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"node_id": 1,
		"ast_type": "ClassDef",
		"class_type": "struct",
		"label": "P",
		"lineno": null,
		"col_offset": null,
		"end_lineno": null,
		"end_col_offset": null
	}`, string(out))
}
