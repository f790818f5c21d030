package natspec

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/vyast/pkg/ast"
)

// typeTable resolves argument annotations to canonical ABI type names.
type typeTable struct {
	structs map[string]*ast.ClassDef
	// addresses are interface and contract names, passed as addresses.
	addresses map[string]bool
}

func newTypeTable(mod *ast.Module) *typeTable {
	t := &typeTable{
		structs:   make(map[string]*ast.ClassDef),
		addresses: make(map[string]bool),
	}
	for _, stmt := range mod.Body {
		cls, ok := stmt.(*ast.ClassDef)
		if !ok {
			continue
		}
		switch cls.Keyword {
		case "struct":
			t.structs[cls.Name] = cls
		case "interface", "contract":
			t.addresses[cls.Name] = true
		}
	}
	return t
}

// aliases maps source type names to their canonical names.
var aliases = map[string]string{
	"decimal": "fixed168x10",
	"Bytes":   "bytes",
	"String":  "string",
}

// signatures returns one signature per number of default arguments given,
// from none to all: f(uint256), f(uint256,bool), ...
func (t *typeTable) signatures(fn *ast.FunctionDef) ([]string, error) {
	var types []string
	if fn.Args != nil {
		for _, a := range fn.Args.Args {
			typ, err := t.canonical(a.Annotation, 0)
			if err != nil {
				return nil, typeError(a, err)
			}
			types = append(types, typ)
		}
	}

	defaults := 0
	if fn.Args != nil {
		defaults = len(fn.Args.Defaults)
	}
	required := len(types) - defaults

	sigs := make([]string, 0, defaults+1)
	for n := required; n <= len(types); n++ {
		sigs = append(sigs, fmt.Sprintf("%s(%s)", fn.Name, strings.Join(types[:n], ",")))
	}
	return sigs, nil
}

func typeError(a *ast.Arg, err error) error {
	pos := a.Pos()
	return &SyntaxError{
		Message: fmt.Sprintf("cannot derive signature type of argument '%s': %v", a.Name, err),
		Line:    pos.Line,
		Column:  pos.Column,
	}
}

// maxStructDepth stops self-referencing structs.
const maxStructDepth = 16

func (t *typeTable) canonical(e ast.Expr, depth int) (string, error) {
	if depth > maxStructDepth {
		return "", fmt.Errorf("struct nesting too deep")
	}

	switch e := e.(type) {
	case nil:
		return "", fmt.Errorf("missing type annotation")

	case *ast.Name:
		if alias, ok := aliases[e.ID]; ok {
			return alias, nil
		}
		if t.addresses[e.ID] {
			return "address", nil
		}
		if cls, ok := t.structs[e.ID]; ok {
			return t.tuple(cls, depth)
		}
		return e.ID, nil

	case *ast.Subscript:
		base, ok := e.Value.(*ast.Name)
		if !ok {
			return "", fmt.Errorf("unsupported type %s", e.Value.Kind())
		}
		switch base.ID {
		case "bytes", "Bytes":
			return "bytes", nil
		case "string", "String":
			return "string", nil
		case "DynArray":
			elts, ok := e.Slice.(*ast.Tuple)
			if !ok || len(elts.Elts) != 2 {
				return "", fmt.Errorf("DynArray needs an element type and a bound")
			}
			inner, err := t.canonical(elts.Elts[0], depth+1)
			if err != nil {
				return "", err
			}
			return inner + "[]", nil
		}

		inner, err := t.canonical(base, depth+1)
		if err != nil {
			return "", err
		}
		size, ok := e.Slice.(*ast.Constant)
		if !ok {
			return "", fmt.Errorf("array size must be a literal")
		}
		n, ok := size.Value.(ast.IntValue)
		if !ok {
			return "", fmt.Errorf("array size must be an integer")
		}
		return fmt.Sprintf("%s[%s]", inner, n), nil
	}
	return "", fmt.Errorf("unsupported type %s", e.Kind())
}

// tuple renders a struct as the tuple of its member types.
func (t *typeTable) tuple(cls *ast.ClassDef, depth int) (string, error) {
	var members []string
	for _, stmt := range cls.Body {
		field, ok := stmt.(*ast.AnnAssign)
		if !ok {
			continue
		}
		typ, err := t.canonical(field.Annotation, depth+1)
		if err != nil {
			return "", err
		}
		members = append(members, typ)
	}
	return "(" + strings.Join(members, ",") + ")", nil
}
