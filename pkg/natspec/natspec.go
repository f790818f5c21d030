// Package natspec extracts NatSpec documentation from contract docstrings.
//
// The module docstring documents the contract as a whole and accepts
// @title, @author, @notice and @dev. Docstrings of external functions accept
// @author, @notice, @dev, @param and @return. @notice text goes to the user
// documentation, everything else to the developer documentation. A docstring
// without any tag is taken as a single @notice.
package natspec

import (
	"strings"

	"github.com/leapstack-labs/vyast/pkg/ast"
	"github.com/leapstack-labs/vyast/pkg/token"
)

// UserDoc is the end-user documentation of a contract.
type UserDoc struct {
	Notice  string                   `json:"notice,omitempty" yaml:"notice,omitempty"`
	Methods map[string]MethodUserDoc `json:"methods,omitempty" yaml:"methods,omitempty"`
}

// MethodUserDoc is the end-user documentation of one method signature.
type MethodUserDoc struct {
	Notice string `json:"notice" yaml:"notice"`
}

// DevDoc is the developer documentation of a contract.
type DevDoc struct {
	Title   string                  `json:"title,omitempty" yaml:"title,omitempty"`
	Author  string                  `json:"author,omitempty" yaml:"author,omitempty"`
	Details string                  `json:"details,omitempty" yaml:"details,omitempty"`
	Methods map[string]MethodDevDoc `json:"methods,omitempty" yaml:"methods,omitempty"`
}

// MethodDevDoc is the developer documentation of one method signature.
type MethodDevDoc struct {
	Author  string            `json:"author,omitempty" yaml:"author,omitempty"`
	Details string            `json:"details,omitempty" yaml:"details,omitempty"`
	Params  map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
	Returns map[string]string `json:"returns,omitempty" yaml:"returns,omitempty"`
}

func (m MethodDevDoc) isZero() bool {
	return m.Author == "" && m.Details == "" && m.Params == nil && m.Returns == nil
}

// externalDecorators mark a function as part of the contract's public
// interface.
var externalDecorators = []string{"external", "public"}

// Parse extracts the user and developer documentation of mod, which must
// have been parsed from source.
func Parse(mod *ast.Module, source string) (*UserDoc, *DevDoc, error) {
	user, dev := &UserDoc{}, &DevDoc{}
	if mod == nil {
		return user, dev, nil
	}
	lines := token.NewLineIndex(source)

	if lit, doc, ok := docstringOf(mod.Body); ok {
		d, err := parseDocstring(doc, locator(source, lines, lit, doc), parseRules{
			invalid: []string{"param", "return"},
		})
		if err != nil {
			return nil, nil, err
		}
		user.Notice = d.single["notice"]
		dev.Title = d.single["title"]
		dev.Author = d.single["author"]
		dev.Details = d.single["details"]
	}

	types := newTypeTable(mod)
	for _, stmt := range mod.Body {
		fn, ok := stmt.(*ast.FunctionDef)
		if !ok || !isExternal(fn) {
			continue
		}
		lit, doc, ok := docstringOf(fn.Body)
		if !ok {
			continue
		}

		sigs, err := types.signatures(fn)
		if err != nil {
			return nil, nil, err
		}
		d, err := parseDocstring(doc, locator(source, lines, lit, doc), parseRules{
			invalid:     []string{"title"},
			params:      argNames(fn),
			returnCount: returnCount(fn),
		})
		if err != nil {
			return nil, nil, err
		}

		method := MethodDevDoc{
			Author:  d.single["author"],
			Details: d.single["details"],
			Params:  d.params,
			Returns: d.returns,
		}
		for _, sig := range sigs {
			if notice, ok := d.single["notice"]; ok {
				if user.Methods == nil {
					user.Methods = make(map[string]MethodUserDoc)
				}
				user.Methods[sig] = MethodUserDoc{Notice: notice}
			}
			if !method.isZero() {
				if dev.Methods == nil {
					dev.Methods = make(map[string]MethodDevDoc)
				}
				dev.Methods[sig] = method
			}
		}
	}
	return user, dev, nil
}

// docstringOf returns the non-empty docstring of body and its literal.
func docstringOf(body []ast.Stmt) (*ast.Constant, string, bool) {
	lit, ok := ast.DocString(body)
	if !ok {
		return nil, "", false
	}
	doc := string(lit.Value.(ast.StrValue))
	if doc == "" {
		return nil, "", false
	}
	return lit, doc, true
}

// locator maps an offset within doc to a source line and column. The text
// of doc is searched for from the literal's position onward; escapes in the
// literal can make the search fail, in which case the literal's own position
// is used.
func locator(source string, lines *token.LineIndex, lit *ast.Constant, doc string) func(int) (int, int) {
	base := 0
	if pos := lit.Pos(); pos.IsValid() && pos.Offset <= len(source) {
		base = pos.Offset
	}
	start := base
	if i := strings.Index(source[base:], doc); i >= 0 {
		start = base + i
	}
	return func(offset int) (int, int) {
		p := lines.Position(start + offset)
		return p.Line, p.Column
	}
}

func isExternal(fn *ast.FunctionDef) bool {
	for _, dec := range fn.Decorators {
		if name, ok := dec.(*ast.Name); ok && contains(externalDecorators, name.ID) {
			return true
		}
	}
	return false
}

func argNames(fn *ast.FunctionDef) []string {
	if fn.Args == nil {
		return nil
	}
	names := make([]string, len(fn.Args.Args))
	for i, a := range fn.Args.Args {
		names[i] = a.Name
	}
	return names
}

// returnCount is the number of values fn returns: the arity of a tuple
// return type, 1 for any other return type, 0 without one.
func returnCount(fn *ast.FunctionDef) int {
	switch r := fn.Returns.(type) {
	case nil:
		return 0
	case *ast.Tuple:
		return len(r.Elts)
	}
	return 1
}
