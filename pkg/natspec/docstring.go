package natspec

import (
	"fmt"
	"strings"
	"unicode"
)

// field is one "@tag value" entry of a docstring. Offset is the byte offset
// of the tag name within the docstring.
type field struct {
	tag    string
	value  string
	offset int
}

// splitFields finds the tagged fields of a docstring. A tag is an "@"
// followed by a non-space character that opens the docstring or a line; its
// value runs up to the next tag with surrounding whitespace trimmed.
func splitFields(doc string) []field {
	var starts []int
	for lineStart := 0; lineStart < len(doc); {
		i := lineStart
		for i < len(doc) && doc[i] != '\n' && isSpace(doc[i]) {
			i++
		}
		if i+1 < len(doc) && doc[i] == '@' && !isSpace(doc[i+1]) {
			starts = append(starts, i)
		}
		nl := strings.IndexByte(doc[lineStart:], '\n')
		if nl < 0 {
			break
		}
		lineStart += nl + 1
	}

	fields := make([]field, 0, len(starts))
	for k, at := range starts {
		end := len(doc)
		if k+1 < len(starts) {
			end = starts[k+1]
		}
		tagEnd := at + 1
		for tagEnd < end && !isSpace(doc[tagEnd]) {
			tagEnd++
		}
		fields = append(fields, field{
			tag:    doc[at+1 : tagEnd],
			value:  strings.TrimSpace(doc[tagEnd:end]),
			offset: at + 1,
		})
	}
	return fields
}

func isSpace(c byte) bool {
	return unicode.IsSpace(rune(c))
}

// normalize collapses every run of whitespace into a single space.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// docstring is the parsed content of one docstring. Single fields use their
// output names (details, not dev).
type docstring struct {
	single  map[string]string
	params  map[string]string
	returns map[string]string
}

func (d *docstring) empty() bool {
	return len(d.single) == 0 && d.params == nil && d.returns == nil
}

// parseRules says which fields a docstring accepts.
type parseRules struct {
	invalid     []string // fields not allowed here
	params      []string // argument names @param may document
	returnCount int      // number of values @return may document
}

var (
	singleFields = []string{"title", "author", "notice", "dev"}
	paramFields  = []string{"param", "return"}
	outputNames  = map[string]string{"return": "returns", "dev": "details", "param": "params"}
)

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// parseDocstring parses doc, whose first byte sits at pos in the source.
// Errors are reported at the tag they concern.
func parseDocstring(doc string, pos func(offset int) (int, int), rules parseRules) (*docstring, error) {
	d := &docstring{single: make(map[string]string)}

	for _, f := range splitFields(doc) {
		fail := func(format string, args ...any) error {
			line, col := pos(f.offset)
			return &SyntaxError{Message: fmt.Sprintf(format, args...), Line: line, Column: col}
		}

		if !contains(singleFields, f.tag) && !contains(paramFields, f.tag) {
			return nil, fail("Unknown NatSpec field '@%s'", f.tag)
		}
		if contains(rules.invalid, f.tag) {
			return nil, fail("'@%s' is not a valid field for this docstring", f.tag)
		}
		if f.value == "" || strings.HasPrefix(f.value, "@") {
			return nil, fail("No description given for tag '@%s'", f.tag)
		}

		name := f.tag
		if out, ok := outputNames[f.tag]; ok {
			name = out
		}

		switch f.tag {
		case "param":
			parts := strings.Fields(f.value)
			if len(parts) < 2 {
				return nil, fail("No description given for parameter '%s'", f.value)
			}
			key := parts[0]
			if !contains(rules.params, key) {
				return nil, fail("Method has no parameter '%s'", key)
			}
			if d.params == nil {
				d.params = make(map[string]string)
			}
			if _, dup := d.params[key]; dup {
				return nil, fail("Parameter '%s' documented more than once", key)
			}
			d.params[key] = normalize(strings.TrimSpace(f.value)[len(key):])

		case "return":
			if rules.returnCount == 0 {
				return nil, fail("Method does not return any values")
			}
			if len(d.returns) >= rules.returnCount {
				return nil, fail("Number of documented return values exceeds actual number")
			}
			if d.returns == nil {
				d.returns = make(map[string]string)
			}
			d.returns[fmt.Sprintf("_%d", len(d.returns))] = normalize(f.value)

		default:
			if _, dup := d.single[name]; dup {
				return nil, fail("Duplicate NatSpec field '@%s'", f.tag)
			}
			d.single[name] = normalize(f.value)
		}
	}

	if d.empty() {
		d.single["notice"] = normalize(doc)
	} else if !strings.HasPrefix(strings.TrimSpace(doc), "@") {
		line, col := pos(0)
		return nil, &SyntaxError{Message: "NatSpec docstring opens with untagged comment", Line: line, Column: col}
	}
	return d, nil
}
