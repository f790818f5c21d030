package parser

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/vyast/pkg/ast"
)

// parseNumber converts a NUMBER token literal into its value.
func parseNumber(lit string) (ast.Value, error) {
	s := strings.ReplaceAll(lit, "_", "")
	if s == "" {
		return nil, errors.New("empty number")
	}

	if last := s[len(s)-1]; last == 'j' || last == 'J' {
		f, err := strconv.ParseFloat(s[:len(s)-1], 64)
		if err != nil {
			return nil, err
		}
		return ast.ComplexValue(complex(0, f)), nil
	}

	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "0x") || strings.HasPrefix(lower, "0o") || strings.HasPrefix(lower, "0b") {
		n, ok := new(big.Int).SetString(lower, 0)
		if !ok {
			return nil, fmt.Errorf("invalid integer %q", lit)
		}
		return ast.IntValue{V: n}, nil
	}

	if strings.ContainsAny(s, ".eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, err
		}
		return ast.FloatValue(f), nil
	}

	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", lit)
	}
	return ast.IntValue{V: n}, nil
}

// parseString decodes a STRING token literal, prefix and quotes included,
// into a StrValue or BytesValue.
func parseString(lit string) (ast.Value, error) {
	i := strings.IndexAny(lit, `'"`)
	if i < 0 {
		return nil, errors.New("missing quote")
	}
	prefix := strings.ToLower(lit[:i])
	body := lit[i:]

	quote := body[:1]
	if len(body) >= 6 && (strings.HasPrefix(body, `"""`) || strings.HasPrefix(body, `'''`)) {
		quote = body[:3]
	}
	if len(body) < 2*len(quote) || !strings.HasSuffix(body, quote) {
		return nil, errors.New("unterminated string")
	}
	body = body[len(quote) : len(body)-len(quote)]

	isBytes := strings.Contains(prefix, "b")
	if strings.Contains(prefix, "r") {
		if isBytes {
			return ast.BytesValue(body), nil
		}
		return ast.StrValue(body), nil
	}

	decoded, err := unescape(body, isBytes)
	if err != nil {
		return nil, err
	}
	if isBytes {
		return ast.BytesValue(decoded), nil
	}
	return ast.StrValue(decoded), nil
}

// simpleEscapes are the single-character escape sequences.
var simpleEscapes = map[byte]byte{
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
	'a':  '\a',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
}

// unescape processes backslash escapes. In byte strings \x and octal escapes
// produce raw bytes and \u is not an escape; in text strings they produce
// code points. Unknown escapes are kept verbatim.
func unescape(s string, isBytes bool) ([]byte, error) {
	if !strings.Contains(s, `\`) {
		return []byte(s), nil
	}

	var buf []byte
	writeCode := func(code rune) {
		if isBytes {
			buf = append(buf, byte(code))
			return
		}
		buf = utf8.AppendRune(buf, code)
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			buf = append(buf, c)
			continue
		}
		i++
		c = s[i]

		if r, ok := simpleEscapes[c]; ok {
			buf = append(buf, r)
			continue
		}

		switch {
		case c == '\n':
			// line continuation

		case c >= '0' && c <= '7':
			j := i
			for j < len(s) && j < i+3 && s[j] >= '0' && s[j] <= '7' {
				j++
			}
			code, _ := strconv.ParseUint(s[i:j], 8, 32)
			writeCode(rune(code))
			i = j - 1

		case c == 'x', !isBytes && (c == 'u' || c == 'U'):
			width := map[byte]int{'x': 2, 'u': 4, 'U': 8}[c]
			if i+1+width > len(s) {
				return nil, fmt.Errorf("truncated \\%c escape", c)
			}
			code, err := strconv.ParseUint(s[i+1:i+1+width], 16, 32)
			if err != nil {
				return nil, fmt.Errorf("invalid \\%c escape", c)
			}
			if code > utf8.MaxRune {
				return nil, fmt.Errorf("illegal Unicode character in \\%c escape", c)
			}
			writeCode(rune(code))
			i += width

		default:
			buf = append(buf, '\\', c)
		}
	}
	return buf, nil
}
