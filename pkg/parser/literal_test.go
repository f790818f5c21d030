package parser

import (
	"math/big"
	"testing"

	"github.com/leapstack-labs/vyast/pkg/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		lit  string
		want ast.Value
	}{
		{"0", ast.Int(0)},
		{"1_000", ast.Int(1000)},
		{"0xff", ast.Int(255)},
		{"0X_FF", ast.Int(255)},
		{"0o17", ast.Int(15)},
		{"0b101", ast.Int(5)},
		{"1.5", ast.FloatValue(1.5)},
		{".5", ast.FloatValue(0.5)},
		{"1e3", ast.FloatValue(1000)},
		{"2.5E-1", ast.FloatValue(0.25)},
		{"2j", ast.ComplexValue(complex(0, 2))},
		{"1.5J", ast.ComplexValue(complex(0, 1.5))},
	}

	for _, tt := range tests {
		t.Run(tt.lit, func(t *testing.T) {
			got, err := parseNumber(tt.lit)
			require.NoError(t, err)
			if want, ok := tt.want.(ast.IntValue); ok {
				gotInt, ok := got.(ast.IntValue)
				require.True(t, ok, "expected IntValue, got %T", got)
				assert.Zero(t, want.V.Cmp(gotInt.V), "got %s", gotInt)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseNumber_Large(t *testing.T) {
	got, err := parseNumber("0x" + "ff_ff_ff_ff_ff_ff_ff_ff_ff")
	require.NoError(t, err)

	want, _ := new(big.Int).SetString("ffffffffffffffffff", 16)
	assert.Zero(t, want.Cmp(got.(ast.IntValue).V))
}

func TestParseNumber_Invalid(t *testing.T) {
	for _, lit := range []string{"0x", "0b2", "1e", "_"} {
		t.Run(lit, func(t *testing.T) {
			_, err := parseNumber(lit)
			assert.Error(t, err)
		})
	}
}

func TestParseString(t *testing.T) {
	tests := []struct {
		name string
		lit  string
		want ast.Value
	}{
		{"double", `"abc"`, ast.StrValue("abc")},
		{"single", `'abc'`, ast.StrValue("abc")},
		{"empty", `""`, ast.StrValue("")},
		{"triple", `"""a"b"""`, ast.StrValue(`a"b`)},
		{"empty triple", `''''''`, ast.StrValue("")},
		{"newline escape", `'a\nb'`, ast.StrValue("a\nb")},
		{"quote escape", `'it\'s'`, ast.StrValue("it's")},
		{"hex escape", `"\x41"`, ast.StrValue("A")},
		{"octal escape", `"\101"`, ast.StrValue("A")},
		{"unicode escape", `"\u00e9"`, ast.StrValue("é")},
		{"long unicode escape", `"\U0001F600"`, ast.StrValue("😀")},
		{"unknown escape kept", `"\q"`, ast.StrValue(`\q`)},
		{"line continuation", "'a\\\nb'", ast.StrValue("ab")},
		{"raw", `r'a\nb'`, ast.StrValue(`a\nb`)},
		{"bytes", `b"ab"`, ast.BytesValue("ab")},
		{"bytes hex", `b'\xff'`, ast.BytesValue{0xff}},
		{"bytes keep u", `b'\u00e9'`, ast.BytesValue(`\u00e9`)},
		{"raw bytes", `Rb'\x00'`, ast.BytesValue(`\x00`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseString(tt.lit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseString_Invalid(t *testing.T) {
	for _, lit := range []string{`"\x4"`, `"\xzz"`, `"\U00110000"`} {
		t.Run(lit, func(t *testing.T) {
			_, err := parseString(lit)
			assert.Error(t, err)
		})
	}
}
