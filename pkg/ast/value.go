package ast

import (
	"math/big"
	"strconv"
)

// Value is the runtime value of a Constant node.
type Value interface {
	String() string
	value()
}

// BoolValue is True or False.
type BoolValue bool

// NoneValue is the None literal.
type NoneValue struct{}

// IntValue is an arbitrary-precision integer literal.
type IntValue struct {
	V *big.Int
}

// FloatValue is a floating-point literal.
type FloatValue float64

// StrValue is a text string literal.
type StrValue string

// BytesValue is a byte-string literal (b"...").
type BytesValue []byte

// ComplexValue is an imaginary literal such as 2j.
type ComplexValue complex128

// EllipsisValue is the ... literal.
type EllipsisValue struct{}

func (BoolValue) value()     {}
func (NoneValue) value()     {}
func (IntValue) value()      {}
func (FloatValue) value()    {}
func (StrValue) value()      {}
func (BytesValue) value()    {}
func (ComplexValue) value()  {}
func (EllipsisValue) value() {}

func (v BoolValue) String() string {
	if v {
		return "True"
	}
	return "False"
}

func (NoneValue) String() string { return "None" }

func (v IntValue) String() string {
	if v.V == nil {
		return "0"
	}
	return v.V.String()
}

func (v FloatValue) String() string {
	return strconv.FormatFloat(float64(v), 'g', -1, 64)
}

func (v StrValue) String() string { return strconv.Quote(string(v)) }

func (v BytesValue) String() string { return "b" + strconv.Quote(string(v)) }

func (v ComplexValue) String() string {
	return strconv.FormatFloat(imag(complex128(v)), 'g', -1, 64) + "j"
}

func (EllipsisValue) String() string { return "..." }

// Int returns an IntValue holding n.
func Int(n int64) IntValue {
	return IntValue{V: big.NewInt(n)}
}
