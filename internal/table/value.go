package table

import "strconv"

type Kind uint8

const (
	KindNull Kind = iota
	KindText
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindText:
		return "text"
	case KindBool:
		return "bool"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a single cell. The zero Value is null.
type Value struct {
	kind Kind
	text string
	b    bool
}

func Null() Value            { return Value{} }
func Text(s string) Value    { return Value{kind: KindText, text: s} }
func Bool(b bool) Value      { return Value{kind: KindBool, b: b} }
func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

// Str returns the text of a text cell, the TRUE/FALSE spelling of a
// boolean cell and "" for null.
func (v Value) Str() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindBool:
		if v.b {
			return "TRUE"
		}
		return "FALSE"
	default:
		return ""
	}
}

// AsBool reports the boolean held by v; ok is false for non-boolean cells.
func (v Value) AsBool() (b, ok bool) {
	return v.b, v.kind == KindBool
}

// Any returns nil, string or bool, for encoders.
func (v Value) Any() any {
	switch v.kind {
	case KindText:
		return v.text
	case KindBool:
		return v.b
	default:
		return nil
	}
}

func (v Value) Equal(o Value) bool { return v == o }
