package resp

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

// Value is one parsed RESP unit. The variant set is closed: exactly one of
// the five types, discriminated by Kind. A Value owns its payload and
// children outright and is immutable once constructed.
type Value struct {
	Kind Type

	// Str carries the payload of simple strings and errors.
	Str string

	// Num carries the integer value, the declared size of a bulk string,
	// or the declared length of an array.
	Num int64

	// Data carries the raw bytes of a bulk string; len(Data) == Num on
	// every successfully parsed bulk.
	Data []byte

	// Elems carries the children of an array; len(Elems) == Num on every
	// successfully parsed array.
	Elems []Value
}

func NewSimple(s string) Value {
	return Value{Kind: TypeSimple, Str: s}
}

func NewError(msg string) Value {
	return Value{Kind: TypeError, Str: msg}
}

func NewInteger(n int64) Value {
	return Value{Kind: TypeInteger, Num: n}
}

func NewBulk(data []byte) Value {
	return Value{Kind: TypeBulk, Num: int64(len(data)), Data: data}
}

func NewArray(elems ...Value) Value {
	return Value{Kind: TypeArray, Num: int64(len(elems)), Elems: elems}
}

// AsString converts simple and bulk strings to a Go string. Bulk payloads
// must be valid UTF-8. Every other variant fails with ErrNotAString.
func (v Value) AsString() (string, error) {
	switch v.Kind {
	case TypeSimple:
		return v.Str, nil
	case TypeBulk:
		if !utf8.Valid(v.Data) {
			return "", ErrEncoding
		}
		return string(v.Data), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrNotAString, v.Kind)
	}
}

// Append serializes v to its wire form and appends it to dst. Bulk sizes
// and array lengths are taken from the actual payload, not from Num, so an
// encoded value always carries consistent declared lengths.
func (v Value) Append(dst []byte) []byte {
	switch v.Kind {
	case TypeSimple, TypeError:
		dst = append(dst, byte(v.Kind))
		dst = append(dst, v.Str...)
		return append(dst, CRLF...)
	case TypeInteger:
		dst = append(dst, byte(v.Kind))
		dst = strconv.AppendInt(dst, v.Num, 10)
		return append(dst, CRLF...)
	case TypeBulk:
		dst = append(dst, byte(v.Kind))
		dst = strconv.AppendInt(dst, int64(len(v.Data)), 10)
		dst = append(dst, CRLF...)
		dst = append(dst, v.Data...)
		return append(dst, CRLF...)
	case TypeArray:
		dst = append(dst, byte(v.Kind))
		dst = strconv.AppendInt(dst, int64(len(v.Elems)), 10)
		dst = append(dst, CRLF...)
		for _, e := range v.Elems {
			dst = e.Append(dst)
		}
		return dst
	default:
		return dst
	}
}

func (v Value) Encode() []byte {
	return v.Append(nil)
}

func (v Value) String() string {
	switch v.Kind {
	case TypeSimple:
		return fmt.Sprintf("Simple(%q)", v.Str)
	case TypeError:
		return fmt.Sprintf("Error(%q)", v.Str)
	case TypeInteger:
		return fmt.Sprintf("Integer(%d)", v.Num)
	case TypeBulk:
		return fmt.Sprintf("Bulk(%d, %q)", v.Num, v.Data)
	case TypeArray:
		return fmt.Sprintf("Array(%d, %v)", v.Num, v.Elems)
	default:
		return fmt.Sprintf("Unknown(%q)", byte(v.Kind))
	}
}
