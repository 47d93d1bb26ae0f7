package resp

import (
	"strconv"
	"unicode/utf8"
)

// MaxNestingDepth bounds array recursion so adversarial input fails with
// ErrNestingTooDeep instead of exhausting the call stack.
const MaxNestingDepth = 32

// Parse consumes exactly one RESP unit from cur and returns it together
// with the cursor over the unconsumed remainder. On failure the returned
// cursor reflects the consumption point at failure; the value is zero.
//
// A parse failure is terminal for the whole call: it propagates up through
// any enclosing array with no partial-value recovery.
func Parse(cur Cursor) (Value, Cursor, error) {
	return parseValue(cur, 0)
}

// ParseBytes is the byte-slice form of Parse, returning the leftover bytes
// directly.
func ParseBytes(b []byte) (Value, []byte, error) {
	v, rest, err := Parse(NewCursor(b))
	return v, rest.Bytes(), err
}

func parseValue(cur Cursor, depth int) (Value, Cursor, error) {
	if depth > MaxNestingDepth {
		return Value{}, cur, ErrNestingTooDeep
	}
	if cur.Empty() {
		return Value{}, cur, ErrEmptyInput
	}
	tag, err := cur.TakePrefix(1)
	if err != nil {
		return Value{}, cur, err
	}
	switch Type(tag[0]) {
	case TypeSimple:
		return parseSimple(cur)
	case TypeInteger:
		return parseInteger(cur)
	case TypeBulk:
		return parseBulk(cur)
	case TypeArray:
		return parseArray(cur, depth)
	default:
		return Value{}, cur, &UnknownTypeError{Tag: tag[0]}
	}
}

func parseSimple(cur Cursor) (Value, Cursor, error) {
	pos := cur.FindCRLF()
	if pos < 0 {
		return Value{}, cur, ErrMissingTerminator
	}
	payload, err := cur.TakePrefix(pos)
	if err != nil {
		return Value{}, cur, err
	}
	if err := cur.DropPrefix(len(CRLF)); err != nil {
		return Value{}, cur, err
	}
	if !utf8.Valid(payload) {
		return Value{}, cur, ErrEncoding
	}
	return NewSimple(string(payload)), cur, nil
}

func parseInteger(cur Cursor) (Value, Cursor, error) {
	v, rest, err := parseSimple(cur)
	if err != nil {
		return Value{}, rest, err
	}
	n, err := strconv.ParseInt(v.Str, 10, 64)
	if err != nil {
		return Value{}, rest, &InvalidIntegerError{Text: v.Str}
	}
	return NewInteger(n), rest, nil
}

func parseBulk(cur Cursor) (Value, Cursor, error) {
	header, rest, err := parseInteger(cur)
	if err != nil {
		return Value{}, rest, err
	}
	declared := header.Num
	available := int64(rest.Len())
	if declared > available-int64(len(CRLF)) {
		return Value{}, rest, &BulkOverrunError{Declared: declared, Available: available}
	}
	raw, err := rest.TakePrefix(int(declared))
	if err != nil {
		return Value{}, rest, err
	}
	// The value owns its payload outright; the cursor view aliases a
	// reusable read buffer.
	data := append([]byte(nil), raw...)

	// Data is the first declared bytes, taken literally. Anything between
	// it and the terminator is discarded without inspection.
	pos := rest.FindCRLF()
	if pos < 0 {
		return Value{}, rest, ErrMissingTerminator
	}
	if err := rest.DropPrefix(pos + len(CRLF)); err != nil {
		return Value{}, rest, err
	}
	return Value{Kind: TypeBulk, Num: declared, Data: data}, rest, nil
}

func parseArray(cur Cursor, depth int) (Value, Cursor, error) {
	header, rest, err := parseInteger(cur)
	if err != nil {
		return Value{}, rest, err
	}
	declared := header.Num

	// The header is untrusted input, so the capacity hint is clamped.
	capHint := declared
	if capHint > 16 {
		capHint = 16
	}
	var elems []Value
	if declared > 0 {
		elems = make([]Value, 0, capHint)
	}

	// A non-positive declared length drives zero iterations; there is no
	// null-array dialect here.
	for i := int64(0); i < declared; i++ {
		var elem Value
		elem, rest, err = parseValue(rest, depth+1)
		if err != nil {
			return Value{}, rest, err
		}
		elems = append(elems, elem)
	}
	return Value{Kind: TypeArray, Num: declared, Elems: elems}, rest, nil
}
