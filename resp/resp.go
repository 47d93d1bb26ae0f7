package resp

const CRLF string = "\r\n"

// Type is the single ASCII tag byte that opens every RESP unit on the wire.
type Type byte

const (
	TypeSimple  Type = '+'
	TypeError   Type = '-'
	TypeInteger Type = ':'
	TypeBulk    Type = '$'
	TypeArray   Type = '*'
)

func (t Type) String() string {
	switch t {
	case TypeSimple:
		return "simple string"
	case TypeError:
		return "error"
	case TypeInteger:
		return "integer"
	case TypeBulk:
		return "bulk string"
	case TypeArray:
		return "array"
	default:
		return "unknown"
	}
}
