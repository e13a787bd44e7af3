package abi

import (
	"encoding/binary"
	"math"
	"unicode/utf8"

	"github.com/pkg/errors"
)

/*
Appends the encoding of one scalar value of the given type. The value must
have the exact native Go type of "typ" (see "ValueOf" for the mapping);
otherwise returns an error wrapping "ErrUnsupportedValueType".

Numbers are big-endian; floats are their IEEE-754 bit patterns; booleans are a
single 0x00 or 0x01 byte; addresses are 32 raw bytes; chars are the UTF-8
encoding of one character.
*/
func AppendScalar(out []byte, typ Type, input interface{}) ([]byte, error) {
	switch typ {
	case Byte:
		if val, ok := input.(byte); ok {
			return append(out, val), nil
		}

	case Boolean:
		if val, ok := input.(bool); ok {
			if val {
				return append(out, 1), nil
			}
			return append(out, 0), nil
		}

	case CharT:
		if val, ok := input.(Char); ok {
			return appendChar(out, val)
		}

	case Short:
		if val, ok := input.(int16); ok {
			return appendUint16(out, uint16(val)), nil
		}

	case Int:
		if val, ok := input.(int32); ok {
			return appendUint32(out, uint32(val)), nil
		}

	case Long:
		if val, ok := input.(int64); ok {
			return appendUint64(out, uint64(val)), nil
		}

	case Float:
		if val, ok := input.(float32); ok {
			return appendUint32(out, math.Float32bits(val)), nil
		}

	case Double:
		if val, ok := input.(float64); ok {
			return appendUint64(out, math.Float64bits(val)), nil
		}

	case AddressT:
		if val, ok := input.(Address); ok {
			return append(out, val[:]...), nil
		}
	}

	return out, typeMismatch(typ, input)
}

/*
Decodes one scalar value of the given type starting at "offset". Returns the
native Go value and the number of bytes consumed.

Fixed-width types consume exactly their width; reading past the end of the
input is an error wrapping "ErrBufferUnderrun". Chars consume exactly the bytes
of the first UTF-8 character at "offset", regardless of what follows.
*/
func DecodeScalar(typ Type, input []byte, offset int) (interface{}, int, error) {
	if offset < 0 || offset > len(input) {
		return nil, 0, underrun(typ.String(), offset, len(input))
	}
	input = input[offset:]

	if typ == CharT {
		char, size, err := decodeChar(input)
		return char, size, err
	}

	width := typ.Width()
	if width <= 0 {
		return nil, 0, errors.Wrapf(ErrMalformedDescriptor, `unknown type %d`, typ)
	}
	if len(input) < width {
		return nil, 0, underrun(typ.String(), width, len(input))
	}
	input = input[:width]

	switch typ {
	case Byte:
		return input[0], width, nil

	case Boolean:
		switch input[0] {
		case 0:
			return false, width, nil
		case 1:
			return true, width, nil
		default:
			return nil, 0, errors.Wrapf(ErrMalformedValue, `boolean byte %#02x`, input[0])
		}

	case Short:
		return int16(binary.BigEndian.Uint16(input)), width, nil

	case Int:
		return int32(binary.BigEndian.Uint32(input)), width, nil

	case Long:
		return int64(binary.BigEndian.Uint64(input)), width, nil

	case Float:
		return math.Float32frombits(binary.BigEndian.Uint32(input)), width, nil

	case Double:
		return math.Float64frombits(binary.BigEndian.Uint64(input)), width, nil

	case AddressT:
		var addr Address
		copy(addr[:], input)
		return addr, width, nil
	}

	return nil, 0, errors.Wrapf(ErrMalformedDescriptor, `unknown type %d`, typ)
}

func appendChar(out []byte, char Char) ([]byte, error) {
	if !utf8.ValidRune(rune(char)) {
		return out, errors.Wrapf(ErrUnsupportedValueType, `char %#x is not a valid Unicode scalar value`, rune(char))
	}
	return utf8.AppendRune(out, rune(char)), nil
}

func decodeChar(input []byte) (Char, int, error) {
	if len(input) == 0 {
		return 0, 0, underrun(`char`, 1, 0)
	}
	if !utf8.FullRune(input) {
		return 0, 0, underrun(`char`, utf8.UTFMax, len(input))
	}
	char, size := utf8.DecodeRune(input)
	if char == utf8.RuneError && size <= 1 {
		return 0, 0, errors.Wrapf(ErrMalformedValue, `invalid UTF-8 byte %#02x`, input[0])
	}
	return Char(char), size, nil
}

func appendUint16(out []byte, num uint16) []byte {
	return append(out, byte(num>>8), byte(num))
}

func appendUint32(out []byte, num uint32) []byte {
	return append(out, byte(num>>24), byte(num>>16), byte(num>>8), byte(num))
}

func appendUint64(out []byte, num uint64) []byte {
	out = append(out, 0, 0, 0, 0, 0, 0, 0, 0)
	binary.BigEndian.PutUint64(out[len(out)-64/8:], num)
	return out
}

func typeMismatch(typ Type, input interface{}) error {
	return errors.Wrapf(ErrUnsupportedValueType, `type mismatch: ABI type %q, Go type %T`, typ, input)
}
