package abi

import (
	"database/sql/driver"

	"github.com/pkg/errors"
)

/*
One of the nine elementary types understood by the ABI. The set is closed: a
value outside of it can't be encoded, and a descriptor mentioning anything else
is malformed.

Each type has a one-character wire symbol, a fixed byte width (except CharT,
which is UTF-8 and occupies 1-4 bytes), and a set of accepted spellings used
when parsing operation signatures.
*/
type Type byte

const (
	Byte Type = iota + 1
	Boolean
	CharT
	Short
	Int
	Long
	Float
	Double
	AddressT
)

type typeInfo struct {
	symbol    byte
	width     int // -1 for variable width
	name      string
	spellings []string
}

// Indexed by Type. Never mutated after initialization.
var typeInfos = [...]typeInfo{
	Byte:     {'B', 1, "byte", []string{"B", "byte", "uint8"}},
	Boolean:  {'Z', 1, "boolean", []string{"Z", "boolean", "bool"}},
	CharT:    {'C', -1, "char", []string{"C", "char", "Char", "rune"}},
	Short:    {'S', 2, "short", []string{"S", "short", "int16"}},
	Int:      {'I', 4, "int", []string{"I", "int", "int32"}},
	Long:     {'L', 8, "long", []string{"L", "long", "int64"}},
	Float:    {'F', 4, "float", []string{"F", "float", "float32"}},
	Double:   {'D', 8, "double", []string{"D", "double", "float64"}},
	AddressT: {'A', AddressLen, "address", []string{"A", "address", "Address"}},
}

// Lookup tables derived from "typeInfos". Built by variable initializers, so
// that package-level operation tables declared anywhere in the package see
// them populated. Read-only afterwards.
var (
	typesBySymbol = func() (out [256]Type) {
		for _, typ := range Types() {
			sym := typeInfos[typ].symbol
			if out[sym] != 0 {
				panic(errors.Errorf(`duplicate ABI symbol %q`, sym))
			}
			out[sym] = typ
		}
		return
	}()

	typesByName = func() map[string]Type {
		out := map[string]Type{}
		for _, typ := range Types() {
			for _, spelling := range typeInfos[typ].spellings {
				out[spelling] = typ
			}
		}
		return out
	}()
)

// All elementary types in symbol-table order.
func Types() []Type {
	return []Type{Byte, Boolean, CharT, Short, Int, Long, Float, Double, AddressT}
}

// True if this is one of the nine known types.
func (self Type) Valid() bool {
	return self >= Byte && self <= AddressT
}

// The one-character wire symbol, such as 'I' for Int. Zero for invalid types.
func (self Type) Symbol() byte {
	if !self.Valid() {
		return 0
	}
	return typeInfos[self].symbol
}

/*
The number of bytes occupied by one encoded value of this type, or -1 for CharT,
whose width depends on the character.
*/
func (self Type) Width() int {
	if !self.Valid() {
		return 0
	}
	return typeInfos[self].width
}

/*
The smallest number of bytes one value of this type can occupy. Used to reject
hostile element counts before allocating.
*/
func (self Type) minWidth() int {
	if self == CharT {
		return 1
	}
	return self.Width()
}

// Accepted external spellings of this type, such as "I", "int" and "int32".
func (self Type) Spellings() []string {
	if !self.Valid() {
		return nil
	}
	return append([]string(nil), typeInfos[self].spellings...)
}

// Implements "fmt.Stringer".
func (self Type) String() string {
	if !self.Valid() {
		return ""
	}
	return typeInfos[self].name
}

// Looks up the type with the given wire symbol. Boolean indicates success.
func TypeOf(symbol byte) (Type, bool) {
	typ := typesBySymbol[symbol]
	return typ, typ != 0
}

/*
Resolves a type by any of its accepted spellings: the wire symbol ("L"), the
canonical name ("long"), or the Go name ("int64").
*/
func ParseTypeName(name string) (Type, error) {
	typ, ok := typesByName[name]
	if !ok {
		return 0, errors.Errorf(`unknown ABI type %q`, name)
	}
	return typ, nil
}

/*
A single character. Encoded as its UTF-8 byte sequence. This is a distinct type
rather than "rune", because "rune" is an alias of "int32", which is already
taken by Int.
*/
type Char rune

// Implements "fmt.Stringer".
func (self Char) String() string { return string(rune(self)) }

// Converts a string into a char array that encodes as a 1-D Char array.
func Chars(input string) []Char {
	out := make([]Char, 0, len(input))
	for _, char := range input {
		out = append(out, Char(char))
	}
	return out
}

// Inverse of "Chars".
func CharsString(input []Char) string {
	buf := make([]rune, len(input))
	for i, char := range input {
		buf[i] = rune(char)
	}
	return string(buf)
}

// Byte length of an address.
const AddressLen = 32

/*
A 32-byte account or contract address. Encoded as exactly 32 raw bytes. Uses
hex text encoding with the mandatory "0x" prefix.
*/
type Address [AddressLen]byte

// Zero-initialized address for equality comparisons.
var ZeroAddress Address

/*
Decodes the provided input, which must be a "0x"-prefixed hex string of exactly
32 bytes. Zero-length input decodes as the zero address.
*/
func DecodeAddress(input []byte) (Address, error) {
	var out Address
	err := out.UnmarshalText(input)
	return out, err
}

// Version of "DecodeAddress" that accepts a string.
func ParseAddress(input string) (Address, error) {
	return DecodeAddress([]byte(input))
}

/*
Version of "ParseAddress" that panics on error. Convenient for initializing
global variables.
*/
func MustParseAddress(input string) Address {
	out, err := ParseAddress(input)
	if err != nil {
		panic(err)
	}
	return out
}

// Implements "encoding.TextMarshaler". Uses hex encoding prefixed with "0x".
func (self Address) MarshalText() ([]byte, error) {
	return HexEncode(self[:]), nil
}

/*
Implements "encoding.TextUnmarshaler". Empty input is ok. Otherwise, it must be
prefixed with "0x".
*/
func (self *Address) UnmarshalText(input []byte) error {
	if len(input) == 0 {
		*self = Address{}
		return nil
	}
	return HexDecodeTo(self[:], input)
}

// Implements "fmt.Stringer". Follows the same rules as "MarshalText".
func (self Address) String() string {
	return string(HexEncode(self[:]))
}

// Implements "sql.Scanner".
func (self *Address) Scan(src interface{}) error {
	switch src := src.(type) {
	case nil:
		*self = Address{}
		return nil
	case []byte:
		if len(src) == AddressLen {
			copy(self[:], src)
			return nil
		}
		return self.UnmarshalText(src)
	case string:
		return self.UnmarshalText([]byte(src))
	default:
		return errors.Errorf(`can't scan %T into Address`, src)
	}
}

// Implements "driver.Valuer". Stores the raw 32 bytes.
func (self Address) Value() (driver.Value, error) {
	return self[:], nil
}
