package abi

import (
	"encoding/hex"

	"github.com/pkg/errors"
)

/*
Writes the "0x"-prefixed hex text of the input into the output buffer. This is
the text form of addresses and operation selectors. Requires the output size to
be exactly "HexEncodedLen(len(input))".
*/
func HexEncodeTo(output []byte, input []byte) error {
	if HexEncodedLen(len(input)) != len(output) {
		return errors.Errorf("hex-encoded output has %d bytes, have space for %d",
			HexEncodedLen(len(input)), len(output))
	}
	output[0] = '0'
	output[1] = 'x'
	hex.Encode(output[2:], input)
	return nil
}

// Allocating version of "HexEncodeTo".
func HexEncode(input []byte) []byte {
	out := make([]byte, HexEncodedLen(len(input)))
	err := HexEncodeTo(out, input)
	if err != nil {
		panic(err)
	}
	return out
}

/*
Decodes "0x"-prefixed hex text, such as an address or a dump of call-data, into
the output buffer. The prefix may be "0x" or "0X". Requires the output size to
be exactly "HexDecodedLen(len(input))"; an odd number of digits is an error. The
output is left untouched on error, so a failed "Address.UnmarshalText" keeps the
previous address.

Empty or nil input decodes to nothing.
*/
func HexDecodeTo(output []byte, input []byte) error {
	raw, err := drop0x(input)
	if err != nil {
		return err
	}
	if HexDecodedLen(len(input)) != len(output) || len(raw)%2 != 0 {
		return errors.Errorf("hex input %q has %d bytes, want %d",
			input, HexDecodedLen(len(input)), len(output))
	}
	buf := make([]byte, len(output))
	_, err = hex.Decode(buf, raw)
	if err != nil {
		return errors.WithStack(err)
	}
	copy(output, buf)
	return nil
}

// Allocating version of "HexDecodeTo". Used by "abi_inspect" for its inputs.
func HexDecode(input []byte) ([]byte, error) {
	output := make([]byte, HexDecodedLen(len(input)))
	err := HexDecodeTo(output, input)
	return output, err
}

// Panicking version of "HexDecode" for call-data fixtures written as hex.
func MustHexParse(input string) []byte {
	output, err := HexDecode([]byte(input))
	if err != nil {
		panic(err)
	}
	return output
}

func drop0x(input []byte) ([]byte, error) {
	if len(input) == 0 {
		return nil, nil
	}
	if len(input) >= 2 && input[0] == '0' && (input[1] == 'x' || input[1] == 'X') {
		return input[2:], nil
	}
	return input, errors.Errorf("malformed input %q: missing 0x prefix", input)
}

// Length of the "0x"-prefixed hex text of "len" raw bytes.
func HexEncodedLen(len int) int {
	return (len * 2) + 2
}

// Number of raw bytes encoded by "0x"-prefixed hex text of length "len". Zero
// for empty text.
func HexDecodedLen(len int) int {
	if len < 2 {
		return 0
	}
	return (len - 2) / 2
}
