package abi

import (
	"strconv"

	"github.com/pkg/errors"
)

/*
Describes the shape of one encoded argument or return value. Descriptors are
written as text in front of the data they describe:

	I              scalar int
	[B3]           1-D byte array of 3 elements
	[[I]2](2)(1)   2-D int array with 2 rows, of lengths 2 and 1

Produced by "ReadDescriptor" and consumed by the decoder. For Dim 2, the
invariant "len(RowLens) == Len" always holds.
*/
type Descriptor struct {
	Type    Type
	Dim     int   // 0, 1 or 2
	Len     int   // element count (Dim 1) or row count (Dim 2)
	RowLens []int // Dim 2 only
	Size    int   // exact byte length of the descriptor text
}

// Highest supported array dimensionality.
const MaxDim = 2

// At most this many decimal digits per numeric field, so every field fits in
// an int on any platform.
const maxFieldDigits = 9

// The shortest possible "(n)" row length group.
const minRowGroupLen = 3

/*
Reads one descriptor from "text", starting at "offset". The returned
descriptor's ".Size" is the number of bytes it occupies, which is where the next
descriptor starts.

The grammar uses fixed lookahead:

	"[["  2-D array: symbol, "]", row count, "]", then one "(len)" group per row
	"["   1-D array: symbol, element count, "]"
	else  scalar: exactly one symbol

A 2-D row count may be textually empty, as in "[[I]](2)(1)". This is the
legacy jagged form: the rows are counted by reading "(len)" groups until one is
not followed by another. The encoder never produces it.

Any malformed field, unknown symbol, or unterminated bracket or paren is an
error wrapping "ErrMalformedDescriptor".
*/
func ReadDescriptor(text []byte, offset int) (Descriptor, error) {
	if offset < 0 || offset >= len(text) {
		return Descriptor{}, errors.Wrapf(ErrMalformedDescriptor, `no descriptor at offset %v`, offset)
	}
	text = text[offset:]

	if len(text) >= 2 && text[0] == '[' && text[1] == '[' {
		return read2D(text)
	}
	if text[0] == '[' {
		return read1D(text)
	}

	typ, err := readSymbol(text, 0)
	if err != nil {
		return Descriptor{}, err
	}
	return Descriptor{Type: typ, Size: 1}, nil
}

func read1D(text []byte) (Descriptor, error) {
	typ, err := readSymbol(text, 1)
	if err != nil {
		return Descriptor{}, err
	}

	field, end, err := readField(text, 2, ']')
	if err != nil {
		return Descriptor{}, err
	}
	count, err := parseField(field)
	if err != nil {
		return Descriptor{}, errors.WithMessage(err, `1-D array count`)
	}

	return Descriptor{Type: typ, Dim: 1, Len: count, Size: end + 1}, nil
}

func read2D(text []byte) (Descriptor, error) {
	typ, err := readSymbol(text, 2)
	if err != nil {
		return Descriptor{}, err
	}
	if len(text) < 4 || text[3] != ']' {
		return Descriptor{}, errors.Wrap(ErrMalformedDescriptor, `2-D array: expected "]" after element symbol`)
	}

	field, end, err := readField(text, 4, ']')
	if err != nil {
		return Descriptor{}, err
	}
	pos := end + 1

	var lens []int

	if len(field) == 0 {
		if pos >= len(text) || text[pos] != '(' {
			return Descriptor{}, errors.Wrap(ErrMalformedDescriptor, `2-D array: empty row count without row lengths`)
		}
		for pos < len(text) && text[pos] == '(' {
			var num int
			num, pos, err = readRowLen(text, pos)
			if err != nil {
				return Descriptor{}, err
			}
			lens = append(lens, num)
		}
	} else {
		rows, err := parseField(field)
		if err != nil {
			return Descriptor{}, errors.WithMessage(err, `2-D array row count`)
		}
		// Every row needs its own "(len)" group, so a row count that can't fit
		// in the remaining text is rejected before allocating.
		if rows > (len(text)-pos)/minRowGroupLen {
			return Descriptor{}, errors.Wrapf(ErrMalformedDescriptor,
				`2-D array declares %v rows, but only %v bytes of descriptor remain`, rows, len(text)-pos)
		}
		lens = make([]int, rows)
		for i := range lens {
			if pos >= len(text) || text[pos] != '(' {
				return Descriptor{}, errors.Wrapf(ErrMalformedDescriptor, `2-D array: missing length of row %v`, i)
			}
			lens[i], pos, err = readRowLen(text, pos)
			if err != nil {
				return Descriptor{}, err
			}
		}
	}

	return Descriptor{Type: typ, Dim: 2, Len: len(lens), RowLens: lens, Size: pos}, nil
}

// Reads "(n)" at "pos", which must point at "(". Returns the position right
// after ")".
func readRowLen(text []byte, pos int) (int, int, error) {
	field, end, err := readField(text, pos+1, ')')
	if err != nil {
		return 0, 0, err
	}
	num, err := parseField(field)
	if err != nil {
		return 0, 0, errors.WithMessage(err, `2-D array row length`)
	}
	return num, end + 1, nil
}

func readSymbol(text []byte, pos int) (Type, error) {
	if pos >= len(text) {
		return 0, errors.Wrap(ErrMalformedDescriptor, `missing type symbol`)
	}
	typ, ok := TypeOf(text[pos])
	if !ok {
		return 0, errors.Wrapf(ErrMalformedDescriptor, `unknown type symbol %q`, text[pos])
	}
	return typ, nil
}

/*
Returns the digits between "pos" and the terminator, and the terminator's
position. A missing terminator, a non-digit or an overlong field is an error.
"parseField" additionally rejects empty fields and leading zeros.
*/
func readField(text []byte, pos int, term byte) ([]byte, int, error) {
	for i := pos; i < len(text); i++ {
		char := text[i]
		if char == term {
			return text[pos:i], i, nil
		}
		if char < '0' || char > '9' {
			return nil, 0, errors.Wrapf(ErrMalformedDescriptor, `unexpected %q in numeric field`, char)
		}
		if i-pos >= maxFieldDigits {
			return nil, 0, errors.Wrapf(ErrMalformedDescriptor, `numeric field longer than %v digits`, maxFieldDigits)
		}
	}
	return nil, 0, errors.Wrapf(ErrMalformedDescriptor, `unterminated field, expected %q`, term)
}

func parseField(field []byte) (int, error) {
	if len(field) == 0 {
		return 0, errors.Wrap(ErrMalformedDescriptor, `empty numeric field`)
	}
	// One number, one spelling.
	if len(field) > 1 && field[0] == '0' {
		return 0, errors.Wrapf(ErrMalformedDescriptor, `numeric field %q has a leading zero`, field)
	}
	num, err := strconv.Atoi(string(field))
	if err != nil {
		return 0, errors.Wrapf(ErrMalformedDescriptor, `numeric field %q: %v`, field, err)
	}
	return num, nil
}

/*
Appends the canonical text of this descriptor. 2-D arrays always carry an
explicit row count followed by one length group per row, even when every row
has the same length.
*/
func (self Descriptor) AppendText(out []byte) []byte {
	switch self.Dim {
	case 0:
		return append(out, self.Type.Symbol())

	case 1:
		out = append(out, '[', self.Type.Symbol())
		out = strconv.AppendInt(out, int64(self.Len), 10)
		return append(out, ']')

	default:
		out = append(out, '[', '[', self.Type.Symbol(), ']')
		out = strconv.AppendInt(out, int64(len(self.RowLens)), 10)
		out = append(out, ']')
		for _, num := range self.RowLens {
			out = append(out, '(')
			out = strconv.AppendInt(out, int64(num), 10)
			out = append(out, ')')
		}
		return out
	}
}

// Implements "fmt.Stringer". Returns the canonical descriptor text.
func (self Descriptor) String() string {
	return string(self.AppendText(nil))
}

// The shape of the described value, without lengths.
func (self Descriptor) Shape() Shape {
	return Shape{Type: self.Type, Dim: self.Dim}
}

/*
Total number of scalar elements in the described value: 1 for scalars, the
element count for 1-D arrays, the sum of row lengths for 2-D arrays. Returns
false if the sum exceeds "limit", without overflowing.
*/
func (self Descriptor) elements(limit int) (int, bool) {
	switch self.Dim {
	case 0:
		return 1, limit >= 1
	case 1:
		return self.Len, self.Len <= limit
	default:
		total := 0
		for _, num := range self.RowLens {
			if num > limit-total {
				return 0, false
			}
			total += num
		}
		return total, true
	}
}
