package abi

import (
	"reflect"

	"github.com/pkg/errors"
)

/*
Appends the descriptor text and the data of a 1-D array. The descriptor is
"[" + symbol + count + "]"; the data is the concatenation of the element
encodings. For char arrays this is the UTF-8 text of the whole sequence, with no
per-element prefixes.
*/
func append1D(desc []byte, data []byte, typ Type, elems reflect.Value) ([]byte, []byte, error) {
	desc = Descriptor{Type: typ, Dim: 1, Len: elems.Len()}.AppendText(desc)
	data, err := appendElems(data, typ, elems)
	return desc, data, err
}

/*
Appends the descriptor text and the data of a 2-D, possibly jagged, array. The
descriptor carries the row count and one "(len)" group per row; the data is
the row-major concatenation of each row's elements.
*/
func append2D(desc []byte, data []byte, typ Type, rows reflect.Value) ([]byte, []byte, error) {
	lens := make([]int, rows.Len())
	for i := range lens {
		lens[i] = rows.Index(i).Len()
	}
	desc = Descriptor{Type: typ, Dim: 2, Len: len(lens), RowLens: lens}.AppendText(desc)

	for i := range lens {
		var err error
		data, err = appendElems(data, typ, rows.Index(i))
		if err != nil {
			return desc, data, errors.WithMessagef(err, `row %v`, i)
		}
	}
	return desc, data, nil
}

func appendElems(out []byte, typ Type, elems reflect.Value) ([]byte, error) {
	if typ == Byte {
		return append(out, elems.Bytes()...), nil
	}

	for i := 0; i < elems.Len(); i++ {
		var err error
		out, err = AppendScalar(out, typ, elems.Index(i).Interface())
		if err != nil {
			return out, errors.WithMessagef(err, `element %v`, i)
		}
	}
	return out, nil
}

/*
Decodes the data of one described value starting at "offset". Returns the
boxed value and the number of data bytes consumed.

Counts come from untrusted descriptors. Before anything is allocated, the total
element count is checked against what the remaining data could possibly hold,
at the minimum width of the element type.
*/
func decodeData(desc Descriptor, input []byte, offset int) (Value, int, error) {
	if !desc.Type.Valid() || desc.Dim < 0 || desc.Dim > MaxDim {
		return Value{}, 0, errors.Wrapf(ErrMalformedDescriptor, `unsupported descriptor %v`, desc)
	}
	if offset < 0 || offset > len(input) {
		return Value{}, 0, underrun(desc.String(), offset, len(input))
	}

	remaining := len(input) - offset
	limit := remaining / desc.Type.minWidth()
	if _, ok := desc.elements(limit); !ok {
		return Value{}, 0, errors.Wrapf(ErrBufferUnderrun,
			`%v declares more elements than %v remaining bytes can hold`, desc, remaining)
	}

	switch desc.Dim {
	case 0:
		val, size, err := DecodeScalar(desc.Type, input, offset)
		if err != nil {
			return Value{}, 0, err
		}
		return Value{typ: desc.Type, dim: 0, val: val}, size, nil

	case 1:
		elems, size, err := decode1D(desc.Type, desc.Len, input, offset)
		if err != nil {
			return Value{}, 0, err
		}
		return Value{typ: desc.Type, dim: 1, val: elems.Interface()}, size, nil

	default:
		rowType := reflect.SliceOf(nativeTypes[desc.Type])
		rows := reflect.MakeSlice(reflect.SliceOf(rowType), len(desc.RowLens), len(desc.RowLens))
		pos := offset
		for i, num := range desc.RowLens {
			row, size, err := decode1D(desc.Type, num, input, pos)
			if err != nil {
				return Value{}, 0, errors.WithMessagef(err, `row %v`, i)
			}
			rows.Index(i).Set(row)
			pos += size
		}
		return Value{typ: desc.Type, dim: 2, val: rows.Interface()}, pos - offset, nil
	}
}

/*
Decodes "count" consecutive elements. Returns a slice of the native element type
and the number of bytes consumed. The result is never nil, even when empty, and
never aliases the input.
*/
func decode1D(typ Type, count int, input []byte, offset int) (reflect.Value, int, error) {
	remaining := len(input) - offset
	if count < 0 || count > remaining/typ.minWidth() {
		return reflect.Value{}, 0, underrun(typ.String()+` array`, count*typ.minWidth(), remaining)
	}

	if typ == Byte {
		out := make([]byte, count)
		copy(out, input[offset:])
		return reflect.ValueOf(out), count, nil
	}

	out := reflect.MakeSlice(reflect.SliceOf(nativeTypes[typ]), count, count)
	pos := offset
	for i := 0; i < count; i++ {
		val, size, err := DecodeScalar(typ, input, pos)
		if err != nil {
			return reflect.Value{}, 0, errors.WithMessagef(err, `element %v`, i)
		}
		out.Index(i).Set(reflect.ValueOf(val))
		pos += size
	}
	return out, pos - offset, nil
}
