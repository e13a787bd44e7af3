package abi

import (
	"bytes"

	"github.com/pkg/errors"
)

/*
A decoded call: the operation name, and the arguments in their original order.
"Descriptors[i]" describes "Args[i]".
*/
type Call struct {
	Name        string
	Descriptors []Descriptor
	Args        []Value
}

// Re-encodes the call. The result is byte-identical to the canonical encoding
// of the same name and arguments.
func (self Call) Encode() ([]byte, error) {
	args := make([]interface{}, len(self.Args))
	for i, arg := range self.Args {
		args[i] = arg
	}
	return EncodeCall(self.Name, args...)
}

/*
ABI-decodes a call produced by "EncodeCall". The input is untrusted: any
malformed header, descriptor or data is rejected with an error wrapping one of
the package's error kinds, and nothing is returned in that case.

Input containing neither '<' nor '>' is a call without arguments, whose name is
the entire input.

Decoding is two strictly forward passes: first the descriptor block between
'<' and '>' is parsed into descriptors, then the data block after '>' is
decoded argument by argument. Every declared length is checked against the
remaining input before use. Leftover data after the last argument is an error
wrapping "ErrTrailingData".

The result never aliases the input.
*/
func DecodeCall(input []byte) (Call, error) {
	lt := bytes.IndexByte(input, '<')
	gt := bytes.IndexByte(input, '>')

	if lt < 0 && gt < 0 {
		return Call{Name: string(input)}, nil
	}
	if lt < 0 || gt < 0 {
		return Call{}, errors.Wrap(ErrMalformedCallHeader, `unbalanced "<" and ">"`)
	}
	if gt < lt {
		return Call{}, errors.Wrap(ErrMalformedCallHeader, `">" precedes "<"`)
	}

	descBlock := input[lt+1 : gt]
	data := input[gt+1:]

	descs, err := readDescriptors(descBlock)
	if err != nil {
		return Call{}, err
	}

	args := make([]Value, len(descs))
	pos := 0
	for i, desc := range descs {
		val, size, err := decodeData(desc, data, pos)
		if err != nil {
			return Call{}, errors.WithMessagef(err, `failed to decode argument %v (%v)`, i, desc)
		}
		args[i] = val
		pos += size
	}

	if pos != len(data) {
		return Call{}, errors.Wrapf(ErrTrailingData, `%v bytes after the last argument`, len(data)-pos)
	}

	return Call{
		Name:        string(input[:lt]),
		Descriptors: descs,
		Args:        args,
	}, nil
}

// Parses back-to-back descriptors until the block is exhausted.
func readDescriptors(block []byte) ([]Descriptor, error) {
	var out []Descriptor
	for pos := 0; pos < len(block); {
		if block[pos] == '(' && len(out) > 0 && out[len(out)-1].Dim == 2 {
			return nil, errors.Wrapf(ErrMalformedDescriptor,
				`descriptor %v (%v) is followed by a row length group, but declares no more rows`,
				len(out)-1, out[len(out)-1])
		}
		desc, err := ReadDescriptor(block, pos)
		if err != nil {
			return nil, errors.WithMessagef(err, `descriptor %v at offset %v`, len(out), pos)
		}
		out = append(out, desc)
		pos += desc.Size
	}
	return out, nil
}

/*
ABI-decodes a single value produced by "EncodeValue": one descriptor at the
start of the input, immediately followed by its data, and nothing else.
*/
func DecodeValue(input []byte) (Value, error) {
	desc, err := ReadDescriptor(input, 0)
	if err != nil {
		return Value{}, err
	}

	val, size, err := decodeData(desc, input, desc.Size)
	if err != nil {
		return Value{}, errors.WithMessagef(err, `failed to decode value (%v)`, desc)
	}

	end := desc.Size + size
	if end != len(input) {
		if size == 0 && desc.Dim == 2 && input[end] == '(' {
			return Value{}, errors.Wrapf(ErrMalformedDescriptor,
				`%v is followed by a row length group, but declares no more rows`, desc)
		}
		return Value{}, errors.Wrapf(ErrTrailingData, `%v bytes after the value`, len(input)-end)
	}
	return val, nil
}
