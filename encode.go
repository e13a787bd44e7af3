package abi

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

/*
ABI-encodes a call of the named operation with the given arguments. Each
argument must be a native Go value of a supported shape, or a "Value" (see
"ValueOf"). The output layout is

	name '<' descriptor... '>' data...

with all descriptors preceding all data. A call without arguments encodes as
"name<>". Returns an error in case of unsupported argument types, or if the
name contains '<' or '>', which would make the result ambiguous.
*/
func EncodeCall(name string, args ...interface{}) ([]byte, error) {
	if i := strings.IndexAny(name, headerDelims); i >= 0 {
		return nil, errors.Wrapf(ErrMalformedCallHeader, `operation name %q contains %q`, name, name[i])
	}

	var descs []byte
	var data []byte

	for i, arg := range args {
		var err error
		descs, data, err = AppendValue(descs, data, arg)
		if err != nil {
			return nil, errors.WithMessagef(err, `failed to encode argument %v of %q`, i, name)
		}
	}

	out := make([]byte, 0, len(name)+len(descs)+len(data)+2)
	out = append(out, name...)
	out = append(out, '<')
	out = append(out, descs...)
	out = append(out, '>')
	return append(out, data...), nil
}

/*
ABI-encodes a single value, typically the result of an operation, as its
descriptor text immediately followed by its data. Unlike "EncodeCall", there's
no name and no '<' '>' wrapper.
*/
func EncodeValue(input interface{}) ([]byte, error) {
	desc, data, err := AppendValue(nil, nil, input)
	if err != nil {
		return nil, err
	}
	return append(desc, data...), nil
}

/*
Classifies one value and appends its descriptor text to "desc" and its data to
"data". Shared by "EncodeCall" and "EncodeValue".
*/
func AppendValue(desc []byte, data []byte, input interface{}) ([]byte, []byte, error) {
	val, err := ValueOf(input)
	if err != nil {
		return desc, data, err
	}

	switch val.dim {
	case 0:
		desc = append(desc, val.typ.Symbol())
		data, err = AppendScalar(data, val.typ, val.val)
		return desc, data, err
	case 1:
		return append1D(desc, data, val.typ, reflect.ValueOf(val.val))
	default:
		return append2D(desc, data, val.typ, reflect.ValueOf(val.val))
	}
}

const headerDelims = "<>"
