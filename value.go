package abi

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

/*
A decoded argument or return value: the boxed form of one of the 27 supported
shapes (9 elementary types × 3 dimensionalities). The native Go form is
available via ".Native()":

	Dim 0   byte, bool, Char, int16, int32, int64, float32, float64, Address
	Dim 1   []byte, []bool, []Char, ...
	Dim 2   [][]byte, [][]bool, [][]Char, ...

The zero Value is invalid and can't be encoded.
*/
type Value struct {
	typ Type
	dim int
	val interface{}
}

// Native Go element type of each elementary type. Indexed by Type.
var nativeTypes = [...]reflect.Type{
	Byte:     reflect.TypeOf(byte(0)),
	Boolean:  reflect.TypeOf(false),
	CharT:    reflect.TypeOf(Char(0)),
	Short:    reflect.TypeOf(int16(0)),
	Int:      reflect.TypeOf(int32(0)),
	Long:     reflect.TypeOf(int64(0)),
	Float:    reflect.TypeOf(float32(0)),
	Double:   reflect.TypeOf(float64(0)),
	AddressT: reflect.TypeOf(Address{}),
}

// Go type of every supported shape. Built once, read-only afterwards.
var shapesByGoType = func() map[reflect.Type]Shape {
	out := map[reflect.Type]Shape{}
	for _, typ := range Types() {
		elem := nativeTypes[typ]
		out[elem] = Shape{Type: typ, Dim: 0}
		out[reflect.SliceOf(elem)] = Shape{Type: typ, Dim: 1}
		out[reflect.SliceOf(reflect.SliceOf(elem))] = Shape{Type: typ, Dim: 2}
	}
	return out
}()

/*
Classifies a Go value against the closed type map and boxes it. The Go type must
match one of the native forms listed in the "Value" documentation exactly;
named types derived from them are not accepted. A "Value" is returned as-is.
Returns an error wrapping "ErrUnsupportedValueType" for anything else.
*/
func ValueOf(input interface{}) (Value, error) {
	if val, ok := input.(Value); ok {
		if !val.Valid() {
			return Value{}, errors.Wrap(ErrUnsupportedValueType, `invalid Value`)
		}
		return val, nil
	}
	if input == nil {
		return Value{}, errors.Wrap(ErrUnsupportedValueType, `nil`)
	}

	shape, ok := shapesByGoType[reflect.TypeOf(input)]
	if !ok {
		return Value{}, errors.Wrapf(ErrUnsupportedValueType, `Go type %T`, input)
	}
	return Value{typ: shape.Type, dim: shape.Dim, val: input}, nil
}

// Version of "ValueOf" that panics on error. Convenient in tests and for
// constant results.
func MustValueOf(input interface{}) Value {
	out, err := ValueOf(input)
	if err != nil {
		panic(err)
	}
	return out
}

// True unless this is the zero Value.
func (self Value) Valid() bool { return self.typ.Valid() && self.val != nil }

// Elementary type of the value or of its elements.
func (self Value) Type() Type { return self.typ }

// 0 for scalars, 1 or 2 for arrays.
func (self Value) Dim() int { return self.dim }

// Type and dimensionality.
func (self Value) Shape() Shape { return Shape{Type: self.typ, Dim: self.dim} }

// True for 1-D and 2-D arrays.
func (self Value) IsArray() bool { return self.dim > 0 }

// The native Go value. See the "Value" documentation for the mapping.
func (self Value) Native() interface{} { return self.val }

// Element or row count. 0 for scalars.
func (self Value) Len() int {
	if self.dim == 0 || self.val == nil {
		return 0
	}
	return reflect.ValueOf(self.val).Len()
}

// Descriptor of this value as it would be encoded. ".Size" is left at zero.
func (self Value) Descriptor() Descriptor {
	desc := Descriptor{Type: self.typ, Dim: self.dim}
	if self.dim == 0 || self.val == nil {
		return desc
	}

	val := reflect.ValueOf(self.val)
	desc.Len = val.Len()
	if self.dim == 2 {
		desc.RowLens = make([]int, desc.Len)
		for i := range desc.RowLens {
			desc.RowLens[i] = val.Index(i).Len()
		}
	}
	return desc
}

// Implements "fmt.Stringer".
func (self Value) String() string {
	if !self.Valid() {
		return `<invalid>`
	}
	if self.typ == CharT && self.dim == 1 {
		return fmt.Sprintf(`%v%q`, self.Descriptor(), CharsString(self.val.([]Char)))
	}
	return fmt.Sprintf(`%v%v`, self.Descriptor(), self.val)
}
