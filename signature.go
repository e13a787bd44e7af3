package abi

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"
)

/*
The declared shape of an operation parameter: an elementary type and a
dimensionality. Written like a count-less descriptor: "I", "[I]", "[[I]]".
*/
type Shape struct {
	Type Type
	Dim  int
}

// True if the type is known and the dimensionality is 0, 1 or 2.
func (self Shape) Valid() bool {
	return self.Type.Valid() && self.Dim >= 0 && self.Dim <= MaxDim
}

/*
True if a decoded argument with this descriptor can be passed to a parameter of
this shape. The elementary types must be identical, and so must the
dimensionality; there are no implicit widenings.
*/
func (self Shape) Accepts(desc Descriptor) bool {
	return self.accepts(desc.Shape())
}

func (self Shape) accepts(arg Shape) bool {
	return self.Type == arg.Type && self.Dim == arg.Dim
}

// Appends the canonical text, such as "[[I]]" for a 2-D int array.
func (self Shape) AppendText(out []byte) []byte {
	for i := 0; i < self.Dim; i++ {
		out = append(out, '[')
	}
	out = append(out, self.Type.Symbol())
	for i := 0; i < self.Dim; i++ {
		out = append(out, ']')
	}
	return out
}

// Implements "fmt.Stringer".
func (self Shape) String() string { return string(self.AppendText(nil)) }

/*
Parses an operation signature such as

	transfer(address,long)
	setRows(int[][], [B])
	ping()

into the operation name and its parameter shapes. Each parameter is a type in
any accepted spelling (see "ParseTypeName"), followed by "[]" per dimension, or
wrapped in brackets per dimension as in descriptors.
*/
func ParseSignature(sig string) (string, []Shape, error) {
	open := strings.IndexByte(sig, '(')
	if open < 0 || !strings.HasSuffix(sig, ")") {
		return "", nil, errors.Errorf(`malformed signature %q: expected "name(params)"`, sig)
	}

	name := strings.TrimSpace(sig[:open])
	err := validateName(name)
	if err != nil {
		return "", nil, errors.WithMessagef(err, `malformed signature %q`, sig)
	}

	body := strings.TrimSpace(sig[open+1 : len(sig)-1])
	if body == "" {
		return name, nil, nil
	}

	parts := strings.Split(body, ",")
	params := make([]Shape, 0, len(parts))
	for i, part := range parts {
		shape, err := ParseShape(strings.TrimSpace(part))
		if err != nil {
			return "", nil, errors.WithMessagef(err, `malformed signature %q, parameter %v`, sig, i)
		}
		params = append(params, shape)
	}
	return name, params, nil
}

// Parses one parameter shape, such as "int32", "I[][]" or "[[I]]".
func ParseShape(input string) (Shape, error) {
	text := input
	dim := 0

	switch {
	case strings.HasPrefix(text, "["):
		for strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]") {
			text = text[1 : len(text)-1]
			dim++
		}
	default:
		for strings.HasSuffix(text, "[]") {
			text = strings.TrimSuffix(text, "[]")
			dim++
		}
	}

	if dim > MaxDim {
		return Shape{}, errors.Errorf(`parameter %q: at most %v dimensions are supported`, input, MaxDim)
	}

	typ, err := ParseTypeName(text)
	if err != nil {
		return Shape{}, errors.WithMessagef(err, `parameter %q`, input)
	}
	return Shape{Type: typ, Dim: dim}, nil
}

/*
Canonical signature text of an operation: its name and the canonical shape of
each parameter, such as "transfer(A,L)". Two operations with the same canonical
signature are indistinguishable to the resolver.
*/
func CanonicalSignature(name string, params []Shape) string {
	var buf []byte

	buf = append(buf, name...)
	buf = append(buf, '(')
	for i, param := range params {
		buf = param.AppendText(buf)
		if i < len(params)-1 {
			buf = append(buf, ',')
		}
	}
	buf = append(buf, ')')
	return string(buf)
}

/*
Computes the Keccak256 checksum of an operation's canonical signature. The
first four bytes are the operation's selector. Hosts may use it as a compact,
stable identifier of an operation, for example in logs or metering tables.
*/
func SignatureChecksum(name string, params []Shape) []byte {
	hash := sha3.NewLegacyKeccak256()
	hash.Write([]byte(CanonicalSignature(name, params)))
	return hash.Sum(nil)
}

func validateName(name string) error {
	if name == "" {
		return errors.New(`empty operation name`)
	}
	if i := strings.IndexAny(name, headerDelims+"(),"); i >= 0 {
		return errors.Errorf(`operation name %q contains %q`, name, name[i])
	}
	return nil
}
