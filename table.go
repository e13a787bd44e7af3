package abi

import (
	"github.com/pkg/errors"
)

/*
Implementation of an invokable operation. "recv" is the receiver supplied by the
host, or nil for operations that don't require one. "args" are positionally
aligned with the operation's parameters: scalar parameters receive native Go
values (int32, bool, Address, ...), array parameters receive the boxed "Value"
unchanged.

A non-nil result is ABI-encoded with "EncodeValue" and must therefore be of a
supported shape. A nil result means the operation returns nothing. A returned
error is passed through to the caller, wrapped in "*InvocationError".
*/
type OperationFunc func(recv interface{}, args []interface{}) (interface{}, error)

/*
One entry of an operation table: an externally invokable operation with its
name, parameter shapes, receiver requirement and implementation. Usually
obtained via "NewOperation" or "MustOperation".
*/
type Operation struct {
	Name     string
	Params   []Shape
	Receiver bool
	Func     OperationFunc
}

/*
Creates an operation from a textual signature such as "transfer(address,long)".
See "ParseSignature" for the syntax.
*/
func NewOperation(sig string, receiver bool, fun OperationFunc) (Operation, error) {
	name, params, err := ParseSignature(sig)
	if err != nil {
		return Operation{}, err
	}
	op := Operation{Name: name, Params: params, Receiver: receiver, Func: fun}
	return op, op.validate()
}

/*
Version of "NewOperation" that panics on error. Convenient for building tables
in global variables on startup:

	var Operations = abi.MustTable(
		abi.MustOperation("transfer(address,long)", true, transfer),
		abi.MustOperation("balance(address)", true, balance),
	)
*/
func MustOperation(sig string, receiver bool, fun OperationFunc) Operation {
	out, err := NewOperation(sig, receiver, fun)
	if err != nil {
		panic(err)
	}
	return out
}

// Canonical signature, such as "transfer(A,L)". See "CanonicalSignature".
func (self Operation) Signature() string {
	return CanonicalSignature(self.Name, self.Params)
}

// First four bytes of the Keccak256 of the canonical signature.
func (self Operation) Selector() [4]byte {
	sum := SignatureChecksum(self.Name, self.Params)
	return [4]byte{sum[0], sum[1], sum[2], sum[3]}
}

/*
True if this operation accepts the decoded call: same name, same number of
arguments, and every parameter shape accepts the corresponding argument.
*/
func (self Operation) Accepts(call Call) bool {
	if self.Name != call.Name || len(self.Params) != len(call.Args) {
		return false
	}
	for i, param := range self.Params {
		if !param.accepts(call.Args[i].Shape()) {
			return false
		}
	}
	return true
}

func (self Operation) validate() error {
	err := validateName(self.Name)
	if err != nil {
		return err
	}
	if self.Func == nil {
		return errors.Errorf(`operation %q has no implementation`, self.Name)
	}
	for i, param := range self.Params {
		if !param.Valid() {
			return errors.Errorf(`operation %q: invalid shape of parameter %v`, self.Name, i)
		}
	}
	return nil
}

/*
The closed set of operations a decoded call is resolved against. Built once
with "NewTable" and immutable afterwards, so a Table may be shared between
goroutines without synchronization. The zero Table is empty and matches
nothing.
*/
type Table struct {
	ops []Operation
}

/*
Validates the operations and builds a table. Order matters: resolution picks
the first matching operation. Returns an error if an operation is incomplete,
or if two operations have the same canonical signature, since the latter could
never be reached.
*/
func NewTable(ops ...Operation) (Table, error) {
	out := Table{ops: make([]Operation, len(ops))}
	seen := make(map[[4]byte][]string, len(ops))

	for i, op := range ops {
		err := op.validate()
		if err != nil {
			return Table{}, errors.WithMessagef(err, `operation %v`, i)
		}

		sig := op.Signature()
		sel := op.Selector()
		for _, prev := range seen[sel] {
			if prev == sig {
				return Table{}, errors.Errorf(`duplicate operation %q`, sig)
			}
		}
		seen[sel] = append(seen[sel], sig)

		op.Params = append([]Shape(nil), op.Params...)
		out.ops[i] = op
	}
	return out, nil
}

// Version of "NewTable" that panics on error.
func MustTable(ops ...Operation) Table {
	out, err := NewTable(ops...)
	if err != nil {
		panic(err)
	}
	return out
}

// Number of operations in the table.
func (self Table) Len() int { return len(self.ops) }

// Copy of the registered operations, in resolution order.
func (self Table) Operations() []Operation {
	return append([]Operation(nil), self.ops...)
}

/*
Finds the first operation, in table order, that accepts the call. Boolean
indicates success or failure. No ambiguity detection is performed.
*/
func (self Table) Match(call Call) (Operation, bool) {
	for _, op := range self.ops {
		if op.Accepts(call) {
			return op, true
		}
	}
	return Operation{}, false
}

/*
Resolves the call against the table and prepares the arguments: scalars are
unwrapped to their native Go form, arrays pass through as boxed "Value"s.
Returns an error wrapping "ErrNoMatchingOperation" if nothing matches.
*/
func (self Table) Resolve(call Call) (Operation, []interface{}, error) {
	op, ok := self.Match(call)
	if !ok {
		return Operation{}, nil, errors.Wrapf(ErrNoMatchingOperation,
			`%q with %v arguments %v`, call.Name, len(call.Args), callShapes(call))
	}

	args := make([]interface{}, len(call.Args))
	for i, arg := range call.Args {
		if op.Params[i].Dim == 0 {
			args[i] = arg.Native()
		} else {
			args[i] = arg
		}
	}
	return op, args, nil
}

/*
Resolves and invokes the call, then encodes the result. "returned" is false when
the operation returned nothing; this is different from any encoded payload.

ABI-layer failures wrap one of the package's error kinds. An error returned by
the operation itself is wrapped in "*InvocationError", preserving it as-is.
Panics raised by the operation are not recovered.
*/
func (self Table) Invoke(recv interface{}, call Call) (output []byte, returned bool, err error) {
	op, args, err := self.Resolve(call)
	if err != nil {
		return nil, false, err
	}
	return invoke(op, recv, args)
}

func invoke(op Operation, recv interface{}, args []interface{}) ([]byte, bool, error) {
	if !op.Receiver {
		recv = nil
	} else if recv == nil {
		return nil, false, errors.Wrapf(ErrMissingReceiver, `operation %q`, op.Signature())
	}

	result, err := op.Func(recv, args)
	if err != nil {
		return nil, false, &InvocationError{Operation: op.Name, Err: err}
	}
	if result == nil {
		return nil, false, nil
	}

	output, err := EncodeValue(result)
	if err != nil {
		return nil, false, errors.WithMessagef(err, `failed to encode result of %q`, op.Signature())
	}
	return output, true, nil
}

func callShapes(call Call) []string {
	out := make([]string, len(call.Args))
	for i, arg := range call.Args {
		out[i] = arg.Shape().String()
	}
	return out
}
