package abi

import (
	"fmt"

	"github.com/pkg/errors"
)

/*
Error kinds reported by the ABI layer. Errors returned by this package wrap one
of these with additional context; test for the kind with "errors.Is" or compare
"errors.Cause(err)".

Every one of these means the input "could not be interpreted". Failures raised
by an invoked operation are reported separately, as "*InvocationError".
*/
var (
	// Unbalanced '<' / '>' in a call header, or a name that can't be encoded.
	ErrMalformedCallHeader = errors.New(`malformed call header`)

	// Bad count or row-length field, unknown symbol, unterminated bracket.
	ErrMalformedDescriptor = errors.New(`malformed descriptor`)

	// A declared length exceeds the remaining data.
	ErrBufferUnderrun = errors.New(`buffer underrun`)

	// Data left over after the last declared argument.
	ErrTrailingData = errors.New(`trailing data`)

	// Data bytes that don't form a valid value, such as a boolean byte other
	// than 0x00 or 0x01, or invalid UTF-8 in a char.
	ErrMalformedValue = errors.New(`malformed value`)

	// Encode-side value outside of the closed type set.
	ErrUnsupportedValueType = errors.New(`unsupported value type`)

	// No operation in the table accepts the decoded call.
	ErrNoMatchingOperation = errors.New(`no matching operation`)

	// The matched operation needs a receiver, but none was provided.
	ErrMissingReceiver = errors.New(`missing receiver`)

	// The input exceeds the dispatcher's configured limit.
	ErrInputTooLarge = errors.New(`input too large`)
)

var abiErrors = []error{
	ErrMalformedCallHeader,
	ErrMalformedDescriptor,
	ErrBufferUnderrun,
	ErrTrailingData,
	ErrMalformedValue,
	ErrUnsupportedValueType,
	ErrNoMatchingOperation,
	ErrMissingReceiver,
	ErrInputTooLarge,
}

/*
True if the error is an ABI-layer rejection, meaning the input could not be
interpreted. False for "*InvocationError" and for errors returned by a Meter,
which describe outcomes of an input that was interpreted successfully.
*/
func IsAbiError(err error) bool {
	if err == nil {
		return false
	}
	var inv *InvocationError
	if errors.As(err, &inv) {
		return false
	}
	for _, kind := range abiErrors {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

/*
Wraps an error returned by an invoked operation. The original error is
preserved as-is and is available via "Unwrap", "Cause" or "errors.As"; this
wrapper only adds the name of the operation that raised it.
*/
type InvocationError struct {
	Operation string
	Err       error
}

// Implements "error".
func (self *InvocationError) Error() string {
	return fmt.Sprintf(`operation %q failed: %v`, self.Operation, self.Err)
}

// Supports "errors.Is" and "errors.As".
func (self *InvocationError) Unwrap() error { return self.Err }

// Supports "errors.Cause" from "github.com/pkg/errors".
func (self *InvocationError) Cause() error { return self.Err }

func underrun(what string, need, have int) error {
	return errors.Wrapf(ErrBufferUnderrun, `%v: need %v bytes, have %v`, what, need, have)
}
