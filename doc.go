/*
Library for encoding, decoding and dispatching sandbox call-data: the binary
ABI that carries "invoke operation M with these typed arguments" from an
untrusted caller into a contract sandbox, and carries the result back out.

Features:

	* closed set of nine elementary types

	* scalars, 1-D arrays and jagged 2-D arrays, self-described inline

	* bounds-checked decoding of adversarial input

	* operation tables with name+signature resolution

	* optional CLI tool for inspecting hex-encoded call-data

Wire Format

A call is the operation name, followed by the descriptors of all arguments
between '<' and '>', followed by the data of all arguments, in order:

	call        := name '<' descriptor* '>' data*  |  name
	value       := descriptor data
	descriptor  := symbol
	             | '[' symbol count ']'
	             | '[[' symbol ']' count ('(' len ')')*
	symbol      := B Z C S I L F D A

Descriptors never interleave with data. Counts and lengths are decimal ASCII.
A name without '<' and '>' is a call without arguments.

Types

	symbol  type     width  Go type
	B       byte     1      byte
	Z       boolean  1      bool
	C       char     1-4    Char (UTF-8)
	S       short    2      int16
	I       int      4      int32
	L       long     8      int64
	F       float    4      float32
	D       double   8      float64
	A       address  32     Address

Numbers are big-endian. Floats are encoded as their IEEE-754 bit patterns.
Arrays are the concatenation of their element encodings; a char array is
therefore the raw UTF-8 text of its characters.

Encoding

	input, err := abi.EncodeCall("transfer", recipient, int64(100))
	// "transfer<AL>" + 32 address bytes + 8 bytes of 100

Any argument may be a native Go value of a supported shape (see "Value") or
a "Value" obtained from a previous decode. Use "EncodeValue" to encode a single
result without the name and the '<' '>' wrapper.

Decoding

	call, err := abi.DecodeCall(input)
	// call.Name == "transfer"
	// call.Args[1].Native() == int64(100)

The input is treated as hostile. Every declared count is checked against the
remaining input before anything is allocated; a malformed header, descriptor or
value, a short buffer, or trailing garbage fails the whole decode. Errors wrap
one of the "Err*" kinds; test for them with "errors.Is".

Dispatch

Operations are registered once, in a table, and the table is immutable
afterwards:

	var Operations = abi.MustTable(
		abi.MustOperation("transfer(address,long)", true, transfer),
		abi.MustOperation("balanceOf(address)", true, balanceOf),
	)

	dispatcher := abi.Dispatcher{Table: Operations, Logger: logger}
	output, returned, err := dispatcher.Dispatch(contract, input)

The first operation with the same name, arity and parameter shapes wins.
Scalar arguments are passed to the operation as native Go values; arrays are
passed as boxed "Value"s. A nil result means "returned nothing", reported as
"returned == false".

Errors returned by the operation are wrapped in "*InvocationError", which keeps
the original error intact. "IsAbiError" tells apart input that couldn't be
interpreted from input that was interpreted, but whose operation failed.

Concurrency

Encoding and decoding are pure functions of their input. Tables are immutable.
Everything in this package may be used from multiple goroutines at once.

Jagged Arrays And Zero Rows

The encoder always writes an explicit row count: "[[I]0]" is a 2-D array with
no rows. The decoder still accepts the legacy form with an empty row count,
"[[I]](2)(1)", in which the rows are counted by their length groups; that form
requires at least one row.
*/
package abi
