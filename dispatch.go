package abi

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

/*
External accounting hook invoked around the ABI work of a dispatch. The host
uses it to bill energy or fees; this package only reports sizes. An error
returned by the meter aborts the dispatch and is returned as-is.
*/
type Meter interface {
	// Called before decoding an input of the given length.
	ChargeDecode(inputLen int) error
	// Called after encoding a result of the given length.
	ChargeEncode(outputLen int) error
}

/*
Decodes call-data, resolves it against a Table, invokes the matched operation
and encodes its result. The zero value of every field except "Table" is
usable:

	dispatcher := abi.Dispatcher{Table: Operations}
	output, returned, err := dispatcher.Dispatch(contract, callData)

A Dispatcher holds no mutable state; a single value may serve many goroutines
at once, provided its Logger and Meter are safe for concurrent use.

Callers must tell apart the two failure classes: "IsAbiError(err)" means the
input could not be interpreted; an "*InvocationError" means it was interpreted
and the operation itself failed.
*/
type Dispatcher struct {
	Table Table

	// Optional. Defaults to a no-op logger.
	Logger *zap.Logger

	// Optional. Nil means no accounting.
	Meter Meter

	// Optional. Inputs longer than this are rejected before decoding. Zero
	// means no limit.
	MaxInputLen int
}

// Decodes the call-data and dispatches it. See "DispatchCall".
func (self Dispatcher) Dispatch(recv interface{}, input []byte) (output []byte, returned bool, err error) {
	log := self.logger()

	if self.MaxInputLen > 0 && len(input) > self.MaxInputLen {
		err := errors.Wrapf(ErrInputTooLarge, `%v bytes, limit %v`, len(input), self.MaxInputLen)
		log.Warn("rejected call data", zap.Int("input_len", len(input)), zap.Error(err))
		return nil, false, err
	}

	if self.Meter != nil {
		err := self.Meter.ChargeDecode(len(input))
		if err != nil {
			return nil, false, err
		}
	}

	call, err := DecodeCall(input)
	if err != nil {
		log.Warn("rejected call data", zap.Int("input_len", len(input)), zap.Error(err))
		return nil, false, err
	}

	return self.DispatchCall(recv, call)
}

/*
Resolves an already decoded call and invokes it. The first matching operation
in table order is used. Returns:

	output, true, nil    the operation returned a value, encoded with "EncodeValue"
	nil, false, nil      the operation returned nothing
	nil, false, err      ABI rejection, operation failure, or meter failure
*/
func (self Dispatcher) DispatchCall(recv interface{}, call Call) (output []byte, returned bool, err error) {
	log := self.logger()

	op, args, err := self.Table.Resolve(call)
	if err != nil {
		log.Warn("rejected call", zap.String("op", call.Name), zap.Int("args", len(call.Args)), zap.Error(err))
		return nil, false, err
	}

	sel := op.Selector()
	log.Debug("dispatching",
		zap.String("op", op.Signature()),
		zap.String("selector", string(HexEncode(sel[:]))),
		zap.Int("args", len(args)))

	output, returned, err = invoke(op, recv, args)
	if err != nil {
		var inv *InvocationError
		if errors.As(err, &inv) {
			log.Debug("operation failed", zap.String("op", op.Signature()), zap.Error(inv.Err))
		} else {
			log.Warn("rejected call", zap.String("op", op.Signature()), zap.Error(err))
		}
		return nil, false, err
	}

	if returned && self.Meter != nil {
		err := self.Meter.ChargeEncode(len(output))
		if err != nil {
			return nil, false, err
		}
	}

	log.Debug("dispatched",
		zap.String("op", op.Signature()),
		zap.Bool("returned", returned),
		zap.Int("output_len", len(output)))
	return output, returned, nil
}

func (self Dispatcher) logger() *zap.Logger {
	if self.Logger == nil {
		return zap.NewNop()
	}
	return self.Logger
}
