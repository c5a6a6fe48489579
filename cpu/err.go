package cpu

import (
	"errors"

	"github.com/ezrec/sim8086/translate"
)

var f = translate.From

var (
	// Decode errors
	ErrStreamTooShort        = errors.New(f("stream too short"))
	ErrOpcodeNotImplemented  = errors.New(f("opcode not implemented"))
	ErrOpcodeMismatch        = errors.New(f("opcode extension mismatch"))
	ErrConstantFieldMismatch = errors.New(f("constant field mismatch"))
	ErrUnsupportedField      = errors.New(f("unsupported field"))
	ErrUnsupportedOperand    = errors.New(f("unsupported operand"))
	ErrUnsupportedDataType   = errors.New(f("unsupported data type"))
	ErrInstructionLength     = errors.New(f("instruction length out of bounds"))

	// Execution errors
	ErrInvalidMemoryAddress     = errors.New(f("invalid memory address"))
	ErrMissingExecutionFunction = errors.New(f("missing execution function"))
)

// ErrAt indicates the stream position of a decode error.
type ErrAt struct {
	Position int
	Err      error
}

func (err *ErrAt) Error() string {
	return f("position %v: %v", err.Position, err.Err)
}

func (err *ErrAt) Unwrap() error {
	return err.Err
}
