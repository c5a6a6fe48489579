package emulator

import (
	"errors"

	"github.com/ezrec/sim8086/cpu"
	"github.com/ezrec/sim8086/translate"
)

var f = translate.From

var (
	ErrInvalidExecutionState = errors.New(f("invalid execution state"))
	ErrProgramEmpty          = errors.New(f("program empty"))
	ErrProgramTooLarge       = errors.New(f("program too large"))
	ErrExecutionFailed       = errors.New(f("execution failed"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	CS, Ip      uint16
	Instruction cpu.Instruction // Zero if the instruction did not decode.
	Err         error
}

func (err *ErrRuntime) Error() string {
	if err.Instruction.Length == 0 {
		return f("%04x:%04x %v", err.CS, err.Ip, err.Err)
	}
	return f("%04x:%04x '%v' %v", err.CS, err.Ip, err.Instruction.String(), err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
