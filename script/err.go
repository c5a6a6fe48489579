package script

import (
	"errors"

	"github.com/ezrec/sim8086/translate"
)

var f = translate.From

var (
	ErrConditionResult = errors.New(f("condition has no result"))
)

// ErrRegisterValue indicates a register assignment that is not an integer,
// or a flag assignment that is not a boolean.
type ErrRegisterValue string

func (err ErrRegisterValue) Error() string {
	return f("'%v' has an invalid value", string(err))
}
