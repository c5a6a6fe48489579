package io

import (
	"errors"

	"github.com/ezrec/sim8086/translate"
)

var f = translate.From

var (
	// Source errors
	ErrTapeConsumed = errors.New(f("tape already consumed"))
	ErrTapeName     = errors.New(f("tape name mismatch"))
	ErrImageEmpty   = errors.New(f("image empty"))
)
