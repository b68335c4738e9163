package io

import (
	"errors"

	"github.com/ezrec/ucore/translate"
)

var f = translate.From

var (
	ErrStoreBusy    = errors.New(f("store busy"))
	ErrStoreRange   = errors.New(f("store address out of range"))
	ErrDisplayRange = errors.New(f("display index out of range"))
)
