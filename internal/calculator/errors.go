package calculator

import "errors"

var (
	ErrZeroStart = errors.New("start value is zero")
	ErrNotFinite = errors.New("change is not finite")
)
