package evm

import "errors"

var (
	// ErrEmptyResult indicates a call that returned no data, usually an
	// address with no contract code.
	ErrEmptyResult = errors.New("empty call result")
	// ErrBadResultType indicates a call result of an unexpected type.
	ErrBadResultType = errors.New("unexpected call result type")
)
