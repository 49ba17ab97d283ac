package token

import "errors"

// ErrNotFound indicates no source could resolve the symbol on the
// requested chain.
var ErrNotFound = errors.New("token not found")
