// Package lookup implements the external token registries consulted by
// the resolver cascade.
package lookup

import "errors"

var (
	// ErrNoMatch indicates the registry has no entry for the symbol on
	// the requested chain.
	ErrNoMatch = errors.New("no matching token")
	// ErrUnsupportedChain indicates the registry does not index the
	// requested chain at all.
	ErrUnsupportedChain = errors.New("chain not indexed by source")
	// ErrMissingKey indicates a keyed registry queried without a key.
	ErrMissingKey = errors.New("API key required")
)
