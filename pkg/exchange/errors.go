// Package exchange provides the adapter interface and shared plumbing
// for quoting spot prices from trading venues.
package exchange

import "errors"

var (
	// ErrUnknownAdapter indicates an adapter name with no registered factory.
	ErrUnknownAdapter = errors.New("unknown exchange adapter")
	// ErrInvalidPrice indicates a price field that failed to parse or is not positive.
	ErrInvalidPrice = errors.New("invalid price")
	// ErrMissingField indicates a response without any recognized price field.
	ErrMissingField = errors.New("missing field in response")
	// ErrUnsupportedChain indicates a chain the venue cannot serve.
	ErrUnsupportedChain = errors.New("unsupported chain")
	// ErrTokenNotFound indicates the resolver could not map the symbol on the venue's chain.
	ErrTokenNotFound = errors.New("token not found")
	// ErrNoPool indicates that no liquidity pool exists for the pair.
	ErrNoPool = errors.New("no pool found")
	// ErrNoLiquidity indicates a pool with empty reserves.
	ErrNoLiquidity = errors.New("no liquidity in pool")
	// ErrNoQuote indicates a venue response without a usable quote.
	ErrNoQuote = errors.New("no quote returned")
	// ErrAPIKeyRequired indicates a venue that cannot be queried without a key.
	ErrAPIKeyRequired = errors.New("API key is required")
)
