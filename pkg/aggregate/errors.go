// Package aggregate fans one price request out to every configured
// exchange adapter concurrently, settles all of them, and derives
// cross-venue statistics. One venue failing, hanging, or panicking
// never affects the others.
package aggregate

import "errors"

var (
	// ErrNoAdapters indicates an aggregator built with no adapters.
	ErrNoAdapters = errors.New("no exchange adapters configured")
	// ErrEmptySymbol indicates a blank symbol in a request.
	ErrEmptySymbol = errors.New("symbol must not be empty")
	// ErrNoSymbols indicates a batch request with an empty symbol list.
	ErrNoSymbols = errors.New("symbols list must not be empty")
)
