package dex

import "errors"

var (
	// ErrResolverRequired indicates a DEX adapter built without a token resolver.
	ErrResolverRequired = errors.New("token resolver required")
	// ErrChainsRequired indicates a DEX adapter built without chain profiles.
	ErrChainsRequired = errors.New("chain profiles required")
	// ErrEVMRequired indicates an on-chain adapter built without an EVM dialer.
	ErrEVMRequired = errors.New("EVM dialer required")
)
