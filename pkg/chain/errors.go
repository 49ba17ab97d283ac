package chain

import "errors"

var (
	// ErrUnknownChain indicates a chain id with no configured profile.
	ErrUnknownChain = errors.New("unknown chain")
	// ErrChainIDRequired indicates a chain override without an id.
	ErrChainIDRequired = errors.New("chain id must be specified")
	// ErrNotEVM indicates an operation that requires an EVM chain.
	ErrNotEVM = errors.New("not an EVM chain")
)
