package solana

import "errors"

var (
	// ErrAccountFetch indicates a failed account info query.
	ErrAccountFetch = errors.New("failed to fetch account")
	// ErrNotAMint indicates an account whose data does not look like an SPL mint.
	ErrNotAMint = errors.New("account is not an SPL mint")
)
