package server

import "errors"

var (
	// ErrEmailNotConfigured indicates the email tool was invoked without SMTP settings.
	ErrEmailNotConfigured = errors.New("email delivery is not configured")
	// ErrBadChainID indicates a chain_id parameter that is not an integer.
	ErrBadChainID = errors.New("chain_id must be an integer")
	// ErrBadSymbols indicates a symbols parameter that is not a non-empty string array.
	ErrBadSymbols = errors.New("symbols must be a non-empty array of strings")
)
