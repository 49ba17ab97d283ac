package config

import "errors"

var (
	// ErrInvalidMode indicates that the mode is invalid.
	ErrInvalidMode = errors.New("invalid mode")
	// ErrNoExchangesConfigured indicates that no exchange adapters are configured.
	ErrNoExchangesConfigured = errors.New("at least one exchange must be configured")
	// ErrNoExchangesEnabled indicates that every configured exchange is disabled.
	ErrNoExchangesEnabled = errors.New("no exchanges enabled")
	// ErrExchangeNameRequired indicates that an exchange entry is missing its name.
	ErrExchangeNameRequired = errors.New("exchange name is required")
	// ErrUnknownExchange indicates an exchange name with no built-in adapter.
	ErrUnknownExchange = errors.New("unknown exchange")
	// ErrInvalidRateLimit indicates a negative rate limit value.
	ErrInvalidRateLimit = errors.New("rate limit values must be >= 0")
	// ErrInvalidQuoteTimeout indicates a non-positive quote timeout.
	ErrInvalidQuoteTimeout = errors.New("quote_timeout must be positive")
	// ErrChainIDRequired indicates that a chain override is missing its id.
	ErrChainIDRequired = errors.New("chain id must be specified")
	// ErrChainRPCRequired indicates that a custom chain is missing its RPC endpoint.
	ErrChainRPCRequired = errors.New("rpc_url is required for a chain without built-in defaults")
	// ErrChainStableRequired indicates that a custom chain is missing its reference stable.
	ErrChainStableRequired = errors.New("stable and stable_decimals are required for a chain without built-in defaults")
	// ErrUnknownDefaultChain indicates a default chain with no profile.
	ErrUnknownDefaultChain = errors.New("default_chain_id has no built-in or configured profile")
	// ErrEmailPortRequired indicates that the SMTP port is missing.
	ErrEmailPortRequired = errors.New("email port must be specified")
	// ErrEmailFromRequired indicates that the sender address is missing.
	ErrEmailFromRequired = errors.New("email from address must be specified")
	// ErrInvalidLogLevel indicates that the log level is invalid.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidLogFormat indicates that the log format is invalid.
	ErrInvalidLogFormat = errors.New("invalid log format")
)
