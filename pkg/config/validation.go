package config

import (
	"fmt"
	"strings"
)

// builtinChainIDs are the chains with built-in profiles. Solana has no
// EVM chain id; 101 is the internal venue id used for it.
var builtinChainIDs = map[int64]bool{
	1:     true, // Ethereum
	56:    true, // BSC
	137:   true, // Polygon
	42161: true, // Arbitrum
	8453:  true, // Base
	101:   true, // Solana
}

// Validate checks configuration for errors
func Validate(cfg *Config) error {
	// Validate mode
	mode := cfg.NormalizeMode()
	if mode != ModeMCP && mode != ModeHTTP && mode != ModeBoth {
		return fmt.Errorf("%w: %s (must be 'mcp', 'http', or 'both')", ErrInvalidMode, cfg.Mode)
	}

	if err := validateServerConfig(cfg); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	// Validate exchanges
	if len(cfg.Exchanges) == 0 {
		return ErrNoExchangesConfigured
	}
	enabled := 0
	for i, ec := range cfg.Exchanges {
		if err := validateExchangeConfig(&ec); err != nil {
			return fmt.Errorf("exchange %d (%s): %w", i, ec.Name, err)
		}
		if ec.Enabled {
			enabled++
		}
	}
	if enabled == 0 {
		return ErrNoExchangesEnabled
	}

	// Validate chain overrides
	for i, cc := range cfg.Chains {
		if err := validateChainConfig(&cc); err != nil {
			return fmt.Errorf("chain %d: %w", i, err)
		}
	}

	// Validate email config when present
	if cfg.Email.Host != "" {
		if err := validateEmailConfig(&cfg.Email); err != nil {
			return fmt.Errorf("email config: %w", err)
		}
	}

	// Validate logging config
	if err := validateLoggingConfig(&cfg.Logging); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

func validateServerConfig(cfg *Config) error {
	if cfg.Server.QuoteTimeout.ToDuration() <= 0 {
		return ErrInvalidQuoteTimeout
	}

	// The default chain must resolve to a profile
	if !builtinChainIDs[cfg.Server.DefaultChainID] {
		found := false
		for _, cc := range cfg.Chains {
			if cc.ID == cfg.Server.DefaultChainID {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: %d", ErrUnknownDefaultChain, cfg.Server.DefaultChainID)
		}
	}

	return nil
}

func validateExchangeConfig(cfg *ExchangeConfig) error {
	if cfg.Name == "" {
		return ErrExchangeNameRequired
	}

	known := false
	for _, name := range KnownExchanges {
		if strings.ToLower(cfg.Name) == name {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("%w: %s (must be one of: %s)", ErrUnknownExchange, cfg.Name, strings.Join(KnownExchanges, ", "))
	}

	if cfg.RateLimit.RequestsPerSecond < 0 || cfg.RateLimit.Burst < 0 {
		return ErrInvalidRateLimit
	}

	return nil
}

func validateChainConfig(cfg *ChainConfig) error {
	if cfg.ID == 0 {
		return ErrChainIDRequired
	}

	// Overrides of built-in chains may be partial. A chain this repo
	// knows nothing about must carry everything adapters need.
	if builtinChainIDs[cfg.ID] {
		return nil
	}
	if cfg.RPCURL == "" {
		return fmt.Errorf("%w: chain %d", ErrChainRPCRequired, cfg.ID)
	}
	if cfg.Stable == "" || cfg.StableDecimals <= 0 {
		return fmt.Errorf("%w: chain %d", ErrChainStableRequired, cfg.ID)
	}

	return nil
}

func validateEmailConfig(cfg *EmailConfig) error {
	if cfg.Port <= 0 {
		return ErrEmailPortRequired
	}
	if cfg.From == "" {
		return ErrEmailFromRequired
	}
	return nil
}

func validateLoggingConfig(cfg *LoggingConfig) error {
	// Validate level
	validLevels := []string{"debug", "info", "warn", "error"}
	levelValid := false
	for _, l := range validLevels {
		if strings.ToLower(cfg.Level) == l {
			levelValid = true
			break
		}
	}
	if !levelValid {
		return fmt.Errorf("%w: %s (must be one of: %s)", ErrInvalidLogLevel, cfg.Level, strings.Join(validLevels, ", "))
	}

	// Validate format
	formatValid := strings.ToLower(cfg.Format) == "json" || strings.ToLower(cfg.Format) == "text"
	if !formatValid {
		return fmt.Errorf("%w: %s (must be 'json' or 'text')", ErrInvalidLogFormat, cfg.Format)
	}

	return nil
}
