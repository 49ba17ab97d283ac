// Package chain holds the static network profiles DEX adapters route through.
package chain

import (
	"fmt"

	"github.com/David200308/crypto-price-mcp-server/pkg/config"
)

// Chain identifiers for the supported networks. EVM chains use their
// canonical chain id. Solana has none, so IDSolana is an internal venue
// id that never goes on the wire.
const (
	IDEthereum int64 = 1
	IDBSC      int64 = 56
	IDPolygon  int64 = 137
	IDArbitrum int64 = 42161
	IDBase     int64 = 8453
	IDSolana   int64 = 101
)

// Profile describes one supported network: where to reach it and which
// reference tokens quotes are denominated against. Profiles are built
// once at startup and read-only afterwards.
type Profile struct {
	ID             int64
	Name           string
	RPCURL         string
	WrappedNative  string // wrapped native token contract (WETH, WBNB, ...)
	Stable         string // reference stablecoin quotes settle into
	StableSymbol   string
	StableDecimals int
}

// IsEVM reports whether the profile addresses an EVM network.
func (p Profile) IsEVM() bool {
	return p.ID != IDSolana
}

// builtins returns the default profile per supported chain. Public RPC
// endpoints; production deployments override them in the config.
func builtins() map[int64]Profile {
	return map[int64]Profile{
		IDEthereum: {
			ID:             IDEthereum,
			Name:           "ethereum",
			RPCURL:         "https://eth.llamarpc.com",
			WrappedNative:  "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2", // WETH
			Stable:         "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", // USDC
			StableSymbol:   "USDC",
			StableDecimals: 6,
		},
		IDBSC: {
			ID:             IDBSC,
			Name:           "bsc",
			RPCURL:         "https://bsc-dataseed.binance.org",
			WrappedNative:  "0xbb4CdB9CBd36B01bD1cBaEF60aF814a3f6F0Ee75", // WBNB
			Stable:         "0x55d398326f99059fF775485246999027B3197955", // USDT, 18 decimals on BSC
			StableSymbol:   "USDT",
			StableDecimals: 18,
		},
		IDPolygon: {
			ID:             IDPolygon,
			Name:           "polygon",
			RPCURL:         "https://polygon-rpc.com",
			WrappedNative:  "0x0d500B1d8E8eF31E21C99d1Db9A6444d3ADf1270", // WMATIC
			Stable:         "0x2791Bca1f2de4661ED88A30C99A7a9449Aa84174", // USDC.e
			StableSymbol:   "USDC",
			StableDecimals: 6,
		},
		IDArbitrum: {
			ID:             IDArbitrum,
			Name:           "arbitrum",
			RPCURL:         "https://arb1.arbitrum.io/rpc",
			WrappedNative:  "0x82aF49447D8a07e3bd95BD0d56f35241523fBab1", // WETH
			Stable:         "0xaf88d065e77c8cC2239327C5EDb3A432268e5831", // USDC
			StableSymbol:   "USDC",
			StableDecimals: 6,
		},
		IDBase: {
			ID:             IDBase,
			Name:           "base",
			RPCURL:         "https://mainnet.base.org",
			WrappedNative:  "0x4200000000000000000000000000000000000006", // WETH
			Stable:         "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913", // USDC
			StableSymbol:   "USDC",
			StableDecimals: 6,
		},
		IDSolana: {
			ID:             IDSolana,
			Name:           "solana",
			RPCURL:         "https://api.mainnet-beta.solana.com",
			WrappedNative:  "So11111111111111111111111111111111111111112",  // WSOL
			Stable:         "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", // USDC
			StableSymbol:   "USDC",
			StableDecimals: 6,
		},
	}
}

// Set holds the chain profiles, keyed by id.
type Set struct {
	profiles  map[int64]Profile
	defaultID int64
}

// NewSet merges the built-in profiles with configuration overrides.
func NewSet(overrides []config.ChainConfig, defaultID int64) (*Set, error) {
	profiles := builtins()

	for _, cc := range overrides {
		if cc.ID == 0 {
			return nil, ErrChainIDRequired
		}
		p, ok := profiles[cc.ID]
		if !ok {
			p = Profile{ID: cc.ID}
		}
		if cc.Name != "" {
			p.Name = cc.Name
		}
		if cc.RPCURL != "" {
			p.RPCURL = cc.RPCURL
		}
		if cc.WrappedNative != "" {
			p.WrappedNative = cc.WrappedNative
		}
		if cc.Stable != "" {
			p.Stable = cc.Stable
		}
		if cc.StableSymbol != "" {
			p.StableSymbol = cc.StableSymbol
		}
		if cc.StableDecimals != 0 {
			p.StableDecimals = cc.StableDecimals
		}
		profiles[cc.ID] = p
	}

	if _, ok := profiles[defaultID]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownChain, defaultID)
	}

	return &Set{profiles: profiles, defaultID: defaultID}, nil
}

// Get returns the profile for a chain id.
func (s *Set) Get(id int64) (Profile, error) {
	p, ok := s.profiles[id]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %d", ErrUnknownChain, id)
	}
	return p, nil
}

// Default returns the profile used when a request does not pin a chain.
func (s *Set) Default() Profile {
	return s.profiles[s.defaultID]
}

// DefaultID returns the configured default chain id.
func (s *Set) DefaultID() int64 {
	return s.defaultID
}

// Resolve maps a request chain id to a profile: 0 means the default.
func (s *Set) Resolve(id int64) (Profile, error) {
	if id == 0 {
		return s.Default(), nil
	}
	return s.Get(id)
}
