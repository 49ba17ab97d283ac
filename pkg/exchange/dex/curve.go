package dex

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/David200308/crypto-price-mcp-server/pkg/chain"
	"github.com/David200308/crypto-price-mcp-server/pkg/chain/evm"
	"github.com/David200308/crypto-price-mcp-server/pkg/config"
	"github.com/David200308/crypto-price-mcp-server/pkg/exchange"
)

// curveAddressProvider is Curve's immutable address provider on
// mainnet. Everything else is discovered through it at quote time.
const curveAddressProvider = "0x0000000022D53366457F9d5E68Ec105046FC0383"

// Curve address provider ABI (only get_registry).
const curveProviderABIJSON = `[{
	"name": "get_registry",
	"inputs": [],
	"outputs": [{"name": "", "type": "address"}],
	"stateMutability": "view",
	"type": "function"
}]`

// Curve registry ABI (pool discovery and coin indices).
const curveRegistryABIJSON = `[{
	"name": "find_pool_for_coins",
	"inputs": [
		{"name": "_from", "type": "address"},
		{"name": "_to", "type": "address"}
	],
	"outputs": [{"name": "", "type": "address"}],
	"stateMutability": "view",
	"type": "function"
}, {
	"name": "get_coin_indices",
	"inputs": [
		{"name": "_pool", "type": "address"},
		{"name": "_from", "type": "address"},
		{"name": "_to", "type": "address"}
	],
	"outputs": [
		{"name": "", "type": "int128"},
		{"name": "", "type": "int128"},
		{"name": "", "type": "bool"}
	],
	"stateMutability": "view",
	"type": "function"
}]`

// Curve pool ABI (only get_dy).
const curvePoolABIJSON = `[{
	"name": "get_dy",
	"inputs": [
		{"name": "i", "type": "int128"},
		{"name": "j", "type": "int128"},
		{"name": "dx", "type": "uint256"}
	],
	"outputs": [{"name": "", "type": "uint256"}],
	"stateMutability": "view",
	"type": "function"
}]`

var (
	curveProviderABI = evm.MustParseABI(curveProviderABIJSON)
	curveRegistryABI = evm.MustParseABI(curveRegistryABIJSON)
	curvePoolABI     = evm.MustParseABI(curvePoolABIJSON)
)

// CurveSource quotes tokens from Curve pools on mainnet using the true
// marginal rate: it asks the pool what one whole token swaps into
// rather than reading a balance ratio, so amplified stable pools price
// correctly.
type CurveSource struct {
	*exchange.Base
	resolver exchange.TokenResolver
	chains   *chain.Set
	evm      *evm.Dialer
	provider common.Address
}

// NewCurveSource creates a new Curve adapter.
func NewCurveSource(cfg config.ExchangeConfig, deps exchange.Deps) (exchange.Adapter, error) {
	if deps.Resolver == nil {
		return nil, fmt.Errorf("curve: %w", ErrResolverRequired)
	}
	if deps.Chains == nil {
		return nil, fmt.Errorf("curve: %w", ErrChainsRequired)
	}
	if deps.EVM == nil {
		return nil, fmt.Errorf("curve: %w", ErrEVMRequired)
	}

	provider := cfg.GetString("address_provider", curveAddressProvider)
	if !common.IsHexAddress(provider) {
		return nil, fmt.Errorf("curve: invalid address provider %q", provider)
	}

	limiter := exchange.NewLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	return &CurveSource{
		Base:     exchange.NewBase("curve", exchange.CategoryDEX, deps.HTTP, limiter, deps.Logger),
		resolver: deps.Resolver,
		chains:   deps.Chains,
		evm:      deps.EVM,
		provider: common.HexToAddress(provider),
	}, nil
}

// Quote prices symbol against the mainnet stable via get_dy.
func (s *CurveSource) Quote(ctx context.Context, symbol string, chainID int64) exchange.Outcome {
	symbol = exchange.NormalizeSymbol(symbol)
	if err := s.Gate(ctx); err != nil {
		return exchange.Failure(s.Name(), err)
	}

	chainID, err := pinChain(chainID, chain.IDEthereum)
	if err != nil {
		return exchange.Failure(s.Name(), err)
	}
	profile, err := s.chains.Get(chainID)
	if err != nil {
		return exchange.Failure(s.Name(), err)
	}

	rec, err := s.resolver.Resolve(ctx, symbol, chainID)
	if err != nil {
		return exchange.Failure(s.Name(), fmt.Errorf("%w: %v", exchange.ErrTokenNotFound, err))
	}

	client, err := s.evm.Client(ctx, chainID)
	if err != nil {
		return exchange.Failure(s.Name(), err)
	}

	tokenAddr := common.HexToAddress(rec.Address)
	stableAddr := common.HexToAddress(profile.Stable)

	out, err := client.Call(ctx, s.provider, curveProviderABI, "get_registry")
	if err != nil {
		return exchange.Failure(s.Name(), fmt.Errorf("get_registry: %w", err))
	}
	registry, ok := out[0].(common.Address)
	if !ok {
		return exchange.Failure(s.Name(), evm.ErrBadResultType)
	}

	out, err = client.Call(ctx, registry, curveRegistryABI, "find_pool_for_coins", tokenAddr, stableAddr)
	if err != nil {
		return exchange.Failure(s.Name(), fmt.Errorf("find_pool_for_coins: %w", err))
	}
	pool, ok := out[0].(common.Address)
	if !ok {
		return exchange.Failure(s.Name(), evm.ErrBadResultType)
	}
	if pool == (common.Address{}) {
		return exchange.Failure(s.Name(), fmt.Errorf("%w: %s/%s", exchange.ErrNoPool, symbol, profile.StableSymbol))
	}

	out, err = client.Call(ctx, registry, curveRegistryABI, "get_coin_indices", pool, tokenAddr, stableAddr)
	if err != nil {
		return exchange.Failure(s.Name(), fmt.Errorf("get_coin_indices: %w", err))
	}
	i, ok0 := out[0].(*big.Int)
	j, ok1 := out[1].(*big.Int)
	if !ok0 || !ok1 {
		return exchange.Failure(s.Name(), evm.ErrBadResultType)
	}

	// Ask the pool what one whole token swaps into
	dx := unitAmount(rec.Decimals)
	out, err = client.Call(ctx, pool, curvePoolABI, "get_dy", i, j, dx)
	if err != nil {
		return exchange.Failure(s.Name(), fmt.Errorf("get_dy: %w", err))
	}
	dy, ok := out[0].(*big.Int)
	if !ok {
		return exchange.Failure(s.Name(), evm.ErrBadResultType)
	}
	if dy.Sign() == 0 {
		return exchange.Failure(s.Name(), exchange.ErrNoLiquidity)
	}

	price, err := scaleAmount(dy.String(), profile.StableDecimals)
	if err != nil {
		return exchange.Failure(s.Name(), err)
	}

	return exchange.Success(&exchange.Quote{
		Exchange:    s.Name(),
		Symbol:      symbol,
		Price:       price,
		Timestamp:   time.Now().UTC(),
		ChainID:     chainID,
		PoolAddress: pool.Hex(),
	})
}
