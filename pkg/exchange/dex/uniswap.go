package dex

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/David200308/crypto-price-mcp-server/pkg/chain"
	"github.com/David200308/crypto-price-mcp-server/pkg/chain/evm"
	"github.com/David200308/crypto-price-mcp-server/pkg/config"
	"github.com/David200308/crypto-price-mcp-server/pkg/exchange"
)

// uniswapFactories lists the canonical V3 factory per supported chain.
var uniswapFactories = map[int64]common.Address{
	chain.IDEthereum: common.HexToAddress("0x1F98431c8aD98523631AE4a59f267346ea31F984"),
	chain.IDPolygon:  common.HexToAddress("0x1F98431c8aD98523631AE4a59f267346ea31F984"),
	chain.IDArbitrum: common.HexToAddress("0x1F98431c8aD98523631AE4a59f267346ea31F984"),
	chain.IDBase:     common.HexToAddress("0x33128a8fC17869897dcE68Ed026d694621f6FDfD"),
	chain.IDBSC:      common.HexToAddress("0xdB1d10011AD0Ff90774D0C6Bb92e5C5c8b4461F7"),
}

// uniswapFeeTiers are the V3 fee tiers probed for a pool, most common
// first.
var uniswapFeeTiers = []int64{500, 3000, 10000}

// Uniswap V3 factory ABI (only getPool).
const uniswapFactoryABIJSON = `[{
	"inputs": [
		{"internalType": "address", "name": "tokenA", "type": "address"},
		{"internalType": "address", "name": "tokenB", "type": "address"},
		{"internalType": "uint24", "name": "fee", "type": "uint24"}
	],
	"name": "getPool",
	"outputs": [{"internalType": "address", "name": "pool", "type": "address"}],
	"stateMutability": "view",
	"type": "function"
}]`

// Uniswap V3 pool ABI (slot0, token0, liquidity).
const uniswapPoolABIJSON = `[{
	"inputs": [],
	"name": "slot0",
	"outputs": [
		{"internalType": "uint160", "name": "sqrtPriceX96", "type": "uint160"},
		{"internalType": "int24", "name": "tick", "type": "int24"},
		{"internalType": "uint16", "name": "observationIndex", "type": "uint16"},
		{"internalType": "uint16", "name": "observationCardinality", "type": "uint16"},
		{"internalType": "uint16", "name": "observationCardinalityNext", "type": "uint16"},
		{"internalType": "uint8", "name": "feeProtocol", "type": "uint8"},
		{"internalType": "bool", "name": "unlocked", "type": "bool"}
	],
	"stateMutability": "view",
	"type": "function"
}, {
	"inputs": [],
	"name": "token0",
	"outputs": [{"internalType": "address", "name": "", "type": "address"}],
	"stateMutability": "view",
	"type": "function"
}, {
	"inputs": [],
	"name": "liquidity",
	"outputs": [{"internalType": "uint128", "name": "", "type": "uint128"}],
	"stateMutability": "view",
	"type": "function"
}]`

var (
	uniswapFactoryABI = evm.MustParseABI(uniswapFactoryABIJSON)
	uniswapPoolABI    = evm.MustParseABI(uniswapPoolABIJSON)
)

// UniswapSource quotes tokens from Uniswap V3 pools by reading slot0
// directly. The pool is discovered through the factory, scanning fee
// tiers against the chain's stable. Never assumes token ordering; the
// pool's token0 decides whether the price is inverted.
type UniswapSource struct {
	*exchange.Base
	resolver  exchange.TokenResolver
	chains    *chain.Set
	evm       *evm.Dialer
	factories map[int64]common.Address
}

// NewUniswapSource creates a new Uniswap V3 adapter. The optional
// "factory" config entry overrides the factory on every chain, for
// forks and test deployments.
func NewUniswapSource(cfg config.ExchangeConfig, deps exchange.Deps) (exchange.Adapter, error) {
	if deps.Resolver == nil {
		return nil, fmt.Errorf("uniswap: %w", ErrResolverRequired)
	}
	if deps.Chains == nil {
		return nil, fmt.Errorf("uniswap: %w", ErrChainsRequired)
	}
	if deps.EVM == nil {
		return nil, fmt.Errorf("uniswap: %w", ErrEVMRequired)
	}

	factories := uniswapFactories
	if override := cfg.GetString("factory", ""); override != "" {
		if !common.IsHexAddress(override) {
			return nil, fmt.Errorf("uniswap: invalid factory address %q", override)
		}
		factories = make(map[int64]common.Address, len(uniswapFactories))
		for id := range uniswapFactories {
			factories[id] = common.HexToAddress(override)
		}
	}

	limiter := exchange.NewLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	return &UniswapSource{
		Base:      exchange.NewBase("uniswap", exchange.CategoryDEX, deps.HTTP, limiter, deps.Logger),
		resolver:  deps.Resolver,
		chains:    deps.Chains,
		evm:       deps.EVM,
		factories: factories,
	}, nil
}

// Quote prices symbol against the chain's stable from the deepest
// matching fee tier.
func (s *UniswapSource) Quote(ctx context.Context, symbol string, chainID int64) exchange.Outcome {
	symbol = exchange.NormalizeSymbol(symbol)
	if err := s.Gate(ctx); err != nil {
		return exchange.Failure(s.Name(), err)
	}

	profile, err := s.chains.Resolve(chainID)
	if err != nil {
		return exchange.Failure(s.Name(), err)
	}
	chainID = profile.ID
	factory, ok := s.factories[chainID]
	if !ok {
		return exchange.Failure(s.Name(), fmt.Errorf("%w: chain %d", exchange.ErrUnsupportedChain, chainID))
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

	pool, err := s.findPool(ctx, client, factory, tokenAddr, stableAddr)
	if err != nil {
		return exchange.Failure(s.Name(), err)
	}

	out, err := client.Call(ctx, pool, uniswapPoolABI, "slot0")
	if err != nil {
		return exchange.Failure(s.Name(), fmt.Errorf("slot0: %w", err))
	}
	sqrtPriceX96, ok := out[0].(*big.Int)
	if !ok || sqrtPriceX96.Sign() == 0 {
		return exchange.Failure(s.Name(), exchange.ErrNoLiquidity)
	}

	out, err = client.Call(ctx, pool, uniswapPoolABI, "token0")
	if err != nil {
		return exchange.Failure(s.Name(), fmt.Errorf("token0: %w", err))
	}
	token0, ok := out[0].(common.Address)
	if !ok {
		return exchange.Failure(s.Name(), evm.ErrBadResultType)
	}

	var price decimal.Decimal
	if token0 == tokenAddr {
		price = priceFromSqrtX96(sqrtPriceX96, rec.Decimals, profile.StableDecimals, false)
	} else {
		price = priceFromSqrtX96(sqrtPriceX96, profile.StableDecimals, rec.Decimals, true)
	}
	if !price.IsPositive() {
		return exchange.Failure(s.Name(), exchange.ErrNoLiquidity)
	}

	quote := &exchange.Quote{
		Exchange:    s.Name(),
		Symbol:      symbol,
		Price:       price,
		Timestamp:   time.Now().UTC(),
		ChainID:     chainID,
		PoolAddress: pool.Hex(),
	}
	if out, err := client.Call(ctx, pool, uniswapPoolABI, "liquidity"); err == nil {
		if l, ok := out[0].(*big.Int); ok {
			quote.Liquidity = l.String()
		}
	}

	return exchange.Success(quote)
}

// findPool scans the fee tiers for an existing token/stable pool.
func (s *UniswapSource) findPool(ctx context.Context, client *evm.Client, factory, tokenAddr, stableAddr common.Address) (common.Address, error) {
	var lastErr error
	for _, fee := range uniswapFeeTiers {
		out, err := client.Call(ctx, factory, uniswapFactoryABI, "getPool", tokenAddr, stableAddr, big.NewInt(fee))
		if err != nil {
			lastErr = err
			continue
		}
		pool, ok := out[0].(common.Address)
		if !ok {
			lastErr = evm.ErrBadResultType
			continue
		}
		if pool != (common.Address{}) {
			return pool, nil
		}
	}
	if lastErr != nil {
		return common.Address{}, fmt.Errorf("getPool: %w", lastErr)
	}
	return common.Address{}, fmt.Errorf("%w: %s/%s", exchange.ErrNoPool, tokenAddr.Hex(), stableAddr.Hex())
}

// priceFromSqrtX96 converts a V3 sqrtPriceX96 into the human price of
// token0 denominated in token1. Set invert when the queried token is
// token1.
func priceFromSqrtX96(sqrtPriceX96 *big.Int, decimals0, decimals1 int, invert bool) decimal.Decimal {
	if sqrtPriceX96 == nil || sqrtPriceX96.Sign() <= 0 {
		return decimal.Zero
	}
	q96 := decimal.NewFromBigInt(new(big.Int).Lsh(big.NewInt(1), 96), 0)
	ratio := decimal.NewFromBigInt(sqrtPriceX96, 0).Div(q96)
	price := ratio.Mul(ratio).Mul(pow10(decimals0 - decimals1))
	if invert {
		if price.IsZero() {
			return decimal.Zero
		}
		price = decimal.NewFromInt(1).Div(price)
	}
	return price
}
