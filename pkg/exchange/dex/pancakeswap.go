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

// pancakeFactoryAddress is the PancakeSwap V2 factory on BSC.
const pancakeFactoryAddress = "0xcA143Ce32Fe78f1f7019d7d551a6402fC5350c73"

// PancakeSwap V2 factory ABI (only getPair).
const pancakeFactoryABIJSON = `[{
	"constant": true,
	"inputs": [
		{"internalType": "address", "name": "tokenA", "type": "address"},
		{"internalType": "address", "name": "tokenB", "type": "address"}
	],
	"name": "getPair",
	"outputs": [{"internalType": "address", "name": "pair", "type": "address"}],
	"payable": false,
	"stateMutability": "view",
	"type": "function"
}]`

// Uniswap V2 pair ABI (getReserves and token0).
const pancakePairABIJSON = `[{
	"constant": true,
	"inputs": [],
	"name": "getReserves",
	"outputs": [
		{"internalType": "uint112", "name": "reserve0", "type": "uint112"},
		{"internalType": "uint112", "name": "reserve1", "type": "uint112"},
		{"internalType": "uint32", "name": "blockTimestampLast", "type": "uint32"}
	],
	"payable": false,
	"stateMutability": "view",
	"type": "function"
}, {
	"constant": true,
	"inputs": [],
	"name": "token0",
	"outputs": [{"internalType": "address", "name": "", "type": "address"}],
	"payable": false,
	"stateMutability": "view",
	"type": "function"
}]`

var (
	pancakeFactoryABI = evm.MustParseABI(pancakeFactoryABIJSON)
	pancakePairABI    = evm.MustParseABI(pancakePairABIJSON)
)

// PancakeSwapSource quotes tokens from PancakeSwap V2 pair reserves on
// BSC. The venue is fixed to BSC; other chains are rejected.
type PancakeSwapSource struct {
	*exchange.Base
	resolver exchange.TokenResolver
	chains   *chain.Set
	evm      *evm.Dialer
	factory  common.Address
}

// NewPancakeSwapSource creates a new PancakeSwap adapter.
func NewPancakeSwapSource(cfg config.ExchangeConfig, deps exchange.Deps) (exchange.Adapter, error) {
	if deps.Resolver == nil {
		return nil, fmt.Errorf("pancakeswap: %w", ErrResolverRequired)
	}
	if deps.Chains == nil {
		return nil, fmt.Errorf("pancakeswap: %w", ErrChainsRequired)
	}
	if deps.EVM == nil {
		return nil, fmt.Errorf("pancakeswap: %w", ErrEVMRequired)
	}

	factory := cfg.GetString("factory", pancakeFactoryAddress)
	if !common.IsHexAddress(factory) {
		return nil, fmt.Errorf("pancakeswap: invalid factory address %q", factory)
	}

	limiter := exchange.NewLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	return &PancakeSwapSource{
		Base:     exchange.NewBase("pancakeswap", exchange.CategoryDEX, deps.HTTP, limiter, deps.Logger),
		resolver: deps.Resolver,
		chains:   deps.Chains,
		evm:      deps.EVM,
		factory:  common.HexToAddress(factory),
	}, nil
}

// Quote prices symbol against the BSC stable from pair reserves.
func (s *PancakeSwapSource) Quote(ctx context.Context, symbol string, chainID int64) exchange.Outcome {
	symbol = exchange.NormalizeSymbol(symbol)
	if err := s.Gate(ctx); err != nil {
		return exchange.Failure(s.Name(), err)
	}

	chainID, err := pinChain(chainID, chain.IDBSC)
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

	out, err := client.Call(ctx, s.factory, pancakeFactoryABI, "getPair", tokenAddr, stableAddr)
	if err != nil {
		return exchange.Failure(s.Name(), fmt.Errorf("getPair: %w", err))
	}
	pair, ok := out[0].(common.Address)
	if !ok {
		return exchange.Failure(s.Name(), evm.ErrBadResultType)
	}
	if pair == (common.Address{}) {
		return exchange.Failure(s.Name(), fmt.Errorf("%w: %s/%s", exchange.ErrNoPool, symbol, profile.StableSymbol))
	}

	out, err = client.Call(ctx, pair, pancakePairABI, "getReserves")
	if err != nil {
		return exchange.Failure(s.Name(), fmt.Errorf("getReserves: %w", err))
	}
	reserve0, ok0 := out[0].(*big.Int)
	reserve1, ok1 := out[1].(*big.Int)
	if !ok0 || !ok1 {
		return exchange.Failure(s.Name(), evm.ErrBadResultType)
	}

	out, err = client.Call(ctx, pair, pancakePairABI, "token0")
	if err != nil {
		return exchange.Failure(s.Name(), fmt.Errorf("token0: %w", err))
	}
	token0, ok := out[0].(common.Address)
	if !ok {
		return exchange.Failure(s.Name(), evm.ErrBadResultType)
	}

	// Orient the reserves so the queried token is the base
	tokenReserve, stableReserve := reserve0, reserve1
	if token0 != tokenAddr {
		tokenReserve, stableReserve = reserve1, reserve0
	}

	price := priceFromReserves(tokenReserve, stableReserve, rec.Decimals, profile.StableDecimals)
	if !price.IsPositive() {
		return exchange.Failure(s.Name(), exchange.ErrNoLiquidity)
	}

	stableDepth := decimal.NewFromBigInt(stableReserve, 0).Div(pow10(profile.StableDecimals))
	return exchange.Success(&exchange.Quote{
		Exchange:    s.Name(),
		Symbol:      symbol,
		Price:       price,
		Timestamp:   time.Now().UTC(),
		ChainID:     chainID,
		PoolAddress: pair.Hex(),
		Liquidity:   stableDepth.String(),
	})
}

// priceFromReserves calculates the V2 spot price of the base token in
// quote units: (quoteReserve / 10^quoteDecimals) / (baseReserve /
// 10^baseDecimals).
func priceFromReserves(baseReserve, quoteReserve *big.Int, baseDecimals, quoteDecimals int) decimal.Decimal {
	if baseReserve == nil || quoteReserve == nil || baseReserve.Sign() == 0 || quoteReserve.Sign() == 0 {
		return decimal.Zero
	}
	base := decimal.NewFromBigInt(baseReserve, 0).Div(pow10(baseDecimals))
	quote := decimal.NewFromBigInt(quoteReserve, 0).Div(pow10(quoteDecimals))
	return quote.Div(base)
}
