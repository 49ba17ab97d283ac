// Package dex implements adapters for decentralized exchange venues in
// three shapes: aggregator quote APIs (1inch, 0x, Jupiter), direct
// on-chain pool reads (Uniswap V3, PancakeSwap V2, Curve), and indexer
// queries (SushiSwap subgraph, Raydium). All venues price the queried
// token against the chain's USD stable.
package dex

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/David200308/crypto-price-mcp-server/pkg/exchange"
)

// pinChain reconciles a requested chain with a venue-fixed one. A zero
// request means the caller did not pin a chain and gets the venue's.
func pinChain(requested, fixed int64) (int64, error) {
	if requested == 0 || requested == fixed {
		return fixed, nil
	}
	return 0, fmt.Errorf("%w: chain %d", exchange.ErrUnsupportedChain, requested)
}

// pow10 returns 10^n as a decimal. Negative n yields a fraction.
func pow10(n int) decimal.Decimal {
	return decimal.New(1, int32(n))
}

// unitAmount returns 10^decimals as a raw integer, the canonical probe
// size of one whole token.
func unitAmount(decimals int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
}

// scaleAmount converts a raw integer amount string to a human amount.
func scaleAmount(raw string, decimals int) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", exchange.ErrInvalidPrice, raw)
	}
	return d.Div(pow10(decimals)), nil
}
