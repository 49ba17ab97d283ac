package dex

import (
	"github.com/David200308/crypto-price-mcp-server/pkg/exchange"
)

func init() {
	// Register all DEX adapters
	exchange.Register("uniswap", NewUniswapSource)
	exchange.Register("pancakeswap", NewPancakeSwapSource)
	exchange.Register("curve", NewCurveSource)
	exchange.Register("sushiswap", NewSushiSwapSource)
	exchange.Register("oneinch", NewOneInchSource)
	exchange.Register("zerox", NewZeroxSource)
	exchange.Register("jupiter", NewJupiterSource)
	exchange.Register("raydium", NewRaydiumSource)
}
