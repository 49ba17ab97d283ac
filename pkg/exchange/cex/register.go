package cex

import (
	"github.com/David200308/crypto-price-mcp-server/pkg/exchange"
)

func init() {
	// Register all CEX adapters
	exchange.Register("binance", NewBinanceSource)
	exchange.Register("coinbase", NewCoinbaseSource)
	exchange.Register("kraken", NewKrakenSource)
	exchange.Register("okx", NewOKXSource)
}
