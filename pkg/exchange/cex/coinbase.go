package cex

import (
	"context"
	"fmt"
	"time"

	"github.com/David200308/crypto-price-mcp-server/pkg/config"
	"github.com/David200308/crypto-price-mcp-server/pkg/exchange"
)

const coinbaseBaseURL = "https://api.exchange.coinbase.com"

// CoinbaseSource fetches spot prices from the Coinbase Exchange product
// ticker. Coinbase does not report a 24h change on this endpoint.
type CoinbaseSource struct {
	*exchange.Base
	baseURL string
}

// CoinbaseTicker is the /products/{pair}/ticker response.
type CoinbaseTicker struct {
	Price  string `json:"price"`  // last trade price
	Volume string `json:"volume"` // 24h base volume
	Time   string `json:"time"`   // RFC3339 trade time
}

// NewCoinbaseSource creates a new Coinbase adapter.
func NewCoinbaseSource(cfg config.ExchangeConfig, deps exchange.Deps) (exchange.Adapter, error) {
	baseURL := coinbaseBaseURL
	if cfg.BaseURL != "" {
		baseURL = cfg.BaseURL
	}
	limiter := exchange.NewLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	return &CoinbaseSource{
		Base:    exchange.NewBase("coinbase", exchange.CategoryCEX, deps.HTTP, limiter, deps.Logger),
		baseURL: baseURL,
	}, nil
}

// Quote fetches the current price of symbol against USD.
func (s *CoinbaseSource) Quote(ctx context.Context, symbol string, _ int64) exchange.Outcome {
	symbol = exchange.NormalizeSymbol(symbol)
	if err := s.Gate(ctx); err != nil {
		return exchange.Failure(s.Name(), err)
	}

	url := fmt.Sprintf("%s/products/%s-USD/ticker", s.baseURL, symbol)

	var ticker CoinbaseTicker
	if err := s.HTTP().GetJSON(ctx, url, nil, &ticker); err != nil {
		return exchange.Failure(s.Name(), err)
	}

	price, err := exchange.ParsePrice(ticker.Price)
	if err != nil {
		return exchange.Failure(s.Name(), err)
	}

	return exchange.Success(&exchange.Quote{
		Exchange:  s.Name(),
		Symbol:    symbol,
		Price:     price,
		Timestamp: time.Now().UTC(),
		Volume24h: exchange.ParseOptional(ticker.Volume),
	})
}
