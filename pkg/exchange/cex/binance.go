// Package cex implements adapters for centralized exchanges. Every
// venue quotes against a USD stablecoin book and is chain-agnostic.
package cex

import (
	"context"
	"fmt"
	"time"

	"github.com/David200308/crypto-price-mcp-server/pkg/config"
	"github.com/David200308/crypto-price-mcp-server/pkg/exchange"
)

const binanceBaseURL = "https://api.binance.com"

// BinanceSource fetches spot prices from the Binance 24hr ticker.
type BinanceSource struct {
	*exchange.Base
	baseURL string
}

// BinanceTicker is the /api/v3/ticker/24hr response.
type BinanceTicker struct {
	Symbol             string `json:"symbol"`             // e.g. "BTCUSDT"
	LastPrice          string `json:"lastPrice"`          // string decimal
	PriceChangePercent string `json:"priceChangePercent"` // 24h change, e.g. "-1.23"
	Volume             string `json:"volume"`             // 24h base asset volume
}

// NewBinanceSource creates a new Binance adapter.
func NewBinanceSource(cfg config.ExchangeConfig, deps exchange.Deps) (exchange.Adapter, error) {
	baseURL := binanceBaseURL
	if cfg.BaseURL != "" {
		baseURL = cfg.BaseURL
	}
	limiter := exchange.NewLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	return &BinanceSource{
		Base:    exchange.NewBase("binance", exchange.CategoryCEX, deps.HTTP, limiter, deps.Logger),
		baseURL: baseURL,
	}, nil
}

// Quote fetches the current price of symbol against USDT.
func (s *BinanceSource) Quote(ctx context.Context, symbol string, _ int64) exchange.Outcome {
	symbol = exchange.NormalizeSymbol(symbol)
	if err := s.Gate(ctx); err != nil {
		return exchange.Failure(s.Name(), err)
	}

	url := fmt.Sprintf("%s/api/v3/ticker/24hr?symbol=%sUSDT", s.baseURL, symbol)

	var ticker BinanceTicker
	if err := s.HTTP().GetJSON(ctx, url, nil, &ticker); err != nil {
		return exchange.Failure(s.Name(), err)
	}

	price, err := exchange.ParsePrice(ticker.LastPrice)
	if err != nil {
		return exchange.Failure(s.Name(), err)
	}

	return exchange.Success(&exchange.Quote{
		Exchange:  s.Name(),
		Symbol:    symbol,
		Price:     price,
		Timestamp: time.Now().UTC(),
		Volume24h: exchange.ParseOptional(ticker.Volume),
		Change24h: exchange.ParseOptional(ticker.PriceChangePercent),
	})
}
