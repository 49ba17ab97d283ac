package cex

import (
	"context"
	"fmt"
	"time"

	"github.com/David200308/crypto-price-mcp-server/pkg/config"
	"github.com/David200308/crypto-price-mcp-server/pkg/exchange"
)

const okxBaseURL = "https://www.okx.com"

// OKXSource fetches spot prices from the OKX market ticker.
type OKXSource struct {
	*exchange.Base
	baseURL string
}

// OKXTicker is one instrument entry in the ticker data array.
type OKXTicker struct {
	InstID  string `json:"instId"`  // e.g. "BTC-USDT"
	Last    string `json:"last"`    // last traded price
	Open24h string `json:"open24h"` // price 24h ago
	Vol24h  string `json:"vol24h"`  // 24h base volume
}

// OKXResponse is the /api/v5/market/ticker envelope. OKX signals errors
// in-band with a non-zero code and a 200 status.
type OKXResponse struct {
	Code string      `json:"code"`
	Msg  string      `json:"msg"`
	Data []OKXTicker `json:"data"`
}

// NewOKXSource creates a new OKX adapter.
func NewOKXSource(cfg config.ExchangeConfig, deps exchange.Deps) (exchange.Adapter, error) {
	baseURL := okxBaseURL
	if cfg.BaseURL != "" {
		baseURL = cfg.BaseURL
	}
	limiter := exchange.NewLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	return &OKXSource{
		Base:    exchange.NewBase("okx", exchange.CategoryCEX, deps.HTTP, limiter, deps.Logger),
		baseURL: baseURL,
	}, nil
}

// Quote fetches the current price of symbol against USDT.
func (s *OKXSource) Quote(ctx context.Context, symbol string, _ int64) exchange.Outcome {
	symbol = exchange.NormalizeSymbol(symbol)
	if err := s.Gate(ctx); err != nil {
		return exchange.Failure(s.Name(), err)
	}

	url := fmt.Sprintf("%s/api/v5/market/ticker?instId=%s-USDT", s.baseURL, symbol)

	var resp OKXResponse
	if err := s.HTTP().GetJSON(ctx, url, nil, &resp); err != nil {
		return exchange.Failure(s.Name(), err)
	}
	if resp.Code != "0" {
		return exchange.Failuref(s.Name(), "okx error %s: %s", resp.Code, resp.Msg)
	}
	if len(resp.Data) == 0 {
		return exchange.Failure(s.Name(), exchange.ErrNoQuote)
	}

	ticker := resp.Data[0]
	price, err := exchange.ParsePrice(ticker.Last)
	if err != nil {
		return exchange.Failure(s.Name(), err)
	}

	return exchange.Success(&exchange.Quote{
		Exchange:  s.Name(),
		Symbol:    symbol,
		Price:     price,
		Timestamp: time.Now().UTC(),
		Volume24h: exchange.ParseOptional(ticker.Vol24h),
		Change24h: exchange.PercentChange(price, ticker.Open24h),
	})
}
