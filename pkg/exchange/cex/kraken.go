package cex

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/David200308/crypto-price-mcp-server/pkg/config"
	"github.com/David200308/crypto-price-mcp-server/pkg/exchange"
)

const krakenBaseURL = "https://api.kraken.com"

// krakenSymbols maps common symbols to Kraken's legacy asset codes.
var krakenSymbols = map[string]string{
	"BTC":  "XBT",
	"DOGE": "XDG",
}

// KrakenSource fetches spot prices from the Kraken public ticker.
type KrakenSource struct {
	*exchange.Base
	baseURL string
}

// KrakenTicker is one pair entry in the Ticker result map.
type KrakenTicker struct {
	Close  []string `json:"c"` // [last trade price, lot volume]
	Volume []string `json:"v"` // [today, last 24h]
	Open   string   `json:"o"` // today's opening price
}

// KrakenResponse is the /0/public/Ticker envelope. The result is keyed
// by Kraken's internal pair name, which differs from the requested one.
type KrakenResponse struct {
	Error  []string                `json:"error"`
	Result map[string]KrakenTicker `json:"result"`
}

// NewKrakenSource creates a new Kraken adapter.
func NewKrakenSource(cfg config.ExchangeConfig, deps exchange.Deps) (exchange.Adapter, error) {
	baseURL := krakenBaseURL
	if cfg.BaseURL != "" {
		baseURL = cfg.BaseURL
	}
	limiter := exchange.NewLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	return &KrakenSource{
		Base:    exchange.NewBase("kraken", exchange.CategoryCEX, deps.HTTP, limiter, deps.Logger),
		baseURL: baseURL,
	}, nil
}

// Quote fetches the current price of symbol against USD.
func (s *KrakenSource) Quote(ctx context.Context, symbol string, _ int64) exchange.Outcome {
	symbol = exchange.NormalizeSymbol(symbol)
	if err := s.Gate(ctx); err != nil {
		return exchange.Failure(s.Name(), err)
	}

	pair := symbol
	if mapped, ok := krakenSymbols[symbol]; ok {
		pair = mapped
	}
	url := fmt.Sprintf("%s/0/public/Ticker?pair=%sUSD", s.baseURL, pair)

	var resp KrakenResponse
	if err := s.HTTP().GetJSON(ctx, url, nil, &resp); err != nil {
		return exchange.Failure(s.Name(), err)
	}
	if len(resp.Error) > 0 {
		return exchange.Failuref(s.Name(), "kraken error: %s", strings.Join(resp.Error, "; "))
	}

	var ticker KrakenTicker
	found := false
	for _, t := range resp.Result {
		ticker = t
		found = true
		break
	}
	if !found || len(ticker.Close) == 0 {
		return exchange.Failure(s.Name(), exchange.ErrNoQuote)
	}

	price, err := exchange.ParsePrice(ticker.Close[0])
	if err != nil {
		return exchange.Failure(s.Name(), err)
	}

	quote := &exchange.Quote{
		Exchange:  s.Name(),
		Symbol:    symbol,
		Price:     price,
		Timestamp: time.Now().UTC(),
		Change24h: exchange.PercentChange(price, ticker.Open),
	}
	if len(ticker.Volume) > 1 {
		quote.Volume24h = exchange.ParseOptional(ticker.Volume[1])
	}

	return exchange.Success(quote)
}
