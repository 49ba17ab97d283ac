package dex

import (
	"context"
	"fmt"
	"time"

	"github.com/David200308/crypto-price-mcp-server/pkg/chain"
	"github.com/David200308/crypto-price-mcp-server/pkg/config"
	"github.com/David200308/crypto-price-mcp-server/pkg/exchange"
)

const raydiumBaseURL = "https://api-v3.raydium.io"

// RaydiumSource quotes Solana tokens from the Raydium indexer's mint
// price endpoint, which reports USD prices keyed by mint address.
type RaydiumSource struct {
	*exchange.Base
	resolver exchange.TokenResolver
	baseURL  string
}

// raydiumPriceResponse is the /mint/price envelope. Prices arrive as
// strings keyed by the requested mints.
type raydiumPriceResponse struct {
	ID      string                 `json:"id"`
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data"`
}

// NewRaydiumSource creates a new Raydium adapter.
func NewRaydiumSource(cfg config.ExchangeConfig, deps exchange.Deps) (exchange.Adapter, error) {
	if deps.Resolver == nil {
		return nil, fmt.Errorf("raydium: %w", ErrResolverRequired)
	}

	baseURL := raydiumBaseURL
	if cfg.BaseURL != "" {
		baseURL = cfg.BaseURL
	}

	limiter := exchange.NewLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	return &RaydiumSource{
		Base:     exchange.NewBase("raydium", exchange.CategoryDEX, deps.HTTP, limiter, deps.Logger),
		resolver: deps.Resolver,
		baseURL:  baseURL,
	}, nil
}

// Quote reads the indexed USD price of the symbol's mint.
func (s *RaydiumSource) Quote(ctx context.Context, symbol string, chainID int64) exchange.Outcome {
	symbol = exchange.NormalizeSymbol(symbol)
	if err := s.Gate(ctx); err != nil {
		return exchange.Failure(s.Name(), err)
	}

	chainID, err := pinChain(chainID, chain.IDSolana)
	if err != nil {
		return exchange.Failure(s.Name(), err)
	}

	rec, err := s.resolver.Resolve(ctx, symbol, chainID)
	if err != nil {
		return exchange.Failure(s.Name(), fmt.Errorf("%w: %v", exchange.ErrTokenNotFound, err))
	}

	url := fmt.Sprintf("%s/mint/price?mints=%s", s.baseURL, rec.Address)

	var resp raydiumPriceResponse
	if err := s.HTTP().GetJSON(ctx, url, nil, &resp); err != nil {
		return exchange.Failure(s.Name(), err)
	}
	if !resp.Success {
		return exchange.Failuref(s.Name(), "raydium request %s failed", resp.ID)
	}

	raw, ok := stringField(resp.Data, rec.Address)
	if !ok {
		return exchange.Failure(s.Name(), fmt.Errorf("%w: mint %s not indexed", exchange.ErrNoQuote, rec.Address))
	}

	price, err := exchange.ParsePrice(raw)
	if err != nil {
		return exchange.Failure(s.Name(), err)
	}

	return exchange.Success(&exchange.Quote{
		Exchange:  s.Name(),
		Symbol:    symbol,
		Price:     price,
		Timestamp: time.Now().UTC(),
		ChainID:   chainID,
	})
}
