package dex

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/David200308/crypto-price-mcp-server/pkg/chain"
	"github.com/David200308/crypto-price-mcp-server/pkg/config"
	"github.com/David200308/crypto-price-mcp-server/pkg/exchange"
)

const sushiswapBaseURL = "https://api.thegraph.com/subgraphs/name/sushiswap/exchange"

// sushiswapQuery reads a token's ETH-derived price and the current ETH
// price in one round trip. Subgraph ids are lowercase addresses.
const sushiswapQuery = `query ($id: ID!) {
  token(id: $id) { id symbol derivedETH }
  bundle(id: "1") { ethPrice }
}`

// SushiSwapSource quotes tokens from the SushiSwap exchange subgraph.
// The USD price is derivedETH times the bundle ETH price. The default
// subgraph indexes mainnet.
type SushiSwapSource struct {
	*exchange.Base
	resolver exchange.TokenResolver
	baseURL  string
}

type sushiswapResponse struct {
	Data struct {
		Token *struct {
			ID         string `json:"id"`
			Symbol     string `json:"symbol"`
			DerivedETH string `json:"derivedETH"`
		} `json:"token"`
		Bundle *struct {
			ETHPrice string `json:"ethPrice"`
		} `json:"bundle"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// NewSushiSwapSource creates a new SushiSwap adapter.
func NewSushiSwapSource(cfg config.ExchangeConfig, deps exchange.Deps) (exchange.Adapter, error) {
	if deps.Resolver == nil {
		return nil, fmt.Errorf("sushiswap: %w", ErrResolverRequired)
	}

	baseURL := sushiswapBaseURL
	if cfg.BaseURL != "" {
		baseURL = cfg.BaseURL
	}

	limiter := exchange.NewLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	return &SushiSwapSource{
		Base:     exchange.NewBase("sushiswap", exchange.CategoryDEX, deps.HTTP, limiter, deps.Logger),
		resolver: deps.Resolver,
		baseURL:  baseURL,
	}, nil
}

// Quote reads the subgraph's derived USD price for the symbol.
func (s *SushiSwapSource) Quote(ctx context.Context, symbol string, chainID int64) exchange.Outcome {
	symbol = exchange.NormalizeSymbol(symbol)
	if err := s.Gate(ctx); err != nil {
		return exchange.Failure(s.Name(), err)
	}

	chainID, err := pinChain(chainID, chain.IDEthereum)
	if err != nil {
		return exchange.Failure(s.Name(), err)
	}

	rec, err := s.resolver.Resolve(ctx, symbol, chainID)
	if err != nil {
		return exchange.Failure(s.Name(), fmt.Errorf("%w: %v", exchange.ErrTokenNotFound, err))
	}

	payload := map[string]interface{}{
		"query": sushiswapQuery,
		"variables": map[string]string{
			"id": strings.ToLower(rec.Address),
		},
	}

	var resp sushiswapResponse
	if err := s.HTTP().PostJSON(ctx, s.baseURL, nil, payload, &resp); err != nil {
		return exchange.Failure(s.Name(), err)
	}
	if len(resp.Errors) > 0 {
		return exchange.Failuref(s.Name(), "subgraph error: %s", resp.Errors[0].Message)
	}
	if resp.Data.Token == nil {
		return exchange.Failure(s.Name(), fmt.Errorf("%w: %s not indexed", exchange.ErrNoQuote, symbol))
	}
	if resp.Data.Bundle == nil {
		return exchange.Failure(s.Name(), fmt.Errorf("%w: missing ETH price bundle", exchange.ErrNoQuote))
	}

	derived, err := exchange.ParsePrice(resp.Data.Token.DerivedETH)
	if err != nil {
		return exchange.Failure(s.Name(), fmt.Errorf("%w: derivedETH %q", exchange.ErrNoLiquidity, resp.Data.Token.DerivedETH))
	}
	ethPrice, err := exchange.ParsePrice(resp.Data.Bundle.ETHPrice)
	if err != nil {
		return exchange.Failure(s.Name(), fmt.Errorf("%w: ethPrice %q", exchange.ErrInvalidPrice, resp.Data.Bundle.ETHPrice))
	}

	return exchange.Success(&exchange.Quote{
		Exchange:  s.Name(),
		Symbol:    symbol,
		Price:     derived.Mul(ethPrice),
		Timestamp: time.Now().UTC(),
		ChainID:   chainID,
	})
}
