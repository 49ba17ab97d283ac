package dex

import (
	"context"
	"fmt"
	"time"

	"github.com/David200308/crypto-price-mcp-server/pkg/chain"
	"github.com/David200308/crypto-price-mcp-server/pkg/config"
	"github.com/David200308/crypto-price-mcp-server/pkg/exchange"
)

const (
	jupiterBaseURL = "https://quote-api.jup.ag"
	// jupiterSlippageBps is the nominal slippage of the probe swap. It
	// only shapes the route, the quote itself is pre-slippage.
	jupiterSlippageBps = 50
)

// jupiterStrategies covers the quote shapes across Jupiter API
// versions: v6 puts outAmount at the top level, v4 nested it in a data
// array.
var jupiterStrategies = []amountStrategy{
	topField("outAmount"),
	firstElemField("data", "outAmount"),
}

// mintReader reads SPL mint decimals from chain state.
type mintReader interface {
	MintDecimals(ctx context.Context, mint string) (int, error)
}

// JupiterSource quotes Solana tokens through the Jupiter aggregator:
// how much USDC does one whole token swap into. Mint decimals are read
// from the mint account itself when an RPC client is available, since
// registry answers for Solana often lack them.
type JupiterSource struct {
	*exchange.Base
	resolver exchange.TokenResolver
	chains   *chain.Set
	mints    mintReader
	baseURL  string
}

// NewJupiterSource creates a new Jupiter adapter.
func NewJupiterSource(cfg config.ExchangeConfig, deps exchange.Deps) (exchange.Adapter, error) {
	if deps.Resolver == nil {
		return nil, fmt.Errorf("jupiter: %w", ErrResolverRequired)
	}
	if deps.Chains == nil {
		return nil, fmt.Errorf("jupiter: %w", ErrChainsRequired)
	}

	baseURL := jupiterBaseURL
	if cfg.BaseURL != "" {
		baseURL = cfg.BaseURL
	}

	var mints mintReader
	if deps.Solana != nil {
		mints = deps.Solana
	}

	limiter := exchange.NewLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	return &JupiterSource{
		Base:     exchange.NewBase("jupiter", exchange.CategoryDEX, deps.HTTP, limiter, deps.Logger),
		resolver: deps.Resolver,
		chains:   deps.Chains,
		mints:    mints,
		baseURL:  baseURL,
	}, nil
}

// Quote asks Jupiter for the USDC proceeds of one whole token.
func (s *JupiterSource) Quote(ctx context.Context, symbol string, chainID int64) exchange.Outcome {
	symbol = exchange.NormalizeSymbol(symbol)
	if err := s.Gate(ctx); err != nil {
		return exchange.Failure(s.Name(), err)
	}

	chainID, err := pinChain(chainID, chain.IDSolana)
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

	decimals := rec.Decimals
	if s.mints != nil {
		if d, err := s.mints.MintDecimals(ctx, rec.Address); err == nil {
			decimals = d
		} else {
			s.Logger().Debug("Mint decimals read failed, using resolver value",
				"mint", rec.Address, "error", err.Error())
		}
	}

	url := fmt.Sprintf("%s/v6/quote?inputMint=%s&outputMint=%s&amount=%s&slippageBps=%d",
		s.baseURL, rec.Address, profile.Stable, unitAmount(decimals), jupiterSlippageBps)

	var body map[string]interface{}
	if err := s.HTTP().GetJSON(ctx, url, nil, &body); err != nil {
		return exchange.Failure(s.Name(), err)
	}

	raw, strategy, ok := runStrategies(body, jupiterStrategies)
	if !ok {
		return exchange.Failuref(s.Name(), "%s (tried %s)", exchange.ErrNoQuote, strategyNames(jupiterStrategies))
	}

	price, err := scaleAmount(raw, profile.StableDecimals)
	if err != nil {
		return exchange.Failure(s.Name(), err)
	}
	if !price.IsPositive() {
		return exchange.Failure(s.Name(), exchange.ErrNoLiquidity)
	}

	s.Logger().Debug("Jupiter quote extracted", "symbol", symbol, "strategy", strategy)
	return exchange.Success(&exchange.Quote{
		Exchange:  s.Name(),
		Symbol:    symbol,
		Price:     price,
		Timestamp: time.Now().UTC(),
		ChainID:   chainID,
	})
}
