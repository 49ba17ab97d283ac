package dex

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/David200308/crypto-price-mcp-server/pkg/chain"
	"github.com/David200308/crypto-price-mcp-server/pkg/config"
	"github.com/David200308/crypto-price-mcp-server/pkg/exchange"
)

const (
	// oneinchPublicBaseURL is the keyless legacy API.
	oneinchPublicBaseURL = "https://api.1inch.io/v5.0"
	// oneinchPortalBaseURL is the keyed developer portal API.
	oneinchPortalBaseURL = "https://api.1inch.dev/swap/v6.0"
)

// oneinchChains lists the chains the 1inch router serves.
var oneinchChains = map[int64]bool{
	chain.IDEthereum: true,
	chain.IDBSC:      true,
	chain.IDPolygon:  true,
	chain.IDArbitrum: true,
	chain.IDBase:     true,
}

// oneinchStrategies covers the amount field renames across 1inch API
// versions, newest first.
var oneinchStrategies = []amountStrategy{
	topField("dstAmount"),
	topField("toAmount"),
	topField("toTokenAmount"),
}

// OneInchSource quotes tokens through the 1inch aggregator quote API:
// how much stable does one whole token swap into. Works keyless on the
// legacy API; an API key switches to the developer portal.
type OneInchSource struct {
	*exchange.Base
	resolver exchange.TokenResolver
	chains   *chain.Set
	baseURL  string
	apiKey   string
	keyed    bool
}

// NewOneInchSource creates a new 1inch adapter.
func NewOneInchSource(cfg config.ExchangeConfig, deps exchange.Deps) (exchange.Adapter, error) {
	if deps.Resolver == nil {
		return nil, fmt.Errorf("oneinch: %w", ErrResolverRequired)
	}
	if deps.Chains == nil {
		return nil, fmt.Errorf("oneinch: %w", ErrChainsRequired)
	}

	keyed := cfg.APIKey != ""
	baseURL := oneinchPublicBaseURL
	if keyed {
		baseURL = oneinchPortalBaseURL
	}
	if cfg.BaseURL != "" {
		baseURL = cfg.BaseURL
	}

	limiter := exchange.NewLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	return &OneInchSource{
		Base:     exchange.NewBase("oneinch", exchange.CategoryDEX, deps.HTTP, limiter, deps.Logger),
		resolver: deps.Resolver,
		chains:   deps.Chains,
		baseURL:  baseURL,
		apiKey:   cfg.APIKey,
		keyed:    keyed,
	}, nil
}

// Quote asks the aggregator for the stable proceeds of one whole token.
func (s *OneInchSource) Quote(ctx context.Context, symbol string, chainID int64) exchange.Outcome {
	symbol = exchange.NormalizeSymbol(symbol)
	if err := s.Gate(ctx); err != nil {
		return exchange.Failure(s.Name(), err)
	}

	profile, err := s.chains.Resolve(chainID)
	if err != nil {
		return exchange.Failure(s.Name(), err)
	}
	chainID = profile.ID
	if !oneinchChains[chainID] {
		return exchange.Failure(s.Name(), fmt.Errorf("%w: chain %d", exchange.ErrUnsupportedChain, chainID))
	}

	rec, err := s.resolver.Resolve(ctx, symbol, chainID)
	if err != nil {
		return exchange.Failure(s.Name(), fmt.Errorf("%w: %v", exchange.ErrTokenNotFound, err))
	}

	amount := unitAmount(rec.Decimals)
	var url string
	if s.keyed {
		url = fmt.Sprintf("%s/%d/quote?src=%s&dst=%s&amount=%s",
			s.baseURL, chainID, rec.Address, profile.Stable, amount)
	} else {
		url = fmt.Sprintf("%s/%d/quote?fromTokenAddress=%s&toTokenAddress=%s&amount=%s",
			s.baseURL, chainID, rec.Address, profile.Stable, amount)
	}

	var body map[string]interface{}
	if err := s.HTTP().GetJSON(ctx, url, s.header(), &body); err != nil {
		return exchange.Failure(s.Name(), err)
	}

	raw, strategy, ok := runStrategies(body, oneinchStrategies)
	if !ok {
		return exchange.Failuref(s.Name(), "%s (tried %s)", exchange.ErrNoQuote, strategyNames(oneinchStrategies))
	}

	price, err := scaleAmount(raw, profile.StableDecimals)
	if err != nil {
		return exchange.Failure(s.Name(), err)
	}
	if !price.IsPositive() {
		return exchange.Failure(s.Name(), exchange.ErrNoLiquidity)
	}

	s.Logger().Debug("1inch quote extracted", "symbol", symbol, "strategy", strategy)
	return exchange.Success(&exchange.Quote{
		Exchange:  s.Name(),
		Symbol:    symbol,
		Price:     price,
		Timestamp: time.Now().UTC(),
		ChainID:   chainID,
	})
}

func (s *OneInchSource) header() http.Header {
	if s.apiKey == "" {
		return nil
	}
	h := make(http.Header)
	h.Set("Authorization", "Bearer "+s.apiKey)
	return h
}
