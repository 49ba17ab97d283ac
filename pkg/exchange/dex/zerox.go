package dex

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/David200308/crypto-price-mcp-server/pkg/chain"
	"github.com/David200308/crypto-price-mcp-server/pkg/config"
	"github.com/David200308/crypto-price-mcp-server/pkg/exchange"
)

// zeroxHosts maps chain ids to the per-chain 0x API hosts.
var zeroxHosts = map[int64]string{
	chain.IDEthereum: "https://api.0x.org",
	chain.IDBSC:      "https://bsc.api.0x.org",
	chain.IDPolygon:  "https://polygon.api.0x.org",
	chain.IDArbitrum: "https://arbitrum.api.0x.org",
	chain.IDBase:     "https://base.api.0x.org",
}

// zeroxStrategies covers the two price spellings of the 0x price
// endpoint. buyAmount is the raw stable amount; price is already human.
var zeroxStrategies = []amountStrategy{
	topField("buyAmount"),
	topField("price"),
}

// ZeroxSource quotes tokens through the 0x swap price API.
type ZeroxSource struct {
	*exchange.Base
	resolver     exchange.TokenResolver
	chains       *chain.Set
	hostOverride string
	apiKey       string
}

// NewZeroxSource creates a new 0x adapter. A BaseURL override replaces
// the per-chain host on every chain.
func NewZeroxSource(cfg config.ExchangeConfig, deps exchange.Deps) (exchange.Adapter, error) {
	if deps.Resolver == nil {
		return nil, fmt.Errorf("zerox: %w", ErrResolverRequired)
	}
	if deps.Chains == nil {
		return nil, fmt.Errorf("zerox: %w", ErrChainsRequired)
	}

	limiter := exchange.NewLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	return &ZeroxSource{
		Base:         exchange.NewBase("zerox", exchange.CategoryDEX, deps.HTTP, limiter, deps.Logger),
		resolver:     deps.Resolver,
		chains:       deps.Chains,
		hostOverride: cfg.BaseURL,
		apiKey:       cfg.APIKey,
	}, nil
}

// Quote asks 0x for the stable proceeds of selling one whole token.
func (s *ZeroxSource) Quote(ctx context.Context, symbol string, chainID int64) exchange.Outcome {
	symbol = exchange.NormalizeSymbol(symbol)
	if err := s.Gate(ctx); err != nil {
		return exchange.Failure(s.Name(), err)
	}

	profile, err := s.chains.Resolve(chainID)
	if err != nil {
		return exchange.Failure(s.Name(), err)
	}
	chainID = profile.ID
	host, ok := zeroxHosts[chainID]
	if !ok {
		return exchange.Failure(s.Name(), fmt.Errorf("%w: chain %d", exchange.ErrUnsupportedChain, chainID))
	}
	if s.hostOverride != "" {
		host = s.hostOverride
	}

	rec, err := s.resolver.Resolve(ctx, symbol, chainID)
	if err != nil {
		return exchange.Failure(s.Name(), fmt.Errorf("%w: %v", exchange.ErrTokenNotFound, err))
	}

	url := fmt.Sprintf("%s/swap/v1/price?sellToken=%s&buyToken=%s&sellAmount=%s",
		host, rec.Address, profile.Stable, unitAmount(rec.Decimals))

	var body map[string]interface{}
	if err := s.HTTP().GetJSON(ctx, url, s.header(), &body); err != nil {
		return exchange.Failure(s.Name(), err)
	}

	raw, strategy, ok := runStrategies(body, zeroxStrategies)
	if !ok {
		return exchange.Failuref(s.Name(), "%s (tried %s)", exchange.ErrNoQuote, strategyNames(zeroxStrategies))
	}

	var price decimal.Decimal
	if strategy == "price" {
		// The price field is already a human rate
		price, err = exchange.ParsePrice(raw)
	} else {
		price, err = scaleAmount(raw, profile.StableDecimals)
	}
	if err != nil {
		return exchange.Failure(s.Name(), err)
	}
	if !price.IsPositive() {
		return exchange.Failure(s.Name(), exchange.ErrNoLiquidity)
	}

	s.Logger().Debug("0x quote extracted", "symbol", symbol, "strategy", strategy)
	return exchange.Success(&exchange.Quote{
		Exchange:  s.Name(),
		Symbol:    symbol,
		Price:     price,
		Timestamp: time.Now().UTC(),
		ChainID:   chainID,
	})
}

func (s *ZeroxSource) header() http.Header {
	if s.apiKey == "" {
		return nil
	}
	h := make(http.Header)
	h.Set("0x-api-key", s.apiKey)
	return h
}
