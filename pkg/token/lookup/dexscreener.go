package lookup

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/David200308/crypto-price-mcp-server/pkg/chain"
	"github.com/David200308/crypto-price-mcp-server/pkg/httpx"
	"github.com/David200308/crypto-price-mcp-server/pkg/token"
)

const dexscreenerBaseURL = "https://api.dexscreener.com"

// dexscreenerChains maps chain ids to DEX Screener chain slugs.
var dexscreenerChains = map[int64]string{
	chain.IDEthereum: "ethereum",
	chain.IDBSC:      "bsc",
	chain.IDPolygon:  "polygon",
	chain.IDArbitrum: "arbitrum",
	chain.IDBase:     "base",
	chain.IDSolana:   "solana",
}

// DexScreener resolves symbols from indexed DEX pairs, picking the
// deepest pool whose base token matches. No key needed; decimals are
// not reported.
type DexScreener struct {
	http    *httpx.Client
	baseURL string
}

// NewDexScreener creates the DEX Screener lookup source.
func NewDexScreener(client *httpx.Client, baseURL string) *DexScreener {
	if baseURL == "" {
		baseURL = dexscreenerBaseURL
	}
	return &DexScreener{http: client, baseURL: baseURL}
}

// Name returns the unique lookup source name.
func (d *DexScreener) Name() string { return "dexscreener" }

type dexscreenerSearch struct {
	Pairs []struct {
		ChainID   string `json:"chainId"`
		BaseToken struct {
			Address string `json:"address"`
			Name    string `json:"name"`
			Symbol  string `json:"symbol"`
		} `json:"baseToken"`
		Liquidity struct {
			USD float64 `json:"usd"`
		} `json:"liquidity"`
	} `json:"pairs"`
}

// Lookup searches indexed pairs and returns the base token of the
// deepest matching pool on the requested chain.
func (d *DexScreener) Lookup(ctx context.Context, symbol string, chainID int64) (*token.Record, error) {
	slug, ok := dexscreenerChains[chainID]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedChain, chainID)
	}

	var search dexscreenerSearch
	searchURL := fmt.Sprintf("%s/latest/dex/search?q=%s", d.baseURL, url.QueryEscape(symbol))
	if err := d.http.GetJSON(ctx, searchURL, nil, &search); err != nil {
		return nil, fmt.Errorf("dexscreener search: %w", err)
	}

	var best *token.Record
	bestLiquidity := -1.0
	for _, pair := range search.Pairs {
		if pair.ChainID != slug || !strings.EqualFold(pair.BaseToken.Symbol, symbol) {
			continue
		}
		if pair.Liquidity.USD > bestLiquidity {
			bestLiquidity = pair.Liquidity.USD
			best = &token.Record{
				Address:  pair.BaseToken.Address,
				Decimals: token.DecimalsUnknown,
				Name:     pair.BaseToken.Name,
			}
		}
	}
	if best == nil {
		return nil, fmt.Errorf("%w: %s on %s", ErrNoMatch, symbol, slug)
	}
	return best, nil
}
