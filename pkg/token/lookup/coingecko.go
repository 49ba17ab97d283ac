package lookup

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/David200308/crypto-price-mcp-server/pkg/chain"
	"github.com/David200308/crypto-price-mcp-server/pkg/httpx"
	"github.com/David200308/crypto-price-mcp-server/pkg/token"
)

const coingeckoBaseURL = "https://api.coingecko.com"

// coingeckoPlatforms maps chain ids to CoinGecko platform slugs.
var coingeckoPlatforms = map[int64]string{
	chain.IDEthereum: "ethereum",
	chain.IDBSC:      "binance-smart-chain",
	chain.IDPolygon:  "polygon-pos",
	chain.IDArbitrum: "arbitrum-one",
	chain.IDBase:     "base",
	chain.IDSolana:   "solana",
}

// CoinGecko resolves symbols via the CoinGecko search and coin detail
// endpoints. Works without a key; a demo key raises the rate limit.
type CoinGecko struct {
	http    *httpx.Client
	apiKey  string
	baseURL string
}

// NewCoinGecko creates the CoinGecko lookup source. An empty baseURL
// selects the public API.
func NewCoinGecko(client *httpx.Client, apiKey, baseURL string) *CoinGecko {
	if baseURL == "" {
		baseURL = coingeckoBaseURL
	}
	return &CoinGecko{http: client, apiKey: apiKey, baseURL: baseURL}
}

// Name returns the unique lookup source name.
func (c *CoinGecko) Name() string { return "coingecko" }

type coingeckoSearch struct {
	Coins []struct {
		ID     string `json:"id"`
		Symbol string `json:"symbol"`
		Name   string `json:"name"`
	} `json:"coins"`
}

type coingeckoCoin struct {
	Name            string            `json:"name"`
	Platforms       map[string]string `json:"platforms"`
	DetailPlatforms map[string]struct {
		DecimalPlace    int    `json:"decimal_place"`
		ContractAddress string `json:"contract_address"`
	} `json:"detail_platforms"`
}

// Lookup searches for the symbol and reads the matching coin's contract
// address on the requested chain.
func (c *CoinGecko) Lookup(ctx context.Context, symbol string, chainID int64) (*token.Record, error) {
	platform, ok := coingeckoPlatforms[chainID]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedChain, chainID)
	}

	var search coingeckoSearch
	searchURL := fmt.Sprintf("%s/api/v3/search?query=%s", c.baseURL, url.QueryEscape(symbol))
	if err := c.http.GetJSON(ctx, searchURL, c.header(), &search); err != nil {
		return nil, fmt.Errorf("coingecko search: %w", err)
	}

	coinID := ""
	for _, coin := range search.Coins {
		if strings.EqualFold(coin.Symbol, symbol) {
			coinID = coin.ID
			break
		}
	}
	if coinID == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoMatch, symbol)
	}

	var coin coingeckoCoin
	coinURL := fmt.Sprintf("%s/api/v3/coins/%s?localization=false&tickers=false&market_data=false&community_data=false&developer_data=false", c.baseURL, url.PathEscape(coinID))
	if err := c.http.GetJSON(ctx, coinURL, c.header(), &coin); err != nil {
		return nil, fmt.Errorf("coingecko coin detail: %w", err)
	}

	address := coin.Platforms[platform]
	if address == "" {
		return nil, fmt.Errorf("%w: %s has no contract on %s", ErrNoMatch, symbol, platform)
	}

	decimals := token.DecimalsUnknown
	if detail, ok := coin.DetailPlatforms[platform]; ok && detail.DecimalPlace > 0 {
		decimals = detail.DecimalPlace
	}

	return &token.Record{
		Address:  address,
		Decimals: decimals,
		Name:     coin.Name,
	}, nil
}

func (c *CoinGecko) header() http.Header {
	if c.apiKey == "" {
		return nil
	}
	h := make(http.Header)
	h.Set("x-cg-demo-api-key", c.apiKey)
	return h
}
