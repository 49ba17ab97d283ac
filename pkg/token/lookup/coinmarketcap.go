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

const coinmarketcapBaseURL = "https://pro-api.coinmarketcap.com"

// coinmarketcapSlugs maps chain ids to CMC platform coin slugs.
var coinmarketcapSlugs = map[int64]string{
	chain.IDEthereum: "ethereum",
	chain.IDBSC:      "bnb",
	chain.IDPolygon:  "polygon",
	chain.IDArbitrum: "arbitrum",
	chain.IDBase:     "base",
	chain.IDSolana:   "solana",
}

// CoinMarketCap resolves symbols via the CMC metadata endpoint. The
// endpoint requires an API key; unkeyed deployments skip this source.
// CMC does not report token decimals.
type CoinMarketCap struct {
	http    *httpx.Client
	apiKey  string
	baseURL string
}

// NewCoinMarketCap creates the CMC lookup source.
func NewCoinMarketCap(client *httpx.Client, apiKey, baseURL string) *CoinMarketCap {
	if baseURL == "" {
		baseURL = coinmarketcapBaseURL
	}
	return &CoinMarketCap{http: client, apiKey: apiKey, baseURL: baseURL}
}

// Name returns the unique lookup source name.
func (c *CoinMarketCap) Name() string { return "coinmarketcap" }

type coinmarketcapInfo struct {
	Status struct {
		ErrorCode    int    `json:"error_code"`
		ErrorMessage string `json:"error_message"`
	} `json:"status"`
	Data map[string][]struct {
		Name            string `json:"name"`
		Symbol          string `json:"symbol"`
		ContractAddress []struct {
			ContractAddress string `json:"contract_address"`
			Platform        struct {
				Coin struct {
					Slug string `json:"slug"`
				} `json:"coin"`
			} `json:"platform"`
		} `json:"contract_address"`
	} `json:"data"`
}

// Lookup reads the coin's metadata and picks the contract deployed on
// the requested chain.
func (c *CoinMarketCap) Lookup(ctx context.Context, symbol string, chainID int64) (*token.Record, error) {
	slug, ok := coinmarketcapSlugs[chainID]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedChain, chainID)
	}
	if c.apiKey == "" {
		return nil, fmt.Errorf("coinmarketcap: %w", ErrMissingKey)
	}

	header := make(http.Header)
	header.Set("X-CMC_PRO_API_KEY", c.apiKey)

	var info coinmarketcapInfo
	infoURL := fmt.Sprintf("%s/v2/cryptocurrency/info?symbol=%s", c.baseURL, url.QueryEscape(symbol))
	if err := c.http.GetJSON(ctx, infoURL, header, &info); err != nil {
		return nil, fmt.Errorf("coinmarketcap info: %w", err)
	}
	if info.Status.ErrorCode != 0 {
		return nil, fmt.Errorf("coinmarketcap error %d: %s", info.Status.ErrorCode, info.Status.ErrorMessage)
	}

	for key, entries := range info.Data {
		if !strings.EqualFold(key, symbol) {
			continue
		}
		for _, entry := range entries {
			for _, contract := range entry.ContractAddress {
				if contract.Platform.Coin.Slug == slug && contract.ContractAddress != "" {
					return &token.Record{
						Address:  contract.ContractAddress,
						Decimals: token.DecimalsUnknown,
						Name:     entry.Name,
					}, nil
				}
			}
		}
	}

	return nil, fmt.Errorf("%w: %s on %s", ErrNoMatch, symbol, slug)
}
