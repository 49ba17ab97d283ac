package lookup

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/David200308/crypto-price-mcp-server/pkg/chain"
	"github.com/David200308/crypto-price-mcp-server/pkg/httpx"
	"github.com/David200308/crypto-price-mcp-server/pkg/token"
)

const (
	ethplorerBaseURL = "https://api.ethplorer.io"
	// ethplorerFreeKey is the documented public key for low-volume use.
	ethplorerFreeKey = "freekey"
)

// Ethplorer resolves symbols by scanning the top tokens by market cap.
// Mainnet only; the free tier has no direct symbol search.
type Ethplorer struct {
	http    *httpx.Client
	apiKey  string
	baseURL string
}

// NewEthplorer creates the Ethplorer lookup source. An empty apiKey
// falls back to the public free key.
func NewEthplorer(client *httpx.Client, apiKey, baseURL string) *Ethplorer {
	if apiKey == "" {
		apiKey = ethplorerFreeKey
	}
	if baseURL == "" {
		baseURL = ethplorerBaseURL
	}
	return &Ethplorer{http: client, apiKey: apiKey, baseURL: baseURL}
}

// Name returns the unique lookup source name.
func (e *Ethplorer) Name() string { return "ethplorer" }

type ethplorerTop struct {
	Tokens []struct {
		Address string `json:"address"`
		Name    string `json:"name"`
		Symbol  string `json:"symbol"`
		// Ethplorer reports decimals as a number for some tokens and a
		// string for others.
		Decimals interface{} `json:"decimals"`
	} `json:"tokens"`
}

// Lookup scans the top token list for a symbol match.
func (e *Ethplorer) Lookup(ctx context.Context, symbol string, chainID int64) (*token.Record, error) {
	if chainID != chain.IDEthereum {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedChain, chainID)
	}

	var top ethplorerTop
	topURL := fmt.Sprintf("%s/getTop?apiKey=%s&criteria=cap", e.baseURL, url.QueryEscape(e.apiKey))
	if err := e.http.GetJSON(ctx, topURL, nil, &top); err != nil {
		return nil, fmt.Errorf("ethplorer top: %w", err)
	}

	for _, t := range top.Tokens {
		if !strings.EqualFold(t.Symbol, symbol) {
			continue
		}
		return &token.Record{
			Address:  t.Address,
			Decimals: coerceDecimals(t.Decimals),
			Name:     t.Name,
		}, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrNoMatch, symbol)
}

// coerceDecimals accepts the number and string spellings Ethplorer
// uses interchangeably.
func coerceDecimals(v interface{}) int {
	switch d := v.(type) {
	case float64:
		if d >= 0 {
			return int(d)
		}
	case string:
		if n, err := strconv.Atoi(d); err == nil && n >= 0 {
			return n
		}
	}
	return token.DecimalsUnknown
}
