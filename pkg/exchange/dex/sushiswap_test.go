package dex

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/David200308/crypto-price-mcp-server/pkg/config"
	"github.com/David200308/crypto-price-mcp-server/pkg/token"
)

func TestSushiSwapSource_Quote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		var payload struct {
			Query     string            `json:"query"`
			Variables map[string]string `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("Failed to decode GraphQL payload: %v", err)
		}
		if !strings.Contains(payload.Query, "derivedETH") {
			t.Errorf("Query missing derivedETH: %s", payload.Query)
		}
		// Subgraph ids are lowercase
		if got := payload.Variables["id"]; got != strings.ToLower(uniAddress) {
			t.Errorf("Expected lowercase token id, got %s", got)
		}
		_, _ = w.Write([]byte(`{"data": {
			"token": {"id": "` + strings.ToLower(uniAddress) + `", "symbol": "UNI", "derivedETH": "0.002"},
			"bundle": {"ethPrice": "3500"}
		}}`))
	}))
	defer server.Close()

	deps := dexDeps(t, &token.Record{Address: uniAddress, Decimals: 18})
	source, err := NewSushiSwapSource(config.ExchangeConfig{Name: "sushiswap", BaseURL: server.URL}, deps)
	if err != nil {
		t.Fatalf("NewSushiSwapSource failed: %v", err)
	}

	outcome := source.Quote(context.Background(), "UNI", 0)
	if !outcome.OK() {
		t.Fatalf("Quote failed: %s", outcome.Err)
	}
	// 0.002 ETH * 3500 USD
	if outcome.Quote.Price.String() != "7" {
		t.Errorf("Expected 7, got %s", outcome.Quote.Price)
	}
}

func TestSushiSwapSource_TokenNotIndexed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": {"token": null, "bundle": {"ethPrice": "3500"}}}`))
	}))
	defer server.Close()

	deps := dexDeps(t, &token.Record{Address: uniAddress, Decimals: 18})
	source, err := NewSushiSwapSource(config.ExchangeConfig{Name: "sushiswap", BaseURL: server.URL}, deps)
	if err != nil {
		t.Fatalf("NewSushiSwapSource failed: %v", err)
	}

	outcome := source.Quote(context.Background(), "UNI", 0)
	if outcome.OK() {
		t.Fatal("Expected a failure outcome for an unindexed token")
	}
	if !strings.Contains(outcome.Err, "not indexed") {
		t.Errorf("Expected a not indexed error, got %q", outcome.Err)
	}
}

func TestSushiSwapSource_GraphQLError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"errors": [{"message": "indexing in progress"}]}`))
	}))
	defer server.Close()

	deps := dexDeps(t, &token.Record{Address: uniAddress, Decimals: 18})
	source, err := NewSushiSwapSource(config.ExchangeConfig{Name: "sushiswap", BaseURL: server.URL}, deps)
	if err != nil {
		t.Fatalf("NewSushiSwapSource failed: %v", err)
	}

	outcome := source.Quote(context.Background(), "UNI", 0)
	if outcome.OK() {
		t.Fatal("Expected a failure outcome for a GraphQL error")
	}
	if !strings.Contains(outcome.Err, "indexing in progress") {
		t.Errorf("Expected the subgraph message, got %q", outcome.Err)
	}
}

func TestSushiSwapSource_ZeroDerivedETH(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": {
			"token": {"id": "x", "symbol": "UNI", "derivedETH": "0"},
			"bundle": {"ethPrice": "3500"}
		}}`))
	}))
	defer server.Close()

	deps := dexDeps(t, &token.Record{Address: uniAddress, Decimals: 18})
	source, err := NewSushiSwapSource(config.ExchangeConfig{Name: "sushiswap", BaseURL: server.URL}, deps)
	if err != nil {
		t.Fatalf("NewSushiSwapSource failed: %v", err)
	}

	outcome := source.Quote(context.Background(), "UNI", 0)
	if outcome.OK() {
		t.Fatal("Expected a failure outcome for zero derivedETH")
	}
}
