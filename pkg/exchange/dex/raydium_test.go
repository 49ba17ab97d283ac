package dex

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/David200308/crypto-price-mcp-server/pkg/config"
	"github.com/David200308/crypto-price-mcp-server/pkg/token"
)

const rayMint = "4k3Dyjzvzp8eMZWUXbBCjEvwSkkk59S5iCNLY3QrkX6R"

func TestRaydiumSource_Quote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/mint/price" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("mints"); got != rayMint {
			t.Errorf("Unexpected mints %s", got)
		}
		_, _ = w.Write([]byte(`{"id": "req-1", "success": true, "data": {"` + rayMint + `": "2.41"}}`))
	}))
	defer server.Close()

	deps := dexDeps(t, &token.Record{Address: rayMint, Decimals: 6})
	source, err := NewRaydiumSource(config.ExchangeConfig{Name: "raydium", BaseURL: server.URL}, deps)
	if err != nil {
		t.Fatalf("NewRaydiumSource failed: %v", err)
	}

	outcome := source.Quote(context.Background(), "ray", 0)
	if !outcome.OK() {
		t.Fatalf("Quote failed: %s", outcome.Err)
	}
	if outcome.Quote.Price.String() != "2.41" {
		t.Errorf("Expected 2.41, got %s", outcome.Quote.Price)
	}
	if outcome.Quote.Symbol != "RAY" {
		t.Errorf("Expected normalized symbol RAY, got %s", outcome.Quote.Symbol)
	}
}

func TestRaydiumSource_UnsuccessfulResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": "req-2", "success": false, "data": {}}`))
	}))
	defer server.Close()

	deps := dexDeps(t, &token.Record{Address: rayMint, Decimals: 6})
	source, err := NewRaydiumSource(config.ExchangeConfig{Name: "raydium", BaseURL: server.URL}, deps)
	if err != nil {
		t.Fatalf("NewRaydiumSource failed: %v", err)
	}

	outcome := source.Quote(context.Background(), "RAY", 0)
	if outcome.OK() {
		t.Fatal("Expected a failure outcome for success=false")
	}
}

func TestRaydiumSource_MintNotIndexed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": "req-3", "success": true, "data": {}}`))
	}))
	defer server.Close()

	deps := dexDeps(t, &token.Record{Address: rayMint, Decimals: 6})
	source, err := NewRaydiumSource(config.ExchangeConfig{Name: "raydium", BaseURL: server.URL}, deps)
	if err != nil {
		t.Fatalf("NewRaydiumSource failed: %v", err)
	}

	outcome := source.Quote(context.Background(), "RAY", 0)
	if outcome.OK() {
		t.Fatal("Expected a failure outcome for an unindexed mint")
	}
}
