package cex

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/David200308/crypto-price-mcp-server/pkg/config"
)

func TestKrakenSource_Quote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// BTC must be mapped to Kraken's XBT code before the request
		if got := r.URL.Query().Get("pair"); got != "XBTUSD" {
			t.Errorf("Expected pair XBTUSD, got %s", got)
		}
		_, _ = w.Write([]byte(`{
			"error": [],
			"result": {
				"XXBTZUSD": {
					"c": ["68012.40000", "0.01000000"],
					"v": ["1200.5", "3400.75"],
					"o": "67000.00000"
				}
			}
		}`))
	}))
	defer server.Close()

	source, err := NewKrakenSource(config.ExchangeConfig{Name: "kraken", BaseURL: server.URL}, testDeps())
	if err != nil {
		t.Fatalf("NewKrakenSource failed: %v", err)
	}

	outcome := source.Quote(context.Background(), "BTC", 0)
	if !outcome.OK() {
		t.Fatalf("Quote failed: %s", outcome.Err)
	}
	if outcome.Quote.Price.String() != "68012.4" {
		t.Errorf("Expected price 68012.4, got %s", outcome.Quote.Price)
	}
	if outcome.Quote.Volume24h == nil || outcome.Quote.Volume24h.String() != "3400.75" {
		t.Errorf("Expected 24h volume 3400.75, got %v", outcome.Quote.Volume24h)
	}
	// change = (68012.4 - 67000) / 67000 * 100
	if outcome.Quote.Change24h == nil {
		t.Fatal("Expected a 24h change derived from the open price")
	}
	change, _ := outcome.Quote.Change24h.Round(4).Float64()
	if change < 1.51 || change > 1.52 {
		t.Errorf("Expected change near 1.511, got %v", change)
	}
}

func TestKrakenSource_QuoteErrorArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error": ["EQuery:Unknown asset pair"], "result": {}}`))
	}))
	defer server.Close()

	source, err := NewKrakenSource(config.ExchangeConfig{Name: "kraken", BaseURL: server.URL}, testDeps())
	if err != nil {
		t.Fatalf("NewKrakenSource failed: %v", err)
	}

	outcome := source.Quote(context.Background(), "NOPE", 0)
	if outcome.OK() {
		t.Fatal("Expected failure outcome for kraken error array")
	}
	if !strings.Contains(outcome.Err, "Unknown asset pair") {
		t.Errorf("Expected kraken error text, got %q", outcome.Err)
	}
}

func TestKrakenSource_QuoteEmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error": [], "result": {}}`))
	}))
	defer server.Close()

	source, err := NewKrakenSource(config.ExchangeConfig{Name: "kraken", BaseURL: server.URL}, testDeps())
	if err != nil {
		t.Fatalf("NewKrakenSource failed: %v", err)
	}

	outcome := source.Quote(context.Background(), "BTC", 0)
	if outcome.OK() {
		t.Fatal("Expected failure outcome for empty result map")
	}
}

func TestKrakenSymbolMapping(t *testing.T) {
	tests := []struct {
		symbol string
		pair   string
	}{
		{symbol: "BTC", pair: "XBTUSD"},
		{symbol: "DOGE", pair: "XDGUSD"},
		{symbol: "ETH", pair: "ETHUSD"},
	}

	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			var gotPair string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPair = r.URL.Query().Get("pair")
				_, _ = w.Write([]byte(`{"error": [], "result": {"PAIR": {"c": ["1.0", "1.0"], "v": ["1", "2"], "o": "1.0"}}}`))
			}))
			defer server.Close()

			source, err := NewKrakenSource(config.ExchangeConfig{Name: "kraken", BaseURL: server.URL}, testDeps())
			if err != nil {
				t.Fatalf("NewKrakenSource failed: %v", err)
			}

			source.Quote(context.Background(), tt.symbol, 0)
			if gotPair != tt.pair {
				t.Errorf("Expected pair %s, got %s", tt.pair, gotPair)
			}
		})
	}
}
