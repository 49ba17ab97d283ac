package cex

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/David200308/crypto-price-mcp-server/pkg/config"
	"github.com/David200308/crypto-price-mcp-server/pkg/exchange"
	"github.com/David200308/crypto-price-mcp-server/pkg/httpx"
)

func testDeps() exchange.Deps {
	return exchange.Deps{HTTP: httpx.NewClient(0)}
}

func TestBinanceSource_NewSource(t *testing.T) {
	source, err := NewBinanceSource(config.ExchangeConfig{Name: "binance"}, testDeps())
	if err != nil {
		t.Fatalf("NewBinanceSource failed: %v", err)
	}

	if source.Name() != "binance" {
		t.Errorf("Expected name 'binance', got '%s'", source.Name())
	}
	if source.Category() != exchange.CategoryCEX {
		t.Errorf("Expected CategoryCEX, got %v", source.Category())
	}
}

func TestBinanceSource_Quote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v3/ticker/24hr" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("symbol"); got != "BTCUSDT" {
			t.Errorf("Expected symbol BTCUSDT, got %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"symbol": "BTCUSDT",
			"lastPrice": "67890.12",
			"priceChangePercent": "-1.25",
			"volume": "12345.6"
		}`))
	}))
	defer server.Close()

	source, err := NewBinanceSource(config.ExchangeConfig{Name: "binance", BaseURL: server.URL}, testDeps())
	if err != nil {
		t.Fatalf("NewBinanceSource failed: %v", err)
	}

	outcome := source.Quote(context.Background(), "btc", 0)
	if !outcome.OK() {
		t.Fatalf("Quote failed: %s", outcome.Err)
	}
	if outcome.Exchange != "binance" {
		t.Errorf("Expected exchange binance, got %s", outcome.Exchange)
	}
	if outcome.Quote.Symbol != "BTC" {
		t.Errorf("Expected normalized symbol BTC, got %s", outcome.Quote.Symbol)
	}
	if outcome.Quote.Price.String() != "67890.12" {
		t.Errorf("Expected price 67890.12, got %s", outcome.Quote.Price)
	}
	if outcome.Quote.Change24h == nil || outcome.Quote.Change24h.String() != "-1.25" {
		t.Errorf("Expected change -1.25, got %v", outcome.Quote.Change24h)
	}
	if outcome.Quote.Volume24h == nil || outcome.Quote.Volume24h.String() != "12345.6" {
		t.Errorf("Expected volume 12345.6, got %v", outcome.Quote.Volume24h)
	}
}

func TestBinanceSource_QuoteUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":-1121,"msg":"Invalid symbol."}`))
	}))
	defer server.Close()

	source, err := NewBinanceSource(config.ExchangeConfig{Name: "binance", BaseURL: server.URL}, testDeps())
	if err != nil {
		t.Fatalf("NewBinanceSource failed: %v", err)
	}

	outcome := source.Quote(context.Background(), "NOPE", 0)
	if outcome.OK() {
		t.Fatal("Expected failure outcome for upstream error")
	}
	if !strings.Contains(outcome.Err, "400") {
		t.Errorf("Expected status code in error, got %q", outcome.Err)
	}
	if !strings.Contains(outcome.Err, "Invalid symbol") {
		t.Errorf("Expected upstream body in error, got %q", outcome.Err)
	}
}

func TestBinanceSource_QuoteBadPrice(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed", body: `{"symbol":"BTCUSDT","lastPrice":"not-a-number"}`},
		{name: "zero", body: `{"symbol":"BTCUSDT","lastPrice":"0"}`},
		{name: "negative", body: `{"symbol":"BTCUSDT","lastPrice":"-5"}`},
		{name: "missing", body: `{"symbol":"BTCUSDT"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			source, err := NewBinanceSource(config.ExchangeConfig{Name: "binance", BaseURL: server.URL}, testDeps())
			if err != nil {
				t.Fatalf("NewBinanceSource failed: %v", err)
			}

			outcome := source.Quote(context.Background(), "BTC", 0)
			if outcome.OK() {
				t.Error("Expected failure outcome for unusable price")
			}
		})
	}
}

// Integration test - requires network connection.
func TestBinanceSource_Quote_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	source, err := NewBinanceSource(config.ExchangeConfig{Name: "binance"}, testDeps())
	if err != nil {
		t.Fatalf("NewBinanceSource failed: %v", err)
	}

	outcome := source.Quote(context.Background(), "BTC", 0)
	if !outcome.OK() {
		t.Fatalf("Quote failed: %s", outcome.Err)
	}
	t.Logf("BTC price from Binance: %s", outcome.Quote.Price)
}
