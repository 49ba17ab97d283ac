package cex

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/David200308/crypto-price-mcp-server/pkg/config"
)

func TestOKXSource_Quote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("instId"); got != "SOL-USDT" {
			t.Errorf("Expected instId SOL-USDT, got %s", got)
		}
		_, _ = w.Write([]byte(`{
			"code": "0",
			"msg": "",
			"data": [{"instId": "SOL-USDT", "last": "150.25", "open24h": "148.00", "vol24h": "98765.4"}]
		}`))
	}))
	defer server.Close()

	source, err := NewOKXSource(config.ExchangeConfig{Name: "okx", BaseURL: server.URL}, testDeps())
	if err != nil {
		t.Fatalf("NewOKXSource failed: %v", err)
	}

	outcome := source.Quote(context.Background(), "sol", 0)
	if !outcome.OK() {
		t.Fatalf("Quote failed: %s", outcome.Err)
	}
	if outcome.Quote.Price.String() != "150.25" {
		t.Errorf("Expected price 150.25, got %s", outcome.Quote.Price)
	}
	if outcome.Quote.Change24h == nil {
		t.Error("Expected a 24h change derived from open24h")
	}
}

func TestOKXSource_QuoteInBandError(t *testing.T) {
	// OKX reports failures with HTTP 200 and a non-zero code
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code": "51001", "msg": "Instrument ID does not exist", "data": []}`))
	}))
	defer server.Close()

	source, err := NewOKXSource(config.ExchangeConfig{Name: "okx", BaseURL: server.URL}, testDeps())
	if err != nil {
		t.Fatalf("NewOKXSource failed: %v", err)
	}

	outcome := source.Quote(context.Background(), "NOPE", 0)
	if outcome.OK() {
		t.Fatal("Expected failure outcome for non-zero code")
	}
	if !strings.Contains(outcome.Err, "51001") || !strings.Contains(outcome.Err, "does not exist") {
		t.Errorf("Expected okx code and message in error, got %q", outcome.Err)
	}
}

func TestOKXSource_QuoteEmptyData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code": "0", "msg": "", "data": []}`))
	}))
	defer server.Close()

	source, err := NewOKXSource(config.ExchangeConfig{Name: "okx", BaseURL: server.URL}, testDeps())
	if err != nil {
		t.Fatalf("NewOKXSource failed: %v", err)
	}

	outcome := source.Quote(context.Background(), "BTC", 0)
	if outcome.OK() {
		t.Fatal("Expected failure outcome for empty data array")
	}
}
