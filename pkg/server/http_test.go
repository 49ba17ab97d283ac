package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/David200308/crypto-price-mcp-server/pkg/exchange"
)

func doRequest(t *testing.T, srv *HTTP, path string) (*httptest.ResponseRecorder, APIResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	var body APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestHTTP_Health(t *testing.T) {
	srv := NewHTTP(":0", &fakeEngine{}, nil)

	rec, body := doRequest(t, srv, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, body.Success)

	data := body.Data.(map[string]interface{})
	require.Equal(t, "ok", data["status"])
}

func TestHTTP_Price(t *testing.T) {
	engine := &fakeEngine{}
	srv := NewHTTP(":0", engine, nil)

	rec, body := doRequest(t, srv, "/v1/price/btc?chain_id=1")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, body.Success)
	require.Equal(t, "BTC", engine.lastSymbol)
	require.EqualValues(t, 1, engine.lastChainID)

	data := body.Data.(map[string]interface{})
	require.Equal(t, "BTC", data["symbol"])
	require.EqualValues(t, 1, data["total_exchanges"])
	require.EqualValues(t, 1, data["successful_exchanges"])

	outcomes := data["outcomes"].([]interface{})
	require.Len(t, outcomes, 1)
	first := outcomes[0].(map[string]interface{})
	require.Equal(t, "binance", first["exchange"])
}

func TestHTTP_Price_BadChainID(t *testing.T) {
	srv := NewHTTP(":0", &fakeEngine{}, nil)

	rec, body := doRequest(t, srv, "/v1/price/btc?chain_id=mainnet")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.False(t, body.Success)
	require.Contains(t, body.Error, "chain_id must be an integer")
}

func TestHTTP_Price_EngineError(t *testing.T) {
	srv := NewHTTP(":0", &fakeEngine{err: exchange.ErrUnknownAdapter}, nil)

	rec, body := doRequest(t, srv, "/v1/price/btc")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.False(t, body.Success)
	require.NotEmpty(t, body.Error)
}

func TestHTTP_Prices(t *testing.T) {
	srv := NewHTTP(":0", &fakeEngine{}, nil)

	rec, body := doRequest(t, srv, "/v1/prices?symbols=BTC,%20eth,,SOL")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, body.Success)

	results := body.Data.([]interface{})
	require.Len(t, results, 3)
	require.Equal(t, "BTC", results[0].(map[string]interface{})["symbol"])
	require.Equal(t, "ETH", results[1].(map[string]interface{})["symbol"])
	require.Equal(t, "SOL", results[2].(map[string]interface{})["symbol"])
}

func TestHTTP_Prices_MissingSymbols(t *testing.T) {
	srv := NewHTTP(":0", &fakeEngine{}, nil)

	for _, path := range []string{"/v1/prices", "/v1/prices?symbols=", "/v1/prices?symbols=,,"} {
		rec, body := doRequest(t, srv, path)
		require.Equal(t, http.StatusBadRequest, rec.Code, "path %s", path)
		require.Contains(t, body.Error, "symbols must be a non-empty array")
	}
}

func TestHTTP_Exchanges(t *testing.T) {
	engine := &fakeEngine{adapters: []exchange.Adapter{
		listedAdapter{"binance", exchange.CategoryCEX},
		listedAdapter{"uniswap", exchange.CategoryDEX},
	}}
	srv := NewHTTP(":0", engine, nil)

	rec, body := doRequest(t, srv, "/v1/exchanges")
	require.Equal(t, http.StatusOK, rec.Code)

	list := body.Data.([]interface{})
	require.Len(t, list, 2)
	first := list[0].(map[string]interface{})
	require.Equal(t, "binance", first["name"])
	require.Equal(t, "cex", first["category"])
}

func TestHTTP_CORSHeaders(t *testing.T) {
	srv := NewHTTP(":0", &fakeEngine{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
