package server

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/David200308/crypto-price-mcp-server/pkg/aggregate"
	"github.com/David200308/crypto-price-mcp-server/pkg/exchange"
)

type listedAdapter struct {
	name string
	cat  exchange.Category
}

func (a listedAdapter) Name() string                { return a.name }
func (a listedAdapter) Category() exchange.Category { return a.cat }
func (a listedAdapter) Quote(context.Context, string, int64) exchange.Outcome {
	return exchange.Failuref(a.name, "not implemented")
}

type fakeEngine struct {
	adapters    []exchange.Adapter
	err         error
	lastSymbol  string
	lastChainID int64
}

var _ Engine = (*fakeEngine)(nil)

func (f *fakeEngine) GetPrice(_ context.Context, symbol string, chainID int64) (*aggregate.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastSymbol = exchange.NormalizeSymbol(symbol)
	f.lastChainID = chainID
	price := decimal.RequireFromString("68000.5")
	return &aggregate.Result{
		Symbol:    f.lastSymbol,
		Timestamp: time.Now().UTC(),
		Outcomes: []exchange.Outcome{
			exchange.Success(&exchange.Quote{Exchange: "binance", Symbol: f.lastSymbol, Price: price}),
		},
		TotalExchanges:      1,
		SuccessfulExchanges: 1,
		Average:             &price,
		Best:                &price,
		Worst:               &price,
	}, nil
}

func (f *fakeEngine) GetPrices(ctx context.Context, symbols []string, chainID int64) ([]*aggregate.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	results := make([]*aggregate.Result, len(symbols))
	for i, s := range symbols {
		res, err := f.GetPrice(ctx, s, chainID)
		if err != nil {
			return nil, err
		}
		results[i] = res
	}
	return results, nil
}

func (f *fakeEngine) Adapters() []exchange.Adapter {
	return f.adapters
}

type fakeSender struct {
	to      string
	subject string
	body    string
	err     error
}

func (f *fakeSender) Send(to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.to, f.subject, f.body = to, subject, body
	return nil
}

func toolRequest(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return tc.Text
}

func TestHandleGetPrice(t *testing.T) {
	engine := &fakeEngine{}
	m := NewMCP(engine, nil, nil)

	res, err := m.handleGetPrice(context.Background(), toolRequest(map[string]interface{}{
		"symbol":   "btc",
		"chain_id": float64(56),
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	text := resultText(t, res)
	require.Contains(t, text, "BTC spot price: 1/1 exchanges succeeded")
	require.Contains(t, text, "binance")
	require.Equal(t, "BTC", engine.lastSymbol)
	require.EqualValues(t, 56, engine.lastChainID)
}

func TestHandleGetPrice_MissingSymbol(t *testing.T) {
	m := NewMCP(&fakeEngine{}, nil, nil)

	res, err := m.handleGetPrice(context.Background(), toolRequest(map[string]interface{}{}))
	require.NoError(t, err)
	require.True(t, res.IsError)
}

func TestHandleGetPrice_BadChainID(t *testing.T) {
	m := NewMCP(&fakeEngine{}, nil, nil)

	for _, bad := range []interface{}{"mainnet", 1.5, true} {
		res, err := m.handleGetPrice(context.Background(), toolRequest(map[string]interface{}{
			"symbol":   "BTC",
			"chain_id": bad,
		}))
		require.NoError(t, err)
		require.True(t, res.IsError, "chain_id %v should be rejected", bad)
		require.Contains(t, resultText(t, res), "chain_id must be an integer")
	}
}

func TestHandleGetPrice_EngineError(t *testing.T) {
	m := NewMCP(&fakeEngine{err: aggregate.ErrEmptySymbol}, nil, nil)

	res, err := m.handleGetPrice(context.Background(), toolRequest(map[string]interface{}{
		"symbol": "BTC",
	}))
	require.NoError(t, err)
	require.True(t, res.IsError)
	require.Contains(t, resultText(t, res), "symbol must not be empty")
}

func TestHandleGetPrices(t *testing.T) {
	m := NewMCP(&fakeEngine{}, nil, nil)

	res, err := m.handleGetPrices(context.Background(), toolRequest(map[string]interface{}{
		"symbols": []interface{}{"BTC", "eth"},
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	text := resultText(t, res)
	require.Contains(t, text, "1. BTC:")
	require.Contains(t, text, "2. ETH:")
}

func TestHandleGetPrices_BadSymbols(t *testing.T) {
	m := NewMCP(&fakeEngine{}, nil, nil)

	cases := []map[string]interface{}{
		{},
		{"symbols": "BTC"},
		{"symbols": []interface{}{}},
		{"symbols": []interface{}{"BTC", 42}},
	}
	for _, args := range cases {
		res, err := m.handleGetPrices(context.Background(), toolRequest(args))
		require.NoError(t, err)
		require.True(t, res.IsError, "args %v should be rejected", args)
		require.Contains(t, resultText(t, res), "symbols must be a non-empty array of strings")
	}
}

func TestHandleListExchanges(t *testing.T) {
	engine := &fakeEngine{adapters: []exchange.Adapter{
		listedAdapter{"binance", exchange.CategoryCEX},
		listedAdapter{"kraken", exchange.CategoryCEX},
		listedAdapter{"uniswap", exchange.CategoryDEX},
	}}
	m := NewMCP(engine, nil, nil)

	res, err := m.handleListExchanges(context.Background(), toolRequest(nil))
	require.NoError(t, err)
	require.False(t, res.IsError)

	text := resultText(t, res)
	require.Contains(t, text, "Supported exchanges (3):")
	require.Contains(t, text, "CEX:\n  binance\n  kraken")
	require.Contains(t, text, "DEX:\n  uniswap")
}

func TestHandleSendEmail(t *testing.T) {
	sender := &fakeSender{}
	m := NewMCP(&fakeEngine{}, sender, nil)

	res, err := m.handleSendEmail(context.Background(), toolRequest(map[string]interface{}{
		"to":     "dest@example.com",
		"symbol": "btc",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.Contains(t, resultText(t, res), "Price report for BTC sent to dest@example.com")

	require.Equal(t, "dest@example.com", sender.to)
	require.Equal(t, "BTC price report", sender.subject)
	require.Contains(t, sender.body, "BTC spot price")
}

func TestHandleSendEmail_NotConfigured(t *testing.T) {
	m := NewMCP(&fakeEngine{}, nil, nil)

	res, err := m.handleSendEmail(context.Background(), toolRequest(map[string]interface{}{
		"to":     "dest@example.com",
		"symbol": "BTC",
	}))
	require.NoError(t, err)
	require.True(t, res.IsError)
	require.Contains(t, resultText(t, res), "email delivery is not configured")
}

func TestHandleSendEmail_SendFailure(t *testing.T) {
	m := NewMCP(&fakeEngine{}, &fakeSender{err: errors.New("dial tcp: refused")}, nil)

	res, err := m.handleSendEmail(context.Background(), toolRequest(map[string]interface{}{
		"to":     "dest@example.com",
		"symbol": "BTC",
	}))
	require.NoError(t, err)
	require.True(t, res.IsError)
	require.Contains(t, resultText(t, res), "refused")
}
