package report

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/David200308/crypto-price-mcp-server/pkg/aggregate"
	"github.com/David200308/crypto-price-mcp-server/pkg/exchange"
)

func dp(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func quoteOutcome(name, price string) exchange.Outcome {
	return exchange.Success(&exchange.Quote{
		Exchange: name,
		Price:    decimal.RequireFromString(price),
	})
}

func TestFormatResult_MixedOutcomes(t *testing.T) {
	binance := quoteOutcome("binance", "68012.4")
	binance.Quote.Change24h = dp("1.51")
	uniswap := quoteOutcome("uniswap", "68020.15")
	uniswap.Quote.ChainID = 1

	res := &aggregate.Result{
		Symbol:    "BTC",
		Timestamp: time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
		Outcomes: []exchange.Outcome{
			binance,
			exchange.Failuref("kraken", "upstream returned status 521"),
			uniswap,
			exchange.Failuref("curve", "no pool found"),
		},
		TotalExchanges:      4,
		SuccessfulExchanges: 2,
		Average:             dp("68016.275"),
		Best:                dp("68012.4"),
		Worst:               dp("68020.15"),
	}

	out := FormatResult(res)

	require.Contains(t, out, "BTC spot price: 2/4 exchanges succeeded\n")
	require.Contains(t, out, "Average: 68016.275  Best: 68012.4  Worst: 68020.15\n")
	require.Contains(t, out, "\nCEX:\n")
	require.Contains(t, out, "\nDEX:\n")
	require.Contains(t, out, "✓ binance: 68012.4 (24h +1.51%)")
	require.Contains(t, out, "✗ kraken: upstream returned status 521")
	require.Contains(t, out, "✓ uniswap: 68020.15 (chain 1)")
	require.Contains(t, out, "✗ curve: no pool found")
	require.Contains(t, out, "As of 2025-03-14T09:30:00Z")
	require.NotContains(t, out, "no exchanges returned successful results")
}

func TestFormatResult_NegativeChange(t *testing.T) {
	okx := quoteOutcome("okx", "150.2")
	okx.Quote.Change24h = dp("-2.4")

	res := &aggregate.Result{
		Symbol:              "SOL",
		Timestamp:           time.Now().UTC(),
		Outcomes:            []exchange.Outcome{okx},
		TotalExchanges:      1,
		SuccessfulExchanges: 1,
		Average:             dp("150.2"),
		Best:                dp("150.2"),
		Worst:               dp("150.2"),
	}

	out := FormatResult(res)
	require.Contains(t, out, "✓ okx: 150.2 (24h -2.40%)")
}

func TestFormatResult_ZeroSuccessWarning(t *testing.T) {
	res := &aggregate.Result{
		Symbol:    "NOPE",
		Timestamp: time.Now().UTC(),
		Outcomes: []exchange.Outcome{
			exchange.Failuref("binance", "upstream returned status 400"),
			exchange.Failuref("uniswap", "token not found"),
		},
		TotalExchanges:      2,
		SuccessfulExchanges: 0,
	}

	out := FormatResult(res)

	require.Contains(t, out, "NOPE spot price: 0/2 exchanges succeeded\n")
	require.Contains(t, out, "\nno exchanges returned successful results\n")
	require.NotContains(t, out, "Average:")
}

func TestFormatResult_SectionByRosterNotOutcome(t *testing.T) {
	// A venue outside the static roster lands in the DEX section.
	res := &aggregate.Result{
		Symbol:    "ETH",
		Timestamp: time.Now().UTC(),
		Outcomes: []exchange.Outcome{
			quoteOutcome("binance", "3500"),
			quoteOutcome("somedex", "3501"),
		},
		TotalExchanges:      2,
		SuccessfulExchanges: 2,
		Average:             dp("3500.5"),
		Best:                dp("3500"),
		Worst:               dp("3501"),
	}

	out := FormatResult(res)

	cexAt := strings.Index(out, "CEX:")
	dexAt := strings.Index(out, "DEX:")
	require.Greater(t, dexAt, cexAt)
	require.Greater(t, strings.Index(out, "somedex"), dexAt)
	require.Less(t, strings.Index(out, "binance"), dexAt)
}

func TestFormatResult_EmptySectionOmitted(t *testing.T) {
	res := &aggregate.Result{
		Symbol:              "BTC",
		Timestamp:           time.Now().UTC(),
		Outcomes:            []exchange.Outcome{quoteOutcome("binance", "68000")},
		TotalExchanges:      1,
		SuccessfulExchanges: 1,
		Average:             dp("68000"),
		Best:                dp("68000"),
		Worst:               dp("68000"),
	}

	out := FormatResult(res)
	require.Contains(t, out, "CEX:")
	require.NotContains(t, out, "DEX:")
}

func TestFormatResults_NumberedBlocks(t *testing.T) {
	results := []*aggregate.Result{
		{
			Symbol:              "BTC",
			Outcomes:            []exchange.Outcome{quoteOutcome("binance", "68000")},
			TotalExchanges:      1,
			SuccessfulExchanges: 1,
			Average:             dp("68000"),
			Best:                dp("68000"),
			Worst:               dp("68000"),
		},
		{
			Symbol:              "NOPE",
			Outcomes:            []exchange.Outcome{exchange.Failuref("binance", "bad symbol")},
			TotalExchanges:      1,
			SuccessfulExchanges: 0,
		},
	}

	out := FormatResults(results)

	require.Contains(t, out, "1. BTC: 1/1 exchanges succeeded\n")
	require.Contains(t, out, "   Average: 68000  Best: 68000  Worst: 68000\n")
	require.Contains(t, out, "2. NOPE: 0/1 exchanges succeeded\n")
	require.Contains(t, out, "   no exchanges returned successful results\n")

	// Batch rendering never includes per-exchange lines.
	require.NotContains(t, out, "✓")
	require.NotContains(t, out, "✗")
	require.NotContains(t, out, "binance")
}

func TestFormatResults_Empty(t *testing.T) {
	require.Equal(t, "", FormatResults(nil))
}
