// Package report renders aggregation results as plain text. The same
// rendering backs MCP tool responses and email bodies.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/David200308/crypto-price-mcp-server/pkg/aggregate"
	"github.com/David200308/crypto-price-mcp-server/pkg/exchange"
)

// noSuccessWarning is the exact line emitted when not a single venue
// returned a usable price.
const noSuccessWarning = "no exchanges returned successful results"

// FormatResult renders one aggregation result. Outcomes are grouped
// into a CEX and a DEX section by the static venue roster, never by
// anything inside the outcome itself.
func FormatResult(res *aggregate.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s spot price: %d/%d exchanges succeeded\n",
		res.Symbol, res.SuccessfulExchanges, res.TotalExchanges)
	if res.SuccessfulExchanges == 0 {
		b.WriteString(noSuccessWarning + "\n")
	}
	if res.Average != nil {
		fmt.Fprintf(&b, "Average: %s  Best: %s  Worst: %s\n",
			res.Average.String(), res.Best.String(), res.Worst.String())
	}

	writeSection(&b, "CEX", res, exchange.CategoryCEX)
	writeSection(&b, "DEX", res, exchange.CategoryDEX)

	fmt.Fprintf(&b, "\nAs of %s\n", res.Timestamp.Format(time.RFC3339))
	return b.String()
}

// FormatResults renders a batch as one numbered block per symbol,
// without per-exchange detail.
func FormatResults(results []*aggregate.Result) string {
	var b strings.Builder
	for i, res := range results {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d. %s: %d/%d exchanges succeeded\n",
			i+1, res.Symbol, res.SuccessfulExchanges, res.TotalExchanges)
		if res.SuccessfulExchanges == 0 {
			b.WriteString("   " + noSuccessWarning + "\n")
		}
		if res.Average != nil {
			fmt.Fprintf(&b, "   Average: %s  Best: %s  Worst: %s\n",
				res.Average.String(), res.Best.String(), res.Worst.String())
		}
	}
	return b.String()
}

func writeSection(b *strings.Builder, title string, res *aggregate.Result, cat exchange.Category) {
	var lines []string
	for _, o := range res.Outcomes {
		if exchange.CategoryOf(o.Exchange) != cat {
			continue
		}
		lines = append(lines, outcomeLine(o))
	}
	if len(lines) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s:\n", title)
	for _, l := range lines {
		b.WriteString("  " + l + "\n")
	}
}

func outcomeLine(o exchange.Outcome) string {
	if !o.OK() {
		return fmt.Sprintf("✗ %s: %s", o.Exchange, o.Err)
	}
	line := fmt.Sprintf("✓ %s: %s", o.Exchange, o.Quote.Price.String())
	if o.Quote.Change24h != nil {
		change := o.Quote.Change24h.StringFixed(2)
		if !strings.HasPrefix(change, "-") {
			change = "+" + change
		}
		line += fmt.Sprintf(" (24h %s%%)", change)
	}
	if o.Quote.ChainID != 0 {
		line += fmt.Sprintf(" (chain %d)", o.Quote.ChainID)
	}
	return line
}
