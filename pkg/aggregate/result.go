package aggregate

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/David200308/crypto-price-mcp-server/pkg/exchange"
)

// Result is the settled aggregation of one symbol across every
// configured exchange. Outcomes keep the configured exchange order
// regardless of which venue answered first. The price statistics are
// present only when at least one venue succeeded.
type Result struct {
	Symbol              string             `json:"symbol"`
	Timestamp           time.Time          `json:"timestamp"`
	Outcomes            []exchange.Outcome `json:"outcomes"`
	TotalExchanges      int                `json:"total_exchanges"`
	SuccessfulExchanges int                `json:"successful_exchanges"`

	// Best is the lowest price seen (cheapest to buy), Worst the
	// highest.
	Average *decimal.Decimal `json:"average_price,omitempty"`
	Best    *decimal.Decimal `json:"best_price,omitempty"`
	Worst   *decimal.Decimal `json:"worst_price,omitempty"`
}

// newResult derives the statistics from settled outcome slots.
func newResult(symbol string, outcomes []exchange.Outcome) *Result {
	res := &Result{
		Symbol:         symbol,
		Timestamp:      time.Now().UTC(),
		Outcomes:       outcomes,
		TotalExchanges: len(outcomes),
	}

	prices := make([]decimal.Decimal, 0, len(outcomes))
	for _, o := range outcomes {
		if o.OK() {
			prices = append(prices, o.Quote.Price)
		}
	}
	res.SuccessfulExchanges = len(prices)
	if len(prices) == 0 {
		return res
	}

	sum := decimal.Zero
	best, worst := prices[0], prices[0]
	for _, p := range prices {
		sum = sum.Add(p)
		if p.LessThan(best) {
			best = p
		}
		if p.GreaterThan(worst) {
			worst = p
		}
	}
	avg := sum.Div(decimal.NewFromInt(int64(len(prices))))

	res.Average = &avg
	res.Best = &best
	res.Worst = &worst
	return res
}
