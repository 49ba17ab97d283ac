package aggregate

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/David200308/crypto-price-mcp-server/pkg/exchange"
	"github.com/David200308/crypto-price-mcp-server/pkg/logging"
	"github.com/David200308/crypto-price-mcp-server/pkg/metrics"
)

// DefaultQuoteTimeout bounds a single adapter call when the config
// does not set one.
const DefaultQuoteTimeout = 10 * time.Second

// Aggregator queries every adapter for a symbol and settles all
// outcomes. Outcome order always matches the adapter order it was
// built with.
type Aggregator struct {
	adapters []exchange.Adapter
	timeout  time.Duration
	logger   *logging.Logger
}

// New creates an aggregator over the given adapters. The adapter order
// fixes the outcome order of every result.
func New(adapters []exchange.Adapter, timeout time.Duration, logger *logging.Logger) (*Aggregator, error) {
	if len(adapters) == 0 {
		return nil, ErrNoAdapters
	}
	if timeout <= 0 {
		timeout = DefaultQuoteTimeout
	}
	if logger == nil {
		logger = logging.NewNoopLogger()
	}
	return &Aggregator{
		adapters: adapters,
		timeout:  timeout,
		logger:   logger,
	}, nil
}

// Adapters returns the configured adapters in outcome order.
func (a *Aggregator) Adapters() []exchange.Adapter {
	out := make([]exchange.Adapter, len(a.adapters))
	copy(out, a.adapters)
	return out
}

// GetPrice fans the symbol out to every adapter concurrently and waits
// for all of them. The returned result always carries one outcome per
// adapter; failures are data, not errors. Only an unusable request is
// an error.
func (a *Aggregator) GetPrice(ctx context.Context, symbol string, chainID int64) (*Result, error) {
	symbol = exchange.NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, ErrEmptySymbol
	}

	start := time.Now()
	outcomes := make([]exchange.Outcome, len(a.adapters))

	var g errgroup.Group
	for i, adapter := range a.adapters {
		g.Go(func() error {
			outcomes[i] = a.quoteOne(ctx, adapter, symbol, chainID)
			return nil
		})
	}
	// The goroutines carry failures inside outcomes and never error
	_ = g.Wait()

	res := newResult(symbol, outcomes)
	metrics.RecordAggregation("price", time.Since(start))
	a.logger.Debug("Aggregated quotes",
		"symbol", symbol,
		"successful", res.SuccessfulExchanges,
		"total", res.TotalExchanges,
		"duration_ms", time.Since(start).Milliseconds())

	return res, nil
}

// GetPrices aggregates a batch of symbols concurrently. Results keep
// the request order and settle independently; a symbol with zero
// successful venues still yields a well-formed result. A blank symbol
// anywhere rejects the whole batch before any venue is queried.
func (a *Aggregator) GetPrices(ctx context.Context, symbols []string, chainID int64) ([]*Result, error) {
	if len(symbols) == 0 {
		return nil, ErrNoSymbols
	}
	for i, s := range symbols {
		if exchange.NormalizeSymbol(s) == "" {
			return nil, fmt.Errorf("%w: position %d", ErrEmptySymbol, i)
		}
	}

	results := make([]*Result, len(symbols))
	var g errgroup.Group
	for i, symbol := range symbols {
		g.Go(func() error {
			res, err := a.GetPrice(ctx, symbol, chainID)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// quoteOne runs a single adapter under the per-quote timeout. A panic
// inside an adapter is converted to a failure outcome naming the
// venue, so a buggy adapter cannot take the fan-out down.
func (a *Aggregator) quoteOne(ctx context.Context, adapter exchange.Adapter, symbol string, chainID int64) (out exchange.Outcome) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("Exchange adapter panicked",
				"exchange", adapter.Name(),
				"symbol", symbol,
				"panic", fmt.Sprintf("%v", r))
			out = exchange.Failuref(adapter.Name(), "panic: %v", r)
		}
		metrics.RecordQuote(adapter.Name(), out.OK(), time.Since(start))
	}()

	qctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	return adapter.Quote(qctx, symbol, chainID)
}
