package token

import (
	"context"
	"fmt"

	"github.com/David200308/crypto-price-mcp-server/pkg/logging"
	"github.com/David200308/crypto-price-mcp-server/pkg/metrics"
)

// Source answers symbol lookups from one external token registry.
// Implementations return an error for misses and upstream failures
// alike; the resolver treats both as a skipped vote.
type Source interface {
	// Name returns the unique lookup source name.
	Name() string

	// Lookup resolves symbol on chainID. The returned record needs
	// Address set; Decimals may be DecimalsUnknown.
	Lookup(ctx context.Context, symbol string, chainID int64) (*Record, error)
}

// Resolver maps symbols to token records using the static table, a
// bounded cache, and a prioritized source cascade.
type Resolver struct {
	sources []Source
	cache   *Cache
	logger  *logging.Logger
}

// NewResolver creates a resolver consulting sources in the given order.
// Earlier sources have higher priority in vote ties.
func NewResolver(sources []Source, cacheSize int, logger *logging.Logger) *Resolver {
	if logger == nil {
		logger = logging.NewNoopLogger()
	}
	return &Resolver{
		sources: sources,
		cache:   NewCache(cacheSize),
		logger:  logger,
	}
}

// Resolve returns the token record for symbol on chainID. chainID must
// name a concrete chain; adapters resolve their venue chain before
// calling. A failing source never aborts resolution, it only loses its
// vote. All sources missing yields ErrNotFound.
func (r *Resolver) Resolve(ctx context.Context, symbol string, chainID int64) (*Record, error) {
	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("%w: empty symbol", ErrNotFound)
	}

	if rec, ok := Static(symbol, chainID); ok {
		return rec, nil
	}

	if rec, ok := r.cache.Get(symbol, chainID); ok {
		metrics.RecordResolverCacheHit()
		return rec, nil
	}

	candidates := make([]Record, 0, len(r.sources))
	for _, src := range r.sources {
		if ctx.Err() != nil {
			break
		}

		rec, err := src.Lookup(ctx, symbol, chainID)
		if err != nil {
			metrics.RecordResolverLookup(src.Name(), false)
			r.logger.Debug("Token lookup failed",
				"source", src.Name(),
				"symbol", symbol,
				"chain_id", chainID,
				"error", err.Error())
			continue
		}
		if rec == nil || rec.Address == "" {
			metrics.RecordResolverLookup(src.Name(), false)
			r.logger.Debug("Token lookup returned unusable record",
				"source", src.Name(),
				"symbol", symbol,
				"chain_id", chainID)
			continue
		}

		metrics.RecordResolverLookup(src.Name(), true)
		rec.Symbol = symbol
		rec.ChainID = chainID
		rec.SourceName = src.Name()
		candidates = append(candidates, *rec)
	}

	merged, ok := MergeCandidates(candidates)
	if !ok {
		return nil, fmt.Errorf("%w: %s on chain %d", ErrNotFound, symbol, chainID)
	}
	if merged.Decimals == DecimalsUnknown {
		merged.Decimals = DefaultDecimals
	}

	r.cache.Put(merged)
	r.logger.Debug("Resolved token",
		"symbol", symbol,
		"chain_id", chainID,
		"address", merged.Address,
		"source", merged.SourceName,
		"verified", merged.Verified)

	return merged, nil
}
