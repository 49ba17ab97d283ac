package exchange

import (
	"context"

	"github.com/David200308/crypto-price-mcp-server/pkg/httpx"
	"github.com/David200308/crypto-price-mcp-server/pkg/logging"
)

// Base carries the identity and plumbing every adapter shares.
type Base struct {
	name     string
	category Category
	http     *httpx.Client
	limiter  *Limiter
	logger   *logging.Logger
}

// NewBase creates the shared adapter core.
func NewBase(name string, category Category, http *httpx.Client, limiter *Limiter, logger *logging.Logger) *Base {
	if logger == nil {
		logger = logging.NewNoopLogger()
	}
	return &Base{
		name:     name,
		category: category,
		http:     http,
		limiter:  limiter,
		logger:   logger,
	}
}

// Name returns the unique exchange name.
func (b *Base) Name() string {
	return b.name
}

// Category returns the venue's report section.
func (b *Base) Category() Category {
	return b.category
}

// HTTP returns the shared JSON client.
func (b *Base) HTTP() *httpx.Client {
	return b.http
}

// Logger returns the adapter logger.
func (b *Base) Logger() *logging.Logger {
	return b.logger
}

// Gate blocks on the venue rate limit, if one is configured.
func (b *Base) Gate(ctx context.Context) error {
	return b.limiter.Wait(ctx)
}
