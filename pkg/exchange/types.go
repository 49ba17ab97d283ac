package exchange

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/David200308/crypto-price-mcp-server/pkg/chain"
	"github.com/David200308/crypto-price-mcp-server/pkg/chain/evm"
	"github.com/David200308/crypto-price-mcp-server/pkg/chain/solana"
	"github.com/David200308/crypto-price-mcp-server/pkg/config"
	"github.com/David200308/crypto-price-mcp-server/pkg/httpx"
	"github.com/David200308/crypto-price-mcp-server/pkg/logging"
	"github.com/David200308/crypto-price-mcp-server/pkg/token"
)

// Category classifies an exchange for report grouping.
type Category string

const (
	CategoryCEX Category = "cex"
	CategoryDEX Category = "dex"
)

// categories maps every built-in venue to its report section. Grouping
// is by this table alone, never by anything in an outcome.
var categories = map[string]Category{
	"binance":     CategoryCEX,
	"coinbase":    CategoryCEX,
	"kraken":      CategoryCEX,
	"okx":         CategoryCEX,
	"uniswap":     CategoryDEX,
	"pancakeswap": CategoryDEX,
	"curve":       CategoryDEX,
	"sushiswap":   CategoryDEX,
	"oneinch":     CategoryDEX,
	"zerox":       CategoryDEX,
	"jupiter":     CategoryDEX,
	"raydium":     CategoryDEX,
}

// CategoryOf returns the report section of a venue name. Names outside
// the built-in roster group with the DEX section.
func CategoryOf(name string) Category {
	if c, ok := categories[name]; ok {
		return c
	}
	return CategoryDEX
}

// Quote is a spot price obtained from a single exchange. Immutable once
// constructed.
type Quote struct {
	Exchange  string          `json:"exchange"`
	Symbol    string          `json:"symbol"`
	Price     decimal.Decimal `json:"price"`
	Timestamp time.Time       `json:"timestamp"`

	// Optional market context, set only when the venue provides it
	Volume24h   *decimal.Decimal `json:"volume_24h,omitempty"`
	Change24h   *decimal.Decimal `json:"change_24h_percent,omitempty"`
	ChainID     int64            `json:"chain_id,omitempty"`
	PoolAddress string           `json:"pool_address,omitempty"`
	Liquidity   string           `json:"liquidity,omitempty"`
}

// Outcome is the result of one adapter invocation. Exactly one of Quote
// and Err is set.
type Outcome struct {
	Exchange string `json:"exchange"`
	Quote    *Quote `json:"quote,omitempty"`
	Err      string `json:"error,omitempty"`
}

// OK reports whether the outcome carries a successful quote.
func (o Outcome) OK() bool {
	return o.Quote != nil
}

// Success wraps a quote in a successful outcome.
func Success(q *Quote) Outcome {
	return Outcome{Exchange: q.Exchange, Quote: q}
}

// Failure builds a failed outcome from an error.
func Failure(exchange string, err error) Outcome {
	return Outcome{Exchange: exchange, Err: err.Error()}
}

// Failuref builds a failed outcome from a format string.
func Failuref(exchange, format string, args ...interface{}) Outcome {
	return Outcome{Exchange: exchange, Err: fmt.Sprintf(format, args...)}
}

// Adapter fetches a spot quote for one symbol from one venue.
type Adapter interface {
	// Name returns the unique lowercase exchange name.
	Name() string

	// Category returns the venue's report section.
	Category() Category

	// Quote fetches the current price of symbol. chainID 0 means the
	// caller did not pin a chain. Failures are carried inside the
	// Outcome, never raised, so one venue cannot abort a fan-out.
	Quote(ctx context.Context, symbol string, chainID int64) Outcome
}

// TokenResolver resolves token symbols to on-chain records. DEX
// adapters consult it before any venue call.
type TokenResolver interface {
	Resolve(ctx context.Context, symbol string, chainID int64) (*token.Record, error)
}

// Deps bundles the shared collaborators handed to adapter factories.
type Deps struct {
	HTTP     *httpx.Client
	Resolver TokenResolver
	Chains   *chain.Set
	EVM      *evm.Dialer
	Solana   *solana.Client
	Logger   *logging.Logger
}

// Factory is a function that creates a new Adapter instance.
type Factory func(cfg config.ExchangeConfig, deps Deps) (Adapter, error)
