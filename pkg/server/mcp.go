// Package server exposes the aggregation engine as MCP tools over
// stdio and as a small HTTP API for non-MCP clients. Both surfaces
// speak the same engine and render the same reports.
package server

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/David200308/crypto-price-mcp-server/pkg/aggregate"
	"github.com/David200308/crypto-price-mcp-server/pkg/exchange"
	"github.com/David200308/crypto-price-mcp-server/pkg/logging"
	"github.com/David200308/crypto-price-mcp-server/pkg/notify"
	"github.com/David200308/crypto-price-mcp-server/pkg/report"
	"github.com/David200308/crypto-price-mcp-server/pkg/version"
)

// Engine is the aggregation surface the servers expose.
type Engine interface {
	GetPrice(ctx context.Context, symbol string, chainID int64) (*aggregate.Result, error)
	GetPrices(ctx context.Context, symbols []string, chainID int64) ([]*aggregate.Result, error)
	Adapters() []exchange.Adapter
}

var _ Engine = (*aggregate.Aggregator)(nil)

// Sender delivers rendered reports by mail.
type Sender interface {
	Send(to, subject, body string) error
}

var _ Sender = (*notify.Mailer)(nil)

// MCP serves the price tools over stdio. A nil mailer disables the
// email tool with a clear error instead of removing it.
type MCP struct {
	engine Engine
	mailer Sender
	logger *logging.Logger
	srv    *mcpserver.MCPServer
}

// NewMCP builds the stdio tool server and registers every tool.
func NewMCP(engine Engine, mailer Sender, logger *logging.Logger) *MCP {
	if logger == nil {
		logger = logging.NewNoopLogger()
	}
	m := &MCP{
		engine: engine,
		mailer: mailer,
		logger: logger,
	}

	srv := mcpserver.NewMCPServer(
		"crypto-price-mcp-server",
		version.Version,
		mcpserver.WithToolCapabilities(false),
	)

	srv.AddTool(mcp.NewTool("get_crypto_price",
		mcp.WithDescription("Get the current spot price of a cryptocurrency aggregated across all configured exchanges"),
		mcp.WithString("symbol",
			mcp.Required(),
			mcp.Description("Token symbol, e.g. BTC or ETH"),
		),
		mcp.WithNumber("chain_id",
			mcp.Description("Optional chain id to pin DEX lookups to, e.g. 1 for Ethereum mainnet"),
		),
	), m.handleGetPrice)

	srv.AddTool(mcp.NewTool("get_multiple_crypto_prices",
		mcp.WithDescription("Get current spot prices for several cryptocurrencies in one call"),
		mcp.WithArray("symbols",
			mcp.Required(),
			mcp.Description("Token symbols to quote"),
			mcp.Items(map[string]interface{}{"type": "string"}),
		),
		mcp.WithNumber("chain_id",
			mcp.Description("Optional chain id to pin DEX lookups to"),
		),
	), m.handleGetPrices)

	srv.AddTool(mcp.NewTool("list_supported_exchanges",
		mcp.WithDescription("List the configured exchanges grouped by type"),
	), m.handleListExchanges)

	srv.AddTool(mcp.NewTool("send_price_email",
		mcp.WithDescription("Aggregate a price report and send it to an email address"),
		mcp.WithString("to",
			mcp.Required(),
			mcp.Description("Recipient email address"),
		),
		mcp.WithString("symbol",
			mcp.Required(),
			mcp.Description("Token symbol to report on"),
		),
		mcp.WithNumber("chain_id",
			mcp.Description("Optional chain id to pin DEX lookups to"),
		),
	), m.handleSendEmail)

	m.srv = srv
	return m
}

// Serve reads requests from stdin until the stream closes.
func (m *MCP) Serve() error {
	m.logger.Info("Starting MCP stdio server", "version", version.Version)
	return mcpserver.ServeStdio(m.srv)
}

func (m *MCP) handleGetPrice(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	symbol, err := req.RequireString("symbol")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	chainID, err := chainIDArg(req.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := m.engine.GetPrice(ctx, symbol, chainID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(report.FormatResult(res)), nil
}

func (m *MCP) handleGetPrices(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	symbols, err := symbolsArg(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	chainID, err := chainIDArg(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	results, err := m.engine.GetPrices(ctx, symbols, chainID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(report.FormatResults(results)), nil
}

func (m *MCP) handleListExchanges(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(formatExchanges(m.engine.Adapters())), nil
}

func (m *MCP) handleSendEmail(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if m.mailer == nil {
		return mcp.NewToolResultError(ErrEmailNotConfigured.Error()), nil
	}

	to, err := req.RequireString("to")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	symbol, err := req.RequireString("symbol")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	chainID, err := chainIDArg(req.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := m.engine.GetPrice(ctx, symbol, chainID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	subject := fmt.Sprintf("%s price report", res.Symbol)
	if err := m.mailer.Send(to, subject, report.FormatResult(res)); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Price report for %s sent to %s", res.Symbol, to)), nil
}

// chainIDArg reads the optional chain_id argument. JSON numbers arrive
// as float64; anything fractional or non-numeric is rejected.
func chainIDArg(args map[string]interface{}) (int64, error) {
	raw, ok := args["chain_id"]
	if !ok || raw == nil {
		return 0, nil
	}
	f, ok := raw.(float64)
	if !ok || f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: %v", ErrBadChainID, raw)
	}
	return int64(f), nil
}

// symbolsArg reads the required symbols array argument.
func symbolsArg(args map[string]interface{}) ([]string, error) {
	raw, ok := args["symbols"]
	if !ok {
		return nil, ErrBadSymbols
	}
	list, ok := raw.([]interface{})
	if !ok || len(list) == 0 {
		return nil, ErrBadSymbols
	}
	symbols := make([]string, len(list))
	for i, v := range list {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: element %d is not a string", ErrBadSymbols, i)
		}
		symbols[i] = s
	}
	return symbols, nil
}

// formatExchanges renders the configured venue roster grouped by
// category, in config order.
func formatExchanges(adapters []exchange.Adapter) string {
	var cex, dex []string
	for _, a := range adapters {
		if a.Category() == exchange.CategoryCEX {
			cex = append(cex, a.Name())
		} else {
			dex = append(dex, a.Name())
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Supported exchanges (%d):\n", len(adapters))
	if len(cex) > 0 {
		fmt.Fprintf(&b, "\nCEX:\n  %s\n", strings.Join(cex, "\n  "))
	}
	if len(dex) > 0 {
		fmt.Fprintf(&b, "\nDEX:\n  %s\n", strings.Join(dex, "\n  "))
	}
	return b.String()
}
