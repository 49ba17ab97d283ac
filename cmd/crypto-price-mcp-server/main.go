package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/David200308/crypto-price-mcp-server/pkg/aggregate"
	"github.com/David200308/crypto-price-mcp-server/pkg/chain"
	"github.com/David200308/crypto-price-mcp-server/pkg/chain/evm"
	"github.com/David200308/crypto-price-mcp-server/pkg/chain/solana"
	"github.com/David200308/crypto-price-mcp-server/pkg/config"
	"github.com/David200308/crypto-price-mcp-server/pkg/exchange"
	"github.com/David200308/crypto-price-mcp-server/pkg/httpx"
	"github.com/David200308/crypto-price-mcp-server/pkg/logging"
	"github.com/David200308/crypto-price-mcp-server/pkg/metrics"
	"github.com/David200308/crypto-price-mcp-server/pkg/notify"
	"github.com/David200308/crypto-price-mcp-server/pkg/server"
	"github.com/David200308/crypto-price-mcp-server/pkg/token"
	"github.com/David200308/crypto-price-mcp-server/pkg/token/lookup"
	"github.com/David200308/crypto-price-mcp-server/pkg/version"

	// Import adapter packages to register them
	_ "github.com/David200308/crypto-price-mcp-server/pkg/exchange/cex"
	_ "github.com/David200308/crypto-price-mcp-server/pkg/exchange/dex"
)

const defaultConfigPath = "config/config.yaml"

var (
	configFile = flag.String("config", defaultConfigPath, "Path to configuration file")
	showVer    = flag.Bool("version", false, "Show version and exit")
	httpOnly   = flag.Bool("http", false, "Run the HTTP API only, without the stdio tool server")
)

func main() {
	flag.Parse()

	if *showVer {
		fmt.Printf("crypto-price-mcp-server version %s\n", version.Version)
		os.Exit(0)
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *httpOnly {
		cfg.Mode = config.ModeHTTP
	}

	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.Init(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logging.SetGlobal(logger)

	logger.Info("Starting crypto-price-mcp-server",
		"version", version.Version,
		"mode", cfg.NormalizeMode())

	if cfg.Metrics.Enabled {
		metrics.Init()
		go func() {
			logger.Info("Starting metrics server", "addr", cfg.Metrics.Addr)
			if err := metrics.ServeHTTP(cfg.Metrics.Addr); err != nil {
				logger.Error("Metrics server failed", "error", err)
			}
		}()
	}

	engine, mailer, cleanup, err := buildEngine(cfg, logger)
	if err != nil {
		logger.Error("Failed to build aggregation engine", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 2)

	var httpSrv *server.HTTP
	if cfg.IsHTTPMode() || cfg.Server.HTTP.Enabled {
		httpSrv = server.NewHTTP(cfg.Server.HTTP.Addr, engine, logger)
		go func() {
			errChan <- httpSrv.Start()
		}()
	}

	if cfg.IsMCPMode() {
		mcpSrv := server.NewMCP(engine, mailer, logger)
		go func() {
			errChan <- mcpSrv.Serve()
		}()
	}

	// Wait for a shutdown signal, a server failure, or stdin closing
	select {
	case sig := <-sigChan:
		logger.Info("Received shutdown signal", "signal", sig.String())
	case err := <-errChan:
		if err != nil {
			logger.Error("Server failed", "error", err)
		}
	}

	if httpSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Stop(shutdownCtx); err != nil {
			logger.Error("HTTP shutdown failed", "error", err)
		}
	}
	logger.Info("Shutdown complete")
}

// loadConfig reads the config file. The default path missing is not an
// error; the built-in defaults cover a keyless, all-exchanges setup.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) && path == defaultConfigPath {
		return config.Default(), nil
	}
	return config.Load(path)
}

// buildEngine wires the shared collaborators, the configured adapters,
// and the aggregation engine. The returned cleanup closes pooled RPC
// connections.
func buildEngine(cfg *config.Config, logger *logging.Logger) (*aggregate.Aggregator, server.Sender, func(), error) {
	chains, err := chain.NewSet(cfg.Chains, cfg.Server.DefaultChainID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("chain profiles: %w", err)
	}

	httpClient := httpx.NewClient(0)
	dialer := evm.NewDialer(chains)

	var sol *solana.Client
	if p, err := chains.Get(chain.IDSolana); err == nil {
		sol = solana.New(p.RPCURL)
	}

	resolver := token.NewResolver(lookupSources(cfg, httpClient), cfg.Resolver.CacheSize, logger)

	deps := exchange.Deps{
		HTTP:     httpClient,
		Resolver: resolver,
		Chains:   chains,
		EVM:      dialer,
		Solana:   sol,
		Logger:   logger,
	}

	var adapters []exchange.Adapter
	for _, ec := range cfg.Exchanges {
		if !ec.Enabled {
			continue
		}
		adapter, err := exchange.Create(ec.Name, ec, deps)
		if err != nil {
			logger.Warn("Skipping exchange", "exchange", ec.Name, "error", err)
			continue
		}
		adapters = append(adapters, adapter)
		logger.Info("Exchange adapter ready",
			"exchange", adapter.Name(),
			"category", adapter.Category())
	}

	engine, err := aggregate.New(adapters, cfg.Server.QuoteTimeout.ToDuration(), logger)
	if err != nil {
		dialer.Close()
		return nil, nil, nil, err
	}

	var mailer server.Sender
	if cfg.EmailConfigured() {
		m, err := notify.NewMailer(cfg.Email, logger)
		if err != nil {
			dialer.Close()
			return nil, nil, nil, fmt.Errorf("email notifier: %w", err)
		}
		mailer = m
	}

	return engine, mailer, func() { dialer.Close() }, nil
}

// lookupSources builds the resolver cascade in priority order.
// CoinMarketCap joins only when a key is configured; it has no keyless
// tier.
func lookupSources(cfg *config.Config, client *httpx.Client) []token.Source {
	srcs := []token.Source{
		lookup.NewCoinGecko(client, cfg.Resolver.CoinGeckoAPIKey, ""),
	}
	if cfg.Resolver.CoinMarketCapAPIKey != "" {
		srcs = append(srcs, lookup.NewCoinMarketCap(client, cfg.Resolver.CoinMarketCapAPIKey, ""))
	}
	srcs = append(srcs,
		lookup.NewDexScreener(client, ""),
		lookup.NewEthplorer(client, cfg.Resolver.EthplorerAPIKey, ""),
	)
	return srcs
}
