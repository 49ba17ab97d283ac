package config

import "time"

// Operating modes for the process.
const (
	// ModeMCP serves the tool API over stdio only.
	ModeMCP = "mcp"
	// ModeHTTP serves the HTTP API only.
	ModeHTTP = "http"
	// ModeBoth serves stdio tools and the HTTP API together.
	ModeBoth = "both"
)

// KnownExchanges lists every built-in adapter name. Outcome order in an
// aggregation follows the order exchanges appear in the configuration,
// which defaults to this one.
var KnownExchanges = []string{
	"binance", "coinbase", "kraken", "okx",
	"uniswap", "pancakeswap", "curve", "sushiswap",
	"oneinch", "zerox", "jupiter", "raydium",
}

// Config is the root configuration structure
type Config struct {
	Mode      string           `yaml:"mode"`
	Server    ServerConfig     `yaml:"server"`
	Exchanges []ExchangeConfig `yaml:"exchanges"`
	Chains    []ChainConfig    `yaml:"chains"`
	Resolver  ResolverConfig   `yaml:"resolver"`
	Email     EmailConfig      `yaml:"email"`
	Metrics   MetricsConfig    `yaml:"metrics"`
	Logging   LoggingConfig    `yaml:"logging"`
}

// ServerConfig configures the aggregation engine and its surfaces
type ServerConfig struct {
	DefaultChainID int64      `yaml:"default_chain_id"` // chain used when a request does not pin one
	QuoteTimeout   Duration   `yaml:"quote_timeout"`    // per-adapter budget inside a fan-out
	HTTP           HTTPConfig `yaml:"http"`
}

// HTTPConfig configures the HTTP API
type HTTPConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// ExchangeConfig configures one exchange adapter
type ExchangeConfig struct {
	Name      string                 `yaml:"name"`
	Enabled   bool                   `yaml:"enabled"`
	BaseURL   string                 `yaml:"base_url"`
	APIKey    string                 `yaml:"api_key"`
	RateLimit RateLimitConfig        `yaml:"rate_limit"`
	Config    map[string]interface{} `yaml:"config"`
}

// RateLimitConfig caps the outbound request rate of one adapter.
// A zero rate disables limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// ChainConfig overrides a built-in chain profile, or defines a new one
type ChainConfig struct {
	ID             int64  `yaml:"id"`
	Name           string `yaml:"name"`
	RPCURL         string `yaml:"rpc_url"`
	WrappedNative  string `yaml:"wrapped_native"`
	Stable         string `yaml:"stable"`
	StableSymbol   string `yaml:"stable_symbol"`
	StableDecimals int    `yaml:"stable_decimals"`
}

// ResolverConfig configures the token resolver cascade
type ResolverConfig struct {
	CoinGeckoAPIKey     string `yaml:"coingecko_api_key"`
	CoinMarketCapAPIKey string `yaml:"coinmarketcap_api_key"`
	EthplorerAPIKey     string `yaml:"ethplorer_api_key"`
	CacheSize           int    `yaml:"cache_size"` // 0 uses the built-in default
}

// EmailConfig configures the SMTP notifier. An empty host disables it.
type EmailConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

// MetricsConfig configures Prometheus metrics
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// LoggingConfig configures logging
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Duration is a wrapper around time.Duration for YAML parsing
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	td, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(td)
	return nil
}

// ToDuration converts Duration to time.Duration
func (d Duration) ToDuration() time.Duration {
	return time.Duration(d)
}
