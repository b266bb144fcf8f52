package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration for the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	Fund    FundConfig    `mapstructure:"fund"`
	Signals SignalsConfig `mapstructure:"signals"`
	Quotes  QuotesConfig  `mapstructure:"quotes"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// Holding declares one fund constituent with its fixed weight.
// The weight is a positive fraction; weights need not sum to 1, the
// simulator normalizes by their sum. Name is display-only.
type Holding struct {
	Symbol string  `mapstructure:"symbol"`
	Weight float64 `mapstructure:"weight"`
	Name   string  `mapstructure:"name"`
}

// FundConfig identifies the tracked fund and its disclosed top holdings.
type FundConfig struct {
	Code            string    `mapstructure:"code"`
	Name            string    `mapstructure:"name"`
	ReferenceSymbol string    `mapstructure:"reference_symbol"`
	Holdings        []Holding `mapstructure:"holdings"`
}

// SignalsConfig defines the threshold rule settings. The sentiment pair is
// an explicit configuration value, never inferred from the weight table.
type SignalsConfig struct {
	MacroShockThreshold float64 `mapstructure:"macro_shock_threshold"`
	ArbitrageThreshold  float64 `mapstructure:"arbitrage_threshold"`
	SentimentThreshold  float64 `mapstructure:"sentiment_threshold"`
	SentimentPairA      string  `mapstructure:"sentiment_pair_a"`
	SentimentPairB      string  `mapstructure:"sentiment_pair_b"`
}

// QuotesConfig defines the quote provider settings.
type QuotesConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	Range      string        `mapstructure:"range"`
	MaxRetries int           `mapstructure:"max_retries"`
}

// LoggingConfig defines the log output settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	err = v.ReadInConfig()
	if err != nil {
		return
	}

	err = v.Unmarshal(&config)
	return
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("signals.macro_shock_threshold", 0.006)
	v.SetDefault("signals.arbitrage_threshold", 0.01)
	v.SetDefault("signals.sentiment_threshold", 0.03)

	v.SetDefault("quotes.base_url", "https://query1.finance.yahoo.com")
	v.SetDefault("quotes.timeout", "10s")
	v.SetDefault("quotes.range", "5d")
	v.SetDefault("quotes.max_retries", 3)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// Validate checks the configuration invariants. A violation is a startup
// error: the engine must never run against a holding table that would
// silently produce misleading zeros.
func (c *Config) Validate() error {
	if len(c.Fund.Holdings) == 0 {
		return fmt.Errorf("fund.holdings must declare at least one holding")
	}
	if c.Fund.ReferenceSymbol == "" {
		return fmt.Errorf("fund.reference_symbol is required")
	}

	seen := make(map[string]bool, len(c.Fund.Holdings))
	totalWeight := 0.0
	for _, h := range c.Fund.Holdings {
		if h.Symbol == "" {
			return fmt.Errorf("fund.holdings: symbol must not be empty")
		}
		if seen[h.Symbol] {
			return fmt.Errorf("fund.holdings: duplicate symbol %s", h.Symbol)
		}
		seen[h.Symbol] = true
		if h.Weight <= 0 {
			return fmt.Errorf("fund.holdings: weight for %s must be positive", h.Symbol)
		}
		totalWeight += h.Weight
	}
	if totalWeight <= 0 {
		return fmt.Errorf("fund.holdings: total weight must be positive")
	}

	if c.Signals.MacroShockThreshold <= 0 {
		return fmt.Errorf("signals.macro_shock_threshold must be positive")
	}
	if c.Signals.ArbitrageThreshold <= 0 {
		return fmt.Errorf("signals.arbitrage_threshold must be positive")
	}
	if c.Signals.SentimentThreshold <= 0 {
		return fmt.Errorf("signals.sentiment_threshold must be positive")
	}
	if c.Signals.SentimentPairA == "" || c.Signals.SentimentPairB == "" {
		return fmt.Errorf("signals.sentiment_pair_a and signals.sentiment_pair_b are required")
	}
	if c.Signals.SentimentPairA == c.Signals.SentimentPairB {
		return fmt.Errorf("signals sentiment pair must be two distinct symbols")
	}
	if !seen[c.Signals.SentimentPairA] {
		return fmt.Errorf("signals.sentiment_pair_a %s is not a declared holding", c.Signals.SentimentPairA)
	}
	if !seen[c.Signals.SentimentPairB] {
		return fmt.Errorf("signals.sentiment_pair_b %s is not a declared holding", c.Signals.SentimentPairB)
	}

	if c.Quotes.Timeout <= 0 {
		return fmt.Errorf("quotes.timeout must be positive")
	}
	if c.Quotes.MaxRetries < 1 {
		return fmt.Errorf("quotes.max_retries must be at least 1")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}

// Symbols returns the holding symbols in their declared order.
func (c *Config) Symbols() []string {
	symbols := make([]string, 0, len(c.Fund.Holdings))
	for _, h := range c.Fund.Holdings {
		symbols = append(symbols, h.Symbol)
	}
	return symbols
}
