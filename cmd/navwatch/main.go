package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"navwatch/internal/config"
	"navwatch/internal/engine"
	"navwatch/internal/model"
	"navwatch/internal/quote"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg.Logging)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	provider := quote.NewYahooClient(
		cfg.Quotes.BaseURL,
		cfg.Quotes.Range,
		cfg.Quotes.Timeout,
		cfg.Quotes.MaxRetries,
		logger,
	)

	eng, err := engine.New(logger, provider, &cfg)
	if err != nil {
		log.Fatalf("cannot build engine: %v", err)
	}

	snapshot, err := eng.Run(ctx)
	if err != nil {
		log.Fatalf("snapshot aborted: %v", err)
	}

	render(os.Stdout, snapshot)
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

// render writes the cockpit view: headline metrics, alerts, data warnings,
// and the per-holding attribution table.
func render(out io.Writer, s *model.Snapshot) {
	fmt.Fprintf(out, "%s | fund %s | snapshot %s\n", s.FundName, s.FundCode, s.Time.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "fund sim: %+.2f%%   reference %s: %.1f (%+.2f%%)\n\n",
		s.SimulatedReturn*100, s.Reference.Symbol, s.Reference.LastPrice, s.Reference.Return*100)

	if len(s.Alerts) > 0 {
		for _, a := range s.Alerts {
			fmt.Fprintf(out, "ALERT [%s] %s\n", a.Category, a.Message)
		}
		fmt.Fprintln(out)
	}

	if len(s.Warnings) > 0 {
		for _, w := range s.Warnings {
			fmt.Fprintf(out, "warning: %s\n", w.Message)
		}
		fmt.Fprintln(out)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SYMBOL\tNAME\tWEIGHT\tPRICE\tCHANGE\tCONTRIBUTION")
	for i, c := range s.Contributions {
		price := "--"
		change := "--"
		if !s.Holdings[i].Missing {
			price = fmt.Sprintf("%.2f", s.Holdings[i].LastPrice)
			change = fmt.Sprintf("%+.2f%%", c.Return*100)
		}
		fmt.Fprintf(tw, "%s\t%s\t%.4f\t%s\t%s\t%+.4f%%\n",
			c.Symbol, c.Name, c.Weight, price, change, c.Contribution*100)
	}
	tw.Flush()
}
