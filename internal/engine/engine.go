// Package engine orchestrates one full snapshot: fetch quote histories,
// normalize returns, simulate the fund, evaluate signals, and assemble the
// result for the presentation layer.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"navwatch/internal/config"
	"navwatch/internal/fund"
	"navwatch/internal/model"
	"navwatch/internal/quote"
	"navwatch/internal/returns"
	"navwatch/internal/signal"
)

// Engine holds the logic for producing one valuation snapshot. It keeps no
// state between runs; every Run is an independent full recomputation.
type Engine struct {
	logger    *slog.Logger
	provider  quote.Provider
	simulator *fund.Simulator
	evaluator *signal.Evaluator
	cfg       *config.Config
}

// New creates a new Engine. It fails only on configuration invariant
// violations, never on data conditions.
func New(logger *slog.Logger, provider quote.Provider, cfg *config.Config) (*Engine, error) {
	simulator, err := fund.New(cfg.Fund.Holdings)
	if err != nil {
		return nil, fmt.Errorf("build simulator: %w", err)
	}
	return &Engine{
		logger:    logger,
		provider:  provider,
		simulator: simulator,
		evaluator: signal.New(cfg.Signals),
		cfg:       cfg,
	}, nil
}

// Run performs one fetch-compute cycle. Instruments whose feed failed or
// returned too little data contribute a zero return and surface as
// warnings on the snapshot; the cycle itself always completes.
func (e *Engine) Run(ctx context.Context) (*model.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	started := time.Now()
	symbols := append(e.cfg.Symbols(), e.cfg.Fund.ReferenceSymbol)
	e.logger.Info("starting snapshot", "symbols", len(symbols))

	histories := quote.FetchAll(ctx, e.provider, symbols, e.logger)

	holdings := make([]model.InstrumentReturn, 0, len(e.cfg.Fund.Holdings))
	returnsBySymbol := make(map[string]float64, len(e.cfg.Fund.Holdings))
	var warnings []model.Warning

	for _, h := range e.cfg.Fund.Holdings {
		r := returns.Normalize(h.Symbol, histories[h.Symbol])
		holdings = append(holdings, r)
		returnsBySymbol[h.Symbol] = r.Return
		if r.Missing {
			warnings = append(warnings, model.Warning{
				Symbol:  h.Symbol,
				Message: fmt.Sprintf("no usable price data for %s, counted as unchanged", h.Symbol),
			})
		}
	}

	reference := returns.Normalize(e.cfg.Fund.ReferenceSymbol, histories[e.cfg.Fund.ReferenceSymbol])
	if reference.Missing {
		warnings = append(warnings, model.Warning{
			Symbol:  reference.Symbol,
			Message: fmt.Sprintf("no usable price data for reference %s, counted as unchanged", reference.Symbol),
		})
	}

	simulated := e.simulator.Simulate(returnsBySymbol)
	alerts := e.evaluator.Evaluate(simulated, reference, returnsBySymbol)

	e.logger.Info("snapshot complete",
		"simulated_return", simulated,
		"reference_return", reference.Return,
		"alerts", len(alerts),
		"warnings", len(warnings),
		"elapsed", time.Since(started),
	)

	return &model.Snapshot{
		ID:              uuid.NewString(),
		Time:            started,
		FundCode:        e.cfg.Fund.Code,
		FundName:        e.cfg.Fund.Name,
		SimulatedReturn: simulated,
		Reference:       reference,
		Holdings:        holdings,
		Contributions:   e.simulator.Contributions(returnsBySymbol),
		Alerts:          alerts,
		Warnings:        warnings,
	}, nil
}
