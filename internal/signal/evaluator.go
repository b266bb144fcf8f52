// Package signal applies the fixed threshold rule set to a computed
// snapshot and produces zero or more alerts for the presentation layer.
package signal

import (
	"fmt"
	"math"

	"navwatch/internal/config"
	"navwatch/internal/model"
)

// Evaluator holds the threshold rules. All thresholds and the sentiment
// pair come from configuration at construction; nothing is derived at
// evaluation time.
type Evaluator struct {
	cfg config.SignalsConfig
}

// New creates an Evaluator with the given rule settings.
func New(cfg config.SignalsConfig) *Evaluator {
	return &Evaluator{cfg: cfg}
}

// Evaluate runs the rules in their fixed order against the simulated fund
// return, the reference return, and the per-instrument returns. The rules
// are independent: a snapshot may trigger none or all of them, and the
// output preserves rule order. A symbol absent from returnsBySymbol reads
// as a zero return. Evaluate never fails.
func (e *Evaluator) Evaluate(simulated float64, reference model.InstrumentReturn, returnsBySymbol map[string]float64) []model.Alert {
	var alerts []model.Alert

	// Rule 1: macro shock on the reference proxy, either direction.
	if math.Abs(reference.Return) > e.cfg.MacroShockThreshold {
		alerts = append(alerts, model.Alert{
			Category: model.CategoryMacroShock,
			Message: fmt.Sprintf("reference %s moved %+.2f%%, beyond the %.2f%% macro shock band",
				reference.Symbol, reference.Return*100, e.cfg.MacroShockThreshold*100),
		})
	}

	// Rule 2: reference-over-fund premium. Asymmetric: only a premium of
	// the reference over the simulated fund triggers, not the inverse.
	if diff := reference.Return - simulated; diff > e.cfg.ArbitrageThreshold {
		alerts = append(alerts, model.Alert{
			Category: model.CategoryArbitrage,
			Message: fmt.Sprintf("reference vs fund premium %+.2f%% above the %.2f%% arbitrage threshold",
				diff*100, e.cfg.ArbitrageThreshold*100),
		})
	}

	// Rule 3: spread between the two configured leading holdings.
	spread := returnsBySymbol[e.cfg.SentimentPairA] - returnsBySymbol[e.cfg.SentimentPairB]
	if math.Abs(spread) > e.cfg.SentimentThreshold {
		alerts = append(alerts, model.Alert{
			Category: model.CategorySentimentDivergence,
			Message: fmt.Sprintf("leading pair %s vs %s spread %+.2f%%, beyond the %.2f%% divergence band",
				e.cfg.SentimentPairA, e.cfg.SentimentPairB, spread*100, e.cfg.SentimentThreshold*100),
		})
	}

	return alerts
}
