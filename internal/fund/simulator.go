// Package fund simulates the intraday NAV movement of a fixed-composition
// fund as the weighted average of its holdings' latest returns.
package fund

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"navwatch/internal/config"
	"navwatch/internal/model"
)

// Simulator computes the weight-normalized aggregate return over a fixed,
// pre-declared holding set. The holdings and their weights never change
// after construction.
type Simulator struct {
	holdings []config.Holding
	weights  []float64
}

// New creates a Simulator for the given holding table. The total weight
// must be positive; that is a configuration invariant checked here once,
// not per call.
func New(holdings []config.Holding) (*Simulator, error) {
	weights := make([]float64, len(holdings))
	for i, h := range holdings {
		weights[i] = h.Weight
	}
	if floats.Sum(weights) <= 0 {
		return nil, fmt.Errorf("total holding weight must be positive")
	}
	return &Simulator{holdings: holdings, weights: weights}, nil
}

// Simulate returns the weighted-average fractional return across all
// declared holdings. A symbol absent from the returns map contributes a
// zero return but its weight stays in the denominator, so a stale or
// failed instrument drags the result toward zero instead of being omitted.
func (s *Simulator) Simulate(returnsBySymbol map[string]float64) float64 {
	values := make([]float64, len(s.holdings))
	for i, h := range s.holdings {
		values[i] = returnsBySymbol[h.Symbol]
	}
	return stat.Mean(values, s.weights)
}

// Contributions breaks the simulated return down into each holding's
// weighted contribution, in the declared holding order.
func (s *Simulator) Contributions(returnsBySymbol map[string]float64) []model.Contribution {
	contributions := make([]model.Contribution, len(s.holdings))
	for i, h := range s.holdings {
		r := returnsBySymbol[h.Symbol]
		contributions[i] = model.Contribution{
			Symbol:       h.Symbol,
			Name:         h.Name,
			Weight:       h.Weight,
			Return:       r,
			Contribution: h.Weight * r,
		}
	}
	return contributions
}
