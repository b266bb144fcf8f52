package fund

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"navwatch/internal/config"
)

func tenEqualHoldings() []config.Holding {
	symbols := []string{
		"H01", "H02", "H03", "H04", "H05",
		"H06", "H07", "H08", "H09", "H10",
	}
	holdings := make([]config.Holding, len(symbols))
	for i, s := range symbols {
		holdings[i] = config.Holding{Symbol: s, Weight: 0.1}
	}
	return holdings
}

func TestNew(t *testing.T) {
	t.Run("rejects zero total weight", func(t *testing.T) {
		_, err := New([]config.Holding{})
		assert.Error(t, err)
	})

	t.Run("accepts positive weights", func(t *testing.T) {
		_, err := New(tenEqualHoldings())
		assert.NoError(t, err)
	})
}

func TestSimulator_Simulate(t *testing.T) {
	sim, err := New(tenEqualHoldings())
	require.NoError(t, err)

	t.Run("all zero returns yield exactly zero", func(t *testing.T) {
		returns := map[string]float64{}
		for _, h := range tenEqualHoldings() {
			returns[h.Symbol] = 0.0
		}
		assert.Equal(t, 0.0, sim.Simulate(returns))
	})

	t.Run("missing symbols count as zero but keep their weight", func(t *testing.T) {
		// Nine holdings at +1%, one feed failed: 9*0.1*0.01/1.0 = 0.009.
		returns := map[string]float64{}
		for _, h := range tenEqualHoldings()[:9] {
			returns[h.Symbol] = 0.01
		}
		assert.InDelta(t, 0.009, sim.Simulate(returns), 1e-12)
	})

	t.Run("linear in the returns", func(t *testing.T) {
		returns := map[string]float64{
			"H01": 0.02, "H02": -0.01, "H03": 0.005, "H04": 0.0, "H05": 0.03,
			"H06": -0.02, "H07": 0.015, "H08": 0.001, "H09": -0.004, "H10": 0.01,
		}
		scaled := make(map[string]float64, len(returns))
		for s, r := range returns {
			scaled[s] = 3.0 * r
		}
		assert.InDelta(t, 3.0*sim.Simulate(returns), sim.Simulate(scaled), 1e-12)
	})

	t.Run("normalizes by the weight sum", func(t *testing.T) {
		// Weights that do not sum to 1: result is still the weighted mean.
		uneven, err := New([]config.Holding{
			{Symbol: "A", Weight: 3.0},
			{Symbol: "B", Weight: 1.0},
		})
		require.NoError(t, err)

		got := uneven.Simulate(map[string]float64{"A": 0.04, "B": 0.0})
		assert.InDelta(t, 0.03, got, 1e-12)
	})

	t.Run("deterministic", func(t *testing.T) {
		returns := map[string]float64{"H01": 0.02, "H05": -0.01}
		assert.Equal(t, sim.Simulate(returns), sim.Simulate(returns))
	})
}

func TestSimulator_Contributions(t *testing.T) {
	sim, err := New([]config.Holding{
		{Symbol: "A", Weight: 0.6, Name: "Alpha"},
		{Symbol: "B", Weight: 0.4, Name: "Beta"},
	})
	require.NoError(t, err)

	contribs := sim.Contributions(map[string]float64{"A": 0.01})

	require.Len(t, contribs, 2)
	assert.Equal(t, "A", contribs[0].Symbol)
	assert.Equal(t, "Alpha", contribs[0].Name)
	assert.InDelta(t, 0.006, contribs[0].Contribution, 1e-12)
	assert.Equal(t, "B", contribs[1].Symbol)
	assert.Zero(t, contribs[1].Contribution)
}
