package returns

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"navwatch/internal/model"
)

func day(offset int) time.Time {
	return time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func TestNormalize(t *testing.T) {
	t.Run("latest return from last two closes", func(t *testing.T) {
		history := []model.PricePoint{
			{Time: day(0), Close: 98.0},
			{Time: day(1), Close: 100.0},
			{Time: day(2), Close: 102.0},
		}

		r := Normalize("300502.SZ", history)

		assert.False(t, r.Missing)
		assert.Equal(t, "300502.SZ", r.Symbol)
		assert.InDelta(t, 0.02, r.Return, 1e-12)
		assert.Equal(t, 102.0, r.LastPrice)
	})

	t.Run("empty history is missing", func(t *testing.T) {
		r := Normalize("300502.SZ", nil)

		assert.True(t, r.Missing)
		assert.Zero(t, r.Return)
		assert.Zero(t, r.LastPrice)
	})

	t.Run("single close is missing", func(t *testing.T) {
		r := Normalize("300502.SZ", []model.PricePoint{{Time: day(0), Close: 100.0}})

		assert.True(t, r.Missing)
		assert.Zero(t, r.Return)
	})

	t.Run("nan closes are discarded", func(t *testing.T) {
		history := []model.PricePoint{
			{Time: day(0), Close: 100.0},
			{Time: day(1), Close: math.NaN()},
			{Time: day(2), Close: 105.0},
			{Time: day(3), Close: math.NaN()},
		}

		r := Normalize("NQ=F", history)

		assert.False(t, r.Missing)
		assert.InDelta(t, 0.05, r.Return, 1e-12)
		assert.Equal(t, 105.0, r.LastPrice)
	})

	t.Run("all closes invalid is missing", func(t *testing.T) {
		history := []model.PricePoint{
			{Time: day(0), Close: math.NaN()},
			{Time: day(1), Close: math.Inf(1)},
		}

		r := Normalize("NQ=F", history)

		assert.True(t, r.Missing)
	})

	t.Run("zero prior close yields zero return", func(t *testing.T) {
		history := []model.PricePoint{
			{Time: day(0), Close: 0.0},
			{Time: day(1), Close: 50.0},
		}

		r := Normalize("300308.SZ", history)

		assert.False(t, r.Missing)
		assert.Zero(t, r.Return)
		assert.Equal(t, 50.0, r.LastPrice)
	})

	t.Run("negative prior close yields zero return", func(t *testing.T) {
		history := []model.PricePoint{
			{Time: day(0), Close: -1.0},
			{Time: day(1), Close: 50.0},
		}

		r := Normalize("300308.SZ", history)

		assert.Zero(t, r.Return)
	})

	t.Run("negative return preserved", func(t *testing.T) {
		history := []model.PricePoint{
			{Time: day(0), Close: 100.0},
			{Time: day(1), Close: 97.0},
		}

		r := Normalize("600183.SS", history)

		assert.InDelta(t, -0.03, r.Return, 1e-12)
	})
}
