// Package returns converts raw price histories into latest fractional
// returns. The conversion is total: bad feeds produce an explicit zero
// result instead of an error, so one broken instrument can never fail a
// whole snapshot.
package returns

import (
	"math"

	"navwatch/internal/model"
)

// Normalize derives the latest fractional return for one instrument from
// its chronological close history. Points with a missing close (NaN or Inf)
// are discarded. If fewer than two valid closes remain, the result is a
// zero return marked Missing. A non-positive prior close is a degenerate
// feed and also yields a zero return, guarded rather than divided.
func Normalize(symbol string, history []model.PricePoint) model.InstrumentReturn {
	closes := make([]float64, 0, len(history))
	for _, p := range history {
		if math.IsNaN(p.Close) || math.IsInf(p.Close, 0) {
			continue
		}
		closes = append(closes, p.Close)
	}

	if len(closes) < 2 {
		return model.InstrumentReturn{Symbol: symbol, Missing: true}
	}

	last := closes[len(closes)-1]
	prev := closes[len(closes)-2]

	if prev <= 0 {
		return model.InstrumentReturn{Symbol: symbol, LastPrice: last}
	}

	return model.InstrumentReturn{
		Symbol:    symbol,
		Return:    (last - prev) / prev,
		LastPrice: last,
	}
}
