package model

import "time"

// PricePoint represents a single daily close for one instrument.
type PricePoint struct {
	Time  time.Time
	Close float64
}

// InstrumentReturn is the normalized outcome for one instrument: either a
// valid latest fractional return with its close, or an explicit "no data"
// result (Missing=true, zero return, zero price).
type InstrumentReturn struct {
	Symbol    string
	Return    float64
	LastPrice float64
	Missing   bool
}

// AlertCategory classifies a triggered signal rule.
type AlertCategory string

const (
	CategoryMacroShock          AlertCategory = "macro-shock"
	CategoryArbitrage           AlertCategory = "arbitrage"
	CategorySentimentDivergence AlertCategory = "sentiment-divergence"
)

// Alert is a single triggered signal, display-only.
type Alert struct {
	Category AlertCategory
	Message  string
}

// Warning is a non-fatal data problem surfaced to the renderer, typically
// an instrument whose feed produced fewer than two usable closes.
type Warning struct {
	Symbol  string
	Message string
}

// Contribution is one holding's weighted contribution to the simulated
// fund return.
type Contribution struct {
	Symbol       string
	Name         string
	Weight       float64
	Return       float64
	Contribution float64
}

// Snapshot is the result of one full fetch-compute cycle, handed to the
// presentation layer and discarded.
type Snapshot struct {
	ID              string
	Time            time.Time
	FundCode        string
	FundName        string
	SimulatedReturn float64
	Reference       InstrumentReturn
	Holdings        []InstrumentReturn
	Contributions   []Contribution
	Alerts          []Alert
	Warnings        []Warning
}
