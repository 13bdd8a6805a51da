package options

import (
	"fmt"
	"time"
)

// SecondsPerYear converts settle-to-maturity spans into year fractions.
const SecondsPerYear = 60.0 * 60.0 * 24.0 * 365.25

// ContractSet is columnar storage for a batch of vanilla option contracts.
// All slices are index-aligned and share the same length; row i across every
// column describes one contract. Sets are immutable once constructed:
// partitioning and merging build new sets instead of mutating rows.
type ContractSet struct {
	Tickers    []string
	Types      []OptionType
	Underlying []float64
	Strike     []float64
	Settles    []time.Time
	Maturities []time.Time
	Duration   []float64
	Dividend   []float64
	RFR        []float64
	Volatility []float64
}

// NewContractSet builds a set from the nine raw input columns. Duration is
// always derived from the settle and maturity columns, never supplied.
// Columns of unequal length are rejected.
func NewContractSet(tickers []string, types []OptionType, underlying, strike []float64,
	settles, maturities []time.Time, dividend, rfr, volatility []float64) (*ContractSet, error) {

	n := len(tickers)
	cols := []struct {
		name string
		len  int
	}{
		{"opt_type", len(types)},
		{"underlying", len(underlying)},
		{"strike", len(strike)},
		{"settle", len(settles)},
		{"maturity", len(maturities)},
		{"dividend", len(dividend)},
		{"rfr", len(rfr)},
		{"volatility", len(volatility)},
	}
	for _, c := range cols {
		if c.len != n {
			return nil, fmt.Errorf("column length mismatch: %s has %d rows, ticker has %d", c.name, c.len, n)
		}
	}

	return &ContractSet{
		Tickers:    tickers,
		Types:      types,
		Underlying: underlying,
		Strike:     strike,
		Settles:    settles,
		Maturities: maturities,
		Duration:   durations(settles, maturities),
		Dividend:   dividend,
		RFR:        rfr,
		Volatility: volatility,
	}, nil
}

// Len reports the number of contracts in the set.
func (c *ContractSet) Len() int {
	return len(c.Tickers)
}

// Slice returns a new set holding rows [lo, hi). Every raw column is copied
// so the result owns its rows outright; duration is recomputed from the
// copied timestamps, which reproduces the source values exactly.
// Out-of-range bounds panic like ordinary slicing.
func (c *ContractSet) Slice(lo, hi int) *ContractSet {
	out := &ContractSet{
		Tickers:    make([]string, hi-lo),
		Types:      make([]OptionType, hi-lo),
		Underlying: make([]float64, hi-lo),
		Strike:     make([]float64, hi-lo),
		Settles:    make([]time.Time, hi-lo),
		Maturities: make([]time.Time, hi-lo),
		Dividend:   make([]float64, hi-lo),
		RFR:        make([]float64, hi-lo),
		Volatility: make([]float64, hi-lo),
	}
	copy(out.Tickers, c.Tickers[lo:hi])
	copy(out.Types, c.Types[lo:hi])
	copy(out.Underlying, c.Underlying[lo:hi])
	copy(out.Strike, c.Strike[lo:hi])
	copy(out.Settles, c.Settles[lo:hi])
	copy(out.Maturities, c.Maturities[lo:hi])
	copy(out.Dividend, c.Dividend[lo:hi])
	copy(out.RFR, c.RFR[lo:hi])
	copy(out.Volatility, c.Volatility[lo:hi])
	out.Duration = durations(out.Settles, out.Maturities)
	return out
}

// Append concatenates other's rows onto the receiver, column by column.
// Intended for merge accumulators still under construction; duration is
// carried over directly since it is a pure function of the timestamps.
func (c *ContractSet) Append(other *ContractSet) {
	c.Tickers = append(c.Tickers, other.Tickers...)
	c.Types = append(c.Types, other.Types...)
	c.Underlying = append(c.Underlying, other.Underlying...)
	c.Strike = append(c.Strike, other.Strike...)
	c.Settles = append(c.Settles, other.Settles...)
	c.Maturities = append(c.Maturities, other.Maturities...)
	c.Duration = append(c.Duration, other.Duration...)
	c.Dividend = append(c.Dividend, other.Dividend...)
	c.RFR = append(c.RFR, other.RFR...)
	c.Volatility = append(c.Volatility, other.Volatility...)
}

func durations(settles, maturities []time.Time) []float64 {
	durs := make([]float64, len(settles))
	for i := range settles {
		durs[i] = maturities[i].Sub(settles[i]).Seconds() / SecondsPerYear
	}
	return durs
}
