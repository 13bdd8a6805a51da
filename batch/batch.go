// Package batch pairs a contract set with a pricing model and holds the
// computed outputs alongside the inputs.
package batch

import (
	"fmt"
	"math"

	"github.com/akerlund/optbatch/models"
	"github.com/akerlund/optbatch/options"
)

// OptionBatch is the unit of valuation work: the contracts, the model that
// values them, and the outputs once computed. Prices and Greeks stay nil
// until the corresponding Compute call runs, which is how merge and export
// tell valued batches from raw ones.
type OptionBatch struct {
	Set    *options.ContractSet
	Model  models.PricingModel
	Prices []float64
	Greeks []options.Greeks
}

// New pairs a contract set with a pricing model.
func New(set *options.ContractSet, model models.PricingModel) *OptionBatch {
	return &OptionBatch{Set: set, Model: model}
}

// Default returns an empty batch wired to the Black-Scholes model.
func Default() *OptionBatch {
	return &OptionBatch{Set: &options.ContractSet{}, Model: models.BlackScholesModel{}}
}

// Len reports the number of contracts in the batch.
func (b *OptionBatch) Len() int {
	return b.Set.Len()
}

// ComputePrices values every contract and stores the results.
func (b *OptionBatch) ComputePrices() {
	b.Prices = b.Model.Price(b.Set)
}

// ComputeGreeks computes sensitivities for every contract and stores them.
func (b *OptionBatch) ComputeGreeks() {
	b.Greeks = b.Model.Greeks(b.Set)
}

// Records flattens the batch into export rows, one per contract. Both
// prices and greeks must have been computed first.
func (b *OptionBatch) Records() ([]options.Record, error) {
	n := b.Len()
	if len(b.Prices) != n || len(b.Greeks) != n {
		return nil, fmt.Errorf("batch must be priced and greeks computed before building records")
	}

	records := make([]options.Record, n)
	for i := range records {
		records[i] = options.Record{
			Ticker:     b.Set.Tickers[i],
			Type:       b.Set.Types[i],
			Underlying: b.Set.Underlying[i],
			Strike:     b.Set.Strike[i],
			Settle:     b.Set.Settles[i].Format(options.RecordTimeLayout),
			Maturity:   b.Set.Maturities[i].Format(options.RecordTimeLayout),
			Duration:   b.Set.Duration[i],
			Dividend:   b.Set.Dividend[i],
			RFR:        b.Set.RFR[i],
			Volatility: b.Set.Volatility[i],
			Price:      b.Prices[i],
			Delta:      b.Greeks[i].Delta,
			Gamma:      b.Greeks[i].Gamma,
			Vega:       b.Greeks[i].Vega,
			Theta:      b.Greeks[i].Theta,
			Rho:        b.Greeks[i].Rho,
		}
	}
	return records, nil
}

// CountNonFinite reports how many contracts produced a NaN or infinite
// price or greek. Degenerate inputs are allowed to flow through the model
// untouched, so this is the hook for surfacing them after a run.
func (b *OptionBatch) CountNonFinite() int {
	count := 0
	for i := range b.Prices {
		if !isFinite(b.Prices[i]) {
			count++
			continue
		}
		if i < len(b.Greeks) {
			g := b.Greeks[i]
			if !isFinite(g.Delta) || !isFinite(g.Gamma) || !isFinite(g.Vega) || !isFinite(g.Theta) || !isFinite(g.Rho) {
				count++
			}
		}
	}
	return count
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
