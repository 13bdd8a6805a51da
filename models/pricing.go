package models

import "github.com/akerlund/optbatch/options"

// PricingModel values a whole contract set at once. Implementations must be
// safe for concurrent use: batch partitions share a single model value across
// worker goroutines, so methods may not mutate model state.
type PricingModel interface {
	// Price returns one theoretical price per contract, index-aligned
	// with the set's columns.
	Price(set *options.ContractSet) []float64

	// Greeks returns the five sensitivities per contract, index-aligned
	// with the set's columns.
	Greeks(set *options.ContractSet) []options.Greeks

	// Name identifies the model in logs and summaries.
	Name() string
}
