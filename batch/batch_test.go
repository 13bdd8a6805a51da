package batch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akerlund/optbatch/models"
	"github.com/akerlund/optbatch/options"
)

// S=K=100 r=0.05 q=0 sigma=0.2 T=1
const (
	goldenCall = 10.450583572185565
	goldenPut  = 5.573526022256971
)

func goldenSet(t *testing.T) *options.ContractSet {
	t.Helper()

	settle := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)
	oneYear := settle.Add(time.Duration(options.SecondsPerYear) * time.Second)

	set, err := options.NewContractSet(
		[]string{"AAPL", "AAPL", "MSFT"},
		[]options.OptionType{options.Call, options.Put, options.Call},
		[]float64{100, 100, 250},
		[]float64{100, 100, 260},
		[]time.Time{settle, settle, settle},
		[]time.Time{oneYear, oneYear, oneYear},
		[]float64{0, 0, 0.01},
		[]float64{0.05, 0.05, 0.04},
		[]float64{0.2, 0.2, 0.35},
	)
	require.NoError(t, err)
	return set
}

func TestDefault(t *testing.T) {
	b := Default()

	assert.Equal(t, 0, b.Len())
	assert.Equal(t, "black_scholes", b.Model.Name())

	records, err := b.Records()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestComputeOutputs(t *testing.T) {
	b := New(goldenSet(t), models.BlackScholesModel{})

	b.ComputePrices()
	require.Len(t, b.Prices, 3)
	assert.InDelta(t, goldenCall, b.Prices[0], 1e-9)
	assert.InDelta(t, goldenPut, b.Prices[1], 1e-9)

	b.ComputeGreeks()
	require.Len(t, b.Greeks, 3)
	assert.InDelta(t, 0.63683, b.Greeks[0].Delta, 1e-4)
	assert.InDelta(t, -0.36317, b.Greeks[1].Delta, 1e-4)
}

func TestRecords(t *testing.T) {
	b := New(goldenSet(t), models.BlackScholesModel{})

	t.Run("requires both outputs", func(t *testing.T) {
		_, err := b.Records()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "priced")

		b.ComputePrices()
		_, err = b.Records()
		require.Error(t, err)
	})

	t.Run("flattens inputs and outputs", func(t *testing.T) {
		b.ComputeGreeks()

		records, err := b.Records()
		require.NoError(t, err)
		require.Len(t, records, 3)

		r := records[0]
		assert.Equal(t, "AAPL", r.Ticker)
		assert.Equal(t, options.Call, r.Type)
		assert.Equal(t, 100.0, r.Underlying)
		assert.Equal(t, "2024-01-02T00:00:00Z", r.Settle)
		assert.Equal(t, "2025-01-01T06:00:00Z", r.Maturity)
		assert.InDelta(t, 1.0, r.Duration, 1e-12)
		assert.InDelta(t, goldenCall, r.Price, 1e-9)
		assert.InDelta(t, 0.63683, r.Delta, 1e-4)
	})
}

func TestInTheMoneyScenario(t *testing.T) {
	settle := time.Date(2022, time.September, 14, 2, 22, 0, 0, time.UTC)
	maturity := time.Date(2022, time.November, 18, 15, 0, 0, 0, time.UTC)

	set, err := options.NewContractSet(
		[]string{"AAPL"},
		[]options.OptionType{options.Call},
		[]float64{120},
		[]float64{110},
		[]time.Time{settle},
		[]time.Time{maturity},
		[]float64{0.03},
		[]float64{0.03},
		[]float64{0.35},
	)
	require.NoError(t, err)

	b := New(set, models.BlackScholesModel{})
	b.ComputePrices()
	b.ComputeGreeks()

	// time value on top of the 10 point intrinsic
	assert.Greater(t, b.Prices[0], 10.0)
	assert.Less(t, b.Prices[0], 20.0)
	assert.Greater(t, b.Greeks[0].Delta, 0.5)
	assert.Zero(t, b.CountNonFinite())

	records, err := b.Records()
	require.NoError(t, err)
	assert.Equal(t, "2022-11-18T15:00:00Z", records[0].Maturity)
}

func TestCountNonFinite(t *testing.T) {
	settle := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)
	oneYear := settle.Add(time.Duration(options.SecondsPerYear) * time.Second)

	// row 1 has an undefined price, row 2 prices fine but its gamma blows up
	set, err := options.NewContractSet(
		[]string{"OK", "ATM0", "ITM0"},
		[]options.OptionType{options.Call, options.Call, options.Call},
		[]float64{100, 100, 120},
		[]float64{100, 100, 100},
		[]time.Time{settle, settle, settle},
		[]time.Time{oneYear, oneYear, oneYear},
		[]float64{0, 0, 0},
		[]float64{0.05, 0, 0},
		[]float64{0.2, 0, 0},
	)
	require.NoError(t, err)

	b := New(set, models.BlackScholesModel{})
	b.ComputePrices()

	assert.Equal(t, 1, b.CountNonFinite(), "price scan only")

	b.ComputeGreeks()
	assert.Equal(t, 2, b.CountNonFinite())
}
