package models

import (
	"math"

	"github.com/akerlund/optbatch/options"
)

const (
	maxIterations = 100
	epsilon       = 1e-8
)

// ImpliedVolatility inverts the pricing formula with Newton-Raphson,
// returning the volatility at which the model reproduces targetPrice.
// Returns NaN when the iteration fails to converge.
func (m BlackScholesModel) ImpliedVolatility(typ options.OptionType, targetPrice, u, k, t, q, r float64) float64 {
	sigma := 0.5 // Initial guess
	for i := 0; i < maxIterations; i++ {
		price := m.priceOne(typ, u, k, t, q, r, sigma)

		diff := price - targetPrice
		if math.Abs(diff) < epsilon {
			return sigma
		}

		d1, _ := d1d2(u, k, t, q, r, sigma)
		vega := u * math.Exp(-q*t) * math.Sqrt(t) * stdNormal.Prob(d1)

		sigma = sigma - diff/vega
		if sigma <= 0 {
			sigma = 0.0001 // Avoid negative volatility
		}
	}
	return math.NaN() // Failed to converge
}
