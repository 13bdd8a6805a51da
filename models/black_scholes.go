package models

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/akerlund/optbatch/options"
)

// theta is quoted per calendar day
const daysPerYear = 365.25

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// BlackScholesModel prices European options in closed form with a flat
// risk-free rate and a continuous dividend yield. The zero value is ready
// to use and carries no state, so a single instance can serve any number
// of goroutines. Degenerate inputs (non-positive volatility or duration)
// flow through the math as NaN or infinities rather than being masked;
// callers decide how to surface them.
type BlackScholesModel struct{}

func (BlackScholesModel) Name() string {
	return "black_scholes"
}

// Price values every contract in the set.
func (m BlackScholesModel) Price(set *options.ContractSet) []float64 {
	prices := make([]float64, set.Len())
	for i := range prices {
		prices[i] = m.priceOne(set.Types[i], set.Underlying[i], set.Strike[i],
			set.Duration[i], set.Dividend[i], set.RFR[i], set.Volatility[i])
	}
	return prices
}

// Greeks computes delta, gamma, vega, theta and rho for every contract.
func (m BlackScholesModel) Greeks(set *options.ContractSet) []options.Greeks {
	greeks := make([]options.Greeks, set.Len())
	for i := range greeks {
		greeks[i] = m.greeksOne(set.Types[i], set.Underlying[i], set.Strike[i],
			set.Duration[i], set.Dividend[i], set.RFR[i], set.Volatility[i])
	}
	return greeks
}

func (m BlackScholesModel) priceOne(typ options.OptionType, u, k, t, q, r, sigma float64) float64 {
	d1, d2 := d1d2(u, k, t, q, r, sigma)

	switch typ {
	case options.Call:
		return u*math.Exp(-q*t)*stdNormal.CDF(d1) - k*math.Exp(-r*t)*stdNormal.CDF(d2)
	case options.Put:
		return k*math.Exp(-r*t)*stdNormal.CDF(-d2) - u*math.Exp(-q*t)*stdNormal.CDF(-d1)
	}
	panic("optbatch: invalid option type " + typ.String())
}

func (m BlackScholesModel) greeksOne(typ options.OptionType, u, k, t, q, r, sigma float64) options.Greeks {
	d1, d2 := d1d2(u, k, t, q, r, sigma)

	divDiscount := math.Exp(-q * t)
	rateDiscount := math.Exp(-r * t)
	density := stdNormal.Prob(d1)

	gamma := divDiscount * density / (u * sigma * math.Sqrt(t))
	vega := u / 100 * divDiscount * math.Sqrt(t) * density
	decay := -u * sigma * divDiscount * density / (2 * math.Sqrt(t))

	switch typ {
	case options.Call:
		return options.Greeks{
			Delta: divDiscount * stdNormal.CDF(d1),
			Gamma: gamma,
			Vega:  vega,
			Theta: (decay - r*k*rateDiscount*stdNormal.CDF(d2) + q*u*divDiscount*stdNormal.CDF(d1)) / daysPerYear,
			Rho:   k * t / 100 * rateDiscount * stdNormal.CDF(d2),
		}
	case options.Put:
		return options.Greeks{
			Delta: divDiscount * (stdNormal.CDF(d1) - 1),
			Gamma: gamma,
			Vega:  vega,
			Theta: (decay + r*k*rateDiscount*stdNormal.CDF(-d2) - q*u*divDiscount*stdNormal.CDF(-d1)) / daysPerYear,
			Rho:   -k * t / 100 * rateDiscount * stdNormal.CDF(-d2),
		}
	}
	panic("optbatch: invalid option type " + typ.String())
}

func d1d2(u, k, t, q, r, sigma float64) (float64, float64) {
	d1 := (math.Log(u/k) + t*(r-q+sigma*sigma/2)) / (sigma * math.Sqrt(t))
	return d1, d1 - sigma*math.Sqrt(t)
}
