package options

import "fmt"

// Greeks holds the five price sensitivities of a single contract.
// The zero value is the placeholder used before computation.
type Greeks struct {
	Delta float64
	Gamma float64
	Vega  float64
	Theta float64
	Rho   float64
}

func (g Greeks) String() string {
	return fmt.Sprintf("Delta: %.4f Gamma: %.4f Vega: %.4f Theta: %.4f Rho: %.4f",
		g.Delta, g.Gamma, g.Vega, g.Theta, g.Rho)
}
