package options

import "time"

// RecordTimeLayout is the timestamp format used in output records.
const RecordTimeLayout = time.RFC3339

// Record is one fully-valued contract flattened for export. Inputs come
// first in source column order, then price and the five greeks.
type Record struct {
	Ticker     string     `csv:"ticker" json:"ticker"`
	Type       OptionType `csv:"opt_type" json:"opt_type"`
	Underlying float64    `csv:"underlying" json:"underlying"`
	Strike     float64    `csv:"strike" json:"strike"`
	Settle     string     `csv:"settle" json:"settle"`
	Maturity   string     `csv:"maturity" json:"maturity"`
	Duration   float64    `csv:"duration" json:"duration"`
	Dividend   float64    `csv:"dividend" json:"dividend"`
	RFR        float64    `csv:"rfr" json:"rfr"`
	Volatility float64    `csv:"volatility" json:"volatility"`
	Price      float64    `csv:"price" json:"price"`
	Delta      float64    `csv:"delta" json:"delta"`
	Gamma      float64    `csv:"gamma" json:"gamma"`
	Vega       float64    `csv:"vega" json:"vega"`
	Theta      float64    `csv:"theta" json:"theta"`
	Rho        float64    `csv:"rho" json:"rho"`
}
