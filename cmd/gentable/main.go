package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"
)

type contractRow struct {
	Ticker     string  `csv:"ticker"`
	OptType    string  `csv:"opt_type"`
	Underlying float64 `csv:"underlying"`
	Strike     float64 `csv:"strike"`
	Settle     string  `csv:"settle"`
	Maturity   string  `csv:"maturity"`
	Dividend   float64 `csv:"dividend"`
	RFR        float64 `csv:"rfr"`
	Volatility float64 `csv:"volatility"`
}

type RunArgs struct {
	Rows    int
	Out     string
	Seed    uint64
	Tickers string
	RFR     float64
}

var runCmd = &cobra.Command{
	Use:   "gentable --rows 10000 --out contracts.csv",
	Short: "Generates a random contract CSV for valuation runs.",
	Run: func(cmd *cobra.Command, args []string) {
		rows, err := cmd.Flags().GetInt("rows")
		if err != nil {
			log.Fatalf("error getting rows: %v", err)
		}
		out, err := cmd.Flags().GetString("out")
		if err != nil {
			log.Fatalf("error getting out: %v", err)
		}
		seed, err := cmd.Flags().GetUint64("seed")
		if err != nil {
			log.Fatalf("error getting seed: %v", err)
		}
		tickers, err := cmd.Flags().GetString("tickers")
		if err != nil {
			log.Fatalf("error getting tickers: %v", err)
		}
		rfr, err := cmd.Flags().GetFloat64("rfr")
		if err != nil {
			log.Fatalf("error getting rfr: %v", err)
		}

		if err := Run(RunArgs{
			Rows:    rows,
			Out:     out,
			Seed:    seed,
			Tickers: tickers,
			RFR:     rfr,
		}); err != nil {
			log.Fatalf("Error: %v", err)
		}
		log.Infof("Wrote %d contracts to %s", rows, out)
	},
}

func Run(args RunArgs) error {
	var tickers []string
	for _, t := range strings.Split(args.Tickers, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tickers = append(tickers, t)
		}
	}
	if len(tickers) == 0 {
		return fmt.Errorf("no tickers given")
	}

	rng := rand.New(rand.NewSource(args.Seed))
	base := time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC)

	rows := make([]contractRow, args.Rows)
	for i := range rows {
		u := 10 + 490*rng.Float64()
		settle := base.Add(time.Duration(rng.Intn(250)) * 24 * time.Hour)
		maturity := settle.Add(time.Duration(7+rng.Intn(723)) * 24 * time.Hour)

		optType := "Call"
		if rng.Float64() < 0.5 {
			optType = "Put"
		}

		rows[i] = contractRow{
			Ticker:     tickers[rng.Intn(len(tickers))],
			OptType:    optType,
			Underlying: u,
			Strike:     u * (0.5 + rng.Float64()),
			Settle:     settle.Format(time.RFC3339),
			Maturity:   maturity.Format(time.RFC3339),
			Dividend:   0.05 * rng.Float64(),
			RFR:        args.RFR,
			Volatility: 0.1 + 0.7*rng.Float64(),
		}
	}

	file, err := os.Create(args.Out)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %v", err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("error marshalling file: %v", err)
	}
	return nil
}

func main() {
	runCmd.PersistentFlags().Int("rows", 10000, "Number of contracts to generate.")
	runCmd.PersistentFlags().String("out", "contracts.csv", "Path of the CSV to write.")
	runCmd.PersistentFlags().Uint64("seed", 42, "Random seed.")
	runCmd.PersistentFlags().String("tickers", "AAPL,MSFT,TSLA,AMZN,NVDA", "Comma-separated tickers to draw from.")
	runCmd.PersistentFlags().Float64("rfr", 0.0379, "Risk-free rate for every contract.")
	runCmd.Execute()
}
