package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/montanaflynn/stats"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v7"
	"github.com/vbauerster/mpb/v7/decor"
	"github.com/xhhuango/json"

	"github.com/akerlund/optbatch/batch"
	"github.com/akerlund/optbatch/compute"
	"github.com/akerlund/optbatch/models"
	"github.com/akerlund/optbatch/optcsv"
)

const defaultChunkSize = 1000

type RunArgs struct {
	Input     string
	Output    string
	JSONOut   string
	ChunkSize int
	Workers   int
	Model     string
}

type RunResults struct {
	Count          int
	NonFinite      int
	MeanPrice      float64
	MinPrice       float64
	MaxPrice       float64
	PortfolioDelta float64
	PortfolioVega  float64
}

var runCmd = &cobra.Command{
	Use:   "optbatch --input contracts.csv --output valued.csv",
	Short: "Values a batch of vanilla options and writes prices and greeks.",
	Run: func(cmd *cobra.Command, args []string) {
		input, err := cmd.Flags().GetString("input")
		if err != nil {
			log.Fatalf("error getting input: %v", err)
		}
		output, err := cmd.Flags().GetString("output")
		if err != nil {
			log.Fatalf("error getting output: %v", err)
		}
		jsonOut, err := cmd.Flags().GetString("json")
		if err != nil {
			log.Fatalf("error getting json: %v", err)
		}
		chunkSize, err := cmd.Flags().GetInt("chunk-size")
		if err != nil {
			log.Fatalf("error getting chunk-size: %v", err)
		}
		workers, err := cmd.Flags().GetInt("workers")
		if err != nil {
			log.Fatalf("error getting workers: %v", err)
		}
		model, err := cmd.Flags().GetString("model")
		if err != nil {
			log.Fatalf("error getting model: %v", err)
		}
		verbose, err := cmd.Flags().GetBool("verbose")
		if err != nil {
			log.Fatalf("error getting verbose: %v", err)
		}

		if verbose {
			log.SetLevel(log.DebugLevel)
		}
		if output == "" {
			output = strings.TrimSuffix(input, filepath.Ext(input)) + "_priced.csv"
		}

		result, err := Run(RunArgs{
			Input:     input,
			Output:    output,
			JSONOut:   jsonOut,
			ChunkSize: chunkSize,
			Workers:   workers,
			Model:     model,
		})
		if err != nil {
			log.Fatalf("Error: %v", err)
		}

		if result.NonFinite > 0 {
			log.Warnf("%d contracts produced non-finite values, check their volatility and maturity inputs", result.NonFinite)
		}
		if result.Count > 0 {
			log.WithFields(log.Fields{
				"contracts": result.Count,
				"mean":      result.MeanPrice,
				"min":       result.MinPrice,
				"max":       result.MaxPrice,
				"delta":     result.PortfolioDelta,
				"vega":      result.PortfolioVega,
			}).Info("Valuation complete")
		} else {
			log.Info("No contracts to value.")
		}
	},
}

func Run(args RunArgs) (RunResults, error) {
	set, err := optcsv.ParseFile(args.Input)
	if err != nil {
		return RunResults{}, err
	}
	log.Infof("Processing %d options", set.Len())

	model, err := modelFor(args.Model)
	if err != nil {
		return RunResults{}, err
	}
	log.Debugf("using %s model with chunk size %d", model.Name(), args.ChunkSize)

	b := batch.New(set, model)

	var progress *mpb.Progress
	var bar *mpb.Bar
	if set.Len() > 0 && args.ChunkSize > 0 {
		chunks := (set.Len() + args.ChunkSize - 1) / args.ChunkSize
		progress = mpb.New(mpb.WithWidth(64))
		bar = progress.AddBar(int64(chunks),
			mpb.PrependDecorators(
				decor.Name("Pricing"),
				decor.Percentage(decor.WCSyncSpace),
			),
			mpb.AppendDecorators(
				decor.CountersNoUnit("(%d / %d)", decor.WCSyncSpace),
			),
		)
	}

	stop := make(chan struct{})
	go compute.MonitorCPU(stop)
	defer close(stop)

	priced, err := compute.PriceAll(b, args.ChunkSize, args.Workers, bar)
	if err != nil {
		return RunResults{}, err
	}
	if progress != nil {
		progress.Wait()
	}

	records, err := priced.Records()
	if err != nil {
		return RunResults{}, err
	}

	if err := optcsv.WriteRecords(args.Output, records); err != nil {
		return RunResults{}, err
	}
	log.Infof("Wrote %d valued contracts to %s", len(records), args.Output)

	if args.JSONOut != "" {
		jrecords, err := json.Marshal(records)
		if err != nil {
			return RunResults{}, fmt.Errorf("error marshalling records: %v", err)
		}
		if err := ioutil.WriteFile(args.JSONOut, jrecords, 0644); err != nil {
			return RunResults{}, fmt.Errorf("error writing to file %s: %v", args.JSONOut, err)
		}
		log.Infof("Wrote JSON copy to %s", args.JSONOut)
	}

	result := RunResults{
		Count:     len(records),
		NonFinite: priced.CountNonFinite(),
	}
	if len(records) > 0 {
		deltas := make([]float64, len(priced.Greeks))
		vegas := make([]float64, len(priced.Greeks))
		for i, g := range priced.Greeks {
			deltas[i] = g.Delta
			vegas[i] = g.Vega
		}

		result.MeanPrice, _ = stats.Mean(priced.Prices)
		result.MinPrice, _ = stats.Min(priced.Prices)
		result.MaxPrice, _ = stats.Max(priced.Prices)
		result.PortfolioDelta, _ = stats.Sum(deltas)
		result.PortfolioVega, _ = stats.Sum(vegas)
	}
	return result, nil
}

func modelFor(name string) (models.PricingModel, error) {
	switch strings.ToLower(name) {
	case "black_scholes", "black-scholes", "bsm":
		return models.BlackScholesModel{}, nil
	}
	return nil, fmt.Errorf("unknown pricing model %q", name)
}

func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Warnf("ignoring %s=%q: %v", name, raw, err)
		return fallback
	}
	return v
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debugf("no .env file loaded: %v", err)
	}

	runCmd.PersistentFlags().String("input", "", "Path of the contract CSV to value.")
	runCmd.PersistentFlags().String("output", "", "Path of the valued CSV to write, defaults next to the input.")
	runCmd.PersistentFlags().String("json", "", "Optional path for a JSON copy of the valued records.")
	runCmd.PersistentFlags().Int("chunk-size", envInt("OPTBATCH_CHUNK_SIZE", defaultChunkSize), "Contracts per work chunk.")
	runCmd.PersistentFlags().Int("workers", envInt("OPTBATCH_WORKERS", 0), "Worker goroutines, 0 for one per CPU.")
	runCmd.PersistentFlags().String("model", "black_scholes", "Pricing model to use.")
	runCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging.")
	runCmd.MarkPersistentFlagRequired("input")
	runCmd.Execute()
}
