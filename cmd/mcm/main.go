// Command mcm fits a Markov-chain Mixture model to a time series and draws
// samples from the forecast distribution conditioned on an observation.
package main

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/sartorproj/gomcm/config"
	"github.com/sartorproj/gomcm/mcm"
	"github.com/sartorproj/gomcm/stats"
	"github.com/sartorproj/gomcm/timeseries"
)

const histogramBins = 30

var (
	cfgPath     string
	flagInput   string
	flagColumn  string
	flagBins    int
	flagSamples int
	flagSteps   int
	flagObs     float64
	flagSeed    int64
	flagWorkers int
	flagOutput  string
)

var rootCmd = &cobra.Command{
	Use:   "mcm",
	Short: "Markov-chain Mixture forecast sampler",
	Long: "mcm fits a Markov-chain Mixture distribution model to a scalar time\n" +
		"series, forecasts from an observation, and samples the resulting\n" +
		"piecewise-uniform distribution.",
	RunE: run,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVarP(&cfgPath, "config", "c", "", "configuration file (yaml or json)")
	f.StringVar(&flagInput, "input", "", "input observations file")
	f.StringVar(&flagColumn, "column", "", "CSV column to load instead of whitespace text")
	f.IntVar(&flagBins, "bins", 0, "number of bins")
	f.IntVar(&flagSamples, "samples", 0, "number of forecast samples")
	f.IntVar(&flagSteps, "steps", 0, "steps ahead to forecast")
	f.Float64Var(&flagObs, "obs", math.NaN(), "observation to forecast from (default: last value)")
	f.Int64Var(&flagSeed, "seed", 0, "random seed (0 seeds from the clock)")
	f.IntVar(&flagWorkers, "workers", 0, "parallel sampling workers")
	f.StringVar(&flagOutput, "output", "", "file to write samples to")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log := newLogger(cfg.Logging)

	series, err := loadSeries(cfg)
	if err != nil {
		return fmt.Errorf("load series: %w", err)
	}
	log.Info().
		Int("observations", series.Len()).
		Float64("min", series.Min()).
		Float64("max", series.Max()).
		Msg("series loaded")

	model := mcm.New(cfg.Bins, cfg.Steps)
	if err := model.Fit(series); err != nil {
		return fmt.Errorf("fit: %w", err)
	}
	log.Debug().Int("bins", cfg.Bins).Int("steps", cfg.Steps).Float64("bin_width", model.BinWidth()).Msg("model fitted")

	obs := series.Last()
	if cfg.Observation != nil {
		obs = *cfg.Observation
	}
	dist, err := model.Forecast(obs)
	if err != nil {
		return fmt.Errorf("forecast: %w", err)
	}
	log.Info().
		Float64("observation", obs).
		Float64("mass", dist.Mass()).
		Float64("mean", dist.Mean()).
		Msg("forecast distribution ready")

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	var samples []float64
	if cfg.Workers > 1 {
		samples, err = dist.SampleConcurrent(cfg.Samples, cfg.Workers, seed)
	} else {
		samples, err = dist.Sample(cfg.Samples, rand.New(rand.NewSource(seed)))
	}
	if err != nil {
		return fmt.Errorf("sample: %w", err)
	}

	if len(samples) > 0 {
		mean, std := stat.MeanStdDev(samples, nil)
		log.Info().
			Int("samples", len(samples)).
			Float64("mean", mean).
			Float64("std", std).
			Msg("samples drawn")
		printHistogram(cmd.OutOrStdout(), samples)
	}

	if cfg.Output != "" {
		if err := timeseries.SaveText(samples, cfg.Output); err != nil {
			return fmt.Errorf("write samples: %w", err)
		}
		log.Info().Str("file", cfg.Output).Msg("samples written")
	}
	return nil
}

// applyFlags lets command-line flags override file and environment values.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Input = flagInput
	}
	if flags.Changed("column") {
		cfg.Column = flagColumn
	}
	if flags.Changed("bins") {
		cfg.Bins = flagBins
	}
	if flags.Changed("samples") {
		cfg.Samples = flagSamples
	}
	if flags.Changed("steps") {
		cfg.Steps = flagSteps
	}
	if flags.Changed("obs") {
		obs := flagObs
		cfg.Observation = &obs
	}
	if flags.Changed("seed") {
		cfg.Seed = flagSeed
	}
	if flags.Changed("workers") {
		cfg.Workers = flagWorkers
	}
	if flags.Changed("output") {
		cfg.Output = flagOutput
	}
}

func newLogger(lc config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(lc.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	var log zerolog.Logger
	if lc.Pretty {
		writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		log = zerolog.New(writer)
	} else {
		log = zerolog.New(os.Stderr)
	}
	return log.Level(level).With().Timestamp().Str("component", "mcm").Logger()
}

func loadSeries(cfg *config.Config) (*timeseries.Series, error) {
	if cfg.Column != "" {
		return timeseries.LoadCSVColumn(cfg.Input, cfg.Column)
	}
	return timeseries.LoadText(cfg.Input)
}

// printHistogram renders a text histogram of the sample batch, standing in
// for the plotting step of the original pipeline.
func printHistogram(w io.Writer, samples []float64) {
	bins := stats.Histogram(samples, histogramBins)
	maxCount := 0
	for _, b := range bins {
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}
	for _, b := range bins {
		width := 0
		if maxCount > 0 {
			width = b.Count * 50 / maxCount
		}
		fmt.Fprintf(w, "%12.5f %6d %s\n", b.From, b.Count, strings.Repeat("#", width))
	}
}
