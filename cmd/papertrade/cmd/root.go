package cmd

import (
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/papertrade/config"
	"github.com/rustyeddy/papertrade/sim"
)

var rootCmd = &cobra.Command{
	Use:   "papertrade",
	Short: "An educational stock-trading simulator",
	Long: `Papertrade is a stock-trading simulator for learning the basics of
markets without risking a cent.

You manage a virtual portfolio drawn from a fixed pool of stocks, buy and
sell shares, found your own venture businesses, and advance simulated
trading days where prices move with the market's mood. Progress can be
saved to and restored from a JSON file, and every trade is journaled to
CSV or SQLite.`,
}

var cfgPath string

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "f", "", "path to config file (YAML or JSON)")
}

// loadConfig returns the file config when --config is set, defaults otherwise.
func loadConfig() (*config.Config, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}
	return config.LoadFromFile(cfgPath)
}

// newRand honors a fixed seed from the config for reproducible runs.
func newRand(cfg *config.Config) sim.Rand {
	if cfg.Portfolio.Seed != 0 {
		return rand.New(rand.NewSource(cfg.Portfolio.Seed))
	}
	return sim.NewRand()
}
