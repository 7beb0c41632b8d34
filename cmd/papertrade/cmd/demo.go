package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/papertrade/eventlog"
	"github.com/rustyeddy/papertrade/sim"
	"github.com/rustyeddy/papertrade/snapshot"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a scripted, non-interactive simulation",
	Long: `Run a short scripted session: buy a few stocks, progress a number of
trading days with sentiment re-rolls, then liquidate and report.

Example:
  papertrade demo --days 10`,
	RunE: runDemo,
}

var demoDays int

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().IntVar(&demoDays, "days", 10, "number of trading days to simulate")
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	jnl, err := cfg.OpenJournal()
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer jnl.Close()

	events := eventlog.New()
	rng := newRand(cfg)
	p := sim.New(cfg.Portfolio.Name, rng, events, jnl)

	fmt.Printf("Running %d-day demo for %q\n", demoDays, p.Name())
	fmt.Printf("  Starting balance: $%.2f\n\n", p.Balance())

	buys := []struct {
		code   string
		shares int
	}{
		{"AAPL", 10},
		{"XOM", 15},
		{"KO", 20},
	}
	for _, b := range buys {
		if p.Buy(b.code, b.shares) {
			fmt.Printf("Bought %d x %s, balance $%.2f\n", b.shares, b.code, p.Balance())
		}
	}

	for i := 0; i < demoDays; i++ {
		p.DetermineMarketState()
		p.ProgressDay()
		fmt.Printf("Day %2d  market: %-14s  P&L: $%9.2f  balance: $%.2f\n",
			p.Day(), p.MarketState(), p.TotalPnl(), p.Balance())
	}

	p.SellAllHeld()

	fmt.Printf("\nFinal Results:\n")
	fmt.Printf("  Balance: $%.2f\n", p.Balance())
	fmt.Printf("  Net: $%+.2f against the starting %.2f\n", p.Balance()-sim.StartingBalance, sim.StartingBalance)

	if err := snapshot.Write(cfg.Snapshot.Path, p); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	fmt.Printf("\nFinal state saved to: %s\n", cfg.Snapshot.Path)
	if cfg.Journal.Type == "csv" {
		fmt.Printf("Journal saved to:\n  - %s\n  - %s\n", cfg.Journal.TradesFile, cfg.Journal.DaysFile)
	} else if cfg.Journal.Type == "sqlite" {
		fmt.Printf("Journal saved to: %s\n", cfg.Journal.DBPath)
	}

	return nil
}
