package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/papertrade/eventlog"
	"github.com/rustyeddy/papertrade/journal"
	"github.com/rustyeddy/papertrade/sim"
	"github.com/rustyeddy/papertrade/snapshot"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the trading simulator in the console",
	Long: `Start an interactive console session: view your portfolio and the
stock pool, trade, found ventures, request loans and progress trading days.

Example:
  papertrade play -f examples/configs/game.yaml`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
}

type game struct {
	portfolio *sim.Portfolio
	events    *eventlog.Log
	rng       sim.Rand
	jnl       journal.Journal
	savePath  string
	in        *bufio.Scanner
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	jnl, err := cfg.OpenJournal()
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer jnl.Close()

	g := &game{
		events:   eventlog.New(),
		rng:      newRand(cfg),
		jnl:      jnl,
		savePath: cfg.Snapshot.Path,
		in:       bufio.NewScanner(os.Stdin),
	}
	g.portfolio = sim.New(cfg.Portfolio.Name, g.rng, g.events, g.jnl)

	fmt.Println("\n|-------------------$ papertrade $-------------------|")
	fmt.Println("\nWelcome to papertrade, your first contact with trading.")
	fmt.Printf("You start with $%.2f. Good luck out there.\n", g.portfolio.Balance())

	for {
		g.printMenu()
		choice := g.prompt("> ")
		if choice == "q" || choice == "quit" {
			fmt.Println("Good trading with you! See you next time.")
			return nil
		}
		g.dispatch(choice)
	}
}

func (g *game) printMenu() {
	fmt.Println("\n|----------------$ select an option $----------------|")
	fmt.Println("  0 + View my portfolio")
	fmt.Println("  1 + View available stocks")
	fmt.Println("  2 + Buy a stock")
	fmt.Println("  3 + Sell a stock")
	fmt.Println("  4 + Sell all stocks")
	fmt.Println("  5 + Create new venture business")
	fmt.Println("  6 + Request a loan")
	fmt.Println("  7 + Progress to next day")
	fmt.Println("  8 + Check market sentiment")
	fmt.Println("  9 + View event log")
	fmt.Println(" 10 + Save portfolio")
	fmt.Println(" 11 + Load portfolio")
	fmt.Println(" 12 + Reset simulation")
	fmt.Println("  q + Exit")
}

func (g *game) dispatch(choice string) {
	switch choice {
	case "0":
		g.viewPortfolio()
	case "1":
		g.viewPool()
	case "2":
		g.buy()
	case "3":
		g.sell()
	case "4":
		g.sellAll()
	case "5":
		g.venture()
	case "6":
		g.loan()
	case "7":
		g.progressDay()
	case "8":
		g.sentiment()
	case "9":
		g.viewEvents()
	case "10":
		g.save()
	case "11":
		g.load()
	case "12":
		g.reset()
	default:
		fmt.Println("Unknown command, try again.")
	}
}

func (g *game) prompt(label string) string {
	fmt.Print(label)
	if !g.in.Scan() {
		return "q"
	}
	return strings.TrimSpace(g.in.Text())
}

func (g *game) viewPortfolio() {
	p := g.portfolio
	fmt.Printf("\n%s | day %d | %s market\n", p.Name(), p.Day(), p.MarketState())
	fmt.Printf("Cash balance: $%.2f   Total P&L: $%.2f\n", p.Balance(), p.TotalPnl())
	held := p.Held()
	if len(held) == 0 {
		fmt.Println("No stocks held.")
		return
	}
	fmt.Printf("%-6s %-22s %8s %10s %10s %10s\n", "CODE", "NAME", "SHARES", "BUY", "NOW", "P&L")
	for _, s := range held {
		fmt.Printf("%-6s %-22s %8d %10.2f %10.2f %10.2f\n",
			s.Code, s.Name, s.SharesOwned, s.BuyPrice, s.CurrentPrice, s.PotentialProfit)
	}
}

func (g *game) viewPool() {
	fmt.Printf("\n%-6s %-22s %-15s %10s %8s\n", "CODE", "NAME", "SECTOR", "PRICE", "DAY%")
	for _, s := range g.portfolio.Pool() {
		fmt.Printf("%-6s %-22s %-15s %10.2f %7.1f%%\n",
			s.Code, s.Name, s.Sector, s.CurrentPrice, s.DailyVariation*100)
	}
}

func (g *game) buy() {
	code := g.prompt("Stock code: ")
	shares, err := strconv.Atoi(g.prompt("Number of shares: "))
	if err != nil {
		fmt.Println("That is not a share count.")
		return
	}
	if price, ok := g.portfolio.PriceForCode(code); ok {
		fmt.Printf("Current price: $%.2f, total cost: $%.2f\n", price, price*float64(shares))
	}
	if g.portfolio.Buy(code, shares) {
		fmt.Printf("Bought %d shares of %s. Balance: $%.2f\n", shares, code, g.portfolio.Balance())
	} else {
		fmt.Println("Could not buy (check the code, the share count and your balance).")
	}
}

func (g *game) sell() {
	code := g.prompt("Stock code: ")
	if g.portfolio.Sell(code) {
		fmt.Printf("Sold %s. Balance: $%.2f\n", code, g.portfolio.Balance())
	} else {
		fmt.Println("You do not hold that stock.")
	}
}

func (g *game) sellAll() {
	if g.portfolio.SellAllHeld() {
		fmt.Printf("Sold everything. Balance: $%.2f\n", g.portfolio.Balance())
	} else {
		fmt.Println("Nothing to sell.")
	}
}

func (g *game) venture() {
	fmt.Println("Let's do this! Time to create a business.")
	name := g.prompt("Company name: ")
	code := g.prompt("Company code: ")
	sector := g.prompt("Company sector: ")
	if g.portfolio.CreateVenture(name, code, sector) {
		fmt.Println("Success! Company created.")
	} else {
		fmt.Println("Maybe next time! Try to get your money up :|")
	}
}

func (g *game) loan() {
	if g.portfolio.RequestLoan() {
		fmt.Println("Loan conceded! Enjoy your new $2,000.00")
	} else {
		fmt.Println("The bank said no. Try again another day.")
	}
}

func (g *game) progressDay() {
	g.portfolio.DetermineMarketState()
	g.portfolio.ProgressDay()
	fmt.Printf("Day %d. The market is feeling: %s. Total P&L: $%.2f\n",
		g.portfolio.Day(), g.portfolio.MarketState(), g.portfolio.TotalPnl())
}

func (g *game) sentiment() {
	fmt.Printf("The market is feeling: %s\n", g.portfolio.MarketState())
}

func (g *game) viewEvents() {
	events := g.events.Events()
	if len(events) == 0 {
		fmt.Println("Nothing has happened yet.")
		return
	}
	for _, e := range events {
		fmt.Println(e)
	}
}

func (g *game) save() {
	if err := snapshot.Write(g.savePath, g.portfolio); err != nil {
		fmt.Printf("Unable to save portfolio to %s: %v\n", g.savePath, err)
		return
	}
	fmt.Printf("Saved portfolio to: %s\n", g.savePath)
}

func (g *game) load() {
	p, err := snapshot.Read(g.savePath, g.rng, g.events, g.jnl)
	if err != nil {
		fmt.Printf("Unable to load portfolio from %s: %v\n", g.savePath, err)
		return
	}
	g.portfolio = p
	fmt.Printf("Loaded portfolio from: %s\n", g.savePath)
}

func (g *game) reset() {
	g.portfolio = sim.New(g.portfolio.Name(), g.rng, g.events, g.jnl)
	fmt.Println("Finished already? Okay, fresh start.")
}
