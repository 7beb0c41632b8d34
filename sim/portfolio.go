// Package sim implements the portfolio engine: pool and position
// bookkeeping, buy/sell accounting, market sentiment, and trading-day
// progression. The engine is synchronous and single-owner; adapters that
// serve it concurrently must serialize access themselves.
package sim

import (
	"fmt"

	"github.com/rustyeddy/papertrade/eventlog"
	"github.com/rustyeddy/papertrade/journal"
	"github.com/rustyeddy/papertrade/market"
	"github.com/rustyeddy/papertrade/pkg/id"
)

const (
	// StartingBalance is every new portfolio's cash.
	StartingBalance = 5000.0

	ventureCost   = 1000.0
	ventureShares = 100
	venturePrice  = 10.0

	loanAmount = 2000.0
	loanOdds   = 0.25

	// outlierOdds is the chance that a day's variation ignores sentiment
	// and draws from the fat-tail range instead.
	outlierOdds = 0.05
	outlierMin  = -1.0
	outlierMax  = 5.0
)

var seedListings = []struct {
	name, code, sector string
}{
	{"Apple", "AAPL", "Technology"},
	{"Google", "GOOGL", "Technology"},
	{"Facebook", "META", "Technology"},
	{"Pfizer", "PFE", "Healthcare"},
	{"Astra Zeneca", "AZN", "Healthcare"},
	{"HSBC Holdings", "HSBC", "Financial"},
	{"JP Morgan Chase", "JPM", "Financial"},
	{"Shell PLC", "SHEL", "Energy"},
	{"Exxon Mobil", "XOM", "Energy"},
	{"Coca-Cola Company", "KO", "Consumer Goods"},
	{"Pepsi Cola", "PEP", "Consumer Goods"},
}

// Portfolio owns the tradable pool, the held positions, the cash balance
// and the simulated clock. Stocks live in a single arena keyed by code;
// pool and held are ordered views over that arena, so a stock can never
// diverge between the two collections.
type Portfolio struct {
	name     string
	balance  float64
	day      int
	state    market.Sentiment
	totalPnl float64
	pnlHist  []float64

	stocks map[string]*market.Stock
	pool   []string // codes, listing order
	held   []string // codes with open positions, buy order

	rng    Rand
	events *eventlog.Log
	jnl    journal.Journal
}

// New creates a portfolio with the standard eleven-stock pool, the starting
// cash balance and a neutral market. Nil rng, events or jnl fall back to a
// time-seeded source, a fresh log and a discarding journal.
func New(name string, rng Rand, events *eventlog.Log, jnl journal.Journal) *Portfolio {
	p := newEmpty(name, rng, events, jnl)
	for _, l := range seedListings {
		p.AddToPool(market.NewStock(l.name, l.code, l.sector, p.rng.Float64()))
	}
	return p
}

func newEmpty(name string, rng Rand, events *eventlog.Log, jnl journal.Journal) *Portfolio {
	if rng == nil {
		rng = NewRand()
	}
	if events == nil {
		events = eventlog.New()
	}
	if jnl == nil {
		jnl = journal.Discard{}
	}
	return &Portfolio{
		name:    name,
		balance: StartingBalance,
		state:   market.Neutral,
		stocks:  make(map[string]*market.Stock),
		rng:     rng,
		events:  events,
		jnl:     jnl,
	}
}

// Accessors.

func (p *Portfolio) Name() string                  { return p.name }
func (p *Portfolio) Balance() float64              { return p.balance }
func (p *Portfolio) Day() int                      { return p.day }
func (p *Portfolio) MarketState() market.Sentiment { return p.state }
func (p *Portfolio) TotalPnl() float64             { return p.totalPnl }
func (p *Portfolio) Events() *eventlog.Log         { return p.events }
func (p *Portfolio) NumHeld() int                  { return len(p.held) }

// PnlHistory returns a copy of the per-day P&L series, oldest first.
func (p *Portfolio) PnlHistory() []float64 {
	out := make([]float64, len(p.pnlHist))
	copy(out, p.pnlHist)
	return out
}

// Stock returns the pooled stock with the given code.
func (p *Portfolio) Stock(code string) (*market.Stock, bool) {
	s, ok := p.stocks[code]
	return s, ok
}

// Pool returns the tradable stocks in listing order.
func (p *Portfolio) Pool() []*market.Stock {
	out := make([]*market.Stock, 0, len(p.pool))
	for _, code := range p.pool {
		out = append(out, p.stocks[code])
	}
	return out
}

// Held returns the open positions in buy order.
func (p *Portfolio) Held() []*market.Stock {
	out := make([]*market.Stock, 0, len(p.held))
	for _, code := range p.held {
		out = append(out, p.stocks[code])
	}
	return out
}

// PoolCodes returns the codes of every tradable stock in listing order.
func (p *Portfolio) PoolCodes() []string {
	return append([]string(nil), p.pool...)
}

// HeldCodes returns the codes of every open position in buy order.
func (p *Portfolio) HeldCodes() []string {
	return append([]string(nil), p.held...)
}

// PriceForCode returns the current price of a pooled stock. The second
// return value reports whether the code exists.
func (p *Portfolio) PriceForCode(code string) (float64, bool) {
	s, ok := p.stocks[code]
	if !ok || !p.inPool(code) {
		return 0, false
	}
	return s.CurrentPrice, true
}

// Transactions.

// Buy opens a position of shares on the pooled stock with the given code
// and deducts price*shares from the balance. It fails, with an event and no
// state change, on a non-positive share count, an unknown code, or a cost
// at or above the cash balance.
func (p *Portfolio) Buy(code string, shares int) bool {
	if shares <= 0 {
		p.events.Append(fmt.Sprintf("Failed at buying stock (share count must be positive): %s;", code))
		return false
	}
	s, ok := p.stocks[code]
	if !ok || !p.inPool(code) || s.CurrentPrice*float64(shares) >= p.balance {
		p.events.Append("Failed at buying stock (not enough balance or incorrect code);")
		return false
	}

	s.Buy(shares)
	p.hold(code)
	p.balance -= s.CurrentPrice * float64(shares)
	p.events.Append(fmt.Sprintf("Bought %d shares of a stock: %s;", shares, code))
	p.recordTrade(journal.ActionBuy, s, shares, s.CurrentPrice)
	return true
}

// Sell closes the held position with the given code: the original spend
// comes back plus the realized profit, and the stock leaves the held set
// while staying in the pool. Fails with an event if the code is not held.
func (p *Portfolio) Sell(code string) bool {
	if !p.isHeld(code) {
		p.events.Append("Failed at selling stock (not currently held);")
		return false
	}

	s := p.stocks[code]
	shares := s.SharesOwned
	p.balance += s.BuyPrice * float64(shares)
	s.Sell()
	p.balance += s.RealizedProfit
	p.unhold(code)
	p.events.Append("Sold a stock: " + code + ";")
	p.recordTrade(journal.ActionSell, s, shares, s.SellPrice)
	return true
}

// SellAllHeld liquidates every open position. Fails with an event when
// nothing is held.
func (p *Portfolio) SellAllHeld() bool {
	if len(p.held) == 0 {
		p.events.Append("Failed to sell all stock (no stocks held);")
		return false
	}

	for _, code := range p.HeldCodes() {
		p.Sell(code)
	}
	p.events.Append("Sold all stocks;")
	return true
}

// CreateVenture founds a new company for a flat 1000: the stock lists at
// 10.0 and the portfolio immediately owns 100 shares. The new listing
// replaces any pooled stock with the same code. Fails with an event when
// the balance is below the venture cost.
func (p *Portfolio) CreateVenture(name, code, sector string) bool {
	if p.balance < ventureCost {
		p.events.Append("Failed to create new business, insufficient funds;")
		return false
	}

	s := market.NewStock(name, code, sector, p.rng.Float64())
	s.OriginalPrice = venturePrice
	s.CurrentPrice = venturePrice
	s.PriceHistory = []float64{venturePrice}
	s.Buy(ventureShares)

	p.AddToPool(s)
	p.hold(code)
	p.balance -= ventureCost
	p.events.Append(fmt.Sprintf("Created a new venture business: %s (%s);", name, code))
	p.recordTrade(journal.ActionVenture, s, ventureShares, venturePrice)
	return true
}

// RequestLoan has a 25% chance of crediting 2000 to the balance.
func (p *Portfolio) RequestLoan() bool {
	if p.rng.Float64() < loanOdds {
		p.balance += loanAmount
		p.events.Append("Successfully obtained a loan;")
		return true
	}
	p.events.Append("Failed at obtaining a loan;")
	return false
}

// Pool maintenance.

// AddToPool lists a stock. An existing listing with the same code is
// dropped first; the new stock goes to the end of the pool.
func (p *Portfolio) AddToPool(s *market.Stock) {
	if _, ok := p.stocks[s.Code]; ok {
		p.RemoveFromPool(s.Code)
	}
	p.stocks[s.Code] = s
	p.pool = append(p.pool, s.Code)
}

// RemoveFromPool delists the stock with the given code. A held stock stays
// in the arena so the open position keeps working; it just stops being
// offered for purchase.
func (p *Portfolio) RemoveFromPool(code string) {
	for i, c := range p.pool {
		if c == code {
			p.pool = append(p.pool[:i], p.pool[i+1:]...)
			break
		}
	}
	if !p.isHeld(code) {
		delete(p.stocks, code)
	}
}

// Market simulation.

// DetermineMarketState re-rolls the market sentiment uniformly across the
// five states and returns the new one. Day progression does not call this;
// the caller decides when the mood shifts.
func (p *Portfolio) DetermineMarketState() market.Sentiment {
	p.state = market.Sentiments[p.rng.Intn(len(market.Sentiments))]
	return p.state
}

// outlierEffect rolls the 5% chance of a fat-tail day.
func (p *Portfolio) outlierEffect() bool {
	return p.rng.Float64() < outlierOdds
}

// actualVariation draws one stock's fractional variation for the day:
// usually uniform within the current sentiment's range, but outlier days
// draw from [-1, 5) instead.
func (p *Portfolio) actualVariation() float64 {
	if p.outlierEffect() {
		return outlierMin + p.rng.Float64()*(outlierMax-outlierMin)
	}
	min, max := p.state.Range()
	return min + p.rng.Float64()*(max-min)
}

// updateAllPrices moves every pooled stock by an independent variation
// draw.
func (p *Portfolio) updateAllPrices() {
	for _, code := range p.pool {
		p.stocks[code].UpdatePrice(p.actualVariation())
	}
}

// ProgressDay advances the simulation one trading day. The step order
// matters: daily variation is computed against yesterday's recorded price,
// so it must run after the price move but before today's history append.
func (p *Portfolio) ProgressDay() {
	p.day++
	p.updateAllPrices()
	for _, code := range p.held {
		p.stocks[code].UpdatePotentialProfit()
	}
	for _, code := range p.pool {
		p.stocks[code].UpdateDailyVariation()
	}
	for _, code := range p.pool {
		p.stocks[code].AddPriceToHistory()
	}
	p.pnlHist = append(p.pnlHist, p.CalculateTotalPnl())
	p.events.Append(fmt.Sprintf("Progressed to day %d of trading;", p.day))

	if err := p.jnl.RecordDay(journal.DayRecord{
		Day:       p.day,
		Sentiment: p.state.String(),
		Balance:   p.balance,
		TotalPnl:  p.totalPnl,
		Time:      now(),
	}); err != nil {
		p.events.Append("Failed to journal day: " + err.Error() + ";")
	}
}

// CalculateTotalPnl recomputes, stores and returns the mark-to-market P&L
// summed over the held positions.
func (p *Portfolio) CalculateTotalPnl() float64 {
	total := 0.0
	for _, code := range p.held {
		total += p.stocks[code].PotentialProfit
	}
	p.totalPnl = total
	return total
}

// Internal index helpers.

func (p *Portfolio) inPool(code string) bool {
	for _, c := range p.pool {
		if c == code {
			return true
		}
	}
	return false
}

func (p *Portfolio) isHeld(code string) bool {
	for _, c := range p.held {
		if c == code {
			return true
		}
	}
	return false
}

func (p *Portfolio) hold(code string) {
	if !p.isHeld(code) {
		p.held = append(p.held, code)
	}
}

func (p *Portfolio) unhold(code string) {
	for i, c := range p.held {
		if c == code {
			p.held = append(p.held[:i], p.held[i+1:]...)
			return
		}
	}
}

func (p *Portfolio) recordTrade(action string, s *market.Stock, shares int, price float64) {
	err := p.jnl.RecordTrade(journal.TradeRecord{
		TradeID:   id.New(),
		Day:       p.day,
		Action:    action,
		Code:      s.Code,
		Shares:    shares,
		Price:     price,
		CashAfter: p.balance,
		Time:      now(),
	})
	if err != nil {
		p.events.Append("Failed to journal trade: " + err.Error() + ";")
	}
}
