package sim

import (
	"github.com/rustyeddy/papertrade/eventlog"
	"github.com/rustyeddy/papertrade/journal"
	"github.com/rustyeddy/papertrade/market"
)

// Snapshot is the full persistable state of a portfolio. Held and Pool are
// independent lists: a held stock appears in both.
type Snapshot struct {
	Name        string
	Day         int
	Balance     float64
	TotalPnl    float64
	MarketState market.Sentiment
	PnlHistory  []float64
	Held        []*market.Stock
	Pool        []*market.Stock
}

// Snapshot captures the current portfolio state. The returned stocks are
// copies; mutating them does not touch the live portfolio.
func (p *Portfolio) Snapshot() Snapshot {
	snap := Snapshot{
		Name:        p.name,
		Day:         p.day,
		Balance:     p.balance,
		TotalPnl:    p.totalPnl,
		MarketState: p.state,
		PnlHistory:  p.PnlHistory(),
	}
	for _, code := range p.held {
		snap.Held = append(snap.Held, copyStock(p.stocks[code]))
	}
	for _, code := range p.pool {
		snap.Pool = append(snap.Pool, copyStock(p.stocks[code]))
	}
	return snap
}

// FromSnapshot rebuilds a portfolio from persisted state. The pool is
// restored first; held entries then overwrite their pooled counterparts in
// place, so the two lists rejoin into one stock per code without disturbing
// the listing order. A held stock missing from the pool is listed as well.
func FromSnapshot(snap Snapshot, rng Rand, events *eventlog.Log, jnl journal.Journal) *Portfolio {
	p := newEmpty(snap.Name, rng, events, jnl)
	p.day = snap.Day
	p.balance = snap.Balance
	p.totalPnl = snap.TotalPnl
	if snap.MarketState.Valid() {
		p.state = snap.MarketState
	}
	p.pnlHist = append([]float64(nil), snap.PnlHistory...)

	for _, s := range snap.Pool {
		p.AddToPool(copyStock(s))
	}
	for _, s := range snap.Held {
		c := copyStock(s)
		if p.inPool(c.Code) {
			p.stocks[c.Code] = c
		} else {
			p.AddToPool(c)
		}
		p.hold(c.Code)
	}
	return p
}

func copyStock(s *market.Stock) *market.Stock {
	c := *s
	c.PriceHistory = append([]float64(nil), s.PriceHistory...)
	return &c
}
