// Package snapshot reads and writes the JSON save file for a portfolio.
// The engine itself never touches the filesystem; this adapter converts
// between sim.Snapshot and the on-disk document.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rustyeddy/papertrade/eventlog"
	"github.com/rustyeddy/papertrade/journal"
	"github.com/rustyeddy/papertrade/market"
	"github.com/rustyeddy/papertrade/sim"
)

// Document is the on-disk shape of a saved portfolio. The field names are
// the save-file format and must not change, or existing saves stop loading.
type Document struct {
	Name        string        `json:"name"`
	TradingDay  int           `json:"trading_day"`
	Balance     float64       `json:"balance"`
	TotalPnl    float64       `json:"total_pnl"`
	MarketState string        `json:"market_state"`
	PnlHistory  []float64     `json:"pnl_history"`
	Held        []StockRecord `json:"stock_portfolio"`
	Pool        []StockRecord `json:"stock_pool"`
}

// StockRecord is the on-disk shape of a single stock.
type StockRecord struct {
	Name            string    `json:"name"`
	Code            string    `json:"code"`
	Sector          string    `json:"sector"`
	OriginalPrice   float64   `json:"original_price"`
	CurrentPrice    float64   `json:"current_price"`
	SharesOwned     int       `json:"shares_owned"`
	BuyPrice        float64   `json:"buy_price"`
	SellPrice       float64   `json:"sell_price"`
	RealizedProfit  float64   `json:"realized_profit"`
	PotentialProfit float64   `json:"potential_profit"`
	DailyVariation  float64   `json:"daily_variation"`
	PriceHistory    []float64 `json:"price_history"`
}

// FromPortfolio converts the live portfolio state into a Document.
func FromPortfolio(p *sim.Portfolio) Document {
	snap := p.Snapshot()
	doc := Document{
		Name:        snap.Name,
		TradingDay:  snap.Day,
		Balance:     snap.Balance,
		TotalPnl:    snap.TotalPnl,
		MarketState: snap.MarketState.String(),
		PnlHistory:  snap.PnlHistory,
		Held:        make([]StockRecord, 0, len(snap.Held)),
		Pool:        make([]StockRecord, 0, len(snap.Pool)),
	}
	for _, s := range snap.Held {
		doc.Held = append(doc.Held, stockRecord(s))
	}
	for _, s := range snap.Pool {
		doc.Pool = append(doc.Pool, stockRecord(s))
	}
	return doc
}

// Portfolio rebuilds a live portfolio from the document. Held and pool are
// reconstructed independently from their own arrays.
func (d Document) Portfolio(rng sim.Rand, events *eventlog.Log, jnl journal.Journal) *sim.Portfolio {
	snap := sim.Snapshot{
		Name:        d.Name,
		Day:         d.TradingDay,
		Balance:     d.Balance,
		TotalPnl:    d.TotalPnl,
		MarketState: market.Sentiment(d.MarketState),
		PnlHistory:  d.PnlHistory,
	}
	for _, r := range d.Held {
		snap.Held = append(snap.Held, r.stock())
	}
	for _, r := range d.Pool {
		snap.Pool = append(snap.Pool, r.stock())
	}
	return sim.FromSnapshot(snap, rng, events, jnl)
}

// Write saves the portfolio to path as indented JSON.
func Write(path string, p *sim.Portfolio) error {
	data, err := json.MarshalIndent(FromPortfolio(p), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Read loads a portfolio from path. On any error the returned portfolio is
// nil and the caller's current state is untouched.
func Read(path string, rng sim.Rand, events *eventlog.Log, jnl journal.Journal) (*sim.Portfolio, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return doc.Portfolio(rng, events, jnl), nil
}

func stockRecord(s *market.Stock) StockRecord {
	return StockRecord{
		Name:            s.Name,
		Code:            s.Code,
		Sector:          s.Sector,
		OriginalPrice:   s.OriginalPrice,
		CurrentPrice:    s.CurrentPrice,
		SharesOwned:     s.SharesOwned,
		BuyPrice:        s.BuyPrice,
		SellPrice:       s.SellPrice,
		RealizedProfit:  s.RealizedProfit,
		PotentialProfit: s.PotentialProfit,
		DailyVariation:  s.DailyVariation,
		PriceHistory:    append([]float64(nil), s.PriceHistory...),
	}
}

func (r StockRecord) stock() *market.Stock {
	return &market.Stock{
		Name:            r.Name,
		Code:            r.Code,
		Sector:          r.Sector,
		OriginalPrice:   r.OriginalPrice,
		CurrentPrice:    r.CurrentPrice,
		SharesOwned:     r.SharesOwned,
		BuyPrice:        r.BuyPrice,
		SellPrice:       r.SellPrice,
		RealizedProfit:  r.RealizedProfit,
		PotentialProfit: r.PotentialProfit,
		DailyVariation:  r.DailyVariation,
		PriceHistory:    append([]float64(nil), r.PriceHistory...),
	}
}
