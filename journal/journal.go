// Package journal persists the trading history of a simulation: one record
// per executed transaction and one end-of-day snapshot per trading day.
package journal

import "time"

// Transaction kinds recorded in the journal.
const (
	ActionBuy     = "BUY"
	ActionSell    = "SELL"
	ActionVenture = "VENTURE"
)

// TradeRecord describes a single executed transaction.
type TradeRecord struct {
	TradeID   string
	Day       int
	Action    string
	Code      string
	Shares    int
	Price     float64
	CashAfter float64
	Time      time.Time
}

// DayRecord is an end-of-day snapshot of the portfolio.
type DayRecord struct {
	Day       int
	Sentiment string
	Balance   float64
	TotalPnl  float64
	Time      time.Time
}

// Journal records simulation history. Implementations are called from a
// single goroutine; the engine never journals concurrently.
type Journal interface {
	RecordTrade(TradeRecord) error
	RecordDay(DayRecord) error
	Close() error
}

// Discard is a Journal that drops everything.
type Discard struct{}

func (Discard) RecordTrade(TradeRecord) error { return nil }
func (Discard) RecordDay(DayRecord) error     { return nil }
func (Discard) Close() error                  { return nil }

// Memory is an in-memory Journal for tests and throwaway sessions.
type Memory struct {
	Trades []TradeRecord
	Days   []DayRecord
	Closed bool
}

func (m *Memory) RecordTrade(rec TradeRecord) error {
	m.Trades = append(m.Trades, rec)
	return nil
}

func (m *Memory) RecordDay(rec DayRecord) error {
	m.Days = append(m.Days, rec)
	return nil
}

func (m *Memory) Close() error {
	m.Closed = true
	return nil
}
