package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(trade_id, day, action, code, shares, price, cash_after, time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.TradeID, t.Day, t.Action, t.Code, t.Shares, t.Price, t.CashAfter, t.Time,
	)
	return err
}

func (j *SQLite) RecordDay(d DayRecord) error {
	_, err := j.db.Exec(`
		INSERT OR REPLACE INTO days
		(day, sentiment, balance, total_pnl, time)
		VALUES (?, ?, ?, ?, ?)`,
		d.Day, d.Sentiment, d.Balance, d.TotalPnl, d.Time,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
