package journal

import (
	"database/sql"
	"fmt"
)

// GetTrade returns a single trade record by ID.
func (j *SQLite) GetTrade(tradeID string) (TradeRecord, error) {
	var rec TradeRecord

	row := j.db.QueryRow(`
		SELECT trade_id, day, action, code, shares, price, cash_after, time
		FROM trades
		WHERE trade_id = ?`, tradeID)

	err := row.Scan(
		&rec.TradeID,
		&rec.Day,
		&rec.Action,
		&rec.Code,
		&rec.Shares,
		&rec.Price,
		&rec.CashAfter,
		&rec.Time,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return TradeRecord{}, fmt.Errorf("trade %q not found", tradeID)
		}
		return TradeRecord{}, err
	}
	return rec, nil
}

// ListTradesForCode returns every trade on the given stock code, oldest
// first.
func (j *SQLite) ListTradesForCode(code string) ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT trade_id, day, action, code, shares, price, cash_after, time
		FROM trades
		WHERE code = ?
		ORDER BY time ASC`, code)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTrades(rows)
}

// ListTradesForDay returns every trade executed on the given trading day.
func (j *SQLite) ListTradesForDay(day int) ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT trade_id, day, action, code, shares, price, cash_after, time
		FROM trades
		WHERE day = ?
		ORDER BY time ASC`, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTrades(rows)
}

// ListDays returns the end-of-day snapshots in day order.
func (j *SQLite) ListDays() ([]DayRecord, error) {
	rows, err := j.db.Query(`
		SELECT day, sentiment, balance, total_pnl, time
		FROM days
		ORDER BY day ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DayRecord
	for rows.Next() {
		var rec DayRecord
		if err := rows.Scan(
			&rec.Day,
			&rec.Sentiment,
			&rec.Balance,
			&rec.TotalPnl,
			&rec.Time,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanTrades(rows *sql.Rows) ([]TradeRecord, error) {
	var out []TradeRecord
	for rows.Next() {
		var rec TradeRecord
		if err := rows.Scan(
			&rec.TradeID,
			&rec.Day,
			&rec.Action,
			&rec.Code,
			&rec.Shares,
			&rec.Price,
			&rec.CashAfter,
			&rec.Time,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
