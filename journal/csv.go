package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

type CSVJournal struct {
	trades *csv.Writer
	days   *csv.Writer
	tf, df *os.File
}

func NewCSV(tradesPath, daysPath string) (*CSVJournal, error) {
	tf, err := os.Create(tradesPath)
	if err != nil {
		return nil, err
	}
	df, err := os.Create(daysPath)
	if err != nil {
		tf.Close()
		return nil, err
	}

	tw := csv.NewWriter(tf)
	dw := csv.NewWriter(df)

	if err := tw.Write([]string{"trade_id", "day", "action", "code", "shares", "price", "cash_after", "time"}); err != nil {
		return nil, err
	}
	if err := dw.Write([]string{"day", "sentiment", "balance", "total_pnl", "time"}); err != nil {
		return nil, err
	}

	tw.Flush()
	if err := tw.Error(); err != nil {
		return nil, err
	}
	dw.Flush()
	if err := dw.Error(); err != nil {
		return nil, err
	}

	return &CSVJournal{tw, dw, tf, df}, nil
}

func (j *CSVJournal) RecordTrade(t TradeRecord) error {
	err := j.trades.Write([]string{
		t.TradeID,
		strconv.Itoa(t.Day),
		t.Action,
		t.Code,
		strconv.Itoa(t.Shares),
		f(t.Price),
		f(t.CashAfter),
		t.Time.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	j.trades.Flush()
	return j.trades.Error()
}

func (j *CSVJournal) RecordDay(d DayRecord) error {
	err := j.days.Write([]string{
		strconv.Itoa(d.Day),
		d.Sentiment,
		f(d.Balance),
		f(d.TotalPnl),
		d.Time.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	j.days.Flush()
	return j.days.Error()
}

func (j *CSVJournal) Close() error {
	j.trades.Flush()
	j.days.Flush()

	if err := j.tf.Close(); err != nil {
		j.df.Close()
		return err
	}
	return j.df.Close()
}

func f(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
