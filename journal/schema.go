package journal

const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	day INTEGER NOT NULL,
	action TEXT NOT NULL,
	code TEXT NOT NULL,
	shares INTEGER NOT NULL,
	price REAL NOT NULL,
	cash_after REAL NOT NULL,
	time DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS days (
	day INTEGER PRIMARY KEY,
	sentiment TEXT NOT NULL,
	balance REAL NOT NULL,
	total_pnl REAL NOT NULL,
	time DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_code ON trades(code);
CREATE INDEX IF NOT EXISTS idx_trades_day ON trades(day);
`
