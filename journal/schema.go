package journal

const Schema = `
CREATE TABLE IF NOT EXISTS plans (
	plan_id TEXT PRIMARY KEY,
	created_at DATETIME NOT NULL,
	direction TEXT NOT NULL,
	capital REAL NOT NULL,
	risk_pct REAL NOT NULL,
	entry_price REAL NOT NULL,
	stop_loss REAL NOT NULL,
	leverage INTEGER NOT NULL,
	risk_amount REAL NOT NULL,
	position_size REAL NOT NULL,
	margin REAL NOT NULL,
	note TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_plans_created_at ON plans(created_at);
`
