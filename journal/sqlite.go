package journal

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/autotrade/backtest"
	"github.com/rustyeddy/autotrade/broker"
	"github.com/rustyeddy/autotrade/internal/id"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	symbol TEXT NOT NULL,
	final_equity REAL NOT NULL,
	trades INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS fills (
	run_id TEXT NOT NULL,
	id TEXT NOT NULL,
	symbol TEXT NOT NULL,
	side TEXT NOT NULL,
	qty REAL NOT NULL,
	price REAL NOT NULL,
	ts INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS equity (
	run_id TEXT NOT NULL,
	ts INTEGER NOT NULL,
	equity REAL NOT NULL,
	price REAL NOT NULL,
	cash REAL NOT NULL,
	qty REAL NOT NULL,
	avg REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_fills_run ON fills(run_id);
CREATE INDEX IF NOT EXISTS idx_equity_run_ts ON equity(run_id, ts);
`

// RunRecord is one persisted backtest run.
type RunRecord struct {
	RunID       string  `db:"run_id"`
	Symbol      string  `db:"symbol"`
	FinalEquity float64 `db:"final_equity"`
	Trades      int     `db:"trades"`
}

// SQLiteJournal stores run results in a SQLite database.
type SQLiteJournal struct {
	db *sqlx.DB
}

// NewSQLite opens (creating if necessary) the journal database at path.
func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open journal db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply journal schema: %w", err)
	}
	return &SQLiteJournal{db: db}, nil
}

// SaveResult persists a run with all of its fills and equity points in one
// transaction and returns the generated run id.
func (j *SQLiteJournal) SaveResult(res backtest.Result) (string, error) {
	runID := id.New()

	tx, err := j.db.Beginx()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	finalEquity := 0.0
	if n := len(res.Equity); n > 0 {
		finalEquity = res.Equity[n-1].Equity
	}
	if _, err := tx.Exec(`
		INSERT INTO runs (run_id, symbol, final_equity, trades)
		VALUES (?, ?, ?, ?)`,
		runID, res.Symbol, finalEquity, len(res.Fills),
	); err != nil {
		return "", err
	}

	for _, f := range res.Fills {
		if _, err := tx.Exec(`
			INSERT INTO fills (run_id, id, symbol, side, qty, price, ts)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			runID, f.ID, f.Symbol, string(f.Side), f.Qty, f.Price, f.TS,
		); err != nil {
			return "", err
		}
	}

	for _, p := range res.Equity {
		if _, err := tx.Exec(`
			INSERT INTO equity (run_id, ts, equity, price, cash, qty, avg)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			runID, p.TS, p.Equity, p.Price, p.Cash, p.Qty, p.Avg,
		); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return runID, nil
}

// GetRun loads one run row.
func (j *SQLiteJournal) GetRun(runID string) (RunRecord, error) {
	var r RunRecord
	err := j.db.Get(&r, `SELECT run_id, symbol, final_equity, trades FROM runs WHERE run_id = ?`, runID)
	return r, err
}

// ListFills returns a run's fills in insertion (time) order.
func (j *SQLiteJournal) ListFills(runID string) ([]broker.Fill, error) {
	var out []broker.Fill
	err := j.db.Select(&out, `
		SELECT id, symbol, side, qty, price, ts
		FROM fills WHERE run_id = ? ORDER BY id`, runID)
	return out, err
}

// ListEquity returns a run's equity curve ordered by time.
func (j *SQLiteJournal) ListEquity(runID string) ([]backtest.EquityPoint, error) {
	var out []backtest.EquityPoint
	err := j.db.Select(&out, `
		SELECT ts, equity, price, cash, qty, avg
		FROM equity WHERE run_id = ? ORDER BY ts`, runID)
	return out, err
}

// Close releases the database handle.
func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
