package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists historical data to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboards can read while the tracker writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS spins (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			session_id     TEXT NOT NULL,
			number         INTEGER NOT NULL,
			color          TEXT,
			seismo_score   INTEGER,
			seismo_tier    TEXT,
			total_staked   REAL,
			round_profit   REAL,
			bankroll_after REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_spins_ts ON spins(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_spins_session ON spins(session_id)`,

		`CREATE TABLE IF NOT EXISTS settlements (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			session_id TEXT NOT NULL,
			spin       INTEGER NOT NULL,
			strategy   TEXT NOT NULL,
			status     TEXT,
			stake      INTEGER,
			confidence REAL,
			profit     REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_settlements_ts ON settlements(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_settlements_strategy ON settlements(strategy)`,

		`CREATE TABLE IF NOT EXISTS alerts (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			session_id TEXT NOT NULL,
			kind       TEXT,
			priority   TEXT,
			message    TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_alerts_ts ON alerts(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordSpin(evt *SpinEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO spins
		(timestamp, session_id, number, color, seismo_score, seismo_tier,
		 total_staked, round_profit, bankroll_after)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), evt.SessionID, evt.Number, evt.Color,
		evt.SeismoScore, evt.SeismoTier,
		evt.TotalStaked, evt.RoundProfit, evt.BankrollAfter,
	)
	return err
}

func (r *SQLiteRecorder) RecordSettlement(evt *SettlementEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO settlements
		(timestamp, session_id, spin, strategy, status, stake, confidence, profit)
		VALUES (?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), evt.SessionID, evt.Spin, evt.Strategy,
		evt.Status, evt.Stake, evt.Confidence, evt.Profit,
	)
	return err
}

func (r *SQLiteRecorder) RecordAlert(evt *AlertEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO alerts
		(timestamp, session_id, kind, priority, message)
		VALUES (?,?,?,?,?)`,
		time.Now().Unix(), evt.SessionID, evt.Kind, evt.Priority, evt.Message,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
