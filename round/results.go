package round

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Result records one paid ladder line for audit (same style as platform transactions.json).
// SessionID + LineID is unique: a line is paid at most once per session.
type Result struct {
	SessionID string          `json:"sessionId"`
	LineID    string          `json:"lineId"`
	Kind      string          `json:"kind"` // "row", "column", "jackpot"
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency,omitempty"`
	SettledAt time.Time       `json:"settledAt"`
}

// ResultsStore appends settled line results to data/round_results.json and, when a
// database handle is set, mirrors them into ladder_results.
type ResultsStore struct {
	mu      sync.Mutex
	dataDir string
	db      *sql.DB
	log     *zap.Logger
}

// NewResultsStore returns a store under dataDir. db may be nil.
func NewResultsStore(dataDir string, db *sql.DB, logger *zap.Logger) *ResultsStore {
	if dataDir == "" {
		dataDir = "data"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResultsStore{dataDir: dataDir, db: db, log: logger}
}

func (rs *ResultsStore) path() string {
	return filepath.Join(rs.dataDir, "round_results.json")
}

func (rs *ResultsStore) ensureDir() error {
	return os.MkdirAll(rs.dataDir, 0755)
}

const schema = `
CREATE TABLE IF NOT EXISTS ladder_results (
	session_id TEXT NOT NULL,
	line_id    TEXT NOT NULL,
	kind       TEXT NOT NULL,
	amount     NUMERIC(20, 2) NOT NULL,
	currency   TEXT NOT NULL DEFAULT '',
	settled_at TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (session_id, line_id)
)`

// EnsureSchema creates the mirror table. It is a no-op without a database.
func (rs *ResultsStore) EnsureSchema(ctx context.Context) error {
	if rs.db == nil {
		return nil
	}
	if _, err := rs.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create ladder_results: %w", err)
	}
	return nil
}

func (rs *ResultsStore) readLocked() ([]*Result, error) {
	data, err := os.ReadFile(rs.path())
	if err != nil {
		if os.IsNotExist(err) {
			return []*Result{}, nil
		}
		return nil, err
	}
	var list []*Result
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse %s: %w", rs.path(), err)
	}
	if list == nil {
		list = []*Result{}
	}
	return list, nil
}

// Append adds a settled line to the JSON file (append to array, same as platform ledger).
// A line already recorded for the session is ignored and reported as appended=false.
func (rs *ResultsStore) Append(ctx context.Context, r *Result) (appended bool, err error) {
	if r.SettledAt.IsZero() {
		r.SettledAt = time.Now().UTC()
	}
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if err := rs.ensureDir(); err != nil {
		return false, err
	}
	list, err := rs.readLocked()
	if err != nil {
		return false, err
	}
	for _, prev := range list {
		if prev.SessionID == r.SessionID && prev.LineID == r.LineID {
			return false, nil
		}
	}
	list = append(list, r)
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(rs.path(), data, 0644); err != nil {
		return false, err
	}
	rs.mirror(ctx, r)
	return true, nil
}

func (rs *ResultsStore) mirror(ctx context.Context, r *Result) {
	if rs.db == nil {
		return
	}
	_, err := rs.db.ExecContext(ctx, `
		INSERT INTO ladder_results (session_id, line_id, kind, amount, currency, settled_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (session_id, line_id) DO NOTHING`,
		r.SessionID, r.LineID, r.Kind, r.Amount.StringFixed(2), r.Currency, r.SettledAt)
	if err != nil {
		rs.log.Warn("mirror result failed",
			zap.String("session", r.SessionID), zap.String("line", r.LineID), zap.Error(err))
	}
}

// BySession returns every recorded line for a session, oldest first.
func (rs *ResultsStore) BySession(sessionID string) ([]*Result, error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	list, err := rs.readLocked()
	if err != nil {
		return nil, err
	}
	out := []*Result{}
	for _, r := range list {
		if r.SessionID == sessionID {
			out = append(out, r)
		}
	}
	return out, nil
}
