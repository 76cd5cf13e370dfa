// Package goalladder holds the Postgres handle shared by the match catalog, the
// result mirror and the catalog importer. Every caller treats the database as optional.
package goalladder

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

// ErrNoDB is returned by helpers that need a database when DATABASE_URL is unset.
var ErrNoDB = errors.New("DATABASE_URL is not set")

const pingTimeout = 5 * time.Second

var (
	dbOnce sync.Once
	dbConn *sql.DB
	dbErr  error
)

// GetDB returns the shared handle, or (nil, nil) when DATABASE_URL is unset.
// LADDER_DB_MAX_CONNS caps the pool (default 10); the ladder writes one row per paid line
// and reads the catalog once at startup, so the pool stays small.
func GetDB() (*sql.DB, error) {
	dbOnce.Do(func() {
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			return
		}
		config, err := pgx.ParseConfig(dsn)
		if err != nil {
			dbErr = fmt.Errorf("parse DATABASE_URL: %w", err)
			return
		}
		// PgBouncer-style poolers reject server-side prepared statements.
		config.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
		if config.RuntimeParams == nil {
			config.RuntimeParams = map[string]string{}
		}
		config.RuntimeParams["application_name"] = "goal-ladder"

		db := stdlib.OpenDB(*config)
		db.SetConnMaxIdleTime(4 * time.Minute)
		db.SetMaxOpenConns(maxConns())
		db.SetMaxIdleConns(2)

		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			dbErr = fmt.Errorf("ping database: %w", err)
			return
		}
		dbConn = db
	})
	if dbErr != nil {
		return nil, dbErr
	}
	return dbConn, nil
}

func maxConns() int {
	if n, err := strconv.Atoi(os.Getenv("LADDER_DB_MAX_CONNS")); err == nil && n > 0 {
		return n
	}
	return 10
}

// InTx runs fn in a transaction on db, committing when fn returns nil.
func InTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	if db == nil {
		return ErrNoDB
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
