package goalladder

import (
	"context"
	"database/sql"
	"errors"
	"testing"
)

func TestInTx_NoDB(t *testing.T) {
	called := false
	err := InTx(context.Background(), nil, func(*sql.Tx) error {
		called = true
		return nil
	})
	if !errors.Is(err, ErrNoDB) {
		t.Fatalf("InTx(nil) = %v, want ErrNoDB", err)
	}
	if called {
		t.Error("fn ran without a database")
	}
}

func TestMaxConns(t *testing.T) {
	t.Setenv("LADDER_DB_MAX_CONNS", "")
	if got := maxConns(); got != 10 {
		t.Errorf("default = %d", got)
	}
	t.Setenv("LADDER_DB_MAX_CONNS", "4")
	if got := maxConns(); got != 4 {
		t.Errorf("override = %d", got)
	}
	t.Setenv("LADDER_DB_MAX_CONNS", "-1")
	if got := maxConns(); got != 10 {
		t.Errorf("invalid = %d", got)
	}
}

func TestGetDB_Unset(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	db, err := GetDB()
	if db != nil || err != nil {
		t.Errorf("GetDB without DATABASE_URL = %v, %v", db, err)
	}
}
