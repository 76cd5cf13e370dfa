package round

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
)

func TestResultsStore_AppendAndBySession(t *testing.T) {
	dir := t.TempDir()
	rs := NewResultsStore(dir, nil, nil)
	ctx := context.Background()

	ok, err := rs.Append(ctx, &Result{SessionID: "s1", LineID: "row-0", Kind: "row", Amount: decimal.NewFromInt(50)})
	if err != nil || !ok {
		t.Fatalf("append: %v %v", ok, err)
	}
	if _, err := rs.Append(ctx, &Result{SessionID: "s2", LineID: "row-0", Kind: "row", Amount: decimal.NewFromInt(40)}); err != nil {
		t.Fatal(err)
	}
	ok, err = rs.Append(ctx, &Result{SessionID: "s1", LineID: "row-0", Kind: "row", Amount: decimal.NewFromInt(50)})
	if err != nil || ok {
		t.Fatalf("duplicate line appended: %v %v", ok, err)
	}

	got, err := rs.BySession("s1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].LineID != "row-0" || !got[0].Amount.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("BySession = %+v", got)
	}
	if got[0].SettledAt.IsZero() {
		t.Error("SettledAt not stamped")
	}
	if _, err := os.Stat(filepath.Join(dir, "round_results.json")); err != nil {
		t.Errorf("results file: %v", err)
	}
}

func TestResultsStore_EmptyAndNoDB(t *testing.T) {
	rs := NewResultsStore(t.TempDir(), nil, nil)
	got, err := rs.BySession("missing")
	if err != nil || len(got) != 0 {
		t.Fatalf("empty store: %v %v", got, err)
	}
	if err := rs.EnsureSchema(context.Background()); err != nil {
		t.Errorf("EnsureSchema without db: %v", err)
	}
}

func TestResultsStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "round_results.json"), []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	rs := NewResultsStore(dir, nil, nil)
	if _, err := rs.Append(context.Background(), &Result{SessionID: "s", LineID: "jackpot"}); err == nil {
		t.Error("expected parse error")
	}
}
