package ladder

import (
	"errors"
	"testing"
)

func TestBoost_Lifecycle(t *testing.T) {
	b := Boost{State: BoostAvailable}
	if err := b.Confirm(dec("10"), 0); !errors.Is(err, ErrNoBoostSelection) {
		t.Fatalf("confirm without selection: %v", err)
	}
	if err := b.Select(0, "g1", "1", SideHome); err != nil {
		t.Fatal(err)
	}
	if err := b.Confirm(dec("0"), 20); !errors.Is(err, ErrBoostAmount) {
		t.Fatalf("zero amount: %v", err)
	}
	if b.State != BoostSelecting {
		t.Fatalf("rejected confirm changed state to %s", b.State)
	}
	if err := b.Confirm(dec("10"), 20); err != nil {
		t.Fatal(err)
	}
	if b.Expiry != 35 || !b.Active() {
		t.Fatalf("expiry %d active %v", b.Expiry, b.Active())
	}
	if b.ExpireIfPassed(1, 40) {
		t.Error("other match must not expire the boost")
	}
	if b.ExpireIfPassed(0, 35) {
		t.Error("minute 35 is not past expiry 35")
	}
	if !b.ExpireIfPassed(0, 36) {
		t.Fatal("minute 36 should expire")
	}
	if b.State != BoostUnavailable {
		t.Errorf("state %s", b.State)
	}
	if err := b.Select(0, "g1", "1", SideHome); !errors.Is(err, ErrBoostUnavailable) {
		t.Errorf("re-arm after expiry: %v", err)
	}
	if !b.Staked.Equal(dec("10")) {
		t.Errorf("staked %s", b.Staked)
	}
}

func TestBoost_CancelKeepsAllowance(t *testing.T) {
	b := Boost{State: BoostAvailable}
	if err := b.Cancel(); !errors.Is(err, ErrNoBoostSelection) {
		t.Fatalf("cancel while available: %v", err)
	}
	_ = b.Select(2, "g3", "2", SideAway)
	if err := b.Cancel(); err != nil {
		t.Fatal(err)
	}
	if b.State != BoostAvailable || b.TeamID != "" {
		t.Fatalf("after cancel %+v", b)
	}
	if err := b.Select(1, "g2", "3", SideHome); err != nil {
		t.Fatalf("select after cancel: %v", err)
	}
	// A second selection before confirming replaces the first.
	if err := b.Select(2, "g3", "2", SideAway); err != nil || b.MatchIndex != 2 {
		t.Fatalf("reselect: %v %+v", err, b)
	}
}

func TestBoost_Targets(t *testing.T) {
	b := Boost{State: BoostActive, MatchIndex: 1, Side: SideAway}
	if !b.Targets(1, SideAway) || b.Targets(1, SideHome) || b.Targets(0, SideAway) {
		t.Error("Targets wrong")
	}
	b.State = BoostSelecting
	if b.Targets(1, SideAway) {
		t.Error("unconfirmed boost must not target")
	}
}
