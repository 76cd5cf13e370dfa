package ladder

import "testing"

func TestRowPayout_NoBoost(t *testing.T) {
	got := RowPayout(shortLadder(), dec("10"), Boost{State: BoostAvailable}, 0)
	if Money(got) != "40.00" {
		t.Errorf("row payout %s, want 40.00", Money(got))
	}
}

func TestRowPayout_BoostIsMatchSpecific(t *testing.T) {
	b := Boost{State: BoostActive, MatchIndex: 1, Side: SideAway, Amount: dec("10")}
	l := shortLadder()
	if got := RowPayout(l, dec("10"), b, 1); Money(got) != "60.00" {
		t.Errorf("boosted row %s, want 60.00", Money(got))
	}
	if got := RowPayout(l, dec("10"), b, 0); Money(got) != "40.00" {
		t.Errorf("other row %s, want 40.00", Money(got))
	}
	b.State = BoostUnavailable
	if got := RowPayout(l, dec("10"), b, 1); Money(got) != "40.00" {
		t.Errorf("expired boost still paid: %s", Money(got))
	}
}

func TestColumnPayout(t *testing.T) {
	l := shortLadder()
	if got := ColumnPayout(l, dec("10"), Boost{}, 1); Money(got) != "25.00" {
		t.Errorf("column 1 %s, want 25.00", Money(got))
	}
	b := Boost{State: BoostActive, MatchIndex: 2, Amount: dec("7.5")}
	if got := ColumnPayout(l, dec("10"), b, 0); Money(got) != "30.00" {
		t.Errorf("boosted column %s, want 30.00", Money(got))
	}
}

func TestJackpotPayout(t *testing.T) {
	if got := JackpotPayout(305210); Money(got) != "305210.00" {
		t.Errorf("jackpot %s", Money(got))
	}
	if got := JackpotPayout(-5); !got.IsZero() {
		t.Errorf("negative pool paid %s", got)
	}
}

func TestPayout_HeldLinesKeepBonusAfterExpiry(t *testing.T) {
	l := shortLadder()
	b := Boost{State: BoostUnavailable, MatchIndex: 1, Side: SideHome, Amount: dec("10"), Held: []string{"row-1", "col-0"}}
	if got := RowPayout(l, dec("10"), b, 1); Money(got) != "60.00" {
		t.Errorf("held row %s, want 60.00", Money(got))
	}
	if got := RowPayout(l, dec("10"), b, 0); Money(got) != "40.00" {
		t.Errorf("other row %s, want 40.00", Money(got))
	}
	if got := ColumnPayout(l, dec("10"), b, 0); Money(got) != "35.00" {
		t.Errorf("held column %s, want 35.00", Money(got))
	}
	if got := ColumnPayout(l, dec("10"), b, 1); Money(got) != "25.00" {
		t.Errorf("column filled after expiry %s, want 25.00", Money(got))
	}
}
