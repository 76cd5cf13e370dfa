package ladder

import (
	"strings"
	"testing"
)

func TestTick_Goal(t *testing.T) {
	st := newTestState(t, shortLadder())
	src := &script{}
	src.push([]int{1, 2, 0, 1}, 0.75)

	res := Tick(st, src, t0)
	if res.Skipped || !res.Goal || res.MatchIndex != 1 {
		t.Fatalf("result %+v", res)
	}
	if st.Clocks[1] != 3 {
		t.Errorf("clock = %d, want 3", st.Clocks[1])
	}
	if st.Scores[1] != (Score{Home: 1}) {
		t.Errorf("score = %+v", st.Scores[1])
	}
	ev := st.Events[0]
	if ev.Kind != EventGoal || ev.Text != "Núñez scores for Liverpool!" || ev.Minute != 3 || ev.Seq != 1 {
		t.Errorf("event %+v", ev)
	}
	if ev.Match != "Liverpool vs Arsenal" || ev.MatchID != "g2" {
		t.Errorf("event match %q %q", ev.Match, ev.MatchID)
	}
	if !res.Celebrated || st.Celebrations.Current().Kind != CelebrateGoal {
		t.Error("goal did not take the idle slot")
	}
}

func TestTick_EventThresholds(t *testing.T) {
	cases := []struct {
		roll float64
		want EventKind
	}{
		{0.61, EventGoal},
		{0.6, EventChance},
		{0.31, EventChance},
		{0.3, EventSave},
		{0.0, EventSave},
	}
	for _, c := range cases {
		st := newTestState(t, shortLadder())
		src := &script{}
		src.push([]int{0, 0, 1, 0}, c.roll)
		Tick(st, src, t0)
		if got := st.Events[0].Kind; got != c.want {
			t.Errorf("roll %.2f: %s, want %s", c.roll, got, c.want)
		}
		if c.want != EventGoal && st.Scores[0].Total() != 0 {
			t.Errorf("roll %.2f changed the score", c.roll)
		}
	}
}

func TestTick_ChanceAndSaveText(t *testing.T) {
	st := newTestState(t, shortLadder())
	src := &script{}
	src.push([]int{0, 0, 1, 0}, 0.5)
	src.push([]int{0, 0, 0, 2}, 0.1)
	Tick(st, src, t0)
	Tick(st, src, t0)
	if st.Events[0].Text != "Son has a shot, but it's just wide!" {
		t.Errorf("chance text %q", st.Events[0].Text)
	}
	if st.Events[1].Text != "Great save! Garnacho's shot is denied." {
		t.Errorf("save text %q", st.Events[1].Text)
	}
	if st.Events[1].Seq != 2 {
		t.Errorf("seq %d", st.Events[1].Seq)
	}
}

func TestTick_BoostedSide(t *testing.T) {
	st := newTestState(t, shortLadder())
	st.Boost = Boost{State: BoostActive, MatchIndex: 0, Side: SideHome, Amount: dec("10"), Expiry: 50}
	src := &script{}
	src.push([]int{0, 0, 0, 0}, 0.3)
	res := Tick(st, src, t0)
	if !res.Goal || !res.Boosted {
		t.Fatalf("boosted roll 0.3 should score: %+v", res)
	}
	if !strings.HasSuffix(st.Events[0].Text, " (BOOSTED!)") {
		t.Errorf("text %q", st.Events[0].Text)
	}

	// The opposing side keeps the normal odds.
	src.push([]int{0, 0, 1, 0}, 0.3)
	res = Tick(st, src, t0)
	if res.Goal || res.Boosted {
		t.Errorf("away side boosted: %+v", res)
	}
}

func TestTick_FullTimeMatchIsNoop(t *testing.T) {
	st := newTestState(t, shortLadder())
	st.Clocks[0] = MatchLength
	src := &script{}
	src.push([]int{0, 4, 0, 0}, 0.9)
	res := Tick(st, src, t0)
	if !res.Skipped || len(st.Events) != 0 || st.Scores[0].Total() != 0 {
		t.Fatalf("full-time tick mutated state: %+v", res)
	}
	if len(src.ints) != 3 {
		t.Errorf("skipped tick consumed %d draws", 4-len(src.ints))
	}
}

func TestTick_ClockCapsAtFullTime(t *testing.T) {
	st := newTestState(t, shortLadder())
	st.Clocks[2] = 88
	src := &script{}
	src.push([]int{2, 4, 0, 0}, 0.1)
	Tick(st, src, t0)
	if st.Clocks[2] != MatchLength {
		t.Errorf("clock %d, want %d", st.Clocks[2], MatchLength)
	}
	if st.Events[0].Minute != MatchLength {
		t.Errorf("event minute %d", st.Events[0].Minute)
	}
}

func TestTick_ExpiresBoostBeforeRolling(t *testing.T) {
	st := newTestState(t, shortLadder())
	st.Clocks[0] = 34
	st.Boost = Boost{State: BoostActive, MatchIndex: 0, Side: SideHome, Amount: dec("10"), Staked: dec("10"), Expiry: 35}
	src := &script{}
	src.push([]int{0, 1, 0, 0}, 0.3)
	res := Tick(st, src, t0)
	if !res.BoostExpired || st.Boost.State != BoostUnavailable {
		t.Fatalf("boost not expired at minute 36: %+v", st.Boost)
	}
	if res.Goal {
		t.Error("expired boost still lowered the goal threshold")
	}
}

func TestTick_GoalWhileSlotBusy(t *testing.T) {
	st := newTestState(t, shortLadder())
	st.Celebrations.Offer(Celebration{Kind: CelebrateRowWin, Text: "Row 1 Cleared!"}, t0)
	src := &script{}
	src.push([]int{1, 0, 1, 0}, 0.9)
	res := Tick(st, src, t0)
	if !res.Goal || res.Celebrated {
		t.Fatalf("result %+v", res)
	}
	if st.Scores[1].Away != 1 {
		t.Error("score not updated while a celebration was showing")
	}
	if st.Celebrations.Current().Kind != CelebrateRowWin {
		t.Error("goal overwrote the showing celebration")
	}
}

func TestTick_EmptyRosterUsesTeamName(t *testing.T) {
	st := newTestState(t, shortLadder())
	st.Matches[0].Home.Players = nil
	src := &script{}
	src.push([]int{0, 0, 0}, 0.9)
	Tick(st, src, t0)
	if st.Events[0].Text != "Man Utd scores for Man Utd!" {
		t.Errorf("text %q", st.Events[0].Text)
	}
}

func TestTick_ExpiryHoldsPendingLines(t *testing.T) {
	st := newTestState(t, shortLadder())
	st.Clocks[0] = 14
	st.Scores[0] = Score{Home: 3}
	st.Boost = Boost{State: BoostActive, MatchIndex: 0, Side: SideHome, Amount: dec("10"), Expiry: 15}
	src := &script{}
	src.push([]int{0, 2, 1, 0}, 0.1)
	if res := Tick(st, src, t0); !res.BoostExpired {
		t.Fatal("boost did not expire")
	}
	if !st.Boost.Covers("row-0") || st.Boost.Covers("row-1") || st.Boost.Covers("col-0") {
		t.Errorf("held %v", st.Boost.Held)
	}
}
