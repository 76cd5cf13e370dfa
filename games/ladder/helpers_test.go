package ladder

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Ashenafi-pixel/goal-ladder/gamemath"
	"github.com/Ashenafi-pixel/goal-ladder/games"
)

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

// script replays fixed draws; once exhausted it returns 0 (first match, home, SAVE roll).
type script struct {
	ints   []int
	floats []float64
}

func (s *script) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func (s *script) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *script) push(ints []int, floats ...float64) {
	s.ints = append(s.ints, ints...)
	s.floats = append(s.floats, floats...)
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func testMatches(t *testing.T) []games.Match {
	t.Helper()
	ms, err := games.DefaultCatalog().Lookup([]string{"g1", "g2", "g3"})
	if err != nil {
		t.Fatal(err)
	}
	return ms
}

func shortLadder() *gamemath.Ladder {
	return &gamemath.Ladder{
		ModelID:       "short",
		RowMultiplier: 4,
		Thresholds: []gamemath.Threshold{
			{Goals: 1, Multiplier: 1.5},
			{Goals: 2, Multiplier: 2.5},
			{Goals: 3, Multiplier: 4.0},
		},
	}
}

func newTestState(t *testing.T, l *gamemath.Ladder) *State {
	t.Helper()
	return NewState("s1", testMatches(t), l, decimal.NewFromInt(10), 300000, 2500*time.Millisecond, t0)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
