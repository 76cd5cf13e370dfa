package ladder

import (
	"github.com/Ashenafi-pixel/goal-ladder/gamemath"
	"github.com/Ashenafi-pixel/goal-ladder/games"
)

// Snapshot is the frontend-facing view of the game. It shares nothing with live state.
type Snapshot struct {
	Started     bool             `json:"started"`
	SessionID   string           `json:"sessionId,omitempty"`
	Matches     []games.Match    `json:"matches"`
	Ladder      *gamemath.Ladder `json:"ladder,omitempty"`
	Stake       string           `json:"stake"`
	Scores      []Score          `json:"scores"`
	Clocks      []int            `json:"clocks"`
	Grid        [][]bool         `json:"grid"`
	Completed   CompletedLines   `json:"completedLines"`
	Ledger      []Win            `json:"winnings"`
	Totals      Totals           `json:"totals"`
	Events      []Event          `json:"events"` // most recent first
	Celebration *Celebration     `json:"celebration,omitempty"`
	Slot        string           `json:"slot"`
	Boost       Boost            `json:"boost"`
	Jackpot     int64            `json:"jackpot"`
	Simulating  bool             `json:"simulating"`
	Speed       int              `json:"speed"`
	Halted      bool             `json:"halted"`
	FullTime    bool             `json:"fullTime"`
	Version     uint64           `json:"version"`
}

func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	snap := Snapshot{
		Matches:    []games.Match{},
		Scores:     []Score{},
		Clocks:     []int{},
		Grid:       [][]bool{},
		Completed:  CompletedLines{Rows: []int{}, Cols: []int{}},
		Ledger:     []Win{},
		Events:     []Event{},
		Slot:       SlotIdle.String(),
		Boost:      Boost{State: BoostUnavailable},
		Jackpot:    g.pool,
		Simulating: g.simulating,
		Speed:      g.speed,
		Version:    g.version,
	}
	st := g.st
	if st == nil {
		return snap
	}
	now := g.now()
	snap.Started = true
	snap.SessionID = st.SessionID
	snap.Matches = append(snap.Matches, st.Matches...)
	snap.Ladder = st.Ladder.Clone()
	snap.Stake = Money(st.Stake)
	snap.Scores = append(snap.Scores, st.Scores...)
	snap.Clocks = append(snap.Clocks, st.Clocks...)
	snap.Grid = st.Grid()
	snap.Completed = CompletedLines{
		Rows: append([]int{}, st.Completed.Rows...),
		Cols: append([]int{}, st.Completed.Cols...),
	}
	snap.Ledger = append(snap.Ledger, st.Ledger...)
	snap.Totals = st.Totals()
	for i := len(st.Events) - 1; i >= 0; i-- {
		snap.Events = append(snap.Events, st.Events[i])
	}
	snap.Slot = st.Celebrations.State(now).String()
	snap.Celebration = st.Celebrations.Current()
	snap.Boost = st.Boost
	snap.Boost.Held = append([]string(nil), st.Boost.Held...)
	snap.Jackpot = st.Jackpot
	snap.Halted = st.Halted
	snap.FullTime = st.FullTime()
	return snap
}
