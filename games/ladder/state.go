package ladder

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Ashenafi-pixel/goal-ladder/gamemath"
	"github.com/Ashenafi-pixel/goal-ladder/games"
)

const (
	// MatchCount is the number of grid rows; a session always has exactly this many matches.
	MatchCount = 3
	// MatchLength caps every match clock, in minutes.
	MatchLength = 90
	// BoostWindow is how many match minutes a confirmed boost stays active.
	BoostWindow = 15
	// JackpotID is the ledger id of the full-board payout.
	JackpotID = "jackpot"
)

type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// Score is a per-match goal tally. Both sides only ever increase within a session.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

func (s Score) Total() int { return s.Home + s.Away }

type EventKind string

const (
	EventGoal   EventKind = "GOAL"
	EventChance EventKind = "CHANCE"
	EventSave   EventKind = "SAVE"
)

// Event is one ticker line. Events are append-only.
type Event struct {
	Seq     int       `json:"id"`
	Kind    EventKind `json:"type"`
	Text    string    `json:"text"`
	Match   string    `json:"game"`
	MatchID string    `json:"gameId"`
	Minute  int       `json:"minute"`
}

type LineKind string

const (
	LineRow     LineKind = "row"
	LineColumn  LineKind = "column"
	LineJackpot LineKind = "jackpot"
)

// Win is one winnings ledger entry. IDs are unique per session.
type Win struct {
	ID      string          `json:"id"`
	Kind    LineKind        `json:"kind"`
	Index   int             `json:"index"`
	Amount  decimal.Decimal `json:"amount"`
	Display string          `json:"display"`
}

func RowID(i int) string    { return fmt.Sprintf("row-%d", i) }
func ColumnID(j int) string { return fmt.Sprintf("col-%d", j) }

// CompletedLines holds the row and column indices already paid.
type CompletedLines struct {
	Rows []int `json:"rows"`
	Cols []int `json:"cols"`
}

func (c CompletedLines) HasRow(i int) bool { return contains(c.Rows, i) }
func (c CompletedLines) HasCol(j int) bool { return contains(c.Cols, j) }

func contains(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

// State is everything one session mutates. Tick and Detect take it explicitly so a
// single step can be driven and inspected in isolation.
type State struct {
	SessionID string
	Matches   []games.Match
	Ladder    *gamemath.Ladder
	Stake     decimal.Decimal
	StartedAt time.Time

	Clocks       []int
	Scores       []Score
	Completed    CompletedLines
	Ledger       []Win
	Events       []Event
	Boost        Boost
	Celebrations Sequencer
	Jackpot      int64

	// Halted is set once the jackpot pays; nothing mutates the session afterwards.
	Halted bool
}

// NewState builds a fresh session. Callers validate matches, stake and ladder first.
func NewState(id string, matches []games.Match, ladder *gamemath.Ladder, stake decimal.Decimal, jackpot int64, celebrationFor time.Duration, now time.Time) *State {
	return &State{
		SessionID:    id,
		Matches:      append([]games.Match(nil), matches...),
		Ladder:       ladder.Clone(),
		Stake:        stake,
		StartedAt:    now,
		Clocks:       make([]int, len(matches)),
		Scores:       make([]Score, len(matches)),
		Completed:    CompletedLines{Rows: []int{}, Cols: []int{}},
		Ledger:       []Win{},
		Events:       []Event{},
		Boost:        Boost{State: BoostAvailable},
		Celebrations: Sequencer{Hold: celebrationFor},
		Jackpot:      jackpot,
	}
}

// Grid derives the cell matrix from the current scores.
func (st *State) Grid() [][]bool {
	return Evaluate(st.Scores, st.Ladder.Thresholds)
}

func (st *State) hasWin(id string) bool {
	for _, w := range st.Ledger {
		if w.ID == id {
			return true
		}
	}
	return false
}

// pendingLines returns the IDs of filled rows and columns that have not been paid yet.
func (st *State) pendingLines() []string {
	grid := st.Grid()
	var out []string
	for i := range grid {
		if RowFull(grid, i) && !st.Completed.HasRow(i) {
			out = append(out, RowID(i))
		}
	}
	for j := range st.Ladder.Thresholds {
		if ColumnFull(grid, j) && !st.Completed.HasCol(j) {
			out = append(out, ColumnID(j))
		}
	}
	return out
}

// FullTime reports whether every match clock has reached MatchLength.
func (st *State) FullTime() bool {
	for _, c := range st.Clocks {
		if c < MatchLength {
			return false
		}
	}
	return len(st.Clocks) > 0
}

// Totals sums the ledger against the stake plus any confirmed boost stake.
func (st *State) Totals() Totals {
	won := decimal.Zero
	for _, w := range st.Ledger {
		won = won.Add(w.Amount)
	}
	staked := st.Stake.Add(st.Boost.Staked)
	return Totals{
		Winnings: Money(won),
		Stake:    Money(staked),
		Profit:   Money(won.Sub(staked)),
	}
}

// Totals is the winnings panel, formatted to two decimals.
type Totals struct {
	Winnings string `json:"winnings"`
	Stake    string `json:"stake"`
	Profit   string `json:"profit"`
}

// Money formats an amount with two-decimal precision.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func (st *State) matchIndex(matchID string) int {
	for i, m := range st.Matches {
		if m.ID == matchID {
			return i
		}
	}
	return -1
}
