package ladder

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Detection is the outcome of one win-detection pass.
type Detection struct {
	Wins    []Win
	Jackpot bool
	// Shown is the celebration that took the display slot, if any.
	Shown *Celebration
}

// Detect pays every newly completed line. A full board takes priority: it pays the jackpot,
// halts the session and skips the row/column checks. Rows are evaluated in order, then
// columns; the last new completion evaluated is the one offered to the display slot.
// Running Detect again on an unchanged grid pays nothing.
func Detect(st *State, now time.Time) Detection {
	var d Detection
	if st.Halted {
		return d
	}
	grid := st.Grid()

	if Full(grid) {
		if st.hasWin(JackpotID) {
			return d
		}
		amount := JackpotPayout(st.Jackpot)
		w := Win{ID: JackpotID, Kind: LineJackpot, Amount: amount, Display: Money(amount)}
		st.Ledger = append(st.Ledger, w)
		st.Halted = true
		d.Wins = []Win{w}
		d.Jackpot = true
		c := Celebration{Kind: CelebrateJackpot, Text: "Full board!", Amount: &amount}
		if st.Celebrations.Offer(c, now) {
			d.Shown = st.Celebrations.Current()
		}
		return d
	}

	var last *Celebration
	for i := range grid {
		if st.Completed.HasRow(i) || !RowFull(grid, i) {
			continue
		}
		st.Completed.Rows = append(st.Completed.Rows, i)
		id := RowID(i)
		if st.hasWin(id) {
			continue
		}
		amount := RowPayout(st.Ladder, st.Stake, st.Boost, i)
		w := Win{ID: id, Kind: LineRow, Index: i, Amount: amount, Display: Money(amount)}
		st.Ledger = append(st.Ledger, w)
		d.Wins = append(d.Wins, w)
		last = &Celebration{Kind: CelebrateRowWin, Text: fmt.Sprintf("Row %d Cleared!", i+1), Amount: amountPtr(amount)}
	}
	for j, t := range st.Ladder.Thresholds {
		if st.Completed.HasCol(j) || !ColumnFull(grid, j) {
			continue
		}
		st.Completed.Cols = append(st.Completed.Cols, j)
		id := ColumnID(j)
		if st.hasWin(id) {
			continue
		}
		amount := ColumnPayout(st.Ladder, st.Stake, st.Boost, j)
		w := Win{ID: id, Kind: LineColumn, Index: j, Amount: amount, Display: Money(amount)}
		st.Ledger = append(st.Ledger, w)
		d.Wins = append(d.Wins, w)
		last = &Celebration{Kind: CelebrateColumnWin, Text: fmt.Sprintf("%d+ Goals Column Cleared!", t.Goals), Amount: amountPtr(amount)}
	}
	if last != nil && st.Celebrations.Offer(*last, now) {
		d.Shown = st.Celebrations.Current()
	}
	return d
}

func amountPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}
