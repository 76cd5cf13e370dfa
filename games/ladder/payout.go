package ladder

import (
	"github.com/shopspring/decimal"

	"github.com/Ashenafi-pixel/goal-ladder/gamemath"
)

var boostPayoutFactor = decimal.NewFromInt(2)

// RowPayout = row multiplier x stake, plus twice the boost amount when the boost targets this
// row's match and covers the row (active, or held from before expiry).
func RowPayout(l *gamemath.Ladder, stake decimal.Decimal, b Boost, row int) decimal.Decimal {
	amount := decimal.NewFromFloat(l.RowMultiplier).Mul(stake)
	if b.MatchIndex == row && b.Covers(RowID(row)) {
		amount = amount.Add(b.Amount.Mul(boostPayoutFactor))
	}
	return nonNegative(amount)
}

// ColumnPayout = threshold multiplier x stake, plus twice the boost amount whenever the boost covers the column.
// Unlike rows, the column bonus ignores which match the boost targets.
func ColumnPayout(l *gamemath.Ladder, stake decimal.Decimal, b Boost, col int) decimal.Decimal {
	amount := decimal.NewFromFloat(l.Thresholds[col].Multiplier).Mul(stake)
	if b.Covers(ColumnID(col)) {
		amount = amount.Add(b.Amount.Mul(boostPayoutFactor))
	}
	return nonNegative(amount)
}

// JackpotPayout is the pool value at the instant the board fills.
func JackpotPayout(pool int64) decimal.Decimal {
	return nonNegative(decimal.NewFromInt(pool))
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
