package ladder

import (
	"errors"

	"github.com/shopspring/decimal"
)

type BoostState string

const (
	BoostUnavailable BoostState = "UNAVAILABLE"
	BoostAvailable   BoostState = "AVAILABLE"
	BoostSelecting   BoostState = "SELECTING"
	BoostActive      BoostState = "ACTIVE"
)

var (
	ErrBoostUnavailable = errors.New("boost is not available")
	ErrNoBoostSelection = errors.New("no boost team selected")
	ErrBoostAmount      = errors.New("boost amount must be positive")
)

// Boost is the one-time stake amplifier. Once confirmed, the allowance is spent for the
// session: expiry moves it to UNAVAILABLE and it can never be re-armed.
type Boost struct {
	State      BoostState      `json:"state"`
	TeamID     string          `json:"teamId,omitempty"`
	MatchID    string          `json:"matchId,omitempty"`
	MatchIndex int             `json:"matchIndex"`
	Side       Side            `json:"side,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Expiry     int             `json:"expiry"`
	// Staked is the confirmed boost amount; it stays after expiry for the profit figure.
	Staked decimal.Decimal `json:"staked"`
	// Held lists line IDs that filled while the boost was active but were still unpaid
	// when it expired. They keep the bonus.
	Held []string `json:"-"`
}

func (b Boost) Active() bool { return b.State == BoostActive }

// Targets reports whether an active boost favours this match side.
func (b Boost) Targets(matchIndex int, side Side) bool {
	return b.Active() && b.MatchIndex == matchIndex && b.Side == side
}

// Covers reports whether lineID earns the boost bonus: the boost is active, or the
// line filled before it expired.
func (b Boost) Covers(lineID string) bool {
	if b.Active() {
		return true
	}
	for _, id := range b.Held {
		if id == lineID {
			return true
		}
	}
	return false
}

// Select moves AVAILABLE (or an earlier, unconfirmed selection) to SELECTING.
func (b *Boost) Select(matchIndex int, matchID, teamID string, side Side) error {
	if b.State != BoostAvailable && b.State != BoostSelecting {
		return ErrBoostUnavailable
	}
	b.State = BoostSelecting
	b.MatchIndex = matchIndex
	b.MatchID = matchID
	b.TeamID = teamID
	b.Side = side
	return nil
}

// Confirm binds the selection with expiry = minute + BoostWindow.
func (b *Boost) Confirm(amount decimal.Decimal, minute int) error {
	if b.State != BoostSelecting {
		return ErrNoBoostSelection
	}
	if !amount.IsPositive() {
		return ErrBoostAmount
	}
	b.State = BoostActive
	b.Amount = amount
	b.Staked = amount
	b.Expiry = minute + BoostWindow
	return nil
}

// Cancel returns SELECTING to AVAILABLE without spending the allowance.
func (b *Boost) Cancel() error {
	if b.State != BoostSelecting {
		return ErrNoBoostSelection
	}
	*b = Boost{State: BoostAvailable}
	return nil
}

// ExpireIfPassed deactivates an active boost once its match clock passes the expiry minute.
func (b *Boost) ExpireIfPassed(matchIndex, minute int) bool {
	if !b.Active() || b.MatchIndex != matchIndex || minute <= b.Expiry {
		return false
	}
	b.State = BoostUnavailable
	return true
}
