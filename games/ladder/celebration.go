package ladder

import (
	"time"

	"github.com/shopspring/decimal"
)

type CelebrationKind string

const (
	CelebrateGoal      CelebrationKind = "GOAL"
	CelebrateJackpot   CelebrationKind = "JACKPOT"
	CelebrateRowWin    CelebrationKind = "ROW_WIN"
	CelebrateColumnWin CelebrationKind = "COLUMN_WIN"
)

type Celebration struct {
	Kind    CelebrationKind  `json:"type"`
	Text    string           `json:"text,omitempty"`
	Amount  *decimal.Decimal `json:"amount,omitempty"`
	ShownAt time.Time        `json:"shownAt"`
}

type SlotState int

const (
	SlotIdle SlotState = iota
	SlotShowing
)

func (s SlotState) String() string {
	if s == SlotShowing {
		return "SHOWING"
	}
	return "IDLE"
}

// Sequencer is a single display slot. Offers made while a celebration is showing are
// dropped, not queued; the slot clears itself Hold after it was filled.
type Sequencer struct {
	Hold    time.Duration
	current *Celebration
}

// State expires a stale celebration and reports the slot state.
func (s *Sequencer) State(now time.Time) SlotState {
	s.Expire(now)
	if s.current == nil {
		return SlotIdle
	}
	return SlotShowing
}

func (s *Sequencer) Busy(now time.Time) bool {
	return s.State(now) == SlotShowing
}

// Offer fills an idle slot and reports whether c is now showing.
func (s *Sequencer) Offer(c Celebration, now time.Time) bool {
	if s.Busy(now) {
		return false
	}
	c.ShownAt = now
	s.current = &c
	return true
}

// Expire clears the slot once Hold has elapsed. It reports whether anything was cleared.
func (s *Sequencer) Expire(now time.Time) bool {
	if s.current == nil || now.Sub(s.current.ShownAt) < s.Hold {
		return false
	}
	s.current = nil
	return true
}

// Current returns a copy of the showing celebration, or nil.
func (s *Sequencer) Current() *Celebration {
	if s.current == nil {
		return nil
	}
	c := *s.current
	return &c
}

func (s *Sequencer) Clear() { s.current = nil }
