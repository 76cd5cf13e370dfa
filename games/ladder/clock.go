package ladder

import (
	"fmt"
	"time"

	"github.com/Ashenafi-pixel/goal-ladder/games"
)

const (
	maxClockStep = 5

	goalThreshold        = 0.6
	boostedGoalThreshold = 0.2
	saveThreshold        = 0.3
)

// TickResult describes what one clock tick did.
type TickResult struct {
	Skipped      bool   `json:"skipped"`
	MatchIndex   int    `json:"matchIndex"`
	Event        *Event `json:"event,omitempty"`
	Goal         bool   `json:"goal"`
	Boosted      bool   `json:"boosted"`
	BoostExpired bool   `json:"boostExpired"`
	// Celebrated is false when a goal could not take the display slot.
	Celebrated bool `json:"celebrated"`
}

// Tick advances one randomly chosen match: its clock moves 1-5 minutes (capped at
// MatchLength), an expired boost is switched off, and one GOAL, CHANCE or SAVE event is
// rolled and appended. Lines already filled but unpaid when the boost expires keep its
// bonus. A match already at full time makes the tick a no-op.
//
// Draw order from src: match, clock step, acting side, player, event roll.
func Tick(st *State, src Source, now time.Time) TickResult {
	var res TickResult
	if st.Halted || len(st.Matches) == 0 {
		res.Skipped = true
		return res
	}
	idx := src.Intn(len(st.Matches))
	res.MatchIndex = idx
	if st.Clocks[idx] >= MatchLength {
		res.Skipped = true
		return res
	}
	minute := st.Clocks[idx] + src.Intn(maxClockStep) + 1
	if minute > MatchLength {
		minute = MatchLength
	}
	st.Clocks[idx] = minute
	if st.Boost.ExpireIfPassed(idx, minute) {
		res.BoostExpired = true
		st.Boost.Held = st.pendingLines()
	}

	m := st.Matches[idx]
	side, team := SideHome, m.Home
	if src.Intn(2) == 1 {
		side, team = SideAway, m.Away
	}
	player := pickPlayer(team, src)
	roll := src.Float64()

	threshold := goalThreshold
	res.Boosted = st.Boost.Targets(idx, side)
	if res.Boosted {
		threshold = boostedGoalThreshold
	}

	ev := Event{Seq: len(st.Events) + 1, Match: m.Label(), MatchID: m.ID, Minute: minute}
	switch {
	case roll > threshold:
		ev.Kind = EventGoal
		ev.Text = fmt.Sprintf("%s scores for %s!", player, team.Name)
		if res.Boosted {
			ev.Text += " (BOOSTED!)"
		}
		if side == SideHome {
			st.Scores[idx].Home++
		} else {
			st.Scores[idx].Away++
		}
		res.Goal = true
		res.Celebrated = st.Celebrations.Offer(Celebration{Kind: CelebrateGoal, Text: ev.Text}, now)
	case roll > saveThreshold:
		ev.Kind = EventChance
		ev.Text = fmt.Sprintf("%s has a shot, but it's just wide!", player)
	default:
		ev.Kind = EventSave
		ev.Text = fmt.Sprintf("Great save! %s's shot is denied.", player)
	}
	st.Events = append(st.Events, ev)
	res.Event = &ev
	return res
}

func pickPlayer(t games.Team, src Source) string {
	if len(t.Players) == 0 {
		return t.Name
	}
	return t.Players[src.Intn(len(t.Players))]
}
