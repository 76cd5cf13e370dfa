package ladder

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Ashenafi-pixel/goal-ladder/gamemath"
	"github.com/Ashenafi-pixel/goal-ladder/games"
)

var (
	ErrNoSession    = errors.New("no session in progress")
	ErrMatchCount   = errors.New("exactly 3 distinct matches are required")
	ErrStake        = errors.New("stake must be positive")
	ErrUnknownMatch = errors.New("match is not part of this session")
	ErrUnknownTeam  = errors.New("team does not play in this match")
	ErrHalted       = errors.New("session finished with a jackpot")
	ErrSpeed        = errors.New("speed must be a power of two between 1 and 64")
)

// Options configures a Game. Zero values fall back to production defaults.
type Options struct {
	Source         Source
	Effects        Effects
	Recorder       Recorder
	Logger         *zap.Logger
	CelebrationFor time.Duration
	JackpotSeed    int64
	Now            func() time.Time
}

// Game owns the single ladder session. Every method is safe for concurrent use and
// every state transition happens under one lock, so ticks never interleave with inputs.
type Game struct {
	mu sync.Mutex
	st *State

	src            Source
	effects        Effects
	recorder       Recorder
	log            *zap.Logger
	now            func() time.Time
	celebrationFor time.Duration

	seed        int64
	pool        int64
	jackpotPaid bool
	simulating  bool
	speed       int
	version     uint64
}

func NewGame(opts Options) *Game {
	g := &Game{
		src:            opts.Source,
		effects:        opts.Effects,
		recorder:       opts.Recorder,
		log:            opts.Logger,
		now:            opts.Now,
		celebrationFor: opts.CelebrationFor,
		seed:           opts.JackpotSeed,
		pool:           opts.JackpotSeed,
		speed:          1,
	}
	if g.src == nil {
		g.src = NewSecureSource()
	}
	if g.log == nil {
		g.log = zap.NewNop()
	}
	if g.effects == nil {
		g.effects = LogEffects{Logger: g.log}
	}
	if g.now == nil {
		g.now = time.Now
	}
	if g.celebrationFor <= 0 {
		g.celebrationFor = 2500 * time.Millisecond
	}
	return g
}

// Start replaces any current session with a fresh one over matches (in row order).
// Invalid input is rejected and leaves the game untouched.
func (g *Game) Start(matches []games.Match, stake decimal.Decimal, ladder *gamemath.Ladder) (string, error) {
	if len(matches) != MatchCount {
		return "", ErrMatchCount
	}
	seen := make(map[string]bool, len(matches))
	for _, m := range matches {
		if seen[m.ID] {
			return "", ErrMatchCount
		}
		seen[m.ID] = true
	}
	if !stake.IsPositive() {
		return "", ErrStake
	}
	if ladder == nil {
		ladder = gamemath.Default()
	}
	if err := ladder.Validate(); err != nil {
		return "", err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.retireLocked()
	if g.jackpotPaid {
		g.pool = g.seed
		g.jackpotPaid = false
	}
	id := uuid.New().String()
	g.st = NewState(id, matches, ladder, stake, g.pool, g.celebrationFor, g.now())
	g.version++
	g.log.Info("session started",
		zap.String("session", id),
		zap.String("stake", Money(stake)),
		zap.String("ladder", ladder.ModelID),
		zap.Strings("matches", []string{matches[0].ID, matches[1].ID, matches[2].ID}))
	return id, nil
}

// Reset tears the session down completely. The jackpot pool carries over.
func (g *Game) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.st != nil {
		g.log.Info("session reset", zap.String("session", g.st.SessionID))
	}
	g.retireLocked()
	g.simulating = false
	g.version++
}

func (g *Game) retireLocked() {
	if g.st == nil {
		return
	}
	g.pool = g.st.Jackpot
	if g.st.hasWin(JackpotID) {
		g.jackpotPaid = true
	}
	g.st = nil
}

// SelectBoostTeam puts the boost into SELECTING for teamID in matchID.
func (g *Game) SelectBoostTeam(teamID, matchID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	st, err := g.liveLocked()
	if err != nil {
		return err
	}
	idx := st.matchIndex(matchID)
	if idx < 0 {
		return ErrUnknownMatch
	}
	m := st.Matches[idx]
	var side Side
	switch teamID {
	case m.Home.ID:
		side = SideHome
	case m.Away.ID:
		side = SideAway
	default:
		return ErrUnknownTeam
	}
	if err := st.Boost.Select(idx, matchID, teamID, side); err != nil {
		return err
	}
	g.version++
	return nil
}

// BoostSelecting reports whether a boost selection awaits confirmation.
func (g *Game) BoostSelecting() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.st != nil && !g.st.Halted && g.st.Boost.State == BoostSelecting
}

// ConfirmBoost activates the selected boost for BoostWindow minutes of its match clock.
func (g *Game) ConfirmBoost(amount decimal.Decimal) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	st, err := g.liveLocked()
	if err != nil {
		return err
	}
	minute := 0
	if st.Boost.State == BoostSelecting {
		minute = st.Clocks[st.Boost.MatchIndex]
	}
	if err := st.Boost.Confirm(amount, minute); err != nil {
		return err
	}
	g.version++
	g.log.Info("boost confirmed",
		zap.String("session", st.SessionID),
		zap.String("match", st.Boost.MatchID),
		zap.String("team", st.Boost.TeamID),
		zap.String("amount", Money(amount)),
		zap.Int("expiry", st.Boost.Expiry))
	return nil
}

func (g *Game) CancelBoost() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	st, err := g.liveLocked()
	if err != nil {
		return err
	}
	if err := st.Boost.Cancel(); err != nil {
		return err
	}
	g.version++
	return nil
}

func (g *Game) liveLocked() (*State, error) {
	if g.st == nil {
		return nil, ErrNoSession
	}
	if g.st.Halted {
		return nil, ErrHalted
	}
	return g.st, nil
}

// StepResult is what one simulation step did.
type StepResult struct {
	Tick    TickResult
	Wins    []Win
	Jackpot bool
	Halted  bool
	// Finished is set once every clock is at full time, the slot is idle and no filled
	// line is left unpaid: further steps cannot change anything.
	Finished bool
}

// Step runs one tick handler: expire the celebration, pay completions that were waiting
// for the slot, tick the clock, pay new completions, grow the jackpot pool. Win detection
// only runs while no celebration is showing. Effects and recording happen after the lock
// is released.
func (g *Game) Step() StepResult {
	g.mu.Lock()
	st := g.st
	if st == nil || st.Halted {
		g.mu.Unlock()
		return StepResult{Tick: TickResult{Skipped: true}, Halted: st != nil}
	}
	now := g.now()
	var res StepResult
	detect := func() {
		if st.Celebrations.Busy(now) {
			return
		}
		d := Detect(st, now)
		res.Wins = append(res.Wins, d.Wins...)
		res.Jackpot = res.Jackpot || d.Jackpot
	}
	detect()
	if !st.Halted {
		res.Tick = Tick(st, g.src, now)
		detect()
	} else {
		res.Tick.Skipped = true
	}
	if !st.Halted {
		st.Jackpot += int64(g.src.Intn(5) + 1)
	}
	res.Halted = st.Halted
	res.Finished = !st.Halted && st.FullTime() && !st.Celebrations.Busy(now) && len(st.pendingLines()) == 0
	if res.Halted || res.Finished {
		g.simulating = false
	}
	g.version++
	session := st.SessionID
	if res.Finished {
		g.log.Info("session at full time", zap.String("session", session), zap.String("winnings", st.Totals().Winnings))
	}
	if res.Tick.BoostExpired {
		g.log.Info("boost expired", zap.String("session", session), zap.String("match", st.Boost.MatchID))
	}
	for _, w := range res.Wins {
		g.log.Info("line won", zap.String("session", session), zap.String("line", w.ID), zap.String("amount", w.Display))
	}
	g.mu.Unlock()

	if res.Tick.Goal {
		g.fire("goal", g.effects.Goal)
	}
	if res.Jackpot {
		g.fire("jackpot", g.effects.Jackpot)
	} else if len(res.Wins) > 0 {
		g.fire("win", g.effects.Win)
	}
	if g.recorder != nil {
		for _, w := range res.Wins {
			g.recorder.RecordWin(session, w)
		}
	}
	return res
}

// Active reports whether a session exists and can still tick.
func (g *Game) Active() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.st != nil && !g.st.Halted
}

func (g *Game) Version() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.version
}

func (g *Game) setControl(simulating bool, speed int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.simulating = simulating
	g.speed = speed
	g.version++
}
