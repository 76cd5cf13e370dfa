package ladder

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

const maxSpeed = 64

// Runner drives Game.Step from a ticker at base/speed. A tick that arrives while the
// previous step is still running is skipped, and paused time is never replayed. The
// runner stops itself on a jackpot and once the session is finished at full time.
type Runner struct {
	game *Game
	base time.Duration
	log  *zap.Logger

	mu         sync.Mutex
	speed      int
	simulating bool
	cancel     context.CancelFunc

	busy atomic.Bool
}

func NewRunner(game *Game, base time.Duration, logger *zap.Logger) *Runner {
	if base <= 0 {
		base = 2 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{game: game, base: base, log: logger, speed: 1}
}

// ValidSpeed reports whether speed is a power of two in [1, 64].
func ValidSpeed(speed int) bool {
	return speed >= 1 && speed <= maxSpeed && speed&(speed-1) == 0
}

// Interval is the current tick period.
func (r *Runner) Interval() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.base / time.Duration(r.speed)
}

func (r *Runner) Simulating() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.simulating
}

// SetSimulating starts or pauses tick delivery. Starting requires a live session.
func (r *Runner) SetSimulating(on bool) error {
	if on {
		if err := r.checkLive(); err != nil {
			return err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if on == r.simulating {
		return nil
	}
	if on {
		r.startLocked()
	} else {
		r.stopLocked()
	}
	r.game.setControl(r.simulating, r.speed)
	return nil
}

// SetSpeed changes the multiplier, re-arming the ticker if it is running.
func (r *Runner) SetSpeed(speed int) error {
	if !ValidSpeed(speed) {
		return ErrSpeed
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if speed == r.speed {
		return nil
	}
	r.speed = speed
	if r.simulating {
		r.stopLocked()
		r.startLocked()
	}
	r.game.setControl(r.simulating, r.speed)
	return nil
}

// Stop pauses delivery; used on reset and shutdown.
func (r *Runner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
	r.game.setControl(false, r.speed)
}

func (r *Runner) checkLive() error {
	snap := r.game.Snapshot()
	if !snap.Started {
		return ErrNoSession
	}
	if snap.Halted {
		return ErrHalted
	}
	return nil
}

func (r *Runner) startLocked() {
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.simulating = true
	interval := r.base / time.Duration(r.speed)
	r.log.Info("simulation started", zap.Duration("interval", interval), zap.Int("speed", r.speed))
	go r.loop(ctx, interval)
}

func (r *Runner) stopLocked() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	if r.simulating {
		r.log.Info("simulation stopped")
	}
	r.simulating = false
}

func (r *Runner) loop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if r.fire(ctx) {
				return
			}
		}
	}
}

// fire runs one step unless another is in flight. It reports whether the loop must end.
func (r *Runner) fire(ctx context.Context) bool {
	if !r.busy.CompareAndSwap(false, true) {
		return false
	}
	defer r.busy.Store(false)
	if ctx.Err() != nil {
		return true
	}
	res := r.game.Step()
	if !res.Halted && !res.Finished {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	// Only the current loop may stop the runner; a re-armed loop has a fresh context.
	if ctx.Err() == nil {
		r.log.Info("simulation halted", zap.Bool("jackpot", res.Halted), zap.Bool("full_time", res.Finished))
		r.stopLocked()
		r.game.setControl(false, r.speed)
	}
	return true
}
