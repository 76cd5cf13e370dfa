package ladder

import (
	"fmt"

	"go.uber.org/zap"
)

// Effects plays the sounds and confetti tied to goals and wins. Calls are fire-and-forget:
// errors and panics are swallowed and never touch game state.
type Effects interface {
	Goal() error
	Win() error
	Jackpot() error
}

// Recorder receives each ledger entry after the step that produced it, for audit and wallet credit.
type Recorder interface {
	RecordWin(sessionID string, w Win)
}

// LogEffects logs each effect instead of playing it.
type LogEffects struct {
	Logger *zap.Logger
}

func (e LogEffects) Goal() error    { return e.log("goal") }
func (e LogEffects) Win() error     { return e.log("win") }
func (e LogEffects) Jackpot() error { return e.log("jackpot") }

func (e LogEffects) log(name string) error {
	if e.Logger != nil {
		e.Logger.Debug("effect", zap.String("effect", name))
	}
	return nil
}

func (g *Game) fire(name string, fn func() error) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				g.log.Debug("effect panicked", zap.String("effect", name), zap.Error(fmt.Errorf("%v", r)))
			}
		}()
		if err := fn(); err != nil {
			g.log.Debug("effect failed", zap.String("effect", name), zap.Error(err))
		}
	}()
}
