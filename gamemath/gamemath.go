package gamemath

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultModelID is the ladder used when a session does not name one.
const DefaultModelID = "goal_ladder"

// Ladder is the stored threshold ladder payload: one grid column per threshold.
type Ladder struct {
	ModelID       string      `json:"model_id" yaml:"model_id"`
	ModelVersion  string      `json:"model_version,omitempty" yaml:"model_version"`
	RowMultiplier float64     `json:"row_multiplier" yaml:"row_multiplier"`
	Thresholds    []Threshold `json:"thresholds" yaml:"thresholds"`
}

// Threshold fills a cell once a match's combined goals reach Goals.
type Threshold struct {
	Goals      int     `json:"goals" yaml:"goals"`
	Multiplier float64 `json:"multiplier" yaml:"multiplier"`
}

var (
	ErrNoThresholds  = errors.New("ladder has no thresholds")
	ErrRowMultiplier = errors.New("row multiplier must be positive")
)

// Default returns the stock five-column ladder.
func Default() *Ladder {
	return &Ladder{
		ModelID:       DefaultModelID,
		ModelVersion:  "1.0",
		RowMultiplier: 5.0,
		Thresholds: []Threshold{
			{Goals: 1, Multiplier: 1.5},
			{Goals: 2, Multiplier: 2.5},
			{Goals: 3, Multiplier: 4.0},
			{Goals: 4, Multiplier: 8.0},
			{Goals: 5, Multiplier: 15.0},
		},
	}
}

// Validate checks goal counts are >= 1 and strictly increasing, and all multipliers are positive.
func (l *Ladder) Validate() error {
	if l == nil || len(l.Thresholds) == 0 {
		return ErrNoThresholds
	}
	if l.RowMultiplier <= 0 {
		return ErrRowMultiplier
	}
	prev := 0
	for i, t := range l.Thresholds {
		if t.Goals <= prev {
			return fmt.Errorf("threshold %d: goals %d must exceed %d", i, t.Goals, prev)
		}
		if t.Multiplier <= 0 {
			return fmt.Errorf("threshold %d: multiplier must be positive", i)
		}
		prev = t.Goals
	}
	return nil
}

// Clone returns a deep copy so a running session never sees later store overwrites.
func (l *Ladder) Clone() *Ladder {
	if l == nil {
		return nil
	}
	out := *l
	out.Thresholds = append([]Threshold(nil), l.Thresholds...)
	return &out
}

// LoadFile reads a YAML ladder definition and validates it.
func LoadFile(path string) (*Ladder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var l Ladder
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parse ladder %s: %w", path, err)
	}
	if l.ModelID == "" {
		l.ModelID = DefaultModelID
	}
	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("ladder %s: %w", path, err)
	}
	return &l, nil
}
