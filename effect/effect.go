// Package effect tracks time-limited scoring modifiers.
package effect

import (
	"fmt"
	"math"
	"slices"
)

// Type enumerates the kinds of active effect.
type Type int

const (
	// ScoreMultiplier scales every line-clear reward by Value.
	ScoreMultiplier Type = iota
	// BonusPoints adds Value points to every line-clear event.
	BonusPoints
	// LineClearBonus adds Value points per cleared line.
	LineClearBonus
	// ComboBonus scales multi-line clears by Value.
	ComboBonus
)

var typeNames = map[Type]string{
	ScoreMultiplier: "score_multiplier",
	BonusPoints:     "bonus_points",
	LineClearBonus:  "line_clear_bonus",
	ComboBonus:      "combo_bonus",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("effect(%d)", int(t))
}

// ParseType maps the names used in configuration files back to a Type.
func ParseType(name string) (Type, bool) {
	for t, n := range typeNames {
		if n == name {
			return t, true
		}
	}
	return 0, false
}

// Effect is one active modifier instance.
type Effect struct {
	Type      Type
	Value     float64
	Duration  float64
	Remaining float64
}

// New creates an effect with its full duration remaining.
func New(t Type, duration, value float64) Effect {
	duration = max(duration, 0)
	return Effect{
		Type:      t,
		Value:     value,
		Duration:  duration,
		Remaining: duration,
	}
}

// Expired reports whether the effect has run out.
func (e Effect) Expired() bool {
	return !(e.Remaining > 0)
}

// Describe renders a short label for HUDs.
func (e Effect) Describe() string {
	switch e.Type {
	case ScoreMultiplier:
		return fmt.Sprintf("Score x%.1f", e.Value)
	case BonusPoints:
		return fmt.Sprintf("Bonus +%.0f", e.Value)
	case LineClearBonus:
		return fmt.Sprintf("Line bonus +%.0f", e.Value)
	case ComboBonus:
		return fmt.Sprintf("Combo x%.1f", e.Value)
	default:
		return "Special effect"
	}
}

// Set holds the active effects. Adding an effect of a type that is already
// present creates a parallel instance; each instance expires on its own.
type Set struct {
	effects []Effect
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{}
}

// Add appends e to the set.
func (s *Set) Add(e Effect) {
	e.Remaining = clamp(e.Remaining, e.Duration)
	s.effects = append(s.effects, e)
}

// Update decrements every effect by delta and drops the ones that have run
// out. Negative or NaN deltas are treated as zero, so effects that are already
// at zero are removed regardless of the delta passed in.
func (s *Set) Update(delta float64) {
	if !(delta > 0) {
		delta = 0
	}

	s.effects = slices.DeleteFunc(s.effects, func(e Effect) bool {
		return e.Expired()
	})
	for i := range s.effects {
		e := &s.effects[i]
		e.Remaining = clamp(e.Remaining-delta, e.Duration)
	}
	s.effects = slices.DeleteFunc(s.effects, func(e Effect) bool {
		return e.Expired()
	})
}

// Active returns a copy of the current effects in insertion order.
func (s *Set) Active() []Effect {
	return slices.Clone(s.effects)
}

// Len returns the number of active effects.
func (s *Set) Len() int {
	return len(s.effects)
}

// Clear removes every effect.
func (s *Set) Clear() {
	s.effects = s.effects[:0]
}

func clamp(remaining, duration float64) float64 {
	if math.IsNaN(remaining) || remaining < 0 {
		return 0
	}
	return min(remaining, duration)
}
