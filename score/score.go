// Package score turns line-clear events into score and currency rewards.
package score

import (
	"math"
	"slices"

	"github.com/plus3/roguetris/effect"
	"github.com/plus3/roguetris/piece"
)

// DefaultLineScores is the reward curve for clearing 1, 2, 3 and 4 lines.
var DefaultLineScores = []int{100, 300, 500, 800}

// Result is the outcome of scoring a single lock.
type Result struct {
	Lines      int
	Shape      piece.Shape
	Base       int
	Multiplier float64
	Bonus      float64
	Score      int
	Currency   int
}

// Engine converts line clears into rewards. It holds only tunables, so the
// same engine is reused for the whole session.
type Engine struct {
	lineScores   []int
	currencyRate float64
}

// NewEngine creates an engine. An empty table falls back to the defaults and a
// negative currency rate is treated as zero.
func NewEngine(lineScores []int, currencyRate float64) *Engine {
	if len(lineScores) == 0 {
		lineScores = DefaultLineScores
	}
	if !(currencyRate > 0) {
		currencyRate = 0
	}
	return &Engine{
		lineScores:   slices.Clone(lineScores),
		currencyRate: currencyRate,
	}
}

// Base returns the unscaled reward for clearing the given number of lines.
// Counts past the end of the table use its last entry.
func (e *Engine) Base(cleared int) int {
	if cleared <= 0 {
		return 0
	}
	idx := min(cleared, len(e.lineScores)) - 1
	return max(e.lineScores[idx], 0)
}

// ProcessLineClears scores a lock that cleared the given number of lines.
// Multiplier effects scale the base reward, bonus effects add flat points on
// top. Currency follows the scaled base only. Effects with a negative
// magnitude contribute nothing, so a result is never negative.
func (e *Engine) ProcessLineClears(cleared int, placed piece.Piece, active []effect.Effect) Result {
	res := Result{
		Lines:      max(cleared, 0),
		Shape:      placed.Shape,
		Multiplier: 1,
	}
	if res.Lines == 0 {
		return res
	}

	res.Base = e.Base(res.Lines)

	for _, eff := range active {
		if eff.Expired() || !(eff.Value >= 0) {
			continue
		}
		switch eff.Type {
		case effect.ScoreMultiplier:
			res.Multiplier *= eff.Value
		case effect.ComboBonus:
			if res.Lines >= 2 {
				res.Multiplier *= eff.Value
			}
		case effect.BonusPoints:
			res.Bonus += eff.Value
		case effect.LineClearBonus:
			res.Bonus += eff.Value * float64(res.Lines)
		}
	}

	scaled := float64(res.Base) * res.Multiplier
	res.Score = int(math.Round(scaled + res.Bonus))
	res.Currency = int(math.Round(scaled * e.currencyRate))
	return res
}
