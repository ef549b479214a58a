package score_test

import (
	"testing"

	"github.com/plus3/roguetris/effect"
	"github.com/plus3/roguetris/piece"
	"github.com/plus3/roguetris/score"
	"github.com/stretchr/testify/assert"
)

func TestBaseCurve(t *testing.T) {
	engine := score.NewEngine(nil, 1)

	assert.Equal(t, 0, engine.Base(0))
	assert.Equal(t, 100, engine.Base(1))
	assert.Equal(t, 300, engine.Base(2))
	assert.Equal(t, 500, engine.Base(3))
	assert.Equal(t, 800, engine.Base(4))
	assert.Equal(t, 800, engine.Base(6), "counts past the table use the last entry")

	for n := 1; n < 4; n++ {
		assert.Less(t, engine.Base(n), engine.Base(n+1))
	}
}

func TestProcessLineClears(t *testing.T) {
	engine := score.NewEngine(score.DefaultLineScores, 1)
	placed := piece.Piece{Shape: piece.O}

	tests := []struct {
		name         string
		lines        int
		effects      []effect.Effect
		wantScore    int
		wantCurrency int
	}{
		{
			name:         "single line without effects",
			lines:        1,
			wantScore:    100,
			wantCurrency: 100,
		},
		{
			name:         "tetris",
			lines:        4,
			wantScore:    800,
			wantCurrency: 800,
		},
		{
			name:         "no lines",
			lines:        0,
			effects:      []effect.Effect{effect.New(effect.BonusPoints, 5, 50)},
			wantScore:    0,
			wantCurrency: 0,
		},
		{
			name:         "multiplier scales score and currency",
			lines:        1,
			effects:      []effect.Effect{effect.New(effect.ScoreMultiplier, 5, 1.5)},
			wantScore:    150,
			wantCurrency: 150,
		},
		{
			name:  "parallel multipliers stack",
			lines: 2,
			effects: []effect.Effect{
				effect.New(effect.ScoreMultiplier, 5, 2),
				effect.New(effect.ScoreMultiplier, 5, 1.5),
			},
			wantScore:    900,
			wantCurrency: 900,
		},
		{
			name:         "combo ignored for single line",
			lines:        1,
			effects:      []effect.Effect{effect.New(effect.ComboBonus, 5, 3)},
			wantScore:    100,
			wantCurrency: 100,
		},
		{
			name:         "combo applies to multi-line clears",
			lines:        3,
			effects:      []effect.Effect{effect.New(effect.ComboBonus, 5, 2)},
			wantScore:    1000,
			wantCurrency: 1000,
		},
		{
			name:  "flat bonuses add to score only",
			lines: 2,
			effects: []effect.Effect{
				effect.New(effect.BonusPoints, 5, 50),
				effect.New(effect.LineClearBonus, 5, 25),
			},
			wantScore:    400,
			wantCurrency: 300,
		},
		{
			name:  "negative and expired effects are ignored",
			lines: 1,
			effects: []effect.Effect{
				effect.New(effect.ScoreMultiplier, 5, -2),
				effect.New(effect.BonusPoints, 5, -500),
				{Type: effect.ScoreMultiplier, Value: 10, Duration: 5, Remaining: 0},
			},
			wantScore:    100,
			wantCurrency: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := engine.ProcessLineClears(tt.lines, placed, tt.effects)
			assert.Equal(t, tt.wantScore, res.Score)
			assert.Equal(t, tt.wantCurrency, res.Currency)
			assert.Equal(t, piece.O, res.Shape)
			assert.GreaterOrEqual(t, res.Score, 0)
		})
	}
}

func TestCurrencyRate(t *testing.T) {
	engine := score.NewEngine([]int{40, 100}, 0.25)
	res := engine.ProcessLineClears(2, piece.Piece{Shape: piece.I}, nil)
	assert.Equal(t, 100, res.Score)
	assert.Equal(t, 25, res.Currency)

	free := score.NewEngine(nil, -1)
	assert.Equal(t, 0, free.ProcessLineClears(1, piece.Piece{}, nil).Currency)
}

func TestDeterministic(t *testing.T) {
	engine := score.NewEngine(nil, 1)
	effects := []effect.Effect{
		effect.New(effect.ScoreMultiplier, 5, 1.25),
		effect.New(effect.LineClearBonus, 5, 10),
	}

	first := engine.ProcessLineClears(3, piece.Piece{Shape: piece.L}, effects)
	for range 10 {
		assert.Equal(t, first, engine.ProcessLineClears(3, piece.Piece{Shape: piece.L}, effects))
	}
}

func TestEngineCopiesTable(t *testing.T) {
	table := []int{1, 2, 3, 4}
	engine := score.NewEngine(table, 1)
	table[0] = 1000
	assert.Equal(t, 1, engine.Base(1))
}
