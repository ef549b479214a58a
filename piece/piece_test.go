package piece_test

import (
	"testing"

	"github.com/plus3/roguetris/board"
	"github.com/plus3/roguetris/piece"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequence replays a fixed list of values, wrapping around.
type sequence struct {
	values []int
	pos    int
}

func (s *sequence) IntN(n int) int {
	v := s.values[s.pos%len(s.values)]
	s.pos++
	return v % n
}

func TestWorldPositionsRotationZero(t *testing.T) {
	anchor := board.Point{X: 5, Y: 10}

	tests := []struct {
		shape piece.Shape
		want  []board.Point
	}{
		{piece.I, []board.Point{{X: 4, Y: 10}, {X: 5, Y: 10}, {X: 6, Y: 10}, {X: 7, Y: 10}}},
		{piece.O, []board.Point{{X: 5, Y: 10}, {X: 6, Y: 10}, {X: 5, Y: 11}, {X: 6, Y: 11}}},
		{piece.T, []board.Point{{X: 4, Y: 10}, {X: 5, Y: 10}, {X: 6, Y: 10}, {X: 5, Y: 11}}},
		{piece.S, []board.Point{{X: 4, Y: 10}, {X: 5, Y: 10}, {X: 5, Y: 11}, {X: 6, Y: 11}}},
		{piece.J, []board.Point{{X: 4, Y: 11}, {X: 4, Y: 10}, {X: 5, Y: 10}, {X: 6, Y: 10}}},
	}

	for _, tt := range tests {
		t.Run(tt.shape.String(), func(t *testing.T) {
			p := piece.Piece{Shape: tt.shape, Anchor: anchor}
			assert.ElementsMatch(t, tt.want, p.WorldPositions())
		})
	}
}

func TestHorizontalReach(t *testing.T) {
	tests := []struct {
		shape      piece.Shape
		anchorX    int
		minX, maxX int
	}{
		{piece.I, 1, 0, 3},
		{piece.O, 0, 0, 1},
		{piece.J, 1, 0, 2},
		{piece.T, 1, 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.shape.String(), func(t *testing.T) {
			p := piece.Piece{Shape: tt.shape, Anchor: board.Point{X: tt.anchorX, Y: 10}}
			minX, maxX := 100, -100
			for _, c := range p.WorldPositions() {
				minX = min(minX, c.X)
				maxX = max(maxX, c.X)
			}
			assert.Equal(t, tt.minX, minX)
			assert.Equal(t, tt.maxX, maxX)
		})
	}
}

func TestRotationTableIsClockwise(t *testing.T) {
	for _, shape := range piece.Shapes {
		if shape == piece.O {
			continue
		}
		t.Run(shape.String(), func(t *testing.T) {
			for r := 0; r < 4; r++ {
				prev := piece.Offsets(shape, r)
				next := piece.Offsets(shape, r+1)

				turned := make([]board.Point, 0, 4)
				for _, o := range prev {
					turned = append(turned, board.Point{X: o.Y, Y: -o.X})
				}
				assert.ElementsMatch(t, turned, next[:], "state %d -> %d", r, (r+1)%4)
			}
		})
	}
}

func TestEveryStateHasFourDistinctCells(t *testing.T) {
	for _, shape := range piece.Shapes {
		for r := 0; r < 4; r++ {
			offsets := piece.Offsets(shape, r)
			seen := map[board.Point]bool{}
			for _, o := range offsets {
				seen[o] = true
			}
			assert.Len(t, seen, 4, "%s rotation %d", shape, r)
			assert.True(t, seen[board.Point{}], "%s rotation %d must contain its anchor", shape, r)
		}
	}
}

func TestOPieceIgnoresRotation(t *testing.T) {
	p := piece.Piece{Shape: piece.O, Anchor: board.Point{X: 3, Y: 3}}
	before := p.WorldPositions()
	for range 4 {
		p = p.Rotated()
		assert.ElementsMatch(t, before, p.WorldPositions())
	}
}

func TestMovedAndRotatedReturnCopies(t *testing.T) {
	p := piece.Piece{ID: 7, Shape: piece.T, Anchor: board.Point{X: 4, Y: 4}, Color: 3}

	moved := p.Moved(board.Point{X: -1, Y: 0})
	assert.Equal(t, board.Point{X: 3, Y: 4}, moved.Anchor)
	assert.Equal(t, board.Point{X: 4, Y: 4}, p.Anchor)

	rotated := p.Rotated()
	assert.Equal(t, 1, rotated.Rotation)
	assert.Equal(t, 0, p.Rotation)
	assert.Equal(t, uint64(7), rotated.ID)

	wrapped := piece.Piece{Shape: piece.T, Rotation: 3}.Rotated()
	assert.Equal(t, 0, wrapped.Rotation)
}

func TestFits(t *testing.T) {
	b := board.New(10, 20)
	p := piece.Piece{Shape: piece.I, Anchor: board.Point{X: 1, Y: 0}}
	assert.True(t, p.Fits(b))

	assert.False(t, p.Moved(board.Point{X: -1}).Fits(b))
	assert.False(t, p.Moved(board.Point{Y: -1}).Fits(b))

	b.PlaceBlock(board.Point{X: 3, Y: 0}, 1)
	assert.False(t, p.Fits(b))
}

func TestParseShape(t *testing.T) {
	for _, shape := range piece.Shapes {
		parsed, ok := piece.ParseShape(shape.String())
		require.True(t, ok)
		assert.Equal(t, shape, parsed)
	}

	_, ok := piece.ParseShape("Q")
	assert.False(t, ok)
	assert.Equal(t, "?", piece.Shape(42).String())
}

func TestGenerator(t *testing.T) {
	t.Run("shape and colour are drawn independently", func(t *testing.T) {
		src := &sequence{values: []int{2, 0, 2, 6}}
		gen := piece.NewGenerator(src, 7)

		first := gen.Next()
		assert.Equal(t, piece.T, first.Shape)
		assert.Equal(t, 1, first.Color)

		second := gen.Next()
		assert.Equal(t, piece.T, second.Shape)
		assert.Equal(t, 7, second.Color)

		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("same seed gives the same sequence", func(t *testing.T) {
		a := piece.NewGenerator(piece.NewSource(42), 7)
		b := piece.NewGenerator(piece.NewSource(42), 7)
		for range 50 {
			assert.Equal(t, a.Next(), b.Next())
		}
	})

	t.Run("colour tags stay positive", func(t *testing.T) {
		gen := piece.NewGenerator(piece.NewSource(9), 3)
		for range 200 {
			p := gen.Next()
			assert.GreaterOrEqual(t, p.Color, 1)
			assert.LessOrEqual(t, p.Color, 3)
			assert.True(t, p.Shape.Valid())
		}
	})

	t.Run("nil source is still deterministic", func(t *testing.T) {
		a := piece.NewGenerator(nil, 0)
		b := piece.NewGenerator(nil, 0)
		assert.Equal(t, a.Next(), b.Next())
	})
}
