// Package piece describes falling tetrominoes: their shapes, the static
// rotation table, and a seedable generator for the spawn queue.
package piece

import (
	"math/rand/v2"

	"github.com/plus3/roguetris/board"
)

// DefaultColorCount is the number of cosmetic colour tags handed out at spawn.
const DefaultColorCount = 7

// Piece is a tetromino instance. Color is a cosmetic tag in [1, colours] and
// is independent of Shape. ID is unique per generator and identifies the
// instance across moves.
type Piece struct {
	ID       uint64
	Shape    Shape
	Rotation int
	Anchor   board.Point
	Color    int
}

// WorldPositions returns the board cells occupied by the piece.
func (p Piece) WorldPositions() []board.Point {
	offsets := Offsets(p.Shape, p.Rotation)
	cells := make([]board.Point, len(offsets))
	for i, o := range offsets {
		cells[i] = p.Anchor.Add(o)
	}
	return cells
}

// Moved returns a copy of p translated by d.
func (p Piece) Moved(d board.Point) Piece {
	p.Anchor = p.Anchor.Add(d)
	return p
}

// Rotated returns a copy of p advanced one clockwise rotation state.
func (p Piece) Rotated() Piece {
	p.Rotation = (normalize(p.Rotation) + 1) % 4
	return p
}

// Fits reports whether every cell of p is a valid position on b.
func (p Piece) Fits(b *board.Board) bool {
	for _, c := range p.WorldPositions() {
		if !b.IsValidPosition(c) {
			return false
		}
	}
	return true
}

// Source is the randomness the generator draws from. *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// NewSource returns a deterministic PCG-backed source for the given seed.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generator produces pieces with a uniformly random shape and a uniformly
// random colour tag.
type Generator struct {
	src    Source
	colors int
	nextID uint64
}

// NewGenerator creates a generator. A nil source falls back to a fixed seed so
// that the output is always reproducible.
func NewGenerator(src Source, colors int) *Generator {
	if src == nil {
		src = NewSource(0)
	}
	if colors <= 0 {
		colors = DefaultColorCount
	}
	return &Generator{src: src, colors: colors}
}

// Next returns a fresh piece at rotation 0 with a zero anchor.
func (g *Generator) Next() Piece {
	shape := Shapes[g.src.IntN(ShapeCount)]
	color := g.src.IntN(g.colors) + 1
	return g.New(shape, color)
}

// New builds a piece of the given shape and colour with a fresh instance id.
func (g *Generator) New(shape Shape, color int) Piece {
	g.nextID++
	return Piece{
		ID:    g.nextID,
		Shape: shape,
		Color: color,
	}
}
