package piece

import "github.com/plus3/roguetris/board"

// Shape identifies one of the seven canonical tetrominoes.
type Shape int

const (
	I Shape = iota
	O
	T
	S
	Z
	J
	L
)

// ShapeCount is the number of distinct shapes.
const ShapeCount = 7

// Shapes lists every shape in canonical order.
var Shapes = [ShapeCount]Shape{I, O, T, S, Z, J, L}

var shapeNames = [ShapeCount]string{"I", "O", "T", "S", "Z", "J", "L"}

func (s Shape) String() string {
	if !s.Valid() {
		return "?"
	}
	return shapeNames[s]
}

// Valid reports whether s is one of the canonical shapes.
func (s Shape) Valid() bool {
	return s >= 0 && s < ShapeCount
}

// ParseShape maps a single-letter name back to its Shape.
func ParseShape(name string) (Shape, bool) {
	for i, n := range shapeNames {
		if n == name {
			return Shape(i), true
		}
	}
	return 0, false
}

// rotations holds the cell offsets relative to the anchor for every
// (shape, rotation) pair. Offsets use the board's y-up convention and each
// state is the clockwise turn of the previous one. O never moves: its anchor is
// the lower-left cell of the square.
var rotations = [ShapeCount][4][4]board.Point{
	I: {
		{{X: -1, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}},
		{{X: 0, Y: 1}, {X: 0, Y: 0}, {X: 0, Y: -1}, {X: 0, Y: -2}},
		{{X: 1, Y: 0}, {X: 0, Y: 0}, {X: -1, Y: 0}, {X: -2, Y: 0}},
		{{X: 0, Y: -1}, {X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}},
	},
	O: {
		{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}},
		{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}},
		{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}},
		{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}},
	},
	T: {
		{{X: -1, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}},
		{{X: 0, Y: 1}, {X: 0, Y: 0}, {X: 0, Y: -1}, {X: 1, Y: 0}},
		{{X: 1, Y: 0}, {X: 0, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: -1}},
		{{X: 0, Y: -1}, {X: 0, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}},
	},
	S: {
		{{X: -1, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}},
		{{X: 0, Y: 1}, {X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: -1}},
		{{X: 1, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: -1}, {X: -1, Y: -1}},
		{{X: 0, Y: -1}, {X: 0, Y: 0}, {X: -1, Y: 0}, {X: -1, Y: 1}},
	},
	Z: {
		{{X: -1, Y: 1}, {X: 0, Y: 1}, {X: 0, Y: 0}, {X: 1, Y: 0}},
		{{X: 1, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: -1}},
		{{X: 1, Y: -1}, {X: 0, Y: -1}, {X: 0, Y: 0}, {X: -1, Y: 0}},
		{{X: -1, Y: -1}, {X: -1, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: 1}},
	},
	J: {
		{{X: -1, Y: 1}, {X: -1, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 0}},
		{{X: 1, Y: 1}, {X: 0, Y: 1}, {X: 0, Y: 0}, {X: 0, Y: -1}},
		{{X: 1, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 0}, {X: -1, Y: 0}},
		{{X: -1, Y: -1}, {X: 0, Y: -1}, {X: 0, Y: 0}, {X: 0, Y: 1}},
	},
	L: {
		{{X: 1, Y: 1}, {X: -1, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 0}},
		{{X: 1, Y: -1}, {X: 0, Y: 1}, {X: 0, Y: 0}, {X: 0, Y: -1}},
		{{X: -1, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 0}, {X: -1, Y: 0}},
		{{X: -1, Y: 1}, {X: 0, Y: -1}, {X: 0, Y: 0}, {X: 0, Y: 1}},
	},
}

// Offsets returns the anchor-relative cells of shape in the given rotation
// state. Rotation is normalised into [0,4).
func Offsets(shape Shape, rotation int) [4]board.Point {
	if !shape.Valid() {
		return [4]board.Point{}
	}
	return rotations[shape][normalize(rotation)]
}

func normalize(rotation int) int {
	r := rotation % 4
	if r < 0 {
		r += 4
	}
	return r
}
