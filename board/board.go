// Package board implements the fixed-size playfield that pieces lock into.
//
// Row 0 is the bottom row and y grows upward, so a piece falling "down" moves
// toward smaller y values. A cell value of 0 means empty; any positive value is
// the colour tag of the block that was placed there.
package board

import (
	"slices"
	"strings"
)

const (
	DefaultWidth  = 10
	DefaultHeight = 20
)

// Point is an integer cell coordinate.
type Point struct {
	X, Y int
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Board is a W×H grid of placed cells.
type Board struct {
	width  int
	height int
	cells  [][]int
}

// New creates an empty board. Non-positive dimensions fall back to the defaults.
func New(width, height int) *Board {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	b := &Board{
		width:  width,
		height: height,
		cells:  make([][]int, height),
	}
	for y := range b.cells {
		b.cells[y] = make([]int, width)
	}
	return b
}

func (b *Board) Width() int  { return b.width }
func (b *Board) Height() int { return b.height }

// InBounds reports whether p lies inside the grid.
func (b *Board) InBounds(p Point) bool {
	return p.X >= 0 && p.X < b.width && p.Y >= 0 && p.Y < b.height
}

// At returns the tag stored at p, or 0 when p is out of bounds.
func (b *Board) At(p Point) int {
	if !b.InBounds(p) {
		return 0
	}
	return b.cells[p.Y][p.X]
}

// IsValidPosition reports whether p is inside the grid and empty.
func (b *Board) IsValidPosition(p Point) bool {
	return b.InBounds(p) && b.cells[p.Y][p.X] == 0
}

// PlaceBlock writes tag into p. Out-of-bounds writes are ignored; callers are
// expected to have validated the position first.
func (b *Board) PlaceBlock(p Point, tag int) {
	if !b.InBounds(p) {
		return
	}
	b.cells[p.Y][p.X] = tag
}

// IsLineFull reports whether every cell in row is non-zero.
func (b *Board) IsLineFull(row int) bool {
	if row < 0 || row >= b.height {
		return false
	}
	for _, v := range b.cells[row] {
		if v == 0 {
			return false
		}
	}
	return true
}

// FullLines returns the indices of all full rows in ascending order.
func (b *Board) FullLines() []int {
	var rows []int
	for y := 0; y < b.height; y++ {
		if b.IsLineFull(y) {
			rows = append(rows, y)
		}
	}
	return rows
}

// ClearLine removes row and shifts every row above it down by one. The top
// row becomes empty.
func (b *Board) ClearLine(row int) {
	if row < 0 || row >= b.height {
		return
	}

	removed := b.cells[row]
	copy(b.cells[row:], b.cells[row+1:])
	clear(removed)
	b.cells[b.height-1] = removed
}

// ClearLines clears every row in rows. Rows are processed from the highest
// index down so earlier removals never shift a row that is still pending.
func (b *Board) ClearLines(rows []int) int {
	ordered := slices.Clone(rows)
	slices.Sort(ordered)
	ordered = slices.Compact(ordered)

	cleared := 0
	for i := len(ordered) - 1; i >= 0; i-- {
		if ordered[i] < 0 || ordered[i] >= b.height {
			continue
		}
		b.ClearLine(ordered[i])
		cleared++
	}
	return cleared
}

// Clear empties every cell.
func (b *Board) Clear() {
	for _, row := range b.cells {
		clear(row)
	}
}

// Filled returns the number of non-empty cells.
func (b *Board) Filled() int {
	n := 0
	for _, row := range b.cells {
		for _, v := range row {
			if v != 0 {
				n++
			}
		}
	}
	return n
}

// Cells returns a copy of the grid indexed [y][x], row 0 first.
func (b *Board) Cells() [][]int {
	out := make([][]int, b.height)
	for y, row := range b.cells {
		out[y] = slices.Clone(row)
	}
	return out
}

// String renders the board top row first.
func (b *Board) String() string {
	return b.Render(nil)
}

// Render draws the board as text, marking active cells (typically the falling
// piece) on top of placed blocks. Overlaps are drawn as "X".
func (b *Board) Render(active []Point) string {
	overlay := make(map[Point]bool, len(active))
	for _, p := range active {
		overlay[p] = true
	}

	var sb strings.Builder
	border := "+" + strings.Repeat("-", b.width) + "+\n"
	sb.WriteString(border)
	for y := b.height - 1; y >= 0; y-- {
		sb.WriteByte('|')
		for x := 0; x < b.width; x++ {
			p := Point{X: x, Y: y}
			placed := b.cells[y][x] != 0
			switch {
			case overlay[p] && placed:
				sb.WriteByte('X')
			case overlay[p]:
				sb.WriteByte('@')
			case placed:
				sb.WriteByte('#')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteString("|\n")
	}
	sb.WriteString(border)
	return sb.String()
}
