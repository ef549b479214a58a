package main

import (
	"math"
	"slices"

	"github.com/plus3/roguetris/board"
	"github.com/plus3/roguetris/piece"
	"github.com/plus3/roguetris/session"
	"github.com/plus3/roguetris/shop"
)

// Heuristic weights for scoring a landing position.
const (
	heightWeight    = -0.51
	linesWeight     = 0.76
	holesWeight     = -0.36
	bumpinessWeight = -0.18
)

// Plan is a placement the bot wants: rotate, shift horizontally, hard drop.
type Plan struct {
	Rotations int
	Shift     int
	Score     float64
}

// Bot plays a session by evaluating every rotation and column for the
// current piece from the snapshot alone.
type Bot struct{}

// Choose returns the best placement for the current piece. ok is false when
// there is no piece to place.
func (Bot) Choose(snap *session.Snapshot) (Plan, bool) {
	cur := snap.Current
	if cur == nil {
		return Plan{}, false
	}

	best := Plan{Score: math.Inf(-1)}
	found := false
	for rot := 0; rot < 4; rot++ {
		offsets := piece.Offsets(cur.Shape, cur.Rotation+rot)
		for x := 0; x < snap.Width; x++ {
			cells, ok := landing(snap, offsets, board.Point{X: x, Y: cur.Anchor.Y})
			if !ok {
				continue
			}
			score := evaluate(snap, cells)
			if !found || score > best.Score {
				best = Plan{Rotations: rot, Shift: x - cur.Anchor.X, Score: score}
				found = true
			}
		}
	}
	return best, found
}

// Queue records the commands that carry out p.
func (Bot) Queue(p Plan, cmds *session.Commands) {
	for range p.Rotations {
		cmds.Rotate()
	}
	dir := session.Right
	if p.Shift < 0 {
		dir = session.Left
	}
	for range abs(p.Shift) {
		cmds.Move(dir)
	}
	cmds.HardDrop()
}

// Shop buys the cheapest affordable offers until nothing else fits the
// budget. It returns the ids it chose.
func (Bot) Shop(snap *session.Snapshot, cmds *session.Commands) []shop.ItemID {
	items := slices.Clone(snap.Shop)
	slices.SortFunc(items, func(a, b shop.Item) int { return a.Cost - b.Cost })

	budget := snap.Currency
	var bought []shop.ItemID
	for _, item := range items {
		if item.Cost > budget {
			break
		}
		budget -= item.Cost
		cmds.Purchase(item.ID)
		bought = append(bought, item.ID)
	}
	return bought
}

// landing drops the offsets from anchor until they rest on the stack.
func landing(snap *session.Snapshot, offsets [4]board.Point, anchor board.Point) ([]board.Point, bool) {
	free := func(a board.Point) bool {
		for _, o := range offsets {
			c := a.Add(o)
			if c.X < 0 || c.X >= snap.Width || c.Y < 0 || c.Y >= snap.Height || snap.Cells[c.Y][c.X] != 0 {
				return false
			}
		}
		return true
	}
	if !free(anchor) {
		return nil, false
	}
	for free(anchor.Add(board.Point{Y: -1})) {
		anchor.Y--
	}

	cells := make([]board.Point, len(offsets))
	for i, o := range offsets {
		cells[i] = anchor.Add(o)
	}
	return cells, true
}

// evaluate scores the board that results from placing cells.
func evaluate(snap *session.Snapshot, cells []board.Point) float64 {
	grid := make([][]bool, snap.Height)
	for y, row := range snap.Cells {
		grid[y] = make([]bool, snap.Width)
		for x, tag := range row {
			grid[y][x] = tag != 0
		}
	}
	for _, c := range cells {
		grid[c.Y][c.X] = true
	}

	lines := 0
	kept := grid[:0]
	for _, row := range grid {
		if !slices.Contains(row, false) {
			lines++
			continue
		}
		kept = append(kept, row)
	}

	heights := make([]int, snap.Width)
	holes := 0
	for x := 0; x < snap.Width; x++ {
		for y := len(kept) - 1; y >= 0; y-- {
			if kept[y][x] {
				heights[x] = y + 1
				break
			}
		}
		for y := 0; y < heights[x]; y++ {
			if !kept[y][x] {
				holes++
			}
		}
	}

	aggregate, bumpiness := 0, 0
	for x, h := range heights {
		aggregate += h
		if x > 0 {
			bumpiness += abs(h - heights[x-1])
		}
	}

	return heightWeight*float64(aggregate) +
		linesWeight*float64(lines) +
		holesWeight*float64(holes) +
		bumpinessWeight*float64(bumpiness)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
