package session

import (
	"fmt"
	"strings"

	"github.com/plus3/roguetris/board"
	"github.com/plus3/roguetris/effect"
	"github.com/plus3/roguetris/piece"
	"github.com/plus3/roguetris/shop"
)

// PieceState is the read-only view of a piece.
type PieceState struct {
	ID       uint64
	Shape    piece.Shape
	Anchor   board.Point
	Rotation int
	Color    int
	Cells    []board.Point
}

func pieceState(p *piece.Piece) *PieceState {
	if p == nil {
		return nil
	}
	return &PieceState{
		ID:       p.ID,
		Shape:    p.Shape,
		Anchor:   p.Anchor,
		Rotation: p.Rotation,
		Color:    p.Color,
		Cells:    p.WorldPositions(),
	}
}

// Snapshot is a copy of the session state. Nothing in it aliases the session.
type Snapshot struct {
	Phase        Phase
	Score        int
	Target       int
	Currency     int
	Elapsed      float64
	Round        int
	Lines        int
	FallInterval float64

	Width  int
	Height int
	// Cells is indexed [y][x] with row 0 at the bottom.
	Cells [][]int

	Current *PieceState
	Next    *PieceState

	Effects  []effect.Effect
	Shop     []shop.Item
	ShopOpen bool
}

// Snapshot copies out the current state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:        s.phase,
		Score:        s.score,
		Target:       s.target,
		Currency:     s.currency,
		Elapsed:      s.elapsed,
		Round:        s.round,
		Lines:        s.lines,
		FallInterval: s.FallInterval(),
		Width:        s.board.Width(),
		Height:       s.board.Height(),
		Cells:        s.board.Cells(),
		Current:      pieceState(s.current),
		Next:         pieceState(s.next),
		Effects:      s.effects.Active(),
		ShopOpen:     s.shopOpen,
	}
	if s.shopOpen {
		snap.Shop = s.shop.Items()
	}
	return snap
}

// String renders a plain-text dump of the state and the board, with the
// falling piece drawn as '@'.
func (snap Snapshot) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "phase=%s round=%d score=%d/%d currency=%d lines=%d time=%.1fs\n",
		snap.Phase, snap.Round, snap.Score, snap.Target, snap.Currency, snap.Lines, snap.Elapsed)

	if snap.Current != nil {
		fmt.Fprintf(&sb, "current=%s#%d at (%d,%d) rot=%d\n",
			snap.Current.Shape, snap.Current.ID, snap.Current.Anchor.X, snap.Current.Anchor.Y, snap.Current.Rotation)
	} else {
		sb.WriteString("current=none\n")
	}
	if snap.Next != nil {
		fmt.Fprintf(&sb, "next=%s\n", snap.Next.Shape)
	}
	for _, e := range snap.Effects {
		fmt.Fprintf(&sb, "effect %s %.1f/%.1fs\n", e.Describe(), e.Remaining, e.Duration)
	}
	for _, item := range snap.Shop {
		fmt.Fprintf(&sb, "offer #%d %s cost=%d\n", item.ID, item.Name, item.Cost)
	}

	b := board.New(snap.Width, snap.Height)
	for y, row := range snap.Cells {
		for x, tag := range row {
			b.PlaceBlock(board.Point{X: x, Y: y}, tag)
		}
	}
	var active []board.Point
	if snap.Current != nil && snap.Phase == PhasePlaying {
		active = snap.Current.Cells
	}
	sb.WriteString(b.Render(active))
	return sb.String()
}
