package main

import (
	"fmt"
	"image/color"
	"log"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/roguetris/board"
	"github.com/plus3/roguetris/debugui"
	"github.com/plus3/roguetris/session"
)

var palette = []color.RGBA{
	{255, 179, 186, 255},
	{179, 229, 252, 255},
	{255, 223, 186, 255},
	{186, 255, 201, 255},
	{255, 200, 221, 255},
	{186, 225, 255, 255},
	{255, 255, 186, 255},
	{217, 186, 255, 255},
}

var (
	backgroundColor = color.RGBA{24, 24, 32, 255}
	wellColor       = color.RGBA{40, 40, 52, 255}
	gridColor       = color.RGBA{56, 56, 70, 255}
	ghostColor      = color.RGBA{90, 90, 110, 255}
)

// Game implements ebiten.Game on top of a session and the ImGui overlay.
type Game struct {
	session   *session.Session
	commands  *session.Commands
	ui        *debugui.UI
	backend   *ebitenbackend.EbitenBackend
	timer     *debugui.FrameTimer
	input     *input
	showDebug bool

	snapshot session.Snapshot
	message  string
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.showDebug = !g.showDebug
	}

	g.snapshot = g.session.Snapshot()
	dt := g.timer.DeltaTime()

	g.backend.BeginFrame()
	if g.showDebug {
		g.ui.Render(&debugui.Frame{
			Snapshot:  &g.snapshot,
			Stats:     g.session.SchedulerStats(),
			Commands:  g.commands,
			DeltaTime: dt,
		})
	}
	g.backend.EndFrame()

	if !g.showDebug || !g.ui.Input.WantCaptureKeyboard {
		g.input.queue(&g.snapshot, g.commands)
	}
	g.commands.Advance(1 / float64(ebiten.TPS()))

	for _, res := range g.commands.Flush(g.session) {
		g.report(res)
	}
	g.snapshot = g.session.Snapshot()
	return nil
}

func (g *Game) report(res session.Result) {
	switch res.Outcome {
	case session.Cleared, session.Victory:
		if res.Lines > 0 {
			g.message = fmt.Sprintf("%d lines: +%d score, +%d currency", res.Lines, res.ScoreDelta, res.CurrencyDelta)
			log.Printf("Cleared %d lines for %d points", res.Lines, res.ScoreDelta)
		}
	case session.GameOver:
		g.message = "Game over. Press R to restart."
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	snap := &g.snapshot
	originX := float32(screen.Bounds().Dx()/2 - snap.Width*CellSize/2)
	originY := float32(40)

	vector.DrawFilledRect(screen, originX, originY, float32(snap.Width*CellSize), float32(snap.Height*CellSize), wellColor, false)

	cellRect := func(p board.Point) (float32, float32) {
		return originX + float32(p.X*CellSize), originY + float32((snap.Height-1-p.Y)*CellSize)
	}

	for y, row := range snap.Cells {
		for x, tag := range row {
			sx, sy := cellRect(board.Point{X: x, Y: y})
			vector.StrokeRect(screen, sx, sy, CellSize, CellSize, 1, gridColor, false)
			if tag != 0 {
				vector.DrawFilledRect(screen, sx+1, sy+1, CellSize-2, CellSize-2, tagColor(tag), false)
			}
		}
	}

	if p := snap.Current; p != nil && snap.Phase == session.PhasePlaying {
		for _, c := range ghostCells(snap) {
			sx, sy := cellRect(c)
			vector.StrokeRect(screen, sx+2, sy+2, CellSize-4, CellSize-4, 2, ghostColor, false)
		}
		for _, c := range p.Cells {
			sx, sy := cellRect(c)
			vector.DrawFilledRect(screen, sx+1, sy+1, CellSize-2, CellSize-2, tagColor(p.Color), false)
		}
	}

	hudX := int(originX) + snap.Width*CellSize + 24
	ebitenutil.DebugPrintAt(screen, hudText(snap), hudX, int(originY))
	if g.message != "" {
		ebitenutil.DebugPrintAt(screen, g.message, int(originX), int(originY)+snap.Height*CellSize+8)
	}

	if g.showDebug {
		g.backend.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.backend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func tagColor(tag int) color.RGBA {
	if tag <= 0 {
		return gridColor
	}
	return palette[(tag-1)%len(palette)]
}

// ghostCells returns where the current piece would land on a hard drop.
func ghostCells(snap *session.Snapshot) []board.Point {
	cells := snap.Current.Cells
	free := func(drop int) bool {
		for _, c := range cells {
			y := c.Y - drop
			if y < 0 || (y < snap.Height && snap.Cells[y][c.X] != 0) {
				return false
			}
		}
		return true
	}

	drop := 0
	for free(drop + 1) {
		drop++
	}

	ghost := make([]board.Point, len(cells))
	for i, c := range cells {
		ghost[i] = board.Point{X: c.X, Y: c.Y - drop}
	}
	return ghost
}

func hudText(snap *session.Snapshot) string {
	text := fmt.Sprintf("%s\n\nScore   %d / %d\nCurrency %d\nRound   %d\nLines   %d\nTime    %.0fs\n",
		snap.Phase, snap.Score, snap.Target, snap.Currency, snap.Round+1, snap.Lines, snap.Elapsed)
	if snap.Next != nil {
		text += fmt.Sprintf("Next    %s\n", snap.Next.Shape)
	}
	for _, e := range snap.Effects {
		text += fmt.Sprintf("\n%s %.0fs", e.Describe(), e.Remaining)
	}

	switch snap.Phase {
	case session.PhaseVictory:
		text += "\n\nTarget reached! Enter opens the shop."
	case session.PhaseShop:
		text += "\n\nShop:"
		for i, item := range snap.Shop {
			text += fmt.Sprintf("\n %d) %s  %d", i+1, item.Name, item.Cost)
		}
		text += "\nNumber keys buy, Enter continues."
	case session.PhaseGameOver:
		text += "\n\nR restarts."
	}
	return text
}
