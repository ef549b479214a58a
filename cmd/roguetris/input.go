package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/roguetris/session"
)

// Key repeat timing, in ticks.
const (
	repeatDelay    = 10
	repeatInterval = 3
)

var buyKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

// input maps keyboard state onto session commands.
type input struct {
	repeatDelay    int
	repeatInterval int
}

func newInput() *input {
	return &input{repeatDelay: repeatDelay, repeatInterval: repeatInterval}
}

// repeating reports whether a key held for the given number of ticks should
// fire this tick.
func (in *input) repeating(duration int) bool {
	if duration == 1 {
		return true
	}
	if duration < in.repeatDelay {
		return false
	}
	return (duration-in.repeatDelay)%in.repeatInterval == 0
}

func (in *input) pressed(key ebiten.Key) bool {
	return in.repeating(inpututil.KeyPressDuration(key))
}

func (in *input) queue(snap *session.Snapshot, cmds *session.Commands) {
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		cmds.Restart()
		return
	}

	switch snap.Phase {
	case session.PhasePlaying:
		if in.pressed(ebiten.KeyLeft) {
			cmds.Move(session.Left)
		}
		if in.pressed(ebiten.KeyRight) {
			cmds.Move(session.Right)
		}
		if in.pressed(ebiten.KeyDown) {
			cmds.SoftDrop()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyUp) || inpututil.IsKeyJustPressed(ebiten.KeyX) {
			cmds.Rotate()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			cmds.HardDrop()
		}

	case session.PhaseVictory:
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			cmds.OpenShop()
		}

	case session.PhaseShop:
		for i, key := range buyKeys {
			if i < len(snap.Shop) && inpututil.IsKeyJustPressed(key) {
				cmds.Purchase(snap.Shop[i].ID)
			}
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			cmds.CloseShop()
		}
	}
}
