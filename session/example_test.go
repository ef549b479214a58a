package session_test

import (
	"fmt"

	"github.com/plus3/roguetris/config"
	"github.com/plus3/roguetris/piece"
	"github.com/plus3/roguetris/session"
)

// ExampleSession drives a small board through a hard drop and prints the
// debug dump. The session only ever sees explicit commands and time deltas,
// so a fixed source gives a fixed game.
func ExampleSession() {
	balance := config.Default()
	balance.BoardWidth = 6
	balance.BoardHeight = 6

	s, err := session.New(balance, piece.NewSource(1))
	if err != nil {
		panic(err)
	}

	s.SetNext(piece.T)
	res := s.HardDrop()
	fmt.Println(res.Outcome)

	current, _ := s.Current()
	fmt.Println(current.Shape, current.Anchor)

	s.Advance(0.5)
	s.Advance(0.5)
	current, _ = s.Current()
	fmt.Println(current.Anchor, s.Elapsed())

	// Output:
	// locked
	// T {2 4}
	// {2 3} 1
}

// ExampleCommands shows a host collecting a frame of input and applying it in
// one place.
func ExampleCommands() {
	s, err := session.New(config.Default(), nil)
	if err != nil {
		panic(err)
	}

	cmds := session.NewCommands()
	cmds.Move(session.Left)
	cmds.Rotate()
	cmds.Advance(1.0 / 60)
	cmds.Defer(func() { fmt.Println("frame done") })

	for _, res := range cmds.Flush(s) {
		fmt.Println(res.Outcome)
	}
	fmt.Println(s.Phase())

	// Output:
	// frame done
	// moved
	// moved
	// idle
	// idle
	// Playing
}
