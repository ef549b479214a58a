package main

import (
	"flag"
	"log"
	"math/rand/v2"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/roguetris/config"
	"github.com/plus3/roguetris/debugui"
	"github.com/plus3/roguetris/piece"
	"github.com/plus3/roguetris/session"
)

const (
	ScreenWidth  = 1280
	ScreenHeight = 720
	CellSize     = 28
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML balance file. Defaults are used when empty.")
	seed := flag.Uint64("seed", 0, "Seed for piece and shop randomness. 0 picks a random seed.")
	debug := flag.Bool("debug", true, "Show the ImGui inspector panels.")
	flag.Parse()

	balance := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config %s: %v", *configPath, err)
		}
		balance = *loaded
	}

	if *seed == 0 {
		*seed = rand.Uint64()
	}
	log.Printf("Starting roguetris with seed %d", *seed)

	s, err := session.New(balance, piece.NewSource(*seed), session.WithLogger(log.Default()))
	if err != nil {
		log.Fatalf("Invalid balance: %v", err)
	}

	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow("roguetris", ScreenWidth, ScreenHeight)
	imgui.CurrentIO().SetIniFilename("")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	game := &Game{
		session:   s,
		commands:  session.NewCommands(),
		ui:        debugui.New(),
		backend:   backend,
		timer:     debugui.NewFrameTimer(),
		showDebug: *debug,
		input:     newInput(),
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Fatalf("Game exited: %v", err)
	}
}
