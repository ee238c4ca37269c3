package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"chosenoffset.com/scavenger/internal/app"
	"chosenoffset.com/scavenger/internal/game"
	"chosenoffset.com/scavenger/internal/logging"
	ebitenrender "chosenoffset.com/scavenger/internal/render/ebiten"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "scavenger: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags, err := app.ParseFlags("scavenger", args, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}
	cfg, err := app.LoadConfig(flags)
	if err != nil {
		return err
	}
	if flags.WriteConfig != "" {
		return cfg.WriteYAML(flags.WriteConfig)
	}

	a, err := app.New(cfg, app.Options{})
	if err != nil {
		return err
	}
	defer a.Close()

	// Initialize the renderer backend (ebiten)
	renderer := ebitenrender.NewRenderer()
	inputMgr := ebitenrender.NewInputManager()
	engine := ebitenrender.NewEngine()

	g := game.NewGame(a.Session, renderer, inputMgr)

	// Set up the window
	scale := cfg.Display.Scale
	engine.SetWindowSize(g.ScreenWidth*scale, g.ScreenHeight*scale)
	engine.SetWindowTitle("Scavenger")
	engine.SetTPS(g.TPS)

	a.Log.Info("starting window", logging.Int("width", g.ScreenWidth), logging.Int("height", g.ScreenHeight))
	if err := engine.RunGame(g); err != nil {
		return fmt.Errorf("game loop: %w", err)
	}
	return nil
}
