package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/scavenger/internal/app"
	"chosenoffset.com/scavenger/internal/render/terminal"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "scavenger-term: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags, err := app.ParseFlags("scavenger-term", args, os.Stderr)
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

	// Logs would scribble over the board; send them to a file when asked.
	var logOut io.Writer = io.Discard
	if path := os.Getenv("SCAVENGER_LOG"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}

	a, err := app.New(cfg, app.Options{LogOutput: logOut})
	if err != nil {
		return err
	}
	defer a.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return terminal.NewRunner(screen, a.Session).Run(ctx)
}
