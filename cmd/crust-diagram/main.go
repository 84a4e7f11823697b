package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hailam/crust/internal/board"
	"github.com/hailam/crust/internal/config"
	"github.com/hailam/crust/internal/diagram"
)

var (
	fen        = flag.String("fen", board.StartFEN, "FEN string (defaults to the initial position)")
	moves      = flag.String("moves", "", "space-separated moves to play first, e.g. \"e2e4 e7e5\"")
	out        = flag.String("out", "board.png", "output PNG file")
	configPath = flag.String("config", "", "optional config file")
	coords     = flag.Bool("coords", true, "label files and ranks")
)

func main() {
	flag.Parse()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("crust-diagram")
	}
}

func run() error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	lvl, _ := cfg.Level()
	zerolog.SetGlobalLevel(lvl)

	b := board.NewBoard(board.NewTables(cfg.ZobristSeed()))
	if err := b.SetFromFEN(*fen); err != nil {
		return err
	}
	for _, s := range strings.Fields(*moves) {
		m, err := b.ParseMove(s)
		if err != nil {
			return err
		}
		if !b.MakeMove(m) {
			return fmt.Errorf("move %s leaves the king in check", s)
		}
	}

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	opts := diagram.Options{
		Size:        cfg.DiagramSize,
		Flip:        cfg.DiagramFlip,
		Coordinates: *coords,
		LastMove:    true,
	}
	if err := diagram.WritePNG(f, b, opts); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	fmt.Println(*out)
	return nil
}
