package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"strconv"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hailam/crust/internal/board"
	"github.com/hailam/crust/internal/config"
	"github.com/hailam/crust/internal/perft"
	"github.com/hailam/crust/internal/storage"
)

var (
	fen        = flag.String("fen", board.StartFEN, "FEN string (defaults to the initial position)")
	depth      = flag.Int("depth", 0, "perft depth (required unless -key is set)")
	divide     = flag.Bool("divide", false, "print per-move node counts at the root")
	key        = flag.String("key", "", "print the indexed FEN for a hex position key and exit")
	configPath = flag.String("config", "", "optional config file")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

var errUsage = errors.New("-depth must be > 0")

func main() {
	flag.Parse()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := run(); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		log.Fatal().Err(err).Msg("crust-perft")
	}
}

func run() error {
	if *key == "" && *depth <= 0 {
		return errUsage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	lvl, _ := cfg.Level()
	zerolog.SetGlobalLevel(lvl)

	tables := board.NewTables(cfg.ZobristSeed())

	if *key != "" {
		store, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("storage: %w", err)
		}
		defer store.Close()
		pos, err := lookupFEN(store, tables, *key)
		if err != nil {
			return err
		}
		fmt.Println(pos)
		return nil
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	b := board.NewBoard(tables)
	if err := b.SetFromFEN(*fen); err != nil {
		return err
	}

	opts := perft.Options{Workers: cfg.Workers}
	if !cfg.NoCache {
		store, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("storage: %w", err)
		}
		defer store.Close()
		opts.Cache = store
		if err := store.PutPosition(tables.Fingerprint(), b.Key(), b.FEN()); err != nil {
			log.Warn().Err(err).Msg("index-position")
		}
		log.Debug().Str("key", fmt.Sprintf("%016x", b.Key())).Msg("indexed root position")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r, err := perft.Divide(ctx, b, *depth, opts)
	if err != nil {
		return fmt.Errorf("perft: %w", err)
	}

	if *divide {
		for _, mc := range r.Sorted() {
			fmt.Printf("%s: %d\n", mc.Move, mc.Nodes)
		}
	}
	nps := 0.0
	if secs := r.Elapsed.Seconds(); secs > 0 {
		nps = float64(r.Nodes) / secs
	}
	fmt.Printf("Total: %d\n", r.Nodes)
	fmt.Printf("Time: %v (%.0f nps, %d cached root moves)\n", r.Elapsed, nps, r.Hits())
	return nil
}

// lookupFEN resolves a hex position key against the positions indexed
// under the given tables.
func lookupFEN(store *storage.Store, tables *board.Tables, hexKey string) (string, error) {
	k, err := strconv.ParseUint(strings.TrimPrefix(hexKey, "0x"), 16, 64)
	if err != nil {
		return "", fmt.Errorf("key %q: %w", hexKey, err)
	}
	p, err := store.LookupPosition(tables.Fingerprint(), k)
	if err != nil {
		return "", fmt.Errorf("key %016x: %w", k, err)
	}
	return p.FEN, nil
}

func openStore(cfg *config.Config) (*storage.Store, error) {
	if cfg.InMemory {
		return storage.OpenInMemory()
	}
	return storage.Open(cfg.DataDir)
}
