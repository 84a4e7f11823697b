// Package perft counts the leaf nodes of the legal move tree, the standard
// correctness check for a move generator.
package perft

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/hailam/crust/internal/board"
	"github.com/hailam/crust/internal/storage"
)

// Cache stores node counts between runs. *storage.Store satisfies it.
type Cache interface {
	GetPerft(fingerprint, key uint64, depth int) (storage.PerftEntry, error)
	PutPerft(fingerprint, key uint64, e storage.PerftEntry) error
}

// Options configures Divide.
type Options struct {
	// Workers bounds the goroutines counting root moves. Zero means
	// runtime.GOMAXPROCS.
	Workers int
	// Cache, if set, is consulted before counting a root move's subtree and
	// updated afterwards.
	Cache Cache
}

// MoveCount is the node count below one root move.
type MoveCount struct {
	Move   board.Move
	Nodes  uint64
	Cached bool
}

// Report is the result of Divide.
type Report struct {
	FEN     string
	Depth   int
	Moves   []MoveCount
	Nodes   uint64
	Elapsed time.Duration
}

// Hits returns how many root moves were answered from the cache.
func (r *Report) Hits() int {
	return lo.CountBy(r.Moves, func(mc MoveCount) bool { return mc.Cached })
}

// Perft returns the number of leaf nodes of the legal move tree of the
// given depth. The board is restored before it returns.
func Perft(b *board.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	var ml board.MoveList
	b.GenerateMoves(&ml)

	var nodes uint64
	for i := 0; i < ml.Len(); i++ {
		if !b.MakeMove(ml.Get(i)) {
			continue
		}
		if depth == 1 {
			nodes++
		} else {
			nodes += Perft(b, depth-1)
		}
		b.UnmakeMove()
	}
	return nodes
}

// Divide counts the subtree below every legal root move concurrently.
// Each worker runs on its own clone, so b is never touched. Moves are
// reported in generation order.
func Divide(ctx context.Context, b *board.Board, depth int, opts Options) (*Report, error) {
	if depth < 1 {
		return nil, fmt.Errorf("perft depth must be at least 1, got %d", depth)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	start := time.Now()
	fingerprint := b.Tables().Fingerprint()
	legal := b.LegalMoves().Slice()
	counts := make([]MoveCount, len(legal))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, m := range legal {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c := b.Clone()
			if !c.MakeMove(m) {
				return fmt.Errorf("legal move %s rejected", m)
			}
			counts[i].Move = m

			if opts.Cache != nil {
				e, err := opts.Cache.GetPerft(fingerprint, c.Key(), depth-1)
				switch {
				case err == nil:
					counts[i].Nodes = e.Nodes
					counts[i].Cached = true
					return nil
				case !errors.Is(err, storage.ErrNotFound):
					return err
				}
			}

			t0 := time.Now()
			counts[i].Nodes = Perft(c, depth-1)
			log.Debug().Str("move", m.String()).Uint64("nodes", counts[i].Nodes).Msg("divide-move")

			if opts.Cache != nil {
				return opts.Cache.PutPerft(fingerprint, c.Key(), storage.PerftEntry{
					FEN:     c.FEN(),
					Depth:   depth - 1,
					Nodes:   counts[i].Nodes,
					Elapsed: time.Since(t0),
				})
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	r := &Report{
		FEN:     b.FEN(),
		Depth:   depth,
		Moves:   counts,
		Nodes:   lo.SumBy(counts, func(mc MoveCount) uint64 { return mc.Nodes }),
		Elapsed: time.Since(start),
	}
	log.Info().Str("fen", r.FEN).Int("depth", depth).Uint64("nodes", r.Nodes).
		Int("cache-hits", r.Hits()).Dur("elapsed", r.Elapsed).Msg("divide-done")
	return r, nil
}

// Sorted returns the move counts ordered by move string, the order most
// perft tools print.
func (r *Report) Sorted() []MoveCount {
	out := slices.Clone(r.Moves)
	slices.SortFunc(out, func(a, b MoveCount) int {
		switch as, bs := a.Move.String(), b.Move.String(); {
		case as < bs:
			return -1
		case as > bs:
			return 1
		}
		return 0
	})
	return out
}
