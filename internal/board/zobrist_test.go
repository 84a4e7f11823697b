package board

import (
	"testing"

	"github.com/matryer/is"
)

func mustKey(t *testing.T, fen string) uint64 {
	t.Helper()
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return b.Key()
}

func TestKeyIdenticalFEN(t *testing.T) {
	is := is.New(t)
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

	is.Equal(mustKey(t, fen), mustKey(t, fen))

	// Clocks are not part of the key.
	is.Equal(mustKey(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1"), mustKey(t, "4k3/8/8/8/8/8/8/4K3 w - - 12 40"))
}

func TestKeySingleFeatureChanges(t *testing.T) {
	tests := []struct {
		name string
		a, b string
	}{
		{"side to move",
			"r3k2r/8/8/3pP3/8/8/8/R3K2R w KQkq - 0 1",
			"r3k2r/8/8/3pP3/8/8/8/R3K2R b KQkq - 0 1"},
		{"castling rights",
			"r3k2r/8/8/3pP3/8/8/8/R3K2R w KQkq d6 0 1",
			"r3k2r/8/8/3pP3/8/8/8/R3K2R w Qkq d6 0 1"},
		{"no castling",
			"r3k2r/8/8/3pP3/8/8/8/R3K2R w KQkq d6 0 1",
			"r3k2r/8/8/3pP3/8/8/8/R3K2R w - d6 0 1"},
		{"en passant",
			"r3k2r/8/8/3pP3/8/8/8/R3K2R w KQkq d6 0 1",
			"r3k2r/8/8/3pP3/8/8/8/R3K2R w KQkq - 0 1"},
		{"extra piece",
			"r3k2r/8/8/3pP3/8/8/8/R3K2R w KQkq d6 0 1",
			"r3k2r/8/8/3pP3/8/8/7P/R3K2R w KQkq d6 0 1"},
		{"piece identity",
			"r3k2r/8/8/3pP3/8/8/8/R3K2R w KQkq d6 0 1",
			"r3k2r/8/8/3pP3/8/8/8/R3K2B w KQkq d6 0 1"},
		{"piece square",
			"r3k2r/8/8/3pP3/8/8/8/R3K2R w KQkq d6 0 1",
			"r3k2r/8/8/3pP3/8/8/8/R2K3R w KQkq d6 0 1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if mustKey(t, tc.a) == mustKey(t, tc.b) {
				t.Errorf("key unchanged by %s", tc.name)
			}
		})
	}
}

func TestKeyMatchesRecompute(t *testing.T) {
	is := is.New(t)
	b := NewBoard(nil)
	is.Equal(b.Key(), b.ComputeKey())
	is.True(b.Key() != 0)
}

func TestTablesDeterministic(t *testing.T) {
	is := is.New(t)

	a, b := NewTables(42), NewTables(42)
	is.Equal(a.Fingerprint(), b.Fingerprint())
	is.Equal(a.PieceKey(WhiteKing, E1), b.PieceKey(WhiteKing, E1))
	is.Equal(a.Seed(), uint64(42))

	c := NewTables(43)
	is.True(a.Fingerprint() != c.Fingerprint())
	is.True(a.SideKey() != c.SideKey())

	// Zero would lock the generator; it falls back to the default seed.
	is.Equal(NewTables(0).Fingerprint(), DefaultTables().Fingerprint())
	is.True(DefaultTables() == DefaultTables())
}

func TestPieceKeyOutsideBoard(t *testing.T) {
	is := is.New(t)
	tb := DefaultTables()

	is.Equal(tb.PieceKey(WhiteKnight, 20), uint64(0)) // border square
	is.Equal(tb.PieceKey(WhiteKnight, NoSquare), uint64(0))
	is.Equal(tb.PieceKey(WhiteKnight, 200), uint64(0))
	is.Equal(tb.PieceKey(OffBoard, E4), uint64(0))
	is.Equal(tb.PieceKey(Empty, E4), uint64(0))
	is.True(tb.PieceKey(WhiteKnight, E4) != 0)
}

func TestTablesKeysDistinct(t *testing.T) {
	is := is.New(t)
	tb := DefaultTables()

	seen := make(map[uint64]bool)
	add := func(k uint64) {
		is.True(k != 0)
		is.True(!seen[k]) // every key in the table is distinct
		seen[k] = true
	}
	for p := WhitePawn; p <= BlackKing; p++ {
		for dense := 0; dense < 64; dense++ {
			add(tb.PieceKey(p, tb.Squares.ToPadded(dense)))
		}
	}
	for cr := CastlingRights(0); cr < 16; cr++ {
		add(tb.CastleKey(cr))
	}
	for f := 0; f < 8; f++ {
		add(tb.EnPassantKey(f))
	}
	add(tb.SideKey())
}

func TestRandomSeed(t *testing.T) {
	is := is.New(t)

	s1, s2 := RandomSeed(), RandomSeed()
	is.True(s1 != 0)
	is.True(s1 != s2)

	b1 := NewBoard(NewTables(s1))
	b2 := NewBoard(NewTables(s1))
	is.Equal(b1.Key(), b2.Key())
	is.Equal(b1.FEN(), NewBoard(NewTables(s2)).FEN())
}
