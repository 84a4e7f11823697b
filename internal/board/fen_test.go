package board

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
		"4k3/8/8/8/8/8/8/4K3 b - - 37 80",
	}

	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			b, err := ParseFEN(fen)
			if err != nil {
				t.Fatalf("ParseFEN: %v", err)
			}
			if got := b.FEN(); got != fen {
				t.Errorf("FEN() = %q, want %q", got, fen)
			}
			if err := b.Verify(); err != nil {
				t.Errorf("Verify: %v", err)
			}
		})
	}
}

func TestFENOptionalCounters(t *testing.T) {
	is := is.New(t)

	b, err := ParseFEN("4k3/8/8/8/8/8/8/4K3 w - -")
	is.NoErr(err)
	is.Equal(b.HalfMoveClock(), 0)
	is.Equal(b.FullMoveNumber(), 1)
}

func TestFENStartPosition(t *testing.T) {
	is := is.New(t)
	b := NewBoard(nil)

	is.Equal(b.SideToMove(), White)
	is.Equal(b.CastlingRights(), AllCastling)
	is.Equal(b.EnPassant(), NoSquare)
	is.Equal(b.PieceAt(E1), WhiteKing)
	is.Equal(b.PieceAt(D8), BlackQueen)
	is.Equal(b.PieceAt(E4), Empty)
	is.Equal(b.KingSquare(White), E1)
	is.Equal(b.KingSquare(Black), E8)
}

func TestFENErrors(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"empty", ""},
		{"too few fields", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq"},
		{"too many fields", StartFEN + " extra"},
		{"seven ranks", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1"},
		{"bad piece letter", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX w KQkq - 0 1"},
		{"short rank", "rnbqkbnr/pppppppp/7/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"long rank", "rnbqkbnr/ppppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"digit overflow", "rnbqkbnr/pppppppp/44p/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"nine", "rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"bad side", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1"},
		{"bad castling", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkx - 0 1"},
		{"repeated castling", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KK - 0 1"},
		{"bad en passant", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq z9 0 1"},
		{"en passant wrong rank", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e3 0 1"},
		{"en passant own piece behind", "4k3/8/8/3PN3/8/8/8/4K3 w - e6 0 1"},
		{"en passant nothing behind", "4k3/8/8/3P4/8/8/8/4K3 w - e6 0 1"},
		{"en passant target occupied", "4k3/8/4n3/3Pp3/8/8/8/4K3 w - e6 0 1"},
		{"en passant origin occupied", "4k3/4p3/8/3Pp3/8/8/8/4K3 w - e6 0 1"},
		{"en passant black to move", "4k3/8/8/8/3pN3/8/8/4K3 b - e3 0 1"},
		{"bad halfmove", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - x 1"},
		{"negative halfmove", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - -1 1"},
		{"zero fullmove", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 0"},
		{"no white king", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQ1BNR w kq - 0 1"},
		{"two black kings", "rnbqkbnk/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQ - 0 1"},
		{"pawn on back rank", "rnbqkbnp/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQq - 0 1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBoard(nil)
			var ml MoveList
			b.GenerateMoves(&ml)
			if !b.MakeMove(ml.Get(0)) {
				t.Fatal("first start move rejected")
			}
			before, key, ply := b.FEN(), b.Key(), b.Ply()

			err := b.SetFromFEN(tc.fen)
			if err == nil {
				t.Fatalf("SetFromFEN(%q) succeeded, want error", tc.fen)
			}
			if !errors.Is(err, ErrParse) {
				t.Errorf("error %v does not match ErrParse", err)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Errorf("error %T is not a *ParseError", err)
			}

			// The board keeps its last valid state, history included.
			if b.FEN() != before || b.Key() != key || b.Ply() != ply {
				t.Errorf("board changed after failed parse: %s", b.FEN())
			}
			b.UnmakeMove()
			if b.FEN() != StartFEN {
				t.Errorf("history damaged by failed parse: %s", b.FEN())
			}
		})
	}
}

func TestFENEnPassantAccepted(t *testing.T) {
	is := is.New(t)

	b, err := ParseFEN("4k3/8/8/8/3pP3/8/8/4K3 b - e3 0 1")
	is.NoErr(err)
	is.Equal(b.EnPassant(), E3)

	m, err := b.ParseMove("d4e3")
	is.NoErr(err)
	is.True(m.IsEnPassant())
	before := b.FEN()
	is.True(b.MakeMove(m))
	is.Equal(b.PieceAt(E4), Empty)
	b.UnmakeMove()
	is.Equal(b.FEN(), before)
	is.NoErr(b.Verify())
}

func TestSetFromFENClearsHistory(t *testing.T) {
	is := is.New(t)
	b := NewBoard(nil)

	m, err := b.ParseMove("e2e4")
	is.NoErr(err)
	is.True(b.MakeMove(m))
	is.Equal(b.Ply(), 1)

	is.NoErr(b.SetFromFEN(StartFEN))
	is.Equal(b.Ply(), 0)
	is.Equal(b.Key(), NewBoard(nil).Key())
}
