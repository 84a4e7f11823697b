package board

import (
	"fmt"
	"strings"
)

// CastlingRights represents the available castling options as a 4-bit set.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr&AllCastling == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// castleMask[sq] is ANDed into the rights whenever a move starts or ends
// on sq, so moving or capturing a king or rook clears the matching bits.
var castleMask = func() [NumSquares]CastlingRights {
	var m [NumSquares]CastlingRights
	for i := range m {
		m[i] = AllCastling
	}
	m[E1] &^= WhiteKingSideCastle | WhiteQueenSideCastle
	m[H1] &^= WhiteKingSideCastle
	m[A1] &^= WhiteQueenSideCastle
	m[E8] &^= BlackKingSideCastle | BlackQueenSideCastle
	m[H8] &^= BlackKingSideCastle
	m[A8] &^= BlackQueenSideCastle
	return m
}()

// MaxGameMoves bounds the history depth (half-moves).
const MaxGameMoves = 2048

// Board is a complete chess position plus the undo history needed to
// take moves back. A Board is owned by one caller at a time; use Clone
// to hand a copy to another goroutine.
type Board struct {
	tables *Tables

	pieces [NumSquares]Piece

	side      Color
	castle    CastlingRights
	enPassant Square // target square, NoSquare if none
	halfMove  int    // plies since the last pawn move or capture
	fullMove  int    // starts at 1, incremented after Black moves
	key       uint64

	kingSquare [2]Square

	history []Undo
}

// NewBoard returns a board set to the starting position.
// A nil tables argument selects DefaultTables.
func NewBoard(t *Tables) *Board {
	if t == nil {
		t = DefaultTables()
	}
	b := &Board{tables: t}
	b.history = make([]Undo, 0, 64)
	if err := b.SetFromFEN(StartFEN); err != nil {
		panic(err)
	}
	return b
}

// Clone returns an independent copy of the board, history included.
// The immutable tables are shared.
func (b *Board) Clone() *Board {
	nb := *b
	nb.history = make([]Undo, len(b.history), max(cap(b.history), 64))
	copy(nb.history, b.history)
	return &nb
}

// reset empties the board, leaving the border intact.
func (b *Board) reset() {
	for sq := range b.pieces {
		b.pieces[sq] = OffBoard
	}
	for dense := 0; dense < 64; dense++ {
		b.pieces[b.tables.Squares.toPadded[dense]] = Empty
	}
	b.side = White
	b.castle = NoCastling
	b.enPassant = NoSquare
	b.halfMove = 0
	b.fullMove = 1
	b.key = 0
	b.kingSquare = [2]Square{NoSquare, NoSquare}
	b.history = b.history[:0]
}

// Tables returns the lookup tables the board was built with.
func (b *Board) Tables() *Tables {
	return b.tables
}

// PieceAt returns the piece on sq. Any square outside the playable area,
// including indices beyond the padded board, reports OffBoard.
func (b *Board) PieceAt(sq Square) Piece {
	if sq >= NumSquares {
		return OffBoard
	}
	return b.pieces[sq]
}

// SideToMove returns the side to move.
func (b *Board) SideToMove() Color { return b.side }

// CastlingRights returns the current castling rights.
func (b *Board) CastlingRights() CastlingRights { return b.castle }

// EnPassant returns the en-passant target square or NoSquare.
func (b *Board) EnPassant() Square { return b.enPassant }

// HalfMoveClock returns the plies since the last pawn move or capture.
func (b *Board) HalfMoveClock() int { return b.halfMove }

// FullMoveNumber returns the full move counter.
func (b *Board) FullMoveNumber() int { return b.fullMove }

// Key returns the incrementally maintained position key.
func (b *Board) Key() uint64 { return b.key }

// KingSquare returns the square of c's king.
func (b *Board) KingSquare(c Color) Square { return b.kingSquare[c] }

// Ply returns the number of moves on the history stack.
func (b *Board) Ply() int { return len(b.history) }

// InCheck reports whether the side to move is in check.
func (b *Board) InCheck() bool {
	return b.IsSquareAttacked(b.kingSquare[b.side], b.side.Other())
}

// String returns a visual representation of the board.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			sb.WriteByte(b.pieces[FileRankToSquare(file, rank)].Char())
			sb.WriteByte(' ')
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", b.side)
	fmt.Fprintf(&sb, "Castling: %s\n", b.castle)
	fmt.Fprintf(&sb, "En passant: %s\n", b.enPassant)
	fmt.Fprintf(&sb, "Half-move clock: %d\n", b.halfMove)
	fmt.Fprintf(&sb, "Full move: %d\n", b.fullMove)
	fmt.Fprintf(&sb, "Key: %016x\n", b.key)
	return sb.String()
}

// Verify cross-checks the redundant state: border squares, cached king
// squares, the king count per side and the incremental key.
func (b *Board) Verify() error {
	var kings [2]int
	for sq := Square(0); sq < NumSquares; sq++ {
		p := b.pieces[sq]
		if !sq.OnBoard() {
			if p != OffBoard {
				return fmt.Errorf("border square %d holds %q", sq, p.Char())
			}
			continue
		}
		if p == OffBoard {
			return fmt.Errorf("playable square %s holds the off-board sentinel", sq)
		}
		if p.Type() == King {
			kings[p.Color()]++
			if b.kingSquare[p.Color()] != sq {
				return fmt.Errorf("%s king on %s but cached on %s", p.Color(), sq, b.kingSquare[p.Color()])
			}
		}
	}
	for c, n := range kings {
		if n != 1 {
			return fmt.Errorf("%s has %d kings", Color(c), n)
		}
	}
	if want := b.ComputeKey(); b.key != want {
		return fmt.Errorf("key %016x does not match recomputed %016x", b.key, want)
	}
	return nil
}

// addPiece places p on an empty square.
func (b *Board) addPiece(p Piece, sq Square) {
	b.pieces[sq] = p
	b.hashPiece(p, sq)
	if p.Type() == King {
		b.kingSquare[p.Color()] = sq
	}
}

// clearPiece empties sq and returns what stood there.
func (b *Board) clearPiece(sq Square) Piece {
	p := b.pieces[sq]
	b.hashPiece(p, sq)
	b.pieces[sq] = Empty
	return p
}

// movePiece relocates the piece on from to the empty square to.
func (b *Board) movePiece(from, to Square) {
	p := b.pieces[from]
	b.hashPiece(p, from)
	b.pieces[from] = Empty
	b.hashPiece(p, to)
	b.pieces[to] = p
	if p.Type() == King {
		b.kingSquare[p.Color()] = to
	}
}
