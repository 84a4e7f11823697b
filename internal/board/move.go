package board

import "fmt"

// Move packs a chess move into 25 bits of a uint32:
// bits 0-6:   from square (padded index 0-119)
// bits 7-13:  to square
// bits 14-17: captured piece
// bit  18:    en passant capture
// bit  19:    pawn double push
// bits 20-23: promoted piece
// bit  24:    castling (the rook move is implied)
type Move uint32

// MoveFlag selects the single-bit move flags.
type MoveFlag uint32

const (
	FlagEnPassant  MoveFlag = 0x40000
	FlagDoublePush MoveFlag = 0x80000
	FlagCastle     MoveFlag = 0x1000000

	flagMask = FlagEnPassant | FlagDoublePush | FlagCastle
)

const (
	squareMask    = 0x7F
	toShift       = 7
	capturedShift = 14
	promotedShift = 20
	pieceMask     = 0xF

	captureBits = Move(pieceMask<<capturedShift) | Move(FlagEnPassant)
)

// NoMove represents an invalid or null move.
const NoMove Move = 0

// NewMove packs a move without validation. It is the generator's
// constructor and trusts its inputs.
func NewMove(from, to Square, captured, promoted Piece, flags MoveFlag) Move {
	return Move(from) | Move(to)<<toShift | Move(captured)<<capturedShift |
		Move(promoted)<<promotedShift | Move(flags&flagMask)
}

// EncodeMove packs a move after checking that both squares are playable,
// the captured piece is Empty or a real piece, and any promotion piece is
// neither a pawn nor a king.
func EncodeMove(from, to Square, captured, promoted Piece, flags MoveFlag) (Move, error) {
	if !from.OnBoard() {
		return NoMove, fmt.Errorf("encode move: from square %d is not playable", from)
	}
	if !to.OnBoard() {
		return NoMove, fmt.Errorf("encode move: to square %d is not playable", to)
	}
	if captured != Empty && !captured.IsColored() {
		return NoMove, fmt.Errorf("encode move: invalid captured piece %d", captured)
	}
	if promoted != Empty {
		if !promoted.IsColored() {
			return NoMove, fmt.Errorf("encode move: invalid promoted piece %d", promoted)
		}
		if pt := promoted.Type(); pt == Pawn || pt == King {
			return NoMove, fmt.Errorf("encode move: cannot promote to %s", pt)
		}
	}
	if flags&^flagMask != 0 {
		return NoMove, fmt.Errorf("encode move: unknown flags %#x", uint32(flags&^flagMask))
	}
	return NewMove(from, to, captured, promoted, flags), nil
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & squareMask)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m >> toShift) & squareMask)
}

// Captured returns the captured piece, Empty for non-captures and for en
// passant (whose victim does not stand on the destination square).
func (m Move) Captured() Piece {
	return Piece((m >> capturedShift) & pieceMask)
}

// Promoted returns the promotion piece or Empty.
func (m Move) Promoted() Piece {
	return Piece((m >> promotedShift) & pieceMask)
}

// IsEnPassant returns true if this is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m&Move(FlagEnPassant) != 0
}

// IsDoublePush returns true for a pawn's two-square advance.
func (m Move) IsDoublePush() bool {
	return m&Move(FlagDoublePush) != 0
}

// IsCastle returns true if this is a castling move.
func (m Move) IsCastle() bool {
	return m&Move(FlagCastle) != 0
}

// IsCapture returns true if this move captures a piece.
func (m Move) IsCapture() bool {
	return m&captureBits != 0
}

// IsPromotion returns true if this is a promotion move.
func (m Move) IsPromotion() bool {
	return m.Promoted() != Empty
}

// String returns the UCI form of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}

	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += string(NewPiece(m.Promoted().Type(), Black).Char())
	}
	return s
}

// ParseMove resolves a UCI move string against the moves generated for
// the current position, so the result carries the right capture and flag
// bits. It does not check legality; MakeMove does.
func (b *Board) ParseMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NoMove, parseErrorf("move", s, "want 4 or 5 characters")
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, parseErrorf("move", s, "bad origin square")
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, parseErrorf("move", s, "bad destination square")
	}

	promo := NoPieceType
	if len(s) == 5 {
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NoMove, parseErrorf("move", s, "invalid promotion piece %q", s[4])
		}
	}

	var ml MoveList
	b.GenerateMoves(&ml)
	for _, m := range ml.Slice() {
		if m.From() == from && m.To() == to && m.Promoted().Type() == promo {
			return m, nil
		}
	}

	return NoMove, parseErrorf("move", s, "no such move in this position")
}

// MaxMoves is the move list capacity, above the most moves any chess
// position can have.
const MaxMoves = 256

// MoveList is a fixed-size list of moves to avoid allocations.
type MoveList struct {
	moves [MaxMoves]Move
	count int
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Add adds a move to the list. Overflow is an invariant violation.
func (ml *MoveList) Add(m Move) {
	if ml.count == MaxMoves {
		violate("MoveList.Add", "move list capacity exceeded")
	}
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Contains returns true if the list contains the move.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice returns the moves as a slice backed by the list.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}
