package board

// Undo records the state a move destroys, enough to take it back.
type Undo struct {
	Move      Move
	Castle    CastlingRights
	EnPassant Square
	HalfMove  int
	FullMove  int
	Key       uint64
}

// rookCastleSquares maps a castling king destination to the rook's move.
func rookCastleSquares(kingTo Square) (from, to Square) {
	switch kingTo {
	case G1:
		return H1, F1
	case C1:
		return A1, D1
	case G8:
		return H8, F8
	case C8:
		return A8, D8
	}
	violate("castle", "king destination "+kingTo.String()+" is not a castling square")
	return NoSquare, NoSquare
}

// MakeMove applies m, which must come from GenerateMoves for the current
// position. If the move would leave the mover's king attacked it is taken
// back and MakeMove returns false with the board unchanged.
func (b *Board) MakeMove(m Move) bool {
	if len(b.history) == MaxGameMoves {
		violate("MakeMove", "history stack full")
	}

	from, to := m.From(), m.To()
	us := b.side

	b.history = append(b.history, Undo{
		Move:      m,
		Castle:    b.castle,
		EnPassant: b.enPassant,
		HalfMove:  b.halfMove,
		FullMove:  b.fullMove,
		Key:       b.key,
	})

	switch {
	case m.IsEnPassant():
		if us == White {
			b.clearPiece(to - 10)
		} else {
			b.clearPiece(to + 10)
		}
	case m.IsCastle():
		rookFrom, rookTo := rookCastleSquares(to)
		b.movePiece(rookFrom, rookTo)
	}

	if b.enPassant != NoSquare {
		b.hashEnPassant()
		b.enPassant = NoSquare
	}

	b.hashCastle()
	b.castle &= castleMask[from] & castleMask[to]
	b.hashCastle()

	b.halfMove++
	if captured := m.Captured(); captured != Empty {
		b.clearPiece(to)
		b.halfMove = 0
	}

	if b.pieces[from].Type() == Pawn {
		b.halfMove = 0
		if m.IsDoublePush() {
			if us == White {
				b.enPassant = from + 10
			} else {
				b.enPassant = from - 10
			}
			b.hashEnPassant()
		}
	}

	b.movePiece(from, to)

	if promoted := m.Promoted(); promoted != Empty {
		b.clearPiece(to)
		b.addPiece(promoted, to)
	}

	if us == Black {
		b.fullMove++
	}

	b.side = us.Other()
	b.hashSide()

	if b.IsSquareAttacked(b.kingSquare[us], b.side) {
		b.UnmakeMove()
		return false
	}

	return true
}

// UnmakeMove takes back the last move made. Calling it with an empty
// history is an invariant violation.
func (b *Board) UnmakeMove() {
	n := len(b.history)
	if n == 0 {
		violate("UnmakeMove", "history stack is empty")
	}
	undo := b.history[n-1]
	b.history = b.history[:n-1]

	m := undo.Move
	from, to := m.From(), m.To()

	b.side = b.side.Other()

	if m.IsEnPassant() {
		if b.side == White {
			b.pieces[to-10] = BlackPawn
		} else {
			b.pieces[to+10] = WhitePawn
		}
	} else if m.IsCastle() {
		rookFrom, rookTo := rookCastleSquares(to)
		b.pieces[rookFrom] = b.pieces[rookTo]
		b.pieces[rookTo] = Empty
	}

	p := b.pieces[to]
	if m.Promoted() != Empty {
		p = NewPiece(Pawn, b.side)
	}
	b.pieces[from] = p
	b.pieces[to] = m.Captured()
	if p.Type() == King {
		b.kingSquare[b.side] = from
	}

	b.castle = undo.Castle
	b.enPassant = undo.EnPassant
	b.halfMove = undo.HalfMove
	b.fullMove = undo.FullMove
	b.key = undo.Key
}

// History returns the moves made since the position was set, oldest first.
func (b *Board) History() []Move {
	moves := make([]Move, len(b.history))
	for i, u := range b.history {
		moves[i] = u.Move
	}
	return moves
}
