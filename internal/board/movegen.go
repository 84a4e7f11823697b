package board

// pawnSetup holds the per-color constants of pawn movement.
type pawnSetup struct {
	push      int
	startRank int
	lastRank  int
}

var pawnSetups = [2]pawnSetup{
	White: {push: 10, startRank: 1, lastRank: 7},
	Black: {push: -10, startRank: 6, lastRank: 0},
}

// promotionOrder lists promotion targets in generation order.
var promotionOrder = [4]PieceType{Queen, Rook, Bishop, Knight}

// castleRule describes one castling move.
type castleRule struct {
	right    CastlingRights
	kingFrom Square
	kingTo   Square
	rookFrom Square
	rookTo   Square
	empty    []Square // between king and rook
	safe     []Square // king start, transit, landing
}

var castleRules = [2][2]castleRule{
	White: {
		{WhiteKingSideCastle, E1, G1, H1, F1, []Square{F1, G1}, []Square{E1, F1, G1}},
		{WhiteQueenSideCastle, E1, C1, A1, D1, []Square{D1, C1, B1}, []Square{E1, D1, C1}},
	},
	Black: {
		{BlackKingSideCastle, E8, G8, H8, F8, []Square{F8, G8}, []Square{E8, F8, G8}},
		{BlackQueenSideCastle, E8, C8, A8, D8, []Square{D8, C8, B8}, []Square{E8, D8, C8}},
	},
}

// GenerateMoves appends every pseudo-legal move for the side to move to ml.
// Squares are scanned a1..h8 and each piece's offsets are tried in table
// order, so the output order is stable. Moves may leave the mover's king
// in check; MakeMove rejects those.
func (b *Board) GenerateMoves(ml *MoveList) {
	b.generate(ml, false)
}

// GenerateCaptures appends pseudo-legal captures and promotions only.
func (b *Board) GenerateCaptures(ml *MoveList) {
	b.generate(ml, true)
}

// LegalMoves returns the pseudo-legal moves that survive MakeMove.
func (b *Board) LegalMoves() *MoveList {
	var pseudo MoveList
	b.GenerateMoves(&pseudo)

	legal := NewMoveList()
	for _, m := range pseudo.Slice() {
		if b.MakeMove(m) {
			b.UnmakeMove()
			legal.Add(m)
		}
	}
	return legal
}

func (b *Board) generate(ml *MoveList, capturesOnly bool) {
	us := b.side
	sqs := &b.tables.Squares

	for dense := 0; dense < 64; dense++ {
		from := sqs.toPadded[dense]
		p := b.pieces[from]
		if p.Color() != us {
			continue
		}

		switch {
		case p.Type() == Pawn:
			b.generatePawnMoves(ml, from, us, capturesOnly)
		case p.IsSlider():
			b.generateSliderMoves(ml, from, p, capturesOnly)
		default:
			b.generateStepMoves(ml, from, p, capturesOnly)
			if p.Type() == King && !capturesOnly {
				b.generateCastlingMoves(ml, us)
			}
		}
	}
}

// generatePawnMoves generates pushes, captures, en passant and promotions
// for the pawn on from.
func (b *Board) generatePawnMoves(ml *MoveList, from Square, us Color, capturesOnly bool) {
	setup := pawnSetups[us]
	them := us.Other()

	// Pushes
	one := Square(int(from) + setup.push)
	if b.pieces[one] == Empty {
		if one.Rank() == setup.lastRank {
			addPromotions(ml, from, one, Empty, us)
		} else if !capturesOnly {
			ml.Add(NewMove(from, one, Empty, Empty, 0))
			two := Square(int(one) + setup.push)
			if from.Rank() == setup.startRank && b.pieces[two] == Empty {
				ml.Add(NewMove(from, two, Empty, Empty, FlagDoublePush))
			}
		}
	}

	// Captures
	for _, d := range pawnCaptureDirs[us] {
		to := Square(int(from) + d)
		target := b.pieces[to]
		switch {
		case target.Color() == them:
			if to.Rank() == setup.lastRank {
				addPromotions(ml, from, to, target, us)
			} else {
				ml.Add(NewMove(from, to, target, Empty, 0))
			}
		case target == Empty && to == b.enPassant:
			ml.Add(NewMove(from, to, Empty, Empty, FlagEnPassant))
		}
	}
}

// addPromotions adds all four promotion moves.
func addPromotions(ml *MoveList, from, to Square, captured Piece, us Color) {
	for _, pt := range promotionOrder {
		ml.Add(NewMove(from, to, captured, NewPiece(pt, us), 0))
	}
}

// generateStepMoves handles knights and the king's ordinary steps.
func (b *Board) generateStepMoves(ml *MoveList, from Square, p Piece, capturesOnly bool) {
	us := p.Color()
	for _, d := range pieceTable[p].dirs {
		to := Square(int(from) + d)
		target := b.pieces[to]
		switch {
		case target == Empty:
			if !capturesOnly {
				ml.Add(NewMove(from, to, Empty, Empty, 0))
			}
		case target.IsColored() && target.Color() != us:
			ml.Add(NewMove(from, to, target, Empty, 0))
		}
	}
}

// generateSliderMoves walks each ray of a bishop, rook or queen.
func (b *Board) generateSliderMoves(ml *MoveList, from Square, p Piece, capturesOnly bool) {
	us := p.Color()
	for _, d := range pieceTable[p].dirs {
		to := Square(int(from) + d)
		for {
			target := b.pieces[to]
			if target == Empty {
				if !capturesOnly {
					ml.Add(NewMove(from, to, Empty, Empty, 0))
				}
				to = Square(int(to) + d)
				continue
			}
			// Border or friendly piece ends the ray without a move.
			if target.IsColored() && target.Color() != us {
				ml.Add(NewMove(from, to, target, Empty, 0))
			}
			break
		}
	}
}

// generateCastlingMoves adds the castling moves whose rights are held,
// whose path is clear and whose king squares are not attacked.
func (b *Board) generateCastlingMoves(ml *MoveList, us Color) {
	them := us.Other()
	king := NewPiece(King, us)
	rook := NewPiece(Rook, us)

	for i := range castleRules[us] {
		r := &castleRules[us][i]
		if b.castle&r.right == 0 {
			continue
		}
		if b.pieces[r.kingFrom] != king || b.pieces[r.rookFrom] != rook {
			continue
		}
		if !b.allEmpty(r.empty) || b.anyAttacked(r.safe, them) {
			continue
		}
		ml.Add(NewMove(r.kingFrom, r.kingTo, Empty, Empty, FlagCastle))
	}
}

func (b *Board) allEmpty(sqs []Square) bool {
	for _, sq := range sqs {
		if b.pieces[sq] != Empty {
			return false
		}
	}
	return true
}

func (b *Board) anyAttacked(sqs []Square, by Color) bool {
	for _, sq := range sqs {
		if b.IsSquareAttacked(sq, by) {
			return true
		}
	}
	return false
}
