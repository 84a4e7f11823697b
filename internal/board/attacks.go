package board

// pawnCaptureDirs[c] are the offsets a pawn of color c captures along.
var pawnCaptureDirs = [2][2]int{
	White: {9, 11},
	Black: {-9, -11},
}

// IsSquareAttacked reports whether any piece of color by attacks sq.
// Each attacker kind is found by walking its offsets outward from sq.
func (b *Board) IsSquareAttacked(sq Square, by Color) bool {
	if !sq.OnBoard() {
		return false
	}
	t := int(sq)

	// Pawns: look back along the attacker's capture offsets.
	pawn := NewPiece(Pawn, by)
	for _, d := range pawnCaptureDirs[by] {
		if b.pieces[t-d] == pawn {
			return true
		}
	}

	knight := NewPiece(Knight, by)
	for _, d := range knightDirs {
		if b.pieces[t+d] == knight {
			return true
		}
	}

	king := NewPiece(King, by)
	for _, d := range kingDirs {
		if b.pieces[t+d] == king {
			return true
		}
	}

	rook, bishop, queen := NewPiece(Rook, by), NewPiece(Bishop, by), NewPiece(Queen, by)
	if b.rayHits(t, rookDirs, rook, queen) || b.rayHits(t, bishopDirs, bishop, queen) {
		return true
	}

	return false
}

// rayHits walks each direction from t until the first non-empty square
// and reports whether it holds p1 or p2. The border stops every ray.
func (b *Board) rayHits(t int, dirs []int, p1, p2 Piece) bool {
	for _, d := range dirs {
		s := t + d
		for b.pieces[s] == Empty {
			s += d
		}
		if p := b.pieces[s]; p == p1 || p == p2 {
			return true
		}
	}
	return false
}
