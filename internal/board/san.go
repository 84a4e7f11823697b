package board

import (
	"strings"
)

const sanLetters = " PNBRQK"

// SAN converts a legal move to Standard Algebraic Notation, including the
// check and mate markers.
func (b *Board) SAN(m Move) string {
	if m == NoMove {
		return "-"
	}

	from, to := m.From(), m.To()
	piece := b.PieceAt(from)
	if !piece.IsColored() {
		return m.String() // Fallback to UCI
	}

	var sb strings.Builder

	if m.IsCastle() {
		if to.File() > from.File() {
			sb.WriteString("O-O")
		} else {
			sb.WriteString("O-O-O")
		}
	} else {
		pt := piece.Type()
		if pt != Pawn {
			sb.WriteByte(sanLetters[pt])
			sb.WriteString(b.disambiguation(m, piece))
		}
		if m.IsCapture() {
			if pt == Pawn {
				sb.WriteByte('a' + byte(from.File()))
			}
			sb.WriteByte('x')
		}
		sb.WriteString(to.String())
		if m.IsPromotion() {
			sb.WriteByte('=')
			sb.WriteByte(sanLetters[m.Promoted().Type()])
		}
	}

	if b.MakeMove(m) {
		if b.InCheck() {
			if b.LegalMoves().Len() == 0 {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('+')
			}
		}
		b.UnmakeMove()
	}

	return sb.String()
}

// disambiguation returns the origin file, rank or square needed when
// another piece of the same kind can reach the same destination.
func (b *Board) disambiguation(m Move, piece Piece) string {
	from, to := m.From(), m.To()

	var candidates []Square
	legal := b.LegalMoves()
	for i := 0; i < legal.Len(); i++ {
		other := legal.Get(i)
		if other.To() != to || other.From() == from {
			continue
		}
		if b.PieceAt(other.From()) == piece {
			candidates = append(candidates, other.From())
		}
	}
	if len(candidates) == 0 {
		return ""
	}

	sameFile, sameRank := false, false
	for _, sq := range candidates {
		if sq.File() == from.File() {
			sameFile = true
		}
		if sq.Rank() == from.Rank() {
			sameRank = true
		}
	}

	switch {
	case !sameFile:
		return string(rune('a' + from.File()))
	case !sameRank:
		return string(rune('1' + from.Rank()))
	}
	return from.String()
}

// ParseSAN returns the legal move written as s in Standard Algebraic
// Notation. Check markers and annotation suffixes are ignored.
func (b *Board) ParseSAN(s string) (Move, error) {
	text := strings.TrimSpace(s)
	text = strings.TrimRight(text, "+#!?")
	legal := b.LegalMoves()

	switch text {
	case "O-O", "0-0", "O-O-O", "0-0-0":
		kingside := len(text) == 3
		for i := 0; i < legal.Len(); i++ {
			m := legal.Get(i)
			if m.IsCastle() && (m.To().File() == 6) == kingside {
				return m, nil
			}
		}
		return NoMove, parseErrorf("move", s, "castling is not legal here")
	}

	promo := NoPieceType
	if idx := strings.IndexByte(text, '='); idx >= 0 {
		if idx+1 >= len(text) {
			return NoMove, parseErrorf("move", s, "missing promotion piece")
		}
		promo = PieceFromChar(text[idx+1]).Type()
		if promo == NoPieceType || promo == Pawn || promo == King {
			return NoMove, parseErrorf("move", s, "invalid promotion piece %q", text[idx+1])
		}
		text = text[:idx]
	}

	isCapture := strings.Contains(text, "x")
	text = strings.ReplaceAll(text, "x", "")

	pt := Pawn
	if len(text) > 0 && text[0] >= 'A' && text[0] <= 'Z' {
		pt = PieceFromChar(text[0]).Type()
		if pt == NoPieceType || pt == Pawn {
			return NoMove, parseErrorf("move", s, "unknown piece letter %q", text[0])
		}
		text = text[1:]
	}

	if len(text) < 2 {
		return NoMove, parseErrorf("move", s, "missing destination square")
	}
	dest, err := ParseSquare(text[len(text)-2:])
	if err != nil {
		return NoMove, parseErrorf("move", s, "bad destination square")
	}
	text = text[:len(text)-2]

	fileHint, rankHint := -1, -1
	for _, c := range text {
		switch {
		case c >= 'a' && c <= 'h':
			fileHint = int(c - 'a')
		case c >= '1' && c <= '8':
			rankHint = int(c - '1')
		default:
			return NoMove, parseErrorf("move", s, "unexpected %q", c)
		}
	}

	for i := 0; i < legal.Len(); i++ {
		m := legal.Get(i)
		from := m.From()
		switch {
		case m.To() != dest, m.IsCastle():
			continue
		case b.PieceAt(from).Type() != pt:
			continue
		case fileHint >= 0 && from.File() != fileHint:
			continue
		case rankHint >= 0 && from.Rank() != rankHint:
			continue
		case isCapture && !m.IsCapture():
			continue
		case m.Promoted().Type() != promo:
			continue
		}
		return m, nil
	}

	return NoMove, parseErrorf("move", s, "no such move in this position")
}

// MovesToSAN converts a line of moves starting from the current position.
// The board itself is not changed.
func (b *Board) MovesToSAN(moves []Move) []string {
	result := make([]string, len(moves))
	p := b.Clone()

	for i, m := range moves {
		result[i] = p.SAN(m)
		if !p.MakeMove(m) {
			return result[:i+1]
		}
	}
	return result
}
