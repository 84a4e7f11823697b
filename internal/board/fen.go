package board

import (
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN returns a new board built from fen using DefaultTables.
func ParseFEN(fen string) (*Board, error) {
	b := &Board{tables: DefaultTables()}
	if err := b.SetFromFEN(fen); err != nil {
		return nil, err
	}
	return b, nil
}

// SetFromFEN replaces the whole board state, history included, with the
// position described by fen. The halfmove clock and fullmove number may
// be omitted. On error the board keeps its previous state.
func (b *Board) SetFromFEN(fen string) error {
	if b.tables == nil {
		b.tables = DefaultTables()
	}

	parts := strings.Fields(fen)
	if len(parts) < 4 || len(parts) > 6 {
		return parseErrorf("FEN", fen, "need 4 to 6 fields, got %d", len(parts))
	}

	// Parse into scratch state so a failure cannot leave b half-written.
	next := &Board{tables: b.tables, history: b.history}
	next.reset()

	// Parse piece placement (field 0)
	if err := next.parsePlacement(parts[0]); err != nil {
		return err
	}

	// Parse side to move (field 1)
	switch parts[1] {
	case "w":
		next.side = White
	case "b":
		next.side = Black
	default:
		return parseErrorf("side to move", parts[1], "want w or b")
	}

	// Parse castling rights (field 2)
	cr, err := parseCastlingRights(parts[2])
	if err != nil {
		return err
	}
	next.castle = cr

	// Parse en passant square (field 3)
	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return parseErrorf("en passant square", parts[3], "not a square")
		}
		want := 5
		if next.side == Black {
			want = 2
		}
		if sq.Rank() != want {
			return parseErrorf("en passant square", parts[3], "must be on rank %d for %s to move", want+1, next.side)
		}
		// The target must be empty, with the pawn that just double-pushed
		// behind it and its origin square vacated.
		behind, origin := sq-10, sq+10
		if next.side == Black {
			behind, origin = sq+10, sq-10
		}
		switch {
		case next.pieces[sq] != Empty:
			return parseErrorf("en passant square", parts[3], "target square is occupied")
		case next.pieces[behind] != NewPiece(Pawn, next.side.Other()):
			return parseErrorf("en passant square", parts[3], "no %s pawn on %s", next.side.Other(), behind)
		case next.pieces[origin] != Empty:
			return parseErrorf("en passant square", parts[3], "%s is not empty", origin)
		}
		next.enPassant = sq
	}

	// Parse half-move clock (field 4, optional)
	if len(parts) > 4 {
		hmc, err := strconv.Atoi(parts[4])
		if err != nil || hmc < 0 {
			return parseErrorf("half-move clock", parts[4], "want a non-negative integer")
		}
		next.halfMove = hmc
	}

	// Parse full-move number (field 5, optional)
	if len(parts) > 5 {
		fmn, err := strconv.Atoi(parts[5])
		if err != nil || fmn < 1 {
			return parseErrorf("full-move number", parts[5], "want a positive integer")
		}
		next.fullMove = fmn
	}

	next.key = next.ComputeKey()

	*b = *next
	return nil
}

// parsePlacement parses the piece placement section of a FEN string.
func (b *Board) parsePlacement(placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return parseErrorf("piece placement", placement, "need 8 ranks, got %d", len(ranks))
	}

	var kings [2]int
	for i, rankStr := range ranks {
		rank := 7 - i // FEN starts from rank 8
		file := 0

		for j := 0; j < len(rankStr); j++ {
			c := rankStr[j]
			if file > 7 {
				return parseErrorf("piece placement", placement, "rank %d has more than 8 files", rank+1)
			}

			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}

			p := PieceFromChar(c)
			if p == Empty {
				return parseErrorf("piece placement", placement, "invalid piece character %q", c)
			}
			if p.Type() == King {
				kings[p.Color()]++
			}
			if p.Type() == Pawn && (rank == 0 || rank == 7) {
				return parseErrorf("piece placement", placement, "pawn on rank %d", rank+1)
			}
			sq := FileRankToSquare(file, rank)
			b.pieces[sq] = p
			if p.Type() == King {
				b.kingSquare[p.Color()] = sq
			}
			file++
		}

		if file != 8 {
			return parseErrorf("piece placement", placement, "rank %d covers %d files", rank+1, file)
		}
	}

	for c, n := range kings {
		if n != 1 {
			return parseErrorf("piece placement", placement, "%s has %d kings", Color(c), n)
		}
	}
	return nil
}

// parseCastlingRights parses the castling rights section of a FEN string.
func parseCastlingRights(castling string) (CastlingRights, error) {
	if castling == "-" {
		return NoCastling, nil
	}

	var cr CastlingRights
	for i := 0; i < len(castling); i++ {
		var bit CastlingRights
		switch castling[i] {
		case 'K':
			bit = WhiteKingSideCastle
		case 'Q':
			bit = WhiteQueenSideCastle
		case 'k':
			bit = BlackKingSideCastle
		case 'q':
			bit = BlackQueenSideCastle
		default:
			return NoCastling, parseErrorf("castling rights", castling, "invalid character %q", castling[i])
		}
		if cr&bit != 0 {
			return NoCastling, parseErrorf("castling rights", castling, "repeated %q", castling[i])
		}
		cr |= bit
	}

	return cr, nil
}

// FEN returns the FEN representation of the position.
func (b *Board) FEN() string {
	var sb strings.Builder

	// Piece placement
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := b.pieces[FileRankToSquare(file, rank)]
			if p == Empty {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(p.Char())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	// Side to move
	sb.WriteByte(' ')
	if b.side == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(b.castle.String())

	sb.WriteByte(' ')
	sb.WriteString(b.enPassant.String())

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.halfMove))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.fullMove))

	return sb.String()
}
