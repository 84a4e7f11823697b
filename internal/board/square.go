// Package board implements a 10x12 mailbox chess board with pseudo-legal
// move generation, Zobrist hashing and reversible make/unmake.
package board

import "fmt"

// Square is an index into the padded 10x12 board (0-119).
// Playable squares run from A1=21 to H8=98; everything else is border.
type Square uint8

// Square constants for the 64 playable squares.
const (
	A1 Square = iota + 21
	B1
	C1
	D1
	E1
	F1
	G1
	H1
)

const (
	A2 Square = iota + 31
	B2
	C2
	D2
	E2
	F2
	G2
	H2
)

const (
	A3 Square = iota + 41
	B3
	C3
	D3
	E3
	F3
	G3
	H3
)

const (
	A4 Square = iota + 51
	B4
	C4
	D4
	E4
	F4
	G4
	H4
)

const (
	A5 Square = iota + 61
	B5
	C5
	D5
	E5
	F5
	G5
	H5
)

const (
	A6 Square = iota + 71
	B6
	C6
	D6
	E6
	F6
	G6
	H6
)

const (
	A7 Square = iota + 81
	B7
	C7
	D7
	E7
	F7
	G7
	H7
)

const (
	A8 Square = iota + 91
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

const (
	// NumSquares is the size of the padded board.
	NumSquares = 120
	// NoSquare marks a missing square (e.g. no en-passant target).
	// It is a border index, so it never aliases a playable square.
	NoSquare Square = 99
	// NoSquare64 is returned by ToDense for border squares.
	NoSquare64 = 64
)

// FileRankToSquare converts a 0-based file and rank into a padded index.
func FileRankToSquare(file, rank int) Square {
	return Square(21 + file + rank*10)
}

// File returns the 0-based file (0=a). Only meaningful for playable squares.
func (sq Square) File() int {
	return int(sq)%10 - 1
}

// Rank returns the 0-based rank (0=1st rank). Only meaningful for playable squares.
func (sq Square) Rank() int {
	return int(sq)/10 - 2
}

// OnBoard reports whether sq is one of the 64 playable squares.
func (sq Square) OnBoard() bool {
	if sq >= NumSquares {
		return false
	}
	f, r := sq.File(), sq.Rank()
	return f >= 0 && f < 8 && r >= 0 && r < 8
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if !sq.OnBoard() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.File(), '1'+sq.Rank())
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %q", s)
	}

	file := int(s[0]) - 'a'
	rank := int(s[1]) - '1'

	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, fmt.Errorf("invalid square: %q", s)
	}

	return FileRankToSquare(file, rank), nil
}

// SquareMap converts between the padded and dense addressing schemes.
type SquareMap struct {
	toDense  [NumSquares]uint8
	toPadded [64]Square
}

func newSquareMap() SquareMap {
	var m SquareMap
	for i := range m.toDense {
		m.toDense[i] = NoSquare64
	}
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			m.toPadded[rank*8+file] = FileRankToSquare(file, rank)
		}
	}
	for sq := 0; sq < NumSquares; sq++ {
		for dense, padded := range m.toPadded {
			if Square(sq) == padded {
				m.toDense[sq] = uint8(dense)
				break
			}
		}
	}
	return m
}

// ToPadded maps a dense index (0-63, A1=0) to its padded square.
func (m *SquareMap) ToPadded(dense int) Square {
	if dense < 0 || dense >= 64 {
		return NoSquare
	}
	return m.toPadded[dense]
}

// ToDense maps a padded square to its dense index, or NoSquare64 when
// the square lies on the border.
func (m *SquareMap) ToDense(sq Square) int {
	if sq >= NumSquares {
		return NoSquare64
	}
	return int(m.toDense[sq])
}
