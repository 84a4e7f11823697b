package board

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// PieceType represents the colorless type of a chess piece.
type PieceType uint8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Piece is a colored piece, Empty, or the OffBoard sentinel.
// The values fit in four bits so they can be packed into a Move.
type Piece uint8

const (
	Empty Piece = iota
	WhitePawn
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing
	OffBoard
)

// NumPieces counts Empty plus the twelve colored pieces.
const NumPieces = 13

// Direction offsets on the padded board.
var (
	knightDirs = []int{-8, -19, -21, -12, 8, 19, 21, 12}
	bishopDirs = []int{-9, -11, 11, 9}
	rookDirs   = []int{-1, -10, 1, 10}
	kingDirs   = []int{-1, -10, 1, 10, -9, -11, 11, 9}
)

// pieceInfo describes how a piece behaves. Indexed by Piece.
type pieceInfo struct {
	typ    PieceType
	color  Color
	char   byte
	slider bool
	dirs   []int
}

var pieceTable = [...]pieceInfo{
	Empty:       {NoPieceType, NoColor, '.', false, nil},
	WhitePawn:   {Pawn, White, 'P', false, nil},
	WhiteKnight: {Knight, White, 'N', false, knightDirs},
	WhiteBishop: {Bishop, White, 'B', true, bishopDirs},
	WhiteRook:   {Rook, White, 'R', true, rookDirs},
	WhiteQueen:  {Queen, White, 'Q', true, kingDirs},
	WhiteKing:   {King, White, 'K', false, kingDirs},
	BlackPawn:   {Pawn, Black, 'p', false, nil},
	BlackKnight: {Knight, Black, 'n', false, knightDirs},
	BlackBishop: {Bishop, Black, 'b', true, bishopDirs},
	BlackRook:   {Rook, Black, 'r', true, rookDirs},
	BlackQueen:  {Queen, Black, 'q', true, kingDirs},
	BlackKing:   {King, Black, 'k', false, kingDirs},
	OffBoard:    {NoPieceType, NoColor, 'x', false, nil},
}

// NewPiece creates a Piece from a PieceType and Color.
func NewPiece(pt PieceType, c Color) Piece {
	if pt == NoPieceType || pt > King || c >= NoColor {
		return Empty
	}
	return Piece(pt) + Piece(c)*6
}

// Type returns the PieceType of the piece.
func (p Piece) Type() PieceType {
	if p > OffBoard {
		return NoPieceType
	}
	return pieceTable[p].typ
}

// Color returns the Color of the piece, NoColor for Empty and OffBoard.
func (p Piece) Color() Color {
	if p > OffBoard {
		return NoColor
	}
	return pieceTable[p].color
}

// IsColored reports whether p is one of the twelve real pieces.
func (p Piece) IsColored() bool {
	return p >= WhitePawn && p <= BlackKing
}

// IsSlider reports whether the piece moves along rays.
func (p Piece) IsSlider() bool {
	return p <= OffBoard && pieceTable[p].slider
}

// Char returns the FEN character for the piece: uppercase for White,
// lowercase for Black, '.' for Empty and 'x' for OffBoard.
func (p Piece) Char() byte {
	if p > OffBoard {
		return '?'
	}
	return pieceTable[p].char
}

// String returns the FEN character as a string.
func (p Piece) String() string {
	return string(p.Char())
}

// PieceFromChar converts a FEN character to a Piece, or Empty if the
// character names no piece.
func PieceFromChar(c byte) Piece {
	for p := WhitePawn; p <= BlackKing; p++ {
		if pieceTable[p].char == c {
			return p
		}
	}
	return Empty
}
