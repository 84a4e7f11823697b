package board

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/cespare/xxhash"
	"lukechampine.com/frand"
)

// DefaultSeed seeds the key table shared by DefaultTables.
const DefaultSeed uint64 = 0x98F107A2BEEF1234

// Tables holds the immutable lookup tables a Board needs: the square map
// and the Zobrist keys. One Tables value is built per process or session
// and shared read-only by every Board created from it.
type Tables struct {
	Squares SquareMap

	pieceKeys  [NumPieces][64]uint64 // Empty row stays zero
	sideKey    uint64                // XOR when Black to move
	castleKeys [16]uint64
	epKeys     [8]uint64 // one per file
	seed       uint64
}

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

// NewTables builds the square map and a key table from seed.
// The same seed always yields the same keys.
func NewTables(seed uint64) *Tables {
	if seed == 0 {
		// xorshift gets stuck at zero
		seed = DefaultSeed
	}
	t := &Tables{Squares: newSquareMap(), seed: seed}
	rng := &prng{state: seed}

	for p := WhitePawn; p <= BlackKing; p++ {
		for sq := 0; sq < 64; sq++ {
			t.pieceKeys[p][sq] = rng.next()
		}
	}
	for i := range t.castleKeys {
		t.castleKeys[i] = rng.next()
	}
	for f := range t.epKeys {
		t.epKeys[f] = rng.next()
	}
	t.sideKey = rng.next()

	return t
}

// RandomSeed draws a non-zero seed from a CSPRNG, for sessions that do
// not need keys reproducible across processes.
func RandomSeed() uint64 {
	return frand.Uint64n(math.MaxUint64) + 1
}

var defaultTables = sync.OnceValue(func() *Tables {
	return NewTables(DefaultSeed)
})

// DefaultTables returns the process-wide tables built from DefaultSeed.
func DefaultTables() *Tables {
	return defaultTables()
}

// Seed returns the seed the key table was built from.
func (t *Tables) Seed() uint64 {
	return t.seed
}

// PieceKey returns the key for piece p standing on padded square sq, or
// zero when p is not a real piece or sq is not playable.
func (t *Tables) PieceKey(p Piece, sq Square) uint64 {
	if !p.IsColored() || !sq.OnBoard() {
		return 0
	}
	return t.pieceKeys[p][t.Squares.toDense[sq]]
}

// SideKey returns the key XORed in while Black is to move.
func (t *Tables) SideKey() uint64 {
	return t.sideKey
}

// CastleKey returns the key for a castling-rights value.
func (t *Tables) CastleKey(cr CastlingRights) uint64 {
	return t.castleKeys[cr&AllCastling]
}

// EnPassantKey returns the key for an en-passant target on the given file.
func (t *Tables) EnPassantKey(file int) uint64 {
	return t.epKeys[file]
}

// Fingerprint digests the full key table. Keys persisted outside the
// process should be stored alongside it.
func (t *Tables) Fingerprint() uint64 {
	buf := make([]byte, 0, (12*64+16+8+1)*8)
	for p := WhitePawn; p <= BlackKing; p++ {
		for _, k := range t.pieceKeys[p] {
			buf = binary.LittleEndian.AppendUint64(buf, k)
		}
	}
	for _, k := range t.castleKeys {
		buf = binary.LittleEndian.AppendUint64(buf, k)
	}
	for _, k := range t.epKeys {
		buf = binary.LittleEndian.AppendUint64(buf, k)
	}
	buf = binary.LittleEndian.AppendUint64(buf, t.sideKey)
	return xxhash.Sum64(buf)
}

// ComputeKey computes the position key from scratch.
// MakeMove maintains the key incrementally; this is the verification path.
func (b *Board) ComputeKey() uint64 {
	var key uint64

	for dense := 0; dense < 64; dense++ {
		sq := b.tables.Squares.toPadded[dense]
		if p := b.pieces[sq]; p.IsColored() {
			key ^= b.tables.pieceKeys[p][dense]
		}
	}

	if b.side == Black {
		key ^= b.tables.sideKey
	}

	key ^= b.tables.castleKeys[b.castle]

	if b.enPassant != NoSquare {
		key ^= b.tables.epKeys[b.enPassant.File()]
	}

	return key
}

func (b *Board) hashPiece(p Piece, sq Square) {
	b.key ^= b.tables.PieceKey(p, sq)
}

func (b *Board) hashCastle() {
	b.key ^= b.tables.castleKeys[b.castle]
}

func (b *Board) hashSide() {
	b.key ^= b.tables.sideKey
}

func (b *Board) hashEnPassant() {
	b.key ^= b.tables.epKeys[b.enPassant.File()]
}
