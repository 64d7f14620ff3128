package board

import "math/rand"

// ZobristHash is a 64-bit position fingerprint: the XOR of per-(kind,square) keys for
// every piece present, plus the side-to-move key once per ply. See: Zobrist, "A New
// Hashing Method with Application for Game Playing" (1970).
type ZobristHash uint64

// ZobristTable is a fixed, immutable-after-init table of pseudo-random keys. Built once
// at program start (or lazily on first use) and never mutated thereafter, as required
// by every State built from it.
type ZobristTable struct {
	piece [NumKinds][NumSquares]ZobristHash
	turn  ZobristHash
}

// NewZobristTable builds a table from the given seed. A fixed seed (e.g. zero) gives
// reproducible hashes across runs, which is desirable for transposition-table testing.
func NewZobristTable(seed int64) *ZobristTable {
	ret := &ZobristTable{}
	r := rand.New(rand.NewSource(seed))

	for k := Kind(0); k < NumKinds; k++ {
		for sq := Square(0); sq < NumSquares; sq++ {
			ret.piece[k][sq] = ZobristHash(r.Uint64())
		}
	}
	ret.turn = ZobristHash(r.Uint64())
	return ret
}

// PieceKey returns the key for the given (kind, square) pair.
func (z *ZobristTable) PieceKey(k Kind, sq Square) ZobristHash {
	return z.piece[k][sq]
}

// TurnKey returns the single side-to-move toggle key.
func (z *ZobristTable) TurnKey() ZobristHash {
	return z.turn
}
