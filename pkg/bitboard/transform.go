package bitboard

// The eight symmetries of the square form the dihedral group D4. Because the board is
// 9x9 (not a power-of-two-friendly shape for bit tricks the way a chess rook/bishop ray
// table is), each symmetry is realized as a precomputed per-square permutation rather
// than a shift-and-mask sequence, built once at init and indexed thereafter.

// TransformCode selects one of the 8 square symmetries.
type TransformCode int

const (
	Identity TransformCode = iota
	MirrorV                // flip top/bottom
	Rotate180
	MirrorH // flip left/right
	RotateCCW90
	MirrorDiagonal     // transpose along the main diagonal
	RotateCW90
	MirrorAntiDiagonal // transpose along the anti-diagonal
)

var transformPerm [8][NumSquares]Square
var transformInverse = [8]TransformCode{
	Identity:           Identity,
	MirrorV:            MirrorV,
	Rotate180:          Rotate180,
	MirrorH:            MirrorH,
	RotateCCW90:        RotateCW90,
	MirrorDiagonal:     MirrorDiagonal,
	RotateCW90:         RotateCCW90,
	MirrorAntiDiagonal: MirrorAntiDiagonal,
}

func init() {
	const n = NumRows - 1 // 8

	for row := 0; row < NumRows; row++ {
		for col := 0; col < NumCols; col++ {
			sq := NewSquare(row, col)

			transformPerm[Identity][sq] = sq
			transformPerm[MirrorV][sq] = NewSquare(n-row, col)
			transformPerm[Rotate180][sq] = NewSquare(n-row, n-col)
			transformPerm[MirrorH][sq] = NewSquare(row, n-col)
			transformPerm[RotateCW90][sq] = NewSquare(col, n-row)
			transformPerm[MirrorDiagonal][sq] = NewSquare(col, row)
			transformPerm[RotateCCW90][sq] = NewSquare(n-col, row)
			transformPerm[MirrorAntiDiagonal][sq] = NewSquare(n-col, n-row)
		}
	}
}

// ApplyTransform returns the board with every square remapped under the given symmetry.
func (b Bitboard) ApplyTransform(code TransformCode) Bitboard {
	perm := &transformPerm[code]

	var r Bitboard
	for sq := Square(0); sq < NumSquares; sq++ {
		if b.Get(sq) {
			r = r.Set(perm[sq])
		}
	}
	return r
}

// UndoTransform inverts ApplyTransform for the given code.
func (b Bitboard) UndoTransform(code TransformCode) Bitboard {
	return b.ApplyTransform(transformInverse[code])
}

// TransformSquare maps a single square under the given symmetry. Used by board
// constants to transform precomputed masks without rebuilding a whole Bitboard.
func TransformSquare(sq Square, code TransformCode) Square {
	return transformPerm[code][sq]
}
